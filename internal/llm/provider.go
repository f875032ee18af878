package llm

import "context"

// Response contains LLM generation result
type Response struct {
	Summary    string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// GenerateSummary produces natural-language text for a summary prompt
	GenerateSummary(ctx context.Context, prompt string, model string) (*Response, error)
}
