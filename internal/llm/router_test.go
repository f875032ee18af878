package llm_test

import (
	"context"
	"testing"

	"github.com/rensmac/chat-summarizer/internal/llm"
)

type stubProvider struct {
	name       string
	configured bool
}

func (s *stubProvider) Name() string              { return s.name }
func (s *stubProvider) AvailableModels() []string { return []string{"stub-1"} }
func (s *stubProvider) DefaultModel() string      { return "stub-1" }
func (s *stubProvider) IsConfigured() bool        { return s.configured }

func (s *stubProvider) GenerateSummary(ctx context.Context, prompt string, model string) (*llm.Response, error) {
	return &llm.Response{Summary: "stub summary", Model: "stub-1"}, nil
}

func TestRouter_GetProvider(t *testing.T) {
	router := llm.NewRouter("gemini")
	router.RegisterProvider(&stubProvider{name: "gemini", configured: true})
	router.RegisterProvider(&stubProvider{name: "openai", configured: false})

	t.Run("by name", func(t *testing.T) {
		p, err := router.GetProvider("gemini")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name() != "gemini" {
			t.Errorf("got provider %q, want gemini", p.Name())
		}
	})

	t.Run("empty name falls back to default", func(t *testing.T) {
		p, err := router.GetProvider("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name() != "gemini" {
			t.Errorf("got provider %q, want gemini", p.Name())
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := router.GetProvider("mistral"); err == nil {
			t.Error("expected error for unknown provider")
		}
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		if _, err := router.GetProvider("openai"); err == nil {
			t.Error("expected error for unconfigured provider")
		}
	})
}

func TestRouter_ListProviders(t *testing.T) {
	router := llm.NewRouter("gemini")
	router.RegisterProvider(&stubProvider{name: "gemini", configured: true})
	router.RegisterProvider(&stubProvider{name: "openai", configured: false})

	providers := router.ListProviders()
	if len(providers) != 1 || providers[0] != "gemini" {
		t.Errorf("ListProviders() = %v, want [gemini]", providers)
	}
}
