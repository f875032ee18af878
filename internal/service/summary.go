package service

import (
	"context"
	"strings"
	"time"

	"github.com/rensmac/chat-summarizer/internal/domain"
	"github.com/rensmac/chat-summarizer/internal/llm"
	"github.com/rensmac/chat-summarizer/internal/repository/redis"
	"github.com/rs/zerolog/log"
)

// SummaryService is the gateway to the external text-generation collaborator.
// Summarize always hands the caller a usable string: provider failures of any
// kind degrade into a fallback message instead of an error.
type SummaryService struct {
	repo    domain.ConversationRepository
	router  *llm.Router
	cache   *redis.SummaryCache
	timeout time.Duration
}

// NewSummaryService creates a new summary service
func NewSummaryService(repo domain.ConversationRepository, router *llm.Router, cache *redis.SummaryCache, timeout time.Duration) *SummaryService {
	return &SummaryService{
		repo:    repo,
		router:  router,
		cache:   cache,
		timeout: timeout,
	}
}

// Summarize produces a best-effort summary of the conversation's messages.
// The only error it returns is domain.ErrConversationNotFound (or a storage
// read failure); everything past the read is absorbed into the result string.
func (s *SummaryService) Summarize(ctx context.Context, conversationID string) (string, error) {
	conv, err := s.repo.Get(ctx, conversationID)
	if err != nil {
		return "", err
	}

	if cached, ok := s.cache.Get(ctx, conversationID); ok {
		return cached, nil
	}

	prompt := llm.BuildSummaryPrompt(strings.Join(conv.Messages, " "))

	summary, ok := s.generate(ctx, prompt)
	if ok {
		if err := s.cache.Set(ctx, conversationID, summary); err != nil {
			log.Warn().Err(err).Str("conversation_id", conversationID).Msg("Failed to cache summary")
		}
	}
	return summary, nil
}

// generate calls the default provider and maps every failure mode to a
// fallback string. The second return reports whether the text came from the
// provider; fallbacks are never cached.
func (s *SummaryService) generate(ctx context.Context, prompt string) (string, bool) {
	provider, err := s.router.GetProvider("")
	if err != nil {
		log.Warn().Err(err).Msg("Summary provider unavailable")
		return "Error generating summary: " + err.Error(), false
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := provider.GenerateSummary(ctx, prompt, "")
	if err != nil {
		log.Warn().Err(err).Str("provider", provider.Name()).Msg("Summary generation failed")
		return "Error generating summary: " + err.Error(), false
	}

	summary := strings.TrimSpace(resp.Summary)
	if summary == "" {
		return "No summary available.", false
	}

	log.Debug().
		Str("provider", provider.Name()).
		Str("model", resp.Model).
		Int("tokens_used", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("Summary generated")

	return summary, true
}
