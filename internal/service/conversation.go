package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rensmac/chat-summarizer/internal/domain"
	"github.com/rensmac/chat-summarizer/internal/repository/redis"
	"github.com/rs/zerolog/log"
)

// maxAppendRetries bounds the optimistic-retry loop. Conflicts only happen
// when two appends race on the same conversation, so a handful of attempts
// is plenty.
const maxAppendRetries = 5

// ConversationService enforces the business invariants over conversation
// storage: server-generated ids, ownership checks on append, lost-update-free
// concurrent appends and windowed listing.
type ConversationService struct {
	repo         domain.ConversationRepository
	summaryCache *redis.SummaryCache
}

// NewConversationService creates a new conversation service
func NewConversationService(repo domain.ConversationRepository, summaryCache *redis.SummaryCache) *ConversationService {
	return &ConversationService{repo: repo, summaryCache: summaryCache}
}

// CreateConversation stores a new conversation seeded with the first message
func (s *ConversationService) CreateConversation(ctx context.Context, userID, firstMessage string) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ConversationID: uuid.NewString(),
		UserID:         userID,
		Messages:       []string{firstMessage},
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// FetchConversation returns a conversation by id
func (s *ConversationService) FetchConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	return s.repo.Get(ctx, conversationID)
}

// AppendMessage adds one message to the end of an existing conversation.
// Returns domain.ErrConversationNotFound if the conversation is absent and
// domain.ErrOwnershipMismatch, without mutating anything, if userID is not
// the owner. Concurrent appends to the same conversation are reconciled with
// a read-append-conditional-write loop so none of them is lost.
func (s *ConversationService) AppendMessage(ctx context.Context, conversationID, userID, message string) error {
	for attempt := 0; attempt < maxAppendRetries; attempt++ {
		conv, err := s.repo.Get(ctx, conversationID)
		if err != nil {
			return err
		}

		if conv.UserID != userID {
			return domain.ErrOwnershipMismatch
		}

		messages := make([]string, 0, len(conv.Messages)+1)
		messages = append(messages, conv.Messages...)
		messages = append(messages, message)

		ok, err := s.repo.UpdateMessagesIf(ctx, conversationID, messages, len(conv.Messages))
		if err != nil {
			return fmt.Errorf("failed to append message: %w", err)
		}
		if ok {
			if err := s.summaryCache.Invalidate(ctx, conversationID); err != nil {
				log.Warn().Err(err).Str("conversation_id", conversationID).Msg("Failed to invalidate summary cache")
			}
			return nil
		}

		log.Debug().
			Str("conversation_id", conversationID).
			Int("attempt", attempt+1).
			Msg("Append conflict, retrying")
	}

	return fmt.Errorf("append to conversation %s not resolved after %d attempts", conversationID, maxAppendRetries)
}

// ListUserConversations returns the page-th window (1-indexed, limit entries)
// of the user's conversations, ordered by creation time ascending. Windows do
// not overlap; a window past the end is empty, not an error.
func (s *ConversationService) ListUserConversations(ctx context.Context, userID string, page, limit int) ([]domain.Conversation, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	conversations, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// DeleteConversation removes a conversation permanently
func (s *ConversationService) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := s.repo.Delete(ctx, conversationID); err != nil {
		return err
	}

	if err := s.summaryCache.Invalidate(ctx, conversationID); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("Failed to invalidate summary cache")
	}
	return nil
}
