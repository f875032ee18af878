package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrConversationNotFound signals the referenced conversation does not exist
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrOwnershipMismatch signals an append whose user_id does not match the owner
	ErrOwnershipMismatch = errors.New("user does not own conversation")

	// ErrDuplicateConversation signals a primary key collision on insert
	ErrDuplicateConversation = errors.New("conversation already exists")
)

// Conversation is the unit of persisted chat state: an id, an owner and an
// ordered list of messages. Messages are append-only and their order is
// chronological.
type Conversation struct {
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Messages       []string  `json:"messages"`
	CreatedAt      time.Time `json:"-"`
}

// ConversationRepository defines the interface for conversation storage
type ConversationRepository interface {
	// Create inserts a new conversation, failing with ErrDuplicateConversation
	// if the id is already taken.
	Create(ctx context.Context, conv *Conversation) error

	// Get returns the conversation or ErrConversationNotFound.
	Get(ctx context.Context, conversationID string) (*Conversation, error)

	// Update replaces the stored message list, failing with
	// ErrConversationNotFound if the row is absent.
	Update(ctx context.Context, conv *Conversation) error

	// UpdateMessagesIf replaces the message list only when the stored list
	// still has expectedLen entries. Returns false (and no error) when the
	// guard fails or the row is gone; callers re-read and retry.
	UpdateMessagesIf(ctx context.Context, conversationID string, messages []string, expectedLen int) (bool, error)

	// ListByUser returns the user's conversations ordered by creation time
	// ascending, conversation id as tiebreak.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Conversation, error)

	// Delete removes the conversation, failing with ErrConversationNotFound
	// if the row is absent.
	Delete(ctx context.Context, conversationID string) error
}
