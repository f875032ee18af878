package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/rensmac/chat-summarizer/internal/domain"
)

const mysqlErrDuplicateEntry = 1062

// ConversationRepository implements domain.ConversationRepository on the
// chats table. Messages are stored as a JSON array of strings, preserving
// append order.
type ConversationRepository struct {
	db *DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}

	query := `
		INSERT INTO chats (conversation_id, user_id, messages, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err = r.db.SQL.ExecContext(ctx, query,
		conv.ConversationID,
		conv.UserID,
		messages,
		conv.CreatedAt,
	)
	if err != nil {
		var mysqlErr *gomysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return domain.ErrDuplicateConversation
		}
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

func (r *ConversationRepository) Get(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	query := `
		SELECT conversation_id, user_id, messages, created_at
		FROM chats
		WHERE conversation_id = ?
	`
	var conv domain.Conversation
	var raw []byte
	err := r.db.SQL.QueryRowContext(ctx, query, conversationID).Scan(
		&conv.ConversationID,
		&conv.UserID,
		&raw,
		&conv.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	if err := json.Unmarshal(raw, &conv.Messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return &conv, nil
}

func (r *ConversationRepository) Update(ctx context.Context, conv *domain.Conversation) error {
	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}

	query := `UPDATE chats SET messages = ? WHERE conversation_id = ?`
	res, err := r.db.SQL.ExecContext(ctx, query, messages, conv.ConversationID)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}

// UpdateMessagesIf performs a conditional replace guarded on the current
// message count. The guard and the write are a single statement, so two
// concurrent appends to the same conversation cannot both succeed against
// the same snapshot.
func (r *ConversationRepository) UpdateMessagesIf(ctx context.Context, conversationID string, messages []string, expectedLen int) (bool, error) {
	encoded, err := json.Marshal(messages)
	if err != nil {
		return false, fmt.Errorf("failed to encode messages: %w", err)
	}

	query := `
		UPDATE chats
		SET messages = ?
		WHERE conversation_id = ? AND JSON_LENGTH(messages) = ?
	`
	res, err := r.db.SQL.ExecContext(ctx, query, encoded, conversationID, expectedLen)
	if err != nil {
		return false, fmt.Errorf("failed to update conversation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *ConversationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	query := `
		SELECT conversation_id, user_id, messages, created_at
		FROM chats
		WHERE user_id = ?
		ORDER BY created_at, conversation_id
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.SQL.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := []domain.Conversation{}
	for rows.Next() {
		var conv domain.Conversation
		var raw []byte
		if err := rows.Scan(
			&conv.ConversationID,
			&conv.UserID,
			&raw,
			&conv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		if err := json.Unmarshal(raw, &conv.Messages); err != nil {
			return nil, fmt.Errorf("failed to decode messages: %w", err)
		}
		conversations = append(conversations, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return conversations, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, conversationID string) error {
	query := `DELETE FROM chats WHERE conversation_id = ?`
	res, err := r.db.SQL.ExecContext(ctx, query, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}
