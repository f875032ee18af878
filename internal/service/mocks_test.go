package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rensmac/chat-summarizer/internal/domain"
	"github.com/rensmac/chat-summarizer/internal/llm"
	"github.com/stretchr/testify/mock"
)

// MockConversationRepository mocks the ConversationRepository interface
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) Get(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Update(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) UpdateMessagesIf(ctx context.Context, conversationID string, messages []string, expectedLen int) (bool, error) {
	args := m.Called(ctx, conversationID, messages, expectedLen)
	return args.Bool(0), args.Error(1)
}

func (m *MockConversationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Delete(ctx context.Context, conversationID string) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

// MockProvider mocks llm.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) AvailableModels() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockProvider) DefaultModel() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockProvider) GenerateSummary(ctx context.Context, prompt string, model string) (*llm.Response, error) {
	args := m.Called(ctx, prompt, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}

// fakeConversationRepo is an in-memory repository with the same atomicity
// guarantees as the MySQL implementation: the conditional update checks its
// guard and writes under one lock, so racing appends conflict instead of
// overwriting each other.
type fakeConversationRepo struct {
	mu    sync.Mutex
	convs map[string]*domain.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[string]*domain.Conversation)}
}

func (f *fakeConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.convs[conv.ConversationID]; ok {
		return domain.ErrDuplicateConversation
	}
	stored := *conv
	stored.Messages = append([]string{}, conv.Messages...)
	f.convs[conv.ConversationID] = &stored
	return nil
}

func (f *fakeConversationRepo) Get(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.convs[conversationID]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	conv := *stored
	conv.Messages = append([]string{}, stored.Messages...)
	return &conv, nil
}

func (f *fakeConversationRepo) Update(ctx context.Context, conv *domain.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.convs[conv.ConversationID]
	if !ok {
		return domain.ErrConversationNotFound
	}
	stored.Messages = append([]string{}, conv.Messages...)
	return nil
}

func (f *fakeConversationRepo) UpdateMessagesIf(ctx context.Context, conversationID string, messages []string, expectedLen int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.convs[conversationID]
	if !ok || len(stored.Messages) != expectedLen {
		return false, nil
	}
	stored.Messages = append([]string{}, messages...)
	return true, nil
}

func (f *fakeConversationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []domain.Conversation
	for _, stored := range f.convs {
		if stored.UserID != userID {
			continue
		}
		conv := *stored
		conv.Messages = append([]string{}, stored.Messages...)
		all = append(all, conv)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ConversationID < all[j].ConversationID
	})

	if offset >= len(all) {
		return []domain.Conversation{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeConversationRepo) Delete(ctx context.Context, conversationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.convs[conversationID]; !ok {
		return domain.ErrConversationNotFound
	}
	delete(f.convs, conversationID)
	return nil
}
