package mocks

import (
	"context"
	"time"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// MockMessageRepository implements domain.MessageRepository for testing
type MockMessageRepository struct {
	InsertFunc       func(ctx context.Context, msg *domain.Message) error
	ConversationFunc func(ctx context.Context, identityA, identityB, jobID string) ([]*domain.Message, error)
	MarkReadFunc     func(ctx context.Context, messageID string) error
	UnreadCountFunc  func(ctx context.Context, identityID string) (int, error)
	SinceFunc        func(ctx context.Context, identityID string, checkpoint time.Time) ([]*domain.Message, error)
	ThreadsFunc      func(ctx context.Context, identityID string) ([]*domain.ConversationSummary, error)
}

// NewMockMessageRepository creates a new MockMessageRepository with default behaviors
func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{}
}

func (m *MockMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, msg)
	}
	return nil
}

func (m *MockMessageRepository) Conversation(ctx context.Context, identityA, identityB, jobID string) ([]*domain.Message, error) {
	if m.ConversationFunc != nil {
		return m.ConversationFunc(ctx, identityA, identityB, jobID)
	}
	return nil, nil
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, messageID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, messageID)
	}
	return nil
}

func (m *MockMessageRepository) UnreadCount(ctx context.Context, identityID string) (int, error) {
	if m.UnreadCountFunc != nil {
		return m.UnreadCountFunc(ctx, identityID)
	}
	return 0, nil
}

func (m *MockMessageRepository) Since(ctx context.Context, identityID string, checkpoint time.Time) ([]*domain.Message, error) {
	if m.SinceFunc != nil {
		return m.SinceFunc(ctx, identityID, checkpoint)
	}
	return nil, nil
}

func (m *MockMessageRepository) Threads(ctx context.Context, identityID string) ([]*domain.ConversationSummary, error) {
	if m.ThreadsFunc != nil {
		return m.ThreadsFunc(ctx, identityID)
	}
	return nil, nil
}
