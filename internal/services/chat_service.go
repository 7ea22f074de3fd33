package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// ChatServiceImpl implements domain.ChatService
type ChatServiceImpl struct {
	messages domain.MessageRepository
	now      func() time.Time
}

// NewChatService creates a new chat service
func NewChatService(messages domain.MessageRepository) domain.ChatService {
	return &ChatServiceImpl{
		messages: messages,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Send implements domain.ChatService. Sender and receiver existence is
// not validated here; that belongs to the controller layer.
func (s *ChatServiceImpl) Send(ctx context.Context, senderID string, senderKind domain.IdentityKind, receiverID, content, jobID string) (*domain.Message, error) {
	msg := &domain.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		SenderKind: senderKind,
		Content:    content,
		SentAt:     s.now(),
		IsRead:     false,
		JobID:      jobID,
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Conversation implements domain.ChatService
func (s *ChatServiceImpl) Conversation(ctx context.Context, identityA, identityB, jobID string) ([]*domain.Message, error) {
	return s.messages.Conversation(ctx, identityA, identityB, jobID)
}

// MarkRead implements domain.ChatService
func (s *ChatServiceImpl) MarkRead(ctx context.Context, messageID string) error {
	return s.messages.MarkRead(ctx, messageID)
}

// UnreadCount implements domain.ChatService
func (s *ChatServiceImpl) UnreadCount(ctx context.Context, identityID string) (int, error) {
	return s.messages.UnreadCount(ctx, identityID)
}

// Threads implements domain.ChatService
func (s *ChatServiceImpl) Threads(ctx context.Context, identityID string) ([]*domain.ConversationSummary, error) {
	return s.messages.Threads(ctx, identityID)
}
