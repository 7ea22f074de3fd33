package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/mocks"
)

func TestChatSend(t *testing.T) {
	repo := mocks.NewMockMessageRepository()
	var stored *domain.Message
	repo.InsertFunc = func(ctx context.Context, msg *domain.Message) error {
		stored = msg
		return nil
	}

	svc := &ChatServiceImpl{
		messages: repo,
		now:      func() time.Time { return testNow },
	}

	msg, err := svc.Send(context.Background(), "jane@example.com", domain.KindSeeker, "acme@example.com", "hello", "job-7")
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected the message persisted")
	}
	if msg.ID == "" {
		t.Error("expected a generated message id")
	}
	if !msg.SentAt.Equal(testNow) {
		t.Errorf("expected SentAt %v, got %v", testNow, msg.SentAt)
	}
	if msg.IsRead {
		t.Error("new messages start unread")
	}
	if msg.SenderKind != domain.KindSeeker {
		t.Errorf("unexpected sender kind %q", msg.SenderKind)
	}
	if msg.ConversationKey() != "jane@example.com_job-7" {
		t.Errorf("unexpected conversation key %q", msg.ConversationKey())
	}
}

func TestChatSend_UniqueIDs(t *testing.T) {
	svc := NewChatService(mocks.NewMockMessageRepository())
	ctx := context.Background()

	ids := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		msg, err := svc.Send(ctx, "a@example.com", domain.KindSeeker, "b@example.com", "hi", "")
		if err != nil {
			t.Fatalf("Send() error: %v", err)
		}
		if _, dup := ids[msg.ID]; dup {
			t.Fatalf("duplicate message id %q", msg.ID)
		}
		ids[msg.ID] = struct{}{}
	}
}

func TestChatSend_StoreError(t *testing.T) {
	repo := mocks.NewMockMessageRepository()
	repo.InsertFunc = func(ctx context.Context, msg *domain.Message) error {
		return domain.ErrStoreUnavailable
	}

	svc := NewChatService(repo)
	if _, err := svc.Send(context.Background(), "a@example.com", domain.KindSeeker, "b@example.com", "hi", ""); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestChatPassthroughs(t *testing.T) {
	repo := mocks.NewMockMessageRepository()
	repo.ConversationFunc = func(ctx context.Context, identityA, identityB, jobID string) ([]*domain.Message, error) {
		if identityA != "a@example.com" || identityB != "b@example.com" || jobID != "job-1" {
			t.Errorf("unexpected conversation query (%q, %q, %q)", identityA, identityB, jobID)
		}
		return []*domain.Message{{ID: "m1"}}, nil
	}
	var marked string
	repo.MarkReadFunc = func(ctx context.Context, messageID string) error {
		marked = messageID
		return nil
	}
	repo.UnreadCountFunc = func(ctx context.Context, identityID string) (int, error) {
		return 3, nil
	}
	repo.ThreadsFunc = func(ctx context.Context, identityID string) ([]*domain.ConversationSummary, error) {
		return []*domain.ConversationSummary{{CounterpartID: "b@example.com"}}, nil
	}

	svc := NewChatService(repo)
	ctx := context.Background()

	msgs, err := svc.Conversation(ctx, "a@example.com", "b@example.com", "job-1")
	if err != nil || len(msgs) != 1 {
		t.Fatalf("Conversation() = %v, %v", msgs, err)
	}

	if err := svc.MarkRead(ctx, "m1"); err != nil || marked != "m1" {
		t.Fatalf("MarkRead() marked %q, err %v", marked, err)
	}

	count, err := svc.UnreadCount(ctx, "a@example.com")
	if err != nil || count != 3 {
		t.Fatalf("UnreadCount() = %d, %v", count, err)
	}

	threads, err := svc.Threads(ctx, "a@example.com")
	if err != nil || len(threads) != 1 {
		t.Fatalf("Threads() = %v, %v", threads, err)
	}
}
