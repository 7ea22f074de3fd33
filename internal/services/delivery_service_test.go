package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/mocks"
)

func newTestDeliveryService(repo *mocks.MockMessageRepository) *DeliveryService {
	return &DeliveryService{
		messages: repo,
		interval: time.Millisecond,
		logger:   quietLogger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func collectEvents(t *testing.T, events <-chan StreamEvent, n int) []StreamEvent {
	t.Helper()
	collected := make([]StreamEvent, 0, n)
	timeout := time.After(2 * time.Second)
	for len(collected) < n {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("stream closed after %d of %d events", len(collected), n)
			}
			collected = append(collected, ev)
		case <-timeout:
			t.Fatalf("timed out after %d of %d events", len(collected), n)
		}
	}
	return collected
}

func TestStream_DedupesOverlappingPolls(t *testing.T) {
	m1 := &domain.Message{ID: "m1", SenderID: "acme@example.com", ReceiverID: "jane@example.com"}
	m2 := &domain.Message{ID: "m2", SenderID: "acme@example.com", ReceiverID: "jane@example.com"}
	m3 := &domain.Message{ID: "m3", SenderID: "acme@example.com", ReceiverID: "jane@example.com"}

	// The second poll re-returns m2, as happens when a message lands
	// exactly on the checkpoint boundary.
	polls := [][]*domain.Message{{m1, m2}, {m2, m3}}
	var mu sync.Mutex
	repo := mocks.NewMockMessageRepository()
	repo.SinceFunc = func(ctx context.Context, identityID string, checkpoint time.Time) ([]*domain.Message, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(polls) == 0 {
			return nil, nil
		}
		batch := polls[0]
		polls = polls[1:]
		out := make([]*domain.Message, len(batch))
		for i, m := range batch {
			copied := *m
			out[i] = &copied
		}
		return out, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newTestDeliveryService(repo)
	events := svc.Stream(ctx, "jane@example.com", domain.KindSeeker, time.Now().UTC())

	got := collectEvents(t, events, 3)
	wantOrder := []string{"m1", "m2", "m3"}
	for i, ev := range got {
		if ev.Err != nil {
			t.Fatalf("unexpected error event: %v", ev.Err)
		}
		if ev.Message.ID != wantOrder[i] {
			t.Errorf("event %d: expected %q, got %q", i, wantOrder[i], ev.Message.ID)
		}
	}
}

func TestStream_OwnMessagesCarryStreamKind(t *testing.T) {
	// A message the seeker sent, as stored from the employer's side of
	// the conversation index.
	own := &domain.Message{ID: "m1", SenderID: "jane@example.com", SenderKind: domain.KindEmployer}
	other := &domain.Message{ID: "m2", SenderID: "acme@example.com", SenderKind: domain.KindEmployer}

	var once sync.Once
	repo := mocks.NewMockMessageRepository()
	repo.SinceFunc = func(ctx context.Context, identityID string, checkpoint time.Time) ([]*domain.Message, error) {
		var batch []*domain.Message
		once.Do(func() {
			batch = []*domain.Message{own, other}
		})
		return batch, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newTestDeliveryService(repo)
	events := svc.Stream(ctx, "jane@example.com", domain.KindSeeker, time.Now().UTC())

	got := collectEvents(t, events, 2)
	if got[0].Message.SenderKind != domain.KindSeeker {
		t.Errorf("own message: expected sender kind seeker, got %q", got[0].Message.SenderKind)
	}
	if got[1].Message.SenderKind != domain.KindEmployer {
		t.Errorf("counterpart message: expected sender kind employer, got %q", got[1].Message.SenderKind)
	}
}

func TestStream_StoreErrorIsTerminal(t *testing.T) {
	repo := mocks.NewMockMessageRepository()
	pollCount := 0
	var mu sync.Mutex
	repo.SinceFunc = func(ctx context.Context, identityID string, checkpoint time.Time) ([]*domain.Message, error) {
		mu.Lock()
		defer mu.Unlock()
		pollCount++
		return nil, errors.New("connection refused")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newTestDeliveryService(repo)
	events := svc.Stream(ctx, "jane@example.com", domain.KindSeeker, time.Now().UTC())

	got := collectEvents(t, events, 1)
	if !errors.Is(got[0].Err, domain.ErrStreamFatal) {
		t.Fatalf("expected a stream-fatal error event, got %+v", got[0])
	}

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected the stream closed after a terminal error")
		}
	case <-time.After(time.Second):
		t.Fatal("stream did not close after a terminal error")
	}

	mu.Lock()
	if pollCount != 1 {
		t.Errorf("expected no retry after a fatal error, got %d polls", pollCount)
	}
	mu.Unlock()
}

func TestStream_CancellationClosesStream(t *testing.T) {
	repo := mocks.NewMockMessageRepository()
	ctx, cancel := context.WithCancel(context.Background())

	svc := newTestDeliveryService(repo)
	events := svc.Stream(ctx, "jane@example.com", domain.KindSeeker, time.Now().UTC())

	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected no events after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("stream did not close after cancellation")
	}
}

func TestStream_CheckpointAdvancesToPollStart(t *testing.T) {
	base := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	var mu sync.Mutex

	var checkpoints []time.Time
	repo := mocks.NewMockMessageRepository()
	repo.SinceFunc = func(ctx context.Context, identityID string, checkpoint time.Time) ([]*domain.Message, error) {
		mu.Lock()
		defer mu.Unlock()
		checkpoints = append(checkpoints, checkpoint)
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newTestDeliveryService(repo)
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}

	events := svc.Stream(ctx, "jane@example.com", domain.KindSeeker, base)

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(checkpoints)
		mu.Unlock()
		if n >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("only %d polls observed", n)
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	for range events {
	}

	mu.Lock()
	defer mu.Unlock()
	if !checkpoints[0].Equal(base) {
		t.Errorf("first poll must use the caller's checkpoint, got %v", checkpoints[0])
	}
	for i := 1; i < 3; i++ {
		if !checkpoints[i].After(checkpoints[i-1]) {
			t.Errorf("poll %d: checkpoint %v did not advance past %v", i, checkpoints[i], checkpoints[i-1])
		}
	}
}
