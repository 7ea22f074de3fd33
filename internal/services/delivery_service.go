package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// StreamEvent is one item on a push stream: either a newly stored message
// or a terminal error, after which the stream closes.
type StreamEvent struct {
	Message *domain.Message
	Err     error
}

// DeliveryService runs one polling loop per open push stream, forwarding
// newly stored messages addressed to (or sent by) the stream's identity.
// Delivery is at-least-once and ascending-timestamp ordered within a
// stream; nothing is guaranteed across streams.
type DeliveryService struct {
	messages domain.MessageRepository
	interval time.Duration
	logger   *logrus.Logger
	now      func() time.Time
}

// NewDeliveryService creates a delivery service polling at the given
// cadence.
func NewDeliveryService(messages domain.MessageRepository, interval time.Duration, logger *logrus.Logger) *DeliveryService {
	return &DeliveryService{
		messages: messages,
		interval: interval,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Stream opens a push stream for the identity, polling the store for
// messages newer than checkpoint. The returned channel closes when ctx is
// cancelled or after a terminal error event; the stream never retries
// past a fatal store error, reconnecting is the client's job.
func (s *DeliveryService) Stream(ctx context.Context, identityID string, kind domain.IdentityKind, checkpoint time.Time) <-chan StreamEvent {
	events := make(chan StreamEvent)
	go s.run(ctx, identityID, kind, checkpoint, events)
	return events
}

func (s *DeliveryService) run(ctx context.Context, identityID string, kind domain.IdentityKind, checkpoint time.Time, events chan<- StreamEvent) {
	defer close(events)

	s.logger.WithFields(logrus.Fields{
		"identity_id": identityID,
		"kind":        kind,
	}).Debug("push stream opened")
	defer s.logger.WithField("identity_id", identityID).Debug("push stream closed")

	// Checkpoint overlap at the poll boundary can re-return a message;
	// the seen set keeps delivery once-per-stream.
	seen := make(map[string]struct{})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// The next checkpoint is the poll start, not the last message's
		// timestamp: advancing to "now" avoids re-fetching a message
		// whose timestamp ties with the checkpoint.
		pollStart := s.now()

		msgs, err := s.messages.Since(ctx, identityID, checkpoint)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.WithField("identity_id", identityID).
				WithError(err).Error("push stream store error")
			select {
			case events <- StreamEvent{Err: fmt.Errorf("%w: %v", domain.ErrStreamFatal, err)}:
			case <-ctx.Done():
			}
			return
		}

		for _, msg := range msgs {
			if _, dup := seen[msg.ID]; dup {
				continue
			}
			seen[msg.ID] = struct{}{}

			// A message the identity itself sent carries the stream
			// owner's kind, whatever identity space it was stored from.
			if msg.SenderID == identityID {
				msg.SenderKind = kind
			}

			select {
			case events <- StreamEvent{Message: msg}:
			case <-ctx.Done():
				return
			}
		}

		checkpoint = pollStart
	}
}
