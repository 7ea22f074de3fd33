package repositories

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/infrastructure/records"
)

const messagesCollection = "messages"

// sentAtLayout is fixed-width RFC 3339 UTC with nanoseconds, so the
// stored string compares lexically in chronological order. The stdlib
// RFC3339Nano layout trims trailing zeros and would break that.
const sentAtLayout = "2006-01-02T15:04:05.000000000Z"

// messageDoc is the stored shape of a domain.Message.
type messageDoc struct {
	ID         string `bson:"_id"`
	SenderID   string `bson:"sender_id"`
	ReceiverID string `bson:"receiver_id"`
	SenderKind string `bson:"sender_kind"`
	Content    string `bson:"content"`
	SentAt     string `bson:"sent_at"`
	IsRead     bool   `bson:"is_read"`
	JobID      string `bson:"job_id,omitempty"`
}

// MessageRepositoryImpl implements domain.MessageRepository on the record
// store.
type MessageRepositoryImpl struct {
	store *records.Store
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(store *records.Store) domain.MessageRepository {
	return &MessageRepositoryImpl{store: store}
}

// Insert implements domain.MessageRepository
func (r *MessageRepositoryImpl) Insert(ctx context.Context, msg *domain.Message) error {
	doc := messageToDoc(msg)
	return r.store.Put(ctx, messagesCollection, bson.M{"_id": doc.ID}, doc)
}

// Conversation implements domain.MessageRepository
func (r *MessageRepositoryImpl) Conversation(ctx context.Context, identityA, identityB, jobID string) ([]*domain.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"sender_id": identityA, "receiver_id": identityB},
			bson.M{"sender_id": identityB, "receiver_id": identityA},
		},
	}
	if jobID != "" {
		filter["job_id"] = jobID
	}

	msgs, err := r.scan(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortMessagesAscending(msgs)
	return msgs, nil
}

// MarkRead implements domain.MessageRepository. The transition is
// one-way; setting an already-read message read again is a no-op.
func (r *MessageRepositoryImpl) MarkRead(ctx context.Context, messageID string) error {
	return r.store.Update(ctx, messagesCollection, bson.M{"_id": messageID}, bson.M{"is_read": true})
}

// UnreadCount implements domain.MessageRepository
func (r *MessageRepositoryImpl) UnreadCount(ctx context.Context, identityID string) (int, error) {
	n, err := r.store.Count(ctx, messagesCollection, bson.M{
		"receiver_id": identityID,
		"is_read":     false,
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Since implements domain.MessageRepository. The strict $gt on the
// fixed-width timestamp string matches chronological order; ties at the
// boundary are the caller's concern (the delivery service deduplicates).
func (r *MessageRepositoryImpl) Since(ctx context.Context, identityID string, checkpoint time.Time) ([]*domain.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"sender_id": identityID},
			bson.M{"receiver_id": identityID},
		},
		"sent_at": bson.M{"$gt": formatSentAt(checkpoint)},
	}

	msgs, err := r.scan(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortMessagesAscending(msgs)
	return msgs, nil
}

// Threads implements domain.MessageRepository
func (r *MessageRepositoryImpl) Threads(ctx context.Context, identityID string) ([]*domain.ConversationSummary, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"sender_id": identityID},
			bson.M{"receiver_id": identityID},
		},
	}
	msgs, err := r.scan(ctx, filter)
	if err != nil {
		return nil, err
	}
	return buildThreads(identityID, msgs), nil
}

func (r *MessageRepositoryImpl) scan(ctx context.Context, filter bson.M) ([]*domain.Message, error) {
	var docs []messageDoc
	if err := r.store.Scan(ctx, messagesCollection, filter, &docs); err != nil {
		return nil, err
	}

	msgs := make([]*domain.Message, 0, len(docs))
	for i := range docs {
		msg, err := docToMessage(&docs[i])
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// sortMessagesAscending orders by timestamp, then message ID as the
// deterministic secondary key for identical timestamps.
func sortMessagesAscending(msgs []*domain.Message) {
	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].SentAt.Equal(msgs[j].SentAt) {
			return msgs[i].SentAt.Before(msgs[j].SentAt)
		}
		return msgs[i].ID < msgs[j].ID
	})
}

// buildThreads partitions messages into {pair, job} threads and returns
// latest-message-first summaries.
func buildThreads(identityID string, msgs []*domain.Message) []*domain.ConversationSummary {
	sortMessagesAscending(msgs)

	threads := make(map[string]*domain.ConversationSummary)
	for _, msg := range msgs {
		counterpartID := msg.SenderID
		counterpartKind := msg.SenderKind
		if msg.SenderID == identityID {
			counterpartID = msg.ReceiverID
			counterpartKind = counterpartFor(msg.SenderKind)
		}

		key := counterpartID + "\x00" + msg.JobID
		summary, ok := threads[key]
		if !ok {
			summary = &domain.ConversationSummary{
				CounterpartID:   counterpartID,
				CounterpartKind: counterpartKind,
				JobID:           msg.JobID,
			}
			threads[key] = summary
		}
		summary.LastMessage = msg
		if msg.ReceiverID == identityID && !msg.IsRead {
			summary.UnreadCount++
		}
	}

	out := make([]*domain.ConversationSummary, 0, len(threads))
	for _, summary := range threads {
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.SentAt.After(out[j].LastMessage.SentAt)
	})
	return out
}

// counterpartFor maps one side of a seeker/employer conversation to the
// other. Chat only exists between those two kinds.
func counterpartFor(kind domain.IdentityKind) domain.IdentityKind {
	if kind == domain.KindSeeker {
		return domain.KindEmployer
	}
	return domain.KindSeeker
}

func formatSentAt(t time.Time) string {
	return t.UTC().Format(sentAtLayout)
}

func messageToDoc(msg *domain.Message) *messageDoc {
	return &messageDoc{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		SenderKind: string(msg.SenderKind),
		Content:    msg.Content,
		SentAt:     formatSentAt(msg.SentAt),
		IsRead:     msg.IsRead,
		JobID:      msg.JobID,
	}
}

func docToMessage(doc *messageDoc) (*domain.Message, error) {
	sentAt, err := time.Parse(sentAtLayout, doc.SentAt)
	if err != nil {
		return nil, fmt.Errorf("malformed message timestamp %q: %w", doc.SentAt, err)
	}
	return &domain.Message{
		ID:         doc.ID,
		SenderID:   doc.SenderID,
		ReceiverID: doc.ReceiverID,
		SenderKind: domain.IdentityKind(doc.SenderKind),
		Content:    doc.Content,
		SentAt:     sentAt,
		IsRead:     doc.IsRead,
		JobID:      doc.JobID,
	}, nil
}
