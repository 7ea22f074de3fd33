package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

func TestSentAtLayout_LexicalOrderMatchesChronological(t *testing.T) {
	base := time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC)

	times := []time.Time{
		base,
		base.Add(1 * time.Nanosecond),
		base.Add(500 * time.Nanosecond),
		base.Add(time.Millisecond),
		base.Add(time.Second),
		base.Add(time.Hour),
	}

	for i := 1; i < len(times); i++ {
		earlier := formatSentAt(times[i-1])
		later := formatSentAt(times[i])
		assert.Less(t, earlier, later,
			"formatted %v must sort before %v", times[i-1], times[i])
	}
}

func TestFormatSentAt_RoundTrip(t *testing.T) {
	sent := time.Date(2024, 10, 1, 9, 30, 15, 123456789, time.FixedZone("AEST", 10*3600))

	parsed, err := time.Parse(sentAtLayout, formatSentAt(sent))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(sent), "round trip must preserve the instant")
	assert.Equal(t, time.UTC, parsed.Location(), "stored timestamps are UTC")
}

func TestSortMessagesAscending_TieBreakOnID(t *testing.T) {
	at := time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC)
	msgs := []*domain.Message{
		{ID: "m3", SentAt: at.Add(time.Second)},
		{ID: "m2", SentAt: at},
		{ID: "m1", SentAt: at},
	}

	sortMessagesAscending(msgs)

	require.Len(t, msgs, 3)
	assert.Equal(t, "m1", msgs[0].ID, "identical timestamps fall back to ID order")
	assert.Equal(t, "m2", msgs[1].ID)
	assert.Equal(t, "m3", msgs[2].ID)
}

func TestBuildThreads(t *testing.T) {
	at := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)

	msgs := []*domain.Message{
		{ID: "m1", SenderID: "u1", ReceiverID: "e1", SenderKind: domain.KindSeeker,
			JobID: "j1", Content: "hello", SentAt: at},
		{ID: "m2", SenderID: "e1", ReceiverID: "u1", SenderKind: domain.KindEmployer,
			JobID: "j1", Content: "hi there", SentAt: at.Add(time.Minute)},
		{ID: "m3", SenderID: "e2", ReceiverID: "u1", SenderKind: domain.KindEmployer,
			JobID: "", Content: "general note", SentAt: at.Add(2 * time.Minute)},
		{ID: "m4", SenderID: "e1", ReceiverID: "u1", SenderKind: domain.KindEmployer,
			JobID: "j2", Content: "other role", SentAt: at.Add(3 * time.Minute)},
	}

	threads := buildThreads("u1", msgs)
	require.Len(t, threads, 3, "same pair with different job_id forms separate threads")

	// Latest-first ordering.
	assert.Equal(t, "m4", threads[0].LastMessage.ID)
	assert.Equal(t, "j2", threads[0].JobID)
	assert.Equal(t, "m3", threads[1].LastMessage.ID)
	assert.Equal(t, "m2", threads[2].LastMessage.ID)

	// Counterpart resolution and unread counts from u1's point of view.
	j1 := threads[2]
	assert.Equal(t, "e1", j1.CounterpartID)
	assert.Equal(t, domain.KindEmployer, j1.CounterpartKind)
	assert.Equal(t, 1, j1.UnreadCount, "only m2 is unread and addressed to u1")
}

func TestBuildThreads_UnreadCountsOnlyMessagesToIdentity(t *testing.T) {
	at := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)

	msgs := []*domain.Message{
		{ID: "m1", SenderID: "u1", ReceiverID: "e1", SenderKind: domain.KindSeeker,
			SentAt: at, IsRead: false},
		{ID: "m2", SenderID: "e1", ReceiverID: "u1", SenderKind: domain.KindEmployer,
			SentAt: at.Add(time.Second), IsRead: true},
	}

	threads := buildThreads("u1", msgs)
	require.Len(t, threads, 1)
	assert.Equal(t, 0, threads[0].UnreadCount,
		"own unread outgoing messages do not count toward the identity's unread total")
}

func TestDocToMessage_MalformedTimestamp(t *testing.T) {
	_, err := docToMessage(&messageDoc{ID: "m1", SentAt: "yesterday"})
	require.Error(t, err)
}
