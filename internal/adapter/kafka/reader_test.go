package kafka

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedConsumer hands out queued messages and blocks on the fetch context
// once drained, the way a quiet broker connection does.
type scriptedConsumer struct {
	mu        sync.Mutex
	queued    []kafkago.Message
	committed []kafkago.Message
}

func (s *scriptedConsumer) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	s.mu.Lock()
	if len(s.queued) > 0 {
		msg := s.queued[0]
		s.queued = s.queued[1:]
		s.mu.Unlock()
		return msg, nil
	}
	s.mu.Unlock()

	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (s *scriptedConsumer) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = append(s.committed, msgs...)
	return nil
}

func (s *scriptedConsumer) Close() error { return nil }

func (s *scriptedConsumer) committedOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	offsets := make([]int64, len(s.committed))
	for i, m := range s.committed {
		offsets[i] = m.Offset
	}
	return offsets
}

func newTestReader(c consumer) *Reader {
	return &Reader{
		consumer: c,
		logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

func queuedMessage(offset int64, key, value string) kafkago.Message {
	return kafkago.Message{
		Topic:     "destination-feedback",
		Partition: 0,
		Offset:    offset,
		Key:       []byte(key),
		Value:     []byte(value),
		Time:      time.Date(2025, 7, 8, 9, 0, 0, 0, time.UTC),
	}
}

func TestExtractBatch_FillsBatch(t *testing.T) {
	fake := &scriptedConsumer{queued: []kafkago.Message{
		queuedMessage(10, "user-1", `{"n":1}`),
		queuedMessage(11, "user-2", `{"n":2}`),
		queuedMessage(12, "user-1", `{"n":3}`),
	}}
	r := newTestReader(fake)

	batch, err := r.ExtractBatch(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, batch, 3)

	first := batch[0]
	assert.Equal(t, []byte("user-1"), first.Key)
	assert.Equal(t, []byte(`{"n":1}`), first.Value)
	assert.Equal(t, "destination-feedback", first.Topic)
	assert.Equal(t, int64(10), first.Offset)
	assert.NotNil(t, first.Commit)
}

func TestExtractBatch_PartialBatchOnQuietTopic(t *testing.T) {
	fake := &scriptedConsumer{queued: []kafkago.Message{
		queuedMessage(20, "user-1", `{"n":1}`),
		queuedMessage(21, "user-2", `{"n":2}`),
	}}
	r := newTestReader(fake)

	// The queue runs dry before the batch fills; the poll deadline should
	// end the loop and hand back what was fetched, without an error.
	batch, err := r.ExtractBatch(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, batch, 2)
}

func TestExtractBatch_CancellationWithEmptyBatch(t *testing.T) {
	fake := &scriptedConsumer{}
	r := newTestReader(fake)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	batch, err := r.ExtractBatch(ctx, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, batch)
}

func TestExtractBatch_CancellationSurfacesWithPartialBatch(t *testing.T) {
	fake := &scriptedConsumer{queued: []kafkago.Message{
		queuedMessage(30, "user-1", `{"n":1}`),
	}}
	r := newTestReader(fake)

	// The parent deadline fires while the reader is polling for a second
	// message; the fetched message comes back alongside the error so the
	// caller can tell shutdown from a merely quiet topic.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	batch, err := r.ExtractBatch(ctx, 5)
	require.Error(t, err)
	assert.Len(t, batch, 1)
}

func TestExtractBatch_CommitClosureCommitsOwnMessage(t *testing.T) {
	fake := &scriptedConsumer{queued: []kafkago.Message{
		queuedMessage(40, "user-1", `{"n":1}`),
		queuedMessage(41, "user-2", `{"n":2}`),
	}}
	r := newTestReader(fake)

	batch, err := r.ExtractBatch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	// Each closure must commit its own message, not the last one fetched.
	require.NoError(t, batch[0].Commit(context.Background()))
	assert.Equal(t, []int64{40}, fake.committedOffsets())

	require.NoError(t, batch[1].Commit(context.Background()))
	assert.Equal(t, []int64{40, 41}, fake.committedOffsets())
}
