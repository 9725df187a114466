// Package kafka adapts the feedback topic to the pipeline's extractor and
// loader contracts.
package kafka

import (
	"context"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/wayfaren/crowdpulse/internal/config"
	"github.com/wayfaren/crowdpulse/internal/domain"
)

// pollTimeout bounds the wait for additional messages once a batch already
// holds at least one.
const pollTimeout = 100 * time.Millisecond

// consumer is the slice of the kafka-go reader surface the extractor needs.
type consumer interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Reader consumes feedback events from the feedback topic.
// It implements pipeline.BatchExtractor.
type Reader struct {
	consumer consumer
	logger   *slog.Logger
}

// NewReader creates a Kafka consumer for the configured feedback topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaFeedbackTopic,
		GroupID:     cfg.KafkaGroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	return &Reader{consumer: r, logger: logger}
}

// ExtractBatch fetches up to batchSize messages. The first fetch blocks on
// the caller's context; once the batch holds anything, further fetches poll
// briefly and a quiet topic returns the partial batch without error.
// Cancellation of the caller's context propagates as an error alongside
// whatever was already fetched.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawFeedback, error) {
	batch := make([]domain.RawFeedback, 0, batchSize)

	for len(batch) < batchSize {
		fetchCtx := ctx
		var cancel context.CancelFunc
		if len(batch) > 0 {
			fetchCtx, cancel = context.WithTimeout(ctx, pollTimeout)
		}

		msg, err := r.consumer.FetchMessage(fetchCtx)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			if len(batch) > 0 && ctx.Err() == nil {
				return batch, nil
			}
			return batch, err
		}

		m := msg
		batch = append(batch, domain.RawFeedback{
			Key:       m.Key,
			Value:     m.Value,
			Topic:     m.Topic,
			Partition: m.Partition,
			Offset:    m.Offset,
			Timestamp: m.Time,
			Commit: func(ctx context.Context) error {
				return r.consumer.CommitMessages(ctx, m)
			},
		})
	}

	return batch, nil
}

// Close shuts down the consumer group member.
func (r *Reader) Close() error {
	return r.consumer.Close()
}
