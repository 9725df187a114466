package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/wayfaren/crowdpulse/internal/config"
	"github.com/wayfaren/crowdpulse/internal/domain"
)

// Writer produces feedback events to the feedback topic. Used by the
// synthetic-feedback generator; the service itself only consumes.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured feedback topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaFeedbackTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// WriteBatch serializes and publishes feedback events in a single
// WriteMessages call. Messages are keyed by user so one user's events stay
// ordered within a partition.
func (w *Writer) WriteBatch(ctx context.Context, events []domain.FeedbackEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		data, err := json.Marshal(events[i])
		if err != nil {
			return fmt.Errorf("serialize feedback event: %w", err)
		}
		msgs[i] = kafkago.Message{
			Key:   []byte(events[i].UserID),
			Value: data,
			Headers: []kafkago.Header{
				{Key: "event_id", Value: []byte(events[i].ID)},
			},
		}
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

// Close flushes and shuts down the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}
