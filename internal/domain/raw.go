package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawFeedback represents an unprocessed message from the feedback topic.
type RawFeedback struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ParseRawFeedback deserializes a raw message's value into a FeedbackEvent.
// A missing submission timestamp falls back to the message timestamp; a
// missing or unknown kind defaults to quick. Events without a user or
// destination are rejected.
func ParseRawFeedback(raw RawFeedback) (FeedbackEvent, error) {
	var event FeedbackEvent
	if err := json.Unmarshal(raw.Value, &event); err != nil {
		return FeedbackEvent{}, fmt.Errorf("parse feedback event: %w", err)
	}
	if event.UserID == "" {
		return FeedbackEvent{}, fmt.Errorf("parse feedback event: missing user_id")
	}
	if event.DestinationID == 0 {
		return FeedbackEvent{}, fmt.Errorf("parse feedback event: missing destination_id")
	}
	if event.Kind != FeedbackDetailed {
		event.Kind = FeedbackQuick
	}
	if event.SubmittedAt.IsZero() {
		event.SubmittedAt = raw.Timestamp
	}
	return event, nil
}
