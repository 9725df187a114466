// Package pipeline runs the feedback apply loop: extract feedback batches
// from the topic, apply each event to the engagement ledger, commit offsets.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/wayfaren/crowdpulse/internal/domain"
	"github.com/wayfaren/crowdpulse/internal/ledger"
	"github.com/wayfaren/crowdpulse/internal/observability"
)

// BatchExtractor reads up to batchSize raw messages from the feedback topic.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawFeedback, error)
}

// Applier mutates engagement state for one feedback event. Implemented by
// ledger.Ledger; split out so tests can count calls and inject failures.
type Applier interface {
	AwardPoints(ctx context.Context, event domain.FeedbackEvent) (ledger.AwardResult, error)
	CheckBadges(ctx context.Context, userID string) ([]ledger.Badge, error)
}

// Pipeline orchestrates the extract-apply-commit loop.
type Pipeline struct {
	extractor BatchExtractor
	applier   Applier
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	batchSize int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, a Applier, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor: e,
		applier:   a,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has applied at least one
// event, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not applied any feedback yet")
	}
	return nil
}

// Run executes the batch apply loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("feedback pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("feedback pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processBatch runs one extract-apply cycle. Returns false if the pipeline
// should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.FeedbackConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*backoff = 200 * time.Millisecond

	applied := 0
	for _, raw := range rawBatch {
		if p.applyOne(ctx, raw) {
			applied++
		}
		if ctx.Err() != nil {
			return false
		}
	}

	if applied > 0 {
		p.metrics.ApplyDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}
	return true
}

// applyOne parses and applies a single feedback message, then commits its
// offset. Malformed messages are logged, counted, and committed so they are
// never redelivered; ledger failures leave the offset uncommitted for
// redelivery.
func (p *Pipeline) applyOne(ctx context.Context, raw domain.RawFeedback) bool {
	event, err := domain.ParseRawFeedback(raw)
	if err != nil {
		p.logger.Warn("malformed feedback, skipping",
			"error", err,
			"topic", raw.Topic,
			"partition", raw.Partition,
			"offset", raw.Offset,
		)
		p.metrics.FeedbackErrors.Inc()
		p.commitOffset(ctx, raw)
		return false
	}

	result, err := p.applier.AwardPoints(ctx, event)
	if err != nil {
		p.logger.Error("award points failed", "error", err, "user_id", event.UserID)
		p.metrics.FeedbackErrors.Inc()
		return false
	}
	p.metrics.PointsAwarded.Add(float64(result.PointsEarned))

	unlocked, err := p.applier.CheckBadges(ctx, event.UserID)
	if err != nil {
		// Points already landed; badge evaluation will catch up on the
		// user's next event.
		p.logger.Warn("badge check failed", "error", err, "user_id", event.UserID)
	}
	p.metrics.BadgesUnlocked.Add(float64(len(unlocked)))

	p.logger.Debug("feedback applied",
		"user_id", event.UserID,
		"destination_id", event.DestinationID,
		"points", result.PointsEarned,
		"streak", result.Streak,
		"badges", len(unlocked),
	)

	p.commitOffset(ctx, raw)
	return true
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawFeedback) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
