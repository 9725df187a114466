package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wayfaren/crowdpulse/internal/domain"
)

const (
	basePointsQuick    = 5
	basePointsDetailed = 15
	firstFeedbackBonus = 20
	accuracyBonus      = 10
	streakBonusPerDay  = 5
	streakBonusCap     = 25
)

// KeyPrefix namespaces engagement state keys in the shared store.
const KeyPrefix = "crowdpulse:engagement:"

// AwardResult summarizes one AwardPoints call.
type AwardResult struct {
	PointsEarned  int  `json:"points_earned"`
	TotalPoints   int  `json:"total_points"`
	Streak        int  `json:"streak"`
	FirstFeedback bool `json:"first_feedback"`
}

// Ledger converts feedback events into points, streaks, and badge unlocks.
// State is read, mutated, pruned, and re-persisted as one logical step per
// event; it assumes at most one logical writer per user at a time.
type Ledger struct {
	store  Store
	clock  clockwork.Clock
	logger *slog.Logger
}

// New creates a Ledger over the given store and clock.
func New(store Store, clock clockwork.Clock, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, clock: clock, logger: logger}
}

// StateKey returns the storage key for one user's engagement state.
func StateKey(userID string) string {
	return KeyPrefix + userID
}

// load fetches and decodes a user's state, lazily creating the default on
// first access. Corrupted persisted state is discarded and reinitialized;
// that recovery is silent for the caller but logged for diagnostics.
func (l *Ledger) load(ctx context.Context, userID string) (*EngagementState, error) {
	data, found, err := l.store.Get(ctx, StateKey(userID))
	if err != nil {
		return nil, fmt.Errorf("load engagement state: %w", err)
	}
	if !found {
		return NewState(), nil
	}
	state, err := decodeState(data)
	if err != nil {
		l.logger.Warn("corrupted engagement state, reinitializing",
			"user_id", userID, "error", err)
		return NewState(), nil
	}
	return state, nil
}

// persist writes the state back as one atomic unit.
func (l *Ledger) persist(ctx context.Context, userID string, state *EngagementState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode engagement state: %w", err)
	}
	if err := l.store.Set(ctx, StateKey(userID), data); err != nil {
		return fmt.Errorf("persist engagement state: %w", err)
	}
	return nil
}

// AwardPoints applies one feedback event: streak update first, then point
// calculation against the remaining daily allowance, then unconditional
// bookkeeping and retention pruning. The mutated state is persisted before
// returning. Earning zero because the daily cap is reached is steady-state
// behavior, not an error; bookkeeping still advances.
func (l *Ledger) AwardPoints(ctx context.Context, event domain.FeedbackEvent) (AwardResult, error) {
	state, err := l.load(ctx, event.UserID)
	if err != nil {
		return AwardResult{}, err
	}

	now := l.clock.Now().UTC()
	at := event.SubmittedAt
	if at.IsZero() {
		at = now
	}
	at = at.UTC()
	today := domain.DayKey(at)
	yesterday := domain.DayKey(at.AddDate(0, 0, -1))

	firstFeedback := state.TotalFeedbacks == 0

	// Streak update precedes point calculation: the streak bonus below is
	// computed from the already-updated streak.
	switch state.LastFeedbackDate {
	case today:
		// Same-day repeat, streak unchanged.
	case yesterday:
		state.StreakDays++
	default:
		state.StreakDays = 1
	}
	if state.StreakDays > state.LongestStreak {
		state.LongestStreak = state.StreakDays
	}
	state.LastFeedbackDate = today

	points := basePointsQuick
	if event.Kind == domain.FeedbackDetailed {
		points = basePointsDetailed
	}
	if firstFeedback {
		points += firstFeedbackBonus
	}
	if event.Accurate {
		points += accuracyBonus
	}
	points += min(state.StreakDays*streakBonusPerDay, streakBonusCap)

	day := state.dayStats(today)
	remaining := DailyCap - day.Points
	earned := max(0, min(points, remaining))

	state.TotalPoints += earned
	state.TotalFeedbacks++
	day.Points += earned
	day.Feedbacks++
	day.Destinations.Add(event.DestinationID)
	state.UniqueDestinations.Add(event.DestinationID)
	if wd := at.Weekday(); wd == time.Saturday || wd == time.Sunday {
		state.WeekendFeedbacks++
	}
	if event.Accurate {
		state.AccurateFeedbacks++
	}
	state.History = append(state.History, FeedbackRecord{
		EventID:       event.ID,
		Timestamp:     at,
		DestinationID: event.DestinationID,
		Predicted:     event.Predicted,
		Reported:      event.Reported,
		Accurate:      event.Accurate,
		PointsEarned:  earned,
	})

	state.prune(now)

	if err := l.persist(ctx, event.UserID, state); err != nil {
		return AwardResult{}, err
	}

	return AwardResult{
		PointsEarned:  earned,
		TotalPoints:   state.TotalPoints,
		Streak:        state.StreakDays,
		FirstFeedback: firstFeedback,
	}, nil
}
