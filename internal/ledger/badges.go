package ledger

import "context"

// CriteriaKind names one of the badge unlock predicates.
type CriteriaKind string

const (
	CriteriaTotalFeedbacks     CriteriaKind = "total_feedbacks"
	CriteriaWeekendFeedbacks   CriteriaKind = "weekend_feedbacks"
	CriteriaAccuracyConfirmed  CriteriaKind = "accuracy_confirmed"
	CriteriaUniqueDestinations CriteriaKind = "unique_destinations"
	CriteriaStreakDays         CriteriaKind = "streak_days"
	CriteriaAccuracyRate       CriteriaKind = "accuracy_rate"
)

// Badge is one catalog entry. Threshold is the criteria's minimum value;
// for accuracy_rate it is a percentage and MinSample guards against tiny
// denominators.
type Badge struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Kind        CriteriaKind `json:"kind"`
	Threshold   int          `json:"threshold"`
	MinSample   int          `json:"min_sample,omitempty"`
}

// catalog is the fixed badge set, evaluated and unlocked in declared order.
var catalog = []Badge{
	{ID: "first_steps", Name: "First Steps", Description: "Submit your first feedback", Kind: CriteriaTotalFeedbacks, Threshold: 1},
	{ID: "regular_reporter", Name: "Regular Reporter", Description: "Submit 25 feedback reports", Kind: CriteriaTotalFeedbacks, Threshold: 25},
	{ID: "weekend_wanderer", Name: "Weekend Wanderer", Description: "Report on 10 weekend days", Kind: CriteriaWeekendFeedbacks, Threshold: 10},
	{ID: "sharp_eye", Name: "Sharp Eye", Description: "Have 10 reports confirmed accurate", Kind: CriteriaAccuracyConfirmed, Threshold: 10},
	{ID: "explorer", Name: "Explorer", Description: "Report from 10 distinct destinations", Kind: CriteriaUniqueDestinations, Threshold: 10},
	{ID: "week_streak", Name: "Week Streak", Description: "Report 7 days in a row", Kind: CriteriaStreakDays, Threshold: 7},
	{ID: "monthly_devotee", Name: "Monthly Devotee", Description: "Report 30 days in a row", Kind: CriteriaStreakDays, Threshold: 30},
	{ID: "trusted_scout", Name: "Trusted Scout", Description: "Keep 80% accuracy over 20+ reports", Kind: CriteriaAccuracyRate, Threshold: 80, MinSample: 20},
}

// Catalog returns the full badge catalog in declared order.
func Catalog() []Badge {
	out := make([]Badge, len(catalog))
	copy(out, catalog)
	return out
}

// BadgeByID looks up a catalog entry. Unknown identifiers report absent,
// not an error.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// satisfied evaluates the badge's criteria against accumulated state.
func (b Badge) satisfied(state *EngagementState) bool {
	switch b.Kind {
	case CriteriaTotalFeedbacks:
		return state.TotalFeedbacks >= b.Threshold
	case CriteriaWeekendFeedbacks:
		return state.WeekendFeedbacks >= b.Threshold
	case CriteriaAccuracyConfirmed:
		return state.AccurateFeedbacks >= b.Threshold
	case CriteriaUniqueDestinations:
		return len(state.UniqueDestinations) >= b.Threshold
	case CriteriaStreakDays:
		return state.StreakDays >= b.Threshold
	case CriteriaAccuracyRate:
		if state.TotalFeedbacks < b.MinSample {
			return false
		}
		rate := float64(state.AccurateFeedbacks) / float64(state.TotalFeedbacks) * 100
		return rate >= float64(b.Threshold)
	default:
		return false
	}
}

// CheckBadges evaluates the full catalog against the user's state and
// returns only newly unlocked badges, in catalog order. Already unlocked
// badges are skipped, so back-to-back calls without intervening state
// changes return nothing. Unlock membership is monotone; new unlocks are
// appended to both the unlocked set and the pending-acknowledgment queue
// and persisted before returning.
func (l *Ledger) CheckBadges(ctx context.Context, userID string) ([]Badge, error) {
	state, err := l.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	var unlocked []Badge
	for _, b := range catalog {
		if state.Badges.Contains(b.ID) {
			continue
		}
		if !b.satisfied(state) {
			continue
		}
		state.Badges.Add(b.ID)
		state.PendingBadges = append(state.PendingBadges, b.ID)
		unlocked = append(unlocked, b)
	}

	if len(unlocked) == 0 {
		return nil, nil
	}
	if err := l.persist(ctx, userID, state); err != nil {
		return nil, err
	}
	return unlocked, nil
}

// ListEarned returns the user's unlocked badges in catalog order.
func (l *Ledger) ListEarned(ctx context.Context, userID string) ([]Badge, error) {
	state, err := l.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	var earned []Badge
	for _, b := range catalog {
		if state.Badges.Contains(b.ID) {
			earned = append(earned, b)
		}
	}
	return earned, nil
}

// ListPending returns unlocked-but-not-yet-acknowledged badges in unlock
// order. Pending identifiers missing from the catalog are skipped.
func (l *Ledger) ListPending(ctx context.Context, userID string) ([]Badge, error) {
	state, err := l.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	var pending []Badge
	for _, id := range state.PendingBadges {
		if b, ok := BadgeByID(id); ok {
			pending = append(pending, b)
		}
	}
	return pending, nil
}

// AcknowledgePending clears the pending queue without touching the
// unlocked set. It is purely a "has this been shown" marker.
func (l *Ledger) AcknowledgePending(ctx context.Context, userID string) error {
	state, err := l.load(ctx, userID)
	if err != nil {
		return err
	}
	if len(state.PendingBadges) == 0 {
		return nil
	}
	state.PendingBadges = nil
	return l.persist(ctx, userID, state)
}
