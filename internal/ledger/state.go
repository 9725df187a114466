// Package ledger accumulates user feedback into points, streaks, and badge
// unlocks, persisted as one JSON blob per user in a key-value store.
package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/wayfaren/crowdpulse/internal/domain"
)

const (
	// DailyCap is the maximum points a user can earn per UTC calendar day.
	DailyCap = 50
	// HistoryLimit bounds the feedback history, oldest entries dropped first.
	HistoryLimit = 100
	// RetentionDays bounds per-day stat entries relative to the mutation time.
	RetentionDays = 30
)

// IntSet is a set of destination identifiers. It serializes as a sorted
// list and deduplicates on load; membership order is not significant.
type IntSet map[int]struct{}

func (s IntSet) Add(v int)           { s[v] = struct{}{} }
func (s IntSet) Contains(v int) bool { _, ok := s[v]; return ok }

func (s IntSet) MarshalJSON() ([]byte, error) {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Ints(out)
	return json.Marshal(out)
}

func (s *IntSet) UnmarshalJSON(data []byte) error {
	var list []int
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = make(IntSet, len(list))
	for _, v := range list {
		(*s)[v] = struct{}{}
	}
	return nil
}

// StringSet is a set of badge identifiers with the same ordered-list
// serialization contract as IntSet.
type StringSet map[string]struct{}

func (s StringSet) Add(v string)           { s[v] = struct{}{} }
func (s StringSet) Contains(v string) bool { _, ok := s[v]; return ok }

func (s StringSet) MarshalJSON() ([]byte, error) {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return json.Marshal(out)
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = make(StringSet, len(list))
	for _, v := range list {
		(*s)[v] = struct{}{}
	}
	return nil
}

// DayStats is one UTC day's earning record.
type DayStats struct {
	Points       int    `json:"points"`
	Feedbacks    int    `json:"feedbacks"`
	Destinations IntSet `json:"destinations"`
}

// FeedbackRecord is one bounded-history entry.
type FeedbackRecord struct {
	EventID       string            `json:"event_id,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	DestinationID int               `json:"destination_id"`
	Predicted     domain.CrowdLevel `json:"predicted_level"`
	Reported      domain.CrowdLevel `json:"reported_level"`
	Accurate      bool              `json:"accurate"`
	PointsEarned  int               `json:"points_earned"`
}

// EngagementState is the per-user accumulator. One instance per user,
// lazily created on first access, mutated and re-persisted atomically as
// one logical step per feedback event.
type EngagementState struct {
	TotalPoints        int                  `json:"total_points"`
	TotalFeedbacks     int                  `json:"total_feedbacks"`
	StreakDays         int                  `json:"streak_days"`
	LongestStreak      int                  `json:"longest_streak"`
	LastFeedbackDate   string               `json:"last_feedback_date,omitempty"` // "2006-01-02"
	DailyStats         map[string]*DayStats `json:"daily_stats"`
	History            []FeedbackRecord     `json:"history"`
	UniqueDestinations IntSet               `json:"unique_destinations"`
	WeekendFeedbacks   int                  `json:"weekend_feedbacks"`
	AccurateFeedbacks  int                  `json:"accurate_feedbacks"`
	Badges             StringSet            `json:"badges"`
	PendingBadges      []string             `json:"pending_badges"`
}

// NewState returns the all-zero/empty default state.
func NewState() *EngagementState {
	return &EngagementState{
		DailyStats:         make(map[string]*DayStats),
		UniqueDestinations: make(IntSet),
		Badges:             make(StringSet),
	}
}

// dayStats returns the record for a day key, creating it if absent.
func (s *EngagementState) dayStats(key string) *DayStats {
	if s.DailyStats == nil {
		s.DailyStats = make(map[string]*DayStats)
	}
	ds, ok := s.DailyStats[key]
	if !ok {
		ds = &DayStats{Destinations: make(IntSet)}
		s.DailyStats[key] = ds
	}
	return ds
}

// prune enforces the retention rules relative to now: the history is
// truncated to the most recent HistoryLimit entries and day records older
// than RetentionDays are deleted. An unparsable day key is treated as
// stale and deleted.
func (s *EngagementState) prune(now time.Time) {
	if excess := len(s.History) - HistoryLimit; excess > 0 {
		s.History = append(s.History[:0:0], s.History[excess:]...)
	}

	cutoff := now.UTC().AddDate(0, 0, -RetentionDays)
	for key := range s.DailyStats {
		day, err := time.Parse("2006-01-02", key)
		if err != nil || day.Before(cutoff) {
			delete(s.DailyStats, key)
		}
	}
}

// decodeState parses persisted state, normalizing any nil collections so
// callers never touch a nil map.
func decodeState(data []byte) (*EngagementState, error) {
	var state EngagementState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode engagement state: %w", err)
	}
	if state.DailyStats == nil {
		state.DailyStats = make(map[string]*DayStats)
	}
	for _, ds := range state.DailyStats {
		if ds.Destinations == nil {
			ds.Destinations = make(IntSet)
		}
	}
	if state.UniqueDestinations == nil {
		state.UniqueDestinations = make(IntSet)
	}
	if state.Badges == nil {
		state.Badges = make(StringSet)
	}
	return &state, nil
}
