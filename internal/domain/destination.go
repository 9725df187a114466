package domain

import (
	"strings"
	"time"
)

// CrowdLevel is a discrete crowding bucket.
type CrowdLevel string

const (
	LevelLow         CrowdLevel = "low"
	LevelModerate    CrowdLevel = "moderate"
	LevelHeavy       CrowdLevel = "heavy"
	LevelOvercrowded CrowdLevel = "overcrowded"
	LevelClosed      CrowdLevel = "closed"
)

// DestinationSnapshot is an immutable view of one catalog destination at
// evaluation time.
type DestinationSnapshot struct {
	ID        int     `json:"id"`
	Name      string  `json:"name,omitempty"`
	Category  string  `json:"category"`
	BaseLevel float64 `json:"base_level"` // 0-100

	// Optional operating constraints. OpenHour/CloseHour are local hours
	// [0,23]; both must be set for hours to count as known.
	OpenHour  *int          `json:"open_hour,omitempty"`
	CloseHour *int          `json:"close_hour,omitempty"`
	ClosedDay *time.Weekday `json:"closed_day,omitempty"`

	// AvgVisitors is the catalog's daily-average visitor baseline.
	// Zero means unknown; estimates fall back to a 5000 default.
	AvgVisitors int `json:"avg_visitors,omitempty"`
}

// NormalizeCategory lower-cases and trims a free-form category tag.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// HasOperatingHours reports whether both open and close hours are known.
func (d DestinationSnapshot) HasOperatingHours() bool {
	return d.OpenHour != nil && d.CloseHour != nil
}

// categorical base levels normalized to score midpoints.
var categoricalLevels = map[string]float64{
	"low":         20,
	"moderate":    45,
	"heavy":       70,
	"overcrowded": 90,
}

// NormalizeBaseLevel converts a categorical crowd label to its numeric
// midpoint. Unknown labels fall back to moderate.
func NormalizeBaseLevel(label string) float64 {
	if v, ok := categoricalLevels[NormalizeCategory(label)]; ok {
		return v
	}
	return categoricalLevels["moderate"]
}

// BucketLevel maps a clamped 0-100 working score to its discrete bucket.
func BucketLevel(score float64) CrowdLevel {
	switch {
	case score < 30:
		return LevelLow
	case score < 60:
		return LevelModerate
	case score < 85:
		return LevelHeavy
	default:
		return LevelOvercrowded
	}
}

// ClampScore bounds a working crowd score to [0,100].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// DayKey formats a time as a UTC calendar-date key.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
