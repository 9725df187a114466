package domain

import "time"

// MaxFestivalImpact caps festival impact multipliers. Source data is
// unbounded; anything above the cap is clamped downstream.
const MaxFestivalImpact = 2.5

// Festival is one read-only reference record. Start and end dates are
// inclusive calendar dates with no time component.
type Festival struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	StartDate    string  `json:"start_date"` // "2006-01-02"
	EndDate      string  `json:"end_date"`   // "2006-01-02"
	Impact       float64 `json:"impact"`
	Destinations []int   `json:"destinations"`
}

// ActiveOn reports whether the festival is active on the given date,
// inclusive of both endpoints. Unparsable festival dates report inactive.
func (f Festival) ActiveOn(date time.Time) bool {
	start, err := time.Parse("2006-01-02", f.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse("2006-01-02", f.EndDate)
	if err != nil {
		return false
	}
	day, err := time.Parse("2006-01-02", DayKey(date))
	if err != nil {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

// Affects reports whether the festival's destination set contains id.
func (f Festival) Affects(id int) bool {
	for _, d := range f.Destinations {
		if d == id {
			return true
		}
	}
	return false
}
