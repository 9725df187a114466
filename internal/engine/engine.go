// Package engine fuses base crowd levels with weather, festival, and
// calendar signals into a prediction.
package engine

import (
	"fmt"
	"time"

	"github.com/wayfaren/crowdpulse/internal/domain"
)

// FestivalResolver answers festival-impact queries. Implemented by
// festival.Resolver.
type FestivalResolver interface {
	DestinationImpact(destinationID int, date time.Time) float64
}

// HourCurve supplies the category-specific time-of-day multiplier. The
// combination order and weighting of holiday/seasonal/day-of-week effects
// are owned by the curve, not by this engine. Specific reports whether the
// category has its own curve rather than the default one.
type HourCurve interface {
	Multiplier(category string, at time.Time) float64
	Specific(category string) bool
}

// CalendarContext carries the externally computed calendar signals for one
// evaluation: the active holiday label (empty when none) and the hour
// curve collaborator.
type CalendarContext struct {
	Holiday string
	Curve   HourCurve
	Now     time.Time
}

// Engine is the crowd-signal fusion engine. Pure computation over its
// inputs and the resolvers' reference state; no side effects.
type Engine struct {
	festivals FestivalResolver
}

// New creates an Engine over the given festival resolver.
func New(festivals FestivalResolver) *Engine {
	return &Engine{festivals: festivals}
}

// Predict fuses the destination's base level with the weather, festival,
// and calendar signals into a PredictionResult.
func (e *Engine) Predict(snap domain.DestinationSnapshot, weather domain.WeatherObservation, cal CalendarContext) domain.PredictionResult {
	if msg, closed := closedMessage(snap, cal.Now); closed {
		return domain.PredictionResult{
			Level:         domain.LevelClosed,
			Confidence:    closedConfidence(snap, cal),
			ClosedMessage: msg,
		}
	}

	category := domain.NormalizeCategory(snap.Category)
	weatherMult := domain.ResolveWeatherMultiplier(category, weather.Condition)
	festivalMult := e.festivals.DestinationImpact(snap.ID, cal.Now)
	curveMult := 1.0
	if cal.Curve != nil {
		curveMult = cal.Curve.Multiplier(category, cal.Now)
	}

	score := domain.ClampScore(snap.BaseLevel * curveMult * weatherMult * festivalMult)

	factors := domain.PredictionFactors{
		Holiday:  cal.Holiday != "",
		Festival: festivalMult != 1.0,
		Weather:  weatherMult != 1.0,
	}

	return domain.PredictionResult{
		Level:      domain.BucketLevel(score),
		Confidence: confidence(snap, cal, factors),
		VisitorEstimate: domain.EstimateVisitors(
			snap.ID, cal.Now.Hour(), snap.AvgVisitors,
		),
		Factors: factors,
	}
}

func confidence(snap domain.DestinationSnapshot, cal CalendarContext, factors domain.PredictionFactors) int {
	specific := false
	if cal.Curve != nil {
		specific = cal.Curve.Specific(domain.NormalizeCategory(snap.Category))
	}
	return domain.ComputeConfidence(domain.ConfidenceSignals{
		Holiday:        factors.Holiday,
		Festival:       factors.Festival,
		Weather:        factors.Weather,
		SpecificCurve:  specific,
		KnownHours:     snap.HasOperatingHours(),
		KnownClosedDay: snap.ClosedDay != nil,
	})
}

// closedConfidence keeps the confidence accounting consistent for closed
// results: only the structural signals (curve, hours, closure day) apply
// since no crowd signals were consulted.
func closedConfidence(snap domain.DestinationSnapshot, cal CalendarContext) int {
	specific := false
	if cal.Curve != nil {
		specific = cal.Curve.Specific(domain.NormalizeCategory(snap.Category))
	}
	return domain.ComputeConfidence(domain.ConfidenceSignals{
		SpecificCurve:  specific,
		KnownHours:     snap.HasOperatingHours(),
		KnownClosedDay: snap.ClosedDay != nil,
	})
}

// closedMessage reports whether the destination is closed right now, with
// an explanatory message for display. Both the weekly closure day and the
// operating hours are evaluated in the supplied time's location, which the
// caller is expected to set to the destination's local zone.
func closedMessage(snap domain.DestinationSnapshot, now time.Time) (string, bool) {
	if snap.ClosedDay != nil && now.Weekday() == *snap.ClosedDay {
		return fmt.Sprintf("Closed on %ss", snap.ClosedDay.String()), true
	}
	if snap.HasOperatingHours() {
		hour := now.Hour()
		if hour < *snap.OpenHour || hour >= *snap.CloseHour {
			return fmt.Sprintf("Open %02d:00-%02d:00", *snap.OpenHour, *snap.CloseHour), true
		}
	}
	return "", false
}
