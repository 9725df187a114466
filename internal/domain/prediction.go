package domain

import "math"

// PredictionFactors records which corroborating signals were active for a
// prediction. Used only for confidence accounting and UI display.
type PredictionFactors struct {
	Holiday  bool `json:"holiday"`
	Festival bool `json:"festival"`
	Weather  bool `json:"weather"`
}

// PredictionResult is the fused crowd estimate for one destination.
// VisitorEstimate is absent (zero with Level==closed) when the destination
// is closed, and ClosedMessage is present iff Level==closed.
type PredictionResult struct {
	Level           CrowdLevel        `json:"level"`
	Confidence      int               `json:"confidence"` // [65,75]
	ClosedMessage   string            `json:"closed_message,omitempty"`
	VisitorEstimate int               `json:"visitor_estimate,omitempty"`
	Factors         PredictionFactors `json:"factors"`
}

const (
	confidenceFloor = 65
	confidenceCap   = 75

	defaultAvgVisitors = 5000
)

// ConfidenceSignals enumerates everything that can raise confidence above
// the floor.
type ConfidenceSignals struct {
	Holiday        bool
	Festival       bool
	Weather        bool
	SpecificCurve  bool
	KnownHours     bool
	KnownClosedDay bool
}

// ComputeConfidence applies the bonus schedule over the 65 floor and caps
// the total at 75. Each bonus applies independently and at most once.
func ComputeConfidence(s ConfidenceSignals) int {
	confidence := confidenceFloor
	if s.Holiday {
		confidence += 3
	}
	if s.Festival {
		confidence += 2
	}
	if s.Weather {
		confidence += 1
	}
	if s.SpecificCurve {
		confidence += 3
	}
	if s.KnownHours {
		confidence += 2
	}
	if s.KnownClosedDay {
		confidence += 2
	}
	if confidence > confidenceCap {
		return confidenceCap
	}
	return confidence
}

// EstimateVisitors returns a deterministic visitor estimate for a
// destination at a given local hour. Determinism over (id, hour) keeps the
// figure stable across repeated evaluations within the same hour.
func EstimateVisitors(id, hour, avgVisitors int) int {
	if avgVisitors <= 0 {
		avgVisitors = defaultAvgVisitors
	}

	timeMultiplier := 0.7
	if hour >= 10 && hour <= 16 {
		timeMultiplier = 1.3
	}

	seed := float64((id*9301+hour*49297)%233280) / 233280
	const variance = 0.2

	return int(math.Round(float64(avgVisitors) * timeMultiplier * (1 + (seed-0.5)*variance)))
}
