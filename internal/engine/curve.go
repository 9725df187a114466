package engine

import "time"

// hourShape is a 24-entry multiplier curve indexed by local hour.
type hourShape [24]float64

// StandardCurve is the built-in HourCurve: a handful of category-specific
// daily shapes plus a generic default, with flat weekday/holiday handling
// left to the calendar owner. Categories without a shape of their own use
// the default and report Specific=false.
type StandardCurve struct{}

var defaultShape = hourShape{
	0.2, 0.2, 0.2, 0.2, 0.2, 0.3, // 00-05
	0.4, 0.5, 0.7, 0.9, 1.1, 1.2, // 06-11
	1.2, 1.1, 1.1, 1.2, 1.3, 1.2, // 12-17
	1.0, 0.8, 0.6, 0.4, 0.3, 0.2, // 18-23
}

var categoryShapes = map[string]hourShape{
	"beach": {
		0.1, 0.1, 0.1, 0.1, 0.1, 0.3,
		0.6, 0.9, 1.1, 1.2, 1.2, 1.1,
		0.9, 0.8, 0.9, 1.1, 1.3, 1.4,
		1.2, 0.8, 0.5, 0.3, 0.2, 0.1,
	},
	"museum": {
		0.0, 0.0, 0.0, 0.0, 0.0, 0.0,
		0.0, 0.0, 0.2, 0.8, 1.2, 1.3,
		1.2, 1.1, 1.2, 1.3, 1.2, 0.9,
		0.4, 0.1, 0.0, 0.0, 0.0, 0.0,
	},
	"temple": {
		0.3, 0.2, 0.2, 0.3, 0.8, 1.3,
		1.4, 1.2, 1.0, 0.9, 0.8, 0.8,
		0.7, 0.6, 0.6, 0.7, 0.9, 1.2,
		1.4, 1.2, 0.8, 0.5, 0.4, 0.3,
	},
	"mall": {
		0.0, 0.0, 0.0, 0.0, 0.0, 0.0,
		0.0, 0.0, 0.1, 0.5, 0.9, 1.1,
		1.2, 1.1, 1.0, 1.1, 1.2, 1.3,
		1.4, 1.3, 1.1, 0.7, 0.3, 0.1,
	},
}

// Multiplier returns the curve value for the category at the given time.
func (StandardCurve) Multiplier(category string, at time.Time) float64 {
	shape, ok := categoryShapes[category]
	if !ok {
		shape = defaultShape
	}
	return shape[at.Hour()]
}

// Specific reports whether the category has its own shape.
func (StandardCurve) Specific(category string) bool {
	_, ok := categoryShapes[category]
	return ok
}
