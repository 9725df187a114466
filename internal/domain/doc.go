// Package domain models travel-destination crowd signals and user feedback.
//
// # Crowd Levels
//
// Crowding is summarized as a discrete bucket drawn from a closed set:
//
//	low | moderate | heavy | overcrowded | closed
//
// A destination's base crowd level is a numeric 0-100 score. Upstream
// catalog data sometimes ships the categorical form instead; those values
// are normalized to fixed midpoints (low=20, moderate=45, heavy=70,
// overcrowded=90) before fusion. After applying the hour-of-day curve and
// the weather and festival multipliers, the working score is clamped back
// to [0,100] and bucketed:
//
//	<30 low | <60 moderate | <85 heavy | >=85 overcrowded
//
// # Weather Classification
//
// Free-text weather conditions (e.g. "patchy light drizzle", "heavy rain
// with thunder") are classified into one of six weather classes by keyword
// containment, tested in a fixed declared order:
//
//	CLEAR, CLOUDY, RAIN, HEAVY_RAIN, SNOW, EXTREME
//
// The first class with a matching keyword wins, so keyword lists for
// earlier classes must not contain substrings of later classes' phrases
// ("drizzle" and "light rain" classify as RAIN while "heavy rain" falls
// through to HEAVY_RAIN). Empty or unmatched input classifies as CLEAR.
//
// # Confidence
//
// Prediction confidence is an integer in [65,75]. It starts at the 65
// floor and earns independent one-shot bonuses per corroborating signal:
// +3 holiday, +2 festival, +1 weather, +3 category-specific hourly curve,
// +2 known operating hours, +2 known weekly closure day, capped at 75.
//
// # Deterministic Visitor Estimates
//
// Visitor-count estimates must not flicker when the same destination is
// evaluated twice within the same hour, so the estimate is a pure function
// of (destination id, local hour) with no wall-clock entropy:
//
//	seed = ((id*9301 + hour*49297) mod 233280) / 233280
//	mult = 1.3 if 10 <= hour <= 16, else 0.7
//	estimate = round(baseAvg * mult * (1 + (seed-0.5)*0.2))
//
// baseAvg defaults to 5000 when the catalog carries no average. See
// [EstimateVisitors].
//
// # Calendar Policy
//
// Engagement bookkeeping (day keys, streaks, weekend detection) uses UTC;
// day keys are formatted as "2006-01-02". Destination closure checks
// (weekly closure day, operating hours) are evaluated in the local time
// supplied by the caller, since catalog hours are destination-local.
package domain
