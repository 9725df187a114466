package domain

import "strings"

// WeatherObservation is a raw weather reading for a destination's locale.
// Only the free-text condition feeds the multiplier lookup; temperature is
// carried for display.
type WeatherObservation struct {
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
}

// WeatherClass is one of the six condition classes used for multiplier lookup.
type WeatherClass string

const (
	WeatherClear     WeatherClass = "CLEAR"
	WeatherCloudy    WeatherClass = "CLOUDY"
	WeatherRain      WeatherClass = "RAIN"
	WeatherHeavyRain WeatherClass = "HEAVY_RAIN"
	WeatherSnow      WeatherClass = "SNOW"
	WeatherExtreme   WeatherClass = "EXTREME"
)

// weatherKeywords is tested in declaration order; the first class containing
// a matching keyword wins. RAIN deliberately lists only light-rain phrases so
// "heavy rain" falls through to HEAVY_RAIN, whose bare "rain" keyword then
// also catches unqualified rain conditions.
var weatherKeywords = []struct {
	class    WeatherClass
	keywords []string
}{
	{WeatherClear, []string{"clear", "sunny", "fair", "bright"}},
	{WeatherCloudy, []string{"cloud", "overcast", "haze", "mist", "fog"}},
	{WeatherRain, []string{"drizzle", "light rain", "shower", "sprinkle"}},
	{WeatherHeavyRain, []string{"heavy rain", "downpour", "torrential", "thunder", "rain"}},
	{WeatherSnow, []string{"snow", "sleet", "blizzard", "flurr"}},
	{WeatherExtreme, []string{"hurricane", "cyclone", "tornado", "hail", "typhoon", "extreme"}},
}

// ClassifyWeather maps a free-text condition to a weather class.
// Empty or unmatched input classifies as CLEAR.
func ClassifyWeather(condition string) WeatherClass {
	lowered := strings.ToLower(strings.TrimSpace(condition))
	if lowered == "" {
		return WeatherClear
	}
	for _, entry := range weatherKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lowered, kw) {
				return entry.class
			}
		}
	}
	return WeatherClear
}

// defaultWeatherTable applies to destination categories with no table of
// their own, and backfills classes missing from category tables.
var defaultWeatherTable = map[WeatherClass]float64{
	WeatherClear:     1.0,
	WeatherCloudy:    0.95,
	WeatherRain:      0.7,
	WeatherHeavyRain: 0.4,
	WeatherSnow:      0.5,
	WeatherExtreme:   0.2,
}

// categoryWeatherTables holds per-category multipliers. Outdoor categories
// empty out in bad weather; indoor categories absorb the displaced crowds.
var categoryWeatherTables = map[string]map[WeatherClass]float64{
	"beach": {
		WeatherClear:     1.2,
		WeatherCloudy:    0.9,
		WeatherRain:      0.5,
		WeatherHeavyRain: 0.2,
		WeatherSnow:      0.3,
		WeatherExtreme:   0.1,
	},
	"park": {
		WeatherClear:     1.15,
		WeatherCloudy:    0.95,
		WeatherRain:      0.5,
		WeatherHeavyRain: 0.25,
		WeatherSnow:      0.4,
		WeatherExtreme:   0.1,
	},
	"trek": {
		WeatherClear:     1.1,
		WeatherCloudy:    1.0,
		WeatherRain:      0.4,
		WeatherHeavyRain: 0.15,
		WeatherSnow:      0.6,
		WeatherExtreme:   0.1,
	},
	"waterfall": {
		WeatherClear:     1.0,
		WeatherCloudy:    1.0,
		WeatherRain:      1.2,
		WeatherHeavyRain: 0.6,
		WeatherSnow:      0.5,
		WeatherExtreme:   0.1,
	},
	"museum": {
		WeatherClear:     1.0,
		WeatherCloudy:    1.05,
		WeatherRain:      1.3,
		WeatherHeavyRain: 1.4,
		WeatherSnow:      1.2,
		WeatherExtreme:   0.6,
	},
	"mall": {
		WeatherClear:     1.0,
		WeatherCloudy:    1.05,
		WeatherRain:      1.25,
		WeatherHeavyRain: 1.35,
		WeatherSnow:      1.2,
		WeatherExtreme:   0.7,
	},
	"temple": {
		WeatherClear:     1.0,
		WeatherCloudy:    1.0,
		WeatherRain:      0.8,
		WeatherHeavyRain: 0.5,
		WeatherSnow:      0.6,
		WeatherExtreme:   0.3,
	},
}

// ResolveWeatherMultiplier returns the crowd multiplier for a destination
// category under the given free-text condition. Unknown categories use the
// default table; classes missing from a category table fall back to the
// default table; fully unresolved lookups return 1.0. Never fails.
func ResolveWeatherMultiplier(category, condition string) float64 {
	class := ClassifyWeather(condition)

	table, ok := categoryWeatherTables[NormalizeCategory(category)]
	if ok {
		if mult, ok := table[class]; ok {
			return mult
		}
	}
	if mult, ok := defaultWeatherTable[class]; ok {
		return mult
	}
	return 1.0
}
