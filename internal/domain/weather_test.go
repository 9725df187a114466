package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWeather(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		expected  WeatherClass
	}{
		{"sunny", "Sunny", WeatherClear},
		{"clear sky", "clear sky", WeatherClear},
		{"overcast", "Overcast", WeatherCloudy},
		{"partly cloudy", "Partly cloudy", WeatherCloudy},
		{"morning fog", "morning fog", WeatherCloudy},
		{"drizzle", "patchy light drizzle", WeatherRain},
		{"light rain", "light rain", WeatherRain},
		{"rain shower", "rain shower", WeatherRain},
		{"heavy rain", "heavy rain", WeatherHeavyRain},
		{"bare rain falls through to heavy", "rain", WeatherHeavyRain},
		{"thunderstorm", "thunderstorm with rain", WeatherHeavyRain},
		{"downpour", "sudden downpour", WeatherHeavyRain},
		{"snow", "light snow", WeatherSnow},
		{"blizzard", "blizzard conditions", WeatherSnow},
		{"hail", "hail storm", WeatherExtreme},
		{"cyclone", "cyclone warning", WeatherExtreme},
		{"empty", "", WeatherClear},
		{"whitespace", "   ", WeatherClear},
		{"gibberish", "xyzzy", WeatherClear},
		{"mixed case", "HEAVY RAIN", WeatherHeavyRain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyWeather(tt.condition))
		})
	}
}

func TestClassifyWeather_DeclaredOrderWins(t *testing.T) {
	// CLOUDY is tested before HEAVY_RAIN, so a condition mentioning both
	// classifies by the earlier class.
	assert.Equal(t, WeatherCloudy, ClassifyWeather("overcast with heavy rain"))
	// EXTREME's "hail" loses to HEAVY_RAIN when "rain" appears too.
	assert.Equal(t, WeatherHeavyRain, ClassifyWeather("rain and hail"))
}

func TestResolveWeatherMultiplier_DeclaredTables(t *testing.T) {
	for category, table := range categoryWeatherTables {
		for class, want := range table {
			got := ResolveWeatherMultiplier(category, conditionFor(class))
			assert.Equal(t, want, got, "category=%s class=%s", category, class)
		}
	}
}

func TestResolveWeatherMultiplier_DefaultTable(t *testing.T) {
	for class, want := range defaultWeatherTable {
		got := ResolveWeatherMultiplier("speakeasy", conditionFor(class))
		assert.Equal(t, want, got, "class=%s", class)
	}
}

func TestResolveWeatherMultiplier(t *testing.T) {
	t.Run("beach in heavy rain empties out", func(t *testing.T) {
		assert.Equal(t, 0.2, ResolveWeatherMultiplier("beach", "heavy rain"))
	})

	t.Run("category is normalized", func(t *testing.T) {
		assert.Equal(t, 0.2, ResolveWeatherMultiplier("  Beach ", "heavy rain"))
	})

	t.Run("museum fills up in rain", func(t *testing.T) {
		assert.Greater(t, ResolveWeatherMultiplier("museum", "heavy rain"), 1.0)
	})

	t.Run("missing condition is neutral clear", func(t *testing.T) {
		assert.Equal(t, 1.2, ResolveWeatherMultiplier("beach", ""))
	})
}

// conditionFor returns a condition string that classifies as the given class.
func conditionFor(class WeatherClass) string {
	switch class {
	case WeatherClear:
		return "sunny"
	case WeatherCloudy:
		return "overcast"
	case WeatherRain:
		return "drizzle"
	case WeatherHeavyRain:
		return "heavy rain"
	case WeatherSnow:
		return "snow"
	default:
		return "cyclone"
	}
}
