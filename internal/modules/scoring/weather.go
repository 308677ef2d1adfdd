package scoring

import (
	"fmt"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
)

const (
	WeatherFitMin = -8
	WeatherFitMax = 5

	coldThresholdC = 2.0
	hotThresholdC  = 33.0
)

type WeatherOptions struct {
	PreferIndoorOnRain bool
}

type WeatherFit struct {
	ScoreAdjustment int    `json:"scoreAdjustment"`
	Reasoning       string `json:"reasoning"`
}

// ClassifyEnvironment prefers an explicit indoor/outdoor/mixed tag over the
// category table. Unknown categories are mixed.
func (t *Tables) ClassifyEnvironment(loc *places.Location) Environment {
	for _, tag := range loc.TagList() {
		switch Environment(normalize(tag)) {
		case EnvironmentIndoor:
			return EnvironmentIndoor
		case EnvironmentOutdoor:
			return EnvironmentOutdoor
		case EnvironmentMixed:
			return EnvironmentMixed
		}
	}
	if env, ok := t.Environment[loc.NormalizedCategory()]; ok {
		return env
	}
	return EnvironmentMixed
}

func ScoreWeatherFit(loc *places.Location, forecast *weather.Forecast, opts WeatherOptions) WeatherFit {
	return DefaultTables().ScoreWeatherFit(loc, forecast, opts)
}

// ScoreWeatherFit applies the condition delta and, on top of it, the
// temperature-extreme adjustment, then clamps to [WeatherFitMin, WeatherFitMax].
func (t *Tables) ScoreWeatherFit(loc *places.Location, forecast *weather.Forecast, opts WeatherOptions) WeatherFit {
	if loc == nil || forecast == nil {
		return WeatherFit{Reasoning: "No weather forecast available"}
	}
	env := t.ClassifyEnvironment(loc)
	delta, reason := conditionDelta(env, forecast.Condition, opts)

	if tr := forecast.Temperature; tr != nil {
		switch {
		case env == EnvironmentOutdoor && tr.Max < coldThresholdC:
			delta -= 3
			reason = joinReason(reason, fmt.Sprintf("cold day (max %.0f°C) for an outdoor visit", tr.Max))
		case env == EnvironmentIndoor && tr.Min > hotThresholdC:
			delta += 2
			reason = joinReason(reason, fmt.Sprintf("indoor relief from heat (min %.0f°C)", tr.Min))
		}
	}
	if reason == "" {
		reason = fmt.Sprintf("%s weather is neutral for a %s visit", forecast.Condition, env)
	}
	return WeatherFit{ScoreAdjustment: clampInt(delta, WeatherFitMin, WeatherFitMax), Reasoning: reason}
}

func conditionDelta(env Environment, cond weather.Condition, opts WeatherOptions) (int, string) {
	switch {
	case cond.IsWet():
		switch env {
		case EnvironmentOutdoor:
			if opts.PreferIndoorOnRain {
				return -8, fmt.Sprintf("%s expected and indoor alternatives preferred", cond)
			}
			return -5, fmt.Sprintf("%s expected at an outdoor location", cond)
		case EnvironmentMixed:
			return -3, fmt.Sprintf("%s expected, location is partly outdoors", cond)
		default:
			return 5, fmt.Sprintf("indoor option during %s", cond)
		}
	case cond == weather.ConditionSnow:
		switch env {
		case EnvironmentOutdoor:
			return -6, "snow expected at an outdoor location"
		case EnvironmentMixed:
			return -2, "snow expected, location is partly outdoors"
		default:
			return 4, "indoor option during snow"
		}
	case cond == weather.ConditionClear:
		switch env {
		case EnvironmentOutdoor:
			return 2, "clear skies suit an outdoor visit"
		case EnvironmentMixed:
			return 1, "clear skies"
		}
	}
	return 0, ""
}

func joinReason(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
