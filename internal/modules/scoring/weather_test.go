package scoring

import (
	"testing"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
)

func testLocation(category string, tags ...string) *places.Location {
	loc := &places.Location{ID: "loc-" + category, Name: category, City: "Kyoto", Category: category}
	if len(tags) > 0 {
		loc.Tags = places.StringList(tags...)
	}
	return loc
}

func forecast(cond weather.Condition, temps ...float64) *weather.Forecast {
	f := &weather.Forecast{Date: "2026-04-01", Condition: cond}
	if len(temps) == 2 {
		f.Temperature = &weather.TemperatureRange{Min: temps[0], Max: temps[1]}
	}
	return f
}

func TestScoreWeatherFitParkInRain(t *testing.T) {
	got := ScoreWeatherFit(testLocation("park"), forecast(weather.ConditionRain), WeatherOptions{})
	if got.ScoreAdjustment != -5 {
		t.Fatalf("park in rain: want=-5 got=%d", got.ScoreAdjustment)
	}
}

func TestScoreWeatherFitIndoorTagOverridesCategory(t *testing.T) {
	got := ScoreWeatherFit(testLocation("park", "indoor"), forecast(weather.ConditionRain), WeatherOptions{})
	if got.ScoreAdjustment != 5 {
		t.Fatalf("indoor-tagged park in rain: want=5 got=%d", got.ScoreAdjustment)
	}
}

func TestScoreWeatherFitNoForecast(t *testing.T) {
	got := ScoreWeatherFit(testLocation("park"), nil, WeatherOptions{PreferIndoorOnRain: true})
	if got.ScoreAdjustment != 0 {
		t.Fatalf("no forecast: want=0 got=%d", got.ScoreAdjustment)
	}
	if got.Reasoning == "" {
		t.Fatalf("no forecast: want a reasoning string")
	}
}

func TestScoreWeatherFitRules(t *testing.T) {
	cases := []struct {
		name string
		loc  *places.Location
		f    *weather.Forecast
		opts WeatherOptions
		want int
	}{
		{"outdoor rain prefer indoor", testLocation("shrine"), forecast(weather.ConditionRain), WeatherOptions{PreferIndoorOnRain: true}, -8},
		{"outdoor drizzle", testLocation("garden"), forecast(weather.ConditionDrizzle), WeatherOptions{}, -5},
		{"mixed thunderstorm", testLocation("market"), forecast(weather.ConditionThunderstorm), WeatherOptions{}, -3},
		{"indoor rain", testLocation("museum"), forecast(weather.ConditionRain), WeatherOptions{}, 5},
		{"outdoor snow", testLocation("viewpoint"), forecast(weather.ConditionSnow), WeatherOptions{}, -6},
		{"mixed snow", testLocation("landmark"), forecast(weather.ConditionSnow), WeatherOptions{}, -2},
		{"indoor snow", testLocation("restaurant"), forecast(weather.ConditionSnow), WeatherOptions{}, 4},
		{"outdoor clear", testLocation("nature"), forecast(weather.ConditionClear), WeatherOptions{}, 2},
		{"mixed clear", testLocation("wellness"), forecast(weather.ConditionClear), WeatherOptions{}, 1},
		{"indoor clear", testLocation("shopping"), forecast(weather.ConditionClear), WeatherOptions{}, 0},
		{"cloudy is neutral", testLocation("park"), forecast(weather.ConditionCloudy), WeatherOptions{}, 0},
		{"unknown category is mixed", testLocation("spaceport"), forecast(weather.ConditionRain), WeatherOptions{}, -3},
		{"outdoor cold clear", testLocation("park"), forecast(weather.ConditionClear, -4, 1), WeatherOptions{}, -1},
		{"outdoor cold snow clamps", testLocation("park"), forecast(weather.ConditionSnow, -6, 0), WeatherOptions{}, -8},
		{"indoor heat", testLocation("museum"), forecast(weather.ConditionClear, 34, 38), WeatherOptions{}, 2},
		{"indoor heat rain clamps", testLocation("museum"), forecast(weather.ConditionRain, 34, 38), WeatherOptions{}, 5},
		{"mixed tag on museum", testLocation("museum", "Mixed"), forecast(weather.ConditionRain), WeatherOptions{}, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreWeatherFit(tc.loc, tc.f, tc.opts)
			if got.ScoreAdjustment != tc.want {
				t.Fatalf("ScoreWeatherFit: want=%d got=%d (%s)", tc.want, got.ScoreAdjustment, got.Reasoning)
			}
		})
	}
}

func TestScoreWeatherFitBounds(t *testing.T) {
	categories := []string{"park", "museum", "market", "shrine", "restaurant", "unknown"}
	conditions := []weather.Condition{
		weather.ConditionClear, weather.ConditionCloudy, weather.ConditionRain, weather.ConditionDrizzle,
		weather.ConditionThunderstorm, weather.ConditionSnow, weather.ConditionMist, weather.ConditionHaze,
	}
	temps := [][]float64{nil, {-10, 0}, {20, 28}, {35, 40}}
	for _, cat := range categories {
		for _, cond := range conditions {
			for _, tr := range temps {
				for _, prefer := range []bool{false, true} {
					got := ScoreWeatherFit(testLocation(cat), forecast(cond, tr...), WeatherOptions{PreferIndoorOnRain: prefer})
					if got.ScoreAdjustment < WeatherFitMin || got.ScoreAdjustment > WeatherFitMax {
						t.Fatalf("%s/%s/%v: out of bounds %d", cat, cond, tr, got.ScoreAdjustment)
					}
				}
			}
		}
	}
}
