package weather

type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionCloudy       Condition = "cloudy"
	ConditionRain         Condition = "rain"
	ConditionDrizzle      Condition = "drizzle"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionSnow         Condition = "snow"
	ConditionMist         Condition = "mist"
	ConditionHaze         Condition = "haze"
	ConditionFog          Condition = "fog"
)

// Forecast is a single-day forecast. Temperatures are Celsius.
type Forecast struct {
	Date        string            `json:"date"`
	Condition   Condition         `json:"condition"`
	Temperature *TemperatureRange `json:"temperature,omitempty"`
}

type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (c Condition) IsWet() bool {
	switch c {
	case ConditionRain, ConditionDrizzle, ConditionThunderstorm:
		return true
	default:
		return false
	}
}
