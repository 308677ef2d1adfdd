package openmeteo

import "github.com/yungbote/tripcraft-backend/internal/domain/weather"

// ConditionFromWMO maps a WMO 4677 weather interpretation code. Unknown codes
// read as cloudy, which scores neutral.
func ConditionFromWMO(code int) weather.Condition {
	switch {
	case code == 0 || code == 1:
		return weather.ConditionClear
	case code == 2 || code == 3:
		return weather.ConditionCloudy
	case code == 45 || code == 48:
		return weather.ConditionFog
	case code >= 51 && code <= 57:
		return weather.ConditionDrizzle
	case code >= 61 && code <= 67, code >= 80 && code <= 82:
		return weather.ConditionRain
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95 && code <= 99:
		return weather.ConditionThunderstorm
	default:
		return weather.ConditionCloudy
	}
}
