package scoring

import (
	"time"

	"github.com/yungbote/tripcraft-backend/internal/domain/geo"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
)

// RecentCategoryWindow is how many trailing categories feed the diversity penalty.
const RecentCategoryWindow = 5

// Criteria is everything ScoreLocation needs besides the location itself.
type Criteria struct {
	Interests        []string
	TravelStyle      string
	Budget           *trips.Budget
	Accessibility    *trips.Accessibility
	CurrentLocation  *geo.Coordinates
	AvailableMinutes int
	RecentCategories []string
	Weather          *weather.Forecast
	WeatherOptions   WeatherOptions
	TimeOfDay        trips.TimeOfDay
	// Date is the calendar day being planned; zero means unknown.
	Date  time.Time
	Group *trips.GroupComposition
}

// CriteriaFromTrip copies the trip-level preferences. Slot-specific fields
// are left for the caller.
func CriteriaFromTrip(data trips.TripBuilderData) Criteria {
	c := Criteria{
		Interests:     append([]string(nil), data.Interests...),
		TravelStyle:   data.TravelStyle,
		Budget:        data.Budget,
		Accessibility: data.Accessibility,
		Group:         data.Group,
	}
	if data.Weather != nil {
		c.WeatherOptions.PreferIndoorOnRain = data.Weather.PreferIndoorOnRain
	}
	return c
}

// TripDate resolves the date of the dayIndex-th day from the trip start.
// It returns the zero time when the start date is missing or malformed.
func TripDate(data trips.TripBuilderData, dayIndex int) time.Time {
	if data.StartDate == "" || dayIndex < 0 {
		return time.Time{}
	}
	start, err := time.Parse("2006-01-02", data.StartDate)
	if err != nil {
		return time.Time{}
	}
	return start.AddDate(0, 0, dayIndex)
}
