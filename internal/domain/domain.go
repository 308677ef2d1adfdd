package domain

import (
	"github.com/yungbote/tripcraft-backend/internal/domain/geo"
	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
)

type (
	Coordinates = geo.Coordinates
	TravelMode  = geo.TravelMode

	Location       = places.Location
	OperatingHours = places.OperatingHours

	Activity          = trips.Activity
	Day               = trips.Day
	Itinerary         = trips.Itinerary
	TripBuilderData   = trips.TripBuilderData
	GroupComposition  = trips.GroupComposition
	StoredTrip        = trips.StoredTrip
	TripRecord        = trips.TripRecord
	EditHistoryEntry  = trips.EditHistoryEntry
	EditHistoryState  = trips.EditHistoryState
	TripHistoryRecord = trips.TripHistoryRecord

	WeatherForecast = weather.Forecast
)

// Models lists every gorm-managed table in migration order.
func Models() []interface{} {
	return []interface{}{
		&places.Location{},
		&trips.TripRecord{},
		&trips.TripHistoryRecord{},
	}
}
