package itinerary

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
)

// DefaultTripName is used when a trip is created without a usable name.
const DefaultTripName = "Untitled trip"

func CreateTripRecord(name string, it trips.Itinerary, data trips.TripBuilderData, now time.Time) trips.StoredTrip {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTripName
	}
	now = now.UTC()
	return trips.StoredTrip{
		ID:          uuid.NewString(),
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
		Itinerary:   it.Clone(),
		BuilderData: data,
	}
}

// UpdateTripItinerary reports false for an unknown id or an itinerary equal
// to the stored one.
func UpdateTripItinerary(list []trips.StoredTrip, id string, it trips.Itinerary, now time.Time) ([]trips.StoredTrip, bool) {
	i := tripIndex(list, id)
	if i < 0 || list[i].Itinerary.Equal(it) {
		return list, false
	}
	out := copyTrips(list)
	out[i].Itinerary = it.Clone()
	out[i].UpdatedAt = now.UTC()
	return out, true
}

// RenameTrip trims name. Empty names and unchanged names are no-ops.
func RenameTrip(list []trips.StoredTrip, id, name string, now time.Time) ([]trips.StoredTrip, bool) {
	name = strings.TrimSpace(name)
	i := tripIndex(list, id)
	if i < 0 || name == "" || name == list[i].Name {
		return list, false
	}
	out := copyTrips(list)
	out[i].Name = name
	out[i].UpdatedAt = now.UTC()
	return out, true
}

func DeleteTrip(list []trips.StoredTrip, id string) ([]trips.StoredTrip, bool) {
	i := tripIndex(list, id)
	if i < 0 {
		return list, false
	}
	out := make([]trips.StoredTrip, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out, true
}

// RestoreTrip puts a previously deleted trip back at the front of the list.
// Restoring an id that is already present is a no-op.
func RestoreTrip(list []trips.StoredTrip, trip trips.StoredTrip, now time.Time) ([]trips.StoredTrip, bool) {
	if trip.ID == "" || tripIndex(list, trip.ID) >= 0 {
		return list, false
	}
	trip.UpdatedAt = now.UTC()
	out := make([]trips.StoredTrip, 0, len(list)+1)
	out = append(out, trip)
	out = append(out, list...)
	return out, true
}

func tripIndex(list []trips.StoredTrip, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func copyTrips(list []trips.StoredTrip) []trips.StoredTrip {
	out := make([]trips.StoredTrip, len(list))
	copy(out, list)
	return out
}
