package replacement

import (
	"github.com/google/uuid"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/modules/scoring"
)

// LocationToActivity builds the place activity that takes original's slot.
// Time of day and notes carry over; the rest comes from loc.
func LocationToActivity(loc *places.Location, original trips.Activity) trips.Activity {
	return locationToActivity(scoring.DefaultTables(), loc, original)
}

func (f *Finder) LocationToActivity(loc *places.Location, original trips.Activity) trips.Activity {
	return locationToActivity(f.tables, loc, original)
}

func locationToActivity(t *scoring.Tables, loc *places.Location, original trips.Activity) trips.Activity {
	duration := loc.RecommendedVisitMinutes
	if duration <= 0 {
		duration = t.DefaultVisitMinutes(loc.Category)
	}
	var tags []string
	if c := loc.NormalizedCategory(); c != "" {
		tags = []string{c}
	}
	return trips.Activity{
		ID:              uuid.NewString(),
		Kind:            trips.ActivityKindPlace,
		Title:           loc.Name,
		TimeOfDay:       original.TimeOfDay,
		DurationMinutes: duration,
		Notes:           original.Notes,
		Place: &trips.PlaceDetails{
			LocationID:   loc.ID,
			Neighborhood: loc.Neighborhood,
			Tags:         tags,
		},
	}
}
