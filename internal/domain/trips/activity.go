package trips

import "github.com/yungbote/tripcraft-backend/internal/domain/geo"

type ActivityKind string

const (
	ActivityKindPlace    ActivityKind = "place"
	ActivityKindFreeTime ActivityKind = "free_time"
	ActivityKindTravel   ActivityKind = "travel"
)

type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
)

// Activity is one scheduled entry of a day. Kind selects which payload is
// populated: Place for place activities, Travel for travel segments,
// neither for free time.
type Activity struct {
	ID              string         `json:"id"`
	Kind            ActivityKind   `json:"kind"`
	Title           string         `json:"title"`
	TimeOfDay       TimeOfDay      `json:"timeOfDay,omitempty"`
	DurationMinutes int            `json:"durationMin,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Place           *PlaceDetails  `json:"place,omitempty"`
	Travel          *TravelDetails `json:"travel,omitempty"`
}

type PlaceDetails struct {
	LocationID   string   `json:"locationId"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

type TravelDetails struct {
	From    string         `json:"from"`
	To      string         `json:"to"`
	Mode    geo.TravelMode `json:"mode"`
	Minutes int            `json:"minutes"`
}

func (a Activity) IsPlace() bool {
	return a.Kind == ActivityKindPlace && a.Place != nil
}

// LocationID is empty for every non-place activity.
func (a Activity) LocationID() string {
	if !a.IsPlace() {
		return ""
	}
	return a.Place.LocationID
}

// Clone deep-copies the payload pointers so edits never alias an older snapshot.
func (a Activity) Clone() Activity {
	out := a
	if a.Place != nil {
		p := *a.Place
		p.Tags = append([]string(nil), a.Place.Tags...)
		out.Place = &p
	}
	if a.Travel != nil {
		tr := *a.Travel
		out.Travel = &tr
	}
	return out
}
