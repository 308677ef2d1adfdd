package trips

import (
	"bytes"
	"encoding/json"
)

type Day struct {
	ID         string     `json:"id"`
	Label      string     `json:"label,omitempty"`
	City       string     `json:"cityId,omitempty"`
	Activities []Activity `json:"activities"`
}

type Itinerary struct {
	Days []Day `json:"days"`
}

func (d Day) Clone() Day {
	out := d
	out.Activities = make([]Activity, len(d.Activities))
	for i, a := range d.Activities {
		out.Activities[i] = a.Clone()
	}
	return out
}

func (it Itinerary) Clone() Itinerary {
	out := Itinerary{Days: make([]Day, len(it.Days))}
	for i, d := range it.Days {
		out.Days[i] = d.Clone()
	}
	return out
}

// DayIndex returns -1 when no day carries the id.
func (it Itinerary) DayIndex(dayID string) int {
	for i, d := range it.Days {
		if d.ID == dayID {
			return i
		}
	}
	return -1
}

// AllActivities flattens every day in order.
func (it Itinerary) AllActivities() []Activity {
	var out []Activity
	for _, d := range it.Days {
		out = append(out, d.Activities...)
	}
	return out
}

// Equal compares the serialized form, so nil and empty activity lists differ
// only when their JSON does.
func (it Itinerary) Equal(other Itinerary) bool {
	a, errA := json.Marshal(it)
	b, errB := json.Marshal(other)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(a, b)
}
