package itinerary

import "github.com/yungbote/tripcraft-backend/internal/domain/trips"

// Every function here returns a fresh itinerary and leaves its input alone.
// The bool is false when nothing changed (unknown day or activity, or an
// edit that would leave the day as it was); the input is returned then.

func ReplaceActivity(it trips.Itinerary, dayID, activityID string, next trips.Activity) (trips.Itinerary, bool) {
	di := it.DayIndex(dayID)
	if di < 0 {
		return it, false
	}
	ai := activityIndex(it.Days[di].Activities, activityID)
	if ai < 0 {
		return it, false
	}
	out := it.Clone()
	out.Days[di].Activities[ai] = next.Clone()
	return out, true
}

func DeleteActivity(it trips.Itinerary, dayID, activityID string) (trips.Itinerary, bool) {
	di := it.DayIndex(dayID)
	if di < 0 {
		return it, false
	}
	ai := activityIndex(it.Days[di].Activities, activityID)
	if ai < 0 {
		return it, false
	}
	out := it.Clone()
	acts := out.Days[di].Activities
	out.Days[di].Activities = append(acts[:ai:ai], acts[ai+1:]...)
	return out, true
}

// AddActivity inserts a at position; a negative or out-of-range position
// appends. Adding an id the day already holds is a no-op.
func AddActivity(it trips.Itinerary, dayID string, a trips.Activity, position int) (trips.Itinerary, bool) {
	di := it.DayIndex(dayID)
	if di < 0 {
		return it, false
	}
	if a.ID != "" && activityIndex(it.Days[di].Activities, a.ID) >= 0 {
		return it, false
	}
	out := it.Clone()
	acts := out.Days[di].Activities
	if position < 0 || position > len(acts) {
		position = len(acts)
	}
	merged := make([]trips.Activity, 0, len(acts)+1)
	merged = append(merged, acts[:position]...)
	merged = append(merged, a.Clone())
	merged = append(merged, acts[position:]...)
	out.Days[di].Activities = merged
	return out, true
}

// ReorderActivities puts the day's activities in orderedIDs order. Unknown
// and repeated ids are ignored; activities the caller left out keep their
// relative order and go after the ordered ones, so nothing is ever dropped.
func ReorderActivities(it trips.Itinerary, dayID string, orderedIDs []string) (trips.Itinerary, bool) {
	di := it.DayIndex(dayID)
	if di < 0 {
		return it, false
	}
	src := it.Days[di].Activities
	byID := make(map[string]int, len(src))
	for i, a := range src {
		byID[a.ID] = i
	}

	used := make([]bool, len(src))
	order := make([]int, 0, len(src))
	for _, id := range orderedIDs {
		i, ok := byID[id]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		order = append(order, i)
	}
	for i := range src {
		if !used[i] {
			order = append(order, i)
		}
	}

	same := true
	for pos, i := range order {
		if pos != i {
			same = false
			break
		}
	}
	if same {
		return it, false
	}

	out := it.Clone()
	reordered := make([]trips.Activity, len(order))
	for pos, i := range order {
		reordered[pos] = out.Days[di].Activities[i]
	}
	out.Days[di].Activities = reordered
	return out, true
}

// FindActivity looks up an activity within one day.
func FindActivity(it trips.Itinerary, dayID, activityID string) (dayIndex int, activity trips.Activity, ok bool) {
	di := it.DayIndex(dayID)
	if di < 0 {
		return -1, trips.Activity{}, false
	}
	ai := activityIndex(it.Days[di].Activities, activityID)
	if ai < 0 {
		return di, trips.Activity{}, false
	}
	return di, it.Days[di].Activities[ai], true
}

func activityIndex(acts []trips.Activity, id string) int {
	for i, a := range acts {
		if a.ID == id {
			return i
		}
	}
	return -1
}
