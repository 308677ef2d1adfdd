package trips

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EditType string

const (
	EditTypeReplaceActivity   EditType = "replace_activity"
	EditTypeDeleteActivity    EditType = "delete_activity"
	EditTypeAddActivity       EditType = "add_activity"
	EditTypeReorderActivities EditType = "reorder_activities"
	EditTypeUpdateItinerary   EditType = "update_itinerary"
)

// EditHistoryEntry snapshots the itinerary on both sides of one edit.
type EditHistoryEntry struct {
	ID                string    `json:"id"`
	TripID            string    `json:"tripId"`
	Type              EditType  `json:"type"`
	Timestamp         time.Time `json:"timestamp"`
	Description       string    `json:"description"`
	PreviousItinerary Itinerary `json:"previousItinerary"`
	NextItinerary     Itinerary `json:"nextItinerary"`
}

// EditHistoryState holds one linear history per trip. A missing CurrentIndex
// entry means -1.
type EditHistoryState struct {
	Entries      map[string][]EditHistoryEntry `json:"editHistory"`
	CurrentIndex map[string]int                `json:"currentHistoryIndex"`
}

func NewEditHistoryState() EditHistoryState {
	return EditHistoryState{
		Entries:      map[string][]EditHistoryEntry{},
		CurrentIndex: map[string]int{},
	}
}

// TripHistoryRecord persists a single trip's slice of the history state.
type TripHistoryRecord struct {
	TripID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"trip_id"`
	Entries      datatypes.JSON `gorm:"column:entries;type:jsonb" json:"entries"`
	CurrentIndex int            `gorm:"column:current_index;not null" json:"current_index"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (TripHistoryRecord) TableName() string { return "trip_history" }

func (r *TripHistoryRecord) Decode() ([]EditHistoryEntry, int, error) {
	var entries []EditHistoryEntry
	if len(r.Entries) > 0 {
		if err := json.Unmarshal(r.Entries, &entries); err != nil {
			return nil, -1, fmt.Errorf("decode history entries: %w", err)
		}
	}
	return entries, r.CurrentIndex, nil
}

func NewTripHistoryRecord(tripID uuid.UUID, entries []EditHistoryEntry, current int) (*TripHistoryRecord, error) {
	if entries == nil {
		entries = []EditHistoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return &TripHistoryRecord{
		TripID:       tripID,
		Entries:      datatypes.JSON(raw),
		CurrentIndex: current,
		UpdatedAt:    time.Now().UTC(),
	}, nil
}
