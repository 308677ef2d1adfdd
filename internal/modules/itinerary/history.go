package itinerary

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
)

// MaxEditHistoryEntries bounds each trip's history; older entries fall off.
const MaxEditHistoryEntries = 50

type UndoRedoResult struct {
	State     trips.EditHistoryState
	Itinerary trips.Itinerary
	Entry     trips.EditHistoryEntry
}

// NewEdit builds an entry with a fresh id.
func NewEdit(tripID string, typ trips.EditType, description string, prev, next trips.Itinerary, now time.Time) trips.EditHistoryEntry {
	return trips.EditHistoryEntry{
		ID:                uuid.NewString(),
		TripID:            tripID,
		Type:              typ,
		Timestamp:         now.UTC(),
		Description:       description,
		PreviousItinerary: prev.Clone(),
		NextItinerary:     next.Clone(),
	}
}

func CurrentIndex(state trips.EditHistoryState, tripID string) int {
	if idx, ok := state.CurrentIndex[tripID]; ok {
		return idx
	}
	return -1
}

// AddEditToHistory drops the redo branch past the pointer, appends entry,
// keeps the newest MaxEditHistoryEntries and points at the new last entry.
func AddEditToHistory(state trips.EditHistoryState, entry trips.EditHistoryEntry) trips.EditHistoryState {
	tripID := entry.TripID
	out := copyState(state)

	current := CurrentIndex(state, tripID)
	old := state.Entries[tripID]
	keep := current + 1
	if keep < 0 {
		keep = 0
	}
	if keep > len(old) {
		keep = len(old)
	}

	entries := make([]trips.EditHistoryEntry, 0, keep+1)
	entries = append(entries, old[:keep]...)
	entries = append(entries, entry)
	if len(entries) > MaxEditHistoryEntries {
		entries = entries[len(entries)-MaxEditHistoryEntries:]
	}
	out.Entries[tripID] = entries
	out.CurrentIndex[tripID] = len(entries) - 1
	return out
}

func CanUndo(state trips.EditHistoryState, tripID string) bool {
	idx := CurrentIndex(state, tripID)
	return idx >= 0 && idx < len(state.Entries[tripID])
}

func CanRedo(state trips.EditHistoryState, tripID string) bool {
	return CurrentIndex(state, tripID) < len(state.Entries[tripID])-1
}

// PerformUndo restores the previous itinerary of the entry at the pointer.
func PerformUndo(state trips.EditHistoryState, tripID string) (UndoRedoResult, bool) {
	if !CanUndo(state, tripID) {
		return UndoRedoResult{}, false
	}
	idx := CurrentIndex(state, tripID)
	entry := state.Entries[tripID][idx]
	out := copyState(state)
	out.CurrentIndex[tripID] = idx - 1
	return UndoRedoResult{State: out, Itinerary: entry.PreviousItinerary.Clone(), Entry: entry}, true
}

// PerformRedo re-applies the entry just past the pointer.
func PerformRedo(state trips.EditHistoryState, tripID string) (UndoRedoResult, bool) {
	if !CanRedo(state, tripID) {
		return UndoRedoResult{}, false
	}
	idx := CurrentIndex(state, tripID) + 1
	entry := state.Entries[tripID][idx]
	out := copyState(state)
	out.CurrentIndex[tripID] = idx
	return UndoRedoResult{State: out, Itinerary: entry.NextItinerary.Clone(), Entry: entry}, true
}

// copyState copies the maps only; entry slices are never mutated in place.
func copyState(state trips.EditHistoryState) trips.EditHistoryState {
	out := trips.NewEditHistoryState()
	for k, v := range state.Entries {
		out.Entries[k] = v
	}
	for k, v := range state.CurrentIndex {
		out.CurrentIndex[k] = v
	}
	return out
}
