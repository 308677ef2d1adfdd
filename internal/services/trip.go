package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tripcraft-backend/internal/data/repos"
	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/modules/itinerary"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/tripcraft-backend/internal/pkg/errors"
	"github.com/yungbote/tripcraft-backend/internal/platform/apierr"
	"github.com/yungbote/tripcraft-backend/internal/platform/ctxutil"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

// TripEdit is the outcome of an itinerary mutation. Changed is false for
// no-op edits, which are neither persisted nor recorded in history.
type TripEdit struct {
	Trip    trips.StoredTrip        `json:"trip"`
	Changed bool                    `json:"changed"`
	Entry   *trips.EditHistoryEntry `json:"entry,omitempty"`
	CanUndo bool                    `json:"canUndo"`
	CanRedo bool                    `json:"canRedo"`
}

type TripHistory struct {
	Entries      []trips.EditHistoryEntry `json:"entries"`
	CurrentIndex int                      `json:"currentIndex"`
	CanUndo      bool                     `json:"canUndo"`
	CanRedo      bool                     `json:"canRedo"`
}

type CreateTripInput struct {
	Name        string                `json:"name"`
	Itinerary   trips.Itinerary       `json:"itinerary"`
	BuilderData trips.TripBuilderData `json:"builderData"`
	DayIntros   map[string]string     `json:"dayIntros,omitempty"`
}

// ActivityConverter turns a chosen location into an itinerary activity.
type ActivityConverter interface {
	LocationToActivity(loc *places.Location, original trips.Activity) trips.Activity
}

// TripService is scoped to the caller attached to the context.
type TripService interface {
	List(ctx context.Context) ([]trips.StoredTrip, error)
	Get(ctx context.Context, tripID string) (*trips.StoredTrip, error)
	Create(ctx context.Context, in CreateTripInput) (*trips.StoredTrip, error)
	Rename(ctx context.Context, tripID, name string) (*trips.StoredTrip, bool, error)
	UpdateItinerary(ctx context.Context, tripID string, it trips.Itinerary) (*TripEdit, error)
	Delete(ctx context.Context, tripID string) error
	Restore(ctx context.Context, tripID string) (*trips.StoredTrip, error)

	AddActivity(ctx context.Context, tripID, dayID string, a trips.Activity, position int) (*TripEdit, error)
	DeleteActivity(ctx context.Context, tripID, dayID, activityID string) (*TripEdit, error)
	ReorderActivities(ctx context.Context, tripID, dayID string, orderedIDs []string) (*TripEdit, error)
	ReplaceActivity(ctx context.Context, tripID, dayID, activityID string, next trips.Activity) (*TripEdit, error)
	ApplyReplacement(ctx context.Context, tripID, dayID, activityID, locationID string) (*TripEdit, error)

	Undo(ctx context.Context, tripID string) (*TripEdit, error)
	Redo(ctx context.Context, tripID string) (*TripEdit, error)
	History(ctx context.Context, tripID string) (*TripHistory, error)
}

type tripService struct {
	db        *gorm.DB
	log       *logger.Logger
	trips     repos.TripRepo
	history   repos.HistoryRepo
	locations replacement.LocationStore
	convert   ActivityConverter
	now       func() time.Time
}

// NewTripService wires the trip store. db may be nil, in which case each
// repo call runs on its own.
func NewTripService(
	db *gorm.DB,
	baseLog *logger.Logger,
	tripRepo repos.TripRepo,
	historyRepo repos.HistoryRepo,
	locations replacement.LocationStore,
	convert ActivityConverter,
) TripService {
	if convert == nil {
		convert = replacement.NewFinder(locations, nil, baseLog)
	}
	return &tripService{
		db:        db,
		log:       baseLog.With("service", "TripService"),
		trips:     tripRepo,
		history:   historyRepo,
		locations: locations,
		convert:   convert,
		now:       time.Now,
	}
}

func (s *tripService) List(ctx context.Context) ([]trips.StoredTrip, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.trips.ListByOwner(dbctx.Context{Ctx: ctx}, owner)
	if err != nil {
		return nil, err
	}
	out := make([]trips.StoredTrip, 0, len(recs))
	for _, rec := range recs {
		trip, err := rec.ToStoredTrip()
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", rec.ID, err)
		}
		out = append(out, trip)
	}
	return out, nil
}

func (s *tripService) Get(ctx context.Context, tripID string) (*trips.StoredTrip, error) {
	owner, id, err := ownerAndTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip, err := s.load(dbctx.Context{Ctx: ctx}, owner, id)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *tripService) Create(ctx context.Context, in CreateTripInput) (*trips.StoredTrip, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	trip := itinerary.CreateTripRecord(in.Name, withIDs(in.Itinerary), in.BuilderData, s.now())
	if len(in.DayIntros) > 0 {
		trip.DayIntros = in.DayIntros
	}
	rec, err := trips.NewTripRecord(owner, trip)
	if err != nil {
		return nil, err
	}
	if err := s.trips.Create(dbctx.Context{Ctx: ctx}, rec); err != nil {
		return nil, err
	}
	s.log.Info("Trip created", "trip_id", trip.ID, "owner_user_id", owner.String(), "days", len(trip.Itinerary.Days))
	return &trip, nil
}

func (s *tripService) Rename(ctx context.Context, tripID, name string) (*trips.StoredTrip, bool, error) {
	owner, id, err := ownerAndTrip(ctx, tripID)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, false, apierr.BadRequest("name_required", fmt.Errorf("name: %w", pkgerrors.ErrInvalidArgument))
	}
	var (
		out     trips.StoredTrip
		changed bool
	)
	err = s.inTx(ctx, func(dbc dbctx.Context) error {
		trip, err := s.load(dbc, owner, id)
		if err != nil {
			return err
		}
		list, ok := itinerary.RenameTrip([]trips.StoredTrip{trip}, trip.ID, name, s.now())
		out, changed = list[0], ok
		if !ok {
			return nil
		}
		return s.save(dbc, owner, out)
	})
	if err != nil {
		return nil, false, err
	}
	return &out, changed, nil
}

func (s *tripService) UpdateItinerary(ctx context.Context, tripID string, it trips.Itinerary) (*TripEdit, error) {
	it = withIDs(it)
	return s.applyEdit(ctx, tripID, func(trip trips.StoredTrip) (trips.Itinerary, bool, trips.EditType, string, error) {
		return it, true, trips.EditTypeUpdateItinerary, "Updated itinerary", nil
	})
}

func (s *tripService) Delete(ctx context.Context, tripID string) error {
	owner, id, err := ownerAndTrip(ctx, tripID)
	if err != nil {
		return err
	}
	err = s.inTx(ctx, func(dbc dbctx.Context) error {
		trip, err := s.load(dbc, owner, id)
		if err != nil {
			return err
		}
		if _, ok := itinerary.DeleteTrip([]trips.StoredTrip{trip}, trip.ID); !ok {
			return apierr.NotFound("trip")
		}
		ok, err := s.trips.SoftDelete(dbc, owner, id)
		if err != nil {
			return err
		}
		if !ok {
			return apierr.NotFound("trip")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("Trip deleted", "trip_id", id.String())
	return nil
}

// Restore brings back a soft-deleted trip together with its history. A trip
// that is still live has nothing to restore.
func (s *tripService) Restore(ctx context.Context, tripID string) (*trips.StoredTrip, error) {
	owner, id, err := ownerAndTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	var out trips.StoredTrip
	err = s.inTx(ctx, func(dbc dbctx.Context) error {
		live, err := s.trips.GetByID(dbc, owner, id)
		if err != nil {
			return err
		}
		var current []trips.StoredTrip
		if live != nil {
			st, err := live.ToStoredTrip()
			if err != nil {
				return err
			}
			current = append(current, st)
		}
		stamped, changed := itinerary.RestoreTrip(current, trips.StoredTrip{ID: id.String()}, s.now())
		if !changed {
			return apierr.NotFound("deleted_trip")
		}

		ok, err := s.trips.Restore(dbc, owner, id)
		if err != nil {
			return err
		}
		if !ok {
			return apierr.NotFound("deleted_trip")
		}
		trip, err := s.load(dbc, owner, id)
		if err != nil {
			return err
		}
		trip.UpdatedAt = stamped[0].UpdatedAt
		if err := s.save(dbc, owner, trip); err != nil {
			return err
		}
		out = trip
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *tripService) AddActivity(ctx context.Context, tripID, dayID string, a trips.Activity, position int) (*TripEdit, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Kind == "" {
		a.Kind = trips.ActivityKindFreeTime
		if a.Place != nil {
			a.Kind = trips.ActivityKindPlace
		}
	}
	return s.applyEdit(ctx, tripID, func(trip trips.StoredTrip) (trips.Itinerary, bool, trips.EditType, string, error) {
		if trip.Itinerary.DayIndex(dayID) < 0 {
			return trips.Itinerary{}, false, "", "", apierr.NotFound("day")
		}
		next, ok := itinerary.AddActivity(trip.Itinerary, dayID, a, position)
		return next, ok, trips.EditTypeAddActivity, "Added " + activityLabel(a), nil
	})
}

func (s *tripService) DeleteActivity(ctx context.Context, tripID, dayID, activityID string) (*TripEdit, error) {
	return s.applyEdit(ctx, tripID, func(trip trips.StoredTrip) (trips.Itinerary, bool, trips.EditType, string, error) {
		current, err := findActivity(trip.Itinerary, dayID, activityID)
		if err != nil {
			return trips.Itinerary{}, false, "", "", err
		}
		next, ok := itinerary.DeleteActivity(trip.Itinerary, dayID, activityID)
		return next, ok, trips.EditTypeDeleteActivity, "Removed " + activityLabel(current), nil
	})
}

func (s *tripService) ReorderActivities(ctx context.Context, tripID, dayID string, orderedIDs []string) (*TripEdit, error) {
	return s.applyEdit(ctx, tripID, func(trip trips.StoredTrip) (trips.Itinerary, bool, trips.EditType, string, error) {
		if trip.Itinerary.DayIndex(dayID) < 0 {
			return trips.Itinerary{}, false, "", "", apierr.NotFound("day")
		}
		next, ok := itinerary.ReorderActivities(trip.Itinerary, dayID, orderedIDs)
		return next, ok, trips.EditTypeReorderActivities, "Reordered activities", nil
	})
}

func (s *tripService) ReplaceActivity(ctx context.Context, tripID, dayID, activityID string, next trips.Activity) (*TripEdit, error) {
	if next.ID == "" {
		next.ID = uuid.NewString()
	}
	return s.applyEdit(ctx, tripID, func(trip trips.StoredTrip) (trips.Itinerary, bool, trips.EditType, string, error) {
		current, err := findActivity(trip.Itinerary, dayID, activityID)
		if err != nil {
			return trips.Itinerary{}, false, "", "", err
		}
		it, ok := itinerary.ReplaceActivity(trip.Itinerary, dayID, activityID, next)
		desc := fmt.Sprintf("Replaced %s with %s", activityLabel(current), activityLabel(next))
		return it, ok, trips.EditTypeReplaceActivity, desc, nil
	})
}

// ApplyReplacement swaps an activity for a catalog location, keeping the
// original slot and notes.
func (s *tripService) ApplyReplacement(ctx context.Context, tripID, dayID, activityID, locationID string) (*TripEdit, error) {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return nil, apierr.BadRequest("location_id_required", fmt.Errorf("location id: %w", pkgerrors.ErrInvalidArgument))
	}
	return s.applyEdit(ctx, tripID, func(trip trips.StoredTrip) (trips.Itinerary, bool, trips.EditType, string, error) {
		current, err := findActivity(trip.Itinerary, dayID, activityID)
		if err != nil {
			return trips.Itinerary{}, false, "", "", err
		}
		loc, err := s.locations.GetLocation(ctx, locationID)
		if err != nil {
			return trips.Itinerary{}, false, "", "", fmt.Errorf("load location %q: %w", locationID, err)
		}
		if loc == nil {
			return trips.Itinerary{}, false, "", "", apierr.NotFound("location")
		}
		next := s.convert.LocationToActivity(loc, current)
		it, ok := itinerary.ReplaceActivity(trip.Itinerary, dayID, activityID, next)
		desc := fmt.Sprintf("Replaced %s with %s", activityLabel(current), loc.Name)
		return it, ok, trips.EditTypeReplaceActivity, desc, nil
	})
}

func (s *tripService) Undo(ctx context.Context, tripID string) (*TripEdit, error) {
	return s.step(ctx, tripID, itinerary.PerformUndo)
}

func (s *tripService) Redo(ctx context.Context, tripID string) (*TripEdit, error) {
	return s.step(ctx, tripID, itinerary.PerformRedo)
}

func (s *tripService) History(ctx context.Context, tripID string) (*TripHistory, error) {
	owner, id, err := ownerAndTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.load(dbc, owner, id); err != nil {
		return nil, err
	}
	state, err := s.loadHistory(dbc, id)
	if err != nil {
		return nil, err
	}
	key := id.String()
	entries := state.Entries[key]
	if entries == nil {
		entries = []trips.EditHistoryEntry{}
	}
	return &TripHistory{
		Entries:      entries,
		CurrentIndex: itinerary.CurrentIndex(state, key),
		CanUndo:      itinerary.CanUndo(state, key),
		CanRedo:      itinerary.CanRedo(state, key),
	}, nil
}

// editFunc computes the next itinerary from the stored trip. ok=false marks
// a no-op.
type editFunc func(trip trips.StoredTrip) (next trips.Itinerary, ok bool, typ trips.EditType, desc string, err error)

func (s *tripService) applyEdit(ctx context.Context, tripID string, edit editFunc) (*TripEdit, error) {
	owner, id, err := ownerAndTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	var out *TripEdit
	err = s.inTx(ctx, func(dbc dbctx.Context) error {
		trip, err := s.load(dbc, owner, id)
		if err != nil {
			return err
		}
		state, err := s.loadHistory(dbc, id)
		if err != nil {
			return err
		}
		next, ok, typ, desc, err := edit(trip)
		if err != nil {
			return err
		}
		if !ok {
			out = editResult(trip, state, false, nil)
			return nil
		}
		list, changed := itinerary.UpdateTripItinerary([]trips.StoredTrip{trip}, trip.ID, next, s.now())
		if !changed {
			out = editResult(trip, state, false, nil)
			return nil
		}
		updated := list[0]
		entry := itinerary.NewEdit(trip.ID, typ, desc, trip.Itinerary, updated.Itinerary, updated.UpdatedAt)
		state = itinerary.AddEditToHistory(state, entry)

		if err := s.save(dbc, owner, updated); err != nil {
			return err
		}
		if err := s.saveHistory(dbc, id, state); err != nil {
			return err
		}
		out = editResult(updated, state, true, &entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Changed {
		s.log.Debug("Itinerary edited", "trip_id", id.String(), "type", string(out.Entry.Type))
	}
	return out, nil
}

type historyStep func(state trips.EditHistoryState, tripID string) (itinerary.UndoRedoResult, bool)

func (s *tripService) step(ctx context.Context, tripID string, perform historyStep) (*TripEdit, error) {
	owner, id, err := ownerAndTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	var out *TripEdit
	err = s.inTx(ctx, func(dbc dbctx.Context) error {
		trip, err := s.load(dbc, owner, id)
		if err != nil {
			return err
		}
		state, err := s.loadHistory(dbc, id)
		if err != nil {
			return err
		}
		res, ok := perform(state, trip.ID)
		if !ok {
			out = editResult(trip, state, false, nil)
			return nil
		}
		updated := trip
		if list, changed := itinerary.UpdateTripItinerary([]trips.StoredTrip{trip}, trip.ID, res.Itinerary, s.now()); changed {
			updated = list[0]
			if err := s.save(dbc, owner, updated); err != nil {
				return err
			}
		}
		if err := s.saveHistory(dbc, id, res.State); err != nil {
			return err
		}
		entry := res.Entry
		out = editResult(updated, res.State, true, &entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *tripService) inTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if s.db == nil {
		return fn(dbctx.Context{Ctx: ctx})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

func (s *tripService) load(dbc dbctx.Context, owner, id uuid.UUID) (trips.StoredTrip, error) {
	rec, err := s.trips.GetByID(dbc, owner, id)
	if err != nil {
		return trips.StoredTrip{}, err
	}
	if rec == nil {
		return trips.StoredTrip{}, apierr.NotFound("trip")
	}
	return rec.ToStoredTrip()
}

func (s *tripService) save(dbc dbctx.Context, owner uuid.UUID, trip trips.StoredTrip) error {
	rec, err := trips.NewTripRecord(owner, trip)
	if err != nil {
		return err
	}
	return s.trips.Update(dbc, rec)
}

func (s *tripService) loadHistory(dbc dbctx.Context, id uuid.UUID) (trips.EditHistoryState, error) {
	state := trips.NewEditHistoryState()
	rec, err := s.history.Get(dbc, id)
	if err != nil || rec == nil {
		return state, err
	}
	entries, current, err := rec.Decode()
	if err != nil {
		return state, err
	}
	key := id.String()
	state.Entries[key] = entries
	state.CurrentIndex[key] = current
	return state, nil
}

func (s *tripService) saveHistory(dbc dbctx.Context, id uuid.UUID, state trips.EditHistoryState) error {
	key := id.String()
	rec, err := trips.NewTripHistoryRecord(id, state.Entries[key], itinerary.CurrentIndex(state, key))
	if err != nil {
		return err
	}
	return s.history.Save(dbc, rec)
}

func editResult(trip trips.StoredTrip, state trips.EditHistoryState, changed bool, entry *trips.EditHistoryEntry) *TripEdit {
	return &TripEdit{
		Trip:    trip,
		Changed: changed,
		Entry:   entry,
		CanUndo: itinerary.CanUndo(state, trip.ID),
		CanRedo: itinerary.CanRedo(state, trip.ID),
	}
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	id := ctxutil.UserID(ctx)
	if id == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", pkgerrors.ErrUnauthorized)
	}
	return id, nil
}

func ownerAndTrip(ctx context.Context, tripID string) (uuid.UUID, uuid.UUID, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := uuid.Parse(strings.TrimSpace(tripID))
	if err != nil {
		return uuid.Nil, uuid.Nil, apierr.BadRequest("invalid_trip_id", fmt.Errorf("trip id %q: %w", tripID, pkgerrors.ErrInvalidArgument))
	}
	return owner, id, nil
}

func findActivity(it trips.Itinerary, dayID, activityID string) (trips.Activity, error) {
	if it.DayIndex(dayID) < 0 {
		return trips.Activity{}, apierr.NotFound("day")
	}
	_, a, ok := itinerary.FindActivity(it, dayID, activityID)
	if !ok {
		return trips.Activity{}, apierr.NotFound("activity")
	}
	return a, nil
}

// withIDs fills in missing day and activity ids.
func withIDs(it trips.Itinerary) trips.Itinerary {
	out := it.Clone()
	for i := range out.Days {
		if out.Days[i].ID == "" {
			out.Days[i].ID = uuid.NewString()
		}
		for j := range out.Days[i].Activities {
			if out.Days[i].Activities[j].ID == "" {
				out.Days[i].Activities[j].ID = uuid.NewString()
			}
		}
	}
	return out
}

func activityLabel(a trips.Activity) string {
	if t := strings.TrimSpace(a.Title); t != "" {
		return t
	}
	return "activity"
}
