package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/tripcraft-backend/internal/domain/geo"
	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/tripcraft-backend/internal/pkg/errors"
)

type memTripRepo struct {
	rows    map[uuid.UUID]trips.TripRecord
	deleted map[uuid.UUID]bool
	updates int
}

func newMemTripRepo() *memTripRepo {
	return &memTripRepo{rows: map[uuid.UUID]trips.TripRecord{}, deleted: map[uuid.UUID]bool{}}
}

func (r *memTripRepo) Create(_ dbctx.Context, rec *trips.TripRecord) error {
	if _, ok := r.rows[rec.ID]; ok {
		return pkgerrors.ErrConflict
	}
	r.rows[rec.ID] = *rec
	return nil
}

func (r *memTripRepo) GetByID(_ dbctx.Context, ownerID, id uuid.UUID) (*trips.TripRecord, error) {
	rec, ok := r.rows[id]
	if !ok || r.deleted[id] || rec.OwnerUserID != ownerID {
		return nil, nil
	}
	return &rec, nil
}

func (r *memTripRepo) ListByOwner(_ dbctx.Context, ownerID uuid.UUID) ([]*trips.TripRecord, error) {
	var out []*trips.TripRecord
	for id, rec := range r.rows {
		if rec.OwnerUserID == ownerID && !r.deleted[id] {
			rec := rec
			out = append(out, &rec)
		}
	}
	return out, nil
}

func (r *memTripRepo) Update(_ dbctx.Context, rec *trips.TripRecord) error {
	cur, ok := r.rows[rec.ID]
	if !ok || r.deleted[rec.ID] || cur.OwnerUserID != rec.OwnerUserID {
		return pkgerrors.ErrNotFound
	}
	r.rows[rec.ID] = *rec
	r.updates++
	return nil
}

func (r *memTripRepo) SoftDelete(_ dbctx.Context, ownerID, id uuid.UUID) (bool, error) {
	rec, ok := r.rows[id]
	if !ok || r.deleted[id] || rec.OwnerUserID != ownerID {
		return false, nil
	}
	r.deleted[id] = true
	return true, nil
}

func (r *memTripRepo) Restore(_ dbctx.Context, ownerID, id uuid.UUID) (bool, error) {
	rec, ok := r.rows[id]
	if !ok || !r.deleted[id] || rec.OwnerUserID != ownerID {
		return false, nil
	}
	delete(r.deleted, id)
	return true, nil
}

type memHistoryRepo struct {
	rows  map[uuid.UUID]trips.TripHistoryRecord
	saves int
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{rows: map[uuid.UUID]trips.TripHistoryRecord{}}
}

func (r *memHistoryRepo) Get(_ dbctx.Context, tripID uuid.UUID) (*trips.TripHistoryRecord, error) {
	rec, ok := r.rows[tripID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *memHistoryRepo) Save(_ dbctx.Context, rec *trips.TripHistoryRecord) error {
	r.rows[rec.TripID] = *rec
	r.saves++
	return nil
}

type memLocationStore struct {
	locs map[string]*places.Location
}

func newMemLocationStore(locs ...*places.Location) *memLocationStore {
	s := &memLocationStore{locs: map[string]*places.Location{}}
	for _, l := range locs {
		s.locs[l.ID] = l
	}
	return s
}

func (s *memLocationStore) GetLocation(_ context.Context, id string) (*places.Location, error) {
	l, ok := s.locs[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (s *memLocationStore) FetchLocationsByCity(_ context.Context, city string, q replacement.Query) ([]*places.Location, error) {
	skip := map[string]bool{}
	for _, id := range q.ExcludeIDs {
		skip[id] = true
	}
	var out []*places.Location
	for _, l := range s.locs {
		if l.City != city || skip[l.ID] || l.IsPermanentlyClosed() {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

type fakeWeather struct {
	forecast *weather.Forecast
	err      error
	calls    int
	lastAt   geo.Coordinates
	lastDate time.Time
}

func (w *fakeWeather) DailyForecast(_ context.Context, at geo.Coordinates, date time.Time) (*weather.Forecast, error) {
	w.calls++
	w.lastAt = at
	w.lastDate = date
	return w.forecast, w.err
}
