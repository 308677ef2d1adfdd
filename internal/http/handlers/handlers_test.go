package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/http/response"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/platform/apierr"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
	"github.com/yungbote/tripcraft-backend/internal/services"
)

// fakeTrips implements the calls these tests make; anything else panics
// through the nil embedded interface.
type fakeTrips struct {
	services.TripService

	trip        trips.StoredTrip
	lastPos     int
	lastAdded   trips.Activity
	lastReorder []string
	applied     string
	deleteErr   error
}

func (f *fakeTrips) Get(_ context.Context, id string) (*trips.StoredTrip, error) {
	if id != f.trip.ID {
		return nil, apierr.NotFound("trip")
	}
	t := f.trip
	return &t, nil
}

func (f *fakeTrips) Create(_ context.Context, in services.CreateTripInput) (*trips.StoredTrip, error) {
	return &trips.StoredTrip{ID: "new", Name: in.Name, Itinerary: in.Itinerary}, nil
}

func (f *fakeTrips) Delete(_ context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeTrips) AddActivity(_ context.Context, tripID, dayID string, a trips.Activity, position int) (*services.TripEdit, error) {
	f.lastPos = position
	f.lastAdded = a
	return &services.TripEdit{Trip: f.trip, Changed: true}, nil
}

func (f *fakeTrips) ReorderActivities(_ context.Context, tripID, dayID string, ids []string) (*services.TripEdit, error) {
	f.lastReorder = ids
	return &services.TripEdit{Trip: f.trip, Changed: true}, nil
}

func (f *fakeTrips) ApplyReplacement(_ context.Context, tripID, dayID, activityID, locationID string) (*services.TripEdit, error) {
	if strings.TrimSpace(locationID) == "" {
		return nil, apierr.BadRequest("location_id_required", errors.New("location id required"))
	}
	f.applied = locationID
	return &services.TripEdit{Trip: f.trip, Changed: true}, nil
}

type fakeSuggest struct {
	last services.SuggestRequest
	err  error
}

func (f *fakeSuggest) Suggest(_ context.Context, req services.SuggestRequest) (*replacement.ReplacementOptions, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &replacement.ReplacementOptions{Candidates: []replacement.ReplacementCandidate{
		{Location: &places.Location{ID: "loc-1", Name: "Nanzen-ji"}, Score: 61},
	}}, nil
}

type fakeStore struct {
	locs []*places.Location
	last replacement.Query
}

func (s *fakeStore) GetLocation(_ context.Context, id string) (*places.Location, error) {
	for _, l := range s.locs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FetchLocationsByCity(_ context.Context, city string, q replacement.Query) ([]*places.Location, error) {
	s.last = q
	return s.locs, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body=%s)", err, rec.Body.String())
	}
	return env.Error.Code
}

func TestTripHandlerStatuses(t *testing.T) {
	ft := &fakeTrips{trip: trips.StoredTrip{ID: "trip-1", Name: "Kyoto"}}
	h := NewTripHandler(logger.Nop(), ft)
	r := newEngine()
	r.GET("/trips/:id", h.GetTrip)
	r.POST("/trips", h.CreateTrip)
	r.DELETE("/trips/:id", h.DeleteTrip)

	if rec := do(r, http.MethodGet, "/trips/trip-1", ""); rec.Code != http.StatusOK {
		t.Fatalf("get: want=200 got=%d", rec.Code)
	}
	rec := do(r, http.MethodGet, "/trips/nope", "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "trip_not_found" {
		t.Fatalf("missing trip: got=%d %s", rec.Code, rec.Body.String())
	}

	rec = do(r, http.MethodPost, "/trips", `{"name":"Osaka","itinerary":{"days":[]}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: want=201 got=%d", rec.Code)
	}
	rec = do(r, http.MethodPost, "/trips", `{"name":`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_request" {
		t.Fatalf("bad json: got=%d %s", rec.Code, rec.Body.String())
	}

	if rec := do(r, http.MethodDelete, "/trips/trip-1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: want=204 got=%d", rec.Code)
	}
	ft.deleteErr = errors.New("db gone")
	rec = do(r, http.MethodDelete, "/trips/trip-1", "")
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "db gone") {
		t.Fatalf("internal errors must be masked: got=%d %s", rec.Code, rec.Body.String())
	}
}

func TestActivityHandler(t *testing.T) {
	ft := &fakeTrips{trip: trips.StoredTrip{ID: "trip-1"}}
	h := NewActivityHandler(logger.Nop(), ft)
	r := newEngine()
	r.POST("/trips/:id/days/:dayId/activities", h.AddActivity)
	r.POST("/trips/:id/days/:dayId/reorder", h.ReorderActivities)

	t.Run("append by default", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/trips/trip-1/days/day-1/activities", `{"activity":{"kind":"free_time","title":"Tea"}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status: want=200 got=%d", rec.Code)
		}
		if ft.lastPos != -1 || ft.lastAdded.Title != "Tea" {
			t.Fatalf("add: pos=%d activity=%+v", ft.lastPos, ft.lastAdded)
		}
	})
	t.Run("explicit position", func(t *testing.T) {
		do(r, http.MethodPost, "/trips/trip-1/days/day-1/activities", `{"activity":{"title":"Tea"},"position":0}`)
		if ft.lastPos != 0 {
			t.Fatalf("position: want=0 got=%d", ft.lastPos)
		}
	})
	t.Run("missing activity", func(t *testing.T) {
		rec := do(r, http.MethodPost, "/trips/trip-1/days/day-1/activities", `{}`)
		if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "activity_required" {
			t.Fatalf("got=%d %s", rec.Code, rec.Body.String())
		}
	})
	t.Run("reorder", func(t *testing.T) {
		do(r, http.MethodPost, "/trips/trip-1/days/day-1/reorder", `{"activityIds":["b","a"]}`)
		if len(ft.lastReorder) != 2 || ft.lastReorder[0] != "b" {
			t.Fatalf("reorder ids: %v", ft.lastReorder)
		}
	})
}

func TestReplacementHandler(t *testing.T) {
	ft := &fakeTrips{trip: trips.StoredTrip{ID: "trip-1"}}
	fs := &fakeSuggest{}
	h := NewReplacementHandler(logger.Nop(), fs, ft)
	r := newEngine()
	r.GET("/trips/:id/days/:dayId/activities/:activityId/replacements", h.ListCandidates)
	r.POST("/trips/:id/days/:dayId/activities/:activityId/replace", h.ApplyReplacement)

	rec := do(r, http.MethodGet, "/trips/trip-1/days/day-1/activities/a1/replacements?max=500&date=2026-04-03&requirePlaceId=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("suggest: want=200 got=%d %s", rec.Code, rec.Body.String())
	}
	want := services.SuggestRequest{TripID: "trip-1", DayID: "day-1", ActivityID: "a1", MaxCandidates: maxCandidatesCap, Date: "2026-04-03", RequirePlaceID: true}
	if fs.last != want {
		t.Fatalf("suggest request: want=%+v got=%+v", want, fs.last)
	}
	var opts replacement.ReplacementOptions
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil || len(opts.Candidates) != 1 {
		t.Fatalf("decode candidates: %v %s", err, rec.Body.String())
	}

	rec = do(r, http.MethodGet, "/trips/trip-1/days/day-1/activities/a1/replacements?max=abc", "")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_max" {
		t.Fatalf("bad max: got=%d", rec.Code)
	}

	fs.err = apierr.NotFound("activity")
	rec = do(r, http.MethodGet, "/trips/trip-1/days/day-1/activities/zz/replacements", "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "activity_not_found" {
		t.Fatalf("missing activity: got=%d", rec.Code)
	}

	rec = do(r, http.MethodPost, "/trips/trip-1/days/day-1/activities/a1/replace", `{"locationId":"loc-1"}`)
	if rec.Code != http.StatusOK || ft.applied != "loc-1" {
		t.Fatalf("apply: got=%d applied=%q", rec.Code, ft.applied)
	}
	rec = do(r, http.MethodPost, "/trips/trip-1/days/day-1/activities/a1/replace", `{"locationId":" "}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "location_id_required" {
		t.Fatalf("blank location: got=%d", rec.Code)
	}
}

func TestLocationHandler(t *testing.T) {
	store := &fakeStore{locs: []*places.Location{{ID: "loc-1", Name: "Kinkaku-ji", City: "kyoto"}}}
	h := NewLocationHandler(logger.Nop(), store, nil)
	r := newEngine()
	r.GET("/locations", h.ListByCity)
	r.GET("/locations/:locationId", h.GetLocation)
	r.GET("/cities", h.ListCities)

	cases := []struct {
		name   string
		path   string
		status int
	}{
		{"city list", "/locations?city=Kyoto&limit=1000", http.StatusOK},
		{"no city", "/locations", http.StatusBadRequest},
		{"bad limit", "/locations?city=kyoto&limit=-1", http.StatusBadRequest},
		{"by id", "/locations/loc-1", http.StatusOK},
		{"unknown id", "/locations/loc-9", http.StatusNotFound},
		{"cities without repo", "/cities", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := do(r, http.MethodGet, tc.path, ""); rec.Code != tc.status {
				t.Fatalf("status: want=%d got=%d", tc.status, rec.Code)
			}
		})
	}
	do(r, http.MethodGet, "/locations?city=kyoto&limit=1000", "")
	if store.last.Limit != maxLocationLimit {
		t.Fatalf("limit cap: want=%d got=%d", maxLocationLimit, store.last.Limit)
	}
}

func TestTravelTime(t *testing.T) {
	r := newEngine()
	r.GET("/travel-time", NewTravelHandler().TravelTime)

	var body struct {
		Minutes int  `json:"minutes"`
		Known   bool `json:"known"`
	}
	rec := do(r, http.MethodGet, "/travel-time?from=Kyoto&to=osaka", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Minutes != 30 || !body.Known {
		t.Fatalf("kyoto-osaka: %+v", body)
	}

	rec = do(r, http.MethodGet, "/travel-time?from=Kyoto&to=Atlantis", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Minutes != 120 || body.Known {
		t.Fatalf("unknown pair: %+v", body)
	}

	rec = do(r, http.MethodGet, "/travel-time?fromLat=35&fromLng=135&toLat=35&toLng=135&mode=walk", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Minutes != 5 {
		t.Fatalf("same point on foot should cost the walk buffer, got %d", body.Minutes)
	}

	for _, path := range []string{"/travel-time?from=Kyoto", "/travel-time?fromLat=95&fromLng=0&toLat=0&toLng=0"} {
		if rec := do(r, http.MethodGet, path, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: want=400 got=%d", path, rec.Code)
		}
	}
}
