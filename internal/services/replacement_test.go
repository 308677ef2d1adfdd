package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/yungbote/tripcraft-backend/internal/clients/openmeteo"
	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/modules/routing"
	"github.com/yungbote/tripcraft-backend/internal/pkg/pointers"
	"github.com/yungbote/tripcraft-backend/internal/platform/apierr"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type staticTrips struct {
	trip trips.StoredTrip
}

func (s staticTrips) Get(_ context.Context, tripID string) (*trips.StoredTrip, error) {
	if tripID != s.trip.ID {
		return nil, apierr.NotFound("trip")
	}
	t := s.trip
	return &t, nil
}

func kyotoLocation(id, category string, lat, lng float64) *places.Location {
	return &places.Location{
		ID:          id,
		Name:        id,
		City:        "kyoto",
		Category:    category,
		Latitude:    lat,
		Longitude:   lng,
		Rating:      pointers.Float64(4.5),
		ReviewCount: 500,
		Tags:        places.StringList(category),
		PlaceID:     "place-" + id,
	}
}

func suggestFixture(client openmeteo.Client) ReplacementService {
	store := newMemLocationStore(
		kyotoLocation("loc-fushimi", "shrine", 34.9671, 135.7727),
		kyotoLocation("loc-kiyomizu", "temple", 34.9949, 135.7850),
		kyotoLocation("loc-museum", "museum", 34.9900, 135.7720),
		kyotoLocation("loc-garden", "garden", 35.0270, 135.7980),
	)
	trip := trips.StoredTrip{
		ID:   "trip-1",
		Name: "Kyoto",
		Itinerary: trips.Itinerary{Days: []trips.Day{
			{ID: "day-1", City: "kyoto", Activities: []trips.Activity{placeAct("a1", "Fushimi Inari", "loc-fushimi")}},
			{ID: "day-2", City: "kyoto", Activities: []trips.Activity{placeAct("a2", "Kiyomizu-dera", "loc-kiyomizu")}},
		}},
		BuilderData: trips.TripBuilderData{StartDate: "2026-04-03", Interests: []string{"culture", "nature"}},
	}
	finder := replacement.NewFinder(store, nil, logger.Nop())
	return NewReplacementService(logger.Nop(), staticTrips{trip: trip}, finder, client)
}

func candidateIDs(opts *replacement.ReplacementOptions) map[string]bool {
	out := map[string]bool{}
	for _, c := range opts.Candidates {
		out[c.Location.ID] = true
	}
	return out
}

func TestSuggestExcludesUsedLocations(t *testing.T) {
	svc := suggestFixture(nil)
	opts, err := svc.Suggest(context.Background(), SuggestRequest{TripID: "trip-1", DayID: "day-2", ActivityID: "a2"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	ids := candidateIDs(opts)
	if len(ids) != 2 || !ids["loc-museum"] || !ids["loc-garden"] {
		t.Fatalf("candidates: want museum+garden got %v", ids)
	}
	if opts.OriginalActivity.ID != "a2" {
		t.Fatalf("original activity: want=a2 got=%s", opts.OriginalActivity.ID)
	}
	for _, c := range opts.Candidates {
		if c.Breakdown.WeatherFit != 0 {
			t.Fatalf("no forecast configured, weather fit should be 0: %+v", c.Breakdown)
		}
	}
}

func TestSuggestFetchesForecastForDayDate(t *testing.T) {
	w := &fakeWeather{forecast: &weather.Forecast{Date: "2026-04-04", Condition: weather.ConditionRain}}
	svc := suggestFixture(w)

	opts, err := svc.Suggest(context.Background(), SuggestRequest{TripID: "trip-1", DayID: "day-2", ActivityID: "a2"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if w.calls != 1 {
		t.Fatalf("forecast calls: want=1 got=%d", w.calls)
	}
	if want := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC); !w.lastDate.Equal(want) {
		t.Fatalf("forecast date: want=%s got=%s", want, w.lastDate)
	}
	center, _ := routing.CityCenter("kyoto")
	if w.lastAt != center {
		t.Fatalf("forecast location: want=%v got=%v", center, w.lastAt)
	}
	if len(opts.Candidates) == 0 || opts.Candidates[0].Location.ID != "loc-museum" {
		t.Fatalf("rainy day should rank the museum first: %+v", opts.Candidates)
	}

	if _, err := svc.Suggest(context.Background(), SuggestRequest{TripID: "trip-1", DayID: "day-2", ActivityID: "a2", Date: "2026-05-01"}); err != nil {
		t.Fatalf("Suggest with date: %v", err)
	}
	if want := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC); !w.lastDate.Equal(want) {
		t.Fatalf("explicit date: want=%s got=%s", want, w.lastDate)
	}
}

func TestSuggestIgnoresForecastFailures(t *testing.T) {
	w := &fakeWeather{err: errors.New("upstream 503")}
	svc := suggestFixture(w)
	opts, err := svc.Suggest(context.Background(), SuggestRequest{TripID: "trip-1", DayID: "day-1", ActivityID: "a1"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(opts.Candidates) != 2 {
		t.Fatalf("candidates: want=2 got=%d", len(opts.Candidates))
	}
}

func TestSuggestRejectsBadInput(t *testing.T) {
	svc := suggestFixture(nil)
	cases := []struct {
		name   string
		req    SuggestRequest
		status int
		code   string
	}{
		{"unknown trip", SuggestRequest{TripID: "nope", DayID: "day-1", ActivityID: "a1"}, http.StatusNotFound, "trip_not_found"},
		{"unknown day", SuggestRequest{TripID: "trip-1", DayID: "day-9", ActivityID: "a1"}, http.StatusNotFound, "day_not_found"},
		{"unknown activity", SuggestRequest{TripID: "trip-1", DayID: "day-1", ActivityID: "zz"}, http.StatusNotFound, "activity_not_found"},
		{"bad date", SuggestRequest{TripID: "trip-1", DayID: "day-1", ActivityID: "a1", Date: "04/03/2026"}, http.StatusBadRequest, "invalid_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Suggest(context.Background(), tc.req)
			wantStatus(t, err, tc.status, tc.code)
		})
	}
}
