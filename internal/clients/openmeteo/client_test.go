package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/tripcraft-backend/internal/domain/geo"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

var kyoto = geo.Coordinates{Lat: 35.0116, Lng: 135.7681}

func newTestClient(t *testing.T, srv *httptest.Server, retries int) Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: srv.URL, MaxRetries: retries, BaseBackoff: time.Millisecond}, logger.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestDailyForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast" {
			t.Errorf("path: want=/v1/forecast got=%s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("start_date") != "2026-04-03" || q.Get("end_date") != "2026-04-03" {
			t.Errorf("dates: %s..%s", q.Get("start_date"), q.Get("end_date"))
		}
		if q.Get("latitude") != "35.0116" {
			t.Errorf("latitude: %s", q.Get("latitude"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"daily":{"time":["2026-04-03"],"weather_code":[63],"temperature_2m_max":[17.5],"temperature_2m_min":[9.0]}}`))
	}))
	defer srv.Close()

	f, err := newTestClient(t, srv, 0).DailyForecast(context.Background(), kyoto, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DailyForecast: %v", err)
	}
	if f == nil || f.Condition != weather.ConditionRain || f.Date != "2026-04-03" {
		t.Fatalf("forecast: %+v", f)
	}
	if f.Temperature == nil || f.Temperature.Min != 9.0 || f.Temperature.Max != 17.5 {
		t.Fatalf("temperature: %+v", f.Temperature)
	}
}

func TestDailyForecastRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"daily":{"time":["2026-04-03"],"weather_code":[0],"temperature_2m_max":[null],"temperature_2m_min":[null]}}`))
	}))
	defer srv.Close()

	f, err := newTestClient(t, srv, 3).DailyForecast(context.Background(), kyoto, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DailyForecast: %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("calls: want=3 got=%d", calls)
	}
	if f.Condition != weather.ConditionClear || f.Temperature != nil {
		t.Fatalf("forecast: %+v", f)
	}
}

func TestDailyForecastGivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv, 2).DailyForecast(context.Background(), kyoto, time.Now()); err == nil {
		t.Fatalf("want error after retries")
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("calls: want=3 got=%d", calls)
	}
}

func TestDailyForecastOutOfRange(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Parameter 'start_date' is out of allowed range"}`))
	}))
	defer srv.Close()

	f, err := newTestClient(t, srv, 3).DailyForecast(context.Background(), kyoto, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil || f != nil {
		t.Fatalf("out of range: want (nil, nil) got (%v, %v)", f, err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("400 must not be retried: calls=%d", calls)
	}

	if f, err := newTestClient(t, srv, 0).DailyForecast(context.Background(), kyoto, time.Time{}); err != nil || f != nil {
		t.Fatalf("zero date: want (nil, nil) got (%v, %v)", f, err)
	}
}

func TestConditionFromWMO(t *testing.T) {
	cases := map[int]weather.Condition{
		0:  weather.ConditionClear,
		1:  weather.ConditionClear,
		3:  weather.ConditionCloudy,
		45: weather.ConditionFog,
		53: weather.ConditionDrizzle,
		65: weather.ConditionRain,
		81: weather.ConditionRain,
		73: weather.ConditionSnow,
		86: weather.ConditionSnow,
		95: weather.ConditionThunderstorm,
		42: weather.ConditionCloudy,
	}
	for code, want := range cases {
		if got := ConditionFromWMO(code); got != want {
			t.Fatalf("ConditionFromWMO(%d): want=%s got=%s", code, want, got)
		}
	}
}
