package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.APIInflightInc()
	m.ObserveReplacement(3, nil)
	m.IncForecast("ok")
	m.IncLocationCache("city", "hit")
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("WritePrometheus on nil: %v", err)
	}
}

func TestObserveReplacementOutcomes(t *testing.T) {
	m := NewMetrics()
	m.ObserveReplacement(4, nil)
	m.ObserveReplacement(0, nil)
	m.ObserveReplacement(0, errors.New("db down"))

	for outcome, want := range map[string]float64{"ok": 1, "empty": 1, "error": 1} {
		if got := m.replacementRuns.Value(outcome); got != want {
			t.Fatalf("outcome %s: want=%v got=%v", outcome, want, got)
		}
	}
	if got := m.replacementCandidates.Count(); got != 2 {
		t.Fatalf("candidate observations: want=2 got=%d", got)
	}
}

func TestWritePrometheusFormat(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/trips/:id", "200", 30*time.Millisecond)
	m.ObserveAPI("GET", "/api/trips/:id", "200", 2*time.Second)
	m.IncLocationCache("city", "miss")
	m.APIInflightInc()
	m.APIInflightDec()

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# TYPE tc_api_requests_total counter",
		`tc_api_requests_total{method="GET",route="/api/trips/:id",status="200"} 2`,
		`tc_api_request_duration_seconds_bucket{method="GET",route="/api/trips/:id",le="0.05"} 1`,
		`tc_api_request_duration_seconds_bucket{method="GET",route="/api/trips/:id",le="+Inf"} 2`,
		`tc_api_request_duration_seconds_count{method="GET",route="/api/trips/:id"} 2`,
		`tc_location_cache_total{kind="city",result="miss"} 1`,
		"tc_api_inflight_requests 0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"route", "status"}, []string{`a"b\c`})
	want := `{route="a\"b\\c",status="unknown"}`
	if got != want {
		t.Fatalf("labelString: want=%s got=%s", want, got)
	}
}
