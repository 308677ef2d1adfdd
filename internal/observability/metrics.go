package observability

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

// Metrics is a small Prometheus text-format registry. Every method is safe
// on a nil receiver so callers can use Current() unconditionally.
type Metrics struct {
	apiRequests           *CounterVec
	apiLatency            *HistogramVec
	apiInflight           *GaugeVec
	replacementRuns       *CounterVec
	replacementCandidates *HistogramVec
	forecastRequests      *CounterVec
	locationCache         *CounterVec
	pgStats               *GaugeVec
	redisUp               *GaugeVec
	redisPing             *GaugeVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func Current() *Metrics {
	return instance
}

// Init installs the process-wide registry when METRICS_ENABLED is set.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("tc_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"tc_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight:     NewGaugeVec("tc_api_inflight_requests", "In-flight API requests.", nil),
		replacementRuns: NewCounterVec("tc_replacement_requests_total", "Replacement searches by outcome.", []string{"outcome"}),
		replacementCandidates: NewHistogramVec(
			"tc_replacement_candidates",
			"Candidates returned per replacement search.",
			nil,
			[]float64{0, 1, 3, 5, 10, 20},
		),
		forecastRequests: NewCounterVec("tc_forecast_requests_total", "Weather forecast lookups by outcome.", []string{"outcome"}),
		locationCache:    NewCounterVec("tc_location_cache_total", "Location cache lookups by kind/result.", []string{"kind", "result"}),
		pgStats:          NewGaugeVec("tc_postgres_pool", "Postgres connection pool stats.", []string{"stat"}),
		redisUp:          NewGaugeVec("tc_redis_up", "1 when the last Redis ping succeeded.", nil),
		redisPing:        NewGaugeVec("tc_redis_ping_seconds", "Latency of the last Redis ping.", nil),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed && log != nil {
			log.Error("metrics server failed", "error", err, "addr", addr)
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, s := range []promWriter{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.replacementRuns,
		m.replacementCandidates,
		m.forecastRequests,
		m.locationCache,
		m.pgStats,
		m.redisUp,
		m.redisPing,
	} {
		if err := s.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

// ObserveReplacement records one candidate search.
func (m *Metrics) ObserveReplacement(candidates int, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.replacementRuns.Inc("error")
		return
	case candidates == 0:
		m.replacementRuns.Inc("empty")
	default:
		m.replacementRuns.Inc("ok")
	}
	m.replacementCandidates.Observe(float64(candidates))
}

// IncForecast takes "ok", "none" or "error".
func (m *Metrics) IncForecast(outcome string) {
	if m == nil {
		return
	}
	m.forecastRequests.Inc(outcome)
}

// IncLocationCache takes kind "city"|"id" and result "hit"|"miss"|"error".
func (m *Metrics) IncLocationCache(kind, result string) {
	if m == nil {
		return
	}
	m.locationCache.Inc(kind, result)
}

func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: postgres stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.pgStats.Set(float64(stats.OpenConnections), "open_connections")
				m.pgStats.Set(float64(stats.InUse), "in_use")
				m.pgStats.Set(float64(stats.Idle), "idle")
				m.pgStats.Set(float64(stats.WaitCount), "wait_count")
				m.pgStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	interval := scrapeInterval()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = rdb.Close()
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

func scrapeInterval() time.Duration {
	v := strings.TrimSpace(os.Getenv("METRICS_SCRAPE_INTERVAL_SECONDS"))
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 10 * time.Second
	}
	return time.Duration(n) * time.Second
}
