package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/tripcraft-backend/internal/domain/geo"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
	"github.com/yungbote/tripcraft-backend/internal/pkg/httpx"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

const DefaultBaseURL = "https://api.open-meteo.com"

// Client fetches single-day forecasts. DailyForecast returns (nil, nil) when
// the provider has no data for the date (e.g. beyond the forecast horizon).
type Client interface {
	DailyForecast(ctx context.Context, at geo.Coordinates, date time.Time) (*weather.Forecast, error)
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
	BaseBackoff time.Duration
	HTTPClient  *http.Client
}

type client struct {
	log         *logger.Logger
	baseURL     string
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

func NewClient(cfg Config, log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("open-meteo base url: %w", err)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	backoff := cfg.BaseBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &client{
		log:         log.With("service", "OpenMeteoClient"),
		baseURL:     base,
		httpClient:  hc,
		maxRetries:  retries,
		baseBackoff: backoff,
	}, nil
}

type forecastResponse struct {
	Daily struct {
		Time        []string   `json:"time"`
		WeatherCode []*int     `json:"weather_code"`
		TempMax     []*float64 `json:"temperature_2m_max"`
		TempMin     []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

type errorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

func (c *client) DailyForecast(ctx context.Context, at geo.Coordinates, date time.Time) (*weather.Forecast, error) {
	if date.IsZero() {
		return nil, nil
	}
	day := date.Format("2006-01-02")
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(at.Lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(at.Lng, 'f', 4, 64))
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min")
	q.Set("timezone", "auto")
	q.Set("start_date", day)
	q.Set("end_date", day)

	raw, err := c.get(ctx, "/v1/forecast?"+q.Encode())
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusBadRequest {
			// out-of-range dates are reported as 400
			c.log.Debug("No forecast for date", "date", day, "reason", se.Body)
			return nil, nil
		}
		return nil, err
	}

	var resp forecastResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("open-meteo decode: %w", err)
	}
	return pickDay(resp, day), nil
}

func pickDay(resp forecastResponse, day string) *weather.Forecast {
	for i, d := range resp.Daily.Time {
		if d != day || i >= len(resp.Daily.WeatherCode) || resp.Daily.WeatherCode[i] == nil {
			continue
		}
		f := &weather.Forecast{Date: d, Condition: ConditionFromWMO(*resp.Daily.WeatherCode[i])}
		if i < len(resp.Daily.TempMin) && i < len(resp.Daily.TempMax) &&
			resp.Daily.TempMin[i] != nil && resp.Daily.TempMax[i] != nil {
			f.Temperature = &weather.TemperatureRange{Min: *resp.Daily.TempMin[i], Max: *resp.Daily.TempMax[i]}
		}
		return f
	}
	return nil
}

func (c *client) get(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, raw, err := c.doOnce(ctx, path)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			break
		}

		sleepFor := httpx.RetryAfterDuration(resp, httpx.Backoff(attempt, c.baseBackoff, 8*time.Second), 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)
		c.log.Warn("Open-Meteo request retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		if err := httpx.Sleep(ctx, sleepFor); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *client) doOnce(ctx context.Context, path string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := string(raw)
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Reason != "" {
			body = er.Reason
		}
		if len(body) > 512 {
			body = body[:512]
		}
		return resp, raw, &httpx.StatusError{Service: "open-meteo", StatusCode: resp.StatusCode, Body: body}
	}
	return resp, raw, nil
}
