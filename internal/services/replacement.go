package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/tripcraft-backend/internal/clients/openmeteo"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/modules/routing"
	"github.com/yungbote/tripcraft-backend/internal/modules/scoring"
	"github.com/yungbote/tripcraft-backend/internal/observability"
	pkgerrors "github.com/yungbote/tripcraft-backend/internal/pkg/errors"
	"github.com/yungbote/tripcraft-backend/internal/platform/apierr"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type SuggestRequest struct {
	TripID        string
	DayID         string
	ActivityID    string
	MaxCandidates int
	// Date (YYYY-MM-DD) overrides the date derived from the trip start.
	Date           string
	RequirePlaceID bool
}

type ReplacementService interface {
	Suggest(ctx context.Context, req SuggestRequest) (*replacement.ReplacementOptions, error)
}

// TripReader is the slice of TripService the replacement flow needs.
type TripReader interface {
	Get(ctx context.Context, tripID string) (*trips.StoredTrip, error)
}

type replacementService struct {
	log     *logger.Logger
	trips   TripReader
	finder  *replacement.Finder
	weather openmeteo.Client
	tracer  trace.Tracer
}

// NewReplacementService builds the suggest flow. weatherClient may be nil,
// which disables forecasts.
func NewReplacementService(baseLog *logger.Logger, tripReader TripReader, finder *replacement.Finder, weatherClient openmeteo.Client) ReplacementService {
	return &replacementService{
		log:     baseLog.With("service", "ReplacementService"),
		trips:   tripReader,
		finder:  finder,
		weather: weatherClient,
		tracer:  otel.Tracer("tripcraft/replacement"),
	}
}

func (s *replacementService) Suggest(ctx context.Context, req SuggestRequest) (*replacement.ReplacementOptions, error) {
	ctx, span := s.tracer.Start(ctx, "replacement.Suggest", trace.WithAttributes(
		attribute.String("trip.id", req.TripID),
		attribute.String("day.id", req.DayID),
		attribute.String("activity.id", req.ActivityID),
	))
	defer span.End()

	var date time.Time
	if raw := strings.TrimSpace(req.Date); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, apierr.BadRequest("invalid_date", fmt.Errorf("date %q: %w", raw, pkgerrors.ErrInvalidArgument))
		}
		date = d
	}

	trip, err := s.trips.Get(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	dayIndex := trip.Itinerary.DayIndex(req.DayID)
	if dayIndex < 0 {
		return nil, apierr.NotFound("day")
	}
	day := trip.Itinerary.Days[dayIndex]
	activity, err := findActivity(trip.Itinerary, req.DayID, req.ActivityID)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = scoring.TripDate(trip.BuilderData, dayIndex)
	}

	forecast := s.forecast(ctx, day, date)

	opts, err := s.finder.FindCandidates(ctx, replacement.Request{
		Activity:       activity,
		TripData:       trip.BuilderData,
		AllActivities:  trip.Itinerary.AllActivities(),
		DayActivities:  day.Activities,
		DayIndex:       dayIndex,
		MaxCandidates:  req.MaxCandidates,
		Weather:        forecast,
		Date:           date,
		RequirePlaceID: req.RequirePlaceID,
	})
	if err != nil {
		observability.Current().ObserveReplacement(0, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "find candidates")
		return nil, err
	}
	observability.Current().ObserveReplacement(len(opts.Candidates), nil)
	span.SetAttributes(
		attribute.Int("candidates.count", len(opts.Candidates)),
		attribute.Bool("weather.used", forecast != nil),
	)
	return opts, nil
}

// forecast is best effort: provider failures are logged and scoring goes on
// without weather.
func (s *replacementService) forecast(ctx context.Context, day trips.Day, date time.Time) *weather.Forecast {
	if s.weather == nil || date.IsZero() {
		return nil
	}
	center, ok := routing.CityCenter(day.City)
	if !ok {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "replacement.forecast", trace.WithAttributes(
		attribute.String("city", day.City),
		attribute.String("date", date.Format("2006-01-02")),
	))
	defer span.End()

	f, err := s.weather.DailyForecast(ctx, center, date)
	switch {
	case err != nil:
		observability.Current().IncForecast("error")
		span.RecordError(err)
		s.log.Warn("Forecast unavailable, scoring without weather", "city", day.City, "error", err)
		return nil
	case f == nil:
		observability.Current().IncForecast("none")
	default:
		observability.Current().IncForecast("ok")
	}
	return f
}
