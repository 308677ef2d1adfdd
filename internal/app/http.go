package app

import (
	"context"

	"gorm.io/gorm"

	apphttp "github.com/yungbote/tripcraft-backend/internal/http"
	httpH "github.com/yungbote/tripcraft-backend/internal/http/handlers"
	httpMW "github.com/yungbote/tripcraft-backend/internal/http/middleware"
	"github.com/yungbote/tripcraft-backend/internal/observability"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type Middleware struct {
	Auth      *httpMW.AuthMiddleware
	RateLimit *httpMW.RateLimiter
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Trip        *httpH.TripHandler
	Activity    *httpH.ActivityHandler
	Replacement *httpH.ReplacementHandler
	Location    *httpH.LocationHandler
	Travel      *httpH.TravelHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, reposet Repos, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")
	checks := map[string]httpH.Pinger{
		"postgres": httpH.PingFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if clients.Redis != nil {
		checks["redis"] = clients.Redis
	}
	return Handlers{
		Health:      httpH.NewHealthHandler(checks),
		Trip:        httpH.NewTripHandler(log, services.Trip),
		Activity:    httpH.NewActivityHandler(log, services.Trip),
		Replacement: httpH.NewReplacementHandler(log, services.Replacement, services.Trip),
		Location:    httpH.NewLocationHandler(log, services.Locations, reposet.Location),
		Travel:      httpH.NewTravelHandler(),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:      httpMW.NewAuthMiddleware(log, services.Tokens),
		RateLimit: httpMW.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:                log,
		ServiceName:        cfg.Otel.ServiceName,
		AllowedOrigins:     cfg.AllowedOrigins,
		Metrics:            metrics,
		RateLimiter:        middleware.RateLimit,
		AuthMiddleware:     middleware.Auth,
		HealthHandler:      handlers.Health,
		TripHandler:        handlers.Trip,
		ActivityHandler:    handlers.Activity,
		ReplacementHandler: handlers.Replacement,
		LocationHandler:    handlers.Location,
		TravelHandler:      handlers.Travel,
	})
}
