package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/tripcraft-backend/internal/http/handlers"
	httpMW "github.com/yungbote/tripcraft-backend/internal/http/middleware"
	"github.com/yungbote/tripcraft-backend/internal/observability"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics
	RateLimiter    *httpMW.RateLimiter
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	TripHandler        *httpH.TripHandler
	ActivityHandler    *httpH.ActivityHandler
	ReplacementHandler *httpH.ReplacementHandler
	LocationHandler    *httpH.LocationHandler
	TravelHandler      *httpH.TravelHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "tripcraft-api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	api.Use(cfg.RateLimiter.Limit())
	{
		// Catalog (public)
		if cfg.LocationHandler != nil {
			api.GET("/locations", cfg.LocationHandler.ListByCity)
			api.GET("/locations/:locationId", cfg.LocationHandler.GetLocation)
			api.GET("/cities", cfg.LocationHandler.ListCities)
		}
		if cfg.TravelHandler != nil {
			api.GET("/travel-time", cfg.TravelHandler.TravelTime)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Trips
		if cfg.TripHandler != nil {
			protected.GET("/trips", cfg.TripHandler.ListTrips)
			protected.POST("/trips", cfg.TripHandler.CreateTrip)
			protected.GET("/trips/:id", cfg.TripHandler.GetTrip)
			protected.PATCH("/trips/:id", cfg.TripHandler.RenameTrip)
			protected.DELETE("/trips/:id", cfg.TripHandler.DeleteTrip)
			protected.POST("/trips/:id/restore", cfg.TripHandler.RestoreTrip)
			protected.PUT("/trips/:id/itinerary", cfg.TripHandler.UpdateItinerary)
			protected.POST("/trips/:id/undo", cfg.TripHandler.Undo)
			protected.POST("/trips/:id/redo", cfg.TripHandler.Redo)
			protected.GET("/trips/:id/history", cfg.TripHandler.History)
		}

		// Activities
		if cfg.ActivityHandler != nil {
			protected.POST("/trips/:id/days/:dayId/activities", cfg.ActivityHandler.AddActivity)
			protected.PUT("/trips/:id/days/:dayId/activities/:activityId", cfg.ActivityHandler.ReplaceActivity)
			protected.DELETE("/trips/:id/days/:dayId/activities/:activityId", cfg.ActivityHandler.DeleteActivity)
			protected.POST("/trips/:id/days/:dayId/reorder", cfg.ActivityHandler.ReorderActivities)
		}

		// Replacements
		if cfg.ReplacementHandler != nil {
			protected.GET("/trips/:id/days/:dayId/activities/:activityId/replacements", cfg.ReplacementHandler.ListCandidates)
			protected.POST("/trips/:id/days/:dayId/activities/:activityId/replace", cfg.ReplacementHandler.ApplyReplacement)
		}
	}

	return r
}
