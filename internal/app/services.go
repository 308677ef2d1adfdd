package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/tripcraft-backend/internal/clients/redis"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/modules/scoring"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
	"github.com/yungbote/tripcraft-backend/internal/services"
)

type Services struct {
	// Locations is the store the finder and the catalog endpoints read,
	// cached when Redis is configured.
	Locations   replacement.LocationStore
	Cache       *redis.CachedLocationStore
	Finder      *replacement.Finder
	Trip        services.TripService
	Replacement services.ReplacementService
	Tokens      services.TokenVerifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	if err := scoring.TablesLoadError(); err != nil {
		log.Warn("Scoring tables fell back to built-in defaults", "error", err)
	}

	var (
		locations replacement.LocationStore = services.NewLocationStore(reposet.Location)
		cache     *redis.CachedLocationStore
	)
	if clients.Redis != nil {
		cache = redis.NewCachedLocationStore(locations, clients.Redis, cfg.RedisLocationTTL, log)
		locations = cache
	}

	finder := replacement.NewFinder(locations, scoring.DefaultTables(), log)
	tripService := services.NewTripService(db, log, reposet.Trip, reposet.History, locations, finder)
	replacementService := services.NewReplacementService(log, tripService, finder, clients.Weather)

	tokens, err := services.NewTokenVerifier(log, cfg.JWTSecretKey)
	if err != nil {
		return Services{}, fmt.Errorf("init token verifier: %w", err)
	}

	return Services{
		Locations:   locations,
		Cache:       cache,
		Finder:      finder,
		Trip:        tripService,
		Replacement: replacementService,
		Tokens:      tokens,
	}, nil
}
