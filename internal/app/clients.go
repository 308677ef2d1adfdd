package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/tripcraft-backend/internal/clients/openmeteo"
	"github.com/yungbote/tripcraft-backend/internal/clients/redis"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type Clients struct {
	// Redis is nil when REDIS_ADDR is unset; locations are then read
	// straight from Postgres.
	Redis   redis.Backend
	Weather openmeteo.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var backend redis.Backend
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		b, err := redis.NewBackend(cfg.RedisAddr, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		backend = b
	}

	// Open-Meteo
	var weather openmeteo.Client
	if cfg.WeatherEnabled {
		w, err := openmeteo.NewClient(openmeteo.Config{
			BaseURL:    cfg.OpenMeteoBaseURL,
			Timeout:    cfg.OpenMeteoTimeout,
			MaxRetries: cfg.OpenMeteoRetries,
		}, log)
		if err != nil {
			if backend != nil {
				_ = backend.Close()
			}
			return Clients{}, fmt.Errorf("init open-meteo client: %w", err)
		}
		weather = w
	}

	return Clients{Redis: backend, Weather: weather}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
