package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/tripcraft-backend/internal/clients/openmeteo"
	"github.com/yungbote/tripcraft-backend/internal/clients/redis"
	"github.com/yungbote/tripcraft-backend/internal/data/db"
	"github.com/yungbote/tripcraft-backend/internal/observability"
	"github.com/yungbote/tripcraft-backend/internal/platform/envutil"
)

type Config struct {
	LogMode  string
	Port     string
	Postgres db.PostgresConfig

	RedisAddr        string
	RedisLocationTTL time.Duration

	JWTSecretKey string

	WeatherEnabled   bool
	OpenMeteoBaseURL string
	OpenMeteoTimeout time.Duration
	OpenMeteoRetries int

	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string

	MetricsAddr   string
	ShutdownGrace time.Duration
	Otel          observability.OtelConfig
}

func LoadConfig() Config {
	return Config{
		LogMode:  envutil.String("LOG_MODE", "development"),
		Port:     envutil.String("PORT", "8080"),
		Postgres: db.PostgresConfigFromEnv(),

		RedisAddr:        envutil.String("REDIS_ADDR", ""),
		RedisLocationTTL: envutil.Duration("REDIS_LOCATION_TTL", redis.DefaultCacheTTL),

		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),

		WeatherEnabled:   envutil.Bool("WEATHER_ENABLED", true),
		OpenMeteoBaseURL: envutil.String("OPEN_METEO_BASE_URL", openmeteo.DefaultBaseURL),
		OpenMeteoTimeout: envutil.Duration("OPEN_METEO_TIMEOUT", 10*time.Second),
		OpenMeteoRetries: envutil.Int("OPEN_METEO_MAX_RETRIES", 2),

		RateLimitRPS:   envutil.Float("RATE_LIMIT_RPS", 10),
		RateLimitBurst: envutil.Int("RATE_LIMIT_BURST", 20),
		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),

		MetricsAddr:   envutil.String("METRICS_ADDR", ""),
		ShutdownGrace: envutil.Duration("SHUTDOWN_GRACE", 15*time.Second),
		Otel:          observability.OtelConfigFromEnv(),
	}
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive when RATE_LIMIT_RPS is set")
	}
	return nil
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
