package app

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("REDIS_LOCATION_TTL", "90")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("WEATHER_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := LoadConfig()
	if cfg.Addr() != ":9090" {
		t.Fatalf("addr: want=:9090 got=%s", cfg.Addr())
	}
	if cfg.RedisLocationTTL != 90*time.Second {
		t.Fatalf("redis ttl: want=90s got=%s", cfg.RedisLocationTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins: %v", cfg.AllowedOrigins)
	}
	if cfg.WeatherEnabled {
		t.Fatalf("weather should be disabled")
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("rps: want=2.5 got=%v", cfg.RateLimitRPS)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	base := Config{Port: "8080", JWTSecretKey: "k", RateLimitRPS: 1, RateLimitBurst: 1}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"missing secret", func(c *Config) { c.JWTSecretKey = " " }, true},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"rps without burst", func(c *Config) { c.RateLimitBurst = 0 }, true},
		{"limiting disabled", func(c *Config) { c.RateLimitRPS = 0; c.RateLimitBurst = 0 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Fatalf("Validate: wantErr=%v got=%v", tc.wantErr, err)
			}
		})
	}
}
