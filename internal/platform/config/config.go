// Package config loads runtime configuration from the environment so
// main stays lean. Every external system is optional: unset values fall
// back to in-process implementations.
package config

import (
	"os"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// RedisConfig captures the shared Redis connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// JWTConfig configures responder session tokens.
type JWTConfig struct {
	SigningKey string
	Issuer     string
	Audience   string
	SessionTTL time.Duration
}

// Config is the full service configuration.
type Config struct {
	Server      Server
	Redis       RedisConfig
	PostgresDSN string
	// KafkaBrokers enables activity event publishing when non-empty.
	KafkaBrokers []string
	JWT          JWTConfig

	// External gating providers; unset values select static fallbacks.
	CaptchaSecret  string
	SybilScorerURL string
	ClaimsBaseURL  string
}

// FromEnv builds the configuration from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr: envOr("COMMUNE_ADDR", ":8080"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("COMMUNE_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		PostgresDSN:  os.Getenv("COMMUNE_POSTGRES_DSN"),
		KafkaBrokers: splitList(os.Getenv("COMMUNE_KAFKA_BROKERS")),
		JWT: JWTConfig{
			SigningKey: envOr("COMMUNE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:     envOr("COMMUNE_JWT_ISSUER", "commune"),
			Audience:   envOr("COMMUNE_JWT_AUDIENCE", "commune-api"),
			SessionTTL: 24 * time.Hour,
		},
		CaptchaSecret:  os.Getenv("COMMUNE_CAPTCHA_SECRET"),
		SybilScorerURL: os.Getenv("COMMUNE_SYBIL_SCORER_URL"),
		ClaimsBaseURL:  os.Getenv("COMMUNE_CLAIMS_BASE_URL"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
