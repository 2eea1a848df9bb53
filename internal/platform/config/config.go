package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8000"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// Optional integrations. An empty URL selects the explicit no-op variant
	// of the dependency instead of a runtime existence check.
	DatabaseURL     string `env:"DATABASE_URL"`
	RedisURL        string `env:"REDIS_URL"`
	ReviewsAPIURL   string `env:"REVIEWS_API_URL"`
	SentimentAPIURL string `env:"SENTIMENT_API_URL"`
	NATSURL         string `env:"NATS_URL"`

	// APIKey protects the scoring endpoints when set; empty disables auth.
	APIKey string `env:"REQUIRED_API_KEY"`

	// Scoring tunables. Defaults match the documented engine constants.
	TimeDecayFactor        float64 `env:"TIME_DECAY_FACTOR" default:"0.05"`
	SentimentWeight        float64 `env:"SENTIMENT_WEIGHT" default:"0.3"`
	VerifiedClientWeight   float64 `env:"VERIFIED_CLIENT_WEIGHT" default:"1.5"`
	UnverifiedClientWeight float64 `env:"UNVERIFIED_CLIENT_WEIGHT" default:"0.8"`
	SentimentMaxInputLen   int     `env:"SENTIMENT_MAX_INPUT_LEN" default:"512"`

	CacheTTL time.Duration `env:"CACHE_TTL" default:"1h"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" default:"20"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" default:"40"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.TimeDecayFactor < 0 {
		return fmt.Errorf("TIME_DECAY_FACTOR must be non-negative, got %g", cfg.TimeDecayFactor)
	}
	if cfg.SentimentWeight < 0 {
		return fmt.Errorf("SENTIMENT_WEIGHT must be non-negative, got %g", cfg.SentimentWeight)
	}
	if cfg.VerifiedClientWeight <= 0 || cfg.UnverifiedClientWeight <= 0 {
		return fmt.Errorf("client weights must be positive, got verified=%g unverified=%g",
			cfg.VerifiedClientWeight, cfg.UnverifiedClientWeight)
	}
	if cfg.SentimentMaxInputLen <= 0 {
		return fmt.Errorf("SENTIMENT_MAX_INPUT_LEN must be positive, got %d", cfg.SentimentMaxInputLen)
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}
	return nil
}
