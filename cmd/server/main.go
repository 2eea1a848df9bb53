package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZulAmi/proofwork/internal/adapter/eventbus"
	"github.com/ZulAmi/proofwork/internal/adapter/httpserver"
	"github.com/ZulAmi/proofwork/internal/adapter/postgres"
	"github.com/ZulAmi/proofwork/internal/adapter/redis"
	"github.com/ZulAmi/proofwork/internal/adapter/restfeed"
	"github.com/ZulAmi/proofwork/internal/app"
	"github.com/ZulAmi/proofwork/internal/domain"
	"github.com/ZulAmi/proofwork/internal/platform/config"
	"github.com/ZulAmi/proofwork/internal/platform/logging"
	"github.com/ZulAmi/proofwork/internal/sentiment"
	"github.com/ZulAmi/proofwork/internal/trust"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

const startupTimeout = 10 * time.Second

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupLedgerSource(cfg *config.Config) (domain.ReviewSource, *pgxpool.Pool) {
	if cfg.DatabaseURL == "" {
		slog.Warn("No DATABASE_URL configured, ledger review source disabled")
		return app.EmptySource{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	return postgres.NewLedgerRepo(pool), pool
}

func setupAPISource(cfg *config.Config) domain.ReviewSource {
	if cfg.ReviewsAPIURL == "" {
		slog.Warn("No REVIEWS_API_URL configured, REST review source disabled")
		return app.EmptySource{}
	}
	return restfeed.NewClient(cfg.ReviewsAPIURL)
}

func setupCache(cfg *config.Config) (domain.ScoreCache, *goredis.Client) {
	if cfg.RedisURL == "" {
		slog.Warn("No REDIS_URL configured, running without score cache")
		return redis.NoopCache{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return redis.NewScoreCache(client, cfg.CacheTTL), client
}

func setupAnalyzer(cfg *config.Config) domain.SentimentAnalyzer {
	if cfg.SentimentAPIURL == "" {
		slog.Warn("No SENTIMENT_API_URL configured, sentiment signal disabled")
		return sentiment.Noop{}
	}
	return sentiment.NewHTTPAnalyzer(cfg.SentimentAPIURL, cfg.SentimentMaxInputLen)
}

func setupEvents(cfg *config.Config) (domain.EventPublisher, *eventbus.Publisher) {
	if cfg.NATSURL == "" {
		return eventbus.Noop{}, nil
	}

	publisher, err := eventbus.Connect(cfg.NATSURL)
	if err != nil {
		slog.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	return publisher, publisher
}

func healthChecks(pool *pgxpool.Pool, redisClient *goredis.Client) []httpserver.HealthCheck {
	var checks []httpserver.HealthCheck
	if pool != nil {
		checks = append(checks, httpserver.HealthCheck{
			Name:  "postgres",
			Check: func(ctx context.Context) error { return pool.Ping(ctx) },
		})
	}
	if redisClient != nil {
		checks = append(checks, httpserver.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	return checks
}

func runGracefulShutdown(srv *httpserver.Server, natsPublisher *eventbus.Publisher) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if natsPublisher != nil {
			natsPublisher.Close()
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	ledgerSource, pool := setupLedgerSource(cfg)
	if pool != nil {
		defer pool.Close()
	}

	cache, redisClient := setupCache(cfg)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	events, natsPublisher := setupEvents(cfg)

	engine := trust.NewEngine(trust.Config{
		TimeDecayFactor:  cfg.TimeDecayFactor,
		UnitSeconds:      trust.DefaultConfig().UnitSeconds,
		SentimentWeight:  cfg.SentimentWeight,
		VerifiedWeight:   cfg.VerifiedClientWeight,
		UnverifiedWeight: cfg.UnverifiedClientWeight,
	}, setupAnalyzer(cfg), clockwork.NewRealClock())

	appSvc := app.NewService(ledgerSource, setupAPISource(cfg), engine, cache, events)

	srv := httpserver.NewServer(cfg, appSvc, healthChecks(pool, redisClient))
	done := runGracefulShutdown(srv, natsPublisher)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
