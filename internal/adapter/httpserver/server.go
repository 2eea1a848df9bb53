// Package httpserver exposes the scoring engine over HTTP. It owns request
// validation, auth, rate limiting, and serialization; the engine itself knows
// nothing about transport.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ZulAmi/proofwork/internal/domain"
	"github.com/ZulAmi/proofwork/internal/platform/config"
	"github.com/labstack/echo/v4"
)

type appService interface {
	TrustScore(ctx context.Context, address string, forceRefresh bool) (*domain.TrustScore, error)
	AnalyzeReviews(ctx context.Context, address string) (*domain.ReviewAnalysis, error)
}

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app          appService
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
