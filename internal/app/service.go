package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ZulAmi/proofwork/internal/domain"
	"github.com/ZulAmi/proofwork/internal/metrics"
	"github.com/ZulAmi/proofwork/internal/trust"
	"golang.org/x/sync/singleflight"
)

// Service orchestrates the scoring use cases. All dependencies are
// constructor-injected; unavailable integrations are represented by their
// explicit no-op variants, never by nil checks at call sites.
type Service struct {
	primary   domain.ReviewSource
	secondary domain.ReviewSource
	engine    *trust.Engine
	cache     domain.ScoreCache
	events    domain.EventPublisher

	// scoreGroup collapses concurrent recomputations for the same subject.
	scoreGroup singleflight.Group
}

func NewService(primary, secondary domain.ReviewSource, engine *trust.Engine, cache domain.ScoreCache, events domain.EventPublisher) *Service {
	return &Service{
		primary:   primary,
		secondary: secondary,
		engine:    engine,
		cache:     cache,
		events:    events,
	}
}

// TrustScore returns the subject's trust score, from cache when possible.
// forceRefresh bypasses the cache read but still refreshes the cached entry.
// "No reviews" yields the neutral score, not an error; a failing source
// degrades to an empty feed so one broken integration cannot take the
// endpoint down.
func (s *Service) TrustScore(ctx context.Context, address string, forceRefresh bool) (*domain.TrustScore, error) {
	trigger := "cache_miss"
	if forceRefresh {
		trigger = "forced"
	} else {
		score, err := s.cache.Get(ctx, address)
		if err == nil {
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			return score, nil
		}
		if errors.Is(err, domain.ErrScoreNotCached) {
			metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		} else {
			metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
			slog.Warn("Score cache read failed, recomputing", "address", address, "error", err)
		}
	}

	result, err, _ := s.scoreGroup.Do(address, func() (any, error) {
		return s.computeScore(ctx, address, trigger), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.TrustScore), nil
}

func (s *Service) computeScore(ctx context.Context, address, trigger string) *domain.TrustScore {
	start := time.Now()

	primary, secondary := s.fetchBoth(ctx, address)
	merged := trust.Merge(primary, secondary)
	if len(merged) == 0 {
		slog.Warn("No reviews found for subject", "address", address)
	}

	score := s.engine.Aggregate(ctx, merged)
	score.Address = address

	if err := s.cache.Set(ctx, address, &score); err != nil {
		slog.Warn("Failed to cache trust score", "address", address, "error", err)
	}
	if err := s.events.PublishScoreComputed(ctx, &score); err != nil {
		slog.Warn("Failed to publish score event", "address", address, "error", err)
	}

	metrics.ScoreComputationsTotal.WithLabelValues(trigger).Inc()
	metrics.ScoreComputationDuration.Observe(time.Since(start).Seconds())
	return &score
}

// AnalyzeReviews returns the per-review diagnostic report. Unlike scoring,
// analysis runs over the raw concatenation of both feeds without dedup, so a
// reviewer present in both sources appears twice. That asymmetry is the
// contract: diagnostics want raw visibility into every record fetched.
func (s *Service) AnalyzeReviews(ctx context.Context, address string) (*domain.ReviewAnalysis, error) {
	primary, secondary := s.fetchBoth(ctx, address)

	combined := make([]domain.Review, 0, len(primary)+len(secondary))
	combined = append(combined, primary...)
	combined = append(combined, secondary...)

	analysis := s.engine.Analyze(ctx, combined)
	analysis.Address = address
	return &analysis, nil
}

// fetchBoth queries the two review sources concurrently. A source error is
// logged and degraded to an empty feed; the computation proceeds with
// whatever the other source returned.
func (s *Service) fetchBoth(ctx context.Context, address string) (primary, secondary []domain.Review) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		primary, err = s.primary.FetchReviews(ctx, address)
		if err != nil {
			slog.Error("Primary review source failed", "address", address, "error", err)
			primary = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		secondary, err = s.secondary.FetchReviews(ctx, address)
		if err != nil {
			slog.Error("Secondary review source failed", "address", address, "error", err)
			secondary = nil
		}
	}()

	wg.Wait()
	return primary, secondary
}

// EmptySource is the explicit "source unavailable" variant used when a review
// feed is not configured. It reports no reviews, a valid non-error outcome.
type EmptySource struct{}

func (EmptySource) FetchReviews(context.Context, string) ([]domain.Review, error) {
	return nil, nil
}
