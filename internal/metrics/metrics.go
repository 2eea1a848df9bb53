// Package metrics defines the Prometheus instruments shared across the
// service. All instruments are registered via promauto at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scoring metrics
var (
	// ScoreComputationsTotal counts full trust score computations by trigger
	// (cache_miss, forced).
	ScoreComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustscore_computations_total",
			Help: "Total trust score computations by trigger",
		},
		[]string{"trigger"},
	)

	// ScoreComputationDuration tracks end-to-end computation latency,
	// including source fetches and sentiment calls.
	ScoreComputationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trustscore_computation_duration_seconds",
			Help:    "Trust score computation duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	// CacheRequestsTotal counts score cache lookups by outcome (hit, miss, error).
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustscore_cache_requests_total",
			Help: "Score cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// Review source metrics
var (
	// SourceFetchesTotal counts review source fetches by source name and status.
	SourceFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_source_fetches_total",
			Help: "Review source fetches by source and status",
		},
		[]string{"source", "status"},
	)

	// SourceFetchDuration tracks review source fetch latency by source name.
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_source_fetch_duration_seconds",
			Help:    "Review source fetch duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"source"},
	)

	// ReviewsRejectedTotal counts review records dropped at the ingestion
	// boundary for failing structural validation.
	ReviewsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_rejected_total",
			Help: "Review records rejected at ingestion by source",
		},
		[]string{"source"},
	)
)

// Sentiment metrics
var (
	// SentimentRequestsTotal counts classifier calls by status; failures
	// degrade to neutral polarity rather than surfacing errors.
	SentimentRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_requests_total",
			Help: "Sentiment classifier requests by status",
		},
		[]string{"status"},
	)
)

// Redis metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// Event metrics
var (
	// ScoreEventsPublishedTotal counts score-computed events by status.
	ScoreEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_events_published_total",
			Help: "Score computed events published by status",
		},
		[]string{"status"},
	)
)
