package domain

import "context"

// ReviewSource returns the known reviews for a subject, in the order the
// source reports them. "No reviews found" is an empty slice, not an error.
type ReviewSource interface {
	FetchReviews(ctx context.Context, address string) ([]Review, error)
}

// SentimentAnalyzer turns free text into a polarity in [-1,1]. Implementations
// must degrade to neutral 0 instead of surfacing failures; the engine never
// observes an analyzer error.
type SentimentAnalyzer interface {
	Polarity(ctx context.Context, text string) float64
}

// ScoreCache caches computed trust scores per subject. Get returns
// ErrScoreNotCached on a miss.
type ScoreCache interface {
	Get(ctx context.Context, address string) (*TrustScore, error)
	Set(ctx context.Context, address string, score *TrustScore) error
}

// EventPublisher emits score lifecycle events for downstream consumers.
type EventPublisher interface {
	PublishScoreComputed(ctx context.Context, score *TrustScore) error
}
