package trust

import (
	"context"
	"math"

	"github.com/ZulAmi/proofwork/internal/domain"
	"github.com/jonboulle/clockwork"
)

const (
	neutralScore  = 50.0
	neutralRating = 3.0
	// confidence saturates once this many reviews back the score.
	confidenceSaturation = 10
)

type Engine struct {
	cfg      Config
	analyzer domain.SentimentAnalyzer
	clock    clockwork.Clock
}

func NewEngine(cfg Config, analyzer domain.SentimentAnalyzer, clock clockwork.Clock) *Engine {
	return &Engine{cfg: cfg, analyzer: analyzer, clock: clock}
}

// Decay converts a review's age into a multiplicative weight. Monotonic
// non-increasing in age; a review stamped exactly now yields 1.0. The function
// is pure and unclamped: a future timestamp yields a value above 1. Callers
// inside the engine cap it via timeWeight.
func (e *Engine) Decay(timestamp, now int64) float64 {
	ageUnits := float64(now-timestamp) / float64(e.cfg.UnitSeconds)
	return math.Exp(-e.cfg.TimeDecayFactor * ageUnits)
}

// timeWeight caps decay at 1 so future-dated reviews weigh like reviews from
// right now instead of outweighing everything else.
func (e *Engine) timeWeight(timestamp, now int64) float64 {
	return math.Min(1, e.Decay(timestamp, now))
}

// Credibility returns the reviewer weight for a verification state.
func (e *Engine) Credibility(verified bool) float64 {
	if verified {
		return e.cfg.VerifiedWeight
	}
	return e.cfg.UnverifiedWeight
}

// polarity runs the sentiment analyzer on a comment. Empty comments are
// neutral without invoking the analyzer at all.
func (e *Engine) polarity(ctx context.Context, comment string) float64 {
	if comment == "" {
		return 0
	}
	return e.analyzer.Polarity(ctx, comment)
}

// Aggregate computes the trust score for a set of reviews. It is total: every
// input, including the empty set, produces a value and never an error. The
// empty set yields the defined neutral steady state.
func (e *Engine) Aggregate(ctx context.Context, reviews []domain.Review) domain.TrustScore {
	now := e.clock.Now()

	if len(reviews) == 0 {
		return domain.TrustScore{
			Score:           neutralScore,
			RecencyFactor:   1,
			CalculationTime: now,
		}
	}

	nowUnix := now.Unix()
	var weightedRatingSum, weightSum, weightedSentimentSum, decaySum float64

	for _, r := range reviews {
		tw := e.timeWeight(r.Timestamp, nowUnix)
		totalWeight := tw * e.Credibility(r.ReviewerVerified)

		weightedRatingSum += float64(r.Rating) * totalWeight
		weightSum += totalWeight
		decaySum += tw

		if r.Comment != "" {
			weightedSentimentSum += e.analyzer.Polarity(ctx, r.Comment) * totalWeight
		}
	}

	// weightSum is a sum of products of positive factors, so it is positive
	// whenever reviews is non-empty; the guard covers pathological configs
	// (λ large enough to underflow every decay to zero).
	weightedRating := neutralRating
	averageSentiment := 0.0
	if weightSum > 0 {
		weightedRating = weightedRatingSum / weightSum
		averageSentiment = weightedSentimentSum / weightSum
	}

	sentimentAdjustment := averageSentiment * e.cfg.SentimentWeight
	adjustedRating := clamp(weightedRating+sentimentAdjustment, domain.MinRating, domain.MaxRating)

	return domain.TrustScore{
		Score:               round((adjustedRating-1)*25, 1),
		Confidence:          round(math.Min(1, float64(len(reviews))/confidenceSaturation), 2),
		ReviewCount:         len(reviews),
		AverageRating:       round(weightedRating, 2),
		SentimentAdjustment: round(sentimentAdjustment, 2),
		RecencyFactor:       round(decaySum/float64(len(reviews)), 2),
		CalculationTime:     now,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// round is a presentation step applied to the final record only; intermediate
// values stay at full precision.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
