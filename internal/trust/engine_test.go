package trust

import (
	"context"
	"testing"
	"time"

	"github.com/ZulAmi/proofwork/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyzer returns a fixed polarity per comment text.
type stubAnalyzer struct {
	polarities map[string]float64
}

func (s stubAnalyzer) Polarity(_ context.Context, text string) float64 {
	return s.polarities[text]
}

func newTestEngine(polarities map[string]float64) (*Engine, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0).UTC())
	return NewEngine(DefaultConfig(), stubAnalyzer{polarities: polarities}, clock), clock
}

func review(id string, verified bool, rating int, comment string, timestamp int64) domain.Review {
	return domain.Review{
		ReviewerID:       id,
		ReviewerVerified: verified,
		Rating:           rating,
		Comment:          comment,
		Timestamp:        timestamp,
	}
}

func TestDecay_ZeroAgeIsExactlyOne(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	assert.Equal(t, 1.0, engine.Decay(now, now))
}

func TestDecay_MonotonicNonIncreasingWithAge(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	ages := []int64{0, 1, 3600, 86400, thirtyDaysSeconds, 6 * thirtyDaysSeconds, 24 * thirtyDaysSeconds}
	prev := engine.Decay(now-ages[0], now)
	for _, age := range ages[1:] {
		cur := engine.Decay(now-age, now)
		assert.LessOrEqual(t, cur, prev, "decay must not increase with age %d", age)
		assert.Greater(t, cur, 0.0)
		prev = cur
	}
}

func TestDecay_FutureTimestampExceedsOne(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	assert.Greater(t, engine.Decay(now+thirtyDaysSeconds, now), 1.0)
}

func TestCredibility_VerifiedOutweighsUnverified(t *testing.T) {
	engine, _ := newTestEngine(nil)

	assert.Equal(t, 1.5, engine.Credibility(true))
	assert.Equal(t, 0.8, engine.Credibility(false))
}

func TestAggregate_NoReviewsYieldsNeutralScore(t *testing.T) {
	engine, clock := newTestEngine(nil)

	score := engine.Aggregate(context.Background(), nil)

	assert.Equal(t, 50.0, score.Score)
	assert.Equal(t, 0.0, score.Confidence)
	assert.Equal(t, 0, score.ReviewCount)
	assert.Equal(t, 0.0, score.AverageRating)
	assert.Equal(t, 0.0, score.SentimentAdjustment)
	assert.Equal(t, 1.0, score.RecencyFactor)
	assert.Equal(t, clock.Now(), score.CalculationTime)
}

func TestAggregate_SingleFreshFiveStarReview(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	score := engine.Aggregate(context.Background(), []domain.Review{
		review("0xclient", true, 5, "", now),
	})

	assert.Equal(t, 100.0, score.Score)
	assert.Equal(t, 0.1, score.Confidence)
	assert.Equal(t, 1, score.ReviewCount)
	assert.Equal(t, 5.0, score.AverageRating)
	assert.Equal(t, 0.0, score.SentimentAdjustment)
	assert.Equal(t, 1.0, score.RecencyFactor)
}

func TestAggregate_EqualWeightReviewsAverage(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	score := engine.Aggregate(context.Background(), []domain.Review{
		review("0xa", false, 1, "", now),
		review("0xb", false, 5, "", now),
	})

	assert.Equal(t, 3.0, score.AverageRating)
	assert.Equal(t, 50.0, score.Score)
	assert.Equal(t, 0.2, score.Confidence)
}

func TestAggregate_VerifiedReviewerPullsAverage(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	// (5*1.5 + 1*0.8) / (1.5 + 0.8) = 8.3 / 2.3
	score := engine.Aggregate(context.Background(), []domain.Review{
		review("0xverified", true, 5, "", now),
		review("0xanon", false, 1, "", now),
	})

	assert.InDelta(t, 3.61, score.AverageRating, 0.005)
	assert.Greater(t, score.AverageRating, 3.0)
}

func TestAggregate_PositiveSentimentLiftsScore(t *testing.T) {
	engine, clock := newTestEngine(map[string]float64{"great work": 1.0})
	now := clock.Now().Unix()

	score := engine.Aggregate(context.Background(), []domain.Review{
		review("0xclient", true, 3, "great work", now),
	})

	assert.Equal(t, 0.3, score.SentimentAdjustment)
	assert.Equal(t, 57.5, score.Score)
	assert.Equal(t, 3.0, score.AverageRating)
}

func TestAggregate_NegativeSentimentLowersScore(t *testing.T) {
	engine, clock := newTestEngine(map[string]float64{"terrible": -1.0})
	now := clock.Now().Unix()

	score := engine.Aggregate(context.Background(), []domain.Review{
		review("0xclient", true, 3, "terrible", now),
	})

	assert.Equal(t, -0.3, score.SentimentAdjustment)
	assert.Equal(t, 42.5, score.Score)
}

func TestAggregate_SentimentCannotPushRatingPastBounds(t *testing.T) {
	engine, clock := newTestEngine(map[string]float64{"perfect": 1.0, "awful": -1.0})
	now := clock.Now().Unix()

	top := engine.Aggregate(context.Background(), []domain.Review{
		review("0xa", true, 5, "perfect", now),
	})
	bottom := engine.Aggregate(context.Background(), []domain.Review{
		review("0xb", true, 1, "awful", now),
	})

	assert.Equal(t, 100.0, top.Score)
	assert.Equal(t, 0.0, bottom.Score)
}

func TestAggregate_EmptyCommentSkipsAnalyzer(t *testing.T) {
	called := false
	analyzer := funcAnalyzer(func(context.Context, string) float64 {
		called = true
		return 1.0
	})
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0).UTC())
	engine := NewEngine(DefaultConfig(), analyzer, clock)

	score := engine.Aggregate(context.Background(), []domain.Review{
		review("0xclient", true, 4, "", clock.Now().Unix()),
	})

	assert.False(t, called)
	assert.Equal(t, 0.0, score.SentimentAdjustment)
}

type funcAnalyzer func(ctx context.Context, text string) float64

func (f funcAnalyzer) Polarity(ctx context.Context, text string) float64 { return f(ctx, text) }

func TestAggregate_OldReviewsLowerRecencyFactor(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	fresh := engine.Aggregate(context.Background(), []domain.Review{
		review("0xa", true, 4, "", now),
	})
	stale := engine.Aggregate(context.Background(), []domain.Review{
		review("0xa", true, 4, "", now-24*thirtyDaysSeconds),
	})

	assert.Equal(t, 1.0, fresh.RecencyFactor)
	assert.Less(t, stale.RecencyFactor, 1.0)
	assert.Greater(t, stale.RecencyFactor, 0.0)
}

func TestAggregate_OldReviewOutweighedByFreshOne(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	// Same credibility on both sides; the fresh 5-star must dominate the
	// two-year-old 1-star.
	score := engine.Aggregate(context.Background(), []domain.Review{
		review("0xold", false, 1, "", now-24*thirtyDaysSeconds),
		review("0xnew", false, 5, "", now),
	})

	assert.Greater(t, score.AverageRating, 3.0)
}

func TestAggregate_FutureTimestampWeighsLikeNow(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	future := engine.Aggregate(context.Background(), []domain.Review{
		review("0xa", true, 5, "", now+thirtyDaysSeconds),
	})
	present := engine.Aggregate(context.Background(), []domain.Review{
		review("0xa", true, 5, "", now),
	})

	assert.Equal(t, present.Score, future.Score)
	assert.Equal(t, 1.0, future.RecencyFactor)
}

func TestAggregate_ConfidenceGrowsWithReviewCount(t *testing.T) {
	engine, clock := newTestEngine(nil)
	now := clock.Now().Unix()

	prev := -1.0
	for n := 1; n <= 12; n++ {
		reviews := make([]domain.Review, n)
		for i := range reviews {
			reviews[i] = review("0xclient", true, 4, "", now)
		}
		score := engine.Aggregate(context.Background(), reviews)

		assert.GreaterOrEqual(t, score.Confidence, prev)
		assert.LessOrEqual(t, score.Confidence, 1.0)
		prev = score.Confidence
	}

	ten := make([]domain.Review, 10)
	for i := range ten {
		ten[i] = review("0xclient", true, 4, "", now)
	}
	assert.Equal(t, 1.0, engine.Aggregate(context.Background(), ten).Confidence)
}

func TestAggregate_ScoreAlwaysWithinBounds(t *testing.T) {
	engine, clock := newTestEngine(map[string]float64{"pos": 1.0, "neg": -1.0})
	now := clock.Now().Unix()

	cases := [][]domain.Review{
		{review("0xa", true, 1, "neg", now)},
		{review("0xa", false, 5, "pos", now)},
		{review("0xa", true, 1, "neg", now - 48*thirtyDaysSeconds)},
		{review("0xa", true, 5, "pos", now), review("0xb", false, 1, "neg", now)},
	}
	for _, reviews := range cases {
		score := engine.Aggregate(context.Background(), reviews)
		assert.GreaterOrEqual(t, score.Score, 0.0)
		assert.LessOrEqual(t, score.Score, 100.0)
		assert.GreaterOrEqual(t, score.Confidence, 0.0)
		assert.LessOrEqual(t, score.Confidence, 1.0)
	}
}

func TestAggregate_DeterministicForFixedClock(t *testing.T) {
	engine, clock := newTestEngine(map[string]float64{"solid": 0.6})
	now := clock.Now().Unix()

	reviews := []domain.Review{
		review("0xa", true, 5, "solid", now-thirtyDaysSeconds),
		review("0xb", false, 3, "", now-2*thirtyDaysSeconds),
	}

	first := engine.Aggregate(context.Background(), reviews)
	second := engine.Aggregate(context.Background(), reviews)

	require.Equal(t, first, second)
}
