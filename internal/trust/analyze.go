package trust

import (
	"context"
	"time"

	"github.com/ZulAmi/proofwork/internal/domain"
)

// Analyze produces the per-review diagnostic view: the same decay, credibility
// and sentiment signals the aggregation uses, reported per review instead of
// folded into one number. The summary statistics are plain unweighted means
// over the input. Callers pass the raw concatenation of both feeds here; this
// view intentionally performs no dedup, so one reviewer can appear twice.
//
// Empty input yields an empty report, not an error.
func (e *Engine) Analyze(ctx context.Context, reviews []domain.Review) domain.ReviewAnalysis {
	analysis := domain.ReviewAnalysis{Reviews: []domain.AnalyzedReview{}}
	if len(reviews) == 0 {
		return analysis
	}

	nowUnix := e.clock.Now().Unix()
	var ratingSum, sentimentSum float64
	verified := 0

	for _, r := range reviews {
		sentiment := e.polarity(ctx, r.Comment)
		decay := e.timeWeight(r.Timestamp, nowUnix)

		analysis.Reviews = append(analysis.Reviews, domain.AnalyzedReview{
			Review:          r,
			Datetime:        time.Unix(r.Timestamp, 0).UTC().Format(time.RFC3339),
			SentimentScore:  round(sentiment, 2),
			TimeDecayFactor: round(decay, 2),
			EffectiveWeight: round(decay*e.Credibility(r.ReviewerVerified), 2),
		})

		ratingSum += float64(r.Rating)
		sentimentSum += sentiment
		if r.ReviewerVerified {
			verified++
		}
	}

	n := float64(len(reviews))
	analysis.Summary = domain.AnalysisSummary{
		ReviewCount:              len(reviews),
		AverageRating:            round(ratingSum/n, 2),
		AverageSentiment:         round(sentimentSum/n, 2),
		VerifiedClientPercentage: round(float64(verified)/n*100, 1),
	}
	return analysis
}
