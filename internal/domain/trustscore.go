package domain

import "time"

// TrustScore is the engine's output for one subject. It is a pure function of
// a finite collection of reviews plus the engine's configuration; repeated
// computation over the same input at the same instant is deterministic.
//
// A subject with no reviews gets the defined neutral result (score 50,
// confidence 0), not an error. Callers distinguish "no reviews" from failure
// by checking ReviewCount.
type TrustScore struct {
	Address             string    `json:"address"`
	Score               float64   `json:"score"`
	Confidence          float64   `json:"confidence"`
	ReviewCount         int       `json:"review_count"`
	AverageRating       float64   `json:"average_rating"`
	SentimentAdjustment float64   `json:"sentiment_adjustment"`
	RecencyFactor       float64   `json:"recency_factor"`
	CalculationTime     time.Time `json:"calculation_time"`
}

// AnalyzedReview reports a single review together with the per-review signals
// the engine would feed into aggregation. Diagnostic output; nothing here is
// aggregated.
type AnalyzedReview struct {
	Review
	Datetime        string  `json:"datetime"`
	SentimentScore  float64 `json:"sentiment_score"`
	TimeDecayFactor float64 `json:"time_decay_factor"`
	EffectiveWeight float64 `json:"effective_weight"`
}

// AnalysisSummary holds unweighted summary statistics over the analyzed
// reviews. Deliberately not decay- or credibility-weighted, unlike the
// aggregated score.
type AnalysisSummary struct {
	ReviewCount              int     `json:"review_count"`
	AverageRating            float64 `json:"average_rating"`
	AverageSentiment         float64 `json:"average_sentiment"`
	VerifiedClientPercentage float64 `json:"verified_client_percentage"`
}

// ReviewAnalysis is the full diagnostic report for one subject.
type ReviewAnalysis struct {
	Address string           `json:"address"`
	Reviews []AnalyzedReview `json:"reviews"`
	Summary AnalysisSummary  `json:"analysis"`
}
