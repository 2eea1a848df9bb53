package domain

import "fmt"

const (
	// MinRating and MaxRating bound the star scale of a review.
	MinRating = 1
	MaxRating = 5
)

// Review is one reviewer's feedback about a subject. A Review is immutable
// once constructed and carries no derived fields; weights and sentiment are
// computed on demand by the trust engine, never cached on the record.
type Review struct {
	ReviewerID       string `json:"reviewer_id"`
	ReviewerVerified bool   `json:"reviewer_verified"`
	Rating           int    `json:"rating"`
	Comment          string `json:"comment"`
	Timestamp        int64  `json:"timestamp"`
}

// NewReview validates structural constraints at the ingestion boundary.
// Reviews that fail validation never reach the engine. Timestamps are not
// validated; future-dated reviews are accepted and handled by the engine.
func NewReview(reviewerID string, verified bool, rating int, comment string, timestamp int64) (Review, error) {
	if reviewerID == "" {
		return Review{}, fmt.Errorf("%w: reviewer id is empty", ErrInvalidReview)
	}
	if rating < MinRating || rating > MaxRating {
		return Review{}, fmt.Errorf("%w: rating %d outside [%d,%d]", ErrInvalidReview, rating, MinRating, MaxRating)
	}
	return Review{
		ReviewerID:       reviewerID,
		ReviewerVerified: verified,
		Rating:           rating,
		Comment:          comment,
		Timestamp:        timestamp,
	}, nil
}
