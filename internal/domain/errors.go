package domain

import "errors"

var (
	ErrInvalidReview  = errors.New("invalid review")
	ErrScoreNotCached = errors.New("trust score not cached")
)
