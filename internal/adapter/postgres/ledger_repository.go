package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ZulAmi/proofwork/internal/domain"
	"github.com/ZulAmi/proofwork/internal/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sourceName = "ledger"

// LedgerRepo reads reviews recorded on the ledger, newest first. It is the
// primary (authoritative) review source for merge.
type LedgerRepo struct {
	pool *pgxpool.Pool
}

func NewLedgerRepo(pool *pgxpool.Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

func (r *LedgerRepo) FetchReviews(ctx context.Context, address string) ([]domain.Review, error) {
	start := time.Now()
	defer func() {
		metrics.SourceFetchDuration.WithLabelValues(sourceName).Observe(time.Since(start).Seconds())
	}()
	rows, err := r.pool.Query(ctx, `
		SELECT reviewer_address, reviewer_verified, rating, comment, reviewed_at
		FROM ledger_reviews
		WHERE subject_address = $1
		ORDER BY reviewed_at DESC`,
		address,
	)
	if err != nil {
		metrics.SourceFetchesTotal.WithLabelValues(sourceName, "error").Inc()
		return nil, fmt.Errorf("failed to query ledger reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var (
			reviewerAddress string
			verified        bool
			rating          int
			comment         string
			reviewedAt      int64
		)
		if err := rows.Scan(&reviewerAddress, &verified, &rating, &comment, &reviewedAt); err != nil {
			metrics.SourceFetchesTotal.WithLabelValues(sourceName, "error").Inc()
			return nil, fmt.Errorf("failed to scan ledger review: %w", err)
		}

		review, err := domain.NewReview(reviewerAddress, verified, rating, comment, reviewedAt)
		if err != nil {
			// The rating CHECK constraint should make this unreachable, but
			// a row that slips through is dropped rather than failing the fetch.
			slog.Warn("Dropping invalid ledger review", "subject", address, "error", err)
			metrics.ReviewsRejectedTotal.WithLabelValues(sourceName).Inc()
			continue
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		metrics.SourceFetchesTotal.WithLabelValues(sourceName, "error").Inc()
		return nil, fmt.Errorf("failed to iterate ledger reviews: %w", err)
	}

	metrics.SourceFetchesTotal.WithLabelValues(sourceName, "success").Inc()
	return reviews, nil
}

// InsertReview records a review against a subject and returns the row ID.
// Used by the indexer ingestion path.
func (r *LedgerRepo) InsertReview(ctx context.Context, subject string, review domain.Review, blockNumber int64) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO ledger_reviews (subject_address, reviewer_address, reviewer_verified, rating, comment, reviewed_at, block_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		subject, review.ReviewerID, review.ReviewerVerified, review.Rating, review.Comment, review.Timestamp, blockNumber,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert ledger review: %w", err)
	}
	return id, nil
}
