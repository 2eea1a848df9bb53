// Package restfeed implements the REST review source: a read-only client for
// the marketplace reviews API. It is the secondary feed for merge; on
// reviewer overlap the ledger version of a review wins.
package restfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ZulAmi/proofwork/internal/domain"
	"github.com/ZulAmi/proofwork/internal/metrics"
	"github.com/ZulAmi/proofwork/internal/platform/retry"
)

const (
	sourceName     = "rest_api"
	requestTimeout = 10 * time.Second
)

type Client struct {
	baseURL string
	client  *http.Client
	policy  retry.Policy
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		policy: retry.Policy{
			MaxAttempts:      3,
			InitialBackoff:   200 * time.Millisecond,
			RateLimitBackoff: 2 * time.Second,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				slog.Warn("Retrying reviews API fetch", "attempt", attempt, "backoff", backoff, "error", err)
			},
		},
	}
}

// apiReview mirrors the wire shape of the reviews API.
type apiReview struct {
	ClientAddress  string `json:"clientAddress"`
	ClientVerified bool   `json:"clientVerified"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
	Timestamp      int64  `json:"timestamp"`
}

type reviewsResponse struct {
	Data struct {
		Reviews []apiReview `json:"reviews"`
	} `json:"data"`
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("reviews API returned status %d", e.code)
}

// FetchReviews returns the subject's reviews in API order. Records that fail
// structural validation are dropped individually instead of failing the fetch.
func (c *Client) FetchReviews(ctx context.Context, address string) ([]domain.Review, error) {
	start := time.Now()
	defer func() {
		metrics.SourceFetchDuration.WithLabelValues(sourceName).Observe(time.Since(start).Seconds())
	}()

	body, err := retry.Do(ctx, c.policy, classifyFetchError, func() ([]byte, error) {
		return c.fetch(ctx, address)
	})
	if err != nil {
		metrics.SourceFetchesTotal.WithLabelValues(sourceName, "error").Inc()
		return nil, err
	}

	var parsed reviewsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.SourceFetchesTotal.WithLabelValues(sourceName, "error").Inc()
		return nil, fmt.Errorf("failed to decode reviews response: %w", err)
	}

	reviews := make([]domain.Review, 0, len(parsed.Data.Reviews))
	for _, item := range parsed.Data.Reviews {
		review, err := domain.NewReview(item.ClientAddress, item.ClientVerified, item.Rating, item.Comment, item.Timestamp)
		if err != nil {
			slog.Warn("Dropping invalid API review", "subject", address, "error", err)
			metrics.ReviewsRejectedTotal.WithLabelValues(sourceName).Inc()
			continue
		}
		reviews = append(reviews, review)
	}

	metrics.SourceFetchesTotal.WithLabelValues(sourceName, "success").Inc()
	return reviews, nil
}

func (c *Client) fetch(ctx context.Context, address string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/reviews", c.baseURL, address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reviews API call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// classifyFetchError retries server-side and transport failures, backs off
// longer on 429, and gives up immediately on other client errors.
func classifyFetchError(err error) retry.Action {
	var se *statusError
	if errors.As(err, &se) {
		switch {
		case se.code == http.StatusTooManyRequests:
			return retry.After
		case se.code >= 500:
			return retry.Retry
		default:
			return retry.Stop
		}
	}
	return retry.Retry
}
