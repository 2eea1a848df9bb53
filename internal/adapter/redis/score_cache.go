package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ZulAmi/proofwork/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// ScoreCache stores computed trust scores keyed by subject address, with a
// TTL so stale scores age out instead of being invalidated explicitly.
type ScoreCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewScoreCache(rdb *goredis.Client, ttl time.Duration) *ScoreCache {
	return &ScoreCache{rdb: rdb, ttl: ttl}
}

func scoreKey(address string) string {
	return "trust_score:" + address
}

func (c *ScoreCache) Get(ctx context.Context, address string) (*domain.TrustScore, error) {
	payload, err := c.rdb.Get(ctx, scoreKey(address)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrScoreNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached score: %w", err)
	}

	var score domain.TrustScore
	if err := json.Unmarshal(payload, &score); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, domain.ErrScoreNotCached
	}
	return &score, nil
}

func (c *ScoreCache) Set(ctx context.Context, address string, score *domain.TrustScore) error {
	payload, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}
	if err := c.rdb.Set(ctx, scoreKey(address), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache score: %w", err)
	}
	return nil
}

// NoopCache is the explicit "cache unavailable" variant: every lookup misses
// and every store is dropped.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*domain.TrustScore, error) {
	return nil, domain.ErrScoreNotCached
}

func (NoopCache) Set(context.Context, string, *domain.TrustScore) error { return nil }
