package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "secops:assistant:summary:"

// SummaryCache holds the last conversation summary returned by the assistant,
// one per user.
type SummaryCache interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, summary string) error
	Delete(ctx context.Context, userID string) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache builds a Redis-backed cache. A zero ttl keeps summaries until cleared.
func NewSummaryCache(client *redis.Client, ttl time.Duration) SummaryCache {
	return &redisSummaryCache{client: client, ttl: ttl}
}

// Get returns "" when no summary is stored.
func (c *redisSummaryCache) Get(ctx context.Context, userID string) (string, error) {
	val, err := c.client.Get(ctx, summaryKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (c *redisSummaryCache) Set(ctx context.Context, userID, summary string) error {
	if summary == "" {
		return c.Delete(ctx, userID)
	}
	return c.client.Set(ctx, summaryKeyPrefix+userID, summary, c.ttl).Err()
}

func (c *redisSummaryCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, summaryKeyPrefix+userID).Err()
}
