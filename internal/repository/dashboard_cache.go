package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

const dashboardKeyPrefix = "secops:dashboard:"

// DashboardCache stores computed dashboard summaries per org unit and source.
type DashboardCache interface {
	Get(ctx context.Context, source domain.DataSourceKind, orgUnitID string) (*domain.DashboardSummary, error)
	Set(ctx context.Context, summary domain.DashboardSummary, ttl time.Duration) error
	Invalidate(ctx context.Context, source domain.DataSourceKind, orgUnitID string) error
}

type redisDashboardCache struct {
	client *redis.Client
}

// NewDashboardCache builds a Redis-backed cache.
func NewDashboardCache(client *redis.Client) DashboardCache {
	return &redisDashboardCache{client: client}
}

func dashboardKey(source domain.DataSourceKind, orgUnitID string) string {
	return dashboardKeyPrefix + string(source) + ":" + orgUnitID
}

// Get returns nil on a cache miss.
func (c *redisDashboardCache) Get(ctx context.Context, source domain.DataSourceKind, orgUnitID string) (*domain.DashboardSummary, error) {
	raw, err := c.client.Get(ctx, dashboardKey(source, orgUnitID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary domain.DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, summary domain.DashboardSummary, ttl time.Duration) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey(summary.Source, summary.OrgUnitID), raw, ttl).Err()
}

func (c *redisDashboardCache) Invalidate(ctx context.Context, source domain.DataSourceKind, orgUnitID string) error {
	return c.client.Del(ctx, dashboardKey(source, orgUnitID)).Err()
}
