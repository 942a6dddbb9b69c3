package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/ticketing"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

type memoryDashboardCache struct {
	entries map[string]domain.DashboardSummary
	getErr  error
}

func newMemoryDashboardCache() *memoryDashboardCache {
	return &memoryDashboardCache{entries: map[string]domain.DashboardSummary{}}
}

func (c *memoryDashboardCache) Get(_ context.Context, source domain.DataSourceKind, orgUnitID string) (*domain.DashboardSummary, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	s, ok := c.entries[string(source)+":"+orgUnitID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *memoryDashboardCache) Set(_ context.Context, summary domain.DashboardSummary, _ time.Duration) error {
	c.entries[string(summary.Source)+":"+summary.OrgUnitID] = summary
	return nil
}

func (c *memoryDashboardCache) Invalidate(_ context.Context, source domain.DataSourceKind, orgUnitID string) error {
	delete(c.entries, string(source)+":"+orgUnitID)
	return nil
}

func TestDashboardStopsOnShortPage(t *testing.T) {
	src := &fakeSource{respond: func(_ context.Context, req ticketing.PageRequest) (ticketing.PageResult, error) {
		if req.Page == 1 {
			return pageOf(4, 1, nil), nil
		}
		return pageOf(2, 100, nil), nil
	}}
	svc := NewDashboardService(src, nil, nil, nil, nil, nil, DashboardOptions{PageSize: 4, MaxPages: 5})

	summary, err := svc.Summary(context.Background(), "42", false)
	require.NoError(t, err)
	assert.Equal(t, 2, src.callCount())
	assert.Equal(t, 6, summary.TicketsSampled)
	assert.Equal(t, 6, summary.Cards.Total)
	assert.Equal(t, 6, summary.ByPriority.Total())
	assert.False(t, summary.Truncated)
	assert.Equal(t, domain.DataSourceLive, summary.Source)
}

func TestDashboardStopsAtReportedTotal(t *testing.T) {
	src := &fakeSource{respond: func(_ context.Context, req ticketing.PageRequest) (ticketing.PageResult, error) {
		return pageOf(4, req.Page*10, intPtr(8)), nil
	}}
	svc := NewDashboardService(src, nil, nil, nil, nil, nil, DashboardOptions{PageSize: 4, MaxPages: 5})

	summary, err := svc.Summary(context.Background(), "42", false)
	require.NoError(t, err)
	assert.Equal(t, 2, src.callCount())
	assert.Equal(t, 8, summary.TicketsSampled)
	assert.False(t, summary.Truncated)
}

func TestDashboardTruncatesAtMaxPages(t *testing.T) {
	src := &fakeSource{respond: func(_ context.Context, req ticketing.PageRequest) (ticketing.PageResult, error) {
		return pageOf(4, req.Page*10, nil), nil
	}}
	svc := NewDashboardService(src, nil, nil, nil, nil, nil, DashboardOptions{PageSize: 4, MaxPages: 3})

	summary, err := svc.Summary(context.Background(), "42", false)
	require.NoError(t, err)
	assert.Equal(t, 3, src.callCount())
	assert.True(t, summary.Truncated)
}

func TestDashboardUsesCacheUnlessRefreshing(t *testing.T) {
	src := &fakeSource{respond: func(context.Context, ticketing.PageRequest) (ticketing.PageResult, error) {
		return pageOf(1, 1, intPtr(1)), nil
	}}
	cache := newMemoryDashboardCache()
	svc := NewDashboardService(src, nil, cache, nil, nil, nil, DashboardOptions{PageSize: 20, MaxPages: 2})

	first, err := svc.Summary(context.Background(), "42", false)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Summary(context.Background(), "42", false)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, src.callCount())

	_, err = svc.Summary(context.Background(), "42", true)
	require.NoError(t, err)
	assert.Equal(t, 2, src.callCount())
}

func TestDashboardCacheErrorFallsBackToFetch(t *testing.T) {
	src := &fakeSource{respond: func(context.Context, ticketing.PageRequest) (ticketing.PageResult, error) {
		return pageOf(1, 1, intPtr(1)), nil
	}}
	cache := newMemoryDashboardCache()
	cache.getErr = errors.New("connection refused")
	svc := NewDashboardService(src, nil, cache, nil, nil, nil, DashboardOptions{})

	summary, err := svc.Summary(context.Background(), "42", false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TicketsSampled)
}

func TestDashboardPropagatesFetchErrors(t *testing.T) {
	src := &fakeSource{respond: func(context.Context, ticketing.PageRequest) (ticketing.PageResult, error) {
		return ticketing.PageResult{}, &apperrors.RemoteServiceError{Service: "ticketing", StatusCode: 503}
	}}
	svc := NewDashboardService(src, nil, newMemoryDashboardCache(), nil, nil, nil, DashboardOptions{})

	_, err := svc.Summary(context.Background(), "42", false)
	assert.Equal(t, "REMOTE_SERVICE_ERROR", apperrors.ToDomainError(err).Code)

	_, err = svc.Summary(context.Background(), " ", false)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
