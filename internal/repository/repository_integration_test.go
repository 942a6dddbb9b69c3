package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/persistence"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, persistence.RunMigrations(ctx, pool, zap.NewNop()))
	return pool
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestPreferenceRepositoryUpsert(t *testing.T) {
	repo := NewPreferenceRepository(testPool(t))
	ctx := context.Background()
	userID := "user-" + uuid.NewString()

	_, err := repo.Get(ctx, userID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	prefs := &domain.Preferences{UserID: userID, DisplayName: "Analyst", DarkMode: true}
	require.NoError(t, repo.Upsert(ctx, prefs))
	assert.False(t, prefs.UpdatedAt.IsZero())

	prefs.Email = "analyst@example.com"
	require.NoError(t, repo.Upsert(ctx, prefs))

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Analyst", got.DisplayName)
	assert.Equal(t, "analyst@example.com", got.Email)
	assert.True(t, got.DarkMode)
}

func TestRemediationRunRepository(t *testing.T) {
	repo := NewRemediationRunRepository(testPool(t))
	ctx := context.Background()
	userID := "user-" + uuid.NewString()

	run := &domain.RemediationRun{
		ID:         uuid.NewString(),
		UserID:     userID,
		SopSteps:   []string{"Block public access"},
		Parameters: map[string]any{"bucket": "logs"},
		Message:    "done",
		ExecutedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.Create(ctx, run))
	require.NoError(t, repo.Create(ctx, run))

	runs, err := repo.ListByUser(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, run.SopSteps, runs[0].SopSteps)
	assert.Equal(t, "logs", runs[0].Parameters["bucket"])
}

func TestSummaryCacheRoundTrip(t *testing.T) {
	cache := NewSummaryCache(testRedis(t), time.Minute)
	ctx := context.Background()
	userID := uuid.NewString()

	got, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, cache.Set(ctx, userID, "earlier context"))
	got, err = cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "earlier context", got)

	require.NoError(t, cache.Delete(ctx, userID))
	got, err = cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDashboardCacheKeysBySource(t *testing.T) {
	cache := NewDashboardCache(testRedis(t))
	ctx := context.Background()
	orgUnit := uuid.NewString()

	summary := domain.DashboardSummary{OrgUnitID: orgUnit, Source: domain.DataSourceDemo, Cards: domain.StatCards{Total: 8}}
	require.NoError(t, cache.Set(ctx, summary, time.Minute))

	got, err := cache.Get(ctx, domain.DataSourceDemo, orgUnit)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 8, got.Cards.Total)

	miss, err := cache.Get(ctx, domain.DataSourceLive, orgUnit)
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, cache.Invalidate(ctx, domain.DataSourceDemo, orgUnit))
	got, err = cache.Get(ctx, domain.DataSourceDemo, orgUnit)
	require.NoError(t, err)
	assert.Nil(t, got)
}
