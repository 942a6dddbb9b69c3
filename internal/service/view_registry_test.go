package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/ticketing"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

func TestRegistryScopesViewsToOwner(t *testing.T) {
	src := &fakeSource{respond: func(context.Context, ticketing.PageRequest) (ticketing.PageResult, error) {
		return pageOf(3, 1, intPtr(3)), nil
	}}
	registry := NewViewRegistry(ViewDependencies{Source: src})

	view := registry.Mount(context.Background(), "alice", MountInput{OrgUnitID: "42"})
	assert.Equal(t, domain.ViewStateLoaded, view.Snapshot().State)
	assert.Equal(t, 1, registry.Len())

	got, err := registry.Get("alice", view.ID())
	require.NoError(t, err)
	assert.Same(t, view, got)

	_, err = registry.Get("bob", view.ID())
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	assert.Error(t, registry.Unmount("bob", view.ID()))
	require.NoError(t, registry.Unmount("alice", view.ID()))
	assert.Equal(t, 0, registry.Len())
}

func TestRegistryMountAppliesInitialServerFilters(t *testing.T) {
	src := &fakeSource{respond: func(context.Context, ticketing.PageRequest) (ticketing.PageResult, error) {
		return ticketing.PageResult{}, nil
	}}
	registry := NewViewRegistry(ViewDependencies{Source: src, PageSize: 10})

	status := domain.TicketStatusOpen
	registry.Mount(context.Background(), "alice", MountInput{OrgUnitID: " 7 ", Status: &status})

	req := src.lastCall()
	assert.Equal(t, "7", req.OrgUnitID)
	assert.Equal(t, &status, req.Status)
	assert.Equal(t, 10, req.PageSize)
}

func TestRegistrySweepRemovesIdleViews(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	registry := NewViewRegistry(ViewDependencies{Source: &fakeSource{}, Now: clock})

	stale := registry.Mount(context.Background(), "alice", MountInput{})
	now = now.Add(20 * time.Minute)
	fresh := registry.Mount(context.Background(), "alice", MountInput{})
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, registry.Sweep(30*time.Minute))

	_, err := registry.Get("alice", stale.ID())
	assert.Error(t, err)
	_, err = registry.Get("alice", fresh.ID())
	assert.NoError(t, err)
	assert.Equal(t, 0, registry.Sweep(0))
}
