package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// MountInput is the initial filter state of a new view.
type MountInput struct {
	OrgUnitID string
	Status    *domain.TicketStatus
	Priority  *domain.TicketPriority
}

// ViewRegistry owns the mounted ticket views. A view is visible only to the
// user who mounted it.
type ViewRegistry struct {
	deps ViewDependencies

	mu    sync.RWMutex
	views map[string]*TicketView
}

// NewViewRegistry creates an empty registry.
func NewViewRegistry(deps ViewDependencies) *ViewRegistry {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ViewRegistry{deps: deps, views: make(map[string]*TicketView)}
}

// Mount creates a view and performs its initial load.
func (r *ViewRegistry) Mount(ctx context.Context, userID string, input MountInput) *TicketView {
	view := newTicketView(uuid.NewString(), userID, domain.UIFilterState{
		OrgUnitID:      input.OrgUnitID,
		StatusFilter:   input.Status,
		PriorityFilter: input.Priority,
	}, r.deps)

	r.mu.Lock()
	r.views[view.ID()] = view
	count := len(r.views)
	r.mu.Unlock()
	r.deps.Metrics.SetActiveViews(count)

	view.Mount(ctx)
	return view
}

// Get returns the caller's view.
func (r *ViewRegistry) Get(userID, id string) (*TicketView, error) {
	r.mu.RLock()
	view, ok := r.views[id]
	r.mu.RUnlock()
	if !ok || view.UserID() != userID {
		return nil, apperrors.NewNotFound("view", map[string]any{"id": id})
	}
	return view, nil
}

// Unmount discards the caller's view.
func (r *ViewRegistry) Unmount(userID, id string) error {
	r.mu.Lock()
	view, ok := r.views[id]
	if !ok || view.UserID() != userID {
		r.mu.Unlock()
		return apperrors.NewNotFound("view", map[string]any{"id": id})
	}
	delete(r.views, id)
	count := len(r.views)
	r.mu.Unlock()
	r.deps.Metrics.SetActiveViews(count)
	return nil
}

// Sweep unmounts views idle for longer than ttl and returns how many were removed.
func (r *ViewRegistry) Sweep(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := r.deps.Now().Add(-ttl)

	r.mu.Lock()
	removed := 0
	for id, view := range r.views {
		if view.IdleSince().Before(cutoff) {
			delete(r.views, id)
			removed++
		}
	}
	count := len(r.views)
	r.mu.Unlock()

	r.deps.Metrics.SetActiveViews(count)
	if removed > 0 {
		r.deps.Logger.Info("swept idle ticket views", zap.Int("removed", removed), zap.Int("remaining", count))
	}
	return removed
}

// Len returns the number of mounted views.
func (r *ViewRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}
