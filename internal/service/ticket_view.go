package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/events"
	"github.com/secops-dashboard/dashboard-service/internal/insights"
	"github.com/secops-dashboard/dashboard-service/internal/observability"
	"github.com/secops-dashboard/dashboard-service/internal/ticketing"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// DefaultFetchTimeout bounds a ticket page fetch when none is configured.
const DefaultFetchTimeout = 30 * time.Second

// ViewDependencies bundles collaborators shared by every ticket view.
type ViewDependencies struct {
	Source       ticketing.Source
	Normalizer   *insights.Normalizer
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
	PageSize     int
	FetchTimeout time.Duration
	Now          func() time.Time
}

// ServerFilters changes criteria the helpdesk API evaluates; applying them refetches.
type ServerFilters struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
}

// ClientFilters changes criteria evaluated over the loaded page; applying them never fetches.
// Nil fields are left unchanged.
type ClientFilters struct {
	SearchTerm    *string
	TypeFilter    *domain.TicketType
	SortKey       *string
	SortDirection *domain.SortDirection
}

// TicketView binds one mounted ticket table to its filter state. Every fetch
// takes a generation number; a result is committed only if no newer fetch
// started meanwhile, so the last initiated fetch always wins.
type TicketView struct {
	id     string
	userID string
	deps   ViewDependencies

	mu         sync.Mutex
	state      domain.ViewState
	filters    domain.UIFilterState
	loaded     []domain.Ticket
	visible    []domain.Ticket
	aggregates domain.Aggregates
	viewErr    *domain.ViewError
	generation uint64
	loadedAt   time.Time
	touchedAt  time.Time
}

func newTicketView(id, userID string, initial domain.UIFilterState, deps ViewDependencies) *TicketView {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Normalizer == nil {
		deps.Normalizer = insights.NewNormalizer(insights.DefaultDateLayout, time.UTC)
	}
	if deps.PageSize <= 0 {
		deps.PageSize = 20
	}
	if deps.FetchTimeout <= 0 {
		deps.FetchTimeout = DefaultFetchTimeout
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	initial.OrgUnitID = strings.TrimSpace(initial.OrgUnitID)
	initial.PageSize = deps.PageSize
	if initial.CurrentPage < 1 {
		initial.CurrentPage = 1
	}
	if initial.SortDirection == "" {
		initial.SortDirection = domain.SortDescending
	}

	return &TicketView{
		id:         id,
		userID:     userID,
		deps:       deps,
		state:      domain.ViewStateIdle,
		filters:    initial,
		aggregates: insights.Aggregate(nil),
		touchedAt:  deps.Now(),
	}
}

// ID returns the view identifier.
func (v *TicketView) ID() string {
	return v.id
}

// UserID returns the owner of the view.
func (v *TicketView) UserID() string {
	return v.userID
}

// Mount performs the initial load when an org unit is known; otherwise the view stays idle.
func (v *TicketView) Mount(ctx context.Context) {
	v.load(ctx, nil)
}

// ApplyServerFilters resets to the first page and refetches.
func (v *TicketView) ApplyServerFilters(ctx context.Context, f ServerFilters) {
	v.load(ctx, func(state *domain.UIFilterState) {
		state.StatusFilter = f.Status
		state.PriorityFilter = f.Priority
		state.CurrentPage = 1
	})
}

// SetPage moves to page and refetches.
func (v *TicketView) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	v.load(ctx, func(state *domain.UIFilterState) {
		state.CurrentPage = page
	})
}

// Refresh refetches the current page.
func (v *TicketView) Refresh(ctx context.Context) {
	v.load(ctx, nil)
}

// ApplyClientFilters re-derives the visible tickets from the loaded page.
func (v *TicketView) ApplyClientFilters(f ClientFilters) error {
	if f.SortKey != nil && *f.SortKey != "" && !insights.ValidSortKey(*f.SortKey) {
		return apperrors.NewValidationError("unknown sort key", map[string]any{"sort_key": *f.SortKey})
	}
	if f.SortDirection != nil && *f.SortDirection != domain.SortAscending && *f.SortDirection != domain.SortDescending {
		return apperrors.NewValidationError("sort_direction must be asc or desc", nil)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.touchedAt = v.deps.Now()

	if f.SearchTerm != nil {
		v.filters.SearchTerm = *f.SearchTerm
	}
	if f.TypeFilter != nil {
		v.filters.TypeFilter = *f.TypeFilter
	}
	if f.SortKey != nil {
		v.filters.SortKey = *f.SortKey
	}
	if f.SortDirection != nil {
		v.filters.SortDirection = *f.SortDirection
	}
	if v.state == domain.ViewStateLoaded {
		v.deriveLocked()
	}
	return nil
}

// Snapshot returns a consistent copy of the view.
func (v *TicketView) Snapshot() domain.ViewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	tickets := make([]domain.Ticket, len(v.visible))
	copy(tickets, v.visible)

	snap := domain.ViewSnapshot{
		ID:          v.id,
		State:       v.state,
		Source:      v.sourceKind(),
		Filters:     v.filters,
		Tickets:     tickets,
		LoadedCount: len(v.loaded),
		Aggregates:  v.aggregates,
		Pagination:  insights.Paginate(v.filters.CurrentPage, v.filters.PageSize, v.filters.TotalCount, v.filters.TotalKnown),
	}
	if v.viewErr != nil {
		e := *v.viewErr
		snap.Error = &e
	}
	if !v.loadedAt.IsZero() {
		at := v.loadedAt
		snap.LoadedAt = &at
	}
	return snap
}

// IdleSince reports when the view was last used.
func (v *TicketView) IdleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.touchedAt
}

// load applies mutate, then fetches the page the new state describes.
func (v *TicketView) load(ctx context.Context, mutate func(*domain.UIFilterState)) {
	v.mu.Lock()
	v.touchedAt = v.deps.Now()
	if mutate != nil {
		mutate(&v.filters)
	}
	if v.filters.OrgUnitID == "" {
		v.mu.Unlock()
		return
	}
	v.generation++
	gen := v.generation
	req := ticketing.PageRequest{
		OrgUnitID: v.filters.OrgUnitID,
		Status:    v.filters.StatusFilter,
		Priority:  v.filters.PriorityFilter,
		Page:      v.filters.CurrentPage,
		PageSize:  v.filters.PageSize,
	}
	v.state = domain.ViewStateLoading
	v.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, v.deps.FetchTimeout)
	defer cancel()
	started := time.Now()
	result, err := v.deps.Source.FetchPage(fetchCtx, req)
	elapsed := time.Since(started)

	event, committed := v.commit(gen, req, result, err)
	if !committed {
		v.deps.Metrics.RecordStaleDiscard()
		v.deps.Logger.Debug("discarded stale ticket page",
			zap.String("view_id", v.id),
			zap.Int("page", req.Page),
			zap.Uint64("generation", gen))
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		v.deps.Logger.Warn("ticket fetch failed",
			zap.String("view_id", v.id),
			zap.String("org_unit_id", req.OrgUnitID),
			zap.Int("page", req.Page),
			zap.Error(err))
	}
	v.deps.Metrics.RecordFetch(string(v.sourceKind()), outcome, elapsed)

	if v.deps.Dispatcher != nil {
		// Detached from the request so a cancelled caller does not skip handlers.
		_ = v.deps.Dispatcher.Publish(context.WithoutCancel(ctx), event)
	}
}

func (v *TicketView) commit(gen uint64, req ticketing.PageRequest, result ticketing.PageResult, fetchErr error) (events.Event, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return events.Event{}, false
	}

	event := events.Event{UserID: v.userID, OrgUnitID: req.OrgUnitID}
	if fetchErr != nil {
		v.state = domain.ViewStateError
		v.loaded = nil
		v.visible = []domain.Ticket{}
		v.aggregates = insights.Aggregate(nil)
		v.filters.TotalCount = 0
		v.filters.TotalKnown = true
		v.viewErr = toViewError(fetchErr)

		event.Type = events.EventTicketFetchFailed
		event.Payload = events.TicketFetchFailedPayload{
			ViewID: v.id,
			Page:   req.Page,
			Code:   v.viewErr.Code,
			Error:  fetchErr.Error(),
		}
		return event, true
	}

	v.loaded = v.deps.Normalizer.NormalizeAll(result.Tickets)
	v.filters.TotalCount, v.filters.TotalKnown = insights.EstimateTotal(req.Page, req.PageSize, len(result.Tickets), result.Total)
	v.aggregates = insights.Aggregate(v.loaded)
	v.viewErr = nil
	v.state = domain.ViewStateLoaded
	v.loadedAt = v.deps.Now()
	v.deriveLocked()

	event.Type = events.EventTicketsLoaded
	event.Payload = events.TicketsLoadedPayload{
		ViewID:     v.id,
		Page:       req.Page,
		Count:      len(v.loaded),
		TotalCount: v.filters.TotalCount,
		Source:     v.sourceKind(),
	}
	return event, true
}

func (v *TicketView) deriveLocked() {
	filtered := insights.FilterPage(v.loaded, v.filters.SearchTerm, v.filters.TypeFilter)
	v.visible = insights.SortPage(filtered, v.filters.SortKey, v.filters.SortDirection)
}

func (v *TicketView) sourceKind() domain.DataSourceKind {
	if v.deps.Source == nil {
		return domain.DataSourceLive
	}
	return v.deps.Source.Kind()
}

func toViewError(err error) *domain.ViewError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ViewError{Code: "NETWORK_ERROR", Message: "ticketing service timed out", Retryable: true}
	}
	de := apperrors.ToDomainError(err)
	return &domain.ViewError{
		Code:      de.Code,
		Message:   de.Message,
		Retryable: de.Code != "VALIDATION_FAILED",
	}
}
