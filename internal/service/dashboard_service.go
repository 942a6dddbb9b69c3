package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/events"
	"github.com/secops-dashboard/dashboard-service/internal/insights"
	"github.com/secops-dashboard/dashboard-service/internal/observability"
	"github.com/secops-dashboard/dashboard-service/internal/repository"
	"github.com/secops-dashboard/dashboard-service/internal/ticketing"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// DashboardOptions tunes how much data a summary samples.
type DashboardOptions struct {
	PageSize     int
	MaxPages     int
	CacheTTL     time.Duration
	FetchTimeout time.Duration
}

// DashboardService computes chart data for an org unit from several ticket pages.
type DashboardService struct {
	source     ticketing.Source
	normalizer *insights.Normalizer
	cache      repository.DashboardCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	opts       DashboardOptions
	now        func() time.Time
}

// NewDashboardService constructs the service. cache may be nil.
func NewDashboardService(
	source ticketing.Source,
	normalizer *insights.Normalizer,
	cache repository.DashboardCache,
	dispatcher events.Dispatcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
	opts DashboardOptions,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = insights.NewNormalizer(insights.DefaultDateLayout, time.UTC)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 1
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &DashboardService{
		source:     source,
		normalizer: normalizer,
		cache:      cache,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		opts:       opts,
		now:        time.Now,
	}
}

// Summary returns the cached summary when available, otherwise recomputes it.
func (s *DashboardService) Summary(ctx context.Context, orgUnitID string, refresh bool) (domain.DashboardSummary, error) {
	orgUnitID = strings.TrimSpace(orgUnitID)
	if orgUnitID == "" {
		return domain.DashboardSummary{}, apperrors.NewValidationError("org_unit_id required", nil)
	}

	if !refresh && s.cache != nil {
		cached, err := s.cache.Get(ctx, s.source.Kind(), orgUnitID)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.String("org_unit_id", orgUnitID), zap.Error(err))
		} else if cached != nil {
			cached.Cached = true
			return *cached, nil
		}
	}
	return s.Recompute(ctx, orgUnitID)
}

// Recompute fetches up to MaxPages pages, aggregates them and refreshes the cache.
func (s *DashboardService) Recompute(ctx context.Context, orgUnitID string) (domain.DashboardSummary, error) {
	orgUnitID = strings.TrimSpace(orgUnitID)
	if orgUnitID == "" {
		return domain.DashboardSummary{}, apperrors.NewValidationError("org_unit_id required", nil)
	}
	tickets, truncated, err := s.collect(ctx, orgUnitID)
	if err != nil {
		return domain.DashboardSummary{}, err
	}

	normalized := s.normalizer.NormalizeAll(tickets)
	agg := insights.Aggregate(normalized)
	summary := domain.DashboardSummary{
		OrgUnitID:      orgUnitID,
		Source:         s.source.Kind(),
		Cards:          insights.Cards(normalized),
		ByStatus:       agg.ByStatus,
		ByPriority:     agg.ByPriority,
		ByDay:          agg.ByDay,
		TicketsSampled: len(normalized),
		Truncated:      truncated,
		GeneratedAt:    s.now().UTC(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary, s.opts.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("org_unit_id", orgUnitID), zap.Error(err))
		}
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(context.WithoutCancel(ctx), events.Event{
			Type:      events.EventDashboardRecomputed,
			OrgUnitID: orgUnitID,
			Payload: events.DashboardRecomputedPayload{
				TicketsSampled: summary.TicketsSampled,
				Truncated:      summary.Truncated,
			},
		})
	}
	return summary, nil
}

// collect pages through the org unit's tickets. It stops on a short page, once
// the reported total is reached, or after MaxPages; truncated reports the last case.
func (s *DashboardService) collect(ctx context.Context, orgUnitID string) ([]domain.RawTicket, bool, error) {
	var all []domain.RawTicket
	for page := 1; page <= s.opts.MaxPages; page++ {
		fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
		started := time.Now()
		result, err := s.source.FetchPage(fetchCtx, ticketing.PageRequest{
			OrgUnitID: orgUnitID,
			Page:      page,
			PageSize:  s.opts.PageSize,
		})
		cancel()
		if err != nil {
			s.metrics.RecordFetch(string(s.source.Kind()), "error", time.Since(started))
			s.logger.Warn("dashboard fetch failed",
				zap.String("org_unit_id", orgUnitID),
				zap.Int("page", page),
				zap.Error(err))
			return nil, false, err
		}
		s.metrics.RecordFetch(string(s.source.Kind()), "ok", time.Since(started))

		all = append(all, result.Tickets...)
		if len(result.Tickets) < s.opts.PageSize {
			return all, false, nil
		}
		if result.Total != nil && len(all) >= *result.Total {
			return all, false, nil
		}
	}
	return all, true, nil
}
