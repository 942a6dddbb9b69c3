package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/service"
)

// DashboardRefreshJob recomputes and caches the summary of every listed org unit.
func DashboardRefreshJob(dashboard *service.DashboardService, orgUnits []string, logger *zap.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		var errs []error
		refreshed := 0
		for _, orgUnit := range orgUnits {
			if ctx.Err() != nil {
				errs = append(errs, ctx.Err())
				break
			}
			if _, err := dashboard.Recompute(ctx, orgUnit); err != nil {
				errs = append(errs, err)
				continue
			}
			refreshed++
		}
		logger.Info("dashboard summaries refreshed", zap.Int("refreshed", refreshed), zap.Int("org_units", len(orgUnits)))
		return errors.Join(errs...)
	}
}

// ViewSweepJob unmounts ticket views idle for longer than ttl.
func ViewSweepJob(registry *service.ViewRegistry, ttl time.Duration) func(ctx context.Context) error {
	return func(context.Context) error {
		registry.Sweep(ttl)
		return nil
	}
}
