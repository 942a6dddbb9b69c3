package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/events"
	"github.com/secops-dashboard/dashboard-service/internal/repository"
)

// HistoryRecorder stores remediation history with the org-management backend.
type HistoryRecorder interface {
	AddRemediationHistory(ctx context.Context, run domain.RemediationRun) error
}

// ActivityService reacts to dashboard events: it records remediation runs and
// logs fetch failures and assistant usage.
type ActivityService struct {
	dispatcher events.Dispatcher
	history    HistoryRecorder
	runs       repository.RemediationRunRepository
	logger     *zap.Logger
}

// NewActivityService creates the service. history and runs may be nil.
func NewActivityService(dispatcher events.Dispatcher, history HistoryRecorder, runs repository.RemediationRunRepository, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		dispatcher: dispatcher,
		history:    history,
		runs:       runs,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventRemediationExecuted, a.handleRemediationExecuted)
	a.dispatcher.Subscribe(events.EventTicketFetchFailed, a.handleTicketFetchFailed)
	a.dispatcher.Subscribe(events.EventAssistantQueried, a.handleAssistantQueried)
	a.dispatcher.Subscribe(events.EventDashboardRecomputed, a.handleDashboardRecomputed)
}

func (a *ActivityService) handleRemediationExecuted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RemediationExecutedPayload)
	if !ok {
		return errors.New("unexpected remediation payload")
	}
	run := payload.Run
	a.logger.Info("RemediationExecuted",
		zap.String("run_id", run.ID),
		zap.String("user_id", run.UserID),
		zap.Int("steps", len(run.SopSteps)))

	var errs []error
	if a.runs != nil {
		if err := a.runs.Create(ctx, &run); err != nil {
			a.logger.Error("store remediation run", zap.String("run_id", run.ID), zap.Error(err))
			errs = append(errs, err)
		}
	}
	if a.history != nil {
		if err := a.history.AddRemediationHistory(ctx, run); err != nil {
			a.logger.Error("record remediation history", zap.String("run_id", run.ID), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *ActivityService) handleTicketFetchFailed(_ context.Context, event events.Event) error {
	a.logger.Info("TicketFetchFailed",
		zap.String("user_id", event.UserID),
		zap.String("org_unit_id", event.OrgUnitID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handleAssistantQueried(_ context.Context, event events.Event) error {
	a.logger.Debug("AssistantQueried", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handleDashboardRecomputed(_ context.Context, event events.Event) error {
	a.logger.Debug("DashboardRecomputed", zap.String("org_unit_id", event.OrgUnitID), zap.Any("payload", event.Payload))
	return nil
}
