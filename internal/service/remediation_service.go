package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/events"
	"github.com/secops-dashboard/dashboard-service/internal/repository"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

const queryPreviewLen = 80

// AssistantClient is the remediation backend.
type AssistantClient interface {
	Query(ctx context.Context, query, summary string) (domain.AssistantReply, error)
	Execute(ctx context.Context, sopSteps []string, parameters map[string]any) (string, error)
}

// RemediationService carries a per-user conversation summary between
// assistant queries and executes suggested procedures.
type RemediationService struct {
	client     AssistantClient
	summaries  repository.SummaryCache
	runs       repository.RemediationRunRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewRemediationService constructs the service. summaries and runs may be nil.
func NewRemediationService(
	client AssistantClient,
	summaries repository.SummaryCache,
	runs repository.RemediationRunRepository,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *RemediationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemediationService{
		client:     client,
		summaries:  summaries,
		runs:       runs,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Ask forwards query together with the user's previous summary and stores the new one.
func (s *RemediationService) Ask(ctx context.Context, userID, query string) (domain.AssistantReply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.AssistantReply{}, apperrors.NewValidationError("query required", nil)
	}

	previous := ""
	if s.summaries != nil {
		var err error
		if previous, err = s.summaries.Get(ctx, userID); err != nil {
			s.logger.Warn("summary cache read failed", zap.String("user_id", userID), zap.Error(err))
			previous = ""
		}
	}

	reply, err := s.client.Query(ctx, query, previous)
	if err != nil {
		return domain.AssistantReply{}, err
	}

	if s.summaries != nil && reply.Summary != "" {
		if err := s.summaries.Set(ctx, userID, reply.Summary); err != nil {
			s.logger.Warn("summary cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	s.publish(ctx, events.Event{
		Type:   events.EventAssistantQueried,
		UserID: userID,
		Payload: events.AssistantQueriedPayload{
			QueryPreview:  preview(query, queryPreviewLen),
			IsRemediation: reply.IsRemediation,
		},
	})
	return reply, nil
}

// Remediate executes the given procedure and announces the run.
func (s *RemediationService) Remediate(ctx context.Context, userID string, sopSteps []string, parameters map[string]any) (domain.RemediationRun, error) {
	steps := make([]string, 0, len(sopSteps))
	for _, step := range sopSteps {
		if step = strings.TrimSpace(step); step != "" {
			steps = append(steps, step)
		}
	}
	if len(steps) == 0 {
		return domain.RemediationRun{}, apperrors.NewValidationError("sop_steps required", nil)
	}
	if parameters == nil {
		parameters = map[string]any{}
	}

	message, err := s.client.Execute(ctx, steps, parameters)
	if err != nil {
		return domain.RemediationRun{}, err
	}

	run := domain.RemediationRun{
		ID:         uuid.NewString(),
		UserID:     userID,
		SopSteps:   steps,
		Parameters: parameters,
		Message:    message,
		ExecutedAt: s.now().UTC(),
	}
	s.publish(ctx, events.Event{
		Type:    events.EventRemediationExecuted,
		UserID:  userID,
		Payload: events.RemediationExecutedPayload{Run: run},
	})
	return run, nil
}

// ClearSummary forgets the user's conversation summary.
func (s *RemediationService) ClearSummary(ctx context.Context, userID string) error {
	if s.summaries == nil {
		return nil
	}
	return s.summaries.Delete(ctx, userID)
}

// History lists the user's most recent remediation runs.
func (s *RemediationService) History(ctx context.Context, userID string, limit int) ([]domain.RemediationRun, error) {
	if s.runs == nil {
		return nil, apperrors.NewUnavailable("remediation history requires a database")
	}
	return s.runs.ListByUser(ctx, userID, limit)
}

func (s *RemediationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func preview(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "…"
}
