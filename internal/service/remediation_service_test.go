package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/events"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

type fakeAssistant struct {
	summariesSeen []string
	reply         domain.AssistantReply
	executed      [][]string
	err           error
}

func (f *fakeAssistant) Query(_ context.Context, _ string, summary string) (domain.AssistantReply, error) {
	f.summariesSeen = append(f.summariesSeen, summary)
	return f.reply, f.err
}

func (f *fakeAssistant) Execute(_ context.Context, steps []string, _ map[string]any) (string, error) {
	f.executed = append(f.executed, steps)
	return "remediation complete", f.err
}

type memorySummaries struct {
	values map[string]string
	getErr error
}

func (m *memorySummaries) Get(_ context.Context, userID string) (string, error) {
	return m.values[userID], m.getErr
}

func (m *memorySummaries) Set(_ context.Context, userID, summary string) error {
	m.values[userID] = summary
	return nil
}

func (m *memorySummaries) Delete(_ context.Context, userID string) error {
	delete(m.values, userID)
	return nil
}

type memoryRuns struct {
	created []domain.RemediationRun
	err     error
}

func (m *memoryRuns) Create(_ context.Context, run *domain.RemediationRun) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *run)
	return nil
}

func (m *memoryRuns) ListByUser(_ context.Context, userID string, _ int) ([]domain.RemediationRun, error) {
	var out []domain.RemediationRun
	for _, r := range m.created {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestAskCarriesSummaryBetweenQueries(t *testing.T) {
	assistant := &fakeAssistant{reply: domain.AssistantReply{Summary: "talked about s3"}}
	summaries := &memorySummaries{values: map[string]string{}}
	svc := NewRemediationService(assistant, summaries, nil, nil, nil)

	_, err := svc.Ask(context.Background(), "u1", "is my bucket public?")
	require.NoError(t, err)
	_, err = svc.Ask(context.Background(), "u1", "fix it")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "talked about s3"}, assistant.summariesSeen)

	require.NoError(t, svc.ClearSummary(context.Background(), "u1"))
	_, err = svc.Ask(context.Background(), "u1", "again")
	require.NoError(t, err)
	assert.Equal(t, "talked about s3", summaries.values["u1"])
	assert.Equal(t, "", assistant.summariesSeen[2])
}

func TestAskKeepsPreviousSummaryWhenReplyHasNone(t *testing.T) {
	assistant := &fakeAssistant{}
	summaries := &memorySummaries{values: map[string]string{"u1": "earlier"}}
	svc := NewRemediationService(assistant, summaries, nil, nil, nil)

	_, err := svc.Ask(context.Background(), "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "earlier", summaries.values["u1"])
}

func TestAskSurvivesCacheFailure(t *testing.T) {
	assistant := &fakeAssistant{reply: domain.AssistantReply{IsRemediation: true}}
	svc := NewRemediationService(assistant, &memorySummaries{values: map[string]string{}, getErr: errors.New("down")}, nil, nil, nil)

	reply, err := svc.Ask(context.Background(), "u1", "hello")
	require.NoError(t, err)
	assert.True(t, reply.IsRemediation)
	assert.Equal(t, []string{""}, assistant.summariesSeen)
}

func TestAskValidatesQuery(t *testing.T) {
	svc := NewRemediationService(&fakeAssistant{}, nil, nil, nil, nil)
	_, err := svc.Ask(context.Background(), "u1", "   ")
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestRemediatePublishesRun(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventRemediationExecuted, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	assistant := &fakeAssistant{}
	svc := NewRemediationService(assistant, nil, nil, dispatcher, nil)

	run, err := svc.Remediate(context.Background(), "u1", []string{" Block public access ", ""}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Block public access"}, run.SopSteps)
	assert.Equal(t, "remediation complete", run.Message)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, map[string]any{}, run.Parameters)
	require.Len(t, published, 1)
	assert.Equal(t, run, published[0].Payload.(events.RemediationExecutedPayload).Run)
}

func TestRemediateRequiresSteps(t *testing.T) {
	assistant := &fakeAssistant{}
	svc := NewRemediationService(assistant, nil, nil, nil, nil)
	_, err := svc.Remediate(context.Background(), "u1", []string{" "}, nil)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Empty(t, assistant.executed)
}

func TestHistoryNeedsDatabase(t *testing.T) {
	svc := NewRemediationService(&fakeAssistant{}, nil, nil, nil, nil)
	_, err := svc.History(context.Background(), "u1", 10)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperrors.ToDomainError(err).Code)
}

func TestPreviewTruncatesRunes(t *testing.T) {
	assert.Equal(t, "abc", preview("abc", 5))
	assert.Equal(t, strings.Repeat("é", 3)+"…", preview(strings.Repeat("é", 10), 3))
}
