package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	"github.com/secops-dashboard/dashboard-service/internal/events"
)

type fakeHistory struct {
	runs []domain.RemediationRun
	err  error
}

func (f *fakeHistory) AddRemediationHistory(_ context.Context, run domain.RemediationRun) error {
	f.runs = append(f.runs, run)
	return f.err
}

func TestActivityRecordsRemediationRuns(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	history := &fakeHistory{}
	runs := &memoryRuns{}
	NewActivityService(dispatcher, history, runs, nil).RegisterHandlers()

	svc := NewRemediationService(&fakeAssistant{}, nil, runs, dispatcher, nil)
	run, err := svc.Remediate(context.Background(), "u1", []string{"Rotate keys"}, map[string]any{"user": "ci"})
	require.NoError(t, err)

	require.Len(t, history.runs, 1)
	assert.Equal(t, run.ID, history.runs[0].ID)
	require.Len(t, runs.created, 1)

	listed, err := svc.History(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestActivityJoinsRecorderErrors(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, &fakeHistory{err: errors.New("org down")}, &memoryRuns{err: errors.New("db down")}, nil).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventRemediationExecuted,
		Payload: events.RemediationExecutedPayload{Run: domain.RemediationRun{ID: "r1", UserID: "u1"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "org down")
	assert.Contains(t, err.Error(), "db down")
}

func TestActivityRejectsForeignPayload(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, nil, nil, nil).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventRemediationExecuted, Payload: "nope"})
	assert.Error(t, err)
}
