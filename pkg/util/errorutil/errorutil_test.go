package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorRemoteTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "remote 500",
			err:        &RemoteServiceError{Service: "ticketing", StatusCode: 500},
			wantCode:   "REMOTE_SERVICE_ERROR",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "remote 404",
			err:        &RemoteServiceError{Service: "ticketing", StatusCode: 404, Message: "no such ticket"},
			wantCode:   "NOT_FOUND",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrapped network",
			err:        fmt.Errorf("fetch: %w", &NetworkError{Service: "ticketing", Op: "GET", Err: context.DeadlineExceeded}),
			wantCode:   "NETWORK_ERROR",
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "malformed",
			err:        &MalformedResponseError{Service: "ticketing", Reason: "missing tickets"},
			wantCode:   "MALFORMED_RESPONSE",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "plain",
			err:        errors.New("boom"),
			wantCode:   "INTERNAL_ERROR",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
}

func TestNetworkErrorUnwraps(t *testing.T) {
	err := &NetworkError{Service: "remediation", Op: "POST", URL: "http://x", Err: context.DeadlineExceeded}
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, ToDomainError(nil))
}
