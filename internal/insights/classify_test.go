package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

func TestClassifyType(t *testing.T) {
	tests := []struct {
		name    string
		rawType string
		subject string
		want    domain.TicketType
	}{
		{"explicit type wins", "Problem", "incident on vpn", domain.TicketTypeProblem},
		{"explicit type case-insensitive", "service REQUEST", "", domain.TicketTypeServiceRequest},
		{"unknown explicit type falls back to subject", "Question", "Change window for RDS", domain.TicketTypeChange},
		{"service request beats incident", "", "Service request after incident", domain.TicketTypeServiceRequest},
		{"incident beats problem", "", "Incident: problem with IAM", domain.TicketTypeIncident},
		{"no keywords", "", "Rotate keys", domain.TicketTypeGeneral},
		{"empty", "", "", domain.TicketTypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyType(domain.Ticket{RawType: tt.rawType, Subject: tt.subject})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTicketType(t *testing.T) {
	kind, ok := ParseTicketType("incident")
	assert.True(t, ok)
	assert.Equal(t, domain.TicketTypeIncident, kind)

	kind, ok = ParseTicketType("")
	assert.True(t, ok)
	assert.Equal(t, domain.TicketType(""), kind)

	_, ok = ParseTicketType("outage")
	assert.False(t, ok)
}
