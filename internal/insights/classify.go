package insights

import (
	"strings"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// typeKeywords is checked in order; the first match wins.
var typeKeywords = []struct {
	keyword string
	kind    domain.TicketType
}{
	{"service request", domain.TicketTypeServiceRequest},
	{"incident", domain.TicketTypeIncident},
	{"problem", domain.TicketTypeProblem},
	{"change", domain.TicketTypeChange},
}

// ClassifyType derives the coarse ticket type from the explicit type field,
// then the subject, defaulting to General.
func ClassifyType(ticket domain.Ticket) domain.TicketType {
	if kind, ok := matchTypeKeyword(ticket.RawType); ok {
		return kind
	}
	if kind, ok := matchTypeKeyword(ticket.Subject); ok {
		return kind
	}
	return domain.TicketTypeGeneral
}

// ParseTicketType accepts a type label in any case; unknown input is reported as false.
func ParseTicketType(value string) (domain.TicketType, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", true
	}
	for _, kind := range []domain.TicketType{
		domain.TicketTypeServiceRequest,
		domain.TicketTypeIncident,
		domain.TicketTypeProblem,
		domain.TicketTypeChange,
		domain.TicketTypeGeneral,
	} {
		if strings.EqualFold(value, string(kind)) {
			return kind, true
		}
	}
	return "", false
}

func matchTypeKeyword(text string) (domain.TicketType, bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, kw := range typeKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.kind, true
		}
	}
	return "", false
}
