package insights

import (
	"strconv"
	"strings"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// FilterPage applies the client-side search and type filter to an already
// fetched page. Only the tickets passed in are searched; the helpdesk API has
// no reliable full-text or type filter, so search never reaches other pages.
func FilterPage(tickets []domain.Ticket, searchTerm string, typeFilter domain.TicketType) []domain.Ticket {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" && typeFilter == "" {
		return tickets
	}

	out := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if term != "" && !strings.Contains(searchHaystack(ticket), term) {
			continue
		}
		if typeFilter != "" && ClassifyType(ticket) != typeFilter {
			continue
		}
		out = append(out, ticket)
	}
	return out
}

func searchHaystack(ticket domain.Ticket) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(ticket.ID, 10))
	for _, part := range []string{ticket.Subject, ticket.Description, ticket.RequesterName, ticket.Category} {
		b.WriteByte(' ')
		b.WriteString(part)
	}
	return strings.ToLower(b.String())
}
