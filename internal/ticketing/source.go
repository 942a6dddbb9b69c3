// Package ticketing fetches ticket pages from the external helpdesk API.
package ticketing

import (
	"context"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// PageRequest is the server-side part of the view filter state.
type PageRequest struct {
	OrgUnitID string
	Status    *domain.TicketStatus
	Priority  *domain.TicketPriority
	Page      int
	PageSize  int
}

// PageResult is one decoded page. Total is nil when the API omitted it.
type PageResult struct {
	Tickets []domain.RawTicket
	Total   *int
}

// Source provides raw tickets; live and demo implementations exist.
type Source interface {
	FetchPage(ctx context.Context, req PageRequest) (PageResult, error)
	FetchTicket(ctx context.Context, id int64) (domain.RawTicket, error)
	Kind() domain.DataSourceKind
}
