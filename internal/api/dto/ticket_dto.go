package dto

import (
	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// TicketDetailResponse is a normalized ticket plus relative time labels.
type TicketDetailResponse struct {
	domain.Ticket
	CreatedAgo string                `json:"created_ago,omitempty"`
	UpdatedAgo string                `json:"updated_ago,omitempty"`
	Source     domain.DataSourceKind `json:"source"`
}
