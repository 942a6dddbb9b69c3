package events

import (
	"time"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketsLoaded       EventType = "tickets_loaded"
	EventTicketFetchFailed   EventType = "ticket_fetch_failed"
	EventAssistantQueried    EventType = "assistant_queried"
	EventRemediationExecuted EventType = "remediation_executed"
	EventDashboardRecomputed EventType = "dashboard_recomputed"
)

// Event represents an activity emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	OrgUnitID string      `json:"org_unit_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketsLoadedPayload payload.
type TicketsLoadedPayload struct {
	ViewID     string                `json:"view_id"`
	Page       int                   `json:"page"`
	Count      int                   `json:"count"`
	TotalCount int                   `json:"total_count"`
	Source     domain.DataSourceKind `json:"source"`
}

// TicketFetchFailedPayload payload.
type TicketFetchFailedPayload struct {
	ViewID string `json:"view_id,omitempty"`
	Page   int    `json:"page"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// AssistantQueriedPayload payload.
type AssistantQueriedPayload struct {
	QueryPreview  string `json:"query_preview"`
	IsRemediation bool   `json:"is_remediation"`
}

// RemediationExecutedPayload payload.
type RemediationExecutedPayload struct {
	Run domain.RemediationRun `json:"run"`
}

// DashboardRecomputedPayload payload.
type DashboardRecomputedPayload struct {
	TicketsSampled int  `json:"tickets_sampled"`
	Truncated      bool `json:"truncated"`
}
