// Package insights turns raw helpdesk records into the normalized tickets and
// aggregates the dashboard renders. Everything here is pure: the same input
// always yields the same output.
package insights

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

const (
	// DefaultDateLayout renders dates the way the ticket table shows them.
	DefaultDateLayout = "Jan 2, 2006"
	unknownRequester  = "Unknown"
	previewLength     = 160
)

var statusLabels = map[domain.TicketStatus]string{
	domain.TicketStatusOpen:                "Open",
	domain.TicketStatusPending:             "Pending",
	domain.TicketStatusResolved:            "Resolved",
	domain.TicketStatusClosed:              "Closed",
	domain.TicketStatusWaitingOnCustomer:   "Waiting on Customer",
	domain.TicketStatusWaitingOnThirdParty: "Waiting on Third Party",
}

var priorityLabels = map[domain.TicketPriority]string{
	domain.TicketPriorityLow:    "Low",
	domain.TicketPriorityMedium: "Medium",
	domain.TicketPriorityHigh:   "High",
	domain.TicketPriorityUrgent: "Urgent",
}

// StatusLabel maps a status code to its label, or "Unknown (code)".
func StatusLabel(code domain.TicketStatus) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("Unknown (%d)", int(code))
}

// PriorityLabel maps a priority code to its label, or "Unknown (code)".
func PriorityLabel(code domain.TicketPriority) string {
	if label, ok := priorityLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("Unknown (%d)", int(code))
}

// KnownStatus reports whether code is in the status lookup table.
func KnownStatus(code domain.TicketStatus) bool {
	_, ok := statusLabels[code]
	return ok
}

// KnownPriority reports whether code is in the priority lookup table.
func KnownPriority(code domain.TicketPriority) bool {
	_, ok := priorityLabels[code]
	return ok
}

// Normalizer converts raw helpdesk records into display-ready tickets.
type Normalizer struct {
	layout   string
	location *time.Location
	policy   *bluemonday.Policy
}

// NewNormalizer builds a normalizer rendering dates with layout in loc.
func NewNormalizer(layout string, loc *time.Location) *Normalizer {
	if layout == "" {
		layout = DefaultDateLayout
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{layout: layout, location: loc, policy: bluemonday.StrictPolicy()}
}

var defaultNormalizer = NewNormalizer(DefaultDateLayout, time.UTC)

// Normalize uses the default layout in UTC.
func Normalize(raw domain.RawTicket) domain.Ticket {
	return defaultNormalizer.Normalize(raw)
}

// NormalizeAll normalizes a page of raw tickets, preserving order.
func (n *Normalizer) NormalizeAll(raws []domain.RawTicket) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(raw))
	}
	return out
}

// Normalize never fails: unknown codes and bad dates degrade to fallbacks.
func (n *Normalizer) Normalize(raw domain.RawTicket) domain.Ticket {
	status := domain.TicketStatus(raw.Status)
	priority := domain.TicketPriority(raw.Priority)

	requester := strings.TrimSpace(raw.RequesterName)
	if requester == "" {
		requester = unknownRequester
	}

	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}

	createdAt := ParseTimestamp(raw.CreatedAt)
	updatedAt := ParseTimestamp(raw.UpdatedAt)
	dueBy := ParseTimestamp(raw.DueBy)

	ticket := domain.Ticket{
		ID:                 raw.ID,
		Subject:            raw.Subject,
		Status:             status,
		StatusLabel:        StatusLabel(status),
		Priority:           priority,
		PriorityLabel:      PriorityLabel(priority),
		Category:           raw.Category,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
		DueBy:              dueBy,
		CreatedAtDisplay:   n.formatDate(createdAt),
		UpdatedAtDisplay:   n.formatDate(updatedAt),
		DueByDisplay:       n.formatDate(dueBy),
		RequesterName:      requester,
		Description:        raw.Description,
		DescriptionPreview: n.preview(raw.Description),
		Tags:               tags,
		RawCreatedAt:       raw.CreatedAt,
		RawType:            raw.Type,
	}
	ticket.Type = ClassifyType(ticket)
	return ticket
}

// ParseTimestamp parses an ISO 8601 timestamp; invalid or empty input yields the zero time.
func ParseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func (n *Normalizer) formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(n.location).Format(n.layout)
}

func (n *Normalizer) preview(description string) string {
	if description == "" {
		return ""
	}
	text := html.UnescapeString(n.policy.Sanitize(description))
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return strings.TrimSpace(string(runes[:previewLength])) + "…"
}
