package domain

import (
	"encoding/json"
	"time"
)

// TicketStatus is the helpdesk numeric status code.
type TicketStatus int

const (
	TicketStatusOpen                TicketStatus = 2
	TicketStatusPending             TicketStatus = 3
	TicketStatusResolved            TicketStatus = 4
	TicketStatusClosed              TicketStatus = 5
	TicketStatusWaitingOnCustomer   TicketStatus = 6
	TicketStatusWaitingOnThirdParty TicketStatus = 7
)

// TicketPriority is the helpdesk numeric priority code (1-4).
type TicketPriority int

const (
	TicketPriorityLow    TicketPriority = 1
	TicketPriorityMedium TicketPriority = 2
	TicketPriorityHigh   TicketPriority = 3
	TicketPriorityUrgent TicketPriority = 4
)

// TicketType is the coarse category derived from the type field or subject.
type TicketType string

const (
	TicketTypeServiceRequest TicketType = "Service Request"
	TicketTypeIncident       TicketType = "Incident"
	TicketTypeProblem        TicketType = "Problem"
	TicketTypeChange         TicketType = "Change"
	TicketTypeGeneral        TicketType = "General"
)

// RawTicket is a ticket record as the helpdesk API returns it. Field names are
// accepted in both snake_case and camelCase.
type RawTicket struct {
	ID            int64
	Subject       string
	Status        int
	Priority      int
	CreatedAt     string
	UpdatedAt     string
	DueBy         string
	RequesterName string
	Description   string
	Type          string
	Category      string
	Tags          []string
}

type wireRequester struct {
	Name string `json:"name"`
}

type wireCustomFields struct {
	Category string `json:"category"`
}

type rawTicketWire struct {
	ID              int64            `json:"id"`
	Subject         string           `json:"subject"`
	Status          int              `json:"status"`
	Priority        int              `json:"priority"`
	CreatedAt       string           `json:"created_at"`
	CreatedAtCamel  string           `json:"createdAt"`
	UpdatedAt       string           `json:"updated_at"`
	UpdatedAtCamel  string           `json:"updatedAt"`
	DueBy           string           `json:"due_by"`
	DueByCamel      string           `json:"dueBy"`
	RequesterName   string           `json:"requester_name"`
	RequesterCamel  string           `json:"requesterName"`
	Requester       *wireRequester   `json:"requester"`
	Description     string           `json:"description"`
	DescriptionText string           `json:"description_text"`
	Type            *string          `json:"type"`
	Category        string           `json:"category"`
	CustomFields    wireCustomFields `json:"custom_fields"`
	Tags            []string         `json:"tags"`
}

// UnmarshalJSON tolerates the field-name variants seen across helpdesk API versions.
func (r *RawTicket) UnmarshalJSON(data []byte) error {
	var w rawTicketWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = RawTicket{
		ID:            w.ID,
		Subject:       w.Subject,
		Status:        w.Status,
		Priority:      w.Priority,
		CreatedAt:     firstNonEmpty(w.CreatedAt, w.CreatedAtCamel),
		UpdatedAt:     firstNonEmpty(w.UpdatedAt, w.UpdatedAtCamel),
		DueBy:         firstNonEmpty(w.DueBy, w.DueByCamel),
		RequesterName: firstNonEmpty(w.RequesterName, w.RequesterCamel),
		Description:   firstNonEmpty(w.Description, w.DescriptionText),
		Category:      firstNonEmpty(w.Category, w.CustomFields.Category),
		Tags:          w.Tags,
	}
	if r.RequesterName == "" && w.Requester != nil {
		r.RequesterName = w.Requester.Name
	}
	if w.Type != nil {
		r.Type = *w.Type
	}
	return nil
}

// MarshalJSON emits the snake_case helpdesk shape.
func (r RawTicket) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"id":             r.ID,
		"subject":        r.Subject,
		"status":         r.Status,
		"priority":       r.Priority,
		"created_at":     r.CreatedAt,
		"updated_at":     r.UpdatedAt,
		"due_by":         r.DueBy,
		"requester_name": r.RequesterName,
		"description":    r.Description,
		"type":           r.Type,
		"category":       r.Category,
		"tags":           r.Tags,
	})
}

// Ticket is the normalized ticket shape bound to tables and charts.
type Ticket struct {
	ID                 int64          `json:"id"`
	Subject            string         `json:"subject"`
	Status             TicketStatus   `json:"status"`
	StatusLabel        string         `json:"status_label"`
	Priority           TicketPriority `json:"priority"`
	PriorityLabel      string         `json:"priority_label"`
	Type               TicketType     `json:"type"`
	Category           string         `json:"category,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DueBy              time.Time      `json:"due_by"`
	CreatedAtDisplay   string         `json:"created_at_display"`
	UpdatedAtDisplay   string         `json:"updated_at_display"`
	DueByDisplay       string         `json:"due_by_display"`
	RequesterName      string         `json:"requester_name"`
	Description        string         `json:"description"`
	DescriptionPreview string         `json:"description_preview"`
	Tags               []string       `json:"tags"`

	// RawCreatedAt keeps the API timestamp for calendar-day bucketing.
	RawCreatedAt string `json:"-"`
	// RawType keeps the explicit type field for classification.
	RawType string `json:"-"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
