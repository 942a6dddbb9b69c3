package domain

import "time"

// ViewState is the lifecycle state of a ticket view.
type ViewState string

const (
	ViewStateIdle    ViewState = "idle"
	ViewStateLoading ViewState = "loading"
	ViewStateLoaded  ViewState = "loaded"
	ViewStateError   ViewState = "error"
)

// SortDirection orders a sorted column.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// DataSourceKind tells the client whether tickets are live or sample data.
type DataSourceKind string

const (
	DataSourceLive DataSourceKind = "live"
	DataSourceDemo DataSourceKind = "demo"
)

// UIFilterState is owned by one ticket view for its lifetime.
type UIFilterState struct {
	OrgUnitID      string          `json:"org_unit_id"`
	SearchTerm     string          `json:"search_term"`
	StatusFilter   *TicketStatus   `json:"status_filter,omitempty"`
	PriorityFilter *TicketPriority `json:"priority_filter,omitempty"`
	TypeFilter     TicketType      `json:"type_filter,omitempty"`
	SortKey        string          `json:"sort_key"`
	SortDirection  SortDirection   `json:"sort_direction"`
	CurrentPage    int             `json:"current_page"`
	PageSize       int             `json:"page_size"`
	TotalCount     int             `json:"total_count"`
	TotalKnown     bool            `json:"total_known"`
}

// Bucket is one category label with its ticket count.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PriorityCounts is the fixed four-bucket priority aggregate.
type PriorityCounts struct {
	Urgent int `json:"urgent"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Total sums every bucket.
func (p PriorityCounts) Total() int {
	return p.Urgent + p.High + p.Medium + p.Low
}

// Aggregates bundles the chart data derived from one ticket set.
type Aggregates struct {
	ByStatus   []Bucket       `json:"by_status"`
	ByPriority PriorityCounts `json:"by_priority"`
	ByDay      []Bucket       `json:"by_day"`
}

// PageItem is one entry of a windowed page-number control; Page is 0 for an ellipsis.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// Pagination is the display math for the ticket table footer.
type Pagination struct {
	CurrentPage int        `json:"current_page"`
	PageSize    int        `json:"page_size"`
	TotalCount  int        `json:"total_count"`
	TotalPages  int        `json:"total_pages"`
	From        int        `json:"from"`
	To          int        `json:"to"`
	HasMore     bool       `json:"has_more"`
	Summary     string     `json:"summary"`
	Items       []PageItem `json:"items"`
}

// ViewError is the user-visible error banner content.
type ViewError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// ViewSnapshot is a consistent read of a ticket view. Search and type filters
// only narrow the loaded page: Tickets is a subset of the LoadedCount tickets
// fetched for Filters.CurrentPage.
type ViewSnapshot struct {
	ID          string         `json:"id"`
	State       ViewState      `json:"state"`
	Source      DataSourceKind `json:"source"`
	Filters     UIFilterState  `json:"filters"`
	Tickets     []Ticket       `json:"tickets"`
	LoadedCount int            `json:"loaded_count"`
	Aggregates  Aggregates     `json:"aggregates"`
	Pagination  Pagination     `json:"pagination"`
	Error       *ViewError     `json:"error,omitempty"`
	LoadedAt    *time.Time     `json:"loaded_at,omitempty"`
}
