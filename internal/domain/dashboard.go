package domain

import "time"

// StatCards are the headline counters on the dashboard.
type StatCards struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	Pending  int `json:"pending"`
	Resolved int `json:"resolved"`
	Urgent   int `json:"urgent"`
}

// DashboardSummary is the chart data for one org unit.
type DashboardSummary struct {
	OrgUnitID      string         `json:"org_unit_id"`
	Source         DataSourceKind `json:"source"`
	Cards          StatCards      `json:"cards"`
	ByStatus       []Bucket       `json:"by_status"`
	ByPriority     PriorityCounts `json:"by_priority"`
	ByDay          []Bucket       `json:"by_day"`
	TicketsSampled int            `json:"tickets_sampled"`
	Truncated      bool           `json:"truncated"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Cached         bool           `json:"cached"`
}
