package dto

// MountViewRequest payload.
type MountViewRequest struct {
	OrgUnitID string `json:"org_unit_id"`
	Status    *int   `json:"status"`
	Priority  *int   `json:"priority"`
}

// ServerFiltersRequest payload. A null field clears that filter.
type ServerFiltersRequest struct {
	Status   *int `json:"status"`
	Priority *int `json:"priority"`
}

// ClientFiltersRequest payload. Omitted fields are left unchanged.
type ClientFiltersRequest struct {
	Search        *string `json:"search"`
	Type          *string `json:"type"`
	SortKey       *string `json:"sort_key"`
	SortDirection *string `json:"sort_direction"`
}

// SetPageRequest payload.
type SetPageRequest struct {
	Page int `json:"page"`
}
