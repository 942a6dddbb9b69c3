package dto

import "time"

// PreferencesResponse describes the caller's dashboard settings.
type PreferencesResponse struct {
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email"`
	DarkMode    bool       `json:"dark_mode"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// UpdatePreferencesRequest payload. Omitted fields are left unchanged.
type UpdatePreferencesRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	DarkMode    *bool   `json:"dark_mode"`
}
