package domain

import "time"

// Preferences are per-user dashboard settings.
type Preferences struct {
	UserID      string
	DisplayName string
	Email       string
	DarkMode    bool
	UpdatedAt   time.Time
}
