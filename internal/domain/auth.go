package domain

import "time"

// Principal is the caller identified by a verified bearer token.
type Principal struct {
	UserID    string
	Email     string
	Name      string
	ExpiresAt time.Time
}
