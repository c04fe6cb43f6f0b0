package models

import "time"

// User represents a login account. Accounts are created by seeding or by an
// admin; self-registration is disabled.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	IsAdmin      bool      `json:"isAdmin"`
	ProfileID    *string   `json:"profileId,omitempty"` // Linked alumni profile, if any
	CreatedAt    time.Time `json:"createdAt"`
}
