package models

import "time"

// Link is a shared external URL.
type Link struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	Description   string    `json:"description,omitempty"`
	CreatedBy     *string   `json:"createdBy,omitempty"` // Nullable: the owner may be deleted
	BookmarkCount int       `json:"bookmarkCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
