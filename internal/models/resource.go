package models

import "time"

// Resource is a shared content item (document, article, attachment).
// Body may carry formatted markup and is sanitized with the rich-text policy;
// title and description are plain text.
type Resource struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Body          string    `json:"body,omitempty"`
	Category      string    `json:"category,omitempty"`
	FileURL       string    `json:"fileUrl,omitempty"`
	CreatedBy     *string   `json:"createdBy,omitempty"`
	BookmarkCount int       `json:"bookmarkCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
