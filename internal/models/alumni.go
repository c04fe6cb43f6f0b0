package models

import "time"

// AlumniProfile is an alumni record. A profile is owned by at most one user
// (the user row points back via ProfileID).
type AlumniProfile struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	PromoYear     int       `json:"promoYear,omitempty"`
	Degree        string    `json:"degree,omitempty"`
	Position      string    `json:"position,omitempty"`
	Company       string    `json:"company,omitempty"`
	Location      string    `json:"location,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Email         string    `json:"email,omitempty"`
	LinkedinURL   string    `json:"linkedinUrl,omitempty"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	Hidden        bool      `json:"hidden"`
	BookmarkCount int       `json:"bookmarkCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
