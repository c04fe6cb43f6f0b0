package models

import "time"

// Bookmarkable item kinds. The bookmarks table is polymorphic over these.
const (
	ItemTypeAlumni   = "alumni"
	ItemTypeResource = "resource"
	ItemTypeLink     = "link"
)

// ValidItemType reports whether t names a bookmarkable item kind.
func ValidItemType(t string) bool {
	switch t {
	case ItemTypeAlumni, ItemTypeResource, ItemTypeLink:
		return true
	}
	return false
}

// Bookmark is one row of the user/item ledger. A user may bookmark a given
// item at most once; uniqueness is on (UserID, ItemID, ItemType).
type Bookmark struct {
	UserID    string    `json:"userId"`
	ItemID    string    `json:"itemId"`
	ItemType  string    `json:"itemType"`
	CreatedAt time.Time `json:"createdAt"`
}
