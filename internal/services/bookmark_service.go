package services

import (
	"database/sql"

	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/models"
)

// Ledger errors, mapped to HTTP statuses at the handler boundary.
var (
	ErrAlreadyBookmarked = apperror.NewConflict("Item already bookmarked", nil)
	ErrNotBookmarked     = apperror.NewNotFound("Bookmark not found", nil)
	ErrItemNotFound      = apperror.NewNotFound("Bookmarked item not found", nil)
)

// counterTables maps an item type to the table carrying its denormalized
// bookmark_count column.
var counterTables = map[string]string{
	models.ItemTypeAlumni:   "alumni_profiles",
	models.ItemTypeResource: "resources",
	models.ItemTypeLink:     "links",
}

// BookmarkServiceProvider defines the interface for the bookmark ledger.
type BookmarkServiceProvider interface {
	Add(userID, itemID, itemType string) error
	Remove(userID, itemID, itemType string) error
	Toggle(userID, itemID, itemType string) (bookmarked bool, err error)
	IsBookmarked(userID, itemID, itemType string) (bool, error)
	ListForUser(userID, itemType string) ([]models.Bookmark, error)
	CountForItem(itemID, itemType string) (int, error)
}

// BookmarkService maintains the user/item ledger and the denormalized
// per-item counters. Ledger mutation and counter update always run in one
// transaction, so the two cannot diverge on a partial failure.
type BookmarkService struct {
	db *sql.DB
}

// NewBookmarkService creates a new BookmarkService.
func NewBookmarkService(db *sql.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

// itemExists checks the referenced entity table for the item id.
func itemExists(tx *sql.Tx, itemID, itemType string) (bool, error) {
	table, ok := counterTables[itemType]
	if !ok {
		return false, apperror.NewValidation("Unknown item type "+itemType, nil)
	}
	var one int
	err := tx.QueryRow("SELECT 1 FROM "+table+" WHERE id = ?", itemID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// Add inserts a ledger row and increments the item's counter. Duplicate
// bookmarks return ErrAlreadyBookmarked; missing items ErrItemNotFound.
func (s *BookmarkService) Add(userID, itemID, itemType string) error {
	if !models.ValidItemType(itemType) {
		return apperror.NewValidation("Unknown item type "+itemType, nil)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	exists, err := itemExists(tx, itemID, itemType)
	if err != nil {
		return err
	}
	if !exists {
		return ErrItemNotFound
	}

	if _, err = tx.Exec("INSERT INTO bookmarks(user_id, item_id, item_type) VALUES(?, ?, ?)",
		userID, itemID, itemType); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyBookmarked
		}
		return err
	}

	if _, err = tx.Exec("UPDATE "+counterTables[itemType]+" SET bookmark_count = bookmark_count + 1 WHERE id = ?",
		itemID); err != nil {
		return err
	}
	return tx.Commit()
}

// Remove deletes a ledger row and decrements the item's counter. Removing an
// absent bookmark returns ErrNotBookmarked.
func (s *BookmarkService) Remove(userID, itemID, itemType string) error {
	if !models.ValidItemType(itemType) {
		return apperror.NewValidation("Unknown item type "+itemType, nil)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM bookmarks WHERE user_id = ? AND item_id = ? AND item_type = ?",
		userID, itemID, itemType)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotBookmarked
	}

	// The counter never goes below zero, even if it had drifted.
	if _, err = tx.Exec("UPDATE "+counterTables[itemType]+" SET bookmark_count = MAX(bookmark_count - 1, 0) WHERE id = ?",
		itemID); err != nil {
		return err
	}
	return tx.Commit()
}

// Toggle flips the bookmark state and reports the resulting state.
func (s *BookmarkService) Toggle(userID, itemID, itemType string) (bool, error) {
	bookmarked, err := s.IsBookmarked(userID, itemID, itemType)
	if err != nil {
		return false, err
	}
	if bookmarked {
		return false, s.Remove(userID, itemID, itemType)
	}
	return true, s.Add(userID, itemID, itemType)
}

// IsBookmarked is an existence check on the ledger.
func (s *BookmarkService) IsBookmarked(userID, itemID, itemType string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM bookmarks WHERE user_id = ? AND item_id = ? AND item_type = ?",
		userID, itemID, itemType).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// ListForUser returns the user's ledger rows, optionally filtered by item
// type. Clients hydrate their bookmark state from this in bulk.
func (s *BookmarkService) ListForUser(userID, itemType string) ([]models.Bookmark, error) {
	query := "SELECT user_id, item_id, item_type, created_at FROM bookmarks WHERE user_id = ?"
	args := []interface{}{userID}
	if itemType != "" {
		if !models.ValidItemType(itemType) {
			return nil, apperror.NewValidation("Unknown item type "+itemType, nil)
		}
		query += " AND item_type = ?"
		args = append(args, itemType)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := []models.Bookmark{}
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.UserID, &b.ItemID, &b.ItemType, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// CountForItem reads the denormalized counter off the entity row.
func (s *BookmarkService) CountForItem(itemID, itemType string) (int, error) {
	table, ok := counterTables[itemType]
	if !ok {
		return 0, apperror.NewValidation("Unknown item type "+itemType, nil)
	}
	var count int
	err := s.db.QueryRow("SELECT bookmark_count FROM "+table+" WHERE id = ?", itemID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, ErrItemNotFound
	}
	return count, err
}
