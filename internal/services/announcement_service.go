package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/models"
	"github.com/reseau-alumni/alumni-be/internal/sanitize"
	"github.com/reseau-alumni/alumni-be/internal/websocket"
)

// AnnouncementServiceProvider defines the interface for the news feed.
type AnnouncementServiceProvider interface {
	Create(title, body, level, createdBy string) (models.Announcement, error)
	GetRecent(limit int) ([]models.Announcement, error)
	Delete(id string) error
}

// AnnouncementService provides business logic for the announcements feed.
// New entries are pushed to connected frontends through the websocket hub.
type AnnouncementService struct {
	db  *sql.DB
	hub *websocket.Hub
}

// NewAnnouncementService creates a new AnnouncementService. The hub may be
// nil in tests; broadcasting is then skipped.
func NewAnnouncementService(db *sql.DB, hub *websocket.Hub) *AnnouncementService {
	return &AnnouncementService{db: db, hub: hub}
}

// Create persists a new announcement and broadcasts it to the feed.
func (s *AnnouncementService) Create(title, body, level, createdBy string) (models.Announcement, error) {
	title = sanitize.PlainText(title)
	body = sanitize.RichText(body)
	if title == "" {
		return models.Announcement{}, apperror.NewValidation("Title is required", nil)
	}
	if level == "" {
		level = "info"
	}

	a := models.Announcement{
		ID:    uuid.New().String(),
		Title: title,
		Body:  body,
		Level: level,
	}
	if createdBy != "" {
		a.CreatedBy = &createdBy
	}

	err := s.db.QueryRow(`INSERT INTO announcements(id, title, body, level, created_by)
		VALUES(?, ?, ?, ?, ?) RETURNING created_at`,
		a.ID, a.Title, a.Body, a.Level, a.CreatedBy).Scan(&a.CreatedAt)
	if err != nil {
		return models.Announcement{}, err
	}

	if s.hub != nil {
		s.hub.Broadcast <- websocket.NewEventMessage("announcement.created", a)
	}
	return a, nil
}

// GetRecent retrieves the most recent announcements.
func (s *AnnouncementService) GetRecent(limit int) ([]models.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT id, title, body, level, created_by, created_at
		FROM announcements ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Level, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM announcements WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("Announcement not found", nil)
	}
	return nil
}
