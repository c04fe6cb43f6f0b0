package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/models"
	"github.com/reseau-alumni/alumni-be/internal/sanitize"
)

// LinkParams carries the writable fields of a shared link.
type LinkParams struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// LinkServiceProvider defines the interface for link services.
type LinkServiceProvider interface {
	GetAll() ([]models.Link, error)
	GetByID(id string) (models.Link, error)
	Create(params LinkParams, createdBy string) (models.Link, error)
	Update(id string, params LinkParams) (models.Link, error)
	Delete(id string) error
}

// LinkService provides business logic for shared links.
type LinkService struct {
	db *sql.DB
}

// NewLinkService creates a new LinkService.
func NewLinkService(db *sql.DB) *LinkService {
	return &LinkService{db: db}
}

const linkColumns = "id, title, url, description, created_by, bookmark_count, created_at"

func scanLink(scan func(dest ...interface{}) error) (models.Link, error) {
	var l models.Link
	err := scan(&l.ID, &l.Title, &l.URL, &l.Description, &l.CreatedBy, &l.BookmarkCount, &l.CreatedAt)
	return l, err
}

// GetAll lists every link, newest first.
func (s *LinkService) GetAll() ([]models.Link, error) {
	rows, err := s.db.Query("SELECT " + linkColumns + " FROM links ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.Link{}
	for rows.Next() {
		l, err := scanLink(rows.Scan)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// GetByID retrieves a single link.
func (s *LinkService) GetByID(id string) (models.Link, error) {
	l, err := scanLink(s.db.QueryRow("SELECT "+linkColumns+" FROM links WHERE id = ?", id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Link{}, apperror.NewNotFound("Link not found", err)
		}
		return models.Link{}, err
	}
	return l, nil
}

func (p *LinkParams) sanitize() {
	p.Title = sanitize.PlainText(p.Title)
	p.URL = sanitize.PlainText(p.URL)
	p.Description = sanitize.PlainText(p.Description)
}

// Create inserts a link owned by the creating user.
func (s *LinkService) Create(params LinkParams, createdBy string) (models.Link, error) {
	params.sanitize()
	if params.Title == "" || params.URL == "" {
		return models.Link{}, apperror.NewValidation("Title and URL are required", nil)
	}

	id := uuid.New().String()
	_, err := s.db.Exec("INSERT INTO links(id, title, url, description, created_by) VALUES(?, ?, ?, ?, ?)",
		id, params.Title, params.URL, params.Description, createdBy)
	if err != nil {
		return models.Link{}, err
	}
	return s.GetByID(id)
}

// Update replaces the writable fields of a link.
func (s *LinkService) Update(id string, params LinkParams) (models.Link, error) {
	params.sanitize()
	if params.Title == "" || params.URL == "" {
		return models.Link{}, apperror.NewValidation("Title and URL are required", nil)
	}

	res, err := s.db.Exec("UPDATE links SET title = ?, url = ?, description = ? WHERE id = ?",
		params.Title, params.URL, params.Description, id)
	if err != nil {
		return models.Link{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Link{}, apperror.NewNotFound("Link not found", nil)
	}
	return s.GetByID(id)
}

// Delete removes a link and its ledger rows.
func (s *LinkService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM links WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("Link not found", nil)
	}
	_, err = s.db.Exec("DELETE FROM bookmarks WHERE item_id = ? AND item_type = ?", id, models.ItemTypeLink)
	return err
}
