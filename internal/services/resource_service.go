package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/models"
	"github.com/reseau-alumni/alumni-be/internal/sanitize"
)

// ResourceParams carries the writable fields of a resource. Body may contain
// formatted markup and goes through the rich-text policy.
type ResourceParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
	Category    string `json:"category"`
	FileURL     string `json:"fileUrl"`
}

// ResourceServiceProvider defines the interface for resource services.
type ResourceServiceProvider interface {
	GetAll(category string) ([]models.Resource, error)
	GetByID(id string) (models.Resource, error)
	Create(params ResourceParams, createdBy string) (models.Resource, error)
	Update(id string, params ResourceParams) (models.Resource, error)
	Delete(id string) error
}

// ResourceService provides business logic for shared resources.
type ResourceService struct {
	db *sql.DB
}

// NewResourceService creates a new ResourceService.
func NewResourceService(db *sql.DB) *ResourceService {
	return &ResourceService{db: db}
}

const resourceColumns = "id, title, description, body, category, file_url, created_by, bookmark_count, created_at"

func scanResource(scan func(dest ...interface{}) error) (models.Resource, error) {
	var r models.Resource
	err := scan(&r.ID, &r.Title, &r.Description, &r.Body, &r.Category, &r.FileURL,
		&r.CreatedBy, &r.BookmarkCount, &r.CreatedAt)
	return r, err
}

// GetAll lists resources, optionally filtered by category, newest first.
func (s *ResourceService) GetAll(category string) ([]models.Resource, error) {
	query := "SELECT " + resourceColumns + " FROM resources"
	var args []interface{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		r, err := scanResource(rows.Scan)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// GetByID retrieves a single resource.
func (s *ResourceService) GetByID(id string) (models.Resource, error) {
	r, err := scanResource(s.db.QueryRow("SELECT "+resourceColumns+" FROM resources WHERE id = ?", id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Resource{}, apperror.NewNotFound("Resource not found", err)
		}
		return models.Resource{}, err
	}
	return r, nil
}

func (p *ResourceParams) sanitize() {
	p.Title = sanitize.PlainText(p.Title)
	p.Description = sanitize.PlainText(p.Description)
	p.Body = sanitize.RichText(p.Body)
	p.Category = sanitize.PlainText(p.Category)
	p.FileURL = sanitize.PlainText(p.FileURL)
}

// Create inserts a resource owned by the creating user.
func (s *ResourceService) Create(params ResourceParams, createdBy string) (models.Resource, error) {
	params.sanitize()
	if params.Title == "" {
		return models.Resource{}, apperror.NewValidation("Title is required", nil)
	}

	id := uuid.New().String()
	_, err := s.db.Exec(`INSERT INTO resources(id, title, description, body, category, file_url, created_by)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		id, params.Title, params.Description, params.Body, params.Category, params.FileURL, createdBy)
	if err != nil {
		return models.Resource{}, err
	}
	return s.GetByID(id)
}

// Update replaces the writable fields of a resource.
func (s *ResourceService) Update(id string, params ResourceParams) (models.Resource, error) {
	params.sanitize()
	if params.Title == "" {
		return models.Resource{}, apperror.NewValidation("Title is required", nil)
	}

	res, err := s.db.Exec(`UPDATE resources SET title = ?, description = ?, body = ?, category = ?, file_url = ?
		WHERE id = ?`,
		params.Title, params.Description, params.Body, params.Category, params.FileURL, id)
	if err != nil {
		return models.Resource{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Resource{}, apperror.NewNotFound("Resource not found", nil)
	}
	return s.GetByID(id)
}

// Delete removes a resource and its ledger rows.
func (s *ResourceService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM resources WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("Resource not found", nil)
	}
	_, err = s.db.Exec("DELETE FROM bookmarks WHERE item_id = ? AND item_type = ?", id, models.ItemTypeResource)
	return err
}
