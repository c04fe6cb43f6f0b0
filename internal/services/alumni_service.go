package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/auth"
	"github.com/reseau-alumni/alumni-be/internal/models"
	"github.com/reseau-alumni/alumni-be/internal/sanitize"
)

// AlumniParams carries the writable fields of an alumni profile.
type AlumniParams struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PromoYear   int    `json:"promoYear"`
	Degree      string `json:"degree"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Bio         string `json:"bio"`
	Email       string `json:"email"`
	LinkedinURL string `json:"linkedinUrl"`
	AvatarURL   string `json:"avatarUrl"`
	Hidden      bool   `json:"hidden"`
}

// AlumniServiceProvider defines the interface for alumni profile services.
type AlumniServiceProvider interface {
	GetAll(viewer *models.User, query string, promoYear int) ([]models.AlumniProfile, error)
	GetByID(id string, viewer *models.User) (models.AlumniProfile, error)
	Create(params AlumniParams) (models.AlumniProfile, error)
	Update(id string, params AlumniParams) (models.AlumniProfile, error)
	Patch(id string, fields map[string]interface{}) (models.AlumniProfile, error)
	Delete(id string) error
}

// AlumniService provides business logic for alumni profile management.
type AlumniService struct {
	db *sql.DB
}

// NewAlumniService creates a new AlumniService.
func NewAlumniService(db *sql.DB) *AlumniService {
	return &AlumniService{db: db}
}

const alumniColumns = `id, first_name, last_name, promo_year, degree, position, company,
	location, bio, email, linkedin_url, avatar_url, hidden, bookmark_count, created_at, updated_at`

func scanAlumni(scan func(dest ...interface{}) error) (models.AlumniProfile, error) {
	var p models.AlumniProfile
	var hidden int
	err := scan(&p.ID, &p.FirstName, &p.LastName, &p.PromoYear, &p.Degree, &p.Position,
		&p.Company, &p.Location, &p.Bio, &p.Email, &p.LinkedinURL, &p.AvatarURL,
		&hidden, &p.BookmarkCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.AlumniProfile{}, err
	}
	p.Hidden = hidden != 0
	return p, nil
}

// GetAll lists profiles. Hidden profiles are returned only to admins and to
// the owning user; an optional free-text query matches name, company and
// position, and promoYear filters by graduation year.
func (s *AlumniService) GetAll(viewer *models.User, query string, promoYear int) ([]models.AlumniProfile, error) {
	sb := strings.Builder{}
	sb.WriteString("SELECT " + alumniColumns + " FROM alumni_profiles WHERE 1=1")
	var args []interface{}

	if query != "" {
		like := "%" + query + "%"
		sb.WriteString(" AND (first_name LIKE ? OR last_name LIKE ? OR company LIKE ? OR position LIKE ?)")
		args = append(args, like, like, like, like)
	}
	if promoYear > 0 {
		sb.WriteString(" AND promo_year = ?")
		args = append(args, promoYear)
	}
	sb.WriteString(" ORDER BY last_name, first_name")

	rows, err := s.db.Query(sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.AlumniProfile{}
	for rows.Next() {
		p, err := scanAlumni(rows.Scan)
		if err != nil {
			return nil, err
		}
		if p.Hidden && !auth.CanModifyProfile(viewer, p.ID) {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetByID retrieves one profile. Hidden profiles resolve to NotFound unless
// the viewer is an admin or the owner.
func (s *AlumniService) GetByID(id string, viewer *models.User) (models.AlumniProfile, error) {
	row := s.db.QueryRow("SELECT "+alumniColumns+" FROM alumni_profiles WHERE id = ?", id)
	p, err := scanAlumni(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.AlumniProfile{}, apperror.NewNotFound("Profile not found", err)
		}
		return models.AlumniProfile{}, err
	}
	if p.Hidden && !auth.CanModifyProfile(viewer, p.ID) {
		return models.AlumniProfile{}, apperror.NewNotFound("Profile not found", nil)
	}
	return p, nil
}

func (p *AlumniParams) sanitize() {
	p.FirstName = sanitize.PlainText(p.FirstName)
	p.LastName = sanitize.PlainText(p.LastName)
	p.Degree = sanitize.PlainText(p.Degree)
	p.Position = sanitize.PlainText(p.Position)
	p.Company = sanitize.PlainText(p.Company)
	p.Location = sanitize.PlainText(p.Location)
	p.Bio = sanitize.PlainText(p.Bio)
	p.Email = sanitize.PlainText(p.Email)
	p.LinkedinURL = sanitize.PlainText(p.LinkedinURL)
	p.AvatarURL = sanitize.PlainText(p.AvatarURL)
}

// Create inserts a new profile. Sanitization runs before the name check, so
// a name made of nothing but markup counts as missing.
func (s *AlumniService) Create(params AlumniParams) (models.AlumniProfile, error) {
	params.sanitize()
	if params.FirstName == "" || params.LastName == "" {
		return models.AlumniProfile{}, apperror.NewValidation("First and last name are required", nil)
	}

	id := uuid.New().String()
	_, err := s.db.Exec(`INSERT INTO alumni_profiles
		(id, first_name, last_name, promo_year, degree, position, company, location, bio, email, linkedin_url, avatar_url, hidden)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.FirstName, params.LastName, params.PromoYear, params.Degree, params.Position,
		params.Company, params.Location, params.Bio, params.Email, params.LinkedinURL,
		params.AvatarURL, boolToInt(params.Hidden))
	if err != nil {
		return models.AlumniProfile{}, err
	}
	return s.getRaw(id)
}

// Update replaces every writable field of a profile. Same
// sanitize-then-validate order as Create.
func (s *AlumniService) Update(id string, params AlumniParams) (models.AlumniProfile, error) {
	params.sanitize()
	if params.FirstName == "" || params.LastName == "" {
		return models.AlumniProfile{}, apperror.NewValidation("First and last name are required", nil)
	}

	res, err := s.db.Exec(`UPDATE alumni_profiles SET
		first_name = ?, last_name = ?, promo_year = ?, degree = ?, position = ?, company = ?,
		location = ?, bio = ?, email = ?, linkedin_url = ?, avatar_url = ?, hidden = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		params.FirstName, params.LastName, params.PromoYear, params.Degree, params.Position,
		params.Company, params.Location, params.Bio, params.Email, params.LinkedinURL,
		params.AvatarURL, boolToInt(params.Hidden), id)
	if err != nil {
		return models.AlumniProfile{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.AlumniProfile{}, apperror.NewNotFound("Profile not found", nil)
	}
	return s.getRaw(id)
}

// patchableColumns maps JSON field names to their columns for partial updates.
var patchableColumns = map[string]string{
	"firstName":   "first_name",
	"lastName":    "last_name",
	"promoYear":   "promo_year",
	"degree":      "degree",
	"position":    "position",
	"company":     "company",
	"location":    "location",
	"bio":         "bio",
	"email":       "email",
	"linkedinUrl": "linkedin_url",
	"avatarUrl":   "avatar_url",
	"hidden":      "hidden",
}

// Patch applies a partial update. Unknown fields are rejected; string values
// are sanitized through the generic payload walk. Values are type-checked
// per column before anything is written: sqlite's flexible typing would
// happily store a string in promo_year and break every later scan.
func (s *AlumniService) Patch(id string, fields map[string]interface{}) (models.AlumniProfile, error) {
	if len(fields) == 0 {
		return models.AlumniProfile{}, apperror.NewValidation("No fields to update", nil)
	}
	sanitize.Map(fields)

	var sets []string
	var args []interface{}
	for name, value := range fields {
		col, ok := patchableColumns[name]
		if !ok {
			return models.AlumniProfile{}, apperror.NewValidation(fmt.Sprintf("Unknown field %q", name), nil)
		}
		switch name {
		case "hidden":
			b, ok := value.(bool)
			if !ok {
				return models.AlumniProfile{}, apperror.NewValidation("hidden must be a boolean", nil)
			}
			value = boolToInt(b)
		case "promoYear":
			// Decoded JSON numbers arrive as float64.
			switch n := value.(type) {
			case float64:
				value = int(n)
			case int:
			default:
				return models.AlumniProfile{}, apperror.NewValidation("promoYear must be a number", nil)
			}
		default:
			str, ok := value.(string)
			if !ok {
				return models.AlumniProfile{}, apperror.NewValidation(fmt.Sprintf("%s must be a string", name), nil)
			}
			value = str
		}
		sets = append(sets, col+" = ?")
		args = append(args, value)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := s.db.Exec("UPDATE alumni_profiles SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return models.AlumniProfile{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.AlumniProfile{}, apperror.NewNotFound("Profile not found", nil)
	}
	return s.getRaw(id)
}

// Delete removes a profile. The linked user account and the profile's
// bookmark rows go with it via foreign key cascade.
func (s *AlumniService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM alumni_profiles WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("Profile not found", nil)
	}
	// Ledger rows referencing the profile are keyed by item id, not FK.
	_, err = s.db.Exec("DELETE FROM bookmarks WHERE item_id = ? AND item_type = ?", id, models.ItemTypeAlumni)
	return err
}

// getRaw fetches without the hidden-visibility check, for post-write reads.
func (s *AlumniService) getRaw(id string) (models.AlumniProfile, error) {
	row := s.db.QueryRow("SELECT "+alumniColumns+" FROM alumni_profiles WHERE id = ?", id)
	return scanAlumni(row.Scan)
}
