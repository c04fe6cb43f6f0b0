package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	GetAllUsers() ([]models.User, error)
	CreateUser(username, password string, isAdmin bool, profileID *string) (models.User, error)
	DeleteUser(id string) error
	UpdatePassword(id, currentPassword, newPassword string) error
	Authenticate(username, password string) (models.User, error)
	EnsureAdmin(username, password string) error
}

// UserService provides business logic for account management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = "id, username, password_hash, is_admin, profile_id, created_at"

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var isAdmin int
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &isAdmin, &user.ProfileID, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	user.IsAdmin = isAdmin != 0
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	user, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperror.NewNotFound("User not found", err)
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByUsername retrieves a single user by username, including the
// password hash.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	user, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperror.NewNotFound("User not found", err)
		}
		return models.User{}, err
	}
	return user, nil
}

// GetAllUsers lists every account, without password hashes.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, is_admin, profile_id, created_at FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var isAdmin int
		if err := rows.Scan(&user.ID, &user.Username, &isAdmin, &user.ProfileID, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.IsAdmin = isAdmin != 0
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateUser creates a new account, hashing the password. Self-registration
// is disabled; only admins (or startup seeding) call this.
func (s *UserService) CreateUser(username, password string, isAdmin bool, profileID *string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, apperror.NewValidation("Username and password are required", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		IsAdmin:   isAdmin,
		ProfileID: profileID,
	}

	_, err = s.db.Exec("INSERT INTO users(id, username, password_hash, is_admin, profile_id) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Username, string(hashed), boolToInt(isAdmin), profileID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperror.NewConflict("Username already taken", err)
		}
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(id string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("User not found", nil)
	}
	return nil
}

// UpdatePassword verifies the current password, then hashes and stores the
// new one.
func (s *UserService) UpdatePassword(id, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperror.NewValidation("New password is required", nil)
	}

	var hash string
	if err := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id).Scan(&hash); err != nil {
		if err == sql.ErrNoRows {
			return apperror.NewNotFound("User not found", err)
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)); err != nil {
		return apperror.NewUnauthenticated("Current password is incorrect", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashed), id)
	return err
}

// Authenticate verifies a username/password pair.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return models.User{}, apperror.NewUnauthenticated("Invalid credentials", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperror.NewUnauthenticated("Invalid credentials", err)
	}

	// Don't hand the hash back to callers.
	user.PasswordHash = ""
	return user, nil
}

// EnsureAdmin seeds the initial admin account when no admin exists yet.
// A blank username or password disables seeding.
func (s *UserService) EnsureAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE is_admin = 1").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := s.CreateUser(username, password, true, nil)
	if err == nil {
		log.Info().Str("username", username).Msg("Seeded initial admin account")
	}
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
