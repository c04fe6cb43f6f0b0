package services

import (
	"database/sql"
	"testing"

	"github.com/reseau-alumni/alumni-be/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh in-memory database with the full schema. One
// connection only, so every statement sees the same memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

// seedAlumni inserts a minimal profile row and returns its id.
func seedAlumni(t *testing.T, db *sql.DB, firstName string, hidden bool) string {
	t.Helper()
	s := NewAlumniService(db)
	p, err := s.Create(AlumniParams{FirstName: firstName, LastName: "Test", Hidden: hidden})
	require.NoError(t, err)
	return p.ID
}

// seedUser creates an account and returns it.
func seedUser(t *testing.T, db *sql.DB, username string, isAdmin bool, profileID *string) string {
	t.Helper()
	s := NewUserService(db)
	u, err := s.CreateUser(username, "password123", isAdmin, profileID)
	require.NoError(t, err)
	return u.ID
}
