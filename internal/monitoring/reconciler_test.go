package monitoring

import (
	"database/sql"
	"testing"

	"github.com/reseau-alumni/alumni-be/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReconciler_CorrectsDriftedCounter(t *testing.T) {
	db := newTestDB(t)

	// A profile whose counter drifted away from the ledger.
	_, err := db.Exec(`INSERT INTO alumni_profiles (id, first_name, last_name, bookmark_count) VALUES ('p1', 'Jean', 'Dupont', 7)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (id, username, password_hash) VALUES ('u1', 'alice', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO bookmarks (user_id, item_id, item_type) VALUES ('u1', 'p1', 'alumni')`)
	require.NoError(t, err)

	// A link whose counter is already correct.
	_, err = db.Exec(`INSERT INTO links (id, title, url, bookmark_count) VALUES ('l1', 't', 'https://x', 0)`)
	require.NoError(t, err)

	r, err := NewReconciler(db, "*/5 * * * *")
	require.NoError(t, err)
	r.reconcile()

	var count int
	require.NoError(t, db.QueryRow("SELECT bookmark_count FROM alumni_profiles WHERE id = 'p1'").Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, db.QueryRow("SELECT bookmark_count FROM links WHERE id = 'l1'").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestNewReconciler_InvalidCron(t *testing.T) {
	db := newTestDB(t)
	_, err := NewReconciler(db, "not a cron expr")
	assert.Error(t, err)
}
