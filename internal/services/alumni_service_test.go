package services

import (
	"testing"

	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlumniService_HiddenVisibility(t *testing.T) {
	db := newTestDB(t)
	s := NewAlumniService(db)

	visibleID := seedAlumni(t, db, "Visible", false)
	hiddenID := seedAlumni(t, db, "Hidden", true)

	admin := &models.User{ID: "a", IsAdmin: true}
	owner := &models.User{ID: "o", ProfileID: &hiddenID}
	stranger := &models.User{ID: "s"}

	t.Run("anonymous list excludes hidden", func(t *testing.T) {
		profiles, err := s.GetAll(nil, "", 0)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, visibleID, profiles[0].ID)
	})

	t.Run("admin list includes hidden", func(t *testing.T) {
		profiles, err := s.GetAll(admin, "", 0)
		require.NoError(t, err)
		assert.Len(t, profiles, 2)
	})

	t.Run("owner sees own hidden profile", func(t *testing.T) {
		profiles, err := s.GetAll(owner, "", 0)
		require.NoError(t, err)
		assert.Len(t, profiles, 2)

		p, err := s.GetByID(hiddenID, owner)
		require.NoError(t, err)
		assert.Equal(t, hiddenID, p.ID)
	})

	t.Run("stranger gets 404 for hidden profile", func(t *testing.T) {
		_, err := s.GetByID(hiddenID, stranger)
		assert.True(t, apperror.Is(err, apperror.NotFound))
	})
}

func TestAlumniService_Search(t *testing.T) {
	db := newTestDB(t)
	s := NewAlumniService(db)

	_, err := s.Create(AlumniParams{FirstName: "Jean", LastName: "Dupont", PromoYear: 2015, Company: "Acme"})
	require.NoError(t, err)
	_, err = s.Create(AlumniParams{FirstName: "Marie", LastName: "Curie", PromoYear: 2018})
	require.NoError(t, err)

	byName, err := s.GetAll(nil, "dupont", 0)
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byCompany, err := s.GetAll(nil, "acme", 0)
	require.NoError(t, err)
	assert.Len(t, byCompany, 1)

	byPromo, err := s.GetAll(nil, "", 2018)
	require.NoError(t, err)
	require.Len(t, byPromo, 1)
	assert.Equal(t, "Marie", byPromo[0].FirstName)
}

func TestAlumniService_CreateSanitizes(t *testing.T) {
	db := newTestDB(t)
	s := NewAlumniService(db)

	p, err := s.Create(AlumniParams{
		FirstName: "Jean",
		LastName:  "Dupont",
		Bio:       `<script>alert(1)</script>engineer`,
	})
	require.NoError(t, err)
	assert.Equal(t, "engineer", p.Bio)
}

func TestAlumniService_MarkupOnlyNameRejected(t *testing.T) {
	db := newTestDB(t)
	s := NewAlumniService(db)

	// A name that sanitizes down to nothing is a missing name.
	_, err := s.Create(AlumniParams{FirstName: "<b></b>", LastName: "Dupont"})
	assert.True(t, apperror.Is(err, apperror.Validation))

	id := seedAlumni(t, db, "Jean", false)
	_, err = s.Update(id, AlumniParams{FirstName: "Jean", LastName: "<i></i>"})
	assert.True(t, apperror.Is(err, apperror.Validation))
}

func TestAlumniService_Patch(t *testing.T) {
	db := newTestDB(t)
	s := NewAlumniService(db)
	id := seedAlumni(t, db, "Jean", false)

	t.Run("partial update", func(t *testing.T) {
		p, err := s.Patch(id, map[string]interface{}{
			"company": "Acme",
			"bio":     `<b>builder</b>`,
			"hidden":  true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme", p.Company)
		assert.Equal(t, "builder", p.Bio)
		assert.True(t, p.Hidden)
		assert.Equal(t, "Jean", p.FirstName) // untouched
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := s.Patch(id, map[string]interface{}{"isAdmin": true})
		assert.True(t, apperror.Is(err, apperror.Validation))
	})

	t.Run("numeric promoYear accepted as decoded JSON", func(t *testing.T) {
		p, err := s.Patch(id, map[string]interface{}{"promoYear": float64(2019)})
		require.NoError(t, err)
		assert.Equal(t, 2019, p.PromoYear)
	})

	t.Run("mistyped values rejected before the write", func(t *testing.T) {
		_, err := s.Patch(id, map[string]interface{}{"promoYear": "abc"})
		assert.True(t, apperror.Is(err, apperror.Validation))

		_, err = s.Patch(id, map[string]interface{}{"company": 42})
		assert.True(t, apperror.Is(err, apperror.Validation))

		_, err = s.Patch(id, map[string]interface{}{"hidden": "yes"})
		assert.True(t, apperror.Is(err, apperror.Validation))

		// Nothing was committed: the row still scans and lists cleanly.
		profiles, err := s.GetAll(&models.User{ID: "a", IsAdmin: true}, "", 0)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, 2019, profiles[0].PromoYear)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		_, err := s.Patch(id, map[string]interface{}{})
		assert.True(t, apperror.Is(err, apperror.Validation))
	})
}

func TestAlumniService_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	s := NewAlumniService(db)
	users := NewUserService(db)
	bookmarks := NewBookmarkService(db)

	profileID := seedAlumni(t, db, "Jean", false)
	linkedUser := seedUser(t, db, "jean", false, &profileID)
	otherUser := seedUser(t, db, "alice", false, nil)
	require.NoError(t, bookmarks.Add(otherUser, profileID, models.ItemTypeAlumni))

	require.NoError(t, s.Delete(profileID))

	_, err := s.GetByID(profileID, &models.User{ID: "a", IsAdmin: true})
	assert.True(t, apperror.Is(err, apperror.NotFound))

	// The linked account goes with the profile.
	_, err = users.GetUserByID(linkedUser)
	assert.True(t, apperror.Is(err, apperror.NotFound))

	// So do the ledger rows pointing at it.
	isB, err := bookmarks.IsBookmarked(otherUser, profileID, models.ItemTypeAlumni)
	require.NoError(t, err)
	assert.False(t, isB)
}

func TestAlumniService_UpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	s := NewAlumniService(db)

	_, err := s.Update("missing", AlumniParams{FirstName: "A", LastName: "B"})
	assert.True(t, apperror.Is(err, apperror.NotFound))
}
