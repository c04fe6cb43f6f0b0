package services

import (
	"testing"

	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementService_CreateSanitizes(t *testing.T) {
	db := newTestDB(t)
	s := NewAnnouncementService(db, nil)

	a, err := s.Create(`<b>Gala</b> 2026`, `<p>Come!</p><script>alert(1)</script>`, "", "admin-1")
	require.NoError(t, err)

	assert.Equal(t, "Gala 2026", a.Title)
	assert.Contains(t, a.Body, "<p>Come!</p>")
	assert.NotContains(t, a.Body, "script")
	assert.Equal(t, "info", a.Level)
	require.NotNil(t, a.CreatedBy)
	assert.Equal(t, "admin-1", *a.CreatedBy)
}

func TestAnnouncementService_TitleRequired(t *testing.T) {
	db := newTestDB(t)
	s := NewAnnouncementService(db, nil)

	_, err := s.Create("", "body", "info", "")
	assert.True(t, apperror.Is(err, apperror.Validation))

	// A title that sanitizes away entirely is rejected too.
	_, err = s.Create("<script>x</script>", "body", "info", "")
	assert.True(t, apperror.Is(err, apperror.Validation))
}

func TestAnnouncementService_GetRecentLimit(t *testing.T) {
	db := newTestDB(t)
	s := NewAnnouncementService(db, nil)

	for i := 0; i < 5; i++ {
		_, err := s.Create("news", "", "info", "")
		require.NoError(t, err)
	}

	recent, err := s.GetRecent(3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	all, err := s.GetRecent(0) // defaults to 20
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestAnnouncementService_Delete(t *testing.T) {
	db := newTestDB(t)
	s := NewAnnouncementService(db, nil)

	a, err := s.Create("news", "", "info", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(a.ID))
	assert.True(t, apperror.Is(s.Delete(a.ID), apperror.NotFound))
}
