package services

import (
	"testing"

	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkService_CRUD(t *testing.T) {
	db := newTestDB(t)
	s := NewLinkService(db)
	userID := seedUser(t, db, "alice", false, nil)

	link, err := s.Create(LinkParams{Title: "Job board", URL: "https://jobs.example.org"}, userID)
	require.NoError(t, err)
	require.NotNil(t, link.CreatedBy)
	assert.Equal(t, userID, *link.CreatedBy)

	got, err := s.GetByID(link.ID)
	require.NoError(t, err)
	assert.Equal(t, "Job board", got.Title)

	updated, err := s.Update(link.ID, LinkParams{Title: "Jobs", URL: "https://jobs.example.org"})
	require.NoError(t, err)
	assert.Equal(t, "Jobs", updated.Title)

	all, err := s.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.Delete(link.ID))
	_, err = s.GetByID(link.ID)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestLinkService_Validation(t *testing.T) {
	db := newTestDB(t)
	s := NewLinkService(db)

	_, err := s.Create(LinkParams{Title: "", URL: "https://x"}, "u")
	assert.True(t, apperror.Is(err, apperror.Validation))

	_, err = s.Create(LinkParams{Title: "t", URL: ""}, "u")
	assert.True(t, apperror.Is(err, apperror.Validation))
}

func TestResourceService_CRUD(t *testing.T) {
	db := newTestDB(t)
	s := NewResourceService(db)
	userID := seedUser(t, db, "alice", false, nil)

	res, err := s.Create(ResourceParams{
		Title:    "Guide",
		Body:     `<p>intro</p><script>alert(1)</script>`,
		Category: "career",
	}, userID)
	require.NoError(t, err)
	assert.Contains(t, res.Body, "<p>intro</p>")
	assert.NotContains(t, res.Body, "script")

	byCategory, err := s.GetAll("career")
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	none, err := s.GetAll("sports")
	require.NoError(t, err)
	assert.Empty(t, none)

	updated, err := s.Update(res.ID, ResourceParams{Title: "Career guide", Category: "career"})
	require.NoError(t, err)
	assert.Equal(t, "Career guide", updated.Title)

	require.NoError(t, s.Delete(res.ID))
	assert.True(t, apperror.Is(s.Delete(res.ID), apperror.NotFound))
}
