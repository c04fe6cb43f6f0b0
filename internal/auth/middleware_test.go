package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver serves user records from a map, standing in for the store.
type fakeResolver struct {
	users map[string]models.User
}

func (f *fakeResolver) GetUserByID(id string) (models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return models.User{}, apperror.NewNotFound("User not found", nil)
}

func newTestMiddleware() (*Middleware, *TokenCodec) {
	codec := NewTokenCodec("test-secret", time.Hour)
	resolver := &fakeResolver{users: map[string]models.User{
		"user-1":  {ID: "user-1", Username: "alice"},
		"admin-1": {ID: "admin-1", Username: "root", IsAdmin: true},
	}}
	return NewMiddleware(codec, resolver), codec
}

// echoUser responds with the context identity, or 204 when anonymous.
func echoUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Write([]byte(user.Username))
}

func doRequest(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	mw, codec := newTestMiddleware()
	handler := mw.RequireAuth(http.HandlerFunc(echoUser))

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(handler, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "error")
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(handler, "garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenCodec("test-secret", -time.Hour)
		token, err := expired.Issue(models.User{ID: "user-1"})
		require.NoError(t, err)

		rec := doRequest(handler, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown subject", func(t *testing.T) {
		token, err := codec.Issue(models.User{ID: "ghost"})
		require.NoError(t, err)

		rec := doRequest(handler, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token attaches resolved user", func(t *testing.T) {
		token, err := codec.Issue(models.User{ID: "user-1"})
		require.NoError(t, err)

		rec := doRequest(handler, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})
}

func TestRequireAdmin(t *testing.T) {
	mw, codec := newTestMiddleware()
	handler := mw.RequireAdmin(http.HandlerFunc(echoUser))

	t.Run("non-admin is forbidden", func(t *testing.T) {
		// The token even claims admin; the store decides.
		token, err := codec.Issue(models.User{ID: "user-1", IsAdmin: true})
		require.NoError(t, err)

		rec := doRequest(handler, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := codec.Issue(models.User{ID: "admin-1"})
		require.NoError(t, err)

		rec := doRequest(handler, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "root", rec.Body.String())
	})

	t.Run("no token", func(t *testing.T) {
		rec := doRequest(handler, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	mw, codec := newTestMiddleware()
	handler := mw.OptionalAuth(http.HandlerFunc(echoUser))

	t.Run("anonymous proceeds", func(t *testing.T) {
		rec := doRequest(handler, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("garbage token proceeds anonymously", func(t *testing.T) {
		rec := doRequest(handler, "garbage")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("valid token attaches user", func(t *testing.T) {
		token, err := codec.Issue(models.User{ID: "user-1"})
		require.NoError(t, err)

		rec := doRequest(handler, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})
}
