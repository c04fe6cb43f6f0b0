package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/models"
)

// UserResolver loads the current user record for a token subject. The
// middleware re-fetches the user on every authenticated request instead of
// trusting token claims, so role changes take effect before token expiry.
type UserResolver interface {
	GetUserByID(id string) (models.User, error)
}

type contextKey string

const userContextKey = contextKey("authUser")

// Middleware bundles the token codec with the user resolver.
type Middleware struct {
	codec    *TokenCodec
	resolver UserResolver
}

// NewMiddleware creates the middleware set used by the router.
func NewMiddleware(codec *TokenCodec, resolver UserResolver) *Middleware {
	return &Middleware{codec: codec, resolver: resolver}
}

// UserFromContext retrieves the authenticated user attached by the
// middleware. The second return is false for anonymous requests.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// resolve validates the bearer token and loads the current user record.
func (m *Middleware) resolve(r *http.Request) (*models.User, *apperror.AppError) {
	tokenStr := bearerToken(r)
	if tokenStr == "" {
		return nil, apperror.NewUnauthenticated("Missing or malformed Authorization header", nil)
	}

	claims, err := m.codec.Verify(tokenStr)
	if err != nil {
		if err == ErrExpiredCredential {
			return nil, apperror.NewUnauthenticated("Credential expired", err)
		}
		return nil, apperror.NewUnauthenticated("Invalid credential", err)
	}

	user, err := m.resolver.GetUserByID(claims.UserID)
	if err != nil {
		return nil, apperror.NewUnauthenticated("Unknown user", err)
	}
	return &user, nil
}

// RequireAuth rejects the request with 401 unless a valid credential is
// presented; on success the resolved user is attached to the context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, appErr := m.resolve(r)
		if appErr != nil {
			writeAuthError(w, appErr)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin is RequireAuth plus a 403 unless the resolved user is an
// admin. The admin flag comes from the store, not from the token.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, appErr := m.resolve(r)
		if appErr != nil {
			writeAuthError(w, appErr)
			return
		}
		if !user.IsAdmin {
			writeAuthError(w, apperror.NewForbidden("Admin privileges required", nil))
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth never fails: with a valid credential the user is attached,
// otherwise the request proceeds anonymously and handlers branch on
// UserFromContext.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, appErr := m.resolve(r); appErr == nil {
			ctx := context.WithValue(r.Context(), userContextKey, user)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	json.NewEncoder(w).Encode(appErr.ToResponse())
}
