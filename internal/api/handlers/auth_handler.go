package handlers

import (
	"net/http"

	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/auth"
	"github.com/reseau-alumni/alumni-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles login and session-related requests.
type AuthHandler struct {
	service services.UserServiceProvider
	codec   *auth.TokenCodec
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, codec *auth.TokenCodec) *AuthHandler {
	return &AuthHandler{service: service, codec: codec}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a username/password pair and returns a signed
// credential together with the user record.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if payload.Username == "" || payload.Password == "" {
		writeError(w, r, apperror.NewValidation("Username and password are required", nil))
		return
	}

	user, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		writeError(w, r, err)
		return
	}

	token, err := h.codec.Issue(user)
	if err != nil {
		writeError(w, r, apperror.NewInternal("Failed to issue credential", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user, as resolved by the middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperror.NewUnauthenticated("Not authenticated", nil))
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ChangePassword changes the authenticated user's own password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperror.NewUnauthenticated("Not authenticated", nil))
		return
	}

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.UpdatePassword(user.ID, payload.CurrentPassword, payload.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
