package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reseau-alumni/alumni-be/internal/services"
)

// UserHandler handles admin account management. Self-registration is
// disabled: only admins create accounts.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// GetAll lists every account.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUserPayload defines the structure for admin account creation.
type CreateUserPayload struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	IsAdmin   bool    `json:"isAdmin"`
	ProfileID *string `json:"profileId,omitempty"`
}

// Create registers a new account.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.CreateUser(payload.Username, payload.Password, payload.IsAdmin, payload.ProfileID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Delete removes an account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
