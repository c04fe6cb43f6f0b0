package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/reseau-alumni/alumni-be/internal/auth"
	"github.com/reseau-alumni/alumni-be/internal/services"
)

// AnnouncementHandler handles HTTP requests for the announcements feed.
type AnnouncementHandler struct {
	service services.AnnouncementServiceProvider
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(service services.AnnouncementServiceProvider) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// GetRecent returns the latest feed entries, newest first. ?limit= caps the
// page, defaulting to 20.
func (h *AnnouncementHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	announcements, err := h.service.GetRecent(limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

// AnnouncementPayload defines the structure for feed entry creation.
type AnnouncementPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Level string `json:"level"`
}

// Create publishes a feed entry. Admin-only (enforced by the router).
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload AnnouncementPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	var createdBy string
	if user, ok := auth.UserFromContext(r.Context()); ok {
		createdBy = user.ID
	}

	announcement, err := h.service.Create(payload.Title, payload.Body, payload.Level, createdBy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, announcement)
}

// Delete removes a feed entry. Admin-only (enforced by the router).
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
