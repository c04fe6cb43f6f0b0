package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/auth"
	"github.com/reseau-alumni/alumni-be/internal/services"
)

// LinkHandler handles HTTP requests for shared links.
type LinkHandler struct {
	service services.LinkServiceProvider
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(service services.LinkServiceProvider) *LinkHandler {
	return &LinkHandler{service: service}
}

// GetAll lists every link.
func (h *LinkHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.GetAll()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// Get retrieves a single link.
func (h *LinkHandler) Get(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// Create inserts a link owned by the authenticated user.
func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperror.NewUnauthenticated("Not authenticated", nil))
		return
	}

	var params services.LinkParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, r, err)
		return
	}

	link, err := h.service.Create(params, user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// Update replaces a link. Owner-or-admin; ownerless links are admin-only.
func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	link, err := h.service.GetByID(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	if !auth.CanModify(user, link.CreatedBy) {
		writeError(w, r, apperror.NewForbidden("Not allowed to modify this link", nil))
		return
	}

	var params services.LinkParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.service.Update(id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a link. Same policy as Update.
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	link, err := h.service.GetByID(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	if !auth.CanModify(user, link.CreatedBy) {
		writeError(w, r, apperror.NewForbidden("Not allowed to delete this link", nil))
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
