package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/auth"
	"github.com/reseau-alumni/alumni-be/internal/services"
)

// ResourceHandler handles HTTP requests for shared resources.
type ResourceHandler struct {
	service services.ResourceServiceProvider
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(service services.ResourceServiceProvider) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// GetAll lists resources, optionally filtered by ?category=.
func (h *ResourceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	resources, err := h.service.GetAll(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

// Get retrieves a single resource.
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	resource, err := h.service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

// Create inserts a resource owned by the authenticated user.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperror.NewUnauthenticated("Not authenticated", nil))
		return
	}

	var params services.ResourceParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, r, err)
		return
	}

	resource, err := h.service.Create(params, user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resource)
}

// Update replaces a resource. Owner-or-admin; ownerless are admin-only.
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	resource, err := h.service.GetByID(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	if !auth.CanModify(user, resource.CreatedBy) {
		writeError(w, r, apperror.NewForbidden("Not allowed to modify this resource", nil))
		return
	}

	var params services.ResourceParams
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

// Delete removes a resource. Same policy as Update.
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	resource, err := h.service.GetByID(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	if !auth.CanModify(user, resource.CreatedBy) {
		writeError(w, r, apperror.NewForbidden("Not allowed to delete this resource", nil))
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
