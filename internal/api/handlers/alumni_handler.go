package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/auth"
	"github.com/reseau-alumni/alumni-be/internal/services"
)

// AlumniHandler handles HTTP requests for alumni profiles.
type AlumniHandler struct {
	service services.AlumniServiceProvider
}

// NewAlumniHandler creates a new AlumniHandler.
func NewAlumniHandler(service services.AlumniServiceProvider) *AlumniHandler {
	return &AlumniHandler{service: service}
}

// GetAll lists profiles. Anonymous viewers never see hidden profiles; the
// middleware attaches the viewer when a valid credential is present.
func (h *AlumniHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	viewer, _ := auth.UserFromContext(r.Context())

	promoYear, _ := strconv.Atoi(r.URL.Query().Get("promo"))
	profiles, err := h.service.GetAll(viewer, r.URL.Query().Get("q"), promoYear)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// Get retrieves one profile, with the same hidden-profile rule.
func (h *AlumniHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer, _ := auth.UserFromContext(r.Context())

	profile, err := h.service.GetByID(chi.URLParam(r, "id"), viewer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Create inserts a new profile. Admin-only (enforced by the router).
func (h *AlumniHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params services.AlumniParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.service.Create(params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// Update replaces a profile. Allowed for the owning user or an admin.
func (h *AlumniHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, _ := auth.UserFromContext(r.Context())
	if !auth.CanModifyProfile(user, id) {
		writeError(w, r, apperror.NewForbidden("Not allowed to modify this profile", nil))
		return
	}

	var params services.AlumniParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.service.Update(id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Patch applies a partial update. Same owner-or-admin rule as Update.
func (h *AlumniHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, _ := auth.UserFromContext(r.Context())
	if !auth.CanModifyProfile(user, id) {
		writeError(w, r, apperror.NewForbidden("Not allowed to modify this profile", nil))
		return
	}

	var fields map[string]interface{}
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.service.Patch(id, fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Delete removes a profile and, by cascade, its linked account. Admin-only
// (enforced by the router).
func (h *AlumniHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
