package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/auth"
	"github.com/reseau-alumni/alumni-be/internal/services"
)

// BookmarkHandler exposes the bookmark ledger over HTTP.
type BookmarkHandler struct {
	service services.BookmarkServiceProvider
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(service services.BookmarkServiceProvider) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// BookmarkPayload defines the structure for bookmark creation.
type BookmarkPayload struct {
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
}

// Create adds a bookmark for the authenticated user. Duplicates return 409.
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperror.NewUnauthenticated("Not authenticated", nil))
		return
	}

	var payload BookmarkPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if payload.ItemID == "" || payload.ItemType == "" {
		writeError(w, r, apperror.NewValidation("itemId and itemType are required", nil))
		return
	}

	if err := h.service.Add(user.ID, payload.ItemID, payload.ItemType); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"isBookmarked": true})
}

// Delete removes a bookmark for the authenticated user.
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperror.NewUnauthenticated("Not authenticated", nil))
		return
	}

	itemID := chi.URLParam(r, "itemId")
	itemType := r.URL.Query().Get("itemType")
	if itemType == "" {
		writeError(w, r, apperror.NewValidation("itemType query parameter is required", nil))
		return
	}

	if err := h.service.Remove(user.ID, itemID, itemType); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isBookmarked": false})
}

// ListForUser returns a user's ledger, optionally filtered by ?itemType=.
// The ledger is private: only the user themselves or an admin may read it.
func (h *BookmarkHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	viewer, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperror.NewUnauthenticated("Not authenticated", nil))
		return
	}

	userID := chi.URLParam(r, "userId")
	if viewer.ID != userID && !viewer.IsAdmin {
		writeError(w, r, apperror.NewForbidden("Not allowed to read this user's bookmarks", nil))
		return
	}

	bookmarks, err := h.service.ListForUser(userID, r.URL.Query().Get("itemType"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

// Count returns the denormalized bookmark count of an item. Public.
func (h *BookmarkHandler) Count(w http.ResponseWriter, r *http.Request) {
	itemType := r.URL.Query().Get("itemType")
	if itemType == "" {
		writeError(w, r, apperror.NewValidation("itemType query parameter is required", nil))
		return
	}

	count, err := h.service.CountForItem(chi.URLParam(r, "itemId"), itemType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Check reports whether the authenticated user bookmarked an item.
func (h *BookmarkHandler) Check(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperror.NewUnauthenticated("Not authenticated", nil))
		return
	}

	itemType := r.URL.Query().Get("itemType")
	if itemType == "" {
		writeError(w, r, apperror.NewValidation("itemType query parameter is required", nil))
		return
	}

	bookmarked, err := h.service.IsBookmarked(user.ID, chi.URLParam(r, "itemId"), itemType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isBookmarked": bookmarked})
}
