package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/reseau-alumni/alumni-be/internal/storage"
	"github.com/rs/zerolog/log"
)

// UploadHandler accepts multipart uploads and hands the bytes to the
// configured object store.
type UploadHandler struct {
	store   storage.Store
	maxSize int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store storage.Store, maxSize int64) *UploadHandler {
	return &UploadHandler{store: store, maxSize: maxSize}
}

// Upload stores the "file" part of a multipart request and returns its URL
// and key.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, apperror.NewValidation("Missing or oversized file field", err))
		return
	}
	defer file.Close()

	// Base() guards against path segments smuggled in the client filename.
	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." {
		writeError(w, r, apperror.NewValidation("No filename provided", nil))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.NewKey(filename)
	url, err := h.store.Put(r.Context(), key, contentType, file)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to store upload")
		writeError(w, r, apperror.NewInternal("Failed to store file", err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"url": url,
		"key": key,
	})
}

// Delete removes a stored object by key. Admin-only (enforced by the
// router).
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		writeError(w, r, apperror.NewValidation("Object key is required", nil))
		return
	}

	if err := h.store.Delete(r.Context(), key); err != nil {
		if errors.Is(err, storage.ErrKeyOutsideRoot) {
			writeError(w, r, apperror.NewValidation("Invalid object key", err))
			return
		}
		log.Error().Err(err).Str("key", key).Msg("Failed to delete object")
		writeError(w, r, apperror.NewInternal("Failed to delete file", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
