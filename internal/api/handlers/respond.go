package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/reseau-alumni/alumni-be/internal/apperror"
	"github.com/rs/zerolog/log"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError funnels every failure through the apperror taxonomy. Known
// categories map to their status and client-safe message; anything else is
// logged and surfaced as a generic 500 without leaking internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := apperror.From(err); ok {
		if appErr.Type == apperror.Internal || appErr.Type == apperror.Unknown {
			log.Error().Err(err).Str("path", r.URL.Path).Msg("Internal error")
		}
		writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("Unexpected error")
	writeJSON(w, http.StatusInternalServerError, apperror.ErrorResponse{Error: "Internal server error"})
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidation("Invalid request body", err)
	}
	return nil
}
