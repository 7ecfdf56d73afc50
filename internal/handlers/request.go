package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/dvd-catalog/internal/library"
	"github.com/example/dvd-catalog/internal/platform/api"
	"github.com/example/dvd-catalog/internal/platform/httpserver"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

// decodeJSON reads up to maxRequestBodyBytes from r.Body and decodes JSON into dst.
// On failure it writes a 400 response and returns false.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request, rid string, dst *T) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(dst); err != nil {
		api.BadRequest(w, "INVALID_JSON", "Invalid JSON", rid, nil)
		return false
	}
	return true
}

// resolveLibrary picks the catalog instance for the request via the optional
// ?library query parameter. On failure it writes the error and returns false.
func (h *Handler) resolveLibrary(w http.ResponseWriter, r *http.Request, rid string) (*library.Library, bool) {
	lib, err := h.Registry.Resolve(r.URL.Query().Get("library"))
	if err != nil {
		h.writeError(w, rid, err)
		return nil, false
	}
	return lib, true
}

// writeError translates domain errors into the API envelope. Validation and
// not-found surface their message; anything else is sanitized and logged.
func (h *Handler) writeError(w http.ResponseWriter, rid string, err error) {
	switch {
	case errors.Is(err, library.ErrNoLibrary):
		api.NotFound(w, "NO_LIBRARY", err.Error(), rid)
	case errors.Is(err, library.ErrNotFound):
		api.NotFound(w, "NOT_FOUND", err.Error(), rid)
	case library.IsValidation(err):
		api.BadRequest(w, "VALIDATION", err.Error(), rid, nil)
	default:
		h.Log.Error("unexpected error", zap.String("request_id", rid), zap.Error(err))
		api.Internal(w, rid)
	}
}

func requestID(r *http.Request) string {
	return httpserver.RequestIDFromContext(r.Context())
}
