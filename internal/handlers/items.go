package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/dvd-catalog/internal/library"
	"github.com/example/dvd-catalog/internal/platform/api"
)

// ListItems returns the count and current snapshot of the collection. This
// is the surface display observers re-read after a change notification.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	items := lib.Items()
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"library": lib.ID,
		"count":   len(items),
		"items":   items,
	})
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	var in library.AddInput
	if !decodeJSON(w, r, rid, &in) {
		return
	}
	if err := lib.Add(r.Context(), in); err != nil {
		h.writeError(w, rid, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateReq struct {
	Selector library.Selector `json:"selector"`
	Updates  library.Patch    `json:"updates"`
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	var req updateReq
	if !decodeJSON(w, r, rid, &req) {
		return
	}
	if err := lib.Update(r.Context(), req.Selector, req.Updates); err != nil {
		h.writeError(w, rid, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	var sel library.Selector
	if !decodeJSON(w, r, rid, &sel) {
		return
	}
	if err := lib.Remove(r.Context(), sel); err != nil {
		h.writeError(w, rid, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveIndex(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		api.BadRequest(w, "VALIDATION", "index must be an integer", rid, nil)
		return
	}
	if err := lib.RemoveIndex(r.Context(), index); err != nil {
		h.writeError(w, rid, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RefreshMetadata accepts an optional selector body; an empty body refreshes
// every item.
func (h *Handler) RefreshMetadata(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		api.BadRequest(w, "INVALID_JSON", "Invalid JSON", rid, nil)
		return
	}
	var sel *library.Selector
	if len(strings.TrimSpace(string(body))) > 0 {
		var s library.Selector
		if err := json.Unmarshal(body, &s); err != nil {
			api.BadRequest(w, "INVALID_JSON", "Invalid JSON", rid, nil)
			return
		}
		sel = &s
	}

	if err := lib.RefreshMetadata(r.Context(), sel); err != nil {
		h.writeError(w, rid, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PurgeItems(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	removed, err := lib.PurgeEmpty(r.Context())
	if err != nil {
		h.writeError(w, rid, err)
		return
	}
	h.Log.Info("purged empty items", zap.String("library", lib.ID), zap.Int("removed", removed))
	api.WriteJSON(w, http.StatusOK, map[string]any{"removed": removed})
}
