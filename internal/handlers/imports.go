package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/example/dvd-catalog/internal/library"
	"github.com/example/dvd-catalog/internal/platform/api"
)

type importReq struct {
	Path  string             `json:"path"`
	Items []library.AddInput `json:"items"`
}

// ImportItems bulk-adds entries, either inline or from a JSON file under the
// configured import directory. Each entry goes through the same
// reconciliation as a single add; a failing entry aborts the rest, entries
// already added stay persisted.
func (h *Handler) ImportItems(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	var req importReq
	if !decodeJSON(w, r, rid, &req) {
		return
	}

	entries := req.Items
	if len(entries) == 0 {
		if req.Path == "" {
			api.BadRequest(w, "VALIDATION", "provide path or items", rid, nil)
			return
		}
		var err error
		entries, err = h.readImportFile(req.Path)
		if err != nil {
			h.writeError(w, rid, err)
			return
		}
	}

	for i, in := range entries {
		if err := lib.Add(r.Context(), in); err != nil {
			h.Log.Warn("import aborted", zap.String("library", lib.ID), zap.Int("entry", i), zap.Error(err))
			h.writeError(w, rid, err)
			return
		}
	}
	h.Log.Info("imported items", zap.String("library", lib.ID), zap.Int("count", len(entries)))
	api.WriteJSON(w, http.StatusOK, map[string]any{"imported": len(entries)})
}

// readImportFile loads a JSON file that is either a bare array of items or a
// document with an "items" key.
func (h *Handler) readImportFile(path string) ([]library.AddInput, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(h.ImportDir, path)
	}
	data, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return nil, library.Validationf("file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}

	var entries []library.AddInput
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}
	var doc struct {
		Items []library.AddInput `json:"items"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, library.Validationf("invalid import file: %s", path)
	}
	return doc.Items, nil
}
