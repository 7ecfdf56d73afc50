package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/example/dvd-catalog/internal/library"
	"github.com/example/dvd-catalog/internal/platform/api"
)

type setBoxReq struct {
	Selector library.Selector `json:"selector"`
	Box      any              `json:"box"`
}

// SetBox is sugar for an update that only touches the box field.
func (h *Handler) SetBox(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	var req setBoxReq
	if !decodeJSON(w, r, rid, &req) {
		return
	}
	if req.Box == nil {
		api.BadRequest(w, "VALIDATION", "provide box", rid, nil)
		return
	}
	if err := lib.Update(r.Context(), req.Selector, library.Patch{"box": req.Box}); err != nil {
		h.writeError(w, rid, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveBoxReq struct {
	FromBox any `json:"from_box"`
	ToBox   any `json:"to_box"`
}

func (h *Handler) MoveBox(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	var req moveBoxReq
	if !decodeJSON(w, r, rid, &req) {
		return
	}
	moved, err := lib.MoveBox(r.Context(), req.FromBox, req.ToBox)
	if err != nil {
		h.writeError(w, rid, err)
		return
	}
	h.Log.Info("moved items between boxes", zap.String("library", lib.ID), zap.Int("moved", moved))
	api.WriteJSON(w, http.StatusOK, map[string]any{"moved": moved})
}

// ListBoxes returns per-box counts ascending by box number and, when an
// emitter is wired, broadcasts the same listing as an event.
func (h *Handler) ListBoxes(w http.ResponseWriter, r *http.Request) {
	rid := requestID(r)
	lib, ok := h.resolveLibrary(w, r, rid)
	if !ok {
		return
	}
	counts := lib.ListBoxes()

	if h.Events != nil {
		boxes := make([]int, len(counts))
		for i, c := range counts {
			boxes[i] = c.Box
		}
		if err := h.Events.Emit("library.boxes", map[string]any{
			"library": lib.ID,
			"boxes":   boxes,
			"counts":  counts,
		}); err != nil {
			h.Log.Warn("box listing event failed", zap.Error(err))
		}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"boxes": counts})
}
