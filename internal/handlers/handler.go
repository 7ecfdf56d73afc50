// Package handlers maps the external command surface onto the catalog core,
// translating domain errors into API failures.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/dvd-catalog/internal/library"
)

// EventEmitter publishes payload-carrying events (the box listing
// broadcast). Nil disables emission.
type EventEmitter interface {
	Emit(subject string, payload any) error
}

type Handler struct {
	Log       *zap.Logger
	Registry  *library.Registry
	ImportDir string
	Events    EventEmitter
}

// Mount registers all routes under /v1. mutationMW wraps every mutating
// route; read routes stay open.
func (h *Handler) Mount(r chi.Router, mutationMW ...func(http.Handler) http.Handler) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/items", h.ListItems)
		r.Get("/boxes", h.ListBoxes)

		r.Group(func(r chi.Router) {
			for _, mw := range mutationMW {
				r.Use(mw)
			}
			r.Post("/items", h.AddItem)
			r.Post("/items/update", h.UpdateItem)
			r.Post("/items/remove", h.RemoveItem)
			r.Delete("/items/{index}", h.RemoveIndex)
			r.Post("/items/refresh", h.RefreshMetadata)
			r.Post("/items/import", h.ImportItems)
			r.Post("/items/purge", h.PurgeItems)
			r.Post("/items/box", h.SetBox)
			r.Post("/boxes/move", h.MoveBox)
		})
	})
}
