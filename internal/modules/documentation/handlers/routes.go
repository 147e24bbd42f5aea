package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all documentation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleGenerate)
		r.Get("/{id}", h.HandleGet)
	})
}
