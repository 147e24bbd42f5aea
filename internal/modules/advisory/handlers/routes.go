package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all advisory routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/advisory", func(r chi.Router) {
		r.Get("/pricing", h.HandleGetPricing)
		r.Get("/alerts", h.HandleGetAlerts)
		r.Post("/convert", h.HandleConvert)
		r.Post("/shipping", h.HandleShipping)
		r.Get("/currencies", h.HandleGetCurrencies)
	})
}
