package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all farmer and order routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/farmers/{farmerID}", func(r chi.Router) {
		r.Get("/dashboard", h.HandleDashboard)
		r.Get("/orders", h.HandleListOrders)
		r.Post("/orders", h.HandleCreateOrder)
		r.Get("/earnings", h.HandleListEarnings)
		r.Post("/earnings", h.HandleAddEarnings)
		r.Put("/savings", h.HandleUpdateSavings)
		r.Get("/profile", h.HandleGetProfile)
		r.Put("/profile", h.HandleUpdateProfile)
		r.Get("/recommendations", h.HandleRecommendations)
		r.Post("/sample-data", h.HandleSeed)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.HandleListAllOrders)
		r.Put("/{id}/status", h.HandleUpdateOrderStatus)
	})
}
