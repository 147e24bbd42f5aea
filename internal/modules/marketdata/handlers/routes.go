package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all market data routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/market", func(r chi.Router) {
		// Crop insights
		r.Get("/insights", h.HandleListInsights)
		r.Post("/insights", h.HandleAddInsight)
		r.Get("/insights/{crop}", h.HandleGetInsightsByCrop)

		// Destination countries
		r.Get("/countries", h.HandleListCountries)
		r.Post("/countries", h.HandleAddCountry)
		r.Get("/countries/{country}", h.HandleGetCountry)
		r.Put("/stock-ratings/{id}", h.HandleUpdateStockRating)

		// Price quotes, buyer leads and demand profiles
		r.Get("/crop-prices", h.HandleListCropPrices)
		r.Post("/crop-prices", h.HandleAddCropPrice)
		r.Get("/crop-prices/{crop}", h.HandleGetCropPrice)
		r.Get("/recommendations", h.HandleListRecommendations)
		r.Post("/recommendations", h.HandleAddRecommendation)
		r.Get("/product-demand", h.HandleListProductDemand)
		r.Post("/product-demand", h.HandleAddProductDemand)

		r.Post("/seed", h.HandleSeed)
	})
}
