package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/marketdata"
)

// CropPriceRequest is the body of POST /api/market/crop-prices
type CropPriceRequest struct {
	Crop          string  `json:"crop"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousPrice float64 `json:"previous_price"`
	PriceUnit     string  `json:"price_unit"`
	Trend         string  `json:"trend"`
	Market        string  `json:"market"`
	IsActive      *bool   `json:"is_active"` // defaults to true
}

// RecommendationRequest is the body of POST /api/market/recommendations
type RecommendationRequest struct {
	Product           string `json:"product"`
	Buyer             string `json:"buyer"`
	Match             string `json:"match"`
	Location          string `json:"location"`
	ContactEmail      string `json:"contact_email"`
	Requirements      string `json:"requirements"`
	PriceRange        string `json:"price_range"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

// ProductDemandRequest is the body of POST /api/market/product-demand
type ProductDemandRequest struct {
	Product             string               `json:"product"`
	GlobalDemand        string               `json:"global_demand"`
	Countries           []string             `json:"countries"`
	SeasonalTrend       string               `json:"seasonal_trend"`
	PriceRange          marketdata.PriceBand `json:"price_range"`
	QualityRequirements []string             `json:"quality_requirements"`
}

// HandleListCropPrices handles GET /api/market/crop-prices
func (h *Handler) HandleListCropPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.repo.ListCropPrices(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list crop prices")
		http.Error(w, "Failed to list crop prices", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"prices": prices,
		"count":  len(prices),
	}))
}

// HandleGetCropPrice handles GET /api/market/crop-prices/{crop}
func (h *Handler) HandleGetCropPrice(w http.ResponseWriter, r *http.Request) {
	crop := chi.URLParam(r, "crop")

	price, err := h.repo.FindActiveCropPrice(r.Context(), crop)
	if err != nil {
		h.log.Error().Err(err).Str("crop", crop).Msg("Failed to find crop price")
		http.Error(w, "Failed to find crop price", http.StatusInternalServerError)
		return
	}
	if price == nil {
		http.Error(w, "No active price for "+crop, http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(price))
}

// HandleAddCropPrice handles POST /api/market/crop-prices
func (h *Handler) HandleAddCropPrice(w http.ResponseWriter, r *http.Request) {
	var req CropPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CurrentPrice < 0 || req.PreviousPrice < 0 {
		http.Error(w, "prices must not be negative", http.StatusBadRequest)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	id, err := h.repo.AddCropPrice(r.Context(), marketdata.CropPrice{
		Crop:          req.Crop,
		CurrentPrice:  req.CurrentPrice,
		PreviousPrice: req.PreviousPrice,
		PriceUnit:     req.PriceUnit,
		Trend:         req.Trend,
		Market:        req.Market,
		IsActive:      active,
	})
	h.created(w, id, err, "crop price")
}

// HandleListRecommendations handles GET /api/market/recommendations?product=
func (h *Handler) HandleListRecommendations(w http.ResponseWriter, r *http.Request) {
	var (
		recs []marketdata.ExportRecommendation
		err  error
	)
	product := strings.TrimSpace(r.URL.Query().Get("product"))
	if product != "" {
		recs, err = h.repo.ListRecommendationsByProduct(r.Context(), product)
	} else {
		recs, err = h.repo.ListRecommendations(r.Context())
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list recommendations")
		http.Error(w, "Failed to list recommendations", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	}))
}

// HandleAddRecommendation handles POST /api/market/recommendations
func (h *Handler) HandleAddRecommendation(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.repo.AddRecommendation(r.Context(), marketdata.ExportRecommendation{
		Product:           req.Product,
		Buyer:             req.Buyer,
		Match:             req.Match,
		Location:          req.Location,
		ContactEmail:      req.ContactEmail,
		Requirements:      req.Requirements,
		PriceRange:        req.PriceRange,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	h.created(w, id, err, "recommendation")
}

// HandleListProductDemand handles GET /api/market/product-demand?country=
func (h *Handler) HandleListProductDemand(w http.ResponseWriter, r *http.Request) {
	var (
		demand []marketdata.ProductDemand
		err    error
	)
	if country := strings.TrimSpace(r.URL.Query().Get("country")); country != "" {
		demand, err = h.repo.ListProductDemandByCountry(r.Context(), country)
	} else {
		demand, err = h.repo.ListProductDemand(r.Context())
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list product demand")
		http.Error(w, "Failed to list product demand", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"demand": demand,
		"count":  len(demand),
	}))
}

// HandleAddProductDemand handles POST /api/market/product-demand
func (h *Handler) HandleAddProductDemand(w http.ResponseWriter, r *http.Request) {
	var req ProductDemandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.repo.AddProductDemand(r.Context(), marketdata.ProductDemand{
		Product:             req.Product,
		GlobalDemand:        domain.ParseLevel(req.GlobalDemand),
		Countries:           req.Countries,
		SeasonalTrend:       req.SeasonalTrend,
		PriceRange:          req.PriceRange,
		QualityRequirements: req.QualityRequirements,
	})
	h.created(w, id, err, "product demand")
}

// created writes the 201 response of an insert, or the matching error
func (h *Handler) created(w http.ResponseWriter, id string, err error, what string) {
	if errors.Is(err, domain.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to add " + what)
		http.Error(w, "Failed to add "+what, http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope(map[string]interface{}{"id": id}))
}
