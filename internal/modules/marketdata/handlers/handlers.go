// Package handlers provides HTTP handlers for market data management.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/marketdata"
)

// Handler handles market data HTTP requests
type Handler struct {
	repo *marketdata.Repository
	log  zerolog.Logger
}

// NewHandler creates a new market data handler
func NewHandler(repo *marketdata.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "marketdata").Logger(),
	}
}

// InsightRequest is the body of POST /api/market/insights
type InsightRequest struct {
	Crop        string   `json:"crop"`
	Demand      string   `json:"demand"`
	Price       float64  `json:"price"`
	PriceUnit   string   `json:"price_unit"`
	Trend       string   `json:"trend"`
	Description string   `json:"description"`
	TopMarkets  []string `json:"top_markets"`
	Seasonality string   `json:"seasonality"`
}

// CountryImportRequest is the body of POST /api/market/countries
type CountryImportRequest struct {
	Country          string                `json:"country"`
	Imports          []string              `json:"imports"`
	StockRating      string                `json:"stock_rating"`
	TotalImportValue float64               `json:"total_import_value"`
	GrowthRate       float64               `json:"growth_rate"`
	TopProducts      []domain.ProductShare `json:"top_products"`
}

// StockRatingRequest is the body of PUT /api/market/stock-ratings/{id}
type StockRatingRequest struct {
	StockRating string `json:"stock_rating"`
}

// HandleListInsights handles GET /api/market/insights
func (h *Handler) HandleListInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.repo.ListMarketInsights(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list market insights")
		http.Error(w, "Failed to list market insights", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"insights": insights,
		"count":    len(insights),
	}))
}

// HandleGetInsightsByCrop handles GET /api/market/insights/{crop}
func (h *Handler) HandleGetInsightsByCrop(w http.ResponseWriter, r *http.Request) {
	crop := chi.URLParam(r, "crop")

	insights, err := h.repo.ListMarketInsightsByCrop(r.Context(), crop)
	if err != nil {
		h.log.Error().Err(err).Str("crop", crop).Msg("Failed to list market insights")
		http.Error(w, "Failed to list market insights", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"crop":     crop,
		"insights": insights,
		"count":    len(insights),
	}))
}

// HandleAddInsight handles POST /api/market/insights
func (h *Handler) HandleAddInsight(w http.ResponseWriter, r *http.Request) {
	var req InsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Crop) == "" {
		http.Error(w, "crop is required", http.StatusBadRequest)
		return
	}
	if req.Price < 0 {
		http.Error(w, "price must not be negative", http.StatusBadRequest)
		return
	}

	id, err := h.repo.AddMarketInsight(r.Context(), domain.MarketSignal{
		Product:     req.Crop,
		DemandLevel: domain.ParseLevel(req.Demand),
		BasePrice:   req.Price,
		PriceUnit:   req.PriceUnit,
		Trend:       req.Trend,
		Description: req.Description,
		TopMarkets:  req.TopMarkets,
		Seasonality: req.Seasonality,
	})
	if err != nil {
		h.log.Error().Err(err).Str("crop", req.Crop).Msg("Failed to add market insight")
		http.Error(w, "Failed to add market insight", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope(map[string]interface{}{
		"id":   id,
		"crop": req.Crop,
	}))
}

// HandleListCountries handles GET /api/market/countries
func (h *Handler) HandleListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.repo.ListCountryImports(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list country imports")
		http.Error(w, "Failed to list country imports", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"countries": countries,
		"count":     len(countries),
	}))
}

// HandleGetCountry handles GET /api/market/countries/{country}
func (h *Handler) HandleGetCountry(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")

	profiles, err := h.repo.ListCountryImportsByCountry(r.Context(), country)
	if err != nil {
		h.log.Error().Err(err).Str("country", country).Msg("Failed to list country imports")
		http.Error(w, "Failed to list country imports", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"country":  country,
		"profiles": profiles,
		"count":    len(profiles),
	}))
}

// HandleAddCountry handles POST /api/market/countries
func (h *Handler) HandleAddCountry(w http.ResponseWriter, r *http.Request) {
	var req CountryImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Country) == "" {
		http.Error(w, "country is required", http.StatusBadRequest)
		return
	}

	id, err := h.repo.AddCountryImport(r.Context(), domain.CountrySignal{
		Country:          req.Country,
		Imports:          req.Imports,
		StockRating:      domain.ParseLevel(req.StockRating),
		TotalImportValue: req.TotalImportValue,
		GrowthRate:       req.GrowthRate,
		TopProducts:      req.TopProducts,
	})
	if err != nil {
		h.log.Error().Err(err).Str("country", req.Country).Msg("Failed to add country import")
		http.Error(w, "Failed to add country import", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope(map[string]interface{}{
		"id":      id,
		"country": req.Country,
	}))
}

// HandleUpdateStockRating handles PUT /api/market/stock-ratings/{id}
func (h *Handler) HandleUpdateStockRating(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req StockRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rating := domain.ParseLevel(req.StockRating)
	if !rating.Valid() {
		http.Error(w, "stock_rating must be one of Low, Medium, High, Very High", http.StatusBadRequest)
		return
	}

	if err := h.repo.UpdateStockRating(r.Context(), id, rating); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Country import not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update stock rating")
		http.Error(w, "Failed to update stock rating", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"id":           id,
		"stock_rating": rating,
	}))
}

// HandleSeed handles POST /api/market/seed
func (h *Handler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.SeedSampleData(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to seed sample data")
		http.Error(w, "Failed to seed sample data", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(result))
}

func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
