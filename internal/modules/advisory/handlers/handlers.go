// Package handlers provides HTTP handlers for the pricing and risk advisory engine.
package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/advisory"
)

// Handler handles advisory HTTP requests
type Handler struct {
	engine *advisory.Engine
	log    zerolog.Logger
}

// NewHandler creates a new advisory handler
func NewHandler(engine *advisory.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log.With().Str("handler", "advisory").Logger(),
	}
}

// ConvertRequest represents a request to convert currency
type ConvertRequest struct {
	Amount         float64 `json:"amount"`
	SourceCurrency string  `json:"source_currency"`
	TargetCurrency string  `json:"target_currency"`
}

// ShippingRequest represents a request for a shipping estimate
type ShippingRequest struct {
	Product        string  `json:"product"`
	Quantity       float64 `json:"quantity"`
	FromCountry    string  `json:"from_country"`
	ToCountry      string  `json:"to_country"`
	ShippingMethod string  `json:"shipping_method"`
}

// HandleGetPricing handles GET /api/advisory/pricing?product=&country=
func (h *Handler) HandleGetPricing(w http.ResponseWriter, r *http.Request) {
	product := strings.TrimSpace(r.URL.Query().Get("product"))
	country := strings.TrimSpace(r.URL.Query().Get("country"))

	if product == "" || country == "" {
		http.Error(w, "product and country are required", http.StatusBadRequest)
		return
	}

	suggestion, err := h.engine.GetDynamicPricing(r.Context(), product, country)
	if err != nil {
		h.log.Error().Err(err).Str("product", product).Str("country", country).Msg("Failed to compute pricing")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(suggestion))
}

// HandleGetAlerts handles GET /api/advisory/alerts?country=&product=
func (h *Handler) HandleGetAlerts(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	product := strings.TrimSpace(r.URL.Query().Get("product"))

	if country == "" {
		http.Error(w, "country is required", http.StatusBadRequest)
		return
	}

	alerts, err := h.engine.GetExportRiskAlerts(r.Context(), country, product)
	if err != nil {
		h.log.Error().Err(err).Str("country", country).Msg("Failed to compute risk alerts")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"country": country,
		"product": product,
		"alerts":  alerts,
		"count":   len(alerts),
	}))
}

// HandleConvert handles POST /api/advisory/convert
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	source := domain.Currency(strings.ToUpper(strings.TrimSpace(req.SourceCurrency)))
	target := domain.Currency(strings.ToUpper(strings.TrimSpace(req.TargetCurrency)))

	if source == "" || target == "" {
		http.Error(w, "source_currency and target_currency are required", http.StatusBadRequest)
		return
	}
	if req.Amount < 0 {
		http.Error(w, "amount must not be negative", http.StatusBadRequest)
		return
	}

	conversion := h.engine.ConvertCurrency(req.Amount, source, target)
	if !finite(conversion.ConvertedAmount) {
		http.Error(w, "amount is too large to convert", http.StatusBadRequest)
		return
	}
	_, supported := advisory.Rate(source, target)

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"conversion": conversion,
		"supported":  supported,
	}))
}

// HandleShipping handles POST /api/advisory/shipping
func (h *Handler) HandleShipping(w http.ResponseWriter, r *http.Request) {
	var req ShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.ToCountry) == "" {
		http.Error(w, "to_country is required", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		http.Error(w, "quantity must be greater than 0", http.StatusBadRequest)
		return
	}
	if req.FromCountry == "" {
		req.FromCountry = "India"
	}

	estimate := h.engine.CalculateShippingCost(req.Product, req.Quantity, req.FromCountry, req.ToCountry, req.ShippingMethod)
	if !finite(estimate.TotalCost) {
		http.Error(w, "quantity is too large to estimate", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(estimate))
}

// HandleGetCurrencies handles GET /api/advisory/currencies
func (h *Handler) HandleGetCurrencies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"currencies":       []domain.Currency{domain.CurrencyINR, domain.CurrencyUSD, domain.CurrencyEUR, domain.CurrencyGBP},
		"rates":            advisory.ExchangeRates(),
		"shipping_methods": advisory.ShippingMethods(),
	}))
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
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
