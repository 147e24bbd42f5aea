// Package handlers provides HTTP handlers for farmer orders, earnings and dashboards.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/farmers"
)

// Handler handles farmer HTTP requests
type Handler struct {
	service *farmers.Service
	log     zerolog.Logger
}

// NewHandler creates a new farmers handler
func NewHandler(service *farmers.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "farmers").Logger(),
	}
}

// StatusRequest is the body of PUT /api/orders/{id}/status
type StatusRequest struct {
	Status string `json:"status"`
}

// SavingsRequest is the body of PUT /api/farmers/{farmerID}/savings
type SavingsRequest struct {
	Amount *float64 `json:"amount"`
}

// ProfileRequest is the body of PUT /api/farmers/{farmerID}/profile
type ProfileRequest struct {
	ExportItem string `json:"export_item"`
}

// HandleDashboard handles GET /api/farmers/{farmerID}/dashboard
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	dashboard, err := h.service.Dashboard(r.Context(), farmerID)
	if err != nil {
		h.fail(w, err, "Failed to load dashboard", farmerID)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(dashboard))
}

// HandleListOrders handles GET /api/farmers/{farmerID}/orders
func (h *Handler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	orders, err := h.service.Orders(r.Context(), farmerID)
	if err != nil {
		h.fail(w, err, "Failed to list orders", farmerID)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	}))
}

// HandleCreateOrder handles POST /api/farmers/{farmerID}/orders
func (h *Handler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var order farmers.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	order.FarmerID = chi.URLParam(r, "farmerID")

	created, err := h.service.CreateOrder(r.Context(), order)
	if err != nil {
		h.fail(w, err, "Failed to create order", order.FarmerID)
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope(created))
}

// HandleListAllOrders handles GET /api/orders
func (h *Handler) HandleListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.AllOrders(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to list orders", "")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	}))
}

// HandleUpdateOrderStatus handles PUT /api/orders/{id}/status
func (h *Handler) HandleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), id, farmers.OrderStatus(req.Status))
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, err, "Failed to update order status", "")
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(order))
}

// HandleListEarnings handles GET /api/farmers/{farmerID}/earnings
func (h *Handler) HandleListEarnings(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	earnings, err := h.service.Earnings(r.Context(), farmerID)
	if err != nil {
		h.fail(w, err, "Failed to list earnings", farmerID)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"earnings": earnings,
		"totals":   farmers.Totals(earnings),
	}))
}

// HandleAddEarnings handles POST /api/farmers/{farmerID}/earnings
func (h *Handler) HandleAddEarnings(w http.ResponseWriter, r *http.Request) {
	var earnings farmers.MonthlyEarnings
	if err := json.NewDecoder(r.Body).Decode(&earnings); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	earnings.FarmerID = chi.URLParam(r, "farmerID")

	stored, err := h.service.AddEarnings(r.Context(), earnings)
	if err != nil {
		h.fail(w, err, "Failed to add earnings", earnings.FarmerID)
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope(stored))
}

// HandleUpdateSavings handles PUT /api/farmers/{farmerID}/savings
func (h *Handler) HandleUpdateSavings(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	var req SavingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == nil {
		http.Error(w, "amount is required", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateSavings(r.Context(), farmerID, *req.Amount); err != nil {
		h.fail(w, err, "Failed to update savings", farmerID)
		return
	}

	h.respondProfile(w, r, farmerID)
}

// HandleGetProfile handles GET /api/farmers/{farmerID}/profile
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	h.respondProfile(w, r, chi.URLParam(r, "farmerID"))
}

// HandleUpdateProfile handles PUT /api/farmers/{farmerID}/profile
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SetExportItem(r.Context(), farmerID, req.ExportItem); err != nil {
		h.fail(w, err, "Failed to update profile", farmerID)
		return
	}

	h.respondProfile(w, r, farmerID)
}

// HandleRecommendations handles GET /api/farmers/{farmerID}/recommendations
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	recs, err := h.service.Recommendations(r.Context(), farmerID)
	if err != nil {
		h.fail(w, err, "Failed to list recommendations", farmerID)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	}))
}

// HandleSeed handles POST /api/farmers/{farmerID}/sample-data.
// The body, when present, carries the farmer's contact details.
func (h *Handler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	var contact farmers.Contact
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.SeedSampleData(r.Context(), farmerID, contact)
	if err != nil {
		h.fail(w, err, "Failed to seed sample data", farmerID)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(result))
}

func (h *Handler) respondProfile(w http.ResponseWriter, r *http.Request, farmerID string) {
	profile, err := h.service.Profile(r.Context(), farmerID)
	if err != nil {
		h.fail(w, err, "Failed to load profile", farmerID)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(profile))
}

// fail maps invalid input to 400 and logs everything else as a 500
func (h *Handler) fail(w http.ResponseWriter, err error, msg, farmerID string) {
	if errors.Is(err, domain.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.log.Error().Err(err).Str("farmer_id", farmerID).Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
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
