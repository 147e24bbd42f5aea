// Package handlers provides HTTP handlers for export documentation.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/domain"
	documentation "github.com/aristath/exportadvisor/internal/modules/documentation"
)

// Handler handles export documentation HTTP requests
type Handler struct {
	service *documentation.Service
	log     zerolog.Logger
}

// NewHandler creates a new documentation handler
func NewHandler(service *documentation.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "documentation").Logger(),
	}
}

// HandleGenerate handles POST /api/documents
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req documentation.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	doc, err := h.service.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Str("farmer_id", req.FarmerID).Msg("Failed to generate documentation")
		http.Error(w, "Failed to generate documentation", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope(doc))
}

// HandleGet handles GET /api/documents/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Documentation not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get documentation")
		http.Error(w, "Failed to get documentation", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(doc))
}

// HandleList handles GET /api/documents?farmer_id=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	farmerID := r.URL.Query().Get("farmer_id")

	docs, err := h.service.ListByFarmer(r.Context(), farmerID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, "farmer_id is required", http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Str("farmer_id", farmerID).Msg("Failed to list documentation")
		http.Error(w, "Failed to list documentation", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"farmer_id": farmerID,
		"documents": docs,
		"count":     len(docs),
	}))
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
