// Package handlers provides HTTP handlers for pricing snapshots.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/snapshots"
)

// Handler handles snapshot HTTP requests
type Handler struct {
	service *snapshots.Service
	log     zerolog.Logger
}

// NewHandler creates a new snapshot handler
func NewHandler(service *snapshots.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "snapshots").Logger(),
	}
}

// HandleList handles GET /api/snapshots?limit=&product=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	var (
		list []snapshots.Snapshot
		err  error
	)
	if product := strings.TrimSpace(r.URL.Query().Get("product")); product != "" {
		list, err = h.service.ListByProduct(r.Context(), product, limit)
	} else {
		list, err = h.service.List(r.Context(), limit)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list snapshots")
		http.Error(w, "Failed to list snapshots", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []snapshots.Snapshot{}
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"snapshots": list,
		"count":     len(list),
	}))
}

// HandleSummary handles GET /api/snapshots/summary/{product}
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	product := chi.URLParam(r, "product")

	summary, err := h.service.Summary(r.Context(), product)
	if errors.Is(err, domain.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("product", product).Msg("Failed to summarise snapshots")
		http.Error(w, "Failed to summarise snapshots", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(summary))
}

// HandleRun handles POST /api/snapshots/run
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RunOnce(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Snapshot run failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
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
