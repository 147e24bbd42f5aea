package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	handler := NewHandler(nil, logger)

	router := chi.NewRouter()

	assert.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")

	routes := map[string]bool{}
	_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})

	assert.True(t, routes["GET /market/insights"])
	assert.True(t, routes["GET /market/insights/{crop}"])
	assert.True(t, routes["PUT /market/stock-ratings/{id}"])
	assert.True(t, routes["POST /market/seed"])
	assert.True(t, routes["GET /market/crop-prices/{crop}"])
	assert.True(t, routes["POST /market/recommendations"])
	assert.True(t, routes["GET /market/product-demand"])
}
