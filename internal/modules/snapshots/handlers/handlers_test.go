package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/advisory"
	"github.com/aristath/exportadvisor/internal/modules/marketdata"
	"github.com/aristath/exportadvisor/internal/modules/snapshots"
	testutil "github.com/aristath/exportadvisor/internal/testing"
)

func setupRouter(t *testing.T) chi.Router {
	t.Helper()

	db, _ := testutil.NewTestDB(t, "market")
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	clock := domain.FixedClock(time.Date(2024, time.August, 1, 9, 0, 0, 0, time.UTC))

	market := marketdata.NewRepository(db.Conn(), logger)
	_, err := market.SeedSampleData(context.Background())
	require.NoError(t, err)

	service := snapshots.NewService(
		snapshots.NewRepository(db.Conn(), logger),
		market,
		advisory.NewEngine(market, clock, logger),
		nil,
		clock,
		logger,
	)

	router := chi.NewRouter()
	router.Route("/api", NewHandler(service, logger).RegisterRoutes)
	return router
}

func serve(router chi.Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestHandleList_Empty(t *testing.T) {
	router := setupRouter(t)

	w := serve(router, "GET", "/api/snapshots")
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, float64(0), data["count"])
	assert.Equal(t, []interface{}{}, data["snapshots"])
}

func TestHandleRunThenList(t *testing.T) {
	router := setupRouter(t)

	w := serve(router, "POST", "/api/snapshots/run")
	require.Equal(t, http.StatusOK, w.Code)
	run := decodeData(t, w)
	assert.Equal(t, float64(16), run["snapshots"])
	assert.NotEmpty(t, run["run_id"])

	w = serve(router, "GET", "/api/snapshots?limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), decodeData(t, w)["count"])

	w = serve(router, "GET", "/api/snapshots/summary/Basmati%20Rice")
	require.Equal(t, http.StatusOK, w.Code)
	summary := decodeData(t, w)
	assert.Equal(t, "Basmati Rice", summary["product"])
	assert.Equal(t, float64(4), summary["count"])
	assert.Equal(t, float64(93), summary["max"])
}

func TestHandleList_BadLimit(t *testing.T) {
	router := setupRouter(t)

	w := serve(router, "GET", "/api/snapshots?limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSummary_BlankProduct(t *testing.T) {
	router := setupRouter(t)

	w := serve(router, "GET", "/api/snapshots/summary/%20")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRoutes(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	handler := NewHandler(nil, logger)

	router := chi.NewRouter()
	assert.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	})

	routes := map[string]bool{}
	_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})

	assert.True(t, routes["GET /snapshots/"])
	assert.True(t, routes["GET /snapshots/summary/{product}"])
	assert.True(t, routes["POST /snapshots/run"])
}

func TestHandleList_FilterByProduct(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusOK, serve(router, "POST", "/api/snapshots/run").Code)

	w := serve(router, "GET", "/api/snapshots?product=Turmeric")
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, float64(4), data["count"])
	for _, raw := range data["snapshots"].([]interface{}) {
		assert.Equal(t, "Turmeric", raw.(map[string]interface{})["product"])
	}

	w = serve(router, "GET", "/api/snapshots?product=Turmeric&limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeData(t, w)["count"])

	w = serve(router, "GET", "/api/snapshots?product=Saffron")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeData(t, w)["count"])
}
