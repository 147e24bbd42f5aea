package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
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
	testutil "github.com/aristath/exportadvisor/internal/testing"
)

func setupRouter(lookup *testutil.FakeLookup) chi.Router {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	clock := domain.FixedClock(time.Date(2024, time.August, 1, 9, 0, 0, 0, time.UTC))
	handler := NewHandler(advisory.NewEngine(lookup, clock, logger), logger)

	router := chi.NewRouter()
	router.Route("/api", handler.RegisterRoutes)
	return router
}

func seededLookup() *testutil.FakeLookup {
	lookup := testutil.NewFakeLookup()
	for _, s := range testutil.NewMarketSignalFixtures() {
		lookup.WithMarket(s)
	}
	for _, s := range testutil.NewCountrySignalFixtures() {
		lookup.WithCountry(s)
	}
	return lookup
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Contains(t, response, "metadata")
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestHandleGetPricing(t *testing.T) {
	router := setupRouter(seededLookup())

	req := httptest.NewRequest("GET", "/api/advisory/pricing?product=Basmati+Rice&country=UAE", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	data := decodeData(t, w)
	assert.Equal(t, float64(93), data["suggested_price"])
	assert.Equal(t, float64(84), data["price_range_min"])
	assert.Equal(t, float64(102), data["price_range_max"])
	assert.Equal(t, "High", data["confidence"])
}

func TestHandleGetPricing_MissingParams(t *testing.T) {
	router := setupRouter(seededLookup())

	req := httptest.NewRequest("GET", "/api/advisory/pricing?product=Rice", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetPricing_LookupFailure(t *testing.T) {
	lookup := testutil.NewFakeLookup()
	lookup.Err = errors.New("store unavailable")
	router := setupRouter(lookup)

	req := httptest.NewRequest("GET", "/api/advisory/pricing?product=Rice&country=UAE", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "store unavailable")
}

func TestHandleGetAlerts(t *testing.T) {
	router := setupRouter(seededLookup())

	req := httptest.NewRequest("GET", "/api/advisory/alerts?country=Nepal&product=Rice", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	alerts := data["alerts"].([]interface{})
	require.Len(t, alerts, 2)
	assert.Equal(t, "Low Stock Alert", alerts[0].(map[string]interface{})["title"])
	assert.Equal(t, "Currency Monitor", alerts[1].(map[string]interface{})["title"])
}

func TestHandleGetAlerts_RequiresCountry(t *testing.T) {
	router := setupRouter(seededLookup())

	req := httptest.NewRequest("GET", "/api/advisory/alerts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleConvert(t *testing.T) {
	router := setupRouter(seededLookup())

	body, _ := json.Marshal(map[string]interface{}{
		"amount":          100.0,
		"source_currency": "inr",
		"target_currency": "USD",
	})
	req := httptest.NewRequest("POST", "/api/advisory/convert", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, true, data["supported"])
	conversion := data["conversion"].(map[string]interface{})
	assert.Equal(t, 1.2, conversion["converted_amount"])
	assert.Equal(t, 0.012, conversion["rate"])
	assert.Equal(t, "INR", conversion["source_currency"])
}

func TestHandleConvert_UnsupportedPair(t *testing.T) {
	router := setupRouter(seededLookup())

	req := httptest.NewRequest("POST", "/api/advisory/convert", bytes.NewBufferString(`{"amount":50,"source_currency":"GBP","target_currency":"INR"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, false, data["supported"])
	conversion := data["conversion"].(map[string]interface{})
	assert.Equal(t, float64(1), conversion["rate"])
	assert.Equal(t, float64(50), conversion["converted_amount"])
}

func TestHandleConvert_BadInput(t *testing.T) {
	router := setupRouter(seededLookup())

	for _, body := range []string{"not json", `{"amount":1}`, `{"amount":-1,"source_currency":"INR","target_currency":"USD"}`} {
		req := httptest.NewRequest("POST", "/api/advisory/convert", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestHandleShipping(t *testing.T) {
	router := setupRouter(seededLookup())

	body, _ := json.Marshal(map[string]interface{}{
		"product":         "Basmati Rice",
		"quantity":        100,
		"to_country":      "USA",
		"shipping_method": "Sea Freight",
	})
	req := httptest.NewRequest("POST", "/api/advisory/shipping", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, float64(1050), data["total_cost"])
	assert.Equal(t, "25-35 days", data["estimated_delivery"])
	assert.Equal(t, "India", data["from_country"])
	assert.Equal(t, "INR", data["currency"])
}

func TestHandleShipping_BadInput(t *testing.T) {
	router := setupRouter(seededLookup())

	req := httptest.NewRequest("POST", "/api/advisory/shipping", bytes.NewBufferString(`{"to_country":"USA","quantity":0}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetCurrencies(t *testing.T) {
	router := setupRouter(seededLookup())

	req := httptest.NewRequest("GET", "/api/advisory/currencies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Len(t, data["currencies"], 4)
	assert.Len(t, data["rates"], 9)
	assert.Len(t, data["shipping_methods"], 3)
}

func TestRegisterRoutes(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	handler := NewHandler(nil, logger)

	router := chi.NewRouter()

	assert.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")
}

func TestHandleConvert_ResultOutOfRange(t *testing.T) {
	router := setupRouter(seededLookup())

	req := httptest.NewRequest("POST", "/api/advisory/convert", bytes.NewBufferString(`{"amount":1e308,"source_currency":"USD","target_currency":"INR"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

func TestHandleShipping_ResultOutOfRange(t *testing.T) {
	router := setupRouter(seededLookup())

	req := httptest.NewRequest("POST", "/api/advisory/shipping", bytes.NewBufferString(`{"product":"Turmeric","quantity":1e308,"to_country":"USA","shipping_method":"Express"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

func TestHandleGetPricing_UnencodableResult(t *testing.T) {
	lookup := seededLookup().WithMarket(domain.MarketSignal{
		Product:     "Saffron",
		DemandLevel: domain.LevelVeryHigh,
		BasePrice:   1.5e308,
	})
	router := setupRouter(lookup)

	req := httptest.NewRequest("GET", "/api/advisory/pricing?product=Saffron&country=UAE", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Body.String())
}
