package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCropPrices(t *testing.T) {
	_, router := setupRouter(t)

	req := httptest.NewRequest("POST", "/api/market/crop-prices", bytes.NewBufferString(`{"crop":"Turmeric","current_price":180,"previous_price":167,"price_unit":"₹/kg"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/api/market/crop-prices/Turmeric", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(180), data["current_price"])
	assert.Equal(t, true, data["is_active"])

	req = httptest.NewRequest("GET", "/api/market/crop-prices/Saffron", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleAddCropPrice_Inactive(t *testing.T) {
	_, router := setupRouter(t)

	req := httptest.NewRequest("POST", "/api/market/crop-prices", bytes.NewBufferString(`{"crop":"Cardamom","current_price":1200,"is_active":false}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/api/market/crop-prices/Cardamom", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest("GET", "/api/market/crop-prices", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["data"].(map[string]interface{})["count"])
}

func TestHandleCatalog_BadInput(t *testing.T) {
	_, router := setupRouter(t)

	for _, tc := range []struct {
		path string
		body string
	}{
		{"/api/market/crop-prices", `{"crop":""}`},
		{"/api/market/crop-prices", `{"crop":"Rice","current_price":-1}`},
		{"/api/market/recommendations", `{"buyer":"Nobody"}`},
		{"/api/market/product-demand", `not json`},
	} {
		req := httptest.NewRequest("POST", tc.path, bytes.NewBufferString(tc.body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path+" "+tc.body)
	}
}

func TestHandleRecommendations_FilterByProduct(t *testing.T) {
	_, router := setupRouter(t)

	req := httptest.NewRequest("POST", "/api/market/seed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/api/market/recommendations", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["data"].(map[string]interface{})["count"])

	req = httptest.NewRequest("GET", "/api/market/recommendations?product=Black+Pepper", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]interface{})
	recs := data["recommendations"].([]interface{})
	require.Len(t, recs, 1)
	assert.Equal(t, "Global Spices Inc.", recs[0].(map[string]interface{})["buyer"])
}

func TestHandleProductDemand(t *testing.T) {
	_, router := setupRouter(t)

	body := `{"product":"Cardamom","global_demand":"very high","countries":["Saudi Arabia","Kuwait"],"price_range":{"min":1100,"max":1300,"currency":"INR/kg"}}`
	req := httptest.NewRequest("POST", "/api/market/product-demand", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/api/market/product-demand", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]interface{})
	demand := data["demand"].([]interface{})
	require.Len(t, demand, 1)
	entry := demand[0].(map[string]interface{})
	assert.Equal(t, "Very High", entry["global_demand"])
	assert.Equal(t, float64(1300), entry["price_range"].(map[string]interface{})["max"])

	req = httptest.NewRequest("GET", "/api/market/product-demand?country=kuwait", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["data"].(map[string]interface{})["count"])

	req = httptest.NewRequest("GET", "/api/market/product-demand?country=Japan", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["data"].(map[string]interface{})["count"])
}
