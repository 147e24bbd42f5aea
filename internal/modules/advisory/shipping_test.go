package advisory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/exportadvisor/internal/domain"
	testutil "github.com/aristath/exportadvisor/internal/testing"
)

func TestCalculateShippingCost(t *testing.T) {
	engine := newTestEngine(testutil.NewFakeLookup(), time.August)

	tests := []struct {
		name         string
		quantity     float64
		to           string
		method       string
		wantTotal    float64
		wantDelivery string
	}{
		{"sea to USA", 100, "USA", MethodSeaFreight, 1050, "25-35 days"},
		{"air to UAE", 50, "UAE", MethodAirFreight, 1900, "5-7 days"},
		{"express to Japan", 5, "Japan", MethodExpress, 3605, "2-3 days"},
		{"sea to Germany", 10, "Germany", MethodSeaFreight, 676, "25-35 days"},
		{"unlisted destination", 10, "Nepal", MethodAirFreight, 1580, "5-7 days"},
		{"unknown method", 10, "UK", "Drone", 676, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate := engine.CalculateShippingCost("Turmeric", tt.quantity, "India", tt.to, tt.method)

			assert.Equal(t, tt.wantTotal, estimate.TotalCost)
			assert.Equal(t, tt.wantDelivery, estimate.EstimatedDelivery)
			assert.Equal(t, tt.method, estimate.ShippingMethod)
			assert.Equal(t, domain.CurrencyINR, estimate.Currency)
			assert.Equal(t, tt.quantity, estimate.Quantity)
			assert.Equal(t, "India", estimate.FromCountry)
		})
	}
}

func TestCalculateShippingCost_Breakdown(t *testing.T) {
	engine := newTestEngine(testutil.NewFakeLookup(), time.August)

	estimate := engine.CalculateShippingCost("Cardamom", 5, "India", "Japan", MethodExpress)

	assert.Equal(t, 3500.0, estimate.BaseCost)
	assert.Equal(t, 105.0, estimate.WeightCost)
}

func TestShippingMethods(t *testing.T) {
	assert.Equal(t, []string{"Sea Freight", "Air Freight", "Express"}, ShippingMethods())
}
