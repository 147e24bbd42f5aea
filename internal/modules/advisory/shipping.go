package advisory

import (
	"github.com/shopspring/decimal"

	"github.com/aristath/exportadvisor/internal/domain"
)

// Shipping methods
const (
	MethodSeaFreight = "Sea Freight"
	MethodAirFreight = "Air Freight"
	MethodExpress    = "Express"
)

type shippingRate struct {
	base     float64
	perKg    float64
	delivery string
}

var shippingRates = map[string]shippingRate{
	MethodSeaFreight: {base: 500, perKg: 2, delivery: "25-35 days"},
	MethodAirFreight: {base: 1500, perKg: 8, delivery: "5-7 days"},
	MethodExpress:    {base: 2500, perKg: 15, delivery: "2-3 days"},
}

var distanceMultipliers = map[string]float64{
	"USA":     1.5,
	"UAE":     1.0,
	"Germany": 1.3,
	"Japan":   1.4,
	"UK":      1.3,
}

// ShippingMethods lists the known shipping methods, cheapest first
func ShippingMethods() []string {
	return []string{MethodSeaFreight, MethodAirFreight, MethodExpress}
}

// CalculateShippingCost estimates the freight cost of quantity kg of product.
//
// An unknown method is priced as Sea Freight but reports no delivery estimate.
// Destinations outside the distance table use a multiplier of 1.
func (e *Engine) CalculateShippingCost(product string, quantity float64, fromCountry, toCountry, method string) ShippingEstimate {
	rate, known := shippingRates[method]
	if !known {
		rate = shippingRates[MethodSeaFreight]
		rate.delivery = ""
	}

	multiplier, ok := distanceMultipliers[toCountry]
	if !ok {
		multiplier = 1.0
	}

	m := decimal.NewFromFloat(multiplier)
	baseCost := decimal.NewFromFloat(rate.base).Mul(m)
	weightCost := decimal.NewFromFloat(rate.perKg).Mul(decimal.NewFromFloat(quantity)).Mul(m)

	return ShippingEstimate{
		Product:           product,
		Quantity:          quantity,
		FromCountry:       fromCountry,
		ToCountry:         toCountry,
		ShippingMethod:    method,
		BaseCost:          baseCost.InexactFloat64(),
		WeightCost:        weightCost.InexactFloat64(),
		TotalCost:         baseCost.Add(weightCost).Round(0).InexactFloat64(),
		Currency:          domain.CurrencyINR,
		EstimatedDelivery: rate.delivery,
	}
}
