// Package advisory provides the pricing and risk advisory engine: dynamic price
// suggestions, export risk alerts, currency conversion and shipping estimates.
package advisory

import (
	"time"

	"github.com/aristath/exportadvisor/internal/domain"
)

// ConfidenceHigh is the only confidence the engine reports
const ConfidenceHigh = "High"

// PricingSuggestion is a freshly computed price advice for one product and destination.
// It is never persisted by the engine.
type PricingSuggestion struct {
	Product            string    `json:"product"`
	TargetCountry      string    `json:"target_country"`
	BasePrice          float64   `json:"base_price"`
	PriceUnit          string    `json:"price_unit,omitempty"`
	DemandMultiplier   float64   `json:"demand_multiplier"`
	SeasonalMultiplier float64   `json:"seasonal_multiplier"`
	StockMultiplier    float64   `json:"stock_multiplier"`
	SuggestedPrice     float64   `json:"suggested_price"`
	PriceRangeMin      float64   `json:"price_range_min"`
	PriceRangeMax      float64   `json:"price_range_max"`
	Confidence         string    `json:"confidence"`
	ComputedAt         time.Time `json:"computed_at"`
}

// AlertKind classifies a risk alert
type AlertKind string

const (
	AlertWarning     AlertKind = "warning"
	AlertOpportunity AlertKind = "opportunity"
	AlertInfo        AlertKind = "info"
)

// Severity of a risk alert
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskAlert is one risk or opportunity notice for an export destination
type RiskAlert struct {
	Kind              AlertKind `json:"kind"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	Severity          Severity  `json:"severity"`
	RecommendedAction string    `json:"recommended_action"`
}

// CurrencyConversion is the result of converting an amount with the fixed rate table.
// Rate is 1 both for same-currency conversions and for pairs the table lacks.
type CurrencyConversion struct {
	Amount          float64         `json:"amount"`
	SourceCurrency  domain.Currency `json:"source_currency"`
	TargetCurrency  domain.Currency `json:"target_currency"`
	Rate            float64         `json:"rate"`
	ConvertedAmount float64         `json:"converted_amount"`
	ComputedAt      time.Time       `json:"computed_at"`
}

// ShippingEstimate is the estimated freight cost for a shipment, in INR
type ShippingEstimate struct {
	Product           string          `json:"product"`
	Quantity          float64         `json:"quantity"`
	FromCountry       string          `json:"from_country"`
	ToCountry         string          `json:"to_country"`
	ShippingMethod    string          `json:"shipping_method"`
	BaseCost          float64         `json:"base_cost"`
	WeightCost        float64         `json:"weight_cost"`
	TotalCost         float64         `json:"total_cost"`
	Currency          domain.Currency `json:"currency"`
	EstimatedDelivery string          `json:"estimated_delivery"`
}
