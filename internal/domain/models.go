// Package domain provides core domain models and types.
package domain

import (
	"strings"
	"time"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// Level is the coarse categorical scale shared by demand levels and stock ratings.
// Values are stored exactly as the data store writes them ("Very High", not "VeryHigh").
type Level string

const (
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelVeryHigh Level = "Very High"
)

// ParseLevel normalizes user input such as "very high", "VeryHigh" or "very_high".
// Unrecognized input is returned trimmed but otherwise untouched, so that callers
// can still store and echo it; multiplier tables treat it as neutral.
func ParseLevel(s string) Level {
	trimmed := strings.TrimSpace(s)
	key := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(trimmed))
	switch key {
	case "low":
		return LevelLow
	case "medium":
		return LevelMedium
	case "high":
		return LevelHigh
	case "veryhigh":
		return LevelVeryHigh
	}
	return Level(trimmed)
}

// Valid reports whether l is one of the four known levels
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelVeryHigh:
		return true
	}
	return false
}

// MarketSignal is a market insight record for one crop/product.
type MarketSignal struct {
	ID          string    `json:"id"`
	Product     string    `json:"product"`
	DemandLevel Level     `json:"demand_level"`
	BasePrice   float64   `json:"base_price"`
	PriceUnit   string    `json:"price_unit"`
	Trend       string    `json:"trend,omitempty"`
	Description string    `json:"description,omitempty"`
	TopMarkets  []string  `json:"top_markets,omitempty"`
	Seasonality string    `json:"seasonality,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductShare is one entry of a country's top imported products
type ProductShare struct {
	Product    string  `json:"product"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// CountrySignal is the import profile of a destination country.
type CountrySignal struct {
	ID               string         `json:"id"`
	Country          string         `json:"country"`
	StockRating      Level          `json:"stock_rating"`
	Imports          []string       `json:"imports,omitempty"`
	TotalImportValue float64        `json:"total_import_value"`
	GrowthRate       float64        `json:"growth_rate"`
	TopProducts      []ProductShare `json:"top_products,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
