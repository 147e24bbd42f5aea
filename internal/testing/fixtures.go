package testing

import (
	"github.com/aristath/exportadvisor/internal/domain"
)

// NewMarketSignalFixtures returns market insights matching the sample data
// the store is seeded with.
func NewMarketSignalFixtures() []domain.MarketSignal {
	return []domain.MarketSignal{
		{Product: "Basmati Rice", DemandLevel: domain.LevelHigh, BasePrice: 65, PriceUnit: "₹/kg", Trend: "+12%"},
		{Product: "Turmeric", DemandLevel: domain.LevelVeryHigh, BasePrice: 180, PriceUnit: "₹/kg", Trend: "+8%"},
		{Product: "Black Pepper", DemandLevel: domain.LevelMedium, BasePrice: 450, PriceUnit: "₹/kg", Trend: "+15%"},
		{Product: "Cardamom", DemandLevel: domain.LevelHigh, BasePrice: 1200, PriceUnit: "₹/kg", Trend: "+5%"},
	}
}

// NewCountrySignalFixtures returns country import profiles covering every stock rating.
func NewCountrySignalFixtures() []domain.CountrySignal {
	return []domain.CountrySignal{
		{Country: "USA", StockRating: domain.LevelHigh, GrowthRate: 8.5},
		{Country: "UAE", StockRating: domain.LevelVeryHigh, GrowthRate: 12.3},
		{Country: "Germany", StockRating: domain.LevelMedium, GrowthRate: 6.2},
		{Country: "Nepal", StockRating: domain.LevelLow, GrowthRate: 1.1},
	}
}
