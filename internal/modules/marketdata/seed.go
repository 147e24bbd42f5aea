package marketdata

import (
	"context"
	"fmt"

	"github.com/aristath/exportadvisor/internal/domain"
)

// SampleMarketInsights returns the demo crop insights loaded on first start
func SampleMarketInsights() []domain.MarketSignal {
	return []domain.MarketSignal{
		{
			Product:     "Basmati Rice",
			DemandLevel: domain.LevelHigh,
			BasePrice:   65,
			PriceUnit:   "₹/kg",
			Trend:       "+12%",
			Description: "High demand in Middle East and European markets",
			TopMarkets:  []string{"UAE", "Saudi Arabia", "Germany", "USA"},
			Seasonality: "Year-round demand, peak during festival seasons",
		},
		{
			Product:     "Turmeric",
			DemandLevel: domain.LevelVeryHigh,
			BasePrice:   180,
			PriceUnit:   "₹/kg",
			Trend:       "+8%",
			Description: "Increasing demand due to health benefits",
			TopMarkets:  []string{"UAE", "USA", "UK", "Japan"},
			Seasonality: "Best prices during winter months",
		},
		{
			Product:     "Black Pepper",
			DemandLevel: domain.LevelMedium,
			BasePrice:   450,
			PriceUnit:   "₹/kg",
			Trend:       "+15%",
			Description: "Steady demand in European and American markets",
			TopMarkets:  []string{"Germany", "USA", "France", "Netherlands"},
			Seasonality: "Peak harvest season offers best prices",
		},
		{
			Product:     "Cardamom",
			DemandLevel: domain.LevelHigh,
			BasePrice:   1200,
			PriceUnit:   "₹/kg",
			Trend:       "+5%",
			Description: "Premium spice with consistent demand",
			TopMarkets:  []string{"Saudi Arabia", "Kuwait", "USA", "UK"},
			Seasonality: "Limited supply periods drive higher prices",
		},
	}
}

// SampleCountryImports returns the demo destination profiles loaded on first start
func SampleCountryImports() []domain.CountrySignal {
	return []domain.CountrySignal{
		{
			Country:          "USA",
			Imports:          []string{"Rice", "Spices", "Tea", "Organic Grains"},
			StockRating:      domain.LevelHigh,
			TotalImportValue: 2500000000,
			GrowthRate:       8.5,
			TopProducts: []domain.ProductShare{
				{Product: "Basmati Rice", Value: 850000000, Percentage: 34},
				{Product: "Turmeric", Value: 425000000, Percentage: 17},
				{Product: "Black Pepper", Value: 325000000, Percentage: 13},
			},
		},
		{
			Country:          "UAE",
			Imports:          []string{"Vegetables", "Fruits", "Rice", "Pulses"},
			StockRating:      domain.LevelVeryHigh,
			TotalImportValue: 1800000000,
			GrowthRate:       12.3,
			TopProducts: []domain.ProductShare{
				{Product: "Fresh Vegetables", Value: 540000000, Percentage: 30},
				{Product: "Basmati Rice", Value: 360000000, Percentage: 20},
				{Product: "Fruits", Value: 270000000, Percentage: 15},
			},
		},
		{
			Country:          "Germany",
			Imports:          []string{"Organic Grains", "Spices", "Tea"},
			StockRating:      domain.LevelMedium,
			TotalImportValue: 1200000000,
			GrowthRate:       6.2,
			TopProducts: []domain.ProductShare{
				{Product: "Organic Wheat", Value: 360000000, Percentage: 30},
				{Product: "Cardamom", Value: 240000000, Percentage: 20},
				{Product: "Green Tea", Value: 180000000, Percentage: 15},
			},
		},
		{
			Country:          "Japan",
			Imports:          []string{"Tea", "Pulses", "Organic Products"},
			StockRating:      domain.LevelHigh,
			TotalImportValue: 950000000,
			GrowthRate:       4.8,
			TopProducts: []domain.ProductShare{
				{Product: "Green Tea", Value: 285000000, Percentage: 30},
				{Product: "Organic Pulses", Value: 190000000, Percentage: 20},
				{Product: "Sesame Seeds", Value: 142500000, Percentage: 15},
			},
		},
	}
}

// SampleCropPrices returns the demo international price quotes
func SampleCropPrices() []CropPrice {
	return []CropPrice{
		{Crop: "Basmati Rice", CurrentPrice: 65, PreviousPrice: 58, PriceUnit: "₹/kg", Trend: "+12%", Market: "International", IsActive: true},
		{Crop: "Turmeric", CurrentPrice: 180, PreviousPrice: 167, PriceUnit: "₹/kg", Trend: "+8%", Market: "International", IsActive: true},
		{Crop: "Black Pepper", CurrentPrice: 450, PreviousPrice: 391, PriceUnit: "₹/kg", Trend: "+15%", Market: "International", IsActive: true},
		{Crop: "Cardamom", CurrentPrice: 1200, PreviousPrice: 1143, PriceUnit: "₹/kg", Trend: "+5%", Market: "International", IsActive: true},
	}
}

// SampleRecommendations returns the demo buyer leads
func SampleRecommendations() []ExportRecommendation {
	return []ExportRecommendation{
		{
			Buyer:             "Middle East Trading Co.",
			Product:           "Organic Rice",
			Match:             "95%",
			Location:          "Dubai, UAE",
			ContactEmail:      "trading@middleeastco.com",
			Requirements:      "Organic certification required, minimum 10MT order",
			PriceRange:        "₹70-75/kg",
			EstimatedDelivery: "30-45 days",
		},
		{
			Buyer:             "European Organics",
			Product:           "Turmeric Powder",
			Match:             "88%",
			Location:          "Hamburg, Germany",
			ContactEmail:      "imports@europeanorganics.de",
			Requirements:      "ISO certification, lab testing reports",
			PriceRange:        "₹190-200/kg",
			EstimatedDelivery: "45-60 days",
		},
		{
			Buyer:             "Global Spices Inc.",
			Product:           "Black Pepper",
			Match:             "92%",
			Location:          "New York, USA",
			ContactEmail:      "purchasing@globalspices.com",
			Requirements:      "ASTA quality standards, moisture content <12%",
			PriceRange:        "₹460-480/kg",
			EstimatedDelivery: "35-50 days",
		},
	}
}

// SampleProductDemand returns the demo global demand profiles
func SampleProductDemand() []ProductDemand {
	return []ProductDemand{
		{
			Product:             "Basmati Rice",
			Countries:           []string{"USA", "UAE", "Saudi Arabia", "UK"},
			GlobalDemand:        domain.LevelVeryHigh,
			SeasonalTrend:       "Peak during festivals",
			PriceRange:          PriceBand{Min: 60, Max: 80, Currency: "INR/kg"},
			QualityRequirements: []string{"Aged rice", "Long grain", "Aromatic"},
		},
		{
			Product:             "Turmeric Powder",
			Countries:           []string{"USA", "Germany", "UK", "Canada"},
			GlobalDemand:        domain.LevelHigh,
			SeasonalTrend:       "Consistent year-round",
			PriceRange:          PriceBand{Min: 180, Max: 220, Currency: "INR/kg"},
			QualityRequirements: []string{"Curcumin content >3%", "Organic certified", "Powder form"},
		},
		{
			Product:             "Black Pepper",
			Countries:           []string{"USA", "Germany", "Netherlands", "France"},
			GlobalDemand:        domain.LevelHigh,
			SeasonalTrend:       "Higher demand in winter",
			PriceRange:          PriceBand{Min: 450, Max: 550, Currency: "INR/kg"},
			QualityRequirements: []string{"Moisture <12%", "Bold size", "Clean sorted"},
		},
	}
}

// SeedResult reports how many sample records were written
type SeedResult struct {
	Insights        int  `json:"insights"`
	Countries       int  `json:"countries"`
	CropPrices      int  `json:"crop_prices"`
	Recommendations int  `json:"recommendations"`
	ProductDemand   int  `json:"product_demand"`
	Skipped         bool `json:"skipped"`
}

// SeedSampleData loads the sample insights, country profiles, crop prices, buyer
// leads and demand profiles. A table that already holds rows is left alone.
func (r *Repository) SeedSampleData(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	insightCount, countryCount, err := r.Counts(ctx)
	if err != nil {
		return result, err
	}

	if insightCount == 0 {
		for _, s := range SampleMarketInsights() {
			if _, err := r.AddMarketInsight(ctx, s); err != nil {
				return result, fmt.Errorf("failed to seed insight %s: %w", s.Product, err)
			}
			result.Insights++
		}
	}

	if countryCount == 0 {
		for _, s := range SampleCountryImports() {
			if _, err := r.AddCountryImport(ctx, s); err != nil {
				return result, fmt.Errorf("failed to seed country %s: %w", s.Country, err)
			}
			result.Countries++
		}
	}

	priceCount, recommendationCount, demandCount, err := r.catalogCounts(ctx)
	if err != nil {
		return result, err
	}

	if priceCount == 0 {
		for _, p := range SampleCropPrices() {
			if _, err := r.AddCropPrice(ctx, p); err != nil {
				return result, fmt.Errorf("failed to seed crop price %s: %w", p.Crop, err)
			}
			result.CropPrices++
		}
	}

	if recommendationCount == 0 {
		for _, rec := range SampleRecommendations() {
			if _, err := r.AddRecommendation(ctx, rec); err != nil {
				return result, fmt.Errorf("failed to seed recommendation %s: %w", rec.Buyer, err)
			}
			result.Recommendations++
		}
	}

	if demandCount == 0 {
		for _, d := range SampleProductDemand() {
			if _, err := r.AddProductDemand(ctx, d); err != nil {
				return result, fmt.Errorf("failed to seed product demand %s: %w", d.Product, err)
			}
			result.ProductDemand++
		}
	}

	result.Skipped = result.Insights == 0 && result.Countries == 0 &&
		result.CropPrices == 0 && result.Recommendations == 0 && result.ProductDemand == 0

	r.log.Info().
		Int("insights", result.Insights).
		Int("countries", result.Countries).
		Int("crop_prices", result.CropPrices).
		Int("recommendations", result.Recommendations).
		Int("product_demand", result.ProductDemand).
		Bool("skipped", result.Skipped).
		Msg("Sample market data seeded")

	return result, nil
}
