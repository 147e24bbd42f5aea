package advisory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/pkg/logger"
)

// DefaultBasePrice is used when no market signal exists for a product
// or the stored signal carries no price.
const DefaultBasePrice = 50.0

var demandMultipliers = map[domain.Level]float64{
	domain.LevelVeryHigh: 1.30,
	domain.LevelHigh:     1.15,
	domain.LevelMedium:   1.00,
	domain.LevelLow:      0.85,
}

var stockMultipliers = map[domain.Level]float64{
	domain.LevelVeryHigh: 1.25,
	domain.LevelHigh:     1.10,
	domain.LevelMedium:   1.00,
	domain.LevelLow:      0.90,
}

// Engine computes pricing suggestions and risk alerts from market data.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	lookup domain.MarketDataLookup
	clock  domain.Clock
	log    zerolog.Logger
}

// NewEngine creates a new advisory engine.
// A nil clock means the process-local wall clock.
func NewEngine(lookup domain.MarketDataLookup, clock domain.Clock, log zerolog.Logger) *Engine {
	if clock == nil {
		clock = domain.SystemClock(nil)
	}
	return &Engine{
		lookup: lookup,
		clock:  clock,
		log:    logger.Component(log, "advisory_engine"),
	}
}

// GetDynamicPricing suggests a price for product in targetCountry.
//
// Missing market or country data falls back to neutral values; only lookup
// failures are returned as errors.
func (e *Engine) GetDynamicPricing(ctx context.Context, product, targetCountry string) (PricingSuggestion, error) {
	market, err := e.lookup.FindMarketSignal(ctx, product)
	if err != nil {
		return PricingSuggestion{}, fmt.Errorf("failed to look up market signal: %w", err)
	}

	basePrice := DefaultBasePrice
	demandMultiplier := 1.0
	priceUnit := ""
	if market != nil {
		if market.BasePrice != 0 {
			basePrice = market.BasePrice
		}
		demandMultiplier = multiplierFor(demandMultipliers, market.DemandLevel)
		priceUnit = market.PriceUnit
	} else {
		e.log.Debug().Str("product", product).Msg("No market signal, using default base price")
	}

	country, err := e.lookup.FindCountrySignal(ctx, targetCountry)
	if err != nil {
		return PricingSuggestion{}, fmt.Errorf("failed to look up country signal: %w", err)
	}

	stockMultiplier := 1.0
	if country != nil {
		stockMultiplier = multiplierFor(stockMultipliers, country.StockRating)
	}

	now := e.clock()
	seasonalMultiplier := SeasonalMultiplier(now)

	suggested := decimalProduct(basePrice, demandMultiplier, seasonalMultiplier, stockMultiplier).Round(0)

	return PricingSuggestion{
		Product:            product,
		TargetCountry:      targetCountry,
		BasePrice:          basePrice,
		PriceUnit:          priceUnit,
		DemandMultiplier:   demandMultiplier,
		SeasonalMultiplier: seasonalMultiplier,
		StockMultiplier:    stockMultiplier,
		SuggestedPrice:     suggested.InexactFloat64(),
		PriceRangeMin:      suggested.Mul(decimal.NewFromFloat(0.9)).Round(0).InexactFloat64(),
		PriceRangeMax:      suggested.Mul(decimal.NewFromFloat(1.1)).Round(0).InexactFloat64(),
		Confidence:         ConfidenceHigh,
		ComputedAt:         now,
	}, nil
}

// GetExportRiskAlerts lists the risk and opportunity alerts for targetCountry.
// Rules run in a fixed order and each may add one alert; the currency reminder
// is always last. product does not influence any rule yet.
func (e *Engine) GetExportRiskAlerts(ctx context.Context, targetCountry, product string) ([]RiskAlert, error) {
	country, err := e.lookup.FindCountrySignal(ctx, targetCountry)
	if err != nil {
		return nil, fmt.Errorf("failed to look up country signal: %w", err)
	}

	alerts := make([]RiskAlert, 0, 4)

	if country != nil && country.StockRating == domain.LevelLow {
		alerts = append(alerts, RiskAlert{
			Kind:              AlertWarning,
			Title:             "Low Stock Alert",
			Message:           fmt.Sprintf("%s has low stock levels. Consider alternative markets or premium pricing.", targetCountry),
			Severity:          SeverityMedium,
			RecommendedAction: "Consider premium pricing strategy",
		})
	}

	if country != nil && country.StockRating == domain.LevelVeryHigh {
		alerts = append(alerts, RiskAlert{
			Kind:              AlertOpportunity,
			Title:             "High Demand Opportunity",
			Message:           fmt.Sprintf("%s shows very high demand for your products.", targetCountry),
			Severity:          SeverityLow,
			RecommendedAction: "Increase export volume",
		})
	}

	if IsWinter(e.clock()) {
		alerts = append(alerts, RiskAlert{
			Kind:              AlertInfo,
			Title:             "Seasonal Peak",
			Message:           "Winter season typically shows higher demand for spices and preserved foods.",
			Severity:          SeverityLow,
			RecommendedAction: "Optimize inventory levels",
		})
	}

	alerts = append(alerts, RiskAlert{
		Kind:              AlertInfo,
		Title:             "Currency Monitor",
		Message:           "Monitor USD/INR exchange rates for optimal pricing.",
		Severity:          SeverityLow,
		RecommendedAction: "Check daily exchange rates",
	})

	e.log.Debug().
		Str("country", targetCountry).
		Str("product", product).
		Int("alerts", len(alerts)).
		Msg("Risk alerts computed")

	return alerts, nil
}

// SeasonalMultiplier returns the calendar adjustment for t's month:
// 0.95 during harvest (Oct-Dec), 1.10 before harvest (Apr-Jun), 1.00 otherwise.
func SeasonalMultiplier(t time.Time) float64 {
	switch monthIndex(t) {
	case 9, 10, 11:
		return 0.95
	case 3, 4, 5:
		return 1.10
	}
	return 1.00
}

// IsWinter reports whether t falls in December, January or February
func IsWinter(t time.Time) bool {
	switch monthIndex(t) {
	case 11, 0, 1:
		return true
	}
	return false
}

// monthIndex is the 0-based month (January = 0)
func monthIndex(t time.Time) int {
	return int(t.Month()) - 1
}

func multiplierFor(table map[domain.Level]float64, level domain.Level) float64 {
	if m, ok := table[level]; ok {
		return m
	}
	return 1.0
}

// roundedProduct multiplies factors in decimal and rounds the result to places,
// ties away from zero. Decimal arithmetic keeps 50 x 1.15 at exactly 57.5.
// Results beyond float64 range come back as +/-Inf.
func roundedProduct(places int32, factors ...float64) float64 {
	return decimalProduct(factors...).Round(places).InexactFloat64()
}

func decimalProduct(factors ...float64) decimal.Decimal {
	product := decimal.NewFromInt(1)
	for _, f := range factors {
		product = product.Mul(decimal.NewFromFloat(f))
	}
	return product
}
