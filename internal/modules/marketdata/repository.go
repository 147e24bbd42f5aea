// Package marketdata provides the market data store: market insights per crop and
// import profiles per destination country, kept as JSON documents in market.db.
package marketdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/domain"
)

// Repository handles market.db reads and writes.
// It satisfies domain.MarketDataLookup for the advisory engine.
type Repository struct {
	db  *sql.DB
	now func() time.Time
	log zerolog.Logger
}

var _ domain.MarketDataLookup = (*Repository)(nil)

// NewRepository creates a new market data repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		now: time.Now,
		log: log.With().Str("repository", "marketdata").Logger(),
	}
}

// insightData holds the market insight fields that live in the JSON data column
type insightData struct {
	Trend       string   `json:"trend,omitempty"`
	Description string   `json:"description,omitempty"`
	TopMarkets  []string `json:"top_markets,omitempty"`
	Seasonality string   `json:"seasonality,omitempty"`
}

// countryData holds the country import fields that live in the JSON data column
type countryData struct {
	Imports          []string              `json:"imports,omitempty"`
	TotalImportValue float64               `json:"total_import_value"`
	GrowthRate       float64               `json:"growth_rate"`
	TopProducts      []domain.ProductShare `json:"top_products,omitempty"`
}

const insightColumns = "id, crop, demand, price, price_unit, data, created_at, updated_at"
const countryColumns = "id, country, stock_rating, data, created_at, updated_at"

// AddMarketInsight stores a new market insight and returns its id.
// Earlier insights for the same crop are kept; lookups return the newest.
func (r *Repository) AddMarketInsight(ctx context.Context, s domain.MarketSignal) (string, error) {
	if strings.TrimSpace(s.Product) == "" {
		return "", fmt.Errorf("%w: crop is required", domain.ErrInvalidInput)
	}

	payload, err := json.Marshal(insightData{
		Trend:       s.Trend,
		Description: s.Description,
		TopMarkets:  s.TopMarkets,
		Seasonality: s.Seasonality,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal market insight: %w", err)
	}

	id := uuid.New().String()
	now := r.now().UnixNano()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO market_insights (id, crop, demand, price, price_unit, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, strings.TrimSpace(s.Product), string(s.DemandLevel), s.BasePrice, s.PriceUnit, string(payload), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert market insight: %w", err)
	}

	r.log.Debug().Str("id", id).Str("crop", s.Product).Msg("Market insight added")
	return id, nil
}

// FindMarketSignal returns the newest insight whose crop equals product exactly.
// Returns nil if there is none.
func (r *Repository) FindMarketSignal(ctx context.Context, product string) (*domain.MarketSignal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+insightColumns+`
		FROM market_insights
		WHERE crop = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, product)

	s, err := scanInsight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find market signal for %q: %w", product, err)
	}
	return s, nil
}

// ListMarketInsights returns every insight, newest first
func (r *Repository) ListMarketInsights(ctx context.Context) ([]domain.MarketSignal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+insightColumns+`
		FROM market_insights
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query market insights: %w", err)
	}
	defer rows.Close()

	return collectInsights(rows)
}

// ListMarketInsightsByCrop returns every insight for crop, newest first
func (r *Repository) ListMarketInsightsByCrop(ctx context.Context, crop string) ([]domain.MarketSignal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+insightColumns+`
		FROM market_insights
		WHERE crop = ?
		ORDER BY created_at DESC, rowid DESC
	`, crop)
	if err != nil {
		return nil, fmt.Errorf("failed to query market insights for %q: %w", crop, err)
	}
	defer rows.Close()

	return collectInsights(rows)
}

// AddCountryImport stores a new country import profile and returns its id
func (r *Repository) AddCountryImport(ctx context.Context, s domain.CountrySignal) (string, error) {
	if strings.TrimSpace(s.Country) == "" {
		return "", fmt.Errorf("%w: country is required", domain.ErrInvalidInput)
	}

	payload, err := json.Marshal(countryData{
		Imports:          s.Imports,
		TotalImportValue: s.TotalImportValue,
		GrowthRate:       s.GrowthRate,
		TopProducts:      s.TopProducts,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal country import: %w", err)
	}

	id := uuid.New().String()
	now := r.now().UnixNano()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO country_imports (id, country, stock_rating, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, strings.TrimSpace(s.Country), string(s.StockRating), string(payload), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert country import: %w", err)
	}

	r.log.Debug().Str("id", id).Str("country", s.Country).Msg("Country import added")
	return id, nil
}

// FindCountrySignal returns the newest import profile whose country equals country exactly.
// Returns nil if there is none.
func (r *Repository) FindCountrySignal(ctx context.Context, country string) (*domain.CountrySignal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+countryColumns+`
		FROM country_imports
		WHERE country = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, country)

	s, err := scanCountry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find country signal for %q: %w", country, err)
	}
	return s, nil
}

// ListCountryImports returns every import profile ordered by country name
func (r *Repository) ListCountryImports(ctx context.Context) ([]domain.CountrySignal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+countryColumns+`
		FROM country_imports
		ORDER BY country ASC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query country imports: %w", err)
	}
	defer rows.Close()

	return collectCountries(rows)
}

// ListCountryImportsByCountry returns every import profile for country, newest first
func (r *Repository) ListCountryImportsByCountry(ctx context.Context, country string) ([]domain.CountrySignal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+countryColumns+`
		FROM country_imports
		WHERE country = ?
		ORDER BY created_at DESC, rowid DESC
	`, country)
	if err != nil {
		return nil, fmt.Errorf("failed to query country imports for %q: %w", country, err)
	}
	defer rows.Close()

	return collectCountries(rows)
}

// UpdateStockRating changes the stock rating of one country import profile.
// Returns domain.ErrNotFound if no profile has that id.
func (r *Repository) UpdateStockRating(ctx context.Context, id string, rating domain.Level) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE country_imports
		SET stock_rating = ?, updated_at = ?
		WHERE id = ?
	`, string(rating), r.now().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("failed to update stock rating: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("country import %s: %w", id, domain.ErrNotFound)
	}

	r.log.Info().Str("id", id).Str("stock_rating", string(rating)).Msg("Stock rating updated")
	return nil
}

// Counts returns the number of stored insights and country profiles
func (r *Repository) Counts(ctx context.Context) (insights int, countries int, err error) {
	if err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM market_insights").Scan(&insights); err != nil {
		return 0, 0, fmt.Errorf("failed to count market insights: %w", err)
	}
	if err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM country_imports").Scan(&countries); err != nil {
		return 0, 0, fmt.Errorf("failed to count country imports: %w", err)
	}
	return insights, countries, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInsight(row scanner) (*domain.MarketSignal, error) {
	var (
		s                    domain.MarketSignal
		demand, data         string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&s.ID, &s.Product, &demand, &s.BasePrice, &s.PriceUnit, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var extra insightData
	if err := json.Unmarshal([]byte(data), &extra); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market insight %s: %w", s.ID, err)
	}

	s.DemandLevel = domain.Level(demand)
	s.Trend = extra.Trend
	s.Description = extra.Description
	s.TopMarkets = extra.TopMarkets
	s.Seasonality = extra.Seasonality
	s.CreatedAt = time.Unix(0, createdAt)
	s.UpdatedAt = time.Unix(0, updatedAt)
	return &s, nil
}

func scanCountry(row scanner) (*domain.CountrySignal, error) {
	var (
		s                    domain.CountrySignal
		rating, data         string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&s.ID, &s.Country, &rating, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var extra countryData
	if err := json.Unmarshal([]byte(data), &extra); err != nil {
		return nil, fmt.Errorf("failed to unmarshal country import %s: %w", s.ID, err)
	}

	s.StockRating = domain.Level(rating)
	s.Imports = extra.Imports
	s.TotalImportValue = extra.TotalImportValue
	s.GrowthRate = extra.GrowthRate
	s.TopProducts = extra.TopProducts
	s.CreatedAt = time.Unix(0, createdAt)
	s.UpdatedAt = time.Unix(0, updatedAt)
	return &s, nil
}

func collectInsights(rows *sql.Rows) ([]domain.MarketSignal, error) {
	insights := make([]domain.MarketSignal, 0)
	for rows.Next() {
		s, err := scanInsight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market insight: %w", err)
		}
		insights = append(insights, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate market insights: %w", err)
	}
	return insights, nil
}

func collectCountries(rows *sql.Rows) ([]domain.CountrySignal, error) {
	countries := make([]domain.CountrySignal, 0)
	for rows.Next() {
		s, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan country import: %w", err)
		}
		countries = append(countries, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate country imports: %w", err)
	}
	return countries, nil
}
