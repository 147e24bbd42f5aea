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

	"github.com/aristath/exportadvisor/internal/domain"
)

type recommendationData struct {
	Buyer             string `json:"buyer"`
	Match             string `json:"match,omitempty"`
	Location          string `json:"location,omitempty"`
	ContactEmail      string `json:"contact_email,omitempty"`
	Requirements      string `json:"requirements,omitempty"`
	PriceRange        string `json:"price_range,omitempty"`
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
}

type demandData struct {
	Countries           []string  `json:"countries,omitempty"`
	SeasonalTrend       string    `json:"seasonal_trend,omitempty"`
	PriceRange          PriceBand `json:"price_range"`
	QualityRequirements []string  `json:"quality_requirements,omitempty"`
}

const cropPriceColumns = "id, crop, current_price, previous_price, price_unit, trend, market, is_active, created_at, updated_at"
const recommendationColumns = "id, product, is_active, data, created_at"
const demandColumns = "id, product, global_demand, data, created_at, updated_at"

// AddCropPrice stores a price quote and returns its id
func (r *Repository) AddCropPrice(ctx context.Context, p CropPrice) (string, error) {
	if strings.TrimSpace(p.Crop) == "" {
		return "", fmt.Errorf("%w: crop is required", domain.ErrInvalidInput)
	}

	id := uuid.New().String()
	now := r.now().UnixNano()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO crop_prices (id, crop, current_price, previous_price, price_unit, trend, market, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, strings.TrimSpace(p.Crop), p.CurrentPrice, p.PreviousPrice, p.PriceUnit, p.Trend, p.Market, boolToInt(p.IsActive), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert crop price: %w", err)
	}

	r.log.Debug().Str("id", id).Str("crop", p.Crop).Msg("Crop price added")
	return id, nil
}

// ListCropPrices returns every price quote, newest first
func (r *Repository) ListCropPrices(ctx context.Context) ([]CropPrice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+cropPriceColumns+`
		FROM crop_prices
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query crop prices: %w", err)
	}
	defer rows.Close()

	prices := make([]CropPrice, 0)
	for rows.Next() {
		p, err := scanCropPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crop price: %w", err)
		}
		prices = append(prices, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crop prices: %w", err)
	}
	return prices, nil
}

// FindActiveCropPrice returns the newest active quote for crop, or nil
func (r *Repository) FindActiveCropPrice(ctx context.Context, crop string) (*CropPrice, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+cropPriceColumns+`
		FROM crop_prices
		WHERE crop = ? AND is_active = 1
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, crop)

	p, err := scanCropPrice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find crop price for %q: %w", crop, err)
	}
	return p, nil
}

// AddRecommendation stores a buyer lead. New leads are always active.
func (r *Repository) AddRecommendation(ctx context.Context, rec ExportRecommendation) (string, error) {
	if strings.TrimSpace(rec.Product) == "" {
		return "", fmt.Errorf("%w: product is required", domain.ErrInvalidInput)
	}

	payload, err := json.Marshal(recommendationData{
		Buyer:             rec.Buyer,
		Match:             rec.Match,
		Location:          rec.Location,
		ContactEmail:      rec.ContactEmail,
		Requirements:      rec.Requirements,
		PriceRange:        rec.PriceRange,
		EstimatedDelivery: rec.EstimatedDelivery,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	id := uuid.New().String()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO export_recommendations (id, product, is_active, data, created_at)
		VALUES (?, ?, 1, ?, ?)
	`, id, strings.TrimSpace(rec.Product), string(payload), r.now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("failed to insert recommendation: %w", err)
	}

	r.log.Debug().Str("id", id).Str("product", rec.Product).Msg("Export recommendation added")
	return id, nil
}

// ListRecommendations returns active buyer leads, newest first
func (r *Repository) ListRecommendations(ctx context.Context) ([]ExportRecommendation, error) {
	return r.queryRecommendations(ctx, `
		SELECT `+recommendationColumns+`
		FROM export_recommendations
		WHERE is_active = 1
		ORDER BY created_at DESC, rowid DESC
	`)
}

// ListRecommendationsByProduct returns the active buyer leads for product, newest first
func (r *Repository) ListRecommendationsByProduct(ctx context.Context, product string) ([]ExportRecommendation, error) {
	return r.queryRecommendations(ctx, `
		SELECT `+recommendationColumns+`
		FROM export_recommendations
		WHERE product = ? AND is_active = 1
		ORDER BY created_at DESC, rowid DESC
	`, product)
}

func (r *Repository) queryRecommendations(ctx context.Context, query string, args ...interface{}) ([]ExportRecommendation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	recs := make([]ExportRecommendation, 0)
	for rows.Next() {
		var (
			rec       ExportRecommendation
			active    int
			data      string
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Product, &active, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}

		var extra recommendationData
		if err := json.Unmarshal([]byte(data), &extra); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recommendation %s: %w", rec.ID, err)
		}

		rec.Buyer = extra.Buyer
		rec.Match = extra.Match
		rec.Location = extra.Location
		rec.ContactEmail = extra.ContactEmail
		rec.Requirements = extra.Requirements
		rec.PriceRange = extra.PriceRange
		rec.EstimatedDelivery = extra.EstimatedDelivery
		rec.IsActive = active != 0
		rec.CreatedAt = time.Unix(0, createdAt)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}
	return recs, nil
}

// AddProductDemand stores a product demand profile and returns its id
func (r *Repository) AddProductDemand(ctx context.Context, d ProductDemand) (string, error) {
	if strings.TrimSpace(d.Product) == "" {
		return "", fmt.Errorf("%w: product is required", domain.ErrInvalidInput)
	}

	payload, err := json.Marshal(demandData{
		Countries:           d.Countries,
		SeasonalTrend:       d.SeasonalTrend,
		PriceRange:          d.PriceRange,
		QualityRequirements: d.QualityRequirements,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal product demand: %w", err)
	}

	id := uuid.New().String()
	now := r.now().UnixNano()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO product_demand (id, product, global_demand, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, strings.TrimSpace(d.Product), string(d.GlobalDemand), string(payload), now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert product demand: %w", err)
	}

	r.log.Debug().Str("id", id).Str("product", d.Product).Msg("Product demand added")
	return id, nil
}

// ListProductDemand returns every demand profile, newest first
func (r *Repository) ListProductDemand(ctx context.Context) ([]ProductDemand, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+demandColumns+`
		FROM product_demand
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query product demand: %w", err)
	}
	defer rows.Close()

	demand := make([]ProductDemand, 0)
	for rows.Next() {
		var (
			d                    ProductDemand
			level, data          string
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&d.ID, &d.Product, &level, &data, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product demand: %w", err)
		}

		var extra demandData
		if err := json.Unmarshal([]byte(data), &extra); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product demand %s: %w", d.ID, err)
		}

		d.GlobalDemand = domain.Level(level)
		d.Countries = extra.Countries
		d.SeasonalTrend = extra.SeasonalTrend
		d.PriceRange = extra.PriceRange
		d.QualityRequirements = extra.QualityRequirements
		d.CreatedAt = time.Unix(0, createdAt)
		d.UpdatedAt = time.Unix(0, updatedAt)
		demand = append(demand, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product demand: %w", err)
	}
	return demand, nil
}

// ListProductDemandByCountry returns the demand profiles naming country among
// their markets, newest first. Matching ignores case.
func (r *Repository) ListProductDemandByCountry(ctx context.Context, country string) ([]ProductDemand, error) {
	all, err := r.ListProductDemand(ctx)
	if err != nil {
		return nil, err
	}

	country = strings.TrimSpace(country)
	matched := make([]ProductDemand, 0, len(all))
	for _, d := range all {
		for _, c := range d.Countries {
			if strings.EqualFold(c, country) {
				matched = append(matched, d)
				break
			}
		}
	}
	return matched, nil
}

// catalogCounts returns the row counts of the crop price, recommendation and demand tables
func (r *Repository) catalogCounts(ctx context.Context) (prices, recommendations, demand int, err error) {
	for _, c := range []struct {
		table string
		dest  *int
	}{
		{"crop_prices", &prices},
		{"export_recommendations", &recommendations},
		{"product_demand", &demand},
	} {
		if err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dest); err != nil {
			return 0, 0, 0, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}
	return prices, recommendations, demand, nil
}

func scanCropPrice(row scanner) (*CropPrice, error) {
	var (
		p                    CropPrice
		active               int
		createdAt, updatedAt int64
	)
	if err := row.Scan(&p.ID, &p.Crop, &p.CurrentPrice, &p.PreviousPrice, &p.PriceUnit, &p.Trend, &p.Market, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.IsActive = active != 0
	p.CreatedAt = time.Unix(0, createdAt)
	p.UpdatedAt = time.Unix(0, updatedAt)
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
