package snapshots

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/database"
)

// DefaultListLimit caps List when the caller passes a non-positive limit
const DefaultListLimit = 100

const snapshotColumns = `id, run_id, product, target_country, base_price, suggested_price,
	price_range_min, price_range_max, demand_multiplier, seasonal_multiplier,
	stock_multiplier, computed_at`

// Repository handles the pricing_snapshots table in market.db
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "snapshots").Logger(),
	}
}

// InsertBatch stores all snapshots of a run atomically
func (r *Repository) InsertBatch(ctx context.Context, snapshots []Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO pricing_snapshots (`+snapshotColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare snapshot insert: %w", err)
		}
		defer stmt.Close()

		for _, s := range snapshots {
			_, err := stmt.ExecContext(ctx,
				s.ID, s.RunID, s.Product, s.TargetCountry, s.BasePrice, s.SuggestedPrice,
				s.PriceRangeMin, s.PriceRangeMax, s.DemandMultiplier, s.SeasonalMultiplier,
				s.StockMultiplier, s.ComputedAt.UnixNano(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert snapshot %s/%s: %w", s.Product, s.TargetCountry, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Debug().Int("count", len(snapshots)).Msg("Stored pricing snapshots")
	return nil
}

// List returns the most recent snapshots, newest first
func (r *Repository) List(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM pricing_snapshots
		ORDER BY computed_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

// ListByProduct returns every snapshot of a product, newest first
func (r *Repository) ListByProduct(ctx context.Context, product string) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM pricing_snapshots
		WHERE product = ?
		ORDER BY computed_at DESC, rowid DESC
	`, product)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for %s: %w", product, err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

// SuggestedPrices returns the suggested prices recorded for a product
func (r *Repository) SuggestedPrices(ctx context.Context, product string) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT suggested_price FROM pricing_snapshots WHERE product = ?
	`, product)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggested prices for %s: %w", product, err)
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan suggested price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func collectSnapshots(rows *sql.Rows) ([]Snapshot, error) {
	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		var computedAt int64
		err := rows.Scan(
			&s.ID, &s.RunID, &s.Product, &s.TargetCountry, &s.BasePrice, &s.SuggestedPrice,
			&s.PriceRangeMin, &s.PriceRangeMax, &s.DemandMultiplier, &s.SeasonalMultiplier,
			&s.StockMultiplier, &computedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.ComputedAt = time.Unix(0, computedAt).UTC()
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return snapshots, nil
}
