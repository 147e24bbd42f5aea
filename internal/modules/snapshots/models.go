// Package snapshots records periodic pricing suggestions for every stored
// product and destination pair and summarises them for dashboards.
package snapshots

import "time"

// Snapshot is one persisted pricing suggestion
type Snapshot struct {
	ID                 string    `json:"id"`
	RunID              string    `json:"run_id"`
	Product            string    `json:"product"`
	TargetCountry      string    `json:"target_country"`
	BasePrice          float64   `json:"base_price"`
	SuggestedPrice     float64   `json:"suggested_price"`
	PriceRangeMin      float64   `json:"price_range_min"`
	PriceRangeMax      float64   `json:"price_range_max"`
	DemandMultiplier   float64   `json:"demand_multiplier"`
	SeasonalMultiplier float64   `json:"seasonal_multiplier"`
	StockMultiplier    float64   `json:"stock_multiplier"`
	ComputedAt         time.Time `json:"computed_at"`
}

// Summary holds descriptive statistics of suggested prices for a product
type Summary struct {
	Product string  `json:"product"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// RunResult describes one snapshot run
type RunResult struct {
	RunID       string    `json:"run_id"`
	Snapshots   int       `json:"snapshots"`
	ArchivePath string    `json:"archive_path,omitempty"`
	ComputedAt  time.Time `json:"computed_at"`
}
