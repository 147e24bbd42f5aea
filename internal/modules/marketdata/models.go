package marketdata

import (
	"time"

	"github.com/aristath/exportadvisor/internal/domain"
)

// CropPrice is a quoted market price for a crop. Only active quotes are
// returned by FindActiveCropPrice.
type CropPrice struct {
	ID            string    `json:"id"`
	Crop          string    `json:"crop"`
	CurrentPrice  float64   `json:"current_price"`
	PreviousPrice float64   `json:"previous_price"`
	PriceUnit     string    `json:"price_unit"`
	Trend         string    `json:"trend,omitempty"`
	Market        string    `json:"market,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExportRecommendation is a buyer lead for one product
type ExportRecommendation struct {
	ID                string    `json:"id"`
	Product           string    `json:"product"`
	Buyer             string    `json:"buyer"`
	Match             string    `json:"match,omitempty"`
	Location          string    `json:"location,omitempty"`
	ContactEmail      string    `json:"contact_email,omitempty"`
	Requirements      string    `json:"requirements,omitempty"`
	PriceRange        string    `json:"price_range,omitempty"`
	EstimatedDelivery string    `json:"estimated_delivery,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

// PriceBand is a min/max price in a stated currency unit
type PriceBand struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// ProductDemand is the global demand profile of one product
type ProductDemand struct {
	ID                  string       `json:"id"`
	Product             string       `json:"product"`
	GlobalDemand        domain.Level `json:"global_demand"`
	Countries           []string     `json:"countries,omitempty"`
	SeasonalTrend       string       `json:"seasonal_trend,omitempty"`
	PriceRange          PriceBand    `json:"price_range"`
	QualityRequirements []string     `json:"quality_requirements,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}
