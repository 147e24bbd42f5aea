// Package farmers keeps each farmer's export orders, monthly earnings, savings
// and export item in farmers.db, and assembles the farmer dashboard from them
// and the market data store.
package farmers

import (
	"fmt"
	"strings"
	"time"

	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/marketdata"
)

// OrderStatus is the fulfilment state of an export order
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusInTransit  OrderStatus = "In Transit"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known order states
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is an export order placed by a buyer with a farmer.
// Dates are kept as YYYY-MM-DD strings.
type Order struct {
	ID               string      `json:"id"`
	FarmerID         string      `json:"farmer_id"`
	Buyer            string      `json:"buyer"`
	Product          string      `json:"product"`
	Quantity         string      `json:"quantity,omitempty"`
	Value            float64     `json:"value"`
	Status           OrderStatus `json:"status"`
	Country          string      `json:"country,omitempty"`
	FarmerName       string      `json:"farmer_name,omitempty"`
	FarmerLocation   string      `json:"farmer_location,omitempty"`
	FarmerEmail      string      `json:"farmer_email,omitempty"`
	OrderDate        string      `json:"order_date,omitempty"`
	DeliveryDate     string      `json:"delivery_date,omitempty"`
	ExpectedDelivery string      `json:"expected_delivery,omitempty"`
	PaymentStatus    string      `json:"payment_status,omitempty"`
	QualityGrade     string      `json:"quality_grade,omitempty"`
	Packaging        string      `json:"packaging,omitempty"`
	ShippingMethod   string      `json:"shipping_method,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Validate checks the fields every order needs
func (o Order) Validate() error {
	var missing []string
	if strings.TrimSpace(o.FarmerID) == "" {
		missing = append(missing, "farmer_id")
	}
	if strings.TrimSpace(o.Product) == "" {
		missing = append(missing, "product")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	if o.Value < 0 {
		return fmt.Errorf("%w: value must not be negative", domain.ErrInvalidInput)
	}
	if o.Status != "" && !o.Status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, o.Status)
	}
	return nil
}

// MonthlyEarnings is one month of a farmer's export income
type MonthlyEarnings struct {
	ID            string    `json:"id"`
	FarmerID      string    `json:"farmer_id"`
	Month         string    `json:"month"`
	Year          int       `json:"year"`
	TotalEarnings float64   `json:"total_earnings"`
	TotalExports  int       `json:"total_exports"`
	ExportItems   []string  `json:"export_items,omitempty"`
	Expenses      float64   `json:"expenses"`
	NetProfit     float64   `json:"net_profit"`
	CreatedAt     time.Time `json:"created_at"`
}

// Validate checks a month of earnings before it is stored
func (e MonthlyEarnings) Validate() error {
	if strings.TrimSpace(e.FarmerID) == "" || strings.TrimSpace(e.Month) == "" {
		return fmt.Errorf("%w: farmer_id, month required", domain.ErrInvalidInput)
	}
	if e.Year <= 0 {
		return fmt.Errorf("%w: year must be greater than 0", domain.ErrInvalidInput)
	}
	if e.TotalEarnings < 0 || e.Expenses < 0 || e.TotalExports < 0 {
		return fmt.Errorf("%w: earnings, expenses and exports must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// Profile is the per-farmer state the dashboard reads
type Profile struct {
	FarmerID   string    `json:"farmer_id"`
	ExportItem string    `json:"export_item"`
	Savings    float64   `json:"savings"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Contact identifies the farmer on sample orders
type Contact struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Email    string `json:"email"`
}

// EarningsTotals sums a farmer's monthly earnings
type EarningsTotals struct {
	Months        int     `json:"months"`
	TotalEarnings float64 `json:"total_earnings"`
	TotalExports  int     `json:"total_exports"`
	Expenses      float64 `json:"expenses"`
	NetProfit     float64 `json:"net_profit"`
}

// Dashboard is everything the farmer dashboard renders
type Dashboard struct {
	FarmerID        string                            `json:"farmer_id"`
	ExportItem      string                            `json:"export_item"`
	Savings         float64                           `json:"savings"`
	RecentOrders    []Order                           `json:"recent_orders"`
	Earnings        []MonthlyEarnings                 `json:"earnings"`
	Totals          EarningsTotals                    `json:"totals"`
	Insights        []domain.MarketSignal             `json:"insights"`
	CropPrices      []marketdata.CropPrice            `json:"crop_prices"`
	Recommendations []marketdata.ExportRecommendation `json:"recommendations"`
}

// SeedResult reports how many sample rows were added for a farmer
type SeedResult struct {
	Orders   int  `json:"orders"`
	Earnings int  `json:"earnings"`
	Skipped  bool `json:"skipped"`
}
