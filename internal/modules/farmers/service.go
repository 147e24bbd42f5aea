package farmers

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/marketdata"
)

// RecentOrderCount is how many orders the dashboard shows
const RecentOrderCount = 5

// MarketCatalog is the part of the market data store the dashboard reads.
// *marketdata.Repository satisfies it.
type MarketCatalog interface {
	ListMarketInsights(ctx context.Context) ([]domain.MarketSignal, error)
	ListCropPrices(ctx context.Context) ([]marketdata.CropPrice, error)
	ListRecommendationsByProduct(ctx context.Context, product string) ([]marketdata.ExportRecommendation, error)
}

// Service manages farmer orders, earnings and savings
type Service struct {
	repo    *Repository
	catalog MarketCatalog
	log     zerolog.Logger
}

// NewService creates a new farmers service
func NewService(repo *Repository, catalog MarketCatalog, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		log:     log.With().Str("service", "farmers").Logger(),
	}
}

// CreateOrder validates and stores an export order
func (s *Service) CreateOrder(ctx context.Context, o Order) (Order, error) {
	o.FarmerID = strings.TrimSpace(o.FarmerID)
	o.Product = strings.TrimSpace(o.Product)
	o.Status = OrderStatus(strings.TrimSpace(string(o.Status)))
	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	return s.repo.CreateOrder(ctx, o)
}

// Orders returns a farmer's orders, newest first
func (s *Service) Orders(ctx context.Context, farmerID string) ([]Order, error) {
	if err := requireFarmer(farmerID); err != nil {
		return nil, err
	}
	return s.repo.ListOrdersByFarmer(ctx, farmerID, 0)
}

// AllOrders returns every farmer's orders, newest first
func (s *Service) AllOrders(ctx context.Context) ([]Order, error) {
	return s.repo.ListOrders(ctx)
}

// UpdateOrderStatus moves an order to status and returns the updated order
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error) {
	status = OrderStatus(strings.TrimSpace(string(status)))
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidInput, status)
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.log.Info().Str("id", id).Str("status", string(status)).Msg("Order status updated")
	return s.repo.GetOrder(ctx, id)
}

// AddEarnings stores a month of earnings. The farmer's savings become its total.
func (s *Service) AddEarnings(ctx context.Context, e MonthlyEarnings) (MonthlyEarnings, error) {
	e.FarmerID = strings.TrimSpace(e.FarmerID)
	e.Month = strings.TrimSpace(e.Month)
	if err := e.Validate(); err != nil {
		return MonthlyEarnings{}, err
	}
	return s.repo.AddMonthlyEarnings(ctx, e)
}

// Earnings returns a farmer's monthly earnings in the order they were added
func (s *Service) Earnings(ctx context.Context, farmerID string) ([]MonthlyEarnings, error) {
	if err := requireFarmer(farmerID); err != nil {
		return nil, err
	}
	return s.repo.ListEarnings(ctx, farmerID)
}

// UpdateSavings overwrites a farmer's savings
func (s *Service) UpdateSavings(ctx context.Context, farmerID string, amount float64) error {
	if err := requireFarmer(farmerID); err != nil {
		return err
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: savings must be a non-negative number", domain.ErrInvalidInput)
	}
	return s.repo.UpdateSavings(ctx, farmerID, amount)
}

// Profile returns a farmer's profile. A farmer with nothing stored yet gets an
// empty profile.
func (s *Service) Profile(ctx context.Context, farmerID string) (Profile, error) {
	if err := requireFarmer(farmerID); err != nil {
		return Profile{}, err
	}
	p, err := s.repo.GetProfile(ctx, farmerID)
	if err != nil {
		return Profile{}, err
	}
	if p == nil {
		return Profile{FarmerID: farmerID}, nil
	}
	return *p, nil
}

// SetExportItem records the product a farmer exports
func (s *Service) SetExportItem(ctx context.Context, farmerID, item string) error {
	if err := requireFarmer(farmerID); err != nil {
		return err
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return fmt.Errorf("%w: export_item required", domain.ErrInvalidInput)
	}
	return s.repo.SetExportItem(ctx, farmerID, item)
}

// Recommendations returns the active buyer leads for the farmer's export item,
// newest first. A farmer without an export item gets none.
func (s *Service) Recommendations(ctx context.Context, farmerID string) ([]marketdata.ExportRecommendation, error) {
	p, err := s.Profile(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	if p.ExportItem == "" {
		return []marketdata.ExportRecommendation{}, nil
	}
	return s.catalog.ListRecommendationsByProduct(ctx, p.ExportItem)
}

// Dashboard assembles a farmer's dashboard
func (s *Service) Dashboard(ctx context.Context, farmerID string) (Dashboard, error) {
	p, err := s.Profile(ctx, farmerID)
	if err != nil {
		return Dashboard{}, err
	}

	orders, err := s.repo.ListOrdersByFarmer(ctx, farmerID, RecentOrderCount)
	if err != nil {
		return Dashboard{}, err
	}
	earnings, err := s.repo.ListEarnings(ctx, farmerID)
	if err != nil {
		return Dashboard{}, err
	}
	insights, err := s.catalog.ListMarketInsights(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load market insights: %w", err)
	}
	prices, err := s.catalog.ListCropPrices(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load crop prices: %w", err)
	}
	recs, err := s.Recommendations(ctx, farmerID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load recommendations: %w", err)
	}

	return Dashboard{
		FarmerID:        p.FarmerID,
		ExportItem:      p.ExportItem,
		Savings:         p.Savings,
		RecentOrders:    orders,
		Earnings:        earnings,
		Totals:          Totals(earnings),
		Insights:        insights,
		CropPrices:      prices,
		Recommendations: recs,
	}, nil
}

// Totals sums months of earnings
func Totals(earnings []MonthlyEarnings) EarningsTotals {
	var total, expenses, profit decimal.Decimal
	exports := 0
	for _, e := range earnings {
		total = total.Add(decimal.NewFromFloat(e.TotalEarnings))
		expenses = expenses.Add(decimal.NewFromFloat(e.Expenses))
		profit = profit.Add(decimal.NewFromFloat(e.NetProfit))
		exports += e.TotalExports
	}
	return EarningsTotals{
		Months:        len(earnings),
		TotalEarnings: total.InexactFloat64(),
		TotalExports:  exports,
		Expenses:      expenses.InexactFloat64(),
		NetProfit:     profit.InexactFloat64(),
	}
}

// SeedSampleData gives a farmer the demo orders and earnings. Orders are only
// added when the farmer has none, and likewise for earnings.
func (s *Service) SeedSampleData(ctx context.Context, farmerID string, contact Contact) (SeedResult, error) {
	var result SeedResult
	if err := requireFarmer(farmerID); err != nil {
		return result, err
	}

	orderCount, err := s.repo.CountOrders(ctx, farmerID)
	if err != nil {
		return result, err
	}
	if orderCount == 0 {
		for _, o := range SampleOrders() {
			o.FarmerID = farmerID
			o.FarmerName = contact.Name
			o.FarmerLocation = contact.Location
			o.FarmerEmail = contact.Email
			if _, err := s.repo.CreateOrder(ctx, o); err != nil {
				return result, fmt.Errorf("failed to seed order %s: %w", o.Buyer, err)
			}
			result.Orders++
		}
	}

	earningsCount, err := s.repo.CountEarnings(ctx, farmerID)
	if err != nil {
		return result, err
	}
	if earningsCount == 0 {
		for _, e := range SampleEarnings() {
			e.FarmerID = farmerID
			if _, err := s.repo.AddMonthlyEarnings(ctx, e); err != nil {
				return result, fmt.Errorf("failed to seed earnings %s %d: %w", e.Month, e.Year, err)
			}
			result.Earnings++
		}
	}

	result.Skipped = result.Orders == 0 && result.Earnings == 0

	s.log.Info().
		Str("farmer_id", farmerID).
		Int("orders", result.Orders).
		Int("earnings", result.Earnings).
		Bool("skipped", result.Skipped).
		Msg("Farmer sample data seeded")
	return result, nil
}

func requireFarmer(farmerID string) error {
	if strings.TrimSpace(farmerID) == "" {
		return fmt.Errorf("%w: farmer_id required", domain.ErrInvalidInput)
	}
	return nil
}
