package snapshots

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/exportadvisor/internal/clients/blobstore"
	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/advisory"
)

// MarketSource lists the stored products and destinations to price
type MarketSource interface {
	ListMarketInsights(ctx context.Context) ([]domain.MarketSignal, error)
	ListCountryImports(ctx context.Context) ([]domain.CountrySignal, error)
}

// Pricer computes a pricing suggestion. *advisory.Engine satisfies it.
type Pricer interface {
	GetDynamicPricing(ctx context.Context, product, targetCountry string) (advisory.PricingSuggestion, error)
}

// Uploader archives a run as JSON lines. *blobstore.Writer satisfies it.
type Uploader interface {
	UploadJSONL(ctx context.Context, key string, records []interface{}) error
}

// Service takes and summarises pricing snapshots
type Service struct {
	repo     *Repository
	source   MarketSource
	pricer   Pricer
	uploader Uploader
	clock    domain.Clock
	log      zerolog.Logger
}

// NewService creates a new snapshot service. uploader may be nil.
func NewService(repo *Repository, source MarketSource, pricer Pricer, uploader Uploader, clock domain.Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = domain.SystemClock(nil)
	}
	return &Service{
		repo:     repo,
		source:   source,
		pricer:   pricer,
		uploader: uploader,
		clock:    clock,
		log:      log.With().Str("service", "snapshots").Logger(),
	}
}

// RunOnce prices every distinct stored product against every distinct stored
// country and appends the results as one run.
func (s *Service) RunOnce(ctx context.Context) (RunResult, error) {
	insights, err := s.source.ListMarketInsights(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to list market insights: %w", err)
	}
	countries, err := s.source.ListCountryImports(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to list country imports: %w", err)
	}

	products := distinct(len(insights), func(i int) string { return insights[i].Product })
	destinations := distinct(len(countries), func(i int) string { return countries[i].Country })

	now := s.clock()
	result := RunResult{RunID: uuid.New().String(), ComputedAt: now}

	snapshots := make([]Snapshot, 0, len(products)*len(destinations))
	for _, product := range products {
		for _, country := range destinations {
			suggestion, err := s.pricer.GetDynamicPricing(ctx, product, country)
			if err != nil {
				return RunResult{}, fmt.Errorf("failed to price %s for %s: %w", product, country, err)
			}
			snapshots = append(snapshots, Snapshot{
				ID:                 uuid.New().String(),
				RunID:              result.RunID,
				Product:            product,
				TargetCountry:      country,
				BasePrice:          suggestion.BasePrice,
				SuggestedPrice:     suggestion.SuggestedPrice,
				PriceRangeMin:      suggestion.PriceRangeMin,
				PriceRangeMax:      suggestion.PriceRangeMax,
				DemandMultiplier:   suggestion.DemandMultiplier,
				SeasonalMultiplier: suggestion.SeasonalMultiplier,
				StockMultiplier:    suggestion.StockMultiplier,
				ComputedAt:         now,
			})
		}
	}

	if err := s.repo.InsertBatch(ctx, snapshots); err != nil {
		return RunResult{}, err
	}
	result.Snapshots = len(snapshots)

	if s.uploader != nil && len(snapshots) > 0 {
		key := blobstore.SnapshotKey(result.RunID, now)
		records := make([]interface{}, len(snapshots))
		for i := range snapshots {
			records[i] = snapshots[i]
		}
		if err := s.uploader.UploadJSONL(ctx, key, records); err != nil {
			s.log.Warn().Err(err).Str("run_id", result.RunID).Msg("Failed to archive snapshot run")
		} else {
			result.ArchivePath = key
		}
	}

	s.log.Info().
		Str("run_id", result.RunID).
		Int("products", len(products)).
		Int("countries", len(destinations)).
		Int("snapshots", result.Snapshots).
		Msg("Pricing snapshot run completed")

	return result, nil
}

// List returns the most recent snapshots
func (s *Service) List(ctx context.Context, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, limit)
}

// ListByProduct returns the newest snapshots of one product.
// A limit of 0 or less returns all of them.
func (s *Service) ListByProduct(ctx context.Context, product string, limit int) ([]Snapshot, error) {
	list, err := s.repo.ListByProduct(ctx, strings.TrimSpace(product))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Summary returns statistics of the suggested prices recorded for product.
// A product without snapshots yields a zero-count summary.
func (s *Service) Summary(ctx context.Context, product string) (Summary, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return Summary{}, fmt.Errorf("%w: product required", domain.ErrInvalidInput)
	}

	prices, err := s.repo.SuggestedPrices(ctx, product)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Product: product, Count: len(prices)}
	if len(prices) == 0 {
		return summary, nil
	}

	summary.Mean = stat.Mean(prices, nil)
	summary.Min = floats.Min(prices)
	summary.Max = floats.Max(prices)
	if len(prices) > 1 {
		summary.StdDev = stat.StdDev(prices, nil)
	}
	return summary, nil
}

// distinct returns the non-empty values of get(0..n-1) in first-seen order
func distinct(n int, get func(int) string) []string {
	seen := make(map[string]bool, n)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v := get(i)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
