package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/exportadvisor/internal/domain"
	testutil "github.com/aristath/exportadvisor/internal/testing"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, _ := testutil.NewTestDB(t, "market")
	repo := NewRepository(db.Conn(), zerolog.Nop())

	// Step the clock so insertion order is visible in created_at
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	return repo
}

func TestFindMarketSignal_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	signal, err := repo.FindMarketSignal(context.Background(), "Saffron")
	require.NoError(t, err)
	assert.Nil(t, signal)
}

func TestFindMarketSignal_ReturnsStoredFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.AddMarketInsight(ctx, SampleMarketInsights()[0])
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	signal, err := repo.FindMarketSignal(ctx, "Basmati Rice")
	require.NoError(t, err)
	require.NotNil(t, signal)

	assert.Equal(t, id, signal.ID)
	assert.Equal(t, domain.LevelHigh, signal.DemandLevel)
	assert.Equal(t, 65.0, signal.BasePrice)
	assert.Equal(t, "₹/kg", signal.PriceUnit)
	assert.Equal(t, "+12%", signal.Trend)
	assert.Equal(t, []string{"UAE", "Saudi Arabia", "Germany", "USA"}, signal.TopMarkets)
	assert.False(t, signal.CreatedAt.IsZero())
}

func TestFindMarketSignal_NewestWins(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddMarketInsight(ctx, domain.MarketSignal{Product: "Turmeric", DemandLevel: domain.LevelMedium, BasePrice: 150})
	require.NoError(t, err)
	newest, err := repo.AddMarketInsight(ctx, domain.MarketSignal{Product: "Turmeric", DemandLevel: domain.LevelVeryHigh, BasePrice: 180})
	require.NoError(t, err)

	signal, err := repo.FindMarketSignal(ctx, "Turmeric")
	require.NoError(t, err)
	require.NotNil(t, signal)
	assert.Equal(t, newest, signal.ID)
	assert.Equal(t, domain.LevelVeryHigh, signal.DemandLevel)
	assert.Equal(t, 180.0, signal.BasePrice)
}

func TestFindMarketSignal_ExactMatch(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddMarketInsight(ctx, domain.MarketSignal{Product: "Basmati Rice", DemandLevel: domain.LevelHigh, BasePrice: 65})
	require.NoError(t, err)

	signal, err := repo.FindMarketSignal(ctx, "basmati rice")
	require.NoError(t, err)
	assert.Nil(t, signal)

	signal, err = repo.FindMarketSignal(ctx, "Basmati")
	require.NoError(t, err)
	assert.Nil(t, signal)
}

func TestFindMarketSignal_ClosedDatabase(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "market")
	repo := NewRepository(db.Conn(), zerolog.Nop())
	cleanup()

	signal, err := repo.FindMarketSignal(context.Background(), "Turmeric")
	assert.Error(t, err)
	assert.Nil(t, signal)
}

func TestFindMarketSignal_CancelledContext(t *testing.T) {
	repo := newTestRepository(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindMarketSignal(ctx, "Turmeric")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAddMarketInsight_RequiresCrop(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.AddMarketInsight(context.Background(), domain.MarketSignal{Product: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMarketInsights(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	insights, err := repo.ListMarketInsights(ctx)
	require.NoError(t, err)
	assert.Empty(t, insights)
	assert.NotNil(t, insights)

	for _, s := range SampleMarketInsights() {
		_, err := repo.AddMarketInsight(ctx, s)
		require.NoError(t, err)
	}

	insights, err = repo.ListMarketInsights(ctx)
	require.NoError(t, err)
	require.Len(t, insights, 4)
	assert.Equal(t, "Cardamom", insights[0].Product)
	assert.Equal(t, "Basmati Rice", insights[3].Product)

	byCrop, err := repo.ListMarketInsightsByCrop(ctx, "Black Pepper")
	require.NoError(t, err)
	require.Len(t, byCrop, 1)
	assert.Equal(t, 450.0, byCrop[0].BasePrice)
}

func TestFindCountrySignal(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	signal, err := repo.FindCountrySignal(ctx, "UAE")
	require.NoError(t, err)
	assert.Nil(t, signal)

	_, err = repo.AddCountryImport(ctx, SampleCountryImports()[1])
	require.NoError(t, err)

	signal, err = repo.FindCountrySignal(ctx, "UAE")
	require.NoError(t, err)
	require.NotNil(t, signal)
	assert.Equal(t, domain.LevelVeryHigh, signal.StockRating)
	assert.Equal(t, 1800000000.0, signal.TotalImportValue)
	assert.Equal(t, 12.3, signal.GrowthRate)
	require.Len(t, signal.TopProducts, 3)
	assert.Equal(t, "Fresh Vegetables", signal.TopProducts[0].Product)
}

func TestListCountryImports_OrderedByCountry(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, s := range SampleCountryImports() {
		_, err := repo.AddCountryImport(ctx, s)
		require.NoError(t, err)
	}

	countries, err := repo.ListCountryImports(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 4)

	names := make([]string, 0, len(countries))
	for _, c := range countries {
		names = append(names, c.Country)
	}
	assert.Equal(t, []string{"Germany", "Japan", "UAE", "USA"}, names)

	japan, err := repo.ListCountryImportsByCountry(ctx, "Japan")
	require.NoError(t, err)
	require.Len(t, japan, 1)
	assert.Equal(t, 4.8, japan[0].GrowthRate)
}

func TestUpdateStockRating(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.AddCountryImport(ctx, domain.CountrySignal{Country: "Germany", StockRating: domain.LevelMedium})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStockRating(ctx, id, domain.LevelLow))

	signal, err := repo.FindCountrySignal(ctx, "Germany")
	require.NoError(t, err)
	require.NotNil(t, signal)
	assert.Equal(t, domain.LevelLow, signal.StockRating)
	assert.True(t, signal.UpdatedAt.After(signal.CreatedAt))
}

func TestUpdateStockRating_UnknownID(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateStockRating(context.Background(), "missing", domain.LevelHigh)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeedSampleData_Idempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.SeedSampleData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Insights)
	assert.Equal(t, 4, first.Countries)
	assert.False(t, first.Skipped)

	second, err := repo.SeedSampleData(ctx)
	require.NoError(t, err)
	assert.True(t, second.Skipped)

	insights, countries, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, insights)
	assert.Equal(t, 4, countries)
}

func TestSeedSampleData_FillsOnlyEmptyTables(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddMarketInsight(ctx, domain.MarketSignal{Product: "Saffron", DemandLevel: domain.LevelHigh, BasePrice: 900})
	require.NoError(t, err)

	result, err := repo.SeedSampleData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Insights)
	assert.Equal(t, 4, result.Countries)
}
