package farmers

import (
	"context"
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

	db, _ := testutil.NewTestDB(t, "farmers")
	repo := NewRepository(db.Conn(), zerolog.Nop())

	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	return repo
}

func TestCreateOrder_DefaultsAndRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, Order{
		FarmerID:       "farmer-1",
		Buyer:          "Global Foods LLC",
		Product:        "Basmati Rice",
		Quantity:       "10 MT",
		Value:          850000,
		Country:        "USA",
		OrderDate:      "2024-01-15",
		PaymentStatus:  "Paid",
		ShippingMethod: "Sea Freight",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, StatusProcessing, created.Status)

	got, err := repo.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Global Foods LLC", got.Buyer)
	assert.Equal(t, "10 MT", got.Quantity)
	assert.Equal(t, 850000.0, got.Value)
	assert.Equal(t, "Sea Freight", got.ShippingMethod)
	assert.Equal(t, StatusProcessing, got.Status)

	missing, err := repo.GetOrder(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListOrders_NewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, o := range []Order{
		{FarmerID: "farmer-1", Product: "Basmati Rice"},
		{FarmerID: "farmer-2", Product: "Turmeric"},
		{FarmerID: "farmer-1", Product: "Black Pepper"},
		{FarmerID: "farmer-1", Product: "Cardamom"},
	} {
		_, err := repo.CreateOrder(ctx, o)
		require.NoError(t, err)
	}

	mine, err := repo.ListOrdersByFarmer(ctx, "farmer-1", 0)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "Cardamom", mine[0].Product)
	assert.Equal(t, "Basmati Rice", mine[2].Product)

	limited, err := repo.ListOrdersByFarmer(ctx, "farmer-1", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "Black Pepper", limited[1].Product)

	all, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Turmeric", all[2].Product)

	none, err := repo.ListOrdersByFarmer(ctx, "farmer-3", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateOrder(ctx, Order{FarmerID: "farmer-1", Product: "Turmeric"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateOrderStatus(ctx, created.ID, StatusInTransit))

	got, err := repo.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInTransit, got.Status)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	err = repo.UpdateOrderStatus(ctx, "unknown", StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddMonthlyEarnings_SetsSavings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddMonthlyEarnings(ctx, MonthlyEarnings{FarmerID: "farmer-1", Month: "Jan", Year: 2024, TotalEarnings: 25000, ExportItems: []string{"Basmati Rice", "Wheat"}})
	require.NoError(t, err)
	_, err = repo.AddMonthlyEarnings(ctx, MonthlyEarnings{FarmerID: "farmer-1", Month: "Feb", Year: 2024, TotalEarnings: 32000})
	require.NoError(t, err)

	earnings, err := repo.ListEarnings(ctx, "farmer-1")
	require.NoError(t, err)
	require.Len(t, earnings, 2)
	assert.Equal(t, "Jan", earnings[0].Month, "insertion order")
	assert.Equal(t, []string{"Basmati Rice", "Wheat"}, earnings[0].ExportItems)

	profile, err := repo.GetProfile(ctx, "farmer-1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 32000.0, profile.Savings)
}

func TestProfile_Upserts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	none, err := repo.GetProfile(ctx, "farmer-1")
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, repo.SetExportItem(ctx, "farmer-1", "Black Pepper"))
	require.NoError(t, repo.UpdateSavings(ctx, "farmer-1", 1500))
	require.NoError(t, repo.SetExportItem(ctx, "farmer-1", "Cardamom"))

	p, err := repo.GetProfile(ctx, "farmer-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Cardamom", p.ExportItem)
	assert.Equal(t, 1500.0, p.Savings)
	assert.True(t, p.UpdatedAt.After(p.CreatedAt))
}
