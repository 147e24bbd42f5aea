package exportdocs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/exportadvisor/internal/domain"
	testutil "github.com/aristath/exportadvisor/internal/testing"
)

type recordingArchiver struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (a *recordingArchiver) PutJSON(ctx context.Context, key string, v interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, key)
	return nil
}

var fixedNow = time.Date(2024, time.March, 10, 8, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, archiver Archiver) *Service {
	t.Helper()

	db, _ := testutil.NewTestDB(t, "documents")
	repo := NewRepository(db.Conn(), zerolog.Nop())
	return NewService(repo, archiver, domain.FixedClock(fixedNow), zerolog.Nop())
}

func sampleRequest() ExportRequest {
	return ExportRequest{
		FarmerID:       "farmer-42",
		FarmerName:     "Ravi Kumar",
		FarmerAddress:  "Karnal, Haryana",
		BuyerName:      "Global Foods LLC",
		BuyerAddress:   "Dubai",
		Product:        "Basmati Rice",
		Quantity:       1000,
		Price:          85,
		TotalValue:     85000,
		Currency:       domain.CurrencyINR,
		ShippingMethod: "Sea Freight",
		TargetCountry:  "UAE",
	}
}

func TestGenerate(t *testing.T) {
	svc := newTestService(t, nil)

	doc, err := svc.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, StatusGenerated, doc.Status)
	assert.Equal(t, "INV-1710059400000", doc.Invoice.InvoiceNumber)
	assert.Equal(t, "2024-03-10", doc.Invoice.Date)
	assert.Equal(t, "India", doc.Invoice.Seller.Country)
	assert.Equal(t, "UAE", doc.Invoice.Buyer.Country)
	assert.Equal(t, "As per contract", doc.Invoice.PaymentTerms)
	assert.Equal(t, "FOB Indian Port", doc.Invoice.ShippingTerms)
	require.Len(t, doc.Invoice.Items, 1)
	assert.Equal(t, 85000.0, doc.Invoice.TotalAmount)

	assert.Equal(t, doc.Invoice.InvoiceNumber, doc.PackingList.InvoiceNumber)
	assert.Equal(t, 1, doc.PackingList.TotalPackages)
	assert.Equal(t, "1000 kg", doc.PackingList.TotalNetWeight)
	assert.Equal(t, "1100 kg", doc.PackingList.TotalGrossWeight)
	assert.Equal(t, "50cm x 30cm x 20cm", doc.PackingList.Packages[0].Dimensions)

	assert.Equal(t, "COO-1710059400000", doc.CertificateOfOrigin.CertificateNumber)
	assert.Equal(t, "India", doc.CertificateOfOrigin.CountryOfOrigin)
	assert.Equal(t, "UAE", doc.CertificateOfOrigin.DestinationCountry)
	assert.Equal(t, "Global Foods LLC", doc.CertificateOfOrigin.Consignee)
	assert.Empty(t, doc.ArchivePath)

	stored, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Invoice, stored.Invoice)
	assert.Equal(t, doc.PackingList, stored.PackingList)
	assert.Equal(t, "farmer-42", stored.FarmerID)
	assert.True(t, fixedNow.Equal(stored.CreatedAt))
}

func TestGenerate_Validation(t *testing.T) {
	svc := newTestService(t, nil)

	tests := []struct {
		name   string
		mutate func(*ExportRequest)
	}{
		{"missing farmer", func(r *ExportRequest) { r.FarmerID = "" }},
		{"missing product", func(r *ExportRequest) { r.Product = " " }},
		{"missing country", func(r *ExportRequest) { r.TargetCountry = "" }},
		{"zero quantity", func(r *ExportRequest) { r.Quantity = 0 }},
		{"negative quantity", func(r *ExportRequest) { r.Quantity = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			tt.mutate(&req)

			_, err := svc.Generate(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGenerate_Archives(t *testing.T) {
	archiver := &recordingArchiver{}
	svc := newTestService(t, archiver)

	doc, err := svc.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)

	expected := "documents/farmer-42/2024/03/" + doc.ID + ".json"
	assert.Equal(t, []string{expected}, archiver.keys)
	assert.Equal(t, expected, doc.ArchivePath)

	stored, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, expected, stored.ArchivePath)
}

func TestGenerate_ArchiveFailureKeepsDocument(t *testing.T) {
	svc := newTestService(t, &recordingArchiver{err: errors.New("bucket unreachable")})

	doc, err := svc.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Empty(t, doc.ArchivePath)

	stored, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusGenerated, stored.Status)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByFarmer(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Generate(ctx, sampleRequest())
		require.NoError(t, err)
	}
	other := sampleRequest()
	other.FarmerID = "farmer-7"
	_, err := svc.Generate(ctx, other)
	require.NoError(t, err)

	docs, err := svc.ListByFarmer(ctx, "farmer-42")
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	docs, err = svc.ListByFarmer(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = svc.ListByFarmer(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGrossWeight(t *testing.T) {
	assert.Equal(t, 110.0, GrossWeight(100))
	assert.Equal(t, 14.0, GrossWeight(12.5)) // 13.75
	assert.Equal(t, 6.0, GrossWeight(5))     // 5.5 rounds up
	assert.Equal(t, 1.0, GrossWeight(0.5))   // 0.55
	assert.Equal(t, "12.5 kg", formatKg(12.5))
}
