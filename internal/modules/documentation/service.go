package exportdocs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/exportadvisor/internal/clients/blobstore"
	"github.com/aristath/exportadvisor/internal/domain"
)

// Archiver stores a copy of a generated document set outside the database.
// *blobstore.Writer satisfies it.
type Archiver interface {
	PutJSON(ctx context.Context, key string, v interface{}) error
}

// Service generates export documentation
type Service struct {
	repo     *Repository
	archiver Archiver
	clock    domain.Clock
	log      zerolog.Logger
}

// NewService creates a new documentation service.
// archiver may be nil, in which case documents are only stored in documents.db.
func NewService(repo *Repository, archiver Archiver, clock domain.Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = domain.SystemClock(nil)
	}
	return &Service{
		repo:     repo,
		archiver: archiver,
		clock:    clock,
		log:      log.With().Str("service", "documentation").Logger(),
	}
}

// Validate checks the fields every document set needs
func (req ExportRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(req.FarmerID) == "" {
		missing = append(missing, "farmer_id")
	}
	if strings.TrimSpace(req.Product) == "" {
		missing = append(missing, "product")
	}
	if strings.TrimSpace(req.TargetCountry) == "" {
		missing = append(missing, "target_country")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than 0", domain.ErrInvalidInput)
	}
	return nil
}

// Generate draws up the invoice, packing list and certificate of origin for
// req, stores them, and archives a copy when an archiver is configured.
// Archive failures are logged and leave ArchivePath empty.
func (s *Service) Generate(ctx context.Context, req ExportRequest) (Documentation, error) {
	if err := req.Validate(); err != nil {
		return Documentation{}, err
	}

	now := s.clock()
	doc := Build(req, uuid.New().String(), now.UnixMilli(), now.Format("2006-01-02"))
	doc.CreatedAt = now

	if err := s.repo.Create(ctx, doc); err != nil {
		return Documentation{}, err
	}

	s.log.Info().
		Str("id", doc.ID).
		Str("farmer_id", doc.FarmerID).
		Str("invoice", doc.Invoice.InvoiceNumber).
		Str("country", doc.TargetCountry).
		Msg("Export documentation generated")

	if s.archiver != nil {
		key := blobstore.DocumentKey(doc.FarmerID, doc.ID, now)
		if err := s.archiver.PutJSON(ctx, key, doc); err != nil {
			s.log.Warn().Err(err).Str("id", doc.ID).Msg("Failed to archive documentation")
			return doc, nil
		}
		if err := s.repo.SetArchivePath(ctx, doc.ID, key); err != nil {
			s.log.Warn().Err(err).Str("id", doc.ID).Msg("Failed to record archive path")
			return doc, nil
		}
		doc.ArchivePath = key
	}

	return doc, nil
}

// Get returns a stored document set.
// Returns domain.ErrNotFound if there is none with that id.
func (s *Service) Get(ctx context.Context, id string) (*Documentation, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("documentation %s: %w", id, domain.ErrNotFound)
	}
	return doc, nil
}

// ListByFarmer returns a farmer's document sets, newest first
func (s *Service) ListByFarmer(ctx context.Context, farmerID string) ([]Documentation, error) {
	if strings.TrimSpace(farmerID) == "" {
		return nil, fmt.Errorf("%w: farmer_id required", domain.ErrInvalidInput)
	}
	return s.repo.ListByFarmer(ctx, farmerID)
}

// Build assembles the document set for req. stamp numbers the invoice and
// certificate (INV-<stamp>, COO-<stamp>) and date is printed on every document.
func Build(req ExportRequest, id string, stamp int64, date string) Documentation {
	invoiceNumber := fmt.Sprintf("INV-%d", stamp)
	netWeight := formatKg(req.Quantity)
	grossWeight := formatKg(GrossWeight(req.Quantity))

	return Documentation{
		ID:             id,
		FarmerID:       req.FarmerID,
		TargetCountry:  req.TargetCountry,
		ShippingMethod: req.ShippingMethod,
		Status:         StatusGenerated,
		Invoice: Invoice{
			InvoiceNumber: invoiceNumber,
			Date:          date,
			Seller:        Party{Name: req.FarmerName, Address: req.FarmerAddress, Country: OriginCountry},
			Buyer:         Party{Name: req.BuyerName, Address: req.BuyerAddress, Country: req.TargetCountry},
			Items: []InvoiceItem{{
				Description: req.Product,
				Quantity:    req.Quantity,
				UnitPrice:   req.Price,
				TotalPrice:  req.TotalValue,
				Currency:    req.Currency,
			}},
			TotalAmount:   req.TotalValue,
			Currency:      req.Currency,
			PaymentTerms:  PaymentTerms,
			ShippingTerms: ShippingTerms,
		},
		PackingList: PackingList{
			InvoiceNumber: invoiceNumber,
			Date:          date,
			Packages: []Package{{
				PackageNumber: 1,
				Description:   req.Product,
				Quantity:      req.Quantity,
				NetWeight:     netWeight,
				GrossWeight:   grossWeight,
				Dimensions:    PackageSize,
			}},
			TotalPackages:    1,
			TotalNetWeight:   netWeight,
			TotalGrossWeight: grossWeight,
		},
		CertificateOfOrigin: CertificateOfOrigin{
			CertificateNumber:  fmt.Sprintf("COO-%d", stamp),
			Date:               date,
			Exporter:           req.FarmerName,
			Consignee:          req.BuyerName,
			CountryOfOrigin:    OriginCountry,
			DestinationCountry: req.TargetCountry,
			Description:        req.Product,
			Quantity:           req.Quantity,
		},
	}
}

// GrossWeight is the net weight plus 10% packaging, rounded half-up to whole kg
func GrossWeight(netKg float64) float64 {
	return decimal.NewFromFloat(netKg).Mul(decimal.NewFromFloat(grossWeightPad)).Round(0).InexactFloat64()
}

func formatKg(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64) + " kg"
}
