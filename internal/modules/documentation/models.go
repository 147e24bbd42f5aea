// Package documentation generates and stores export paperwork: commercial
// invoice, packing list and certificate of origin.
package exportdocs

import (
	"time"

	"github.com/aristath/exportadvisor/internal/domain"
)

// StatusGenerated is the status of a freshly generated document set
const StatusGenerated = "generated"

// Fixed export terms printed on every document set
const (
	OriginCountry  = "India"
	PaymentTerms   = "As per contract"
	ShippingTerms  = "FOB Indian Port"
	PackageSize    = "50cm x 30cm x 20cm"
	grossWeightPad = 1.1
)

// ExportRequest carries everything needed to draw up the paperwork for one shipment.
// Quantity is in kilograms.
type ExportRequest struct {
	FarmerID       string          `json:"farmer_id"`
	FarmerName     string          `json:"farmer_name"`
	FarmerAddress  string          `json:"farmer_address"`
	BuyerName      string          `json:"buyer_name"`
	BuyerAddress   string          `json:"buyer_address"`
	Product        string          `json:"product"`
	Quantity       float64         `json:"quantity"`
	Price          float64         `json:"price"`
	TotalValue     float64         `json:"total_value"`
	Currency       domain.Currency `json:"currency"`
	ShippingMethod string          `json:"shipping_method"`
	TargetCountry  string          `json:"target_country"`
}

// Party is a seller or buyer on the invoice
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Country string `json:"country"`
}

// InvoiceItem is one invoice line
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    float64         `json:"quantity"`
	UnitPrice   float64         `json:"unit_price"`
	TotalPrice  float64         `json:"total_price"`
	Currency    domain.Currency `json:"currency"`
}

// Invoice is the commercial invoice
type Invoice struct {
	InvoiceNumber string          `json:"invoice_number"`
	Date          string          `json:"date"`
	Seller        Party           `json:"seller"`
	Buyer         Party           `json:"buyer"`
	Items         []InvoiceItem   `json:"items"`
	TotalAmount   float64         `json:"total_amount"`
	Currency      domain.Currency `json:"currency"`
	PaymentTerms  string          `json:"payment_terms"`
	ShippingTerms string          `json:"shipping_terms"`
}

// Package is one packing list entry
type Package struct {
	PackageNumber int     `json:"package_number"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	NetWeight     string  `json:"net_weight"`
	GrossWeight   string  `json:"gross_weight"`
	Dimensions    string  `json:"dimensions"`
}

// PackingList lists the packages of a shipment
type PackingList struct {
	InvoiceNumber    string    `json:"invoice_number"`
	Date             string    `json:"date"`
	Packages         []Package `json:"packages"`
	TotalPackages    int       `json:"total_packages"`
	TotalNetWeight   string    `json:"total_net_weight"`
	TotalGrossWeight string    `json:"total_gross_weight"`
}

// CertificateOfOrigin certifies the goods were produced in India
type CertificateOfOrigin struct {
	CertificateNumber  string  `json:"certificate_number"`
	Date               string  `json:"date"`
	Exporter           string  `json:"exporter"`
	Consignee          string  `json:"consignee"`
	CountryOfOrigin    string  `json:"country_of_origin"`
	DestinationCountry string  `json:"destination_country"`
	Description        string  `json:"description"`
	Quantity           float64 `json:"quantity"`
}

// Documentation is a stored document set
type Documentation struct {
	ID                  string              `json:"id"`
	FarmerID            string              `json:"farmer_id"`
	TargetCountry       string              `json:"target_country"`
	ShippingMethod      string              `json:"shipping_method,omitempty"`
	Status              string              `json:"status"`
	Invoice             Invoice             `json:"invoice"`
	PackingList         PackingList         `json:"packing_list"`
	CertificateOfOrigin CertificateOfOrigin `json:"certificate_of_origin"`
	ArchivePath         string              `json:"archive_path,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
}
