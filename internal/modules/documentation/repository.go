package exportdocs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles documents.db reads and writes
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new documentation repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "documentation").Logger(),
	}
}

// storedDocuments is the JSON data column
type storedDocuments struct {
	ShippingMethod      string              `json:"shipping_method,omitempty"`
	Invoice             Invoice             `json:"invoice"`
	PackingList         PackingList         `json:"packing_list"`
	CertificateOfOrigin CertificateOfOrigin `json:"certificate_of_origin"`
}

// Create inserts a document set
func (r *Repository) Create(ctx context.Context, doc Documentation) error {
	data, err := json.Marshal(storedDocuments{
		ShippingMethod:      doc.ShippingMethod,
		Invoice:             doc.Invoice,
		PackingList:         doc.PackingList,
		CertificateOfOrigin: doc.CertificateOfOrigin,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal documentation: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO export_documents (id, farmer_id, invoice_number, target_country, status, data, archive_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.FarmerID, doc.Invoice.InvoiceNumber, doc.TargetCountry, doc.Status, string(data), doc.ArchivePath, doc.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert documentation: %w", err)
	}
	return nil
}

// SetArchivePath records where a document set was archived
func (r *Repository) SetArchivePath(ctx context.Context, id, path string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE export_documents SET archive_path = ? WHERE id = ?", path, id)
	if err != nil {
		return fmt.Errorf("failed to update archive path: %w", err)
	}
	return nil
}

// GetByID returns a document set, or nil if it does not exist
func (r *Repository) GetByID(ctx context.Context, id string) (*Documentation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, farmer_id, target_country, status, data, archive_path, created_at
		FROM export_documents
		WHERE id = ?
	`, id)

	doc, err := scanDocumentation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get documentation %s: %w", id, err)
	}
	return doc, nil
}

// ListByFarmer returns a farmer's document sets, newest first
func (r *Repository) ListByFarmer(ctx context.Context, farmerID string) ([]Documentation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, farmer_id, target_country, status, data, archive_path, created_at
		FROM export_documents
		WHERE farmer_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documentation: %w", err)
	}
	defer rows.Close()

	docs := make([]Documentation, 0)
	for rows.Next() {
		doc, err := scanDocumentation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan documentation: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documentation: %w", err)
	}
	return docs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocumentation(row scanner) (*Documentation, error) {
	var (
		doc       Documentation
		data      string
		createdAt int64
	)
	if err := row.Scan(&doc.ID, &doc.FarmerID, &doc.TargetCountry, &doc.Status, &data, &doc.ArchivePath, &createdAt); err != nil {
		return nil, err
	}

	var stored storedDocuments
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal documentation %s: %w", doc.ID, err)
	}

	doc.ShippingMethod = stored.ShippingMethod
	doc.Invoice = stored.Invoice
	doc.PackingList = stored.PackingList
	doc.CertificateOfOrigin = stored.CertificateOfOrigin
	doc.CreatedAt = time.Unix(0, createdAt)
	return &doc, nil
}
