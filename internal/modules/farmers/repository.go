package farmers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/database"
	"github.com/aristath/exportadvisor/internal/domain"
)

// Repository handles farmers.db reads and writes
type Repository struct {
	db  *sql.DB
	now func() time.Time
	log zerolog.Logger
}

// NewRepository creates a new farmers repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		now: time.Now,
		log: log.With().Str("repository", "farmers").Logger(),
	}
}

// orderData holds the order fields that live in the JSON data column
type orderData struct {
	Buyer            string `json:"buyer"`
	Quantity         string `json:"quantity,omitempty"`
	FarmerName       string `json:"farmer_name,omitempty"`
	FarmerLocation   string `json:"farmer_location,omitempty"`
	FarmerEmail      string `json:"farmer_email,omitempty"`
	OrderDate        string `json:"order_date,omitempty"`
	DeliveryDate     string `json:"delivery_date,omitempty"`
	ExpectedDelivery string `json:"expected_delivery,omitempty"`
	PaymentStatus    string `json:"payment_status,omitempty"`
	QualityGrade     string `json:"quality_grade,omitempty"`
	Packaging        string `json:"packaging,omitempty"`
	ShippingMethod   string `json:"shipping_method,omitempty"`
}

type earningsData struct {
	ExportItems []string `json:"export_items,omitempty"`
}

const orderColumns = "id, farmer_id, product, country, status, value, data, created_at, updated_at"
const earningsColumns = "id, farmer_id, month, year, total_earnings, total_exports, expenses, net_profit, data, created_at"

type scanner interface {
	Scan(dest ...interface{}) error
}

// CreateOrder stores o and returns it with its id, status and timestamps set.
// An empty status is stored as Processing.
func (r *Repository) CreateOrder(ctx context.Context, o Order) (Order, error) {
	if o.Status == "" {
		o.Status = StatusProcessing
	}

	payload, err := json.Marshal(orderData{
		Buyer:            o.Buyer,
		Quantity:         o.Quantity,
		FarmerName:       o.FarmerName,
		FarmerLocation:   o.FarmerLocation,
		FarmerEmail:      o.FarmerEmail,
		OrderDate:        o.OrderDate,
		DeliveryDate:     o.DeliveryDate,
		ExpectedDelivery: o.ExpectedDelivery,
		PaymentStatus:    o.PaymentStatus,
		QualityGrade:     o.QualityGrade,
		Packaging:        o.Packaging,
		ShippingMethod:   o.ShippingMethod,
	})
	if err != nil {
		return Order{}, fmt.Errorf("failed to marshal order: %w", err)
	}

	now := r.now()
	o.ID = uuid.New().String()
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO export_orders (id, farmer_id, product, country, status, value, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.FarmerID, o.Product, o.Country, string(o.Status), o.Value, string(payload), now.UnixNano(), now.UnixNano())
	if err != nil {
		return Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	r.log.Debug().Str("id", o.ID).Str("farmer_id", o.FarmerID).Str("product", o.Product).Msg("Export order created")
	return o, nil
}

// GetOrder returns the order with id, or nil if there is none
func (r *Repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM export_orders WHERE id = ?", id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return o, nil
}

// ListOrdersByFarmer returns a farmer's orders, newest first.
// A limit of 0 or less returns every order.
func (r *Repository) ListOrdersByFarmer(ctx context.Context, farmerID string, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM export_orders
		WHERE farmer_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, farmerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders for %s: %w", farmerID, err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListOrders returns every farmer's orders, newest first
func (r *Repository) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM export_orders
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// UpdateOrderStatus sets the status of an order.
// Returns domain.ErrNotFound if there is no order with that id.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE export_orders SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), r.now().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CountOrders returns how many orders a farmer has
func (r *Repository) CountOrders(ctx context.Context, farmerID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM export_orders WHERE farmer_id = ?", farmerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

// AddMonthlyEarnings stores a month of earnings and sets the farmer's savings
// to its total in the same transaction.
func (r *Repository) AddMonthlyEarnings(ctx context.Context, e MonthlyEarnings) (MonthlyEarnings, error) {
	payload, err := json.Marshal(earningsData{ExportItems: e.ExportItems})
	if err != nil {
		return MonthlyEarnings{}, fmt.Errorf("failed to marshal earnings: %w", err)
	}

	now := r.now()
	e.ID = uuid.New().String()
	e.CreatedAt = now

	err = database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO monthly_earnings (id, farmer_id, month, year, total_earnings, total_exports, expenses, net_profit, data, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.FarmerID, e.Month, e.Year, e.TotalEarnings, e.TotalExports, e.Expenses, e.NetProfit, string(payload), now.UnixNano()); err != nil {
			return fmt.Errorf("failed to insert earnings: %w", err)
		}
		return upsertSavings(ctx, tx, e.FarmerID, e.TotalEarnings, now)
	})
	if err != nil {
		return MonthlyEarnings{}, err
	}

	r.log.Debug().Str("farmer_id", e.FarmerID).Str("month", e.Month).Int("year", e.Year).Msg("Monthly earnings added")
	return e, nil
}

// ListEarnings returns a farmer's monthly earnings in the order they were added
func (r *Repository) ListEarnings(ctx context.Context, farmerID string) ([]MonthlyEarnings, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+earningsColumns+`
		FROM monthly_earnings
		WHERE farmer_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query earnings for %s: %w", farmerID, err)
	}
	defer rows.Close()

	earnings := make([]MonthlyEarnings, 0)
	for rows.Next() {
		var (
			e         MonthlyEarnings
			data      string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.FarmerID, &e.Month, &e.Year, &e.TotalEarnings, &e.TotalExports, &e.Expenses, &e.NetProfit, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan earnings: %w", err)
		}

		var extra earningsData
		if err := json.Unmarshal([]byte(data), &extra); err != nil {
			return nil, fmt.Errorf("failed to unmarshal earnings %s: %w", e.ID, err)
		}
		e.ExportItems = extra.ExportItems
		e.CreatedAt = time.Unix(0, createdAt)
		earnings = append(earnings, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate earnings: %w", err)
	}
	return earnings, nil
}

// GetProfile returns a farmer's profile, or nil if nothing was stored for them yet
func (r *Repository) GetProfile(ctx context.Context, farmerID string) (*Profile, error) {
	var (
		p                    Profile
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT farmer_id, export_item, savings, created_at, updated_at
		FROM farmer_profiles
		WHERE farmer_id = ?
	`, farmerID).Scan(&p.FarmerID, &p.ExportItem, &p.Savings, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", farmerID, err)
	}
	p.CreatedAt = time.Unix(0, createdAt)
	p.UpdatedAt = time.Unix(0, updatedAt)
	return &p, nil
}

// SetExportItem records the product a farmer exports, creating the profile if needed
func (r *Repository) SetExportItem(ctx context.Context, farmerID, item string) error {
	now := r.now().UnixNano()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO farmer_profiles (farmer_id, export_item, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(farmer_id) DO UPDATE SET export_item = excluded.export_item, updated_at = excluded.updated_at
	`, farmerID, item, now, now)
	if err != nil {
		return fmt.Errorf("failed to set export item: %w", err)
	}
	return nil
}

// UpdateSavings overwrites a farmer's savings, creating the profile if needed
func (r *Repository) UpdateSavings(ctx context.Context, farmerID string, amount float64) error {
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		return upsertSavings(ctx, tx, farmerID, amount, r.now())
	})
}

// CountEarnings returns how many months of earnings a farmer has
func (r *Repository) CountEarnings(ctx context.Context, farmerID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM monthly_earnings WHERE farmer_id = ?", farmerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count earnings: %w", err)
	}
	return n, nil
}

func upsertSavings(ctx context.Context, tx *sql.Tx, farmerID string, amount float64, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO farmer_profiles (farmer_id, savings, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(farmer_id) DO UPDATE SET savings = excluded.savings, updated_at = excluded.updated_at
	`, farmerID, amount, now.UnixNano(), now.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to update savings: %w", err)
	}
	return nil
}

func scanOrder(row scanner) (*Order, error) {
	var (
		o                    Order
		status, data         string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&o.ID, &o.FarmerID, &o.Product, &o.Country, &status, &o.Value, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var extra orderData
	if err := json.Unmarshal([]byte(data), &extra); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order %s: %w", o.ID, err)
	}

	o.Status = OrderStatus(status)
	o.Buyer = extra.Buyer
	o.Quantity = extra.Quantity
	o.FarmerName = extra.FarmerName
	o.FarmerLocation = extra.FarmerLocation
	o.FarmerEmail = extra.FarmerEmail
	o.OrderDate = extra.OrderDate
	o.DeliveryDate = extra.DeliveryDate
	o.ExpectedDelivery = extra.ExpectedDelivery
	o.PaymentStatus = extra.PaymentStatus
	o.QualityGrade = extra.QualityGrade
	o.Packaging = extra.Packaging
	o.ShippingMethod = extra.ShippingMethod
	o.CreatedAt = time.Unix(0, createdAt)
	o.UpdatedAt = time.Unix(0, updatedAt)
	return &o, nil
}

func collectOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}
