package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"giftshop/internal/domain/cart"
	"giftshop/internal/domain/order"
)

// OrderRepository persists dispatched orders. Item lines are stored as
// a JSONB column since they are only ever read back whole.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Save(ctx context.Context, rec *order.Record) error {
	if rec == nil {
		return fmt.Errorf("order record is nil")
	}

	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	const query = `
		INSERT INTO shop_orders (order_id, customer_name, phone, address, notes, items, total, submitted_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (order_id) DO UPDATE
		SET customer_name = EXCLUDED.customer_name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			notes = EXCLUDED.notes,
			items = EXCLUDED.items,
			total = EXCLUDED.total,
			submitted_at = EXCLUDED.submitted_at,
			status = EXCLUDED.status;
	`

	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		rec.OrderID,
		rec.Customer.Name,
		rec.Customer.Phone,
		rec.Customer.Address,
		rec.Customer.Notes,
		items,
		rec.Total,
		rec.SubmittedAt,
		string(rec.Status),
	)
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Record, error) {
	const query = `
		SELECT order_id, customer_name, phone, address, notes, items, total, submitted_at, status
		FROM shop_orders
		WHERE order_id = $1;
	`

	var (
		rec    order.Record
		items  []byte
		status string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.OrderID,
		&rec.Customer.Name,
		&rec.Customer.Phone,
		&rec.Customer.Address,
		&rec.Customer.Notes,
		&items,
		&rec.Total,
		&rec.SubmittedAt,
		&status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.Status = order.DispatchStatus(status)
	if len(items) > 0 {
		var lines []cart.Line
		if err := json.Unmarshal(items, &lines); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		rec.Items = lines
	}
	return &rec, nil
}

func (r *OrderRepository) ensureTable(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS shop_orders (
			order_id TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			address TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			items JSONB NOT NULL,
			total NUMERIC NOT NULL,
			submitted_at TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL
		);
	`
	_, err := r.pool.Exec(ctx, stmt)
	return err
}
