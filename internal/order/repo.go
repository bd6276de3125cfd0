package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPersist wraps any failed write. Checkout treats it as fatal: an order
// that was never recorded must never be announced as placed.
var ErrPersist = errors.New("order write failed")

type Repository interface {
	Create(ctx context.Context, o *Order) (int64, error)
	List(ctx context.Context) ([]Order, error)
	CountNew(ctx context.Context) (int, error)
	MarkAllSeen(ctx context.Context) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// EnsureSchema creates the orders table and adds any column an older schema
// revision is missing. Migration is additive only; rolling back to an older
// revision is unsupported.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			items TEXT NOT NULL,
			total_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL DEFAULT 'cod',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// columns later revisions added
		`ALTER TABLE orders ADD COLUMN IF NOT EXISTS location TEXT NOT NULL DEFAULT ''`,
		`ALTER TABLE orders ADD COLUMN IF NOT EXISTS is_new BOOLEAN NOT NULL DEFAULT TRUE`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PGRepo) Create(ctx context.Context, o *Order) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (name, phone, address, location, items, total_price, payment_method, created_at, is_new)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),TRUE)
		RETURNING id
	`, o.Name, o.Phone, o.Address, o.Location, o.Items, o.TotalPrice, o.PaymentMethod).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	o.ID = id
	o.IsNew = true
	return id, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, phone, address, location, items, total_price::text, payment_method, created_at, is_new
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Name, &o.Phone, &o.Address, &o.Location,
			&o.Items, &o.TotalPrice, &o.PaymentMethod, &o.CreatedAt, &o.IsNew); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountNew(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE is_new`).Scan(&n)
	return n, err
}

// MarkAllSeen clears the "new" flag in one statement. Viewing the dashboard
// is the acknowledgment; concurrent viewers may race on the count and that
// is accepted (it is a badge, not an accounting value).
func (r *PGRepo) MarkAllSeen(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `UPDATE orders SET is_new = FALSE WHERE is_new`)
	return err
}
