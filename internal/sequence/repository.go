package sequence

import (
	"context"
	"database/sql"
	"fmt"
)

const orderCounterName = "orders"

// Repository allocates order numbers. The counter row is bumped inside a
// transaction, so two concurrent checkouts can never draw the same id.
type Repository interface {
	NextOrderID(ctx context.Context) (string, error)
	SyncWithOrders(ctx context.Context) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) NextOrderID(ctx context.Context) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `
INSERT INTO order_sequence (name, last_number, updated_at)
VALUES ($1, 1, NOW())
ON CONFLICT (name) DO UPDATE
SET last_number = order_sequence.last_number + 1,
    updated_at = NOW()
RETURNING last_number
`

	var next int64
	if err = tx.QueryRowContext(ctx, query, orderCounterName).Scan(&next); err != nil {
		return "", fmt.Errorf("increment order sequence: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}

	return FormatOrderID(next), nil
}

// SyncWithOrders raises the counter to the highest id already present in
// the orders table. Run once at startup so a counter that lags behind
// pre-existing data (or a fresh counter over an old database) can never
// hand out a duplicate.
func (r *repo) SyncWithOrders(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM orders`)
	if err != nil {
		return fmt.Errorf("select order ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}

	max := MaxAssigned(ids)
	if max == 0 {
		return nil
	}

	const query = `
INSERT INTO order_sequence (name, last_number, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (name) DO UPDATE
SET last_number = GREATEST(order_sequence.last_number, EXCLUDED.last_number),
    updated_at = NOW()
`
	if _, err := r.db.ExecContext(ctx, query, orderCounterName, max); err != nil {
		return fmt.Errorf("sync order sequence: %w", err)
	}
	return nil
}
