package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Averus89/shopapp/internal/domain/order"
)

const (
	findRowSQL = `SELECT order_id, product_id, quantity FROM order_items
		WHERE order_id = $1 AND product_id = $2`

	// Last-writer-wins: the stored quantity is replaced, not incremented.
	// The primary key on (order_id, product_id) keeps the ledger at one row
	// per pair.
	upsertRowSQL = `INSERT INTO order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity`

	rowsByOrderSQL = `SELECT order_id, product_id, quantity FROM order_items
		WHERE order_id = $1 ORDER BY product_id`

	allRowsSQL = `SELECT order_id, product_id, quantity FROM order_items
		ORDER BY order_id, product_id`

	deleteAllRowsSQL = `DELETE FROM order_items`
)

var _ order.Store = (*LedgerRepository)(nil)

// LedgerRepository implements order.Store backed by PostgreSQL.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository returns a LedgerRepository that uses the given pool.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// FindRow returns the ledger row for the (orderID, productID) pair, or
// order.ErrRowNotFound when none exists.
func (r *LedgerRepository) FindRow(ctx context.Context, orderID, productID int64) (*order.Row, error) {
	rows, err := r.pool.Query(ctx, findRowSQL, orderID, productID)
	if err != nil {
		return nil, fmt.Errorf("finding ledger row (%d, %d): %w", orderID, productID, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, scanRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrRowNotFound
		}
		return nil, fmt.Errorf("finding ledger row (%d, %d): %w", orderID, productID, err)
	}
	return &row, nil
}

// Upsert writes the absolute quantity for the row's key, inserting or
// replacing the single row for the (order, product) pair.
func (r *LedgerRepository) Upsert(ctx context.Context, row order.Row) error {
	_, err := r.pool.Exec(ctx, upsertRowSQL, row.OrderID, row.ProductID, row.Quantity)
	if err != nil {
		return fmt.Errorf("upserting ledger row (%d, %d): %w", row.OrderID, row.ProductID, err)
	}
	return nil
}

// RowsByOrder returns all ledger rows for one order, ordered by product id.
func (r *LedgerRepository) RowsByOrder(ctx context.Context, orderID int64) ([]order.Row, error) {
	rows, err := r.pool.Query(ctx, rowsByOrderSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing ledger rows for order %d: %w", orderID, err)
	}
	return pgx.CollectRows(rows, scanRow)
}

// AllRows returns every ledger row, ordered by (order_id, product_id).
func (r *LedgerRepository) AllRows(ctx context.Context) ([]order.Row, error) {
	rows, err := r.pool.Query(ctx, allRowsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing ledger rows: %w", err)
	}
	return pgx.CollectRows(rows, scanRow)
}

// DeleteAll removes every ledger row.
func (r *LedgerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, deleteAllRowsSQL); err != nil {
		return fmt.Errorf("deleting ledger rows: %w", err)
	}
	return nil
}

func scanRow(row pgx.CollectableRow) (order.Row, error) {
	var lr order.Row
	err := row.Scan(&lr.OrderID, &lr.ProductID, &lr.Quantity)
	return lr, err
}
