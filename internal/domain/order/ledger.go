package order

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrRowNotFound is returned by Store.FindRow when no ledger row exists for
// the requested (order, product) pair.
var ErrRowNotFound = errors.New("ledger row not found")

// Row is the durable quantity ledger record: how many units of a product
// are associated with an order. At most one row exists per
// (OrderID, ProductID) pair.
type Row struct {
	OrderID   int64
	ProductID int64
	Quantity  int
}

// Store defines the persistence contract for the quantity ledger.
//
// Upsert writes the absolute quantity for the row's key, replacing any
// existing row (last-writer-wins). Row listings are ordered by
// (order_id, product_id) so that expansion order is stable across reads.
type Store interface {
	FindRow(ctx context.Context, orderID, productID int64) (*Row, error)
	Upsert(ctx context.Context, row Row) error
	RowsByOrder(ctx context.Context, orderID int64) ([]Row, error)
	AllRows(ctx context.Context) ([]Row, error)
	// DeleteAll removes every ledger row. Intended for tests and resets.
	DeleteAll(ctx context.Context) error
}
