package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Averus89/shopapp/internal/domain/order"
	"github.com/Averus89/shopapp/internal/domain/product"
)

var _ product.Catalog = (*MemoryCatalog)(nil)

// MemoryCatalog is an in-memory product.Catalog. It backs tests and the
// server's database-less local mode.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[int64]product.Product
}

// NewMemoryCatalog creates a catalog pre-loaded with the given products.
func NewMemoryCatalog(products ...product.Product) *MemoryCatalog {
	byID := make(map[int64]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &MemoryCatalog{products: byID}
}

// GetByID returns a single product by its identifier.
func (c *MemoryCatalog) GetByID(_ context.Context, id int64) (*product.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

// List returns all products ordered by ID.
func (c *MemoryCatalog) List(_ context.Context) ([]product.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]product.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ order.Store = (*MemoryLedger)(nil)

type rowKey struct {
	orderID   int64
	productID int64
}

// MemoryLedger is an in-memory order.Store. The map key enforces the
// one-row-per-(order, product) invariant; listings are sorted by
// (order_id, product_id) to match the PostgreSQL implementation.
type MemoryLedger struct {
	mu   sync.RWMutex
	rows map[rowKey]order.Row
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{rows: make(map[rowKey]order.Row)}
}

// FindRow returns the ledger row for the (orderID, productID) pair, or
// order.ErrRowNotFound when none exists.
func (l *MemoryLedger) FindRow(_ context.Context, orderID, productID int64) (*order.Row, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	row, ok := l.rows[rowKey{orderID: orderID, productID: productID}]
	if !ok {
		return nil, order.ErrRowNotFound
	}
	return &row, nil
}

// Upsert writes the absolute quantity for the row's key.
func (l *MemoryLedger) Upsert(_ context.Context, row order.Row) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rows[rowKey{orderID: row.OrderID, productID: row.ProductID}] = row
	return nil
}

// RowsByOrder returns all ledger rows for one order, ordered by product id.
func (l *MemoryLedger) RowsByOrder(_ context.Context, orderID int64) ([]order.Row, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]order.Row, 0)
	for _, row := range l.rows {
		if row.OrderID == orderID {
			out = append(out, row)
		}
	}
	sortRows(out)
	return out, nil
}

// AllRows returns every ledger row, ordered by (order_id, product_id).
func (l *MemoryLedger) AllRows(_ context.Context) ([]order.Row, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]order.Row, 0, len(l.rows))
	for _, row := range l.rows {
		out = append(out, row)
	}
	sortRows(out)
	return out, nil
}

// DeleteAll removes every ledger row.
func (l *MemoryLedger) DeleteAll(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rows = make(map[rowKey]order.Row)
	return nil
}

func sortRows(rows []order.Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OrderID != rows[j].OrderID {
			return rows[i].OrderID < rows[j].OrderID
		}
		return rows[i].ProductID < rows[j].ProductID
	})
}
