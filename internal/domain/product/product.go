package product

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product is a catalog item. Price is expressed in minor currency units
// (e.g. cents) and is never negative. The catalog is the sole authority on
// product existence and pricing.
type Product struct {
	ID    int64
	Name  string
	Price int64
}

// Catalog defines read operations over the product catalog.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context) ([]Product, error)
}
