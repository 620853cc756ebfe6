package order

import (
	"context"
	"sort"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Averus89/shopapp/internal/domain/product"
)

// Sentinel errors for order operations.
var (
	ErrQuantityTooLow = errors.New("quantity must be greater than 0")
	ErrOrderNotFound  = errors.New("order not found")
)

// PromotionEngine rewrites an order's per-product line item groups,
// assigning discounts and injecting bonus items. Implementations must be
// pure: no shared state between calls, no blocking.
type PromotionEngine interface {
	Run(groups [][]LineItem) ([]LineItem, error)
}

// Service implements the order operations: accumulating quantities in the
// ledger and assembling priced, promotion-adjusted order views.
type Service struct {
	catalog product.Catalog
	ledger  Store
	promos  PromotionEngine
}

// NewService creates a Service with the required collaborators.
func NewService(catalog product.Catalog, ledger Store, promos PromotionEngine) *Service {
	return &Service{
		catalog: catalog,
		ledger:  ledger,
		promos:  promos,
	}
}

// AddItems adds quantity units of a product to an order, accumulating into
// the single ledger row for the (orderID, productID) pair.
//
// A non-positive quantity fails with ErrQuantityTooLow before any catalog or
// store access. An unknown product fails with product.ErrNotFound.
//
// The increment is a read-then-write, not an atomic add: two concurrent
// calls for the same key may both read the same base quantity and one
// update can be lost. The contract is last-writer-wins on the row; callers
// needing stronger consistency must serialize writes per key externally.
func (s *Service) AddItems(ctx context.Context, orderID, productID int64, quantity int) error {
	if quantity <= 0 {
		return errors.Wrapf(ErrQuantityTooLow, "got %d", quantity)
	}

	p, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return product.ErrNotFound
		}
		return errors.Wrapf(err, "resolve product %d", productID)
	}

	row, err := s.ledger.FindRow(ctx, orderID, p.ID)
	if err != nil {
		if !errors.Is(err, ErrRowNotFound) {
			return errors.Wrapf(err, "find ledger row (%d, %d)", orderID, p.ID)
		}
		row = &Row{OrderID: orderID, ProductID: p.ID, Quantity: 0}
	}

	row.Quantity += quantity
	if err := s.ledger.Upsert(ctx, *row); err != nil {
		return errors.Wrapf(err, "upsert ledger row (%d, %d)", orderID, p.ID)
	}
	return nil
}

// GetOrderByID assembles the full order view for one order: ledger rows
// expanded into unit line items, grouped by product, with promotion rules
// applied. An order with no ledger rows fails with ErrOrderNotFound.
func (s *Service) GetOrderByID(ctx context.Context, orderID int64) (*Order, error) {
	rows, err := s.ledger.RowsByOrder(ctx, orderID)
	if err != nil {
		return nil, errors.Wrapf(err, "load ledger rows for order %d", orderID)
	}
	if len(rows) == 0 {
		return nil, ErrOrderNotFound
	}
	return s.assemble(ctx, orderID, rows)
}

// GetOrders assembles every order present in the ledger, ascending by order
// id. Each order is assembled in its own goroutine; per-order item ordering
// is unaffected by cross-order scheduling. An empty ledger yields an empty
// slice.
func (s *Service) GetOrders(ctx context.Context) ([]Order, error) {
	rows, err := s.ledger.AllRows(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load ledger rows")
	}

	// Partition rows per order, keeping row iteration order within each.
	byOrder := make(map[int64][]Row)
	ids := make([]int64, 0)
	for _, row := range rows {
		if _, seen := byOrder[row.OrderID]; !seen {
			ids = append(ids, row.OrderID)
		}
		byOrder[row.OrderID] = append(byOrder[row.OrderID], row)
	}

	orders := make([]Order, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			o, err := s.assemble(gctx, id, byOrder[id])
			if err != nil {
				return err
			}
			orders[i] = *o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

// GetOrderIDs returns the ids of every order present in the ledger,
// ascending.
func (s *Service) GetOrderIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.ledger.AllRows(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load ledger rows")
	}

	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, row := range rows {
		if _, ok := seen[row.OrderID]; ok {
			continue
		}
		seen[row.OrderID] = struct{}{}
		ids = append(ids, row.OrderID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// assemble expands the order's ledger rows into per-product unit groups,
// runs the promotion engine over them, and returns the final order view.
func (s *Service) assemble(ctx context.Context, orderID int64, rows []Row) (*Order, error) {
	groups := make([][]LineItem, 0, len(rows))
	for _, row := range rows {
		p, err := s.catalog.GetByID(ctx, row.ProductID)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve product %d for order %d", row.ProductID, orderID)
		}

		group := make([]LineItem, 0, row.Quantity)
		for i := 0; i < row.Quantity; i++ {
			li, err := NewLineItem(*p, 0)
			if err != nil {
				return nil, err
			}
			group = append(group, li)
		}
		groups = append(groups, group)
	}

	items, err := s.promos.Run(groups)
	if err != nil {
		return nil, errors.Wrapf(err, "apply promotions to order %d", orderID)
	}

	o := &Order{ID: orderID}
	o.Append(items...)
	return o, nil
}
