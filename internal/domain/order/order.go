package order

import (
	"github.com/go-faster/errors"

	"github.com/Averus89/shopapp/internal/domain/product"
)

// ErrInvalidDiscount is returned when a discount percentage falls outside
// the [0, 100] range.
var ErrInvalidDiscount = errors.New("discount must be a percentage between 0 and 100")

// LineItem is a single priced unit of a product within an order. The
// discount is kept unexported so every mutation goes through SetDiscount
// and the [0, 100] invariant cannot be bypassed.
type LineItem struct {
	Product  product.Product
	discount int
}

// NewLineItem builds a LineItem for the given product, validating the
// discount percentage.
func NewLineItem(p product.Product, discount int) (LineItem, error) {
	li := LineItem{Product: p}
	if err := li.SetDiscount(discount); err != nil {
		return LineItem{}, err
	}
	return li, nil
}

// SetDiscount updates the discount percentage, rejecting values outside
// [0, 100] with ErrInvalidDiscount.
func (li *LineItem) SetDiscount(discount int) error {
	if discount < 0 || discount > 100 {
		return errors.Wrapf(ErrInvalidDiscount, "got %d", discount)
	}
	li.discount = discount
	return nil
}

// Discount returns the discount percentage applied to this item.
func (li LineItem) Discount() int {
	return li.discount
}

// Total returns the discounted price of this item in minor currency units,
// rounded down: floor(price * (100 - discount) / 100).
func (li LineItem) Total() int64 {
	return li.Product.Price * int64(100-li.discount) / 100
}

// Order is a request-scoped projection of one order's line items. Item
// order is significant: items are grouped by product in ledger iteration
// order, paid units before bonus units within a group.
type Order struct {
	ID    int64
	Items []LineItem
}

// Append adds items to the end of the order, preserving their order.
func (o *Order) Append(items ...LineItem) {
	o.Items = append(o.Items, items...)
}

// Total returns the sum of all item totals, 0 for an empty order.
func (o Order) Total() int64 {
	var total int64
	for _, li := range o.Items {
		total += li.Total()
	}
	return total
}
