package repository

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/Averus89/shopapp/internal/domain/product"
)

// seedProduct is the catalog seed file entry. Prices are written in major
// currency units as decimal strings ("0.50") and converted to minor units.
type seedProduct struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

var minorUnitsPerMajor = decimal.NewFromInt(100)

// LoadSeedProducts parses a products seed file into catalog products.
func LoadSeedProducts(data []byte) ([]product.Product, error) {
	var seeds []seedProduct
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, errors.Wrap(err, "parse products JSON")
	}

	products := make([]product.Product, 0, len(seeds))
	for _, s := range seeds {
		minor := s.Price.Mul(minorUnitsPerMajor)
		if !minor.IsInteger() {
			return nil, errors.Errorf("product %d: price %s is not a whole number of minor units", s.ID, s.Price)
		}
		if minor.IsNegative() {
			return nil, errors.Errorf("product %d: price %s is negative", s.ID, s.Price)
		}
		products = append(products, product.Product{
			ID:    s.ID,
			Name:  s.Name,
			Price: minor.IntPart(),
		})
	}
	return products, nil
}
