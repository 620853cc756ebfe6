package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Averus89/shopapp/db"
)

func TestLoadSeedProducts_ConvertsMajorToMinorUnits(t *testing.T) {
	data := []byte(`[
		{"id": 1, "name": "apple", "price": "0.50"},
		{"id": 2, "name": "orange", "price": "0.70"},
		{"id": 3, "name": "melon", "price": "12"}
	]`)

	products, err := LoadSeedProducts(data)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, int64(50), products[0].Price)
	assert.Equal(t, int64(70), products[1].Price)
	assert.Equal(t, int64(1200), products[2].Price)
}

func TestLoadSeedProducts_RejectsFractionalMinorUnits(t *testing.T) {
	_, err := LoadSeedProducts([]byte(`[{"id": 1, "name": "apple", "price": "0.505"}]`))
	assert.Error(t, err)
}

func TestLoadSeedProducts_RejectsNegativePrice(t *testing.T) {
	_, err := LoadSeedProducts([]byte(`[{"id": 1, "name": "apple", "price": "-1"}]`))
	assert.Error(t, err)
}

func TestLoadSeedProducts_RejectsMalformedJSON(t *testing.T) {
	_, err := LoadSeedProducts([]byte(`{`))
	assert.Error(t, err)
}

func TestLoadSeedProducts_EmbeddedCatalog(t *testing.T) {
	products, err := LoadSeedProducts(db.SeedProducts)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	byName := make(map[string]int64, len(products))
	for _, p := range products {
		byName[p.Name] = p.Price
	}
	assert.Equal(t, int64(50), byName["apple"])
	assert.Equal(t, int64(70), byName["orange"])
}
