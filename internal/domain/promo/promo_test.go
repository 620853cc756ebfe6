package promo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Averus89/shopapp/internal/domain/order"
	"github.com/Averus89/shopapp/internal/domain/product"
)

var (
	apple  = product.Product{ID: 1, Name: "apple", Price: 50}
	orange = product.Product{ID: 2, Name: "orange", Price: 70}
	banana = product.Product{ID: 3, Name: "banana", Price: 35}
)

func group(t *testing.T, p product.Product, n int) []order.LineItem {
	t.Helper()
	items := make([]order.LineItem, 0, n)
	for i := 0; i < n; i++ {
		li, err := order.NewLineItem(p, 0)
		require.NoError(t, err)
		items = append(items, li)
	}
	return items
}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	rules, err := Build([]Config{
		{Product: "apple", Type: TypeAlternatingDiscount, Percent: 30, Every: 2},
		{Product: "orange", Type: TypeBonusUnit, Every: 2},
	})
	require.NoError(t, err)
	return NewEngine(rules...)
}

func discounts(items []order.LineItem) []int {
	out := make([]int, len(items))
	for i, li := range items {
		out[i] = li.Discount()
	}
	return out
}

func TestAlternatingDiscount_EverySecondUnit(t *testing.T) {
	tests := []struct {
		name  string
		units int
		want  []int
	}{
		{name: "no units", units: 0, want: []int{}},
		{name: "one unit", units: 1, want: []int{0}},
		{name: "two units", units: 2, want: []int{0, 30}},
		{name: "three units", units: 3, want: []int{0, 30, 0}},
		{name: "four units", units: 4, want: []int{0, 30, 0, 30}},
		{name: "five units", units: 5, want: []int{0, 30, 0, 30, 0}},
	}

	engine := defaultEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := engine.Run([][]order.LineItem{group(t, apple, tt.units)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, discounts(items))
		})
	}
}

func TestAlternatingDiscount_StatelessAcrossRuns(t *testing.T) {
	engine := defaultEngine(t)

	first, err := engine.Run([][]order.LineItem{group(t, apple, 3)})
	require.NoError(t, err)
	second, err := engine.Run([][]order.LineItem{group(t, apple, 3)})
	require.NoError(t, err)

	assert.Equal(t, discounts(first), discounts(second), "discount positions must not carry over between runs")
}

func TestBonusUnit_OneFreePerTwoPaid(t *testing.T) {
	tests := []struct {
		name  string
		units int
		want  []int
	}{
		{name: "one paid no bonus", units: 1, want: []int{0}},
		{name: "two paid one bonus", units: 2, want: []int{0, 0, 100}},
		{name: "three paid one bonus", units: 3, want: []int{0, 0, 0, 100}},
		{name: "four paid two bonuses", units: 4, want: []int{0, 0, 0, 0, 100, 100}},
		{name: "five paid two bonuses", units: 5, want: []int{0, 0, 0, 0, 0, 100, 100}},
	}

	engine := defaultEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := engine.Run([][]order.LineItem{group(t, orange, tt.units)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, discounts(items))
			// Bonus items are appended after all paid units and never
			// produce further bonuses themselves.
			assert.Len(t, items, tt.units+tt.units/2)
		})
	}
}

func TestEngine_UnmatchedProductPassesThrough(t *testing.T) {
	engine := defaultEngine(t)

	items, err := engine.Run([][]order.LineItem{group(t, banana, 4)})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, discounts(items))
}

func TestEngine_PreservesGroupOrder(t *testing.T) {
	engine := defaultEngine(t)

	items, err := engine.Run([][]order.LineItem{
		group(t, apple, 2),
		group(t, orange, 2),
		group(t, banana, 1),
	})
	require.NoError(t, err)

	names := make([]string, len(items))
	for i, li := range items {
		names[i] = li.Product.Name
	}
	assert.Equal(t, []string{"apple", "apple", "orange", "orange", "orange", "banana"}, names)
	assert.Equal(t, []int{0, 30, 0, 0, 100, 0}, discounts(items))
}

func TestEngine_EmptyInput(t *testing.T) {
	engine := defaultEngine(t)

	items, err := engine.Run(nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = engine.Run([][]order.LineItem{{}})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing product", cfg: Config{Type: TypeAlternatingDiscount, Percent: 10}},
		{name: "unknown type", cfg: Config{Product: "apple", Type: "two_for_one"}},
		{name: "negative percent", cfg: Config{Product: "apple", Type: TypeAlternatingDiscount, Percent: -1}},
		{name: "percent above 100", cfg: Config{Product: "apple", Type: TypeAlternatingDiscount, Percent: 101}},
		{name: "negative period", cfg: Config{Product: "apple", Type: TypeBonusUnit, Every: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build([]Config{tt.cfg})
			assert.Error(t, err)
		})
	}
}

func TestBuild_DefaultsPeriodToTwo(t *testing.T) {
	rules, err := Build([]Config{{Product: "orange", Type: TypeBonusUnit}})
	require.NoError(t, err)

	items, err := NewEngine(rules...).Run([][]order.LineItem{group(t, orange, 4)})
	require.NoError(t, err)
	assert.Len(t, items, 6)
}
