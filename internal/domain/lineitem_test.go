package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLineTotal_ServiceAddsSurcharges(t *testing.T) {
	got := ComputeLineTotal(ProductService, 2, 100.00, 50.00, 20.00, 0)
	assert.Equal(t, 340.00, got)
}

func TestComputeLineTotal_GoodIgnoresSurcharges(t *testing.T) {
	assert.Equal(t, 76.50, ComputeLineTotal(ProductGood, 3, 25.50, 0, 0, 0))
	assert.Equal(t, 76.50, ComputeLineTotal(ProductGood, 3, 25.50, 10, 10, 10))
	assert.Equal(t, 90.0, ComputeLineTotal(ProductKit, 1.5, 60, 5, 0, 0))
}

func TestComputeLineTotal_MatchesFormulaExactly(t *testing.T) {
	cases := []struct {
		qty, price, labor, travel, lodging float64
	}{
		{1, 0.1, 0.2, 0.3, 0.4},
		{0.5, 199.99, 35.5, 12.25, 80},
		{7, 1e-3, 0, 0, 0},
		{3.3333, 12.34, 5.67, 8.9, 0.01},
	}
	for _, c := range cases {
		want := c.qty * (c.price + c.labor + c.travel + c.lodging)
		got := ComputeLineTotal(ProductService, c.qty, c.price, c.labor, c.travel, c.lodging)
		assert.Equal(t, want, got)

		wantGood := c.qty * c.price
		assert.Equal(t, wantGood, ComputeLineTotal(ProductGood, c.qty, c.price, c.labor, c.travel, c.lodging))
	}
}

func TestLineItem_RecomputeZeroesSurchargesOnGoods(t *testing.T) {
	li := LineItem{Type: ProductGood, Quantity: 2, UnitPrice: 10, Labor: 5, Travel: 3, Lodging: 1}
	li.Recompute()

	assert.Zero(t, li.Labor)
	assert.Zero(t, li.Travel)
	assert.Zero(t, li.Lodging)
	assert.Equal(t, 20.0, li.LineTotal)
}

func TestLineItem_RecomputeKeepsServiceSurcharges(t *testing.T) {
	li := LineItem{Type: ProductService, Quantity: 2, UnitPrice: 100, Labor: 50, Travel: 20}
	li.Recompute()

	assert.Equal(t, 70.0, li.Surcharges())
	assert.Equal(t, 340.0, li.LineTotal)
}

func TestSumLineTotals_InsertionOrder(t *testing.T) {
	items := []LineItem{{LineTotal: 0.1}, {LineTotal: 0.2}, {LineTotal: 0.3}}
	want := 0.1 + 0.2 + 0.3
	assert.Equal(t, want, SumLineTotals(items))
	assert.Equal(t, SumLineTotals(items), SumLineTotals(items), "recomputation is idempotent")
	assert.Zero(t, SumLineTotals(nil))
}
