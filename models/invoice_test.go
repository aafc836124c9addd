package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	inv := Invoice{
		Items: LineItems{
			{Desc: "Flyers", Qty: 2, Rate: 100, Tax: 18},
		},
	}
	inv.ComputeTotals()

	assert.Equal(t, 200.00, inv.Subtotal)
	assert.Equal(t, 36.00, inv.Tax)
	assert.Equal(t, 236.00, inv.Total)
}

func TestComputeTotalsMultipleLinesAndRounding(t *testing.T) {
	inv := Invoice{
		Items: LineItems{
			{Desc: "Cards", Qty: 100, Rate: 3.5, Tax: 18},
			{Desc: "Banner", Qty: 2, Rate: 450, Tax: 12},
		},
	}
	inv.ComputeTotals()

	// 350 + 900 = 1250; tax 63 + 108 = 171
	assert.Equal(t, 1250.00, inv.Subtotal)
	assert.Equal(t, 171.00, inv.Tax)
	assert.Equal(t, 1421.00, inv.Total)
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	inv := Invoice{Items: LineItems{}}
	inv.ComputeTotals()

	assert.Zero(t, inv.Subtotal)
	assert.Zero(t, inv.Tax)
	assert.Zero(t, inv.Total)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2344))
	assert.Equal(t, 1.24, Round2(1.2361))
	assert.Equal(t, -1.24, Round2(-1.2361))
	assert.Equal(t, 0.0, Round2(0))
}

func TestLineItemsScanRoundTrip(t *testing.T) {
	items := LineItems{{Desc: "Posters", Qty: 50, Rate: 12, Tax: 12}}

	v, err := items.Value()
	assert.NoError(t, err)

	var back LineItems
	assert.NoError(t, back.Scan(v))
	assert.Equal(t, items, back)

	var empty LineItems
	assert.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
