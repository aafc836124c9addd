package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowStockBoundaryIsInclusive(t *testing.T) {
	item := InventoryItem{Name: "A4 Paper", Qty: 10, ReorderLevel: 10}
	assert.True(t, item.LowStock())

	item.Qty = 10.01
	assert.False(t, item.LowStock())

	item.Qty = 9.99
	assert.True(t, item.LowStock())
}

func TestStockValue(t *testing.T) {
	item := InventoryItem{Qty: 2.5, CostPerUnit: 400}
	assert.Equal(t, 1000.0, item.StockValue())
}
