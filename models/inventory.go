package models

// InventoryItem tracks consumables. Qty is fractional because inks and glue
// are counted in litres.
type InventoryItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(120);not null" json:"name"`
	Category     string  `gorm:"type:varchar(60);not null" json:"category"`
	Qty          float64 `gorm:"type:decimal(12,2);not null;default:0" json:"qty"`
	Unit         string  `gorm:"type:varchar(20);not null" json:"unit"`
	ReorderLevel float64 `gorm:"type:decimal(12,2);not null;default:0" json:"reorder_level"`
	CostPerUnit  float64 `gorm:"type:decimal(12,2);not null;default:0" json:"cost_per_unit"`
	CreatedAt    string  `gorm:"type:varchar(10)" json:"created_at"`
}

func (i *InventoryItem) GetID() uint   { return i.ID }
func (i *InventoryItem) SetID(id uint) { i.ID = id }

// LowStock reports whether the item needs reordering. The boundary is
// inclusive: an item sitting exactly at its reorder level is low.
func (i *InventoryItem) LowStock() bool {
	return i.Qty <= i.ReorderLevel
}

// StockValue is the purchase value of the quantity on hand.
func (i *InventoryItem) StockValue() float64 {
	return i.Qty * i.CostPerUnit
}
