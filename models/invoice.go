package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
)

// Invoice payment statuses.
const (
	InvoiceStatusUnpaid  = "Unpaid"
	InvoiceStatusPartial = "Partial"
	InvoiceStatusPaid    = "Paid"
)

// LineItem is one billed row on an invoice. Tax is a percentage applied to
// Qty*Rate.
type LineItem struct {
	Desc string  `json:"desc"`
	Qty  float64 `json:"qty"`
	Rate float64 `json:"rate"`
	Tax  float64 `json:"tax"`
}

// LineItems is stored as a JSON column, the same shape the invoice form
// submits.
type LineItems []LineItem

func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		li = LineItems{}
	}
	return json.Marshal(li)
}

func (li *LineItems) Scan(value interface{}) error {
	if value == nil {
		*li = LineItems{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, li)
	case string:
		return json.Unmarshal([]byte(v), li)
	}
	return errors.New("unsupported type for LineItems")
}

// Invoice bills a customer, optionally against an order. CustomerName is a
// denormalized snapshot, same as on Order.
type Invoice struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      *uint     `gorm:"index" json:"order_id,omitempty"`
	CustomerID   uint      `gorm:"not null;index" json:"customer_id"`
	CustomerName string    `gorm:"type:varchar(120);not null" json:"customer_name"`
	Items        LineItems `gorm:"type:text" json:"items"`
	Subtotal     float64   `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	Tax          float64   `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`
	Total        float64   `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	Status       string    `gorm:"type:varchar(20);not null;default:'Unpaid'" json:"status"`
	CreatedAt    string    `gorm:"type:varchar(10)" json:"created_at"`
}

func (i *Invoice) GetID() uint   { return i.ID }
func (i *Invoice) SetID(id uint) { i.ID = id }

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals derives Subtotal, Tax and Total from Items. Subtotal and Tax
// are each rounded to two decimals independently; Total is their rounded sum.
func (i *Invoice) ComputeTotals() {
	var subtotal, tax float64
	for _, it := range i.Items {
		line := it.Qty * it.Rate
		subtotal += line
		tax += line * it.Tax / 100
	}
	i.Subtotal = Round2(subtotal)
	i.Tax = Round2(tax)
	i.Total = Round2(i.Subtotal + i.Tax)
}
