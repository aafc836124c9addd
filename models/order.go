package models

import "time"

// Order statuses form the job pipeline shown on the orders board.
const (
	OrderStatusPending    = "Pending"
	OrderStatusInProgress = "In Progress"
	OrderStatusReady      = "Ready"
	OrderStatusDelivered  = "Delivered"
)

// OrderStatuses lists the pipeline stages in display order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusReady,
	OrderStatusDelivered,
}

// Order is a print job. CustomerName is a denormalized snapshot so the order
// stays displayable after its customer is deleted.
type Order struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	CustomerID   uint    `gorm:"not null;index" json:"customer_id"`
	CustomerName string  `gorm:"type:varchar(120);not null" json:"customer_name"`
	JobType      string  `gorm:"type:varchar(60);not null" json:"job_type"`
	Qty          int     `gorm:"not null" json:"qty"`
	PaperType    string  `gorm:"type:varchar(60)" json:"paper_type"`
	Size         string  `gorm:"type:varchar(40)" json:"size"`
	Color        string  `gorm:"type:varchar(20)" json:"color"`
	Instructions string  `gorm:"type:text" json:"instructions"`
	Deadline     string  `gorm:"type:varchar(10);not null" json:"deadline"`
	Status       string  `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	AssignedTo   string  `gorm:"type:varchar(120)" json:"assigned_to"`
	Amount       float64 `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	CreatedAt    string  `gorm:"type:varchar(10)" json:"created_at"`
}

func (o *Order) GetID() uint   { return o.ID }
func (o *Order) SetID(id uint) { o.ID = id }

// ValidStatus reports whether s is one of the pipeline stages.
func ValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Overdue reports whether the deadline has passed without delivery.
func (o *Order) Overdue(now time.Time) bool {
	if o.Status == OrderStatusDelivered {
		return false
	}
	d, err := time.Parse("2006-01-02", o.Deadline)
	if err != nil {
		return false
	}
	return d.Before(now.Truncate(24 * time.Hour))
}
