package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("Shipped"))
	assert.False(t, ValidOrderStatus(""))
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	o := Order{Deadline: "2026-03-10", Status: OrderStatusPending}
	assert.True(t, o.Overdue(now))

	o.Status = OrderStatusDelivered
	assert.False(t, o.Overdue(now))

	o = Order{Deadline: "2026-03-20", Status: OrderStatusPending}
	assert.False(t, o.Overdue(now))

	// Unparsable deadlines never count as overdue.
	o = Order{Deadline: "soon", Status: OrderStatusPending}
	assert.False(t, o.Overdue(now))
}
