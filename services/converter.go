package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

// Converter turns an enquiry into a customer plus an order. The sequence is
// deliberately not transactional: a customer created in step one survives an
// order-insert failure, and no compensating delete is attempted. The enquiry
// is only marked Converted after the order exists.
type Converter struct {
	Cache  *cache.Cache
	Remote store.Remote
}

func NewConverter(c *cache.Cache, remote store.Remote) *Converter {
	return &Converter{Cache: c, Remote: remote}
}

// ConvertInput carries the operator-supplied fields of the convert dialog.
type ConvertInput struct {
	Deadline   string
	Amount     float64
	AssignedTo string
}

var ErrDeadlineRequired = errors.New("a deadline is required to convert an enquiry")

// Convert resolves the customer by exact phone match (reusing an existing
// record, name mismatches ignored), creates the order, reloads the cache so
// server-assigned ids are visible, and persists the Converted status.
// Returns the new order's id.
func (cv *Converter) Convert(ctx context.Context, enq models.Enquiry, in ConvertInput) (uint, error) {
	if in.Deadline == "" {
		return 0, ErrDeadlineRequired
	}

	cust, existing := cv.findByPhone(enq.Phone)
	if !existing {
		newCust := models.Customer{
			Name:      enq.Name,
			Phone:     enq.Phone,
			Email:     enq.Email,
			CreatedAt: utils.Today(),
		}
		inserted, err := cv.Remote.Insert(ctx, store.TableCustomers, &newCust)
		if err != nil {
			return 0, fmt.Errorf("creating customer: %w", err)
		}
		cust = *(inserted.(*models.Customer))
		utils.InfoLogger.Printf("convert: new customer %q (id=%d) from enquiry %d", cust.Name, cust.ID, enq.ID)
	}

	jobType := enq.Service
	if jobType == "" {
		jobType = "Custom"
	}

	order := models.Order{
		CustomerID:   cust.ID,
		CustomerName: cust.Name,
		JobType:      jobType,
		Qty:          parseQty(enq.Qty),
		Instructions: enq.Message,
		Deadline:     in.Deadline,
		Status:       models.OrderStatusPending,
		AssignedTo:   in.AssignedTo,
		Amount:       in.Amount,
		CreatedAt:    utils.Today(),
	}
	inserted, err := cv.Remote.Insert(ctx, store.TableOrders, &order)
	if err != nil {
		// The customer from above is intentionally kept; the enquiry stays
		// unconverted so the operator can retry.
		return 0, fmt.Errorf("creating order: %w", err)
	}
	orderID := inserted.GetID()

	cv.Cache.Load(ctx)

	enq.Status = models.EnquiryStatusConverted
	if err := cv.Remote.Update(ctx, store.TableEnquiries, enq.ID, &enq); err != nil {
		return orderID, fmt.Errorf("order %d created but enquiry not marked converted: %w", orderID, err)
	}
	cv.Cache.Load(ctx)

	utils.InfoLogger.Printf("convert: enquiry %d -> order %d for %q", enq.ID, orderID, cust.Name)
	return orderID, nil
}

func (cv *Converter) findByPhone(phone string) (models.Customer, bool) {
	for _, c := range cv.Cache.Customers() {
		if c.Phone == phone {
			return c, true
		}
	}
	return models.Customer{}, false
}

// maxQty bounds the quantity parsed from a public enquiry. The field is free
// text, so a runaway digit string must not wrap the accumulator.
const maxQty = 1_000_000

// parseQty reads the leading integer of a free-text quantity ("500 pcs"),
// defaulting to 1 when there is none and clamping to maxQty.
func parseQty(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r == ' ' && !seen {
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
		if n > maxQty {
			n = maxQty
			break
		}
	}
	if !seen || n == 0 {
		return 1
	}
	return n
}
