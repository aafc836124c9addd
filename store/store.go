// Package store defines the remote row-store contract the cache and the
// entity controllers write through. The remote owns identifier assignment:
// Insert returns the stored row with its server-assigned id, except where
// the caller pre-set one (enquiries).
package store

import (
	"context"
	"fmt"
)

// Mirrored table names.
const (
	TableSettings  = "settings"
	TableCustomers = "customers"
	TableOrders    = "orders"
	TableInventory = "inventory"
	TableInvoices  = "invoices"
	TableEnquiries = "enquiries"
	TableServices  = "services"
	TablePortfolio = "portfolio"
)

// Tables lists every mirrored table in load order.
var Tables = []string{
	TableSettings,
	TableCustomers,
	TableOrders,
	TableInventory,
	TableInvoices,
	TableEnquiries,
	TableServices,
	TablePortfolio,
}

// Row is any record living in a mirrored table.
type Row interface {
	GetID() uint
	SetID(uint)
}

// Remote is the table-oriented persistence service. SelectAll returns rows
// ordered by ascending id.
type Remote interface {
	SelectAll(ctx context.Context, table string) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, id uint, row Row) error
	Delete(ctx context.Context, table string, id uint) error
}

// ErrUnknownTable is returned for a table name outside the mirrored set.
type ErrUnknownTable struct {
	Table string
}

func (e ErrUnknownTable) Error() string {
	return fmt.Sprintf("unknown table %q", e.Table)
}
