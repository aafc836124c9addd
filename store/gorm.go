package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/printdesk/printdesk/models"
)

// Gorm implements Remote on a gorm connection. Each table maps to its
// concrete model type through an explicit switch; anything else is an
// ErrUnknownTable.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) SelectAll(ctx context.Context, table string) ([]Row, error) {
	tx := g.db.WithContext(ctx).Order("id asc")
	switch table {
	case TableSettings:
		var recs []models.Settings
		if err := tx.Find(&recs).Error; err != nil {
			return nil, err
		}
		return asRows(recs), nil
	case TableCustomers:
		var recs []models.Customer
		if err := tx.Find(&recs).Error; err != nil {
			return nil, err
		}
		return asRows(recs), nil
	case TableOrders:
		var recs []models.Order
		if err := tx.Find(&recs).Error; err != nil {
			return nil, err
		}
		return asRows(recs), nil
	case TableInventory:
		var recs []models.InventoryItem
		if err := tx.Find(&recs).Error; err != nil {
			return nil, err
		}
		return asRows(recs), nil
	case TableInvoices:
		var recs []models.Invoice
		if err := tx.Find(&recs).Error; err != nil {
			return nil, err
		}
		return asRows(recs), nil
	case TableEnquiries:
		var recs []models.Enquiry
		if err := tx.Find(&recs).Error; err != nil {
			return nil, err
		}
		return asRows(recs), nil
	case TableServices:
		var recs []models.Service
		if err := tx.Find(&recs).Error; err != nil {
			return nil, err
		}
		return asRows(recs), nil
	case TablePortfolio:
		var recs []models.PortfolioItem
		if err := tx.Find(&recs).Error; err != nil {
			return nil, err
		}
		return asRows(recs), nil
	}
	return nil, ErrUnknownTable{Table: table}
}

// asRows converts a typed slice into []Row. The pointers address the slice's
// own elements, so callers own the backing array.
func asRows[T any, PT interface {
	Row
	*T
}](recs []T) []Row {
	rows := make([]Row, len(recs))
	for i := range recs {
		rows[i] = PT(&recs[i])
	}
	return rows
}

func (g *Gorm) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if _, err := g.model(table); err != nil {
		return nil, err
	}
	// gorm fills the id on the row after Create; a pre-set id (enquiries,
	// client-assigned catalog rows) is honored as-is.
	if err := g.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (g *Gorm) Update(ctx context.Context, table string, id uint, row Row) error {
	if _, err := g.model(table); err != nil {
		return err
	}
	row.SetID(id)
	// Save writes every column, matching the replace-the-row contract.
	return g.db.WithContext(ctx).Save(row).Error
}

func (g *Gorm) Delete(ctx context.Context, table string, id uint) error {
	model, err := g.model(table)
	if err != nil {
		return err
	}
	return g.db.WithContext(ctx).Delete(model, id).Error
}

func (g *Gorm) model(table string) (Row, error) {
	switch table {
	case TableSettings:
		return &models.Settings{}, nil
	case TableCustomers:
		return &models.Customer{}, nil
	case TableOrders:
		return &models.Order{}, nil
	case TableInventory:
		return &models.InventoryItem{}, nil
	case TableInvoices:
		return &models.Invoice{}, nil
	case TableEnquiries:
		return &models.Enquiry{}, nil
	case TableServices:
		return &models.Service{}, nil
	case TablePortfolio:
		return &models.PortfolioItem{}, nil
	}
	return nil, ErrUnknownTable{Table: table}
}
