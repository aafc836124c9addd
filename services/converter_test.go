package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

// seqRemote assigns sequential ids on insert and serves what it holds,
// mimicking the real store closely enough for the conversion flow.
type seqRemote struct {
	tables     map[string][]store.Row
	nextID     uint
	failInsert map[string]bool
}

func newSeqRemote() *seqRemote {
	return &seqRemote{
		tables:     make(map[string][]store.Row),
		nextID:     100,
		failInsert: make(map[string]bool),
	}
}

func (r *seqRemote) SelectAll(ctx context.Context, table string) ([]store.Row, error) {
	return r.tables[table], nil
}

func (r *seqRemote) Insert(ctx context.Context, table string, row store.Row) (store.Row, error) {
	if r.failInsert[table] {
		return nil, errors.New("insert refused")
	}
	if row.GetID() == 0 {
		r.nextID++
		row.SetID(r.nextID)
	}
	r.tables[table] = append(r.tables[table], row)
	return row, nil
}

func (r *seqRemote) Update(ctx context.Context, table string, id uint, row store.Row) error {
	for i, existing := range r.tables[table] {
		if existing.GetID() == id {
			row.SetID(id)
			r.tables[table][i] = row
			return nil
		}
	}
	return errors.New("no such row")
}

func (r *seqRemote) Delete(ctx context.Context, table string, id uint) error {
	return nil
}

func (r *seqRemote) customers() []*models.Customer {
	out := make([]*models.Customer, 0)
	for _, row := range r.tables[store.TableCustomers] {
		out = append(out, row.(*models.Customer))
	}
	return out
}

func (r *seqRemote) orders() []*models.Order {
	out := make([]*models.Order, 0)
	for _, row := range r.tables[store.TableOrders] {
		out = append(out, row.(*models.Order))
	}
	return out
}

func setupConverter(remote *seqRemote) (*Converter, *cache.Cache) {
	utils.InitLogger()
	c := cache.New(remote, nil)
	c.Load(context.Background())
	return NewConverter(c, remote), c
}

func TestConvertCreatesCustomerAndOrder(t *testing.T) {
	remote := newSeqRemote()
	enquiry := models.Enquiry{ID: 555, Name: "A", Phone: "999", Service: "Flyers", Qty: "500 pcs", Status: models.EnquiryStatusNew}
	remote.tables[store.TableEnquiries] = []store.Row{&enquiry}
	cv, c := setupConverter(remote)

	orderID, err := cv.Convert(context.Background(), enquiry, ConvertInput{Deadline: "2026-09-10", Amount: 1500})
	assert.NoError(t, err)
	assert.NotZero(t, orderID)

	customers := remote.customers()
	assert.Len(t, customers, 1)
	assert.Equal(t, "999", customers[0].Phone)

	orders := remote.orders()
	assert.Len(t, orders, 1)
	assert.Equal(t, "Flyers", orders[0].JobType)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)
	assert.Equal(t, customers[0].ID, orders[0].CustomerID)
	assert.Equal(t, 500, orders[0].Qty)

	assert.Equal(t, models.EnquiryStatusConverted, c.Enquiries()[0].Status)
}

func TestConvertReusesCustomerByPhone(t *testing.T) {
	remote := newSeqRemote()
	existing := models.Customer{ID: 7, Name: "Old Name", Phone: "999"}
	remote.tables[store.TableCustomers] = []store.Row{&existing}
	enquiry := models.Enquiry{ID: 556, Name: "New Name", Phone: "999", Service: "Banners", Status: models.EnquiryStatusNew}
	remote.tables[store.TableEnquiries] = []store.Row{&enquiry}
	cv, _ := setupConverter(remote)

	_, err := cv.Convert(context.Background(), enquiry, ConvertInput{Deadline: "2026-09-10"})
	assert.NoError(t, err)

	// Name mismatch is ignored; no duplicate customer appears.
	assert.Len(t, remote.customers(), 1)
	assert.Equal(t, uint(7), remote.orders()[0].CustomerID)
}

func TestConvertRequiresDeadline(t *testing.T) {
	remote := newSeqRemote()
	enquiry := models.Enquiry{ID: 557, Name: "A", Phone: "111", Status: models.EnquiryStatusNew}
	remote.tables[store.TableEnquiries] = []store.Row{&enquiry}
	cv, _ := setupConverter(remote)

	_, err := cv.Convert(context.Background(), enquiry, ConvertInput{})
	assert.ErrorIs(t, err, ErrDeadlineRequired)
	assert.Empty(t, remote.customers())
	assert.Empty(t, remote.orders())
}

func TestConvertAbortsWhenOrderInsertFails(t *testing.T) {
	remote := newSeqRemote()
	enquiry := models.Enquiry{ID: 558, Name: "A", Phone: "222", Status: models.EnquiryStatusNew}
	remote.tables[store.TableEnquiries] = []store.Row{&enquiry}
	remote.failInsert[store.TableOrders] = true
	cv, c := setupConverter(remote)

	_, err := cv.Convert(context.Background(), enquiry, ConvertInput{Deadline: "2026-09-10"})
	assert.Error(t, err)

	// The customer insert is kept; the enquiry stays unconverted.
	assert.Len(t, remote.customers(), 1)
	assert.Empty(t, remote.orders())
	assert.Equal(t, models.EnquiryStatusNew, c.Enquiries()[0].Status)
}

func TestConvertDefaultsJobTypeToCustom(t *testing.T) {
	remote := newSeqRemote()
	enquiry := models.Enquiry{ID: 559, Name: "A", Phone: "333", Service: "", Status: models.EnquiryStatusNew}
	remote.tables[store.TableEnquiries] = []store.Row{&enquiry}
	cv, _ := setupConverter(remote)

	_, err := cv.Convert(context.Background(), enquiry, ConvertInput{Deadline: "2026-09-10"})
	assert.NoError(t, err)
	assert.Equal(t, "Custom", remote.orders()[0].JobType)
}

func TestParseQty(t *testing.T) {
	assert.Equal(t, 500, parseQty("500 pcs"))
	assert.Equal(t, 500, parseQty("  500"))
	assert.Equal(t, 1, parseQty("a lot"))
	assert.Equal(t, 1, parseQty(""))
	assert.Equal(t, 1, parseQty("0"))
	assert.Equal(t, 12, parseQty("12x18 posters"))
}

// Quantities are free text from the public form; a digit string longer than
// an int must clamp instead of wrapping negative.
func TestParseQtyClampsHugeNumbers(t *testing.T) {
	assert.Equal(t, maxQty, parseQty("99999999999999999999"))
	assert.Equal(t, maxQty, parseQty("12345678901234567890 pcs"))
	assert.Equal(t, maxQty, parseQty("1000001 sheets"))
}
