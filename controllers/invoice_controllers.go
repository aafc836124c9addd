package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

type InvoiceController struct {
	Cache  *cache.Cache
	Remote store.Remote
}

func NewInvoiceController(c *cache.Cache, remote store.Remote) *InvoiceController {
	return &InvoiceController{Cache: c, Remote: remote}
}

// GetAllInvoices supports an optional ?status= filter.
func (vc *InvoiceController) GetAllInvoices(c *gin.Context) {
	status := c.Query("status")
	invoices := vc.Cache.Invoices()
	filtered := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if status != "" && inv.Status != status {
			continue
		}
		filtered = append(filtered, inv)
	}
	utils.RespondJSON(c, http.StatusOK, "List of invoices", filtered)
}

// GetStats returns the billing header cards: total billed, collected (Paid)
// and pending (everything else).
func (vc *InvoiceController) GetStats(c *gin.Context) {
	var billed, collected, pending float64
	for _, inv := range vc.Cache.Invoices() {
		billed += inv.Total
		if inv.Status == models.InvoiceStatusPaid {
			collected += inv.Total
		} else {
			pending += inv.Total
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Billing stats", gin.H{
		"billed":    models.Round2(billed),
		"collected": models.Round2(collected),
		"pending":   models.Round2(pending),
	})
}

// GetInvoice
func (vc *InvoiceController) GetInvoice(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("invoice_id"))
	invoice, ok := vc.findInvoice(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("invoice not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Invoice detail", invoice)
}

type invoiceInput struct {
	OrderID    *uint            `json:"order_id"`
	CustomerID uint             `json:"customer_id" binding:"required"`
	Items      models.LineItems `json:"items" binding:"required"`
}

// CreateInvoice derives the totals server-side from the line items; totals
// submitted by the client are ignored.
func (vc *InvoiceController) CreateInvoice(c *gin.Context) {
	var input invoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(input.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("at least one line item is required"))
		return
	}

	var customer *models.Customer
	for _, cust := range vc.Cache.Customers() {
		if cust.ID == input.CustomerID {
			customer = &cust
			break
		}
	}
	if customer == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("customer not found"))
		return
	}

	invoice := models.Invoice{
		OrderID:      input.OrderID,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        input.Items,
		Status:       models.InvoiceStatusUnpaid,
		CreatedAt:    utils.Today(),
	}
	invoice.ComputeTotals()

	inserted, err := vc.Remote.Insert(c.Request.Context(), store.TableInvoices, &invoice)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	vc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusCreated, "Invoice created", inserted)
}

// UpdateInvoice replaces the line items and recomputes totals. Status is
// untouched here.
func (vc *InvoiceController) UpdateInvoice(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("invoice_id"))
	invoice, ok := vc.findInvoice(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("invoice not found"))
		return
	}

	var input invoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(input.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("at least one line item is required"))
		return
	}

	invoice.OrderID = input.OrderID
	invoice.Items = input.Items
	invoice.ComputeTotals()

	if err := vc.Remote.Update(c.Request.Context(), store.TableInvoices, invoice.ID, &invoice); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	vc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusOK, "Invoice updated", invoice)
}

// UpdateInvoiceStatus moves an invoice between Unpaid, Partial and Paid.
func (vc *InvoiceController) UpdateInvoiceStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("invoice_id"))
	invoice, ok := vc.findInvoice(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("invoice not found"))
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	switch input.Status {
	case models.InvoiceStatusUnpaid, models.InvoiceStatusPartial, models.InvoiceStatusPaid:
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", input.Status))
		return
	}

	invoice.Status = input.Status
	if err := vc.Remote.Update(c.Request.Context(), store.TableInvoices, invoice.ID, &invoice); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	vc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusOK, "Invoice status updated", invoice)
}

// DeleteInvoice
func (vc *InvoiceController) DeleteInvoice(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("invoice_id"))

	current := vc.Cache.Invoices()
	remaining := make([]store.Row, 0, len(current))
	found := false
	for i := range current {
		if current[i].ID == uint(id) {
			found = true
			continue
		}
		remaining = append(remaining, &current[i])
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("invoice not found"))
		return
	}

	vc.Cache.Set(c.Request.Context(), store.TableInvoices, remaining)
	utils.RespondJSON(c, http.StatusOK, "Invoice deleted", gin.H{"invoice_id": id})
}

// InvoicePDF renders the customer-facing invoice.
func (vc *InvoiceController) InvoicePDF(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("invoice_id"))
	invoice, ok := vc.findInvoice(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("invoice not found"))
		return
	}
	settings := vc.Cache.GetOne()
	symbol := "Rs."

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, settings.ShopName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, settings.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Phone: %s   Email: %s", settings.Phone, settings.Email), "", 1, "L", false, 0, "")
	if settings.GST != "" {
		pdf.CellFormat(0, 5, "GSTIN: "+settings.GST, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("INVOICE #%d", invoice.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Date: "+invoice.CreatedAt, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Billed To: "+invoice.CustomerName, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Tax %", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range invoice.Items {
		amount := models.Round2(it.Qty * it.Rate)
		pdf.CellFormat(80, 7, it.Desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, strconv.FormatFloat(it.Qty, 'f', -1, 64), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", it.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%.1f", it.Tax), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}

	totalRow := func(label string, v float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(135, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%s %.2f", symbol, v), "1", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", invoice.Subtotal, false)
	totalRow("Tax", invoice.Tax, false)
	totalRow("Total", invoice.Total, true)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Status: "+invoice.Status, "", 1, "L", false, 0, "")
	if settings.Terms != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 8)
		pdf.MultiCell(0, 4, settings.Terms, "", "L", false)
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, invoice.ID))
	c.Header("Content-Type", "application/pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("invoice pdf %d: %v", invoice.ID, err)
	}
}

func (vc *InvoiceController) findInvoice(id uint) (models.Invoice, bool) {
	for _, inv := range vc.Cache.Invoices() {
		if inv.ID == id {
			return inv, true
		}
	}
	return models.Invoice{}, false
}
