package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

type OrderController struct {
	Cache  *cache.Cache
	Remote store.Remote
}

func NewOrderController(c *cache.Cache, remote store.Remote) *OrderController {
	return &OrderController{Cache: c, Remote: remote}
}

// GetAllOrders supports optional ?status=, ?customer= and ?overdue=true
// filters.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	status := c.Query("status")
	customerIDStr := c.Query("customer")
	overdueOnly := c.Query("overdue") == "true"
	now := time.Now()

	orders := oc.Cache.Orders()
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if customerIDStr != "" {
			cid, err := strconv.Atoi(customerIDStr)
			if err != nil || o.CustomerID != uint(cid) {
				continue
			}
		}
		if overdueOnly && !o.Overdue(now) {
			continue
		}
		filtered = append(filtered, o)
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", filtered)
}

// GetOrder
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))
	order, ok := oc.findOrder(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

type orderInput struct {
	CustomerID   uint    `json:"customer_id" binding:"required"`
	JobType      string  `json:"job_type" binding:"required"`
	Qty          int     `json:"qty"`
	PaperType    string  `json:"paper_type"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	Instructions string  `json:"instructions"`
	Deadline     string  `json:"deadline" binding:"required"`
	AssignedTo   string  `json:"assigned_to"`
	Amount       float64 `json:"amount"`
}

// CreateOrder snapshots the customer name onto the order so the job card
// stays readable after a customer delete.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input orderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer *models.Customer
	for _, cust := range oc.Cache.Customers() {
		if cust.ID == input.CustomerID {
			customer = &cust
			break
		}
	}
	if customer == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("customer not found"))
		return
	}
	if input.Qty <= 0 {
		input.Qty = 1
	}

	order := models.Order{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		JobType:      input.JobType,
		Qty:          input.Qty,
		PaperType:    input.PaperType,
		Size:         input.Size,
		Color:        input.Color,
		Instructions: input.Instructions,
		Deadline:     input.Deadline,
		Status:       models.OrderStatusPending,
		AssignedTo:   input.AssignedTo,
		Amount:       input.Amount,
		CreatedAt:    utils.Today(),
	}
	inserted, err := oc.Remote.Insert(c.Request.Context(), store.TableOrders, &order)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	oc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusCreated, "Order created", inserted)
}

// UpdateOrder replaces the editable fields. Status changes go through
// UpdateOrderStatus, not here.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))
	order, ok := oc.findOrder(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	var input orderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if input.Qty <= 0 {
		input.Qty = 1
	}

	order.JobType = input.JobType
	order.Qty = input.Qty
	order.PaperType = input.PaperType
	order.Size = input.Size
	order.Color = input.Color
	order.Instructions = input.Instructions
	order.Deadline = input.Deadline
	order.AssignedTo = input.AssignedTo
	order.Amount = input.Amount

	if err := oc.Remote.Update(c.Request.Context(), store.TableOrders, order.ID, &order); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	oc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// UpdateOrderStatus moves an order along the pipeline. Any stage can jump to
// any other; the board allows corrections backwards.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))
	order, ok := oc.findOrder(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", input.Status))
		return
	}

	order.Status = input.Status
	if err := oc.Remote.Update(c.Request.Context(), store.TableOrders, order.ID, &order); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	oc.Cache.Load(c.Request.Context())

	utils.InfoLogger.Printf("order %d status -> %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	current := oc.Cache.Orders()
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
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	oc.Cache.Set(c.Request.Context(), store.TableOrders, remaining)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}

// JobSlipPDF renders the printable job slip handed to the press operator.
func (oc *OrderController) JobSlipPDF(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))
	order, ok := oc.findOrder(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	settings := oc.Cache.GetOne()

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, settings.ShopName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, settings.Address, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, fmt.Sprintf("JOB SLIP #%d", order.ID), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(38, 7, label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "1", 1, "L", false, 0, "")
	}
	row("Customer", order.CustomerName)
	row("Job Type", order.JobType)
	row("Quantity", strconv.Itoa(order.Qty))
	row("Paper", order.PaperType)
	row("Size", order.Size)
	row("Color", order.Color)
	row("Deadline", order.Deadline)
	row("Assigned To", order.AssignedTo)
	row("Status", order.Status)

	if order.Instructions != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Instructions", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, order.Instructions, "1", "L", false)
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="job-slip-%d.pdf"`, order.ID))
	c.Header("Content-Type", "application/pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("job slip pdf for order %d: %v", order.ID, err)
	}
}

func (oc *OrderController) findOrder(id uint) (models.Order, bool) {
	for _, o := range oc.Cache.Orders() {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}
