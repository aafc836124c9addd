package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

type CustomerController struct {
	Cache  *cache.Cache
	Remote store.Remote
}

func NewCustomerController(c *cache.Cache, remote store.Remote) *CustomerController {
	return &CustomerController{Cache: c, Remote: remote}
}

type customerSummary struct {
	models.Customer
	OrderCount  int     `json:"order_count"`
	TotalBilled float64 `json:"total_billed"`
}

// GetAllCustomers supports ?search= matching name or phone. Each row carries
// the customer's order count and billed total for the list view.
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))

	orderCounts := make(map[uint]int)
	for _, o := range cc.Cache.Orders() {
		orderCounts[o.CustomerID]++
	}
	billed := make(map[uint]float64)
	for _, inv := range cc.Cache.Invoices() {
		billed[inv.CustomerID] += inv.Total
	}

	customers := cc.Cache.Customers()
	summaries := make([]customerSummary, 0, len(customers))
	for _, cust := range customers {
		if search != "" && !strings.Contains(strings.ToLower(cust.Name), search) && !strings.Contains(cust.Phone, search) {
			continue
		}
		summaries = append(summaries, customerSummary{
			Customer:    cust,
			OrderCount:  orderCounts[cust.ID],
			TotalBilled: models.Round2(billed[cust.ID]),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", summaries)
}

// GetCustomer returns one customer with their orders and invoices attached.
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("customer_id"))

	var found *models.Customer
	for _, cust := range cc.Cache.Customers() {
		if cust.ID == uint(id) {
			found = &cust
			break
		}
	}
	if found == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
		return
	}

	var orders []models.Order
	for _, o := range cc.Cache.Orders() {
		if o.CustomerID == found.ID {
			orders = append(orders, o)
		}
	}
	var invoices []models.Invoice
	var billed float64
	for _, inv := range cc.Cache.Invoices() {
		if inv.CustomerID == found.ID {
			invoices = append(invoices, inv)
			billed += inv.Total
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Customer detail", gin.H{
		"customer":     found,
		"orders":       orders,
		"invoices":     invoices,
		"total_orders": len(orders),
		"total_billed": models.Round2(billed),
	})
}

type customerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	GST     string `json:"gst"`
	Address string `json:"address"`
}

// CreateCustomer writes to the remote and reloads so the server-assigned id
// lands in the mirror before the response.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input customerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		GST:       input.GST,
		Address:   input.Address,
		CreatedAt: utils.Today(),
	}
	inserted, err := cc.Remote.Insert(c.Request.Context(), store.TableCustomers, &customer)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	cc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusCreated, "Customer created", inserted)
}

// UpdateCustomer
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("customer_id"))

	var existing *models.Customer
	for _, cust := range cc.Cache.Customers() {
		if cust.ID == uint(id) {
			existing = &cust
			break
		}
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
		return
	}

	var input customerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	existing.Name = input.Name
	existing.Phone = input.Phone
	existing.Email = input.Email
	existing.GST = input.GST
	existing.Address = input.Address

	if err := cc.Remote.Update(c.Request.Context(), store.TableCustomers, existing.ID, existing); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	cc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusOK, "Customer updated", existing)
}

// DeleteCustomer removes the customer only. Their orders and invoices keep
// the denormalized name and stay displayable.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("customer_id"))

	current := cc.Cache.Customers()
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
		utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
		return
	}

	cc.Cache.Set(c.Request.Context(), store.TableCustomers, remaining)
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", gin.H{"customer_id": id})
}
