package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/database"
	"github.com/printdesk/printdesk/events"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/services"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

type EnquiryController struct {
	Cache     *cache.Cache
	Remote    store.Remote
	Hub       *events.Hub
	Converter *services.Converter
}

func NewEnquiryController(c *cache.Cache, remote store.Remote, hub *events.Hub) *EnquiryController {
	return &EnquiryController{
		Cache:     c,
		Remote:    remote,
		Hub:       hub,
		Converter: services.NewConverter(c, remote),
	}
}

type enquiryInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Qty     string `json:"qty"`
	Message string `json:"message"`
}

// SubmitEnquiry is the public, unauthenticated quote form. The id is derived
// from the millisecond clock before insert so it cannot collide with seeded
// rows; the uuid reference is what the submitter keeps.
func (ec *EnquiryController) SubmitEnquiry(c *gin.Context) {
	var input enquiryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	enquiry := models.Enquiry{
		ID:        ec.nextEnquiryID(),
		Reference: uuid.NewString(),
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Service:   input.Service,
		Qty:       input.Qty,
		Message:   input.Message,
		Date:      time.Now().Format(time.RFC3339),
		Status:    models.EnquiryStatusNew,
	}

	if _, err := ec.Remote.Insert(c.Request.Context(), store.TableEnquiries, &enquiry); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ec.Cache.Load(c.Request.Context())
	ec.snapshot()

	if ec.Hub != nil {
		ec.Hub.EnquiryNew(gin.H{"id": enquiry.ID, "name": enquiry.Name, "service": enquiry.Service})
	}
	utils.InfoLogger.Printf("enquiry %d received from %q", enquiry.ID, enquiry.Name)

	utils.RespondJSON(c, http.StatusCreated, "Enquiry received", gin.H{"reference": enquiry.Reference})
}

// GetAllEnquiries supports an optional ?status= filter.
func (ec *EnquiryController) GetAllEnquiries(c *gin.Context) {
	status := c.Query("status")
	enquiries := ec.Cache.Enquiries()
	filtered := make([]models.Enquiry, 0, len(enquiries))
	for _, e := range enquiries {
		if status != "" && e.Status != status {
			continue
		}
		filtered = append(filtered, e)
	}
	utils.RespondJSON(c, http.StatusOK, "List of enquiries", filtered)
}

// GetEnquiry returns one enquiry. Opening a New enquiry marks it Contacted,
// since viewing it is the first touch.
func (ec *EnquiryController) GetEnquiry(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("enquiry_id"))
	enquiry, ok := ec.findEnquiry(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("enquiry not found"))
		return
	}

	if enquiry.Status == models.EnquiryStatusNew {
		enquiry.Status = models.EnquiryStatusContacted
		if err := ec.Remote.Update(c.Request.Context(), store.TableEnquiries, enquiry.ID, &enquiry); err != nil {
			utils.ErrorLogger.Printf("enquiry %d: contacted mark failed: %v", enquiry.ID, err)
		} else {
			ec.Cache.Load(c.Request.Context())
			ec.snapshot()
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Enquiry detail", enquiry)
}

// UpdateEnquiryStatus
func (ec *EnquiryController) UpdateEnquiryStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("enquiry_id"))
	enquiry, ok := ec.findEnquiry(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("enquiry not found"))
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidEnquiryStatus(input.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", input.Status))
		return
	}
	if input.Status == models.EnquiryStatusConverted {
		utils.RespondError(c, http.StatusBadRequest, errors.New("use the convert operation to mark an enquiry converted"))
		return
	}

	enquiry.Status = input.Status
	if err := ec.Remote.Update(c.Request.Context(), store.TableEnquiries, enquiry.ID, &enquiry); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ec.Cache.Load(c.Request.Context())
	ec.snapshot()

	utils.RespondJSON(c, http.StatusOK, "Enquiry status updated", enquiry)
}

type convertInput struct {
	Deadline   string  `json:"deadline" binding:"required"`
	Amount     float64 `json:"amount"`
	AssignedTo string  `json:"assigned_to"`
}

// ConvertEnquiry turns an enquiry into a customer and a pending order.
func (ec *EnquiryController) ConvertEnquiry(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("enquiry_id"))
	enquiry, ok := ec.findEnquiry(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("enquiry not found"))
		return
	}
	if enquiry.Status == models.EnquiryStatusConverted {
		utils.RespondError(c, http.StatusConflict, errors.New("enquiry is already converted"))
		return
	}

	var input convertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderID, err := ec.Converter.Convert(c.Request.Context(), enquiry, services.ConvertInput{
		Deadline:   input.Deadline,
		Amount:     input.Amount,
		AssignedTo: input.AssignedTo,
	})
	if err != nil {
		if errors.Is(err, services.ErrDeadlineRequired) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ec.snapshot()

	if ec.Hub != nil {
		ec.Hub.TableChanged(store.TableOrders)
	}
	utils.RespondJSON(c, http.StatusOK, "Enquiry converted", gin.H{"order_id": orderID})
}

// DeleteEnquiry
func (ec *EnquiryController) DeleteEnquiry(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("enquiry_id"))

	current := ec.Cache.Enquiries()
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
		utils.RespondError(c, http.StatusNotFound, errors.New("enquiry not found"))
		return
	}

	ec.Cache.Set(c.Request.Context(), store.TableEnquiries, remaining)
	ec.snapshot()
	utils.RespondJSON(c, http.StatusOK, "Enquiry deleted", gin.H{"enquiry_id": id})
}

// ClearEnquiries deletes every enquiry in one sweep.
func (ec *EnquiryController) ClearEnquiries(c *gin.Context) {
	ec.Cache.Set(c.Request.Context(), store.TableEnquiries, nil)
	ec.snapshot()
	utils.RespondJSON(c, http.StatusOK, "All enquiries cleared", nil)
}

// nextEnquiryID derives an id from the millisecond clock, stepping past any
// id already taken so same-millisecond submissions cannot collide.
func (ec *EnquiryController) nextEnquiryID() uint {
	taken := make(map[uint]struct{})
	for _, e := range ec.Cache.Enquiries() {
		taken[e.ID] = struct{}{}
	}
	id := uint(time.Now().UnixMilli() % 1_000_000_000)
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id++
	}
}

func (ec *EnquiryController) findEnquiry(id uint) (models.Enquiry, bool) {
	for _, e := range ec.Cache.Enquiries() {
		if e.ID == id {
			return e, true
		}
	}
	return models.Enquiry{}, false
}

func (ec *EnquiryController) snapshot() {
	if err := database.SaveEnquirySnapshot("", ec.Cache.Enquiries()); err != nil {
		utils.ErrorLogger.Printf("enquiry snapshot: %v", err)
	}
}
