package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

// ServiceController manages the public website's service catalog. Ids here
// are client-assigned through the cache's NextID, not the remote sequence.
type ServiceController struct {
	Cache  *cache.Cache
	Remote store.Remote
}

func NewServiceController(c *cache.Cache, remote store.Remote) *ServiceController {
	return &ServiceController{Cache: c, Remote: remote}
}

// GetAllServices is public; the website reads the catalog from here.
func (sc *ServiceController) GetAllServices(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of services", sc.Cache.Services())
}

type serviceInput struct {
	Name        string `json:"name" binding:"required"`
	Icon        string `json:"icon"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CreateService
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input serviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	service := models.Service{
		ID:          sc.Cache.NextID(store.TableServices),
		Name:        input.Name,
		Icon:        input.Icon,
		Price:       input.Price,
		Description: input.Description,
		Color:       input.Color,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	if _, err := sc.Remote.Insert(c.Request.Context(), store.TableServices, &service); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	sc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusCreated, "Service created", service)
}

// UpdateService
func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("service_id"))

	var existing *models.Service
	for _, s := range sc.Cache.Services() {
		if s.ID == uint(id) {
			existing = &s
			break
		}
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("service not found"))
		return
	}

	var input serviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	existing.Name = input.Name
	existing.Icon = input.Icon
	existing.Price = input.Price
	existing.Description = input.Description
	existing.Color = input.Color

	if err := sc.Remote.Update(c.Request.Context(), store.TableServices, existing.ID, existing); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	sc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusOK, "Service updated", existing)
}

// DeleteService
func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("service_id"))

	current := sc.Cache.Services()
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
		utils.RespondError(c, http.StatusNotFound, errors.New("service not found"))
		return
	}

	sc.Cache.Set(c.Request.Context(), store.TableServices, remaining)
	utils.RespondJSON(c, http.StatusOK, "Service deleted", gin.H{"service_id": id})
}
