package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/events"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

type InventoryController struct {
	Cache  *cache.Cache
	Remote store.Remote
	Hub    *events.Hub
}

func NewInventoryController(c *cache.Cache, remote store.Remote, hub *events.Hub) *InventoryController {
	return &InventoryController{Cache: c, Remote: remote, Hub: hub}
}

// GetAllItems supports ?category= and ?low=true filters.
func (ic *InventoryController) GetAllItems(c *gin.Context) {
	category := c.Query("category")
	lowOnly := c.Query("low") == "true"

	items := ic.Cache.Inventory()
	filtered := make([]models.InventoryItem, 0, len(items))
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if lowOnly && !it.LowStock() {
			continue
		}
		filtered = append(filtered, it)
	}

	utils.RespondJSON(c, http.StatusOK, "List of inventory items", filtered)
}

// GetStats returns the header cards of the inventory page.
func (ic *InventoryController) GetStats(c *gin.Context) {
	items := ic.Cache.Inventory()
	var lowCount int
	var totalValue float64
	categories := make(map[string]struct{})
	for _, it := range items {
		if it.LowStock() {
			lowCount++
		}
		totalValue += it.StockValue()
		categories[it.Category] = struct{}{}
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory stats", gin.H{
		"total_items": len(items),
		"low_stock":   lowCount,
		"stock_value": models.Round2(totalValue),
		"categories":  len(categories),
	})
}

// GetLowStock returns items at or under their reorder level.
func (ic *InventoryController) GetLowStock(c *gin.Context) {
	var low []models.InventoryItem
	for _, it := range ic.Cache.Inventory() {
		if it.LowStock() {
			low = append(low, it)
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Low stock items", low)
}

type inventoryInput struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Qty          float64 `json:"qty"`
	Unit         string  `json:"unit" binding:"required"`
	ReorderLevel float64 `json:"reorder_level"`
	CostPerUnit  float64 `json:"cost_per_unit"`
}

// CreateItem
func (ic *InventoryController) CreateItem(c *gin.Context) {
	var input inventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if input.Qty < 0 || input.ReorderLevel < 0 || input.CostPerUnit < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantities and costs cannot be negative"))
		return
	}

	item := models.InventoryItem{
		Name:         input.Name,
		Category:     input.Category,
		Qty:          input.Qty,
		Unit:         input.Unit,
		ReorderLevel: input.ReorderLevel,
		CostPerUnit:  input.CostPerUnit,
		CreatedAt:    utils.Today(),
	}
	inserted, err := ic.Remote.Insert(c.Request.Context(), store.TableInventory, &item)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ic.Cache.Load(c.Request.Context())
	ic.pushLowStock()

	utils.RespondJSON(c, http.StatusCreated, "Inventory item created", inserted)
}

// UpdateItem
func (ic *InventoryController) UpdateItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))
	item, ok := ic.findItem(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("inventory item not found"))
		return
	}

	var input inventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if input.Qty < 0 || input.ReorderLevel < 0 || input.CostPerUnit < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantities and costs cannot be negative"))
		return
	}

	item.Name = input.Name
	item.Category = input.Category
	item.Qty = input.Qty
	item.Unit = input.Unit
	item.ReorderLevel = input.ReorderLevel
	item.CostPerUnit = input.CostPerUnit

	if err := ic.Remote.Update(c.Request.Context(), store.TableInventory, item.ID, &item); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ic.Cache.Load(c.Request.Context())
	ic.pushLowStock()

	utils.RespondJSON(c, http.StatusOK, "Inventory item updated", item)
}

// AdjustStock adds or deducts quantity. A deduct past zero is rejected
// rather than clamped so a mistyped amount is caught, not silently absorbed.
func (ic *InventoryController) AdjustStock(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))
	item, ok := ic.findItem(uint(id))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("inventory item not found"))
		return
	}

	var input struct {
		Action string  `json:"action" binding:"required"`
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if input.Amount <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("amount must be positive"))
		return
	}

	switch input.Action {
	case "add":
		item.Qty += input.Amount
	case "deduct":
		if input.Amount > item.Qty {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("cannot deduct %.2f %s, only %.2f in stock", input.Amount, item.Unit, item.Qty))
			return
		}
		item.Qty -= input.Amount
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown action %q", input.Action))
		return
	}

	if err := ic.Remote.Update(c.Request.Context(), store.TableInventory, item.ID, &item); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ic.Cache.Load(c.Request.Context())
	ic.pushLowStock()

	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", item)
}

// DeleteItem
func (ic *InventoryController) DeleteItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	current := ic.Cache.Inventory()
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
		utils.RespondError(c, http.StatusNotFound, errors.New("inventory item not found"))
		return
	}

	ic.Cache.Set(c.Request.Context(), store.TableInventory, remaining)
	ic.pushLowStock()
	utils.RespondJSON(c, http.StatusOK, "Inventory item deleted", gin.H{"item_id": id})
}

func (ic *InventoryController) findItem(id uint) (models.InventoryItem, bool) {
	for _, it := range ic.Cache.Inventory() {
		if it.ID == id {
			return it, true
		}
	}
	return models.InventoryItem{}, false
}

func (ic *InventoryController) pushLowStock() {
	if ic.Hub == nil {
		return
	}
	count := 0
	for _, it := range ic.Cache.Inventory() {
		if it.LowStock() {
			count++
		}
	}
	ic.Hub.LowStock(count)
}
