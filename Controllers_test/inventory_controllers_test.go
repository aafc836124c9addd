package Controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/controllers"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

func setupInventoryEnv(t *testing.T, dsn string) (*gin.Engine, *cache.Cache, store.Remote) {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:"+dsn+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.InventoryItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	remote := store.NewGorm(db)
	dataCache := cache.New(remote, nil)
	dataCache.Load(context.Background())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := controllers.NewInventoryController(dataCache, remote, nil)
	router.GET("/inventory", ctrl.GetAllItems)
	router.GET("/inventory/low-stock", ctrl.GetLowStock)
	router.POST("/inventory", ctrl.CreateItem)
	router.POST("/inventory/:item_id/adjust", ctrl.AdjustStock)
	router.DELETE("/inventory/:item_id", ctrl.DeleteItem)

	return router, dataCache, remote
}

func seedItem(t *testing.T, remote store.Remote, dataCache *cache.Cache, qty, reorder float64) uint {
	item := models.InventoryItem{Name: "A4 Paper", Category: "Paper", Qty: qty, Unit: "reams", ReorderLevel: reorder}
	row, err := remote.Insert(context.Background(), store.TableInventory, &item)
	assert.NoError(t, err)
	dataCache.Load(context.Background())
	return row.GetID()
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func itemQty(dataCache *cache.Cache, id uint) float64 {
	for _, it := range dataCache.Inventory() {
		if it.ID == id {
			return it.Qty
		}
	}
	return -1
}

func TestAdjustStockAdd(t *testing.T) {
	router, dataCache, remote := setupInventoryEnv(t, "invtest1")
	id := seedItem(t, remote, dataCache, 5, 2)

	rr := postJSON(t, router, "/inventory/"+itoa(id)+"/adjust", map[string]interface{}{
		"action": "add", "amount": 10,
	}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 15.0, itemQty(dataCache, id))
}

func TestAdjustStockDeductGuardsNegative(t *testing.T) {
	router, dataCache, remote := setupInventoryEnv(t, "invtest2")
	id := seedItem(t, remote, dataCache, 5, 2)

	rr := postJSON(t, router, "/inventory/"+itoa(id)+"/adjust", map[string]interface{}{
		"action": "deduct", "amount": 10,
	}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	// Quantity is untouched by the rejected adjustment.
	assert.Equal(t, 5.0, itemQty(dataCache, id))

	rr = postJSON(t, router, "/inventory/"+itoa(id)+"/adjust", map[string]interface{}{
		"action": "deduct", "amount": 3,
	}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2.0, itemQty(dataCache, id))
}

func TestAdjustStockRejectsUnknownAction(t *testing.T) {
	router, dataCache, remote := setupInventoryEnv(t, "invtest3")
	id := seedItem(t, remote, dataCache, 5, 2)

	rr := postJSON(t, router, "/inventory/"+itoa(id)+"/adjust", map[string]interface{}{
		"action": "set", "amount": 3,
	}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLowStockListIncludesBoundary(t *testing.T) {
	router, dataCache, remote := setupInventoryEnv(t, "invtest4")
	seedItem(t, remote, dataCache, 2, 2)  // at boundary: low
	seedItem(t, remote, dataCache, 10, 2) // healthy

	req, _ := http.NewRequest("GET", "/inventory/low-stock", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	assert.Len(t, items, 1)
}

func TestDeleteItemReachesRemote(t *testing.T) {
	router, dataCache, remote := setupInventoryEnv(t, "invtest5")
	id := seedItem(t, remote, dataCache, 5, 2)

	req, _ := http.NewRequest("DELETE", "/inventory/"+itoa(id), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rows, err := remote.SelectAll(context.Background(), store.TableInventory)
	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, dataCache.Inventory())
}
