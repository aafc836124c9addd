package Controllers_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
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

func setupReportEnv(t *testing.T, dsn string) (*gin.Engine, *cache.Cache, store.Remote) {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:"+dsn+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.Invoice{}, &models.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	remote := store.NewGorm(db)
	dataCache := cache.New(remote, nil)
	dataCache.Load(context.Background())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := controllers.NewReportController(dataCache)
	router.GET("/reports/export/csv", ctrl.ExportOrdersCSV)

	return router, dataCache, remote
}

func exportCSV(t *testing.T, router *gin.Engine, path string) [][]string {
	req, _ := http.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))

	records, err := csv.NewReader(strings.NewReader(rr.Body.String())).ReadAll()
	assert.NoError(t, err)
	return records
}

func TestExportOrdersCSVHeaderAndRow(t *testing.T) {
	router, dataCache, remote := setupReportEnv(t, "reporttest1")
	ctx := context.Background()

	today := utils.Today()
	_, err := remote.Insert(ctx, store.TableOrders, &models.Order{
		CustomerID:   1,
		CustomerName: "Asha Prints",
		JobType:      "Flyers",
		Qty:          250,
		PaperType:    "Matte 300gsm",
		Deadline:     "2026-09-20",
		AssignedTo:   "Ravi",
		Amount:       1250.5,
		Status:       models.OrderStatusPending,
		CreatedAt:    today,
	})
	assert.NoError(t, err)
	dataCache.Load(ctx)

	records := exportCSV(t, router, "/reports/export/csv")
	assert.Len(t, records, 2)
	assert.Equal(t, []string{"ID", "Date", "Customer", "Job Type", "Qty", "Paper", "Deadline", "Assigned To", "Amount", "Status"}, records[0])

	row := records[1]
	assert.Equal(t, today, row[1])
	assert.Equal(t, "Asha Prints", row[2])
	assert.Equal(t, "Flyers", row[3])
	assert.Equal(t, "250", row[4])
	assert.Equal(t, "Matte 300gsm", row[5])
	assert.Equal(t, "2026-09-20", row[6])
	assert.Equal(t, "Ravi", row[7])
	assert.Equal(t, "1250.50", row[8])
	assert.Equal(t, models.OrderStatusPending, row[9])
}

func TestExportOrdersCSVRangeExcludesOldOrders(t *testing.T) {
	router, dataCache, remote := setupReportEnv(t, "reporttest2")
	ctx := context.Background()

	_, err := remote.Insert(ctx, store.TableOrders, &models.Order{
		CustomerID: 1, CustomerName: "Current", JobType: "Flyers", Qty: 1,
		Status: models.OrderStatusPending, CreatedAt: utils.Today(),
	})
	assert.NoError(t, err)
	_, err = remote.Insert(ctx, store.TableOrders, &models.Order{
		CustomerID: 2, CustomerName: "Ancient", JobType: "Banners", Qty: 1,
		Status: models.OrderStatusDelivered, CreatedAt: "2019-01-15",
	})
	assert.NoError(t, err)
	dataCache.Load(ctx)

	all := exportCSV(t, router, "/reports/export/csv")
	assert.Len(t, all, 3)

	year := exportCSV(t, router, "/reports/export/csv?range=year")
	assert.Len(t, year, 2)
	assert.Equal(t, "Current", year[1][2])
}
