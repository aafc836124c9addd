package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

type SettingsController struct {
	Cache  *cache.Cache
	Remote store.Remote
}

func NewSettingsController(c *cache.Cache, remote store.Remote) *SettingsController {
	return &SettingsController{Cache: c, Remote: remote}
}

// GetSettings returns the shop profile singleton.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Shop settings", sc.Cache.GetOne())
}

// UpdateSettings replaces the whole profile. The form always submits every
// field, so a partial body zeroes what it omits.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var input models.Settings
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if input.ShopName == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("shop name is required"))
		return
	}
	if input.TaxRate < 0 || input.TaxRate > 100 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("tax rate must be between 0 and 100"))
		return
	}

	sc.Cache.SetSettings(c.Request.Context(), input)
	utils.RespondJSON(c, http.StatusOK, "Settings saved", sc.Cache.GetOne())
}

// ExportBackup dumps every table plus the profile as one JSON document the
// admin can download and keep.
func (sc *SettingsController) ExportBackup(c *gin.Context) {
	backup := gin.H{
		"exportedAt": time.Now().Format(time.RFC3339),
		"settings":   sc.Cache.GetOne(),
		"customers":  sc.Cache.Customers(),
		"orders":     sc.Cache.Orders(),
		"inventory":  sc.Cache.Inventory(),
		"invoices":   sc.Cache.Invoices(),
		"enquiries":  sc.Cache.Enquiries(),
		"services":   sc.Cache.Services(),
		"portfolio":  sc.Cache.Portfolio(),
	}
	c.Header("Content-Disposition", `attachment; filename="printdesk-backup.json"`)
	c.JSON(http.StatusOK, backup)
}

// ResetData wipes every business table. The shop profile survives the wipe.
func (sc *SettingsController) ResetData(c *gin.Context) {
	ctx := c.Request.Context()
	for _, table := range store.Tables {
		if table == store.TableSettings {
			continue
		}
		sc.Cache.Set(ctx, table, nil)
	}
	utils.InfoLogger.Println("danger zone: all business data cleared")
	utils.RespondJSON(c, http.StatusOK, "All data cleared", nil)
}
