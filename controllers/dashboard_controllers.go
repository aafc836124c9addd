package controllers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/database"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/utils"
)

type DashboardController struct {
	Cache *cache.Cache
}

func NewDashboardController(c *cache.Cache) *DashboardController {
	return &DashboardController{Cache: c}
}

// GetDashboard assembles everything the landing page renders in one call:
// KPI cards, the 7-day revenue strip, the status donut, recent orders and
// the low-stock panel.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	orders := dc.Cache.Orders()
	invoices := dc.Cache.Invoices()
	inventory := dc.Cache.Inventory()
	now := time.Now()

	today := now.Format("2006-01-02")
	monthPrefix := now.Format("2006-01")

	var pending, overdue, todayOrders int
	statusCounts := make(map[string]int, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		statusCounts[s] = 0
	}
	for _, o := range orders {
		statusCounts[o.Status]++
		if o.Status != models.OrderStatusDelivered {
			pending++
		}
		if o.Overdue(now) {
			overdue++
		}
		if o.CreatedAt == today {
			todayOrders++
		}
	}

	var unpaidAmount, monthRevenue float64
	var unpaidCount int
	for _, inv := range invoices {
		if inv.Status != models.InvoiceStatusPaid {
			unpaidAmount += inv.Total
			unpaidCount++
		} else if strings.HasPrefix(inv.CreatedAt, monthPrefix) {
			monthRevenue += inv.Total
		}
	}

	var lowStock []models.InventoryItem
	for _, it := range inventory {
		if it.LowStock() {
			lowStock = append(lowStock, it)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard", gin.H{
		"kpis": gin.H{
			"total_customers": len(dc.Cache.Customers()),
			"total_orders":    len(orders),
			"today_orders":    todayOrders,
			"month_revenue":   models.Round2(monthRevenue),
			"pending_orders":  pending,
			"overdue_orders":  overdue,
			"unpaid_amount":   models.Round2(unpaidAmount),
			"unpaid_invoices": unpaidCount,
			"new_enquiries":   database.NewEnquiryCount(""),
		},
		"revenue_7d":     dc.revenueLast7Days(now),
		"status_counts":  statusCounts,
		"recent_orders":  recentOrders(orders, 5),
		"low_stock":      lowStock,
	})
}

// revenueLast7Days buckets paid-invoice totals by creation date, oldest day
// first, today last.
func (dc *DashboardController) revenueLast7Days(now time.Time) []gin.H {
	totals := make(map[string]float64, 7)
	days := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		days = append(days, day)
		totals[day] = 0
	}

	for _, inv := range dc.Cache.Invoices() {
		if inv.Status != models.InvoiceStatusPaid {
			continue
		}
		if _, ok := totals[inv.CreatedAt]; ok {
			totals[inv.CreatedAt] += inv.Total
		}
	}

	out := make([]gin.H, 0, 7)
	for _, day := range days {
		out = append(out, gin.H{"date": day, "revenue": models.Round2(totals[day])})
	}
	return out
}

// recentOrders returns the n newest orders by id descending.
func recentOrders(orders []models.Order, n int) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
