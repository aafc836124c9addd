package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/xuri/excelize/v2"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/utils"
)

type ReportController struct {
	Cache *cache.Cache
}

func NewReportController(c *cache.Cache) *ReportController {
	return &ReportController{Cache: c}
}

// rangeBounds maps a report period to a half-open [start, end) window.
// "month" starts on the 1st of the current month, so the last day of the
// previous month falls outside it. "all" has no lower bound.
func rangeBounds(period string, now time.Time) (time.Time, time.Time) {
	end := now.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	switch period {
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), end
	case "quarter":
		qStart := time.Month(((int(now.Month())-1)/3)*3 + 1)
		return time.Date(now.Year(), qStart, 1, 0, 0, 0, 0, now.Location()), end
	case "year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), end
	default: // all
		return time.Time{}, end
	}
}

func inRange(dateStr string, start, end time.Time) bool {
	d := utils.ParseDate(dateStr)
	if d.IsZero() {
		return false
	}
	return !d.Before(start) && d.Before(end)
}

// GetReport builds the business report for ?range=month|quarter|year|all
// (default month): KPIs, six months of revenue, job-type breakdown, top
// customers and the order/payment status summaries.
func (rc *ReportController) GetReport(c *gin.Context) {
	period := c.DefaultQuery("range", "month")
	now := time.Now()
	start, end := rangeBounds(period, now)

	var orders []models.Order
	for _, o := range rc.Cache.Orders() {
		if inRange(o.CreatedAt, start, end) {
			orders = append(orders, o)
		}
	}
	var invoices []models.Invoice
	for _, inv := range rc.Cache.Invoices() {
		if inRange(inv.CreatedAt, start, end) {
			invoices = append(invoices, inv)
		}
	}

	var revenue, outstanding float64
	for _, inv := range invoices {
		if inv.Status == models.InvoiceStatusPaid {
			revenue += inv.Total
		} else {
			outstanding += inv.Total
		}
	}

	currency := rc.Cache.GetOne().Currency
	utils.RespondJSON(c, http.StatusOK, "Business report", gin.H{
		"range": period,
		"kpis": gin.H{
			"orders":              len(orders),
			"revenue":             models.Round2(revenue),
			"revenue_display":     utils.FormatCurrency(currency, models.Round2(revenue)),
			"outstanding":         models.Round2(outstanding),
			"outstanding_display": utils.FormatCurrency(currency, models.Round2(outstanding)),
			"avg_order":           averageOrderValue(orders),
		},
		"monthly_revenue": rc.monthlyRevenue(now),
		"job_types":       jobTypeBreakdown(orders),
		"top_customers":   topCustomers(invoices, 5),
		"status_summary":  statusSummary(orders),
		"payment_summary": paymentSummary(invoices),
	})
}

func averageOrderValue(orders []models.Order) float64 {
	if len(orders) == 0 {
		return 0
	}
	var total float64
	for _, o := range orders {
		total += o.Amount
	}
	return models.Round2(total / float64(len(orders)))
}

// monthlyRevenue returns paid-invoice totals for the last six calendar
// months, oldest first.
func (rc *ReportController) monthlyRevenue(now time.Time) []gin.H {
	type bucket struct {
		label string
		total float64
	}
	buckets := make([]bucket, 0, 6)
	index := make(map[string]int, 6)
	for i := 5; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		key := m.Format("2006-01")
		index[key] = len(buckets)
		buckets = append(buckets, bucket{label: m.Format("Jan 2006")})
	}

	for _, inv := range rc.Cache.Invoices() {
		if inv.Status != models.InvoiceStatusPaid {
			continue
		}
		d := utils.ParseDate(inv.CreatedAt)
		if d.IsZero() {
			continue
		}
		if i, ok := index[d.Format("2006-01")]; ok {
			buckets[i].total += inv.Total
		}
	}

	out := make([]gin.H, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, gin.H{"month": b.label, "revenue": models.Round2(b.total)})
	}
	return out
}

func jobTypeBreakdown(orders []models.Order) []gin.H {
	counts := make(map[string]int)
	for _, o := range orders {
		counts[o.JobType]++
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})
	out := make([]gin.H, 0, len(types))
	for _, t := range types {
		out = append(out, gin.H{"job_type": t, "count": counts[t]})
	}
	return out
}

// topCustomers ranks by paid-invoice revenue within the range.
func topCustomers(invoices []models.Invoice, n int) []gin.H {
	type entry struct {
		name  string
		total float64
	}
	totals := make(map[uint]*entry)
	for _, inv := range invoices {
		if inv.Status != models.InvoiceStatusPaid {
			continue
		}
		e, ok := totals[inv.CustomerID]
		if !ok {
			e = &entry{name: inv.CustomerName}
			totals[inv.CustomerID] = e
		}
		e.total += inv.Total
	}
	entries := make([]*entry, 0, len(totals))
	for _, e := range totals {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].total != entries[j].total {
			return entries[i].total > entries[j].total
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{"customer": e.name, "revenue": models.Round2(e.total)})
	}
	return out
}

func statusSummary(orders []models.Order) map[string]int {
	counts := make(map[string]int, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

func paymentSummary(invoices []models.Invoice) map[string]int {
	counts := map[string]int{
		models.InvoiceStatusUnpaid:  0,
		models.InvoiceStatusPartial: 0,
		models.InvoiceStatusPaid:    0,
	}
	for _, inv := range invoices {
		counts[inv.Status]++
	}
	return counts
}

// ExportOrdersCSV writes the order book for the selected range as CSV.
func (rc *ReportController) ExportOrdersCSV(c *gin.Context) {
	period := c.DefaultQuery("range", "all")
	start, end := rangeBounds(period, time.Now())

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"ID", "Date", "Customer", "Job Type", "Qty", "Paper", "Deadline", "Assigned To", "Amount", "Status"})
	for _, o := range rc.Cache.Orders() {
		if !inRange(o.CreatedAt, start, end) {
			continue
		}
		w.Write([]string{
			strconv.FormatUint(uint64(o.ID), 10),
			o.CreatedAt,
			o.CustomerName,
			o.JobType,
			strconv.Itoa(o.Qty),
			o.PaperType,
			o.Deadline,
			o.AssignedTo,
			fmt.Sprintf("%.2f", o.Amount),
			o.Status,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportOrdersXLSX writes the same order book as a spreadsheet.
func (rc *ReportController) ExportOrdersXLSX(c *gin.Context) {
	period := c.DefaultQuery("range", "all")
	start, end := rangeBounds(period, time.Now())

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Date", "Customer", "Job Type", "Qty", "Paper", "Deadline", "Assigned To", "Amount", "Status"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"1", h)
	}

	rowN := 2
	for _, o := range rc.Cache.Orders() {
		if !inRange(o.CreatedAt, start, end) {
			continue
		}
		values := []interface{}{
			o.ID, o.CreatedAt, o.CustomerName, o.JobType, o.Qty,
			o.PaperType, o.Deadline, o.AssignedTo, o.Amount, o.Status,
		}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowN), v)
		}
		rowN++
	}

	c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		utils.ErrorLogger.Printf("xlsx export: %v", err)
	}
}

// RevenueChartPNG renders the six-month revenue bars as an image for
// embedding in printed reports.
func (rc *ReportController) RevenueChartPNG(c *gin.Context) {
	months := rc.monthlyRevenue(time.Now())

	bars := make([]chart.Value, 0, len(months))
	for _, m := range months {
		bars = append(bars, chart.Value{
			Label: m["month"].(string),
			Value: m["revenue"].(float64),
		})
	}

	graph := chart.BarChart{
		Title:    "Revenue (last 6 months)",
		Height:   400,
		BarWidth: 60,
		Bars:     bars,
	}

	c.Header("Content-Type", "image/png")
	if err := graph.Render(chart.PNG, c.Writer); err != nil {
		utils.ErrorLogger.Printf("revenue chart: %v", err)
	}
}

// ExportJSON dumps every table with an export timestamp.
func (rc *ReportController) ExportJSON(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="printdesk-export.json"`)
	c.JSON(http.StatusOK, gin.H{
		"exportedAt": time.Now().Format(time.RFC3339),
		"settings":   rc.Cache.GetOne(),
		"customers":  rc.Cache.Customers(),
		"orders":     rc.Cache.Orders(),
		"inventory":  rc.Cache.Inventory(),
		"invoices":   rc.Cache.Invoices(),
		"enquiries":  rc.Cache.Enquiries(),
		"services":   rc.Cache.Services(),
		"portfolio":  rc.Cache.Portfolio(),
	})
}
