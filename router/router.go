package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/controllers"
	"github.com/printdesk/printdesk/events"
	"github.com/printdesk/printdesk/middlewares"
	"github.com/printdesk/printdesk/store"
)

// SetupRouter wires every endpoint. Public routes serve the static website
// (catalog, portfolio, quote form) and auth; everything under /admin requires
// a token, with the dashboard, reports and danger zone limited to admins.
func SetupRouter(db *gorm.DB, dataCache *cache.Cache, remote store.Remote, hub *events.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())
	// Broad per-IP limiter; the strict one below additionally guards the
	// abuse-prone public endpoints.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	settingsCtrl := controllers.NewSettingsController(dataCache, remote)
	customerCtrl := controllers.NewCustomerController(dataCache, remote)
	orderCtrl := controllers.NewOrderController(dataCache, remote)
	inventoryCtrl := controllers.NewInventoryController(dataCache, remote, hub)
	invoiceCtrl := controllers.NewInvoiceController(dataCache, remote)
	enquiryCtrl := controllers.NewEnquiryController(dataCache, remote, hub)
	serviceCtrl := controllers.NewServiceController(dataCache, remote)
	portfolioCtrl := controllers.NewPortfolioController(dataCache, remote)
	dashboardCtrl := controllers.NewDashboardController(dataCache)
	reportCtrl := controllers.NewReportController(dataCache)
	streamCtrl := controllers.NewStreamController(dataCache, hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// The website reads these without auth.
	r.GET("/services", serviceCtrl.GetAllServices)
	r.GET("/portfolio", portfolioCtrl.GetAllPortfolio)

	// Rate limited: auth and the public quote form.
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
		public.POST("/enquiries", enquiryCtrl.SubmitEnquiry)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.Profile)
	auth.POST("/logout", userCtrl.Logout)

	// SETTINGS
	auth.GET("/settings", settingsCtrl.GetSettings)
	auth.PUT("/settings", settingsCtrl.UpdateSettings)
	auth.GET("/settings/backup", settingsCtrl.ExportBackup)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomer)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrder)
	auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	auth.GET("/orders/:order_id/slip", orderCtrl.JobSlipPDF)

	// INVENTORY
	auth.GET("/inventory", inventoryCtrl.GetAllItems)
	auth.GET("/inventory/stats", inventoryCtrl.GetStats)
	auth.GET("/inventory/low-stock", inventoryCtrl.GetLowStock)
	auth.POST("/inventory", inventoryCtrl.CreateItem)
	auth.PATCH("/inventory/:item_id", inventoryCtrl.UpdateItem)
	auth.POST("/inventory/:item_id/adjust", inventoryCtrl.AdjustStock)
	auth.DELETE("/inventory/:item_id", inventoryCtrl.DeleteItem)

	// INVOICES
	auth.GET("/invoices", invoiceCtrl.GetAllInvoices)
	auth.GET("/invoices/stats", invoiceCtrl.GetStats)
	auth.POST("/invoices", invoiceCtrl.CreateInvoice)
	auth.GET("/invoices/:invoice_id", invoiceCtrl.GetInvoice)
	auth.PATCH("/invoices/:invoice_id", invoiceCtrl.UpdateInvoice)
	auth.PATCH("/invoices/:invoice_id/status", invoiceCtrl.UpdateInvoiceStatus)
	auth.DELETE("/invoices/:invoice_id", invoiceCtrl.DeleteInvoice)
	auth.GET("/invoices/:invoice_id/pdf", invoiceCtrl.InvoicePDF)

	// ENQUIRIES
	auth.GET("/enquiries", enquiryCtrl.GetAllEnquiries)
	auth.GET("/enquiries/:enquiry_id", enquiryCtrl.GetEnquiry)
	auth.PATCH("/enquiries/:enquiry_id/status", enquiryCtrl.UpdateEnquiryStatus)
	auth.POST("/enquiries/:enquiry_id/convert", enquiryCtrl.ConvertEnquiry)
	auth.DELETE("/enquiries/:enquiry_id", enquiryCtrl.DeleteEnquiry)

	// SERVICES & PORTFOLIO (editing)
	auth.POST("/services", serviceCtrl.CreateService)
	auth.PATCH("/services/:service_id", serviceCtrl.UpdateService)
	auth.DELETE("/services/:service_id", serviceCtrl.DeleteService)
	auth.POST("/portfolio", portfolioCtrl.CreatePortfolioItem)
	auth.PATCH("/portfolio/:item_id", portfolioCtrl.UpdatePortfolioItem)
	auth.DELETE("/portfolio/:item_id", portfolioCtrl.DeletePortfolioItem)

	// ADMIN-ONLY: dashboard, reports, danger zone
	adminOnly := auth.Group("/")
	adminOnly.Use(middlewares.RequireAdmin())
	{
		adminOnly.GET("/dashboard", dashboardCtrl.GetDashboard)
		adminOnly.GET("/reports", reportCtrl.GetReport)
		adminOnly.GET("/reports/export/csv", reportCtrl.ExportOrdersCSV)
		adminOnly.GET("/reports/export/xlsx", reportCtrl.ExportOrdersXLSX)
		adminOnly.GET("/reports/export/json", reportCtrl.ExportJSON)
		adminOnly.GET("/reports/revenue-chart", reportCtrl.RevenueChartPNG)
		adminOnly.DELETE("/enquiries", enquiryCtrl.ClearEnquiries)
		adminOnly.POST("/settings/reset", settingsCtrl.ResetData)
	}

	// WebSocket event feed; the token rides the query string here.
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/events", streamCtrl.Stream)
	}

	return r
}
