// Package database holds the first-run seeder and the best-effort local
// snapshot files that live outside the remote store.
package database

import (
	"context"
	"os"

	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

// SeedMarkerPath guards the demo seed: the seeder runs once and drops this
// file, so wiping the database without deleting the marker keeps it empty.
const SeedMarkerPath = ".printdesk_seeded"

// Seed inserts the demo dataset through the remote on first run. A seed
// failure is logged and the marker is not written, so the next start
// retries.
func Seed(ctx context.Context, remote store.Remote, markerPath string) {
	if markerPath == "" {
		markerPath = SeedMarkerPath
	}
	if _, err := os.Stat(markerPath); err == nil {
		return
	}

	settings := models.Settings{
		ID:         models.SettingsID,
		ShopName:   "PrintMaster Press",
		OwnerName:  "Rajesh Kumar",
		Address:    "IIT Patna, Bihar 801103",
		Phone:      "7654064878",
		Email:      "info@printmaster.in",
		GST:        "10AABCU9603R1Z1",
		Currency:   "₹",
		TaxRate:    18,
		DateFormat: "DD/MM/YYYY",
	}
	if err := remote.Update(ctx, store.TableSettings, models.SettingsID, &settings); err != nil {
		utils.ErrorLogger.Printf("seed: settings: %v", err)
		return
	}

	customers := []models.Customer{
		{Name: "Amit Sharma", Phone: "9871234567", Email: "amit@example.com", Address: "Patna, Bihar", CreatedAt: "2026-01-10"},
		{Name: "Priya Enterprises", Phone: "9812345678", Email: "priya@biz.com", GST: "10AABCU9603R1Z2", Address: "Gaya, Bihar", CreatedAt: "2026-01-15"},
		{Name: "Sunrise School", Phone: "9834567890", Email: "sunrise@school.in", Address: "Nalanda, Bihar", CreatedAt: "2026-01-20"},
		{Name: "Rohan Traders", Phone: "9823456789", Email: "rohan@traders.com", GST: "10AABCU9603R1Z3", Address: "Muzaffarpur, Bihar", CreatedAt: "2026-02-01"},
		{Name: "City Hospital", Phone: "9845678901", Email: "admin@cityhospital.in", GST: "10AABCU9603R1Z4", Address: "Patna, Bihar", CreatedAt: "2026-02-10"},
	}
	custIDs := make([]uint, len(customers))
	for i := range customers {
		inserted, err := remote.Insert(ctx, store.TableCustomers, &customers[i])
		if err != nil {
			utils.ErrorLogger.Printf("seed: customer %q: %v", customers[i].Name, err)
			return
		}
		custIDs[i] = inserted.GetID()
	}

	orders := []models.Order{
		{CustomerID: custIDs[0], CustomerName: "Amit Sharma", JobType: "Business Cards", Qty: 500, PaperType: "350 GSM Art", Size: "3.5x2 inch", Color: "4C+4C", Instructions: "Rounded corners, matte lamination", Deadline: "2026-02-20", Status: models.OrderStatusDelivered, AssignedTo: "Rahul", Amount: 1200, CreatedAt: "2026-02-10"},
		{CustomerID: custIDs[1], CustomerName: "Priya Enterprises", JobType: "Pamphlets", Qty: 2000, PaperType: "130 GSM Art", Size: "A4", Color: "4C+0", Instructions: "Tri-fold", Deadline: "2026-02-25", Status: models.OrderStatusDelivered, AssignedTo: "Suresh", Amount: 5400, CreatedAt: "2026-02-12"},
		{CustomerID: custIDs[2], CustomerName: "Sunrise School", JobType: "Books", Qty: 300, PaperType: "70 GSM Maplitho", Size: "A5", Color: "1C+1C", Instructions: "Perfect binding, 80 pages each", Deadline: "2026-03-05", Status: models.OrderStatusInProgress, AssignedTo: "Rahul", Amount: 28000, CreatedAt: "2026-02-18"},
		{CustomerID: custIDs[3], CustomerName: "Rohan Traders", JobType: "Banners", Qty: 10, PaperType: "Flex", Size: "4x3 feet", Color: "4C+0", Instructions: "Eyelet holes on edges", Deadline: "2026-03-01", Status: models.OrderStatusReady, AssignedTo: "Suresh", Amount: 3500, CreatedAt: "2026-02-20"},
		{CustomerID: custIDs[0], CustomerName: "Amit Sharma", JobType: "Letterhead", Qty: 1000, PaperType: "90 GSM Bond", Size: "A4", Color: "2C+0", Deadline: "2026-03-10", Status: models.OrderStatusPending, AssignedTo: "Rahul", Amount: 2200, CreatedAt: "2026-02-26"},
		{CustomerID: custIDs[4], CustomerName: "City Hospital", JobType: "Prescription Pads", Qty: 5000, PaperType: "60 GSM Maplitho", Size: "A5", Color: "2C+0", Instructions: "Sequential numbering required", Deadline: "2026-03-08", Status: models.OrderStatusInProgress, AssignedTo: "Suresh", Amount: 9800, CreatedAt: "2026-02-27"},
		{CustomerID: custIDs[1], CustomerName: "Priya Enterprises", JobType: "Visiting Cards", Qty: 250, PaperType: "300 GSM Ivory", Size: "3.5x2 inch", Color: "4C+4C", Instructions: "UV spot on logo", Deadline: "2026-02-28", Status: models.OrderStatusPending, AssignedTo: "Rahul", Amount: 950, CreatedAt: "2026-02-28"},
	}
	orderIDs := make([]uint, len(orders))
	for i := range orders {
		inserted, err := remote.Insert(ctx, store.TableOrders, &orders[i])
		if err != nil {
			utils.ErrorLogger.Printf("seed: order %q: %v", orders[i].JobType, err)
			return
		}
		orderIDs[i] = inserted.GetID()
	}

	inventory := []models.InventoryItem{
		{Name: "Art Paper 130 GSM", Category: "Paper", Qty: 850, Unit: "Sheets", ReorderLevel: 200, CostPerUnit: 2.5, CreatedAt: "2026-01-01"},
		{Name: "Art Paper 350 GSM", Category: "Paper", Qty: 120, Unit: "Sheets", ReorderLevel: 150, CostPerUnit: 6, CreatedAt: "2026-01-01"},
		{Name: "Maplitho 70 GSM", Category: "Paper", Qty: 2000, Unit: "Sheets", ReorderLevel: 500, CostPerUnit: 1.2, CreatedAt: "2026-01-01"},
		{Name: "Bond Paper 90 GSM", Category: "Paper", Qty: 500, Unit: "Sheets", ReorderLevel: 200, CostPerUnit: 1.8, CreatedAt: "2026-01-01"},
		{Name: "Cyan Ink", Category: "Ink", Qty: 3, Unit: "Litres", ReorderLevel: 2, CostPerUnit: 1200, CreatedAt: "2026-01-01"},
		{Name: "Magenta Ink", Category: "Ink", Qty: 2.5, Unit: "Litres", ReorderLevel: 2, CostPerUnit: 1200, CreatedAt: "2026-01-01"},
		{Name: "Yellow Ink", Category: "Ink", Qty: 3.2, Unit: "Litres", ReorderLevel: 2, CostPerUnit: 1200, CreatedAt: "2026-01-01"},
		{Name: "Black Ink", Category: "Ink", Qty: 1.5, Unit: "Litres", ReorderLevel: 2, CostPerUnit: 900, CreatedAt: "2026-01-01"},
		{Name: "Matte Lamination Film", Category: "Finishing", Qty: 15, Unit: "Rolls", ReorderLevel: 5, CostPerUnit: 450, CreatedAt: "2026-01-01"},
		{Name: "Flex Material", Category: "Printing Material", Qty: 80, Unit: "Sq.ft", ReorderLevel: 30, CostPerUnit: 18, CreatedAt: "2026-01-01"},
		{Name: "Spiral Binding Wire", Category: "Binding", Qty: 40, Unit: "Spools", ReorderLevel: 10, CostPerUnit: 120, CreatedAt: "2026-01-01"},
		{Name: "PVA Glue", Category: "Binding", Qty: 4, Unit: "Litres", ReorderLevel: 5, CostPerUnit: 300, CreatedAt: "2026-01-01"},
	}
	for i := range inventory {
		if _, err := remote.Insert(ctx, store.TableInventory, &inventory[i]); err != nil {
			utils.ErrorLogger.Printf("seed: inventory %q: %v", inventory[i].Name, err)
			return
		}
	}

	invoices := []models.Invoice{
		{OrderID: &orderIDs[0], CustomerID: custIDs[0], CustomerName: "Amit Sharma", Items: models.LineItems{{Desc: "Business Cards 500 pcs", Qty: 1, Rate: 1200, Tax: 18}}, Status: models.InvoiceStatusPaid, CreatedAt: "2026-02-21"},
		{OrderID: &orderIDs[1], CustomerID: custIDs[1], CustomerName: "Priya Enterprises", Items: models.LineItems{{Desc: "Pamphlets A4 Tri-fold 2000 pcs", Qty: 1, Rate: 5400, Tax: 18}}, Status: models.InvoiceStatusPaid, CreatedAt: "2026-02-26"},
		{OrderID: &orderIDs[3], CustomerID: custIDs[3], CustomerName: "Rohan Traders", Items: models.LineItems{{Desc: "Flex Banners 4x3 feet x10", Qty: 1, Rate: 3500, Tax: 18}}, Status: models.InvoiceStatusUnpaid, CreatedAt: "2026-02-28"},
	}
	for i := range invoices {
		invoices[i].ComputeTotals()
		if _, err := remote.Insert(ctx, store.TableInvoices, &invoices[i]); err != nil {
			utils.ErrorLogger.Printf("seed: invoice %d: %v", i+1, err)
			return
		}
	}

	if err := os.WriteFile(markerPath, []byte("1\n"), 0o644); err != nil {
		utils.ErrorLogger.Printf("seed: could not write marker: %v", err)
		return
	}
	utils.InfoLogger.Println("Seeded demo data.")
}
