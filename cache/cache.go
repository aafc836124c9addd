// Package cache keeps the in-memory mirror of the remote row store. Every
// read in the process goes through here; the mirror is authoritative for the
// session even while a reload is in flight.
//
// Write contract: Set synchronizes DELETIONS ONLY. Inserts and updates are
// the calling module's job: it writes directly to the remote and then
// triggers Load so server-assigned ids land in the mirror. A module that
// skips the remote write silently diverges local state from remote, so don't.
package cache

import (
	"context"
	"sync"

	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

// Notifier receives cache lifecycle events. Implemented by the websocket
// events hub; nil disables notifications.
type Notifier interface {
	DataReady()
	TableChanged(table string)
}

type Cache struct {
	remote   store.Remote
	notifier Notifier

	mu       sync.RWMutex
	tables   map[string][]store.Row
	settings models.Settings
	loaded   bool

	ready     chan struct{}
	readyOnce sync.Once
}

func New(remote store.Remote, notifier Notifier) *Cache {
	return &Cache{
		remote:   remote,
		notifier: notifier,
		tables:   make(map[string][]store.Row),
		ready:    make(chan struct{}),
	}
}

// Get returns the current snapshot for a table. A table that was never
// loaded is an empty collection, not an error.
func (c *Cache) Get(table string) []store.Row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables[table]
}

// GetOne returns the settings singleton, zero-valued when unset.
func (c *Cache) GetOne() models.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// NextID returns max(id)+1 for a table, or 1 when it is empty. Only for
// tables whose ids are client-assigned (services, portfolio); rows headed to
// the remote's own sequence must not use it.
func (c *Cache) NextID(table string) uint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var max uint
	for _, r := range c.tables[table] {
		if r.GetID() > max {
			max = r.GetID()
		}
	}
	return max + 1
}

// Set replaces a table's snapshot and reconciles deletions with the remote.
// The in-memory replace happens first so reads see the new collection
// immediately; each id present before but absent now gets one Delete,
// sequentially, and a per-row failure is logged without aborting the rest.
// Rows present in both collections are never deleted, even if their content
// changed; content changes are the caller's Update responsibility.
// The settings singleton lives in its own field, so that table is routed to
// SetSettings; stashing it in the generic map would hide it from GetOne.
func (c *Cache) Set(ctx context.Context, table string, rows []store.Row) {
	if table == store.TableSettings {
		var s models.Settings
		if len(rows) > 0 {
			s = *(rows[0].(*models.Settings))
		}
		c.SetSettings(ctx, s)
		return
	}

	c.mu.Lock()
	old := c.tables[table]
	c.tables[table] = rows

	keep := make(map[uint]struct{}, len(rows))
	for _, r := range rows {
		keep[r.GetID()] = struct{}{}
	}
	var removed []uint
	for _, r := range old {
		if _, ok := keep[r.GetID()]; !ok {
			removed = append(removed, r.GetID())
		}
	}
	c.mu.Unlock()

	for _, id := range removed {
		if err := c.remote.Delete(ctx, table, id); err != nil {
			utils.ErrorLogger.Printf("cache: delete %s/%d failed: %v", table, id, err)
		}
	}

	if c.notifier != nil {
		c.notifier.TableChanged(table)
	}
}

// SetSettings replaces the settings singleton wholesale and upserts it to
// the remote under its fixed id. A remote failure is logged, not returned;
// the in-memory record stays replaced either way.
func (c *Cache) SetSettings(ctx context.Context, s models.Settings) {
	s.ID = models.SettingsID
	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()

	if err := c.remote.Update(ctx, store.TableSettings, models.SettingsID, &s); err != nil {
		utils.ErrorLogger.Printf("cache: settings upsert failed: %v", err)
	}
	if c.notifier != nil {
		c.notifier.TableChanged(store.TableSettings)
	}
}

// Load refreshes every table from the remote. A fetch failure for one table
// keeps its previous snapshot and does not stop the others. After all tables
// have been attempted the cache counts as loaded and the ready channel
// closes (once).
func (c *Cache) Load(ctx context.Context) {
	for _, table := range store.Tables {
		rows, err := c.remote.SelectAll(ctx, table)
		if err != nil {
			utils.ErrorLogger.Printf("cache: could not load table %q: %v", table, err)
			continue
		}
		c.mu.Lock()
		if table == store.TableSettings {
			if len(rows) > 0 {
				c.settings = *(rows[0].(*models.Settings))
			} else {
				c.settings = models.Settings{}
			}
		} else {
			c.tables[table] = rows
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	c.loaded = true
	c.mu.Unlock()

	c.readyOnce.Do(func() { close(c.ready) })
	if c.notifier != nil {
		c.notifier.DataReady()
	}
}

// Loaded reports whether a full load has been attempted.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Ready is closed after the first full Load attempt.
func (c *Cache) Ready() <-chan struct{} {
	return c.ready
}

// Typed snapshot accessors for the controllers. Each returns value copies so
// callers can build mutated collections for Set without racing the mirror.

func (c *Cache) Customers() []models.Customer {
	rows := c.Get(store.TableCustomers)
	out := make([]models.Customer, len(rows))
	for i, r := range rows {
		out[i] = *(r.(*models.Customer))
	}
	return out
}

func (c *Cache) Orders() []models.Order {
	rows := c.Get(store.TableOrders)
	out := make([]models.Order, len(rows))
	for i, r := range rows {
		out[i] = *(r.(*models.Order))
	}
	return out
}

func (c *Cache) Inventory() []models.InventoryItem {
	rows := c.Get(store.TableInventory)
	out := make([]models.InventoryItem, len(rows))
	for i, r := range rows {
		out[i] = *(r.(*models.InventoryItem))
	}
	return out
}

func (c *Cache) Invoices() []models.Invoice {
	rows := c.Get(store.TableInvoices)
	out := make([]models.Invoice, len(rows))
	for i, r := range rows {
		out[i] = *(r.(*models.Invoice))
	}
	return out
}

func (c *Cache) Enquiries() []models.Enquiry {
	rows := c.Get(store.TableEnquiries)
	out := make([]models.Enquiry, len(rows))
	for i, r := range rows {
		out[i] = *(r.(*models.Enquiry))
	}
	return out
}

func (c *Cache) Services() []models.Service {
	rows := c.Get(store.TableServices)
	out := make([]models.Service, len(rows))
	for i, r := range rows {
		out[i] = *(r.(*models.Service))
	}
	return out
}

func (c *Cache) Portfolio() []models.PortfolioItem {
	rows := c.Get(store.TablePortfolio)
	out := make([]models.PortfolioItem, len(rows))
	for i, r := range rows {
		out[i] = *(r.(*models.PortfolioItem))
	}
	return out
}
