package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

// fakeRemote records every call and serves canned table contents.
type fakeRemote struct {
	tables     map[string][]store.Row
	failTables map[string]bool
	deletes    []string
	updates    []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		tables:     make(map[string][]store.Row),
		failTables: make(map[string]bool),
	}
}

func (f *fakeRemote) SelectAll(ctx context.Context, table string) ([]store.Row, error) {
	if f.failTables[table] {
		return nil, errors.New("remote unavailable")
	}
	return f.tables[table], nil
}

func (f *fakeRemote) Insert(ctx context.Context, table string, row store.Row) (store.Row, error) {
	f.tables[table] = append(f.tables[table], row)
	return row, nil
}

func (f *fakeRemote) Update(ctx context.Context, table string, id uint, row store.Row) error {
	f.updates = append(f.updates, key(table, id))
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, table string, id uint) error {
	f.deletes = append(f.deletes, key(table, id))
	return nil
}

func key(table string, id uint) string {
	return fmt.Sprintf("%s/%d", table, id)
}

func customerRows(ids ...uint) []store.Row {
	rows := make([]store.Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &models.Customer{ID: id, Name: "c", Phone: "1"})
	}
	return rows
}

func TestSetThenGetReturnsSameCollection(t *testing.T) {
	utils.InitLogger()
	c := cache.New(newFakeRemote(), nil)

	rows := customerRows(1, 2, 3)
	c.Set(context.Background(), store.TableCustomers, rows)

	got := c.Get(store.TableCustomers)
	assert.Equal(t, rows, got)
}

func TestSetIssuesDeletesForRemovedIdsOnly(t *testing.T) {
	utils.InitLogger()
	remote := newFakeRemote()
	c := cache.New(remote, nil)
	ctx := context.Background()

	c.Set(ctx, store.TableCustomers, customerRows(1, 2, 3))
	assert.Empty(t, remote.deletes)

	// 2 is dropped, 4 is new; only 2 gets a delete.
	c.Set(ctx, store.TableCustomers, customerRows(1, 3, 4))
	assert.Equal(t, []string{key(store.TableCustomers, 2)}, remote.deletes)

	// Unchanged replace issues nothing further.
	c.Set(ctx, store.TableCustomers, customerRows(1, 3, 4))
	assert.Len(t, remote.deletes, 1)
}

func TestNextID(t *testing.T) {
	utils.InitLogger()
	c := cache.New(newFakeRemote(), nil)
	ctx := context.Background()

	assert.Equal(t, uint(1), c.NextID(store.TableServices))

	c.Set(ctx, store.TableServices, []store.Row{
		&models.Service{ID: 3, Name: "a"},
		&models.Service{ID: 7, Name: "b"},
	})
	assert.Equal(t, uint(8), c.NextID(store.TableServices))
}

func TestLoadToleratesSingleTableFailure(t *testing.T) {
	utils.InitLogger()
	remote := newFakeRemote()
	remote.tables[store.TableCustomers] = customerRows(1)
	remote.tables[store.TableOrders] = []store.Row{&models.Order{ID: 9, CustomerID: 1, CustomerName: "c"}}
	remote.failTables[store.TableOrders] = true

	c := cache.New(remote, nil)
	c.Load(context.Background())

	assert.True(t, c.Loaded())
	assert.Len(t, c.Customers(), 1)
	// The failed table keeps its previous (empty) snapshot.
	assert.Empty(t, c.Orders())

	// A later load picks the table up once the remote recovers.
	remote.failTables[store.TableOrders] = false
	c.Load(context.Background())
	assert.Len(t, c.Orders(), 1)
}

func TestLoadClosesReadyOnce(t *testing.T) {
	utils.InitLogger()
	c := cache.New(newFakeRemote(), nil)

	select {
	case <-c.Ready():
		t.Fatal("ready before any load")
	default:
	}

	c.Load(context.Background())
	c.Load(context.Background())

	select {
	case <-c.Ready():
	default:
		t.Fatal("ready not closed after load")
	}
}

func TestSetSettingsUpsertsFixedID(t *testing.T) {
	utils.InitLogger()
	remote := newFakeRemote()
	c := cache.New(remote, nil)

	c.SetSettings(context.Background(), models.Settings{ID: 42, ShopName: "Press"})

	got := c.GetOne()
	assert.Equal(t, models.SettingsID, got.ID)
	assert.Equal(t, "Press", got.ShopName)
	assert.Equal(t, []string{key(store.TableSettings, models.SettingsID)}, remote.updates)
}

// The settings singleton has its own field; a Set on that table must land
// there, not in the generic map where GetOne would never see it.
func TestSetRoutesSettingsToSingleton(t *testing.T) {
	utils.InitLogger()
	remote := newFakeRemote()
	c := cache.New(remote, nil)
	ctx := context.Background()

	c.Set(ctx, store.TableSettings, []store.Row{&models.Settings{ShopName: "Press"}})

	assert.Equal(t, "Press", c.GetOne().ShopName)
	assert.Empty(t, c.Get(store.TableSettings))
	assert.Equal(t, []string{key(store.TableSettings, models.SettingsID)}, remote.updates)

	// An empty replace resets the singleton.
	c.Set(ctx, store.TableSettings, nil)
	assert.Equal(t, models.Settings{ID: models.SettingsID}, c.GetOne())
}

type countingNotifier struct {
	ready   int
	changed []string
}

func (n *countingNotifier) DataReady()                { n.ready++ }
func (n *countingNotifier) TableChanged(table string) { n.changed = append(n.changed, table) }

func TestNotifierReceivesEvents(t *testing.T) {
	utils.InitLogger()
	notifier := &countingNotifier{}
	c := cache.New(newFakeRemote(), notifier)
	ctx := context.Background()

	c.Load(ctx)
	assert.Equal(t, 1, notifier.ready)

	c.Set(ctx, store.TableOrders, nil)
	assert.Contains(t, notifier.changed, store.TableOrders)
}
