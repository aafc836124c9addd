package Controllers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/controllers"
	"github.com/printdesk/printdesk/events"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

func setupStreamEnv(t *testing.T, dsn string) (*httptest.Server, *events.Hub) {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:"+dsn+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	remote := store.NewGorm(db)
	hub := events.NewHub()
	dataCache := cache.New(remote, hub)
	dataCache.Load(context.Background())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := controllers.NewStreamController(dataCache, hub)
	router.GET("/ws/events", ctrl.Stream)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, hub
}

// Clients joining while saves are broadcasting must still get their replay
// frame first, and the hub must never write a frame that interleaves with it.
func TestStreamReplaySendsDataReadyFirstDuringBroadcasts(t *testing.T) {
	srv, hub := setupStreamEnv(t, "streamtest1")

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				hub.TableChanged(store.TableOrders)
			}
		}
	}()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events"
	for i := 0; i < 20; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		assert.NoError(t, err)

		var msg events.Message
		assert.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, events.EventDataReady, msg.Event)
		conn.Close()
	}

	close(stop)
	wg.Wait()
}
