package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/events"
	"github.com/printdesk/printdesk/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamController upgrades admin sessions to the live event feed.
type StreamController struct {
	Cache *cache.Cache
	Hub   *events.Hub
}

func NewStreamController(c *cache.Cache, hub *events.Hub) *StreamController {
	return &StreamController{Cache: c, Hub: hub}
}

// Stream upgrades the connection and parks it in the hub. If the cache is
// already loaded the data-ready event is sent immediately so a late-joining
// tab does not wait for the next broadcast. The replay must happen before
// Register: once the hub knows the connection its broadcasts write to it,
// and a gorilla conn allows only one writer at a time.
func (sc *StreamController) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade: %v", err)
		return
	}

	if sc.Cache.Loaded() {
		conn.WriteJSON(events.Message{Event: events.EventDataReady})
	}

	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	sc.Hub.Register(conn, roleStr)

	// Reads are only for detecting the close; clients never send.
	go func() {
		defer sc.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
