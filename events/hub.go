// Package events pushes live updates to connected admin sessions so open
// tabs re-render without polling: badges (new enquiries, low stock), table
// refreshes after a save, and the initial data-ready signal.
package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/printdesk/printdesk/utils"
)

// Event types pushed to admin sessions.
const (
	EventDataReady   = "data_ready"
	EventTableUpdate = "table_update"
	EventLowStock    = "low_stock"
	EventEnquiryNew  = "enquiry_new"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected admin session and fans messages out to all of
// them. A write failure drops only that client's message.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
	}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// DataReady signals that the first full cache load has been attempted.
func (h *Hub) DataReady() {
	h.broadcast(Message{Event: EventDataReady})
}

// TableChanged tells sessions to re-read a table from the backend.
func (h *Hub) TableChanged(table string) {
	h.broadcast(Message{
		Event: EventTableUpdate,
		Data:  map[string]string{"table": table},
	})
}

// LowStock pushes the nav badge count of items at or under reorder level.
func (h *Hub) LowStock(count int) {
	h.broadcast(Message{
		Event: EventLowStock,
		Data:  map[string]int{"count": count},
	})
}

// EnquiryNew announces a public quote request so the badge updates live.
func (h *Hub) EnquiryNew(data interface{}) {
	h.broadcast(Message{
		Event: EventEnquiryNew,
		Data:  data,
	})
}

func (h *Hub) broadcast(msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("events: marshal failed: %v", err)
		return
	}

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("events: send failed: %v", err)
		}
	}
}
