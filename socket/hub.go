// Package socket implements the branch- and role-scoped real-time fan-out.
// Connected staff terminals join exactly one room keyed role:branchId and
// only receive events published to that room. Delivery is fire-and-forget,
// at-most-once: a disconnected or not-yet-joined client simply misses the
// event and reconciles via a GET on reconnect.
package socket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	RoomKitchen = "kitchen"
	RoomWaiter  = "waiter"
	RoomCashier = "cashier"
)

// Event is the wire format for every outbound message.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

// NewHub is called once at process startup; the hub lives for the process
// lifetime and is handed to the handlers that publish events.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Staff terminals connect from their own origins; CORS is handled
		// at the HTTP layer.
		return true
	},
}

// ServeWS upgrades an HTTP request to a websocket connection. The client is
// roomless until it sends a join announcement.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	go client.writePump()
	go client.readPump()
}

func (h *Hub) join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A client belongs to exactly one room; a second join moves it.
	if c.room != "" {
		if clients, ok := h.rooms[c.room]; ok {
			delete(clients, c)
			if len(clients) == 0 {
				delete(h.rooms, c.room)
			}
		}
	}

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	c.room = room
}

func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.room == "" {
		return
	}
	if clients, ok := h.rooms[c.room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, c.room)
		}
	}
	c.room = ""
}

// emit sends an event to every client in a room. Publishing to an empty room
// is a no-op, not an error, and a client whose buffer is full is skipped so
// the request path is never delayed by a slow terminal.
func (h *Hub) emit(room, event string, data interface{}) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("failed to encode event %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		select {
		case client.send <- payload:
		default:
			// Slow consumer; drop rather than block the publisher.
		}
	}
}

func (h *Hub) EmitToKitchen(branchID, event string, data interface{}) {
	h.emit(RoomKitchen+":"+branchID, event, data)
}

func (h *Hub) EmitToWaiters(branchID, event string, data interface{}) {
	h.emit(RoomWaiter+":"+branchID, event, data)
}

func (h *Hub) EmitToCashiers(branchID, event string, data interface{}) {
	h.emit(RoomCashier+":"+branchID, event, data)
}

// EmitToBranch fans an event to all three role rooms of a branch.
func (h *Hub) EmitToBranch(branchID, event string, data interface{}) {
	h.EmitToKitchen(branchID, event, data)
	h.EmitToWaiters(branchID, event, data)
	h.EmitToCashiers(branchID, event, data)
}
