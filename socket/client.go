package socket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 32
)

// joinMessage is the role announcement a terminal sends after connecting:
// {"event": "kitchen:join", "branchId": "..."} and likewise for waiter and
// cashier. Group membership is the only way a client receives events.
type joinMessage struct {
	Event    string `json:"event"`
	BranchID string `json:"branchId"`
}

var joinEvents = map[string]string{
	"kitchen:join": RoomKitchen,
	"waiter:join":  RoomWaiter,
	"cashier:join": RoomCashier,
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string
}

// readPump consumes join announcements until the connection closes, then
// removes the client from its room.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var join joinMessage
		if err := json.Unmarshal(message, &join); err != nil {
			continue
		}

		role, ok := joinEvents[join.Event]
		if !ok || join.BranchID == "" {
			continue
		}
		c.hub.join(c, role+":"+join.BranchID)
	}
}

// writePump flushes queued events to the connection and keeps it alive with
// pings. Runs until the send channel closes or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
