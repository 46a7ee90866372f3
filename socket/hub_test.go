package socket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan []byte, sendBufferSize)}
}

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case payload := <-c.send:
		var ev Event
		require.NoError(t, json.Unmarshal(payload, &ev))
		return ev
	default:
		t.Fatal("expected an event, send buffer is empty")
		return Event{}
	}
}

func TestEmitReachesJoinedRoomOnly(t *testing.T) {
	hub := NewHub()
	kitchen := newTestClient(hub)
	waiter := newTestClient(hub)
	hub.join(kitchen, RoomKitchen+":branch-1")
	hub.join(waiter, RoomWaiter+":branch-1")

	hub.EmitToKitchen("branch-1", "order:new", map[string]string{"orderId": "ord-1"})

	ev := receiveEvent(t, kitchen)
	assert.Equal(t, "order:new", ev.Event)
	assert.Empty(t, waiter.send)
}

func TestEmitScopedPerBranch(t *testing.T) {
	hub := NewHub()
	branch1 := newTestClient(hub)
	branch2 := newTestClient(hub)
	hub.join(branch1, RoomKitchen+":branch-1")
	hub.join(branch2, RoomKitchen+":branch-2")

	hub.EmitToKitchen("branch-1", "order:new", nil)

	assert.Len(t, branch1.send, 1)
	assert.Empty(t, branch2.send)
}

func TestEmitToBranchFansOutToAllRoles(t *testing.T) {
	hub := NewHub()
	kitchen := newTestClient(hub)
	waiter := newTestClient(hub)
	cashier := newTestClient(hub)
	hub.join(kitchen, RoomKitchen+":branch-1")
	hub.join(waiter, RoomWaiter+":branch-1")
	hub.join(cashier, RoomCashier+":branch-1")

	hub.EmitToBranch("branch-1", "order:cancelled", map[string]string{"reason": "kitchen closed"})

	for _, c := range []*Client{kitchen, waiter, cashier} {
		ev := receiveEvent(t, c)
		assert.Equal(t, "order:cancelled", ev.Event)
	}
}

func TestEmitToEmptyRoomIsNoOp(t *testing.T) {
	hub := NewHub()

	// Must not panic or block.
	hub.EmitToWaiters("branch-1", "item:ready", nil)
}

func TestRejoinMovesClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.join(client, RoomKitchen+":branch-1")
	hub.join(client, RoomWaiter+":branch-1")

	hub.EmitToKitchen("branch-1", "order:new", nil)
	assert.Empty(t, client.send)

	hub.EmitToWaiters("branch-1", "item:ready", nil)
	assert.Len(t, client.send, 1)
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.join(client, RoomKitchen+":branch-1")
	hub.leave(client)

	hub.EmitToKitchen("branch-1", "order:new", nil)

	assert.Empty(t, client.send)
	assert.Empty(t, client.room)
}

func TestSlowConsumerIsSkipped(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(hub)
	hub.join(slow, RoomKitchen+":branch-1")

	for i := 0; i < sendBufferSize+10; i++ {
		hub.EmitToKitchen("branch-1", "order:new", i)
	}

	// Overflow is dropped, never blocks the publisher.
	assert.Len(t, slow.send, sendBufferSize)
}

func TestEventWireFormat(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.join(client, RoomWaiter+":branch-1")

	hub.EmitToWaiters("branch-1", "item:cancelled", map[string]interface{}{
		"orderId": "ord-1",
		"itemId":  "item-1",
		"reason":  "changed mind",
	})

	payload := <-client.send
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "item:cancelled", decoded["event"])
	data, ok := decoded["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ord-1", data["orderId"])
}
