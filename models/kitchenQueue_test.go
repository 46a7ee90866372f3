package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kitchenTestOrders() []Order {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	return []Order{
		{
			Order_id:     "ord-1",
			Order_number: "ORD-20260115-001",
			Table_id:     "table-1",
			Status:       OrderStatusActive,
			Created_at:   base,
			Items: []OrderItem{
				{Item_id: "a", Name: "Spring Rolls", Quantity: 1, Status: ItemStatusPending, Priority: 5, Created_at: base},
				{Item_id: "b", Name: "Tom Yum", Quantity: 2, Status: ItemStatusReady, Priority: 5, Created_at: base},
			},
		},
		{
			Order_id:     "ord-2",
			Order_number: "ORD-20260115-002",
			Table_id:     "table-2",
			Status:       OrderStatusActive,
			Created_at:   base.Add(time.Minute),
			Items: []OrderItem{
				{Item_id: "c", Name: "Pad Thai", Quantity: 1, Status: ItemStatusCooking, Priority: 2, Created_at: base.Add(time.Minute)},
				{Item_id: "d", Name: "Mango Sticky Rice", Quantity: 1, Status: ItemStatusServed, Priority: 5, Created_at: base.Add(time.Minute)},
			},
		},
	}
}

var kitchenTestTables = map[string]string{
	"table-1": "T1",
	"table-2": "T2",
}

func TestBuildKitchenQueueFiltersAndSorts(t *testing.T) {
	queue := BuildKitchenQueue(kitchenTestOrders(), kitchenTestTables)

	// Only pending and cooking items qualify; urgent (low number) first.
	require.Len(t, queue, 2)
	assert.Equal(t, "c", queue[0].ItemID)
	assert.Equal(t, "a", queue[1].ItemID)
	assert.Equal(t, "T2", queue[0].TableNumber)
}

func TestBuildKitchenQueueTieBreaksFIFO(t *testing.T) {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	orders := []Order{{
		Order_id: "ord-1",
		Table_id: "table-1",
		Status:   OrderStatusActive,
		Items: []OrderItem{
			{Item_id: "late", Status: ItemStatusPending, Priority: 5, Created_at: base.Add(time.Minute)},
			{Item_id: "early", Status: ItemStatusPending, Priority: 5, Created_at: base},
		},
	}}

	queue := BuildKitchenQueue(orders, kitchenTestTables)

	require.Len(t, queue, 2)
	assert.Equal(t, "early", queue[0].ItemID)
	assert.Equal(t, "late", queue[1].ItemID)
}

func TestBuildKitchenQueueSkipsInactiveOrders(t *testing.T) {
	orders := kitchenTestOrders()
	orders[0].Status = OrderStatusCompleted
	orders[1].Status = OrderStatusCancelled

	assert.Empty(t, BuildKitchenQueue(orders, kitchenTestTables))
}

func TestBuildKitchenOrdersKeepsReadyItems(t *testing.T) {
	result := BuildKitchenOrders(kitchenTestOrders(), kitchenTestTables)

	require.Len(t, result, 2)
	assert.Len(t, result[0].Items, 2) // pending + ready
	assert.Len(t, result[1].Items, 1) // served item dropped
}

func TestBuildKitchenOrdersDropsEmptyOrders(t *testing.T) {
	orders := []Order{{
		Order_id: "ord-1",
		Table_id: "table-1",
		Status:   OrderStatusActive,
		Items: []OrderItem{
			{Item_id: "a", Status: ItemStatusServed},
			{Item_id: "b", Status: ItemStatusCancelled},
		},
	}}

	assert.Empty(t, BuildKitchenOrders(orders, kitchenTestTables))
}
