package models

import (
	"sort"
	"time"
)

// KitchenQueueEntry is one row of the flattened, cross-order preparation
// queue shown on the kitchen display.
type KitchenQueueEntry struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	TableNumber string    `json:"tableNumber"`
	ItemID      string    `json:"itemId"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Note        string    `json:"note"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}

// KitchenOrder groups the items of one order for the kitchen ticket view.
// It includes ready items, which still need kitchen visibility until served.
type KitchenOrder struct {
	OrderID     string             `json:"orderId"`
	OrderNumber string             `json:"orderNumber"`
	TableNumber string             `json:"tableNumber"`
	Note        string             `json:"note"`
	CreatedAt   time.Time          `json:"createdAt"`
	Items       []KitchenOrderItem `json:"items"`
}

type KitchenOrderItem struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
	Status   string `json:"status"`
}

// BuildKitchenQueue flattens pending and cooking items of the given orders
// into queue entries sorted by (priority asc, createdAt asc). Lower priority
// number means higher urgency; ties break FIFO on item creation time.
// The projection is recomputed on every query, not maintained incrementally.
func BuildKitchenQueue(orders []Order, tableNumbers map[string]string) []KitchenQueueEntry {
	queue := []KitchenQueueEntry{}

	for _, order := range orders {
		if !order.IsActive() {
			continue
		}
		for _, item := range order.Items {
			if item.Status != ItemStatusPending && item.Status != ItemStatusCooking {
				continue
			}
			queue = append(queue, KitchenQueueEntry{
				OrderID:     order.Order_id,
				OrderNumber: order.Order_number,
				TableNumber: tableNumbers[order.Table_id],
				ItemID:      item.Item_id,
				Name:        item.Name,
				Quantity:    item.Quantity,
				Note:        item.Note,
				Status:      item.Status,
				Priority:    item.Priority,
				CreatedAt:   item.Created_at,
			})
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].Priority != queue[j].Priority {
			return queue[i].Priority < queue[j].Priority
		}
		return queue[i].CreatedAt.Before(queue[j].CreatedAt)
	})

	return queue
}

// BuildKitchenOrders groups orders for the kitchen ticket view, keeping
// items in pending, cooking or ready status. Orders left with no qualifying
// items are dropped entirely.
func BuildKitchenOrders(orders []Order, tableNumbers map[string]string) []KitchenOrder {
	result := []KitchenOrder{}

	for _, order := range orders {
		if !order.IsActive() {
			continue
		}

		items := []KitchenOrderItem{}
		for _, item := range order.Items {
			switch item.Status {
			case ItemStatusPending, ItemStatusCooking, ItemStatusReady:
				items = append(items, KitchenOrderItem{
					ItemID:   item.Item_id,
					Name:     item.Name,
					Quantity: item.Quantity,
					Note:     item.Note,
					Status:   item.Status,
				})
			}
		}

		if len(items) == 0 {
			continue
		}

		result = append(result, KitchenOrder{
			OrderID:     order.Order_id,
			OrderNumber: order.Order_number,
			TableNumber: tableNumbers[order.Table_id],
			Note:        order.Note,
			CreatedAt:   order.Created_at,
			Items:       items,
		})
	}

	return result
}
