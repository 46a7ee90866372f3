package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Completed and cancelled are terminal.
const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses. The only permitted transition is unpaid -> paid.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Item statuses. Served and cancelled are terminal: a served item can never
// be cancelled, and neither state can be left once entered.
const (
	ItemStatusPending   = "pending"
	ItemStatusCooking   = "cooking"
	ItemStatusReady     = "ready"
	ItemStatusServed    = "served"
	ItemStatusCancelled = "cancelled"
)

const (
	ItemPriorityDefault = 5
	ItemPriorityMin     = 1
	ItemPriorityMax     = 10
)

// OrderItem is one line within an order. Name and price are snapshots taken
// from the menu item at creation time; later catalog changes never alter
// placed orders.
type OrderItem struct {
	Item_id      string    `bson:"item_id" json:"item_id"`
	Menu_item_id string    `bson:"menu_item_id" json:"menu_item_id" validate:"required"`
	Name         string    `bson:"name" json:"name" validate:"required"`
	Price        int64     `bson:"price" json:"price" validate:"gte=0"`
	Quantity     int       `bson:"quantity" json:"quantity" validate:"required,gte=1"`
	Note         string    `bson:"note" json:"note"`
	Status       string    `bson:"status" json:"status"`
	Priority     int       `bson:"priority" json:"priority" validate:"gte=1,lte=10"`
	Created_at   time.Time `bson:"created_at" json:"created_at"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Order_id      string             `bson:"order_id" json:"order_id"`
	Order_number  string             `bson:"order_number" json:"order_number"`
	Branch_id     string             `bson:"branch_id" json:"branch_id" validate:"required"`
	Table_id      string             `bson:"table_id" json:"table_id" validate:"required"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Status        string             `bson:"status" json:"status"`
	Subtotal      int64              `bson:"subtotal" json:"subtotal"`
	Discount      int64              `bson:"discount" json:"discount"`
	Total         int64              `bson:"total" json:"total"`
	Promotion_id  *string            `bson:"promotion_id" json:"promotion_id"`
	Payment_status string            `bson:"payment_status" json:"payment_status"`
	Payment_method string            `bson:"payment_method" json:"payment_method"`
	Note          string             `bson:"note" json:"note"`
	Cancel_reason string             `bson:"cancel_reason" json:"cancel_reason"`
	Completed_at  *time.Time         `bson:"completed_at" json:"completed_at"`
	Version       int64              `bson:"version" json:"version"`
	Created_at    time.Time          `bson:"created_at" json:"created_at"`
	Updated_at    time.Time          `bson:"updated_at" json:"updated_at"`
}

// CalculateTotals recomputes the derived money fields from the item list.
// Cancelled items are excluded from the subtotal; the total never goes
// negative no matter how large the discount is. Must be called before every
// save that touched items or the discount.
func (o *Order) CalculateTotals() {
	var subtotal int64
	for _, item := range o.Items {
		if item.Status == ItemStatusCancelled {
			continue
		}
		subtotal += item.Price * int64(item.Quantity)
	}
	o.Subtotal = subtotal
	o.Total = subtotal - o.Discount
	if o.Total < 0 {
		o.Total = 0
	}
}

// ApplyPromotion records a promotion on the order and recomputes the money
// fields. An order takes at most one promotion over its lifetime; a second
// code is refused, never swapped in.
func (o *Order) ApplyPromotion(p *Promotion) (bool, string) {
	if o.Promotion_id != nil {
		return false, "Promotion already applied"
	}
	if valid, reason := p.IsValid(o.Subtotal, o.Branch_id); !valid {
		return false, reason
	}
	promotionId := p.Promotion_id
	o.Promotion_id = &promotionId
	o.Discount = p.CalculateDiscount(o.Subtotal)
	o.CalculateTotals()
	return true, ""
}

// FindItem returns a pointer into the Items slice so callers can mutate the
// item in place and then persist the whole aggregate atomically.
func (o *Order) FindItem(itemID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].Item_id == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

func (o *Order) IsActive() bool {
	return o.Status == OrderStatusActive
}

var validItemStatuses = map[string]bool{
	ItemStatusPending:   true,
	ItemStatusCooking:   true,
	ItemStatusReady:     true,
	ItemStatusServed:    true,
	ItemStatusCancelled: true,
}

func IsValidItemStatus(status string) bool {
	return validItemStatuses[status]
}

// IsTerminalItemStatus reports whether an item status permits no further
// transitions. Skip transitions between live states (e.g. pending -> served)
// are deliberately not blocked; only leaving a terminal state is.
func IsTerminalItemStatus(status string) bool {
	return status == ItemStatusServed || status == ItemStatusCancelled
}
