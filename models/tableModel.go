package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
	TableStatusReserved  = "reserved"
)

// Table holds a non-owning back-reference to its active order. A table with
// a non-nil Current_order_id cannot accept a new order until the reference
// is cleared by payment or cancellation.
type Table struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Table_id         string             `bson:"table_id" json:"table_id"`
	Branch_id        string             `bson:"branch_id" json:"branch_id" validate:"required"`
	Table_number     string             `bson:"table_number" json:"table_number" validate:"required"`
	Qr_code          string             `bson:"qr_code" json:"qr_code"`
	Capacity         int                `bson:"capacity" json:"capacity" validate:"gte=0"`
	Status           string             `bson:"status" json:"status"`
	Current_order_id *string            `bson:"current_order_id" json:"current_order_id"`
	Created_at       time.Time          `bson:"created_at" json:"created_at"`
	Updated_at       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Occupied reports whether the table currently seats an order. Either signal
// counts: a stale status and a stale back-reference both block new seating
// until reconciled.
func (t *Table) Occupied() bool {
	return t.Status == TableStatusOccupied || t.Current_order_id != nil
}

// Occupy seats an order at the table. One active order per table: seating a
// second order is refused, never overwritten.
func (t *Table) Occupy(orderID string) bool {
	if t.Occupied() {
		return false
	}
	t.Status = TableStatusOccupied
	t.Current_order_id = &orderID
	return true
}

// Release clears the seat once its order leaves the active state.
func (t *Table) Release() {
	t.Status = TableStatusAvailable
	t.Current_order_id = nil
}
