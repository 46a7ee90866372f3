package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem prices are stored in the smallest currency unit. Orders snapshot
// name and price at item-creation time and only check Is_available then.
type MenuItem struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Menu_item_id     string             `bson:"menu_item_id" json:"menu_item_id"`
	Category_id      *string            `bson:"category_id" json:"category_id" validate:"required"`
	Branch_id        *string            `bson:"branch_id" json:"branch_id"` // nil = available in all branches
	Name             *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Slug             string             `bson:"slug" json:"slug"`
	Description      string             `bson:"description" json:"description"`
	Price            *int64             `bson:"price" json:"price" validate:"required,gte=0"`
	Image            *string            `bson:"image" json:"image"`
	Is_available     *bool              `bson:"is_available" json:"is_available"`
	Preparation_time int                `bson:"preparation_time" json:"preparation_time"`
	Sort_order       int                `bson:"sort_order" json:"sort_order"`
	Created_at       time.Time          `bson:"created_at" json:"created_at"`
	Updated_at       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Available treats a missing flag as available, matching the catalog default.
func (m *MenuItem) Available() bool {
	return m.Is_available == nil || *m.Is_available
}
