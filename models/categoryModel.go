package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category_id string             `bson:"category_id" json:"category_id"`
	Branch_id   *string            `bson:"branch_id" json:"branch_id"` // nil = shared across branches
	Name        string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Slug        string             `bson:"slug" json:"slug"`
	Image       *string            `bson:"image" json:"image"`
	Sort_order  int                `bson:"sort_order" json:"sort_order"`
	Is_active   *bool              `bson:"is_active" json:"is_active"`
	Created_at  time.Time          `bson:"created_at" json:"created_at"`
	Updated_at  time.Time          `bson:"updated_at" json:"updated_at"`
}
