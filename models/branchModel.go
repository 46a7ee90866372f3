package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Branch struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Branch_id  string             `bson:"branch_id" json:"branch_id"`
	Name       string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Address    string             `bson:"address" json:"address" validate:"required"`
	Phone      string             `bson:"phone" json:"phone"`
	Open_time  string             `bson:"open_time" json:"open_time"`
	Close_time string             `bson:"close_time" json:"close_time"`
	Is_active  *bool              `bson:"is_active" json:"is_active"`
	Created_at time.Time          `bson:"created_at" json:"created_at"`
	Updated_at time.Time          `bson:"updated_at" json:"updated_at"`
}
