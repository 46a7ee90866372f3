package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PromotionTypePercentage = "percentage"
	PromotionTypeFixed      = "fixed"
)

type Promotion struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Promotion_id    string             `bson:"promotion_id" json:"promotion_id"`
	Branch_id       *string            `bson:"branch_id" json:"branch_id"` // nil = valid for all branches
	Name            string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Code            string             `bson:"code" json:"code" validate:"required,min=2,max=50"`
	Type            string             `bson:"type" json:"type" validate:"required,eq=percentage|eq=fixed"`
	Value           float64            `bson:"value" json:"value" validate:"gte=0"`
	Min_order_value int64              `bson:"min_order_value" json:"min_order_value"`
	Max_discount    *int64             `bson:"max_discount" json:"max_discount"`
	Start_date      time.Time          `bson:"start_date" json:"start_date" validate:"required"`
	End_date        time.Time          `bson:"end_date" json:"end_date" validate:"required"`
	Is_active       *bool              `bson:"is_active" json:"is_active"`
	Usage_limit     *int64             `bson:"usage_limit" json:"usage_limit"`
	Used_count      int64              `bson:"used_count" json:"used_count"`
	Created_at      time.Time          `bson:"created_at" json:"created_at"`
	Updated_at      time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsValid checks the promotion against an order's subtotal and branch.
// Checks run in a fixed sequence and the first failure wins; the caller gets
// a single reason, never an aggregate.
func (p *Promotion) IsValid(orderSubtotal int64, branchID string) (bool, string) {
	now := time.Now()

	if p.Is_active != nil && !*p.Is_active {
		return false, "Promotion is inactive"
	}
	if now.Before(p.Start_date) {
		return false, "Promotion has not started"
	}
	if now.After(p.End_date) {
		return false, "Promotion has expired"
	}
	if p.Usage_limit != nil && p.Used_count >= *p.Usage_limit {
		return false, "Promotion usage limit reached"
	}
	if orderSubtotal < p.Min_order_value {
		return false, fmt.Sprintf("Minimum order value is %d", p.Min_order_value)
	}
	if p.Branch_id != nil && branchID != "" && *p.Branch_id != branchID {
		return false, "Promotion not valid for this branch"
	}

	return true, ""
}

// CalculateDiscount returns the discount amount in the smallest currency
// unit, rounded half-up and clamped to Max_discount when set.
func (p *Promotion) CalculateDiscount(subtotal int64) int64 {
	var discount int64

	if p.Type == PromotionTypePercentage {
		discount = int64(math.Round(float64(subtotal) * p.Value / 100))
	} else {
		discount = int64(math.Round(p.Value))
	}

	if p.Max_discount != nil && discount > *p.Max_discount {
		discount = *p.Max_discount
	}

	return discount
}
