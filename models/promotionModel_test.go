package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activePromotion() Promotion {
	active := true
	return Promotion{
		Promotion_id:    "promo-1",
		Name:            "Lunch Special",
		Code:            "LUNCH10",
		Type:            PromotionTypePercentage,
		Value:           10,
		Min_order_value: 10000,
		Start_date:      time.Now().Add(-24 * time.Hour),
		End_date:        time.Now().Add(24 * time.Hour),
		Is_active:       &active,
	}
}

func TestIsValidAcceptsQualifyingOrder(t *testing.T) {
	promo := activePromotion()

	valid, reason := promo.IsValid(20000, "branch-1")

	assert.True(t, valid)
	assert.Empty(t, reason)
}

func TestIsValidRejectsInactive(t *testing.T) {
	promo := activePromotion()
	inactive := false
	promo.Is_active = &inactive

	valid, reason := promo.IsValid(20000, "branch-1")

	assert.False(t, valid)
	assert.Equal(t, "Promotion is inactive", reason)
}

func TestIsValidRejectsNotStarted(t *testing.T) {
	promo := activePromotion()
	promo.Start_date = time.Now().Add(time.Hour)

	valid, reason := promo.IsValid(20000, "branch-1")

	assert.False(t, valid)
	assert.Equal(t, "Promotion has not started", reason)
}

func TestIsValidRejectsExpired(t *testing.T) {
	promo := activePromotion()
	promo.End_date = time.Now().Add(-time.Hour)

	valid, reason := promo.IsValid(20000, "branch-1")

	assert.False(t, valid)
	assert.Equal(t, "Promotion has expired", reason)
}

func TestIsValidRejectsUsageLimitReached(t *testing.T) {
	promo := activePromotion()
	limit := int64(100)
	promo.Usage_limit = &limit
	promo.Used_count = 100

	valid, reason := promo.IsValid(20000, "branch-1")

	assert.False(t, valid)
	assert.Equal(t, "Promotion usage limit reached", reason)
}

func TestIsValidRejectsBelowMinimum(t *testing.T) {
	promo := activePromotion()

	valid, reason := promo.IsValid(9999, "branch-1")

	assert.False(t, valid)
	assert.Equal(t, "Minimum order value is 10000", reason)
}

func TestIsValidRejectsWrongBranch(t *testing.T) {
	promo := activePromotion()
	branch := "branch-1"
	promo.Branch_id = &branch

	valid, reason := promo.IsValid(20000, "branch-2")

	assert.False(t, valid)
	assert.Equal(t, "Promotion not valid for this branch", reason)
}

func TestIsValidGlobalPromotionAnyBranch(t *testing.T) {
	promo := activePromotion()

	valid, _ := promo.IsValid(20000, "branch-2")

	assert.True(t, valid)
}

// The first failing check wins: an inactive promotion past its end date
// reports inactivity, not expiry.
func TestIsValidFirstFailureWins(t *testing.T) {
	promo := activePromotion()
	inactive := false
	promo.Is_active = &inactive
	promo.End_date = time.Now().Add(-time.Hour)

	valid, reason := promo.IsValid(0, "branch-2")

	assert.False(t, valid)
	assert.Equal(t, "Promotion is inactive", reason)
}

func TestCalculateDiscountPercentage(t *testing.T) {
	promo := activePromotion()

	assert.Equal(t, int64(2000), promo.CalculateDiscount(20000))
}

func TestCalculateDiscountPercentageRoundsHalfUp(t *testing.T) {
	promo := activePromotion()
	promo.Value = 15

	// 15% of 10005 = 1500.75, rounds to 1501
	assert.Equal(t, int64(1501), promo.CalculateDiscount(10005))
}

func TestCalculateDiscountClampedToMax(t *testing.T) {
	promo := activePromotion()
	max := int64(1500)
	promo.Max_discount = &max

	assert.Equal(t, int64(1500), promo.CalculateDiscount(20000))
}

func TestCalculateDiscountFixed(t *testing.T) {
	promo := activePromotion()
	promo.Type = PromotionTypeFixed
	promo.Value = 5000

	assert.Equal(t, int64(5000), promo.CalculateDiscount(20000))
	assert.Equal(t, int64(5000), promo.CalculateDiscount(6000))
}
