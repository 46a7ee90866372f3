package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() Order {
	return Order{
		Order_id:     "ord-1",
		Order_number: "ORD-20260115-001",
		Branch_id:    "branch-1",
		Table_id:     "table-1",
		Status:       OrderStatusActive,
		Items: []OrderItem{
			{Item_id: "item-1", Name: "Pad Thai", Price: 12000, Quantity: 2, Status: ItemStatusPending, Priority: ItemPriorityDefault},
			{Item_id: "item-2", Name: "Green Curry", Price: 15000, Quantity: 1, Status: ItemStatusCooking, Priority: ItemPriorityDefault},
		},
	}
}

func TestCalculateTotals(t *testing.T) {
	order := testOrder()
	order.CalculateTotals()

	assert.Equal(t, int64(39000), order.Subtotal)
	assert.Equal(t, int64(39000), order.Total)
}

func TestCalculateTotalsExcludesCancelledItems(t *testing.T) {
	order := testOrder()
	order.Items[1].Status = ItemStatusCancelled
	order.CalculateTotals()

	assert.Equal(t, int64(24000), order.Subtotal)
	assert.Equal(t, int64(24000), order.Total)
}

func TestCalculateTotalsAppliesDiscount(t *testing.T) {
	order := testOrder()
	order.Discount = 5000
	order.CalculateTotals()

	assert.Equal(t, int64(39000), order.Subtotal)
	assert.Equal(t, int64(34000), order.Total)
}

func TestCalculateTotalsNeverGoesNegative(t *testing.T) {
	order := testOrder()
	order.Discount = 1000000
	order.CalculateTotals()

	assert.Equal(t, int64(0), order.Total)
}

// Cancelling an item after a promotion was applied can push the subtotal
// below the discount; the total floors at zero rather than crediting the
// diner.
func TestCancelItemAfterDiscountFloorsAtZero(t *testing.T) {
	order := testOrder()
	order.Discount = 30000
	order.CalculateTotals()
	require.Equal(t, int64(9000), order.Total)

	order.Items[1].Status = ItemStatusCancelled
	order.CalculateTotals()

	assert.Equal(t, int64(24000), order.Subtotal)
	assert.Equal(t, int64(0), order.Total)
}

func TestFindItemReturnsMutablePointer(t *testing.T) {
	order := testOrder()

	item := order.FindItem("item-2")
	require.NotNil(t, item)

	item.Status = ItemStatusReady
	assert.Equal(t, ItemStatusReady, order.Items[1].Status)
}

func TestFindItemUnknownID(t *testing.T) {
	order := testOrder()
	assert.Nil(t, order.FindItem("no-such-item"))
}

func TestIsActive(t *testing.T) {
	order := testOrder()
	assert.True(t, order.IsActive())

	order.Status = OrderStatusCompleted
	assert.False(t, order.IsActive())

	order.Status = OrderStatusCancelled
	assert.False(t, order.IsActive())
}

func TestIsValidItemStatus(t *testing.T) {
	for _, status := range []string{ItemStatusPending, ItemStatusCooking, ItemStatusReady, ItemStatusServed, ItemStatusCancelled} {
		assert.True(t, IsValidItemStatus(status), status)
	}
	assert.False(t, IsValidItemStatus("delivered"))
	assert.False(t, IsValidItemStatus(""))
}

func TestIsTerminalItemStatus(t *testing.T) {
	assert.True(t, IsTerminalItemStatus(ItemStatusServed))
	assert.True(t, IsTerminalItemStatus(ItemStatusCancelled))

	assert.False(t, IsTerminalItemStatus(ItemStatusPending))
	assert.False(t, IsTerminalItemStatus(ItemStatusCooking))
	assert.False(t, IsTerminalItemStatus(ItemStatusReady))
}

func TestApplyPromotionRecomputesTotals(t *testing.T) {
	order := testOrder()
	order.CalculateTotals()
	promo := activePromotion()

	applied, reason := order.ApplyPromotion(&promo)

	require.True(t, applied)
	assert.Empty(t, reason)
	require.NotNil(t, order.Promotion_id)
	assert.Equal(t, "promo-1", *order.Promotion_id)
	assert.Equal(t, int64(3900), order.Discount)
	assert.Equal(t, int64(35100), order.Total)
}

func TestApplyPromotionIsOneShot(t *testing.T) {
	order := testOrder()
	order.CalculateTotals()
	first := activePromotion()
	require.True(t, func() bool { ok, _ := order.ApplyPromotion(&first); return ok }())

	second := activePromotion()
	second.Promotion_id = "promo-2"
	second.Code = "DINNER20"
	second.Value = 20

	applied, reason := order.ApplyPromotion(&second)

	assert.False(t, applied)
	assert.Equal(t, "Promotion already applied", reason)
	assert.Equal(t, "promo-1", *order.Promotion_id)
	assert.Equal(t, int64(3900), order.Discount)
}

func TestApplyPromotionRejectsInvalidWithoutMutating(t *testing.T) {
	order := testOrder()
	order.CalculateTotals()
	promo := activePromotion()
	promo.Min_order_value = 50000

	applied, reason := order.ApplyPromotion(&promo)

	assert.False(t, applied)
	assert.NotEmpty(t, reason)
	assert.Nil(t, order.Promotion_id)
	assert.Equal(t, int64(0), order.Discount)
	assert.Equal(t, int64(39000), order.Total)
}
