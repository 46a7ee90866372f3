package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableTable() Table {
	return Table{
		Table_id:     "table-1",
		Branch_id:    "branch-1",
		Table_number: "T1",
		Status:       TableStatusAvailable,
	}
}

func TestOccupySeatsOrder(t *testing.T) {
	table := availableTable()

	ok := table.Occupy("ord-1")

	require.True(t, ok)
	assert.Equal(t, TableStatusOccupied, table.Status)
	require.NotNil(t, table.Current_order_id)
	assert.Equal(t, "ord-1", *table.Current_order_id)
}

func TestOccupyRefusesSecondOrder(t *testing.T) {
	table := availableTable()
	require.True(t, table.Occupy("ord-1"))

	ok := table.Occupy("ord-2")

	assert.False(t, ok)
	assert.Equal(t, "ord-1", *table.Current_order_id)
}

// Either desync signal blocks seating: a stale occupied status with no
// back-reference, or a stale back-reference on an available table.
func TestOccupiedDetectsDesyncedState(t *testing.T) {
	byStatus := availableTable()
	byStatus.Status = TableStatusOccupied
	assert.True(t, byStatus.Occupied())
	assert.False(t, byStatus.Occupy("ord-1"))

	byReference := availableTable()
	orderId := "ord-stale"
	byReference.Current_order_id = &orderId
	assert.True(t, byReference.Occupied())
	assert.False(t, byReference.Occupy("ord-1"))
}

func TestReleaseClearsSeat(t *testing.T) {
	table := availableTable()
	require.True(t, table.Occupy("ord-1"))

	table.Release()

	assert.Equal(t, TableStatusAvailable, table.Status)
	assert.Nil(t, table.Current_order_id)
	assert.False(t, table.Occupied())

	// Freed table can seat the next order
	assert.True(t, table.Occupy("ord-2"))
}
