package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSalePrice(t *testing.T) {
	assert.InDelta(t, 115.0, ComputeSalePrice(100, 15), 0.001)
	assert.InDelta(t, 100.0, ComputeSalePrice(100, 0), 0.001)
	assert.InDelta(t, 2.75, ComputeSalePrice(2.50, 10), 0.001)
}

func TestChargeBilledQty(t *testing.T) {
	c := &Charge{Qty: 10}
	assert.Equal(t, 10.0, c.BilledQty())

	corrected := 9.4
	c.ChargedQty = &corrected
	assert.Equal(t, 9.4, c.BilledQty())

	// A correction to zero still overrides the ordered quantity.
	zero := 0.0
	c.ChargedQty = &zero
	assert.Equal(t, 0.0, c.BilledQty())
}

func TestLotQty(t *testing.T) {
	kg := &Lot{QtyKg: 120.5, QtyUnit: 3, Unit: UnitKg}
	assert.Equal(t, 120.5, kg.Qty())

	each := &Lot{QtyKg: 120.5, QtyUnit: 3, Unit: UnitEach}
	assert.Equal(t, 3.0, each.Qty())
}
