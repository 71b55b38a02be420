package reconcile

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func excessIndex() []ExcessOrder {
	return []ExcessOrder{
		{
			OrderID:    10,
			OrderTitle: "Semana 34",
			Lines: []ExcessLine{
				{LotID: 100, ProductID: 5, ProductName: "Palta Hass", Qty: dec(12), Unit: "kg"},
				{LotID: 101, ProductID: 6, ProductName: "Limón", Qty: dec(30), Unit: "unit"},
			},
		},
		{OrderID: 11, Lines: []ExcessLine{
			{LotID: 102, ProductID: 5, ProductName: "Palta Hass", Qty: dec(4), Unit: "kg"},
		}},
	}
}

func TestBuildReassignmentRequest_Resolves(t *testing.T) {
	req, err := BuildReassignmentRequest(10, 6, 3, dec(20), dec(450), excessIndex())
	require.NoError(t, err)

	assert.Equal(t, 101, req.LotID)
	assert.Equal(t, 10, req.OrderID)
	assert.Equal(t, 6, req.ProductID)
	assert.Equal(t, 3, req.CustomerID)
	// Unit comes from the matched line, never from the caller.
	assert.Equal(t, "unit", req.Unit)
	assert.True(t, req.Qty.Equal(dec(20)))
	assert.True(t, req.UnitPrice.Equal(dec(450)))
}

func TestBuildReassignmentRequest_ValidationBeforeLookup(t *testing.T) {
	var verr *ValidationError

	// Zero qty fails with a nil index too: validation runs before any lookup.
	_, err := BuildReassignmentRequest(99, 5, 3, decimal.Zero, dec(450), nil)
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))

	_, err = BuildReassignmentRequest(10, 5, 3, dec(1), decimal.Zero, excessIndex())
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))

	for _, in := range []struct{ order, product, customer int }{
		{0, 5, 3},
		{10, 0, 3},
		{10, 5, 0},
	} {
		_, err = BuildReassignmentRequest(in.order, in.product, in.customer, dec(1), dec(1), excessIndex())
		require.Error(t, err)
		assert.True(t, errors.As(err, &verr))
	}
}

func TestBuildReassignmentRequest_StaleIndexIsNotFound(t *testing.T) {
	var nferr *NotFoundError
	var verr *ValidationError

	_, err := BuildReassignmentRequest(99, 5, 3, dec(1), dec(1), excessIndex())
	require.Error(t, err)
	assert.True(t, errors.As(err, &nferr))
	assert.False(t, errors.As(err, &verr), "stale index must be NotFoundError, not ValidationError")

	// Order exists but the product does not.
	_, err = BuildReassignmentRequest(11, 6, 3, dec(1), dec(1), excessIndex())
	require.Error(t, err)
	assert.True(t, errors.As(err, &nferr))
}
