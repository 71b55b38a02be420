package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kivi-backend/internal/reconcile"
)

func TestParseDistribution(t *testing.T) {
	dist, err := parseDistribution(map[string]float64{"3": 400, "5": 600})
	require.NoError(t, err)
	require.Len(t, dist, 2)
	assert.True(t, dist[3].Equal(decimal.NewFromInt(400)))
	assert.True(t, dist[5].Equal(decimal.NewFromInt(600)))
}

func TestParseDistribution_DropsZeroEntries(t *testing.T) {
	dist, err := parseDistribution(map[string]float64{"3": 400, "5": 0})
	require.NoError(t, err)
	require.Len(t, dist, 1)
	_, ok := dist[5]
	assert.False(t, ok)
}

func TestParseDistribution_InvalidKey(t *testing.T) {
	var verr *reconcile.ValidationError

	_, err := parseDistribution(map[string]float64{"abc": 400})
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))

	_, err = parseDistribution(map[string]float64{"-2": 400})
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))
}

func TestParseDistribution_NegativeAmount(t *testing.T) {
	var verr *reconcile.ValidationError

	_, err := parseDistribution(map[string]float64{"1": -100, "2": 1100})
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))
}

func TestParseDistribution_Empty(t *testing.T) {
	dist, err := parseDistribution(nil)
	require.NoError(t, err)
	assert.Nil(t, dist)
}

func TestBuildApplications_ManualDistribution(t *testing.T) {
	debts := []reconcile.OrderDebt{
		{OrderID: 3, Billed: decimal.NewFromInt(500), Paid: decimal.Zero},
		{OrderID: 5, Billed: decimal.NewFromInt(700), Paid: decimal.Zero},
	}
	pr := &reconcile.PaymentRequest{
		CustomerID: 7,
		Amount:     decimal.NewFromInt(1000),
		Distribution: map[int]decimal.Decimal{
			3: decimal.NewFromInt(400),
			5: decimal.NewFromInt(600),
		},
	}

	apps := buildApplications(pr, debts)
	require.Len(t, apps, 2)
	// Debt order is preserved so the split is deterministic.
	assert.Equal(t, 3, apps[0].OrderID)
	assert.InDelta(t, 400.0, apps[0].Amount, 0.001)
	assert.Equal(t, 5, apps[1].OrderID)
	assert.InDelta(t, 600.0, apps[1].Amount, 0.001)
}

func TestBuildApplications_ExplicitOrder(t *testing.T) {
	orderID := 9
	pr := &reconcile.PaymentRequest{
		CustomerID: 7,
		OrderID:    &orderID,
		Amount:     decimal.NewFromInt(250),
	}

	apps := buildApplications(pr, nil)
	require.Len(t, apps, 1)
	assert.Equal(t, 9, apps[0].OrderID)
	assert.InDelta(t, 250.0, apps[0].Amount, 0.001)
}

func TestBuildApplications_AutoAllocation(t *testing.T) {
	debts := []reconcile.OrderDebt{
		{OrderID: 1, Billed: decimal.NewFromInt(300), Paid: decimal.Zero},
		{OrderID: 2, Billed: decimal.NewFromInt(500), Paid: decimal.Zero},
	}
	pr := &reconcile.PaymentRequest{
		CustomerID: 7,
		Amount:     decimal.NewFromInt(400),
	}

	apps := buildApplications(pr, debts)
	require.Len(t, apps, 2)
	assert.Equal(t, 1, apps[0].OrderID)
	assert.InDelta(t, 300.0, apps[0].Amount, 0.001)
	assert.Equal(t, 2, apps[1].OrderID)
	assert.InDelta(t, 100.0, apps[1].Amount, 0.001)
}

func TestBuildApplications_NoDebts(t *testing.T) {
	pr := &reconcile.PaymentRequest{
		CustomerID: 7,
		Amount:     decimal.NewFromInt(400),
	}

	apps := buildApplications(pr, nil)
	assert.Empty(t, apps)
}
