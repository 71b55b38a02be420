package reconcile

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestBuildPaymentRequest_MissingFields(t *testing.T) {
	var verr *ValidationError

	_, err := BuildPaymentRequest(0, dec(1000), 0, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))

	_, err = BuildPaymentRequest(7, decimal.Zero, 0, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))

	_, err = BuildPaymentRequest(7, dec(-50), 0, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))
}

func TestBuildPaymentRequest_SingleDebtAutoTargets(t *testing.T) {
	debts := []OrderDebt{{OrderID: 42, Billed: dec(5000), Paid: dec(2000)}}

	req, err := BuildPaymentRequest(7, dec(3000), 0, nil, debts)
	require.NoError(t, err)
	require.NotNil(t, req.OrderID)
	assert.Equal(t, 42, *req.OrderID)
	assert.Empty(t, req.Distribution)
}

func TestBuildPaymentRequest_ManualDistributionAccepted(t *testing.T) {
	dist := map[int]decimal.Decimal{
		101: dec(4000),
		102: dec(6000),
	}
	debts := []OrderDebt{
		{OrderID: 101, Billed: dec(4000)},
		{OrderID: 102, Billed: dec(7000)},
	}

	req, err := BuildPaymentRequest(7, dec(10000), 0, dist, debts)
	require.NoError(t, err)
	assert.Nil(t, req.OrderID)
	assert.Equal(t, dist, req.Distribution)
}

func TestBuildPaymentRequest_ManualDistributionWithinTolerance(t *testing.T) {
	dist := map[int]decimal.Decimal{
		101: dec(3333.33),
		102: dec(6666.66),
	}

	// 9999.99 vs 10000.00 is within the 0.01 rounding slack.
	req, err := BuildPaymentRequest(7, dec(10000), 0, dist, nil)
	require.NoError(t, err)
	assert.Nil(t, req.OrderID)
}

func TestBuildPaymentRequest_MismatchedDistributionRejected(t *testing.T) {
	dist := map[int]decimal.Decimal{
		101: dec(4000),
		102: dec(5000),
	}

	_, err := BuildPaymentRequest(7, dec(10000), 0, dist, nil)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	// Both totals are named so the operator can see the mismatch.
	assert.Contains(t, verr.Message, "9000")
	assert.Contains(t, verr.Message, "10000")
}

func TestBuildPaymentRequest_ExplicitOrderWins(t *testing.T) {
	debts := []OrderDebt{
		{OrderID: 101, Billed: dec(3000)},
		{OrderID: 102, Billed: dec(7000)},
	}

	req, err := BuildPaymentRequest(7, dec(5000), 102, nil, debts)
	require.NoError(t, err)
	require.NotNil(t, req.OrderID)
	assert.Equal(t, 102, *req.OrderID)
}

func TestBuildPaymentRequest_MultiDebtNoChoiceDefersToBackend(t *testing.T) {
	debts := []OrderDebt{
		{OrderID: 101, Billed: dec(3000)},
		{OrderID: 102, Billed: dec(7000)},
	}

	req, err := BuildPaymentRequest(7, dec(10000), 0, nil, debts)
	require.NoError(t, err)
	assert.Nil(t, req.OrderID)
	assert.Empty(t, req.Distribution)
}

func TestBuildPaymentRequest_ZeroValueDistributionIgnored(t *testing.T) {
	// A distribution with no positive entry is not a manual split.
	dist := map[int]decimal.Decimal{101: decimal.Zero}
	debts := []OrderDebt{{OrderID: 42, Billed: dec(5000)}}

	req, err := BuildPaymentRequest(7, dec(5000), 0, dist, debts)
	require.NoError(t, err)
	require.NotNil(t, req.OrderID)
	assert.Equal(t, 42, *req.OrderID)
}

func TestAllocateOldestFirst(t *testing.T) {
	tests := []struct {
		name   string
		debts  []OrderDebt
		amount decimal.Decimal
		want   []Application
	}{
		{
			name: "exact coverage across two orders",
			debts: []OrderDebt{
				{OrderID: 1, Billed: dec(3000)},
				{OrderID: 2, Billed: dec(7000)},
			},
			amount: dec(10000),
			want: []Application{
				{OrderID: 1, Amount: dec(3000)},
				{OrderID: 2, Amount: dec(7000)},
			},
		},
		{
			name: "partial payment stops at first order",
			debts: []OrderDebt{
				{OrderID: 1, Billed: dec(3000)},
				{OrderID: 2, Billed: dec(7000)},
			},
			amount: dec(2000),
			want:   []Application{{OrderID: 1, Amount: dec(2000)}},
		},
		{
			name: "overpayment lands on last application",
			debts: []OrderDebt{
				{OrderID: 1, Billed: dec(3000)},
				{OrderID: 2, Billed: dec(1000)},
			},
			amount: dec(5000),
			want: []Application{
				{OrderID: 1, Amount: dec(3000)},
				{OrderID: 2, Amount: dec(2000)},
			},
		},
		{
			name: "settled orders are skipped",
			debts: []OrderDebt{
				{OrderID: 1, Billed: dec(3000), Paid: dec(3000)},
				{OrderID: 2, Billed: dec(1000)},
			},
			amount: dec(500),
			want:   []Application{{OrderID: 2, Amount: dec(500)}},
		},
		{
			name:   "no open debts yields nothing",
			debts:  nil,
			amount: dec(500),
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllocateOldestFirst(tt.debts, tt.amount)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].OrderID, got[i].OrderID)
				assert.True(t, tt.want[i].Amount.Equal(got[i].Amount),
					"application %d: want %s, got %s", i, tt.want[i].Amount, got[i].Amount)
			}
		})
	}
}

func TestBuildPaymentRequest_SettledDebtsDoNotBlockAutoTarget(t *testing.T) {
	// One settled order and one open order: the payment must still target
	// the single open order, as if the settled one were never reported.
	debts := []OrderDebt{
		{OrderID: 1, Billed: dec(3000), Paid: dec(3000)},
		{OrderID: 2, Billed: dec(7000)},
	}

	req, err := BuildPaymentRequest(7, dec(5000), 0, nil, debts)
	require.NoError(t, err)
	require.NotNil(t, req.OrderID)
	assert.Equal(t, 2, *req.OrderID)
	assert.Empty(t, req.Distribution)
}

func TestBuildPaymentRequest_AllDebtsSettled(t *testing.T) {
	debts := []OrderDebt{
		{OrderID: 1, Billed: dec(3000), Paid: dec(3000)},
		{OrderID: 2, Billed: dec(7000), Paid: dec(7000)},
	}

	req, err := BuildPaymentRequest(7, dec(500), 0, nil, debts)
	require.NoError(t, err)
	assert.Nil(t, req.OrderID)
}

func TestBuildPaymentRequest_NegativeDistributionEntry(t *testing.T) {
	var verr *ValidationError

	// Sums to the amount, but a negative split would persist a negative
	// application and corrupt per-order paid math.
	distribution := map[int]decimal.Decimal{
		1: dec(-100),
		2: dec(1100),
	}

	_, err := BuildPaymentRequest(7, dec(1000), 0, distribution, nil)
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))
}
