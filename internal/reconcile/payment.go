package reconcile

import "github.com/shopspring/decimal"

// distributionTolerance is the currency rounding slack allowed between a
// manual distribution and the payment amount.
var distributionTolerance = decimal.New(1, -2) // 0.01

// BuildPaymentRequest validates a payment and decides how it targets the
// customer's open orders.
//
// Rules, evaluated in order:
//  1. customerID and a positive amount are mandatory.
//  2. A distribution with any positive entry is a manual split; its values
//     must sum to the amount within 0.01 or the request is rejected. The
//     split is forwarded unchanged with no single target order.
//  3. With exactly one open debt the payment targets that order.
//  4. With several debts an explicit order choice wins.
//  5. Otherwise the request carries no target and no split; allocation is
//     left to the backend (oldest order first, see AllocateOldestFirst).
//
// explicitOrderID zero means no explicit choice. debts come oldest first as
// the summaries report them; settled entries are ignored, so callers may pass
// the customer's full order history.
func BuildPaymentRequest(customerID int, amount decimal.Decimal, explicitOrderID int, distribution map[int]decimal.Decimal, debts []OrderDebt) (*PaymentRequest, error) {
	if customerID == 0 {
		return nil, validationf("customer is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, validationf("payment amount must be positive, got %s", amount)
	}

	if hasManualDistribution(distribution) {
		sum := decimal.Zero
		for orderID, v := range distribution {
			if v.IsNegative() {
				return nil, validationf("distribution amount for order %d cannot be negative", orderID)
			}
			sum = sum.Add(v)
		}
		if sum.Sub(amount).Abs().GreaterThan(distributionTolerance) {
			return nil, validationf("distribution total %s does not match payment amount %s", sum, amount)
		}
		return &PaymentRequest{
			CustomerID:   customerID,
			Amount:       amount,
			Distribution: distribution,
		}, nil
	}

	req := &PaymentRequest{CustomerID: customerID, Amount: amount}

	open := openDebts(debts)
	switch {
	case len(open) == 1:
		id := open[0].OrderID
		req.OrderID = &id
	case len(open) > 1 && explicitOrderID != 0:
		id := explicitOrderID
		req.OrderID = &id
	}
	return req, nil
}

// openDebts drops orders with nothing due. Summaries and debt queries report
// settled orders alongside open ones; only the open ones count for targeting.
func openDebts(debts []OrderDebt) []OrderDebt {
	var open []OrderDebt
	for _, d := range debts {
		if d.Due().GreaterThan(decimal.Zero) {
			open = append(open, d)
		}
	}
	return open
}

func hasManualDistribution(distribution map[int]decimal.Decimal) bool {
	for _, v := range distribution {
		if v.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

// AllocateOldestFirst spreads amount across debts in the order given,
// paying each order's due in full before moving to the next. Any remainder
// past the total due is kept on the last application as unapplied credit.
// Debts with nothing due are skipped. A nil result means there was nothing
// to apply the payment against.
func AllocateOldestFirst(debts []OrderDebt, amount decimal.Decimal) []Application {
	remaining := amount
	var apps []Application
	for _, d := range debts {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		due := d.Due()
		if due.LessThanOrEqual(decimal.Zero) {
			continue
		}
		applied := decimal.Min(due, remaining)
		apps = append(apps, Application{OrderID: d.OrderID, Amount: applied})
		remaining = remaining.Sub(applied)
	}
	if len(apps) > 0 && remaining.GreaterThan(decimal.Zero) {
		apps[len(apps)-1].Amount = apps[len(apps)-1].Amount.Add(remaining)
	}
	return apps
}
