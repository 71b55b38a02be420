// Package reconcile builds and validates the payment and excess-reassignment
// requests of the accounting flow. All functions are pure: they take the
// current summaries as arguments and return either a request object that is
// safe to persist, or a typed error. Nothing here touches the database.
package reconcile

import "github.com/shopspring/decimal"

// OrderDebt is one order with an outstanding balance for a customer,
// as reported by the accounting summaries.
type OrderDebt struct {
	OrderID int
	Billed  decimal.Decimal
	Paid    decimal.Decimal
}

// Due returns the outstanding balance of the order.
func (d OrderDebt) Due() decimal.Decimal {
	return d.Billed.Sub(d.Paid)
}

// ExcessLine is a product over-purchased for an order, available for
// reassignment to another customer. LotID identifies the backing stock lot.
type ExcessLine struct {
	LotID       int
	ProductID   int
	ProductName string
	Qty         decimal.Decimal
	Unit        string
}

// ExcessOrder groups the excess lines of one source order.
type ExcessOrder struct {
	OrderID    int
	OrderTitle string
	Lines      []ExcessLine
}

// PaymentRequest is a validated payment ready to be persisted. Exactly one of
// OrderID or a non-empty Distribution determines how the amount is applied;
// when both are absent the backend allocates oldest order first.
type PaymentRequest struct {
	CustomerID   int
	OrderID      *int
	Amount       decimal.Decimal
	Distribution map[int]decimal.Decimal
}

// ReassignmentRequest creates a charge for the destination customer drawn
// from the source order's excess. Unit is always copied from the matched
// excess line, never supplied by the caller.
type ReassignmentRequest struct {
	LotID      int
	OrderID    int
	ProductID  int
	CustomerID int
	Qty        decimal.Decimal
	Unit       string
	UnitPrice  decimal.Decimal
}

// Application is one slice of a payment applied to a single order.
type Application struct {
	OrderID int
	Amount  decimal.Decimal
}
