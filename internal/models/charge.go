package models

import "time"

// ChargeStatus values.
const (
	ChargeStatusPending  = "pending"
	ChargeStatusPaid     = "paid"
	ChargeStatusReturned = "returned" // sent back to excess
)

// Charge is a billed line item linking an order, a product, a quantity and a
// unit price for one customer. ChargedQty is the corrected quantity when the
// weighed amount differs from what was ordered; Qty is the original request.
type Charge struct {
	ID             int       `json:"id"`
	OrderID        int       `json:"order_id"`
	CustomerID     int       `json:"customer_id"`
	ProductID      int       `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Qty            float64   `json:"qty"`
	ChargedQty     *float64  `json:"charged_qty,omitempty"`
	Unit           string    `json:"unit"`
	UnitPrice      float64   `json:"unit_price"`
	DiscountAmount float64   `json:"discount_amount"`
	Total          float64   `json:"total"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// BilledQty returns the quantity the customer is actually billed for.
func (c *Charge) BilledQty() float64 {
	if c.ChargedQty != nil {
		return *c.ChargedQty
	}
	return c.Qty
}

// ChargeFilter narrows charge listings. Zero values mean no filter.
type ChargeFilter struct {
	CustomerID int
	OrderID    int
	Status     string
}

// UpdateChargePriceRequest represents the body of PATCH /charges/{id}/price
type UpdateChargePriceRequest struct {
	UnitPrice float64 `json:"unit_price"`
}

// UpdateChargeQuantityRequest represents the body of PATCH /charges/{id}/quantity
type UpdateChargeQuantityRequest struct {
	ChargedQty float64 `json:"charged_qty"`
}

// ChangeChargeOrderRequest represents the body of PATCH /charges/{id}/order
type ChangeChargeOrderRequest struct {
	OrderID int `json:"order_id"`
}
