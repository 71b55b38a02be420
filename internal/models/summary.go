package models

// Summary DTOs returned by the accounting endpoints. These are recomputed
// from storage on every call; clients are expected to re-fetch them in full
// after any mutation rather than patch them locally.

// OrderRef and CustomerRef are the compact identities embedded in cards.
type OrderRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type CustomerRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// OrderSummary is the per-order accounting card.
type OrderSummary struct {
	Order          OrderRef       `json:"order"`
	Billed         float64        `json:"billed"`
	Cost           float64        `json:"cost"`
	Due            float64        `json:"due"`
	ProfitAmount   float64        `json:"profit_amount"`
	ProfitPct      float64        `json:"profit_pct"`
	PurchaseStatus PurchaseStatus `json:"purchase_status"`

	// Customers is populated only when details are requested.
	Customers []*OrderCustomerSummary `json:"customers,omitempty"`
}

type OrderCustomerSummary struct {
	CustomerID   int                    `json:"customer_id"`
	CustomerName string                 `json:"customer_name"`
	Billed       float64                `json:"billed"`
	Products     []*OrderProductSummary `json:"products,omitempty"`
}

type OrderProductSummary struct {
	ProductID      int            `json:"product_id"`
	ProductName    string         `json:"product_name"`
	Qty            float64        `json:"qty"`
	Unit           string         `json:"unit"`
	TotalBilled    float64        `json:"total_billed"`
	PurchaseStatus PurchaseStatus `json:"purchase_status"`
	Charges        []*Charge      `json:"charges,omitempty"`
}

// CustomerSummary is the per-customer accounting card. Due is always
// Billed - Paid as computed by storage, never client arithmetic.
type CustomerSummary struct {
	Customer CustomerRef `json:"customer"`
	Billed   float64     `json:"billed"`
	Paid     float64     `json:"paid"`
	Due      float64     `json:"due"`

	// Orders is populated only when include_orders is requested.
	Orders []*CustomerOrderSummary `json:"orders,omitempty"`
}

type CustomerOrderSummary struct {
	OrderID  int                       `json:"order_id"`
	Billed   float64                   `json:"billed"`
	Paid     float64                   `json:"paid"`
	Due      float64                   `json:"due"`
	Products []*CustomerProductSummary `json:"products,omitempty"`
}

type CustomerProductSummary struct {
	ChargeID    int      `json:"charge_id"`
	ProductID   int      `json:"product_id"`
	ProductName string   `json:"product_name"`
	Qty         float64  `json:"qty"`
	ChargedQty  *float64 `json:"charged_qty,omitempty"`
	Unit        string   `json:"unit"`
	UnitPrice   float64  `json:"unit_price"`
	Total       float64  `json:"total"`
}

// ExcessLineSummary and ExcessOrderSummary form the excess index served by
// GET /accounting/excess: unassigned lots grouped by source order.
type ExcessLineSummary struct {
	LotID       int     `json:"lot_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	ExcessQty   float64 `json:"excess_qty"`
	Unit        string  `json:"unit"`
}

type ExcessOrderSummary struct {
	Order    OrderRef             `json:"order"`
	Excesses []*ExcessLineSummary `json:"excesses"`
}
