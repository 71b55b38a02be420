package models

import "time"

// Lot statuses.
const (
	LotStatusUnassigned = "unassigned"
	LotStatusAssigned   = "assigned"
	LotStatusWaste      = "waste"
)

// Lot is surplus stock: product purchased for an order beyond what customers
// asked for, held until it is reassigned, processed or written off.
type Lot struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	OrderID   *int      `json:"order_id,omitempty"` // source order, if known
	QtyKg     float64   `json:"qty_kg"`
	QtyUnit   float64   `json:"qty_unit"`
	Unit      string    `json:"unit"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Qty returns the lot quantity in its native unit.
func (l *Lot) Qty() float64 {
	if l.Unit == UnitKg {
		return l.QtyKg
	}
	return l.QtyUnit
}

// CreateLotRequest represents the request body for recording a new lot
type CreateLotRequest struct {
	ProductID int     `json:"product_id"`
	OrderID   *int    `json:"order_id"`
	QtyKg     float64 `json:"qty_kg"`
	QtyUnit   float64 `json:"qty_unit"`
	Unit      string  `json:"unit"`
}

// ProcessLotRequest converts surplus of one product into another, e.g.
// loose kilos bagged into retail units.
type ProcessLotRequest struct {
	FromProductID int     `json:"from_product_id"`
	ToProductID   int     `json:"to_product_id"`
	InputQtyKg    float64 `json:"input_qty_kg"`
	OutputQty     float64 `json:"output_qty"`
	Unit          string  `json:"unit"`
}

// ReassignExcessRequest represents the body of POST /accounting/excess/reassign.
// The unit is resolved server-side from the excess line, it is not accepted
// from the client.
type ReassignExcessRequest struct {
	OrderID    int     `json:"order_id"`
	ProductID  int     `json:"product_id"`
	CustomerID int     `json:"customer_id"`
	Qty        float64 `json:"qty"`
	UnitPrice  float64 `json:"unit_price"`
}
