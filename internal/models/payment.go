package models

import "time"

type Payment struct {
	ID          int       `json:"id"`
	CustomerID  int       `json:"customer_id"`
	OrderID     *int      `json:"order_id,omitempty"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method,omitempty"`
	Reference   string    `json:"reference,omitempty"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`

	Applications []*PaymentApplication `json:"applications,omitempty"`
}

// PaymentApplication is the slice of a payment applied to one order.
type PaymentApplication struct {
	ID        int     `json:"id"`
	PaymentID int     `json:"payment_id"`
	OrderID   int     `json:"order_id"`
	Amount    float64 `json:"amount"`
}

// CreatePaymentRequest represents the body of POST /payments. Distribution
// keys are order ids; JSON object keys are strings so they arrive as such.
type CreatePaymentRequest struct {
	CustomerID   int                `json:"customer_id"`
	OrderID      *int               `json:"order_id"`
	Amount       float64            `json:"amount"`
	Method       string             `json:"method"`
	Reference    string             `json:"reference"`
	Distribution map[string]float64 `json:"distribution"`
}
