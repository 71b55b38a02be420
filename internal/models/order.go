package models

import "time"

// PurchaseStatus reports how an order's purchasing compares to what
// customers ordered.
type PurchaseStatus string

const (
	PurchaseComplete PurchaseStatus = "complete" // bought exactly what was ordered
	PurchaseOver     PurchaseStatus = "over"     // bought more, excess available
	PurchaseShort    PurchaseStatus = "short"    // still missing product
)

type Order struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Order statuses.
const (
	OrderStatusDraft     = "draft"
	OrderStatusConfirmed = "confirmed"
)

// OrderItem is one product line a customer asked for within an order.
type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	CustomerID  int     `json:"customer_id"`
	Qty         float64 `json:"qty"`
	Unit        string  `json:"unit"`
}

// OrderDetail is an order with its line items.
type OrderDetail struct {
	Order
	Items []*OrderItem `json:"items"`
}

// CreateOrderRequest represents the request body for creating an order.
// Draft orders are kept out of the accounting summaries until confirmed.
type CreateOrderRequest struct {
	Title string `json:"title"`
	Draft bool   `json:"draft"`
}

// AddOrderItemsRequest represents the request body for adding items to an order
type AddOrderItemsRequest struct {
	Items []OrderItemInput `json:"items"`
}

type OrderItemInput struct {
	ProductID  int     `json:"product_id"`
	CustomerID int     `json:"customer_id"`
	Qty        float64 `json:"qty"`
	Unit       string  `json:"unit"`
}
