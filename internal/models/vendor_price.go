package models

import "time"

// VendorPrice is a supplier's cost entry for a product, marked up to a
// resale price. SalePrice is derived, never stored.
type VendorPrice struct {
	ID               int       `json:"id"`
	VendorID         int       `json:"vendor_id"`
	VendorName       string    `json:"vendor_name,omitempty"`
	ProductID        int       `json:"product_id"`
	ProductName      string    `json:"product_name,omitempty"`
	Unit             string    `json:"unit"`
	BasePrice        float64   `json:"base_price"`
	MarkupPercentage float64   `json:"markup_percentage"`
	SalePrice        float64   `json:"sale_price"`
	Available        bool      `json:"available"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ComputeSalePrice derives the resale price from cost and markup.
func ComputeSalePrice(basePrice, markupPercentage float64) float64 {
	return basePrice * (1 + markupPercentage/100)
}

// VendorPriceFilter narrows vendor price listings. Zero values mean no filter.
type VendorPriceFilter struct {
	VendorID      int
	ProductID     int
	AvailableOnly bool
}

// CreateVendorPriceRequest represents the request body for creating a price entry
type CreateVendorPriceRequest struct {
	ProductID        int     `json:"product_id"`
	Unit             string  `json:"unit"`
	BasePrice        float64 `json:"base_price"`
	MarkupPercentage float64 `json:"markup_percentage"`
}

// UpdateVendorPriceRequest represents the request body for updating a price entry
type UpdateVendorPriceRequest struct {
	Unit             string  `json:"unit"`
	BasePrice        float64 `json:"base_price"`
	MarkupPercentage float64 `json:"markup_percentage"`
	Available        *bool   `json:"available"`
}

// BatchUpdateVendorPricesRequest represents the body of
// POST /admin/vendors/prices/batch: one vendor's full price round.
type BatchUpdateVendorPricesRequest struct {
	VendorID int                       `json:"vendor_id"`
	Prices   []CreateVendorPriceRequest `json:"prices"`
}
