package models

import "time"

// Unit values used across charges, lots and prices.
const (
	UnitKg   = "kg"
	UnitEach = "unit"
)

type Product struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Quality   string    `json:"quality,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Quality  string `json:"quality"`
	ImageURL string `json:"image_url"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Quality  string `json:"quality"`
	ImageURL string `json:"image_url"`
}
