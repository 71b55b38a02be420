package models

import "time"

type Vendor struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Market    string    `json:"market"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateVendorRequest represents the request body for creating a vendor
type CreateVendorRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Market string `json:"market"`
}
