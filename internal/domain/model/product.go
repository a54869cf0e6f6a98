package model

import (
	"time"
)

// Product is an owner-scoped listing. OwnerID is never serialized: the public
// catalog must not disclose who owns a listing.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	OwnerID     int64     `json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
