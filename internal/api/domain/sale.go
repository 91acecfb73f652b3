package domain

import "time"

// Sale records a single product sold to a customer. Total is denormalised
// at write time so historical sales keep their price after the product's
// price changes.
type Sale struct {
	ID         string
	CustomerID string
	ProductID  string
	Quantity   int64
	Total      float64
	SoldAt     time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
