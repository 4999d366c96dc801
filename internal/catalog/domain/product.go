package domain

import "time"

// Product is a distributed good sold by the bag. StockKg tracks the
// remaining weight on hand; PricePerBag and BagWeightKg are the
// authoritative values snapshotted onto order items at order time.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StockKg     float64   `json:"stock_kg"`
	PricePerBag float64   `json:"price_per_bag"`
	BagWeightKg float64   `json:"bag_weight_kg"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
