package models

import "github.com/shopspring/decimal"

// CartEntry is a product snapshot and how many times it was added.
type CartEntry struct {
	Product
	Quantity int `json:"quantity"`
}

func (e CartEntry) LineTotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// CartSummary is what the cart sidebar shows. Ghosts lists the ids of
// entries whose product is no longer in the catalog.
type CartSummary struct {
	Items      []CartEntry     `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Ghosts     []int64         `json:"ghosts"`
}
