// Package cart keeps the shopping cart: one entry per product id with a
// snapshot of the product and how many times it was added.
package cart

import (
	"github.com/shopspring/decimal"

	models "github.com/pr-poehali-dev/mini-magazin-site/model"
)

// Ledger is not safe for concurrent use.
type Ledger struct {
	entries []models.CartEntry
	version uint64
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add puts one more unit of product into the cart. A repeat add refreshes
// the stored snapshot so later name or price edits show up. Stock is the
// caller's concern.
func (l *Ledger) Add(product models.Product) {
	l.version++

	if i := l.indexOf(product.ID); i >= 0 {
		l.entries[i].Product = product.Clone()
		l.entries[i].Quantity++
		return
	}

	l.entries = append(l.entries, models.CartEntry{Product: product.Clone(), Quantity: 1})
}

// Remove takes the whole entry for productID out of the cart.
func (l *Ledger) Remove(productID int64) bool {
	i := l.indexOf(productID)
	if i < 0 {
		return false
	}

	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.version++
	return true
}

// Entries returns a copy of the cart in the order products were first added.
func (l *Ledger) Entries() []models.CartEntry {
	out := make([]models.CartEntry, 0, len(l.entries))
	for _, e := range l.entries {
		e.Product = e.Product.Clone()
		out = append(out, e)
	}
	return out
}

func (l *Ledger) Len() int { return len(l.entries) }

// Version changes on every mutation.
func (l *Ledger) Version() uint64 { return l.version }

func (l *Ledger) TotalItems() int {
	total := 0
	for _, e := range l.entries {
		total += e.Quantity
	}
	return total
}

// TotalPrice sums snapshot price times quantity.
func (l *Ledger) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

// Ghosts returns the ids of entries whose product is absent from live.
func (l *Ledger) Ghosts(live []models.Product) []int64 {
	present := make(map[int64]struct{}, len(live))
	for _, p := range live {
		present[p.ID] = struct{}{}
	}

	ghosts := []int64{}
	for _, e := range l.entries {
		if _, ok := present[e.ID]; !ok {
			ghosts = append(ghosts, e.ID)
		}
	}
	return ghosts
}

// Summary is the cart as the sidebar renders it.
func (l *Ledger) Summary(live []models.Product) models.CartSummary {
	return models.CartSummary{
		Items:      l.Entries(),
		TotalItems: l.TotalItems(),
		TotalPrice: l.TotalPrice(),
		Ghosts:     l.Ghosts(live),
	}
}

func (l *Ledger) indexOf(productID int64) int {
	for i, e := range l.entries {
		if e.ID == productID {
			return i
		}
	}
	return -1
}
