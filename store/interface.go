package store

import models "github.com/pr-poehali-dev/mini-magazin-site/model"

// Store is the authoritative product collection. Every successful mutation
// bumps Version.
type Store interface {
	Create(draft models.DraftProduct) (models.Product, error)
	Update(product models.Product) bool
	Delete(id int64) bool

	Get(id int64) (models.Product, bool)
	List() []models.Product

	SetInStock(id int64, inStock bool) bool
	InStock(id int64) bool
	Version() uint64
}
