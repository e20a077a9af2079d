package models

import (
	"github.com/shopspring/decimal"
)

// Category is one of the closed set of catalog sections.
type Category string

const (
	Clothing    Category = "clothing"
	Accessories Category = "accessories"
	Footwear    Category = "footwear"
)

// Categories lists the selectable categories in display order.
var Categories = []Category{Clothing, Accessories, Footwear}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog item as held by the store. ID is assigned by the
// store on creation and never changes afterwards.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Sizes       Sizes           `json:"sizes"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	InStock     bool            `json:"in_stock"`
}

// DraftProduct holds product fields that have not been committed to the
// store yet. The validate tags are the creation gate.
type DraftProduct struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Category    Category        `json:"category"`
	Sizes       Sizes           `json:"sizes"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	InStock     bool            `json:"in_stock"`
}

// NewDraft returns the blank form state for a new product.
func NewDraft() DraftProduct {
	return DraftProduct{
		Price:    decimal.Zero,
		Category: Clothing,
		Sizes:    Sizes{},
		InStock:  true,
	}
}

// Clone returns a deep copy of p.
func (p Product) Clone() Product {
	p.Sizes = p.Sizes.Clone()
	return p
}

// Draft copies p into an editable draft. The draft shares no memory with p.
func (p Product) Draft() DraftProduct {
	return DraftProduct{
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Sizes:       p.Sizes.Clone(),
		Image:       p.Image,
		Description: p.Description,
		InStock:     p.InStock,
	}
}

// WithID merges the draft back into a product carrying id.
func (d DraftProduct) WithID(id int64) Product {
	return Product{
		ID:          id,
		Name:        d.Name,
		Price:       d.Price,
		Category:    d.Category,
		Sizes:       d.Sizes.Clone(),
		Image:       d.Image,
		Description: d.Description,
		InStock:     d.InStock,
	}
}

// DraftPatch carries the form fields to replace; nil fields are left as is.
type DraftPatch struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Category    *Category        `json:"category"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
	InStock     *bool            `json:"in_stock"`
}

// Apply returns d with the non-nil patch fields replaced. No validation.
func (d DraftProduct) Apply(patch DraftPatch) DraftProduct {
	d.Sizes = d.Sizes.Clone()

	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Price != nil {
		d.Price = *patch.Price
	}
	if patch.Category != nil {
		d.Category = *patch.Category
	}
	if patch.Image != nil {
		d.Image = *patch.Image
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.InStock != nil {
		d.InStock = *patch.InStock
	}

	return d
}
