package service

import (
	"github.com/shopspring/decimal"

	"github.com/pr-poehali-dev/mini-magazin-site/draft"
	models "github.com/pr-poehali-dev/mini-magazin-site/model"
)

// ServiceInterface is everything the view can ask of the catalog: intents
// that change state and reads of the current state.
type ServiceInterface interface {
	CreateProduct(d models.DraftProduct) (models.Product, error)
	UpdateProduct(p models.Product) bool
	DeleteProduct(id int64) bool
	SetInStock(id int64, inStock bool) bool
	GetProduct(id int64) (models.Product, bool)
	Products() []models.Product

	SetFilter(patch models.FilterPatch) models.FilterState
	Filter() models.FilterState
	Filtered() []models.Product

	AddToCart(p models.Product)
	AddToCartByID(id int64) error
	RemoveFromCart(id int64) bool
	CartEntries() []models.CartEntry
	TotalItems() int
	TotalPrice() decimal.Decimal
	CartSummary() models.CartSummary

	OpenCreateDraft() error
	OpenEditDraft(p models.Product) error
	PatchDraft(patch models.DraftPatch) error
	ToggleDraftSize(size string, checked bool) error
	SaveDraft() (models.Product, error)
	CancelDraft()
	Draft() (draft.Snapshot, bool)

	IsAdmin() bool
	SetAdmin(on bool)
}

var _ ServiceInterface = (*Service)(nil)
