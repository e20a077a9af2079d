package service

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/mini-magazin-site/cart"
	"github.com/pr-poehali-dev/mini-magazin-site/draft"
	"github.com/pr-poehali-dev/mini-magazin-site/filter"
	models "github.com/pr-poehali-dev/mini-magazin-site/model"
	"github.com/pr-poehali-dev/mini-magazin-site/store"
)

// Service ties the product store, filter state, cart ledger and draft
// editor together. It is meant to be driven from a single goroutine.
type Service struct {
	store  store.Store
	cart   *cart.Ledger
	editor *draft.Editor
	filter models.FilterState
	admin  bool
	logger *zap.Logger

	view viewCache
}

// viewCache memoizes the filtered list until the store changes or the
// filter is replaced.
type viewCache struct {
	valid    bool
	version  uint64
	filter   models.FilterState
	products []models.Product
}

func NewService(s store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  s,
		cart:   cart.NewLedger(),
		editor: draft.NewEditor(),
		filter: filter.DefaultState(),
		logger: logger,
	}
}

// --- products ---

// CreateProduct stores a product built from d. A draft with an empty name
// or a non-positive price is rejected with store.ErrInvalidProduct and
// nothing changes.
func (s *Service) CreateProduct(d models.DraftProduct) (models.Product, error) {
	p, err := s.store.Create(d)
	if err != nil {
		s.logger.Warn("product rejected", zap.String("name", d.Name), zap.Stringer("price", d.Price), zap.Error(err))
		return models.Product{}, err
	}

	s.logger.Debug("product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// UpdateProduct replaces the stored product with the same id. Cart entries
// keep their snapshot until the product is added again.
func (s *Service) UpdateProduct(p models.Product) bool {
	if !s.store.Update(p) {
		s.logger.Debug("update ignored, product not found", zap.Int64("product_id", p.ID))
		return false
	}

	s.logger.Debug("product updated", zap.Int64("product_id", p.ID))
	return true
}

// DeleteProduct removes a product from the catalog. Cart entries for it
// stay in the cart and are reported as ghosts by CartSummary.
func (s *Service) DeleteProduct(id int64) bool {
	if !s.store.Delete(id) {
		s.logger.Debug("delete ignored, product not found", zap.Int64("product_id", id))
		return false
	}

	s.logger.Debug("product deleted", zap.Int64("product_id", id))
	return true
}

func (s *Service) SetInStock(id int64, inStock bool) bool {
	ok := s.store.SetInStock(id, inStock)
	s.logger.Debug("stock flag set", zap.Int64("product_id", id), zap.Bool("in_stock", inStock), zap.Bool("found", ok))
	return ok
}

func (s *Service) GetProduct(id int64) (models.Product, bool) {
	return s.store.Get(id)
}

func (s *Service) Products() []models.Product {
	return s.store.List()
}

// --- filters ---

func (s *Service) SetFilter(patch models.FilterPatch) models.FilterState {
	s.filter = filter.Merge(s.filter, patch)
	s.logger.Debug("filter set",
		zap.String("category", s.filter.Category),
		zap.String("size", s.filter.Size),
		zap.String("search", s.filter.SearchText),
	)
	return s.filter
}

func (s *Service) Filter() models.FilterState {
	return s.filter
}

// Filtered returns the catalog narrowed by the current filter, in catalog
// order.
func (s *Service) Filtered() []models.Product {
	version := s.store.Version()
	if !s.view.valid || s.view.version != version || s.view.filter != s.filter {
		s.view = viewCache{
			valid:    true,
			version:  version,
			filter:   s.filter,
			products: filter.Apply(s.store.List(), s.filter),
		}
	}

	out := make([]models.Product, 0, len(s.view.products))
	for _, p := range s.view.products {
		out = append(out, p.Clone())
	}
	return out
}

// --- cart ---

// AddToCart records one more unit of p. It does not look at p.InStock;
// callers that honour availability use AddToCartByID.
func (s *Service) AddToCart(p models.Product) {
	s.cart.Add(p)
	s.logger.Debug("added to cart", zap.Int64("product_id", p.ID), zap.Int("total_items", s.cart.TotalItems()))
}

// AddToCartByID adds the current version of a catalog product, refusing
// products that are missing or out of stock.
func (s *Service) AddToCartByID(id int64) error {
	p, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("add to cart %d: %w", id, ErrProductNotFound)
	}
	if !p.InStock {
		s.logger.Warn("add to cart refused, out of stock", zap.Int64("product_id", id))
		return fmt.Errorf("add to cart %d: %w", id, ErrOutOfStock)
	}

	s.AddToCart(p)
	return nil
}

func (s *Service) RemoveFromCart(id int64) bool {
	ok := s.cart.Remove(id)
	s.logger.Debug("removed from cart", zap.Int64("product_id", id), zap.Bool("found", ok))
	return ok
}

func (s *Service) CartEntries() []models.CartEntry {
	return s.cart.Entries()
}

func (s *Service) TotalItems() int {
	return s.cart.TotalItems()
}

func (s *Service) TotalPrice() decimal.Decimal {
	return s.cart.TotalPrice()
}

func (s *Service) CartSummary() models.CartSummary {
	return s.cart.Summary(s.store.List())
}

// --- drafts ---

func (s *Service) OpenCreateDraft() error {
	return s.editor.OpenCreate()
}

func (s *Service) OpenEditDraft(p models.Product) error {
	return s.editor.OpenEdit(p)
}

func (s *Service) PatchDraft(patch models.DraftPatch) error {
	return s.editor.Patch(patch)
}

func (s *Service) ToggleDraftSize(size string, checked bool) error {
	return s.editor.ToggleSize(size, checked)
}

// SaveDraft commits the open draft. A rejected new product keeps the draft
// open so the form can be corrected. An edit always closes the draft; if
// the product was deleted meanwhile ErrProductNotFound is returned.
func (s *Service) SaveDraft() (models.Product, error) {
	snap, ok := s.editor.Current()
	if !ok {
		return models.Product{}, draft.ErrNoDraft
	}

	switch snap.Mode {
	case draft.Creating:
		p, err := s.CreateProduct(snap.Draft)
		if err != nil {
			return models.Product{}, err
		}
		s.editor.Close()
		return p, nil

	default:
		s.editor.Close()
		p := snap.Draft.WithID(snap.ProductID)
		if !s.UpdateProduct(p) {
			return models.Product{}, fmt.Errorf("save draft %d: %w", snap.ProductID, ErrProductNotFound)
		}
		return p, nil
	}
}

func (s *Service) CancelDraft() {
	s.editor.Cancel()
}

func (s *Service) Draft() (draft.Snapshot, bool) {
	return s.editor.Current()
}

// --- view mode ---

// IsAdmin reports whether the admin controls are shown. It guards nothing.
func (s *Service) IsAdmin() bool { return s.admin }

func (s *Service) SetAdmin(on bool) {
	s.admin = on
	s.logger.Debug("admin mode", zap.Bool("on", on))
}
