package store

import (
	"errors"
	"fmt"

	models "github.com/pr-poehali-dev/mini-magazin-site/model"
	"github.com/pr-poehali-dev/mini-magazin-site/validation"
)

// ErrInvalidProduct is returned by Create when the draft fails the creation
// gate (empty name or non-positive price). The collection is left unchanged.
var ErrInvalidProduct = errors.New("invalid product")

// ErrDuplicateID is returned when a seed catalog repeats an id.
var ErrDuplicateID = errors.New("duplicate product id")

var validate = validation.New()

// MemoryStore keeps products in insertion order. It is not safe for
// concurrent use; all calls are expected from one goroutine.
type MemoryStore struct {
	products []models.Product
	version  uint64
}

// NewMemoryStore returns a store holding seed in the given order. Seed
// products with a zero id get the next free one.
func NewMemoryStore(seed ...models.Product) (*MemoryStore, error) {
	s := &MemoryStore{products: make([]models.Product, 0, len(seed))}
	seen := make(map[int64]struct{}, len(seed))

	for _, p := range seed {
		p = p.Clone()
		if p.ID == 0 {
			p.ID = s.nextID()
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		if len(p.Sizes) == 0 {
			p.Sizes = models.NewSizes(models.OneSize)
		}
		seen[p.ID] = struct{}{}
		s.products = append(s.products, p)
	}
	return s, nil
}

// Create stores a new product built from draft with id max(ids, 0) + 1.
func (s *MemoryStore) Create(draft models.DraftProduct) (models.Product, error) {
	if err := validate.Struct(draft); err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}

	p := draft.WithID(s.nextID())
	if len(p.Sizes) == 0 {
		p.Sizes = models.NewSizes(models.OneSize)
	}

	s.products = append(s.products, p)
	s.version++
	return p.Clone(), nil
}

// Update replaces the product with the same id. It reports false and does
// nothing when no such product exists.
func (s *MemoryStore) Update(product models.Product) bool {
	i := s.indexOf(product.ID)
	if i < 0 {
		return false
	}
	s.products[i] = product.Clone()
	s.version++
	return true
}

func (s *MemoryStore) Delete(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	s.version++
	return true
}

func (s *MemoryStore) Get(id int64) (models.Product, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Product{}, false
	}
	return s.products[i].Clone(), true
}

// List returns a copy of the collection in insertion order.
func (s *MemoryStore) List() []models.Product {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out
}

func (s *MemoryStore) Version() uint64 { return s.version }

func (s *MemoryStore) indexOf(id int64) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) nextID() int64 {
	var max int64
	for _, p := range s.products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
