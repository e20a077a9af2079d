package store

// SetInStock flips the availability flag of a product (admin operation).
// It reports false when the product does not exist.
func (s *MemoryStore) SetInStock(id int64, inStock bool) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	if s.products[i].InStock == inStock {
		return true
	}
	s.products[i].InStock = inStock
	s.version++
	return true
}

// InStock reports whether the product exists and can be added to the cart.
func (s *MemoryStore) InStock(id int64) bool {
	i := s.indexOf(id)
	return i >= 0 && s.products[i].InStock
}
