package models

import (
	"cmp"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// OneSize is stored when a product is created without any size selected.
const OneSize = "ONE SIZE"

// SizeOptions are the sizes offered by the product form.
var SizeOptions = []string{"XS", "S", "M", "L", "XL", OneSize, "36", "37", "38", "39", "40", "41", "42", "43"}

var letterSizes = []string{"XXS", "XS", "S", "M", "L", "XL", "XXL", "XXXL"}

// Sizes is a set of size labels kept in canonical order: letter sizes
// smallest first, then ONE SIZE, then numeric sizes ascending, then any
// other label alphabetically. Adding a present label or removing an absent
// one leaves the set unchanged.
type Sizes []string

func NewSizes(labels ...string) Sizes {
	s := Sizes{}
	for _, label := range labels {
		s = s.With(label)
	}
	return s
}

func (s Sizes) Has(size string) bool {
	return slices.Contains(s, size)
}

// With returns a copy of s that contains size.
func (s Sizes) With(size string) Sizes {
	out := s.Clone()
	if out == nil {
		out = Sizes{}
	}
	if size == "" || s.Has(size) {
		return out
	}

	out = append(out, size)
	slices.SortStableFunc(out, compareSizes)
	return out
}

// Without returns a copy of s that does not contain size.
func (s Sizes) Without(size string) Sizes {
	out := make(Sizes, 0, len(s))
	for _, v := range s {
		if v != size {
			out = append(out, v)
		}
	}
	return out
}

func (s Sizes) Clone() Sizes {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

func (s *Sizes) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s = NewSizes(labels...)
	return nil
}

type sizeKey struct {
	group int
	order float64
}

func keyOf(size string) sizeKey {
	if i := slices.Index(letterSizes, strings.ToUpper(size)); i >= 0 {
		return sizeKey{group: 0, order: float64(i)}
	}
	if size == OneSize {
		return sizeKey{group: 1}
	}
	if n, err := strconv.ParseFloat(size, 64); err == nil {
		return sizeKey{group: 2, order: n}
	}
	return sizeKey{group: 3}
}

func compareSizes(a, b string) int {
	ka, kb := keyOf(a), keyOf(b)
	if ka.group != kb.group {
		return cmp.Compare(ka.group, kb.group)
	}
	if ka.order != kb.order {
		return cmp.Compare(ka.order, kb.order)
	}
	return strings.Compare(a, b)
}
