// Package filter narrows a product list by category, size and a search
// string. Everything here is a pure function of its inputs.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	models "github.com/pr-poehali-dev/mini-magazin-site/model"
)

// DefaultState lets every product through.
func DefaultState() models.FilterState {
	return models.FilterState{Category: models.All, Size: models.All}
}

// Merge returns state with the non-nil fields of patch applied.
func Merge(state models.FilterState, patch models.FilterPatch) models.FilterState {
	if patch.Category != nil {
		state.Category = *patch.Category
	}
	if patch.Size != nil {
		state.Size = *patch.Size
	}
	if patch.SearchText != nil {
		state.SearchText = *patch.SearchText
	}
	return state
}

// Apply returns the products that pass every constraint of state, in their
// original order. An empty category or size counts as "all".
func Apply(products []models.Product, state models.FilterState) []models.Product {
	m := newMatcher(state)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether a single product passes state.
func Match(p models.Product, state models.FilterState) bool {
	return newMatcher(state).match(p)
}

type matcher struct {
	state  models.FilterState
	fold   cases.Caser
	needle string
}

func newMatcher(state models.FilterState) *matcher {
	m := &matcher{state: state, fold: cases.Fold()}
	if state.SearchText != "" {
		m.needle = m.fold.String(state.SearchText)
	}
	return m
}

func (m *matcher) match(p models.Product) bool {
	return m.matchCategory(p) && m.matchSize(p) && m.matchSearch(p)
}

func (m *matcher) matchCategory(p models.Product) bool {
	c := m.state.Category
	return c == "" || c == models.All || string(p.Category) == c
}

func (m *matcher) matchSize(p models.Product) bool {
	s := m.state.Size
	return s == "" || s == models.All || p.Sizes.Has(s)
}

func (m *matcher) matchSearch(p models.Product) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.fold.String(p.Name), m.needle)
}
