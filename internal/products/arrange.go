// Package products holds the pure list operations behind the editing screen:
// filtering and sorting the displayed view, moving a product, threading a
// reordered view back into the base order and comparing two orders.
package products

import (
	"slices"
	"strings"

	"github.com/Houeta/collection-desk/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply derives the displayed view from items and the filter state.
//
// A product is kept when its name or product code contains the search term
// (case-insensitively) and, when a color code is selected, its color code is
// exactly that code. A set sort key orders the result with the collation rules
// of lang. The sort is stable and the input slice is never modified.
func Apply(items []models.Product, state models.FilterState, lang language.Tag) []models.Product {
	view := make([]models.Product, 0, len(items))

	fold := cases.Fold()
	term := fold.String(state.SearchTerm)

	for _, p := range items {
		if term != "" &&
			!strings.Contains(fold.String(p.DisplayName()), term) &&
			!strings.Contains(fold.String(p.ProductCode), term) {
			continue
		}
		if state.ColorCode != "" && p.Color() != state.ColorCode {
			continue
		}
		view = append(view, p)
	}

	switch state.SortBy {
	case models.SortByName:
		col := collate.New(lang)
		slices.SortStableFunc(view, func(a, b models.Product) int {
			return col.CompareString(a.DisplayName(), b.DisplayName())
		})
	case models.SortByCode:
		col := collate.New(lang)
		slices.SortStableFunc(view, func(a, b models.Product) int {
			return col.CompareString(a.ProductCode, b.ProductCode)
		})
	case models.SortNone:
	}

	return view
}

// Move returns a copy of items where the element at from is removed and
// reinserted at to. Equal or out of range indices return an unchanged copy.
func Move(items []models.Product, from, to int) []models.Product {
	moved := slices.Clone(items)
	if from == to || from < 0 || to < 0 || from >= len(items) || to >= len(items) {
		return moved
	}

	p := moved[from]
	moved = slices.Delete(moved, from, from+1)
	return slices.Insert(moved, to, p)
}

// Rebase threads a reordered view back into the base order.
//
// The view's products come first in their new order, followed by every base
// product that is not part of the view in its previous relative order. The
// result is always a permutation of base: view products that do not occur in
// base are ignored.
func Rebase(base, view []models.Product) []models.Product {
	pending := make(map[string][]models.Product, len(base))
	for _, p := range base {
		pending[p.ProductCode] = append(pending[p.ProductCode], p)
	}

	rebased := make([]models.Product, 0, len(base))
	for _, p := range view {
		candidates := pending[p.ProductCode]
		idx := slices.IndexFunc(candidates, func(c models.Product) bool { return Equal(c, p) })
		if idx < 0 {
			continue
		}
		rebased = append(rebased, candidates[idx])
		pending[p.ProductCode] = slices.Delete(candidates, idx, idx+1)
	}

	for _, p := range base {
		candidates := pending[p.ProductCode]
		idx := slices.IndexFunc(candidates, func(c models.Product) bool { return Equal(c, p) })
		if idx < 0 {
			continue
		}
		rebased = append(rebased, candidates[idx])
		pending[p.ProductCode] = slices.Delete(candidates, idx, idx+1)
	}

	return rebased
}

// ColorCodes returns the distinct non-empty color codes of items in first-seen order.
func ColorCodes(items []models.Product) []string {
	seen := make(map[string]struct{}, len(items))
	codes := make([]string, 0)
	for _, p := range items {
		code := p.Color()
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}
