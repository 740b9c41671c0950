package products_test

import (
	"testing"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/products"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func ptr(s string) *string { return &s }

func product(code, name, color string) models.Product {
	p := models.Product{ProductCode: code, ImageURL: "https://img.example.com/" + code + ".jpg"}
	if name != "" {
		p.Name = ptr(name)
	}
	if color != "" {
		p.ColorCode = ptr(color)
	}
	return p
}

func codes(items []models.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ProductCode)
	}
	return out
}

func samplePage() []models.Product {
	return []models.Product{
		product("TS-300", "Trench Coat", "BEIGE"),
		product("DR-100", "Çiçekli Elbise", "RED"),
		product("SK-210", "", "BLACK"),
		product("DR-101", "Abiye Elbise", "RED"),
		product("BL-500", "Bluz", ""),
	}
}

func TestApply(t *testing.T) {
	tr := language.Turkish

	testCases := []struct {
		name     string
		items    []models.Product
		state    models.FilterState
		expected []string
	}{
		{
			name:     "empty filter state keeps order and content",
			items:    samplePage(),
			state:    models.FilterState{},
			expected: []string{"TS-300", "DR-100", "SK-210", "DR-101", "BL-500"},
		},
		{
			name:     "empty input",
			items:    nil,
			state:    models.FilterState{SearchTerm: "x", SortBy: models.SortByName},
			expected: []string{},
		},
		{
			name:     "search matches name case-insensitively",
			items:    samplePage(),
			state:    models.FilterState{SearchTerm: "ELBISE"},
			expected: []string{"DR-100", "DR-101"},
		},
		{
			name:     "search matches product code",
			items:    samplePage(),
			state:    models.FilterState{SearchTerm: "sk-2"},
			expected: []string{"SK-210"},
		},
		{
			name:     "search matching nothing",
			items:    samplePage(),
			state:    models.FilterState{SearchTerm: "no such product"},
			expected: []string{},
		},
		{
			name:     "search matching every code keeps order",
			items:    samplePage(),
			state:    models.FilterState{SearchTerm: "-"},
			expected: []string{"TS-300", "DR-100", "SK-210", "DR-101", "BL-500"},
		},
		{
			name:     "color equality",
			items:    samplePage(),
			state:    models.FilterState{ColorCode: "RED"},
			expected: []string{"DR-100", "DR-101"},
		},
		{
			name:     "color is exact, not a substring",
			items:    samplePage(),
			state:    models.FilterState{ColorCode: "RE"},
			expected: []string{},
		},
		{
			name:     "sort by code",
			items:    samplePage(),
			state:    models.FilterState{SortBy: models.SortByCode},
			expected: []string{"BL-500", "DR-100", "DR-101", "SK-210", "TS-300"},
		},
		{
			name:     "sort by name treats missing name as empty and uses turkish collation",
			items:    samplePage(),
			state:    models.FilterState{SortBy: models.SortByName},
			expected: []string{"SK-210", "DR-101", "BL-500", "DR-100", "TS-300"},
		},
		{
			name:     "search, color and sort combined",
			items:    samplePage(),
			state:    models.FilterState{SearchTerm: "elbise", ColorCode: "RED", SortBy: models.SortByName},
			expected: []string{"DR-101", "DR-100"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := products.Apply(tc.items, tc.state, tr)
			if diff := cmp.Diff(tc.expected, codes(got)); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := samplePage()
	before := codes(items)

	_ = products.Apply(items, models.FilterState{SortBy: models.SortByCode}, language.Turkish)

	assert.Equal(t, before, codes(items))
}

func TestApply_Idempotent(t *testing.T) {
	state := models.FilterState{SearchTerm: "e", SortBy: models.SortByName}

	once := products.Apply(samplePage(), state, language.Turkish)
	twice := products.Apply(once, state, language.Turkish)

	assert.Equal(t, codes(once), codes(twice))
}

func TestApply_SortByNameIsStable(t *testing.T) {
	items := []models.Product{
		product("C", "Same", ""),
		product("A", "Same", ""),
		product("B", "Same", ""),
		product("D", "Another", ""),
	}

	got := products.Apply(items, models.FilterState{SortBy: models.SortByName}, language.Turkish)

	assert.Equal(t, []string{"D", "C", "A", "B"}, codes(got))
}

func TestMove(t *testing.T) {
	items := []models.Product{product("A", "", ""), product("B", "", ""), product("C", "", "")}

	testCases := []struct {
		name     string
		from, to int
		expected []string
	}{
		{name: "first to last", from: 0, to: 2, expected: []string{"B", "C", "A"}},
		{name: "last to first", from: 2, to: 0, expected: []string{"C", "A", "B"}},
		{name: "adjacent swap", from: 0, to: 1, expected: []string{"B", "A", "C"}},
		{name: "same index", from: 1, to: 1, expected: []string{"A", "B", "C"}},
		{name: "source out of range", from: 3, to: 0, expected: []string{"A", "B", "C"}},
		{name: "destination out of range", from: 0, to: 5, expected: []string{"A", "B", "C"}},
		{name: "negative index", from: -1, to: 0, expected: []string{"A", "B", "C"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := products.Move(items, tc.from, tc.to)
			assert.Equal(t, tc.expected, codes(got))
			assert.Equal(t, []string{"A", "B", "C"}, codes(items), "input must not change")
		})
	}
}

func TestMove_RoundTrip(t *testing.T) {
	items := samplePage()

	for i := range items {
		for j := range items {
			moved := products.Move(items, i, j)
			back := products.Move(moved, j, i)
			require.Falsef(t, products.Dirty(back, items), "Move(%d,%d) then Move(%d,%d) changed the list", i, j, j, i)
		}
	}
}

func TestRebase(t *testing.T) {
	base := []models.Product{
		product("A", "", "RED"),
		product("B", "", "BLUE"),
		product("C", "", "RED"),
		product("D", "", "BLUE"),
		product("E", "", "RED"),
	}

	t.Run("full view replaces base order", func(t *testing.T) {
		view := products.Move(base, 0, 4)
		got := products.Rebase(base, view)
		assert.Equal(t, []string{"B", "C", "D", "E", "A"}, codes(got))
	})

	t.Run("filtered out products move to the end in their previous order", func(t *testing.T) {
		view := products.Apply(base, models.FilterState{ColorCode: "RED"}, language.Turkish)
		view = products.Move(view, 2, 0)
		got := products.Rebase(base, view)
		assert.Equal(t, []string{"E", "A", "C", "B", "D"}, codes(got))
	})

	t.Run("result is a permutation of base", func(t *testing.T) {
		view := []models.Product{base[3], product("Z", "", ""), base[1]}
		got := products.Rebase(base, view)
		assert.ElementsMatch(t, codes(base), codes(got))
		assert.Equal(t, []string{"D", "B", "A", "C", "E"}, codes(got))
	})

	t.Run("duplicated codes keep their multiplicity", func(t *testing.T) {
		dup := []models.Product{product("A", "", ""), product("A", "", ""), product("B", "", "")}
		got := products.Rebase(dup, []models.Product{dup[2], dup[0]})
		assert.Equal(t, []string{"B", "A", "A"}, codes(got))
	})
}

func TestColorCodes(t *testing.T) {
	assert.Equal(t, []string{"BEIGE", "RED", "BLACK"}, products.ColorCodes(samplePage()))
	assert.Empty(t, products.ColorCodes(nil))
}
