package products

import "github.com/Houeta/collection-desk/internal/models"

// Equal compares every display relevant field of two products.
func Equal(a, b models.Product) bool {
	return a.ProductCode == b.ProductCode &&
		sameString(a.ColorCode, b.ColorCode) &&
		sameString(a.Name, b.Name) &&
		a.ImageURL == b.ImageURL &&
		a.OutOfStock == b.OutOfStock &&
		a.IsSaleB2B == b.IsSaleB2B
}

// Dirty reports whether current differs from original in content or order.
func Dirty(current, original []models.Product) bool {
	if len(current) != len(original) {
		return true
	}
	for i := range current {
		if !Equal(current[i], original[i]) {
			return true
		}
	}
	return false
}

// Position describes where a product sits in the original and current order.
// Positions are zero based; -1 marks an absent product.
type Position struct {
	Product models.Product
	From    int
	To      int
}

// Changes lists the products whose position differs between original and current,
// in current order, followed by products that disappeared from current.
func Changes(current, original []models.Product) []Position {
	oldIdx := make(map[string][]int, len(original))
	for i, p := range original {
		oldIdx[p.ProductCode] = append(oldIdx[p.ProductCode], i)
	}

	var changes []Position
	for i, p := range current {
		positions := oldIdx[p.ProductCode]
		if len(positions) == 0 {
			changes = append(changes, Position{Product: p, From: -1, To: i})
			continue
		}
		from := positions[0]
		oldIdx[p.ProductCode] = positions[1:]
		if from != i || !Equal(original[from], p) {
			changes = append(changes, Position{Product: p, From: from, To: i})
		}
	}

	for i, p := range original {
		for _, left := range oldIdx[p.ProductCode] {
			if left == i {
				changes = append(changes, Position{Product: p, From: i, To: -1})
			}
		}
	}

	return changes
}

func sameString(a, b *string) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return *a == *b
	}
}
