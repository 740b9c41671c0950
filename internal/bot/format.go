package bot

import (
	"fmt"
	"strings"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/services/editor"
)

func formatCollections(collections []models.Collection, page, size int) string {
	if len(collections) == 0 {
		return "No collections"
	}
	if size <= 0 {
		size = 5
	}

	pages := (len(collections) + size - 1) / size
	page = min(max(page, 1), pages)
	start := (page - 1) * size
	end := min(start+size, len(collections))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Collections (page %d of %d)\n", page, pages)
	for _, c := range collections[start:end] {
		fmt.Fprintf(&sb, "\n#%d %s\nSales channel - %d\n", c.ID, c.Info.Name, c.SalesChannelID)
		if c.IsManual() {
			sb.WriteString("Manual collection\n")
		}
		for _, f := range c.Filters.Filters {
			sb.WriteString(f.Describe() + "\n")
		}
	}
	if page < pages {
		fmt.Fprintf(&sb, "\nNext page: /collections %d", page+1)
	}
	sb.WriteString("\nOpen one with /edit <id>")

	return sb.String()
}

func formatView(view editor.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %d products shown of %d\n",
		view.Header.CollectionName, view.Header.ProductCount, view.Meta.TotalProduct)

	if view.State == editor.StateError {
		fmt.Fprintf(&sb, "Error: %s\nSend /edit %d to retry.", view.Error, view.Collection.ID)
		return sb.String()
	}

	if f := view.Filters; f.IsActive() {
		var parts []string
		if f.SearchTerm != "" {
			parts = append(parts, fmt.Sprintf("search %q", f.SearchTerm))
		}
		if f.ColorCode != "" {
			parts = append(parts, "color "+f.ColorCode)
		}
		if f.SortBy != models.SortNone {
			parts = append(parts, "sort "+f.SortBy.Label())
		}
		sb.WriteString("Filters: " + strings.Join(parts, ", ") + " (/clear)\n")
	}
	if len(view.ColorCodes) > 0 {
		sb.WriteString("Colors: " + strings.Join(view.ColorCodes, ", ") + "\n")
	}

	switch view.Empty {
	case editor.EmptyNoProducts:
		sb.WriteString("\nThis collection has no products\n")
	case editor.EmptyNoMatches:
		sb.WriteString("\nNo products match the filters\n")
	case editor.EmptyNone:
		sb.WriteString("\n")
		for i, p := range view.Products {
			fmt.Fprintf(&sb, "%d. %s (%s)", i+1, p.DisplayName(), p.ProductCode)
			if code := p.Color(); code != "" {
				sb.WriteString(" " + code)
			}
			sb.WriteString("\n")
		}
	}

	switch {
	case view.State == editor.StateConfirmingSave:
		sb.WriteString("\nSave changes? The new order:\n")
		for i, p := range view.Order {
			fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, p.DisplayName(), p.ProductCode)
		}
		sb.WriteString("/confirm to save, /dismiss to go back")
	case view.Dirty:
		sb.WriteString("\nUnsaved changes: /save to save, /cancel to revert")
	}

	return strings.TrimRight(sb.String(), "\n")
}
