package models

import "fmt"

// SortKey selects the client side ordering of a product list.
type SortKey string

const (
	SortNone   SortKey = ""
	SortByName SortKey = "name"
	SortByCode SortKey = "code"
)

// ParseSortKey validates a user supplied sort key. "none" and "" both clear sorting.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "", "none":
		return SortNone, nil
	case string(SortByName):
		return SortByName, nil
	case string(SortByCode):
		return SortByCode, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key %q", s)
	}
}

// Label returns the human label of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortByName:
		return "By name (A-Z)"
	case SortByCode:
		return "By product code"
	default:
		return "Default"
	}
}

// FilterState is the ephemeral filter record of an editing session.
type FilterState struct {
	SearchTerm string
	ColorCode  string
	SortBy     SortKey
}

// IsActive reports whether any filter or sort is set.
func (f FilterState) IsActive() bool {
	return f.SearchTerm != "" || f.ColorCode != "" || f.SortBy != SortNone
}
