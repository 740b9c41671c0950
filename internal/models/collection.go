package models

// ComparisonType is the operator code of a collection filter. It is only used for display.
type ComparisonType int

// Known comparison types returned by the commerce API.
const (
	ComparisonUnspecified ComparisonType = iota
	ComparisonEqual
	ComparisonNotEqual
	ComparisonGreater
	ComparisonLess
	ComparisonGreaterOrEqual
	ComparisonLessOrEqual
	ComparisonContains
	ComparisonNotContains
)

var comparisonLabels = map[ComparisonType]string{
	ComparisonEqual:          "equals",
	ComparisonNotEqual:       "does not equal",
	ComparisonGreater:        "is greater than",
	ComparisonLess:           "is less than",
	ComparisonGreaterOrEqual: "is greater than or equal to",
	ComparisonLessOrEqual:    "is less than or equal to",
	ComparisonContains:       "contains",
	ComparisonNotContains:    "does not contain",
}

// String returns a human label for the comparison type.
func (c ComparisonType) String() string {
	if label, ok := comparisonLabels[c]; ok {
		return label
	}
	return "unknown comparison"
}

// Filter is one condition of a collection's filter group.
type Filter struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Value          string         `json:"value"`
	ValueName      string         `json:"valueName"`
	Currency       *string        `json:"currency,omitempty"`
	ComparisonType ComparisonType `json:"comparisonType"`
}

// Describe renders the filter as a sentence for listings.
func (f Filter) Describe() string {
	value := f.ValueName
	if value == "" {
		value = f.Value
	}
	if f.Currency != nil && *f.Currency != "" {
		value += " " + *f.Currency
	}
	return "Product " + f.Title + " " + f.ComparisonType.String() + ": " + value
}

// CollectionInfo holds descriptive collection fields.
type CollectionInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	LangCode    string `json:"langCode"`
}

// CollectionFilters is the filter group of a collection.
type CollectionFilters struct {
	UseOrLogic bool     `json:"useOrLogic"`
	Filters    []Filter `json:"filters"`
}

// Collection is a grouping of products as returned by the commerce API.
type Collection struct {
	ID             int               `json:"id"`
	Type           int               `json:"type"`
	Info           CollectionInfo    `json:"info"`
	Filters        CollectionFilters `json:"filters"`
	SalesChannelID int               `json:"salesChannelId"`
	Products       []Product         `json:"products,omitempty"`
}

// IsManual reports whether the collection has no filter conditions.
func (c Collection) IsManual() bool {
	return len(c.Filters.Filters) == 0
}
