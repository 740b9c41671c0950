package models

// Product is one product of a collection page.
type Product struct {
	ProductCode string  `json:"productCode"`
	ColorCode   *string `json:"colorCode,omitempty"`
	Name        *string `json:"name"`
	ImageURL    string  `json:"imageUrl"`
	OutOfStock  bool    `json:"outOfStock,omitempty"`
	IsSaleB2B   bool    `json:"isSaleB2B,omitempty"`
}

// DisplayName returns the product name, or an empty string when the name is missing.
func (p Product) DisplayName() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}

// Color returns the color code, or an empty string when it is missing.
func (p Product) Color() string {
	if p.ColorCode == nil {
		return ""
	}
	return *p.ColorCode
}
