package models

// ProductFilter is an equality filter sent with a product page request.
type ProductFilter struct {
	ID             string         `json:"id"`
	Value          string         `json:"value"`
	ComparisonType ComparisonType `json:"comparisonType"`
}

// ProductPageRequest is the body of a product page request.
type ProductPageRequest struct {
	AdditionalFilters []ProductFilter `json:"additionalFilters"`
	Page              int             `json:"page"`
	PageSize          int             `json:"pageSize"`
}

// PageMeta describes the returned page.
type PageMeta struct {
	Page         int `json:"page"`
	PageSize     int `json:"pageSize"`
	TotalProduct int `json:"totalProduct"`
}

// ProductPage is one page of products of a collection.
type ProductPage struct {
	Meta     PageMeta  `json:"meta"`
	Products []Product `json:"data"`
}
