package domain

// Document is a read-only snapshot of a catalog record as returned by the store.
// Nested documents are map[string]any and arrays are []any.
type Document map[string]any

// Filter is a store filter expression: field name to literal, operator mapping or nested filter.
type Filter map[string]any

// Projection maps a field name to 1 (include) or 0 (exclude).
type Projection map[string]int

// ProductRecord is the presentation shape of a catalog product
type ProductRecord struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Color          string           `json:"color"`
	Availability   bool             `json:"availability"`
	ImageURL       string           `json:"image_url"`
	Brand          string           `json:"brand,omitempty"`
	Category       string           `json:"category,omitempty"`
	SubCategory    string           `json:"sub_category,omitempty"`
	Description    string           `json:"description,omitempty"`
	SellingPrice   string           `json:"selling_price,omitempty"`
	ActualPrice    string           `json:"actual_price,omitempty"`
	Discount       string           `json:"discount,omitempty"`
	AverageRating  string           `json:"average_rating,omitempty"`
	Images         []string         `json:"images,omitempty"`
	ProductDetails []map[string]any `json:"product_details,omitempty"`
}

// Criteria are the keyword criteria extracted from a query
type Criteria struct {
	Colors           []string `json:"colors"`
	ItemTypes        []string `json:"item_types"`
	RequireAvailable bool     `json:"require_available,omitempty"`
}

// FilterQuery is a translated filter/projection pair
type FilterQuery struct {
	Filter     Filter     `json:"filter"`
	Projection Projection `json:"projection"`
}
