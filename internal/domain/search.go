package domain

// SearchMode selects how a query is translated and looked up
type SearchMode string

const (
	// ModeFilter asks the model for a JSON filter/projection pair
	ModeFilter SearchMode = "filter"
	// ModeKeywords asks the model for a color list and an item-type list
	ModeKeywords SearchMode = "keywords"
	// ModeKeyword asks the model for a color list and a single item type; only available products match
	ModeKeyword SearchMode = "keyword"
)

// Valid reports whether m is a known mode
func (m SearchMode) Valid() bool {
	switch m {
	case ModeFilter, ModeKeywords, ModeKeyword:
		return true
	}
	return false
}

// SearchRequest represents a product search request
type SearchRequest struct {
	Query string     `json:"query" binding:"required"`
	Mode  SearchMode `json:"mode,omitempty"`
}

// SearchResponse is returned for a successful search
type SearchResponse struct {
	Message  string          `json:"message"`
	Products []ProductRecord `json:"products"`
}

// InsertRequest asks the service to bulk-load a JSON file into the catalog
type InsertRequest struct {
	FilePath string `json:"file_path" binding:"required"`
}

// InsertResponse is returned after a successful bulk load
type InsertResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
