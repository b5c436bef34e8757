package usecase

import (
	"regexp"

	"github.com/shoplens/backend/internal/domain"
)

// Catalog field names used by keyword lookups
const (
	fieldColor        = "color"
	fieldName         = "name"
	fieldAvailability = "availability"
)

// BuildKeywordFilter builds a store filter from keyword criteria.
// Colors restrict the color field with $in; an empty color set adds no color constraint.
// Unless the item types contain "all", the name must case-insensitively contain at least
// one item type.
func BuildKeywordFilter(criteria domain.Criteria) domain.Filter {
	filter := domain.Filter{}

	if len(criteria.Colors) > 0 {
		colors := make([]any, 0, len(criteria.Colors))
		for _, c := range criteria.Colors {
			colors = append(colors, c)
		}
		filter[fieldColor] = map[string]any{"$in": colors}
	}

	if !containsAll(criteria.ItemTypes) {
		switch len(criteria.ItemTypes) {
		case 1:
			filter[fieldName] = nameMatch(criteria.ItemTypes[0])
		default:
			clauses := make([]any, 0, len(criteria.ItemTypes))
			for _, it := range criteria.ItemTypes {
				clauses = append(clauses, map[string]any{fieldName: nameMatch(it)})
			}
			filter["$or"] = clauses
		}
	}

	if criteria.RequireAvailable {
		filter[fieldAvailability] = true
	}

	return filter
}

func nameMatch(itemType string) map[string]any {
	return map[string]any{
		"$regex":   regexp.QuoteMeta(itemType),
		"$options": "i",
	}
}

func containsAll(itemTypes []string) bool {
	if len(itemTypes) == 0 {
		return true
	}
	for _, it := range itemTypes {
		if it == AllItemTypes {
			return true
		}
	}
	return false
}
