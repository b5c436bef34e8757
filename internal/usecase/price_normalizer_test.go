package usecase

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/shoplens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{2999, "2,999"},
		{100000, "100,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatThousands(tt.in))
		})
	}
}

func TestNormalizeFilter(t *testing.T) {
	t.Run("direct digit string", func(t *testing.T) {
		got := NormalizeFilter(domain.Filter{"actual_price": "2999"}, PriceField)
		assert.Equal(t, domain.Filter{"actual_price": "2,999"}, got)
	})

	t.Run("operator mapping with sibling keys untouched", func(t *testing.T) {
		filter := domain.Filter{
			"actual_price": map[string]any{"$lt": "2000"},
			"brand":        "Nike",
		}
		got := NormalizeFilter(filter, PriceField)
		assert.Equal(t, domain.Filter{
			"actual_price": map[string]any{"$lt": "2,000"},
			"brand":        "Nike",
		}, got)
	})

	t.Run("range operators rewritten independently", func(t *testing.T) {
		filter := domain.Filter{
			"actual_price": map[string]any{"$gte": json.Number("1000"), "$lte": 25000},
		}
		got := NormalizeFilter(filter, PriceField)
		assert.Equal(t, map[string]any{"$gte": "1,000", "$lte": "25,000"}, got["actual_price"])
	})

	t.Run("list of nested mappings", func(t *testing.T) {
		filter := domain.Filter{
			"$or": []any{
				map[string]any{"actual_price": "1500"},
				map[string]any{"brand": "Nike"},
			},
		}
		got := NormalizeFilter(filter, PriceField)
		assert.Equal(t, domain.Filter{
			"$or": []any{
				map[string]any{"actual_price": "1,500"},
				map[string]any{"brand": "Nike"},
			},
		}, got)
	})

	t.Run("deeply nested combinators", func(t *testing.T) {
		filter := domain.Filter{
			"$and": []any{
				map[string]any{"category": "Clothing"},
				map[string]any{"$or": []any{
					map[string]any{"actual_price": map[string]any{"$lt": "999"}},
					map[string]any{"actual_price": map[string]any{"$gt": "10000"}},
				}},
			},
		}
		NormalizeFilter(filter, PriceField)

		inner := filter["$and"].([]any)[1].(map[string]any)["$or"].([]any)
		assert.Equal(t, map[string]any{"$lt": "999"}, inner[0].(map[string]any)["actual_price"])
		assert.Equal(t, map[string]any{"$gt": "10,000"}, inner[1].(map[string]any)["actual_price"])
	})

	t.Run("non-integer values pass through", func(t *testing.T) {
		filter := domain.Filter{
			"actual_price": map[string]any{
				"$lt":  1999.5,
				"$gt":  json.Number("10.5"),
				"$ne":  "1,299",
				"$in":  []any{"100"},
				"$neq": "cheap",
			},
		}
		got := NormalizeFilter(filter, PriceField)
		assert.Equal(t, map[string]any{
			"$lt":  1999.5,
			"$gt":  json.Number("10.5"),
			"$ne":  "1,299",
			"$in":  []any{"100"},
			"$neq": "cheap",
		}, got["actual_price"])
	})

	t.Run("other keys with digit strings untouched", func(t *testing.T) {
		filter := domain.Filter{"selling_price": "1999", "pid": "12345"}
		got := NormalizeFilter(filter, PriceField)
		assert.Equal(t, domain.Filter{"selling_price": "1999", "pid": "12345"}, got)
	})

	t.Run("nil and empty filters", func(t *testing.T) {
		assert.Nil(t, NormalizeFilter(nil, PriceField))
		assert.Equal(t, domain.Filter{}, NormalizeFilter(domain.Filter{}, PriceField))
	})

	t.Run("preserves key count at every level", func(t *testing.T) {
		filter := domain.Filter{
			"actual_price": "500",
			"brand":        map[string]any{"$in": []any{"Nike", "Puma"}},
			"out_of_stock": false,
		}
		got := NormalizeFilter(filter, PriceField)
		assert.Len(t, got, 3)
		assert.Equal(t, map[string]any{"$in": []any{"Nike", "Puma"}}, got["brand"])
		assert.Equal(t, false, got["out_of_stock"])
	})
}

func TestNormalizeFilter_StringAndIntegerAgree(t *testing.T) {
	for _, n := range []int{0, 5, 42, 999, 1000, 2999, 65536, 1000000, 987654321} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			fromString := NormalizeFilter(domain.Filter{"actual_price": strconv.Itoa(n)}, PriceField)
			fromInt := NormalizeFilter(domain.Filter{"actual_price": n}, PriceField)
			assert.Equal(t, fromInt, fromString)
		})
	}
}
