package usecase

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// PriceField is the catalog field whose values are stored as comma-grouped strings (e.g. "2,999")
const PriceField = "actual_price"

// NormalizeFilter rewrites every value stored under key, at any depth, into the
// comma-grouped display format. Operator mappings under key have each operand
// rewritten. Only digit-only strings and integers are reformatted; floats and
// already-grouped strings pass through. The filter is modified in place and returned.
func NormalizeFilter(filter domain.Filter, key string) domain.Filter {
	if filter == nil {
		return nil
	}
	normalizeMap(filter, key)
	return filter
}

func normalizeMap(m map[string]any, key string) {
	for k, value := range m {
		if k == key {
			if ops, ok := asMap(value); ok {
				for op, operand := range ops {
					if formatted, ok := formatPrice(operand); ok {
						ops[op] = formatted
					}
				}
				continue
			}
			if formatted, ok := formatPrice(value); ok {
				m[k] = formatted
			}
			continue
		}

		if nested, ok := asMap(value); ok {
			normalizeMap(nested, key)
			continue
		}
		if items, ok := value.([]any); ok {
			for _, item := range items {
				if nested, ok := asMap(item); ok {
					normalizeMap(nested, key)
				}
			}
		}
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.Filter:
		return m, true
	}
	return nil, false
}

// formatPrice reports the grouped form of v when v is an integer or a digit-only string
func formatPrice(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		if !isDigits(n) {
			return "", false
		}
		return groupThousands(n), true
	case json.Number:
		s := n.String()
		if !isDigits(s) {
			return "", false
		}
		return groupThousands(s), true
	case int:
		return formatInt(int64(n))
	case int32:
		return formatInt(int64(n))
	case int64:
		return formatInt(n)
	}
	return "", false
}

func formatInt(n int64) (string, bool) {
	if n < 0 {
		return "", false
	}
	return FormatThousands(n), true
}

// FormatThousands renders n with a comma every three digits from the right
func FormatThousands(n int64) string {
	return groupThousands(strconv.FormatInt(n, 10))
}

func groupThousands(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
