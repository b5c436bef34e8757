package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// ExtractionSource records which strategy located the structured block in a model response
type ExtractionSource string

const (
	SourceFenced   ExtractionSource = "fenced"
	SourceGreedy   ExtractionSource = "greedy"
	SourceKeywords ExtractionSource = "keywords"
)

// Marker substrings recognized by the keyword extractor (matched against lower-cased lines)
const (
	markerColors    = "colors:"
	markerItemTypes = "item types:"
	markerItemType  = "item type:"
)

var (
	fencedBlockRegex = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*\\n?(.*?)```")
	// Greedy on purpose: first '{' through last '}'. Prose braces around the JSON widen the span.
	greedyObjectRegex = regexp.MustCompile(`(?s)\{.*\}`)
)

// FilterExtraction is the result of parsing a filter/projection response
type FilterExtraction struct {
	Query  domain.FilterQuery
	Source ExtractionSource
}

// KeywordExtraction is the result of scanning a response for marker lines.
// ItemType holds the value of the single-valued "item type:" marker.
type KeywordExtraction struct {
	Colors    []string
	ItemTypes []string
	ItemType  string
}

// ExtractFilterQuery parses a {"filter": ..., "projection": ...} object out of free-form
// model text. A fenced code block is tried first; when none parses, the span from the
// first '{' to the last '}' is used. Missing keys default to empty mappings. Projection
// values other than exactly 0 or 1 are rejected.
func ExtractFilterQuery(text string) (*FilterExtraction, error) {
	var lastErr error
	for _, m := range fencedBlockRegex.FindAllStringSubmatch(text, -1) {
		query, err := decodeFilterQuery(strings.TrimSpace(m[1]))
		if err == nil {
			return &FilterExtraction{Query: *query, Source: SourceFenced}, nil
		}
		lastErr = err
	}

	span := greedyObjectRegex.FindString(text)
	if span == "" {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, fmt.Errorf("%w: no JSON object found in response", domain.ErrMalformedResponse)
	}

	query, err := decodeFilterQuery(span)
	if err != nil {
		return nil, err
	}
	return &FilterExtraction{Query: *query, Source: SourceGreedy}, nil
}

func decodeFilterQuery(raw string) (*domain.FilterQuery, error) {
	var doc struct {
		Filter     map[string]any `json:"filter"`
		Projection map[string]any `json:"projection"`
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse query JSON: %v", domain.ErrMalformedResponse, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after query JSON", domain.ErrMalformedResponse)
	}

	projection, err := validateProjection(doc.Projection)
	if err != nil {
		return nil, err
	}

	filter := domain.Filter(doc.Filter)
	if filter == nil {
		filter = domain.Filter{}
	}
	return &domain.FilterQuery{Filter: filter, Projection: projection}, nil
}

// validateProjection enforces the inclusion/exclusion-only contract
func validateProjection(raw map[string]any) (domain.Projection, error) {
	projection := make(domain.Projection, len(raw))
	for field, value := range raw {
		flag, ok := projectionFlag(value)
		if !ok {
			return nil, fmt.Errorf("%w: projection field %q must be 0 or 1, got %v",
				domain.ErrMalformedResponse, field, value)
		}
		projection[field] = flag
	}
	return projection, nil
}

func projectionFlag(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return 0, false
	}
	if f != 0 && f != 1 {
		return 0, false
	}
	return int(f), true
}

// ExtractKeywords scans model text line by line for the "colors:", "item types:" and
// "item type:" markers (case-insensitive). Later marker lines overwrite earlier ones.
// It never fails; absent markers leave the corresponding field empty.
func ExtractKeywords(text string) KeywordExtraction {
	var out KeywordExtraction
	for _, line := range strings.Split(text, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if rest, ok := afterMarker(line, markerColors); ok {
			out.Colors = splitList(rest)
		}
		if rest, ok := afterMarker(line, markerItemTypes); ok {
			out.ItemTypes = splitList(rest)
		}
		if rest, ok := afterMarker(line, markerItemType); ok {
			out.ItemType = rest
		}
	}
	return out
}

func afterMarker(line, marker string) (string, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[idx+len(marker):]), true
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
