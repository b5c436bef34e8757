package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shoplens/backend/internal/domain"
)

// Defaults applied when the model response carries no usable marker line
var (
	DefaultColors    = []string{"red"}
	DefaultItemTypes = []string{AllItemTypes}
)

// AllItemTypes is the sentinel item type meaning "no name constraint"
const AllItemTypes = "all"

// QueryTranslator turns a raw user query into structured lookup input with one model call
type QueryTranslator struct {
	completer domain.Completer
}

// NewQueryTranslator creates a translator backed by the given model
func NewQueryTranslator(completer domain.Completer) *QueryTranslator {
	return &QueryTranslator{completer: completer}
}

// TranslateFilter asks the model for a filter/projection pair and parses it.
// Every failure is reported as ErrTranslationFailed; parse failures also match ErrMalformedResponse.
func (t *QueryTranslator) TranslateFilter(ctx context.Context, query string) (*FilterExtraction, error) {
	text, err := t.complete(ctx, domain.ModeFilter, query)
	if err != nil {
		return nil, err
	}

	extraction, err := ExtractFilterQuery(text)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("backend", t.completer.Name()).Msg("filter extraction failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrTranslationFailed, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("source", string(extraction.Source)).
		Interface("filter", extraction.Query.Filter).
		Interface("projection", extraction.Query.Projection).
		Msg("filter extracted")
	return extraction, nil
}

// TranslateKeywords asks the model for colors and item types. Missing markers degrade to
// DefaultColors and DefaultItemTypes. In ModeKeyword the single item type is used and
// only available products are requested.
func (t *QueryTranslator) TranslateKeywords(ctx context.Context, mode domain.SearchMode, query string) (*domain.Criteria, error) {
	text, err := t.complete(ctx, mode, query)
	if err != nil {
		return nil, err
	}

	extraction := ExtractKeywords(text)
	criteria := &domain.Criteria{
		Colors:    extraction.Colors,
		ItemTypes: extraction.ItemTypes,
	}
	if mode == domain.ModeKeyword {
		criteria.ItemTypes = nil
		if extraction.ItemType != "" {
			criteria.ItemTypes = []string{extraction.ItemType}
		}
		criteria.RequireAvailable = true
	}

	if len(criteria.Colors) == 0 {
		criteria.Colors = append([]string(nil), DefaultColors...)
	}
	if len(criteria.ItemTypes) == 0 {
		criteria.ItemTypes = append([]string(nil), DefaultItemTypes...)
	}

	zerolog.Ctx(ctx).Info().
		Str("source", string(SourceKeywords)).
		Strs("colors", criteria.Colors).
		Strs("item_types", criteria.ItemTypes).
		Msg("criteria extracted")
	return criteria, nil
}

func (t *QueryTranslator) complete(ctx context.Context, mode domain.SearchMode, query string) (string, error) {
	if t.completer == nil {
		return "", fmt.Errorf("%w: no model backend configured", domain.ErrTranslationFailed)
	}

	text, err := t.completer.Complete(ctx, BuildPrompt(mode, query))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("backend", t.completer.Name()).Msg("model call failed")
		return "", fmt.Errorf("%w: %s: %v", domain.ErrTranslationFailed, t.completer.Name(), err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s returned an empty response", domain.ErrTranslationFailed, t.completer.Name())
	}

	zerolog.Ctx(ctx).Debug().Str("backend", t.completer.Name()).Str("response", text).Msg("model response")
	return text, nil
}
