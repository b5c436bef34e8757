package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shoplens/backend/internal/domain"
)

// DefaultResultLimit caps the number of presented products when no limit is configured
const DefaultResultLimit = 5

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	DefaultMode domain.SearchMode
	ResultLimit int
}

// SearchService answers free-text product queries against the catalog
type SearchService struct {
	catalog     domain.CatalogRepository
	translator  *QueryTranslator
	defaultMode domain.SearchMode
	resultLimit int
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	catalog domain.CatalogRepository,
	completer domain.Completer,
	config SearchServiceConfig,
) *SearchService {
	mode := config.DefaultMode
	if !mode.Valid() {
		mode = domain.ModeFilter
	}

	limit := config.ResultLimit
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	return &SearchService{
		catalog:     catalog,
		translator:  NewQueryTranslator(completer),
		defaultMode: mode,
		resultLimit: limit,
	}
}

// Search translates the query, looks up the catalog and presents the top results.
// Flow: translate -> extract -> (normalize prices) -> lookup -> present
func (s *SearchService) Search(ctx context.Context, request *domain.SearchRequest) (*domain.SearchResponse, error) {
	if request == nil || strings.TrimSpace(request.Query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	mode := request.Mode
	if mode == "" {
		mode = s.defaultMode
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidRequest, mode)
	}

	if mode == domain.ModeFilter {
		return s.searchByFilter(ctx, request.Query)
	}
	return s.searchByKeywords(ctx, mode, request.Query)
}

func (s *SearchService) searchByFilter(ctx context.Context, query string) (*domain.SearchResponse, error) {
	extraction, err := s.translator.TranslateFilter(ctx, query)
	if err != nil {
		return nil, err
	}

	filter := NormalizeFilter(extraction.Query.Filter, PriceField)
	records, err := s.lookup(ctx, filter, extraction.Query.Projection)
	if err != nil {
		return nil, err
	}

	return &domain.SearchResponse{
		Message:  PresentCatalog(records),
		Products: records,
	}, nil
}

func (s *SearchService) searchByKeywords(ctx context.Context, mode domain.SearchMode, query string) (*domain.SearchResponse, error) {
	criteria, err := s.translator.TranslateKeywords(ctx, mode, query)
	if err != nil {
		return nil, err
	}

	records, err := s.lookup(ctx, BuildKeywordFilter(*criteria), nil)
	if err != nil {
		return nil, err
	}

	return &domain.SearchResponse{
		Message:  PresentByColor(criteria.Colors, records),
		Products: records,
	}, nil
}

// lookup runs a single read and caps the result at the configured limit
func (s *SearchService) lookup(ctx context.Context, filter domain.Filter, projection domain.Projection) ([]domain.ProductRecord, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Interface("filter", filter).Interface("projection", projection).Msg("catalog lookup")

	docs, err := s.catalog.Find(ctx, filter, projection, s.resultLimit)
	if err != nil {
		if errors.Is(err, domain.ErrStoreFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	if len(docs) == 0 {
		logger.Info().Msg("catalog lookup matched nothing")
		return nil, domain.ErrNoResults
	}

	if len(docs) > s.resultLimit {
		docs = docs[:s.resultLimit]
	}

	records := make([]domain.ProductRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, MapToProductRecord(doc))
	}

	logger.Info().Int("count", len(records)).Msg("catalog lookup complete")
	return records, nil
}
