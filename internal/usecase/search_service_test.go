package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shoplens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleDocs(n int) []domain.Document {
	docs := make([]domain.Document, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, domain.Document{
			"_id":          fmt.Sprintf("p%d", i),
			"name":         fmt.Sprintf("Shirt %d", i),
			"color":        "red",
			"availability": i%2 == 0,
		})
	}
	return docs
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("filter mode normalizes prices before lookup", func(t *testing.T) {
		completer := &MockCompleter{response: "Here you go:\n```json\n" +
			`{"filter": {"brand": "Nike", "actual_price": {"$lte": "3000"}}, "projection": {"title": 1, "brand": 1}}` +
			"\n```"}
		catalog := &MockCatalogRepository{docs: []domain.Document{
			{"title": "Air Zoom", "brand": "Nike", "selling_price": "2,799", "out_of_stock": false},
		}}
		service := NewSearchService(catalog, completer, SearchServiceConfig{})

		resp, err := service.Search(ctx, &domain.SearchRequest{Query: "nike shoes under 3000"})
		require.NoError(t, err)

		assert.Equal(t, domain.Filter{
			"brand":        "Nike",
			"actual_price": map[string]any{"$lte": "3,000"},
		}, catalog.filter)
		assert.Equal(t, domain.Projection{"title": 1, "brand": 1}, catalog.projection)
		assert.Equal(t, DefaultResultLimit, catalog.limit)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "Air Zoom", resp.Products[0].Name)
		assert.True(t, strings.HasPrefix(resp.Message, "I found the following products:\n\n"))
		assert.Contains(t, resp.Message, "Price: 2,799")
	})

	t.Run("projected records without stock fields show as available", func(t *testing.T) {
		completer := &MockCompleter{response: `{"filter": {"brand": "Nike"}, "projection": {"title": 1, "brand": 1}}`}
		catalog := &MockCatalogRepository{docs: []domain.Document{
			{"_id": "x", "title": "Air Zoom", "brand": "Nike"},
		}}
		service := NewSearchService(catalog, completer, SearchServiceConfig{})

		resp, err := service.Search(ctx, &domain.SearchRequest{Query: "nike"})
		require.NoError(t, err)
		require.Len(t, resp.Products, 1)
		assert.True(t, resp.Products[0].Availability)
		assert.Contains(t, resp.Message, "Availability: Available)")
	})

	t.Run("seven filter matches are presented as exactly five bullets", func(t *testing.T) {
		completer := &MockCompleter{response: `{"filter": {"color": "red"}, "projection": {}}`}
		catalog := &MockCatalogRepository{docs: simpleDocs(7)}
		service := NewSearchService(catalog, completer, SearchServiceConfig{DefaultMode: domain.ModeFilter})

		resp, err := service.Search(ctx, &domain.SearchRequest{Query: "red shirts"})
		require.NoError(t, err)

		assert.Len(t, resp.Products, 5)
		assert.Equal(t, 5, strings.Count(resp.Message, "\n- **"))
		assert.True(t, strings.HasPrefix(resp.Message, "I found the following products:\n\n"))
		assert.Equal(t, "Shirt 4", resp.Products[4].Name)
	})

	t.Run("seven keyword matches are presented as exactly five bullets", func(t *testing.T) {
		completer := &MockCompleter{response: "Colors: red\nItem Types: shirt"}
		catalog := &MockCatalogRepository{docs: simpleDocs(7)}
		service := NewSearchService(catalog, completer, SearchServiceConfig{DefaultMode: domain.ModeKeywords})

		resp, err := service.Search(ctx, &domain.SearchRequest{Query: "red shirts"})
		require.NoError(t, err)

		assert.Len(t, resp.Products, 5)
		assert.Equal(t, 5, strings.Count(resp.Message, "\n- **"))
		assert.True(t, strings.HasPrefix(resp.Message, "I found the following products in red:\n\n"))
		assert.Nil(t, catalog.projection)
	})

	t.Run("configured limit is honored", func(t *testing.T) {
		completer := &MockCompleter{response: "Colors: red\nItem Types: all"}
		catalog := &MockCatalogRepository{docs: simpleDocs(4)}
		service := NewSearchService(catalog, completer, SearchServiceConfig{DefaultMode: domain.ModeKeywords, ResultLimit: 2})

		resp, err := service.Search(ctx, &domain.SearchRequest{Query: "red things"})
		require.NoError(t, err)
		assert.Equal(t, 2, catalog.limit)
		assert.Len(t, resp.Products, 2)
	})

	t.Run("request mode overrides the default", func(t *testing.T) {
		completer := &MockCompleter{response: "Colors: black\nItem Type: boots"}
		catalog := &MockCatalogRepository{docs: simpleDocs(1)}
		service := NewSearchService(catalog, completer, SearchServiceConfig{DefaultMode: domain.ModeFilter})

		_, err := service.Search(ctx, &domain.SearchRequest{Query: "black boots", Mode: domain.ModeKeyword})
		require.NoError(t, err)
		assert.Equal(t, domain.Filter{
			"color":        map[string]any{"$in": []any{"black"}},
			"name":         map[string]any{"$regex": "boots", "$options": "i"},
			"availability": true,
		}, catalog.filter)
	})

	t.Run("no matches", func(t *testing.T) {
		completer := &MockCompleter{response: `{"filter": {"brand": "Nobody"}, "projection": {}}`}
		catalog := &MockCatalogRepository{}
		service := NewSearchService(catalog, completer, SearchServiceConfig{})

		_, err := service.Search(ctx, &domain.SearchRequest{Query: "q"})
		assert.True(t, errors.Is(err, domain.ErrNoResults))
	})

	t.Run("store failure", func(t *testing.T) {
		completer := &MockCompleter{response: `{"filter": {}, "projection": {}}`}
		catalog := &MockCatalogRepository{findErr: errors.New("server selection timeout")}
		service := NewSearchService(catalog, completer, SearchServiceConfig{})

		_, err := service.Search(ctx, &domain.SearchRequest{Query: "q"})
		assert.True(t, errors.Is(err, domain.ErrStoreFailure))
		assert.Contains(t, err.Error(), "server selection timeout")
	})

	t.Run("malformed model response skips the store", func(t *testing.T) {
		completer := &MockCompleter{response: "I cannot help with that."}
		catalog := &MockCatalogRepository{}
		service := NewSearchService(catalog, completer, SearchServiceConfig{})

		_, err := service.Search(ctx, &domain.SearchRequest{Query: "q"})
		assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
		assert.False(t, catalog.findCalled)
	})

	t.Run("model failure skips the store", func(t *testing.T) {
		completer := &MockCompleter{err: errors.New("rate limited")}
		catalog := &MockCatalogRepository{}
		service := NewSearchService(catalog, completer, SearchServiceConfig{})

		_, err := service.Search(ctx, &domain.SearchRequest{Query: "q"})
		assert.True(t, errors.Is(err, domain.ErrTranslationFailed))
		assert.False(t, catalog.findCalled)
	})

	t.Run("invalid requests", func(t *testing.T) {
		completer := &MockCompleter{}
		service := NewSearchService(&MockCatalogRepository{}, completer, SearchServiceConfig{})

		_, err := service.Search(ctx, nil)
		assert.True(t, errors.Is(err, domain.ErrInvalidRequest))

		_, err = service.Search(ctx, &domain.SearchRequest{Query: "   "})
		assert.True(t, errors.Is(err, domain.ErrInvalidRequest))

		_, err = service.Search(ctx, &domain.SearchRequest{Query: "q", Mode: "vector"})
		assert.True(t, errors.Is(err, domain.ErrInvalidRequest))

		assert.Empty(t, completer.prompts)
	})
}
