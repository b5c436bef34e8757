package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/shoplens/backend/internal/domain"
)

// IngestService bulk-loads product documents into the catalog
type IngestService struct {
	catalog domain.CatalogRepository
}

// NewIngestService creates a new ingest service
func NewIngestService(catalog domain.CatalogRepository) *IngestService {
	return &IngestService{catalog: catalog}
}

// InsertFromFile loads a JSON list of products from path and inserts them all
func (s *IngestService) InsertFromFile(ctx context.Context, path string) (*domain.InsertResponse, error) {
	if path == "" {
		return nil, domain.ErrInvalidRequest
	}

	docs, err := LoadDocuments(path)
	if err != nil {
		return nil, err
	}

	count, err := s.catalog.InsertMany(ctx, docs)
	if err != nil {
		if errors.Is(err, domain.ErrStoreFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	zerolog.Ctx(ctx).Info().Str("file", path).Int("count", count).Msg("products inserted")
	return &domain.InsertResponse{Message: "Data inserted successfully", Count: count}, nil
}

// LoadDocuments reads path and decodes it as a non-empty JSON list of objects
func LoadDocuments(path string) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// UseNumber keeps integers as integers when the driver encodes them
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil || dec.More() {
		return nil, fmt.Errorf("%w: invalid JSON format", domain.ErrInvalidPayload)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: JSON data should be a list of products", domain.ErrInvalidPayload)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no data found in the JSON file", domain.ErrInvalidPayload)
	}

	docs := make([]domain.Document, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is not an object", domain.ErrInvalidPayload, i)
		}
		docs = append(docs, domain.Document(m))
	}
	return docs, nil
}
