package usecase

import (
	"context"

	"github.com/shoplens/backend/internal/domain"
)

// MockCompleter is a mock implementation of domain.Completer
type MockCompleter struct {
	response string
	err      error
	prompts  []string
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *MockCompleter) Name() string { return "mock" }

// MockCatalogRepository is a mock implementation of domain.CatalogRepository
type MockCatalogRepository struct {
	docs       []domain.Document
	findErr    error
	insertErr  error
	filter     domain.Filter
	projection domain.Projection
	limit      int
	findCalled bool
	inserted   []domain.Document
}

func (m *MockCatalogRepository) Find(ctx context.Context, filter domain.Filter, projection domain.Projection, limit int) ([]domain.Document, error) {
	m.findCalled = true
	m.filter = filter
	m.projection = projection
	m.limit = limit
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.docs, nil
}

func (m *MockCatalogRepository) InsertMany(ctx context.Context, docs []domain.Document) (int, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.inserted = append(m.inserted, docs...)
	return len(docs), nil
}
