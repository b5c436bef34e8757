package domain

import "context"

// CatalogRepository defines read and bulk-write access to the product collection
type CatalogRepository interface {
	// Find returns matching documents. A nil projection returns whole documents; limit <= 0 means no limit.
	Find(ctx context.Context, filter Filter, projection Projection, limit int) ([]Document, error)
	InsertMany(ctx context.Context, docs []Document) (int, error)
}

// Completer is a hosted language model: given prompt text it returns raw completion text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}
