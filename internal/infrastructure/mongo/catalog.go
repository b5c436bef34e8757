package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shoplens/backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config holds MongoDB connection settings
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// CatalogRepository reads and bulk-writes the product collection
type CatalogRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
}

// Connect opens a client, verifies it with a ping and binds the product collection
func Connect(ctx context.Context, cfg Config) (*CatalogRepository, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", domain.ErrStoreFailure, err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping: %v", domain.ErrStoreFailure, err)
	}

	return &CatalogRepository{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		timeout:    timeout,
	}, nil
}

// Close disconnects the underlying client
func (r *CatalogRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Find runs a single filtered read with an optional projection and limit
func (r *CatalogRepository) Find(
	ctx context.Context,
	filter domain.Filter,
	projection domain.Projection,
	limit int,
) ([]domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := findOptions(projection, limit)
	if filter == nil {
		filter = domain.Filter{}
	}

	cursor, err := r.collection.Find(ctx, bson.M(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find: %v", domain.ErrStoreFailure, err)
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrStoreFailure, err)
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, toDocument(row))
	}

	zerolog.Ctx(ctx).Debug().Int("count", len(docs)).Str("collection", r.collection.Name()).Msg("find complete")
	return docs, nil
}

// InsertMany inserts docs in one batch and returns the number inserted
func (r *CatalogRepository) InsertMany(ctx context.Context, docs []domain.Document) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	batch := make([]any, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, bson.M(d))
	}

	result, err := r.collection.InsertMany(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("%w: insert: %v", domain.ErrStoreFailure, err)
	}
	return len(result.InsertedIDs), nil
}

func findOptions(projection domain.Projection, limit int) *options.FindOptions {
	opts := options.Find()
	if len(projection) > 0 {
		p := make(bson.M, len(projection))
		for field, flag := range projection {
			p[field] = flag
		}
		opts.SetProjection(p)
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}

// toDocument converts driver types into plain maps, slices and strings
func toDocument(m bson.M) domain.Document {
	doc := make(domain.Document, len(m))
	for k, v := range m {
		doc[k] = toValue(v)
	}
	return doc
}

func toValue(v any) any {
	switch val := v.(type) {
	case bson.M:
		return map[string]any(toDocument(val))
	case bson.D:
		return map[string]any(toDocument(val.Map()))
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toValue(item)
		}
		return out
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	default:
		return v
	}
}
