// Package cache persists translation cache entries in the store's
// CachedResult class.
package cache

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/healthsearch/internal/db"
	domcache "github.com/kailas-cloud/healthsearch/internal/domain/cache"
	"github.com/kailas-cloud/healthsearch/internal/domain/schema"
)

// entryFields are the stored properties of a cache entry.
var entryFields = []string{"naturalQuery", "graphQuery", "products", "summary"}

// store is the consumer interface for the cache repository (ISP).
type store interface {
	GetWhereEqual(
		ctx context.Context, class string, fields []string,
		path, value string, limit int,
	) ([]map[string]any, error)
	NearText(
		ctx context.Context, class string, fields []string, q db.NearTextQuery,
	) ([]map[string]any, error)
	ListAll(ctx context.Context, class string, fields []string) ([]map[string]any, error)
	Insert(ctx context.Context, class string, properties map[string]any) error
}

// Repo reads and writes cache entries.
type Repo struct {
	store store
}

// New creates a cache repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// GetExact fetches the entry whose key equals naturalQuery. The store's
// equality filter on text fields is token-based, so the returned key is
// re-checked literally before the entry counts as a hit.
func (r *Repo) GetExact(ctx context.Context, naturalQuery string) (domcache.Entry, bool, error) {
	rows, err := r.store.GetWhereEqual(
		ctx, schema.ClassCachedResult, entryFields, "naturalQuery", naturalQuery, 1,
	)
	if err != nil {
		return domcache.Entry{}, false, fmt.Errorf("exact cache lookup: %w", err)
	}
	if len(rows) == 0 {
		return domcache.Entry{}, false, nil
	}

	entry := entryFromRow(rows[0])
	if entry.NaturalQuery != naturalQuery {
		return domcache.Entry{}, false, nil
	}
	return entry, true, nil
}

// GetSimilar fetches the nearest entry within maxDistance of naturalQuery.
// Returns the entry, its distance, and whether a candidate qualified.
func (r *Repo) GetSimilar(
	ctx context.Context, naturalQuery string, maxDistance float64,
) (domcache.Entry, float64, bool, error) {
	rows, err := r.store.NearText(ctx, schema.ClassCachedResult, entryFields, db.NearTextQuery{
		Concepts:     []string{naturalQuery},
		Distance:     maxDistance,
		Limit:        1,
		WithDistance: true,
	})
	if err != nil {
		return domcache.Entry{}, 0, false, fmt.Errorf("similar cache lookup: %w", err)
	}
	if len(rows) == 0 {
		return domcache.Entry{}, 0, false, nil
	}

	distance, ok := distanceFromRow(rows[0])
	if !ok || distance > maxDistance {
		return domcache.Entry{}, 0, false, nil
	}
	return entryFromRow(rows[0]), distance, true, nil
}

// Insert writes one immutable entry. Entries are never updated in place.
func (r *Repo) Insert(ctx context.Context, entry domcache.Entry) error {
	props := map[string]any{
		"naturalQuery": entry.NaturalQuery,
		"graphQuery":   entry.GraphQuery,
		"products":     entry.Products,
		"summary":      entry.Summary,
	}
	if err := r.store.Insert(ctx, schema.ClassCachedResult, props); err != nil {
		return fmt.Errorf("insert cache entry: %w", err)
	}
	return nil
}

// ListKeys returns the natural-query key of every cached entry.
func (r *Repo) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := r.store.ListAll(ctx, schema.ClassCachedResult, []string{"naturalQuery"})
	if err != nil {
		return nil, fmt.Errorf("list cache keys: %w", err)
	}

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		if key, ok := row["naturalQuery"].(string); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
