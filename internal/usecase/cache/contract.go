package cache

import (
	"context"

	domcache "github.com/kailas-cloud/healthsearch/internal/domain/cache"
)

// Repository defines the storage contract for cache entries.
type Repository interface {
	GetExact(ctx context.Context, naturalQuery string) (domcache.Entry, bool, error)
	GetSimilar(
		ctx context.Context, naturalQuery string, maxDistance float64,
	) (domcache.Entry, float64, bool, error)
	Insert(ctx context.Context, entry domcache.Entry) error
	ListKeys(ctx context.Context) ([]string, error)
}
