package translate

import (
	"context"

	"github.com/kailas-cloud/healthsearch/internal/db"
	domcache "github.com/kailas-cloud/healthsearch/internal/domain/cache"
)

// LLM generates structured query text from prompts.
type LLM interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Executor runs structured queries against the backing store.
type Executor interface {
	RawQuery(ctx context.Context, query string) (db.RawResult, error)
}

// Cache is the semantic translation cache.
type Cache interface {
	Lookup(ctx context.Context, naturalQuery string) (domcache.Entry, bool)
	Write(ctx context.Context, entry domcache.Entry)
}

// Rewriter builds the summarization variant of an accepted query.
type Rewriter interface {
	Rewrite(graphQuery, naturalQuery string) (string, error)
}
