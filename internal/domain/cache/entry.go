// Package cache defines the translation cache entry.
package cache

// Entry is one cached translation. Entries are immutable once written;
// near-duplicate natural queries accumulate as distinct entries.
type Entry struct {
	// NaturalQuery is the case-normalized cache key.
	NaturalQuery string
	// GraphQuery is the accepted structured query text.
	GraphQuery string
	// Products is the normalized product list serialized to a JSON blob.
	Products string
	// Summary is the generated summary without any cache-hit marker.
	Summary string
}
