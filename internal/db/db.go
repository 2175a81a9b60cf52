// Package db defines the storage facade the rest of the service consumes.
// Consumers depend on the narrow sub-interfaces (ISP), drivers implement Store.
package db

import (
	"context"
	"strings"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	Querier
	Writer
	SchemaManager
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RawResult is the outcome of executing a raw structured query. A query the
// store parsed but rejected yields Errors; a transport failure yields a Go
// error from RawQuery instead.
type RawResult struct {
	Data   map[string]any
	Errors []string
}

// HasErrors reports whether the store rejected the query.
func (r RawResult) HasErrors() bool { return len(r.Errors) > 0 }

// ErrorText returns the joined structured error messages.
func (r RawResult) ErrorText() string { return strings.Join(r.Errors, "; ") }

// NearTextQuery describes a similarity lookup over a class.
type NearTextQuery struct {
	Concepts     []string
	Distance     float64
	Limit        int
	WithDistance bool
}

// Querier provides read operations.
type Querier interface {
	// RawQuery executes a query in the store's own query DSL.
	RawQuery(ctx context.Context, query string) (RawResult, error)
	// GetWhereEqual fetches rows whose path field equals value exactly.
	GetWhereEqual(
		ctx context.Context, class string, fields []string,
		path, value string, limit int,
	) ([]map[string]any, error)
	// NearText runs a similarity search over a class.
	NearText(
		ctx context.Context, class string, fields []string, q NearTextQuery,
	) ([]map[string]any, error)
	// ListAll fetches the given fields of every object in a class.
	ListAll(ctx context.Context, class string, fields []string) ([]map[string]any, error)
}

// ImportObject is one object of a bulk import, with an optional
// precomputed vector.
type ImportObject struct {
	Properties map[string]any
	Vector     []float32
}

// Writer provides write operations.
type Writer interface {
	// Insert adds a single object to a class.
	Insert(ctx context.Context, class string, properties map[string]any) error
	// BatchImport adds objects in batches.
	BatchImport(ctx context.Context, class string, objects []ImportObject) error
}

// PropertyDefinition describes one class property for schema creation.
type PropertyDefinition struct {
	Name        string
	DataType    string
	Description string
	Vectorize   bool
}

// ClassDefinition describes a class for schema creation.
type ClassDefinition struct {
	Class       string
	Description string
	Properties  []PropertyDefinition
	// Generative enables the store's generative module on the class.
	Generative bool
}

// SchemaManager provides class lifecycle operations.
type SchemaManager interface {
	ClassExists(ctx context.Context, name string) (bool, error)
	CreateClass(ctx context.Context, def ClassDefinition) error
	DeleteClass(ctx context.Context, name string) error
}
