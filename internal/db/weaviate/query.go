package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/kailas-cloud/healthsearch/internal/db"
)

// RawQuery executes a raw GraphQL query. Structured query errors come back
// in RawResult.Errors; only transport failures return a Go error.
func (s *Store) RawQuery(ctx context.Context, query string) (db.RawResult, error) {
	resp, err := s.client.GraphQL().Raw().WithQuery(query).Do(ctx)
	if err != nil {
		return db.RawResult{}, fmt.Errorf("raw query: %w", err)
	}
	return rawResultFrom(resp), nil
}

// GetWhereEqual fetches rows whose path field equals value.
func (s *Store) GetWhereEqual(
	ctx context.Context, class string, fields []string,
	path, value string, limit int,
) ([]map[string]any, error) {
	where := filters.Where().
		WithPath([]string{path}).
		WithOperator(filters.Equal).
		WithValueText(value)

	resp, err := s.client.GraphQL().Get().
		WithClassName(class).
		WithFields(graphqlFields(fields, false)...).
		WithWhere(where).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", class, err)
	}
	return rowsFrom(resp, class)
}

// NearText runs a similarity search over a class.
func (s *Store) NearText(
	ctx context.Context, class string, fields []string, q db.NearTextQuery,
) ([]map[string]any, error) {
	nearText := s.client.GraphQL().NearTextArgBuilder().
		WithConcepts(q.Concepts).
		WithDistance(float32(q.Distance))

	builder := s.client.GraphQL().Get().
		WithClassName(class).
		WithFields(graphqlFields(fields, q.WithDistance)...).
		WithNearText(nearText)
	if q.Limit > 0 {
		builder = builder.WithLimit(q.Limit)
	}

	resp, err := builder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("near text %s: %w", class, err)
	}
	return rowsFrom(resp, class)
}

// ListAll fetches the given fields of every object in a class.
func (s *Store) ListAll(ctx context.Context, class string, fields []string) ([]map[string]any, error) {
	resp, err := s.client.GraphQL().Get().
		WithClassName(class).
		WithFields(graphqlFields(fields, false)...).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", class, err)
	}
	return rowsFrom(resp, class)
}

func graphqlFields(names []string, withDistance bool) []graphql.Field {
	fields := make([]graphql.Field, 0, len(names)+1)
	for _, n := range names {
		fields = append(fields, graphql.Field{Name: n})
	}
	if withDistance {
		fields = append(fields, graphql.Field{
			Name:   "_additional",
			Fields: []graphql.Field{{Name: "distance"}},
		})
	}
	return fields
}

func rawResultFrom(resp *models.GraphQLResponse) db.RawResult {
	result := db.RawResult{Data: make(map[string]any, len(resp.Data))}
	for k, v := range resp.Data {
		result.Data[k] = v
	}
	for _, e := range resp.Errors {
		if e != nil {
			result.Errors = append(result.Errors, e.Message)
		}
	}
	return result
}

// rowsFrom extracts the row list of a class from a Get response. GraphQL
// errors in the response body become a Go error here because builder-issued
// queries are authored by this codebase, not by the LLM.
func rowsFrom(resp *models.GraphQLResponse, class string) ([]map[string]any, error) {
	if len(resp.Errors) > 0 {
		result := rawResultFrom(resp)
		return nil, fmt.Errorf("query %s: %s", class, result.ErrorText())
	}

	section, ok := resp.Data["Get"].(map[string]any)
	if !ok {
		return nil, nil
	}
	items, ok := section[class].([]any)
	if !ok {
		return nil, nil
	}

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if row, ok := item.(map[string]any); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
