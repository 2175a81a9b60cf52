package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/kailas-cloud/healthsearch/internal/db"
)

const (
	vectorizerModule = "text2vec-openai"
	generativeModule = "generative-openai"
)

// ClassExists reports whether a class exists in the store schema.
func (s *Store) ClassExists(ctx context.Context, name string) (bool, error) {
	exists, err := s.client.Schema().ClassExistenceChecker().WithClassName(name).Do(ctx)
	if err != nil {
		return false, fmt.Errorf("check class %s: %w", name, err)
	}
	return exists, nil
}

// CreateClass creates a class with per-property vectorization config.
func (s *Store) CreateClass(ctx context.Context, def db.ClassDefinition) error {
	props := make([]*models.Property, 0, len(def.Properties))
	for _, p := range def.Properties {
		props = append(props, &models.Property{
			Name:        p.Name,
			DataType:    []string{p.DataType},
			Description: p.Description,
			ModuleConfig: map[string]any{
				vectorizerModule: map[string]any{
					"skip":                  !p.Vectorize,
					"vectorizePropertyName": p.Vectorize,
				},
			},
		})
	}

	moduleConfig := map[string]any{
		vectorizerModule: map[string]any{
			"model":        "ada",
			"modelVersion": "002",
			"type":         "text",
		},
	}
	if def.Generative {
		moduleConfig[generativeModule] = map[string]any{"model": "gpt-3.5-turbo"}
	}

	class := &models.Class{
		Class:        def.Class,
		Description:  def.Description,
		Properties:   props,
		Vectorizer:   vectorizerModule,
		ModuleConfig: moduleConfig,
	}

	if err := s.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", def.Class, err)
	}
	return nil
}

// DeleteClass removes a class and all of its objects.
func (s *Store) DeleteClass(ctx context.Context, name string) error {
	if err := s.client.Schema().ClassDeleter().WithClassName(name).Do(ctx); err != nil {
		return fmt.Errorf("delete class %s: %w", name, err)
	}
	return nil
}
