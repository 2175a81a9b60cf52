package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/kailas-cloud/healthsearch/internal/db"
)

const importBatchSize = 100

// Insert adds a single object to a class. Writes go through the batcher
// with a batch of one: correctness and latency over throughput.
func (s *Store) Insert(ctx context.Context, class string, properties map[string]any) error {
	obj := &models.Object{
		Class:      class,
		Properties: properties,
	}
	resp, err := s.client.Batch().ObjectsBatcher().WithObjects(obj).Do(ctx)
	if err != nil {
		return fmt.Errorf("insert %s: %w", class, err)
	}
	return batchErrors(class, resp)
}

// BatchImport adds objects in chunks of importBatchSize.
func (s *Store) BatchImport(ctx context.Context, class string, objects []db.ImportObject) error {
	for start := 0; start < len(objects); start += importBatchSize {
		end := start + importBatchSize
		if end > len(objects) {
			end = len(objects)
		}

		chunk := make([]*models.Object, 0, end-start)
		for _, o := range objects[start:end] {
			obj := &models.Object{
				Class:      class,
				Properties: o.Properties,
			}
			if len(o.Vector) > 0 {
				obj.Vector = models.C11yVector(o.Vector)
			}
			chunk = append(chunk, obj)
		}

		resp, err := s.client.Batch().ObjectsBatcher().WithObjects(chunk...).Do(ctx)
		if err != nil {
			return fmt.Errorf("batch import %s (offset %d): %w", class, start, err)
		}
		if err := batchErrors(class, resp); err != nil {
			return err
		}
	}
	return nil
}

func batchErrors(class string, resp []models.ObjectsGetResponse) error {
	for _, r := range resp {
		if r.Result == nil || r.Result.Errors == nil {
			continue
		}
		for _, item := range r.Result.Errors.Error {
			if item != nil && item.Message != "" {
				return fmt.Errorf("insert %s: %s", class, item.Message)
			}
		}
	}
	return nil
}
