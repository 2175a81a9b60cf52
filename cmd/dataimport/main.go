// Command dataimport recreates the product and cache classes and bulk
// imports a JSON product file. Recreating the product class deletes every
// existing product.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/healthsearch/internal/config"
	"github.com/kailas-cloud/healthsearch/internal/db"
	dbWeaviate "github.com/kailas-cloud/healthsearch/internal/db/weaviate"
	"github.com/kailas-cloud/healthsearch/internal/domain/schema"
	logpkg "github.com/kailas-cloud/healthsearch/internal/logger"
)

const defaultImage = "https://en.wikipedia.org/wiki/Rickrolling#/media/File:RickRoll.png"

func main() {
	dataPath := flag.String("data", "", "path to the JSON product file")
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if *dataPath == "" {
		logger.Fatal("Missing required -data flag")
	}

	raw, err := os.ReadFile(*dataPath)
	if err != nil {
		logger.Fatal("Failed to read data file", zap.String("path", *dataPath), zap.Error(err))
	}
	var data map[string]map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Fatal("Failed to parse data file", zap.String("path", *dataPath), zap.Error(err))
	}
	logger.Info("Data loaded", zap.Int("products", len(data)))

	store, err := dbWeaviate.NewStore(dbWeaviate.Config{
		URL:       cfg.Database.URL,
		APIKey:    cfg.Database.APIKey,
		OpenAIKey: cfg.LLM.APIKey,
		Timeout:   time.Duration(cfg.Database.TimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	productDef := db.ClassFromSchema(schema.Product(), "Supplement products", true)
	if err := recreateClass(ctx, store, productDef, logger); err != nil {
		logger.Fatal("Failed to recreate product class", zap.Error(err))
	}

	objects := make([]db.ImportObject, 0, len(data))
	for key, d := range data {
		logger.Info("Importing product", zap.String("key", key))
		objects = append(objects, db.ImportObject{
			Properties: map[string]any{
				"name":        stringOr(d, "name", "Productname"),
				"brand":       stringOr(d, "brand", "Productbrand"),
				"ingredients": stringOr(d, "ingredients", "Product ingredients"),
				"reviews":     stringsOr(d, "reviews", []string{"Example review"}),
				"rating":      floatOr(d, "rating", 3.0),
				"image":       stringOr(d, "img", defaultImage),
				"effects":     stringOr(d, "effects", "Good for something"),
				"description": stringOr(d, "description", "Product description"),
				"summary":     stringOr(d, "summary", "Review summary"),
			},
			Vector: vectorOf(d),
		})
	}
	if err := store.BatchImport(ctx, schema.ClassProduct, objects); err != nil {
		logger.Fatal("Batch import failed", zap.Error(err))
	}
	logger.Info("Data imported", zap.Int("products", len(objects)))

	cacheDef := db.ClassFromSchema(schema.CachedResult(), "Cached results", false)
	if err := recreateClass(ctx, store, cacheDef, logger); err != nil {
		logger.Fatal("Failed to recreate cache class", zap.Error(err))
	}
	logger.Info("Cache initialized")
}

// recreateClass drops the class if present and creates it fresh.
func recreateClass(
	ctx context.Context, store db.Store, def db.ClassDefinition, logger *zap.Logger,
) error {
	exists, err := store.ClassExists(ctx, def.Class)
	if err != nil {
		return err
	}
	if exists {
		if err := store.DeleteClass(ctx, def.Class); err != nil {
			return err
		}
		logger.Info("Removed existing class", zap.String("class", def.Class))
	}
	if err := store.CreateClass(ctx, def); err != nil {
		return err
	}
	logger.Info("Created class", zap.String("class", def.Class))
	return nil
}

func stringOr(d map[string]any, key, fallback string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return fallback
}

func floatOr(d map[string]any, key string, fallback float64) float64 {
	if v, ok := d[key].(float64); ok {
		return v
	}
	return fallback
}

func stringsOr(d map[string]any, key string, fallback []string) []string {
	items, ok := d[key].([]any)
	if !ok {
		return fallback
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// vectorOf extracts an optional precomputed vector from the record.
func vectorOf(d map[string]any) []float32 {
	items, ok := d["vector"].([]any)
	if !ok {
		return nil
	}
	vec := make([]float32, 0, len(items))
	for _, item := range items {
		f, ok := item.(float64)
		if !ok {
			return nil
		}
		vec = append(vec, float32(f))
	}
	return vec
}
