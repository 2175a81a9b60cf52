// Command cacheclear resets the translation cache by dropping and
// recreating the cache class.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/healthsearch/internal/config"
	"github.com/kailas-cloud/healthsearch/internal/db"
	dbWeaviate "github.com/kailas-cloud/healthsearch/internal/db/weaviate"
	"github.com/kailas-cloud/healthsearch/internal/domain/schema"
	logpkg "github.com/kailas-cloud/healthsearch/internal/logger"
)

func main() {
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

	def := db.ClassFromSchema(schema.CachedResult(), "Cached results", false)

	exists, err := store.ClassExists(ctx, def.Class)
	if err != nil {
		logger.Fatal("Failed to check cache class", zap.Error(err))
	}
	if exists {
		if err := store.DeleteClass(ctx, def.Class); err != nil {
			logger.Fatal("Failed to delete cache class", zap.Error(err))
		}
		logger.Info("Removed existing cache class", zap.String("class", def.Class))
	}
	if err := store.CreateClass(ctx, def); err != nil {
		logger.Fatal("Failed to create cache class", zap.Error(err))
	}

	logger.Info("Cache cleared", zap.String("class", def.Class))
}
