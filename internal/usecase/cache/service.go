// Package cache implements the semantic translation cache: exact key lookup
// with a similarity-threshold fallback, and write-through insertion.
package cache

import (
	"context"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	domcache "github.com/kailas-cloud/healthsearch/internal/domain/cache"
)

// MarkerExact prefixes summaries served from an exact cache hit.
const MarkerExact = "🛰️ RETRIEVED FROM CACHE: "

// markerSimilar prefixes summaries served from a similarity hit, reporting
// the probe text and the rounded distance.
const markerSimilar = "⭐ RETURNED SIMILAR RESULTS FROM QUERY '%s' (%.2f): "

// Service coordinates cache lookups and writes. Markers are applied to the
// returned copy only; stored entries stay unmodified.
type Service struct {
	repo        Repository
	maxDistance float64
	lookups     *prometheus.CounterVec
	logger      *zap.Logger
}

// New creates a cache service.
// lookups is a counter vec with label "result" (exact/similar/miss), may be nil.
func New(repo Repository, maxDistance float64, lookups *prometheus.CounterVec, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		maxDistance: maxDistance,
		lookups:     lookups,
		logger:      logger,
	}
}

// Lookup returns the cached entry for naturalQuery, trying an exact key
// match first and falling back to a similarity search within the distance
// threshold. Repository errors degrade to a miss: the cache is a
// performance optimization, never a correctness dependency.
func (s *Service) Lookup(ctx context.Context, naturalQuery string) (domcache.Entry, bool) {
	entry, ok, err := s.repo.GetExact(ctx, naturalQuery)
	if err != nil {
		s.logger.Warn("Exact cache lookup failed", zap.Error(err))
	}
	if ok {
		s.incLookups("exact")
		s.logger.Debug("Cache entry exists", zap.String("natural_query", naturalQuery))
		entry.Summary = MarkerExact + entry.Summary
		return entry, true
	}

	entry, distance, ok, err := s.repo.GetSimilar(ctx, naturalQuery, s.maxDistance)
	if err != nil {
		s.logger.Warn("Similar cache lookup failed", zap.Error(err))
	}
	if ok {
		s.incLookups("similar")
		s.logger.Debug("Retrieved similar cache entry",
			zap.String("natural_query", naturalQuery),
			zap.Float64("distance", distance),
		)
		entry.Summary = fmt.Sprintf(markerSimilar, naturalQuery, round2(distance)) + entry.Summary
		return entry, true
	}

	s.incLookups("miss")
	return domcache.Entry{}, false
}

// Write inserts a new immutable entry. Failure is non-fatal: it is logged
// and swallowed so the translation result still reaches the caller.
func (s *Service) Write(ctx context.Context, entry domcache.Entry) {
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Warn("Failed to write cache entry",
			zap.String("natural_query", entry.NaturalQuery),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Added new cache entry", zap.String("natural_query", entry.NaturalQuery))
}

// Keys returns every cached natural-query key.
func (s *Service) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.repo.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cache keys: %w", err)
	}
	return keys, nil
}

func (s *Service) incLookups(result string) {
	if s.lookups != nil {
		s.lookups.WithLabelValues(result).Inc()
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
