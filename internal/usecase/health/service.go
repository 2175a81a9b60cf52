// Package health reports service liveness: store reachability, the
// instance request count, and the current cache key set.
package health

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/healthsearch/internal/domain"
	"github.com/kailas-cloud/healthsearch/internal/metrics"
)

// Status is a point-in-time health report.
type Status struct {
	Message      string
	Requests     int64
	CacheQueries []string
}

// Service assembles health reports.
type Service struct {
	store    Pinger
	llm      LLMChecker
	cache    CacheKeys
	requests *metrics.RequestCounter
	logger   *zap.Logger
}

// New creates a health service. llm may be nil when no provider check is
// available.
func New(
	store Pinger, llm LLMChecker, cache CacheKeys,
	requests *metrics.RequestCounter, logger *zap.Logger,
) *Service {
	return &Service{
		store:    store,
		llm:      llm,
		cache:    cache,
		requests: requests,
		logger:   logger,
	}
}

// Check pings the store and gathers the cache key set. An unreachable
// store is a hard failure. The provider check is advisory: translation
// degrades per request when the provider is down, so a failure here is
// logged, not fatal. A failed key listing degrades to an empty list.
func (s *Service) Check(ctx context.Context) (Status, error) {
	if err := s.store.Ping(ctx); err != nil {
		return Status{}, fmt.Errorf("%w: %v", domain.ErrStoreUnreachable, err)
	}

	if s.llm != nil {
		if err := s.llm.HealthCheck(ctx); err != nil {
			s.logger.Warn("Completion provider check failed", zap.Error(err))
		}
	}

	keys, err := s.cache.Keys(ctx)
	if err != nil {
		s.logger.Warn("Failed to list cache keys", zap.Error(err))
		keys = []string{}
	}
	if keys == nil {
		keys = []string{}
	}

	return Status{
		Message:      "Alive!",
		Requests:     s.requests.Count(),
		CacheQueries: keys,
	}, nil
}
