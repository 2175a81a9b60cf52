package health

import "context"

// Pinger reports backing-store liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LLMChecker reports completion-provider availability.
type LLMChecker interface {
	HealthCheck(ctx context.Context) error
}

// CacheKeys lists the cached natural-query keys.
type CacheKeys interface {
	Keys(ctx context.Context) ([]string, error)
}
