// Package weaviate implements the db.Store facade on a Weaviate instance
// via the official Go client.
package weaviate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	client "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"

	"github.com/kailas-cloud/healthsearch/internal/db"
)

// Config holds Weaviate connection settings.
type Config struct {
	// URL is the full instance URL, e.g. https://demo.weaviate.network.
	URL    string
	APIKey string
	// OpenAIKey is forwarded so the instance's text2vec / generative
	// modules can call the provider.
	OpenAIKey string
	Timeout   time.Duration
}

// Store implements db.Store on Weaviate.
type Store struct {
	client *client.Client
}

var _ db.Store = (*Store)(nil)

// NewStore creates a Weaviate-backed store.
func NewStore(cfg Config) (*Store, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse store url %q: %w", cfg.URL, err)
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	host := u.Host
	if host == "" {
		host = u.Path // bare host without scheme parses into Path
	}

	clientCfg := client.Config{
		Host:   host,
		Scheme: scheme,
		Headers: map[string]string{
			"X-OpenAI-Api-Key": cfg.OpenAIKey,
		},
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	}
	if cfg.Timeout > 0 {
		clientCfg.ConnectionClient = &http.Client{Timeout: cfg.Timeout}
	}

	c, err := client.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Store{client: c}, nil
}

// Ping checks instance liveness.
func (s *Store) Ping(ctx context.Context) error {
	live, err := s.client.Misc().LiveChecker().Do(ctx)
	if err != nil {
		return fmt.Errorf("live check: %w", err)
	}
	if !live {
		return fmt.Errorf("instance not live")
	}
	return nil
}

// WaitForReady polls readiness until the timeout elapses.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		ready, err := s.client.Misc().ReadyChecker().Do(ctx)
		if err == nil && ready {
			return nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
	if lastErr != nil {
		return fmt.Errorf("store not ready after %s: %w", timeout, lastErr)
	}
	return fmt.Errorf("store not ready after %s", timeout)
}

// Close is a no-op; the underlying client holds no persistent connections.
func (s *Store) Close() {}
