package health

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/healthsearch/internal/domain"
	"github.com/kailas-cloud/healthsearch/internal/metrics"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockLLMChecker struct {
	err    error
	called bool
}

func (m *mockLLMChecker) HealthCheck(_ context.Context) error {
	m.called = true
	return m.err
}

type mockKeys struct {
	keys []string
	err  error
}

func (m *mockKeys) Keys(_ context.Context) ([]string, error) { return m.keys, m.err }

func TestCheck(t *testing.T) {
	requests := metrics.NewRequestCounter()
	requests.Inc()
	requests.Inc()
	llm := &mockLLMChecker{}
	svc := New(&mockPinger{}, llm, &mockKeys{keys: []string{"joint pain"}}, requests, zap.NewNop())

	status, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if status.Message != "Alive!" {
		t.Errorf("message = %q", status.Message)
	}
	if status.Requests != 2 {
		t.Errorf("requests = %d, want 2", status.Requests)
	}
	if len(status.CacheQueries) != 1 || status.CacheQueries[0] != "joint pain" {
		t.Errorf("cache queries = %v", status.CacheQueries)
	}
	if !llm.called {
		t.Error("provider check did not run")
	}
}

func TestCheck_StoreUnreachable(t *testing.T) {
	svc := New(
		&mockPinger{err: errors.New("connection refused")}, nil,
		&mockKeys{}, metrics.NewRequestCounter(), zap.NewNop(),
	)

	_, err := svc.Check(context.Background())
	if !errors.Is(err, domain.ErrStoreUnreachable) {
		t.Fatalf("err = %v, want ErrStoreUnreachable", err)
	}
}

func TestCheck_LLMFailureIsAdvisory(t *testing.T) {
	llm := &mockLLMChecker{err: errors.New("provider down")}
	svc := New(&mockPinger{}, llm, &mockKeys{}, metrics.NewRequestCounter(), zap.NewNop())

	status, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if status.Message != "Alive!" {
		t.Errorf("message = %q, provider failure must not fail health", status.Message)
	}
	if !llm.called {
		t.Error("provider check did not run")
	}
}

func TestCheck_NoLLMChecker(t *testing.T) {
	svc := New(&mockPinger{}, nil, &mockKeys{}, metrics.NewRequestCounter(), zap.NewNop())

	if _, err := svc.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheck_KeyListingDegrades(t *testing.T) {
	svc := New(
		&mockPinger{}, nil,
		&mockKeys{err: errors.New("timeout")},
		metrics.NewRequestCounter(), zap.NewNop(),
	)

	status, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if status.CacheQueries == nil || len(status.CacheQueries) != 0 {
		t.Errorf("cache queries = %v, want empty non-nil slice", status.CacheQueries)
	}
}
