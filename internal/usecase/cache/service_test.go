package cache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	domcache "github.com/kailas-cloud/healthsearch/internal/domain/cache"
)

// --- Mocks ---

type mockRepo struct {
	exactEntry   domcache.Entry
	exactOK      bool
	exactErr     error
	similarEntry domcache.Entry
	similarDist  float64
	similarOK    bool
	similarErr   error
	insertErr    error
	keys         []string
	keysErr      error

	exactCalled   bool
	similarCalled bool
	inserted      []domcache.Entry
}

func (m *mockRepo) GetExact(_ context.Context, _ string) (domcache.Entry, bool, error) {
	m.exactCalled = true
	return m.exactEntry, m.exactOK, m.exactErr
}

func (m *mockRepo) GetSimilar(
	_ context.Context, _ string, _ float64,
) (domcache.Entry, float64, bool, error) {
	m.similarCalled = true
	return m.similarEntry, m.similarDist, m.similarOK, m.similarErr
}

func (m *mockRepo) Insert(_ context.Context, entry domcache.Entry) error {
	m.inserted = append(m.inserted, entry)
	return m.insertErr
}

func (m *mockRepo) ListKeys(_ context.Context) ([]string, error) {
	return m.keys, m.keysErr
}

// --- Tests ---

func TestLookup_ExactHit(t *testing.T) {
	repo := &mockRepo{
		exactEntry: domcache.Entry{NaturalQuery: "joint pain", Summary: "take glucosamine"},
		exactOK:    true,
	}
	svc := New(repo, 0.14, nil, zap.NewNop())

	entry, ok := svc.Lookup(context.Background(), "joint pain")
	if !ok {
		t.Fatal("expected a hit")
	}
	if entry.Summary != MarkerExact+"take glucosamine" {
		t.Errorf("summary = %q, want exact marker prefix", entry.Summary)
	}
	if repo.similarCalled {
		t.Error("similarity lookup must not run after an exact hit")
	}
}

func TestLookup_SimilarHit(t *testing.T) {
	repo := &mockRepo{
		similarEntry: domcache.Entry{NaturalQuery: "pain in joints", Summary: "take glucosamine"},
		similarDist:  0.118,
		similarOK:    true,
	}
	svc := New(repo, 0.14, nil, zap.NewNop())

	entry, ok := svc.Lookup(context.Background(), "joint pain")
	if !ok {
		t.Fatal("expected a hit")
	}
	if !strings.HasPrefix(entry.Summary, "⭐ RETURNED SIMILAR RESULTS FROM QUERY 'joint pain' (0.12): ") {
		t.Errorf("summary = %q, want similar marker with rounded distance", entry.Summary)
	}
	if !strings.HasSuffix(entry.Summary, "take glucosamine") {
		t.Errorf("summary = %q, original text lost", entry.Summary)
	}
}

func TestLookup_Miss(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, 0.14, nil, zap.NewNop())

	if _, ok := svc.Lookup(context.Background(), "joint pain"); ok {
		t.Error("expected a miss")
	}
	if !repo.exactCalled || !repo.similarCalled {
		t.Error("both lookup stages must run on a miss")
	}
}

func TestLookup_RepoErrorsDegradeToMiss(t *testing.T) {
	repo := &mockRepo{
		exactErr:   errors.New("store down"),
		similarErr: errors.New("store down"),
	}
	svc := New(repo, 0.14, nil, zap.NewNop())

	if _, ok := svc.Lookup(context.Background(), "joint pain"); ok {
		t.Error("repo errors must degrade to a miss")
	}
}

func TestWrite_SwallowsFailure(t *testing.T) {
	repo := &mockRepo{insertErr: errors.New("store down")}
	svc := New(repo, 0.14, nil, zap.NewNop())

	// must not panic or surface the error
	svc.Write(context.Background(), domcache.Entry{NaturalQuery: "joint pain"})

	if len(repo.inserted) != 1 {
		t.Errorf("inserted = %d, want 1", len(repo.inserted))
	}
}

func TestKeys(t *testing.T) {
	repo := &mockRepo{keys: []string{"a", "b"}}
	svc := New(repo, 0.14, nil, zap.NewNop())

	keys, err := svc.Keys(context.Background())
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("keys = %v, want 2 entries", keys)
	}
}

func TestKeys_Error(t *testing.T) {
	repo := &mockRepo{keysErr: errors.New("store down")}
	svc := New(repo, 0.14, nil, zap.NewNop())

	if _, err := svc.Keys(context.Background()); err == nil {
		t.Error("expected error")
	}
}
