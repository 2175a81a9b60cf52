package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/healthsearch/internal/db"
)

// --- Mocks ---

type mockStore struct {
	whereRows []map[string]any
	whereErr  error
	nearRows  []map[string]any
	nearErr   error
	listRows  []map[string]any
	listErr   error
	insertErr error

	lastWhereValue string
	lastNearQuery  db.NearTextQuery
	insertedClass  string
	insertedProps  map[string]any
}

func (m *mockStore) GetWhereEqual(
	_ context.Context, _ string, _ []string, _, value string, _ int,
) ([]map[string]any, error) {
	m.lastWhereValue = value
	return m.whereRows, m.whereErr
}

func (m *mockStore) NearText(
	_ context.Context, _ string, _ []string, q db.NearTextQuery,
) ([]map[string]any, error) {
	m.lastNearQuery = q
	return m.nearRows, m.nearErr
}

func (m *mockStore) ListAll(
	_ context.Context, _ string, _ []string,
) ([]map[string]any, error) {
	return m.listRows, m.listErr
}

func (m *mockStore) Insert(_ context.Context, class string, props map[string]any) error {
	m.insertedClass = class
	m.insertedProps = props
	return m.insertErr
}

func cacheRow(naturalQuery string) map[string]any {
	return map[string]any{
		"naturalQuery": naturalQuery,
		"graphQuery":   "{ Get { Product { name } } }",
		"products":     `[{"name":"Glucosamine"}]`,
		"summary":      "take glucosamine",
	}
}

// --- Tests ---

func TestGetExact(t *testing.T) {
	store := &mockStore{whereRows: []map[string]any{cacheRow("joint pain")}}
	repo := New(store)

	entry, ok, err := repo.GetExact(context.Background(), "joint pain")
	if err != nil {
		t.Fatalf("GetExact: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if entry.Summary != "take glucosamine" {
		t.Errorf("summary = %q", entry.Summary)
	}
	if store.lastWhereValue != "joint pain" {
		t.Errorf("filter value = %q", store.lastWhereValue)
	}
}

func TestGetExact_RejectsTokenMatch(t *testing.T) {
	// The store's text equality is token-based: a filter on "joint pain"
	// can return a row keyed "pain in every joint". That row is not an
	// exact hit.
	store := &mockStore{whereRows: []map[string]any{cacheRow("pain in every joint")}}
	repo := New(store)

	_, ok, err := repo.GetExact(context.Background(), "joint pain")
	if err != nil {
		t.Fatalf("GetExact: %v", err)
	}
	if ok {
		t.Error("token-level match must not count as an exact hit")
	}
}

func TestGetExact_Empty(t *testing.T) {
	repo := New(&mockStore{})

	_, ok, err := repo.GetExact(context.Background(), "joint pain")
	if err != nil {
		t.Fatalf("GetExact: %v", err)
	}
	if ok {
		t.Error("expected a miss")
	}
}

func TestGetExact_StoreError(t *testing.T) {
	repo := New(&mockStore{whereErr: errors.New("down")})

	if _, _, err := repo.GetExact(context.Background(), "joint pain"); err == nil {
		t.Error("expected error")
	}
}

func TestGetSimilar(t *testing.T) {
	row := cacheRow("pain in joints")
	row["_additional"] = map[string]any{"distance": 0.11}
	store := &mockStore{nearRows: []map[string]any{row}}
	repo := New(store)

	entry, distance, ok, err := repo.GetSimilar(context.Background(), "joint pain", 0.14)
	if err != nil {
		t.Fatalf("GetSimilar: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if distance != 0.11 {
		t.Errorf("distance = %v, want 0.11", distance)
	}
	if entry.NaturalQuery != "pain in joints" {
		t.Errorf("naturalQuery = %q", entry.NaturalQuery)
	}
	if !store.lastNearQuery.WithDistance || store.lastNearQuery.Limit != 1 {
		t.Errorf("near-text query = %+v", store.lastNearQuery)
	}
}

func TestGetSimilar_BeyondThreshold(t *testing.T) {
	row := cacheRow("something else entirely")
	row["_additional"] = map[string]any{"distance": 0.4}
	repo := New(&mockStore{nearRows: []map[string]any{row}})

	_, _, ok, err := repo.GetSimilar(context.Background(), "joint pain", 0.14)
	if err != nil {
		t.Fatalf("GetSimilar: %v", err)
	}
	if ok {
		t.Error("candidate beyond the distance threshold must not qualify")
	}
}

func TestGetSimilar_MissingDistance(t *testing.T) {
	repo := New(&mockStore{nearRows: []map[string]any{cacheRow("pain in joints")}})

	_, _, ok, err := repo.GetSimilar(context.Background(), "joint pain", 0.14)
	if err != nil {
		t.Fatalf("GetSimilar: %v", err)
	}
	if ok {
		t.Error("row without a distance must not qualify")
	}
}

func TestInsert(t *testing.T) {
	store := &mockStore{}
	repo := New(store)

	err := repo.Insert(context.Background(), entryFromRow(cacheRow("joint pain")))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if store.insertedClass != "CachedResult" {
		t.Errorf("class = %q", store.insertedClass)
	}
	if store.insertedProps["naturalQuery"] != "joint pain" {
		t.Errorf("props = %+v", store.insertedProps)
	}
}

func TestListKeys(t *testing.T) {
	store := &mockStore{listRows: []map[string]any{
		{"naturalQuery": "a"},
		{"naturalQuery": "b"},
		{"naturalQuery": 42.0}, // mistyped rows are skipped
	}}
	repo := New(store)

	keys, err := repo.ListKeys(context.Background())
	if err != nil {
		t.Fatalf("ListKeys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys = %v", keys)
	}
}
