package product

import (
	"testing"

	"go.uber.org/zap"
)

func productPayload(rows ...any) map[string]any {
	return map[string]any{
		"Get": map[string]any{
			"Product": rows,
		},
	}
}

func TestNormalize(t *testing.T) {
	data := productPayload(map[string]any{
		"name":        "Glucosamine",
		"brand":       "Now Foods",
		"rating":      4.5,
		"ingredients": "Glucosamine sulfate",
		"reviews":     []any{"works", "fine"},
		"_additional": map[string]any{
			"id":       "abc-123",
			"distance": 0.12345,
		},
	})

	records := Normalize(data, "Product", zap.NewNop())
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	r := records[0]
	if r.Name != "Glucosamine" || r.Brand != "Now Foods" || r.Rating != 4.5 {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.ID != "abc-123" {
		t.Errorf("id = %q, want abc-123", r.ID)
	}
	if r.Distance != 0.12 {
		t.Errorf("distance = %v, want 0.12 (rounded)", r.Distance)
	}
	if len(r.Reviews) != 2 {
		t.Errorf("reviews = %v, want 2 entries", r.Reviews)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	records := Normalize(productPayload(map[string]any{}), "Product", zap.NewNop())
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	r := records[0]
	if r.Name != "No name" {
		t.Errorf("name = %q, want No name", r.Name)
	}
	if r.Brand != "No brand" {
		t.Errorf("brand = %q, want No brand", r.Brand)
	}
	if r.Rating != 0.0 {
		t.Errorf("rating = %v, want 0", r.Rating)
	}
	if r.Reviews == nil {
		t.Error("reviews must be an empty slice, not nil")
	}
}

func TestNormalize_WrongTypes(t *testing.T) {
	records := Normalize(productPayload(map[string]any{
		"name":    42.0,
		"rating":  "five",
		"reviews": "not a list",
	}), "Product", zap.NewNop())
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	r := records[0]
	if r.Name != "No name" {
		t.Errorf("name = %q, want default for mistyped value", r.Name)
	}
	if r.Rating != 0.0 {
		t.Errorf("rating = %v, want default for mistyped value", r.Rating)
	}
	if len(r.Reviews) != 0 {
		t.Errorf("reviews = %v, want empty", r.Reviews)
	}
}

func TestNormalize_MalformedPayload(t *testing.T) {
	cases := []struct {
		name  string
		data  map[string]any
		class string
	}{
		{"nil", nil, "Product"},
		{"missing get", map[string]any{"Explore": map[string]any{}}, "Product"},
		{"wrong class", productPayload(), "Missing"},
		{"row not object", productPayload("scalar"), "Product"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := Normalize(tc.data, tc.class, zap.NewNop())
			want := Fallback()
			if len(records) != len(want) || records[0].Name != want[0].Name {
				t.Errorf("records = %+v, want fallback", records)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	records := Fallback()
	if len(records) != 1 {
		t.Fatalf("fallback = %d records, want 1", len(records))
	}
	r := records[0]
	if r.Name != "Product" || r.Brand != "Brand" || r.Ingredients != "Substances" {
		t.Errorf("unexpected fallback record: %+v", r)
	}
	if len(r.Reviews) != 1 || r.Reviews[0] != "Review" {
		t.Errorf("fallback reviews = %v", r.Reviews)
	}
}
