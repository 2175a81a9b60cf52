package gql

import (
	"strings"
	"testing"
)

const sampleQuery = `{
  Get {
    Product(
      nearText: {concepts: ["joint pain"]}
      where: {
        path: ["brand"],
        operator: Equal,
        valueString: "Life Extension"
      }
      limit: 10
    ) {
      name
      brand
      summary
      _additional {
        id
        distance
      }
    }
  }
}`

func TestParse(t *testing.T) {
	q, err := Parse(sampleQuery)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if q.Class() != "Product" {
		t.Errorf("class = %q, want Product", q.Class())
	}
	if n, ok := q.Limit(); !ok || n != 10 {
		t.Errorf("limit = %d/%v, want 10/true", n, ok)
	}

	sels := q.Selections()
	if len(sels) != 3 {
		t.Fatalf("selections = %d, want 3", len(sels))
	}
	for i, want := range []string{"name", "brand", "summary"} {
		if sels[i].Name() != want {
			t.Errorf("selection %d = %q, want %q", i, sels[i].Name(), want)
		}
	}

	if !strings.Contains(q.Additional(), "distance") {
		t.Errorf("_additional body missing distance: %q", q.Additional())
	}

	if _, ok := q.Argument("nearText"); !ok {
		t.Error("nearText argument not found")
	}
	if _, ok := q.Argument("limit"); ok {
		t.Error("limit must not appear as a plain argument")
	}
}

func TestParse_NoArguments(t *testing.T) {
	q, err := Parse(`{ Get { Product { name } } }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := q.Limit(); ok {
		t.Error("limit should be absent")
	}
	if len(q.Arguments()) != 0 {
		t.Errorf("arguments = %d, want 0", len(q.Arguments()))
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"not get", `{ Aggregate { Product { name } } }`},
		{"missing class", `{ Get { } }`},
		{"unbalanced", `{ Get { Product { name }`},
		{"bad limit", `{ Get { Product(limit: many) { name } } }`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.text); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tc.text)
			}
		})
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	q, err := Parse(sampleQuery)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	again, err := Parse(q.Serialize())
	if err != nil {
		t.Fatalf("Parse(Serialize()): %v\n%s", err, q.Serialize())
	}

	if again.Class() != q.Class() {
		t.Errorf("class changed: %q -> %q", q.Class(), again.Class())
	}
	if n, ok := again.Limit(); !ok || n != 10 {
		t.Errorf("limit changed: %d/%v", n, ok)
	}
	if len(again.Selections()) != len(q.Selections()) {
		t.Errorf("selections changed: %d -> %d", len(q.Selections()), len(again.Selections()))
	}
	if len(again.Arguments()) != len(q.Arguments()) {
		t.Errorf("arguments changed: %d -> %d", len(q.Arguments()), len(again.Arguments()))
	}
}

func TestWithModifiers(t *testing.T) {
	q, err := Parse(sampleQuery)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	q = q.
		WithLimit(5).
		WithSelections([]Selection{NewSelection("summary")}).
		WithAdditional("id")

	out := q.Serialize()
	if !strings.Contains(out, "limit: 5") {
		t.Errorf("serialized query missing limit: %s", out)
	}
	if strings.Contains(out, "\n      name\n") {
		t.Errorf("pruned selection survived: %s", out)
	}
	if !strings.Contains(out, "_additional {") {
		t.Errorf("replaced _additional missing: %s", out)
	}
}

func TestPathFields(t *testing.T) {
	q, err := Parse(sampleQuery)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	arg, ok := q.Argument("where")
	if !ok {
		t.Fatal("where argument not found")
	}
	fields := arg.PathFields()
	if len(fields) != 1 || fields[0] != "brand" {
		t.Errorf("PathFields = %v, want [brand]", fields)
	}
}

func TestPathFields_IgnoresStringLiterals(t *testing.T) {
	arg := Argument{name: "where", raw: `{
		path: ["rating"],
		operator: Equal,
		valueString: "path: [\"decoy\"]"
	}`}
	fields := arg.PathFields()
	if len(fields) != 1 || fields[0] != "rating" {
		t.Errorf("PathFields = %v, want [rating]", fields)
	}
}

func TestPathFields_Nested(t *testing.T) {
	arg := Argument{name: "sort", raw: `[{
		path: ["rating"]
		order: asc
	}, {
		path: ["name"]
		order: desc
	}]`}
	fields := arg.PathFields()
	if len(fields) != 2 || fields[0] != "rating" || fields[1] != "name" {
		t.Errorf("PathFields = %v, want [rating name]", fields)
	}
}
