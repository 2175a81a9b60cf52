// Package schema defines the product catalog schema shared read-only by the
// query translator, the rewriter, and the import tooling.
package schema

import "fmt"

// Class names of the two store collections. Product data and cached
// translations never share a class.
const (
	ClassProduct      = "Product"
	ClassCachedResult = "CachedResult"
)

// Type is a field data type in the store's type system.
type Type string

const (
	// Text is a single text value.
	Text Type = "text"
	// TextArray is a list of text values.
	TextArray Type = "text[]"
	// Number is a numeric value.
	Number Type = "number"
)

// Field describes one schema field.
type Field struct {
	name        string
	fieldType   Type
	description string
	vectorized  bool
}

// NewField creates a field descriptor.
func NewField(name string, fieldType Type, description string, vectorized bool) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	switch fieldType {
	case Text, TextArray, Number:
	default:
		return Field{}, fmt.Errorf("unknown field type %q", fieldType)
	}
	return Field{name: name, fieldType: fieldType, description: description, vectorized: vectorized}, nil
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// FieldType returns the field data type.
func (f Field) FieldType() Type { return f.fieldType }

// Description returns the human-readable field description.
func (f Field) Description() string { return f.description }

// Vectorized reports whether the field contributes to the object vector.
func (f Field) Vectorized() bool { return f.vectorized }

// Schema is an ordered, immutable set of field descriptors for one class.
type Schema struct {
	class  string
	fields []Field
}

// New creates a schema for a class.
func New(class string, fields []Field) Schema {
	fs := make([]Field, len(fields))
	copy(fs, fields)
	return Schema{class: class, fields: fs}
}

// Class returns the class name.
func (s Schema) Class() string { return s.class }

// Fields returns the ordered field descriptors.
func (s Schema) Fields() []Field {
	fs := make([]Field, len(s.fields))
	copy(fs, s.fields)
	return fs
}

// FieldNames returns the ordered field names.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// FieldByName looks up a field by exact name.
func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.name == name {
			return f, true
		}
	}
	return Field{}, false
}

func mustField(name string, fieldType Type, description string, vectorized bool) Field {
	f, err := NewField(name, fieldType, description, vectorized)
	if err != nil {
		panic(err)
	}
	return f
}

// Product returns the supplement product schema.
func Product() Schema {
	return New(ClassProduct, []Field{
		mustField("name", Text, "The name of the product", false),
		mustField("brand", Text, "The brand of the product", false),
		mustField("ingredients", Text, "The ingredients contained in the product.", true),
		mustField("reviews", TextArray, "Reviews about the product", false),
		mustField("image", Text, "Image URL of the product", false),
		mustField("rating", Number, "The Rating of the product", false),
		mustField("description", Text, "The description of the product", false),
		mustField("summary", Text, "The summary of the reviews", true),
		mustField("effects", Text, "The health effects of the product", true),
	})
}

// CachedResult returns the translation cache schema. Only the natural query
// is vectorized so similarity lookup runs over the cache key alone.
func CachedResult() Schema {
	return New(ClassCachedResult, []Field{
		mustField("graphQuery", Text, "GraphQL Query", false),
		mustField("naturalQuery", Text, "Natural Language Query", true),
		mustField("products", Text, "Retrieved Products", false),
		mustField("summary", Text, "Generated Summary", false),
	})
}
