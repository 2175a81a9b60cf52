package db

import "github.com/kailas-cloud/healthsearch/internal/domain/schema"

// ClassFromSchema converts a domain schema into a class definition for
// schema creation. generative enables the store's generative module on the
// class (needed for the summarization query, so only the product class).
func ClassFromSchema(s schema.Schema, description string, generative bool) ClassDefinition {
	props := make([]PropertyDefinition, 0, len(s.Fields()))
	for _, f := range s.Fields() {
		props = append(props, PropertyDefinition{
			Name:        f.Name(),
			DataType:    string(f.FieldType()),
			Description: f.Description(),
			Vectorize:   f.Vectorized(),
		})
	}
	return ClassDefinition{
		Class:       s.Class(),
		Description: description,
		Properties:  props,
		Generative:  generative,
	}
}
