// Package rewrite transforms an accepted product query into its
// summarization variant: selection restricted to the long-text fields the
// generative module needs, row limit capped, and the _additional block
// replaced with a grouped generative task.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/healthsearch/internal/domain/gql"
	"github.com/kailas-cloud/healthsearch/internal/domain/schema"
)

// summaryLimit caps how many rows feed the generative summary.
const summaryLimit = 5

// summaryFields is the selection allowlist for summarization.
var summaryFields = []string{"summary", "description", "ingredients"}

const taskFormat = "Summarize products based on this query: %s"

// Rewriter builds summarization queries. Pure text transform, no I/O.
type Rewriter struct {
	schema schema.Schema
}

// New creates a rewriter over the given schema.
func New(s schema.Schema) *Rewriter {
	return &Rewriter{schema: s}
}

// Rewrite parses graphQuery into the typed model and produces the
// summarization variant. Fields referenced by where or sort path lists are
// exempt from pruning: dropping a field the query filters or orders on
// would change result semantics.
func (r *Rewriter) Rewrite(graphQuery, naturalQuery string) (string, error) {
	q, err := gql.Parse(graphQuery)
	if err != nil {
		return "", fmt.Errorf("parse query: %w", err)
	}

	keep := make(map[string]bool, len(summaryFields))
	for _, f := range summaryFields {
		keep[f] = true
	}
	for _, argName := range []string{"where", "sort"} {
		if arg, ok := q.Argument(argName); ok {
			for _, f := range arg.PathFields() {
				keep[f] = true
			}
		}
	}

	var selections []gql.Selection
	for _, sel := range q.Selections() {
		if _, isSchemaField := r.schema.FieldByName(sel.Name()); isSchemaField && !keep[sel.Name()] {
			continue
		}
		selections = append(selections, sel)
	}

	limit := summaryLimit
	if n, ok := q.Limit(); ok && n <= summaryLimit {
		limit = n
	}

	q = q.
		WithSelections(selections).
		WithLimit(limit).
		WithAdditional(generateBlock(naturalQuery))

	return q.Serialize(), nil
}

// generateBlock builds the _additional body requesting a grouped generative
// summary plus the id and distance attributes.
func generateBlock(naturalQuery string) string {
	task := fmt.Sprintf(taskFormat, escapeString(naturalQuery))
	var b strings.Builder
	b.WriteString("generate(\n")
	b.WriteString("  groupedResult: {\n")
	b.WriteString("    task: \"" + task + "\"\n")
	b.WriteString("  }\n")
	b.WriteString(") {\n")
	b.WriteString("  groupedResult\n")
	b.WriteString("  error\n")
	b.WriteString("}\n")
	b.WriteString("id\n")
	b.WriteString("distance")
	return b.String()
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ")

func escapeString(s string) string {
	return stringEscaper.Replace(s)
}
