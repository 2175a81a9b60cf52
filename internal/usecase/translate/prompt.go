package translate

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/healthsearch/internal/domain/schema"
)

const generatePromptFormat = "Convert this natural language to a GraphQL Query " +
	"and only return the query, it will be directly used: %s"

const repairPromptFormat = "The provided GraphQL is not valid, see this error: %s " +
	"please fix this GraphQL query for a Weaviate database: %s"

func generatePrompt(naturalQuery string) string {
	return fmt.Sprintf(generatePromptFormat, naturalQuery)
}

func repairPrompt(errorText, graphQuery string) string {
	return fmt.Sprintf(repairPromptFormat, errorText, graphQuery)
}

// systemPrompt renders the fixed generation instruction: the schema plus
// worked examples covering similarity, filter, and sort queries.
func systemPrompt(s schema.Schema) string {
	var b strings.Builder

	b.WriteString("You are a parser that understands the meaning of natural language queries ")
	b.WriteString("and parses them into valid graphql queries based on this schema:\n\n")

	fmt.Fprintf(&b, "    class %q (Supplementary products from iHerb):\n", s.Class())
	for _, f := range s.Fields() {
		fmt.Fprintf(&b, "      - %s (%s): %s\n", f.Name(), f.FieldType(), f.Description())
	}

	selection := selectionBlock(s)

	b.WriteString("\n")
	b.WriteString("    The query will be used to retrieve supplement products from a Weaviate database, ")
	b.WriteString("make sure that all fields are returned with the _additional distance attribute.\n")
	b.WriteString("    Your answers are only allowed to contain the query, the results will be used directly.\n\n")

	fmt.Fprintf(&b, `    Example natural language query: 'Which product is helpful for joint pain?' produce this GraphQL query:

    {
      Get {
        %s(
          nearText: {concepts: ["Helpful", "joint pain"]}
        ) {
%s
          _additional {
            id
            distance
          }
        }
      }
    }

`, s.Class(), selection)

	fmt.Fprintf(&b, `    Example natural language query: 'Products from brand "Life Extension" for glowing skin' produce this GraphQL query:

    {
      Get {
        %s(
          nearText: {concepts: ["glowing skin"]}
          where: {
            path: ["brand"],
            operator: Equal,
            valueString: "Life Extension"
          }
        ) {
%s
          _additional {
            id
            distance
          }
        }
      }
    }

`, s.Class(), selection)

	fmt.Fprintf(&b, `    Example natural language query: 'Lowest rated products for energy' produce this GraphQL query:

    {
      Get {
        %s(
          nearText: {concepts: ["energy"]}
          sort: [{
            path: ["rating"]
            order: asc
          }]
        ) {
%s
          _additional {
            id
            distance
          }
        }
      }
    }
`, s.Class(), selection)

	return b.String()
}

func selectionBlock(s schema.Schema) string {
	names := s.FieldNames()
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = "          " + n
	}
	return strings.Join(lines, "\n")
}
