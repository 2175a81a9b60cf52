// Package gql models the store's GraphQL-style Get query as a small typed
// structure: class name, argument list, limit, selection set, and the
// _additional block. Rewrites happen on the model and re-serialize, so field
// edits are exact-token operations rather than text substitution.
package gql

import (
	"fmt"
	"strconv"
	"strings"
)

// Argument is one named argument of the class selector (nearText, where,
// sort, ...). The value is kept as raw text so nested payloads survive a
// parse/serialize round trip untouched.
type Argument struct {
	name string
	raw  string
}

// Name returns the argument name.
func (a Argument) Name() string { return a.name }

// Raw returns the raw argument value text.
func (a Argument) Raw() string { return a.raw }

// PathFields extracts field names referenced by path lists inside the raw
// value, e.g. `path: ["brand"]` yields "brand". Used to exempt filter and
// sort fields from selection pruning.
func (a Argument) PathFields() []string {
	s := &scanner{src: []rune(a.raw)}
	var fields []string
	for !s.done() {
		if s.peek() == '"' {
			if err := s.skipString(); err != nil {
				break
			}
			continue
		}
		ident := s.readIdent()
		if ident == "" {
			s.pos++
			continue
		}
		if ident != "path" {
			continue
		}
		s.skipSpace()
		if s.peek() != ':' {
			continue
		}
		s.pos++
		s.skipSpace()
		if s.peek() != '[' {
			continue
		}
		list, err := s.captureBalanced('[', ']')
		if err != nil {
			break
		}
		fields = append(fields, listItems(list)...)
	}
	return fields
}

// listItems splits a bracketed list into its items, stripping quotes.
func listItems(list string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(list, "["), "]")
	var items []string
	for _, part := range strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}) {
		items = append(items, strings.Trim(part, `"`))
	}
	return items
}

// Selection is one entry of the selection set: a scalar field, or a nested
// block with its raw body.
type Selection struct {
	name  string
	block string
}

// NewSelection creates a scalar selection.
func NewSelection(name string) Selection { return Selection{name: name} }

// Name returns the selected field name.
func (s Selection) Name() string { return s.name }

// Block returns the raw nested selection body, empty for scalar fields.
func (s Selection) Block() string { return s.block }

// IsLeaf reports whether the selection is a scalar field.
func (s Selection) IsLeaf() bool { return s.block == "" }

// Query is a parsed Get query.
type Query struct {
	class      string
	args       []Argument
	limit      int
	hasLimit   bool
	selections []Selection
	additional string
}

// Class returns the queried class name.
func (q Query) Class() string { return q.class }

// Arguments returns the class selector arguments, excluding limit.
func (q Query) Arguments() []Argument {
	out := make([]Argument, len(q.args))
	copy(out, q.args)
	return out
}

// Argument looks up a selector argument by name.
func (q Query) Argument(name string) (Argument, bool) {
	for _, a := range q.args {
		if a.name == name {
			return a, true
		}
	}
	return Argument{}, false
}

// Limit returns the row limit and whether one is present.
func (q Query) Limit() (int, bool) { return q.limit, q.hasLimit }

// Selections returns the selection set, excluding _additional.
func (q Query) Selections() []Selection {
	out := make([]Selection, len(q.selections))
	copy(out, q.selections)
	return out
}

// Additional returns the raw body of the _additional block, empty if absent.
func (q Query) Additional() string { return q.additional }

// WithLimit returns a copy with the row limit set.
func (q Query) WithLimit(n int) Query {
	q.limit = n
	q.hasLimit = true
	return q
}

// WithSelections returns a copy with the selection set replaced.
func (q Query) WithSelections(selections []Selection) Query {
	ss := make([]Selection, len(selections))
	copy(ss, selections)
	q.selections = ss
	return q
}

// WithAdditional returns a copy with the _additional body replaced.
func (q Query) WithAdditional(body string) Query {
	q.additional = body
	return q
}

// Parse parses a Get query into the typed model.
func Parse(text string) (Query, error) {
	s := &scanner{src: []rune(text)}
	var q Query

	if err := s.expect('{'); err != nil {
		return Query{}, err
	}
	root := s.readIdentAfterSpace()
	if root != "Get" {
		return Query{}, fmt.Errorf("expected Get block, got %q", root)
	}
	if err := s.expect('{'); err != nil {
		return Query{}, err
	}
	q.class = s.readIdentAfterSpace()
	if q.class == "" {
		return Query{}, fmt.Errorf("missing class name")
	}

	s.skipSpace()
	if s.peek() == '(' {
		argsRaw, err := s.captureBalanced('(', ')')
		if err != nil {
			return Query{}, fmt.Errorf("arguments of %s: %w", q.class, err)
		}
		if err := q.parseArguments(trimDelims(argsRaw)); err != nil {
			return Query{}, err
		}
	}

	s.skipSpace()
	if s.peek() != '{' {
		return Query{}, fmt.Errorf("selection of %s: expected '{', got %q", q.class, string(s.peek()))
	}
	body, err := s.captureBalanced('{', '}')
	if err != nil {
		return Query{}, fmt.Errorf("selection of %s: %w", q.class, err)
	}
	if err := q.parseSelections(trimDelims(body)); err != nil {
		return Query{}, err
	}

	if err := s.expect('}'); err != nil {
		return Query{}, fmt.Errorf("closing Get block: %w", err)
	}
	if err := s.expect('}'); err != nil {
		return Query{}, fmt.Errorf("closing query: %w", err)
	}

	return q, nil
}

func (q *Query) parseArguments(inner string) error {
	s := &scanner{src: []rune(inner)}
	for {
		s.skipSpace()
		if s.done() {
			return nil
		}
		name := s.readIdent()
		if name == "" {
			return fmt.Errorf("unexpected character %q in arguments", string(s.peek()))
		}
		if err := s.expect(':'); err != nil {
			return fmt.Errorf("argument %s: %w", name, err)
		}
		raw, err := s.readValue()
		if err != nil {
			return fmt.Errorf("argument %s: %w", name, err)
		}
		if name == "limit" {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("invalid limit %q", raw)
			}
			q.limit = n
			q.hasLimit = true
			continue
		}
		q.args = append(q.args, Argument{name: name, raw: raw})
	}
}

func (q *Query) parseSelections(inner string) error {
	s := &scanner{src: []rune(inner)}
	for {
		s.skipSpace()
		if s.done() {
			return nil
		}
		name := s.readIdent()
		if name == "" {
			return fmt.Errorf("unexpected character %q in selection set", string(s.peek()))
		}
		s.skipSpace()
		if s.peek() != '{' {
			q.selections = append(q.selections, Selection{name: name})
			continue
		}
		block, err := s.captureBalanced('{', '}')
		if err != nil {
			return fmt.Errorf("selection %s: %w", name, err)
		}
		body := strings.TrimSpace(trimDelims(block))
		if name == "_additional" {
			q.additional = body
			continue
		}
		q.selections = append(q.selections, Selection{name: name, block: body})
	}
}

// Serialize renders the query with canonical indentation.
func (q Query) Serialize() string {
	var b strings.Builder
	b.WriteString("{\n  Get {\n    ")
	b.WriteString(q.class)

	if len(q.args) > 0 || q.hasLimit {
		b.WriteString("(\n")
		for _, a := range q.args {
			b.WriteString("      ")
			b.WriteString(a.name)
			b.WriteString(": ")
			b.WriteString(reindent(a.raw, "      "))
			b.WriteString("\n")
		}
		if q.hasLimit {
			fmt.Fprintf(&b, "      limit: %d\n", q.limit)
		}
		b.WriteString("    )")
	}

	b.WriteString(" {\n")
	for _, sel := range q.selections {
		if sel.IsLeaf() {
			b.WriteString("      ")
			b.WriteString(sel.name)
			b.WriteString("\n")
			continue
		}
		b.WriteString("      ")
		b.WriteString(sel.name)
		b.WriteString(" {\n")
		b.WriteString(prefixLines(sel.block, "        "))
		b.WriteString("\n      }\n")
	}
	if q.additional != "" {
		b.WriteString("      _additional {\n")
		b.WriteString(prefixLines(q.additional, "        "))
		b.WriteString("\n      }\n")
	}
	b.WriteString("    }\n  }\n}")
	return b.String()
}

func trimDelims(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

// reindent keeps a multi-line raw value readable after serialization:
// the first line stays in place, continuation lines keep their relative
// indentation under the given prefix.
func reindent(raw string, prefix string) string {
	lines := strings.Split(raw, "\n")
	if len(lines) == 1 {
		return raw
	}
	min := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if min < 0 || indent < min {
			min = indent
		}
	}
	if min < 0 {
		min = 0
	}
	out := make([]string, len(lines))
	out[0] = lines[0]
	for i, line := range lines[1:] {
		if len(line) >= min {
			line = line[min:]
		}
		out[i+1] = prefix + line
	}
	return strings.Join(out, "\n")
}

// prefixLines strips the common leading indentation of a block and applies
// the given prefix to every line.
func prefixLines(block string, prefix string) string {
	lines := strings.Split(block, "\n")
	min := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if min < 0 || indent < min {
			min = indent
		}
	}
	if min < 0 {
		min = 0
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}
		if len(line) >= min {
			line = line[min:]
		}
		out[i] = prefix + line
	}
	return strings.Join(out, "\n")
}
