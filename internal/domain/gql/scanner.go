package gql

import "fmt"

// scanner is a minimal rune scanner with balanced-delimiter capture.
// String literals are skipped wholesale so quoted braces never affect depth.
type scanner struct {
	src []rune
	pos int
}

func (s *scanner) done() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune {
	if s.done() {
		return 0
	}
	return s.src[s.pos]
}

// skipSpace skips whitespace and commas (commas are separators in both
// argument and list position).
func (s *scanner) skipSpace() {
	for !s.done() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func (s *scanner) readIdent() string {
	start := s.pos
	for !s.done() && isIdentRune(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) readIdentAfterSpace() string {
	s.skipSpace()
	return s.readIdent()
}

func (s *scanner) expect(r rune) error {
	s.skipSpace()
	if s.done() {
		return fmt.Errorf("expected %q, got end of input", string(r))
	}
	if s.src[s.pos] != r {
		return fmt.Errorf("expected %q, got %q", string(r), string(s.src[s.pos]))
	}
	s.pos++
	return nil
}

// captureBalanced consumes a balanced open...close span starting at the
// current position and returns it including the delimiters.
func (s *scanner) captureBalanced(open, close rune) (string, error) {
	if s.done() || s.src[s.pos] != open {
		return "", fmt.Errorf("expected %q, got %q", string(open), string(s.peek()))
	}
	start := s.pos
	depth := 0
	for !s.done() {
		switch s.src[s.pos] {
		case '"':
			if err := s.skipString(); err != nil {
				return "", err
			}
			continue
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				s.pos++
				return string(s.src[start:s.pos]), nil
			}
		}
		s.pos++
	}
	return "", fmt.Errorf("unbalanced %q", string(open))
}

// skipString consumes a string literal starting at the opening quote.
func (s *scanner) skipString() error {
	s.pos++
	for !s.done() {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '"':
			s.pos++
			return nil
		}
		s.pos++
	}
	return fmt.Errorf("unterminated string")
}

func (s *scanner) readString() (string, error) {
	start := s.pos
	if err := s.skipString(); err != nil {
		return "", err
	}
	return string(s.src[start:s.pos]), nil
}

// readValue reads one argument value: a braced or bracketed payload, a
// string literal, or a bare scalar token.
func (s *scanner) readValue() (string, error) {
	s.skipSpace()
	switch s.peek() {
	case '{':
		return s.captureBalanced('{', '}')
	case '[':
		return s.captureBalanced('[', ']')
	case '"':
		return s.readString()
	}
	start := s.pos
	for !s.done() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r', ',', ')':
			if s.pos == start {
				return "", fmt.Errorf("missing value")
			}
			return string(s.src[start:s.pos]), nil
		}
		s.pos++
	}
	if s.pos == start {
		return "", fmt.Errorf("missing value")
	}
	return string(s.src[start:s.pos]), nil
}
