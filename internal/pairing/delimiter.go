package pairing

import (
	"fmt"

	"github.com/zjrosen/strictpair/internal/buffer"
)

// DelimiterKind classifies a character against a Table.
type DelimiterKind int

const (
	// NotDelimiter is any character outside the table.
	NotDelimiter DelimiterKind = iota
	// Opening starts a span and has a distinct closer, e.g. "(".
	Opening
	// Closing ends a span opened by a distinct opener, e.g. ")".
	Closing
	// Symmetric opens and closes with the same character, e.g. `"`.
	Symmetric
)

func (k DelimiterKind) String() string {
	switch k {
	case Opening:
		return "opening"
	case Closing:
		return "closing"
	case Symmetric:
		return "symmetric"
	default:
		return "none"
	}
}

// DefaultPairs and DefaultSymmetric make up the default delimiter table.
var (
	DefaultPairs     = []string{"()", "[]", "{}"}
	DefaultSymmetric = []string{`"`}
)

// Table is a fixed bijection of opening/closing delimiters plus a set of
// symmetric delimiters. Tables are immutable once built.
type Table struct {
	kinds map[string]DelimiterKind
	match map[string]string
}

// NewTable builds a table. Each entry of pairs is a two-character string
// (opener then closer); each entry of symmetric is a single character.
func NewTable(pairs, symmetric []string) (*Table, error) {
	t := &Table{
		kinds: make(map[string]DelimiterKind),
		match: make(map[string]string),
	}
	add := func(ch string, kind DelimiterKind) error {
		if _, dup := t.kinds[ch]; dup {
			return fmt.Errorf("%w: %q used more than once", ErrInvalidTable, ch)
		}
		t.kinds[ch] = kind
		return nil
	}

	for _, p := range pairs {
		if buffer.GraphemeCount(p) != 2 {
			return nil, fmt.Errorf("%w: pair %q must be exactly two characters", ErrInvalidTable, p)
		}
		open, closer := buffer.GraphemeAt(p, 0), buffer.GraphemeAt(p, 1)
		if open == closer {
			return nil, fmt.Errorf("%w: pair %q uses the same character twice, list it as symmetric", ErrInvalidTable, p)
		}
		if err := add(open, Opening); err != nil {
			return nil, err
		}
		if err := add(closer, Closing); err != nil {
			return nil, err
		}
		t.match[open] = closer
		t.match[closer] = open
	}

	for _, s := range symmetric {
		if buffer.GraphemeCount(s) != 1 {
			return nil, fmt.Errorf("%w: symmetric delimiter %q must be one character", ErrInvalidTable, s)
		}
		if err := add(s, Symmetric); err != nil {
			return nil, err
		}
		t.match[s] = s
	}
	return t, nil
}

// DefaultTable returns the table for DefaultPairs and DefaultSymmetric.
func DefaultTable() *Table {
	t, err := NewTable(DefaultPairs, DefaultSymmetric)
	if err != nil {
		panic(err)
	}
	return t
}

// Kind classifies ch.
func (t *Table) Kind(ch string) DelimiterKind {
	return t.kinds[ch]
}

// IsDelimiter reports whether ch is any kind of delimiter.
func (t *Table) IsDelimiter(ch string) bool {
	return t.kinds[ch] != NotDelimiter
}

// Match returns the counterpart of a delimiter: the closer for an opener,
// the opener for a closer and the character itself for a symmetric one.
func (t *Table) Match(ch string) (string, bool) {
	m, ok := t.match[ch]
	return m, ok
}

// IsPair reports whether first and last bound a span: an opener followed by
// its own closer, or the same symmetric delimiter twice.
func (t *Table) IsPair(first, last string) bool {
	switch t.kinds[first] {
	case Opening:
		return t.match[first] == last
	case Symmetric:
		return first == last
	default:
		return false
	}
}
