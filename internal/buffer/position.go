// Package buffer provides line-based text storage addressed by grapheme
// positions, plus the Position and Range types shared by the syntax and
// pairing packages.
//
// Columns are grapheme indices (the nth user-visible character on a line),
// never byte offsets. Use the helpers in grapheme.go to convert.
package buffer

import "fmt"

// Position is a zero-based (row, column) location in a buffer.
// Col counts grapheme clusters from the start of the line.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Right returns the position n characters to the right on the same row.
func (p Position) Right(n int) Position {
	return Position{Row: p.Row, Col: p.Col + n}
}

// Range is a half-open span of positions: [Start, End).
type Range struct {
	Start Position
	End   Position
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start does not come after End.
func (r Range) IsValid() bool {
	return !r.Start.After(r.End)
}

// Contains reports whether p lies inside the range.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// CharRange returns the one-character range starting at p.
func CharRange(p Position) Range {
	return Range{Start: p, End: p.Right(1)}
}
