package buffer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRange is returned when a range's start comes after its end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOutOfBounds is returned when a position does not exist in the buffer.
	ErrOutOfBounds = errors.New("position out of bounds")
)

// Buffer holds lines of text and a cursor.
// A buffer always has at least one (possibly empty) line.
type Buffer struct {
	lines  []string
	cursor Position
	dirty  bool
}

// New creates a buffer from text. Lines are split on "\n"; "\r\n" is
// normalized to "\n".
func New(text string) *Buffer {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Buffer{lines: strings.Split(text, "\n")}
}

// FromLines creates a buffer holding a copy of lines.
func FromLines(lines ...string) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Buffer{lines: append([]string(nil), lines...)}
}

// Text returns the full content joined with "\n".
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of the buffer lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of row.
func (b *Buffer) Line(row int) (string, bool) {
	if row < 0 || row >= len(b.lines) {
		return "", false
	}
	return b.lines[row], true
}

// LineLen returns the grapheme count of row, or 0 if the row does not exist.
func (b *Buffer) LineLen(row int) int {
	line, ok := b.Line(row)
	if !ok {
		return 0
	}
	return GraphemeCount(line)
}

// CharAt returns the grapheme at p. ok is false for a missing row, an empty
// line, or a column at or past the line end.
func (b *Buffer) CharAt(p Position) (string, bool) {
	line, ok := b.Line(p.Row)
	if !ok || p.Col < 0 {
		return "", false
	}
	ch := GraphemeAt(line, p.Col)
	return ch, ch != ""
}

// Replace substitutes the text in r with text. text may contain newlines.
// The cursor is not moved; callers own cursor placement.
func (b *Buffer) Replace(r Range, text string) error {
	if !r.IsValid() {
		return fmt.Errorf("replace %s: %w", r, ErrInvalidRange)
	}
	if err := b.checkPosition(r.Start); err != nil {
		return fmt.Errorf("replace %s: %w", r, err)
	}
	if err := b.checkPosition(r.End); err != nil {
		return fmt.Errorf("replace %s: %w", r, err)
	}

	first := b.lines[r.Start.Row]
	last := b.lines[r.End.Row]
	head := SliceByGraphemes(first, 0, r.Start.Col)
	tail := last[GraphemeToByteOffset(last, r.End.Col):]

	inserted := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	inserted[0] = head + inserted[0]
	inserted[len(inserted)-1] += tail

	newLines := make([]string, 0, len(b.lines)-(r.End.Row-r.Start.Row)+len(inserted)-1)
	newLines = append(newLines, b.lines[:r.Start.Row]...)
	newLines = append(newLines, inserted...)
	newLines = append(newLines, b.lines[r.End.Row+1:]...)
	b.lines = newLines
	b.dirty = true
	return nil
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Position {
	return b.cursor
}

// SetCursor moves the cursor, clamping it to an existing row and to a column
// between 0 and the line length (the cursor may sit after the last character).
func (b *Buffer) SetCursor(p Position) {
	p.Row = max(min(p.Row, len(b.lines)-1), 0)
	p.Col = max(min(p.Col, b.LineLen(p.Row)), 0)
	b.cursor = p
}

// Dirty reports whether the buffer changed since it was created or last
// marked clean.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// MarkClean clears the dirty flag, typically after a save.
func (b *Buffer) MarkClean() {
	b.dirty = false
}

// Reset replaces the whole content and clamps the cursor.
func (b *Buffer) Reset(text string) {
	cursor := b.cursor
	*b = *New(text)
	b.SetCursor(cursor)
}

func (b *Buffer) checkPosition(p Position) error {
	if p.Row < 0 || p.Row >= len(b.lines) || p.Col < 0 {
		return ErrOutOfBounds
	}
	if p.Col > GraphemeCount(b.lines[p.Row]) {
		return ErrOutOfBounds
	}
	return nil
}
