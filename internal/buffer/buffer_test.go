package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SplitsLines(t *testing.T) {
	b := New("(foo\r\n  bar)")

	require.Equal(t, 2, b.LineCount())
	assert.Equal(t, []string{"(foo", "  bar)"}, b.Lines())
	assert.Equal(t, "(foo\n  bar)", b.Text())
}

func TestFromLines_Empty(t *testing.T) {
	b := FromLines()

	require.Equal(t, 1, b.LineCount())
	assert.Equal(t, "", b.Text())
}

func TestCharAt(t *testing.T) {
	b := FromLines("(h😀)", "")

	tests := []struct {
		name string
		pos  Position
		want string
		ok   bool
	}{
		{"first char", Pos(0, 0), "(", true},
		{"emoji is one character", Pos(0, 2), "😀", true},
		{"last char", Pos(0, 3), ")", true},
		{"past line end", Pos(0, 4), "", false},
		{"empty line", Pos(1, 0), "", false},
		{"missing row", Pos(2, 0), "", false},
		{"negative column", Pos(0, -1), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.CharAt(tt.pos)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplace_SingleLine(t *testing.T) {
	b := FromLines("(foo bar)")

	require.NoError(t, b.Replace(Range{Start: Pos(0, 1), End: Pos(0, 4)}, "baz"))
	assert.Equal(t, "(baz bar)", b.Text())
	assert.True(t, b.Dirty())
}

func TestReplace_InsertAtEnd(t *testing.T) {
	b := FromLines("(foo")

	require.NoError(t, b.Replace(Range{Start: Pos(0, 4), End: Pos(0, 4)}, ")"))
	assert.Equal(t, "(foo)", b.Text())
}

func TestReplace_MultiLine(t *testing.T) {
	b := FromLines("(a", "b", "c)")

	require.NoError(t, b.Replace(Range{Start: Pos(0, 1), End: Pos(2, 1)}, "x\ny"))
	assert.Equal(t, []string{"(x", "y)"}, b.Lines())
}

func TestReplace_Graphemes(t *testing.T) {
	b := FromLines("\"😀\"")

	require.NoError(t, b.Replace(CharRange(Pos(0, 1)), ""))
	assert.Equal(t, "\"\"", b.Text())
}

func TestReplace_Errors(t *testing.T) {
	b := FromLines("abc")

	err := b.Replace(Range{Start: Pos(0, 2), End: Pos(0, 1)}, "")
	require.ErrorIs(t, err, ErrInvalidRange)

	err = b.Replace(Range{Start: Pos(0, 0), End: Pos(0, 4)}, "")
	require.ErrorIs(t, err, ErrOutOfBounds)

	err = b.Replace(CharRange(Pos(0, 3)), "")
	require.ErrorIs(t, err, ErrOutOfBounds)

	assert.Equal(t, "abc", b.Text())
	assert.False(t, b.Dirty())
}

func TestSetCursor_Clamps(t *testing.T) {
	b := FromLines("abc", "de")

	b.SetCursor(Pos(5, 9))
	assert.Equal(t, Pos(1, 2), b.Cursor())

	b.SetCursor(Pos(-1, -1))
	assert.Equal(t, Pos(0, 0), b.Cursor())

	b.SetCursor(Pos(0, 3))
	assert.Equal(t, Pos(0, 3), b.Cursor(), "cursor may sit after the last character")
}

func TestReset_KeepsCursorInBounds(t *testing.T) {
	b := FromLines("abcdef", "gh")
	b.SetCursor(Pos(1, 2))

	b.Reset("xy")

	assert.Equal(t, "xy", b.Text())
	assert.Equal(t, Pos(0, 2), b.Cursor())
	assert.False(t, b.Dirty())
}

func TestPosition_Compare(t *testing.T) {
	assert.Equal(t, -1, Pos(0, 5).Compare(Pos(1, 0)))
	assert.Equal(t, 1, Pos(1, 1).Compare(Pos(1, 0)))
	assert.Equal(t, 0, Pos(2, 3).Compare(Pos(2, 3)))
	assert.True(t, Pos(0, 1).Before(Pos(0, 2)))
	assert.True(t, Pos(3, 0).After(Pos(2, 9)))
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: Pos(0, 2), End: Pos(1, 1)}

	assert.True(t, r.Contains(Pos(0, 2)))
	assert.True(t, r.Contains(Pos(0, 50)))
	assert.True(t, r.Contains(Pos(1, 0)))
	assert.False(t, r.Contains(Pos(1, 1)), "end is exclusive")
	assert.False(t, r.Contains(Pos(0, 1)))
	assert.False(t, r.IsEmpty())
	assert.True(t, CharRange(Pos(0, 1)).Contains(Pos(0, 1)))
	assert.True(t, Range{Start: Pos(1, 1), End: Pos(1, 1)}.IsEmpty())
}

func TestGraphemeHelpers(t *testing.T) {
	s := "a😀b"

	assert.Equal(t, 3, GraphemeCount(s))
	assert.Equal(t, "😀", GraphemeAt(s, 1))
	assert.Equal(t, "", GraphemeAt(s, 3))
	assert.Equal(t, 5, GraphemeToByteOffset(s, 2))
	assert.Equal(t, 1, ByteToGraphemeOffset(s, 3), "byte inside a cluster maps to that cluster")
	assert.Equal(t, 3, ByteToGraphemeOffset(s, 100))
	assert.Equal(t, "😀b", SliceByGraphemes(s, 1, 3))
	assert.Equal(t, "a(😀b", InsertAtGrapheme(s, 1, "("))
	assert.Equal(t, 4, DisplayWidth(s))
}
