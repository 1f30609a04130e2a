package pairing

import (
	"context"
	"strings"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/syntax"
)

// tb is satisfied by both *testing.T and *rapid.T.
type tb interface {
	require.TestingT
	Helper()
}

// testHost is a buffer with a fresh s-expression tree per request.
type testHost struct {
	*buffer.Buffer
	parser      syntax.Parser
	diagnostics []string
	parses      int
}

// newTestHost builds a host from text where "|" marks the cursor.
func newTestHost(t tb, text string) *testHost {
	t.Helper()
	cursor := buffer.Pos(0, 0)
	lines := strings.Split(text, "\n")
	found := false
	for row, line := range lines {
		if i := strings.Index(line, "|"); i >= 0 {
			require.False(t, found, "text has more than one cursor")
			cursor = buffer.Pos(row, buffer.ByteToGraphemeOffset(line, i))
			lines[row] = line[:i] + line[i+1:]
			found = true
		}
	}
	require.True(t, found, "text needs a | cursor")

	return newHostAt(lines, cursor)
}

func newHostAt(lines []string, cursor buffer.Position) *testHost {
	b := buffer.FromLines(lines...)
	b.SetCursor(cursor)
	return &testHost{Buffer: b, parser: syntax.NewSexpParser()}
}

func (h *testHost) SyntaxTree() (*syntax.Tree, error) {
	h.parses++
	return h.parser.Parse(context.Background(), h.Lines())
}

func (h *testHost) Diagnostic(msg string) {
	h.diagnostics = append(h.diagnostics, msg)
}

// String renders the buffer with "|" at the cursor.
func (h *testHost) String() string {
	lines := h.Lines()
	c := h.Cursor()
	lines[c.Row] = buffer.InsertAtGrapheme(lines[c.Row], c.Col, "|")
	return strings.Join(lines, "\n")
}

// press runs one gesture the way the editor does: apply, perform the
// default edit for pass-through, then drain follow-ups.
func press(t tb, e *Engine, h *testHost, g Gesture) Action {
	t.Helper()
	handled, a, err := e.Handle(context.Background(), h, g)
	require.NoError(t, err)
	if !handled {
		defaultEdit(t, h, g)
	}
	require.NoError(t, e.Drain(h))
	return a
}

func defaultEdit(t tb, h *testHost, g Gesture) {
	t.Helper()
	c := h.Cursor()
	switch g.Kind {
	case GestureInsert:
		require.NoError(t, h.Replace(buffer.Range{Start: c, End: c}, g.Char))
		h.SetCursor(c.Right(1))
	case GestureDeleteBefore:
		if c.Col > 0 {
			require.NoError(t, h.Replace(buffer.CharRange(buffer.Pos(c.Row, c.Col-1)), ""))
			h.SetCursor(buffer.Pos(c.Row, c.Col-1))
		}
	case GestureDeleteAt:
		if _, ok := h.CharAt(c); ok {
			require.NoError(t, h.Replace(buffer.CharRange(c), ""))
		}
	}
}

func newEngine(t tb, opts Options) *Engine {
	t.Helper()
	e, err := New(opts)
	require.NoError(t, err)
	return e
}
