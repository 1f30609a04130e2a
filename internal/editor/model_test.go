package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/pairing"
	"github.com/zjrosen/strictpair/internal/syntax"
)

// newTestModel builds a model over text where "|" marks the cursor.
func newTestModel(t *testing.T, text string, vim bool) Model {
	t.Helper()
	cursor := buffer.Pos(0, 0)
	lines := strings.Split(text, "\n")
	for row, line := range lines {
		if i := strings.Index(line, "|"); i >= 0 {
			cursor = buffer.Pos(row, buffer.ByteToGraphemeOffset(line, i))
			lines[row] = line[:i] + line[i+1:]
		}
	}
	doc := NewDocument("", strings.Join(lines, "\n"), syntax.NewSexpParser())
	doc.SetCursor(cursor)

	engine, err := pairing.New(pairing.Options{})
	require.NoError(t, err)
	return New(doc, Options{Engine: engine, VimMode: vim, TabWidth: 4})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends one key per character.
func typeText(m Model, text string) Model {
	for _, r := range text {
		msg := keyRunes(string(r))
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		m = send(m, msg)
	}
	return m
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNew_Modes(t *testing.T) {
	assert.Equal(t, ModeNormal, newTestModel(t, "|", true).Mode())
	assert.Equal(t, ModeInsert, newTestModel(t, "|", false).Mode())
}

func TestNew_ClampsNormalCursor(t *testing.T) {
	m := newTestModel(t, "abc|", true)
	assert.Equal(t, buffer.Pos(0, 2), m.Document().Cursor())
}

func TestInsert_TypingStaysBalanced(t *testing.T) {
	m := newTestModel(t, "|", true)
	m = send(m, keyRunes("i"))
	m = typeText(m, `(a "b")`)

	assert.Equal(t, `(a "b")`, m.Document().Text())
	assert.Equal(t, buffer.Pos(0, 7), m.Document().Cursor())
	assert.False(t, m.engine.Pending())
}

func TestInsert_StrayCloserBlocked(t *testing.T) {
	m := newTestModel(t, "foo|", false)
	m = typeText(m, ")")

	assert.Equal(t, "foo", m.Document().Text())
	msg, warning := m.Status()
	assert.True(t, warning)
	assert.Equal(t, "unmatched closer", msg)

	m = typeText(m, "x")
	msg, _ = m.Status()
	assert.Empty(t, msg, "status clears on the next key")
}

func TestNormal_DeleteAtOpener(t *testing.T) {
	m := newTestModel(t, "|(foo bar)", true)
	m = send(m, keyRunes("x"))

	assert.Equal(t, "foo bar", m.Document().Text())
	assert.Equal(t, buffer.Pos(0, 0), m.Document().Cursor())
	assert.False(t, m.engine.Pending(), "paired delete completes within the key")
}

func TestNormal_DeleteBeforeCloser(t *testing.T) {
	m := newTestModel(t, "[a b]|x", true)
	m = send(m, keyRunes("X"))

	assert.Equal(t, "a bx", m.Document().Text())
	assert.Equal(t, buffer.Pos(0, 3), m.Document().Cursor())
}

func TestInsert_BackspaceAfterOpener(t *testing.T) {
	m := newTestModel(t, "(|foo bar)", false)
	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "foo bar", m.Document().Text())
	assert.Equal(t, buffer.Pos(0, 0), m.Document().Cursor())
}

func TestInsert_BackspaceUnmatchedBlocked(t *testing.T) {
	m := newTestModel(t, "(|foo", false)
	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "(foo", m.Document().Text())
	assert.Equal(t, buffer.Pos(0, 1), m.Document().Cursor())
	msg, warning := m.Status()
	assert.True(t, warning)
	assert.Equal(t, pairing.ErrUnmatchedDelimiter.Error(), msg)
}

func TestInsert_ForceBackspaceSkipsEngine(t *testing.T) {
	m := newTestModel(t, "(|foo", false)
	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace, Alt: true})

	assert.Equal(t, "foo", m.Document().Text())
	assert.Equal(t, buffer.Pos(0, 0), m.Document().Cursor())
}

func TestInsert_ForceDeleteSkipsEngine(t *testing.T) {
	m := newTestModel(t, "(foo|)", false)
	m = send(m, tea.KeyMsg{Type: tea.KeyDelete, Alt: true})

	assert.Equal(t, "(foo", m.Document().Text())
}

func TestInsert_EnterAndJoin(t *testing.T) {
	m := newTestModel(t, "(ab|c)", false)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "(ab\nc)", m.Document().Text())
	assert.Equal(t, buffer.Pos(1, 0), m.Document().Cursor())

	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "(abc)", m.Document().Text())
	assert.Equal(t, buffer.Pos(0, 3), m.Document().Cursor())
}

func TestInsert_PasteIsVerbatim(t *testing.T) {
	m := newTestModel(t, "a|", false)
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("(("), Paste: true})

	assert.Equal(t, "a((", m.Document().Text())
	assert.Equal(t, buffer.Pos(0, 3), m.Document().Cursor())
}

func TestInsert_TabAndSpace(t *testing.T) {
	m := newTestModel(t, "|", false)
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, "\t ", m.Document().Text())
}

func TestEscape_ReturnsToNormal(t *testing.T) {
	m := newTestModel(t, "|", true)
	m = send(m, keyRunes("i"))
	m = typeText(m, "ab")
	m = send(m, tea.KeyMsg{Type: tea.KeyEscape})

	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, buffer.Pos(0, 1), m.Document().Cursor())
}

func TestEscape_IgnoredWithoutVimMode(t *testing.T) {
	m := newTestModel(t, "ab|", false)
	m = send(m, tea.KeyMsg{Type: tea.KeyEscape})

	assert.Equal(t, ModeInsert, m.Mode())
	assert.Equal(t, buffer.Pos(0, 2), m.Document().Cursor())
}

func TestSubstitute(t *testing.T) {
	t.Run("delimiter is blocked", func(t *testing.T) {
		m := newTestModel(t, "|(a)", true)
		m = send(m, keyRunes("s"))

		assert.Equal(t, "(a)", m.Document().Text())
		assert.Equal(t, ModeNormal, m.Mode())
		msg, warning := m.Status()
		assert.True(t, warning)
		assert.Equal(t, pairing.ErrSubstituteDelimiter.Error(), msg)
	})

	t.Run("plain character is replaced", func(t *testing.T) {
		m := newTestModel(t, "(|a)", true)
		m = send(m, keyRunes("s"))
		m = typeText(m, "b")

		assert.Equal(t, "(b)", m.Document().Text())
		assert.Equal(t, ModeInsert, m.Mode())
	})
}

func TestNormal_Movement(t *testing.T) {
	m := newTestModel(t, "|  abc\nde", true)

	m = send(m, keyRunes("$"))
	assert.Equal(t, buffer.Pos(0, 4), m.Document().Cursor())
	m = send(m, keyRunes("j"))
	assert.Equal(t, buffer.Pos(1, 1), m.Document().Cursor(), "column clamps to the shorter line")
	m = send(m, keyRunes("k"), keyRunes("0"))
	assert.Equal(t, buffer.Pos(0, 0), m.Document().Cursor())
	m = send(m, keyRunes("l"), keyRunes("h"), keyRunes("h"))
	assert.Equal(t, buffer.Pos(0, 0), m.Document().Cursor())

	m = send(m, keyRunes("I"))
	assert.Equal(t, buffer.Pos(0, 2), m.Document().Cursor())
	assert.Equal(t, ModeInsert, m.Mode())
}

func TestNormal_AppendAndOpen(t *testing.T) {
	m := newTestModel(t, "|ab", true)
	m = send(m, keyRunes("a"))
	assert.Equal(t, buffer.Pos(0, 1), m.Document().Cursor())

	m = send(m, tea.KeyMsg{Type: tea.KeyEscape}, keyRunes("A"))
	assert.Equal(t, buffer.Pos(0, 2), m.Document().Cursor())

	m = send(m, tea.KeyMsg{Type: tea.KeyEscape}, keyRunes("o"))
	assert.Equal(t, "ab\n", m.Document().Text())
	assert.Equal(t, buffer.Pos(1, 0), m.Document().Cursor())
	assert.Equal(t, ModeInsert, m.Mode())
}

func TestMatch_HighlightsPair(t *testing.T) {
	m := newTestModel(t, "|(a [b])", true)
	pair, ok := m.Match()
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(0, 0), pair.Open)
	assert.Equal(t, buffer.Pos(0, 6), pair.Close)

	m = send(m, keyRunes("l"))
	_, ok = m.Match()
	assert.False(t, ok)

	m = send(m, keyRunes("l"), keyRunes("l"))
	pair, ok = m.Match()
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(0, 3), pair.Open)
	assert.Equal(t, buffer.Pos(0, 5), pair.Close)
}

func TestMatch_InsertModeLooksBehind(t *testing.T) {
	m := newTestModel(t, "(a)|", false)
	pair, ok := m.Match()
	require.True(t, ok)
	assert.Equal(t, buffer.Pos(0, 2), pair.Close)
}

func TestView_RendersContentAndStatus(t *testing.T) {
	m := newTestModel(t, "|(a b)", true)
	m = send(m, tea.WindowSizeMsg{Width: 40, Height: 6})

	view := m.View()
	assert.Contains(t, view, cursorOn+"("+cursorOff)

	plain := ansi.Strip(view)
	assert.Contains(t, plain, "1 (a b)")
	assert.Contains(t, plain, "NORMAL")
	assert.Contains(t, plain, "[scratch]")
	assert.Contains(t, plain, "sexp 1:1")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40)
	}
}

func TestView_ScrollsToCursor(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	lines[25] = "|target"
	m := newTestModel(t, strings.Join(lines, "\n"), true)
	m = send(m, tea.WindowSizeMsg{Width: 40, Height: 8})

	plain := ansi.Strip(m.View())
	assert.Contains(t, plain, "26 target")
	assert.NotContains(t, plain, " 1 line")
}

func TestView_HorizontalScroll(t *testing.T) {
	m := newTestModel(t, strings.Repeat("x", 60)+"|y", false)
	m.lineNumbers = false
	m = send(m, tea.WindowSizeMsg{Width: 20, Height: 5})

	first := strings.Split(m.View(), "\n")[0]
	assert.Contains(t, first, "y")
	assert.LessOrEqual(t, ansi.StringWidth(first), 20)
}

func TestSave_WritesAndMarksClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.clj")
	doc, err := LoadDocument(path, syntax.NewSexpParser())
	require.NoError(t, err)
	engine, err := pairing.New(pairing.Options{})
	require.NoError(t, err)

	m := New(doc, Options{Engine: engine})
	m = typeText(m, "(")
	require.True(t, m.Document().Dirty())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	require.NotNil(t, cmd)
	m = send(m, cmd())

	assert.False(t, m.Document().Dirty())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "()", string(data))
	msg, warning := m.Status()
	assert.False(t, warning)
	assert.Equal(t, "wrote a.clj", msg)
}

func TestSave_NoPath(t *testing.T) {
	m := newTestModel(t, "|", false)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = send(next.(Model), cmd())

	msg, warning := m.Status()
	assert.True(t, warning)
	assert.Equal(t, "no file name", msg)
}

func TestFileChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.clj")
	require.NoError(t, os.WriteFile(path, []byte("(a)"), 0o600))
	engine, err := pairing.New(pairing.Options{})
	require.NoError(t, err)

	t.Run("clean buffer reloads", func(t *testing.T) {
		doc, err := LoadDocument(path, syntax.NewSexpParser())
		require.NoError(t, err)
		m := New(doc, Options{Engine: engine, VimMode: true})

		require.NoError(t, os.WriteFile(path, []byte("(b c)"), 0o600))
		m = send(m, FileChangedMsg{})

		assert.Equal(t, "(b c)", m.Document().Text())
		assert.False(t, m.Document().Dirty())
	})

	t.Run("dirty buffer is kept", func(t *testing.T) {
		doc, err := LoadDocument(path, syntax.NewSexpParser())
		require.NoError(t, err)
		m := New(doc, Options{Engine: engine})
		m = typeText(m, "x")

		require.NoError(t, os.WriteFile(path, []byte("(d)"), 0o600))
		m = send(m, FileChangedMsg{})

		assert.Equal(t, "x(b c)", m.Document().Text())
		_, warning := m.Status()
		assert.True(t, warning)
	})
}

func TestFileChanged_ListensAgain(t *testing.T) {
	ch := make(chan struct{}, 1)
	engine, err := pairing.New(pairing.Options{})
	require.NoError(t, err)
	m := New(NewDocument("", "", nil), Options{Engine: engine, Changes: ch})

	cmd := m.Init()
	require.NotNil(t, cmd)
	ch <- struct{}{}
	assert.Equal(t, FileChangedMsg{}, cmd())

	_, cmd = m.Update(FileChangedMsg{})
	assert.NotNil(t, cmd)

	close(ch)
	assert.Nil(t, cmd())
}

func TestNoParser_DeletesAreBlocked(t *testing.T) {
	engine, err := pairing.New(pairing.Options{})
	require.NoError(t, err)
	doc := NewDocument("", "(a)", nil)
	m := New(doc, Options{Engine: engine, VimMode: true})

	m = send(m, keyRunes("x"))
	assert.Equal(t, "(a)", m.Document().Text())
	_, warning := m.Status()
	assert.True(t, warning)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "|", true)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = send(m, keyRunes("i"))
	_, cmd = m.Update(keyRunes("q"))
	assert.Nil(t, cmd, "q is typed in insert mode")
}
