// Package editor is a small modal terminal editor that hosts the pairing
// engine. Structural keys become gestures; everything else is plain editing.
package editor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/keys"
	"github.com/zjrosen/strictpair/internal/log"
	"github.com/zjrosen/strictpair/internal/pairing"
)

// Options configures a Model.
type Options struct {
	// Engine plans every structural gesture. Required.
	Engine *pairing.Engine

	// VimMode starts in normal mode. Without it the editor stays in insert
	// mode and escape does nothing.
	VimMode bool

	TabWidth        int
	ShowLineNumbers bool

	// Changes receives a signal whenever the file changes on disk.
	Changes <-chan struct{}
}

// FileChangedMsg reports that the document's file changed on disk.
type FileChangedMsg struct{}

type savedMsg struct{ text string }

type saveErrMsg struct{ err error }

// Model is the bubbletea model for one document.
type Model struct {
	doc    *Document
	engine *pairing.Engine
	normal keys.NormalKeyMap
	insert keys.InsertKeyMap
	help   help.Model

	mode        Mode
	vimMode     bool
	tabWidth    int
	lineNumbers bool

	width  int
	height int
	top    int // first visible row
	left   int // first visible display column

	status     string
	statusWarn bool
	match      *pairing.DelimiterPair

	changes <-chan struct{}
}

// New creates a model editing doc.
func New(doc *Document, opts Options) Model {
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}
	m := Model{
		doc:         doc,
		engine:      opts.Engine,
		normal:      keys.DefaultNormalKeyMap(),
		insert:      keys.DefaultInsertKeyMap(),
		help:        help.New(),
		mode:        ModeNormal,
		vimMode:     opts.VimMode,
		tabWidth:    tabWidth,
		lineNumbers: opts.ShowLineNumbers,
		changes:     opts.Changes,
	}
	if !opts.VimMode {
		m.mode = ModeInsert
	}
	m.clampCursor()
	m.updateMatch()
	return m
}

// Document returns the edited document.
func (m Model) Document() *Document { return m.doc }

// Mode returns the current editing mode.
func (m Model) Mode() Mode { return m.mode }

// Status returns the status-line message and whether it is a warning.
func (m Model) Status() (msg string, warning bool) { return m.status, m.statusWarn }

// Match returns the highlighted delimiter pair, if any.
func (m Model) Match() (pairing.DelimiterPair, bool) {
	if m.match == nil {
		return pairing.DelimiterPair{}, false
	}
	return *m.match, true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.listen()
}

// listen waits for the next file change signal.
func (m Model) listen() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return FileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FileChangedMsg:
		m.handleFileChanged()
		return m, m.listen()

	case savedMsg:
		m.doc.MarkSaved(msg.text)
		m.setInfo(fmt.Sprintf("wrote %s", filepath.Base(m.doc.Path())))
		log.Info(log.CatEditor, "saved", "path", m.doc.Path())
		return m, nil

	case saveErrMsg:
		m.setWarning(msg.err.Error())
		log.ErrorErr(log.CatEditor, "save failed", msg.err, "path", m.doc.Path())
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.statusWarn = "", false

	var cmd tea.Cmd
	if m.mode == ModeInsert {
		cmd = m.handleInsertKey(msg)
	} else {
		cmd = m.handleNormalKey(msg)
	}

	// Follow-up edits from this key run before the next key is read.
	if err := m.engine.Drain(m.doc); err != nil {
		m.setWarning(err.Error())
	}
	if d := m.doc.TakeDiagnostic(); d != "" {
		m.setWarning(d)
	}

	m.clampCursor()
	m.updateMatch()
	m.scroll()
	return m, cmd
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	k := m.normal
	c := m.doc.Cursor()

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Save):
		return m.save()
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, k.Left):
		m.doc.SetCursor(buffer.Pos(c.Row, max(c.Col-1, 0)))
	case key.Matches(msg, k.Right):
		m.doc.SetCursor(c.Right(1))
	case key.Matches(msg, k.Up):
		m.doc.SetCursor(buffer.Pos(c.Row-1, c.Col))
	case key.Matches(msg, k.Down):
		m.doc.SetCursor(buffer.Pos(c.Row+1, c.Col))
	case key.Matches(msg, k.LineStart):
		m.doc.SetCursor(buffer.Pos(c.Row, 0))
	case key.Matches(msg, k.LineEnd):
		m.doc.SetCursor(buffer.Pos(c.Row, m.doc.LineLen(c.Row)))

	case key.Matches(msg, k.Insert):
		m.setMode(ModeInsert)
	case key.Matches(msg, k.Append):
		if m.doc.LineLen(c.Row) > 0 {
			m.doc.SetCursor(c.Right(1))
		}
		m.setMode(ModeInsert)
	case key.Matches(msg, k.AppendLine):
		m.doc.SetCursor(buffer.Pos(c.Row, m.doc.LineLen(c.Row)))
		m.setMode(ModeInsert)
	case key.Matches(msg, k.InsertLine):
		m.doc.SetCursor(buffer.Pos(c.Row, firstNonBlank(m.doc.Line(c.Row))))
		m.setMode(ModeInsert)
	case key.Matches(msg, k.OpenBelow):
		m.doc.SetCursor(buffer.Pos(c.Row, m.doc.LineLen(c.Row)))
		m.insertText("\n")
		m.setMode(ModeInsert)

	case key.Matches(msg, k.DeleteAt):
		if !m.gesture(pairing.DeleteAt()) {
			m.deleteAt()
		}
	case key.Matches(msg, k.DeleteBefore):
		if c.Col > 0 && !m.gesture(pairing.DeleteBefore()) {
			m.deleteBefore()
		}
	case key.Matches(msg, k.Substitute):
		handled, a := m.handle(pairing.Substitute())
		if a.Kind == pairing.ActionBlocked {
			break
		}
		if !handled {
			m.deleteAt()
		}
		m.setMode(ModeInsert)
	}
	return nil
}

func (m *Model) handleInsertKey(msg tea.KeyMsg) tea.Cmd {
	k := m.insert
	c := m.doc.Cursor()

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Save):
		return m.save()
	case key.Matches(msg, k.Escape):
		if m.vimMode {
			m.setMode(ModeNormal)
			m.doc.SetCursor(buffer.Pos(c.Row, max(c.Col-1, 0)))
		}

	case key.Matches(msg, k.Left):
		m.doc.SetCursor(buffer.Pos(c.Row, max(c.Col-1, 0)))
	case key.Matches(msg, k.Right):
		m.doc.SetCursor(c.Right(1))
	case key.Matches(msg, k.Up):
		m.doc.SetCursor(buffer.Pos(c.Row-1, c.Col))
	case key.Matches(msg, k.Down):
		m.doc.SetCursor(buffer.Pos(c.Row+1, c.Col))

	case key.Matches(msg, k.ForceBackspace):
		m.deleteBefore()
	case key.Matches(msg, k.ForceDelete):
		m.deleteAt()
	case key.Matches(msg, k.Backspace):
		if !m.gesture(pairing.DeleteBefore()) {
			m.deleteBefore()
		}
	case key.Matches(msg, k.Delete):
		if !m.gesture(pairing.DeleteAt()) {
			m.deleteAt()
		}
	case key.Matches(msg, k.Enter):
		m.insertText("\n")

	default:
		m.typeKey(msg)
	}
	return nil
}

// typeKey inserts the text of a printable key. A single character goes
// through the engine; pasted text is inserted verbatim.
func (m *Model) typeKey(msg tea.KeyMsg) {
	if msg.Alt {
		return
	}
	var text string
	switch msg.Type {
	case tea.KeySpace:
		text = " "
	case tea.KeyTab:
		text = "\t"
	case tea.KeyRunes:
		text = string(msg.Runes)
	default:
		return
	}

	if msg.Paste || buffer.GraphemeCount(text) != 1 {
		m.insertText(text)
		return
	}
	if !m.gesture(pairing.Insert(text)) {
		m.insertText(text)
	}
}

// gesture runs g through the engine and reports whether it was consumed.
// When it was not, the caller performs the default edit.
func (m *Model) gesture(g pairing.Gesture) bool {
	handled, _ := m.handle(g)
	return handled
}

func (m *Model) handle(g pairing.Gesture) (bool, pairing.Action) {
	handled, a, err := m.engine.Handle(context.Background(), m.doc, g)
	if err != nil {
		m.setWarning(err.Error())
	}
	return handled, a
}

func (m *Model) setMode(mode Mode) {
	if m.mode != mode {
		log.Debug(log.CatEditor, "mode", "from", m.mode, "to", mode)
	}
	m.mode = mode
}

func (m *Model) setWarning(msg string) {
	m.status, m.statusWarn = msg, true
}

func (m *Model) setInfo(msg string) {
	m.status, m.statusWarn = msg, false
}

func (m *Model) save() tea.Cmd {
	doc := m.doc
	text := doc.Text()
	return func() tea.Msg {
		if err := doc.WriteFile(text); err != nil {
			return saveErrMsg{err: err}
		}
		return savedMsg{text: text}
	}
}

func (m *Model) handleFileChanged() {
	if m.doc.Dirty() {
		m.setWarning("file changed on disk; keeping unsaved changes")
		log.Warn(log.CatEditor, "external change ignored", "path", m.doc.Path())
		return
	}
	changed, err := m.doc.Reload()
	if err != nil {
		m.setWarning(err.Error())
		log.ErrorErr(log.CatEditor, "reload failed", err, "path", m.doc.Path())
		return
	}
	if changed {
		m.setInfo("reloaded from disk")
		log.Info(log.CatEditor, "reloaded", "path", m.doc.Path())
	}
	m.clampCursor()
	m.updateMatch()
	m.scroll()
}

// clampCursor keeps the normal-mode cursor on a character.
func (m *Model) clampCursor() {
	if m.mode != ModeNormal {
		return
	}
	c := m.doc.Cursor()
	if n := m.doc.LineLen(c.Row); c.Col >= n {
		m.doc.SetCursor(buffer.Pos(c.Row, max(n-1, 0)))
	}
}

// updateMatch highlights the pair of the delimiter under the cursor, or in
// insert mode the one just before it.
func (m *Model) updateMatch() {
	m.match = nil
	if m.engine == nil {
		return
	}
	c := m.doc.Cursor()
	candidates := []buffer.Position{c}
	if m.mode == ModeInsert && c.Col > 0 {
		candidates = append(candidates, buffer.Pos(c.Row, c.Col-1))
	}
	table := m.engine.Table()
	for _, p := range candidates {
		ch, ok := m.doc.CharAt(p)
		if !ok || !table.IsDelimiter(ch) {
			continue
		}
		if pair, ok := m.engine.ResolvePair(m.doc, p); ok {
			m.match = &pair
			return
		}
	}
}

func firstNonBlank(line string) int {
	col := 0
	for i := range buffer.GraphemeCount(line) {
		ch := buffer.GraphemeAt(line, i)
		if ch != " " && ch != "\t" {
			return i
		}
		col = i + 1
	}
	return col
}
