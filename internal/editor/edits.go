package editor

import (
	"strings"

	"github.com/zjrosen/strictpair/internal/buffer"
)

// Default edits, used when the engine passes a gesture through and for the
// force keys that skip it.

// insertText inserts text at the cursor and moves the cursor after it.
func (m *Model) insertText(text string) {
	c := m.doc.Cursor()
	if err := m.doc.Replace(buffer.Range{Start: c, End: c}, text); err != nil {
		m.setWarning(err.Error())
		return
	}
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		m.doc.SetCursor(c.Right(buffer.GraphemeCount(text)))
		return
	}
	last := lines[len(lines)-1]
	m.doc.SetCursor(buffer.Pos(c.Row+len(lines)-1, buffer.GraphemeCount(last)))
}

// deleteBefore removes the character before the cursor, joining with the
// previous line at column 0.
func (m *Model) deleteBefore() {
	c := m.doc.Cursor()
	var r buffer.Range
	switch {
	case c.Col > 0:
		r = buffer.CharRange(buffer.Pos(c.Row, c.Col-1))
	case c.Row > 0:
		r = buffer.Range{Start: buffer.Pos(c.Row-1, m.doc.LineLen(c.Row-1)), End: c}
	default:
		return
	}
	if err := m.doc.Replace(r, ""); err != nil {
		m.setWarning(err.Error())
		return
	}
	m.doc.SetCursor(r.Start)
}

// deleteAt removes the character under the cursor. In insert mode, at the
// end of a line it joins the next line.
func (m *Model) deleteAt() {
	c := m.doc.Cursor()
	var r buffer.Range
	switch {
	case c.Col < m.doc.LineLen(c.Row):
		r = buffer.CharRange(c)
	case m.mode == ModeInsert && c.Row < m.doc.LineCount()-1:
		r = buffer.Range{Start: c, End: buffer.Pos(c.Row+1, 0)}
	default:
		return
	}
	if err := m.doc.Replace(r, ""); err != nil {
		m.setWarning(err.Error())
		return
	}
	m.doc.SetCursor(c)
}
