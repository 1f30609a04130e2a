package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/strictpair/internal/buffer"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	height := m.textHeight()
	last := m.doc.LineCount()
	if height > 0 {
		last = min(last, m.top+height)
	}
	rows := 0
	for row := m.top; row < last; row++ {
		b.WriteString(m.renderGutter(row))
		b.WriteString(m.renderLine(row))
		b.WriteString("\n")
		rows++
	}
	// Fill the rest of the screen so the status line stays at the bottom.
	for ; height > 0 && rows < height; rows++ {
		b.WriteString(gutterStyle.Render("~"))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) activeKeys() help.KeyMap {
	if m.mode == ModeInsert {
		return m.insert
	}
	return m.normal
}

func (m Model) helpView() string {
	return m.help.View(m.activeKeys())
}

// textHeight is the number of buffer rows on screen, or 0 before the first
// window size is known.
func (m Model) textHeight() int {
	if m.height <= 0 {
		return 0
	}
	return max(m.height-1-lipgloss.Height(m.helpView()), 1)
}

// textWidth is the number of cells for line content, or 0 when unknown.
func (m Model) textWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width-m.gutterWidth(), 1)
}

func (m Model) gutterWidth() int {
	if !m.lineNumbers {
		return 0
	}
	return len(fmt.Sprint(m.doc.LineCount())) + 1
}

func (m Model) renderGutter(row int) string {
	if !m.lineNumbers {
		return ""
	}
	return gutterStyle.Render(fmt.Sprintf("%*d ", m.gutterWidth()-1, row+1))
}

// cellWidth returns the display text and width of one grapheme.
func (m Model) cellWidth(g string) (string, int) {
	if g == "\t" {
		return strings.Repeat(" ", m.tabWidth), m.tabWidth
	}
	return g, buffer.DisplayWidth(g)
}

// displayCol converts a grapheme column to a display column.
func (m Model) displayCol(row, col int) int {
	x := 0
	i := 0
	g := uniseg.NewGraphemes(m.doc.Line(row))
	for i < col && g.Next() {
		_, w := m.cellWidth(g.Str())
		x += w
		i++
	}
	return x
}

// renderLine draws one row with the cursor and the matched pair, scrolled
// horizontally by m.left.
func (m Model) renderLine(row int) string {
	var b strings.Builder
	cursor := m.doc.Cursor()

	x, col := 0, 0
	g := uniseg.NewGraphemes(m.doc.Line(row))
	for g.Next() {
		text, w := m.cellWidth(g.Str())
		switch {
		case x >= m.left:
			b.WriteString(m.styleCell(text, buffer.Pos(row, col)))
		case x+w > m.left:
			// Wide character cut by the left edge.
			b.WriteString(strings.Repeat(" ", x+w-m.left))
		}
		x += w
		col++
	}
	if row == cursor.Row && cursor.Col >= col {
		b.WriteString(cursorOn + " " + cursorOff)
	}

	out := b.String()
	if w := m.textWidth(); w > 0 {
		out = ansi.Truncate(out, w, "")
	}
	return out
}

func (m Model) styleCell(text string, p buffer.Position) string {
	if p == m.doc.Cursor() {
		return cursorOn + text + cursorOff
	}
	if m.match != nil && (p == m.match.Open || p == m.match.Close) {
		return matchStyle.Render(text)
	}
	return text
}

func (m Model) renderStatus() string {
	name := "[scratch]"
	if p := m.doc.Path(); p != "" {
		name = filepath.Base(p)
	}
	if m.doc.Dirty() {
		name += " [+]"
	}
	left := modeBadge(m.mode) + statusBarStyle.Render(" "+name)

	msg := ""
	if m.status != "" {
		style := infoStyle
		if m.statusWarn {
			style = warningStyle
		}
		msg = style.Render("  " + m.status)
	}

	c := m.doc.Cursor()
	right := fmt.Sprintf(" %d:%d ", c.Row+1, c.Col+1)
	if lang := m.doc.Language(); lang != "" {
		right = " " + lang + right
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(msg)-lipgloss.Width(right), 1)
	line := left + msg + statusBarStyle.Render(strings.Repeat(" ", gap)) + statusBarStyle.Render(right)
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "")
	}
	return line
}

// scroll keeps the cursor on screen.
func (m *Model) scroll() {
	c := m.doc.Cursor()
	m.top = min(m.top, max(m.doc.LineCount()-1, 0))
	if h := m.textHeight(); h > 0 {
		if c.Row < m.top {
			m.top = c.Row
		}
		if c.Row >= m.top+h {
			m.top = c.Row - h + 1
		}
	}
	if w := m.textWidth(); w > 0 {
		x := m.displayCol(c.Row, c.Col)
		if x < m.left {
			m.left = x
		}
		if x >= m.left+w {
			m.left = x - w + 1
		}
	}
}
