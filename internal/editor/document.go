package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/log"
	"github.com/zjrosen/strictpair/internal/pairing"
	"github.com/zjrosen/strictpair/internal/syntax"
)

// Document is one file being edited. It is the pairing engine's host: every
// SyntaxTree call parses the current lines from scratch.
type Document struct {
	buf        *buffer.Buffer
	parser     syntax.Parser
	path       string
	diagnostic string
}

var (
	_ pairing.Host          = (*Document)(nil)
	_ pairing.Diagnostician = (*Document)(nil)
)

// NewDocument creates an in-memory document. parser may be nil, in which
// case the engine sees no syntax tree.
func NewDocument(path, text string, parser syntax.Parser) *Document {
	return &Document{
		buf:    buffer.New(text),
		parser: parser,
		path:   path,
	}
}

// LoadDocument reads path. A missing file yields an empty document that is
// created on the first save.
func LoadDocument(path string, parser syntax.Parser) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info(log.CatEditor, "new file", "path", path)
			return NewDocument(path, "", parser), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return NewDocument(path, string(data), parser), nil
}

// Path returns the file path, or "" for a scratch document.
func (d *Document) Path() string { return d.path }

// Language returns the parser language, or "" when none is attached.
func (d *Document) Language() string {
	if d.parser == nil {
		return ""
	}
	return d.parser.Language()
}

// Text returns the full content.
func (d *Document) Text() string { return d.buf.Text() }

// Lines returns a copy of the content lines.
func (d *Document) Lines() []string { return d.buf.Lines() }

func (d *Document) LineCount() int { return d.buf.LineCount() }

func (d *Document) Line(row int) string {
	line, _ := d.buf.Line(row)
	return line
}

func (d *Document) LineLen(row int) int { return d.buf.LineLen(row) }

// Dirty reports unsaved changes.
func (d *Document) Dirty() bool { return d.buf.Dirty() }

// CharAt implements pairing.CharReader.
func (d *Document) CharAt(p buffer.Position) (string, bool) {
	return d.buf.CharAt(p)
}

// SyntaxTree implements pairing.Host.
func (d *Document) SyntaxTree() (*syntax.Tree, error) {
	if d.parser == nil {
		return nil, nil
	}
	tree, err := d.parser.Parse(context.Background(), d.buf.Lines())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", d.path, err)
	}
	return tree, nil
}

// Replace implements pairing.Host.
func (d *Document) Replace(r buffer.Range, text string) error {
	return d.buf.Replace(r, text)
}

// Cursor implements pairing.Host.
func (d *Document) Cursor() buffer.Position { return d.buf.Cursor() }

// SetCursor implements pairing.Host.
func (d *Document) SetCursor(p buffer.Position) { d.buf.SetCursor(p) }

// Diagnostic implements pairing.Diagnostician. The message is shown in the
// status line until the next key.
func (d *Document) Diagnostic(msg string) {
	d.diagnostic = msg
}

// TakeDiagnostic returns and clears the pending diagnostic.
func (d *Document) TakeDiagnostic() string {
	msg := d.diagnostic
	d.diagnostic = ""
	return msg
}

// WriteFile writes text to the document's path, keeping the mode of an
// existing file.
func (d *Document) WriteFile(text string) error {
	if d.path == "" {
		return errors.New("no file name")
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(d.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(d.path, []byte(text), mode); err != nil {
		return fmt.Errorf("writing %s: %w", d.path, err)
	}
	return nil
}

// MarkSaved clears the dirty flag if the content still equals text.
func (d *Document) MarkSaved(text string) {
	if d.buf.Text() == text {
		d.buf.MarkClean()
	}
}

// Reload re-reads the file when there are no unsaved changes. changed is
// false when the disk content matches the buffer.
func (d *Document) Reload() (changed bool, err error) {
	if d.path == "" {
		return false, nil
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		return false, fmt.Errorf("reloading %s: %w", d.path, err)
	}
	text := string(data)
	if text == d.buf.Text() {
		return false, nil
	}
	d.buf.Reset(text)
	return true, nil
}
