// Package replay drives the editor with a key script, without a terminal,
// and reports what the script did to the document.
package replay

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/editor"
	"github.com/zjrosen/strictpair/internal/log"
)

// Report is the outcome of a replay.
type Report struct {
	Path   string
	Before string
	After  string
	Cursor buffer.Position
	Mode   editor.Mode

	// Warnings lists the status-line warnings raised along the way, such
	// as blocked gestures.
	Warnings []string
}

// Changed reports whether the script modified the document.
func (r Report) Changed() bool {
	return r.Before != r.After
}

// Diff returns the unified diff of the document, or "" when unchanged.
func (r Report) Diff() string {
	name := filepath.Base(r.Path)
	if r.Path == "" {
		name = "scratch"
	}
	return UnifiedDiff(name, r.Before, r.After)
}

// Run feeds keys to m one at a time. Commands returned by the model are
// dropped, so saving and quitting have no effect and the file on disk is
// never touched.
func Run(m editor.Model, keys []tea.KeyMsg) Report {
	doc := m.Document()
	r := Report{Path: doc.Path(), Before: doc.Text()}

	for i, k := range keys {
		next, _ := m.Update(k)
		m = next.(editor.Model)

		if msg, warning := m.Status(); warning {
			r.Warnings = append(r.Warnings, fmt.Sprintf("key %d (%s): %s", i+1, k, msg))
			log.Debug(log.CatReplay, "warning", "key", i+1, "msg", msg)
		}
	}

	r.After = m.Document().Text()
	r.Cursor = m.Document().Cursor()
	r.Mode = m.Mode()
	log.Info(log.CatReplay, "replayed", "path", r.Path, "keys", len(keys), "changed", r.Changed())
	return r
}
