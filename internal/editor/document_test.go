package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/syntax"
)

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is empty", func(t *testing.T) {
		doc, err := LoadDocument(filepath.Join(dir, "new.clj"), syntax.NewSexpParser())
		require.NoError(t, err)
		assert.Equal(t, "", doc.Text())
		assert.False(t, doc.Dirty())
		assert.Equal(t, "sexp", doc.Language())
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(dir, "a.clj")
		require.NoError(t, os.WriteFile(path, []byte("(a)\n(b)\n"), 0o600))

		doc, err := LoadDocument(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, doc.LineCount())
		assert.Equal(t, "(b)", doc.Line(1))
		assert.Equal(t, "", doc.Language())
	})

	t.Run("directory is an error", func(t *testing.T) {
		_, err := LoadDocument(dir, nil)
		require.Error(t, err)
	})
}

func TestDocument_SyntaxTree(t *testing.T) {
	doc := NewDocument("", "(a)", nil)
	tree, err := doc.SyntaxTree()
	require.NoError(t, err)
	assert.Nil(t, tree)

	doc = NewDocument("", "(a \"b\")", syntax.NewSexpParser())
	tree, err = doc.SyntaxTree()
	require.NoError(t, err)
	n, ok := tree.NodeAt(buffer.Pos(0, 4))
	require.True(t, ok)
	assert.Equal(t, syntax.KindString, n.Kind())
}

func TestDocument_Diagnostic(t *testing.T) {
	doc := NewDocument("", "", nil)
	doc.Diagnostic("unmatched closer")

	assert.Equal(t, "unmatched closer", doc.TakeDiagnostic())
	assert.Empty(t, doc.TakeDiagnostic())
}

func TestDocument_WriteFileKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sh")
	require.NoError(t, os.WriteFile(path, []byte("echo"), 0o700))

	doc, err := LoadDocument(path, nil)
	require.NoError(t, err)
	require.NoError(t, doc.Replace(buffer.Range{Start: buffer.Pos(0, 4), End: buffer.Pos(0, 4)}, " hi"))
	require.NoError(t, doc.WriteFile(doc.Text()))
	doc.MarkSaved(doc.Text())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	assert.False(t, doc.Dirty())
}

func TestDocument_MarkSavedIgnoresStaleText(t *testing.T) {
	doc := NewDocument("", "a", nil)
	require.NoError(t, doc.Replace(buffer.CharRange(buffer.Pos(0, 0)), "b"))

	doc.MarkSaved("a")
	assert.True(t, doc.Dirty())
}

func TestDocument_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.clj")
	require.NoError(t, os.WriteFile(path, []byte("(a)"), 0o600))
	doc, err := LoadDocument(path, nil)
	require.NoError(t, err)
	doc.SetCursor(buffer.Pos(0, 2))

	changed, err := doc.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(path, []byte("(b)"), 0o600))
	changed, err = doc.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "(b)", doc.Text())
	assert.Equal(t, buffer.Pos(0, 2), doc.Cursor())

	require.NoError(t, os.Remove(path))
	_, err = doc.Reload()
	require.Error(t, err)
}
