package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		path     string
		override string
		lang     string
	}{
		{"core.clj", "", LangSexp},
		{"init.EL", "", LangSexp},
		{"main.go", "", "go"},
		{"app.mjs", "", "javascript"},
		{"notes.txt", "sexp", LangSexp},
		{"main.go", "python", "python"},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.override, func(t *testing.T) {
			p, err := ForFile(tt.path, tt.override)
			require.NoError(t, err)
			assert.Equal(t, tt.lang, p.Language())
		})
	}
}

func TestForFile_Unknown(t *testing.T) {
	_, err := ForFile("README.md", "")
	require.ErrorIs(t, err, ErrNoParser)

	_, err = ForLanguage("cobol")
	require.ErrorIs(t, err, ErrNoParser)
}

func TestLanguages(t *testing.T) {
	langs := Languages()

	assert.Contains(t, langs, LangSexp)
	assert.Contains(t, langs, "go")
	assert.IsIncreasing(t, langs)
}
