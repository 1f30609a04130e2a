package syntax

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
)

// Parser builds a fresh Tree from buffer lines.
type Parser interface {
	// Parse returns a snapshot of lines. Positions in the tree use grapheme
	// columns of the given lines.
	Parse(ctx context.Context, lines []string) (*Tree, error)

	// Language names the grammar, e.g. "sexp" or "go".
	Language() string
}

// LangSexp is the built-in s-expression reader.
const LangSexp = "sexp"

var treeSitterLanguages = map[string]func() *sitter.Language{
	"go":         golang.GetLanguage,
	"javascript": javascript.GetLanguage,
	"python":     python.GetLanguage,
	"rust":       rust.GetLanguage,
	"bash":       bash.GetLanguage,
}

var extLanguages = map[string]string{
	".clj":   LangSexp,
	".cljs":  LangSexp,
	".cljc":  LangSexp,
	".edn":   LangSexp,
	".lisp":  LangSexp,
	".lsp":   LangSexp,
	".el":    LangSexp,
	".scm":   LangSexp,
	".ss":    LangSexp,
	".rkt":   LangSexp,
	".fnl":   LangSexp,
	".janet": LangSexp,
	".go":    "go",
	".js":    "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".jsx":   "javascript",
	".py":    "python",
	".rs":    "rust",
	".sh":    "bash",
	".bash":  "bash",
}

// Languages returns every language name accepted by ForLanguage.
func Languages() []string {
	names := []string{LangSexp}
	for name := range treeSitterLanguages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForLanguage returns the parser for a language name.
func ForLanguage(name string) (Parser, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == LangSexp {
		return NewSexpParser(), nil
	}
	if lang, ok := treeSitterLanguages[name]; ok {
		return NewTreeSitterParser(name, lang()), nil
	}
	return nil, fmt.Errorf("language %q: %w", name, ErrNoParser)
}

// ForFile picks a parser from the file extension. A non-empty override
// language takes precedence.
func ForFile(path, override string) (Parser, error) {
	if override != "" {
		return ForLanguage(override)
	}
	ext := strings.ToLower(filepath.Ext(path))
	name, ok := extLanguages[ext]
	if !ok {
		return nil, fmt.Errorf("file %q: %w", filepath.Base(path), ErrNoParser)
	}
	return ForLanguage(name)
}
