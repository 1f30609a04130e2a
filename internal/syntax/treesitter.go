package syntax

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/zjrosen/strictpair/internal/buffer"
)

// TreeSitterParser converts tree-sitter parse trees into Tree snapshots.
// Both named and anonymous nodes are kept, so delimiter tokens such as "("
// appear as one-character children of the node they delimit.
type TreeSitterParser struct {
	name string
	lang *sitter.Language
}

// NewTreeSitterParser wraps a tree-sitter grammar.
func NewTreeSitterParser(name string, lang *sitter.Language) *TreeSitterParser {
	return &TreeSitterParser{name: name, lang: lang}
}

// Language implements Parser.
func (p *TreeSitterParser) Language() string {
	return p.name
}

// Parse implements Parser.
func (p *TreeSitterParser) Parse(ctx context.Context, lines []string) (*Tree, error) {
	if p.lang == nil {
		return nil, fmt.Errorf("%s: %w", p.name, ErrNoParser)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.lang)

	source := []byte(strings.Join(lines, "\n"))
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", p.name, ErrParse, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%s: %w: no tree", p.name, ErrParse)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.IsNull() {
		return nil, fmt.Errorf("%s: %w: no root node", p.name, ErrParse)
	}

	b := NewBuilder()
	convertNode(b, root, noParent, lines)
	return b.Tree(), nil
}

func convertNode(b *Builder, node *sitter.Node, parent int, lines []string) {
	if node == nil || node.IsNull() {
		return
	}

	kind := node.Type()
	if node.IsMissing() {
		// Zero-width placeholder for a token the grammar expected.
		b.MarkError()
	}
	id := b.Add(kind, pointToPosition(node.StartPoint(), lines), pointToPosition(node.EndPoint(), lines), parent)

	for i := 0; i < int(node.ChildCount()); i++ {
		convertNode(b, node.Child(i), id, lines)
	}
}

// pointToPosition converts a tree-sitter byte column to a grapheme column.
func pointToPosition(pt sitter.Point, lines []string) buffer.Position {
	row := int(pt.Row)
	if row >= len(lines) {
		if len(lines) == 0 {
			return buffer.Position{}
		}
		last := len(lines) - 1
		return buffer.Pos(last, buffer.GraphemeCount(lines[last]))
	}
	return buffer.Pos(row, buffer.ByteToGraphemeOffset(lines[row], int(pt.Column)))
}
