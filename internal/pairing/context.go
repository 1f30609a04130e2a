package pairing

import (
	"strings"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/syntax"
)

// DefaultOpaqueKinds name the node kinds whose contents are free text.
// They cover the s-expression reader and the bundled tree-sitter grammars.
var DefaultOpaqueKinds = []string{
	"string",
	"str_lit",
	"regex_lit",
	"comment",
	"line_comment",
	"block_comment",
	"raw_string_literal",
	"interpreted_string_literal",
	"string_literal",
	"char_literal",
	"rune_literal",
	"template_string",
	"regex",
	"raw_string",
	"heredoc_body",
}

// DefaultCommentKinds name the opaque comment kinds. Typing at the end of
// one stays inside it unless it is a closed block comment.
var DefaultCommentKinds = []string{"comment", "line_comment"}

// OpaqueKinds matches node kinds against a configured list. An entry
// matches the same kind, or a dotted sub-kind of it ("string" matches
// "string.special"). An entry ending in "*" matches any kind with that
// prefix.
type OpaqueKinds struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewOpaqueKinds compiles names. Blank entries are ignored.
func NewOpaqueKinds(names []string) OpaqueKinds {
	k := OpaqueKinds{exact: make(map[string]struct{}, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case name == "" || name == "*":
			continue
		case strings.HasSuffix(name, "*"):
			k.prefixes = append(k.prefixes, strings.TrimSuffix(name, "*"))
		default:
			k.exact[name] = struct{}{}
		}
	}
	return k
}

// Match reports whether kind is opaque.
func (k OpaqueKinds) Match(kind string) bool {
	if _, ok := k.exact[kind]; ok {
		return true
	}
	for base := kind; ; {
		i := strings.LastIndexByte(base, '.')
		if i <= 0 {
			break
		}
		base = base[:i]
		if _, ok := k.exact[base]; ok {
			return true
		}
	}
	for _, p := range k.prefixes {
		if strings.HasPrefix(kind, p) {
			return true
		}
	}
	return false
}

// ContextClassifier decides whether a position is inside an opaque span,
// where delimiters are ordinary text.
type ContextClassifier struct {
	kinds    OpaqueKinds
	comments OpaqueKinds
}

// NewContextClassifier builds a classifier. comments lists the kinds whose
// end position still counts as inside the span, such as line comments.
func NewContextClassifier(kinds, comments OpaqueKinds) *ContextClassifier {
	return &ContextClassifier{kinds: kinds, comments: comments}
}

// IsOpaque reports whether p lies inside an opaque node of tree. The first
// character of a node is outside it, so typing before an opening quote is
// structural. The end of an unclosed comment is inside it, so text typed at
// the end of a line comment stays in the comment. A nil tree is never opaque.
func (c *ContextClassifier) IsOpaque(tree *syntax.Tree, chars PositionResolver, p buffer.Position) bool {
	if tree == nil {
		return false
	}

	if n, ok := tree.NodeAt(p); ok {
		for cur := n; ; {
			if c.kinds.Match(cur.Kind()) {
				if start, _ := cur.Range(); start.Before(p) {
					return true
				}
			}
			parent, ok := cur.Parent()
			if !ok {
				break
			}
			cur = parent
		}
	}

	if p.Col == 0 {
		return false
	}
	n, ok := tree.NodeAt(buffer.Pos(p.Row, p.Col-1))
	if !ok {
		return false
	}
	for cur := n; ; {
		if c.comments.Match(cur.Kind()) && c.kinds.Match(cur.Kind()) {
			if _, end := cur.Range(); end == p && !closedComment(cur, chars) {
				return true
			}
		}
		parent, ok := cur.Parent()
		if !ok {
			return false
		}
		cur = parent
	}
}

// blockComments pair the openers and terminators of comments that close
// themselves. Any other comment runs to the end of its line.
var blockComments = [][2]string{
	{"/*", "*/"},
	{"#|", "|#"},
	{"(*", "*)"},
	{"{-", "-}"},
}

// closedComment reports whether n is a block comment with its terminator,
// as in /* block */. A line comment never closes, whatever its last
// character.
func closedComment(n syntax.Node, chars PositionResolver) bool {
	start, end := n.Range()
	for _, bc := range blockComments {
		open, closer := []rune(bc[0]), []rune(bc[1])
		if !hasRunesAt(chars, start, open) {
			continue
		}
		if end.Col < len(closer) {
			continue
		}
		tail := buffer.Pos(end.Row, end.Col-len(closer))
		if tail.Before(start.Right(len(open))) {
			continue
		}
		if hasRunesAt(chars, tail, closer) {
			return true
		}
	}
	return false
}

// hasRunesAt reports whether the characters from p onward spell want.
func hasRunesAt(chars PositionResolver, p buffer.Position, want []rune) bool {
	for i, r := range want {
		ch, ok := chars.CharacterAt(p.Right(i))
		if !ok || ch != string(r) {
			return false
		}
	}
	return true
}
