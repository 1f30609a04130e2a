package pairing

import (
	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/log"
	"github.com/zjrosen/strictpair/internal/syntax"
)

// DefaultEscape is inserted before a symmetric delimiter typed inside an
// opaque span.
const DefaultEscape = `\`

// ActionPlanner maps a gesture and the buffer around the cursor to an
// Action. It never mutates the host.
type ActionPlanner struct {
	table             *Table
	classifier        *ContextClassifier
	resolver          *PairResolver
	escape            string
	allowOpaqueDelete bool
}

// Plan decides what g does at the host's cursor. The syntax tree is fetched
// once per call and never reused across gestures.
func (p *ActionPlanner) Plan(host Host, g Gesture) Action {
	tree, err := host.SyntaxTree()
	if err != nil {
		log.Debug(log.CatSyntax, "no syntax tree", "error", err)
		tree = nil
	}
	chars := NewPositionResolver(host)
	cursor := host.Cursor()

	switch g.Kind {
	case GestureInsert:
		return p.planInsert(tree, chars, cursor, g.Char)
	case GestureDeleteBefore:
		ch, pos, ok := chars.CharacterBefore(cursor)
		if !ok {
			return PassThrough()
		}
		return p.planDelete(tree, chars, cursor, pos, ch)
	case GestureDeleteAt:
		ch, ok := chars.CharacterAt(cursor)
		if !ok {
			return PassThrough()
		}
		return p.planDelete(tree, chars, cursor, cursor, ch)
	case GestureSubstitute:
		if ch, ok := chars.CharacterAt(cursor); ok && p.table.IsDelimiter(ch) {
			return Blocked(ErrSubstituteDelimiter)
		}
		return PassThrough()
	default:
		return PassThrough()
	}
}

func (p *ActionPlanner) planInsert(tree *syntax.Tree, chars PositionResolver, cursor buffer.Position, ch string) Action {
	if p.table.IsDelimiter(ch) && afterCharPrefix(tree, cursor) {
		return PassThrough()
	}

	switch p.table.Kind(ch) {
	case Opening:
		if p.classifier.IsOpaque(tree, chars, cursor) {
			return PassThrough()
		}
		closer, _ := p.table.Match(ch)
		return InsertPair(ch+closer, 1)

	case Closing:
		if p.classifier.IsOpaque(tree, chars, cursor) {
			return PassThrough()
		}
		if at, ok := chars.CharacterAt(cursor); ok && at == ch {
			return MoveOver()
		}
		return Blocked(ErrUnmatchedCloser)

	case Symmetric:
		if at, ok := chars.CharacterAt(cursor); ok && at == ch {
			return MoveOver()
		}
		if p.classifier.IsOpaque(tree, chars, cursor) {
			text := p.escape + ch
			return InsertPair(text, buffer.GraphemeCount(text))
		}
		return InsertPair(ch+ch, 1)

	default:
		return PassThrough()
	}
}

// afterCharPrefix reports whether cursor directly follows the backslash that
// opens a character literal. The next character typed becomes part of that
// literal.
func afterCharPrefix(tree *syntax.Tree, cursor buffer.Position) bool {
	if cursor.Col == 0 {
		return false
	}
	prev := buffer.Pos(cursor.Row, cursor.Col-1)
	n, ok := tree.NodeAt(prev)
	if !ok || n.Kind() != syntax.KindChar {
		return false
	}
	start, _ := n.Range()
	return start == prev
}

func (p *ActionPlanner) planDelete(tree *syntax.Tree, chars PositionResolver, cursor, pos buffer.Position, ch string) Action {
	if !p.table.IsDelimiter(ch) {
		return PassThrough()
	}

	pair, ok := p.resolver.Resolve(tree, chars, pos)
	if !ok {
		if p.allowOpaqueDelete && p.classifier.IsOpaque(tree, chars, pos) {
			return PassThrough()
		}
		return Blocked(ErrUnmatchedDelimiter)
	}

	deletions := []buffer.Position{pair.Close, pair.Open}
	adjust := 0
	for _, d := range deletions {
		if d.Row == cursor.Row && d.Col < cursor.Col {
			adjust--
		}
	}
	return DeletePair(deletions, adjust)
}
