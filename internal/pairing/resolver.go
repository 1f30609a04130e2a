package pairing

import (
	"fmt"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/syntax"
)

// DelimiterPair holds the positions of two matched delimiters.
// Open is always before Close.
type DelimiterPair struct {
	Open  buffer.Position
	Close buffer.Position
}

func (p DelimiterPair) String() string {
	return fmt.Sprintf("%s..%s", p.Open, p.Close)
}

// PairResolver finds the syntactic partner of a delimiter by walking up the
// syntax tree from the node under it.
type PairResolver struct {
	table *Table
}

// NewPairResolver uses table to decide which characters pair.
func NewPairResolver(table *Table) *PairResolver {
	return &PairResolver{table: table}
}

// Resolve returns the pair whose open or close position is p. The first
// ancestor of the node under p that starts or ends at p, is at least two
// characters long, and is bounded by a matching pair wins. Error-recovery
// nodes and the document root never bound a pair: their edges are not
// delimiters of the same span even when the characters happen to match.
func (r *PairResolver) Resolve(tree *syntax.Tree, chars PositionResolver, p buffer.Position) (DelimiterPair, bool) {
	n, ok := tree.NodeAt(p)
	if !ok {
		return DelimiterPair{}, false
	}

	for cur := n; ; {
		parent, hasParent := cur.Parent()
		if !hasParent {
			return DelimiterPair{}, false
		}
		if pair, ok := r.bounds(cur, chars, p); ok {
			return pair, true
		}
		cur = parent
	}
}

func (r *PairResolver) bounds(n syntax.Node, chars PositionResolver, p buffer.Position) (DelimiterPair, bool) {
	if n.Kind() == syntax.KindError {
		return DelimiterPair{}, false
	}
	start, end := n.Range()
	if end.Col == 0 {
		return DelimiterPair{}, false
	}
	last := buffer.Pos(end.Row, end.Col-1)
	if !start.Before(last) {
		return DelimiterPair{}, false
	}
	if p != start && p != last {
		return DelimiterPair{}, false
	}

	first, ok1 := chars.CharacterAt(start)
	closer, ok2 := chars.CharacterAt(last)
	if !ok1 || !ok2 || !r.table.IsPair(first, closer) {
		return DelimiterPair{}, false
	}
	return DelimiterPair{Open: start, Close: last}, true
}
