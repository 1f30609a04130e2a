// Package syntax provides immutable syntax-tree snapshots for the pairing
// engine and the parsers that build them.
//
// A Tree is an arena of nodes in pre-order; parent links are indices into the
// arena. Trees are never mutated after a parser returns them: callers parse a
// fresh snapshot after every edit instead of patching an old one.
package syntax

import (
	"errors"

	"github.com/zjrosen/strictpair/internal/buffer"
)

var (
	// ErrNoParser is returned when no parser is available for a buffer.
	ErrNoParser = errors.New("no syntax parser available")

	// ErrParse is returned when a parser fails to produce a tree.
	ErrParse = errors.New("parse failed")
)

// KindError is the node kind used for unbalanced or unparsable regions.
const KindError = "ERROR"

const noParent = -1

type nodeData struct {
	kind   string
	start  buffer.Position
	end    buffer.Position
	parent int
}

// Tree is an immutable syntax-tree snapshot.
type Tree struct {
	nodes    []nodeData
	hasError bool
}

// Node is a borrowed handle into a Tree. The zero Node is invalid.
type Node struct {
	tree *Tree
	id   int
}

// Range returns the node's half-open span [start, end).
func (n Node) Range() (start, end buffer.Position) {
	d := n.tree.nodes[n.id]
	return d.start, d.end
}

// Kind returns the node-kind label, e.g. "list_lit" or "comment".
func (n Node) Kind() string {
	return n.tree.nodes[n.id].kind
}

// Parent returns the enclosing node; ok is false at the root.
func (n Node) Parent() (Node, bool) {
	p := n.tree.nodes[n.id].parent
	if p == noParent {
		return Node{}, false
	}
	return Node{tree: n.tree, id: p}, true
}

// Depth returns the number of ancestors of n.
func (n Node) Depth() int {
	depth := 0
	for p := n.tree.nodes[n.id].parent; p != noParent; p = n.tree.nodes[p].parent {
		depth++
	}
	return depth
}

// Root returns the root node. ok is false for an empty tree.
func (t *Tree) Root() (Node, bool) {
	if t == nil || len(t.nodes) == 0 {
		return Node{}, false
	}
	return Node{tree: t, id: 0}, true
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// HasError reports whether the parser recorded any error region.
func (t *Tree) HasError() bool {
	return t != nil && t.hasError
}

// NodeAt returns the deepest non-empty node whose range covers p.
func (t *Tree) NodeAt(p buffer.Position) (Node, bool) {
	if t == nil {
		return Node{}, false
	}
	found := noParent
	// Pre-order: a later covering node is always a descendant of an earlier one.
	for i, d := range t.nodes {
		span := buffer.Range{Start: d.start, End: d.end}
		if !span.IsEmpty() && span.Contains(p) {
			found = i
		}
	}
	if found == noParent {
		return Node{}, false
	}
	return Node{tree: t, id: found}, true
}

// Walk visits every node in pre-order. Returning false stops the walk.
func (t *Tree) Walk(fn func(n Node) bool) {
	if t == nil {
		return
	}
	for i := range t.nodes {
		if !fn(Node{tree: t, id: i}) {
			return
		}
	}
}

// Builder accumulates nodes in pre-order and produces a Tree.
// Parents must be added before their children.
type Builder struct {
	t *Tree
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{t: &Tree{}}
}

// Add appends a node and returns its id. parent is the id returned by an
// earlier Add, or -1 for the root.
func (b *Builder) Add(kind string, start, end buffer.Position, parent int) int {
	b.t.nodes = append(b.t.nodes, nodeData{kind: kind, start: start, end: end, parent: parent})
	if kind == KindError {
		b.t.hasError = true
	}
	return len(b.t.nodes) - 1
}

// SetEnd updates the end of a node added earlier.
func (b *Builder) SetEnd(id int, end buffer.Position) {
	b.t.nodes[id].end = end
}

// SetKind relabels a node added earlier.
func (b *Builder) SetKind(id int, kind string) {
	b.t.nodes[id].kind = kind
	if kind == KindError {
		b.t.hasError = true
	}
}

// MarkError records that the tree contains an error region not represented
// by a node of KindError.
func (b *Builder) MarkError() {
	b.t.hasError = true
}

// Tree returns the built tree. The builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	t := b.t
	b.t = nil
	return t
}
