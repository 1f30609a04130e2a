package syntax

import (
	"context"
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/zjrosen/strictpair/internal/buffer"
)

// Node kinds produced by SexpParser. They follow the tree-sitter-clojure
// naming so the same opaque-kind configuration works for both sources.
const (
	KindSource   = "source"
	KindList     = "list_lit"
	KindVector   = "vec_lit"
	KindMap      = "map_lit"
	KindSet      = "set_lit"
	KindAnonFn   = "anon_fn_lit"
	KindString   = "str_lit"
	KindRegex    = "regex_lit"
	KindComment  = "comment"
	KindChar     = "char_lit"
	KindSymbol   = "sym_lit"
	KindKeyword  = "kwd_lit"
	KindNumber   = "num_lit"
	KindDispatch = "dispatch"
)

var sexpClosers = map[string]string{"(": ")", "[": "]", "{": "}"}

// SexpParser is a small reader for Lisp-family text: lists, vectors, maps,
// strings, regex literals, character literals and line comments. Unbalanced
// collections become KindError nodes running to the end of the text, and a
// stray closer becomes a one-character KindError node.
type SexpParser struct{}

// NewSexpParser returns the s-expression reader.
func NewSexpParser() *SexpParser {
	return &SexpParser{}
}

// Language implements Parser.
func (p *SexpParser) Language() string {
	return LangSexp
}

// Parse implements Parser.
func (p *SexpParser) Parse(ctx context.Context, lines []string) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", LangSexp, ErrParse, err)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	r := newSexpReader(lines)
	r.read()
	return r.b.Tree(), nil
}

type sexpFrame struct {
	id     int
	closer string
}

type sexpReader struct {
	lines  [][]string
	row    int
	col    int
	b      *Builder
	prefix bool
}

func newSexpReader(lines []string) *sexpReader {
	split := make([][]string, len(lines))
	for i, line := range lines {
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			split[i] = append(split[i], g.Str())
		}
	}
	return &sexpReader{lines: split, b: NewBuilder()}
}

func (r *sexpReader) pos() buffer.Position {
	return buffer.Pos(r.row, r.col)
}

func (r *sexpReader) eofPos() buffer.Position {
	last := len(r.lines) - 1
	return buffer.Pos(last, len(r.lines[last]))
}

func (r *sexpReader) eof() bool {
	return r.row == len(r.lines)-1 && r.col >= len(r.lines[r.row])
}

func (r *sexpReader) atEOL() bool {
	return r.col >= len(r.lines[r.row])
}

func (r *sexpReader) peek() string {
	if r.atEOL() {
		return ""
	}
	return r.lines[r.row][r.col]
}

func (r *sexpReader) peekNext() string {
	if r.col+1 >= len(r.lines[r.row]) {
		return ""
	}
	return r.lines[r.row][r.col+1]
}

func (r *sexpReader) advance() {
	r.col++
}

func (r *sexpReader) nextLine() {
	r.row++
	r.col = 0
}

func (r *sexpReader) read() {
	root := r.b.Add(KindSource, buffer.Pos(0, 0), r.eofPos(), noParent)
	stack := []sexpFrame{{id: root}}

	for !r.eof() {
		if r.atEOL() {
			r.nextLine()
			continue
		}

		parent := stack[len(stack)-1].id
		ch := r.peek()
		prefixed := r.prefix
		r.prefix = false

		switch {
		case isSexpSpace(ch):
			r.advance()

		case ch == ";":
			start := r.pos()
			r.col = len(r.lines[r.row])
			r.b.Add(KindComment, start, r.pos(), parent)

		case sexpClosers[ch] != "":
			id := r.b.Add(collectionKind(ch, prefixed), r.pos(), r.pos(), parent)
			r.advance()
			stack = append(stack, sexpFrame{id: id, closer: sexpClosers[ch]})

		case ch == ")" || ch == "]" || ch == "}":
			top := stack[len(stack)-1]
			start := r.pos()
			r.advance()
			if len(stack) > 1 && top.closer == ch {
				r.b.SetEnd(top.id, r.pos())
				stack = stack[:len(stack)-1]
			} else {
				r.b.Add(KindError, start, r.pos(), parent)
			}

		case ch == `"`:
			kind := KindString
			if prefixed {
				kind = KindRegex
			}
			r.readString(kind, parent)

		case ch == "#" && (r.peekNext() == "{" || r.peekNext() == "(" || r.peekNext() == `"`):
			start := r.pos()
			r.advance()
			r.b.Add(KindDispatch, start, r.pos(), parent)
			r.prefix = true

		case ch == `\`:
			r.readChar(parent)

		default:
			r.readToken(parent)
		}
	}

	for _, f := range stack[1:] {
		r.b.SetEnd(f.id, r.eofPos())
		r.b.SetKind(f.id, KindError)
	}
}

func (r *sexpReader) readString(kind string, parent int) {
	start := r.pos()
	r.advance()
	for {
		if r.eof() {
			r.b.Add(KindError, start, r.pos(), parent)
			return
		}
		if r.atEOL() {
			r.nextLine()
			continue
		}
		switch r.peek() {
		case `\`:
			r.advance()
			if !r.atEOL() {
				r.advance()
			}
		case `"`:
			r.advance()
			r.b.Add(kind, start, r.pos(), parent)
			return
		default:
			r.advance()
		}
	}
}

// readChar reads a character literal: a backslash, one character, and any
// following letters (\newline, \space, A).
func (r *sexpReader) readChar(parent int) {
	start := r.pos()
	r.advance()
	if !r.atEOL() {
		r.advance()
	}
	for !r.atEOL() && isSexpTokenChar(r.peek()) {
		r.advance()
	}
	r.b.Add(KindChar, start, r.pos(), parent)
}

func (r *sexpReader) readToken(parent int) {
	start := r.pos()
	first := r.peek()
	second := r.peekNext()
	for !r.atEOL() && isSexpTokenChar(r.peek()) {
		r.advance()
	}

	kind := KindSymbol
	switch {
	case first == ":":
		kind = KindKeyword
	case isDigit(first), (first == "+" || first == "-") && isDigit(second):
		kind = KindNumber
	}
	r.b.Add(kind, start, r.pos(), parent)
}

func collectionKind(opener string, prefixed bool) string {
	switch opener {
	case "(":
		if prefixed {
			return KindAnonFn
		}
		return KindList
	case "[":
		return KindVector
	default:
		if prefixed {
			return KindSet
		}
		return KindMap
	}
}

func isSexpSpace(ch string) bool {
	return ch == " " || ch == "\t" || ch == "," || ch == "\r"
}

func isSexpTokenChar(ch string) bool {
	switch ch {
	case "(", ")", "[", "]", "{", "}", `"`, ";", `\`:
		return false
	}
	return !isSexpSpace(ch)
}

func isDigit(ch string) bool {
	return len(ch) == 1 && ch[0] >= '0' && ch[0] <= '9'
}
