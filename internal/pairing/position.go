package pairing

import "github.com/zjrosen/strictpair/internal/buffer"

// PositionResolver reads the characters around a cursor.
type PositionResolver struct {
	src CharReader
}

// NewPositionResolver reads from src.
func NewPositionResolver(src CharReader) PositionResolver {
	return PositionResolver{src: src}
}

// CharacterAt returns the character under p. ok is false at or past the end
// of the line.
func (r PositionResolver) CharacterAt(p buffer.Position) (string, bool) {
	if p.Row < 0 || p.Col < 0 {
		return "", false
	}
	return r.src.CharAt(p)
}

// CharacterBefore returns the character immediately left of p and its
// position. ok is false at column 0; backspace there joins lines.
func (r PositionResolver) CharacterBefore(p buffer.Position) (string, buffer.Position, bool) {
	if p.Col <= 0 {
		return "", p, false
	}
	prev := buffer.Pos(p.Row, p.Col-1)
	ch, ok := r.CharacterAt(prev)
	return ch, prev, ok
}
