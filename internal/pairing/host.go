package pairing

import (
	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/syntax"
)

// CharReader reads single characters from the host buffer.
type CharReader interface {
	// CharAt returns the character at p. ok is false past the end of the
	// line or outside the buffer.
	CharAt(p buffer.Position) (ch string, ok bool)
}

// Host is the editor the engine plans against and mutates.
type Host interface {
	CharReader

	// SyntaxTree returns a fresh snapshot of the current buffer. A nil tree
	// with a nil error means no parser is attached.
	SyntaxTree() (*syntax.Tree, error)

	// Replace swaps the characters in r for text.
	Replace(r buffer.Range, text string) error

	Cursor() buffer.Position
	SetCursor(p buffer.Position)
}

// Diagnostician is implemented by hosts that can surface blocked gestures to
// the user, e.g. in a status line.
type Diagnostician interface {
	Diagnostic(msg string)
}
