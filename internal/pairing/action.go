package pairing

import (
	"fmt"
	"strings"

	"github.com/zjrosen/strictpair/internal/buffer"
)

// GestureKind is the kind of user edit being intercepted.
type GestureKind int

const (
	// GestureInsert types a single character.
	GestureInsert GestureKind = iota
	// GestureDeleteBefore deletes the character left of the cursor (backspace).
	GestureDeleteBefore
	// GestureDeleteAt deletes the character under the cursor (delete, x).
	GestureDeleteAt
	// GestureSubstitute replaces the character under the cursor (s).
	GestureSubstitute
)

func (k GestureKind) String() string {
	switch k {
	case GestureInsert:
		return "insert"
	case GestureDeleteBefore:
		return "delete-before"
	case GestureDeleteAt:
		return "delete-at"
	case GestureSubstitute:
		return "substitute"
	default:
		return "unknown"
	}
}

// Gesture is one intercepted edit. Char is only set for GestureInsert.
type Gesture struct {
	Kind GestureKind
	Char string
}

// Insert returns the gesture for typing ch.
func Insert(ch string) Gesture { return Gesture{Kind: GestureInsert, Char: ch} }

// DeleteBefore returns the backspace gesture.
func DeleteBefore() Gesture { return Gesture{Kind: GestureDeleteBefore} }

// DeleteAt returns the forward-delete gesture.
func DeleteAt() Gesture { return Gesture{Kind: GestureDeleteAt} }

// Substitute returns the substitute gesture.
func Substitute() Gesture { return Gesture{Kind: GestureSubstitute} }

func (g Gesture) String() string {
	if g.Kind == GestureInsert {
		return fmt.Sprintf("%s %q", g.Kind, g.Char)
	}
	return g.Kind.String()
}

// ActionKind is the decision taken for a gesture.
type ActionKind int

const (
	// ActionPassThrough lets the host perform its default edit.
	ActionPassThrough ActionKind = iota
	// ActionInsertPair inserts Text and moves the cursor CursorOffset
	// characters right of where it was.
	ActionInsertPair
	// ActionMoveOver moves the cursor one character right without editing.
	ActionMoveOver
	// ActionDeletePair deletes the single characters at Deletions, in order,
	// then shifts the cursor column by CursorAdjust.
	ActionDeletePair
	// ActionBlocked consumes the gesture without editing. Reason says why.
	ActionBlocked
)

func (k ActionKind) String() string {
	switch k {
	case ActionPassThrough:
		return "pass-through"
	case ActionInsertPair:
		return "insert-pair"
	case ActionMoveOver:
		return "move-over"
	case ActionDeletePair:
		return "delete-pair"
	case ActionBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Action is the planned outcome of a gesture. Plans are pure values; the
// Scheduler turns them into buffer mutations.
type Action struct {
	Kind ActionKind

	Text         string
	CursorOffset int

	Deletions    []buffer.Position
	CursorAdjust int

	Reason error
}

// PassThrough returns an action that defers to the host.
func PassThrough() Action { return Action{Kind: ActionPassThrough} }

// MoveOver returns an action that steps over an existing closer.
func MoveOver() Action { return Action{Kind: ActionMoveOver} }

// InsertPair returns an action inserting text with the cursor placed
// offset characters into it.
func InsertPair(text string, offset int) Action {
	return Action{Kind: ActionInsertPair, Text: text, CursorOffset: offset}
}

// DeletePair returns an action deleting both delimiters of a pair.
// Deletions must be ordered greatest position first.
func DeletePair(deletions []buffer.Position, adjust int) Action {
	return Action{Kind: ActionDeletePair, Deletions: deletions, CursorAdjust: adjust}
}

// Blocked returns an action that refuses the gesture.
func Blocked(reason error) Action { return Action{Kind: ActionBlocked, Reason: reason} }

// Consumes reports whether the host must skip its default edit.
func (a Action) Consumes() bool {
	return a.Kind != ActionPassThrough
}

func (a Action) String() string {
	switch a.Kind {
	case ActionInsertPair:
		return fmt.Sprintf("%s %q cursor+%d", a.Kind, a.Text, a.CursorOffset)
	case ActionDeletePair:
		parts := make([]string, len(a.Deletions))
		for i, d := range a.Deletions {
			parts[i] = d.String()
		}
		return fmt.Sprintf("%s %s cursor%+d", a.Kind, strings.Join(parts, ","), a.CursorAdjust)
	case ActionBlocked:
		return fmt.Sprintf("%s: %v", a.Kind, a.Reason)
	default:
		return a.Kind.String()
	}
}
