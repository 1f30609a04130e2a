package pairing

import (
	"fmt"
	"slices"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/log"
)

type followUp func(h Host) error

// EditScheduler applies planned actions to a host. The primary mutation of
// an action runs immediately; the rest of a paired deletion is queued and
// runs on the next Drain. Hosts call Drain after the gesture handler returns
// and before reading the next input, so the pair is never observed half
// deleted between gestures.
type EditScheduler struct {
	queue []followUp
}

// NewEditScheduler returns a scheduler with an empty queue.
func NewEditScheduler() *EditScheduler {
	return &EditScheduler{}
}

// Pending returns the number of queued follow-ups.
func (s *EditScheduler) Pending() int {
	return len(s.queue)
}

// Apply performs the primary mutation of a. handled is false only for
// PassThrough, in which case the host performs its own edit.
func (s *EditScheduler) Apply(h Host, a Action) (handled bool, err error) {
	switch a.Kind {
	case ActionPassThrough:
		return false, nil

	case ActionBlocked:
		if d, ok := h.(Diagnostician); ok && a.Reason != nil {
			d.Diagnostic(a.Reason.Error())
		}
		return true, nil

	case ActionMoveOver:
		h.SetCursor(h.Cursor().Right(1))
		return true, nil

	case ActionInsertPair:
		origin := h.Cursor()
		if err := h.Replace(buffer.Range{Start: origin, End: origin}, a.Text); err != nil {
			return true, fmt.Errorf("insert pair %q: %w", a.Text, err)
		}
		h.SetCursor(origin.Right(a.CursorOffset))
		return true, nil

	case ActionDeletePair:
		return true, s.applyDelete(h, a)

	default:
		return false, fmt.Errorf("unknown action kind %d", a.Kind)
	}
}

func (s *EditScheduler) applyDelete(h Host, a Action) error {
	if len(a.Deletions) == 0 {
		return nil
	}
	origin := h.Cursor()

	// Greatest position first keeps the remaining positions valid.
	deletions := slices.Clone(a.Deletions)
	slices.SortFunc(deletions, func(x, y buffer.Position) int { return y.Compare(x) })

	if err := h.Replace(buffer.CharRange(deletions[0]), ""); err != nil {
		return fmt.Errorf("delete %s: %w", deletions[0], err)
	}

	rest := deletions[1:]
	s.queue = append(s.queue, func(h Host) error {
		for _, d := range rest {
			if err := h.Replace(buffer.CharRange(d), ""); err != nil {
				return fmt.Errorf("delete %s: %w", d, err)
			}
		}
		h.SetCursor(buffer.Pos(origin.Row, origin.Col+a.CursorAdjust))
		return nil
	})
	return nil
}

// Drain runs queued follow-ups in order. On error the remaining queue is
// discarded, since later edits were planned against text that no longer
// exists.
func (s *EditScheduler) Drain(h Host) error {
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		if err := next(h); err != nil {
			dropped := len(s.queue)
			s.queue = nil
			log.ErrorErr(log.CatPair, "follow-up edit failed", err, "dropped", dropped)
			return err
		}
	}
	s.queue = nil
	return nil
}
