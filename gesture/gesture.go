// Package gesture turns streams of pointer events into recognized
// gestures.
package gesture

/*
   Gesture disambiguation uses multiple arenas, one per pointer down
   event. Each recognizer can only be in a single arena, and remains in
   its arena until the arena has been resolved. Recognizers that aren't
   in an arena yet are added to the newest arena. Only the oldest arena
   can be swept, the other arenas have to wait their turn. All
   recognizers are active participants: a decision is only reached once
   every member has declared victory or defeat. Multiple recognizers can
   declare victory, and the one whose gesture consists of the most
   pointer down events wins.

   This is unlike the single-arena model, where recognizers divide into
   passive ones that can only win by being the last one standing and
   active ones that win by choice, and where a single tap recognizer
   cannot coexist with a double tap recognizer without one of them
   misfiring on down->up->down->move sequences.

   Invariants that make the multi-arena model work:

   - A recognizer mustn't exist in two arenas at once. Otherwise, 3 taps
     would fire two double taps.

   - An arena of size 1 mustn't resolve immediately while previous
     arenas exist. Otherwise, down->up->down would immediately resolve a
     drag in the second arena.

   - When processing arenas, arena existence changes must be visible
     within the same frame. That is, down->up->down->move should
     immediately resolve to a single tap and a drag.
*/

import (
	"github.com/flickui/flick/debug"
	"github.com/flickui/flick/f32"
	"github.com/flickui/flick/io/pointer"
)

type Recognizer interface {
	ArenaMember
	HandlePointerEvent(ev pointer.Event)
}

type ArenaMember interface {
	AcceptedGesture()
	RejectedGesture()
}

type Arena struct {
	members []arenaMember
	pending int
	downs   int
}

type arenaMember struct {
	member   ArenaMember
	win      int
	lost     bool
	rejected bool
}

// ArenaManager tracks all live arenas. The event loop forwards every
// pointer event to HandlePointerEvent before dispatching it to
// recognizers, and calls Sweep afterwards.
type ArenaManager struct {
	arenas []*Arena
}

func (am *ArenaManager) HandlePointerEvent(ev pointer.Event) {
	if ev.Kind == pointer.Press {
		for _, a := range am.arenas {
			a.downs++
		}
		am.grow()
	}
}

// Sweep resolves arenas from the oldest forward, stopping at the first
// arena that still has undecided members.
func (am *ArenaManager) Sweep() {
	swept := 0
	for swept < len(am.arenas) && am.arenas[swept].Sweep() {
		swept++
	}
	// Rotate the swept arenas behind the live ones so that grow can
	// reuse them.
	for i := 0; i < swept; i++ {
		first := am.arenas[0]
		copy(am.arenas, am.arenas[1:])
		am.arenas[len(am.arenas)-1] = first
	}
	am.arenas = am.arenas[:len(am.arenas)-swept]
}

func (am *ArenaManager) grow() {
	// Reuse an arena recycled by Sweep if there is one.
	if n := len(am.arenas); cap(am.arenas) > n && am.arenas[:n+1][n] != nil {
		am.arenas = am.arenas[:n+1]
	} else {
		am.arenas = append(am.arenas, &Arena{})
	}
}

// Add puts m into the newest arena and returns it.
func (am *ArenaManager) Add(m ArenaMember) *Arena {
	if len(am.arenas) == 0 {
		am.grow()
	}
	a := am.arenas[len(am.arenas)-1]
	a.Add(m)
	return a
}

// Win declares victory for m. The win is weighted by the number of
// pointer downs the arena has seen since m joined, so that longer
// gestures beat their prefixes.
func (a *Arena) Win(m ArenaMember) {
	for i := range a.members {
		om := &a.members[i]
		if om.member == m {
			debug.Assert(om.win == 0)
			om.win = a.downs
			a.pending--
			break
		}
	}
}

func (a *Arena) Lose(m ArenaMember) {
	debug.Assert(len(a.members) != 0)
	for i := range a.members {
		om := &a.members[i]
		if om.member == m {
			debug.Assert(!om.lost)
			om.lost = true
			a.pending--
			m.RejectedGesture()
			om.rejected = true
			break
		}
	}
}

func (a *Arena) Add(m ArenaMember) {
	a.members = append(a.members, arenaMember{member: m})
	a.pending++
}

// Sweep resolves the arena if all members have declared victory or
// defeat. It reports whether the arena is done.
func (a *Arena) Sweep() bool {
	debug.Assert(a.pending >= 0)
	if a.pending != 0 {
		return false
	}
	if len(a.members) == 0 {
		a.reset()
		return true
	}

	var winner *arenaMember
	for i := range a.members {
		m := &a.members[i]
		if m.lost {
			continue
		}
		if winner == nil || m.win > winner.win {
			winner = m
		}
	}
	if winner != nil {
		winner.member.AcceptedGesture()
	}
	for i := range a.members {
		m := &a.members[i]
		if m == winner || m.rejected {
			continue
		}
		m.member.RejectedGesture()
	}

	a.reset()
	return true
}

func (a *Arena) reset() {
	a.downs = 0
	a.pending = 0
	clear(a.members)
	a.members = a.members[:0]
}

type TapRecognizer struct {
	// XXX allow configuring which buttons are allowed
	Manager *ArenaManager

	OnTapStart  func(ev pointer.Event)
	OnTap       func(ev pointer.Event)
	OnTapCancel func(ev pointer.Event)

	arena   *Arena
	start   pointer.Event
	active  bool
	waiting bool
}

func (tap *TapRecognizer) HandlePointerEvent(ev pointer.Event) {
	if tap.waiting {
		// We've finished our tap and are waiting to be elected the winner. No event can change that.
		return
	}

	if ev.Kind != pointer.Press && !tap.active {
		return
	}

	// XXX use logical pixels instead of physical pixels for slack
	const slack = 15
	switch ev.Kind {
	case pointer.Press:
		tap.arena = tap.Manager.Add(tap)
		if tap.OnTapStart != nil {
			tap.OnTapStart(ev)
		}
		tap.start = ev
		tap.active = true
	case pointer.Release:
		// XXX compare buttons
		tap.arena.Win(tap)
		tap.waiting = true
	case pointer.Cancel:
		tap.lose()
	case pointer.Move:
		if ev.Source == pointer.Mouse {
			// Any amount of motion turns this from a tap into a drag. Most desktop UI elements that can get
			// clicked, like buttons, will actually want to listen to raw down and up events to recognize
			// clicks that move across the UI element, and rely on taps only for touch interfaces.
			tap.lose()
		} else {
			d := f32.Magnitude(ev.Position.Sub(tap.start.Position))
			if d > slack {
				tap.lose()
			}
		}
	}
}

func (tap *TapRecognizer) lose() {
	ev := tap.start
	tap.arena.Lose(tap)
	if tap.OnTapCancel != nil {
		tap.OnTapCancel(ev)
	}
}

func (tap *TapRecognizer) AcceptedGesture() {
	if tap.OnTap != nil {
		tap.OnTap(tap.start)
	}
	tap.reset()
}

func (tap *TapRecognizer) RejectedGesture() {
	ev := tap.start
	waited := tap.waiting
	tap.reset()
	if waited && tap.OnTapCancel != nil {
		// We won but a longer gesture beat us; the tap-down feedback
		// still has to be undone.
		tap.OnTapCancel(ev)
	}
}

func (tap *TapRecognizer) reset() {
	tap.active = false
	tap.arena = nil
	tap.start = pointer.Event{}
	tap.waiting = false
}
