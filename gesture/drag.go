package gesture

import (
	"github.com/flickui/flick/f32"
	"github.com/flickui/flick/io/pointer"
)

// DragHandler receives a horizontal drag once a recognizer has claimed
// it. DragStart reports the position of the original press, not the
// position at which the drag was recognized, so handlers measure travel
// from where the pointer actually landed.
type DragHandler interface {
	DragStart(startX float32)
	DragMove(x float32)
	DragEnd(x float32)
}

// DragSource delivers horizontal drags to at most one handler. Detach
// stops delivery synchronously and may be called at any time, including
// mid-drag.
type DragSource interface {
	Attach(h DragHandler)
	Detach()
}

// HorizontalDragRecognizer recognizes horizontal drags. It competes in
// the arena like any other recognizer: it claims the gesture once
// travel from the press is clearly horizontal, and on winning replays
// the buffered motion so that nothing is lost to disambiguation. Mouse
// motion claims immediately, for the same reason any mouse motion
// defeats a tap.
type HorizontalDragRecognizer struct {
	Manager *ArenaManager

	OnDragStart func(startX float32)
	OnDragMove  func(x float32)
	OnDragEnd   func(x float32)

	arena   *Arena
	start   pointer.Event
	last    f32.Point
	end     *float32
	active  bool
	claimed bool
	won     bool
}

func (drag *HorizontalDragRecognizer) HandlePointerEvent(ev pointer.Event) {
	if ev.Kind != pointer.Press && !drag.active {
		return
	}

	const slack = 15
	switch ev.Kind {
	case pointer.Press:
		if drag.active {
			// A second pointer doesn't contribute to a one-finger drag.
			return
		}
		drag.arena = drag.Manager.Add(drag)
		drag.start = ev
		drag.last = ev.Position
		drag.active = true
	case pointer.Move:
		drag.last = ev.Position
		if drag.won {
			if drag.OnDragMove != nil {
				drag.OnDragMove(ev.Position.X)
			}
			return
		}
		if drag.claimed {
			return
		}
		d := ev.Position.Sub(drag.start.Position)
		dx, dy := abs(d.X), abs(d.Y)
		if ev.Source == pointer.Mouse {
			if dx == 0 && dy == 0 {
				return
			}
			if dx >= dy {
				drag.claim()
			} else {
				drag.lose()
			}
		} else {
			switch {
			case dx > slack && dx > dy:
				drag.claim()
			case dy > slack:
				// Once the touch has clearly moved vertically it
				// belongs to whoever scrolls.
				drag.lose()
			}
		}
	case pointer.Release:
		switch {
		case drag.won:
			if drag.OnDragEnd != nil {
				drag.OnDragEnd(ev.Position.X)
			}
			drag.reset()
		case drag.claimed:
			// The arena can't resolve us until older arenas have; hold
			// on to the release until we're elected.
			x := ev.Position.X
			drag.end = &x
		default:
			// Press and release without qualifying motion isn't a
			// drag; that's the tap recognizer's business.
			drag.lose()
		}
	case pointer.Cancel:
		if drag.won {
			// There is no separate cancel delivery; ending at the last
			// seen position keeps the handler's dead zone in charge.
			if drag.OnDragEnd != nil {
				drag.OnDragEnd(drag.last.X)
			}
			drag.reset()
		} else {
			drag.lose()
		}
	}
}

func (drag *HorizontalDragRecognizer) claim() {
	drag.arena.Win(drag)
	drag.claimed = true
}

func (drag *HorizontalDragRecognizer) lose() {
	drag.arena.Lose(drag)
}

func (drag *HorizontalDragRecognizer) AcceptedGesture() {
	drag.won = true
	if drag.OnDragStart != nil {
		drag.OnDragStart(drag.start.Position.X)
	}
	if drag.last != drag.start.Position && drag.OnDragMove != nil {
		drag.OnDragMove(drag.last.X)
	}
	if drag.end != nil {
		if drag.OnDragEnd != nil {
			drag.OnDragEnd(*drag.end)
		}
		drag.reset()
	}
}

func (drag *HorizontalDragRecognizer) RejectedGesture() {
	drag.reset()
}

func (drag *HorizontalDragRecognizer) reset() {
	drag.arena = nil
	drag.start = pointer.Event{}
	drag.last = f32.Point{}
	drag.end = nil
	drag.active = false
	drag.claimed = false
	drag.won = false
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// PointerDragSource exposes a HorizontalDragRecognizer as a DragSource.
type PointerDragSource struct {
	rec *HorizontalDragRecognizer
}

func NewPointerDragSource(rec *HorizontalDragRecognizer) *PointerDragSource {
	return &PointerDragSource{rec: rec}
}

func (s *PointerDragSource) Attach(h DragHandler) {
	s.rec.OnDragStart = h.DragStart
	s.rec.OnDragMove = h.DragMove
	s.rec.OnDragEnd = h.DragEnd
}

func (s *PointerDragSource) Detach() {
	s.rec.OnDragStart = nil
	s.rec.OnDragMove = nil
	s.rec.OnDragEnd = nil
}
