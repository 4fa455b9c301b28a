// Package term adapts tcell mouse input to pointer events, so that the
// gesture recognizers can run unchanged against a terminal.
package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/flickui/flick/f32"
	"github.com/flickui/flick/io/pointer"
)

const (
	// DefaultCellWidth and DefaultCellHeight approximate a terminal
	// cell in logical pixels. Cells are coarse; the scale is what lets
	// a drag across a couple of cells cross recognizer slop.
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Adapter converts tcell mouse events into pointer events. tcell
// reports absolute button state per event; the adapter keeps the
// previous state to synthesize Press, Move and Release.
type Adapter struct {
	// CellWidth and CellHeight override the default cell size.
	CellWidth  float32
	CellHeight float32

	held  tcell.ButtonMask
	epoch time.Time
	last  f32.Point
}

func (a *Adapter) cellSize() (w, h float32) {
	w, h = a.CellWidth, a.CellHeight
	if w <= 0 {
		w = DefaultCellWidth
	}
	if h <= 0 {
		h = DefaultCellHeight
	}
	return w, h
}

// Convert translates one tcell mouse event. It returns zero or more
// pointer events; wheel motion and button transitions in the same tcell
// event produce one pointer event each.
func (a *Adapter) Convert(ev *tcell.EventMouse) []pointer.Event {
	if a.epoch.IsZero() {
		a.epoch = ev.When()
	}
	cw, ch := a.cellSize()
	cx, cy := ev.Position()
	pos := f32.Pt(float32(cx)*cw, float32(cy)*ch)

	base := pointer.Event{
		Source:    pointer.Mouse,
		Time:      ev.When().Sub(a.epoch),
		Position:  pos,
		Buttons:   convertButtons(ev.Buttons()),
		Modifiers: 0,
	}

	var out []pointer.Event
	if wheel := scrollOf(ev.Buttons(), cw, ch); wheel != (f32.Point{}) {
		sev := base
		sev.Kind = pointer.Scroll
		sev.Scroll = wheel
		out = append(out, sev)
	}

	held := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	switch {
	case a.held == 0 && held != 0:
		base.Kind = pointer.Press
		out = append(out, base)
	case a.held != 0 && held == 0:
		base.Kind = pointer.Release
		out = append(out, base)
	case len(out) == 0 && pos != a.last:
		base.Kind = pointer.Move
		out = append(out, base)
	}
	a.held = held
	a.last = pos
	return out
}

func convertButtons(b tcell.ButtonMask) pointer.Buttons {
	var out pointer.Buttons
	if b&tcell.Button1 != 0 {
		out |= pointer.ButtonPrimary
	}
	if b&tcell.Button2 != 0 {
		out |= pointer.ButtonTertiary
	}
	if b&tcell.Button3 != 0 {
		out |= pointer.ButtonSecondary
	}
	return out
}

func scrollOf(b tcell.ButtonMask, cw, ch float32) f32.Point {
	var s f32.Point
	if b&tcell.WheelUp != 0 {
		s.Y -= ch
	}
	if b&tcell.WheelDown != 0 {
		s.Y += ch
	}
	if b&tcell.WheelLeft != 0 {
		s.X -= cw
	}
	if b&tcell.WheelRight != 0 {
		s.X += cw
	}
	return s
}
