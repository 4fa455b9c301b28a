// Package pointer defines the pointer events delivered to render objects and
// gesture recognizers, decoupled from the windowing backend that produced
// them.
package pointer

import (
	"fmt"
	"time"

	"github.com/flickui/flick/f32"

	"gioui.org/io/key"
	giopointer "gioui.org/io/pointer"
)

type Event struct {
	Kind Kind
	// Source distinguishes mice from touch screens. Recognizers apply
	// different movement tolerances per source.
	Source Source
	// PointerID tracks a particular pointer from Press to Release or
	// Cancel.
	PointerID ID
	Time      time.Duration
	Buttons   Buttons
	Position  f32.Point
	Scroll    f32.Point
	Modifiers key.Modifiers
}

// FromRaw converts a Gio pointer event. Gio reports movement while a button
// is held as Drag; we deliver it as Move and leave drag detection to the
// recognizers.
func FromRaw(ev giopointer.Event) Event {
	var kind Kind
	switch ev.Type {
	case giopointer.Cancel:
		kind = Cancel
	case giopointer.Press:
		kind = Press
	case giopointer.Release:
		kind = Release
	case giopointer.Move, giopointer.Drag:
		kind = Move
	case giopointer.Enter:
		kind = Enter
	case giopointer.Leave:
		kind = Leave
	case giopointer.Scroll:
		kind = Scroll
	default:
		panic(fmt.Sprintf("unhandled type %#x", ev.Type))
	}

	var src Source
	switch ev.Source {
	case giopointer.Mouse:
		src = Mouse
	case giopointer.Touch:
		src = Touch
	}

	return Event{
		Kind:      kind,
		Source:    src,
		PointerID: ID(ev.PointerID),
		Time:      ev.Time,
		Buttons:   Buttons(ev.Buttons),
		Position:  f32.Point(ev.Position),
		Scroll:    f32.Point(ev.Scroll),
		Modifiers: ev.Modifiers,
	}
}

type Kind uint8

const (
	Cancel Kind = 1 << iota
	Press
	Release
	Move
	Enter
	Leave
	Scroll
)

// ID identifies one pointer among several concurrent ones.
type ID uint16

type Source uint8

const (
	Mouse Source = iota
	Touch
)

type Buttons uint32

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)
