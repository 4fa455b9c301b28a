// Package key defines the keyboard events delivered to focused widgets.
package key

import (
	giokey "gioui.org/io/key"
)

type Modifiers = giokey.Modifiers

// Names of the keys that activate form controls.
const (
	NameSpace  = giokey.NameSpace
	NameReturn = giokey.NameReturn
	NameEnter  = giokey.NameEnter
)

type Event struct {
	// Name is the key name as reported by Gio, for example "Space" or "A".
	Name      string
	Modifiers Modifiers
	State     State
}

func FromRaw(ev giokey.Event) Event {
	var state State
	switch ev.State {
	case giokey.Press:
		state = Press
	case giokey.Release:
		state = Release
	}
	return Event{
		Name:      ev.Name,
		Modifiers: ev.Modifiers,
		State:     state,
	}
}

type State uint8

const (
	Press State = iota
	Release
)
