package widget

import (
	"github.com/flickui/flick/io/key"
)

// Focusable receives keyboard focus and key events.
type Focusable interface {
	FocusGained()
	FocusLost()
	// HandleKey handles a key event, returning whether it consumed it.
	HandleKey(ev key.Event) bool
}

// FocusManager tracks which Focusable, if any, holds keyboard focus.
// The zero value is ready to use.
type FocusManager struct {
	focus Focusable
}

// RequestFocus moves focus to f, notifying the previous holder.
func (m *FocusManager) RequestFocus(f Focusable) {
	if m.focus == f {
		return
	}
	if m.focus != nil {
		m.focus.FocusLost()
	}
	m.focus = f
	if f != nil {
		f.FocusGained()
	}
}

// ReleaseFocus drops focus if f currently holds it. Focus held by
// another Focusable is left alone.
func (m *FocusManager) ReleaseFocus(f Focusable) {
	if m.focus != f {
		return
	}
	m.focus = nil
	if f != nil {
		f.FocusLost()
	}
}

func (m *FocusManager) Focused() Focusable { return m.focus }

// HandleKey routes a key event to the focus holder.
func (m *FocusManager) HandleKey(ev key.Event) bool {
	if m.focus == nil {
		return false
	}
	return m.focus.HandleKey(ev)
}
