// Package toggle implements the state machine of a binary switch: the
// committed value, the transient pressed visual, and the drag, tap and
// keyboard paths that mutate them. It is frontend-free; widgets and the
// terminal demo drive it through gesture recognizers.
package toggle

import (
	"math"

	"github.com/flickui/flick/debug"
	"github.com/flickui/flick/form"
	"github.com/flickui/flick/gesture"
	"github.com/flickui/flick/haptic"
	"github.com/flickui/flick/io/key"
)

// Drag geometry, in pointer units measured from the anchor.
const (
	// flipTravel is the travel that commits a flip while the drag is live.
	flipTravel = 15
	// releaseSlack is the dead zone at release; travel inside it leaves
	// the value alone.
	releaseSlack = 4
	// pressedNear bounds how far past the anchor the pointer can sit and
	// still leave the thumb looking pressed after a forward flip.
	pressedNear = 5
)

var (
	_ gesture.DragHandler = (*Control)(nil)
	_ form.Control        = (*Control)(nil)
)

// Control owns one switch. The committed value lives in a form.Base and
// every mutation funnels through its Set, so observers see exactly one
// notification per logical change. The pressed visual (activated) and the
// drag anchor are transient and never reach the form binding.
//
// Control implements gesture.DragHandler and form.Control.
type Control struct {
	base *form.Base[bool]

	// OnChange observes committed value changes.
	OnChange func(bool)
	// OnRefresh asks the view to repaint. It may be invoked more than
	// once per input event; views coalesce.
	OnRefresh func()
	// OnRequestFocus asks the view to move keyboard focus here.
	OnRequestFocus func()
	// Haptics receives one pulse per pointer-driven flip. Nil is fine.
	Haptics haptic.Sink

	session dragSession

	anchor    float32
	hasAnchor bool
	activated bool
}

func New(name string, initial bool) *Control {
	c := &Control{base: form.NewBase(name, initial)}
	c.base.OnChange = func(v bool) {
		if c.OnChange != nil {
			c.OnChange(v)
		}
		c.refresh()
	}
	return c
}

func (c *Control) Name() string   { return c.base.Name() }
func (c *Control) Value() bool    { return c.base.Value() }
func (c *Control) Dirty() bool    { return c.base.Dirty() }
func (c *Control) Touched() bool  { return c.base.Touched() }
func (c *Control) Focused() bool  { return c.base.Focused() }
func (c *Control) Disabled() bool { return c.base.Disabled() }

// Activated reports whether the switch should paint pressed.
func (c *Control) Activated() bool { return c.activated }

// Dragging reports whether a drag anchor is set.
func (c *Control) Dragging() bool { return c.hasAnchor }

// Reset restores the initial value, notifying like any other change.
func (c *Control) Reset() { c.base.Reset() }

// SetDisabled records the disabled flag. Input gating is structural: the
// owning widget tears the drag session down and stops routing events
// while disabled, so the drag and key paths need no re-check here.
func (c *Control) SetDisabled(disabled bool) { c.base.SetDisabled(disabled) }

// SetChecked writes an externally supplied value, coercing loosely typed
// inputs the way form attributes are coerced.
func (c *Control) SetChecked(raw any) {
	c.base.Set(form.Truthy(raw))
}

// FocusGained and FocusLost are called by the view's focus owner. Both
// are idempotent.
func (c *Control) FocusGained() {
	if c.base.Focused() {
		return
	}
	c.base.FocusGained()
	c.refresh()
}

func (c *Control) FocusLost() {
	if !c.base.Focused() {
		return
	}
	c.base.FocusLost()
	c.refresh()
}

// RequestFocus delegates to the view. It mutates nothing itself; the
// view answers by calling FocusGained.
func (c *Control) RequestFocus() {
	if c.OnRequestFocus != nil {
		c.OnRequestFocus()
	}
}

// DragStart anchors a drag at startX. A non-finite startX is a caller
// contract violation and is ignored.
func (c *Control) DragStart(startX float32) {
	if f := float64(startX); math.IsNaN(f) || math.IsInf(f, 0) {
		debug.Violation("toggle %q: drag start at non-finite x", c.Name())
		return
	}
	c.anchor = startX
	c.hasAnchor = true
	c.activated = true
	c.FocusGained()
	c.RequestFocus()
	c.refresh()
}

// DragMove flips the value once the pointer has travelled flipTravel past
// the anchor toward the other state, re-anchoring at the flip so a long
// drag can flip back. Calling it with no drag in progress is a contract
// violation and a no-op.
func (c *Control) DragMove(x float32) {
	if !c.hasAnchor {
		debug.Violation("toggle %q: drag move with no drag in progress", c.Name())
		return
	}
	delta := x - c.anchor
	switch {
	case c.base.Value() && delta <= -flipTravel:
		c.activated = true
		c.flipAt(x)
	case !c.base.Value() && delta >= flipTravel:
		// Pre-flip anchor on purpose: the pressed look survives only a
		// flip committed right next to where the drag began.
		c.activated = x < c.anchor+pressedNear
		c.flipAt(x)
	}
}

// DragEnd resolves the drag: travel past releaseSlack toward the other
// state flips, anything inside the dead zone leaves the value alone.
// The anchor and pressed visual always clear.
func (c *Control) DragEnd(x float32) {
	if !c.hasAnchor {
		debug.Violation("toggle %q: drag end with no drag in progress", c.Name())
		return
	}
	delta := x - c.anchor
	flip := false
	if c.base.Value() {
		flip = delta < -releaseSlack
	} else {
		flip = delta > releaseSlack
	}
	if flip {
		c.base.Set(!c.base.Value())
		c.pulse()
	}
	c.hasAnchor = false
	c.anchor = 0
	c.activated = false
	c.FocusLost()
	c.refresh()
}

// TapDown raises the pressed visual while a tap is being recognized.
func (c *Control) TapDown() {
	c.activated = true
	c.RequestFocus()
	c.refresh()
}

// Tap commits a recognized tap. Unlike the drag path it flips regardless
// of travel; the tap recognizer has already bounded the motion.
func (c *Control) Tap() {
	c.activated = false
	c.base.Set(!c.base.Value())
	c.pulse()
}

// TapCancel undoes the pressed visual when the tap loses its arena.
func (c *Control) TapCancel() {
	if !c.activated {
		return
	}
	c.activated = false
	c.refresh()
}

// KeyActivate handles a key event delivered to the focused control.
// Space, Return and Enter are consumed; the flip happens on release, the
// way native buttons activate. Everything else passes through.
func (c *Control) KeyActivate(ev key.Event) bool {
	switch ev.Name {
	case key.NameSpace, key.NameReturn, key.NameEnter:
	default:
		return false
	}
	if ev.State == key.Release {
		c.base.Set(!c.base.Value())
	}
	return true
}

// Ready attaches the drag session to src. Attaching while attached is a
// contract violation; the existing attachment stays.
func (c *Control) Ready(src gesture.DragSource) {
	if !c.session.ready(src, c) {
		debug.Violation("toggle %q: drag session already attached", c.Name())
	}
}

// Teardown detaches the drag session and cancels any drag in flight: the
// pointer events simply stop, no flip is committed, and the transient
// state clears. Idempotent, and safe before any Ready.
func (c *Control) Teardown() {
	if !c.session.teardown() {
		return
	}
	if c.hasAnchor || c.activated {
		c.hasAnchor = false
		c.anchor = 0
		c.activated = false
		c.refresh()
	}
}

// Attached reports whether a drag source is bound.
func (c *Control) Attached() bool { return c.session.src != nil }

func (c *Control) flipAt(x float32) {
	c.anchor = x
	c.base.Set(!c.base.Value())
	c.pulse()
}

func (c *Control) pulse() {
	if c.Haptics != nil {
		c.Haptics.Pulse()
	}
}

func (c *Control) refresh() {
	if c.OnRefresh != nil {
		c.OnRefresh()
	}
}

// A dragSession binds a handler to at most one drag source at a time. It
// holds no drag state of its own; detaching mid-drag just stops
// delivery.
type dragSession struct {
	src gesture.DragSource
}

func (s *dragSession) ready(src gesture.DragSource, h gesture.DragHandler) bool {
	if s.src != nil {
		return false
	}
	s.src = src
	src.Attach(h)
	return true
}

func (s *dragSession) teardown() bool {
	if s.src == nil {
		return false
	}
	s.src.Detach()
	s.src = nil
	return true
}
