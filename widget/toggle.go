package widget

import (
	"time"

	"github.com/flickui/flick/animation"
	"github.com/flickui/flick/f32"
	"github.com/flickui/flick/form"
	"github.com/flickui/flick/gesture"
	"github.com/flickui/flick/haptic"
	"github.com/flickui/flick/io/key"
	"github.com/flickui/flick/io/pointer"
	"github.com/flickui/flick/render"
	"github.com/flickui/flick/theme"
	"github.com/flickui/flick/toggle"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

var _ StatefulWidget = (*Toggle)(nil)
var _ Focusable = (*toggleState)(nil)
var _ RenderObjectWidget = (*toggleVisual)(nil)
var _ render.Object = (*renderToggle)(nil)

// Toggle is a binary switch. It can be flipped by tapping, by dragging
// the thumb past the halfway travel, or with space and enter while
// focused.
type Toggle struct {
	// Checked is the initial value, interpreted like an HTML attribute:
	// a new value on a later rebuild overwrites any flips the user made
	// in between.
	Checked  any
	Disabled bool
	// Name identifies the control in its form. Two toggles with
	// different names never reconcile into each other.
	Name     string
	OnChange func(checked bool)

	Theme   *theme.Theme
	Haptics haptic.Sink
	// Form, if set, registers the control for form-wide reset and dirty
	// tracking.
	Form      *form.Form
	Autofocus bool
}

// Key implements StatefulWidget.
func (t *Toggle) Key() any { return t.Name }

// CreateElement implements StatefulWidget.
func (t *Toggle) CreateElement() Element { return NewInteriorElement(t) }

// CreateState implements StatefulWidget.
func (t *Toggle) CreateState() State { return &toggleState{} }

type toggleState struct {
	StateHandle

	control *toggle.Control
	source  *gesture.PointerDragSource
	tap     *gesture.TapRecognizer
	drag    *gesture.HorizontalDragRecognizer
}

// Transition implements State.
func (s *toggleState) Transition(t StateTransition) {
	switch t.Kind {
	case StateInitializing:
		w := s.Widget.(*Toggle)
		s.control = toggle.New(w.Name, form.Truthy(w.Checked))
		s.control.OnRefresh = func() { MarkNeedsBuild(s.Element) }
		s.control.OnRequestFocus = func() { s.owner().Focus.RequestFocus(s) }
		s.bind(w)
		if w.Disabled {
			s.control.SetDisabled(true)
		} else {
			s.wireInput()
		}
		if w.Form != nil {
			w.Form.Register(s.control)
		}
		if w.Autofocus && !w.Disabled {
			s.control.RequestFocus()
		}
	case StateUpdatedWidget:
		w := s.Widget.(*Toggle)
		ow := t.OldWidget.(*Toggle)
		s.bind(w)
		if w.Checked != ow.Checked {
			s.control.SetChecked(w.Checked)
		}
		if w.Disabled != ow.Disabled {
			if w.Disabled {
				s.unwireInput()
				s.control.SetDisabled(true)
				s.owner().Focus.ReleaseFocus(s)
			} else {
				s.control.SetDisabled(false)
				s.wireInput()
			}
		}
		MarkNeedsBuild(s.Element)
	case StateDisposing:
		w := s.Widget.(*Toggle)
		s.unwireInput()
		s.owner().Focus.ReleaseFocus(s)
		if w.Form != nil {
			w.Form.Deregister(s.control.Name())
		}
	}
}

func (s *toggleState) owner() *BuildOwner {
	return s.Element.Handle().BuildOwner
}

// bind points the control's output hooks at the current widget.
func (s *toggleState) bind(w *Toggle) {
	s.control.OnChange = w.OnChange
	s.control.Haptics = w.Haptics
}

// wireInput creates the recognizers and attaches the drag session.
// While disabled the control has no recognizers at all; events on the
// region fall through to nothing.
func (s *toggleState) wireInput() {
	gestures := s.owner().Gestures
	s.tap = &gesture.TapRecognizer{
		Manager:     gestures,
		OnTapStart:  func(pointer.Event) { s.control.TapDown() },
		OnTap:       func(pointer.Event) { s.control.Tap() },
		OnTapCancel: func(pointer.Event) { s.control.TapCancel() },
	}
	s.drag = &gesture.HorizontalDragRecognizer{Manager: gestures}
	s.source = gesture.NewPointerDragSource(s.drag)
	s.control.Ready(s.source)
}

func (s *toggleState) unwireInput() {
	if s.control.Attached() {
		s.control.Teardown()
	}
	s.tap = nil
	s.drag = nil
	s.source = nil
}

func (s *toggleState) route(hit render.HitTestEntry, ev pointer.Event) {
	// Recognizers work in track-local coordinates so that drag travel
	// is comparable to track geometry.
	ev.Position = hit.Offset
	s.tap.HandlePointerEvent(ev)
	s.drag.HandlePointerEvent(ev)
}

// FocusGained implements Focusable.
func (s *toggleState) FocusGained() { s.control.FocusGained() }

// FocusLost implements Focusable.
func (s *toggleState) FocusLost() { s.control.FocusLost() }

// HandleKey implements Focusable.
func (s *toggleState) HandleKey(ev key.Event) bool {
	return s.control.KeyActivate(ev)
}

var defaultTheme = theme.Default()

// Build implements State.
func (s *toggleState) Build() Widget {
	w := s.Widget.(*Toggle)
	th := w.Theme
	if th == nil {
		th = defaultTheme
	}
	region := &PointerRegion{
		Child: &toggleVisual{
			value:     s.control.Value(),
			activated: s.control.Activated(),
			focused:   s.control.Focused(),
			disabled:  s.control.Disabled(),
			theme:     th,
		},
	}
	if !s.control.Disabled() {
		region.OnAll = s.route
	}
	return region
}

// toggleVisual is the render half of a toggle: a snapshot of the
// control's visible state at build time.
type toggleVisual struct {
	value     bool
	activated bool
	focused   bool
	disabled  bool
	theme     *theme.Theme
}

// Key implements RenderObjectWidget.
func (v *toggleVisual) Key() any { return nil }

// CreateElement implements RenderObjectWidget.
func (v *toggleVisual) CreateElement() Element { return NewRenderObjectElement(v) }

// CreateRenderObject implements RenderObjectWidget.
func (v *toggleVisual) CreateRenderObject(ctx BuildContext) render.Object {
	// A freshly mounted toggle starts at its resting position; only
	// value changes after mounting animate.
	return &renderToggle{visual: *v, pos: v.targetPos()}
}

// UpdateRenderObject implements RenderObjectWidget.
func (v *toggleVisual) UpdateRenderObject(ctx BuildContext, obj render.Object) {
	obj.(*renderToggle).update(v)
}

func (v *toggleVisual) targetPos() float32 {
	if v.value {
		return 1
	}
	return 0
}

type renderToggle struct {
	render.Box

	visual toggleVisual

	// pos is the thumb travel from 0 (off) to 1 (on).
	pos       float32
	anim      animation.Animation[float32]
	animating bool
}

// VisitChildren implements render.Object.
func (*renderToggle) VisitChildren(yield func(render.Object) bool) {}

func (r *renderToggle) update(v *toggleVisual) {
	if r.visual == *v {
		return
	}
	slide := r.visual.value != v.value
	r.visual = *v
	if slide {
		th := v.theme
		// XXX this should use the frame's now, not time.Now
		r.anim = animation.Animation[float32]{
			Compute: animation.Lerp[float32],
			Curve:   th.SlideCurve,
		}
		r.anim.Start(time.Now(), th.SlideDuration, r.pos, v.targetPos())
		if !r.animating {
			r.animating = true
			if owner := r.Handle().Owner(); owner != nil {
				owner.AddNextFrameCallback(r.tick)
			}
		}
	}
	render.MarkNeedsPaint(r)
}

func (r *renderToggle) tick(now time.Time) {
	if !r.animating {
		return
	}
	var done bool
	r.pos, done = r.anim.Evaluate(now)
	if done {
		r.animating = false
	} else if owner := r.Handle().Owner(); owner != nil {
		owner.AddNextFrameCallback(r.tick)
	}
	render.MarkNeedsPaint(r)
}

// PerformLayout implements render.Object.
func (r *renderToggle) PerformLayout() f32.Point {
	th := r.visual.theme
	return r.Handle().Constraints().Constrain(f32.Pt(th.TrackWidth, th.TrackHeight))
}

// PerformPaint implements render.Object.
func (r *renderToggle) PerformPaint(_ *render.Renderer, ops *op.Ops) {
	th := r.visual.theme
	sz := r.Handle().Size()

	pos := r.pos
	if th.Direction == theme.RTL {
		pos = 1 - pos
	}

	track := th.TrackAt(float64(r.pos), r.visual.activated)
	thumb := th.Thumb
	if r.visual.disabled {
		track = th.Faded(track)
		thumb = th.Faded(thumb)
	}

	shape := render.FRRect{Rect: render.FRect{Max: sz}, Radius: sz.Y / 2}
	paint.FillShape(ops, track, shape.Op(ops))

	diameter := sz.Y - 2*th.ThumbInset
	x := th.ThumbInset + pos*(sz.X-diameter-2*th.ThumbInset)
	thumbShape := render.FRRect{
		Rect: render.FRect{
			Min: f32.Pt(x, th.ThumbInset),
			Max: f32.Pt(x+diameter, th.ThumbInset+diameter),
		},
		Radius: diameter / 2,
	}
	paint.FillShape(ops, thumb, thumbShape.Op(ops))

	if r.visual.focused && !r.visual.disabled {
		ring := clip.Stroke{Path: shape.Path(ops), Width: 2}.Op()
		paint.FillShape(ops, th.TrackColor(true, false), ring)
	}
}
