package widget

import (
	"github.com/flickui/flick/gesture"
	"github.com/flickui/flick/io/pointer"
	"github.com/flickui/flick/render"
)

var _ StatefulWidget = (*GestureDetector)(nil)
var _ SingleChildWidget = (*GestureDetector)(nil)

// GestureDetector recognizes taps on its child. Events pass through the
// tree's gesture arena, so a press that turns out to belong to another
// recognizer cancels the tap instead of completing it.
type GestureDetector struct {
	OnTapDown   func(ev pointer.Event)
	OnTap       func(ev pointer.Event)
	OnTapCancel func(ev pointer.Event)
	Child       Widget
}

// Key implements StatefulWidget.
func (g *GestureDetector) Key() any { return nil }

// GetChild implements SingleChildWidget.
func (g *GestureDetector) GetChild() Widget {
	return g.Child
}

// CreateElement implements StatefulWidget.
func (g *GestureDetector) CreateElement() Element {
	return NewInteriorElement(g)
}

// CreateState implements StatefulWidget.
func (g *GestureDetector) CreateState() State {
	return &gestureDetectorState{}
}

type gestureDetectorState struct {
	StateHandle

	tap gesture.TapRecognizer
}

// Transition implements State.
func (s *gestureDetectorState) Transition(t StateTransition) {
	switch t.Kind {
	case StateInitializing:
		// The callbacks read the current widget so that rebuilds with
		// new closures take effect without resetting the recognizer.
		s.tap = gesture.TapRecognizer{
			Manager: s.Element.Handle().BuildOwner.Gestures,
			OnTapStart: func(ev pointer.Event) {
				if f := s.Widget.(*GestureDetector).OnTapDown; f != nil {
					f(ev)
				}
			},
			OnTap: func(ev pointer.Event) {
				if f := s.Widget.(*GestureDetector).OnTap; f != nil {
					f(ev)
				}
			},
			OnTapCancel: func(ev pointer.Event) {
				if f := s.Widget.(*GestureDetector).OnTapCancel; f != nil {
					f(ev)
				}
			},
		}
	case StateUpdatedWidget:
		MarkNeedsBuild(s.Element)
	}
}

// Build implements State.
func (s *gestureDetectorState) Build() Widget {
	return &PointerRegion{
		OnAll: func(hit render.HitTestEntry, ev pointer.Event) {
			s.tap.HandlePointerEvent(ev)
		},
		Child: s.Widget.(*GestureDetector).Child,
	}
}
