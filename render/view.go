package render

import (
	"github.com/flickui/flick/f32"

	"gioui.org/op"
)

var _ ObjectWithChild = (*View)(nil)

// View is the root of the render tree. It represents the output surface and
// sizes its child to the view configuration.
type View struct {
	ObjectHandle
	SingleChild

	configuration ViewConfiguration
}

// ViewConfiguration are the constraints imposed by the output surface,
// usually the window size.
type ViewConfiguration = Constraints

func NewView() *View {
	return &View{}
}

func (v *View) Configuration() ViewConfiguration {
	return v.configuration
}

func (v *View) SetConfiguration(value ViewConfiguration) {
	if v.configuration == value {
		return
	}
	v.configuration = value
	MarkNeedsLayout(v)
}

// PrepareInitialFrame schedules the first layout and paint. The view must
// already be attached to a pipeline owner.
func (v *View) PrepareInitialFrame() {
	ScheduleInitialLayout(v)
	ScheduleInitialPaint(v)
}

// PerformLayout implements Object.
func (v *View) PerformLayout() f32.Point {
	sizedByChild := !v.configuration.Tight()
	if v.Child != nil {
		Layout(v.Child, v.configuration, sizedByChild)
	}
	if sizedByChild && v.Child != nil {
		return v.Child.Handle().Size()
	}
	return v.configuration.Min
}

// PerformPaint implements Object.
func (v *View) PerformPaint(r *Renderer, ops *op.Ops) {
	if v.Child != nil {
		r.Paint(v.Child).Add(ops)
	}
}
