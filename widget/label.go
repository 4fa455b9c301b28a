package widget

import (
	"image"
	"sync"

	"github.com/flickui/flick/f32"
	"github.com/flickui/flick/render"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

var _ RenderObjectWidget = (*Label)(nil)
var _ render.Object = (*renderLabel)(nil)

// Label draws a single line of text.
type Label struct {
	Text string
	// Size is the text size in sp. Zero uses the material default.
	Size float32
}

// Key implements RenderObjectWidget.
func (l *Label) Key() any { return nil }

// CreateElement implements RenderObjectWidget.
func (l *Label) CreateElement() Element { return NewRenderObjectElement(l) }

// CreateRenderObject implements RenderObjectWidget.
func (l *Label) CreateRenderObject(ctx BuildContext) render.Object {
	return &renderLabel{text: l.Text, size: l.Size}
}

// UpdateRenderObject implements RenderObjectWidget.
func (l *Label) UpdateRenderObject(ctx BuildContext, obj render.Object) {
	obj.(*renderLabel).set(l.Text, l.Size)
}

// materialTheme loads the font collection once; shaping caches live in
// the theme and are shared by all labels.
var materialTheme = sync.OnceValue(func() *material.Theme {
	return material.NewTheme(gofont.Collection())
})

type renderLabel struct {
	render.Box

	text string
	size float32
}

// VisitChildren implements render.Object.
func (*renderLabel) VisitChildren(yield func(render.Object) bool) {}

func (r *renderLabel) set(text string, size float32) {
	if r.text == text && r.size == size {
		return
	}
	r.text = text
	r.size = size
	render.MarkNeedsLayout(r)
}

func (r *renderLabel) style() material.LabelStyle {
	th := materialTheme()
	size := th.TextSize
	if r.size != 0 {
		size = unit.Sp(r.size)
	}
	l := material.Label(th, size, r.text)
	l.MaxLines = 1
	return l
}

// context builds a gio layout context. The zero Metric maps units to
// pixels at a scale of 1.0, which matches the logical pixels the render
// tree works in.
func (r *renderLabel) context(ops *op.Ops, maxSize f32.Point) layout.Context {
	return layout.Context{
		Ops: ops,
		Constraints: layout.Constraints{
			Max: image.Pt(int(maxSize.X), int(maxSize.Y)),
		},
	}
}

// PerformLayout implements render.Object.
func (r *renderLabel) PerformLayout() f32.Point {
	cs := r.Handle().Constraints()
	var scratch op.Ops
	dims := r.style().Layout(r.context(&scratch, cs.Max))
	return cs.Constrain(f32.Pt(float32(dims.Size.X), float32(dims.Size.Y)))
}

// PerformPaint implements render.Object.
func (r *renderLabel) PerformPaint(_ *render.Renderer, ops *op.Ops) {
	r.style().Layout(r.context(ops, r.Handle().Size()))
}
