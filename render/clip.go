package render

import (
	"github.com/flickui/flick/f32"

	"gioui.org/op"
	"gioui.org/op/clip"
)

type FRect struct {
	Min f32.Point
	Max f32.Point
}

func (r FRect) Path(ops *op.Ops) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	r.IntoPath(&p)
	return p.End()
}

func (r FRect) IntoPath(p *clip.Path) {
	p.MoveTo(r.Min)
	p.LineTo(f32.Pt(r.Max.X, r.Min.Y))
	p.LineTo(r.Max)
	p.LineTo(f32.Pt(r.Min.X, r.Max.Y))
	p.LineTo(r.Min)
}

func (r FRect) Op(ops *op.Ops) clip.Op {
	return clip.Outline{Path: r.Path(ops)}.Op()
}

func (r FRect) Contains(pt f32.Point) bool {
	return pt.X >= r.Min.X && pt.X < r.Max.X &&
		pt.Y >= r.Min.Y && pt.Y < r.Max.Y
}

func (r FRect) Dx() float32 {
	return r.Max.X - r.Min.X
}

func (r FRect) Dy() float32 {
	return r.Max.Y - r.Min.Y
}

// FRRect is a rectangle with uniformly rounded corners, at float
// coordinates. Gio's clip.RRect only supports whole pixels, which isn't
// enough for animated shapes.
type FRRect struct {
	Rect   FRect
	Radius float32
}

// Control point offset for approximating quarter circles with cubic
// Béziers.
const rrectKappa = 0.5522848

func (rr FRRect) Path(ops *op.Ops) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	rr.IntoPath(&p)
	return p.End()
}

func (rr FRRect) IntoPath(p *clip.Path) {
	r := rr.Rect
	rad := min(rr.Radius, r.Dx()/2, r.Dy()/2)
	if rad <= 0 {
		r.IntoPath(p)
		return
	}
	k := rad * rrectKappa

	p.MoveTo(f32.Pt(r.Min.X+rad, r.Min.Y))
	p.LineTo(f32.Pt(r.Max.X-rad, r.Min.Y))
	p.CubeTo(f32.Pt(r.Max.X-rad+k, r.Min.Y), f32.Pt(r.Max.X, r.Min.Y+rad-k), f32.Pt(r.Max.X, r.Min.Y+rad))
	p.LineTo(f32.Pt(r.Max.X, r.Max.Y-rad))
	p.CubeTo(f32.Pt(r.Max.X, r.Max.Y-rad+k), f32.Pt(r.Max.X-rad+k, r.Max.Y), f32.Pt(r.Max.X-rad, r.Max.Y))
	p.LineTo(f32.Pt(r.Min.X+rad, r.Max.Y))
	p.CubeTo(f32.Pt(r.Min.X+rad-k, r.Max.Y), f32.Pt(r.Min.X, r.Max.Y-rad+k), f32.Pt(r.Min.X, r.Max.Y-rad))
	p.LineTo(f32.Pt(r.Min.X, r.Min.Y+rad))
	p.CubeTo(f32.Pt(r.Min.X, r.Min.Y+rad-k), f32.Pt(r.Min.X+rad-k, r.Min.Y), f32.Pt(r.Min.X+rad, r.Min.Y))
	p.Close()
}

func (rr FRRect) Op(ops *op.Ops) clip.Op {
	return clip.Outline{Path: rr.Path(ops)}.Op()
}
