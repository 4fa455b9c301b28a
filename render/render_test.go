package render

import (
	"image/color"
	"testing"

	"github.com/flickui/flick/f32"

	"gioui.org/op"
)

func tight(x, y float32) Constraints {
	return Constraints{Min: f32.Pt(x, y), Max: f32.Pt(x, y)}
}

func loose(x, y float32) Constraints {
	return Constraints{Max: f32.Pt(x, y)}
}

func TestConstraintsConstrain(t *testing.T) {
	tests := []struct {
		name string
		cs   Constraints
		in   f32.Point
		want f32.Point
	}{
		{"within", Constraints{Min: f32.Pt(10, 10), Max: f32.Pt(100, 100)}, f32.Pt(50, 50), f32.Pt(50, 50)},
		{"below min", Constraints{Min: f32.Pt(10, 10), Max: f32.Pt(100, 100)}, f32.Pt(5, 50), f32.Pt(10, 50)},
		{"above max", Constraints{Min: f32.Pt(10, 10), Max: f32.Pt(100, 100)}, f32.Pt(50, 500), f32.Pt(50, 100)},
		{"tight", tight(40, 40), f32.Pt(0, 999), f32.Pt(40, 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cs.Constrain(tt.in); got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPaddingLayout(t *testing.T) {
	p := NewPadding(Inset{Left: 10, Top: 5, Right: 20, Bottom: 15})
	fill := &FillColor{}
	SetChild(p, fill)

	sz := Layout(p, tight(100, 80), true)
	if want := f32.Pt(100, 80); sz != want {
		t.Errorf("padding size: want %v, got %v", want, sz)
	}
	if want := f32.Pt(70, 60); fill.Handle().Size() != want {
		t.Errorf("child size: want %v, got %v", want, fill.Handle().Size())
	}
	if want := f32.Pt(10, 5); fill.Handle().Offset() != want {
		t.Errorf("child offset: want %v, got %v", want, fill.Handle().Offset())
	}
}

func TestPaddingLayoutNoChild(t *testing.T) {
	p := NewPadding(Inset{Left: 3, Top: 4, Right: 5, Bottom: 6})
	sz := Layout(p, loose(100, 100), true)
	if want := f32.Pt(8, 10); sz != want {
		t.Fatalf("want %v, got %v", want, sz)
	}
}

func TestConstrainedLayout(t *testing.T) {
	c := &Constrained{}
	c.SetExtraConstraints(tight(40, 40))
	fill := &FillColor{}
	SetChild(c, fill)

	sz := Layout(c, loose(100, 100), true)
	if want := f32.Pt(40, 40); sz != want {
		t.Fatalf("want %v, got %v", want, sz)
	}
}

func TestRowLayout(t *testing.T) {
	row := &Row{}
	var boxes []*Constrained
	for _, d := range []f32.Point{f32.Pt(30, 20), f32.Pt(50, 40)} {
		c := &Constrained{}
		c.SetExtraConstraints(Constraints{Min: d, Max: d})
		InsertChild(row, c, len(boxes))
		boxes = append(boxes, c)
	}

	sz := Layout(row, loose(200, 100), true)
	if want := f32.Pt(80, 40); sz != want {
		t.Errorf("row size: want %v, got %v", want, sz)
	}
	if want := f32.Pt(0, 0); boxes[0].Handle().Offset() != want {
		t.Errorf("first child offset: want %v, got %v", want, boxes[0].Handle().Offset())
	}
	if want := f32.Pt(30, 0); boxes[1].Handle().Offset() != want {
		t.Errorf("second child offset: want %v, got %v", want, boxes[1].Handle().Offset())
	}
}

func TestRowChildMutation(t *testing.T) {
	row := &Row{}
	a := &Constrained{}
	a.SetExtraConstraints(tight(10, 10))
	b := &Constrained{}
	b.SetExtraConstraints(tight(20, 10))
	InsertChild(row, a, 0)
	InsertChild(row, b, 1)

	Layout(row, loose(100, 100), true)

	MoveChild(row, b, 0)
	Layout(row, loose(100, 100), true)
	if want := f32.Pt(20, 0); a.Handle().Offset() != want {
		t.Errorf("after move: want offset %v, got %v", want, a.Handle().Offset())
	}

	RemoveChild(row, b)
	sz := Layout(row, loose(100, 100), true)
	if want := f32.Pt(10, 10); sz != want {
		t.Errorf("after remove: want size %v, got %v", want, sz)
	}
	if b.Handle().Parent() != nil {
		t.Error("removed child still has a parent")
	}
}

func TestColumnLayout(t *testing.T) {
	col := &Column{}
	var boxes []*Constrained
	for _, d := range []f32.Point{f32.Pt(30, 20), f32.Pt(50, 40)} {
		c := &Constrained{}
		c.SetExtraConstraints(Constraints{Min: d, Max: d})
		InsertChild(col, c, len(boxes))
		boxes = append(boxes, c)
	}

	sz := Layout(col, loose(200, 100), true)
	if want := f32.Pt(50, 60); sz != want {
		t.Errorf("column size: want %v, got %v", want, sz)
	}
	if want := f32.Pt(0, 0); boxes[0].Handle().Offset() != want {
		t.Errorf("first child offset: want %v, got %v", want, boxes[0].Handle().Offset())
	}
	if want := f32.Pt(0, 20); boxes[1].Handle().Offset() != want {
		t.Errorf("second child offset: want %v, got %v", want, boxes[1].Handle().Offset())
	}
}

func hitTree(t *testing.T) (clip *Clip, region *PointerRegion) {
	t.Helper()
	clip = &Clip{}
	p := NewPadding(Inset{Left: 10, Top: 10, Right: 10, Bottom: 10})
	region = &PointerRegion{}
	region.HitTestBehavior = Opaque
	SetChild(clip, p)
	SetChild(p, region)
	Layout(clip, tight(100, 100), true)
	return clip, region
}

func TestHitTest(t *testing.T) {
	clip, region := hitTree(t)

	var res HitTestResult
	if !HitTest(&res, clip, f32.Pt(50, 50)) {
		t.Fatal("expected hit")
	}
	if len(res.Hits) != 3 {
		t.Fatalf("want 3 hits, got %d: %v", len(res.Hits), res.Hits)
	}
	// Hits are recorded deepest first.
	if res.Hits[0].Object != region {
		t.Errorf("want innermost hit on region, got %T", res.Hits[0].Object)
	}
	if want := f32.Pt(40, 40); res.Hits[0].Offset != want {
		t.Errorf("region-local position: want %v, got %v", want, res.Hits[0].Offset)
	}
}

func TestHitTestMiss(t *testing.T) {
	clip, _ := hitTree(t)

	tests := []struct {
		name string
		pos  f32.Point
	}{
		{"in padding, outside region", f32.Pt(5, 5)},
		{"outside object", f32.Pt(150, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res HitTestResult
			if HitTest(&res, clip, tt.pos) {
				t.Fatalf("unexpected hit: %v", res.Hits)
			}
			if len(res.Hits) != 0 {
				t.Fatalf("want no hits, got %v", res.Hits)
			}
		})
	}
}

func TestHitTestResultReuse(t *testing.T) {
	clip, _ := hitTree(t)

	var res HitTestResult
	HitTest(&res, clip, f32.Pt(50, 50))
	res.Reset()
	if len(res.Hits) != 0 {
		t.Fatal("reset did not clear hits")
	}
	if !HitTest(&res, clip, f32.Pt(50, 50)) {
		t.Fatal("expected hit after reset")
	}
}

func TestPipelineRelayout(t *testing.T) {
	owner := NewPipelineOwner()
	view := NewView()
	view.SetConfiguration(tight(100, 100))
	p := NewPadding(Inset{Left: 10, Top: 10, Right: 10, Bottom: 10})
	fill := &FillColor{}
	SetChild(p, fill)
	SetChild(view, p)
	owner.SetRootNode(view)
	view.PrepareInitialFrame()

	owner.FlushLayout()
	if want := f32.Pt(80, 80); fill.Handle().Size() != want {
		t.Fatalf("initial layout: want %v, got %v", want, fill.Handle().Size())
	}

	var invalidated bool
	owner.OnNeedVisualUpdate = func() { invalidated = true }
	p.SetInset(Inset{Left: 20, Top: 20, Right: 20, Bottom: 20})
	if !invalidated {
		t.Fatal("SetInset did not request a visual update")
	}

	owner.FlushLayout()
	if want := f32.Pt(60, 60); fill.Handle().Size() != want {
		t.Fatalf("after inset change: want %v, got %v", want, fill.Handle().Size())
	}
	if want := f32.Pt(20, 20); fill.Handle().Offset() != want {
		t.Fatalf("after inset change: want offset %v, got %v", want, fill.Handle().Offset())
	}
}

func TestViewSizedByChild(t *testing.T) {
	owner := NewPipelineOwner()
	view := NewView()
	view.SetConfiguration(loose(200, 200))
	c := &Constrained{}
	c.SetExtraConstraints(tight(50, 50))
	SetChild(view, c)
	owner.SetRootNode(view)
	view.PrepareInitialFrame()

	owner.FlushLayout()
	if want := f32.Pt(50, 50); view.Handle().Size() != want {
		t.Fatalf("want %v, got %v", want, view.Handle().Size())
	}
}

func TestSetRootNodeDetaches(t *testing.T) {
	owner := NewPipelineOwner()
	view := NewView()
	view.SetConfiguration(tight(10, 10))
	fill := &FillColor{}
	SetChild(view, fill)
	owner.SetRootNode(view)

	if fill.Handle().Owner() != owner {
		t.Fatal("child not attached")
	}
	owner.SetRootNode(nil)
	if fill.Handle().Owner() != nil {
		t.Fatal("child still attached after root removal")
	}
}

type countingBox struct {
	Box
	paints int
}

func (c *countingBox) VisitChildren(yield func(Object) bool) {}

func (c *countingBox) PerformLayout() f32.Point {
	return c.Handle().Constraints().Min
}

func (c *countingBox) PerformPaint(_ *Renderer, ops *op.Ops) {
	c.paints++
}

func TestRendererCachesOps(t *testing.T) {
	r := NewRenderer()
	obj := &countingBox{}
	Layout(obj, tight(10, 10), false)

	var ops op.Ops
	r.Paint(obj).Add(&ops)
	if obj.paints != 1 {
		t.Fatalf("want 1 paint, got %d", obj.paints)
	}
	r.Paint(obj).Add(&ops)
	if obj.paints != 1 {
		t.Fatalf("clean object repainted: %d paints", obj.paints)
	}

	MarkNeedsPaint(obj)
	r.Paint(obj).Add(&ops)
	if obj.paints != 2 {
		t.Fatalf("want 2 paints after invalidation, got %d", obj.paints)
	}
}

func TestFillColorRepaintOnColorChange(t *testing.T) {
	fc := &FillColor{}
	fc.SetColor(color.NRGBA{R: 255, A: 255})
	Layout(fc, tight(10, 10), false)

	r := NewRenderer()
	var ops op.Ops
	r.Paint(fc).Add(&ops)

	fc.SetColor(color.NRGBA{G: 255, A: 255})
	if !fc.Handle().needsPaint {
		t.Fatal("color change did not mark the object for repaint")
	}

	r.Paint(fc).Add(&ops)
	fc.SetColor(color.NRGBA{G: 255, A: 255})
	if fc.Handle().needsPaint {
		t.Fatal("setting the same color marked the object for repaint")
	}
}

func TestFormatTree(t *testing.T) {
	clip, _ := hitTree(t)
	s := FormatTree(clip)
	if s == "" {
		t.Fatal("empty tree dump")
	}
}
