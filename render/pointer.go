package render

import (
	"github.com/flickui/flick/f32"
	"github.com/flickui/flick/io/pointer"

	"gioui.org/op"
)

var _ Object = (*PointerRegion)(nil)
var _ PointerEventHandler = (*PointerRegion)(nil)

type HitTestEntry struct {
	Object Object
	// Offset is the hit position in the object's own coordinate space.
	Offset f32.Point
}

type HitTestResult struct {
	Hits           []HitTestEntry
	transform      f32.Affine2D
	transformStack []f32.Affine2D
}

// Reset clears the result for reuse.
func (ht *HitTestResult) Reset() {
	ht.Hits = ht.Hits[:0]
	ht.transform = f32.Affine2D{}
	ht.transformStack = ht.transformStack[:0]
}

func (ht *HitTestResult) PushTransform(trans f32.Affine2D) {
	ht.transformStack = append(ht.transformStack, ht.transform)
	ht.transform = ht.transform.Mul(trans)
}

func (ht *HitTestResult) PopTransform() {
	if len(ht.transformStack) > 0 {
		ht.transform = ht.transformStack[len(ht.transformStack)-1]
		ht.transformStack = ht.transformStack[:len(ht.transformStack)-1]
	}
}

func (ht *HitTestResult) Transform(p f32.Point) f32.Point {
	return ht.transform.Transform(p)
}

func (ht *HitTestResult) PushOffset(offset f32.Point) {
	ht.PushTransform(f32.Affine2D{}.Offset(offset).Invert())
}

func (ht *HitTestResult) Add(obj Object, pos f32.Point) {
	ht.Hits = append(ht.Hits, HitTestEntry{obj, pos})
}

// HitTester is implemented by objects with a custom hit test, for example
// non-rectangular ones.
type HitTester interface {
	HitTest(res *HitTestResult, pos f32.Point) bool
}

type ChildrenHitTester interface {
	HitTestChildren(res *HitTestResult, pos f32.Point) bool
}

// HitTest tests pos against obj and its descendants, recording hit objects
// in res, front to back. pos is in the coordinate space the current
// transform of res maps from; for the root that is the object's own space.
func HitTest(res *HitTestResult, obj Object, pos f32.Point) bool {
	if ht, ok := obj.(HitTester); ok {
		return ht.HitTest(res, pos)
	}
	h := obj.Handle()
	tpos := res.Transform(pos)
	if !(f32.Rectangle{Max: h.size}).Contains(tpos) {
		return false
	}
	// If we hit a child, or are opaque, then we've been hit
	hit := HitTestChildren(res, obj, pos) || h.HitTestBehavior == Opaque
	// If we're translucent then we're still part of the result, but don't prevent other objects from
	// being hit.
	if hit || h.HitTestBehavior == Translucent {
		res.Add(obj, tpos)
	}
	return hit
}

func HitTestChildren(res *HitTestResult, obj Object, pos f32.Point) bool {
	if ht, ok := obj.(ChildrenHitTester); ok {
		return ht.HitTestChildren(res, pos)
	}
	hit := false
	obj.VisitChildren(func(o Object) bool {
		res.PushOffset(o.Handle().offset)
		defer res.PopTransform()
		if HitTest(res, o, pos) {
			hit = true
		}
		return true
	})
	return hit
}

type HitTestBehavior uint8

const (
	// DeferToChild objects count as hit only when a child is hit.
	DeferToChild HitTestBehavior = iota
	// Opaque objects count as hit within their bounds and prevent objects
	// behind them from being hit.
	Opaque
	// Translucent objects receive events within their bounds but let
	// objects behind them be hit as well.
	Translucent
)

// PointerEventHandler is implemented by objects that want the pointer
// events whose hit test they appear in.
type PointerEventHandler interface {
	HandlePointerEvent(hit HitTestEntry, ev pointer.Event)
}

// PointerRegion calls its callbacks for pointer events within its bounds.
type PointerRegion struct {
	Box
	SingleChild

	OnPress   func(hit HitTestEntry, ev pointer.Event)
	OnRelease func(hit HitTestEntry, ev pointer.Event)
	OnMove    func(hit HitTestEntry, ev pointer.Event)
	OnScroll  func(hit HitTestEntry, ev pointer.Event)
	// OnAll sees every event, including those with more specific
	// callbacks.
	OnAll func(hit HitTestEntry, ev pointer.Event)
}

// PerformLayout implements Object.
func (c *PointerRegion) PerformLayout() f32.Point {
	if c.Child != nil {
		return Layout(c.Child, c.Handle().Constraints(), true)
	}
	return c.Handle().Constraints().Max
}

// PerformPaint implements Object.
func (c *PointerRegion) PerformPaint(r *Renderer, ops *op.Ops) {
	if c.Child != nil {
		r.Paint(c.Child).Add(ops)
	}
}

func (c *PointerRegion) HandlePointerEvent(hit HitTestEntry, ev pointer.Event) {
	if c.OnAll != nil {
		c.OnAll(hit, ev)
	}
	switch ev.Kind {
	case pointer.Press:
		if c.OnPress != nil {
			c.OnPress(hit, ev)
		}
	case pointer.Release:
		if c.OnRelease != nil {
			c.OnRelease(hit, ev)
		}
	case pointer.Move:
		if c.OnMove != nil {
			c.OnMove(hit, ev)
		}
	case pointer.Scroll:
		if c.OnScroll != nil {
			c.OnScroll(hit, ev)
		}
	}
}
