// Package render implements the render object tree: retained objects that
// lay themselves out under constraints, paint into cached Gio operation
// lists, and answer hit tests.
package render

import (
	"fmt"
	"strings"

	"github.com/flickui/flick/debug"
	"github.com/flickui/flick/f32"

	"gioui.org/op"
)

// TODO implement parentUsesSize optimization
// TODO support baseline stuff
// TODO accessibility

// OPT if we could call op.Ops directly, then we wouldn't have to repaint parents, because their cached ops
//   would still be calling the repainted ops of the child. However, Gio makes us go through macros, and
//   macros record both the start and end PC, and we can't expect those to remain the same.

type Object interface {
	Handle() *ObjectHandle
	// PerformLayout computes the object's size under the constraints stored
	// on its handle, laying out children in the process.
	//
	// Don't call PerformLayout directly. Use [Layout] instead.
	PerformLayout() f32.Point
	// PerformPaint paints the object at the origin.
	//
	// Don't call PerformPaint directly. Use [Renderer.Paint] instead.
	PerformPaint(r *Renderer, ops *op.Ops)
	VisitChildren(yield func(Object) bool)
}

// SizedByParenter marks objects whose size depends on nothing but their
// constraints.
type SizedByParenter interface {
	SizedByParent()
}

// Disposer is implemented by objects that hold resources beyond their
// cached paint ops.
type Disposer interface {
	Dispose()
}

// ObjectHandle holds the tree bookkeeping shared by all render objects.
// Embed it (or [Box]) in every implementation of Object.
type ObjectHandle struct {
	parent           Object
	owner            *PipelineOwner
	size             f32.Point
	offset           f32.Point
	constraints      Constraints
	relayoutBoundary Object
	depth            int
	needsLayout      bool
	needsPaint       bool

	HitTestBehavior HitTestBehavior
}

func (h *ObjectHandle) Handle() *ObjectHandle { return h }
func (h *ObjectHandle) Parent() Object        { return h.parent }
func (h *ObjectHandle) Owner() *PipelineOwner { return h.owner }

// Size returns the size computed by the last layout.
func (h *ObjectHandle) Size() f32.Point { return h.size }

// Offset returns the object's position relative to its parent. It is set by
// the parent during layout.
func (h *ObjectHandle) Offset() f32.Point { return h.offset }

func (h *ObjectHandle) Constraints() Constraints { return h.constraints }

type Box struct {
	ObjectHandle
}

type Constraints struct {
	Min, Max f32.Point
}

func (c Constraints) Enforce(oc Constraints) Constraints {
	return Constraints{
		Min: f32.Point{
			X: f32.Clamp(c.Min.X, oc.Min.X, oc.Max.X),
			Y: f32.Clamp(c.Min.Y, oc.Min.Y, oc.Max.Y),
		},
		Max: f32.Point{
			X: f32.Clamp(c.Max.X, oc.Min.X, oc.Max.X),
			Y: f32.Clamp(c.Max.Y, oc.Min.Y, oc.Max.Y),
		},
	}
}

// Constrain a size so each dimension is in the range [min;max].
func (c Constraints) Constrain(size f32.Point) f32.Point {
	if min := c.Min.X; size.X < min {
		size.X = min
	}
	if min := c.Min.Y; size.Y < min {
		size.Y = min
	}
	if max := c.Max.X; size.X > max {
		size.X = max
	}
	if max := c.Max.Y; size.Y > max {
		size.Y = max
	}
	return size
}

// Tight reports whether the constraints admit exactly one size.
func (c Constraints) Tight() bool {
	return c.Min == c.Max
}

type SingleChild struct {
	Child Object
}

func (c *SingleChild) VisitChildren(yield func(Object) bool) {
	if c.Child != nil {
		yield(c.Child)
	}
}

func (c *SingleChild) childSlot() *Object { return &c.Child }

type ManyChildren struct {
	children []Object
}

func (c *ManyChildren) VisitChildren(yield func(Object) bool) {
	for _, child := range c.children {
		if !yield(child) {
			break
		}
	}
}

func (c *ManyChildren) childList() *[]Object { return &c.children }

// ObjectWithChild is an Object with a single child slot. It is satisfied by
// embedding [SingleChild].
type ObjectWithChild interface {
	Object
	childSlot() *Object
}

// ObjectWithChildren is an Object with an ordered list of children. It is
// satisfied by embedding [ManyChildren].
type ObjectWithChildren interface {
	Object
	childList() *[]Object
}

// SetChild replaces parent's child. A nil child clears the slot.
func SetChild(parent ObjectWithChild, child Object) {
	slot := parent.childSlot()
	if old := *slot; old != nil {
		dropChild(parent, old)
	}
	*slot = child
	if child != nil {
		adoptChild(parent, child)
	}
	MarkNeedsLayout(parent)
}

// InsertChild inserts child at index. Indexes outside the current list are
// clamped.
func InsertChild(parent ObjectWithChildren, child Object, index int) {
	list := parent.childList()
	index = clampIndex(index, len(*list))
	*list = append(*list, nil)
	copy((*list)[index+1:], (*list)[index:])
	(*list)[index] = child
	adoptChild(parent, child)
	MarkNeedsLayout(parent)
}

// MoveChild moves child to newIndex within parent's child list.
func MoveChild(parent ObjectWithChildren, child Object, newIndex int) {
	list := parent.childList()
	old := -1
	for i, c := range *list {
		if c == child {
			old = i
			break
		}
	}
	debug.Assertf(old >= 0, "MoveChild: %T is not a child of %T", child, parent)
	newIndex = clampIndex(newIndex, len(*list)-1)
	if old == newIndex {
		return
	}
	copy((*list)[old:], (*list)[old+1:])
	(*list)[len(*list)-1] = nil
	copy((*list)[newIndex+1:], (*list)[newIndex:])
	(*list)[newIndex] = child
	MarkNeedsLayout(parent)
}

// RemoveChild removes child from parent's child list.
func RemoveChild(parent ObjectWithChildren, child Object) {
	list := parent.childList()
	for i, c := range *list {
		if c == child {
			copy((*list)[i:], (*list)[i+1:])
			(*list)[len(*list)-1] = nil
			*list = (*list)[:len(*list)-1]
			dropChild(parent, child)
			MarkNeedsLayout(parent)
			return
		}
	}
	debug.Assertf(false, "RemoveChild: %T is not a child of %T", child, parent)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func adoptChild(parent, child Object) {
	h := child.Handle()
	h.parent = parent
	// The subtree has to lay out again under its new parent.
	h.needsLayout = true
	if owner := parent.Handle().owner; owner != nil {
		Attach(child, owner)
	}
}

func dropChild(parent, child Object) {
	Detach(child)
	child.Handle().parent = nil
}

// Attach hands the subtree rooted at obj to owner. Dirty state accumulated
// while detached is rescheduled.
func Attach(obj Object, owner *PipelineOwner) {
	h := obj.Handle()
	h.owner = owner
	if h.parent != nil {
		h.depth = h.parent.Handle().depth + 1
	}
	if h.needsLayout && h.relayoutBoundary != nil {
		// Skipped if the object has never been laid out at all;
		// ScheduleInitialLayout handles that case.
		h.needsLayout = false
		MarkNeedsLayout(obj)
	}
	if h.needsPaint {
		h.needsPaint = false
		MarkNeedsPaint(obj)
	}
	obj.VisitChildren(func(child Object) bool {
		Attach(child, owner)
		return true
	})
}

// Detach removes the subtree rooted at obj from its pipeline owner,
// dropping cached paint ops.
func Detach(obj Object) {
	h := obj.Handle()
	if h.owner != nil {
		h.owner.renderer.Forget(obj)
	}
	h.owner = nil
	obj.VisitChildren(func(child Object) bool {
		Detach(child)
		return true
	})
}

// Dispose releases the resources held by obj. The object must already be
// removed from the tree.
func Dispose(obj Object) {
	h := obj.Handle()
	if h.owner != nil {
		h.owner.renderer.Forget(obj)
	}
	if d, ok := obj.(Disposer); ok {
		d.Dispose()
	}
}

// MarkNeedsLayout schedules the object's relayout boundary for layout.
func MarkNeedsLayout(obj Object) {
	h := obj.Handle()
	if h.needsLayout {
		return
	}
	h.needsLayout = true
	if h.relayoutBoundary != obj && h.parent != nil {
		MarkNeedsLayout(h.parent)
	} else if h.owner != nil {
		h.owner.nodesNeedingLayout.Front = append(h.owner.nodesNeedingLayout.Front, obj)
		h.owner.RequestVisualUpdate()
	}
}

// MarkNeedsPaint schedules the object for repainting. Ancestors are
// repainted as well, because their cached ops embed the object's ops.
func MarkNeedsPaint(obj Object) {
	h := obj.Handle()
	if h.needsPaint {
		return
	}
	h.needsPaint = true
	if h.parent != nil {
		MarkNeedsPaint(h.parent)
	} else if h.owner != nil {
		h.owner.RequestVisualUpdate()
	}
}

// Layout lays out obj under cs and returns its size. parentUsesSize reports
// whether the caller's own layout depends on the resulting size; objects
// whose parents don't are relayout boundaries, as are objects with tight
// constraints.
func Layout(obj Object, cs Constraints, parentUsesSize bool) f32.Point {
	h := obj.Handle()
	debug.Assertf(cs.Min.X >= 0 && cs.Min.Y >= 0 && cs.Min.X <= cs.Max.X && cs.Min.Y <= cs.Max.Y,
		"constraints %v are malformed", cs)

	_, sizedByParent := obj.(SizedByParenter)
	var boundary Object
	if !parentUsesSize || sizedByParent || cs.Tight() || h.parent == nil {
		boundary = obj
	} else {
		boundary = h.parent.Handle().relayoutBoundary
	}
	if !h.needsLayout && cs == h.constraints && h.relayoutBoundary == boundary {
		return h.size
	}
	h.constraints = cs
	h.relayoutBoundary = boundary
	sz := obj.PerformLayout()
	debug.Assertf(sz.X >= cs.Min.X && sz.X <= cs.Max.X && sz.Y >= cs.Min.Y && sz.Y <= cs.Max.Y,
		"(%T).PerformLayout violated constraints %v by computing size %v", obj, cs, sz)
	h.size = sz
	h.needsLayout = false
	MarkNeedsPaint(obj)
	return sz
}

// ScheduleInitialLayout marks the root of a freshly attached tree for
// layout.
func ScheduleInitialLayout(obj Object) {
	h := obj.Handle()
	h.needsLayout = true
	h.relayoutBoundary = obj
	h.owner.nodesNeedingLayout.Front = append(h.owner.nodesNeedingLayout.Front, obj)
	h.owner.RequestVisualUpdate()
}

// ScheduleInitialPaint marks the root of a freshly attached tree for
// painting.
func ScheduleInitialPaint(obj Object) {
	obj.Handle().needsPaint = true
}

func FormatTree(root Object) string {
	var sb strings.Builder

	seen := map[Object]struct{}{}
	var formatTree func(root Object, depth int)
	formatTree = func(root Object, depth int) {
		if _, ok := seen[root]; ok {
			panic("render object tree is actually circular graph")
		}
		seen[root] = struct{}{}
		fmt.Fprintf(&sb, "%s(%[2]T)(%[2]p) (size: %s, offset: %s)\n",
			strings.Repeat("\t", depth), root, root.Handle().Size(), root.Handle().Offset())
		root.VisitChildren(func(o Object) bool {
			formatTree(o, depth+1)
			return true
		})
	}
	formatTree(root, 0)

	return sb.String()
}

// Renderer caches each object's paint ops so that unchanged subtrees are
// replayed rather than repainted.
type Renderer struct {
	ops map[Object]cachedOps
}

type cachedOps struct {
	ops  *op.Ops
	call op.CallOp
}

func NewRenderer() *Renderer {
	return &Renderer{
		ops: make(map[Object]cachedOps),
	}
}

func (r *Renderer) Paint(obj Object) op.CallOp {
	h := obj.Handle()
	if !h.needsPaint {
		if cached, ok := r.ops[obj]; ok {
			return cached.call
		}
	}
	h.needsPaint = false

	var ops *op.Ops
	if cached, ok := r.ops[obj]; ok {
		ops = cached.ops
		ops.Reset()
	} else {
		ops = new(op.Ops)
	}
	m := op.Record(ops)
	obj.PerformPaint(r, ops)
	call := m.Stop()
	r.ops[obj] = cachedOps{ops, call}
	return call
}

// Forget drops the cached ops for obj.
func (r *Renderer) Forget(obj Object) {
	delete(r.ops, obj)
}
