package widget

import (
	"github.com/flickui/flick/debug"
	"github.com/flickui/flick/render"
)

var _ RenderObjectWidget = (*View)(nil)
var _ RenderObjectElement = (*viewElement)(nil)

// View is the root widget of a tree. It bridges the widget tree to a
// pipeline owner's render tree.
type View struct {
	PipelineOwner *render.PipelineOwner
	Child         Widget
}

func NewView(root Widget, po *render.PipelineOwner) *View {
	return &View{
		PipelineOwner: po,
		Child:         root,
	}
}

// Attach inflates the view into element, or mounts a fresh root element
// if element is nil. The returned element is the root of the tree.
func (w *View) Attach(owner *BuildOwner, element *viewElement) *viewElement {
	if element == nil {
		element = w.CreateElement().(*viewElement)
		element.BuildOwner = owner
		owner.BuildScope(element, func() {
			Mount(element, nil, 0)
		})
	} else {
		owner.BuildScope(element, func() {
			Update(element, w)
		})
	}
	return element
}

// CreateElement implements RenderObjectWidget.
func (w *View) CreateElement() Element {
	el := &viewElement{pipelineOwner: w.PipelineOwner}
	el.widget = w
	return el
}

// CreateRenderObject implements RenderObjectWidget.
func (w *View) CreateRenderObject(ctx BuildContext) render.Object {
	return render.NewView()
}

// Key implements RenderObjectWidget. A view is only ever reconciled
// against itself.
func (w *View) Key() any { return w }

// UpdateRenderObject implements RenderObjectWidget.
func (*View) UpdateRenderObject(ctx BuildContext, obj render.Object) {}

type viewElement struct {
	RenderObjectElementHandle
	child Element

	pipelineOwner *render.PipelineOwner
}

// SetConfiguration updates the constraints imposed by the output surface.
func (el *viewElement) SetConfiguration(cs render.ViewConfiguration) {
	el.RenderObject.(*render.View).SetConfiguration(cs)
}

func (el *viewElement) VisitChildren(yield func(e Element) bool) {
	if el.child == nil {
		return
	}
	yield(el.child)
}

func (el *viewElement) ForgetChild(child Element) {
	el.child = nil
}

func (el *viewElement) updateChild() {
	child := el.widget.(*View).Child
	el.child = UpdateChild(el, el.child, child, 0)
}

func (el *viewElement) Transition(t ElementTransition) {
	switch t.Kind {
	case ElementMounted:
		h := el.RenderHandle()
		h.RenderObject = h.widget.(RenderObjectWidget).CreateRenderObject(el)
		el.pipelineOwner.SetRootNode(h.RenderObject)
		rebuild(el)
		h.RenderObject.(*render.View).PrepareInitialFrame()
	case ElementUpdated:
		forceRebuild(el)
	case ElementActivated:
		el.pipelineOwner.SetRootNode(el.RenderObject)
	case ElementDeactivating:
		el.pipelineOwner.SetRootNode(nil)
	case ElementUnmounted:
		el.pipelineOwner.Dispose()
		el.RenderObject = nil
	}
}

func (el *viewElement) PerformRebuild() {
	el.updateChild()
	el.dirty = false
}

func (el *viewElement) AttachRenderObject(slot int) {
	el.slot = slot
}

func (el *viewElement) InsertRenderObjectChild(child render.Object, slot int) {
	render.SetChild(el.RenderObject.(render.ObjectWithChild), child)
}

func (el *viewElement) RemoveRenderObjectChild(child render.Object, slot int) {
	render.SetChild(el.RenderObject.(render.ObjectWithChild), nil)
}

func (el *viewElement) MoveRenderObjectChild(child render.Object, newSlot int) {
	debug.Assertf(false, "view has a single child")
}
