// Package widget implements the widget tree: immutable widget
// descriptions are inflated into elements, elements own state and render
// objects, and a BuildOwner rebuilds the dirty parts of the tree once per
// frame.
package widget

import (
	"fmt"
	"slices"
	"unsafe"

	"github.com/flickui/flick/debug"
	"github.com/flickui/flick/gesture"
	"github.com/flickui/flick/render"
)

// Widget describes part of the user interface. Widgets are immutable;
// all mutable state lives in elements, states and render objects.
type Widget interface {
	CreateElement() Element
	// Key distinguishes widgets of the same type during reconciliation.
	// Nil means the type alone decides.
	Key() any
}

// SingleChildWidget is a widget with at most one child.
type SingleChildWidget interface {
	Widget
	GetChild() Widget
}

// MultiChildWidget is a widget with an ordered child list.
type MultiChildWidget interface {
	Widget
	GetChildren() []Widget
}

// StatefulWidget is a widget with mutable state that outlives rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

type WidgetBuilder interface {
	Build() Widget
}

// RenderObjectWidget is a widget that is backed by a render object.
type RenderObjectWidget interface {
	Widget
	CreateRenderObject(ctx BuildContext) render.Object
	UpdateRenderObject(ctx BuildContext, obj render.Object)
}

type BuildContext interface{}

// State carries the mutable state of a StatefulWidget. Lifecycle changes
// arrive through Transition.
type State interface {
	WidgetBuilder
	GetStateHandle() *StateHandle
	Transition(t StateTransition)
}

type StateHandle struct {
	// Widget is the widget currently configuring this state.
	Widget  Widget
	Element Element
}

func (h *StateHandle) GetStateHandle() *StateHandle { return h }

type StateTransitionKind uint8

const (
	StateInitializing StateTransitionKind = iota
	StateUpdatedWidget
	StateChangedDependencies
	StateDeactivating
	StateActivating
	StateDisposing
)

type StateTransition struct {
	Kind StateTransitionKind

	// The old widget for Kind == StateUpdatedWidget
	OldWidget Widget
}

type ElementTransitionKind uint8

const (
	ElementMounted ElementTransitionKind = iota
	ElementChangedDependencies
	ElementUpdated
	ElementDeactivating
	ElementActivated
	ElementUnmounted
)

type ElementTransition struct {
	Kind ElementTransitionKind

	// The old widget for Kind == ElementUpdated
	OldWidget Widget

	// The parent and slot for Kind == ElementMounted
	Parent  Element
	NewSlot int
}

// Element is a widget instantiated at a location in the tree.
type Element interface {
	Handle() *ElementHandle
	Transition(t ElementTransition)
	PerformRebuild()
}

const (
	ElementLifecycleIdle = iota
	ElementLifecycleActive
	ElementLifecycleInactive
	ElementLifecycleDefunct
)

type ElementHandle struct {
	parent         Element
	slot           int
	lifecycleState int
	depth          int
	BuildOwner     *BuildOwner
	dirty          bool
	inDirtyList    bool
	widget         Widget
}

func (h *ElementHandle) Handle() *ElementHandle { return h }
func (h *ElementHandle) Parent() Element        { return h.parent }
func (h *ElementHandle) Slot() int              { return h.slot }
func (h *ElementHandle) Widget() Widget         { return h.widget }

// widgetChildren returns a widget's declared children, using the child
// accessor interfaces.
func widgetChildren(w Widget) []Widget {
	switch w := w.(type) {
	case MultiChildWidget:
		return w.GetChildren()
	case SingleChildWidget:
		if child := w.GetChild(); child != nil {
			return []Widget{child}
		}
	}
	return nil
}

func MarkNeedsBuild(el Element) {
	h := el.Handle()
	if h.lifecycleState != ElementLifecycleActive {
		return
	}
	if h.dirty {
		return
	}
	h.dirty = true
	h.BuildOwner.scheduleBuildFor(el)
}

func Update(el Element, newWidget Widget) {
	oldWidget := el.Handle().widget
	el.Handle().widget = newWidget
	el.Transition(ElementTransition{Kind: ElementUpdated, OldWidget: oldWidget})
}

func Mount(el, parent Element, newSlot int) {
	h := el.Handle()
	h.parent = parent
	h.slot = newSlot
	h.lifecycleState = ElementLifecycleActive
	if parent != nil {
		h.depth = parent.Handle().depth + 1
		// The root element has its owner assigned before Mount.
		h.BuildOwner = parent.Handle().BuildOwner
	} else {
		h.depth = 1
	}
	h.dirty = true
	el.Transition(ElementTransition{Kind: ElementMounted, Parent: parent, NewSlot: newSlot})
}

func Unmount(el Element) {
	el.Handle().lifecycleState = ElementLifecycleDefunct
	el.Transition(ElementTransition{Kind: ElementUnmounted})
}

func Activate(el Element) {
	h := el.Handle()
	h.lifecycleState = ElementLifecycleActive
	if h.dirty {
		h.BuildOwner.scheduleBuildFor(el)
	}
	el.Transition(ElementTransition{Kind: ElementActivated})
}

func Deactivate(el Element) {
	el.Transition(ElementTransition{Kind: ElementDeactivating})
	el.Handle().lifecycleState = ElementLifecycleInactive
}

type ChildrenVisiter interface {
	VisitChildren(yield func(el Element) bool)
}

// VisitChildren visits an element's children, if it has any.
func VisitChildren(el Element, yield func(child Element) bool) {
	if el, ok := el.(ChildrenVisiter); ok {
		el.VisitChildren(yield)
	}
}

type ChildForgetter interface {
	ForgetChild(child Element)
}

// ForgetChild instructs an element to drop its reference to a child that
// is being moved elsewhere in the tree.
func ForgetChild(el Element, child Element) {
	if el, ok := el.(ChildForgetter); ok {
		el.ForgetChild(child)
	}
}

type renderObjectAttacher interface {
	AttachRenderObject(slot int)
}

func AttachRenderObject(el Element, slot int) {
	if el, ok := el.(renderObjectAttacher); ok {
		el.AttachRenderObject(slot)
		return
	}
	VisitChildren(el, func(child Element) bool {
		AttachRenderObject(child, slot)
		return true
	})
	el.Handle().slot = slot
}

type RenderObjectDetacher interface {
	AfterDetachRenderObject()
}

// DetachRenderObject recursively detaches render objects from their
// ancestor. Elements implementing RenderObjectDetacher additionally get
// AfterDetachRenderObject called.
func DetachRenderObject(el Element) {
	VisitChildren(el, func(child Element) bool {
		DetachRenderObject(child)
		return true
	})
	if el, ok := el.(RenderObjectDetacher); ok {
		el.AfterDetachRenderObject()
	}
}

// RenderObjectAttachingChild returns the child through which this element
// attaches a render object to an ancestor, or nil for elements that
// attach their own render object.
func RenderObjectAttachingChild(el Element) Element {
	if _, ok := el.(RenderObjectElement); ok {
		return nil
	}
	var out Element
	VisitChildren(el, func(child Element) bool {
		out = child
		return false
	})
	return out
}

type SlotUpdater interface {
	AfterUpdateSlot(oldSlot, newSlot int)
}

// UpdateSlot updates the element's slot. If the element implements
// SlotUpdater, AfterUpdateSlot is called afterwards.
func UpdateSlot(el Element, newSlot int) {
	h := el.Handle()
	old := h.slot
	h.slot = newSlot
	if el, ok := el.(SlotUpdater); ok {
		el.AfterUpdateSlot(old, newSlot)
	}
}

func updateSlotForChild(el, child Element, newSlot int) {
	var visit func(element Element)
	visit = func(element Element) {
		UpdateSlot(element, newSlot)
		if descendant := RenderObjectAttachingChild(element); descendant != nil {
			visit(descendant)
		}
	}
	visit(child)
}

// sameType reports whether a and b have the same dynamic type, without
// the allocations of reflect.
func sameType(a, b any) bool {
	return *(*unsafe.Pointer)(unsafe.Pointer(&a)) == *(*unsafe.Pointer)(unsafe.Pointer(&b))
}

func canUpdate(old, new Widget) bool {
	if !sameType(old, new) {
		return false
	}
	return old.Key() == new.Key()
}

func UpdateChild(el, child Element, newWidget Widget, newSlot int) Element {
	if newWidget == nil {
		if child != nil {
			deactivateChild(child)
		}
		return nil
	}

	if child == nil {
		return InflateWidget(el, newWidget, newSlot)
	}
	if child.Handle().widget == newWidget {
		if child.Handle().slot != newSlot {
			updateSlotForChild(el, child, newSlot)
		}
		return child
	}
	if canUpdate(child.Handle().widget, newWidget) {
		if child.Handle().slot != newSlot {
			updateSlotForChild(el, child, newSlot)
		}
		Update(child, newWidget)
		return child
	}
	deactivateChild(child)
	return InflateWidget(el, newWidget, newSlot)
}

func InflateWidget(parent Element, widget Widget, slot int) Element {
	newChild := widget.CreateElement()
	Mount(newChild, parent, slot)
	return newChild
}

func deactivateChild(child Element) {
	child.Handle().parent = nil
	DetachRenderObject(child)
	child.Handle().BuildOwner.inactiveElements.add(child)
}

func rebuild(el Element) {
	if el.Handle().lifecycleState != ElementLifecycleActive || !el.Handle().dirty {
		return
	}
	el.PerformRebuild()
	el.Handle().dirty = false
}

func forceRebuild(el Element) {
	if el.Handle().lifecycleState != ElementLifecycleActive {
		return
	}
	el.PerformRebuild()
	el.Handle().dirty = false
}

func sortElements(els []Element) {
	slices.SortFunc(els, func(a, b Element) int {
		ah := a.Handle()
		bh := b.Handle()
		if diff := ah.depth - bh.depth; diff != 0 {
			return diff
		}
		// Clean elements sort before dirty ones of the same depth.
		if ah.dirty != bh.dirty {
			if bh.dirty {
				return -1
			}
			return 1
		}
		return 0
	})
}

// BuildOwner tracks the dirty elements of one tree and the services the
// tree's widgets share.
type BuildOwner struct {
	dirtyElements               []Element
	inactiveElements            inactiveElements
	dirtyElementsNeedsResorting bool
	scheduledFlushDirtyElements bool

	// OnBuildScheduled is called when a build is first scheduled and a
	// new frame should be requested.
	OnBuildScheduled func()

	PipelineOwner *render.PipelineOwner
	// Gestures disambiguates the pointer gestures of every recognizer
	// in the tree.
	Gestures *gesture.ArenaManager
	// Focus routes key events to the focused widget.
	Focus *FocusManager
}

func NewBuildOwner(po *render.PipelineOwner) *BuildOwner {
	return &BuildOwner{
		PipelineOwner: po,
		Gestures:      &gesture.ArenaManager{},
		Focus:         &FocusManager{},
	}
}

func (o *BuildOwner) scheduleBuildFor(el Element) {
	if el.Handle().inDirtyList {
		o.dirtyElementsNeedsResorting = true
		return
	}
	if !o.scheduledFlushDirtyElements && o.OnBuildScheduled != nil {
		o.scheduledFlushDirtyElements = true
		o.OnBuildScheduled()
	}
	o.dirtyElements = append(o.dirtyElements, el)
	el.Handle().inDirtyList = true
}

// BuildScope rebuilds the dirty elements in depth order. Elements marked
// dirty during the scope are picked up in the same pass.
func (o *BuildOwner) BuildScope(context Element, callback func()) {
	if callback == nil && len(o.dirtyElements) == 0 {
		return
	}
	o.scheduledFlushDirtyElements = true
	if callback != nil {
		o.dirtyElementsNeedsResorting = false
		callback()
	}
	sortElements(o.dirtyElements)
	o.dirtyElementsNeedsResorting = false
	dirtyCount := len(o.dirtyElements)
	index := 0
	for index < dirtyCount {
		element := o.dirtyElements[index]
		rebuild(element)
		index++
		if dirtyCount < len(o.dirtyElements) || o.dirtyElementsNeedsResorting {
			sortElements(o.dirtyElements)
			o.dirtyElementsNeedsResorting = false
			dirtyCount = len(o.dirtyElements)
			for index > 0 && o.dirtyElements[index-1].Handle().dirty {
				// Previously dirty but inactive elements can move to the
				// right of the index during the resort. Walk the index
				// back to just past the right-most clean element.
				index--
			}
		}
	}
	for _, element := range o.dirtyElements {
		element.Handle().inDirtyList = false
	}
	clear(o.dirtyElements)
	o.dirtyElements = o.dirtyElements[:0]
	o.scheduledFlushDirtyElements = false
	o.dirtyElementsNeedsResorting = false
}

// FinalizeTree unmounts the elements that became unreachable during this
// frame's builds.
func (o *BuildOwner) FinalizeTree() {
	o.inactiveElements.unmountAll()
}

type inactiveElements struct {
	elements map[Element]struct{}
}

func (els *inactiveElements) add(el Element) {
	if el.Handle().lifecycleState == ElementLifecycleActive {
		els.deactivateRecursively(el)
	}
	if els.elements == nil {
		els.elements = make(map[Element]struct{})
	}
	els.elements[el] = struct{}{}
}

func (els *inactiveElements) deactivateRecursively(el Element) {
	Deactivate(el)
	VisitChildren(el, func(el Element) bool {
		els.deactivateRecursively(el)
		return true
	})
}

func (els *inactiveElements) unmount(el Element) {
	VisitChildren(el, func(child Element) bool {
		els.unmount(child)
		return true
	})
	Unmount(el)
}

func (els *inactiveElements) unmountAll() {
	elements := make([]Element, 0, len(els.elements))
	for el := range els.elements {
		elements = append(elements, el)
	}
	sortElements(elements)
	clear(els.elements)
	for i := len(elements) - 1; i >= 0; i-- {
		els.unmount(elements[i])
	}
}

// InteriorElement is an element that builds a child widget.
type InteriorElement interface {
	Element
	WidgetBuilder
}

func NewInteriorElement(w Widget) InteriorElement {
	el := &SimpleInteriorElement{}
	el.widget = w
	if w, ok := w.(StatefulWidget); ok {
		el.state = w.CreateState()
		sh := el.state.GetStateHandle()
		sh.Widget = w
		sh.Element = el
	}
	return el
}

// SimpleInteriorElement hosts a StatefulWidget's state, or builds a
// WidgetBuilder directly.
type SimpleInteriorElement struct {
	ElementHandle
	state State
	child Element
}

func (el *SimpleInteriorElement) VisitChildren(yield func(e Element) bool) {
	if el.child == nil {
		return
	}
	yield(el.child)
}

func (el *SimpleInteriorElement) ForgetChild(child Element) {
	el.child = nil
}

func (el *SimpleInteriorElement) State() State { return el.state }

func (el *SimpleInteriorElement) Transition(t ElementTransition) {
	switch t.Kind {
	case ElementMounted:
		if s := el.state; s != nil {
			s.Transition(StateTransition{Kind: StateInitializing})
			s.Transition(StateTransition{Kind: StateChangedDependencies})
		}
		rebuild(el)
	case ElementActivated:
		if s := el.state; s != nil {
			s.Transition(StateTransition{Kind: StateActivating})
		}
		MarkNeedsBuild(el)
	case ElementDeactivating:
		if s := el.state; s != nil {
			s.Transition(StateTransition{Kind: StateDeactivating})
		}
	case ElementUnmounted:
		if s := el.state; s != nil {
			h := s.GetStateHandle()
			s.Transition(StateTransition{Kind: StateDisposing})
			h.Element = nil
		}
	case ElementUpdated:
		if s := el.state; s != nil {
			h := s.GetStateHandle()
			oldWidget := h.Widget
			h.Widget = el.widget
			s.Transition(StateTransition{Kind: StateUpdatedWidget, OldWidget: oldWidget})
		}
		forceRebuild(el)
	}
}

func (el *SimpleInteriorElement) Build() Widget {
	if s := el.state; s != nil {
		return s.Build()
	}
	if w, ok := el.widget.(WidgetBuilder); ok {
		return w.Build()
	}
	panic(fmt.Sprintf("widget %T implements neither WidgetBuilder nor StatefulWidget", el.widget))
}

func (el *SimpleInteriorElement) PerformRebuild() {
	built := el.Build()
	el.child = UpdateChild(el, el.child, built, el.slot)
	el.dirty = false
}

// RenderObjectElement is an element backed by a render object.
type RenderObjectElement interface {
	Element

	RenderHandle() *RenderObjectElementHandle

	InsertRenderObjectChild(child render.Object, slot int)
	RemoveRenderObjectChild(child render.Object, slot int)
	MoveRenderObjectChild(child render.Object, newSlot int)

	AttachRenderObject(slot int)
}

type RenderObjectElementHandle struct {
	ElementHandle
	RenderObject                render.Object
	ancestorRenderObjectElement RenderObjectElement
}

func (h *RenderObjectElementHandle) RenderHandle() *RenderObjectElementHandle {
	return h
}

func (h *RenderObjectElementHandle) AfterUpdateSlot(oldSlot, newSlot int) {
	if ancestor := h.ancestorRenderObjectElement; ancestor != nil {
		ancestor.MoveRenderObjectChild(h.RenderObject, h.slot)
	}
}

func (h *RenderObjectElementHandle) AfterDetachRenderObject() {
	if h.ancestorRenderObjectElement != nil {
		h.ancestorRenderObjectElement.RemoveRenderObjectChild(h.RenderObject, h.slot)
		h.ancestorRenderObjectElement = nil
	}
	h.slot = 0
}

func findAncestorRenderObjectElement(el RenderObjectElement) RenderObjectElement {
	ancestor := el.Handle().Parent()
	for ancestor != nil {
		if _, ok := ancestor.(RenderObjectElement); ok {
			break
		}
		ancestor = ancestor.Handle().Parent()
	}
	if ancestor == nil {
		return nil
	}
	return ancestor.(RenderObjectElement)
}

// RenderObjectUnmountNotifyee is implemented by render object widgets
// that want to know when their render object leaves the tree.
type RenderObjectUnmountNotifyee interface {
	DidUnmountRenderObject(obj render.Object)
}

func NewRenderObjectElement(w RenderObjectWidget) *SimpleRenderObjectElement {
	el := &SimpleRenderObjectElement{}
	el.widget = w
	return el
}

// SimpleRenderObjectElement hosts a RenderObjectWidget and reconciles its
// children, with either a single child slot or an ordered child list
// depending on the render object.
type SimpleRenderObjectElement struct {
	RenderObjectElementHandle
	children          []Element
	forgottenChildren map[Element]struct{}
}

func (el *SimpleRenderObjectElement) VisitChildren(yield func(el Element) bool) {
	for _, child := range el.children {
		if _, ok := el.forgottenChildren[child]; ok {
			continue
		}
		if !yield(child) {
			break
		}
	}
}

func (el *SimpleRenderObjectElement) ForgetChild(child Element) {
	if el.forgottenChildren == nil {
		el.forgottenChildren = make(map[Element]struct{})
	}
	el.forgottenChildren[child] = struct{}{}
}

func (el *SimpleRenderObjectElement) Children() []Element { return el.children }

func (el *SimpleRenderObjectElement) Transition(t ElementTransition) {
	switch t.Kind {
	case ElementMounted:
		h := el.RenderHandle()
		h.RenderObject = h.widget.(RenderObjectWidget).CreateRenderObject(el)
		el.AttachRenderObject(t.NewSlot)
		rebuild(el)
		var children []Element
		for i, childWidget := range widgetChildren(h.widget) {
			children = append(children, InflateWidget(el, childWidget, i))
		}
		el.children = children
	case ElementUpdated:
		h := el.RenderHandle()
		h.widget.(RenderObjectWidget).UpdateRenderObject(el, h.RenderObject)
		el.dirty = false
		el.children = UpdateChildren(el, widgetChildren(h.widget), el.forgottenChildren)
		clear(el.forgottenChildren)
	case ElementUnmounted:
		h := el.RenderHandle()
		if n, ok := h.widget.(RenderObjectUnmountNotifyee); ok {
			n.DidUnmountRenderObject(h.RenderObject)
		}
		render.Dispose(h.RenderObject)
		h.RenderObject = nil
	}
}

func (el *SimpleRenderObjectElement) PerformRebuild() {
	h := el.RenderHandle()
	h.widget.(RenderObjectWidget).UpdateRenderObject(el, h.RenderObject)
	el.dirty = false
}

func (el *SimpleRenderObjectElement) AttachRenderObject(slot int) {
	h := el.RenderHandle()
	h.slot = slot
	h.ancestorRenderObjectElement = findAncestorRenderObjectElement(el)
	if h.ancestorRenderObjectElement != nil {
		h.ancestorRenderObjectElement.InsertRenderObjectChild(h.RenderObject, slot)
	}
}

func (el *SimpleRenderObjectElement) InsertRenderObjectChild(child render.Object, slot int) {
	switch obj := el.RenderObject.(type) {
	case render.ObjectWithChildren:
		render.InsertChild(obj, child, slot)
	case render.ObjectWithChild:
		render.SetChild(obj, child)
	default:
		debug.Assertf(false, "render object %T cannot have children", el.RenderObject)
	}
}

func (el *SimpleRenderObjectElement) RemoveRenderObjectChild(child render.Object, slot int) {
	switch obj := el.RenderObject.(type) {
	case render.ObjectWithChildren:
		render.RemoveChild(obj, child)
	case render.ObjectWithChild:
		render.SetChild(obj, nil)
	}
}

func (el *SimpleRenderObjectElement) MoveRenderObjectChild(child render.Object, newSlot int) {
	obj, ok := el.RenderObject.(render.ObjectWithChildren)
	debug.Assertf(ok, "render object %T cannot reorder children", el.RenderObject)
	render.MoveChild(obj, child, newSlot)
}

// ElementWithChildren is an element with an ordered child list.
type ElementWithChildren interface {
	Element
	Children() []Element
}

// UpdateChildren reconciles an element's child list against the new
// widget list, reusing elements where the widgets are compatible.
// Keyed widgets match by key anywhere in the list; unkeyed widgets match
// positionally.
func UpdateChildren(el ElementWithChildren, newWidgets []Widget, forgottenChildren map[Element]struct{}) []Element {
	oldChildren := el.Children()
	replaceWithNilIfForgotten := func(child Element) Element {
		if _, ok := forgottenChildren[child]; ok {
			return nil
		}
		return child
	}

	// Sync the head and tail of the two lists first; the middle is
	// matched through keys where possible.

	newChildrenTop := 0
	oldChildrenTop := 0
	newChildrenBottom := len(newWidgets) - 1
	oldChildrenBottom := len(oldChildren) - 1

	newChildren := make([]Element, len(newWidgets))

	// Update the top of the list.
	for (oldChildrenTop <= oldChildrenBottom) && (newChildrenTop <= newChildrenBottom) {
		oldChild := replaceWithNilIfForgotten(oldChildren[oldChildrenTop])
		newWidget := newWidgets[newChildrenTop]
		if oldChild == nil || !canUpdate(oldChild.Handle().widget, newWidget) {
			break
		}
		newChildren[newChildrenTop] = UpdateChild(el, oldChild, newWidget, newChildrenTop)
		newChildrenTop++
		oldChildrenTop++
	}

	// Scan the bottom of the list.
	for (oldChildrenTop <= oldChildrenBottom) && (newChildrenTop <= newChildrenBottom) {
		oldChild := replaceWithNilIfForgotten(oldChildren[oldChildrenBottom])
		newWidget := newWidgets[newChildrenBottom]
		if oldChild == nil || !canUpdate(oldChild.Handle().widget, newWidget) {
			break
		}
		oldChildrenBottom--
		newChildrenBottom--
	}

	// Collect the keyed children in the middle of the old list;
	// unkeyed ones there cannot match and are deactivated.
	haveOldChildren := oldChildrenTop <= oldChildrenBottom
	var oldKeyedChildren map[any]Element
	if haveOldChildren {
		oldKeyedChildren = map[any]Element{}
		for oldChildrenTop <= oldChildrenBottom {
			oldChild := replaceWithNilIfForgotten(oldChildren[oldChildrenTop])
			if oldChild != nil {
				if key := oldChild.Handle().widget.Key(); key != nil {
					oldKeyedChildren[key] = oldChild
				} else {
					deactivateChild(oldChild)
				}
			}
			oldChildrenTop++
		}
	}

	// Update the middle of the list.
	for newChildrenTop <= newChildrenBottom {
		var oldChild Element
		newWidget := newWidgets[newChildrenTop]
		if haveOldChildren {
			if key := newWidget.Key(); key != nil {
				oldChild = oldKeyedChildren[key]
				if oldChild != nil {
					if canUpdate(oldChild.Handle().widget, newWidget) {
						// Matched; remove it so it isn't deactivated below.
						delete(oldKeyedChildren, key)
					} else {
						oldChild = nil
					}
				}
			}
		}
		newChildren[newChildrenTop] = UpdateChild(el, oldChild, newWidget, newChildrenTop)
		newChildrenTop++
	}

	newChildrenBottom = len(newWidgets) - 1
	oldChildrenBottom = len(oldChildren) - 1

	// Update the bottom of the list.
	for (oldChildrenTop <= oldChildrenBottom) && (newChildrenTop <= newChildrenBottom) {
		oldChild := oldChildren[oldChildrenTop]
		newWidget := newWidgets[newChildrenTop]
		newChildren[newChildrenTop] = UpdateChild(el, oldChild, newWidget, newChildrenTop)
		newChildrenTop++
		oldChildrenTop++
	}

	// Deactivate any unmatched keyed children.
	for _, oldChild := range oldKeyedChildren {
		if _, ok := forgottenChildren[oldChild]; !ok {
			deactivateChild(oldChild)
		}
	}
	return newChildren
}
