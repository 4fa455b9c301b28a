package render

import (
	"slices"
	"time"

	"github.com/flickui/flick/mem"

	"gioui.org/op"
)

// PipelineOwner drives the rendering pipeline for one tree: it collects
// dirty nodes and flushes them in layout, then paint order once per frame.
type PipelineOwner struct {
	renderer           *Renderer
	rootNode           Object
	nodesNeedingLayout mem.DoubleBufferedSlice[Object]

	// OnNeedVisualUpdate is called when a node becomes dirty and a new
	// frame should be scheduled.
	OnNeedVisualUpdate func()

	nextFrameCallbacks mem.DoubleBufferedSlice[func(now time.Time)]
}

func NewPipelineOwner() *PipelineOwner {
	return &PipelineOwner{
		renderer: NewRenderer(),
	}
}

func (o *PipelineOwner) RootNode() Object { return o.rootNode }

func (o *PipelineOwner) SetRootNode(root Object) {
	if o.rootNode == root {
		return
	}
	if o.rootNode != nil {
		Detach(o.rootNode)
	}
	o.rootNode = root
	if root != nil {
		Attach(root, o)
	}
}

func (o *PipelineOwner) RequestVisualUpdate() {
	if o.OnNeedVisualUpdate != nil {
		o.OnNeedVisualUpdate()
	}
}

// AddNextFrameCallback schedules fn to run at the start of the next frame.
// Animations re-add themselves until they are done.
func (o *PipelineOwner) AddNextFrameCallback(fn func(now time.Time)) {
	o.nextFrameCallbacks.Front = append(o.nextFrameCallbacks.Front, fn)
	o.RequestVisualUpdate()
}

// RunFrameCallbacks runs the callbacks scheduled for this frame. Callbacks
// added while running are deferred to the next frame.
func (o *PipelineOwner) RunFrameCallbacks(now time.Time) {
	fns := o.nextFrameCallbacks.Front
	o.nextFrameCallbacks.Swap()

	for _, fn := range fns {
		fn(now)
	}
}

func (o *PipelineOwner) FlushLayout() {
	for len(o.nodesNeedingLayout.Front) != 0 {
		dirtyNodes := o.nodesNeedingLayout.Front
		o.nodesNeedingLayout.Swap()
		slices.SortFunc(dirtyNodes, func(a, b Object) int {
			return a.Handle().depth - b.Handle().depth
		})
		for _, node := range dirtyNodes {
			if node.Handle().needsLayout && node.Handle().owner == o {
				relayout(node)
			}
		}
	}
}

// relayout lays out a relayout boundary under its existing constraints.
func relayout(obj Object) {
	h := obj.Handle()
	h.size = obj.PerformLayout()
	h.needsLayout = false
	MarkNeedsPaint(obj)
}

func (o *PipelineOwner) FlushPaint(ops *op.Ops) {
	if o.rootNode != nil {
		o.renderer.Paint(o.rootNode).Add(ops)
	}
}

// Dispose tears down the pipeline, detaching the tree and dropping all
// dirty state and cached ops.
func (o *PipelineOwner) Dispose() {
	o.SetRootNode(nil)
	o.nodesNeedingLayout = mem.DoubleBufferedSlice[Object]{}
	o.nextFrameCallbacks = mem.DoubleBufferedSlice[func(now time.Time)]{}
	o.renderer = NewRenderer()
}
