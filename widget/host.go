package widget

import (
	"image"

	"github.com/flickui/flick/f32"
	"github.com/flickui/flick/io/key"
	"github.com/flickui/flick/io/pointer"
	"github.com/flickui/flick/render"

	"gioui.org/app"
	giokey "gioui.org/io/key"
	giopointer "gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// activationKeys are the key events we ask gio for: the keys that
// activate the focused control.
const activationKeys = giokey.Set(giokey.NameSpace + "|" + giokey.NameReturn + "|" + giokey.NameEnter)

// Run drives a widget tree inside a gio window until the window is
// closed. It owns the event loop: pointer events are hit tested against
// the render tree and fed through the gesture arena, key events go to
// the focused widget, and dirty widgets are rebuilt, laid out and
// painted once per frame.
func Run(win *app.Window, root Widget) error {
	po := render.NewPipelineOwner()
	bo := NewBuildOwner(po)
	po.OnNeedVisualUpdate = win.Invalidate
	bo.OnBuildScheduled = win.Invalidate

	rootEl := NewView(root, po).Attach(bo, nil)

	// tag identifies this window's input area to gio. All events funnel
	// through it; routing to widgets is ours.
	tag := new(int)

	var (
		ops      op.Ops
		hits     render.HitTestResult
		captures = map[pointer.ID][]captureTarget{}
	)
	for e := range win.Events() {
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			for _, ev := range e.Queue.Events(tag) {
				switch ev := ev.(type) {
				case giopointer.Event:
					dispatchPointer(bo, &hits, captures, pointer.FromRaw(ev))
				case giokey.Event:
					bo.Focus.HandleKey(key.FromRaw(ev))
				}
			}

			ops.Reset()
			declareInput(&ops, tag, e.Size)

			size := f32.FPt(e.Size)
			rootEl.SetConfiguration(render.Constraints{Min: size, Max: size})
			po.RunFrameCallbacks(e.Now)
			bo.BuildScope(rootEl, nil)
			po.FlushLayout()
			po.FlushPaint(&ops)
			bo.FinalizeTree()

			e.Frame(&ops)
		}
	}
	return nil
}

func declareInput(ops *op.Ops, tag *int, size image.Point) {
	defer clip.Rect{Max: size}.Push(ops).Pop()
	giopointer.InputOp{
		Tag: tag,
		Types: giopointer.Press | giopointer.Release | giopointer.Move |
			giopointer.Drag | giopointer.Scroll | giopointer.Cancel,
		ScrollBounds: image.Rect(-120, -120, 120, 120),
	}.Add(ops)
	giokey.InputOp{Tag: tag, Keys: activationKeys}.Add(ops)
	giokey.FocusOp{Tag: tag}.Add(ops)
}

// captureTarget is a pointer event handler that was hit by a press. It
// keeps receiving that pointer's events until release or cancel, no
// matter where they land.
type captureTarget struct {
	object  render.Object
	handler render.PointerEventHandler
	// delta maps a window position into the object's local space.
	// Local offsets don't move during a drag, so it is constant for the
	// lifetime of the capture.
	delta f32.Point
}

func dispatchPointer(bo *BuildOwner, hits *render.HitTestResult, captures map[pointer.ID][]captureTarget, ev pointer.Event) {
	bo.Gestures.HandlePointerEvent(ev)
	defer bo.Gestures.Sweep()

	if targets, ok := captures[ev.PointerID]; ok {
		for _, t := range targets {
			hit := render.HitTestEntry{Object: t.object, Offset: ev.Position.Add(t.delta)}
			t.handler.HandlePointerEvent(hit, ev)
		}
		if ev.Kind == pointer.Release || ev.Kind == pointer.Cancel {
			delete(captures, ev.PointerID)
		}
		return
	}

	root := bo.PipelineOwner.RootNode()
	if root == nil {
		return
	}
	hits.Reset()
	render.HitTest(hits, root, ev.Position)
	var targets []captureTarget
	for _, hit := range hits.Hits {
		handler, ok := hit.Object.(render.PointerEventHandler)
		if !ok {
			continue
		}
		handler.HandlePointerEvent(hit, ev)
		if ev.Kind == pointer.Press {
			targets = append(targets, captureTarget{
				object:  hit.Object,
				handler: handler,
				delta:   hit.Offset.Sub(ev.Position),
			})
		}
	}
	if ev.Kind == pointer.Press {
		// A press with no handlers still captures, so that the moves
		// that follow it don't turn into hover dispatches.
		captures[ev.PointerID] = targets
	}
}
