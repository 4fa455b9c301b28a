package toggle

import (
	"math"
	"strings"
	"testing"

	"github.com/flickui/flick/debug"
	"github.com/flickui/flick/gesture"
	"github.com/flickui/flick/haptic"
	"github.com/flickui/flick/io/key"
)

func failOnViolation(t *testing.T) {
	t.Helper()
	prev := debug.OnViolation
	debug.OnViolation = func(msg string) { t.Errorf("unexpected violation: %s", msg) }
	t.Cleanup(func() { debug.OnViolation = prev })
}

func collectViolations(t *testing.T) *[]string {
	t.Helper()
	var got []string
	prev := debug.OnViolation
	debug.OnViolation = func(msg string) { got = append(got, msg) }
	t.Cleanup(func() { debug.OnViolation = prev })
	return &got
}

func TestDragWorkedExample(t *testing.T) {
	failOnViolation(t)
	rec := &haptic.Recorder{}
	c := New("wifi", false)
	c.Haptics = rec
	changes := 0
	c.OnChange = func(bool) { changes++ }

	steps := []struct {
		op            string
		x             float32
		wantValue     bool
		wantActivated bool
		wantPulses    int
	}{
		{"start", 0, false, true, 0},
		{"move", 10, false, true, 0},   // below the flip travel
		{"move", 16, true, false, 1},   // flips, too far out to stay pressed
		{"move", 20, true, false, 1},   // re-anchored at 16, nothing to do
		{"move", 0, false, true, 2},    // flips back, pressed by force
		{"end", 10, true, false, 3},    // past the dead zone from anchor 0
	}
	for i, step := range steps {
		switch step.op {
		case "start":
			c.DragStart(step.x)
		case "move":
			c.DragMove(step.x)
		case "end":
			c.DragEnd(step.x)
		}
		if c.Value() != step.wantValue {
			t.Fatalf("step %d (%s %v): value: want %v, got %v", i, step.op, step.x, step.wantValue, c.Value())
		}
		if c.Activated() != step.wantActivated {
			t.Fatalf("step %d (%s %v): activated: want %v, got %v", i, step.op, step.x, step.wantActivated, c.Activated())
		}
		if rec.Pulses != step.wantPulses {
			t.Fatalf("step %d (%s %v): pulses: want %d, got %d", i, step.op, step.x, step.wantPulses, rec.Pulses)
		}
	}
	if changes != 3 {
		t.Errorf("changes: want 3, got %d", changes)
	}
	if c.Dragging() {
		t.Error("drag anchor still set after end")
	}
}

func TestDragEndDeadZone(t *testing.T) {
	failOnViolation(t)
	tests := []struct {
		name       string
		initial    bool
		start, end float32
		wantValue  bool
		wantPulses int
	}{
		{"on, inside dead zone", true, 100, 98, true, 0},
		{"on, exactly at dead zone", true, 100, 96, true, 0},
		{"on, just past dead zone", true, 100, 95, false, 1},
		{"on, forward travel never flips", true, 100, 140, true, 0},
		{"off, inside dead zone", false, 0, 3, false, 0},
		{"off, exactly at dead zone", false, 0, 4, false, 0},
		{"off, just past dead zone", false, 0, 5, true, 1},
		{"off, backward travel never flips", false, 0, -40, false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &haptic.Recorder{}
			c := New("x", tc.initial)
			c.Haptics = rec
			c.DragStart(tc.start)
			c.DragEnd(tc.end)
			if c.Value() != tc.wantValue {
				t.Errorf("value: want %v, got %v", tc.wantValue, c.Value())
			}
			if rec.Pulses != tc.wantPulses {
				t.Errorf("pulses: want %d, got %d", tc.wantPulses, rec.Pulses)
			}
			if c.Dragging() || c.Activated() {
				t.Errorf("transient state survived the end: dragging %v, activated %v", c.Dragging(), c.Activated())
			}
			if !c.Touched() {
				t.Error("control not touched after a completed drag")
			}
		})
	}
}

func TestDragMoveThreshold(t *testing.T) {
	failOnViolation(t)
	tests := []struct {
		name      string
		initial   bool
		move      float32
		wantValue bool
	}{
		{"off, short of travel", false, 14.5, false},
		{"off, exactly at travel", false, 15, true},
		{"off, backward travel ignored", false, -40, false},
		{"on, short of travel", true, -14.5, true},
		{"on, exactly at travel", true, -15, false},
		{"on, forward travel ignored", true, 40, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New("x", tc.initial)
			c.DragStart(0)
			c.DragMove(tc.move)
			if c.Value() != tc.wantValue {
				t.Errorf("value: want %v, got %v", tc.wantValue, c.Value())
			}
		})
	}
}

func TestDragReanchorsAtFlip(t *testing.T) {
	failOnViolation(t)
	c := New("x", false)
	c.DragStart(0)
	c.DragMove(15)
	if !c.Value() {
		t.Fatal("no flip at the travel threshold")
	}
	// Thresholds now measure from 15, not from 0.
	c.DragMove(1)
	if c.Value() != true {
		t.Fatal("flipped back 14 short of the re-anchored threshold")
	}
	c.DragMove(0)
	if c.Value() != false {
		t.Fatal("no flip back at the re-anchored threshold")
	}
	if !c.Activated() {
		t.Error("backward flip must force the pressed visual")
	}
}

func TestDragViolations(t *testing.T) {
	got := collectViolations(t)
	c := New("x", false)

	c.DragMove(10)
	c.DragEnd(10)
	if len(*got) != 2 {
		t.Fatalf("violations: want 2, got %d (%q)", len(*got), *got)
	}
	if !strings.Contains((*got)[0], "no drag in progress") {
		t.Errorf("unexpected violation text %q", (*got)[0])
	}
	if c.Value() || c.Touched() || c.Dragging() {
		t.Error("a violating call mutated state")
	}

	for _, x := range []float32{float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))} {
		c.DragStart(x)
	}
	if len(*got) != 5 {
		t.Fatalf("violations: want 5, got %d", len(*got))
	}
	if c.Dragging() || c.Activated() {
		t.Error("non-finite start anchored a drag")
	}

	// The control stays usable afterwards.
	c.DragStart(0)
	c.DragEnd(10)
	if !c.Value() {
		t.Error("control wedged after violations")
	}
}

func TestSetChecked(t *testing.T) {
	failOnViolation(t)
	c := New("x", false)
	changes := 0
	c.OnChange = func(bool) { changes++ }

	tests := []struct {
		raw         any
		wantValue   bool
		wantChanges int
	}{
		{true, true, 1},
		{true, true, 1}, // same value, no notification
		{"on", true, 1},
		{0, false, 2},
		{"", true, 3}, // the bare attribute form
		{nil, false, 4},
		{2.5, true, 5},
	}
	for i, tc := range tests {
		c.SetChecked(tc.raw)
		if c.Value() != tc.wantValue {
			t.Errorf("step %d (%v): value: want %v, got %v", i, tc.raw, tc.wantValue, c.Value())
		}
		if changes != tc.wantChanges {
			t.Errorf("step %d (%v): changes: want %d, got %d", i, tc.raw, tc.wantChanges, changes)
		}
	}
}

func TestTap(t *testing.T) {
	failOnViolation(t)
	rec := &haptic.Recorder{}
	c := New("x", false)
	c.Haptics = rec

	c.TapDown()
	if !c.Activated() {
		t.Fatal("tap down did not press the switch")
	}
	c.Tap()
	if !c.Value() || c.Activated() {
		t.Fatalf("after tap: want value true, activated false; got %v, %v", c.Value(), c.Activated())
	}
	if rec.Pulses != 1 {
		t.Fatalf("pulses: want 1, got %d", rec.Pulses)
	}

	// A cancelled tap undoes the visual and nothing else.
	c.TapDown()
	c.TapCancel()
	if c.Activated() {
		t.Error("cancel left the switch pressed")
	}
	if !c.Value() || rec.Pulses != 1 {
		t.Errorf("cancel mutated the control: value %v, pulses %d", c.Value(), rec.Pulses)
	}
}

func TestKeyActivate(t *testing.T) {
	failOnViolation(t)
	c := New("x", false)

	tests := []struct {
		name        string
		ev          key.Event
		wantHandled bool
		wantValue   bool
	}{
		{"space press is consumed without flipping", key.Event{Name: key.NameSpace, State: key.Press}, true, false},
		{"space release flips", key.Event{Name: key.NameSpace, State: key.Release}, true, true},
		{"return release flips", key.Event{Name: key.NameReturn, State: key.Release}, true, false},
		{"enter release flips", key.Event{Name: key.NameEnter, State: key.Release}, true, true},
		{"letter passes through", key.Event{Name: "A", State: key.Release}, false, true},
		{"arrow passes through", key.Event{Name: "←", State: key.Press}, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if handled := c.KeyActivate(tc.ev); handled != tc.wantHandled {
				t.Errorf("handled: want %v, got %v", tc.wantHandled, handled)
			}
			if c.Value() != tc.wantValue {
				t.Errorf("value: want %v, got %v", tc.wantValue, c.Value())
			}
		})
	}
}

type fakeSource struct {
	handler  gesture.DragHandler
	attaches int
	detaches int
}

func (s *fakeSource) Attach(h gesture.DragHandler) {
	s.handler = h
	s.attaches++
}

func (s *fakeSource) Detach() {
	s.handler = nil
	s.detaches++
}

func TestSessionLifecycle(t *testing.T) {
	got := collectViolations(t)
	c := New("x", false)
	src := &fakeSource{}

	c.Teardown() // safe before any Ready
	if src.detaches != 0 || len(*got) != 0 {
		t.Fatalf("idle teardown did something: detaches %d, violations %d", src.detaches, len(*got))
	}

	c.Ready(src)
	if !c.Attached() || src.attaches != 1 {
		t.Fatalf("ready did not attach: attached %v, attaches %d", c.Attached(), src.attaches)
	}
	if src.handler == nil {
		t.Fatal("source has no handler")
	}

	other := &fakeSource{}
	c.Ready(other)
	if len(*got) != 1 || !strings.Contains((*got)[0], "already attached") {
		t.Fatalf("double ready: want 1 violation, got %q", *got)
	}
	if other.attaches != 0 {
		t.Error("double ready replaced the attachment")
	}

	c.Teardown()
	if c.Attached() || src.detaches != 1 {
		t.Fatalf("teardown did not detach: attached %v, detaches %d", c.Attached(), src.detaches)
	}
	c.Teardown()
	if src.detaches != 1 {
		t.Errorf("teardown not idempotent: detaches %d", src.detaches)
	}

	// Reattaching after teardown is fine.
	c.Ready(other)
	if !c.Attached() || other.attaches != 1 || len(*got) != 1 {
		t.Error("cannot reattach after teardown")
	}
}

func TestTeardownMidDragCancels(t *testing.T) {
	failOnViolation(t)
	rec := &haptic.Recorder{}
	c := New("x", false)
	c.Haptics = rec
	src := &fakeSource{}
	c.Ready(src)

	src.handler.DragStart(0)
	src.handler.DragMove(16)
	if !c.Value() || rec.Pulses != 1 {
		t.Fatalf("drag did not flip: value %v, pulses %d", c.Value(), rec.Pulses)
	}

	c.Teardown()
	if c.Dragging() || c.Activated() {
		t.Error("teardown left a drag in flight")
	}
	if !c.Value() || rec.Pulses != 1 {
		t.Errorf("teardown is not a silent stop: value %v, pulses %d", c.Value(), rec.Pulses)
	}
}

func TestFocusFollowsDrag(t *testing.T) {
	failOnViolation(t)
	c := New("x", false)
	requests := 0
	c.OnRequestFocus = func() { requests++ }

	c.DragStart(0)
	if !c.Focused() {
		t.Fatal("drag start did not focus the control")
	}
	if requests != 1 {
		t.Fatalf("focus requests: want 1, got %d", requests)
	}
	if c.Touched() {
		t.Fatal("touched before the interaction ended")
	}
	c.DragEnd(0)
	if c.Focused() {
		t.Error("focus survived the drag end")
	}
	if !c.Touched() {
		t.Error("completed interaction did not mark the control touched")
	}

	c.TapDown()
	if requests != 2 {
		t.Errorf("tap down focus requests: want 2, got %d", requests)
	}
}

func TestRefreshOnlyOnVisibleChange(t *testing.T) {
	failOnViolation(t)
	c := New("x", false)
	refreshes := 0
	c.OnRefresh = func() { refreshes++ }

	c.DragStart(0)
	if refreshes == 0 {
		t.Fatal("drag start did not request a repaint")
	}
	before := refreshes
	c.DragMove(5) // mutates nothing
	if refreshes != before {
		t.Errorf("no-op move repainted: %d -> %d", before, refreshes)
	}
	c.DragMove(16)
	if refreshes == before {
		t.Error("flip did not repaint")
	}
}

func TestResetNotifies(t *testing.T) {
	failOnViolation(t)
	c := New("x", true)
	changes := 0
	c.OnChange = func(bool) { changes++ }

	c.SetChecked(false)
	if !c.Dirty() || changes != 1 {
		t.Fatalf("after set: dirty %v, changes %d", c.Dirty(), changes)
	}
	c.Reset()
	if c.Value() != true || c.Dirty() || changes != 2 {
		t.Errorf("after reset: value %v, dirty %v, changes %d", c.Value(), c.Dirty(), changes)
	}
}
