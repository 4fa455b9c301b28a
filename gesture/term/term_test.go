package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/flickui/flick/f32"
	"github.com/flickui/flick/io/pointer"
)

func TestConvertDragSequence(t *testing.T) {
	var a Adapter

	steps := []struct {
		name     string
		ev       *tcell.EventMouse
		wantKind pointer.Kind
		wantPos  f32.Point
	}{
		{"press", tcell.NewEventMouse(3, 2, tcell.Button1, 0), pointer.Press, f32.Pt(24, 32)},
		{"drag right", tcell.NewEventMouse(5, 2, tcell.Button1, 0), pointer.Move, f32.Pt(40, 32)},
		{"release", tcell.NewEventMouse(5, 2, tcell.ButtonNone, 0), pointer.Release, f32.Pt(40, 32)},
	}
	for _, step := range steps {
		evs := a.Convert(step.ev)
		if len(evs) != 1 {
			t.Fatalf("%s: want 1 event, got %d", step.name, len(evs))
		}
		if evs[0].Kind != step.wantKind {
			t.Errorf("%s: want kind %v, got %v", step.name, step.wantKind, evs[0].Kind)
		}
		if evs[0].Position != step.wantPos {
			t.Errorf("%s: want position %v, got %v", step.name, step.wantPos, evs[0].Position)
		}
		if evs[0].Source != pointer.Mouse {
			t.Errorf("%s: want mouse source, got %v", step.name, evs[0].Source)
		}
	}
}

func TestConvertTwoCellDragCrossesSlop(t *testing.T) {
	// A drag across two cells has to travel further than recognizer
	// slop, or no terminal drag could ever flip a toggle.
	var a Adapter
	press := a.Convert(tcell.NewEventMouse(0, 0, tcell.Button1, 0))
	move := a.Convert(tcell.NewEventMouse(2, 0, tcell.Button1, 0))
	if len(press) != 1 || len(move) != 1 {
		t.Fatal("want one event per tcell event")
	}
	if dx := move[0].Position.X - press[0].Position.X; dx <= 15 {
		t.Fatalf("two-cell drag only travels %gpx", dx)
	}
}

func TestConvertNoMotionNoEvent(t *testing.T) {
	var a Adapter
	a.Convert(tcell.NewEventMouse(1, 1, tcell.Button1, 0))
	if evs := a.Convert(tcell.NewEventMouse(1, 1, tcell.Button1, 0)); len(evs) != 0 {
		t.Fatalf("stationary held pointer produced %v", evs)
	}
}

func TestConvertWheel(t *testing.T) {
	var a Adapter
	evs := a.Convert(tcell.NewEventMouse(1, 1, tcell.WheelUp, 0))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %d", len(evs))
	}
	if evs[0].Kind != pointer.Scroll {
		t.Fatalf("want scroll, got %v", evs[0].Kind)
	}
	if evs[0].Scroll.Y >= 0 {
		t.Fatalf("wheel up must scroll negative Y, got %v", evs[0].Scroll)
	}
}

func TestConvertCellSize(t *testing.T) {
	a := Adapter{CellWidth: 10, CellHeight: 20}
	evs := a.Convert(tcell.NewEventMouse(3, 1, tcell.Button1, 0))
	if want := f32.Pt(30, 20); evs[0].Position != want {
		t.Fatalf("want %v, got %v", want, evs[0].Position)
	}
}

func TestConvertButtons(t *testing.T) {
	tests := []struct {
		name string
		mask tcell.ButtonMask
		want pointer.Buttons
	}{
		{"primary", tcell.Button1, pointer.ButtonPrimary},
		{"secondary", tcell.Button3, pointer.ButtonSecondary},
		{"middle", tcell.Button2, pointer.ButtonTertiary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertButtons(tt.mask); got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}
