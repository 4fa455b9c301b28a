package haptic

import "testing"

func TestFunc(t *testing.T) {
	var n int
	var s Sink = Func(func() { n++ })
	s.Pulse()
	s.Pulse()
	if n != 2 {
		t.Fatalf("want 2 calls, got %d", n)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var s Sink = &r
	s.Pulse()
	if r.Pulses != 1 {
		t.Fatalf("want 1 pulse, got %d", r.Pulses)
	}
}

func TestNoop(t *testing.T) {
	var s Sink = Noop{}
	s.Pulse()
}
