// Package haptic delivers tactile feedback pulses.
package haptic

// Sink receives haptic pulses. Pulses are fire and forget: there is no
// error surface and no completion signal, because by the time anyone
// could react the moment for the feedback has passed.
type Sink interface {
	Pulse()
}

// Noop discards pulses.
type Noop struct{}

func (Noop) Pulse() {}

// Func adapts a function to a Sink.
type Func func()

func (f Func) Pulse() { f() }

// Recorder counts pulses. It is the Sink used in tests.
type Recorder struct {
	Pulses int
}

func (r *Recorder) Pulse() { r.Pulses++ }
