// Command flick-tty runs a toggle switch inside a terminal. The same
// control and gesture recognizers as the GUI drive it; only the input
// adapter and the cell-art painting differ, which is the point of the
// exercise.
//
// Click or drag the switch with the mouse. Space or enter flips it, d
// toggles the disabled state, r resets, and q quits.
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/gdamore/tcell/v2"

	"github.com/flickui/flick/f32"
	"github.com/flickui/flick/gesture"
	"github.com/flickui/flick/gesture/term"
	"github.com/flickui/flick/haptic"
	"github.com/flickui/flick/io/key"
	"github.com/flickui/flick/io/pointer"
	"github.com/flickui/flick/theme"
	"github.com/flickui/flick/toggle"
)

type config struct {
	Theme   string `env:"FLICK_THEME"`
	Haptics string `env:"FLICK_HAPTICS"`
}

// The track's place on the screen, in cells.
const (
	trackCol  = 4
	trackRow  = 3
	trackCols = 13
	trackRows = 2
	thumbCols = 4
)

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config) error {
	th := theme.Default()
	if cfg.Theme != "" {
		var err error
		th, err = theme.LoadFile(cfg.Theme)
		if err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	a := newApp(screen, th, openHaptics(cfg.Haptics))
	a.draw()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			for _, pev := range a.adapter.Convert(ev) {
				a.routePointer(pev)
			}
		}
		a.draw()
	}
}

func openHaptics(path string) haptic.Sink {
	if path == "" {
		return haptic.Noop{}
	}
	dev, err := haptic.OpenDevice(path)
	if err != nil {
		log.Printf("haptics disabled: %v", err)
		return haptic.Noop{}
	}
	return dev
}

type app struct {
	screen  tcell.Screen
	theme   *theme.Theme
	control *toggle.Control

	adapter term.Adapter
	arena   *gesture.ArenaManager
	tap     *gesture.TapRecognizer
	drag    *gesture.HorizontalDragRecognizer
	source  *gesture.PointerDragSource

	// routing is set while a press that began inside the track is live;
	// it keeps the moves of a drag flowing to the recognizers even after
	// the pointer leaves the track.
	routing bool
}

func newApp(screen tcell.Screen, th *theme.Theme, haptics haptic.Sink) *app {
	a := &app{
		screen:  screen,
		theme:   th,
		control: toggle.New("wifi", false),
		arena:   &gesture.ArenaManager{},
	}
	a.control.Haptics = haptics
	a.control.OnRequestFocus = a.control.FocusGained
	a.tap = &gesture.TapRecognizer{
		Manager:     a.arena,
		OnTapStart:  func(pointer.Event) { a.control.TapDown() },
		OnTap:       func(pointer.Event) { a.control.Tap() },
		OnTapCancel: func(pointer.Event) { a.control.TapCancel() },
	}
	a.drag = &gesture.HorizontalDragRecognizer{Manager: a.arena}
	a.source = gesture.NewPointerDragSource(a.drag)
	a.control.Ready(a.source)
	return a
}

// handleKey reports whether the application should quit.
func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		a.activate(key.NameReturn)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			a.activate(key.NameSpace)
		case 'r':
			a.control.Reset()
		case 'd':
			a.setDisabled(!a.control.Disabled())
		}
	}
	return false
}

// activate feeds a key release; terminals report completed keystrokes,
// and the control flips on release.
func (a *app) activate(name string) {
	if a.control.Disabled() {
		return
	}
	a.control.KeyActivate(key.Event{Name: name, State: key.Release})
}

// setDisabled mirrors what the widget does: gating is structural, the
// drag session detaches while disabled.
func (a *app) setDisabled(disabled bool) {
	if disabled {
		a.control.Teardown()
		a.control.SetDisabled(true)
		a.control.FocusLost()
	} else {
		a.control.SetDisabled(false)
		a.control.Ready(a.source)
	}
}

func (a *app) routePointer(ev pointer.Event) {
	a.arena.HandlePointerEvent(ev)
	if ev.Kind == pointer.Press {
		a.routing = !a.control.Disabled() && a.inTrack(ev.Position)
	}
	if a.routing {
		// Recognizers work in track-local coordinates.
		lev := ev
		lev.Position = ev.Position.Sub(a.trackOrigin())
		a.tap.HandlePointerEvent(lev)
		a.drag.HandlePointerEvent(lev)
	}
	if ev.Kind == pointer.Release || ev.Kind == pointer.Cancel {
		a.routing = false
	}
	a.arena.Sweep()
}

func (a *app) trackOrigin() f32.Point {
	return f32.Pt(trackCol*term.DefaultCellWidth, trackRow*term.DefaultCellHeight)
}

func (a *app) inTrack(pos f32.Point) bool {
	tl := a.trackOrigin()
	br := tl.Add(f32.Pt(trackCols*term.DefaultCellWidth, trackRows*term.DefaultCellHeight))
	return pos.X >= tl.X && pos.X < br.X && pos.Y >= tl.Y && pos.Y < br.Y
}

func (a *app) draw() {
	s := a.screen
	s.Clear()
	st := tcell.StyleDefault

	a.puts(trackCol, 1, "flick", st.Bold(true))

	track := a.theme.TrackColor(a.control.Value(), a.control.Activated())
	thumb := a.theme.Thumb
	if a.control.Disabled() {
		track = a.theme.Faded(track)
		thumb = a.theme.Faded(thumb)
	}
	trackSt := st.Background(tcellColor(track))
	thumbSt := st.Background(tcellColor(thumb))

	right := a.control.Value() != (a.theme.Direction == theme.RTL)
	thumbX := 1
	if right {
		thumbX = trackCols - thumbCols - 1
	}
	for row := 0; row < trackRows; row++ {
		for col := 0; col < trackCols; col++ {
			stl := trackSt
			if col >= thumbX && col < thumbX+thumbCols {
				stl = thumbSt
			}
			s.SetContent(trackCol+col, trackRow+row, ' ', nil, stl)
		}
	}
	if a.control.Focused() {
		for row := 0; row < trackRows; row++ {
			s.SetContent(trackCol-2, trackRow+row, '[', nil, st)
			s.SetContent(trackCol+trackCols+1, trackRow+row, ']', nil, st)
		}
	}

	a.puts(trackCol, trackRow+trackRows+1, a.status(), st)
	a.puts(trackCol, trackRow+trackRows+3, "mouse: click or drag   keys: space/enter flip, d disable, r reset, q quit", st.Dim(true))
	s.Show()
}

func (a *app) status() string {
	state := "off"
	if a.control.Value() {
		state = "on"
	}
	out := fmt.Sprintf("%s: %s", a.control.Name(), state)
	if a.control.Disabled() {
		out += "  (disabled)"
	}
	if a.control.Dirty() {
		out += "  (modified)"
	}
	if a.control.Dragging() {
		out += "  (dragging)"
	}
	return out
}

func (a *app) puts(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		a.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
