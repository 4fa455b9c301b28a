// Command flick-demo shows a small settings panel of toggle switches.
// Values persist to a JSON settings file, the look comes from an
// optional theme file, and flips pulse a force-feedback device when one
// is configured.
//
// Configuration is taken from the environment:
//
//	FLICK_THEME     path to a theme JSON file (written on first run)
//	FLICK_SETTINGS  path to the settings file (default flick-settings.json)
//	FLICK_HAPTICS   path to an input device, e.g. /dev/input/event0
package main

import (
	"errors"
	"image/color"
	"io/fs"
	"log"
	"os"

	"github.com/caarlos0/env/v11"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/flickui/flick/form"
	"github.com/flickui/flick/haptic"
	"github.com/flickui/flick/io/pointer"
	"github.com/flickui/flick/render"
	"github.com/flickui/flick/theme"
	"github.com/flickui/flick/widget"
)

type config struct {
	Theme    string `env:"FLICK_THEME"`
	Settings string `env:"FLICK_SETTINGS" envDefault:"flick-settings.json"`
	Haptics  string `env:"FLICK_HAPTICS"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}
	go func() {
		win := app.NewWindow(
			app.Title("Flick"),
			app.Size(unit.Dp(420), unit.Dp(360)),
		)
		if err := run(win, cfg); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run(win *app.Window, cfg config) error {
	th, err := loadTheme(cfg.Theme)
	if err != nil {
		return err
	}
	store, err := form.OpenStore(cfg.Settings)
	if err != nil {
		return err
	}
	p := &panel{
		theme:   th,
		store:   store,
		haptics: openHaptics(cfg.Haptics),
		form:    &form.Form{},
	}
	return widget.Run(win, p.build())
}

func loadTheme(path string) (*theme.Theme, error) {
	if path == "" {
		return theme.Default(), nil
	}
	th, err := theme.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// First run: leave an editable copy of the default look behind.
		if err := theme.WriteDefault(path); err != nil {
			return nil, err
		}
		return theme.Default(), nil
	}
	return th, err
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

type panel struct {
	theme   *theme.Theme
	store   *form.Store
	haptics haptic.Sink
	form    *form.Form
}

func (p *panel) build() widget.Widget {
	return &widget.ColoredBox{
		Color: color.NRGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF},
		Child: &widget.Padding{
			Padding: render.Inset{Left: 8, Top: 16, Right: 8, Bottom: 16},
			Child: &widget.Column{
				Children: []widget.Widget{
					p.row("Wi-Fi", "wifi", true, false),
					p.row("Bluetooth", "bluetooth", false, false),
					p.row("Airplane mode", "airplane", false, false),
					p.row("Cellular data", "cellular", true, true),
					p.resetRow(),
				},
			},
		},
	}
}

func (p *panel) row(label, name string, fallback any, disabled bool) widget.Widget {
	checked, ok := p.store.Value(name)
	if !ok {
		checked = fallback
	}
	return &widget.Padding{
		Padding: render.Inset{Left: 16, Top: 10, Right: 16, Bottom: 10},
		Child: &widget.Row{
			Children: []widget.Widget{
				&widget.SizedBox{
					Width:  240,
					Height: p.theme.TrackHeight,
					Child: &widget.Padding{
						Padding: render.Inset{Top: 6},
						Child:   &widget.Label{Text: label},
					},
				},
				&widget.Toggle{
					Name:     name,
					Checked:  checked,
					Disabled: disabled,
					OnChange: p.save(name),
					Theme:    p.theme,
					Haptics:  p.haptics,
					Form:     p.form,
				},
			},
		},
	}
}

func (p *panel) resetRow() widget.Widget {
	return &widget.Padding{
		Padding: render.Inset{Left: 16, Top: 18, Right: 16, Bottom: 10},
		Child: &widget.GestureDetector{
			// Reset flips the dirty controls back; each flip saves itself
			// through its OnChange.
			OnTap: func(pointer.Event) { p.form.Reset() },
			Child: &widget.Label{Text: "Reset all settings"},
		},
	}
}

func (p *panel) save(name string) func(bool) {
	return func(v bool) {
		if err := p.store.Set(name, v); err != nil {
			log.Printf("save %s: %v", name, err)
			return
		}
		if err := p.store.Save(); err != nil {
			log.Printf("save settings: %v", err)
		}
	}
}
