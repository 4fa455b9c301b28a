// Package theme configures the look of flick controls from a JSON
// document: colors, geometry, the slide animation, and text direction.
package theme

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"

	"github.com/flickui/flick/animation"
)

//go:generate go tool stringer -type Direction

// Direction is the horizontal text direction. An RTL theme mirrors the
// toggle so the on position is on the left.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

type Theme struct {
	TrackOff color.NRGBA
	TrackOn  color.NRGBA
	Thumb    color.NRGBA

	// Track geometry in logical pixels. The thumb is a circle inscribed
	// in the track, inset on every side.
	TrackWidth  float32
	TrackHeight float32
	ThumbInset  float32

	SlideDuration time.Duration
	SlideCurve    animation.Ease

	Direction Direction

	curveName string
}

// Default returns the built-in look: a pill-shaped track, 120ms slide.
func Default() *Theme {
	slide, _ := animation.Named("easeOutCubic")
	return &Theme{
		TrackOff:      color.NRGBA{R: 0xE9, G: 0xE9, B: 0xEA, A: 0xFF},
		TrackOn:       color.NRGBA{R: 0x34, G: 0xC7, B: 0x59, A: 0xFF},
		Thumb:         color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		TrackWidth:    51,
		TrackHeight:   31,
		ThumbInset:    2,
		SlideDuration: 120 * time.Millisecond,
		SlideCurve:    slide,
		Direction:     LTR,
		curveName:     "easeOutCubic",
	}
}

// fileTheme is the wire form. Absent fields keep their defaults.
type fileTheme struct {
	Colors struct {
		TrackOff string `json:"trackOff"`
		TrackOn  string `json:"trackOn"`
		Thumb    string `json:"thumb"`
	} `json:"colors"`
	TrackWidth  float32 `json:"trackWidth"`
	TrackHeight float32 `json:"trackHeight"`
	ThumbInset  float32 `json:"thumbInset"`
	SlideMillis int     `json:"slideMillis"`
	Curve       string  `json:"curve"`
	Language    string  `json:"language"`
}

// Parse reads a JSON theme document, with Default filling anything the
// document leaves out.
func Parse(data []byte) (*Theme, error) {
	var ft fileTheme
	if err := json.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	t := Default()
	for _, c := range []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"trackOff", ft.Colors.TrackOff, &t.TrackOff},
		{"trackOn", ft.Colors.TrackOn, &t.TrackOn},
		{"thumb", ft.Colors.Thumb, &t.Thumb},
	} {
		if c.hex == "" {
			continue
		}
		parsed, err := colorful.Hex(c.hex)
		if err != nil {
			return nil, fmt.Errorf("theme: color %s: %w", c.name, err)
		}
		*c.dst = nrgbaOf(parsed, 0xFF)
	}
	if ft.TrackWidth > 0 {
		t.TrackWidth = ft.TrackWidth
	}
	if ft.TrackHeight > 0 {
		t.TrackHeight = ft.TrackHeight
	}
	if ft.ThumbInset > 0 {
		t.ThumbInset = ft.ThumbInset
	}
	if ft.SlideMillis > 0 {
		t.SlideDuration = time.Duration(ft.SlideMillis) * time.Millisecond
	}
	if ft.Curve != "" {
		ease, ok := animation.Named(ft.Curve)
		if !ok {
			return nil, fmt.Errorf("theme: unknown curve %q", ft.Curve)
		}
		t.SlideCurve = ease
		t.curveName = ft.Curve
	}
	if ft.Language != "" {
		tag, err := language.Parse(ft.Language)
		if err != nil {
			return nil, fmt.Errorf("theme: language %q: %w", ft.Language, err)
		}
		t.Direction = DirectionOf(tag)
	}
	return t, nil
}

// LoadFile reads and parses the theme at path.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// WriteDefault writes the default theme as an editable JSON document.
func WriteDefault(path string) error {
	def := Default()
	var ft fileTheme
	ft.Colors.TrackOff = hexOf(def.TrackOff)
	ft.Colors.TrackOn = hexOf(def.TrackOn)
	ft.Colors.Thumb = hexOf(def.Thumb)
	ft.TrackWidth = def.TrackWidth
	ft.TrackHeight = def.TrackHeight
	ft.ThumbInset = def.ThumbInset
	ft.SlideMillis = int(def.SlideDuration / time.Millisecond)
	ft.Curve = def.curveName
	ft.Language = "en"

	data, err := json.Marshal(ft, jsontext.WithIndent("\t"))
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// The scripts written right to left. Script inference through
// language.Tag covers bare language tags like "ar".
var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Thaa": true,
	"Syrc": true,
	"Nkoo": true,
	"Adlm": true,
	"Rohg": true,
	"Mand": true,
}

// DirectionOf resolves the text direction of a language tag.
func DirectionOf(tag language.Tag) Direction {
	script, _ := tag.Script()
	if rtlScripts[script.String()] {
		return RTL
	}
	return LTR
}

// TrackColor returns the track fill for a value, shaded toward the
// thumb while the control is held.
func (t *Theme) TrackColor(on, activated bool) color.NRGBA {
	c := t.TrackOff
	if on {
		c = t.TrackOn
	}
	if activated {
		return blendLab(c, t.Thumb, 0.15)
	}
	return c
}

// TrackAt returns the track fill at a point of the slide animation,
// where 0 is fully off and 1 fully on.
func (t *Theme) TrackAt(pos float64, activated bool) color.NRGBA {
	c := blendLab(t.TrackOff, t.TrackOn, pos)
	if activated {
		return blendLab(c, t.Thumb, 0.15)
	}
	return c
}

// Faded is the disabled rendition of a color: washed toward gray and
// translucent.
func (t *Theme) Faded(c color.NRGBA) color.NRGBA {
	gray := color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: c.A}
	out := blendLab(c, gray, 0.5)
	out.A = uint8(uint16(c.A) * mulDisabledAlpha / 0x100)
	return out
}

const mulDisabledAlpha = 0x99 // ~60%

func blendLab(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	return nrgbaOf(ca.BlendLab(cb, t).Clamped(), a.A)
}

func nrgbaOf(c colorful.Color, alpha uint8) color.NRGBA {
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: alpha,
	}
}

func hexOf(c color.NRGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
