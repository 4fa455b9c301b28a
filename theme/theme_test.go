package theme

import (
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/flickui/flick/animation"
)

func TestParse(t *testing.T) {
	doc := `{
		"colors": {"trackOff": "#333333", "trackOn": "#00ff00", "thumb": "#fafafa"},
		"trackWidth": 60,
		"trackHeight": 34,
		"thumbInset": 3,
		"slideMillis": 200,
		"curve": "easeInQuad",
		"language": "ar"
	}`
	th, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}

	if want := (color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}); th.TrackOff != want {
		t.Errorf("trackOff: want %v, got %v", want, th.TrackOff)
	}
	if want := (color.NRGBA{G: 0xFF, A: 0xFF}); th.TrackOn != want {
		t.Errorf("trackOn: want %v, got %v", want, th.TrackOn)
	}
	if th.TrackWidth != 60 || th.TrackHeight != 34 || th.ThumbInset != 3 {
		t.Errorf("geometry: got %v x %v inset %v", th.TrackWidth, th.TrackHeight, th.ThumbInset)
	}
	if want := 200 * time.Millisecond; th.SlideDuration != want {
		t.Errorf("slide duration: want %v, got %v", want, th.SlideDuration)
	}
	quad, _ := animation.Named("easeInQuad")
	if got, want := th.SlideCurve(0.5), quad(0.5); got != want {
		t.Errorf("curve(0.5): want %v, got %v", want, got)
	}
	if th.Direction != RTL {
		t.Errorf("direction: want RTL, got %v", th.Direction)
	}
}

func TestParseDefaults(t *testing.T) {
	th, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if th.TrackOff != def.TrackOff || th.TrackOn != def.TrackOn || th.Thumb != def.Thumb {
		t.Error("empty document changed default colors")
	}
	if th.TrackWidth != def.TrackWidth || th.SlideDuration != def.SlideDuration {
		t.Error("empty document changed default geometry or timing")
	}
	if th.Direction != LTR {
		t.Errorf("default direction: want LTR, got %v", th.Direction)
	}
	if got, want := th.SlideCurve(0.5), def.SlideCurve(0.5); got != want {
		t.Errorf("default curve(0.5): want %v, got %v", want, got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad json", `{`},
		{"bad color", `{"colors": {"thumb": "eggshell"}}`},
		{"unknown curve", `{"curve": "easeInOutNope"}`},
		{"bad language", `{"language": "no-such-tag-%"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Fatal("want error")
			}
		})
	}
}

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		tag  string
		want Direction
	}{
		{"en", LTR},
		{"en-US", LTR},
		{"de", LTR},
		{"ja", LTR},
		{"ar", RTL},
		{"he", RTL},
		{"fa", RTL},
		{"ur", RTL},
		{"yi", RTL},
		{"az-Arab", RTL},
		{"az", LTR},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := DirectionOf(language.MustParse(tt.tag)); got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	th, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if th.TrackOn != def.TrackOn || th.TrackOff != def.TrackOff {
		t.Errorf("colors: want %v/%v, got %v/%v", def.TrackOff, def.TrackOn, th.TrackOff, th.TrackOn)
	}
	if th.TrackWidth != def.TrackWidth || th.SlideDuration != def.SlideDuration {
		t.Error("geometry or timing did not round trip")
	}
}

func TestTrackColor(t *testing.T) {
	th := Default()
	on := th.TrackColor(true, false)
	if on != th.TrackOn {
		t.Errorf("resting on color: want %v, got %v", th.TrackOn, on)
	}
	held := th.TrackColor(true, true)
	if held == on {
		t.Error("activated shade equals resting color")
	}
}

func TestTrackAt(t *testing.T) {
	th := Default()
	if got := th.TrackAt(0, false); got != th.TrackOff {
		t.Errorf("at 0: want %v, got %v", th.TrackOff, got)
	}
	if got := th.TrackAt(1, false); got != th.TrackOn {
		t.Errorf("at 1: want %v, got %v", th.TrackOn, got)
	}
	mid := th.TrackAt(0.5, false)
	if mid == th.TrackOff || mid == th.TrackOn {
		t.Errorf("midpoint %v equals an endpoint", mid)
	}
	if th.TrackAt(0.5, true) == mid {
		t.Error("activated shade equals resting color")
	}
}

func TestFaded(t *testing.T) {
	th := Default()
	c := th.TrackOn
	f := th.Faded(c)
	if f.A >= c.A {
		t.Errorf("faded alpha %d not below %d", f.A, c.A)
	}
	if f == c {
		t.Error("faded color unchanged")
	}
}
