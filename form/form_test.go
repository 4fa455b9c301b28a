package form

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func TestBaseSetNotifiesOncePerChange(t *testing.T) {
	b := NewBase("wifi", false)
	var got []bool
	b.OnChange = func(v bool) { got = append(got, v) }

	if !b.Set(true) {
		t.Fatal("first change not reported")
	}
	if b.Set(true) {
		t.Fatal("no-op change reported")
	}
	if !b.Set(false) {
		t.Fatal("second change not reported")
	}
	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Fatalf("want notifications [true false], got %v", got)
	}
}

func TestBaseFocus(t *testing.T) {
	b := NewBase("wifi", false)
	var focus, blur int
	b.OnFocus = func() { focus++ }
	b.OnBlur = func() { blur++ }

	b.FocusGained()
	b.FocusGained()
	if focus != 1 {
		t.Fatalf("want 1 focus callback, got %d", focus)
	}
	if b.Touched() {
		t.Fatal("touched before first blur")
	}

	b.FocusLost()
	b.FocusLost()
	if blur != 1 {
		t.Fatalf("want 1 blur callback, got %d", blur)
	}
	if !b.Touched() {
		t.Fatal("not touched after blur")
	}
}

func TestBaseDirtyReset(t *testing.T) {
	b := NewBase("wifi", false)
	if b.Dirty() {
		t.Fatal("dirty before any change")
	}
	b.Set(true)
	if !b.Dirty() {
		t.Fatal("not dirty after change")
	}

	var notified int
	b.OnChange = func(bool) { notified++ }
	b.Reset()
	if b.Value() || b.Dirty() {
		t.Fatalf("reset left value=%v dirty=%v", b.Value(), b.Dirty())
	}
	if notified != 1 {
		t.Fatalf("reset: want 1 notification, got %d", notified)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want bool
	}{
		{"nil", nil, false},
		{"true", true, true},
		{"false", false, false},
		{"string true", "true", true},
		{"string TRUE", "TRUE", true},
		{"string on padded", "  on ", true},
		// The bare attribute case: checked="" means checked.
		{"empty string", "", true},
		{"blank string", "   ", true},
		{"string false", "false", false},
		{"string off", "off", false},
		{"string one", "1", false},
		{"int zero", 0, false},
		{"int nonzero", 3, true},
		{"int negative", -3, true},
		{"uint", uint8(7), true},
		{"float zero", 0.0, false},
		{"float nonzero", 0.5, true},
		{"unhandled type", struct{}{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.raw); got != tt.want {
				t.Fatalf("Truthy(%#v): want %v, got %v", tt.raw, tt.want, got)
			}
		})
	}
}

func TestFormRegisterReset(t *testing.T) {
	var f Form
	wifi := NewBase("wifi", false)
	dark := NewBase("dark", true)
	f.Register(wifi)
	f.Register(dark)

	wifi.Set(true)
	dark.Set(false)
	if !f.Dirty() {
		t.Fatal("form not dirty after changes")
	}

	f.Reset()
	if wifi.Value() || !dark.Value() {
		t.Fatalf("reset values: wifi=%v dark=%v", wifi.Value(), dark.Value())
	}
	if f.Dirty() {
		t.Fatal("form dirty after reset")
	}

	if _, ok := f.Lookup("wifi"); !ok {
		t.Fatal("registered control not found")
	}
	f.Deregister("wifi")
	if _, ok := f.Lookup("wifi"); ok {
		t.Fatal("deregistered control still found")
	}
}

func TestFormVisitOrder(t *testing.T) {
	var f Form
	for _, name := range []string{"b", "a", "c"} {
		f.Register(NewBase(name, false))
	}
	var names []string
	f.Visit(func(c Control) bool {
		names = append(names, c.Name())
		return true
	})
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("want name order, got %v", names)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewStore(path)
	if err := s.Set("wifi", true); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("with.dot", false); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := loaded.Value("wifi")
	if !ok || v != true {
		t.Fatalf("wifi: want true, got %v (ok=%v)", v, ok)
	}
	v, ok = loaded.Value("with.dot")
	if !ok || v != false {
		t.Fatalf("with.dot: want false, got %v (ok=%v)", v, ok)
	}
	if _, ok := loaded.Value("absent"); ok {
		t.Fatal("absent key reported present")
	}
}

func TestOpenStoreMissingFile(t *testing.T) {
	s, err := OpenStore(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Value("anything"); ok {
		t.Fatal("empty store reported a value")
	}
}

func TestOpenStoreMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenStore(path); err == nil {
		t.Fatal("want error for malformed settings")
	}
}

func TestStorePreservesForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	seed := `{"editor":{"tabs":4},"wifi":false}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("wifi", true); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(data, "editor.tabs").Int(); got != 4 {
		t.Fatalf("foreign key clobbered: editor.tabs = %d", got)
	}
	if !gjson.GetBytes(data, "wifi").Bool() {
		t.Fatal("wifi not persisted")
	}
}
