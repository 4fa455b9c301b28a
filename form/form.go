// Package form implements the behavior shared by form controls: named
// values with change notification, focus and blur bookkeeping, touched
// and dirty tracking, and an optional JSON-backed settings store.
package form

import (
	"maps"
	"slices"
)

// Base carries the state every form control shares. Controls embed or
// hold one and funnel every value mutation through Set, which is what
// guarantees observers exactly one notification per logical change.
type Base[T comparable] struct {
	name     string
	value    T
	initial  T
	focused  bool
	touched  bool
	disabled bool

	// OnChange is invoked after a new value has been stored, once per
	// change.
	OnChange func(T)
	// OnFocus and OnBlur observe focus transitions.
	OnFocus func()
	OnBlur  func()
}

func NewBase[T comparable](name string, initial T) *Base[T] {
	return &Base[T]{
		name:    name,
		value:   initial,
		initial: initial,
	}
}

func (b *Base[T]) Name() string { return b.name }
func (b *Base[T]) Value() T     { return b.value }

// Set stores v and reports whether it differed from the current value.
// OnChange fires only on an actual change.
func (b *Base[T]) Set(v T) bool {
	if b.value == v {
		return false
	}
	b.value = v
	if b.OnChange != nil {
		b.OnChange(v)
	}
	return true
}

// Reset restores the initial value, notifying as Set does.
func (b *Base[T]) Reset() {
	b.Set(b.initial)
}

// Dirty reports whether the value differs from the initial one.
func (b *Base[T]) Dirty() bool {
	return b.value != b.initial
}

// Touched reports whether the control has lost focus at least once.
func (b *Base[T]) Touched() bool { return b.touched }

func (b *Base[T]) Focused() bool { return b.focused }

func (b *Base[T]) FocusGained() {
	if b.focused {
		return
	}
	b.focused = true
	if b.OnFocus != nil {
		b.OnFocus()
	}
}

// FocusLost marks the control touched; a control the user has left is
// one the user has interacted with.
func (b *Base[T]) FocusLost() {
	if !b.focused {
		return
	}
	b.focused = false
	b.touched = true
	if b.OnBlur != nil {
		b.OnBlur()
	}
}

func (b *Base[T]) Disabled() bool { return b.disabled }

// SetDisabled records the disabled flag. Input gating is the owner's
// job; the flag only describes it.
func (b *Base[T]) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Control is the type-independent face of a Base, which is what a Form
// holds.
type Control interface {
	Name() string
	Reset()
	Dirty() bool
	Touched() bool
	Disabled() bool
}

// Form tracks named controls so they can be inspected and reset as a
// group.
type Form struct {
	controls map[string]Control
}

// Register adds c under its name. Registering a name again replaces the
// previous control; widgets re-register when they are rebuilt.
func (f *Form) Register(c Control) {
	if f.controls == nil {
		f.controls = make(map[string]Control)
	}
	f.controls[c.Name()] = c
}

// Deregister removes the control registered under name, if any.
func (f *Form) Deregister(name string) {
	delete(f.controls, name)
}

func (f *Form) Lookup(name string) (Control, bool) {
	c, ok := f.controls[name]
	return c, ok
}

// Reset restores every registered control to its initial value.
func (f *Form) Reset() {
	for _, name := range slices.Sorted(maps.Keys(f.controls)) {
		f.controls[name].Reset()
	}
}

// Dirty reports whether any registered control is dirty.
func (f *Form) Dirty() bool {
	for _, c := range f.controls {
		if c.Dirty() {
			return true
		}
	}
	return false
}

// Visit calls fn for each control in name order until fn returns false.
func (f *Form) Visit(fn func(Control) bool) {
	for _, name := range slices.Sorted(maps.Keys(f.controls)) {
		if !fn(f.controls[name]) {
			return
		}
	}
}
