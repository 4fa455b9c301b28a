//go:build !(linux && (amd64 || arm64))

package haptic

import "fmt"

// Device is unavailable on this platform.
type Device struct{}

func OpenDevice(path string) (*Device, error) {
	return nil, fmt.Errorf("haptic device %s: force feedback needs a 64-bit linux evdev", path)
}

func (d *Device) Pulse() {}

func (d *Device) Close() error { return nil }
