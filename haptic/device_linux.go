//go:build linux && (amd64 || arm64)

package haptic

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Force feedback constants from linux/input.h.
const (
	evFF     = 0x15
	ffRumble = 0x50

	eviocsff  = 0x40304580 // _IOW('E', 0x80, struct ff_effect)
	eviocrmff = 0x40044581 // _IOW('E', 0x81, int)
)

type ffTrigger struct {
	Button   uint16
	Interval uint16
}

type ffReplay struct {
	Length uint16
	Delay  uint16
}

type ffRumbleEffect struct {
	StrongMagnitude uint16
	WeakMagnitude   uint16
}

// ffEffect mirrors struct ff_effect on 64-bit kernels, with the effect
// union collapsed to the rumble branch plus padding. The union is
// 8-byte aligned because other branches contain a pointer.
type ffEffect struct {
	Type      uint16
	ID        int16
	Direction uint16
	Trigger   ffTrigger
	Replay    ffReplay
	_         uint16
	Rumble    ffRumbleEffect
	_         [28]byte
}

// inputEvent mirrors struct input_event.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Device is a Sink backed by a Linux evdev force feedback node, such as
// a game controller's /dev/input/eventN.
type Device struct {
	f  *os.File
	id int16
}

// OpenDevice opens an event device and uploads a short rumble effect.
// The device must support FF_RUMBLE.
func OpenDevice(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	effect := ffEffect{
		Type:   ffRumble,
		ID:     -1, // the kernel assigns one
		Replay: ffReplay{Length: 40},
		Rumble: ffRumbleEffect{StrongMagnitude: 0x6000},
	}
	if err := ioctlPointer(int(f.Fd()), eviocsff, unsafe.Pointer(&effect)); err != nil {
		f.Close()
		return nil, fmt.Errorf("uploading rumble effect to %s: %w", path, err)
	}
	return &Device{f: f, id: effect.ID}, nil
}

// Pulse implements Sink.
func (d *Device) Pulse() {
	ev := inputEvent{
		Type:  evFF,
		Code:  uint16(d.id),
		Value: 1,
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&ev)), unsafe.Sizeof(ev))
	d.f.Write(buf)
}

// Close removes the uploaded effect and closes the device.
func (d *Device) Close() error {
	err := unix.IoctlSetInt(int(d.f.Fd()), eviocrmff, int(d.id))
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func ioctlPointer(fd int, req uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
