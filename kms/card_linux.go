//go:build linux

package kms

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Card is an open DRM device such as /dev/dri/card0.
type Card struct {
	f *os.File
}

// OpenCard opens the DRM device at path.
func OpenCard(path string) (*Card, error) {
	f, err := os.OpenFile(path, os.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("kms: open: %w", err)
	}
	return &Card{f: f}, nil
}

// Plane returns a driver for plane planeID scanning out on crtcID.
func (c *Card) Plane(planeID, crtcID uint32) *Plane {
	return newPlane(c, planeID, crtcID)
}

// Close closes the device.
func (c *Card) Close() error { return c.f.Close() }

func (c *Card) ioctl(req uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, c.f.Fd(), req, uintptr(arg))
		switch errno {
		case 0:
			return nil
		case unix.EINTR, unix.EAGAIN:
			continue
		}
		return errno
	}
}

func (c *Card) mmap(offset int64, length int) ([]byte, error) {
	return unix.Mmap(int(c.f.Fd()), offset, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func (c *Card) munmap(b []byte) error { return unix.Munmap(b) }
