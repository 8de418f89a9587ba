//go:build !linux

package kms

import (
	"errors"
	"unsafe"
)

// Card is an open DRM device. DRM is only available on Linux.
type Card struct{}

// OpenCard is only supported on Linux.
func OpenCard(path string) (*Card, error) { return nil, errors.ErrUnsupported }

// Plane returns a driver for plane planeID scanning out on crtcID.
func (c *Card) Plane(planeID, crtcID uint32) *Plane { return newPlane(c, planeID, crtcID) }

// Close closes the device.
func (c *Card) Close() error { return nil }

func (c *Card) ioctl(uintptr, unsafe.Pointer) error { return errors.ErrUnsupported }

func (c *Card) mmap(int64, int) ([]byte, error) { return nil, errors.ErrUnsupported }

func (c *Card) munmap([]byte) error { return nil }
