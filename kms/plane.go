// Package kms drives DRM-KMS overlay planes for lattice hardware sprites and
// plane windows.
//
// A Plane stages pan (source) and position (CRTC) registers and commits them
// with one DRM_IOCTL_MODE_SETPLANE call on Apply. Source coordinates are
// passed to the kernel in 16.16 fixed point; the plane is not scaled.
package kms

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/image/draw"

	"github.com/phanxgames/lattice"
	"github.com/phanxgames/lattice/fbdev"
)

// DRM ioctl requests.
const (
	ioctlModeSetPlane    = 0xC03064B7
	ioctlModeCreateDumb  = 0xC02064B2
	ioctlModeMapDumb     = 0xC01064B3
	ioctlModeDestroyDumb = 0xC00464B4
	ioctlModeAddFB       = 0xC01C64AE
	ioctlModeRmFB        = 0xC00464AF
)

// ErrNoFramebuffer is returned by Apply before a framebuffer was attached.
var ErrNoFramebuffer = errors.New("kms: plane has no framebuffer")

// drmModeSetPlane mirrors struct drm_mode_set_plane.
type drmModeSetPlane struct {
	PlaneID uint32
	CrtcID  uint32
	FbID    uint32
	Flags   uint32
	CrtcX   int32
	CrtcY   int32
	CrtcW   uint32
	CrtcH   uint32
	SrcX    uint32
	SrcY    uint32
	SrcH    uint32
	SrcW    uint32
}

// drmModeCreateDumb mirrors struct drm_mode_create_dumb.
type drmModeCreateDumb struct {
	Height, Width, Bpp, Flags uint32
	Handle, Pitch             uint32
	Size                      uint64
}

// drmModeMapDumb mirrors struct drm_mode_map_dumb.
type drmModeMapDumb struct {
	Handle, Pad uint32
	Offset      uint64
}

// drmModeFbCmd mirrors struct drm_mode_fb_cmd.
type drmModeFbCmd struct {
	FbID, Width, Height, Pitch, Bpp, Depth, Handle uint32
}

// card is the DRM device a plane talks to.
type card interface {
	ioctl(req uintptr, arg unsafe.Pointer) error
	mmap(offset int64, length int) ([]byte, error)
	munmap(b []byte) error
}

type dumbBuffer struct {
	handle uint32
	fb     uint32
	mem    []byte
}

// Plane is a lattice.PlaneDriver for one DRM plane bound to one CRTC.
type Plane struct {
	dev     card
	pending drmModeSetPlane
	current drmModeSetPlane
	dumb    *dumbBuffer
}

func newPlane(dev card, planeID, crtcID uint32) *Plane {
	p := &Plane{dev: dev}
	p.pending.PlaneID = planeID
	p.pending.CrtcID = crtcID
	p.current = p.pending
	return p
}

// SetPanPos stages the top-left of the source rectangle.
func (p *Plane) SetPanPos(x, y int) error {
	if x < 0 || y < 0 || x > 0xffff || y > 0xffff {
		return fmt.Errorf("kms: pan position %d,%d out of range", x, y)
	}
	p.pending.SrcX = uint32(x) << 16
	p.pending.SrcY = uint32(y) << 16
	return nil
}

// SetPanSize stages the source size. The displayed size is the same.
func (p *Plane) SetPanSize(w, h int) error {
	if w < 0 || h < 0 || w > 0xffff || h > 0xffff {
		return fmt.Errorf("kms: pan size %dx%d out of range", w, h)
	}
	p.pending.SrcW = uint32(w) << 16
	p.pending.SrcH = uint32(h) << 16
	p.pending.CrtcW = uint32(w)
	p.pending.CrtcH = uint32(h)
	return nil
}

// SetPosition stages the plane position on the CRTC.
func (p *Plane) SetPosition(pos lattice.DisplayPoint) error {
	p.pending.CrtcX = int32(pos.X)
	p.pending.CrtcY = int32(pos.Y)
	return nil
}

// SetFramebufferID attaches an existing DRM framebuffer.
func (p *Plane) SetFramebufferID(fb uint32) {
	p.pending.FbID = fb
}

// Apply commits the staged registers.
func (p *Plane) Apply() error {
	if p.pending.FbID == 0 {
		return ErrNoFramebuffer
	}
	req := p.pending
	if err := p.dev.ioctl(ioctlModeSetPlane, unsafe.Pointer(&req)); err != nil {
		return fmt.Errorf("kms: set plane %d: %w", req.PlaneID, err)
	}
	p.current = p.pending
	return nil
}

// Pan returns the committed source rectangle in whole pixels.
func (p *Plane) Pan() lattice.Rect {
	c := p.current
	return lattice.Rect{X: int(c.SrcX >> 16), Y: int(c.SrcY >> 16), Width: int(c.SrcW >> 16), Height: int(c.SrcH >> 16)}
}

// Position returns the committed CRTC position.
func (p *Plane) Position() lattice.DisplayPoint {
	return lattice.DisplayPoint{X: int(p.current.CrtcX), Y: int(p.current.CrtcY)}
}

// SetFramebuffer uploads img into a new XRGB8888 dumb buffer and stages it
// as the plane framebuffer. A previous dumb buffer is released once the new
// one is in place.
func (p *Plane) SetFramebuffer(img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("kms: empty framebuffer image")
	}
	create := drmModeCreateDumb{Width: uint32(b.Dx()), Height: uint32(b.Dy()), Bpp: 32}
	if err := p.dev.ioctl(ioctlModeCreateDumb, unsafe.Pointer(&create)); err != nil {
		return fmt.Errorf("kms: create dumb buffer: %w", err)
	}
	buf := &dumbBuffer{handle: create.Handle}

	m := drmModeMapDumb{Handle: create.Handle}
	if err := p.dev.ioctl(ioctlModeMapDumb, unsafe.Pointer(&m)); err != nil {
		p.release(buf)
		return fmt.Errorf("kms: map dumb buffer: %w", err)
	}
	mem, err := p.dev.mmap(int64(m.Offset), int(create.Size))
	if err != nil {
		p.release(buf)
		return fmt.Errorf("kms: mmap dumb buffer: %w", err)
	}
	buf.mem = mem

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	fbdev.Blit(mem, int(create.Pitch), fbdev.FormatXRGB8888, rgba, rgba.Bounds())

	cmd := drmModeFbCmd{
		Width: create.Width, Height: create.Height, Pitch: create.Pitch,
		Bpp: 32, Depth: 24, Handle: create.Handle,
	}
	if err := p.dev.ioctl(ioctlModeAddFB, unsafe.Pointer(&cmd)); err != nil {
		p.release(buf)
		return fmt.Errorf("kms: add framebuffer: %w", err)
	}
	buf.fb = cmd.FbID

	old := p.dumb
	p.dumb = buf
	p.pending.FbID = buf.fb
	if old != nil {
		p.release(old)
	}
	return nil
}

// release frees a dumb buffer, best effort.
func (p *Plane) release(buf *dumbBuffer) {
	if buf.fb != 0 {
		fb := buf.fb
		p.dev.ioctl(ioctlModeRmFB, unsafe.Pointer(&fb))
	}
	if buf.mem != nil {
		p.dev.munmap(buf.mem)
	}
	handle := buf.handle
	p.dev.ioctl(ioctlModeDestroyDumb, unsafe.Pointer(&handle))
}

// Close disables the plane and frees its dumb buffer.
func (p *Plane) Close() error {
	var err error
	if p.current.FbID != 0 {
		off := drmModeSetPlane{PlaneID: p.current.PlaneID, CrtcID: p.current.CrtcID}
		if e := p.dev.ioctl(ioctlModeSetPlane, unsafe.Pointer(&off)); e != nil {
			err = fmt.Errorf("kms: disable plane %d: %w", off.PlaneID, e)
		}
		p.current.FbID = 0
	}
	if p.dumb != nil {
		p.release(p.dumb)
		p.dumb = nil
	}
	p.pending.FbID = 0
	return err
}
