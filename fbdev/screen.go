package fbdev

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/phanxgames/lattice"
)

// ErrClosed is returned by Flip after Close.
var ErrClosed = errors.New("fbdev: screen closed")

// Screen is a lattice.Screen backed by framebuffer memory.
type Screen struct {
	mem     []byte
	stride  int
	format  PixelFormat
	back    *image.RGBA
	painter *lattice.RGBAPainter
	closer  io.Closer
}

func newScreen(mem []byte, size lattice.Size, stride int, format PixelFormat, closer io.Closer) (*Screen, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("fbdev: invalid resolution %s", size)
	}
	if stride < size.Width*format.bytesPerPixel() || len(mem) < stride*size.Height {
		return nil, fmt.Errorf("fbdev: %d bytes with stride %d too small for %s", len(mem), stride, size)
	}
	back := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	return &Screen{
		mem:     mem,
		stride:  stride,
		format:  format,
		back:    back,
		painter: lattice.NewRGBAPainter(back),
		closer:  closer,
	}, nil
}

// Size returns the visible resolution.
func (s *Screen) Size() lattice.Size {
	b := s.back.Bounds()
	return lattice.Size{Width: b.Dx(), Height: b.Dy()}
}

// Painter returns the painter drawing into the back buffer.
func (s *Screen) Painter() lattice.Painter { return s.painter }

// Format returns the device pixel format.
func (s *Screen) Format() PixelFormat { return s.format }

// Flip writes the damaged rectangles to the framebuffer.
func (s *Screen) Flip(damage []lattice.Rect) error {
	if s.mem == nil {
		return ErrClosed
	}
	bounds := s.back.Bounds()
	for _, d := range damage {
		r := image.Rect(d.X, d.Y, d.Right(), d.Bottom()).Intersect(bounds)
		if r.Empty() {
			continue
		}
		Blit(s.mem, s.stride, s.format, s.back, r)
	}
	return nil
}

// Close releases the device. The screen cannot be used afterwards.
func (s *Screen) Close() error {
	if s.mem == nil {
		return nil
	}
	s.mem = nil
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
