package lattice

import (
	"image"

	"golang.org/x/image/draw"
)

// Screen is a drawable surface a window renders into. Flip presents the
// listed rectangles, in screen coordinates, after they were redrawn.
type Screen interface {
	Size() Size
	Painter() Painter
	Flip(damage []Rect) error
}

// MemoryScreen is a Screen backed by two RGBA buffers. Drawing goes to the
// back buffer; Flip copies the damaged rectangles to the front buffer, which
// is what a display would scan out.
type MemoryScreen struct {
	back    *image.RGBA
	front   *image.RGBA
	painter *RGBAPainter

	// Flips counts calls to Flip.
	Flips int
	// LastFlip holds the damage passed to the most recent Flip.
	LastFlip []Rect
}

// NewMemoryScreen allocates a screen of the given size.
func NewMemoryScreen(s Size) *MemoryScreen {
	b := image.Rect(0, 0, s.Width, s.Height)
	back := image.NewRGBA(b)
	return &MemoryScreen{
		back:    back,
		front:   image.NewRGBA(b),
		painter: NewRGBAPainter(back),
	}
}

// Size returns the screen size.
func (m *MemoryScreen) Size() Size {
	b := m.back.Bounds()
	return Size{b.Dx(), b.Dy()}
}

// Painter returns the painter drawing into the back buffer.
func (m *MemoryScreen) Painter() Painter { return m.painter }

// Flip copies the damaged rectangles to the front buffer.
func (m *MemoryScreen) Flip(damage []Rect) error {
	m.Flips++
	m.LastFlip = append(m.LastFlip[:0], damage...)
	for _, r := range damage {
		ir := image.Rect(r.X, r.Y, r.Right(), r.Bottom()).Intersect(m.back.Bounds())
		draw.Draw(m.front, ir, m.back, ir.Min, draw.Src)
	}
	return nil
}

// Back returns the buffer drawing goes to.
func (m *MemoryScreen) Back() *image.RGBA { return m.back }

// Front returns the presented buffer.
func (m *MemoryScreen) Front() *image.RGBA { return m.front }
