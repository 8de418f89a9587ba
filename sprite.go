package lattice

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// FrameStrip is a run of Count equally sized frames on a sprite sheet,
// starting at (X, Y). Frames continue to the right and wrap onto following
// rows when they run past the sheet's right edge.
type FrameStrip struct {
	Count int
	X, Y  int
}

// StripOffset returns the sheet position of frame index of strip.
//
// x = X + index*frame.Width. When the frame would extend past sheetWidth,
// the position wraps: x mod sheetWidth, on row x div sheetWidth, each row
// being frame.Height + Y tall.
func StripOffset(strip FrameStrip, index int, frame Size, sheetWidth int) Point {
	x := strip.X + index*frame.Width
	if sheetWidth > 0 && x+frame.Width > sheetWidth {
		row := x / sheetWidth
		return Point{x % sheetWidth, row * (frame.Height + strip.Y)}
	}
	return Point{x, strip.Y}
}

// PlaneFramebuffer is implemented by plane drivers that can scan out an
// image supplied by the caller. Hardware sprites load their sheet through
// it when available.
type PlaneFramebuffer interface {
	SetFramebuffer(img image.Image) error
}

// Sprite is the frame-strip animation capability of a sprite widget. The
// hardware variant pans an overlay plane over the sheet, so changing frames
// copies no pixels. The software variant blits the frame during Draw.
type Sprite struct {
	w        *Widget
	sheet    image.Image
	frame    Size
	strips   []FrameStrip
	strip    int
	index    int
	hardware bool
}

// NewSoftwareSprite creates a sprite widget of frame size at the given
// position showing frame 0 of strip.
func (c *Context) NewSoftwareSprite(name string, sheet image.Image, frame Size, strip FrameStrip, at Point) *Sprite {
	if sheet == nil {
		panic("lattice: sprite needs a sheet")
	}
	w := c.newWidget(name, KindSprite, RectFrom(at, frame))
	s := &Sprite{w: w, sheet: sheet, frame: frame, strips: []FrameStrip{strip}}
	w.sprite = s
	return s
}

// NewHardwareSprite creates a plane window showing frame 0 of strip. The
// plane's pan position is set to the strip's first frame, its pan size to
// the frame size and its position to at, then the plane is applied. Like
// every window the sprite starts hidden.
func (c *Context) NewHardwareSprite(name string, sheet image.Image, frame Size, strip FrameStrip, at Point, plane PlaneDriver) (*Sprite, error) {
	if sheet == nil {
		panic("lattice: sprite needs a sheet")
	}
	if plane == nil {
		panic("lattice: hardware sprite needs a plane")
	}
	w := c.newPlaneWindow(name, RectFrom(at, frame), plane, nil)
	s := &Sprite{w: w, sheet: sheet, frame: frame, strips: []FrameStrip{strip}, hardware: true}
	w.sprite = s

	if err := s.programPlane(plane); err != nil {
		w.Destroy()
		return nil, err
	}
	return s, nil
}

// programPlane loads the sheet and the first frame into plane.
func (s *Sprite) programPlane(plane PlaneDriver) error {
	w := s.w
	if fb, ok := plane.(PlaneFramebuffer); ok {
		if err := fb.SetFramebuffer(s.sheet); err != nil {
			return fmt.Errorf("lattice: sprite %s framebuffer: %w", w, err)
		}
	}
	off := s.Offset()
	if err := plane.SetPanPos(off.X, off.Y); err != nil {
		return fmt.Errorf("lattice: sprite %s pan: %w", w, err)
	}
	if err := plane.SetPanSize(s.frame.Width, s.frame.Height); err != nil {
		return fmt.Errorf("lattice: sprite %s pan size: %w", w, err)
	}
	return w.applyPosition()
}

// Sprite returns the sprite capability of a sprite widget, or nil.
func (w *Widget) Sprite() *Sprite { return w.sprite }

// Widget returns the widget carrying the sprite.
func (s *Sprite) Widget() *Widget { return s.w }

// Hardware reports whether frames are shown by panning an overlay plane.
func (s *Sprite) Hardware() bool { return s.hardware }

// Sheet returns the sprite sheet image.
func (s *Sprite) Sheet() image.Image { return s.sheet }

// FrameSize returns the size of one frame.
func (s *Sprite) FrameSize() Size { return s.frame }

// Index returns the frame shown.
func (s *Sprite) Index() int { return s.index }

// Strip returns the index of the active strip.
func (s *Sprite) Strip() int { return s.strip }

// NumStrips returns the number of strips.
func (s *Sprite) NumStrips() int { return len(s.strips) }

// FrameCount returns the number of frames of the active strip.
func (s *Sprite) FrameCount() int { return s.strips[s.strip].Count }

// AddStrip registers another strip and returns its index.
func (s *Sprite) AddStrip(count, x, y int) int {
	s.strips = append(s.strips, FrameStrip{Count: count, X: x, Y: y})
	return len(s.strips) - 1
}

// SetStrip switches to strip i and shows its first frame.
func (s *Sprite) SetStrip(i int) error {
	if i < 0 || i >= len(s.strips) {
		panic("lattice: sprite strip index out of range")
	}
	if i == s.strip {
		return nil
	}
	s.strip = i
	s.index = 0
	return s.apply()
}

// Offset returns the sheet position of the frame shown.
func (s *Sprite) Offset() Point {
	return StripOffset(s.strips[s.strip], s.index, s.frame, s.sheet.Bounds().Dx())
}

// IsLastFrame reports whether the last frame of the strip is shown.
func (s *Sprite) IsLastFrame() bool {
	return s.index >= s.strips[s.strip].Count-1
}

// ShowFrame shows frame index of the active strip. Showing the frame
// already shown does nothing.
func (s *Sprite) ShowFrame(index int) error {
	if index == s.index {
		return nil
	}
	if index < 0 || index >= s.strips[s.strip].Count {
		panic("lattice: sprite frame index out of range")
	}
	s.index = index
	return s.apply()
}

// Advance shows the next frame, wrapping to 0 after the last.
func (s *Sprite) Advance() error {
	next := s.index + 1
	if next >= s.strips[s.strip].Count {
		next = 0
	}
	return s.ShowFrame(next)
}

// apply makes the current frame visible.
func (s *Sprite) apply() error {
	if !s.hardware {
		s.w.Damage()
		return nil
	}
	off := s.Offset()
	p := s.w.plane
	if err := p.SetPanPos(off.X, off.Y); err != nil {
		return fmt.Errorf("lattice: sprite %s pan: %w", s.w, err)
	}
	if err := p.SetPanSize(s.frame.Width, s.frame.Height); err != nil {
		return fmt.Errorf("lattice: sprite %s pan size: %w", s.w, err)
	}
	if err := p.Apply(); err != nil {
		return fmt.Errorf("lattice: sprite %s apply: %w", s.w, err)
	}
	return nil
}

// Surface copies the frame shown into a new image.
func (s *Sprite) Surface() *image.RGBA {
	off := s.Offset()
	b := s.sheet.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, s.frame.Width, s.frame.Height))
	draw.Draw(img, img.Bounds(), s.sheet, b.Min.Add(image.Pt(off.X, off.Y)), draw.Src)
	return img
}

// draw blits the frame at the widget's local origin. Hardware sprites are
// scanned out by their plane and draw nothing.
func (s *Sprite) draw(p Painter) {
	if s.hardware {
		return
	}
	off := s.Offset()
	b := s.sheet.Bounds()
	p.DrawImage(s.sheet, RectFrom(Point{b.Min.X + off.X, b.Min.Y + off.Y}, s.frame), Point{})
}

func (s *Sprite) release() {
	s.sheet = nil
}
