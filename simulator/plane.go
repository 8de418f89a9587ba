package simulator

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lattice"
)

type planeState struct {
	pan lattice.Rect
	pos lattice.DisplayPoint
}

// Plane emulates a display-controller overlay plane. Register writes are
// staged and become visible on Apply, like the pan/scan registers of a real
// controller. The scanned-out pixels come from the framebuffer set with
// SetFramebuffer or, for plane windows, from the window's surface.
type Plane struct {
	fb      image.Image
	surface *lattice.MemoryScreen

	pending planeState
	current planeState
	// Applies counts successful Apply calls.
	Applies int

	img     *ebiten.Image
	imgFrom image.Image
}

// Pan returns the committed pan rectangle.
func (p *Plane) Pan() lattice.Rect { return p.current.pan }

// Position returns the committed display position.
func (p *Plane) Position() lattice.DisplayPoint { return p.current.pos }

// Surface returns the plane window surface, or nil for framebuffer planes.
func (p *Plane) Surface() *lattice.MemoryScreen { return p.surface }

// SetPanPos stages the top-left of the scanned-out region.
func (p *Plane) SetPanPos(x, y int) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("simulator: pan position %d,%d is negative", x, y)
	}
	p.pending.pan.X, p.pending.pan.Y = x, y
	return nil
}

// SetPanSize stages the size of the scanned-out region.
func (p *Plane) SetPanSize(w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("simulator: pan size %dx%d is negative", w, h)
	}
	p.pending.pan.Width, p.pending.pan.Height = w, h
	return nil
}

// SetPosition stages where the plane appears on the display.
func (p *Plane) SetPosition(pos lattice.DisplayPoint) error {
	p.pending.pos = pos
	return nil
}

// Apply commits the staged registers. The pan rectangle must fit the
// framebuffer.
func (p *Plane) Apply() error {
	if src := p.source(); src != nil && !p.pending.pan.Empty() {
		b := src.Bounds()
		if p.pending.pan.Right() > b.Dx() || p.pending.pan.Bottom() > b.Dy() {
			return fmt.Errorf("simulator: pan %s outside framebuffer %dx%d", p.pending.pan, b.Dx(), b.Dy())
		}
	}
	p.current = p.pending
	p.Applies++
	return nil
}

// SetFramebuffer sets the image the plane scans out.
func (p *Plane) SetFramebuffer(img image.Image) error {
	if img == nil {
		return fmt.Errorf("simulator: nil framebuffer")
	}
	p.fb = img
	return nil
}

func (p *Plane) source() image.Image {
	if p.fb != nil {
		return p.fb
	}
	if p.surface != nil {
		return p.surface.Front()
	}
	return nil
}

// visible returns the committed source region, the whole source when no pan
// size was programmed.
func (p *Plane) visible() (image.Image, image.Rectangle) {
	src := p.source()
	if src == nil {
		return nil, image.Rectangle{}
	}
	pan := p.current.pan
	if pan.Empty() {
		return src, src.Bounds()
	}
	origin := src.Bounds().Min
	return src, image.Rect(pan.X, pan.Y, pan.Right(), pan.Bottom()).Add(origin)
}

// compose draws the committed region onto dst at the plane position.
func (p *Plane) compose(dst *ebiten.Image) {
	src, r := p.visible()
	if src == nil || r.Empty() {
		return
	}
	if p.surface != nil {
		// The surface changes every frame; upload it whole.
		if p.img == nil || p.img.Bounds().Size() != src.Bounds().Size() {
			p.img = ebiten.NewImage(src.Bounds().Dx(), src.Bounds().Dy())
		}
		p.img.WritePixels(p.surface.Front().Pix)
	} else if p.img == nil || p.imgFrom != src {
		p.img = ebiten.NewImageFromImage(src)
		p.imgFrom = src
	}
	r = r.Sub(src.Bounds().Min)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(p.current.pos.X), float64(p.current.pos.Y))
	dst.DrawImage(p.img.SubImage(r).(*ebiten.Image), &op)
}
