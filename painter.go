package lattice

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Painter is the 2D immediate-mode drawing context widgets render through.
// All coordinates are relative to the current origin, which Translate moves.
// Save and Restore bracket changes to the origin and clip.
type Painter interface {
	Save()
	Restore()

	// Translate moves the origin by p.
	Translate(p Point)
	// Clip intersects the current clip with r.
	Clip(r Rect)
	// ClipRect returns the current clip in local coordinates.
	ClipRect() Rect

	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color, width int)
	FillCircle(center Point, radius int, c Color)
	StrokeCircle(center Point, radius, width int, c Color)
	// DrawImage copies the src sub-rectangle so its top-left lands on dst.
	DrawImage(src image.Image, sr Rect, dst Point)

	// PushGroup redirects drawing into an offscreen group until PopGroup,
	// which composites the group onto the previous target at alpha.
	PushGroup()
	PopGroup(alpha float64)
}

type painterState struct {
	origin Point
	clip   Rect // device coordinates
}

type painterGroup struct {
	target     *image.RGBA
	stateDepth int
}

// RGBAPainter is a software Painter drawing into an *image.RGBA.
type RGBAPainter struct {
	base   *image.RGBA
	target *image.RGBA
	state  painterState
	stack  []painterState
	groups []painterGroup
	pool   *imagePool
}

// NewRGBAPainter returns a painter drawing into dst with the origin at
// dst's top-left and the clip covering all of dst.
func NewRGBAPainter(dst *image.RGBA) *RGBAPainter {
	b := dst.Bounds()
	return &RGBAPainter{
		base:   dst,
		target: dst,
		state:  painterState{origin: Point{b.Min.X, b.Min.Y}, clip: rectFromImage(b)},
		pool:   &imagePool{},
	}
}

// Image returns the image the painter draws into.
func (p *RGBAPainter) Image() *image.RGBA { return p.base }

// Save pushes the origin and clip.
func (p *RGBAPainter) Save() {
	p.stack = append(p.stack, p.state)
}

// Restore pops the origin and clip saved by the matching Save.
func (p *RGBAPainter) Restore() {
	if len(p.stack) == 0 {
		panic("lattice: painter restore without save")
	}
	p.state = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

// Translate moves the origin by d.
func (p *RGBAPainter) Translate(d Point) {
	p.state.origin = p.state.origin.Add(d)
}

// Clip intersects the current clip with r.
func (p *RGBAPainter) Clip(r Rect) {
	p.state.clip = p.state.clip.Intersect(r.Add(p.state.origin))
}

// ClipRect returns the current clip in local coordinates.
func (p *RGBAPainter) ClipRect() Rect {
	return p.state.clip.Sub(p.state.origin)
}

// device converts a local rectangle to a clipped device rectangle.
func (p *RGBAPainter) device(r Rect) image.Rectangle {
	d := r.Add(p.state.origin).Intersect(p.state.clip)
	return image.Rect(d.X, d.Y, d.Right(), d.Bottom())
}

// FillRect fills r with c using source-over.
func (p *RGBAPainter) FillRect(r Rect, c Color) {
	dr := p.device(r)
	if dr.Empty() || c.A <= 0 {
		return
	}
	draw.Draw(p.target, dr, image.NewUniform(c.RGBA()), image.Point{}, draw.Over)
}

// StrokeRect draws a border of the given width inside r.
func (p *RGBAPainter) StrokeRect(r Rect, c Color, width int) {
	if width <= 0 || r.Empty() {
		return
	}
	width = min(width, r.Width/2+r.Width%2, r.Height/2+r.Height%2)
	p.FillRect(Rect{r.X, r.Y, r.Width, width}, c)
	p.FillRect(Rect{r.X, r.Bottom() - width, r.Width, width}, c)
	p.FillRect(Rect{r.X, r.Y + width, width, r.Height - 2*width}, c)
	p.FillRect(Rect{r.Right() - width, r.Y + width, width, r.Height - 2*width}, c)
}

// FillCircle fills a disc.
func (p *RGBAPainter) FillCircle(center Point, radius int, c Color) {
	if radius <= 0 {
		return
	}
	bounds := Rect{center.X - radius, center.Y - radius, 2 * radius, 2 * radius}
	p.rasterize(bounds, c, func(z *vector.Rasterizer, off Point) {
		circlePath(z, center.Add(off), float64(radius), false)
	})
}

// StrokeCircle draws a ring of the given width inside radius.
func (p *RGBAPainter) StrokeCircle(center Point, radius, width int, c Color) {
	if radius <= 0 || width <= 0 {
		return
	}
	bounds := Rect{center.X - radius, center.Y - radius, 2 * radius, 2 * radius}
	p.rasterize(bounds, c, func(z *vector.Rasterizer, off Point) {
		circlePath(z, center.Add(off), float64(radius), false)
		if inner := float64(radius - width); inner > 0 {
			circlePath(z, center.Add(off), inner, true)
		}
	})
}

func (p *RGBAPainter) rasterize(local Rect, c Color, build func(z *vector.Rasterizer, off Point)) {
	dr := p.device(local)
	if dr.Empty() || c.A <= 0 {
		return
	}
	z := vector.NewRasterizer(dr.Dx(), dr.Dy())
	// path coordinates are relative to dr.Min
	build(z, p.state.origin.Sub(Point{dr.Min.X, dr.Min.Y}))
	z.Draw(p.target, dr, image.NewUniform(c.RGBA()), image.Point{})
}

// circlePath appends a closed circle made of four cubic segments.
func circlePath(z *vector.Rasterizer, c Point, r float64, reverse bool) {
	const k = 0.5522847498
	cx, cy := float32(c.X), float32(c.Y)
	rr := float32(r)
	kr := float32(k * r)
	if !reverse {
		z.MoveTo(cx+rr, cy)
		z.CubeTo(cx+rr, cy+kr, cx+kr, cy+rr, cx, cy+rr)
		z.CubeTo(cx-kr, cy+rr, cx-rr, cy+kr, cx-rr, cy)
		z.CubeTo(cx-rr, cy-kr, cx-kr, cy-rr, cx, cy-rr)
		z.CubeTo(cx+kr, cy-rr, cx+rr, cy-kr, cx+rr, cy)
	} else {
		z.MoveTo(cx+rr, cy)
		z.CubeTo(cx+rr, cy-kr, cx+kr, cy-rr, cx, cy-rr)
		z.CubeTo(cx-kr, cy-rr, cx-rr, cy-kr, cx-rr, cy)
		z.CubeTo(cx-rr, cy+kr, cx-kr, cy+rr, cx, cy+rr)
		z.CubeTo(cx+kr, cy+rr, cx+rr, cy+kr, cx+rr, cy)
	}
	z.ClosePath()
}

// DrawImage copies sr from src so that its top-left lands on dst.
func (p *RGBAPainter) DrawImage(src image.Image, sr Rect, dst Point) {
	want := RectFrom(dst, sr.Size()).Add(p.state.origin)
	dr := p.device(RectFrom(dst, sr.Size()))
	if dr.Empty() {
		return
	}
	sp := image.Point{X: sr.X + dr.Min.X - want.X, Y: sr.Y + dr.Min.Y - want.Y}
	draw.Draw(p.target, dr, src, sp, draw.Over)
}

// PushGroup starts an offscreen group. It implies Save.
func (p *RGBAPainter) PushGroup() {
	p.Save()
	p.groups = append(p.groups, painterGroup{target: p.target, stateDepth: len(p.stack)})
	p.target = p.pool.Acquire(p.base.Bounds())
}

// PopGroup composites the group opened by PushGroup at alpha and restores the
// state saved by PushGroup.
func (p *RGBAPainter) PopGroup(alpha float64) {
	if len(p.groups) == 0 {
		panic("lattice: painter pop group without push")
	}
	g := p.groups[len(p.groups)-1]
	p.groups = p.groups[:len(p.groups)-1]
	group := p.target
	p.target = g.target
	// unwind any Save calls left open inside the group
	p.stack = p.stack[:g.stateDepth]
	p.Restore()

	dr := p.device(p.ClipRect())
	if !dr.Empty() && alpha > 0 {
		if alpha >= 1 {
			draw.Draw(p.target, dr, group, dr.Min, draw.Over)
		} else {
			mask := image.NewUniform(color.Alpha{A: uint8(math.Round(clamp01(alpha) * 255))})
			draw.DrawMask(p.target, dr, group, dr.Min, mask, image.Point{}, draw.Over)
		}
	}
	p.pool.Release(group)
}

func rectFromImage(b image.Rectangle) Rect {
	return Rect{b.Min.X, b.Min.Y, b.Dx(), b.Dy()}
}
