package lattice

import (
	"errors"
	"image"
	"time"
)

// ErrExportUnavailable is returned by PaintToFile when the Context has no
// image exporter.
var ErrExportUnavailable = errors.New("lattice: no image exporter")

var (
	composerBorder = ColorBlack
	composerBg     = Color{0, 0, 0, 0x20 / 255.0}
)

// Draw renders the part of the widget inside rect, then its children. For a
// widget owning a screen rect is in local coordinates; otherwise it is in
// parent coordinates like Box, and the painter origin is moved to the
// widget's top-left corner. The caller brackets Draw with Save/Restore.
func (w *Widget) Draw(p Painter, rect Rect) {
	if w.ui.debug() {
		debugCheckDisposed(w, "Draw")
	}
	w.inDraw = true
	defer func() { w.inDraw = false }()

	crect := rect
	if w.screen == nil {
		if o := w.box.Point(); o != (Point{}) {
			p.Translate(o)
			crect = crect.Sub(o)
		}
	}
	if w.Clip() {
		p.Clip(crect)
	}

	w.drawChrome(p)
	if w.sprite != nil {
		w.sprite.draw(p)
	}
	if w.OnDraw != nil {
		w.OnDraw(p, crect)
	}

	if len(w.children) == 0 {
		return
	}

	crect = crect.Intersect(w.ToChild(w.ContentArea()))
	for _, child := range w.children {
		if !child.Visible() {
			continue
		}
		// planes are scanned out by the display controller
		if child.flags.Has(FlagPlaneWindow) {
			continue
		}
		w.drawChild(p, crect, child)
	}
}

func (w *Widget) drawChrome(p Painter) {
	if !w.fill.Empty() || w.border > 0 {
		group := GroupNormal
		if w.Disabled() {
			group = GroupDisabled
		} else if w.Active() {
			group = GroupActive
		}
		w.ui.theme.DrawBox(p, BoxStyle{
			Rect:        w.LocalBox(),
			Fill:        w.fill,
			Border:      w.ColorIn(ColorBorder, group),
			Background:  w.ColorIn(ColorBg, group),
			BorderWidth: w.border,
			Margin:      w.margin,
			Radius:      w.borderRadius,
			BorderFlags: w.borderFlags,
		})
		return
	}
	if w.ui.cfg.Composer {
		w.ui.theme.DrawBox(p, BoxStyle{
			Rect:        w.LocalBox(),
			Fill:        FillBlend,
			Border:      composerBorder,
			Background:  composerBg,
			BorderWidth: 1,
		})
	}
}

// drawChild draws child where it intersects crect (local coordinates). A
// clipping widget confines each child to that intersection.
// Opaque children draw straight to the target; translucent ones draw into a
// group that is blended at the child's alpha.
func (w *Widget) drawChild(p Painter, crect Rect, child *Widget) {
	r := crect.Intersect(child.box)
	if r.Empty() || child.alpha <= 0 {
		return
	}

	var start time.Time
	if w.ui.cfg.TimeDraw {
		start = time.Now()
	}

	if child.alpha >= 1 {
		p.Save()
		if w.Clip() {
			p.Clip(r)
		}
		child.Draw(p, r)
		p.Restore()
	} else {
		p.PushGroup()
		if w.Clip() {
			p.Clip(r)
		}
		child.Draw(p, r)
		p.PopGroup(child.alpha)
	}

	if w.ui.cfg.TimeDraw {
		w.ui.logger.Info("draw", "widget", child.String(), "rect", r.String(), "elapsed", time.Since(start))
	}
}

// Paint draws the whole widget with its top-left corner at the painter
// origin.
func (w *Widget) Paint(p Painter) {
	p.Save()
	defer p.Restore()
	if w.screen == nil {
		o := w.box.Point()
		p.Translate(Point{-o.X, -o.Y})
		w.Draw(p, w.box)
		return
	}
	w.Draw(p, w.LocalBox())
}

// PaintImage paints the widget into a new image of its size.
func (w *Widget) PaintImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w.box.Width, w.box.Height))
	w.Paint(NewRGBAPainter(img))
	return img
}

// PaintToFile paints the widget and hands the image to the Context's
// exporter. An empty name uses the widget name.
func (w *Widget) PaintToFile(name string) error {
	if w.ui.exporter == nil {
		return ErrExportUnavailable
	}
	if name == "" {
		name = w.name
	}
	return w.ui.exporter.Export(name, w.PaintImage())
}
