package lattice

import "fmt"

// PlaneDriver programs one display-controller overlay plane. The pan
// rectangle selects which part of the plane's framebuffer is scanned out and
// the position places it on the display. Setters stage values; Apply commits
// them together.
type PlaneDriver interface {
	SetPanPos(x, y int) error
	SetPanSize(w, h int) error
	SetPosition(p DisplayPoint) error
	Apply() error
}

// NewPlaneWindow creates a window scanned out by plane at r. surface, when
// not nil, is what the window's widgets draw into; a window whose content is
// fully set through the pan registers (such as a hardware sprite) passes nil.
// Like every window it starts hidden.
func (c *Context) NewPlaneWindow(name string, r Rect, plane PlaneDriver, surface Screen) *Widget {
	w := c.newPlaneWindow(name, r, plane, surface)
	if err := w.applyPosition(); err != nil {
		c.logger.Error("plane position", "window", w.String(), "err", err)
	}
	return w
}

func (c *Context) newPlaneWindow(name string, r Rect, plane PlaneDriver, surface Screen) *Widget {
	w := c.newWidget(name, KindPlaneWindow, r)
	w.flags |= FlagWindow | FlagFrame | FlagPlaneWindow | FlagInvisible
	w.screen = surface
	w.plane = plane
	c.addWindow(w)
	if plane != nil {
		c.planes++
	}
	return w
}

// Plane returns the plane driver of a plane window, or nil.
func (w *Widget) Plane() PlaneDriver { return w.plane }

func (w *Widget) applyPosition() error {
	if w.plane == nil {
		return nil
	}
	if err := w.plane.SetPosition(w.DisplayOrigin()); err != nil {
		return fmt.Errorf("lattice: plane %s position: %w", w, err)
	}
	if err := w.plane.Apply(); err != nil {
		return fmt.Errorf("lattice: plane %s apply: %w", w, err)
	}
	return nil
}

// movePlane follows a Move with the position of every plane in the subtree.
func (w *Widget) movePlane() {
	if w.ui.planes == 0 {
		return
	}
	w.Walk(func(c *Widget, _ int) bool {
		if c.plane != nil {
			if err := c.applyPosition(); err != nil {
				w.ui.logger.Error("move plane", "window", c.String(), "err", err)
			}
		}
		return true
	})
}
