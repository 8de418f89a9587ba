package lattice

import (
	"errors"
	"fmt"
)

// NewWindow creates a top-level frame drawing into screen. The window covers
// the whole screen and starts hidden; Show damages it so the first Draw
// paints everything.
func (c *Context) NewWindow(name string, screen Screen) *Widget {
	if screen == nil {
		panic("lattice: window needs a screen")
	}
	s := screen.Size()
	w := c.newWidget(name, KindWindow, Rect{Width: s.Width, Height: s.Height})
	w.flags |= FlagWindow | FlagFrame | FlagInvisible
	w.screen = screen
	c.addWindow(w)
	return w
}

// DrawDamage redraws every pending damage rectangle through the screen's
// painter, flips the screen with the damage list and clears it.
func (w *Widget) DrawDamage() error {
	if w.screen == nil || len(w.damage) == 0 || !w.Visible() {
		return nil
	}
	w.ui.logger.Debug("draw", "window", w.String(), "rects", len(w.damage))
	p := w.screen.Painter()
	for _, r := range w.damage {
		p.Save()
		w.Draw(p, r)
		p.Restore()
	}
	damage := w.damage
	w.damage = nil
	if err := w.screen.Flip(damage); err != nil {
		return fmt.Errorf("lattice: flip %s: %w", w, err)
	}
	return nil
}

// Draw redraws the damage of every visible window in creation order, then
// writes queued screenshots.
func (c *Context) Draw() error {
	var errs []error
	for _, w := range c.windows {
		if !w.Visible() {
			continue
		}
		if err := w.DrawDamage(); err != nil {
			errs = append(errs, err)
		}
	}
	c.flushScreenshots()
	return errors.Join(errs...)
}
