package lattice

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animator is anything Context.Update can advance.
type Animator interface {
	Update(dt float32)
	Finished() bool
}

// TweenGroup animates up to 4 values of a widget property simultaneously.
// Create one via the convenience constructors (TweenMove, TweenResize,
// TweenAlpha, TweenColor) and either call Update(dt) each frame or hand it
// to Context.Animate. Values go through the widget's setters, so every step
// damages and lays out like a direct call. If the target widget is
// destroyed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(v [4]float32)
	target *Widget
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	var vals [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(vals)
}

// Finished reports whether the group completed or its target was destroyed.
func (g *TweenGroup) Finished() bool { return g.Done }

func round(v float32) int { return int(math.Round(float64(v))) }

// TweenMove animates the widget position to `to`.
func TweenMove(w *Widget, to Point, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: w}
	g.tweens[0] = gween.New(float32(w.X()), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(w.Y()), float32(to.Y), duration, fn)
	g.apply = func(v [4]float32) { w.Move(Point{round(v[0]), round(v[1])}) }
	return g
}

// TweenResize animates the widget size to `to`.
func TweenResize(w *Widget, to Size, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: w}
	g.tweens[0] = gween.New(float32(w.Width()), float32(to.Width), duration, fn)
	g.tweens[1] = gween.New(float32(w.Height()), float32(to.Height), duration, fn)
	g.apply = func(v [4]float32) { w.Resize(Size{round(v[0]), round(v[1])}) }
	return g
}

// TweenAlpha animates the widget opacity to `to`.
func TweenAlpha(w *Widget, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: w}
	g.tweens[0] = gween.New(float32(w.Alpha()), float32(to), duration, fn)
	g.apply = func(v [4]float32) { w.SetAlpha(float64(v[0])) }
	return g
}

// TweenColor animates one palette entry of the widget from its resolved
// value to `to`.
func TweenColor(w *Widget, id ColorID, group GroupID, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := w.ColorIn(id, group)
	g := &TweenGroup{count: 4, target: w}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.apply = func(v [4]float32) {
		w.SetColor(id, Color{float64(v[0]), float64(v[1]), float64(v[2]), float64(v[3])}, group)
	}
	return g
}

// SpriteAnimation advances a sprite at a fixed frame rate.
type SpriteAnimation struct {
	sprite    *Sprite
	frameTime float32
	acc       float32
	// Loop restarts at frame 0 after the last frame; otherwise the
	// animation finishes on the last frame.
	Loop bool
	Done bool
	err  error
}

// AnimateSprite returns an animation showing fps frames per second.
func AnimateSprite(s *Sprite, fps float32, loop bool) *SpriteAnimation {
	if fps <= 0 {
		panic("lattice: sprite animation needs a positive fps")
	}
	return &SpriteAnimation{sprite: s, frameTime: 1 / fps, Loop: loop}
}

// Update accumulates dt and advances one frame per elapsed frame time.
func (a *SpriteAnimation) Update(dt float32) {
	if a.Done {
		return
	}
	if a.sprite.w.IsDisposed() {
		a.Done = true
		return
	}
	a.acc += dt
	for a.acc >= a.frameTime {
		a.acc -= a.frameTime
		if !a.Loop && a.sprite.IsLastFrame() {
			a.Done = true
			return
		}
		if err := a.sprite.Advance(); err != nil {
			a.err = err
			a.Done = true
			return
		}
	}
}

// Finished reports whether the animation stopped.
func (a *SpriteAnimation) Finished() bool { return a.Done }

// Err returns the plane error that stopped the animation, if any.
func (a *SpriteAnimation) Err() error { return a.err }

// Animate registers a to be advanced by Update until it finishes.
func (c *Context) Animate(a Animator) {
	c.animations = append(c.animations, a)
}

// Update advances the UI clock by dt seconds. In order: a watched palette
// reload is applied, the test runner steps, one queued synthetic input is
// dispatched, pointer hold timing runs, then registered animations advance.
// It reports whether synthetic input was consumed, in which case the caller
// should skip real input this frame.
func (c *Context) Update(dt float64) bool {
	c.clock += dt
	c.pollPalette()
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	injected := c.processInjectedInput()
	c.tickPointer(dt)

	live := c.animations[:0]
	for _, a := range c.animations {
		a.Update(float32(dt))
		if !a.Finished() {
			live = append(live, a)
			continue
		}
		if e, ok := a.(interface{ Err() error }); ok && e.Err() != nil {
			c.logger.Error("animation", "err", e.Err())
		}
	}
	clear(c.animations[len(live):])
	c.animations = live
	return injected
}
