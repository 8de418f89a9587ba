package lattice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestTweenMove(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("w", Rect{0, 0, 10, 10})
	g := TweenMove(w, Point{100, 50}, 1, ease.Linear)
	ui.Animate(g)

	ui.Update(0.5)
	assert.Equal(t, Point{50, 25}, w.Point())
	assert.False(t, g.Finished())

	ui.Update(0.5)
	assert.Equal(t, Point{100, 50}, w.Point())
	assert.True(t, g.Finished())
	assert.Empty(t, ui.animations)
}

func TestTweenResizeAndAlpha(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("w", Rect{0, 0, 10, 20})
	w.SetAutoresize(false)
	resize := TweenResize(w, Size{30, 40}, 2, ease.Linear)
	fade := TweenAlpha(w, 0, 1, ease.Linear)

	resize.Update(1)
	fade.Update(0.25)
	assert.Equal(t, Size{20, 30}, w.Size())
	assert.Equal(t, 0.75, w.Alpha())

	resize.Update(5)
	fade.Update(5)
	assert.Equal(t, Size{30, 40}, w.Size())
	assert.Equal(t, 0.0, w.Alpha())
	assert.True(t, resize.Finished())
	assert.True(t, fade.Finished())
}

func TestTweenColor(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("w", Rect{0, 0, 10, 10})
	w.SetColor(ColorBg, ColorWhite, GroupNormal)
	g := TweenColor(w, ColorBg, GroupNormal, ColorBlack, 1, ease.Linear)

	g.Update(0.5)
	mid := w.ColorIn(ColorBg, GroupNormal)
	assert.InDelta(t, 0.5, mid.R, 1e-6)
	assert.Equal(t, 1.0, mid.A)

	g.Update(0.5)
	assert.Equal(t, ColorBlack, w.ColorIn(ColorBg, GroupNormal))
}

func TestTweenStopsOnDestroyedTarget(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("w", Rect{})
	g := TweenMove(w, Point{10, 10}, 1, ease.Linear)
	w.Destroy()
	g.Update(0.5)
	assert.True(t, g.Finished())
	assert.Equal(t, Point{}, w.Point())
}

type failingAnim struct{ updates int }

func (a *failingAnim) Update(float32) { a.updates++ }
func (a *failingAnim) Finished() bool { return true }
func (a *failingAnim) Err() error     { return errors.New("plane gone") }

func TestUpdateDropsFinishedAnimations(t *testing.T) {
	ui := NewTestContext()
	a := &failingAnim{}
	ui.Animate(a)
	ui.Update(0.1)
	ui.Update(0.1)
	assert.Equal(t, 1, a.updates)
	assert.InDelta(t, 0.2, ui.Clock(), 1e-9)
}

func TestUpdateConsumesOneInjectedInputPerCall(t *testing.T) {
	ui := NewTestContext()
	win, _ := newTestWindow(t, ui, Size{100, 100})
	var log eventLog
	log.attach(win, EventPointerClick, EventKeyboardDown)

	ui.InjectClick(10, 10)
	ui.InjectKey(KeyEnter, 0)
	assert.True(t, ui.InjectPending())

	var consumed []bool
	for range 5 {
		consumed = append(consumed, ui.Update(1.0/60))
	}
	assert.Equal(t, []bool{true, true, true, true, false}, consumed)
	assert.Equal(t, []EventID{EventPointerClick, EventKeyboardDown}, log.ids)
	assert.False(t, ui.InjectPending())
}

func TestUpdateAppliesPaletteUpdates(t *testing.T) {
	ui := NewTestContext()
	win, _ := newTestWindow(t, ui, Size{10, 10})
	ch := make(chan PaletteUpdate, 2)
	ui.paletteUpdates = ch

	p := NewPalette()
	p.Set(ColorBg, GroupNormal, ColorBlack)
	ch <- PaletteUpdate{Path: "p.toml", Palette: p}
	ui.Update(0)
	assert.Same(t, p, ui.Palette())
	assert.Equal(t, DamageArray{{0, 0, 10, 10}}, win.Damaged())

	ch <- PaletteUpdate{Path: "p.toml", Err: errors.New("bad color")}
	ui.Update(0)
	assert.Same(t, p, ui.Palette(), "failed reloads keep the palette")

	close(ch)
	ui.Update(0)
	assert.Nil(t, ui.paletteUpdates)
	assert.NotPanics(t, func() { ui.Update(0) })
}

func TestTestRunnerStepsBeforeInput(t *testing.T) {
	ui := NewTestContext()
	win, _ := newTestWindow(t, ui, Size{100, 100})
	var log eventLog
	log.attach(win, EventRawPointerDown)

	r, err := LoadTestScript([]byte(`{"steps":[{"action":"click","x":5,"y":5}]}`))
	require.NoError(t, err)
	ui.SetTestRunner(r)

	// the runner queues the click and the same Update dispatches its press
	require.True(t, ui.Update(0))
	assert.Equal(t, []EventID{EventRawPointerDown}, log.ids)
}
