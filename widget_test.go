package lattice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// damageRecorder counts damage calls per widget through Context.OnDamage.
type damageRecorder struct {
	rects map[*Widget][]Rect
}

func recordDamage(ui *Context) *damageRecorder {
	d := &damageRecorder{rects: make(map[*Widget][]Rect)}
	ui.OnDamage = func(w *Widget, r Rect) {
		d.rects[w] = append(d.rects[w], r)
	}
	return d
}

func (d *damageRecorder) reset() { clear(d.rects) }

func (d *damageRecorder) total() int {
	n := 0
	for _, rs := range d.rects {
		n += len(rs)
	}
	return n
}

func TestNewWidgetDefaults(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("", Rect{1, 2, 3, 4})
	assert.Equal(t, "widget1", w.Name())
	assert.Equal(t, KindWidget, w.Kind())
	assert.Equal(t, Rect{1, 2, 3, 4}, w.Box())
	assert.Equal(t, 1.0, w.Alpha())
	assert.True(t, w.Visible())
	assert.False(t, w.IsFrame())
	assert.True(t, w.Autoresize())
	assert.Equal(t, "widget1#1", w.String())

	f := ui.NewFrame("f", Rect{})
	assert.True(t, f.IsFrame())
	assert.Equal(t, uint32(2), f.ID)
}

func TestNoopMoveResizeDoNothing(t *testing.T) {
	ui := NewTestContext()
	frame := ui.NewFrame("frame", Rect{0, 0, 100, 100})
	w := ui.NewWidget("w", Rect{10, 10, 20, 20})
	require.NoError(t, frame.Add(w))

	layouts := 0
	frame.OnLayout = func() { layouts++ }
	rec := recordDamage(ui)

	w.Move(Point{10, 10})
	w.Resize(Size{20, 20})
	w.SetBox(Rect{10, 10, 20, 20})
	w.MoveToCenter(Point{20, 20})

	assert.Zero(t, rec.total())
	assert.Zero(t, layouts)
}

func TestMoveDamagesOldAndNew(t *testing.T) {
	ui := NewTestContext()
	frame := ui.NewFrame("frame", Rect{0, 0, 100, 100})
	w := ui.NewWidget("w", Rect{10, 10, 20, 20})
	require.NoError(t, frame.Add(w))

	layouts := 0
	frame.OnLayout = func() { layouts++ }
	rec := recordDamage(ui)

	w.Move(Point{30, 40})
	assert.Equal(t, []Rect{{10, 10, 20, 20}, {30, 40, 20, 20}}, rec.rects[w])
	assert.Equal(t, 1, layouts)
	assert.Equal(t, Rect{30, 40, 20, 20}, w.UserBox())
}

func TestNoLayoutSkipsParentLayout(t *testing.T) {
	ui := NewTestContext()
	frame := ui.NewFrame("frame", Rect{0, 0, 100, 100})
	w := ui.NewWidget("w", Rect{10, 10, 20, 20})
	require.NoError(t, frame.Add(w))
	w.SetNoLayout(true)

	layouts := 0
	frame.OnLayout = func() { layouts++ }
	w.Move(Point{50, 50})
	w.Resize(Size{5, 5})
	assert.Zero(t, layouts)
	assert.Equal(t, Rect{50, 50, 5, 5}, w.Box())
}

func TestHideShowDamageSameRect(t *testing.T) {
	ui := NewTestContext()
	win, _ := newTestWindow(t, ui, Size{100, 100})
	w := ui.NewWidget("w", Rect{5, 6, 7, 8})
	require.NoError(t, win.Add(w))
	rec := recordDamage(ui)

	w.Hide()
	assert.False(t, w.Visible())
	w.Hide()
	w.Show()
	w.Show()
	assert.True(t, w.Visible())
	assert.Equal(t, []Rect{{5, 6, 7, 8}, {5, 6, 7, 8}}, rec.rects[w])
}

func TestShowHideHooks(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("w", Rect{0, 0, 1, 1})
	var calls []string
	w.OnShow = func() { calls = append(calls, "show") }
	w.OnHide = func() { calls = append(calls, "hide") }
	w.SetVisible(false)
	w.SetVisible(true)
	w.SetVisible(true)
	assert.Equal(t, []string{"hide", "show"}, calls)
}

func TestAddErrors(t *testing.T) {
	ui := NewTestContext()
	a := ui.NewFrame("a", Rect{0, 0, 10, 10})
	b := ui.NewFrame("b", Rect{0, 0, 10, 10})
	leaf := ui.NewWidget("leaf", Rect{})
	child := ui.NewWidget("child", Rect{})

	require.NoError(t, a.Add(child))
	require.NoError(t, a.Add(child), "re-adding to the same parent is a no-op")
	assert.Equal(t, 1, a.NumChildren())

	tests := []struct {
		name   string
		parent *Widget
		child  *Widget
		want   error
	}{
		{"parent conflict", b, child, ErrParentConflict},
		{"self", a, a, ErrSelfParent},
		{"not a frame", leaf, ui.NewWidget("x", Rect{}), ErrNotContainer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parent.Add(tt.child)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	require.NoError(t, b.Add(a))
	err := a.Add(b)
	assert.ErrorIs(t, err, ErrCycle)
	assert.Same(t, child.Parent(), a)
}

func TestAddAtClampsAndOrders(t *testing.T) {
	ui := NewTestContext()
	f := ui.NewFrame("f", Rect{0, 0, 10, 10})
	x := ui.NewWidget("x", Rect{})
	y := ui.NewWidget("y", Rect{})
	z := ui.NewWidget("z", Rect{})
	require.NoError(t, f.AddAt(x, 10))
	require.NoError(t, f.AddAt(y, -3))
	require.NoError(t, f.AddAt(z, 1))
	assert.Equal(t, []*Widget{y, z, x}, f.Children())
	assert.Equal(t, 1, z.ZOrder())
	assert.Same(t, x, f.ChildAt(2))
	assert.Panics(t, func() { f.ChildAt(3) })
}

func TestRemoveAndDetach(t *testing.T) {
	ui := NewTestContext()
	win, _ := newTestWindow(t, ui, Size{100, 100})
	w := ui.NewWidget("w", Rect{10, 10, 10, 10})
	require.NoError(t, win.Add(w))
	win.ClearDamage()

	w.Detach()
	assert.Nil(t, w.Parent())
	assert.Zero(t, win.NumChildren())
	assert.Equal(t, DamageArray{{10, 10, 10, 10}}, win.Damaged())

	// detaching again is harmless
	w.Detach()
	other := ui.NewWidget("other", Rect{})
	win.Remove(other)
}

func TestDestroyClearsReferences(t *testing.T) {
	ui := NewTestContext()
	f := ui.NewFrame("f", Rect{0, 0, 10, 10})
	child := ui.NewWidget("child", Rect{})
	require.NoError(t, f.Add(child))

	ui.SetKeyboardFocus(child)
	ui.SetMouseGrab(child)
	ref := RefOf(child)
	require.Same(t, child, ref.Get())

	f.Destroy()
	assert.True(t, f.IsDisposed())
	assert.True(t, child.IsDisposed())
	assert.Nil(t, ui.KeyboardFocus())
	assert.Nil(t, ui.MouseGrab())
	assert.Nil(t, ref.Get())
	assert.False(t, ref.Is(child))
	assert.NotPanics(t, f.Destroy)
}

func TestDebugPanicsOnDestroyed(t *testing.T) {
	ui := NewTestContext()
	ui.SetDebug(true)
	w := ui.NewWidget("gone", Rect{0, 0, 5, 5})
	w.Destroy()
	assert.PanicsWithValue(t, `lattice debug: Move on destroyed widget "gone"`, func() {
		w.Move(Point{1, 1})
	})
}

func TestCoordinateRoundTrip(t *testing.T) {
	ui := NewTestContext()
	win, _ := newTestWindow(t, ui, Size{400, 300})
	frame := ui.NewFrame("frame", Rect{50, 40, 200, 200})
	child := ui.NewWidget("child", Rect{10, 20, 30, 30})
	require.NoError(t, frame.Add(child))
	require.NoError(t, win.Add(frame))

	assert.Equal(t, DisplayPoint{60, 60}, child.DisplayOrigin())
	for _, p := range []Point{{0, 0}, {5, 7}, {-3, 100}} {
		d := child.LocalToDisplay(p)
		assert.Equal(t, p, child.DisplayToLocal(d))
	}
	assert.Equal(t, DisplayPoint{65, 67}, child.LocalToDisplay(Point{5, 7}))
	assert.Equal(t, Point{15, 27}, child.ToParent(Point{5, 7}))
	assert.Equal(t, Point{60, 60}, child.ToPanel(child.Point()))
	assert.Equal(t, Rect{0, 0, 30, 30}, child.ToChild(child.Box()))
}

func TestContentArea(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewFrame("f", Rect{10, 10, 100, 50})
	w.SetMargin(1)
	w.SetPadding(2)
	w.SetBorder(3)
	assert.Equal(t, 6, w.Moat())
	assert.Equal(t, Rect{16, 16, 88, 38}, w.ContentArea())

	w.SetPadding(30)
	assert.Equal(t, Rect{10, 10, 0, 0}, w.ContentArea())
}

func TestSetAlphaClamps(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("w", Rect{})
	w.SetAlpha(2)
	assert.Equal(t, 1.0, w.Alpha())
	w.SetAlpha(-1)
	assert.Equal(t, 0.0, w.Alpha())
}

func TestStateFlags(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("w", Rect{0, 0, 10, 10})
	ui.SetKeyboardFocus(w)
	ui.SetMouseGrab(w)

	w.SetFlag(FlagDisabled, true)
	assert.True(t, w.Disabled())
	assert.Nil(t, ui.KeyboardFocus())
	assert.Nil(t, ui.MouseGrab())

	w.SetFlag(FlagChecked, true)
	w.SetFlag(FlagNoClip, true)
	w.SetFlag(FlagFrame, true)
	assert.True(t, w.Checked())
	assert.False(t, w.Clip())
	assert.False(t, w.IsFrame())
	assert.Equal(t, "disabled|no_clip|checked", w.Flags().String())

	f, ok := ParseFlag("grab_mouse")
	require.True(t, ok)
	assert.Equal(t, FlagGrabMouse, f)
	_, ok = ParseFlag("bogus")
	assert.False(t, ok)
}

func TestColorResolution(t *testing.T) {
	ui := NewTestContext()
	parent := ui.NewFrame("p", Rect{0, 0, 10, 10})
	child := ui.NewWidget("c", Rect{})
	require.NoError(t, parent.Add(child))

	themeBg := ui.Theme().Palette().Color(ColorBg, GroupNormal)
	assert.Equal(t, themeBg, child.Color(ColorBg))

	global := NewPalette()
	global.Set(ColorBg, GroupNormal, ColorBlack)
	ui.SetPalette(global)
	assert.Equal(t, ColorBlack, child.Color(ColorBg))

	parent.SetColor(ColorBg, ColorWhite, GroupNormal)
	assert.Equal(t, ColorWhite, child.Color(ColorBg))

	red := Color{1, 0, 0, 1}
	child.SetColor(ColorBg, red, GroupChecked)
	assert.Equal(t, ColorWhite, child.Color(ColorBg))
	child.SetChecked(true)
	assert.Equal(t, red, child.Color(ColorBg))

	child.ResetPalette()
	assert.Equal(t, ColorWhite, child.ColorIn(ColorBg, GroupNormal))
}

func TestSetColorDamagesOnlyOnChange(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("w", Rect{0, 0, 10, 10})
	rec := recordDamage(ui)
	w.SetColor(ColorBg, ColorWhite, GroupNormal)
	w.SetColor(ColorBg, ColorWhite, GroupNormal)
	assert.Len(t, rec.rects[w], 1)
}

func TestFontResolution(t *testing.T) {
	ui := NewTestContext()
	parent := ui.NewFrame("p", Rect{0, 0, 10, 10})
	child := ui.NewWidget("c", Rect{})
	require.NoError(t, parent.Add(child))

	assert.Equal(t, ui.Theme().Font(), child.Font())
	big := Font{Face: "Serif", Size: 30}
	parent.SetFont(big)
	assert.Equal(t, big, child.Font())
	parent.ResetFont()
	global := Font{Face: "Mono", Size: 12}
	ui.SetFont(&global)
	assert.Equal(t, global, child.Font())
}

func TestWalkAndPath(t *testing.T) {
	ui := NewTestContext()
	root := ui.NewFrame("root", Rect{0, 0, 10, 10})
	mid := ui.NewFrame("mid", Rect{0, 0, 10, 10})
	leaf := ui.NewWidget("leaf", Rect{})
	require.NoError(t, mid.Add(leaf))
	require.NoError(t, root.Add(mid))

	var seen []string
	root.Walk(func(w *Widget, level int) bool {
		seen = append(seen, w.Name())
		return w != mid
	})
	assert.Equal(t, []string{"root", "mid"}, seen)
	assert.Equal(t, "/root/mid/leaf", leaf.Path())
	assert.Same(t, leaf, root.FindChild("leaf"))
	assert.Nil(t, root.FindChild("nope"))
}
