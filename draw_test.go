package lattice

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRed  = Color{1, 0, 0, 1}
	testBlue = Color{0, 0, 1, 1}
)

// solid returns a no_layout widget filled with c.
func solid(ui *Context, name string, r Rect, c Color) *Widget {
	w := ui.NewWidget(name, r)
	w.SetNoLayout(true)
	w.SetFillFlags(FillSolid)
	w.SetColor(ColorBg, c, GroupNormal)
	return w
}

func newBlackWindow(t *testing.T, ui *Context, s Size) (*Widget, *MemoryScreen) {
	t.Helper()
	screen := NewMemoryScreen(s)
	win := ui.NewWindow("win", screen)
	win.SetFillFlags(FillSolid)
	win.SetColor(ColorBg, ColorBlack, GroupNormal)
	win.Show()
	return win, screen
}

func TestDrawPaintsOnlyDamage(t *testing.T) {
	ui := NewTestContext()
	win, screen := newBlackWindow(t, ui, Size{100, 100})
	child := solid(ui, "child", Rect{10, 10, 20, 20}, testRed)
	require.NoError(t, win.Add(child))

	require.NoError(t, ui.Draw())
	assert.Equal(t, 1, screen.Flips)
	assert.Equal(t, []Rect{{0, 0, 100, 100}}, screen.LastFlip)
	assert.Equal(t, testRed.RGBA(), screen.Front().RGBAAt(15, 15))
	assert.Equal(t, ColorBlack.RGBA(), screen.Front().RGBAAt(50, 50))
	assert.Empty(t, win.Damaged())

	child.SetColor(ColorBg, testBlue, GroupNormal)
	require.NoError(t, ui.Draw())
	assert.Equal(t, 2, screen.Flips)
	assert.Equal(t, []Rect{{10, 10, 20, 20}}, screen.LastFlip)
	assert.Equal(t, testBlue.RGBA(), screen.Front().RGBAAt(15, 15))

	// nothing damaged, nothing flipped
	require.NoError(t, ui.Draw())
	assert.Equal(t, 2, screen.Flips)
}

func TestDrawSkipsHiddenWindowsAndChildren(t *testing.T) {
	ui := NewTestContext()
	win, screen := newBlackWindow(t, ui, Size{50, 50})
	child := solid(ui, "child", Rect{0, 0, 10, 10}, testRed)
	require.NoError(t, win.Add(child))
	child.Hide()

	require.NoError(t, ui.Draw())
	assert.Equal(t, ColorBlack.RGBA(), screen.Front().RGBAAt(5, 5))

	win.Hide()
	child.Show()
	require.NoError(t, ui.Draw())
	assert.Equal(t, 1, screen.Flips)
}

func TestMoveRepaintsOldArea(t *testing.T) {
	ui := NewTestContext()
	win, screen := newBlackWindow(t, ui, Size{100, 100})
	child := solid(ui, "child", Rect{0, 0, 10, 10}, testRed)
	require.NoError(t, win.Add(child))
	require.NoError(t, ui.Draw())

	child.Move(Point{50, 50})
	require.NoError(t, ui.Draw())
	assert.Equal(t, ColorBlack.RGBA(), screen.Front().RGBAAt(5, 5))
	assert.Equal(t, testRed.RGBA(), screen.Front().RGBAAt(55, 55))
	assert.ElementsMatch(t, []Rect{{0, 0, 10, 10}, {50, 50, 10, 10}}, screen.LastFlip)
}

func TestDrawClipsToChildBox(t *testing.T) {
	tests := []struct {
		name        string
		parentClip  bool
		childClip   bool
		paintsOther bool
	}{
		{"both clip", true, true, false},
		{"child no_clip inside clipping parent", true, false, false},
		{"parent no_clip", false, true, false},
		{"neither clips", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := NewTestContext()
			win, screen := newBlackWindow(t, ui, Size{50, 50})
			frame := ui.NewFrame("frame", Rect{0, 0, 50, 50})
			frame.SetNoLayout(true)
			frame.SetClip(tt.parentClip)
			child := ui.NewWidget("child", Rect{10, 10, 10, 10})
			child.SetNoLayout(true)
			child.SetClip(tt.childClip)
			child.OnDraw = func(p Painter, r Rect) {
				p.FillRect(Rect{-10, -10, 40, 40}, testRed)
			}
			require.NoError(t, frame.Add(child))
			require.NoError(t, win.Add(frame))
			require.NoError(t, ui.Draw())

			assert.Equal(t, testRed.RGBA(), screen.Front().RGBAAt(15, 15))
			outside := screen.Front().RGBAAt(5, 5)
			if tt.paintsOther {
				assert.Equal(t, testRed.RGBA(), outside)
			} else {
				assert.Equal(t, ColorBlack.RGBA(), outside)
			}
		})
	}
}

func TestOnDrawReceivesLocalRect(t *testing.T) {
	ui := NewTestContext()
	win, _ := newBlackWindow(t, ui, Size{100, 100})
	child := ui.NewWidget("child", Rect{20, 30, 40, 40})
	child.SetNoLayout(true)
	require.NoError(t, win.Add(child))
	require.NoError(t, ui.Draw())

	var got []Rect
	child.OnDraw = func(p Painter, r Rect) { got = append(got, r) }
	child.DamageRect(Rect{25, 35, 5, 5})
	require.NoError(t, ui.Draw())
	assert.Equal(t, []Rect{{5, 5, 5, 5}}, got)
}

func TestAlphaGroupHidesOverlap(t *testing.T) {
	ui := NewTestContext()
	win, screen := newBlackWindow(t, ui, Size{100, 100})
	group := ui.NewFrame("group", Rect{0, 0, 100, 100})
	group.SetNoLayout(true)
	group.SetAlpha(0.5)
	require.NoError(t, group.Add(solid(ui, "red", Rect{0, 0, 60, 60}, testRed)))
	require.NoError(t, group.Add(solid(ui, "blue", Rect{40, 40, 60, 60}, testBlue)))
	require.NoError(t, win.Add(group))
	require.NoError(t, ui.Draw())

	front := screen.Front()
	overlap := front.RGBAAt(50, 50)
	blueOnly := front.RGBAAt(80, 80)
	redOnly := front.RGBAAt(10, 10)
	assert.Equal(t, blueOnly, overlap, "red must not show through the blue child")
	assert.Zero(t, overlap.R)
	assert.InDelta(t, 128, int(overlap.B), 1)
	assert.InDelta(t, 128, int(redOnly.R), 1)
	assert.Equal(t, ColorBlack.RGBA(), front.RGBAAt(95, 5))
}

func TestOpaqueGroupMatchesDirectDraw(t *testing.T) {
	build := func(alpha float64) *image.RGBA {
		ui := NewTestContext()
		win, screen := newBlackWindow(t, ui, Size{64, 64})
		parent := ui.NewFrame("parent", Rect{4, 4, 50, 50})
		parent.SetNoLayout(true)
		parent.SetAlpha(alpha)
		require.NoError(t, parent.Add(solid(ui, "a", Rect{0, 0, 30, 30}, testRed)))
		require.NoError(t, parent.Add(solid(ui, "b", Rect{20, 20, 30, 30}, testBlue)))
		require.NoError(t, win.Add(parent))
		require.NoError(t, ui.Draw())
		return screen.Front()
	}
	direct := build(1)
	// alpha rounds to 255 in the group mask path
	grouped := build(0.999)
	assert.Equal(t, direct.Pix, grouped.Pix)
}

func TestZeroAlphaChildNotDrawn(t *testing.T) {
	ui := NewTestContext()
	win, screen := newBlackWindow(t, ui, Size{20, 20})
	child := solid(ui, "child", Rect{0, 0, 10, 10}, testRed)
	child.SetAlpha(0)
	require.NoError(t, win.Add(child))
	require.NoError(t, ui.Draw())
	assert.Equal(t, ColorBlack.RGBA(), screen.Front().RGBAAt(5, 5))
}

func TestBorderDrawing(t *testing.T) {
	ui := NewTestContext()
	win, screen := newBlackWindow(t, ui, Size{40, 40})
	box := ui.NewWidget("box", Rect{0, 0, 40, 40})
	box.SetNoLayout(true)
	box.SetBorder(2)
	box.SetColor(ColorBorder, testRed, GroupNormal)
	box.SetBorderFlags(BorderLeft)
	require.NoError(t, win.Add(box))
	require.NoError(t, ui.Draw())

	front := screen.Front()
	assert.Equal(t, testRed.RGBA(), front.RGBAAt(0, 20))
	assert.Equal(t, testRed.RGBA(), front.RGBAAt(1, 20))
	assert.Equal(t, ColorBlack.RGBA(), front.RGBAAt(2, 20))
	assert.Equal(t, ColorBlack.RGBA(), front.RGBAAt(39, 20))
}

func TestPaintImage(t *testing.T) {
	ui := NewTestContext()
	frame := ui.NewFrame("frame", Rect{30, 30, 20, 20})
	frame.SetFillFlags(FillSolid)
	frame.SetColor(ColorBg, testBlue, GroupNormal)
	require.NoError(t, frame.Add(solid(ui, "dot", Rect{5, 5, 2, 2}, testRed)))

	img := frame.PaintImage()
	assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())
	assert.Equal(t, testBlue.RGBA(), img.RGBAAt(0, 0))
	assert.Equal(t, testRed.RGBA(), img.RGBAAt(5, 5))
	assert.Equal(t, testBlue.RGBA(), img.RGBAAt(7, 7))
}

type memExporter struct {
	names  []string
	images []image.Image
}

func (m *memExporter) Export(name string, img image.Image) error {
	m.names = append(m.names, name)
	m.images = append(m.images, img)
	return nil
}

func TestPaintToFile(t *testing.T) {
	ui := NewTestContext()
	w := solid(ui, "swatch", Rect{0, 0, 4, 4}, testRed)

	exp := &memExporter{}
	ui.SetImageExporter(exp)
	require.NoError(t, w.PaintToFile(""))
	require.NoError(t, w.PaintToFile("custom"))
	assert.Equal(t, []string{"swatch", "custom"}, exp.names)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, exp.images[0].(*image.RGBA).RGBAAt(1, 1))

	ui.SetImageExporter(nil)
	assert.ErrorIs(t, w.PaintToFile(""), ErrExportUnavailable)
}

func TestComposerOutlinesBareWidgets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Composer = true
	ui := NewContext(cfg)
	img := ui.NewWidget("bare", Rect{0, 0, 10, 10}).PaintImage()
	assert.Equal(t, ColorBlack.RGBA(), img.RGBAAt(0, 0))
	assert.NotEqual(t, color.RGBA{}, img.RGBAAt(5, 5))
}
