package simulator

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/lattice"
)

func TestPlaneStagesUntilApply(t *testing.T) {
	p := &Plane{}
	require.NoError(t, p.SetPanPos(10, 20))
	require.NoError(t, p.SetPanSize(30, 40))
	require.NoError(t, p.SetPosition(lattice.DisplayPoint{X: 5, Y: 6}))

	assert.Equal(t, lattice.Rect{}, p.Pan())
	assert.Equal(t, lattice.DisplayPoint{}, p.Position())

	require.NoError(t, p.Apply())
	assert.Equal(t, lattice.Rect{X: 10, Y: 20, Width: 30, Height: 40}, p.Pan())
	assert.Equal(t, lattice.DisplayPoint{X: 5, Y: 6}, p.Position())
	assert.Equal(t, 1, p.Applies)
}

func TestPlaneRejectsInvalidRegisters(t *testing.T) {
	p := &Plane{}
	assert.Error(t, p.SetPanPos(-1, 0))
	assert.Error(t, p.SetPanSize(0, -1))
	assert.Error(t, p.SetFramebuffer(nil))
}

func TestPlaneApplyChecksFramebuffer(t *testing.T) {
	p := &Plane{}
	require.NoError(t, p.SetFramebuffer(image.NewRGBA(image.Rect(0, 0, 100, 50))))
	require.NoError(t, p.SetPanPos(80, 0))
	require.NoError(t, p.SetPanSize(30, 10))
	assert.Error(t, p.Apply())
	assert.Equal(t, 0, p.Applies)

	require.NoError(t, p.SetPanPos(70, 40))
	require.NoError(t, p.SetPanSize(30, 10))
	assert.NoError(t, p.Apply())
}

func TestPlaneVisibleRegion(t *testing.T) {
	p := &Plane{}
	src, r := p.visible()
	assert.Nil(t, src)
	assert.True(t, r.Empty())

	sheet := image.NewRGBA(image.Rect(0, 0, 300, 100))
	require.NoError(t, p.SetFramebuffer(sheet))
	_, r = p.visible()
	assert.Equal(t, sheet.Bounds(), r, "no pan size scans out the whole framebuffer")

	require.NoError(t, p.SetPanPos(200, 50))
	require.NoError(t, p.SetPanSize(100, 50))
	require.NoError(t, p.Apply())
	_, r = p.visible()
	assert.Equal(t, image.Rect(200, 50, 300, 100), r)
}

func TestHardwareSpritePansEmulatedPlane(t *testing.T) {
	ui := lattice.NewTestContext()
	sim := New(ui, RunConfig{Width: 320, Height: 240})
	plane := sim.NewPlane()

	sheet := image.NewRGBA(image.Rect(0, 0, 300, 100))
	frame := lattice.Size{Width: 100, Height: 50}
	s, err := ui.NewHardwareSprite("walker", sheet, frame, lattice.FrameStrip{Count: 5}, lattice.Point{X: 40, Y: 60}, plane)
	require.NoError(t, err)

	assert.Equal(t, lattice.Rect{Width: 100, Height: 50}, plane.Pan())
	assert.Equal(t, lattice.DisplayPoint{X: 40, Y: 60}, plane.Position())

	require.NoError(t, s.ShowFrame(3))
	assert.Equal(t, lattice.Rect{X: 0, Y: 50, Width: 100, Height: 50}, plane.Pan())

	s.Widget().Move(lattice.Point{X: 10, Y: 10})
	assert.Equal(t, lattice.DisplayPoint{X: 10, Y: 10}, plane.Position())
}

func TestSimulatorPlaneWindow(t *testing.T) {
	ui := lattice.NewTestContext()
	sim := New(ui, RunConfig{Width: 320, Height: 240})
	win := sim.NewPlaneWindow("overlay", lattice.Rect{X: 20, Y: 30, Width: 64, Height: 32})

	require.Len(t, sim.Planes(), 1)
	p := sim.Planes()[0]
	assert.Same(t, win.Plane(), lattice.PlaneDriver(p))
	require.NotNil(t, p.Surface())
	assert.Equal(t, lattice.Size{Width: 64, Height: 32}, p.Surface().Size())
	assert.Equal(t, lattice.DisplayPoint{X: 20, Y: 30}, p.Position())
}

func TestNewRejectsEmptyDisplay(t *testing.T) {
	assert.Panics(t, func() { New(lattice.NewTestContext(), RunConfig{}) })
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(lattice.DefaultConfig().Display)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, "lattice", cfg.Title)
}
