// Package simulator runs a lattice UI inside an Ebitengine desktop window.
// The window plays the role of the display: one MemoryScreen for the primary
// layer plus emulated overlay planes composed on top in creation order.
package simulator

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/lattice"
)

// RunConfig holds the window settings.
type RunConfig struct {
	Title string
	// Width and Height are the display size in pixels.
	Width, Height int
	// Scale multiplies the window size; 0 means 1.
	Scale float64
	// ShowFPS prints TPS and FPS in the top-left corner.
	ShowFPS bool
	// Background fills the display behind the primary screen.
	Background lattice.Color
}

// ConfigFrom builds a RunConfig from the display section of a lattice
// config.
func ConfigFrom(d lattice.DisplayConfig) RunConfig {
	return RunConfig{Title: d.Title, Width: d.Width, Height: d.Height, Scale: d.Scale}
}

// Simulator implements ebiten.Game for a lattice Context.
type Simulator struct {
	ui     *lattice.Context
	cfg    RunConfig
	screen *lattice.MemoryScreen
	planes []*Plane
	in     input

	img *ebiten.Image
	ctx context.Context

	// UpdateFunc, when set, runs every tick after the UI updated and before
	// it draws. A non-nil error stops the simulator.
	UpdateFunc func() error
}

// New creates a simulator with a primary screen of cfg's size.
func New(ui *lattice.Context, cfg RunConfig) *Simulator {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		panic(fmt.Sprintf("simulator: invalid display size %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	return &Simulator{
		ui:     ui,
		cfg:    cfg,
		screen: lattice.NewMemoryScreen(lattice.Size{Width: cfg.Width, Height: cfg.Height}),
	}
}

// Screen returns the primary screen, to be passed to Context.NewWindow.
func (s *Simulator) Screen() *lattice.MemoryScreen { return s.screen }

// NewPlane returns an emulated overlay plane for hardware sprites.
func (s *Simulator) NewPlane() *Plane {
	p := &Plane{}
	s.planes = append(s.planes, p)
	return p
}

// NewPlaneWindow creates a plane window drawing into its own surface of
// r's size, scanned out by a new emulated plane.
func (s *Simulator) NewPlaneWindow(name string, r lattice.Rect) *lattice.Widget {
	p := s.NewPlane()
	p.surface = lattice.NewMemoryScreen(r.Size())
	return s.ui.NewPlaneWindow(name, r, p, p.surface)
}

// Planes returns the emulated planes in composition order.
func (s *Simulator) Planes() []*Plane { return s.planes }

// Update advances the UI one tick. Real input is skipped on ticks that
// consumed injected input.
func (s *Simulator) Update() error {
	if s.ctx != nil && s.ctx.Err() != nil {
		return ebiten.Termination
	}
	dt := 1.0 / float64(ebiten.TPS())
	if !s.ui.Update(dt) {
		s.in.poll(s.ui)
	}
	if s.UpdateFunc != nil {
		if err := s.UpdateFunc(); err != nil {
			return err
		}
	}
	return s.ui.Draw()
}

// Draw presents the primary screen and composes the planes over it.
func (s *Simulator) Draw(dst *ebiten.Image) {
	dst.Fill(s.cfg.Background.RGBA())
	if s.img == nil {
		s.img = ebiten.NewImage(s.cfg.Width, s.cfg.Height)
	}
	s.img.WritePixels(s.screen.Front().Pix)
	dst.DrawImage(s.img, nil)
	for _, p := range s.planes {
		p.compose(dst)
	}
	if s.cfg.ShowFPS {
		ebitenutil.DebugPrint(dst, fmt.Sprintf("TPS: %.0f  FPS: %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

// Layout returns the display size regardless of the window size.
func (s *Simulator) Layout(_, _ int) (int, int) {
	return s.cfg.Width, s.cfg.Height
}

// Run opens the window and runs the simulator until the window closes, an
// update fails or ctx is done. Closing because of ctx is not an error.
func Run(ctx context.Context, s *Simulator) error {
	s.ctx = ctx
	ebiten.SetWindowTitle(s.cfg.Title)
	ebiten.SetWindowSize(int(float64(s.cfg.Width)*s.cfg.Scale), int(float64(s.cfg.Height)*s.cfg.Scale))
	s.ui.Logger().Info("simulator start", "width", s.cfg.Width, "height", s.cfg.Height, "planes", len(s.planes))
	err := ebiten.RunGame(s)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
