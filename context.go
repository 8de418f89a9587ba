package lattice

import (
	"io"
	"log/slog"
	"os"
	"slices"
)

// WidgetRef is a weak, generation-checked reference to a widget. It never
// keeps a destroyed widget reachable through Get: disposal zeroes the
// widget's ID, so a ref taken before disposal resolves to nil afterwards.
type WidgetRef struct {
	w  *Widget
	id uint32
}

// RefOf returns a reference to w. RefOf(nil) is the empty reference.
func RefOf(w *Widget) WidgetRef {
	if w == nil {
		return WidgetRef{}
	}
	return WidgetRef{w: w, id: w.ID}
}

// Get returns the referenced widget, or nil if it was destroyed.
func (r WidgetRef) Get() *Widget {
	if r.w == nil || r.w.disposed || r.w.ID != r.id {
		return nil
	}
	return r.w
}

// Is reports whether r refers to the live widget w.
func (r WidgetRef) Is(w *Widget) bool {
	return w != nil && r.Get() == w
}

// EventSink receives every event dispatched through a Context, after widget
// handlers ran. Used to bridge events into an ECS or a recorder.
type EventSink interface {
	EmitEvent(e Event, target *Widget)
}

// Context is the process-wide UI state: the widget id counter, the keyboard
// focus and mouse grab holders, the global palette/font/theme fallbacks, the
// window list and the logger. Every widget belongs to exactly one Context.
//
// A Context is not safe for concurrent use; the toolkit is single-threaded.
type Context struct {
	cfg    Config
	logger *slog.Logger

	theme   Theme
	palette *Palette
	font    *Font

	nextID uint32

	focus WidgetRef
	grab  WidgetRef

	windows []*Widget
	planes  int

	exporter ImageExporter
	sink     EventSink
	handlers handlerRegistry

	// Scripted input (inject.go, testrunner.go)
	injectQueue     []syntheticInput
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where scripted screenshots are written.
	ScreenshotDir string

	animations     []Animator
	paletteUpdates <-chan PaletteUpdate

	pointer         pointerState
	clock           float64
	dragDeadZone    int
	doubleClickTime float64
	holdTime        float64

	// OnDamage, when set, observes every accepted Widget.DamageRect call
	// with the widget and the rectangle in its box space.
	OnDamage func(w *Widget, r Rect)
}

// NewContext creates a Context using cfg. The logger writes text records to
// stderr at the level selected by cfg.
func NewContext(cfg Config) *Context {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return &Context{
		cfg:             cfg,
		logger:          logger.With("lib", "lattice"),
		theme:           NewDefaultTheme(),
		exporter:        PNGExporter{},
		ScreenshotDir:   "screenshots",
		dragDeadZone:    DefaultDragDeadZone,
		doubleClickTime: DefaultDoubleClickTime,
		holdTime:        DefaultHoldTime,
	}
}

// NewTestContext returns a Context with default settings whose logger
// discards output. Intended for tests and tools.
func NewTestContext() *Context {
	c := NewContext(DefaultConfig())
	c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return c
}

// Config returns the settings the Context was created with.
func (c *Context) Config() Config { return c.cfg }

// Logger returns the structured logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// SetLogger replaces the logger. A nil logger is ignored.
func (c *Context) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetDebug toggles debug checks at runtime.
func (c *Context) SetDebug(enabled bool) {
	c.cfg.Debug = enabled
}

func (c *Context) debug() bool { return c.cfg.Debug }

func (c *Context) nextWidgetID() uint32 {
	c.nextID++
	return c.nextID
}

// Theme returns the active theme.
func (c *Context) Theme() Theme { return c.theme }

// SetTheme replaces the active theme and damages every window.
func (c *Context) SetTheme(t Theme) {
	if t == nil {
		return
	}
	c.theme = t
	c.damageWindows()
}

// Palette returns the global palette override, or nil.
func (c *Context) Palette() *Palette { return c.palette }

// SetPalette installs a global palette consulted after the widget chain and
// before the theme. Every window is damaged.
func (c *Context) SetPalette(p *Palette) {
	c.palette = p
	c.damageWindows()
}

// Font returns the global font override, or nil.
func (c *Context) Font() *Font { return c.font }

// SetFont installs a global font consulted after the widget chain and before
// the theme. A nil font removes the override.
func (c *Context) SetFont(f *Font) {
	c.font = f
	c.damageWindows()
}

// KeyboardFocus returns the widget holding keyboard focus, or nil.
func (c *Context) KeyboardFocus() *Widget { return c.focus.Get() }

// SetKeyboardFocus moves keyboard focus to w. nil clears it.
func (c *Context) SetKeyboardFocus(w *Widget) {
	old := c.focus.Get()
	if old == w {
		return
	}
	c.focus = RefOf(w)
	if old != nil {
		old.invokeHandlers(&Event{ID: EventLostFocus})
	}
	if w != nil {
		w.invokeHandlers(&Event{ID: EventGainFocus})
	}
}

// MouseGrab returns the widget holding the pointer grab, or nil.
func (c *Context) MouseGrab() *Widget { return c.grab.Get() }

// SetMouseGrab routes pointer events to w until released. nil releases.
func (c *Context) SetMouseGrab(w *Widget) {
	c.grab = RefOf(w)
}

// Windows returns the registered windows in creation order. The returned
// slice MUST NOT be mutated.
func (c *Context) Windows() []*Widget { return c.windows }

// SetImageExporter selects how PaintToFile encodes images. nil disables
// file export.
func (c *Context) SetImageExporter(e ImageExporter) { c.exporter = e }

// SetEventSink sets the optional event bridge.
func (c *Context) SetEventSink(s EventSink) { c.sink = s }

func (c *Context) addWindow(w *Widget) {
	c.windows = append(c.windows, w)
}

func (c *Context) removeWindow(w *Widget) {
	if i := slices.Index(c.windows, w); i >= 0 {
		c.windows = slices.Delete(c.windows, i, i+1)
	}
}

func (c *Context) damageWindows() {
	for _, w := range c.windows {
		w.Damage()
	}
}

// forget clears global references held to w.
func (c *Context) forget(w *Widget) {
	if c.focus.w == w {
		c.focus = WidgetRef{}
	}
	if c.grab.w == w {
		c.grab = WidgetRef{}
	}
	if w.Flags().Has(FlagWindow) {
		c.removeWindow(w)
	}
	if w.plane != nil {
		c.planes--
	}
}
