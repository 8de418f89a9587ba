// Package lattice is a retained-mode widget toolkit core for embedded
// displays driven through a Linux framebuffer or DRM-KMS.
//
// Lattice provides the widget tree, event dispatch, layout engine,
// damage-based redraw and an overlay-plane sprite compositor. Concrete
// widgets (buttons, labels, grids) are built on top of it by drawing in
// [Widget.OnDraw] and handling events with [Widget.On].
//
// # Quick start
//
// Everything hangs off a [Context]. Create a window on a [Screen], add
// widgets, then drive the loop with [Context.Update] and [Context.Draw]:
//
//	ui := lattice.NewContext(lattice.DefaultConfig())
//	win := ui.NewWindow("main", screen)
//
//	panel := ui.NewFrame("panel", lattice.Rect{})
//	panel.SetAlign(lattice.AlignExpand)
//	panel.SetFillFlags(lattice.FillSolid)
//	win.Add(panel)
//	win.Show()
//
//	for {
//		ui.Update(1.0 / 60)
//		if err := ui.Draw(); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The simulator package runs the same loop inside an [Ebitengine] window,
// emulating overlay planes. The fbdev and kms packages provide the device
// backends.
//
// # Widget tree
//
// Every visual element is a [Widget]. Frames ([Context.NewFrame]) own an
// ordered child list; the last child is on top. A widget's box is relative
// to its parent's top-left corner; [Widget.DisplayOrigin],
// [Widget.LocalToDisplay] and [Widget.DisplayToLocal] convert to and from
// display coordinates.
//
// A widget has at most one parent. Adding a widget that already has one
// returns [ErrParentConflict]; use [Widget.Detach] first.
//
// # Layout
//
// A frame lays out its children inside its content area (the box minus
// margin, padding and border). Children are placed by their [AlignFlags]
// and size and position ratios. Changing a child's geometry, alignment or
// moat re-lays out the parent. Widgets flagged no_layout are left alone.
//
// # Damage and drawing
//
// Property changes damage the widget's box. Damage travels up to the
// nearest widget owning a [Screen], is clipped there and merged with
// overlapping or touching rectangles. [Context.Draw] redraws only the
// damaged rectangles, then flips the screen. Damaging a window while it
// draws panics.
//
// Translucent children ([Widget.SetAlpha]) are drawn into an offscreen
// group and blended once, so overlapping content inside them does not
// show through.
//
// # Events
//
// Pointer and keyboard input enter through [Context.PointerInput] and
// [Context.KeyInput], which also synthesize clicks, double clicks, holds and
// drags. Pointer events go to the topmost widget under the pointer;
// keyboard events go to the focused widget or to every widget until one
// calls [Event.Stop]. The mouse grab routes pointer events to one widget
// until release.
//
// # Sprites and planes
//
// A sprite shows frames of a [FrameStrip] on a sprite sheet. The software
// variant blits the frame when drawing. The hardware variant owns an
// overlay plane ([PlaneDriver]) and only reprograms its pan registers, so
// changing frames copies no pixels. Plane windows are windows scanned out by
// their own plane; moving them moves the plane.
//
// # Themes, palettes and fonts
//
// Colors resolve through the widget's own [Palette], its ancestors, the
// Context palette and finally the [Theme]. Palettes are TOML files
// ([LoadPalette]) and can be hot reloaded with [Context.WatchPalette].
//
// # Serialization
//
// [Widget.Serialize] returns a property bag and [Widget.Deserialize] applies
// one. [WriteTree] and [Context.ReadTree] store whole subtrees as YAML.
//
// # Testing
//
// [Context.InjectClick] and friends queue synthetic input consumed one step
// per Update. [LoadTestScript] runs JSON scripts of clicks, drags, key
// presses and screenshots. [MemoryScreen] makes rendering checkable in
// plain Go tests.
//
// # Animation
//
// Tweens (via [gween]) animate position, size, alpha and palette colors;
// [AnimateSprite] plays a sprite at a fixed frame rate. Hand them to
// [Context.Animate].
//
// # ECS
//
// The lattice/ecs module forwards dispatched events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package lattice
