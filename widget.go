package lattice

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which capability a Widget carries.
type Kind uint8

const (
	KindWidget Kind = iota
	KindFrame
	KindWindow
	KindPlaneWindow
	KindSprite
)

var kindNames = [...]string{"widget", "frame", "window", "plane_window", "sprite"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Flags is the widget state bitset.
type Flags uint32

const (
	FlagPlaneWindow Flags = 1 << iota
	FlagWindow
	FlagFrame
	FlagDisabled
	FlagReadonly
	FlagActive
	FlagInvisible
	FlagGrabMouse
	FlagNoClip
	FlagNoLayout
	FlagNoAutoresize
	FlagChecked
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagPlaneWindow, "plane_window"},
	{FlagWindow, "window"},
	{FlagFrame, "frame"},
	{FlagDisabled, "disabled"},
	{FlagReadonly, "readonly"},
	{FlagActive, "active"},
	{FlagInvisible, "invisible"},
	{FlagGrabMouse, "grab_mouse"},
	{FlagNoClip, "no_clip"},
	{FlagNoLayout, "no_layout"},
	{FlagNoAutoresize, "no_autoresize"},
	{FlagChecked, "checked"},
}

// Has reports whether every bit of x is set.
func (f Flags) Has(x Flags) bool { return f&x == x }

// String returns the set flag names joined with '|'.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseFlag returns the flag with the given name.
func ParseFlag(name string) (Flags, bool) {
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return 0, false
}

// Tree errors. Returned wrapped with the widgets involved.
var (
	ErrParentConflict = errors.New("widget already has a parent")
	ErrSelfParent     = errors.New("widget cannot be its own parent")
	ErrNotContainer   = errors.New("widget is not a frame")
	ErrCycle          = errors.New("widget is an ancestor of the parent")
)

// Widget is the node of the UI tree. A single flat struct is used for plain
// widgets, frames, windows, plane windows and sprites; Kind tells them apart
// and the frame flag enables the child list.
//
// Box is relative to the parent's origin. Children are positioned relative to
// the widget's own top-left corner ("local" space).
type Widget struct {
	// Identity
	ID   uint32
	name string
	kind Kind
	ui   *Context

	// Hierarchy
	parent   *Widget
	children []*Widget

	// Geometry
	box     Rect
	userBox Rect
	minSize Size

	flags Flags

	// Layout hints
	align  AlignFlags
	hRatio int
	vRatio int
	xRatio int
	yRatio int

	// Box model
	margin       int
	padding      int
	border       int
	borderRadius float64
	fill         FillFlags
	borderFlags  BorderFlags
	alpha        float64

	palette *Palette
	font    *Font

	inLayout bool
	inDraw   bool

	// Window state
	screen Screen
	damage DamageArray
	plane  PlaneDriver

	sprite *Sprite

	handlers handlerRegistry

	// OnDraw paints custom content after the box chrome. rect is the damaged
	// area in local coordinates and the painter origin is the widget's
	// top-left corner.
	OnDraw func(p Painter, rect Rect)
	// OnLayout fires once per layout pass of a frame, before children are
	// placed.
	OnLayout func()
	OnShow   func()
	OnHide   func()

	// UserData is an arbitrary payload for application use.
	UserData any

	disposed bool
}

func (c *Context) newWidget(name string, kind Kind, r Rect) *Widget {
	w := &Widget{
		ID:      c.nextWidgetID(),
		name:    name,
		kind:    kind,
		ui:      c,
		box:     r,
		userBox: r,
		alpha:   1,
	}
	if w.name == "" {
		w.name = fmt.Sprintf("%s%d", kind, w.ID)
	}
	return w
}

// NewWidget creates a leaf widget with the given box.
func (c *Context) NewWidget(name string, r Rect) *Widget {
	return c.newWidget(name, KindWidget, r)
}

// NewFrame creates a container widget with the given box.
func (c *Context) NewFrame(name string, r Rect) *Widget {
	w := c.newWidget(name, KindFrame, r)
	w.flags |= FlagFrame
	return w
}

// String returns "name#id".
func (w *Widget) String() string {
	if w == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", w.name, w.ID)
}

// Name returns the widget name.
func (w *Widget) Name() string { return w.name }

// SetName renames the widget.
func (w *Widget) SetName(name string) { w.name = name }

// Kind returns the widget kind.
func (w *Widget) Kind() Kind { return w.kind }

// Context returns the owning Context.
func (w *Widget) Context() *Context { return w.ui }

// Parent returns the parent, or nil.
func (w *Widget) Parent() *Widget { return w.parent }

// Flags returns the state bitset.
func (w *Widget) Flags() Flags { return w.flags }

// IsFrame reports whether the widget can own children.
func (w *Widget) IsFrame() bool { return w.flags.Has(FlagFrame) }

// HasScreen reports whether the widget owns a screen and a damage array.
func (w *Widget) HasScreen() bool { return w.screen != nil }

// Screen returns the screen owned by the widget, or nil.
func (w *Widget) Screen() Screen { return w.screen }

// IsDisposed reports whether Destroy has been called.
func (w *Widget) IsDisposed() bool { return w.disposed }

// --- Geometry ---

// Box returns the widget rectangle in parent coordinates.
func (w *Widget) Box() Rect { return w.box }

// UserBox returns the last geometry set from outside a layout pass.
func (w *Widget) UserBox() Rect { return w.userBox }

func (w *Widget) Point() Point { return w.box.Point() }
func (w *Widget) Size() Size   { return w.box.Size() }
func (w *Widget) X() int       { return w.box.X }
func (w *Widget) Y() int       { return w.box.Y }
func (w *Widget) Width() int   { return w.box.Width }
func (w *Widget) Height() int  { return w.box.Height }

// Center returns the center of the box in parent coordinates.
func (w *Widget) Center() Point { return w.box.Center() }

// LocalBox returns the box in the widget's own coordinates.
func (w *Widget) LocalBox() Rect { return Rect{0, 0, w.box.Width, w.box.Height} }

func (w *Widget) parentInLayout() bool {
	return w.parent != nil && w.parent.inLayout
}

// Move sets the position. Nothing happens when the position is unchanged.
func (w *Widget) Move(p Point) {
	if w.box.Point() == p {
		return
	}
	if w.ui.debug() {
		debugCheckDisposed(w, "Move")
	}
	w.Damage()
	w.box.X, w.box.Y = p.X, p.Y
	w.Damage()
	if !w.parentInLayout() {
		w.userBox.X, w.userBox.Y = p.X, p.Y
	}
	w.movePlane()
	w.parentLayout()
}

// Resize sets the size. Nothing happens when the size is unchanged.
func (w *Widget) Resize(s Size) {
	if w.box.Size() == s {
		return
	}
	if w.ui.debug() {
		debugCheckDisposed(w, "Resize")
	}
	w.Damage()
	w.box.Width, w.box.Height = s.Width, s.Height
	w.Damage()
	if !w.inLayout && !w.parentInLayout() {
		w.userBox.Width, w.userBox.Height = s.Width, s.Height
	}
	w.parentLayout()
	if len(w.children) > 0 {
		w.Layout()
	}
}

// SetBox moves then resizes.
func (w *Widget) SetBox(r Rect) {
	w.Move(r.Point())
	w.Resize(r.Size())
}

func (w *Widget) SetX(x int)      { w.Move(Point{x, w.box.Y}) }
func (w *Widget) SetY(y int)      { w.Move(Point{w.box.X, y}) }
func (w *Widget) SetWidth(v int)  { w.Resize(Size{v, w.box.Height}) }
func (w *Widget) SetHeight(v int) { w.Resize(Size{w.box.Width, v}) }

// MoveToCenter moves the widget so its center lands on p.
func (w *Widget) MoveToCenter(p Point) {
	if w.Center() == p {
		return
	}
	w.Move(Point{p.X - w.box.Width/2, p.Y - w.box.Height/2})
}

// ResizeByRatio resizes to a percentage of the parent's size. Without a
// parent it does nothing.
func (w *Widget) ResizeByRatio(hratio, vratio int) {
	if w.parent == nil {
		return
	}
	ps := w.parent.Size()
	w.Resize(Size{ps.Width * hratio / 100, ps.Height * vratio / 100})
}

// MinSize returns the explicit minimum size.
func (w *Widget) MinSize() Size { return w.minSize }

// SetMinSize sets the explicit minimum size used by autoresize.
func (w *Widget) SetMinSize(s Size) {
	if w.minSize == s {
		return
	}
	w.minSize = s
	w.parentLayout()
}

// MinSizeHint returns the explicit minimum size, or a square twice the moat.
func (w *Widget) MinSizeHint() Size {
	if !w.minSize.Empty() {
		return w.minSize
	}
	m := w.Moat() * 2
	return Size{m, m}
}

func (w *Widget) parentLayout() {
	if w.parent == nil || !w.Visible() || w.flags.Has(FlagNoLayout) {
		return
	}
	w.parent.Layout()
}

// --- Box model ---

// Moat is margin + padding + border.
func (w *Widget) Moat() int { return w.margin + w.padding + w.border }

// ContentArea is the box shrunk by the moat on every side, in parent
// coordinates. It never has a negative size.
func (w *Widget) ContentArea() Rect {
	m := w.Moat()
	b := Rect{w.box.X + m, w.box.Y + m, w.box.Width - 2*m, w.box.Height - 2*m}
	if b.Empty() {
		return Rect{X: w.box.X, Y: w.box.Y}
	}
	return b
}

func (w *Widget) Margin() int           { return w.margin }
func (w *Widget) Padding() int          { return w.padding }
func (w *Widget) Border() int           { return w.border }
func (w *Widget) BorderRadius() float64 { return w.borderRadius }
func (w *Widget) FillFlags() FillFlags  { return w.fill }

// BorderFlags returns the sides a border is drawn on.
func (w *Widget) BorderFlags() BorderFlags { return w.borderFlags }

func (w *Widget) moatChanged() {
	w.Damage()
	w.parentLayout()
	if len(w.children) > 0 {
		w.Layout()
	}
}

func (w *Widget) SetMargin(v int) {
	if w.margin != v {
		w.margin = v
		w.moatChanged()
	}
}

func (w *Widget) SetPadding(v int) {
	if w.padding != v {
		w.padding = v
		w.moatChanged()
	}
}

func (w *Widget) SetBorder(v int) {
	if w.border != v {
		w.border = v
		w.moatChanged()
	}
}

func (w *Widget) SetBorderRadius(v float64) {
	if w.borderRadius != v {
		w.borderRadius = v
		w.Damage()
	}
}

func (w *Widget) SetFillFlags(f FillFlags) {
	if w.fill != f {
		w.fill = f
		w.Damage()
	}
}

func (w *Widget) SetBorderFlags(f BorderFlags) {
	if w.borderFlags != f {
		w.borderFlags = f
		w.Damage()
	}
}

// Alpha returns the opacity in [0,1].
func (w *Widget) Alpha() float64 { return w.alpha }

// SetAlpha clamps a to [0,1] and damages on change.
func (w *Widget) SetAlpha(a float64) {
	a = clamp01(a)
	if w.alpha != a {
		w.alpha = a
		w.Damage()
	}
}

// --- Visibility & state flags ---

// Visible reports whether the invisible flag is clear.
func (w *Widget) Visible() bool { return !w.flags.Has(FlagInvisible) }

// Show clears the invisible flag, then damages.
func (w *Widget) Show() {
	if w.Visible() {
		return
	}
	w.flags &^= FlagInvisible
	w.Damage()
	if w.OnShow != nil {
		w.OnShow()
	}
}

// Hide damages, then sets the invisible flag.
func (w *Widget) Hide() {
	if !w.Visible() {
		return
	}
	w.Damage()
	w.flags |= FlagInvisible
	if w.OnHide != nil {
		w.OnHide()
	}
}

// SetVisible shows or hides the widget.
func (w *Widget) SetVisible(v bool) {
	if v {
		w.Show()
	} else {
		w.Hide()
	}
}

// setFlag flips f and reports whether it changed.
func (w *Widget) setFlag(f Flags, on bool) bool {
	if w.flags.Has(f) == on {
		return false
	}
	if on {
		w.flags |= f
	} else {
		w.flags &^= f
	}
	return true
}

func (w *Widget) Active() bool { return w.flags.Has(FlagActive) }

func (w *Widget) SetActive(v bool) {
	if w.setFlag(FlagActive, v) {
		w.Damage()
	}
}

func (w *Widget) Checked() bool { return w.flags.Has(FlagChecked) }

func (w *Widget) SetChecked(v bool) {
	if w.setFlag(FlagChecked, v) {
		w.Damage()
	}
}

func (w *Widget) Disabled() bool { return w.flags.Has(FlagDisabled) }

// Disable damages, sets the disabled flag and drops focus and grab.
func (w *Widget) Disable() {
	if w.Disabled() {
		return
	}
	w.Damage()
	w.flags |= FlagDisabled
	w.dropInput()
}

// Enable damages and clears the disabled flag.
func (w *Widget) Enable() {
	if !w.Disabled() {
		return
	}
	w.Damage()
	w.flags &^= FlagDisabled
}

func (w *Widget) SetDisabled(v bool) {
	if v {
		w.Disable()
	} else {
		w.Enable()
	}
}

func (w *Widget) Readonly() bool { return w.flags.Has(FlagReadonly) }

// SetReadonly toggles readonly. Becoming readonly drops focus and grab.
func (w *Widget) SetReadonly(v bool) {
	if !w.setFlag(FlagReadonly, v) {
		return
	}
	if v {
		w.dropInput()
	}
	w.Damage()
}

func (w *Widget) dropInput() {
	if w.ui.focus.Is(w) {
		w.ui.SetKeyboardFocus(nil)
	}
	if w.ui.grab.Is(w) {
		w.ui.SetMouseGrab(nil)
	}
}

func (w *Widget) GrabMouse() bool     { return w.flags.Has(FlagGrabMouse) }
func (w *Widget) SetGrabMouse(v bool) { w.setFlag(FlagGrabMouse, v) }

// Clip reports whether drawing is clipped to the damage rectangle.
func (w *Widget) Clip() bool { return !w.flags.Has(FlagNoClip) }

func (w *Widget) SetClip(v bool) {
	if w.setFlag(FlagNoClip, !v) {
		w.Damage()
	}
}

// NoLayout reports whether moving this widget skips re-laying out the parent.
func (w *Widget) NoLayout() bool     { return w.flags.Has(FlagNoLayout) }
func (w *Widget) SetNoLayout(v bool) { w.setFlag(FlagNoLayout, v) }

// Autoresize reports whether a leaf grows to its minimum size hint.
func (w *Widget) Autoresize() bool { return !w.flags.Has(FlagNoAutoresize) }

func (w *Widget) SetAutoresize(v bool) {
	if w.setFlag(FlagNoAutoresize, !v) && v {
		w.Layout()
	}
}

// SetFlag routes a named state flag to its setter. Structural flags (frame,
// window, plane_window) cannot be changed and are ignored.
func (w *Widget) SetFlag(f Flags, on bool) {
	switch f {
	case FlagInvisible:
		w.SetVisible(!on)
	case FlagDisabled:
		w.SetDisabled(on)
	case FlagReadonly:
		w.SetReadonly(on)
	case FlagActive:
		w.SetActive(on)
	case FlagChecked:
		w.SetChecked(on)
	case FlagGrabMouse:
		w.SetGrabMouse(on)
	case FlagNoClip:
		w.SetClip(!on)
	case FlagNoLayout:
		w.SetNoLayout(on)
	case FlagNoAutoresize:
		w.SetAutoresize(!on)
	}
}

// canHandleEvent reports whether the widget receives events from its parent.
func (w *Widget) canHandleEvent() bool {
	return w.Visible() && !w.Disabled() && !w.Readonly()
}

// --- Focus ---

// Focused reports whether the widget holds keyboard focus.
func (w *Widget) Focused() bool { return w.ui.focus.Is(w) }

// SetFocus takes or releases keyboard focus.
func (w *Widget) SetFocus(v bool) {
	if w.Focused() == v {
		return
	}
	if v {
		w.ui.SetKeyboardFocus(w)
	} else {
		w.ui.SetKeyboardFocus(nil)
	}
}

// --- Palette & font ---

// group returns the palette group matching the widget state.
func (w *Widget) group() GroupID {
	switch {
	case w.Disabled():
		return GroupDisabled
	case w.Active():
		return GroupActive
	case w.Checked():
		return GroupChecked
	}
	return GroupNormal
}

// Color resolves id in the group matching the widget state.
func (w *Widget) Color(id ColorID) Color {
	return w.ColorIn(id, w.group())
}

// ColorIn resolves id in group through the widget's palette, its
// ancestors, the Context palette and finally the theme palette.
func (w *Widget) ColorIn(id ColorID, group GroupID) Color {
	for p := w; p != nil; p = p.parent {
		if c, ok := p.palette.Lookup(id, group); ok {
			return c
		}
	}
	if c, ok := w.ui.palette.Lookup(id, group); ok {
		return c
	}
	return w.ui.theme.Palette().Color(id, group)
}

// SetColor overrides one palette entry. It damages only if the entry changed.
func (w *Widget) SetColor(id ColorID, c Color, group GroupID) {
	if w.palette == nil {
		w.palette = NewPalette()
	} else if old, ok := w.palette.Lookup(id, group); ok && old == c {
		return
	}
	w.palette.Set(id, group, c)
	w.Damage()
}

// Palette returns the widget's own palette, or nil.
func (w *Widget) Palette() *Palette { return w.palette }

// SetPalette replaces the widget's own palette.
func (w *Widget) SetPalette(p *Palette) {
	if p == nil {
		w.ResetPalette()
		return
	}
	w.palette = p.Clone()
	w.Damage()
}

// ResetPalette removes the widget's own palette.
func (w *Widget) ResetPalette() {
	if w.palette == nil {
		return
	}
	w.palette = nil
	w.Damage()
}

// Font resolves the font through the widget, its ancestors, the Context
// and the theme.
func (w *Widget) Font() Font {
	for p := w; p != nil; p = p.parent {
		if p.font != nil {
			return *p.font
		}
	}
	if w.ui.font != nil {
		return *w.ui.font
	}
	return w.ui.theme.Font()
}

// SetFont overrides the font. It damages only on change.
func (w *Widget) SetFont(f Font) {
	if w.font != nil && *w.font == f {
		return
	}
	w.font = &f
	w.Damage()
}

// ResetFont removes the font override.
func (w *Widget) ResetFont() {
	if w.font == nil {
		return
	}
	w.font = nil
	w.Damage()
}

// Theme returns the Context theme.
func (w *Widget) Theme() Theme { return w.ui.theme }

// --- Coordinates ---

// DisplayOrigin returns the widget's top-left corner in display coordinates.
func (w *Widget) DisplayOrigin() DisplayPoint {
	var d DisplayPoint
	for p := w; p != nil; p = p.parent {
		d = d.Add(p.box.Point())
	}
	return d
}

// LocalToDisplay converts a point in local coordinates to display
// coordinates.
func (w *Widget) LocalToDisplay(p Point) DisplayPoint {
	return w.DisplayOrigin().Add(p)
}

// DisplayToLocal converts a display point to local coordinates.
func (w *Widget) DisplayToLocal(d DisplayPoint) Point {
	o := w.DisplayOrigin()
	return Point{d.X - o.X, d.Y - o.Y}
}

// ToParent converts a local point into parent coordinates.
func (w *Widget) ToParent(p Point) Point { return p.Add(w.box.Point()) }

// ToChild converts a rectangle in parent coordinates to local coordinates.
func (w *Widget) ToChild(r Rect) Rect { return r.Sub(w.box.Point()) }

// ToPanel converts a point in parent coordinates to the coordinates of the
// nearest ancestor owning a screen.
func (w *Widget) ToPanel(p Point) Point {
	for q := w.parent; q != nil && !q.HasScreen(); q = q.parent {
		p = p.Add(q.box.Point())
	}
	return p
}

// --- Lifecycle ---

// Detach removes the widget from its parent. No-op without a parent.
func (w *Widget) Detach() {
	if w.parent != nil {
		w.parent.Remove(w)
	}
}

// Destroy detaches the widget and disposes it with its subtree. Focus and
// grab references into the subtree are cleared and pending damage is
// discarded. Using a destroyed widget is undefined; in debug mode tree
// operations on it panic.
func (w *Widget) Destroy() {
	if w.disposed {
		return
	}
	w.Detach()
	w.dispose()
}

func (w *Widget) dispose() {
	for _, c := range w.children {
		c.parent = nil
		c.dispose()
	}
	w.children = nil
	w.ui.forget(w)
	if w.sprite != nil {
		w.sprite.release()
		w.sprite = nil
	}
	w.damage = nil
	w.handlers = handlerRegistry{}
	w.OnDraw, w.OnLayout, w.OnShow, w.OnHide = nil, nil, nil, nil
	w.disposed = true
	w.ID = 0
}

// Walk calls fn for w and every descendant in tree order. level is the
// depth relative to w. Returning false skips the widget's children.
func (w *Widget) Walk(fn func(w *Widget, level int) bool) {
	w.walk(fn, 0)
}

func (w *Widget) walk(fn func(w *Widget, level int) bool, level int) {
	if !fn(w, level) {
		return
	}
	for _, c := range w.children {
		c.walk(fn, level+1)
	}
}

// Path returns the names from the root down to w joined with '/'.
func (w *Widget) Path() string {
	var names []string
	for p := w; p != nil; p = p.parent {
		names = append(names, p.name)
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(names[i])
	}
	return b.String()
}
