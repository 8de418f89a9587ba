package lattice

// Gesture defaults.
const (
	DefaultDragDeadZone    = 5   // pixels
	DefaultDoubleClickTime = 0.3 // seconds
	DefaultHoldTime        = 1.0 // seconds
)

// pointerState turns raw pointer samples into click, double click, hold and
// drag events.
type pointerState struct {
	down      bool
	button    PointerButton
	start     DisplayPoint
	last      DisplayPoint
	dragging  bool
	held      float64
	holdFired bool

	lastClickAt    float64
	lastClickPoint DisplayPoint
	clicked        bool
}

func within(a, b DisplayPoint, dist int) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy <= dist*dist
}

// SetDragDeadZone sets how far, in pixels, the pointer must travel while
// pressed before a drag starts.
func (c *Context) SetDragDeadZone(pixels int) {
	c.dragDeadZone = max(0, pixels)
}

// PointerInput feeds one pointer sample. It dispatches the raw event and any
// gesture it completes.
func (c *Context) PointerInput(p DisplayPoint, pressed bool, button PointerButton) {
	ps := &c.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.start = p
		ps.last = p
		ps.dragging = false
		ps.held = 0
		ps.holdFired = false
		c.dispatchPointer(EventRawPointerDown, p, button, p)

	case !pressed && ps.down:
		ps.down = false
		if ps.dragging {
			c.dispatchPointer(EventPointerDragStop, p, ps.button, ps.start)
		}
		c.dispatchPointer(EventRawPointerUp, p, ps.button, ps.start)
		if !ps.dragging {
			c.dispatchPointer(EventPointerClick, p, ps.button, ps.start)
			if ps.clicked && c.clock-ps.lastClickAt <= c.doubleClickTime &&
				within(p, ps.lastClickPoint, c.dragDeadZone) {
				c.dispatchPointer(EventPointerDblClick, p, ps.button, ps.start)
				ps.clicked = false
			} else {
				ps.clicked = true
				ps.lastClickAt = c.clock
				ps.lastClickPoint = p
			}
		}
		ps.dragging = false
		ps.last = p

	case pressed && ps.down:
		if p == ps.last {
			return
		}
		c.dispatchPointer(EventRawPointerMove, p, ps.button, ps.start)
		if !ps.dragging && !within(p, ps.start, c.dragDeadZone) {
			ps.dragging = true
			c.dispatchPointer(EventPointerDragStart, p, ps.button, ps.start)
		}
		if ps.dragging {
			c.dispatchPointer(EventPointerDrag, p, ps.button, ps.start)
		}
		ps.last = p

	default:
		if p == ps.last {
			return
		}
		c.dispatchPointer(EventRawPointerMove, p, ButtonNone, p)
		ps.last = p
	}
}

// tickPointer fires a hold once the pointer stayed pressed without dragging
// for the hold time.
func (c *Context) tickPointer(dt float64) {
	ps := &c.pointer
	if !ps.down || ps.dragging || ps.holdFired {
		return
	}
	ps.held += dt
	if ps.held >= c.holdTime {
		ps.holdFired = true
		c.dispatchPointer(EventPointerHold, ps.last, ps.button, ps.start)
	}
}

func (c *Context) dispatchPointer(id EventID, p DisplayPoint, b PointerButton, start DisplayPoint) {
	c.Dispatch(&Event{ID: id, Pointer: Pointer{Point: p, Button: b, DragStart: start}})
}

// KeyInput dispatches a keyboard event.
func (c *Context) KeyInput(id EventID, code KeyCode, r rune) {
	if !id.IsKeyboard() {
		panic("lattice: KeyInput with non-keyboard event " + id.String())
	}
	c.Dispatch(&Event{ID: id, Key: Key{Code: code, Rune: r}})
}

// Clock returns the seconds accumulated by Update.
func (c *Context) Clock() float64 { return c.clock }
