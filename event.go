package lattice

import "fmt"

// EventID identifies the kind of an Event.
type EventID uint8

const (
	EventNone EventID = iota
	EventRawPointerDown
	EventRawPointerUp
	EventRawPointerMove
	EventPointerClick
	EventPointerDblClick
	EventPointerHold
	EventPointerDragStart
	EventPointerDrag
	EventPointerDragStop
	EventKeyboardDown
	EventKeyboardUp
	EventKeyboardRepeat
	EventGainFocus
	EventLostFocus

	numEventIDs
)

var eventIDNames = [numEventIDs]string{
	"none",
	"raw_pointer_down", "raw_pointer_up", "raw_pointer_move",
	"pointer_click", "pointer_dblclick", "pointer_hold",
	"pointer_drag_start", "pointer_drag", "pointer_drag_stop",
	"keyboard_down", "keyboard_up", "keyboard_repeat",
	"on_gain_focus", "on_lost_focus",
}

func (id EventID) String() string {
	if id < numEventIDs {
		return eventIDNames[id]
	}
	return fmt.Sprintf("EventID(%d)", id)
}

// ParseEventID returns the id with the given name.
func ParseEventID(s string) (EventID, bool) {
	for i, n := range eventIDNames {
		if n == s {
			return EventID(i), true
		}
	}
	return EventNone, false
}

// IsPointer reports whether the event carries a pointer payload.
func (id EventID) IsPointer() bool {
	return id >= EventRawPointerDown && id <= EventPointerDragStop
}

// IsKeyboard reports whether the event carries a key payload.
func (id EventID) IsKeyboard() bool {
	return id >= EventKeyboardDown && id <= EventKeyboardRepeat
}

// PointerButton identifies a pointer button.
type PointerButton uint8

const (
	ButtonNone PointerButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// KeyCode identifies a non-printable key. Printable keys arrive as
// KeyUnknown with Key.Rune set.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyDelete
	KeyHome
	KeyEnd
)

// Pointer is the payload of pointer events.
type Pointer struct {
	Point     DisplayPoint
	Button    PointerButton
	DragStart DisplayPoint
}

// Key is the payload of keyboard events.
type Key struct {
	Code KeyCode
	Rune rune
}

// Event is an input event travelling down the widget tree. Handlers call
// Stop to end propagation.
type Event struct {
	ID      EventID
	Pointer Pointer
	Key     Key

	quit   bool
	grab   *Widget
	target *Widget
}

// Stop ends propagation.
func (e *Event) Stop() { e.quit = true }

// Quit reports whether propagation was stopped.
func (e *Event) Quit() bool { return e.quit }

// Grab asks the Context to route following pointer events to w until the
// pointer is released.
func (e *Event) Grab(w *Widget) { e.grab = w }

// Grabbed returns the widget that requested the grab, or nil.
func (e *Event) Grabbed() *Widget { return e.grab }

// Target returns the deepest widget that handled the event.
func (e *Event) Target() *Widget { return e.target }

func (e Event) String() string {
	switch {
	case e.ID.IsPointer():
		return fmt.Sprintf("%s %s", e.ID, e.Pointer.Point)
	case e.ID.IsKeyboard():
		if e.Key.Rune != 0 {
			return fmt.Sprintf("%s %q", e.ID, e.Key.Rune)
		}
		return fmt.Sprintf("%s key=%d", e.ID, e.Key.Code)
	}
	return e.ID.String()
}

// --- Handler registry ---

type eventHandler struct {
	id  uint32
	fn  func(*Event)
	ids []EventID
}

func (h *eventHandler) wants(id EventID) bool {
	if len(h.ids) == 0 {
		return true
	}
	for _, x := range h.ids {
		if x == id {
			return true
		}
	}
	return false
}

type handlerRegistry struct {
	entries []eventHandler
	nextID  uint32
}

func (r *handlerRegistry) add(fn func(*Event), ids []EventID) uint32 {
	r.nextID++
	r.entries = append(r.entries, eventHandler{id: r.nextID, fn: fn, ids: ids})
	return r.nextID
}

// remove builds a new backing array so an invoke in progress keeps
// iterating its own snapshot.
func (r *handlerRegistry) remove(id uint32) {
	for i := range r.entries {
		if r.entries[i].id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *handlerRegistry) invoke(e *Event) {
	for _, h := range r.entries {
		if h.wants(e.ID) {
			h.fn(e)
		}
	}
}

// HandlerHandle allows removing a registered handler.
type HandlerHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters the handler. Removing twice is harmless.
func (h HandlerHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}

// On registers fn for the given event ids, or for every event when none are
// given.
func (w *Widget) On(fn func(*Event), ids ...EventID) HandlerHandle {
	return HandlerHandle{id: w.handlers.add(fn, ids), reg: &w.handlers}
}

// On registers a Context-level handler that sees every dispatched event
// before any widget. Stopping the event there skips widget dispatch.
func (c *Context) On(fn func(*Event), ids ...EventID) HandlerHandle {
	return HandlerHandle{id: c.handlers.add(fn, ids), reg: &c.handlers}
}

func (w *Widget) invokeHandlers(e *Event) {
	w.handlers.invoke(e)
}

// --- Dispatch ---

// Handle runs the widget's handlers for e and then passes it down. Pointer
// events go to the topmost eligible child containing the pointer; keyboard
// events go to every eligible child, topmost first, until one stops it.
// Children that are hidden, disabled or readonly are not eligible.
func (w *Widget) Handle(e *Event) {
	if e.quit {
		return
	}
	w.ui.logger.Debug("handle", "widget", w.String(), "event", e.String())
	e.target = w

	switch e.ID {
	case EventRawPointerDown:
		if w.GrabMouse() {
			w.SetActive(true)
			e.Grab(w)
		}
	case EventRawPointerUp:
		w.SetActive(false)
	}

	w.invokeHandlers(e)
	if e.quit || len(w.children) == 0 {
		return
	}

	children := w.children
	switch {
	case e.ID.IsPointer():
		pos := w.DisplayToLocal(e.Pointer.Point)
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			if c == nil || c.parent != w || !c.canHandleEvent() {
				continue
			}
			if c.box.Contains(pos) {
				c.Handle(e)
				break
			}
		}
	case e.ID.IsKeyboard():
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			if c == nil || c.parent != w || !c.canHandleEvent() {
				continue
			}
			c.Handle(e)
			if e.quit {
				return
			}
		}
	}
}

// Dispatch delivers e. Context handlers run first. Pointer events go to the
// mouse grab holder if any, keyboard events to the keyboard focus holder if
// any; otherwise top-level windows are tried topmost first, pointer events
// only reaching the window under the pointer. A grab requested while
// handling is installed afterwards; a raw pointer up releases it.
func (c *Context) Dispatch(e *Event) {
	c.handlers.invoke(e)
	if !e.quit {
		c.route(e)
	}
	if e.grab != nil {
		c.SetMouseGrab(e.grab)
	}
	if e.ID == EventRawPointerUp {
		c.SetMouseGrab(nil)
	}
	if c.sink != nil {
		c.sink.EmitEvent(*e, e.target)
	}
}

func (c *Context) route(e *Event) {
	if e.ID.IsPointer() {
		if g := c.grab.Get(); g != nil {
			g.Handle(e)
			return
		}
	}
	if e.ID.IsKeyboard() {
		if f := c.focus.Get(); f != nil {
			f.Handle(e)
			return
		}
	}
	windows := c.windows
	for i := len(windows) - 1; i >= 0; i-- {
		w := windows[i]
		// child windows are reached through their parent
		if w.parent != nil || !w.canHandleEvent() {
			continue
		}
		if e.ID.IsPointer() {
			p := e.Pointer.Point
			if !w.box.Contains(Point{p.X, p.Y}) {
				continue
			}
			w.Handle(e)
			return
		}
		w.Handle(e)
		if e.quit {
			return
		}
	}
}
