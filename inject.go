package lattice

// syntheticInput is one queued pointer sample or key event. Coordinates are
// display coordinates, the same space real input arrives in.
type syntheticInput struct {
	point   DisplayPoint
	pressed bool
	button  PointerButton

	key     EventID
	code    KeyCode
	keyRune rune
}

// InjectPress queues a left button press at (x, y). Queued input is
// consumed one entry per Update.
func (c *Context) InjectPress(x, y int) {
	c.injectQueue = append(c.injectQueue, syntheticInput{
		point:   DisplayPoint{x, y},
		pressed: true,
		button:  ButtonLeft,
	})
}

// InjectMove queues a pointer move with the button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (c *Context) InjectMove(x, y int) {
	c.injectQueue = append(c.injectQueue, syntheticInput{
		point:   DisplayPoint{x, y},
		pressed: true,
		button:  ButtonLeft,
	})
}

// InjectRelease queues a left button release at (x, y).
func (c *Context) InjectRelease(x, y int) {
	c.injectQueue = append(c.injectQueue, syntheticInput{
		point:  DisplayPoint{x, y},
		button: ButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (c *Context) InjectClick(x, y int) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a press at from, frames-2 interpolated moves and a
// release at to. The sequence consumes frames frames, at least 2.
func (c *Context) InjectDrag(fromX, fromY, toX, toY, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		x := fromX + (toX-fromX)*i/(steps+1)
		y := fromY + (toY-fromY)*i/(steps+1)
		c.InjectMove(x, y)
	}
	c.InjectRelease(toX, toY)
}

// InjectKey queues a key down followed by a key up.
func (c *Context) InjectKey(code KeyCode, r rune) {
	c.injectQueue = append(c.injectQueue,
		syntheticInput{key: EventKeyboardDown, code: code, keyRune: r},
		syntheticInput{key: EventKeyboardUp, code: code, keyRune: r},
	)
}

// processInjectedInput consumes one queued entry. It reports whether one
// was consumed, in which case real input for the frame should be skipped.
func (c *Context) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	in := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	if in.key != EventNone {
		c.KeyInput(in.key, in.code, in.keyRune)
		return true
	}
	c.PointerInput(in.point, in.pressed, in.button)
	return true
}

// InjectPending reports whether synthetic input is queued.
func (c *Context) InjectPending() bool { return len(c.injectQueue) > 0 }
