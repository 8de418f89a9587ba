package simulator

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/lattice"
)

// Key repeat timing, in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

var keyCodes = map[ebiten.Key]lattice.KeyCode{
	ebiten.KeyEscape:     lattice.KeyEscape,
	ebiten.KeyEnter:      lattice.KeyEnter,
	ebiten.KeyBackspace:  lattice.KeyBackspace,
	ebiten.KeyTab:        lattice.KeyTab,
	ebiten.KeySpace:      lattice.KeySpace,
	ebiten.KeyArrowLeft:  lattice.KeyLeft,
	ebiten.KeyArrowRight: lattice.KeyRight,
	ebiten.KeyArrowUp:    lattice.KeyUp,
	ebiten.KeyArrowDown:  lattice.KeyDown,
	ebiten.KeyDelete:     lattice.KeyDelete,
	ebiten.KeyHome:       lattice.KeyHome,
	ebiten.KeyEnd:        lattice.KeyEnd,
}

// keyCode maps an Ebitengine key to a lattice key code. Keys that produce
// text arrive through input chars instead.
func keyCode(k ebiten.Key) (lattice.KeyCode, rune, bool) {
	code, ok := keyCodes[k]
	if !ok {
		return lattice.KeyUnknown, 0, false
	}
	if code == lattice.KeySpace {
		return code, ' ', true
	}
	return code, 0, true
}

// pointerButton reports the pressed mouse button, preferring left, then
// right, then middle.
func pointerButton(left, right, middle bool) (lattice.PointerButton, bool) {
	switch {
	case left:
		return lattice.ButtonLeft, true
	case right:
		return lattice.ButtonRight, true
	case middle:
		return lattice.ButtonMiddle, true
	}
	return lattice.ButtonNone, false
}

// isRepeat reports whether a key held for d ticks repeats this tick.
func isRepeat(d int) bool {
	return d > repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// input reads the Ebitengine input state for this tick.
type input struct {
	keys  []ebiten.Key
	chars []rune
}

func (in *input) poll(ui *lattice.Context) {
	mx, my := ebiten.CursorPosition()
	button, pressed := pointerButton(
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
	)
	ui.PointerInput(lattice.DisplayPoint{X: mx, Y: my}, pressed, button)

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		if code, r, ok := keyCode(k); ok {
			ui.KeyInput(lattice.EventKeyboardDown, code, r)
		}
	}
	for k := range keyCodes {
		if isRepeat(inpututil.KeyPressDuration(k)) {
			code, r, _ := keyCode(k)
			ui.KeyInput(lattice.EventKeyboardRepeat, code, r)
		}
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		if code, r, ok := keyCode(k); ok {
			ui.KeyInput(lattice.EventKeyboardUp, code, r)
		}
	}

	in.chars = ebiten.AppendInputChars(in.chars[:0])
	for _, r := range in.chars {
		if r == ' ' {
			continue
		}
		ui.KeyInput(lattice.EventKeyboardDown, lattice.KeyUnknown, r)
		ui.KeyInput(lattice.EventKeyboardUp, lattice.KeyUnknown, r)
	}
}
