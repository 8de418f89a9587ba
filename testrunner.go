package lattice

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	FromX  int    `json:"fromX,omitempty"`
	FromY  int    `json:"fromY,omitempty"`
	ToX    int    `json:"toX,omitempty"`
	ToY    int    `json:"toY,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Key    string `json:"key,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var testActions = map[string]bool{
	"screenshot": true, "click": true, "drag": true, "wait": true, "key": true,
}

// TestRunner sequences injected input and screenshots across frames for
// automated visual testing. Attach it with Context.SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script:
//
//	{"steps": [
//	  {"action": "click", "x": 40, "y": 40},
//	  {"action": "wait", "frames": 3},
//	  {"action": "key", "key": "a"},
//	  {"action": "screenshot", "label": "after-click"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("lattice: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("lattice: parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !testActions[st.Action] {
			return nil, fmt.Errorf("lattice: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner. Its step runs at the start of every
// Update.
func (c *Context) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(c *Context) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		c.Screenshot(st.Label)
	case "click":
		c.InjectClick(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "key":
		code, ch := parseKeyName(st.Key)
		c.InjectKey(code, ch)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}

var keyNames = map[string]KeyCode{
	"escape": KeyEscape, "enter": KeyEnter, "backspace": KeyBackspace,
	"tab": KeyTab, "space": KeySpace, "left": KeyLeft, "right": KeyRight,
	"up": KeyUp, "down": KeyDown, "delete": KeyDelete, "home": KeyHome,
	"end": KeyEnd,
}

// parseKeyName maps a named key to its code, or a single character to a
// rune.
func parseKeyName(s string) (KeyCode, rune) {
	if code, ok := keyNames[s]; ok {
		if code == KeySpace {
			return code, ' '
		}
		return code, 0
	}
	for _, r := range s {
		return KeyUnknown, r
	}
	return KeyUnknown, 0
}
