package lattice

import (
	"fmt"
	"io"
	"strings"
)

// debugCheckDisposed panics with a descriptive message when a destroyed
// widget is used. Only called when the Context is in debug mode.
func debugCheckDisposed(w *Widget, op string) {
	if w.disposed {
		panic(fmt.Sprintf("lattice debug: %s on destroyed widget %q", op, w.name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(w *Widget) {
	depth := 0
	for p := w; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		w.ui.logger.Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "widget", w.String())
	}
}

// debugCheckChildCount warns if a widget has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(w *Widget) {
	if len(w.children) > debugMaxChildCount {
		w.ui.logger.Warn("child count exceeds threshold",
			"widget", w.String(), "children", len(w.children), "threshold", debugMaxChildCount)
	}
}

// Dump writes an indented description of the subtree rooted at w, one
// widget per line.
func (w *Widget) Dump(out io.Writer) error {
	var err error
	w.Walk(func(c *Widget, level int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(out, "%s%s %s box=%s flags=%s alpha=%.2f\n",
			strings.Repeat("  ", level), c.kind, c, c.box, c.flags, c.alpha)
		return true
	})
	return err
}
