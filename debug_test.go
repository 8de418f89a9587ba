package lattice

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	ui := NewTestContext()
	root := ui.NewFrame("root", Rect{0, 0, 100, 100})
	panel := ui.NewFrame("panel", Rect{10, 10, 50, 50})
	a := ui.NewWidget("a", Rect{1, 2, 3, 4})
	require.NoError(t, panel.Add(a))
	require.NoError(t, root.Add(panel))
	a.SetAlpha(0.5)

	var buf bytes.Buffer
	require.NoError(t, root.Dump(&buf))
	want := "frame root#1 box=[0,0 100x100] flags=frame alpha=1.00\n" +
		"  frame panel#2 box=[10,10 50x50] flags=frame alpha=1.00\n" +
		"    widget a#3 box=[1,2 3x4] flags=none alpha=0.50\n"
	assert.Equal(t, want, buf.String())
}

func debugContext(buf *bytes.Buffer) *Context {
	ui := NewTestContext()
	ui.SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	ui.SetDebug(true)
	return ui
}

func TestDebugWarnsOnDeepTree(t *testing.T) {
	var buf bytes.Buffer
	ui := debugContext(&buf)

	parent := ui.NewFrame("f0", Rect{})
	for i := 1; i <= debugMaxTreeDepth; i++ {
		child := ui.NewFrame(fmt.Sprintf("f%d", i), Rect{})
		require.NoError(t, parent.Add(child))
		parent = child
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "tree depth exceeds threshold"))
	assert.Contains(t, buf.String(), "depth=33")
}

func TestDebugWarnsOnManyChildren(t *testing.T) {
	var buf bytes.Buffer
	ui := debugContext(&buf)

	root := ui.NewFrame("root", Rect{})
	for i := 0; i <= debugMaxChildCount; i++ {
		require.NoError(t, root.Add(ui.NewWidget("", Rect{})))
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "child count exceeds threshold"))
}

func TestDebugChecksOffByDefault(t *testing.T) {
	ui := NewTestContext()
	w := ui.NewWidget("gone", Rect{})
	w.Destroy()
	assert.NotPanics(t, func() { w.Move(Point{1, 1}) })
}
