package lattice

import (
	"fmt"
	"slices"
)

// isAncestor reports whether candidate is an ancestor of n.
func isAncestor(candidate, n *Widget) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// Add appends child on top of the z-order and lays the frame out.
// Adding a widget that is already a child is a no-op.
func (w *Widget) Add(child *Widget) error {
	return w.AddAt(child, len(w.children))
}

// AddAt inserts child at z-order index and lays the frame out. index is
// clamped to [0, NumChildren()].
func (w *Widget) AddAt(child *Widget, index int) error {
	if child == nil {
		panic("lattice: cannot add nil child")
	}
	if w.ui.debug() {
		debugCheckDisposed(w, "Add (parent)")
		debugCheckDisposed(child, "Add (child)")
	}
	if !w.IsFrame() {
		return fmt.Errorf("lattice: add %s to %s: %w", child, w, ErrNotContainer)
	}
	if child == w {
		return fmt.Errorf("lattice: add %s to itself: %w", w, ErrSelfParent)
	}
	if child.parent == w {
		return nil
	}
	if child.parent != nil {
		return fmt.Errorf("lattice: add %s to %s (parent is %s): %w", child, w, child.parent, ErrParentConflict)
	}
	if isAncestor(child, w) {
		return fmt.Errorf("lattice: add %s to %s: %w", child, w, ErrCycle)
	}
	index = max(0, min(index, len(w.children)))
	child.parent = w
	w.children = slices.Insert(w.children, index, child)
	if w.ui.debug() {
		debugCheckTreeDepth(child)
		debugCheckChildCount(w)
	}
	w.ui.logger.Debug("add", "parent", w.String(), "child", child.String())
	child.Damage()
	w.Layout()
	child.movePlane()
	return nil
}

// Remove detaches child. Damage is recorded for the area it covered. Removing
// a widget that is not a child does nothing.
func (w *Widget) Remove(child *Widget) {
	if child == nil || child.parent != w {
		return
	}
	i := slices.Index(w.children, child)
	if i < 0 {
		return
	}
	child.Damage()
	w.children = slices.Delete(w.children, i, i+1)
	child.parent = nil
	child.movePlane()
	w.Layout()
}

// RemoveAll detaches every child. Children are not destroyed.
func (w *Widget) RemoveAll() {
	for _, c := range w.children {
		c.Damage()
		c.parent = nil
		c.movePlane()
	}
	clear(w.children)
	w.children = w.children[:0]
}

// Children returns the child list, bottom first. The returned slice MUST NOT
// be mutated by the caller.
func (w *Widget) Children() []*Widget { return w.children }

// NumChildren returns the number of children.
func (w *Widget) NumChildren() int { return len(w.children) }

// ChildAt returns the child at z-order index i.
func (w *Widget) ChildAt(i int) *Widget {
	if i < 0 || i >= len(w.children) {
		panic("lattice: child index out of range")
	}
	return w.children[i]
}

// IsChild reports whether c is a direct child.
func (w *Widget) IsChild(c *Widget) bool {
	return c != nil && c.parent == w
}

// FindChild returns the first descendant with the given name, searching
// depth first, or nil.
func (w *Widget) FindChild(name string) *Widget {
	for _, c := range w.children {
		if c.name == name {
			return c
		}
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Layout ---

// Layout positions the widget's children. A leaf instead grows to its
// minimum size hint unless autoresize is off.
func (w *Widget) Layout() {
	if len(w.children) == 0 {
		if !w.Autoresize() {
			return
		}
		hint := w.MinSizeHint()
		s := w.box.Size()
		s.Width = max(s.Width, hint.Width)
		s.Height = max(s.Height, hint.Height)
		if s == w.box.Size() {
			return
		}
		w.inLayout = true
		defer func() { w.inLayout = false }()
		w.Resize(s)
		return
	}

	if !w.Visible() || w.box.Size().Empty() || w.inLayout {
		return
	}
	w.inLayout = true
	defer func() { w.inLayout = false }()

	if w.OnLayout != nil {
		w.OnLayout()
	}

	bounding := w.ToChild(w.ContentArea())
	if bounding.Empty() {
		return
	}
	for _, child := range w.children {
		child.Layout()
		r := alignRect(child.box, bounding, child.align, 0,
			child.hRatio, child.vRatio, child.xRatio, child.yRatio)
		child.SetBox(r)
	}
}

// InLayout reports whether a layout pass of this widget is running.
func (w *Widget) InLayout() bool { return w.inLayout }

// --- Z-order ---

// ZOrder returns the widget's index in its parent's child list, 0 without a
// parent.
func (w *Widget) ZOrder() int {
	if w.parent == nil {
		return 0
	}
	return max(0, slices.Index(w.parent.children, w))
}

// ZOrderUp swaps the widget with the sibling above it.
func (w *Widget) ZOrderUp() {
	if w.parent != nil {
		w.parent.zorderUp(w)
	}
}

// ZOrderDown swaps the widget with the sibling below it.
func (w *Widget) ZOrderDown() {
	if w.parent != nil {
		w.parent.zorderDown(w)
	}
}

// ZOrderTop moves the widget above all siblings.
func (w *Widget) ZOrderTop() {
	if w.parent != nil {
		w.parent.zorderTo(w, len(w.parent.children)-1)
	}
}

// ZOrderBottom moves the widget below all siblings.
func (w *Widget) ZOrderBottom() {
	if w.parent != nil {
		w.parent.zorderTo(w, 0)
	}
}

// SetZOrder moves the widget to rank, clamped to the last index.
func (w *Widget) SetZOrder(rank int) {
	if w.parent != nil {
		w.parent.zorderTo(w, rank)
	}
}

func (w *Widget) zorderUp(child *Widget) {
	i := slices.Index(w.children, child)
	if i < 0 || i+1 >= len(w.children) {
		return
	}
	w.children[i].Damage()
	w.children[i+1].Damage()
	w.children[i], w.children[i+1] = w.children[i+1], w.children[i]
	w.Layout()
}

func (w *Widget) zorderDown(child *Widget) {
	i := slices.Index(w.children, child)
	if i <= 0 {
		return
	}
	w.children[i].Damage()
	w.children[i-1].Damage()
	w.children[i], w.children[i-1] = w.children[i-1], w.children[i]
}

func (w *Widget) zorderTo(child *Widget, rank int) {
	if len(w.children) <= 1 {
		return
	}
	i := slices.Index(w.children, child)
	if i < 0 {
		return
	}
	rank = max(0, min(rank, len(w.children)-1))
	if rank == i {
		return
	}
	w.children = slices.Delete(w.children, i, i+1)
	w.children = slices.Insert(w.children, rank, child)
	w.Layout()
	child.Damage()
}
