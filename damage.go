package lattice

// DefaultMaxDamageRects is the number of separate dirty rectangles a screen
// keeps before collapsing them into their bounding rectangle.
const DefaultMaxDamageRects = 16

// DamageArray is the set of dirty rectangles owned by a widget that has a
// screen. Rectangles are kept pairwise non-touching by MergeDamage.
type DamageArray []Rect

// Bounds returns the smallest rectangle covering every entry.
func (d DamageArray) Bounds() Rect {
	var b Rect
	for _, r := range d {
		b = b.Union(r)
	}
	return b
}

// Area returns the summed area of the entries.
func (d DamageArray) Area() int {
	total := 0
	for _, r := range d {
		total += r.Area()
	}
	return total
}

// MergeDamage adds r to the damage array. An exact duplicate is dropped; a
// rectangle overlapping or sharing an edge with an existing entry is merged
// with it and the bounding rectangle is re-added, so merges cascade. When
// the array would exceed limit entries it collapses to a single bounding
// rectangle. limit <= 0 disables the cap.
func MergeDamage(d DamageArray, r Rect, limit int) DamageArray {
	if r.Empty() {
		return d
	}
	for {
		merged := false
		for i, existing := range d {
			if existing == r || existing.ContainsRect(r) {
				return d
			}
			if existing.Touches(r) {
				r = existing.Union(r)
				d = append(d[:i], d[i+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			break
		}
	}
	d = append(d, r)
	if limit > 0 && len(d) > limit {
		b := d.Bounds()
		d = append(d[:0], b)
	}
	return d
}

// Damage marks the whole box dirty.
func (w *Widget) Damage() {
	w.DamageRect(w.box)
}

// DamageRect marks r, in parent coordinates like Box, dirty. The damage
// travels up to the nearest ancestor owning a screen. Empty rectangles and
// invisible widgets are ignored, as is damage with no screen above it.
func (w *Widget) DamageRect(r Rect) {
	if r.Empty() || !w.Visible() {
		return
	}
	if w.ui.OnDamage != nil {
		w.ui.OnDamage(w, r)
	}
	w.damageRect(r)
}

func (w *Widget) damageRect(r Rect) {
	if w.screen != nil {
		w.addDamage(w.ToChild(r))
		return
	}
	// planes are composited by the display controller
	if w.flags.Has(FlagPlaneWindow) {
		return
	}
	if w.parent != nil {
		w.parent.damageFromChild(r)
	}
}

// damageFromChild receives damage in local coordinates from a child.
func (w *Widget) damageFromChild(r Rect) {
	if !w.Visible() {
		return
	}
	if w.screen != nil {
		w.addDamage(r)
		return
	}
	w.damageRect(r.Add(w.box.Point()))
}

// addDamage merges r, in local coordinates, into the damage array.
func (w *Widget) addDamage(r Rect) {
	if w.inDraw {
		panic("lattice: damage during draw of " + w.String())
	}
	r = r.Intersect(w.LocalBox())
	if r.Empty() {
		return
	}
	w.ui.logger.Debug("damage", "widget", w.String(), "rect", r.String())
	w.damage = MergeDamage(w.damage, r, w.ui.cfg.MaxDamageRects)
}

// Damaged returns a copy of the pending damage of a screen owner.
func (w *Widget) Damaged() DamageArray {
	return append(DamageArray(nil), w.damage...)
}

// ClearDamage discards pending damage.
func (w *Widget) ClearDamage() {
	w.damage = w.damage[:0]
}
