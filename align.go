package lattice

import "strings"

// AlignFlags position a child inside its parent's content area during layout.
type AlignFlags uint16

const (
	AlignCenterH AlignFlags = 1 << iota
	AlignCenterV
	AlignLeft
	AlignRight
	AlignTop
	AlignBottom
	AlignExpandH
	AlignExpandV

	AlignCenter = AlignCenterH | AlignCenterV
	AlignExpand = AlignExpandH | AlignExpandV
)

var alignNames = []struct {
	flag AlignFlags
	name string
}{
	{AlignCenterH, "center_horizontal"},
	{AlignCenterV, "center_vertical"},
	{AlignLeft, "left"},
	{AlignRight, "right"},
	{AlignTop, "top"},
	{AlignBottom, "bottom"},
	{AlignExpandH, "expand_horizontal"},
	{AlignExpandV, "expand_vertical"},
}

// Has reports whether every bit of a is set.
func (f AlignFlags) Has(a AlignFlags) bool { return f&a == a }

func (f AlignFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, an := range alignNames {
		if f&an.flag != 0 {
			parts = append(parts, an.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseAlign parses names joined with '|' (as produced by String). "center"
// and "expand" are accepted as shorthands.
func ParseAlign(s string) (AlignFlags, bool) {
	var f AlignFlags
	if s == "" || s == "none" {
		return 0, true
	}
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		switch part {
		case "center":
			f |= AlignCenter
			continue
		case "expand":
			f |= AlignExpand
			continue
		}
		found := false
		for _, an := range alignNames {
			if an.name == part {
				f |= an.flag
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return f, true
}

// Align returns the alignment flags.
func (w *Widget) Align() AlignFlags { return w.align }

// SetAlign changes the alignment and re-lays out the parent.
func (w *Widget) SetAlign(a AlignFlags) {
	if w.align == a {
		return
	}
	w.align = a
	w.parentLayout()
}

// Ratios are percentages of the parent's content area. 0 disables a ratio.
func (w *Widget) HorizontalRatio() int { return w.hRatio }
func (w *Widget) VerticalRatio() int   { return w.vRatio }
func (w *Widget) XRatio() int          { return w.xRatio }
func (w *Widget) YRatio() int          { return w.yRatio }

func (w *Widget) setRatio(dst *int, v int) {
	v = max(0, min(v, 100))
	if *dst == v {
		return
	}
	*dst = v
	w.parentLayout()
}

// SetHorizontalRatio sizes the width as a percentage of the content area.
func (w *Widget) SetHorizontalRatio(v int) { w.setRatio(&w.hRatio, v) }

// SetVerticalRatio sizes the height as a percentage of the content area.
func (w *Widget) SetVerticalRatio(v int) { w.setRatio(&w.vRatio, v) }

// SetXRatio positions x as a percentage of the content area width.
func (w *Widget) SetXRatio(v int) { w.setRatio(&w.xRatio, v) }

// SetYRatio positions y as a percentage of the content area height.
func (w *Widget) SetYRatio(v int) { w.setRatio(&w.yRatio, v) }

// alignRect places orig inside bounding. Sizes are resolved first (ratios,
// then expand), then the position (center, anchors, position ratios, expand).
// Flags that say nothing about an axis leave it untouched.
func alignRect(orig, bounding Rect, align AlignFlags, margin, hratio, vratio, xratio, yratio int) Rect {
	r := orig

	if hratio > 0 {
		r.Width = bounding.Width * hratio / 100
	}
	if vratio > 0 {
		r.Height = bounding.Height * vratio / 100
	}
	if align&AlignExpandH != 0 {
		r.Width = bounding.Width - 2*margin
	}
	if align&AlignExpandV != 0 {
		r.Height = bounding.Height - 2*margin
	}

	switch {
	case align&AlignExpandH != 0:
		r.X = bounding.X + margin
	case align&AlignCenterH != 0:
		r.X = bounding.X + (bounding.Width-r.Width)/2
	case align&AlignLeft != 0:
		r.X = bounding.X + margin
	case align&AlignRight != 0:
		r.X = bounding.Right() - r.Width - margin
	case xratio > 0:
		r.X = bounding.X + bounding.Width*xratio/100
	}

	switch {
	case align&AlignExpandV != 0:
		r.Y = bounding.Y + margin
	case align&AlignCenterV != 0:
		r.Y = bounding.Y + (bounding.Height-r.Height)/2
	case align&AlignTop != 0:
		r.Y = bounding.Y + margin
	case align&AlignBottom != 0:
		r.Y = bounding.Bottom() - r.Height - margin
	case yratio > 0:
		r.Y = bounding.Y + bounding.Height*yratio/100
	}

	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}
