package lattice

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to a Painter.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Hex formats c as #rrggbbaa.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5), uint8(clamp01(c.G)*255+0.5),
		uint8(clamp01(c.B)*255+0.5), uint8(clamp01(c.A)*255+0.5))
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("lattice: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("lattice: invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ColorID names a palette slot.
type ColorID uint8

const (
	ColorBg ColorID = iota
	ColorText
	ColorBorder
	ColorButtonBg
	ColorButtonText
	ColorLabelBg
	ColorLabelText
	ColorTextHighlight
	numColorIDs
)

var colorIDNames = [numColorIDs]string{
	"bg", "text", "border", "button_bg", "button_text", "label_bg", "label_text", "text_highlight",
}

func (id ColorID) String() string {
	if id < numColorIDs {
		return colorIDNames[id]
	}
	return "color(" + strconv.Itoa(int(id)) + ")"
}

// ParseColorID is the inverse of ColorID.String.
func ParseColorID(s string) (ColorID, bool) {
	for i, n := range colorIDNames {
		if n == s {
			return ColorID(i), true
		}
	}
	return 0, false
}

// GroupID selects the widget state a palette color applies to.
type GroupID uint8

const (
	GroupNormal GroupID = iota
	GroupActive
	GroupDisabled
	GroupChecked
	numGroupIDs
)

var groupIDNames = [numGroupIDs]string{"normal", "active", "disabled", "checked"}

func (g GroupID) String() string {
	if g < numGroupIDs {
		return groupIDNames[g]
	}
	return "group(" + strconv.Itoa(int(g)) + ")"
}

// ParseGroupID is the inverse of GroupID.String.
func ParseGroupID(s string) (GroupID, bool) {
	for i, n := range groupIDNames {
		if n == s {
			return GroupID(i), true
		}
	}
	return 0, false
}

// Palette maps (group, id) pairs to colors. A Palette may be sparse; lookups
// of missing entries fall through to the next palette in the resolution chain.
type Palette struct {
	colors map[GroupID]map[ColorID]Color
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{colors: make(map[GroupID]map[ColorID]Color)}
}

// Lookup returns the color stored for id in group.
func (p *Palette) Lookup(id ColorID, group GroupID) (Color, bool) {
	if p == nil {
		return Color{}, false
	}
	c, ok := p.colors[group][id]
	return c, ok
}

// Set stores c for id in group.
func (p *Palette) Set(id ColorID, group GroupID, c Color) {
	if p.colors == nil {
		p.colors = make(map[GroupID]map[ColorID]Color)
	}
	g := p.colors[group]
	if g == nil {
		g = make(map[ColorID]Color)
		p.colors[group] = g
	}
	g[id] = c
}

// Color returns the color for id in group, falling back to the normal group
// and finally to transparent.
func (p *Palette) Color(id ColorID, group GroupID) Color {
	if c, ok := p.Lookup(id, group); ok {
		return c
	}
	if c, ok := p.Lookup(id, GroupNormal); ok {
		return c
	}
	return ColorTransparent
}

// Len returns the number of stored entries.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, g := range p.colors {
		n += len(g)
	}
	return n
}

// Clone returns a deep copy.
func (p *Palette) Clone() *Palette {
	out := NewPalette()
	if p == nil {
		return out
	}
	for g, m := range p.colors {
		for id, c := range m {
			out.Set(id, g, c)
		}
	}
	return out
}

// Each calls fn for every entry in (group, id) order.
func (p *Palette) Each(fn func(id ColorID, group GroupID, c Color)) {
	if p == nil {
		return
	}
	for g := GroupID(0); g < numGroupIDs; g++ {
		for id := ColorID(0); id < numColorIDs; id++ {
			if c, ok := p.colors[g][id]; ok {
				fn(id, g, c)
			}
		}
	}
}

// LoadPalette reads a TOML palette file. Each table is a group name holding
// color-id = "#rrggbb[aa]" pairs:
//
//	[normal]
//	bg = "#202020"
//	text = "#ffffff"
//
//	[disabled]
//	text = "#808080"
func LoadPalette(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lattice: read palette: %w", err)
	}
	return ParsePalette(data)
}

// ParsePalette parses TOML palette data. See LoadPalette for the format.
func ParsePalette(data []byte) (*Palette, error) {
	var raw map[string]map[string]string
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("lattice: parse palette: %w", err)
	}
	p := NewPalette()
	for groupName, entries := range raw {
		group, ok := ParseGroupID(groupName)
		if !ok {
			return nil, fmt.Errorf("lattice: parse palette: unknown group %q", groupName)
		}
		for idName, value := range entries {
			id, ok := ParseColorID(idName)
			if !ok {
				return nil, fmt.Errorf("lattice: parse palette: unknown color %q", idName)
			}
			c, err := ParseColor(value)
			if err != nil {
				return nil, err
			}
			p.Set(id, group, c)
		}
	}
	return p, nil
}

// MarshalPalette encodes p in the TOML palette format.
func MarshalPalette(p *Palette) ([]byte, error) {
	raw := make(map[string]map[string]string)
	p.Each(func(id ColorID, group GroupID, c Color) {
		m := raw[group.String()]
		if m == nil {
			m = make(map[string]string)
			raw[group.String()] = m
		}
		m[id.String()] = c.Hex()
	})
	return toml.Marshal(raw)
}

// Font describes a typeface request. Rendering text is the job of concrete
// widgets; the core only resolves which Font applies.
type Font struct {
	Face   string
	Size   float64
	Weight int
	Italic bool
}

func (f Font) String() string {
	s := fmt.Sprintf("%s %.1f", f.Face, f.Size)
	if f.Weight != 0 {
		s += fmt.Sprintf(" w%d", f.Weight)
	}
	if f.Italic {
		s += " italic"
	}
	return s
}
