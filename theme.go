package lattice

import "strings"

// FillFlags selects how a box background is filled.
type FillFlags uint8

const (
	FillSolid FillFlags = 1 << iota // fill with the background color
	FillBlend                       // blend the background over what is below
)

// Empty reports whether no fill is requested.
func (f FillFlags) Empty() bool { return f == 0 }

var fillNames = []string{"solid", "blend"}

func (f FillFlags) String() string { return joinBits(uint8(f), fillNames) }

// ParseFillFlags parses names joined with '|'.
func ParseFillFlags(s string) (FillFlags, bool) {
	v, ok := parseBits(s, fillNames)
	return FillFlags(v), ok
}

// BorderFlags selects which sides of a box get a border. The zero value
// means all sides.
type BorderFlags uint8

const (
	BorderTop BorderFlags = 1 << iota
	BorderRight
	BorderBottom
	BorderLeft
)

// Has reports whether side is drawn.
func (b BorderFlags) Has(side BorderFlags) bool {
	return b == 0 || b&side != 0
}

var borderNames = []string{"top", "right", "bottom", "left"}

func (b BorderFlags) String() string { return joinBits(uint8(b), borderNames) }

// ParseBorderFlags parses names joined with '|'.
func ParseBorderFlags(s string) (BorderFlags, bool) {
	v, ok := parseBits(s, borderNames)
	return BorderFlags(v), ok
}

func joinBits(v uint8, names []string) string {
	var parts []string
	for i, n := range names {
		if v&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

func parseBits(s string, names []string) (uint8, bool) {
	var v uint8
	if s == "" {
		return 0, true
	}
	for _, part := range strings.Split(s, "|") {
		i := indexOf(names, strings.TrimSpace(part))
		if i < 0 {
			return 0, false
		}
		v |= 1 << i
	}
	return v, true
}

func indexOf(names []string, s string) int {
	for i, n := range names {
		if n == s {
			return i
		}
	}
	return -1
}

// BoxStyle carries the resolved colors and metrics a Theme needs to draw
// widget chrome.
type BoxStyle struct {
	Rect        Rect
	Fill        FillFlags
	Border      Color
	Background  Color
	BorderWidth int
	Margin      int
	Radius      float64
	BorderFlags BorderFlags
}

// Theme draws the standard box and circle chrome and supplies the terminal
// fallback palette and font.
type Theme interface {
	Palette() *Palette
	Font() Font
	DrawBox(p Painter, style BoxStyle)
	DrawCircle(p Painter, style BoxStyle)
}

// defaultPaletteTOML is the palette of DefaultTheme, light to dark sand tones.
const defaultPaletteTOML = `
[normal]
bg = "#fefefd"
text = "#bdb08c"
border = "#ac9b6e"
button_bg = "#ac9b6e"
button_text = "#f9f8f5"
label_bg = "#fefefd"
label_text = "#bdb08c"
text_highlight = "#ff69b4"

[active]
text = "#cec4aa"
border = "#cec4aa"
button_bg = "#958456"
button_text = "#fefefd"
label_text = "#958456"

[disabled]
text = "#dfd9c7"
border = "#f3f1ea"
button_bg = "#f3f1ea"
button_text = "#dfd9c7"
label_text = "#dfd9c7"

[checked]
border = "#958456"
button_bg = "#958456"
`

// DefaultTheme is a flat theme drawing square or rounded boxes.
type DefaultTheme struct {
	palette *Palette
	font    Font
}

// NewDefaultTheme returns the built-in theme.
func NewDefaultTheme() *DefaultTheme {
	p, err := ParsePalette([]byte(defaultPaletteTOML))
	if err != nil {
		panic("lattice: bad built-in palette: " + err.Error())
	}
	return &DefaultTheme{
		palette: p,
		font:    Font{Face: "sans", Size: 18},
	}
}

// Palette returns the theme palette.
func (t *DefaultTheme) Palette() *Palette { return t.palette }

// Font returns the theme font.
func (t *DefaultTheme) Font() Font { return t.font }

// SetPalette replaces the theme palette. A nil palette is ignored.
func (t *DefaultTheme) SetPalette(p *Palette) {
	if p != nil {
		t.palette = p
	}
}

// DrawBox fills and borders style.Rect inset by the margin.
func (t *DefaultTheme) DrawBox(p Painter, s BoxStyle) {
	r := s.Rect.Inset(s.Margin)
	if r.Empty() {
		return
	}
	radius := int(s.Radius)
	if !s.Fill.Empty() {
		if radius > 0 {
			fillRounded(p, r, radius, s.Background)
		} else {
			p.FillRect(r, s.Background)
		}
	}
	if s.BorderWidth <= 0 {
		return
	}
	bw := s.BorderWidth
	if s.BorderFlags == 0 {
		p.StrokeRect(r, s.Border, bw)
		return
	}
	if s.BorderFlags.Has(BorderTop) {
		p.FillRect(Rect{r.X, r.Y, r.Width, bw}, s.Border)
	}
	if s.BorderFlags.Has(BorderBottom) {
		p.FillRect(Rect{r.X, r.Bottom() - bw, r.Width, bw}, s.Border)
	}
	if s.BorderFlags.Has(BorderLeft) {
		p.FillRect(Rect{r.X, r.Y, bw, r.Height}, s.Border)
	}
	if s.BorderFlags.Has(BorderRight) {
		p.FillRect(Rect{r.Right() - bw, r.Y, bw, r.Height}, s.Border)
	}
}

// DrawCircle fills and borders the circle inscribed in style.Rect.
func (t *DefaultTheme) DrawCircle(p Painter, s BoxStyle) {
	r := s.Rect.Inset(s.Margin)
	if r.Empty() {
		return
	}
	radius := min(r.Width, r.Height) / 2
	c := r.Center()
	if !s.Fill.Empty() {
		p.FillCircle(c, radius, s.Background)
	}
	if s.BorderWidth > 0 {
		p.StrokeCircle(c, radius, s.BorderWidth, s.Border)
	}
}

func fillRounded(p Painter, r Rect, radius int, c Color) {
	radius = min(radius, r.Width/2, r.Height/2)
	p.FillRect(Rect{r.X + radius, r.Y, r.Width - 2*radius, r.Height}, c)
	p.FillRect(Rect{r.X, r.Y + radius, radius, r.Height - 2*radius}, c)
	p.FillRect(Rect{r.Right() - radius, r.Y + radius, radius, r.Height - 2*radius}, c)
	p.Save()
	p.Clip(Rect{r.X, r.Y, radius, radius})
	p.FillCircle(Point{r.X + radius, r.Y + radius}, radius, c)
	p.Restore()
	p.Save()
	p.Clip(Rect{r.Right() - radius, r.Y, radius, radius})
	p.FillCircle(Point{r.Right() - radius, r.Y + radius}, radius, c)
	p.Restore()
	p.Save()
	p.Clip(Rect{r.X, r.Bottom() - radius, radius, radius})
	p.FillCircle(Point{r.X + radius, r.Bottom() - radius}, radius, c)
	p.Restore()
	p.Save()
	p.Clip(Rect{r.Right() - radius, r.Bottom() - radius, radius, radius})
	p.FillCircle(Point{r.Right() - radius, r.Bottom() - radius}, radius, c)
	p.Restore()
}
