package lattice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#fff", ColorWhite, true},
		{"#000000", ColorBlack, true},
		{"#ff000080", Color{1, 0, 0, 128.0 / 255}, true},
		{"  #00ff00 ", Color{0, 1, 0, 1}, true},
		{"#ff", Color{}, false},
		{"#gggggg", Color{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.ok {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got, tt.in)
		} else {
			assert.Error(t, err, tt.in)
		}
	}
}

func TestColorHexAndRGBA(t *testing.T) {
	c := Color{1, 0.5, 0, 0.5}
	assert.Equal(t, "#ff800080", c.Hex())
	rgba := c.RGBA()
	assert.Equal(t, uint8(128), rgba.R)
	assert.Equal(t, uint8(64), rgba.G)
	assert.Equal(t, uint8(128), rgba.A)

	back, err := ParseColor(ColorWhite.Hex())
	require.NoError(t, err)
	assert.Equal(t, ColorWhite, back)
}

func TestPaletteLookupAndFallback(t *testing.T) {
	p := NewPalette()
	p.Set(ColorText, GroupNormal, ColorBlack)
	p.Set(ColorText, GroupDisabled, ColorWhite)

	c, ok := p.Lookup(ColorText, GroupDisabled)
	assert.True(t, ok)
	assert.Equal(t, ColorWhite, c)
	_, ok = p.Lookup(ColorText, GroupActive)
	assert.False(t, ok)
	assert.Equal(t, ColorBlack, p.Color(ColorText, GroupActive))
	assert.Equal(t, ColorTransparent, p.Color(ColorBg, GroupActive))
	assert.Equal(t, 2, p.Len())

	var nilPalette *Palette
	_, ok = nilPalette.Lookup(ColorBg, GroupNormal)
	assert.False(t, ok)
	assert.Zero(t, nilPalette.Len())

	clone := p.Clone()
	clone.Set(ColorBg, GroupNormal, ColorWhite)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 3, clone.Len())
}

func TestPaletteTOML(t *testing.T) {
	data := []byte(`
[normal]
bg = "#202020"
text = "#fff"

[checked]
border = "#ff0000"
`)
	p, err := ParsePalette(data)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	c, _ := p.Lookup(ColorBorder, GroupChecked)
	assert.Equal(t, Color{1, 0, 0, 1}, c)

	out, err := MarshalPalette(p)
	require.NoError(t, err)
	again, err := ParsePalette(out)
	require.NoError(t, err)
	assert.Equal(t, p, again)

	path := filepath.Join(t.TempDir(), "palette.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	loaded, err := LoadPalette(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestPaletteTOMLErrors(t *testing.T) {
	for _, data := range []string{
		"[hover]\nbg = \"#fff\"",
		"[normal]\nsky = \"#fff\"",
		"[normal]\nbg = \"white\"",
		"[normal",
	} {
		_, err := ParsePalette([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestColorAndGroupNames(t *testing.T) {
	for id := ColorID(0); id < numColorIDs; id++ {
		got, ok := ParseColorID(id.String())
		assert.True(t, ok)
		assert.Equal(t, id, got)
	}
	for g := GroupID(0); g < numGroupIDs; g++ {
		got, ok := ParseGroupID(g.String())
		assert.True(t, ok)
		assert.Equal(t, g, got)
	}
	assert.Equal(t, "color(42)", ColorID(42).String())
	assert.Equal(t, "group(9)", GroupID(9).String())
}

func TestThemeFlags(t *testing.T) {
	f, ok := ParseFillFlags("solid|blend")
	require.True(t, ok)
	assert.Equal(t, FillSolid|FillBlend, f)
	assert.Equal(t, "solid|blend", f.String())
	_, ok = ParseFillFlags("gradient")
	assert.False(t, ok)

	b, ok := ParseBorderFlags("left | top")
	require.True(t, ok)
	assert.Equal(t, BorderLeft|BorderTop, b)
	assert.Equal(t, "top|left", b.String())
	assert.True(t, BorderFlags(0).Has(BorderRight), "no flags means every side")
	assert.False(t, b.Has(BorderRight))
}

func TestSetThemeDamagesWindows(t *testing.T) {
	ui := NewTestContext()
	win, _ := newTestWindow(t, ui, Size{20, 20})
	ui.SetTheme(nil)
	assert.Empty(t, win.Damaged())

	theme := NewDefaultTheme()
	theme.SetPalette(nil)
	require.NotNil(t, theme.Palette())
	ui.SetTheme(theme)
	assert.Equal(t, DamageArray{{0, 0, 20, 20}}, win.Damaged())
}
