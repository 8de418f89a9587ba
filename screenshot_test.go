package lattice

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.RGBA{0, 0, 128, 128})

	require.NoError(t, PNGExporter{Dir: dir}.Export("panel", img))

	f, err := os.Open(filepath.Join(dir, "panel.png"))
	require.NoError(t, err)
	defer f.Close()
	got, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), got.Bounds())
	r, g, b, a := got.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0, 0, 128 * 0x101, 128 * 0x101}, []uint32{r, g, b, a})
}

func TestToNRGBAUnpremultiplies(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 7))
	img.Set(6, 6, color.RGBA{0, 0, 128, 128})

	n := toNRGBA(img)
	assert.Equal(t, image.Rect(0, 0, 2, 2), n.Bounds())
	assert.Equal(t, color.NRGBA{0, 0, 255, 128}, n.NRGBAAt(1, 1))

	assert.Same(t, n, toNRGBA(n))
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"after-click", "after-click"},
		{"main menu/open", "main_menu_open"},
		{" v1.2 ", "v1.2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLabel(tt.in), tt.in)
	}
}
