package lattice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchPaletteReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.toml")
	require.NoError(t, os.WriteFile(path, []byte("[normal]\nbg = \"#000\"\n"), 0o644))

	ui := NewTestContext()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, err := ui.WatchPalette(ctx, path)
	require.NoError(t, err)

	// unrelated files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[normal]\nbg = \"#ff0000\"\n"), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case u := <-updates:
			assert.Equal(t, path, u.Path)
			if u.Err != nil {
				continue
			}
			c, ok := u.Palette.Lookup(ColorBg, GroupNormal)
			if !ok || c != (Color{1, 0, 0, 1}) {
				continue
			}
			ui.ApplyPaletteUpdate(u)
			assert.Same(t, u.Palette, ui.Palette())
			return
		case <-timeout:
			t.Fatal("no palette update within 5s")
		}
	}
}

func TestWatchPaletteClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.toml")
	ui := NewTestContext()
	ctx, cancel := context.WithCancel(context.Background())
	updates, err := ui.WatchPalette(ctx, path)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-updates:
		for ok {
			_, ok = <-updates
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}

	ui.Update(0)
	assert.Nil(t, ui.paletteUpdates)
}

func TestWatchPaletteMissingDir(t *testing.T) {
	ui := NewTestContext()
	_, err := ui.WatchPalette(context.Background(), filepath.Join(t.TempDir(), "nope", "palette.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lattice: watch palette")
	assert.Nil(t, ui.paletteUpdates)
}

func TestApplyPaletteUpdateError(t *testing.T) {
	ui := NewTestContext()
	before := ui.Palette()
	ui.ApplyPaletteUpdate(PaletteUpdate{Path: "p.toml", Err: errors.New("broken")})
	assert.Same(t, before, ui.Palette())
}
