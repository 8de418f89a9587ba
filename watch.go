package lattice

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// PaletteUpdate is the result of reloading a watched palette file.
type PaletteUpdate struct {
	Path    string
	Palette *Palette
	Err     error
}

// WatchPalette reloads the TOML palette at path whenever it is written,
// created or renamed into place, and sends the result on the returned
// channel. The directory is watched rather than the file so editors that
// replace files are seen. The watcher stops and the channel closes when ctx
// is done.
//
// Context.Update applies the updates of the most recent WatchPalette call,
// so callers driving Update need not read the channel themselves.
func (c *Context) WatchPalette(ctx context.Context, path string) (<-chan PaletteUpdate, error) {
	path = filepath.Clean(path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("lattice: watch palette: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("lattice: watch palette: %w", err)
	}

	out := make(chan PaletteUpdate, 1)
	logger := c.logger
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
					continue
				}
				p, err := LoadPalette(path)
				u := PaletteUpdate{Path: path, Palette: p, Err: err}
				// Keep only the newest result if the UI has not caught up.
				select {
				case <-out:
				default:
				}
				select {
				case out <- u:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("palette watcher", "path", path, "err", err)
			}
		}
	}()
	c.paletteUpdates = out
	return out, nil
}

// ApplyPaletteUpdate installs a reloaded palette as the global palette. Failed
// reloads are logged and leave the current palette in place.
func (c *Context) ApplyPaletteUpdate(u PaletteUpdate) {
	if u.Err != nil {
		c.logger.Error("palette reload", "path", u.Path, "err", u.Err)
		return
	}
	c.logger.Info("palette reloaded", "path", u.Path, "colors", u.Palette.Len())
	c.SetPalette(u.Palette)
}

// pollPalette applies a pending palette update without blocking.
func (c *Context) pollPalette() {
	if c.paletteUpdates == nil {
		return
	}
	select {
	case u, ok := <-c.paletteUpdates:
		if !ok {
			c.paletteUpdates = nil
			return
		}
		c.ApplyPaletteUpdate(u)
	default:
	}
}
