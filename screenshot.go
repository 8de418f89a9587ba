package lattice

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

// ImageExporter stores a rendered image under a name.
type ImageExporter interface {
	Export(name string, img image.Image) error
}

// PNGExporter writes images as PNG files into Dir (the working directory
// when empty). Names get a .png extension if they have none.
type PNGExporter struct {
	Dir string
}

// Export encodes img to Dir/name.
func (e PNGExporter) Export(name string, img image.Image) error {
	if filepath.Ext(name) == "" {
		name += ".png"
	}
	path := name
	if e.Dir != "" {
		if err := os.MkdirAll(e.Dir, 0o755); err != nil {
			return fmt.Errorf("lattice: export: %w", err)
		}
		path = filepath.Join(e.Dir, name)
	}
	return writePNG(path, toNRGBA(img))
}

// toNRGBA converts premultiplied pixels to straight alpha for encoding.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Screenshot queues a labeled screenshot of every visible window, taken at
// the end of the next Context.Draw. Files are written to ScreenshotDir with
// a timestamped name.
func (c *Context) Screenshot(label string) {
	c.screenshotQueue = append(c.screenshotQueue, label)
}

// flushScreenshots paints each visible top-level window for every queued
// label.
func (c *Context) flushScreenshots() {
	if len(c.screenshotQueue) == 0 {
		return
	}
	defer func() { c.screenshotQueue = c.screenshotQueue[:0] }()

	if err := os.MkdirAll(c.ScreenshotDir, 0o755); err != nil {
		c.logger.Error("screenshot", "dir", c.ScreenshotDir, "err", err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, w := range c.windows {
		if !w.Visible() || w.parent != nil || w.screen == nil {
			continue
		}
		img := toNRGBA(w.PaintImage())
		for _, label := range c.screenshotQueue {
			path := filepath.Join(c.ScreenshotDir,
				fmt.Sprintf("%s_%s_%s.png", stamp, sanitizeLabel(w.name), sanitizeLabel(label)))
			if err := writePNG(path, img); err != nil {
				c.logger.Error("screenshot", "err", err)
			}
		}
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
