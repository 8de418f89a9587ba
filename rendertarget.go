package lattice

import (
	"image"
)

// --- Offscreen group pool ---

// imagePool manages reusable offscreen *image.RGBA buffers keyed by their
// bounds. Alpha groups always match the painter's base image, so after the
// first translucent child Acquire/Release are allocation free.
type imagePool struct {
	buckets map[image.Rectangle][]*image.RGBA
}

// Acquire returns a cleared image covering bounds.
func (p *imagePool) Acquire(bounds image.Rectangle) *image.RGBA {
	if p.buckets != nil {
		if stack := p.buckets[bounds]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[bounds] = stack[:len(stack)-1]
			clear(img.Pix)
			return img
		}
	}
	return image.NewRGBA(bounds)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *imagePool) Release(img *image.RGBA) {
	if img == nil {
		return
	}
	if p.buckets == nil {
		p.buckets = make(map[image.Rectangle][]*image.RGBA)
	}
	b := img.Bounds()
	p.buckets[b] = append(p.buckets[b], img)
}

// Len returns the number of pooled images.
func (p *imagePool) Len() int {
	n := 0
	for _, s := range p.buckets {
		n += len(s)
	}
	return n
}
