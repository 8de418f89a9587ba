// Package fbdev provides a lattice Screen drawing to a Linux framebuffer
// device such as /dev/fb0.
//
// Widgets paint into an RGBA back buffer; Flip converts only the damaged
// rectangles to the device pixel format and writes them to the mapped
// framebuffer memory.
package fbdev

import (
	"encoding/binary"
	"fmt"
	"image"
)

// Bitfield locates one color channel inside a device pixel.
type Bitfield struct {
	Offset, Length uint32
}

// PixelFormat describes the device pixel layout. Pixels are stored little
// endian.
type PixelFormat struct {
	BitsPerPixel            uint32
	Red, Green, Blue, Alpha Bitfield
}

// Common formats.
var (
	FormatXRGB8888 = PixelFormat{BitsPerPixel: 32, Red: Bitfield{16, 8}, Green: Bitfield{8, 8}, Blue: Bitfield{0, 8}}
	FormatARGB8888 = PixelFormat{BitsPerPixel: 32, Red: Bitfield{16, 8}, Green: Bitfield{8, 8}, Blue: Bitfield{0, 8}, Alpha: Bitfield{24, 8}}
	FormatRGB565   = PixelFormat{BitsPerPixel: 16, Red: Bitfield{11, 5}, Green: Bitfield{5, 6}, Blue: Bitfield{0, 5}}
)

func (f PixelFormat) String() string {
	return fmt.Sprintf("%dbpp r%d:%d g%d:%d b%d:%d a%d:%d", f.BitsPerPixel,
		f.Red.Offset, f.Red.Length, f.Green.Offset, f.Green.Length,
		f.Blue.Offset, f.Blue.Length, f.Alpha.Offset, f.Alpha.Length)
}

// Validate reports formats Flip cannot write.
func (f PixelFormat) Validate() error {
	switch f.BitsPerPixel {
	case 16, 32:
		return nil
	}
	return fmt.Errorf("fbdev: unsupported pixel format %s", f)
}

func (f PixelFormat) bytesPerPixel() int { return int(f.BitsPerPixel / 8) }

func channel(v uint8, b Bitfield) uint32 {
	if b.Length == 0 {
		return 0
	}
	return uint32(v) >> (8 - b.Length) << b.Offset
}

// Pack converts an 8-bit per channel color to a device pixel value.
func (f PixelFormat) Pack(r, g, b, a uint8) uint32 {
	return channel(r, f.Red) | channel(g, f.Green) | channel(b, f.Blue) | channel(a, f.Alpha)
}

// Blit converts r of src into dst, a framebuffer with the given stride.
// r must lie inside both src and the framebuffer.
func Blit(dst []byte, stride int, f PixelFormat, src *image.RGBA, r image.Rectangle) {
	bpp := f.bytesPerPixel()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		s := src.PixOffset(r.Min.X, y)
		d := y*stride + r.Min.X*bpp
		for x := r.Min.X; x < r.Max.X; x++ {
			px := src.Pix[s : s+4 : s+4]
			v := f.Pack(px[0], px[1], px[2], px[3])
			switch bpp {
			case 4:
				binary.LittleEndian.PutUint32(dst[d:], v)
			case 2:
				binary.LittleEndian.PutUint16(dst[d:], uint16(v))
			}
			s += 4
			d += bpp
		}
	}
}
