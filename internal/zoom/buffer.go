package zoom

import (
	"errors"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
)

// ErrBufferNotReady is returned by reads from a buffer that holds no image.
var ErrBufferNotReady = errors.New("pixel buffer not initialized")

// PixelBuffer is the offscreen copy of a sample image used for random-access
// colour reads. It is filled once per image load with a single bulk copy and
// then read by index; it is never mutated afterwards.
type PixelBuffer struct {
	img *image.RGBA
}

// NewPixelBuffer copies src into a zero-origin RGBA buffer.
func NewPixelBuffer(src image.Image) *PixelBuffer {
	if src == nil || src.Bounds().Empty() {
		return &PixelBuffer{}
	}
	rgba := clone.AsRGBA(src)
	// Pix offsets are relative to Rect.Min, so translating the rectangle
	// re-bases the buffer without copying.
	rgba.Rect = rgba.Rect.Sub(rgba.Rect.Min)
	return &PixelBuffer{img: rgba}
}

// Ready reports whether the buffer holds pixel data.
func (b *PixelBuffer) Ready() bool {
	return b != nil && b.img != nil && len(b.img.Pix) > 0
}

// Bounds returns the buffer rectangle, which always starts at the origin.
func (b *PixelBuffer) Bounds() image.Rectangle {
	if !b.Ready() {
		return image.Rectangle{}
	}
	return b.img.Rect
}

// Image exposes the underlying buffer for bulk drawing. Callers must not
// modify it.
func (b *PixelBuffer) Image() *image.RGBA {
	if !b.Ready() {
		return nil
	}
	return b.img
}

// RGBAt returns the colour at (x, y). Coordinates are clamped to
// [0, dim-1], so edge reads repeat the border pixel instead of failing.
func (b *PixelBuffer) RGBAt(x, y int) (color.RGBA, error) {
	if !b.Ready() {
		return color.RGBA{}, ErrBufferNotReady
	}
	r := b.img.Rect
	x = clamp(x, 0, r.Dx()-1)
	y = clamp(y, 0, r.Dy()-1)
	i := y*b.img.Stride + x*4
	p := b.img.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
