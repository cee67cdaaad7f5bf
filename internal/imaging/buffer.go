package imaging

import (
	"bytes"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// ErrEmptyImage is returned when an operation receives a nil or zero-area image.
var ErrEmptyImage = errors.New("image is empty")

// Buffer is an immutable 8-bit RGB raster.
//
// Pixels are stored row-major in an *image.NRGBA whose alpha channel is
// always 255, so a Buffer behaves as a 3-channel image everywhere in the
// editor. A Buffer has no exported mutators; every transform returns a new one.
type Buffer struct {
	img *image.NRGBA
}

// NewBuffer copies src into a new Buffer with its origin at (0,0).
//
// Any alpha information in src is dropped: the colour channels are kept
// as stored (non-premultiplied) and alpha is set to fully opaque.
func NewBuffer(src image.Image) (*Buffer, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return wrap(imaging.Clone(src)), nil
}

// wrap takes ownership of img and forces it opaque.
func wrap(img *image.NRGBA) *Buffer {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return &Buffer{img: img}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.img.Rect.Dy()
}

// Image returns a read-only view of the pixels. Callers must not modify it.
func (b *Buffer) Image() image.Image {
	return b.img
}

// RGBAt returns the colour channels at (x, y). Out-of-range coordinates
// return black.
func (b *Buffer) RGBAt(x, y int) (r, g, bl uint8) {
	if !(image.Point{X: x, Y: y}).In(b.img.Rect) {
		return 0, 0, 0
	}
	i := b.img.PixOffset(x, y)
	return b.img.Pix[i], b.img.Pix[i+1], b.img.Pix[i+2]
}

// Clone returns a deep copy of the buffer. Cloning nil returns nil.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	pix := make([]uint8, len(b.img.Pix))
	copy(pix, b.img.Pix)
	return &Buffer{img: &image.NRGBA{Pix: pix, Stride: b.img.Stride, Rect: b.img.Rect}}
}

// Equal reports whether both buffers have the same dimensions and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.img.Rect != other.img.Rect {
		return false
	}
	w := b.Width() * 4
	for y := 0; y < b.Height(); y++ {
		ro := b.img.Pix[y*b.img.Stride : y*b.img.Stride+w]
		rt := other.img.Pix[y*other.img.Stride : y*other.img.Stride+w]
		if !bytes.Equal(ro, rt) {
			return false
		}
	}
	return true
}

// empty reports whether b cannot be used as transform input.
func (b *Buffer) empty() bool {
	return b == nil || b.img == nil || b.img.Rect.Empty()
}
