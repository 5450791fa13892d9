// Package image provides the editable pixel buffer, image loading and saving,
// and compositing of the buffer for display.
package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Default document dimensions.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// ErrBufferSize is returned when pixel data does not match the stated dimensions.
var ErrBufferSize = errors.New("pixel data length does not match dimensions")

// PixelBuffer is an owned rectangular grid of unpremultiplied RGBA bytes,
// stored row-major with 4 bytes per pixel. Its length always equals
// width*height*4; a different size means a new buffer.
type PixelBuffer struct {
	pix    []byte
	width  int
	height int
}

// NewPixelBuffer creates a fully transparent buffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixelBuffer(width, height int) *PixelBuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &PixelBuffer{
		pix:    make([]byte, width*height*4),
		width:  width,
		height: height,
	}
}

// NewFilled creates a buffer with every pixel set to c.
func NewFilled(width, height int, c color.RGBA) *PixelBuffer {
	b := NewPixelBuffer(width, height)
	b.Fill(c)
	return b
}

// Default returns the blank document: 800x600 opaque white.
func Default() *PixelBuffer {
	return NewFilled(DefaultWidth, DefaultHeight, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

// FromPix wraps existing RGBA bytes. The slice is owned by the returned
// buffer afterwards.
func FromPix(width, height int, pix []byte) (*PixelBuffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrBufferSize, width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrBufferSize, len(pix), width, height)
	}
	return &PixelBuffer{pix: pix, width: width, height: height}, nil
}

// FromImage copies any image into a new buffer, converting to unpremultiplied RGBA.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &PixelBuffer{pix: dst.Pix, width: bounds.Dx(), height: bounds.Dy()}
}

// Width returns the width in pixels.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the height in pixels.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Pix returns the raw RGBA bytes. Callers must not retain the slice across a
// document replacement.
func (b *PixelBuffer) Pix() []byte {
	return b.pix
}

// IsEmpty returns true if the buffer has no pixels.
func (b *PixelBuffer) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (b *PixelBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Offset returns the index of the first byte of pixel (x, y). The caller is
// responsible for bounds checking.
func (b *PixelBuffer) Offset(x, y int) int {
	return (y*b.width + x) * 4
}

// At returns the color of the pixel at (x, y), or transparent black when out of bounds.
func (b *PixelBuffer) At(x, y int) color.RGBA {
	if !b.InBounds(x, y) {
		return color.RGBA{}
	}
	i := b.Offset(x, y)
	return color.RGBA{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}
}

// Set writes all four channels of the pixel at (x, y). Out-of-bounds writes are ignored.
func (b *PixelBuffer) Set(x, y int, c color.RGBA) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.Offset(x, y)
	b.pix[i+0] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
}

// Fill sets every pixel to c.
func (b *PixelBuffer) Fill(c color.RGBA) {
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i+0] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
		b.pix[i+3] = c.A
	}
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]byte, len(b.pix))
	copy(pix, b.pix)
	return &PixelBuffer{pix: pix, width: b.width, height: b.height}
}

// AsImage returns an image view sharing the buffer's memory. The view is
// only valid until the buffer is next replaced.
func (b *PixelBuffer) AsImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.pix,
		Stride: b.width * 4,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}
