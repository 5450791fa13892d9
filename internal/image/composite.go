package image

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Composite renders the buffer for display. The destination is filled with
// the background color, then the buffer is scaled into the screen rectangle
// with nearest-neighbour sampling (so zoomed-in pixels stay crisp) and drawn
// over the background honoring its alpha. Parts of the screen rectangle that
// fall outside dst are clipped.
func Composite(dst *image.RGBA, b *PixelBuffer, screen image.Rectangle, background color.Color) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	if b == nil || b.IsEmpty() || screen.Empty() {
		return
	}
	if !screen.Overlaps(dst.Bounds()) {
		return
	}

	src := b.AsImage()
	draw.NearestNeighbor.Scale(dst, screen, src, src.Bounds(), draw.Over, nil)
}
