// Package brush paints circular strokes into a pixel buffer.
package brush

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	pximage "pixel-editor/internal/image"
	"pixel-editor/pkg/geometry"
)

// DefaultDiameter is the diameter of a fresh brush, in pixels.
const DefaultDiameter = 20

// Mode selects how a brush sample is applied to the buffer.
type Mode int

const (
	// ModeSmooth paints an anti-aliased circle, blending each pixel by the
	// fraction of it the circle covers.
	ModeSmooth Mode = iota
	// ModeHard writes the color to the single pixel under the sample.
	ModeHard
)

func (m Mode) String() string {
	switch m {
	case ModeSmooth:
		return "smooth"
	case ModeHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseMode parses the name returned by Mode.String, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "smooth", "":
		return ModeSmooth, nil
	case "hard":
		return ModeHard, nil
	default:
		return ModeSmooth, fmt.Errorf("unknown brush mode %q", s)
	}
}

// Settings are the user-adjustable brush parameters.
type Settings struct {
	Diameter float32 // in image pixels, never negative
	Mode     Mode
}

// DefaultSettings returns a smooth brush of the default diameter.
func DefaultSettings() Settings {
	return Settings{Diameter: DefaultDiameter, Mode: ModeSmooth}
}

// Apply paints one brush sample centered at the given image position using
// the policy selected by s.Mode.
func Apply(buf *pximage.PixelBuffer, s Settings, center geometry.Point, c color.RGBA) {
	switch s.Mode {
	case ModeHard:
		ApplyHard(buf, center, c)
	default:
		ApplySmooth(buf, s, center, c)
	}
}

// ApplySmooth paints an anti-aliased disc of diameter s.Diameter centered at
// the given image position. Each pixel in the disc's bounding box is treated
// as a unit square; its red, green and blue channels move towards c by the
// fraction of that square the disc covers. Alpha is left unchanged.
//
// c must be fully opaque: blending translucent paint is not supported and
// panics. Pixels outside the buffer are skipped.
func ApplySmooth(buf *pximage.PixelBuffer, s Settings, center geometry.Point, c color.RGBA) {
	if c.A != 255 {
		panic(fmt.Sprintf("brush: color %v is not opaque", c))
	}
	if buf == nil || buf.IsEmpty() || s.Diameter <= 0 || !center.IsFinite() {
		return
	}

	radius := s.Diameter / 2
	maxX := float32(buf.Width() - 1)
	maxY := float32(buf.Height() - 1)

	// Nothing to do for a disc entirely off the buffer.
	if center.X+radius < 0 || center.Y+radius < 0 ||
		center.X-radius > maxX+1 || center.Y-radius > maxY+1 {
		return
	}

	x1 := int(math.Floor(float64(geometry.Clamp(center.X-radius, 0, maxX))))
	y1 := int(math.Floor(float64(geometry.Clamp(center.Y-radius, 0, maxY))))
	x2 := int(math.Ceil(float64(geometry.Clamp(center.X+radius, 0, maxX))))
	y2 := int(math.Ceil(float64(geometry.Clamp(center.Y+radius, 0, maxY))))

	pix := buf.Pix()
	newR, newG, newB := float32(c.R), float32(c.G), float32(c.B)
	for row := y1; row <= y2; row++ {
		for col := x1; col <= x2; col++ {
			pixelCenter := geometry.Pt(float32(col)+0.5, float32(row)+0.5)
			coverage := geometry.SquareCircleIntersection(center, radius, pixelCenter, 1)
			if coverage <= 0 {
				continue
			}
			coverage = min(coverage, 1)

			i := buf.Offset(col, row)
			pix[i+0] = blend(coverage, pix[i+0], newR)
			pix[i+1] = blend(coverage, pix[i+1], newG)
			pix[i+2] = blend(coverage, pix[i+2], newB)
		}
	}
}

// ApplyHard writes c to the pixel containing the given image position.
func ApplyHard(buf *pximage.PixelBuffer, center geometry.Point, c color.RGBA) {
	if buf == nil || !center.IsFinite() {
		return
	}
	col := int(math.Floor(float64(center.X)))
	row := int(math.Floor(float64(center.Y)))
	buf.Set(col, row, c)
}

func blend(coverage float32, old uint8, paint float32) uint8 {
	v := math.Round(float64(geometry.Lerp(coverage, float32(old), paint)))
	return uint8(max(0, min(255, v)))
}
