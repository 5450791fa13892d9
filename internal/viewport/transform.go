// Package viewport maps between image and screen space and owns the pan/zoom
// state of the main canvas.
//
// Image coordinates range from (0, 0) at the top-left of the image to
// (width, height) in pixels. Screen coordinates are logical display points
// with the origin at the top-left of the window; the viewport rectangle is
// the part of the screen that shows the image.
package viewport

import (
	"pixel-editor/pkg/geometry"
)

// Transform is the translation and scale currently applied to the image.
// The translation is measured from the viewport center to the center of the
// image's on-screen footprint.
type Transform struct {
	XTranslation float32 `json:"x_translation"`
	YTranslation float32 `json:"y_translation"`
	Scale        float32 `json:"scale"`
}

// DefaultTransform is centered at 1:1.
func DefaultTransform() Transform {
	return Transform{Scale: 1}
}

// ImageRect returns the on-screen footprint of the whole image.
func ImageRect(t Transform, imageSize geometry.Size, vp geometry.Rect) geometry.Rect {
	center := vp.Center()
	width := imageSize.Width * t.Scale
	height := imageSize.Height * t.Scale
	return geometry.Rect{
		X:      center.X + t.XTranslation - width/2,
		Y:      center.Y + t.YTranslation - height/2,
		Width:  width,
		Height: height,
	}
}

// ImageToScreen converts image coordinates to screen coordinates.
func ImageToScreen(p geometry.Point, t Transform, imageSize geometry.Size, vp geometry.Rect) geometry.Point {
	r := ImageRect(t, imageSize, vp)
	return geometry.Point{
		X: r.X + p.X*t.Scale,
		Y: r.Y + p.Y*t.Scale,
	}
}

// ScreenToImage converts screen coordinates to image coordinates. It returns
// false for a degenerate transform (non-positive scale) or an image with a
// zero dimension, which is never drawn and has no image space to map into.
func ScreenToImage(p geometry.Point, t Transform, imageSize geometry.Size, vp geometry.Rect) (geometry.Point, bool) {
	if t.Scale <= 0 || imageSize.IsEmpty() {
		return geometry.Point{}, false
	}
	r := ImageRect(t, imageSize, vp)
	fracX := (p.X - r.X) / r.Width
	fracY := (p.Y - r.Y) / r.Height
	return geometry.Point{
		X: imageSize.Width * fracX,
		Y: imageSize.Height * fracY,
	}, true
}
