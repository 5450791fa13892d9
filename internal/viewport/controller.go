package viewport

import (
	"math"

	"pixel-editor/pkg/geometry"
)

// Margin is the fraction of the viewport, on each side, that the image may be
// panned into. At least 1-2*Margin of the viewport always shows image content.
const Margin = 0.25

// Controller owns the transform of one document and keeps it within the
// limits derived from the viewport.
type Controller struct {
	Transform Transform
	imageSize geometry.Size
}

// NewController creates a controller with the default transform.
func NewController(imageSize geometry.Size) *Controller {
	return &Controller{
		Transform: DefaultTransform(),
		imageSize: imageSize,
	}
}

// ImageSize returns the size of the image being viewed.
func (c *Controller) ImageSize() geometry.Size {
	return c.imageSize
}

// Reset restores the default transform for an image of the given size.
func (c *Controller) Reset(imageSize geometry.Size) {
	c.imageSize = imageSize
	c.Transform = DefaultTransform()
}

// ScaleLimits returns the allowed scale range for the viewport: zooming out
// stops once the image fits the viewport twice over, zooming in stops when a
// single image pixel covers half the viewport.
func (c *Controller) ScaleLimits(vp geometry.Rect) (minScale, maxScale float32) {
	minScale = 0.5 * min(vp.Width/c.imageSize.Width, vp.Height/c.imageSize.Height)
	maxScale = min(vp.Width, vp.Height) / 2
	return minScale, maxScale
}

// ApplyZoom multiplies the scale by zoomDelta, keeping the image point under
// zoomOrigin at the same screen position. Deltas that are not positive and
// finite are ignored.
func (c *Controller) ApplyZoom(zoomDelta float32, zoomOrigin geometry.Point, vp geometry.Rect) {
	if zoomDelta == 1 || !validZoomDelta(zoomDelta) || c.degenerate(vp) {
		return
	}

	before := c.Transform
	minScale, maxScale := c.ScaleLimits(vp)
	c.Transform.Scale = geometry.Clamp(c.Transform.Scale*zoomDelta, minScale, maxScale)

	origPos, ok := ScreenToImage(zoomOrigin, Transform{
		XTranslation: c.Transform.XTranslation,
		YTranslation: c.Transform.YTranslation,
		Scale:        before.Scale,
	}, c.imageSize, vp)
	if !ok {
		return
	}
	newPos, ok := ScreenToImage(zoomOrigin, c.Transform, c.imageSize, vp)
	if !ok {
		return
	}

	c.Transform.XTranslation -= (origPos.X - newPos.X) * c.Transform.Scale
	c.Transform.YTranslation -= (origPos.Y - newPos.Y) * c.Transform.Scale
}

// ApplyPan moves the image by a screen-space delta. The result is not clamped;
// call ClampToBounds once the frame's input has been applied.
func (c *Controller) ApplyPan(delta geometry.Point) {
	c.Transform.XTranslation += delta.X
	c.Transform.YTranslation += delta.Y
}

// ClampToBounds pulls the scale back into its limits and the translation back
// so the image cannot leave the viewport.
func (c *Controller) ClampToBounds(vp geometry.Rect) {
	if c.degenerate(vp) {
		return
	}

	minScale, maxScale := c.ScaleLimits(vp)
	c.Transform.Scale = geometry.Clamp(c.Transform.Scale, minScale, maxScale)

	minX, maxX := translationLimits(vp.Width, c.imageSize.Width*c.Transform.Scale)
	minY, maxY := translationLimits(vp.Height, c.imageSize.Height*c.Transform.Scale)
	c.Transform.XTranslation = geometry.Clamp(c.Transform.XTranslation, minX, maxX)
	c.Transform.YTranslation = geometry.Clamp(c.Transform.YTranslation, minY, maxY)
}

// TranslationLimits returns the allowed translation ranges for the current scale.
func (c *Controller) TranslationLimits(vp geometry.Rect) (minX, maxX, minY, maxY float32) {
	minX, maxX = translationLimits(vp.Width, c.imageSize.Width*c.Transform.Scale)
	minY, maxY = translationLimits(vp.Height, c.imageSize.Height*c.Transform.Scale)
	return minX, maxX, minY, maxY
}

func translationLimits(viewExtent, scaledExtent float32) (lo, hi float32) {
	lo = viewExtent*Margin - (viewExtent+scaledExtent)/2
	hi = viewExtent*(1-Margin) - (viewExtent-scaledExtent)/2
	return lo, hi
}

func validZoomDelta(d float32) bool {
	return d > 0 && !math.IsInf(float64(d), 0)
}

func (c *Controller) degenerate(vp geometry.Rect) bool {
	return c.imageSize.IsEmpty() || vp.IsEmpty()
}
