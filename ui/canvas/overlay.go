package canvas

import (
	"pixel-editor/internal/app"
	"pixel-editor/internal/tools"
	"pixel-editor/pkg/geometry"
)

// minCursorRadius is the screen radius below which the brush outline is
// replaced by a crosshair.
const minCursorRadius = 3

// cursorOverlay is the brush outline drawn under the pointer, in logical
// screen coordinates.
type cursorOverlay struct {
	Center geometry.Point
	Radius float32
}

// brushCursor returns the outline of the brush at the pointer, or false when
// no outline should be drawn.
func brushCursor(s *app.State, pos geometry.Point, hovering bool) (cursorOverlay, bool) {
	if !hovering || s.Tool != tools.ToolBrush {
		return cursorOverlay{}, false
	}
	return cursorOverlay{
		Center: pos,
		Radius: s.Brush.Diameter / 2 * s.View.Transform.Scale,
	}, true
}
