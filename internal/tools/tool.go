// Package tools turns pointer input on the main canvas into edits of the
// image or of the view transform.
package tools

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"pixel-editor/internal/brush"
	pximage "pixel-editor/internal/image"
	"pixel-editor/internal/viewport"
	"pixel-editor/pkg/geometry"
)

// MaxFrameDelta is the longest gap between two samples that still counts as
// one continuous drag. Longer gaps mean the application was stalled or the
// window lost focus, and the accumulated delta is not trusted.
const MaxFrameDelta = time.Second

// Tool is the active editing tool.
type Tool int

const (
	ToolPan Tool = iota
	ToolBrush
)

// Tools lists every tool in display order.
var Tools = []Tool{ToolPan, ToolBrush}

func (t Tool) String() string {
	switch t {
	case ToolPan:
		return "Pan"
	case ToolBrush:
		return "Brush"
	default:
		return "Unknown"
	}
}

// ParseTool parses the name returned by Tool.String, case-insensitively.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if strings.EqualFold(strings.TrimSpace(s), t.String()) {
			return t, nil
		}
	}
	return ToolPan, fmt.Errorf("unknown tool %q", s)
}

// Context is the editor state a tool operates on.
type Context struct {
	Image    *pximage.PixelBuffer
	View     *viewport.Controller
	Viewport geometry.Rect
	Brush    brush.Settings
	Color    color.RGBA

	// MaxFrameDelta overrides the package default when positive.
	MaxFrameDelta time.Duration
}

// HandleInput applies one pointer sample with this tool. It reports whether
// the image was painted.
func (t Tool) HandleInput(sample PointerSample, ctx Context) bool {
	switch t {
	case ToolPan:
		handlePan(sample, ctx)
		return false
	case ToolBrush:
		return handleBrush(sample, ctx)
	default:
		return false
	}
}

func handlePan(sample PointerSample, ctx Context) {
	if ctx.View == nil || !sample.Dragging || sample.Resumed {
		return
	}
	limit := ctx.MaxFrameDelta
	if limit <= 0 {
		limit = MaxFrameDelta
	}
	if sample.DT >= limit {
		return
	}
	ctx.View.ApplyPan(sample.Delta)
}

func handleBrush(sample PointerSample, ctx Context) bool {
	if !sample.HasPos || !sample.Down || ctx.Image == nil || ctx.View == nil {
		return false
	}
	pos, ok := viewport.ScreenToImage(sample.Pos, ctx.View.Transform, ctx.View.ImageSize(), ctx.Viewport)
	if !ok {
		return false
	}
	brush.Apply(ctx.Image, ctx.Brush, pos, ctx.Color)
	return true
}
