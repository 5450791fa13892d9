// Package canvas provides the main editing canvas: the document drawn under
// the current view transform, with pointer input routed to the active tool.
package canvas

import (
	"image"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"pixel-editor/internal/app"
	pximage "pixel-editor/internal/image"
	"pixel-editor/internal/tools"
	"pixel-editor/internal/viewport"
	"pixel-editor/pkg/colorutil"
	"pixel-editor/pkg/geometry"
)

const defaultZoomStep = 1.1

// EditorCanvas displays the document and feeds pointer input to the state.
type EditorCanvas struct {
	widget.BaseWidget

	// mu serializes input handling against raster drawing, which fyne runs
	// on different goroutines.
	mu sync.Mutex

	state    *app.State
	tracker  *tools.Tracker
	zoomStep float32
	now      func() time.Time

	raster *fynecanvas.Raster

	// Last pointer position for the brush cursor
	hover    geometry.Point
	hovering bool

	// Last rendered output for inspection
	lastOutput *image.RGBA

	onPointer func(pos geometry.Point, inside bool)
}

var (
	_ fyne.Draggable    = (*EditorCanvas)(nil)
	_ fyne.Scrollable   = (*EditorCanvas)(nil)
	_ desktop.Mouseable = (*EditorCanvas)(nil)
	_ desktop.Hoverable = (*EditorCanvas)(nil)
)

// NewEditorCanvas creates a canvas bound to the editor state.
func NewEditorCanvas(state *app.State, zoomStep, dragThreshold float32) *EditorCanvas {
	if zoomStep <= 1 {
		zoomStep = defaultZoomStep
	}
	tracker := tools.NewTracker()
	if dragThreshold >= 0 {
		tracker.DragThreshold = dragThreshold
	}
	ec := &EditorCanvas{
		state:    state,
		tracker:  tracker,
		zoomStep: zoomStep,
		now:      time.Now,
	}
	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.ExtendBaseWidget(ec)
	return ec
}

// Do runs fn with exclusive access to the state, then redraws. Commands that
// change the document from outside the canvas go through here. State event
// listeners run under the same lock and must not call Do.
func (ec *EditorCanvas) Do(fn func(s *app.State)) {
	ec.mu.Lock()
	fn(ec.state)
	ec.mu.Unlock()
	ec.Refresh()
}

// Interrupt tells the canvas that pointer input was interrupted, e.g. by a
// modal dialog, so a drag in progress must not jump when it resumes.
func (ec *EditorCanvas) Interrupt() {
	ec.mu.Lock()
	ec.tracker.Interrupt()
	ec.mu.Unlock()
}

// OnPointer registers a callback for pointer motion, in image coordinates.
func (ec *EditorCanvas) OnPointer(callback func(pos geometry.Point, inside bool)) {
	ec.onPointer = callback
}

// GetRenderedOutput returns the most recent raster output.
func (ec *EditorCanvas) GetRenderedOutput() *image.RGBA {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.lastOutput
}

// Refresh redraws the canvas.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
}

// Resize lays out the canvas and pulls the view back into its new limits.
func (ec *EditorCanvas) Resize(size fyne.Size) {
	ec.BaseWidget.Resize(size)
	ec.raster.Resize(size)
	ec.frame(tools.PointerSample{}, 0)
}

// MouseDown starts a gesture with the primary button.
func (ec *EditorCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ec.mu.Lock()
	sample := ec.tracker.Press(toPoint(ev.Position), ec.now())
	ec.mu.Unlock()
	ec.frame(sample, 0)
}

// MouseUp ends the gesture started by MouseDown.
func (ec *EditorCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ec.mu.Lock()
	if !ec.tracker.Down() {
		ec.mu.Unlock()
		return
	}
	sample := ec.tracker.Release(toPoint(ev.Position), ec.now())
	ec.mu.Unlock()
	ec.frame(sample, 0)
}

// Dragged continues a gesture.
func (ec *EditorCanvas) Dragged(ev *fyne.DragEvent) {
	ec.mu.Lock()
	sample := ec.tracker.Move(toPoint(ev.Position), ec.now())
	ec.mu.Unlock()
	ec.frame(sample, 0)
}

// DragEnd releases the gesture if MouseUp was not delivered.
func (ec *EditorCanvas) DragEnd() {
	ec.mu.Lock()
	if !ec.tracker.Down() {
		ec.mu.Unlock()
		return
	}
	sample := ec.tracker.Release(ec.hover, ec.now())
	ec.mu.Unlock()
	ec.frame(sample, 0)
}

// MouseIn implements desktop.Hoverable.
func (ec *EditorCanvas) MouseIn(ev *desktop.MouseEvent) {
	ec.MouseMoved(ev)
}

// MouseMoved tracks the hover position for the brush cursor.
func (ec *EditorCanvas) MouseMoved(ev *desktop.MouseEvent) {
	ec.mu.Lock()
	sample := ec.tracker.Move(toPoint(ev.Position), ec.now())
	ec.mu.Unlock()
	ec.frame(sample, 0)
}

// MouseOut hides the brush cursor.
func (ec *EditorCanvas) MouseOut() {
	ec.mu.Lock()
	sample := ec.tracker.Leave(ec.now())
	ec.mu.Unlock()
	ec.frame(sample, 0)
}

// Scrolled zooms around the pointer.
func (ec *EditorCanvas) Scrolled(ev *fyne.ScrollEvent) {
	var delta float32
	switch {
	case ev.Scrolled.DY > 0:
		delta = ec.zoomStep
	case ev.Scrolled.DY < 0:
		delta = 1 / ec.zoomStep
	default:
		return
	}
	ec.frame(tools.PointerSample{Pos: toPoint(ev.Position), HasPos: true}, delta)
}

// ZoomIn zooms around the view center.
func (ec *EditorCanvas) ZoomIn() {
	ec.Do(func(s *app.State) { s.ZoomBy(ec.zoomStep) })
}

// ZoomOut zooms out around the view center.
func (ec *EditorCanvas) ZoomOut() {
	ec.Do(func(s *app.State) { s.ZoomBy(1 / ec.zoomStep) })
}

// frame runs one frame of input through the state and redraws.
func (ec *EditorCanvas) frame(sample tools.PointerSample, zoomDelta float32) {
	ec.mu.Lock()
	ec.hover = sample.Pos
	ec.hovering = sample.HasPos
	vp := ec.viewportRect()
	ec.state.HandleFrame(app.Frame{Viewport: vp, Pointer: sample, ZoomDelta: zoomDelta})

	var imgPos geometry.Point
	inside := false
	if sample.HasPos {
		s := ec.state
		if p, ok := viewport.ScreenToImage(sample.Pos, s.View.Transform, s.View.ImageSize(), vp); ok {
			imgPos = p
			inside = p.X >= 0 && p.Y >= 0 && int(p.X) < s.Image.Width() && int(p.Y) < s.Image.Height()
		}
	}
	ec.mu.Unlock()

	if ec.onPointer != nil {
		ec.onPointer(imgPos, inside)
	}
	ec.Refresh()
}

// viewportRect is the canvas area in its own coordinate space.
func (ec *EditorCanvas) viewportRect() geometry.Rect {
	size := ec.Size()
	return geometry.NewRect(0, 0, size.Width, size.Height)
}

// draw is the raster drawing function. w and h are in device pixels, which
// differ from the canvas's logical size on scaled displays.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	ec.mu.Lock()
	defer ec.mu.Unlock()

	vp := ec.viewportRect()
	pixScale := float32(1)
	if vp.Width > 0 {
		pixScale = float32(w) / vp.Width
	}

	s := ec.state
	footprint := viewport.ImageRect(s.View.Transform, s.View.ImageSize(), vp)
	pximage.Composite(output, s.Image, toPixels(footprint, pixScale), colorutil.PanelGray)

	if cursor, ok := brushCursor(s, ec.hover, ec.hovering); ok {
		drawCursor(output, cursor, pixScale)
	}

	ec.lastOutput = output
	return output
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &editorCanvasRenderer{canvas: ec}
}

type editorCanvasRenderer struct {
	canvas *EditorCanvas
}

func (r *editorCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *editorCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *editorCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *editorCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *editorCanvasRenderer) Destroy() {}

func toPoint(p fyne.Position) geometry.Point {
	return geometry.Pt(p.X, p.Y)
}

// toPixels converts a logical rectangle to device pixels, rounding its
// edges so adjacent image pixels never leave gaps.
func toPixels(r geometry.Rect, pixScale float32) image.Rectangle {
	round := func(v float32) int {
		return int(math.Round(float64(v * pixScale)))
	}
	return image.Rect(round(r.X), round(r.Y), round(r.X+r.Width), round(r.Y+r.Height))
}
