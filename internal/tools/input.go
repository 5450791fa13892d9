package tools

import (
	"time"

	"pixel-editor/pkg/geometry"
)

// DefaultDragThreshold is how far, in screen points, the pointer must travel
// from where it was pressed before the press becomes a drag.
const DefaultDragThreshold = 6

// PointerSample is the pointer state for one frame of input.
type PointerSample struct {
	Pos      geometry.Point
	HasPos   bool // false once the pointer has left the canvas
	Down     bool
	Dragging bool
	Delta    geometry.Point // screen motion since the previous sample
	DT       time.Duration  // time since the previous sample
	Resumed  bool           // first sample after an interruption
}

// Tracker turns timestamped pointer events into samples.
type Tracker struct {
	DragThreshold float32

	down     bool
	dragging bool
	hasPos   bool
	pressPos geometry.Point
	lastPos  geometry.Point
	lastTime time.Time
	resumed  bool
}

// NewTracker creates a tracker with the default drag threshold.
func NewTracker() *Tracker {
	return &Tracker{DragThreshold: DefaultDragThreshold}
}

// Press records the primary button going down at pos.
func (t *Tracker) Press(pos geometry.Point, at time.Time) PointerSample {
	t.down = true
	t.dragging = false
	t.pressPos = pos
	return t.sample(pos, at)
}

// Move records the pointer moving to pos.
func (t *Tracker) Move(pos geometry.Point, at time.Time) PointerSample {
	if t.down && !t.dragging && pos.Distance(t.pressPos) > t.DragThreshold {
		t.dragging = true
	}
	return t.sample(pos, at)
}

// Release records the primary button going up at pos. The returned sample
// still carries the drag state of the gesture it ends.
func (t *Tracker) Release(pos geometry.Point, at time.Time) PointerSample {
	s := t.sample(pos, at)
	t.down = false
	t.dragging = false
	return s
}

// Leave records the pointer leaving the canvas. Any gesture in progress ends.
func (t *Tracker) Leave(at time.Time) PointerSample {
	t.down = false
	t.dragging = false
	t.hasPos = false
	s := PointerSample{Resumed: t.resumed}
	if !t.lastTime.IsZero() {
		s.DT = at.Sub(t.lastTime)
	}
	t.lastTime = at
	t.resumed = false
	return s
}

// Interrupt marks the next sample as resumed, so a drag that continues after
// a modal dialog or focus change does not jump by the motion it missed.
func (t *Tracker) Interrupt() {
	t.resumed = true
}

// Down reports whether the primary button is held.
func (t *Tracker) Down() bool {
	return t.down
}

func (t *Tracker) sample(pos geometry.Point, at time.Time) PointerSample {
	s := PointerSample{
		Pos:      pos,
		HasPos:   true,
		Down:     t.down,
		Dragging: t.dragging,
		Resumed:  t.resumed,
	}
	if t.hasPos {
		s.Delta = pos.Sub(t.lastPos)
	}
	if !t.lastTime.IsZero() {
		s.DT = at.Sub(t.lastTime)
	}
	t.hasPos = true
	t.lastPos = pos
	t.lastTime = at
	t.resumed = false
	return s
}
