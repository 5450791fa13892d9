package geometry

import (
	"testing"
)

func TestRectContainsAndCenter(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	diff(t, Pt(60, 45), r.Center())
	diff(t, Pt(110, 70), r.Max())

	if !r.Contains(Pt(10, 20)) || !r.Contains(Pt(110, 70)) {
		t.Error("expected corners to be contained")
	}
	if r.Contains(Pt(9.9, 30)) {
		t.Error("expected point left of rect to be outside")
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	diff(t, NewRect(5, 5, 5, 5), a.Intersect(NewRect(5, 5, 10, 10)))

	if got := a.Intersect(NewRect(20, 20, 5, 5)); !got.IsEmpty() {
		t.Errorf("got %v, expected an empty intersection", got)
	}
}

func TestClamp(t *testing.T) {
	diff(t, float32(0), Clamp(-1, 0, 10))
	diff(t, float32(10), Clamp(11, 0, 10))
	diff(t, float32(5), Clamp(5, 0, 10))
}
