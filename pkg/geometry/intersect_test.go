package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		fraction, a, b, want float32
	}{
		{0, 10, 20, 10},
		{1, 10, 20, 20},
		{0.5, 10, 20, 15},
		{0.75, 0, 100, 75},
		{0.25, 255, 0, 191.25},
	}
	for _, tt := range tests {
		diff(t, tt.want, Lerp(tt.fraction, tt.a, tt.b), cmpopts.EquateApprox(0, 1e-4))
	}
}

func TestSquareInsideCircle(t *testing.T) {
	tests := []struct {
		name   string
		center Point
		radius float32
		square Point
		side   float32
	}{
		{"concentric", Pt(0, 0), 10, Pt(0, 0), 1},
		{"offset", Pt(0, 0), 10, Pt(3, 4), 1},
		{"large square", Pt(50, 50), 100, Pt(60, 40), 8},
		{"exactly touching", Pt(0, 0), math.Sqrt2 / 2, Pt(0, 0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquareCircleIntersection(tt.center, tt.radius, tt.square, tt.side)
			if want := tt.side * tt.side; got != want {
				t.Errorf("got area %v, expected exactly %v", got, want)
			}
		})
	}
}

func TestNoOverlap(t *testing.T) {
	tests := []struct {
		center Point
		radius float32
		square Point
		side   float32
	}{
		{Pt(0, 0), 1, Pt(10, 10), 1},
		{Pt(0, 0), 5, Pt(-7, 0), 2},
		{Pt(400, 300), 10, Pt(0.5, 0.5), 1},
		{Pt(0, 0), 0, Pt(5, 5), 1},
	}
	for _, tt := range tests {
		if got := SquareCircleIntersection(tt.center, tt.radius, tt.square, tt.side); got != 0 {
			t.Errorf("circle %v r=%v vs square %v: got area %v, expected exactly 0", tt.center, tt.radius, tt.square, got)
		}
	}
}

func TestCircleInsideSquare(t *testing.T) {
	got := SquareCircleIntersection(Pt(5, 5), 1, Pt(5, 5), 4)
	diff(t, float32(math.Pi), got, cmpopts.EquateApprox(0, 1e-6))

}

func TestSubPixelCircleNearCenterIsWholeSquare(t *testing.T) {
	// (r - half diagonal)² bounds the distance even when r is below the half
	// diagonal, so a tiny concentric circle reports the whole square.
	tests := []struct {
		name   string
		center Point
		radius float32
	}{
		{"concentric", Pt(0.5, 0.5), 0.1},
		{"slightly off center", Pt(0.7, 0.4), 0.1},
		{"half pixel radius", Pt(0.5, 0.5), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SquareCircleIntersection(tt.center, tt.radius, Pt(0.5, 0.5), 1); got != 1 {
				t.Errorf("got area %v, expected exactly 1", got)
			}
		})
	}

	// Farther out than |r - half diagonal| the estimate applies again.
	got := SquareCircleIntersection(Pt(0.5, 0.5), 0.1, Pt(1.5, 0.5), 1)
	if got != 0 {
		t.Errorf("distant tiny circle: got area %v, expected 0", got)
	}
}

func TestPartialOverlap(t *testing.T) {
	// The circle's edge runs almost straight through the middle of the square.
	got := SquareCircleIntersection(Pt(0, 0), 10, Pt(10, 0), 1)
	diff(t, float32(0.5), got, cmpopts.EquateApprox(0, 0.02))

	// Scaling the square scales the returned area.
	got = SquareCircleIntersection(Pt(0, 0), 20, Pt(20, 0), 2)
	diff(t, float32(2), got, cmpopts.EquateApprox(0, 0.08))

	// A quarter of the square lies inside a circle centered on its corner.
	got = SquareCircleIntersection(Pt(0, 0), 0.5, Pt(0.5, 0.5), 1)
	diff(t, float32(math.Pi*0.25/4), got, cmpopts.EquateApprox(0, 0.02))
}

func TestIntersectionBounds(t *testing.T) {
	for x := float32(-3); x <= 3; x += 0.37 {
		for y := float32(-3); y <= 3; y += 0.41 {
			for _, r := range []float32{0.3, 0.7, 1.5, 2.5} {
				got := SquareCircleIntersection(Pt(x, y), r, Pt(0, 0), 1)
				if got < 0 || got > 1 || math.IsNaN(float64(got)) {
					t.Fatalf("circle (%v,%v) r=%v: area %v outside [0,1]", x, y, r, got)
				}
			}
		}
	}
}

func TestIntersectionSymmetry(t *testing.T) {
	square := Pt(0.5, 0.5)
	offsets := []Point{Pt(0.8, 0.3), Pt(1.1, -0.6), Pt(0.2, 0.9), Pt(-1.3, 0.4)}
	for _, off := range offsets {
		for _, r := range []float32{0.6, 1.2, 2} {
			want := SquareCircleIntersection(square.Add(off), r, square, 1)
			mirrors := []Point{
				Pt(-off.X, off.Y),
				Pt(off.X, -off.Y),
				Pt(-off.X, -off.Y),
				Pt(off.Y, off.X),
			}
			for _, m := range mirrors {
				got := SquareCircleIntersection(square.Add(m), r, square, 1)
				if math.Abs(float64(got-want)) > 1e-3 {
					t.Errorf("offset %v mirrored to %v (r=%v): got %v, expected %v", off, m, r, got, want)
				}
			}
		}
	}
}
