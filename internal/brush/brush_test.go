package brush

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	pximage "pixel-editor/internal/image"
	"pixel-editor/pkg/geometry"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func TestSmoothStroke(t *testing.T) {
	buf := pximage.Default()
	ApplySmooth(buf, Settings{Diameter: 20}, geometry.Pt(400, 300), black)

	// The interior is fully painted.
	for _, p := range [][2]int{{400, 300}, {395, 300}, {400, 305}, {393, 293}} {
		if got := buf.At(p[0], p[1]); got != black {
			t.Errorf("interior pixel %v = %v, expected black", p, got)
		}
	}

	// Pixels straddling the circle's edge are partially painted.
	for _, p := range [][2]int{{406, 307}, {392, 292}, {409, 304}} {
		got := buf.At(p[0], p[1])
		if got.R == 0 || got.R == 255 || got.R != got.G || got.G != got.B {
			t.Errorf("edge pixel %v = %v, expected a partial gray", p, got)
		}
	}

	// Nothing outside the bounding box changes.
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			if x >= 390 && x <= 410 && y >= 290 && y <= 310 {
				continue
			}
			if got := buf.At(x, y); got != white {
				t.Fatalf("pixel (%d,%d) outside the bounding box changed to %v", x, y, got)
			}
		}
	}
}

func TestSmoothStrokeFadesOutward(t *testing.T) {
	buf := pximage.Default()
	ApplySmooth(buf, Settings{Diameter: 20}, geometry.Pt(400, 300), black)

	prev := uint8(0)
	for x := 400; x <= 412; x++ {
		got := buf.At(x, 300).R
		if got < prev {
			t.Errorf("channel at x=%d is %d, darker than %d nearer the center", x, got, prev)
		}
		prev = got
	}
	if prev != 255 {
		t.Errorf("expected untouched white beyond the stroke, got %d", prev)
	}
}

func TestSmoothLeavesAlpha(t *testing.T) {
	buf := pximage.NewFilled(10, 10, color.RGBA{R: 200, G: 200, B: 200, A: 128})
	ApplySmooth(buf, Settings{Diameter: 6}, geometry.Pt(5, 5), red)
	got := buf.At(5, 5)
	if d := cmp.Diff(color.RGBA{R: 255, A: 128}, got); d != "" {
		t.Error(d)
	}
}

func TestSmoothOutsideBuffer(t *testing.T) {
	centers := []geometry.Point{
		geometry.Pt(-100, -100),
		geometry.Pt(900, 300),
		geometry.Pt(400, 700),
		geometry.Pt(-10.5, 300),
	}
	for _, center := range centers {
		buf := pximage.Default()
		want := buf.Clone()
		ApplySmooth(buf, Settings{Diameter: 20}, center, black)
		if d := cmp.Diff(want.Pix(), buf.Pix()); d != "" {
			t.Errorf("brush at %v mutated the buffer", center)
		}
	}
}

func TestSmoothClipsAtEdges(t *testing.T) {
	buf := pximage.Default()
	ApplySmooth(buf, Settings{Diameter: 20}, geometry.Pt(0, 0), black)
	if got := buf.At(0, 0); got != black {
		t.Errorf("corner pixel = %v, expected black", got)
	}

	// The last column and row are reachable.
	ApplySmooth(buf, Settings{Diameter: 20}, geometry.Pt(799.5, 599.5), black)
	if got := buf.At(799, 599); got != black {
		t.Errorf("last pixel = %v, expected black", got)
	}
}

func TestSmoothNoOps(t *testing.T) {
	buf := pximage.Default()
	want := buf.Clone()
	ApplySmooth(buf, Settings{Diameter: 0}, geometry.Pt(400, 300), black)
	ApplySmooth(buf, Settings{Diameter: -5}, geometry.Pt(400, 300), black)
	ApplySmooth(pximage.NewPixelBuffer(0, 0), Settings{Diameter: 20}, geometry.Pt(0, 0), black)
	if d := cmp.Diff(want.Pix(), buf.Pix()); d != "" {
		t.Error("zero or negative diameter mutated the buffer")
	}
}

func TestSmoothRejectsTranslucentColor(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a translucent color")
		}
	}()
	ApplySmooth(pximage.Default(), Settings{Diameter: 20}, geometry.Pt(10, 10), color.RGBA{R: 255, A: 100})
}

func TestHardPixel(t *testing.T) {
	buf := pximage.NewFilled(4, 4, white)
	ApplyHard(buf, geometry.Pt(2.9, 1.1), red)
	if got := buf.At(2, 1); got != red {
		t.Errorf("got %v, expected red", got)
	}
	painted := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if buf.At(x, y) != white {
				painted++
			}
		}
	}
	if painted != 1 {
		t.Errorf("hard brush painted %d pixels, expected 1", painted)
	}

	want := buf.Clone()
	ApplyHard(buf, geometry.Pt(-0.5, 1), red)
	ApplyHard(buf, geometry.Pt(4, 1), red)
	if d := cmp.Diff(want.Pix(), buf.Pix()); d != "" {
		t.Error("out of bounds hard brush mutated the buffer")
	}
}

func TestApplyDispatchesOnMode(t *testing.T) {
	smooth := pximage.NewFilled(20, 20, white)
	Apply(smooth, Settings{Diameter: 10, Mode: ModeSmooth}, geometry.Pt(10, 10), black)
	hard := pximage.NewFilled(20, 20, white)
	Apply(hard, Settings{Diameter: 10, Mode: ModeHard}, geometry.Pt(10, 10), black)

	if smooth.At(7, 10) != black {
		t.Error("smooth mode did not paint a disc")
	}
	if hard.At(7, 10) != white || hard.At(10, 10) != black {
		t.Error("hard mode did not paint exactly the pixel under the sample")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"smooth": ModeSmooth, "HARD": ModeHard, "": ModeSmooth} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("airbrush"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if ModeHard.String() != "hard" || Mode(9).String() != "unknown" {
		t.Error("unexpected Mode.String output")
	}
}
