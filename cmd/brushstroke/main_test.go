package main

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"pixel-editor/internal/brush"
	pximage "pixel-editor/internal/image"
	"pixel-editor/pkg/colorutil"
	"pixel-editor/pkg/geometry"
)

func TestStrokeLine(t *testing.T) {
	buf := pximage.NewFilled(200, 100, colorutil.White)
	s := brush.Settings{Diameter: 10, Mode: brush.ModeSmooth}
	n := strokeLine(buf, geometry.Pt(20, 50), geometry.Pt(180, 50), s, colorutil.Black, 0.5)

	// 160 pixels at a 5 pixel step
	if n != 33 {
		t.Errorf("got %d dabs, expected 33", n)
	}
	for x := 20; x < 180; x += 10 {
		if got := buf.At(x, 50); got != colorutil.Black {
			t.Errorf("pixel (%d,50) = %v, expected black along the stroke", x, got)
		}
	}
	if got := buf.At(100, 10); got != colorutil.White {
		t.Errorf("pixel far from the stroke changed to %v", got)
	}
}

func TestStrokeLineSinglePoint(t *testing.T) {
	buf := pximage.NewFilled(10, 10, colorutil.White)
	n := strokeLine(buf, geometry.Pt(5, 5), geometry.Pt(5, 5), brush.Settings{Mode: brush.ModeHard}, colorutil.Red, 0.25)
	if n != 1 || buf.At(5, 5) != colorutil.Red {
		t.Errorf("got %d dabs and %v at the point", n, buf.At(5, 5))
	}
}

func TestSummarize(t *testing.T) {
	before := pximage.NewFilled(4, 1, colorutil.White)
	after := before.Clone()
	after.Set(0, 0, colorutil.Black)
	after.Set(1, 0, colorutil.Black)

	r := summarize(before, after)
	if r.Changed != 2 {
		t.Errorf("got %d changed pixels, expected 2", r.Changed)
	}
	if !scalar.EqualWithinAbs(r.Mean, 255, 1e-9) || !scalar.EqualWithinAbs(r.StdDev, 0, 1e-9) {
		t.Errorf("got mean %v stddev %v", r.Mean, r.StdDev)
	}

	if r := summarize(before, before.Clone()); r != (changeReport{}) {
		t.Errorf("unchanged image reported %+v", r)
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 12.5, 40 ")
	if err != nil || p != geometry.Pt(12.5, 40) {
		t.Errorf("got %v, %v", p, err)
	}
	for _, bad := range []string{"", "1", "1,2,3", "a,2", "1,b"} {
		if _, err := parsePoint(bad); err == nil {
			t.Errorf("parsePoint(%q) should fail", bad)
		}
	}
}
