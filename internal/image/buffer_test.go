package image

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func TestDefaultBuffer(t *testing.T) {
	b := Default()
	if b.Width() != 800 || b.Height() != 600 {
		t.Fatalf("got %dx%d, expected 800x600", b.Width(), b.Height())
	}
	if len(b.Pix()) != 800*600*4 {
		t.Fatalf("got %d bytes, expected %d", len(b.Pix()), 800*600*4)
	}
	for _, p := range [][2]int{{0, 0}, {799, 599}, {400, 300}} {
		if got := b.At(p[0], p[1]); got != white {
			t.Errorf("pixel %v = %v, expected white", p, got)
		}
	}
}

func TestSetAndAt(t *testing.T) {
	b := NewFilled(4, 3, white)
	b.Set(2, 1, red)
	if got := b.At(2, 1); got != red {
		t.Errorf("got %v, expected red", got)
	}
	if i := b.Offset(2, 1); b.Pix()[i] != 255 || b.Pix()[i+1] != 0 {
		t.Errorf("raw bytes at %d = %v", i, b.Pix()[i:i+4])
	}

	// Out of bounds writes are ignored and reads are transparent.
	before := b.Clone()
	b.Set(-1, 0, red)
	b.Set(4, 0, red)
	b.Set(0, 3, red)
	if d := cmp.Diff(before.Pix(), b.Pix()); d != "" {
		t.Errorf("out of bounds write mutated buffer: %s", d)
	}
	if got := b.At(10, 10); got != (color.RGBA{}) {
		t.Errorf("out of bounds read = %v", got)
	}
}

func TestFromPix(t *testing.T) {
	if _, err := FromPix(2, 2, make([]byte, 15)); !errors.Is(err, ErrBufferSize) {
		t.Errorf("got error %v, expected ErrBufferSize", err)
	}
	if _, err := FromPix(-1, 2, nil); !errors.Is(err, ErrBufferSize) {
		t.Errorf("got error %v, expected ErrBufferSize", err)
	}
	b, err := FromPix(2, 1, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatalf("FromPix returned error: %v", err)
	}
	if got := b.At(1, 0); got != (color.RGBA{R: 5, G: 6, B: 7, A: 8}) {
		t.Errorf("got %v", got)
	}
}

func TestEmptyBuffer(t *testing.T) {
	b := NewPixelBuffer(0, 10)
	if !b.IsEmpty() || len(b.Pix()) != 0 {
		t.Errorf("expected empty buffer, got %dx%d with %d bytes", b.Width(), b.Height(), len(b.Pix()))
	}
	b = NewPixelBuffer(-5, -5)
	if b.Width() != 0 || b.Height() != 0 {
		t.Errorf("negative dimensions not clamped: %dx%d", b.Width(), b.Height())
	}
}

func TestAsImageAliasesBuffer(t *testing.T) {
	b := NewFilled(3, 3, white)
	img := b.AsImage()
	b.Set(1, 1, red)
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("view did not observe write: %v", got)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 13, 12))
	src.Set(11, 11, red)
	b := FromImage(src)
	if b.Width() != 3 || b.Height() != 2 {
		t.Fatalf("got %dx%d, expected 3x2", b.Width(), b.Height())
	}
	if got := b.At(1, 1); got != red {
		t.Errorf("got %v, expected red at translated origin", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	b := NewFilled(5, 4, white)
	b.Set(0, 0, red)
	b.Set(4, 3, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+ext)
			if err := Save(path, b); err != nil {
				t.Fatalf("Save returned error: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if d := cmp.Diff(b.Pix(), loaded.Pix()); d != "" {
				t.Errorf("round trip mismatch: %s", d)
			}
		})
	}
}

func TestSaveUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	if err := Save(path, Default()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got error %v, expected ErrUnsupportedFormat", err)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error loading a missing file")
	}
}

func TestIsSupportedFormat(t *testing.T) {
	for path, want := range map[string]bool{
		"a.PNG":      true,
		"b.tif":      true,
		"c.webp":     true,
		"d.txt":      false,
		"noext":      false,
		"dir.png/xx": false,
	} {
		if got := IsSupportedFormat(path); got != want {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", path, got, want)
		}
	}
}
