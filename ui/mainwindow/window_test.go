package mainwindow

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"go.uber.org/zap"

	"pixel-editor/internal/app"
	"pixel-editor/internal/config"
	"pixel-editor/internal/version"
	"pixel-editor/ui/prefs"
)

func TestNewWindow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	prefs.New(a).SetPanelOffset(0.3)

	state := app.NewState(config.Default(), nil)
	mw := New(a, state, config.Default())

	if got, want := mw.Title(), "Untitled - "+version.Name; got != want {
		t.Errorf("title = %q, expected %q", got, want)
	}
	if mw.split.Offset != 0.3 {
		t.Errorf("split offset = %v, expected the stored 0.3", mw.split.Offset)
	}
	if mw.EditorCanvas() == nil {
		t.Fatal("no editor canvas")
	}

	mw.EditorCanvas().Do(func(s *app.State) { s.SetModified(true) })
	if got, want := mw.Title(), "*Untitled - "+version.Name; got != want {
		t.Errorf("title after edit = %q, expected %q", got, want)
	}
}

func TestSaveAsAddsExtensionAndRemovesEmptyFile(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	state := app.NewState(config.Default(), nil)
	mw := New(a, state, config.Default())

	dir := t.TempDir()
	for _, name := range []string{"drawing", "drawing.gif"} {
		chosen := filepath.Join(dir, name)
		// The save dialog creates the file before calling back.
		if err := os.WriteFile(chosen, nil, 0o644); err != nil {
			t.Fatal(err)
		}

		mw.saveAsPath(chosen)

		if _, err := os.Stat(chosen); !os.IsNotExist(err) {
			t.Errorf("%s: empty file left behind (stat err %v)", name, err)
		}
		want := chosen + ".png"
		if info, err := os.Stat(want); err != nil || info.Size() == 0 {
			t.Errorf("%s: expected image at %s, stat err %v", name, want, err)
		}
		if state.Path != want || state.Modified {
			t.Errorf("%s: state path %q modified %v", name, state.Path, state.Modified)
		}
	}
}

func TestSaveAsKeepsSupportedExtension(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	state := app.NewState(config.Default(), nil)
	mw := New(a, state, config.Default())

	chosen := filepath.Join(t.TempDir(), "drawing.bmp")
	if err := os.WriteFile(chosen, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	mw.saveAsPath(chosen)

	if info, err := os.Stat(chosen); err != nil || info.Size() == 0 {
		t.Errorf("expected the image written to %s, stat err %v", chosen, err)
	}
	if state.Path != chosen {
		t.Errorf("state path %q, expected %q", state.Path, chosen)
	}
}

func TestRemoveIfEmptyKeepsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes")
	if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	removeIfEmpty(path, zap.NewNop())
	if _, err := os.Stat(path); err != nil {
		t.Errorf("non-empty file was removed: %v", err)
	}
}

func TestIsSaveExt(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"a.PNG", true},
		{"dir/b.jpeg", true},
		{"c.tif", true},
		{"d.webp", false},
		{"e", false},
	}
	for _, tt := range tests {
		if got := isSaveExt(tt.path); got != tt.want {
			t.Errorf("isSaveExt(%q) = %v, expected %v", tt.path, got, tt.want)
		}
	}
}
