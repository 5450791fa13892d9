// Package prefs stores per-user window state in the fyne app preferences.
// Settings that change how the editor behaves live in the config file.
package prefs

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

const (
	keyLastDir     = "lastDirectory"
	keyPanelOffset = "toolsPanelOffset"
	keyWindowW     = "windowWidth"
	keyWindowH     = "windowHeight"
)

// Defaults used when nothing has been stored yet.
const (
	DefaultPanelOffset  = 0.22
	DefaultWindowWidth  = 1200
	DefaultWindowHeight = 800
)

// Prefs wraps the app preferences with typed accessors.
type Prefs struct {
	p fyne.Preferences
}

// New returns preferences backed by the app's store.
func New(app fyne.App) *Prefs {
	return &Prefs{p: app.Preferences()}
}

// LastDir returns the directory of the last opened or saved file, or "".
func (p *Prefs) LastDir() string {
	return p.p.String(keyLastDir)
}

// LastDirURI returns LastDir as a listable location for file dialogs, or nil
// if it is unset or no longer listable.
func (p *Prefs) LastDirURI() fyne.ListableURI {
	dir := p.LastDir()
	if dir == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return listable
}

// RememberFile records the directory containing path.
func (p *Prefs) RememberFile(path string) {
	p.p.SetString(keyLastDir, filepath.Dir(path))
}

// PanelOffset returns the tools panel split offset, in (0, 1).
func (p *Prefs) PanelOffset() float64 {
	v := p.p.FloatWithFallback(keyPanelOffset, DefaultPanelOffset)
	if v <= 0 || v >= 1 {
		return DefaultPanelOffset
	}
	return v
}

// SetPanelOffset stores the tools panel split offset.
func (p *Prefs) SetPanelOffset(v float64) {
	if v <= 0 || v >= 1 {
		return
	}
	p.p.SetFloat(keyPanelOffset, v)
}

// WindowSize returns the last window size.
func (p *Prefs) WindowSize() fyne.Size {
	w := p.p.FloatWithFallback(keyWindowW, DefaultWindowWidth)
	h := p.p.FloatWithFallback(keyWindowH, DefaultWindowHeight)
	if w < 100 || h < 100 {
		return fyne.NewSize(DefaultWindowWidth, DefaultWindowHeight)
	}
	return fyne.NewSize(float32(w), float32(h))
}

// SetWindowSize stores the window size.
func (p *Prefs) SetWindowSize(s fyne.Size) {
	p.p.SetFloat(keyWindowW, float64(s.Width))
	p.p.SetFloat(keyWindowH, float64(s.Height))
}
