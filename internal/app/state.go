// Package app holds the editor state and the commands that change it.
package app

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"pixel-editor/internal/brush"
	"pixel-editor/internal/config"
	pximage "pixel-editor/internal/image"
	"pixel-editor/internal/tools"
	"pixel-editor/internal/viewport"
	"pixel-editor/pkg/colorutil"
	"pixel-editor/pkg/geometry"
)

var (
	// ErrNoPath is returned by Save when the document has never been saved.
	ErrNoPath = errors.New("document has no file path")

	// ErrInvalidSize is returned for a new image with a non-positive dimension.
	ErrInvalidSize = errors.New("image dimensions must be positive")

	// ErrTranslucentColor is returned when a paint color is not opaque.
	ErrTranslucentColor = errors.New("paint color must be opaque")
)

// State holds the open document, the view onto it and the tool settings.
//
// State is driven from the UI event goroutine. Only listener registration
// and emission are safe from other goroutines.
type State struct {
	mu sync.RWMutex

	// Document
	Path     string
	Modified bool
	Image    *pximage.PixelBuffer

	// View
	View *viewport.Controller

	// Tools
	Tool      tools.Tool
	Brush     brush.Settings
	Primary   color.RGBA
	Secondary color.RGBA

	background    color.RGBA
	maxFrameDelta time.Duration
	lastViewport  geometry.Rect

	logger    *zap.Logger
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageChanged  EventType = iota // pixels painted
	EventImageReplaced                  // new, opened or pasted document
	EventImageSaved
	EventModified
	EventViewChanged
	EventToolChanged
	EventBrushChanged
	EventColorsChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Frame is one frame of main-canvas input.
type Frame struct {
	Viewport  geometry.Rect
	Pointer   tools.PointerSample
	ZoomDelta float32 // multiplicative; 0 or 1 means no zoom
}

// NewState creates the editor state with a blank document sized and filled
// as the config describes.
func NewState(cfg config.Config, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	bg := cfg.Background()
	img := pximage.NewFilled(cfg.Image.Width, cfg.Image.Height, bg)
	return &State{
		Image:         img,
		View:          viewport.NewController(bufferSize(img)),
		Tool:          tools.ToolPan,
		Brush:         cfg.BrushSettings(),
		Primary:       cfg.PrimaryColor(),
		Secondary:     cfg.SecondaryColor(),
		background:    bg,
		maxFrameDelta: cfg.MaxFrameDelta(),
		logger:        logger,
		listeners:     make(map[EventType][]EventListener),
	}
}

// Logger returns the state's logger.
func (s *State) Logger() *zap.Logger {
	return s.logger
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the document as modified and emits an event when the
// flag changes.
func (s *State) SetModified(modified bool) {
	if s.Modified == modified {
		return
	}
	s.Modified = modified
	s.Emit(EventModified, modified)
}

// HandleFrame applies one frame of canvas input: zoom around the pointer (or
// the viewport center when the pointer is elsewhere), then the active tool,
// then the view limits.
func (s *State) HandleFrame(f Frame) {
	s.lastViewport = f.Viewport
	before := s.View.Transform

	if f.ZoomDelta != 0 && f.ZoomDelta != 1 {
		origin := f.Viewport.Center()
		if f.Pointer.HasPos && f.Viewport.Contains(f.Pointer.Pos) {
			origin = f.Pointer.Pos
		}
		s.View.ApplyZoom(f.ZoomDelta, origin, f.Viewport)
	}

	painted := s.Tool.HandleInput(f.Pointer, tools.Context{
		Image:         s.Image,
		View:          s.View,
		Viewport:      f.Viewport,
		Brush:         s.Brush,
		Color:         s.Primary,
		MaxFrameDelta: s.maxFrameDelta,
	})

	s.View.ClampToBounds(f.Viewport)

	if painted {
		s.SetModified(true)
		s.Emit(EventImageChanged, nil)
	}
	if s.View.Transform != before {
		s.Emit(EventViewChanged, s.View.Transform)
	}
}

// ZoomBy zooms around the center of the most recent viewport.
func (s *State) ZoomBy(delta float32) {
	s.HandleFrame(Frame{Viewport: s.lastViewport, ZoomDelta: delta})
}

// ResetView restores the default transform. The next frame pulls it back
// into the view limits.
func (s *State) ResetView() {
	s.View.Reset(bufferSize(s.Image))
	s.Emit(EventViewChanged, s.View.Transform)
}

// NewImage replaces the document with a blank image of the given size.
func (s *State) NewImage(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s.ReplaceImage(pximage.NewFilled(width, height, s.background))
	s.Path = ""
	s.SetModified(false)
	s.logger.Info("new image", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// Open loads the image at path as the new document.
func (s *State) Open(path string) error {
	buf, err := pximage.Load(path)
	if err != nil {
		s.logger.Warn("open failed", zap.String("path", path), zap.Error(err))
		return err
	}
	s.ReplaceImage(buf)
	s.Path = path
	s.SetModified(false)
	s.logger.Info("opened image",
		zap.String("path", path),
		zap.Int("width", buf.Width()),
		zap.Int("height", buf.Height()))
	return nil
}

// Save writes the document to its current path. It returns ErrNoPath for a
// document that has never been saved; callers should fall back to SaveAs.
func (s *State) Save() error {
	if s.Path == "" {
		return ErrNoPath
	}
	return s.SaveAs(s.Path)
}

// SaveAs writes the document to path and makes path the document's path.
func (s *State) SaveAs(path string) error {
	if err := pximage.Save(path, s.Image); err != nil {
		s.logger.Warn("save failed", zap.String("path", path), zap.Error(err))
		return err
	}
	s.Path = path
	s.SetModified(false)
	s.logger.Info("saved image", zap.String("path", path))
	s.Emit(EventImageSaved, path)
	return nil
}

// ReplaceImage swaps in a whole new buffer and resets the view onto it. The
// next frame pulls the default transform back into the view limits.
func (s *State) ReplaceImage(buf *pximage.PixelBuffer) {
	if buf == nil {
		buf = pximage.NewPixelBuffer(0, 0)
	}
	s.Image = buf
	s.View.Reset(bufferSize(buf))
	s.SetModified(true)
	s.Emit(EventImageReplaced, buf)
}

// SetTool selects the active tool.
func (s *State) SetTool(t tools.Tool) {
	if s.Tool == t {
		return
	}
	s.Tool = t
	s.logger.Debug("tool selected", zap.Stringer("tool", t))
	s.Emit(EventToolChanged, t)
}

// SetBrushDiameter sets the brush diameter in image pixels. Negative values
// clamp to zero, which disables painting.
func (s *State) SetBrushDiameter(d float32) {
	s.Brush.Diameter = max(0, d)
	s.Emit(EventBrushChanged, s.Brush)
}

// SetBrushMode selects smooth or hard painting.
func (s *State) SetBrushMode(m brush.Mode) {
	s.Brush.Mode = m
	s.Emit(EventBrushChanged, s.Brush)
}

// SetPrimaryColor sets the paint color.
func (s *State) SetPrimaryColor(c color.RGBA) error {
	if !colorutil.IsOpaque(c) {
		return ErrTranslucentColor
	}
	s.Primary = c
	s.Emit(EventColorsChanged, nil)
	return nil
}

// SetSecondaryColor sets the alternate paint color.
func (s *State) SetSecondaryColor(c color.RGBA) error {
	if !colorutil.IsOpaque(c) {
		return ErrTranslucentColor
	}
	s.Secondary = c
	s.Emit(EventColorsChanged, nil)
	return nil
}

// SwapColors exchanges the primary and secondary colors.
func (s *State) SwapColors() {
	s.Primary, s.Secondary = s.Secondary, s.Primary
	s.Emit(EventColorsChanged, nil)
}

// Title returns the window title for the current document.
func (s *State) Title(appName string) string {
	name := "Untitled"
	if s.Path != "" {
		name = filepath.Base(s.Path)
	}
	if s.Modified {
		name = "*" + name
	}
	return fmt.Sprintf("%s - %s", name, appName)
}

func bufferSize(b *pximage.PixelBuffer) geometry.Size {
	return geometry.NewSize(float32(b.Width()), float32(b.Height()))
}
