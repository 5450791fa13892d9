// Package config loads and stores editor settings as TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"pixel-editor/internal/brush"
	"pixel-editor/internal/logging"
	"pixel-editor/internal/tools"
	"pixel-editor/pkg/colorutil"
)

const (
	appDir     = "pixel-editor"
	configFile = "config.toml"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the contents of config.toml.
type Config struct {
	Image ImageConfig `toml:"image"`
	Brush BrushConfig `toml:"brush"`
	View  ViewConfig  `toml:"view"`
	Log   LogConfig   `toml:"log"`
}

// ImageConfig describes new documents.
type ImageConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// BrushConfig holds the initial brush and colors.
type BrushConfig struct {
	Diameter  float32 `toml:"diameter"`
	Mode      string  `toml:"mode"`
	Primary   string  `toml:"primary"`
	Secondary string  `toml:"secondary"`
}

// ViewConfig tunes canvas interaction.
type ViewConfig struct {
	ZoomStep        float32 `toml:"zoom_step"`
	DragThreshold   float32 `toml:"drag_threshold"`
	MaxFrameDeltaMS int     `toml:"max_frame_delta_ms"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Image: ImageConfig{Width: 800, Height: 600, Background: "#ffffff"},
		Brush: BrushConfig{
			Diameter:  brush.DefaultDiameter,
			Mode:      brush.ModeSmooth.String(),
			Primary:   "#000000",
			Secondary: "#ffffff",
		},
		View: ViewConfig{
			ZoomStep:        1.1,
			DragThreshold:   tools.DefaultDragThreshold,
			MaxFrameDeltaMS: int(tools.MaxFrameDelta / time.Millisecond),
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pixel-editor/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.Getenv("HOME")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDir, configFile)
}

// Load reads the config at path. A missing file yields the defaults. Keys
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// LoadOrInit loads the config at path, writing the defaults there first if
// the file does not exist yet.
func LoadOrInit(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Save writes the config to path, creating its directory.
func (c Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks every value that the editor cannot recover from.
func (c Config) Validate() error {
	if c.Image.Width <= 0 || c.Image.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalid, c.Image.Width, c.Image.Height)
	}
	if c.Brush.Diameter < 0 {
		return fmt.Errorf("%w: brush diameter %v", ErrInvalid, c.Brush.Diameter)
	}
	if _, err := brush.ParseMode(c.Brush.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for name, hex := range map[string]string{
		"background": c.Image.Background,
		"primary":    c.Brush.Primary,
		"secondary":  c.Brush.Secondary,
	} {
		col, err := colorutil.ParseHex(hex)
		if err != nil {
			return fmt.Errorf("%w: %s color %q", ErrInvalid, name, hex)
		}
		if name != "background" && !colorutil.IsOpaque(col) {
			return fmt.Errorf("%w: %s color %q must be opaque", ErrInvalid, name, hex)
		}
	}
	if c.View.ZoomStep <= 1 {
		return fmt.Errorf("%w: zoom step %v must be greater than 1", ErrInvalid, c.View.ZoomStep)
	}
	if c.View.DragThreshold < 0 || c.View.MaxFrameDeltaMS <= 0 {
		return fmt.Errorf("%w: view settings", ErrInvalid)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// BrushSettings returns the configured brush. Call after Validate.
func (c Config) BrushSettings() brush.Settings {
	mode, _ := brush.ParseMode(c.Brush.Mode)
	return brush.Settings{Diameter: c.Brush.Diameter, Mode: mode}
}

// Background returns the new-document fill color.
func (c Config) Background() color.RGBA {
	return colorOr(c.Image.Background, colorutil.White)
}

// PrimaryColor returns the initial paint color.
func (c Config) PrimaryColor() color.RGBA {
	return colorOr(c.Brush.Primary, colorutil.Black)
}

// SecondaryColor returns the initial secondary color.
func (c Config) SecondaryColor() color.RGBA {
	return colorOr(c.Brush.Secondary, colorutil.White)
}

// MaxFrameDelta returns the configured stale-frame cutoff.
func (c Config) MaxFrameDelta() time.Duration {
	return time.Duration(c.View.MaxFrameDeltaMS) * time.Millisecond
}

func colorOr(s string, fallback color.RGBA) color.RGBA {
	c, err := colorutil.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}
