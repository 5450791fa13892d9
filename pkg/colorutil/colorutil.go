// Package colorutil provides shared color utilities for the editor.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Common colors used throughout the application.
var (
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	PanelGray = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	Red       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue      = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// ErrInvalidHex is returned when a color string cannot be parsed.
var ErrInvalidHex = errors.New("invalid hex color")

// IsOpaque reports whether the color has full alpha.
func IsOpaque(c color.RGBA) bool {
	return c.A == 255
}

// ToRGBA converts any color.Color to an unpremultiplied 8-bit RGBA tuple.
func ToRGBA(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
// Colors without an alpha component are fully opaque.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatHex formats a color as "#rrggbb", appending the alpha byte only when
// the color is not opaque.
func FormatHex(c color.RGBA) string {
	if IsOpaque(c) {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
