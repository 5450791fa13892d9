package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"pixel-editor/pkg/colorutil"
)

var (
	accent       = color.NRGBA{R: 0x1E, G: 0x88, B: 0xE5, A: 0xFF}
	accentSelect = color.NRGBA{R: 0x1E, G: 0x88, B: 0xE5, A: 0x60}
	inputSurface = color.NRGBA{R: 0x3A, G: 0x3A, B: 0x3A, A: 0xFF}
)

// EditorTheme is a dark theme whose window background matches the panel
// behind the image, so the canvas and the tool panels read as one surface.
// The system light/dark preference is ignored.
type EditorTheme struct{}

var _ fyne.Theme = (*EditorTheme)(nil)

func (t *EditorTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return colorutil.PanelGray
	case theme.ColorNameInputBackground, theme.ColorNameButton:
		return inputSurface
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accent
	case theme.ColorNameSelection:
		return accentSelect
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size tightens padding so the tools panel fits beside the canvas.
func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return theme.DefaultTheme().Size(name)
	}
}
