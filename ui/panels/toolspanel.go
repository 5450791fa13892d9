// Package panels provides the editor's side panels.
package panels

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"pixel-editor/internal/app"
	"pixel-editor/internal/brush"
	"pixel-editor/internal/tools"
	"pixel-editor/pkg/colorutil"
	"pixel-editor/ui/canvas"
)

const (
	maxBrushDiameter = 200
	swatchSize       = 32
)

// ToolsPanel selects the tool, brush and colors.
type ToolsPanel struct {
	state  *app.State
	canvas *canvas.EditorCanvas
	window fyne.Window

	toolRadio     *widget.RadioGroup
	hardCheck     *widget.Check
	diameter      *widget.Slider
	diameterLabel *widget.Label
	primary       *fynecanvas.Rectangle
	secondary     *fynecanvas.Rectangle

	container fyne.CanvasObject

	// syncing suppresses widget callbacks while widgets are updated from
	// state events.
	syncing bool
}

// NewToolsPanel creates the tools panel.
func NewToolsPanel(state *app.State, ec *canvas.EditorCanvas) *ToolsPanel {
	tp := &ToolsPanel{
		state:  state,
		canvas: ec,
	}
	tp.build()
	tp.syncFromState()

	state.On(app.EventToolChanged, func(interface{}) { tp.syncFromState() })
	state.On(app.EventBrushChanged, func(interface{}) { tp.syncFromState() })
	state.On(app.EventColorsChanged, func(interface{}) { tp.syncFromState() })

	return tp
}

// SetWindow sets the parent window for dialogs.
func (tp *ToolsPanel) SetWindow(w fyne.Window) {
	tp.window = w
}

// Container returns the panel container.
func (tp *ToolsPanel) Container() fyne.CanvasObject {
	return tp.container
}

func (tp *ToolsPanel) build() {
	names := make([]string, len(tools.Tools))
	for i, t := range tools.Tools {
		names[i] = t.String()
	}
	tp.toolRadio = widget.NewRadioGroup(names, tp.onToolSelected)
	tp.toolRadio.Required = true

	tp.hardCheck = widget.NewCheck("Hard pixel", tp.onHardToggled)

	tp.diameterLabel = widget.NewLabel("")
	tp.diameter = widget.NewSlider(0, maxBrushDiameter)
	tp.diameter.Step = 1
	tp.diameter.OnChanged = tp.onDiameterChanged

	tp.primary = fynecanvas.NewRectangle(tp.state.Primary)
	tp.primary.SetMinSize(fyne.NewSize(swatchSize, swatchSize))
	tp.secondary = fynecanvas.NewRectangle(tp.state.Secondary)
	tp.secondary.SetMinSize(fyne.NewSize(swatchSize, swatchSize))

	primaryBtn := widget.NewButton("Primary...", func() { tp.pickColor(true) })
	secondaryBtn := widget.NewButton("Secondary...", func() { tp.pickColor(false) })
	swapBtn := widget.NewButton("Swap", func() {
		tp.canvas.Do(func(s *app.State) { s.SwapColors() })
	})

	toolCard := widget.NewCard("Tool", "", tp.toolRadio)
	brushCard := widget.NewCard("Brush", "", container.NewVBox(
		tp.diameterLabel,
		tp.diameter,
		tp.hardCheck,
	))
	colorCard := widget.NewCard("Colors", "", container.NewVBox(
		container.NewHBox(tp.primary, primaryBtn),
		container.NewHBox(tp.secondary, secondaryBtn),
		swapBtn,
	))

	tp.container = container.NewVScroll(container.NewVBox(toolCard, brushCard, colorCard))
}

// syncFromState copies the state into the widgets.
func (tp *ToolsPanel) syncFromState() {
	tp.syncing = true
	defer func() { tp.syncing = false }()

	tp.toolRadio.SetSelected(tp.state.Tool.String())
	tp.hardCheck.SetChecked(tp.state.Brush.Mode == brush.ModeHard)
	tp.diameter.SetValue(float64(tp.state.Brush.Diameter))
	tp.diameterLabel.SetText(diameterText(tp.state.Brush.Diameter))

	tp.primary.FillColor = tp.state.Primary
	tp.primary.Refresh()
	tp.secondary.FillColor = tp.state.Secondary
	tp.secondary.Refresh()
}

func (tp *ToolsPanel) onToolSelected(name string) {
	if tp.syncing {
		return
	}
	t, err := tools.ParseTool(name)
	if err != nil {
		return
	}
	tp.canvas.Do(func(s *app.State) { s.SetTool(t) })
}

func (tp *ToolsPanel) onHardToggled(hard bool) {
	if tp.syncing {
		return
	}
	mode := brush.ModeSmooth
	if hard {
		mode = brush.ModeHard
	}
	tp.canvas.Do(func(s *app.State) { s.SetBrushMode(mode) })
}

func (tp *ToolsPanel) onDiameterChanged(v float64) {
	if tp.syncing {
		return
	}
	tp.canvas.Do(func(s *app.State) { s.SetBrushDiameter(float32(v)) })
}

func (tp *ToolsPanel) pickColor(primary bool) {
	if tp.window == nil {
		return
	}
	title := "Secondary Color"
	if primary {
		title = "Primary Color"
	}
	tp.canvas.Interrupt()
	picker := dialog.NewColorPicker(title, "Paint colors are always opaque", func(c color.Color) {
		rgba := colorutil.ToRGBA(c)
		rgba.A = 255
		var err error
		tp.canvas.Do(func(s *app.State) {
			if primary {
				err = s.SetPrimaryColor(rgba)
			} else {
				err = s.SetSecondaryColor(rgba)
			}
		})
		if err != nil {
			dialog.ShowError(err, tp.window)
		}
	}, tp.window)
	picker.Advanced = true
	picker.Show()
}

func diameterText(d float32) string {
	return fmt.Sprintf("Diameter: %.0f px", d)
}
