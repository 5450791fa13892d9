// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// maxDimension bounds new documents to keep the buffer allocation sane.
const maxDimension = 16384

// NewImageDialog asks for the size of a new document.
type NewImageDialog struct {
	window fyne.Window
	width  int
	height int

	widthEntry  *widget.Entry
	heightEntry *widget.Entry

	onCreate func(width, height int)
}

// NewNewImageDialog creates the dialog pre-filled with the given size.
func NewNewImageDialog(window fyne.Window, width, height int, onCreate func(width, height int)) *NewImageDialog {
	return &NewImageDialog{
		window:   window,
		width:    width,
		height:   height,
		onCreate: onCreate,
	}
}

// Show displays the dialog.
func (d *NewImageDialog) Show() {
	d.widthEntry = widget.NewEntry()
	d.widthEntry.SetText(strconv.Itoa(d.width))
	d.widthEntry.Validator = validateDimension

	d.heightEntry = widget.NewEntry()
	d.heightEntry.SetText(strconv.Itoa(d.height))
	d.heightEntry.Validator = validateDimension

	items := []*widget.FormItem{
		widget.NewFormItem("Width (px)", d.widthEntry),
		widget.NewFormItem("Height (px)", d.heightEntry),
	}

	dlg := dialog.NewForm("New Image", "Create", "Cancel", items, func(create bool) {
		if !create {
			return
		}
		w, errW := ParseDimension(d.widthEntry.Text)
		h, errH := ParseDimension(d.heightEntry.Text)
		if errW != nil || errH != nil {
			return
		}
		if d.onCreate != nil {
			d.onCreate(w, h)
		}
	}, d.window)
	dlg.Resize(fyne.NewSize(320, 200))
	dlg.Show()
}

// ParseDimension parses a positive pixel count no larger than 16384.
func ParseDimension(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	if n <= 0 || n > maxDimension {
		return 0, fmt.Errorf("must be between 1 and %d", maxDimension)
	}
	return n, nil
}

func validateDimension(s string) error {
	_, err := ParseDimension(s)
	return err
}
