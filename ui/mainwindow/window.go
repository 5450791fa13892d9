// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"pixel-editor/internal/app"
	"pixel-editor/internal/brush"
	"pixel-editor/internal/config"
	pximage "pixel-editor/internal/image"
	"pixel-editor/internal/tools"
	"pixel-editor/internal/version"
	"pixel-editor/pkg/geometry"
	"pixel-editor/ui/canvas"
	"pixel-editor/ui/dialogs"
	"pixel-editor/ui/panels"
	"pixel-editor/ui/prefs"
)

const defaultSaveName = "untitled.png"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	state      *app.State
	cfg        config.Config
	prefs      *prefs.Prefs
	logger     *zap.Logger
	canvas     *canvas.EditorCanvas
	toolsPanel *panels.ToolsPanel
	split      *container.Split
	statusBar  *widget.Label
	pointerPos *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, cfg config.Config) *MainWindow {
	win := fyneApp.NewWindow(version.Name)

	mw := &MainWindow{
		Window: win,
		state:  state,
		cfg:    cfg,
		prefs:  prefs.New(fyneApp),
		logger: state.Logger().Named("ui"),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.updateTitle()

	mw.Resize(mw.prefs.WindowSize())
	mw.SetOnClosed(func() {
		mw.prefs.SetPanelOffset(mw.split.Offset)
		mw.prefs.SetWindowSize(mw.Window.Canvas().Size())
	})

	return mw
}

// EditorCanvas returns the editing canvas.
func (mw *MainWindow) EditorCanvas() *canvas.EditorCanvas {
	return mw.canvas
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewEditorCanvas(mw.state, mw.cfg.View.ZoomStep, mw.cfg.View.DragThreshold)

	mw.toolsPanel = panels.NewToolsPanel(mw.state, mw.canvas)
	mw.toolsPanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")
	mw.pointerPos = widget.NewLabel("")
	mw.canvas.OnPointer(mw.onPointer)

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,   // top
		nil,       // bottom
		nil,       // left
		nil,       // right
		mw.canvas, // center
	)

	mw.split = container.NewHSplit(mw.toolsPanel.Container(), canvasArea)
	mw.split.SetOffset(mw.prefs.PanelOffset())

	status := container.NewBorder(nil, nil, nil, mw.pointerPos, mw.statusBar)
	content := container.NewBorder(
		nil,                         // top
		container.NewPadded(status), // bottom
		nil,                         // left
		nil,                         // right
		mw.split,                    // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.onZoomOut),
		widget.NewButton("+", mw.onZoomIn),
		widget.NewButton("Reset", mw.onResetView),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New...", mw.onNew),
		fyne.NewMenuItem("Open...", mw.onOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSave),
		fyne.NewMenuItem("Save As...", mw.onSaveAs),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Swap Colors", func() {
			mw.canvas.Do(func(s *app.State) { s.SwapColors() })
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Reset View", mw.onResetView),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Pan", func() { mw.selectTool(tools.ToolPan) }),
		fyne.NewMenuItem("Brush", func() { mw.selectTool(tools.ToolBrush) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Smooth Brush", func() { mw.selectMode(brush.ModeSmooth) }),
		fyne.NewMenuItem("Hard Pixel Brush", func() { mw.selectMode(brush.ModeHard) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu))
}

// setupEventHandlers registers for application events. Listeners may run
// while the canvas holds the state, so they only touch widgets.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventModified, func(interface{}) {
		mw.updateTitle()
	})

	mw.state.On(app.EventImageReplaced, func(data interface{}) {
		mw.updateTitle()
		if buf, ok := data.(*pximage.PixelBuffer); ok {
			mw.updateStatus(fmt.Sprintf("%d x %d", buf.Width(), buf.Height()))
		}
	})

	mw.state.On(app.EventImageSaved, func(data interface{}) {
		mw.updateTitle()
		if path, ok := data.(string); ok {
			mw.updateStatus("Saved " + filepath.Base(path))
		}
	})

	mw.state.On(app.EventToolChanged, func(data interface{}) {
		if t, ok := data.(tools.Tool); ok {
			mw.updateStatus(t.String() + " tool")
		}
	})
}

// updateTitle shows the document name and modified marker.
func (mw *MainWindow) updateTitle() {
	mw.SetTitle(mw.state.Title(version.Name))
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) onPointer(pos geometry.Point, inside bool) {
	if !inside {
		mw.pointerPos.SetText("")
		return
	}
	mw.pointerPos.SetText(fmt.Sprintf("%d, %d", int(pos.X), int(pos.Y)))
}

// showError logs and displays an error.
func (mw *MainWindow) showError(action string, err error) {
	mw.logger.Error(action+" failed", zap.Error(err))
	dialog.ShowError(err, mw.Window)
}

// Menu action handlers

func (mw *MainWindow) onNew() {
	mw.canvas.Interrupt()
	dialogs.NewNewImageDialog(mw.Window, mw.cfg.Image.Width, mw.cfg.Image.Height, func(w, h int) {
		var err error
		mw.canvas.Do(func(s *app.State) { err = s.NewImage(w, h) })
		if err != nil {
			mw.showError("new image", err)
		}
	}).Show()
}

func (mw *MainWindow) onOpen() {
	mw.canvas.Interrupt()
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.prefs.RememberFile(path)

		var openErr error
		mw.canvas.Do(func(s *app.State) { openErr = s.Open(path) })
		if openErr != nil {
			mw.showError("open", openErr)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(pximage.SupportedFormats()))
	if loc := mw.prefs.LastDirURI(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSave() {
	var err error
	mw.canvas.Do(func(s *app.State) { err = s.Save() })
	if errors.Is(err, app.ErrNoPath) {
		mw.onSaveAs()
		return
	}
	if err != nil {
		mw.showError("save", err)
	}
}

func (mw *MainWindow) onSaveAs() {
	mw.canvas.Interrupt()
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		mw.saveAsPath(writer.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(pximage.SaveFormats()))
	name := defaultSaveName
	if mw.state.Path != "" {
		name = filepath.Base(mw.state.Path)
	}
	fd.SetFileName(name)
	if loc := mw.prefs.LastDirURI(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// saveAsPath saves to the file the save dialog picked. The dialog has already
// created that file, so when a .png extension has to be added the empty
// file left behind under the chosen name is removed.
func (mw *MainWindow) saveAsPath(chosen string) {
	path := chosen
	if !isSaveExt(path) {
		path += ".png"
		removeIfEmpty(chosen, mw.logger)
	}
	mw.prefs.RememberFile(path)

	var err error
	mw.canvas.Do(func(s *app.State) { err = s.SaveAs(path) })
	if err != nil {
		mw.showError("save", err)
	}
}

func (mw *MainWindow) onUndo() {
	mw.updateStatus("Undo not yet implemented")
}

func (mw *MainWindow) onRedo() {
	mw.updateStatus("Redo not yet implemented")
}

func (mw *MainWindow) onZoomIn() {
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onResetView() {
	mw.canvas.Do(func(s *app.State) { s.ResetView() })
}

func (mw *MainWindow) selectTool(t tools.Tool) {
	mw.canvas.Do(func(s *app.State) { s.SetTool(t) })
}

func (mw *MainWindow) selectMode(m brush.Mode) {
	mw.canvas.Do(func(s *app.State) { s.SetBrushMode(m) })
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+version.Name,
		fmt.Sprintf("%s v%s\n\n"+
			"A small raster image editor.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Name, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// isSaveExt reports whether the path has an extension the encoder supports.
func isSaveExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range pximage.SaveFormats() {
		if f == ext {
			return true
		}
	}
	return false
}

// removeIfEmpty deletes path if it is an empty regular file.
func removeIfEmpty(path string, logger *zap.Logger) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() != 0 {
		return
	}
	if err := os.Remove(path); err != nil {
		logger.Warn("could not remove empty file", zap.String("path", path), zap.Error(err))
	}
}
