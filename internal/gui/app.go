// Main window: preview, parameter sliders, filter selection and save
package gui

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"instafilter/internal/config"
	"instafilter/internal/core"
	"instafilter/internal/filters"
	"instafilter/internal/photos"
)

const AppTitle = "Instafilter"

// Saver persists an output image and reports exactly one result
type Saver interface {
	Save(img image.Image, done func(photos.SaveResult))
}

// Application represents the single filter screen
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger
	debug  *DebugGUI

	// Core components
	engine *core.Engine
	loader *photos.Loader
	saver  Saver

	// GUI components
	preview      *canvas.Image
	placeholder  *widget.Label
	imageArea    *tapArea
	sliders      map[filters.Parameter]*widget.Slider
	changeBtn    *widget.Button
	saveBtn      *widget.Button
	status       *widget.Label
	filterSheet  *dialog.CustomDialog
	filterChoice []*widget.Button
	filterCancel *widget.Button
}

func NewApplication(app fyne.App, cfg config.Config, backend filters.Backend, saver Saver, logger *logrus.Logger, debugMode bool) *Application {
	window := app.NewWindow(AppTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	a := &Application{
		app:     app,
		window:  window,
		logger:  logger,
		debug:   NewDebugGUI(logger, debugMode),
		engine:  core.NewEngine(backend, logger),
		loader:  photos.NewLoader(logger),
		saver:   saver,
		sliders: make(map[filters.Parameter]*widget.Slider),
	}

	a.engine.SetFilter(cfg.Filter.Kind())
	a.engine.SetParameters(cfg.Filter.Parameters())

	a.initializeGUI()
	a.setupLayout()
	a.refresh()

	return a
}

func (a *Application) initializeGUI() {
	a.preview = canvas.NewImageFromImage(nil)
	a.preview.FillMode = canvas.ImageFillContain
	a.preview.ScaleMode = canvas.ImageScaleSmooth

	a.placeholder = widget.NewLabelWithStyle("Tap to select a picture", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	background := canvas.NewRectangle(color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	background.SetMinSize(fyne.NewSize(300, 300))

	a.imageArea = newTapArea(container.NewStack(
		background,
		container.NewCenter(a.placeholder),
		a.preview,
	), a.openPicker)

	params := a.engine.Parameters()
	for _, p := range filters.AllParameters() {
		lo, hi := p.Bounds()
		slider := widget.NewSlider(lo, hi)
		slider.Step = (hi - lo) / 200
		slider.Value = params.Get(p)
		param := p
		slider.OnChanged = func(v float64) {
			a.onParameterChanged(param, v)
		}
		a.sliders[p] = slider
	}

	a.changeBtn = widget.NewButtonWithIcon("Change Filter", theme.ColorPaletteIcon(), a.showFilterSheet)

	a.saveBtn = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), a.save)
	a.saveBtn.Importance = widget.HighImportance

	a.status = widget.NewLabel("")
}

func (a *Application) setupLayout() {
	rows := container.NewVBox()
	for _, p := range filters.AllParameters() {
		label := widget.NewLabelWithStyle(p.String(), fyne.TextAlignTrailing, fyne.TextStyle{})
		rows.Add(container.NewBorder(nil, nil, container.NewGridWrap(fyne.NewSize(80, 36), label), nil, a.sliders[p]))
	}

	buttons := container.NewBorder(nil, nil, a.changeBtn, a.saveBtn)

	bottom := container.NewVBox(
		rows,
		widget.NewSeparator(),
		buttons,
		a.status,
	)

	content := container.NewBorder(nil, bottom, nil, nil, container.NewPadded(a.imageArea))
	a.window.SetContent(container.NewPadded(content))
}

// onParameterChanged forwards a slider change to the engine
func (a *Application) onParameterChanged(p filters.Parameter, v float64) {
	old := a.engine.Parameters().Get(p)
	a.debug.LogSliderChange(p.String(), old, v)
	a.engine.SetParameter(p, v)
	a.refresh()
}

// selectFilter switches the engine to kind
func (a *Application) selectFilter(kind filters.Kind) {
	a.debug.LogButtonClick(kind.String())
	a.engine.SetFilter(kind)
	a.refresh()
}

// setSource hands a freshly picked photo to the engine
func (a *Application) setSource(img image.Image, name string) {
	a.engine.SetSource(img)
	a.refresh()
	a.updateWindowTitle(name)
}

// refresh syncs the preview and the Save button with the engine output. The
// placeholder stays hidden once a photo is loaded, even if the filter fails.
func (a *Application) refresh() {
	out := a.engine.Output()
	a.preview.Image = out
	a.preview.Refresh()

	if a.engine.HasSource() {
		a.placeholder.Hide()
	} else {
		a.placeholder.Show()
	}

	if a.engine.CanSave() {
		a.saveBtn.Enable()
	} else {
		a.saveBtn.Disable()
	}

	a.updateStatusMessage(fmt.Sprintf("Filter: %s", a.engine.Kind()))
}

func (a *Application) save() {
	a.debug.LogButtonClick("Save")

	out := a.engine.Output()
	if out == nil {
		return
	}

	a.updateStatusMessage("Saving...")
	a.saver.Save(out, func(res photos.SaveResult) {
		fyne.Do(func() {
			a.handleSaveResult(res)
		})
	})
}

func (a *Application) handleSaveResult(res photos.SaveResult) {
	if res.OK() {
		a.logger.WithField("filepath", res.Path).Info("Success!")
		a.updateStatusMessage(fmt.Sprintf("Saved: %s", res.Path))
		return
	}
	a.showError("Save Failed", res.Reason)
}

func (a *Application) updateStatusMessage(message string) {
	if a.status != nil {
		a.status.SetText(message)
	}
}

func (a *Application) updateWindowTitle(name string) {
	if name != "" {
		a.window.SetTitle(fmt.Sprintf("%s - %s", AppTitle, name))
	} else {
		a.window.SetTitle(AppTitle)
	}
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("Error: %s", err.Error()))
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")
	a.window.ShowAndRun()
}

func (a *Application) Window() fyne.Window {
	return a.window
}
