package gui

import (
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"instafilter/internal/photos"
)

// tapArea wraps content and runs onTapped when it is tapped
type tapArea struct {
	widget.BaseWidget
	content  fyne.CanvasObject
	onTapped func()
}

func newTapArea(content fyne.CanvasObject, onTapped func()) *tapArea {
	t := &tapArea{content: content, onTapped: onTapped}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tapArea) Tapped(*fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped()
	}
}

func (t *tapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}

func (a *Application) openPicker() {
	a.debug.LogButtonClick("Select picture")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.debug.LogFileOperation("open", reader.URI().Name())
		a.loadPhoto(reader, reader.URI().Name())
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(photos.SupportedExtensions()))
	fileDialog.Show()
}

// loadPhoto decodes a picked photo; on failure the current source is kept
func (a *Application) loadPhoto(r io.Reader, name string) {
	img, err := a.loader.Decode(r, name)
	if err != nil {
		a.showError("Failed to Load Image", err)
		return
	}
	a.setSource(img, name)
}
