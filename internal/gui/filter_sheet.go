package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"instafilter/internal/filters"
)

// showFilterSheet lists every filter; Cancel leaves the selection unchanged
func (a *Application) showFilterSheet() {
	a.debug.LogButtonClick("Change Filter")

	a.filterChoice = a.filterChoices()
	choices := container.NewVBox()
	for _, btn := range a.filterChoice {
		choices.Add(btn)
	}

	a.filterCancel = widget.NewButton("Cancel", func() {
		a.debug.LogButtonClick("Cancel")
		a.filterSheet.Hide()
	})

	a.filterSheet = dialog.NewCustomWithoutButtons("Select a filter", container.NewVScroll(choices), a.window)
	a.filterSheet.SetButtons([]fyne.CanvasObject{a.filterCancel})
	a.filterSheet.Show()
}

// filterChoices builds one button per kind, in menu order. Tapping a button
// closes the sheet and switches the engine to that kind.
func (a *Application) filterChoices() []*widget.Button {
	kinds := filters.AllKinds()
	buttons := make([]*widget.Button, 0, len(kinds))
	for _, kind := range kinds {
		k := kind
		btn := widget.NewButton(k.String(), func() {
			if a.filterSheet != nil {
				a.filterSheet.Hide()
			}
			a.selectFilter(k)
		})
		if k == a.engine.Kind() {
			btn.Importance = widget.HighImportance
		}
		buttons = append(buttons, btn)
	}
	return buttons
}
