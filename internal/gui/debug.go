package gui

import (
	"github.com/sirupsen/logrus"
)

// DebugGUI traces user interaction when debug mode is on
type DebugGUI struct {
	logger  *logrus.Logger
	enabled bool
}

func NewDebugGUI(logger *logrus.Logger, enabled bool) *DebugGUI {
	return &DebugGUI{
		logger:  logger,
		enabled: enabled,
	}
}

func (d *DebugGUI) LogButtonClick(buttonName string) {
	if !d.enabled {
		return
	}
	d.logger.WithField("button", buttonName).Debug("[GUI DEBUG] Button clicked")
}

func (d *DebugGUI) LogSliderChange(sliderName string, oldValue, newValue float64) {
	if !d.enabled {
		return
	}
	d.logger.WithFields(logrus.Fields{
		"slider": sliderName,
		"old":    oldValue,
		"new":    newValue,
	}).Debug("[GUI DEBUG] Slider changed")
}

func (d *DebugGUI) LogFileOperation(operation, filename string) {
	if !d.enabled {
		return
	}
	d.logger.WithFields(logrus.Fields{
		"operation": operation,
		"file":      filename,
	}).Debug("[GUI DEBUG] File operation")
}
