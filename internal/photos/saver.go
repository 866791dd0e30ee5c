// Photo library writer
package photos

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"instafilter/internal/core"
)

// SaveResult is the single outcome of a save: either the written path or the reason it failed
type SaveResult struct {
	Path   string
	Reason error
}

// Saved builds a successful result
func Saved(path string) SaveResult {
	return SaveResult{Path: path}
}

// Failed builds a failed result
func Failed(reason error) SaveResult {
	if reason == nil {
		reason = fmt.Errorf("save failed")
	}
	return SaveResult{Reason: reason}
}

// OK reports whether the save succeeded
func (r SaveResult) OK() bool {
	return r.Reason == nil
}

func (r SaveResult) String() string {
	if r.OK() {
		return "saved to " + r.Path
	}
	return "save failed: " + r.Reason.Error()
}

// Library writes images as PNG files into a directory
type Library struct {
	dir    string
	logger *logrus.Logger
}

func NewLibrary(dir string, logger *logrus.Logger) *Library {
	return &Library{
		dir:    dir,
		logger: logger,
	}
}

func (l *Library) Dir() string {
	return l.dir
}

// Save writes img in the background and calls done exactly once with the outcome.
// done runs on the writer goroutine; UI callers marshal it back themselves.
func (l *Library) Save(img image.Image, done func(SaveResult)) {
	if err := core.ValidateImage(img); err != nil {
		l.report(Failed(fmt.Errorf("cannot save: %w", err)), done)
		return
	}

	go func() {
		l.report(l.write(img), done)
	}()
}

func (l *Library) report(result SaveResult, done func(SaveResult)) {
	if result.OK() {
		l.logger.WithField("filepath", result.Path).Info("Image saved successfully")
	} else {
		l.logger.WithError(result.Reason).Error("Failed to save image")
	}
	if done != nil {
		done(result)
	}
}

func (l *Library) write(img image.Image) SaveResult {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return Failed(fmt.Errorf("create library dir: %w", err))
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return Failed(fmt.Errorf("convert image: %w", err))
	}
	defer mat.Close()

	path := filepath.Join(l.dir, fmt.Sprintf("instafilter-%s.png", uuid.NewString()))
	l.logger.WithField("filepath", path).Debug("Saving image")

	if !gocv.IMWrite(path, mat) {
		return Failed(fmt.Errorf("failed to write image to %s", path))
	}
	return Saved(path)
}
