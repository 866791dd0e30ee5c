// Instafilter - Photo Filter Application
// Author: Ervins Strauhmanis
// License: MIT
// Version: 1.0.0 - Filter Catalog + Photo Library

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"instafilter/internal/config"
	"instafilter/internal/cvfilter"
	"instafilter/internal/gui"
	"instafilter/internal/photos"
)

const (
	AppID      = "com.instafilter.desktop"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "", "Path to a TOML config file")
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
	}).Info("Starting Instafilter")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	logger.WithFields(logrus.Fields{
		"library_dir": cfg.Library.Dir,
		"filter":      cfg.Filter.Kind().String(),
	}).Debug("Configuration loaded")

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(theme.DefaultTheme())

	library := photos.NewLibrary(cfg.Library.Dir, logger)
	mainApp := gui.NewApplication(myApp, cfg, cvfilter.NewBackend(), library, logger, *debugMode)
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
