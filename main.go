// Package main provides the entry point for the Pixel Editor application.
package main

import (
	"flag"
	"fmt"

	fyneapp "fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"pixel-editor/internal/app"
	"pixel-editor/internal/config"
	"pixel-editor/internal/logging"
	"pixel-editor/internal/version"
	"pixel-editor/ui/mainwindow"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to config.toml")
	debug := flag.Bool("debug", false, "development logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, cfgErr := config.LoadOrInit(*configPath)

	logger := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		Development: *debug,
	})
	defer logger.Sync()

	if cfgErr != nil {
		logger.Warn("using default config", zap.String("path", *configPath), zap.Error(cfgErr))
	}
	logger.Info("starting",
		zap.String("version", version.Version),
		zap.String("commit", version.GitCommit),
		zap.String("config", *configPath))

	state := app.NewState(cfg, logger)

	// Handle command line arguments
	if path := flag.Arg(0); path != "" {
		if err := state.Open(path); err != nil {
			logger.Error("failed to open image", zap.String("path", path), zap.Error(err))
		}
	}

	fyneApp := fyneapp.NewWithID(version.AppID)
	fyneApp.Settings().SetTheme(&app.EditorTheme{})

	win := mainwindow.New(fyneApp, state, cfg)
	win.ShowAndRun()
}
