// Package main is the entry point for the glchapters viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/glchapters/internal/app"
	"github.com/Faultbox/glchapters/internal/config"
	"github.com/Faultbox/glchapters/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.PickModel() {
		path, err := pickModel(cfg.Scene.Model)
		switch {
		case errors.Is(err, dialog.ErrCancelled):
			logger.Info("model selection cancelled")
			return
		case err != nil:
			logger.Error("model picker failed", zap.Error(err))
			os.Exit(1)
		}
		cfg.Scene.Model = path
		cfg.Scene.Chapter = config.ChapterModel
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("=== glchapters ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
