package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-collector/internal/config"
	"github.com/vovakirdan/maze-collector/internal/core"
	"github.com/vovakirdan/maze-collector/internal/engine"
	"github.com/vovakirdan/maze-collector/internal/i18n"
	"github.com/vovakirdan/maze-collector/internal/levels"
	"github.com/vovakirdan/maze-collector/internal/platform/tui"
	"github.com/vovakirdan/maze-collector/internal/storage"
)

// app bundles everything a command needs after config resolution.
type app struct {
	cfg      config.AppConfig
	logger   *log.Logger
	messages *i18n.Catalog
	loader   *levels.Loader
	engine   *engine.Engine
}

// loadApp resolves config and applies global flag overrides.
func loadApp(logOut io.Writer) (*app, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagLocale != "" {
		cfg.Locale = flagLocale
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLevelsDir != "" {
		cfg.LevelsDir = flagLevelsDir
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "collector",
	})
	lvl, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	messages, err := i18n.Load(cfg.Locale)
	if err != nil {
		return nil, err
	}

	loader := levels.NewBundledLoader()
	if cfg.LevelsDir != "" {
		dir, err := config.ExpandHome(cfg.LevelsDir)
		if err != nil {
			return nil, err
		}
		loader = levels.NewLoader(dir)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		messages: messages,
		loader:   loader,
		engine:   engine.New(engine.Options{MaxSteps: cfg.Engine.MaxSteps, Logger: logger}),
	}, nil
}

// openStore opens the runs database. Failure is logged, not fatal:
// levels stay playable without history.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(a.cfg.DBPath)
	if err != nil {
		a.logger.Warn("could not open runs database", "path", a.cfg.DBPath, "error", err)
		return nil
	}
	return store
}

// services builds the TUI collaborators.
func (a *app) services(store *storage.Store) (tui.Services, error) {
	lvls, err := a.loader.LoadAll()
	if err != nil {
		return tui.Services{}, err
	}
	if len(lvls) == 0 {
		return tui.Services{}, fmt.Errorf("no levels found")
	}
	return tui.Services{
		Levels:   lvls,
		Engine:   a.engine,
		Messages: a.messages,
		Store:    store,
		Logger:   a.logger,
	}, nil
}

// runtime builds the per-session runtime config.
func (a *app) runtime(width, height int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.StepDelay = time.Duration(a.cfg.Engine.StepDelayMS) * time.Millisecond
	if u := os.Getenv("USER"); u != "" {
		cfg.Player = u
	}
	return cfg
}

// exitOnError prints err and exits like the other commands do.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
