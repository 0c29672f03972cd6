// Package main plays an interactive-fiction world in the local terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/focalpoint/internal/config"
	"github.com/cory-johannsen/focalpoint/internal/game/engine"
	"github.com/cory-johannsen/focalpoint/internal/game/savegame"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
	"github.com/cory-johannsen/focalpoint/internal/observability"
	"github.com/cory-johannsen/focalpoint/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "optional configuration file")
	worldPath := flag.String("world", "", "world document to play (default: the built-in sample)")
	logPath := flag.String("log", "focalpoint.log", "log file; the terminal is reserved for the game")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *worldPath != "" {
		cfg.Game.WorldPath = *worldPath
	}
	cfg.Logging.File = *logPath

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	w, err := world.LoadOrSample(cfg.Game.WorldPath)
	if err != nil {
		fmt.Printf("Error loading world: %v\n", err)
		os.Exit(1)
	}
	logger.Info("world loaded", zap.String("path", cfg.Game.WorldPath), zap.Int("maps", len(w.Maps)))

	store := savegame.NewStore(cfg.Game.SaveDir, cfg.Game.MaxSaveSlots)
	in := engine.New(w, nil, logger)

	if err := tui.Run(in, store, logger); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}
