// Package main serves an interactive-fiction world over Telnet. Every
// connection plays its own session against one shared, read-only world.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/focalpoint/internal/config"
	"github.com/cory-johannsen/focalpoint/internal/frontend/handlers"
	"github.com/cory-johannsen/focalpoint/internal/frontend/telnet"
	"github.com/cory-johannsen/focalpoint/internal/game/savegame"
	"github.com/cory-johannsen/focalpoint/internal/game/session"
	"github.com/cory-johannsen/focalpoint/internal/game/world"
	"github.com/cory-johannsen/focalpoint/internal/observability"
	"github.com/cory-johannsen/focalpoint/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	worldPath := flag.String("world", "", "world document to serve (overrides game.world_path)")
	statusEvery := flag.Duration("status-interval", 5*time.Minute, "how often to log connected player counts; 0 disables")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *worldPath != "" {
		cfg.Game.WorldPath = *worldPath
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	worldStart := time.Now()
	w, err := world.LoadOrSample(cfg.Game.WorldPath)
	if err != nil {
		logger.Fatal("loading world", zap.String("path", cfg.Game.WorldPath), zap.Error(err))
	}
	logger.Info("world loaded",
		zap.String("path", cfg.Game.WorldPath),
		zap.Int("maps", len(w.Maps)),
		zap.Int("items", len(w.Items)),
		zap.Duration("elapsed", time.Since(worldStart)),
	)
	for _, warning := range w.Lint() {
		logger.Warn("world lint", zap.String("warning", warning))
	}

	store := savegame.NewStore(cfg.Game.SaveDir, cfg.Game.MaxSaveSlots)
	players := session.NewManager()
	handler := handlers.NewPlayHandler(w, store, players, cfg.Game.Color, logger)
	acceptor := telnet.NewAcceptor(cfg.Telnet, handler, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("telnet", acceptor)
	if *statusEvery > 0 {
		lifecycle.Add("status", statusReporter(*statusEvery, players, acceptor, logger))
	}

	logger.Info("server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("save_dir", store.Dir()),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// statusReporter periodically logs how many players are connected.
func statusReporter(every time.Duration, players *session.Manager, acceptor *telnet.Acceptor, logger *zap.Logger) server.Service {
	done := make(chan struct{})
	return &server.FuncService{
		StartFn: func() error {
			ticker := time.NewTicker(every)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return nil
				case <-ticker.C:
					logger.Info("server status",
						zap.Int("players", players.PlayerCount()),
						zap.Int("connections", acceptor.ActiveConnections()),
					)
				}
			}
		},
		StopFn: func() { close(done) },
	}
}
