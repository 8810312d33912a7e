package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/diegok/puckstop/internal/config"
	"github.com/diegok/puckstop/internal/logging"
	"github.com/diegok/puckstop/internal/server"
)

// Run starts the configured mix of game and leaderboard service and blocks
// until both have stopped. Quitting the game stops a hosted service too.
func Run(ctx context.Context, cfg *config.Config) error {
	// tcell owns the terminal while playing
	logPath := cfg.LogFile
	if cfg.Headless {
		logPath = "stderr"
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Path: logPath})
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Serve {
		store := server.NewStore(cfg.DataFile, log.Named("store"))
		srv := server.NewServer(cfg.Addr(), store, log.Named("server"))
		log.Info("leaderboard service starting",
			zap.String("addr", cfg.Addr()),
			zap.String("data", cfg.DataFile))
		g.Go(func() error {
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("leaderboard service: %w", err)
			}
			return nil
		})
	}

	if !cfg.Headless {
		table, err := loadTable(cfg, log)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		a := NewApp(cfg, table, log.Named("game"))
		g.Go(func() error {
			defer cancel()
			return a.Run(ctx)
		})
	}

	return g.Wait()
}

// loadTable reads the game table. A broken custom file falls back to the
// embedded one so the game stays playable.
func loadTable(cfg *config.Config, log *zap.Logger) (*config.Game, error) {
	table, err := config.LoadGameFile(cfg.LayoutFile)
	if err != nil {
		if cfg.LayoutFile == "" {
			return nil, err
		}
		log.Warn("game table unusable, using defaults",
			zap.String("path", cfg.LayoutFile),
			zap.Error(err))
		if table, err = config.LoadGameFile(""); err != nil {
			return nil, err
		}
	}
	table.Apply(cfg)
	return table, nil
}
