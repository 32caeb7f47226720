// Package app composes the application with fx: config, logging, bus,
// store, API client, cache and the TUI shell.
package app

import (
	"context"
	"os"

	"github.com/codecircle/cctui/internal/api"
	"github.com/codecircle/cctui/internal/bus"
	"github.com/codecircle/cctui/internal/cache"
	"github.com/codecircle/cctui/internal/config"
	"github.com/codecircle/cctui/internal/logging"
	"github.com/codecircle/cctui/internal/state"
	"github.com/codecircle/cctui/internal/tui"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved command-line configuration passed to the fx
// module.
type Params struct {
	ConfigPath string
	BaseURL    string // optional override; empty = use config
}

// Module returns the fx module composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("cctui",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStore,
			provideAPIClient,
			provideCache,
			provideSyncer,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	cfg, err := config.Load(p.ConfigPath)
	if err != nil {
		return nil, err
	}
	if p.BaseURL != "" {
		cfg.BaseURL = p.BaseURL
		cfg.SocketURL = p.BaseURL
	}
	return cfg, nil
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogPath(), cfg.LogLevel)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStore(b *bus.Bus) *state.Store {
	return state.New(b)
}

func provideAPIClient(cfg *config.Config, logger *zap.Logger) (*api.Client, error) {
	return api.New(cfg.BaseURL, logger)
}

func provideCache(cfg *config.Config, logger *zap.Logger) (*cache.DB, error) {
	db, err := cache.Open(cfg.CachePath())
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("cache initialized", zap.String("path", cfg.CachePath()))
	return db, nil
}

func provideSyncer(db *cache.DB, store *state.Store, b *bus.Bus, logger *zap.Logger) *cache.Syncer {
	return cache.NewSyncer(db, store, b, logger)
}

func provideApp(cfg *config.Config, b *bus.Bus, store *state.Store, client *api.Client, logger *zap.Logger) *tui.App {
	return tui.NewApp(cfg, b, store, client, logger)
}

func registerLifecycle(lc fx.Lifecycle, sh fx.Shutdowner, a *tui.App, syncer *cache.Syncer, db *cache.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Restore cached chat metadata before the first paint, then
			// follow store changes.
			if err := syncer.Start(context.Background()); err != nil {
				logger.Warn("cache restore failed", zap.Error(err))
			}

			go func() {
				if err := a.Run(); err != nil {
					logger.Error("tui error", zap.Error(err))
					os.Exit(1)
				}
				_ = sh.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			a.Stop()
			syncer.Stop()
			if err := db.Close(); err != nil {
				logger.Warn("error closing cache", zap.Error(err))
			}
			logger.Info("stopped")
			return nil
		},
	})
}
