// Package app wires configuration, the terminal client, the dispatcher and
// the HTTP surface into one runnable unit.
package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"mtgate/internal/config"
	"mtgate/internal/journal"
	"mtgate/internal/logger"
	"mtgate/internal/server"
	"mtgate/internal/terminal"
	"mtgate/internal/trade"
)

type App struct {
	cfg     *config.Config
	cfgPath string
	journal *journal.Store
	http    *server.HTTPServer
}

// New builds the application from a loaded configuration without starting it.
func New(cfg *config.Config, cfgPath string) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	gw, err := terminal.NewClient(cfg.Terminal)
	if err != nil {
		return nil, fmt.Errorf("building terminal client failed: %w", err)
	}
	dispatcher := trade.NewDispatcher(gw, cfg.Trade)

	var store *journal.Store
	if cfg.Journal.Enabled {
		store, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			return nil, fmt.Errorf("opening journal failed: %w", err)
		}
		dispatcher.SetRecorder(store)
	}

	httpSrv, err := server.NewHTTPServer(server.HTTPConfig{
		Addr:       cfg.App.HTTPAddr,
		Dispatcher: dispatcher,
		Gateway:    gw,
		Journal:    store,
	})
	if err != nil {
		return nil, fmt.Errorf("building http server failed: %w", err)
	}

	return &App{cfg: cfg, cfgPath: cfgPath, journal: store, http: httpSrv}, nil
}

// Run serves until ctx is cancelled. The config file is watched so the log
// level can change without a restart.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}

	if dump, err := a.cfg.Dump(); err == nil {
		logger.Debugf("effective config:\n%s", dump)
	}

	if err := config.Watch(a.cfgPath, func(fresh *config.Config) {
		logger.SetLevel(fresh.App.LogLevel)
		logger.Infof("config reloaded, log level now %q", fresh.App.LogLevel)
	}, func(err error) {
		logger.Warnf("%v", err)
	}); err != nil {
		logger.Warnf("config watch unavailable: %v", err)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Infof("http server listening on %s", a.cfg.App.HTTPAddr)
		if err := a.http.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	err := group.Wait()
	if a.journal != nil {
		if cerr := a.journal.Close(); cerr != nil {
			logger.Warnf("closing journal failed: %v", cerr)
		}
	}
	return err
}
