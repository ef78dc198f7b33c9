// Package app wires configuration into the collaborators shared by the CLI
// and the terminal UI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/tablemap/internal/adapter/source"
	"github.com/mmcdole/tablemap/internal/config"
	"github.com/mmcdole/tablemap/internal/domain"
	"github.com/mmcdole/tablemap/internal/geo"
	"github.com/mmcdole/tablemap/internal/loader"
	"github.com/mmcdole/tablemap/internal/network"
	"github.com/mmcdole/tablemap/internal/snapshot"
	"github.com/mmcdole/tablemap/internal/store"
)

// App owns the long-lived collaborators.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Catalog *geo.Catalog
	Cache   *snapshot.Cache[domain.Restaurant]
	Monitor *network.Monitor

	store   domain.KeyValueStore
	prober  *network.Prober
	fetcher domain.RestaurantFetcher

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds an App from cfg. The caller must Close it.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	catalog := geo.Default()
	if cfg.Catalog.File != "" {
		c, err := geo.LoadFile(config.ExpandHome(cfg.Catalog.File))
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		catalog = c
	}

	fetcher, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant client: %w", err)
	}

	kv, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	prober := network.NewProber(cfg.Network.ProbeAddress, cfg.Network.ProbeInterval, cfg.Network.ProbeTimeout, logger)

	monitorOpts := []network.Option{network.WithLogger(logger)}
	if online, ok := cfg.ForcedStatus(); ok {
		logger.Info("connectivity pinned by config", "online", online)
		monitorOpts = append(monitorOpts, network.WithOverride(network.Pin(online)))
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Catalog: catalog,
		Cache: snapshot.New[domain.Restaurant](kv,
			snapshot.WithTTL(cfg.Cache.TTL),
			snapshot.WithLogger(logger),
		),
		Monitor: network.NewMonitor(prober, monitorOpts...),
		store:   kv,
		prober:  prober,
		fetcher: fetcher,
	}, nil
}

// LiveScope is the scope whose restaurants are populated upstream
func (a *App) LiveScope() string {
	return a.Config.Data.LiveScope
}

// Probe checks connectivity once so the first load sees a real answer.
// It does nothing when connectivity is pinned.
func (a *App) Probe(ctx context.Context) {
	if _, forced := a.Config.ForcedStatus(); forced {
		return
	}
	a.prober.Probe(ctx)
}

// Watch keeps probing connectivity in the background until Close.
func (a *App) Watch(ctx context.Context) {
	if _, forced := a.Config.ForcedStatus(); forced {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.prober.Run(ctx)
	}()
}

// NewLoader creates a loader bound to the app's collaborators. opts are
// applied after the configured defaults.
func (a *App) NewLoader(opts ...loader.Option) *loader.Loader {
	base := []loader.Option{
		loader.WithLogger(a.Logger),
		loader.WithProjection(loader.LiveScope(a.Config.Data.LiveScope)),
		loader.WithKeyFunc(loader.FixedKey(a.Config.Cache.Key)),
	}
	return loader.New(a.Monitor, a.Cache, a.fetcher, append(base, opts...)...)
}

// Load runs a single load for scope and returns its result.
func (a *App) Load(ctx context.Context, scope string) loader.Result {
	l := a.NewLoader()
	defer l.Close()

	select {
	case <-l.Load(ctx, scope):
	case <-ctx.Done():
	}
	return l.Result()
}

// Snapshot returns the persisted restaurant snapshot, if any
func (a *App) Snapshot(ctx context.Context) (snapshot.Entry[domain.Restaurant], bool) {
	return a.Cache.Read(ctx, a.Config.Cache.Key)
}

// ClearSnapshot removes the persisted restaurant snapshot
func (a *App) ClearSnapshot(ctx context.Context) error {
	return a.Cache.Clear(ctx, a.Config.Cache.Key)
}

// Close stops background probing and releases the store.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
	return a.store.Close()
}
