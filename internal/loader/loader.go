// Package loader produces the restaurant list for a scope, choosing between
// the local snapshot and the remote source based on connectivity.
package loader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/tablemap/internal/domain"
	"github.com/mmcdole/tablemap/internal/snapshot"
)

// DefaultKey is the snapshot key used for every scope
const DefaultKey = "restaurant_list_cache_v1"

// DefaultLiveScope is the only scope with populated upstream data
const DefaultLiveScope = "UK"

// Connectivity delivers the current online state on subscribe and on every
// change afterwards. *network.Monitor satisfies it.
type Connectivity interface {
	Subscribe(onChange func(online bool)) (unsubscribe func())
}

// Result is the committed state of the loader.
type Result struct {
	Scope     string
	Items     []domain.Restaurant
	Loading   bool
	Err       error
	Offline   bool
	FromCache bool
	UpdatedAt time.Time // timestamp of the snapshot the items came from
}

// Observer receives every state change. Implementations must not call back
// into the Loader.
type Observer interface {
	OnResult(Result)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Result)

func (f ObserverFunc) OnResult(r Result) { f(r) }

// Projection narrows loaded items to what a scope may show.
type Projection func(scope string, items []domain.Restaurant) []domain.Restaurant

// LiveScope yields items only for the given scope.
func LiveScope(live string) Projection {
	return func(scope string, items []domain.Restaurant) []domain.Restaurant {
		if scope != live {
			return []domain.Restaurant{}
		}
		return items
	}
}

// KeyFunc maps a scope to its snapshot key
type KeyFunc func(scope string) string

// FixedKey stores every scope under the same key
func FixedKey(key string) KeyFunc {
	return func(string) string { return key }
}

// Option configures a Loader
type Option func(*Loader)

// WithLogger sets the loader logger
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithObserver registers the state change observer
func WithObserver(o Observer) Option {
	return func(l *Loader) { l.observer = o }
}

// WithProjection replaces LiveScope(DefaultLiveScope)
func WithProjection(p Projection) Option {
	return func(l *Loader) { l.project = p }
}

// WithKeyFunc replaces FixedKey(DefaultKey)
func WithKeyFunc(f KeyFunc) Option {
	return func(l *Loader) { l.keyFunc = f }
}

// Loader runs one load at a time. Starting a new load supersedes the previous
// one; a superseded or closed load never commits.
type Loader struct {
	monitor  Connectivity
	cache    *snapshot.Cache[domain.Restaurant]
	fetcher  domain.RestaurantFetcher
	logger   *slog.Logger
	observer Observer
	project  Projection
	keyFunc  KeyFunc

	mu          sync.Mutex
	generation  uint64
	latest      uint64 // generation of the newest Load; Close leaves it alone
	online      bool
	closed      bool
	result      Result
	cancel      context.CancelFunc
	unsubscribe func()

	// serializes observer delivery so each call sees the latest state
	notifyMu sync.Mutex
}

// New creates a Loader.
func New(monitor Connectivity, cache *snapshot.Cache[domain.Restaurant], fetcher domain.RestaurantFetcher, opts ...Option) *Loader {
	l := &Loader{
		monitor: monitor,
		cache:   cache,
		fetcher: fetcher,
		project: LiveScope(DefaultLiveScope),
		keyFunc: FixedKey(DefaultKey),
		online:  true,
		result:  Result{Items: []domain.Restaurant{}},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Result returns the committed state
func (l *Loader) Result() Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result
}

// Load starts loading scope and returns a channel that is closed once this
// load has committed or been dropped.
func (l *Loader) Load(ctx context.Context, scope string) <-chan struct{} {
	done := make(chan struct{})

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		close(done)
		return done
	}
	l.generation++
	gen := l.generation
	l.latest = gen
	prevCancel, prevUnsub := l.cancel, l.unsubscribe
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.unsubscribe = nil
	l.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
	}
	if prevUnsub != nil {
		prevUnsub()
	}

	unsub := l.monitor.Subscribe(func(online bool) {
		l.setOnline(gen, online)
	})

	l.mu.Lock()
	if gen != l.generation {
		// Superseded or closed while subscribing
		l.mu.Unlock()
		unsub()
		cancel()
		close(done)
		return done
	}
	l.unsubscribe = unsub
	l.result.Scope = scope
	l.result.Loading = true
	l.result.Err = nil
	l.mu.Unlock()
	l.notify()

	l.logger.Debug("load started", "scope", scope, "generation", gen)

	go func() {
		defer close(done)
		l.run(runCtx, gen, scope)
	}()
	return done
}

// Close stops the current load. Nothing commits afterwards.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.generation++
	cancel, unsub := l.cancel, l.unsubscribe
	l.cancel, l.unsubscribe = nil, nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if unsub != nil {
		unsub()
	}
}

func (l *Loader) setOnline(gen uint64, online bool) {
	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		return
	}
	changed := l.online != online
	l.online = online
	l.result.Offline = !online
	l.mu.Unlock()

	if changed {
		l.logger.Info("connectivity changed", "online", online)
		l.notify()
	}
}

// isOnline returns the last connectivity value seen by the current load
func (l *Loader) isOnline() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.online
}

// superseded reports whether a newer Load has started since gen
func (l *Loader) superseded(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest != gen
}

func (l *Loader) run(ctx context.Context, gen uint64, scope string) {
	key := l.keyFunc(scope)

	var (
		items     []domain.Restaurant
		err       error
		fromCache bool
		updatedAt time.Time
	)

	entry, found := l.cache.Read(ctx, key)

	// Connectivity is sampled after the read so a flip during it is honoured
	online := l.isOnline()

	switch {
	case found && (!l.cache.IsStale(entry) || !online):
		l.logger.Debug("using snapshot", "key", key, "age", entry.Age(l.cache.Now()), "online", online)
		items, fromCache, updatedAt = entry.Items, true, entry.Timestamp

	case online:
		l.logger.Debug("snapshot missing or stale, fetching", "key", key)
		fetched, ferr := l.fetcher.FetchRestaurants(ctx)
		if ferr != nil {
			l.logger.Error("failed to fetch restaurants", "error", ferr)
			err = ferr
			break
		}
		fresh := l.cache.Stamp(fetched)
		// A closed loader still saves what it fetched; a newer load owns the record
		if l.superseded(gen) {
			l.logger.Debug("load superseded, skipping snapshot write", "key", key, "generation", gen)
		} else if werr := l.cache.Write(context.WithoutCancel(ctx), key, fresh); werr != nil {
			l.logger.Error("failed to save snapshot", "error", werr)
		}
		items, updatedAt = fresh.Items, fresh.Timestamp

	default:
		err = domain.ErrUnavailable
	}

	if err != nil {
		items = []domain.Restaurant{}
	} else {
		items = l.project(scope, items)
		if items == nil {
			items = []domain.Restaurant{}
		}
	}

	if !l.commit(gen, items, err, fromCache, updatedAt) {
		l.logger.Debug("load superseded, dropping result", "scope", scope, "generation", gen)
	}
}

func (l *Loader) commit(gen uint64, items []domain.Restaurant, err error, fromCache bool, updatedAt time.Time) bool {
	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		return false
	}
	l.result.Items = items
	l.result.Loading = false
	l.result.Err = err
	l.result.FromCache = fromCache
	l.result.UpdatedAt = updatedAt
	l.mu.Unlock()

	l.notify()
	return true
}

func (l *Loader) notify() {
	if l.observer == nil {
		return
	}
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()
	l.observer.OnResult(l.Result())
}
