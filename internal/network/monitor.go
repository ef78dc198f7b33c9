// Package network turns a raw connectivity signal into a boolean stream.
package network

import (
	"log/slog"
	"sync"
)

// Status is a raw connectivity event. A nil IsConnected means the device
// could not tell, which is reported as offline.
type Status struct {
	IsConnected *bool
}

// Online coerces the status to a boolean
func (s Status) Online() bool {
	return s.IsConnected != nil && *s.IsConnected
}

// Connected builds a Status with a definite value
func Connected(online bool) Status {
	return Status{IsConnected: &online}
}

// Source is the device connectivity signal.
type Source interface {
	// Current returns the last known status; known is false before the first signal.
	Current() (status Status, known bool)
	// Subscribe registers fn for every subsequent status and returns its removal.
	// fn must not be invoked from within Subscribe itself.
	Subscribe(fn func(Status)) (unsubscribe func())
}

// Monitor wraps a Source with an optional override.
type Monitor struct {
	source   Source
	override Override
	logger   *slog.Logger
}

// Option configures a Monitor
type Option func(*Monitor)

// WithOverride pins reported values while the override is active
func WithOverride(o Override) Option {
	return func(m *Monitor) { m.override = o }
}

// WithLogger sets the monitor logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) { m.logger = logger }
}

// NewMonitor creates a monitor over source.
func NewMonitor(source Source, opts ...Option) *Monitor {
	m := &Monitor{source: source}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Online returns the current resolved connectivity. Before the device has
// reported anything the answer is optimistically true.
func (m *Monitor) Online() bool {
	if online, ok := m.forced(); ok {
		return online
	}
	status, known := m.source.Current()
	if !known {
		return true
	}
	return status.Online()
}

func (m *Monitor) forced() (bool, bool) {
	if m.override == nil {
		return false, false
	}
	return m.override.Forced()
}

func (m *Monitor) resolve(s Status) bool {
	if online, ok := m.forced(); ok {
		return online
	}
	return s.Online()
}

// subscription serializes delivery for one subscriber so the initial value is
// always seen before any device event.
type subscription struct {
	mu       sync.Mutex
	closed   bool
	onChange func(bool)
}

func (s *subscription) deliver(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onChange(online)
}

// Subscribe invokes onChange immediately with the current state and then on
// every device event. The returned function removes exactly the listener this
// call registered and may be called more than once.
func (m *Monitor) Subscribe(onChange func(online bool)) (unsubscribe func()) {
	sub := &subscription{onChange: onChange}

	// Hold the subscription lock so device events queue behind the initial value
	sub.mu.Lock()
	remove := m.source.Subscribe(func(s Status) {
		sub.deliver(m.resolve(s))
	})
	onChange(m.Online())
	sub.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.mu.Lock()
			sub.closed = true
			sub.mu.Unlock()
			remove()
			m.logger.Debug("connectivity listener removed")
		})
	}
}
