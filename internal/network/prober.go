package network

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"
)

const (
	defaultProbeInterval = 10 * time.Second
	defaultProbeTimeout  = 3 * time.Second
)

// DialFunc matches net.Dialer.DialContext
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Prober is a Source that infers connectivity by dialing a TCP address.
type Prober struct {
	address  string
	interval time.Duration
	timeout  time.Duration
	dial     DialFunc
	logger   *slog.Logger

	mu        sync.Mutex
	status    Status
	known     bool
	listeners map[uint64]func(Status)
	nextID    uint64
}

// NewProber creates a prober for address (host:port).
func NewProber(address string, interval, timeout time.Duration, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	d := &net.Dialer{}
	return &Prober{
		address:   address,
		interval:  interval,
		timeout:   timeout,
		dial:      d.DialContext,
		logger:    logger,
		listeners: make(map[uint64]func(Status)),
	}
}

// SetDialer replaces the dial function
func (p *Prober) SetDialer(dial DialFunc) {
	p.dial = dial
}

func (p *Prober) Current() (Status, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status, p.known
}

func (p *Prober) Subscribe(fn func(Status)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Run probes immediately and then every interval until ctx is done.
func (p *Prober) Run(ctx context.Context) {
	p.Probe(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Probe(ctx)
		}
	}
}

// Probe performs one check and publishes the result if it changed.
func (p *Prober) Probe(ctx context.Context) bool {
	dctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	online := true
	conn, err := p.dial(dctx, "tcp", p.address)
	if err != nil {
		online = false
	} else {
		conn.Close()
	}
	p.publish(Connected(online))
	return online
}

func (p *Prober) publish(s Status) {
	p.mu.Lock()
	changed := !p.known || p.status.Online() != s.Online()
	p.status = s
	p.known = true
	if !changed {
		p.mu.Unlock()
		return
	}
	fns := make([]func(Status), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	p.logger.Info("connectivity changed", "online", s.Online(), "probe", p.address)
	for _, fn := range fns {
		fn(s)
	}
}
