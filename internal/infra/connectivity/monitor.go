// Package connectivity tracks whether the remote document store is reachable.
package connectivity

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"meetroom/internal/pkg/config"
)

type Prober interface {
	Ping(ctx context.Context) error
}

// Monitor starts offline; the first successful probe counts as a transition
// to online, so listeners also fire once at startup when the store is up.
type Monitor struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	online    atomic.Bool
	mu        sync.Mutex
	listeners []func(context.Context)
}

func NewMonitor(prober Prober, cfg config.ConnectivityConfig, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		prober:   prober,
		interval: cfg.ProbeInterval,
		timeout:  cfg.ProbeTimeout,
		logger:   logger,
	}
}

func (m *Monitor) Online() bool {
	return m.online.Load()
}

// OnOnline registers fn to run after every offline→online transition.
func (m *Monitor) OnOnline(fn func(context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Check probes once and updates the state. Listeners run synchronously on
// the caller's goroutine.
func (m *Monitor) Check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.prober.Ping(probeCtx)
	cancel()

	up := err == nil
	was := m.online.Swap(up)

	switch {
	case up && !was:
		m.logger.Info("Remote store reachable")
		m.notify(ctx)
	case !up && was:
		m.logger.Warn("Remote store unreachable, writes will be queued", slog.String("error", err.Error()))
	}
	return up
}

// Run probes on every tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

func (m *Monitor) notify(ctx context.Context) {
	m.mu.Lock()
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx)
	}
}

// Static reports a fixed state. Used when no probing is wanted.
type Static bool

func (s Static) Online() bool { return bool(s) }
