package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dvrnko/autosplit/internal/config"
	"github.com/dvrnko/autosplit/internal/mem"
	"github.com/dvrnko/autosplit/internal/profile"
	"github.com/dvrnko/autosplit/internal/timer"
)

// DefaultInterval is the default tick cadence. The decision layer is
// edge-driven, so a missed tick is corrected on the next one; the cadence
// only bounds split latency.
const DefaultInterval = time.Second / 60

// Presence is the host's process-presence signal. The engine polls it once
// per tick and ends the session when the target process is gone.
type Presence interface {
	Alive() bool
}

// PresenceFunc adapts a function to the Presence interface.
type PresenceFunc func() bool

// Alive implements Presence.
func (f PresenceFunc) Alive() bool { return f() }

// Engine is the per-session tick engine.
//
// All state mutation happens inside Tick, which the host must call from
// exactly one goroutine. The snapshot is exclusively owned by the tick
// loop; there is no locking because there is no sharing.
//
// INVARIANTS:
//   - The sampling pass runs before any decision on every tick.
//   - At most one structural command (reset, split, start) per tick; reset
//     suppresses split.
//   - Start is considered only while the external timer is not running.
type Engine struct {
	prof    *profile.Profile
	sampler *Sampler
	snap    *Snapshot
	reader  mem.Reader
	cfg     config.View
	sink    timer.Sink
	clock   *Clock
	session string
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes the engine's structured logs. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithTokenGenerator overrides the session-token source. Tests use
// testutil.FixedTokens for deterministic traces.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Engine) {
		e.session = g.Generate()
	}
}

// New creates an engine for one attach session from an already-resolved
// layout. The snapshot starts empty: nothing can fire until real samples
// arrive.
func New(
	p *profile.Profile,
	layout *mem.Layout,
	r mem.Reader,
	cfg config.View,
	sink timer.Sink,
	opts ...Option,
) *Engine {
	e := &Engine{
		prof:    p,
		reader:  r,
		cfg:     cfg,
		sink:    sink,
		snap:    NewSnapshot(p),
		clock:   NewClock(),
		session: UUIDv7Generator{}.Generate(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sampler = NewSampler(p, layout, e.logger)
	return e
}

// Attach resolves the session layout through the external resolver and
// creates the engine. Resolution retries internally until the runtime
// structures exist, so this blocks until the session is workable or ctx is
// cancelled.
func Attach(
	ctx context.Context,
	p *profile.Profile,
	resolver mem.Resolver,
	r mem.Reader,
	cfg config.View,
	sink timer.Sink,
	opts ...Option,
) (*Engine, error) {
	layout, err := resolver.Resolve(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("resolve layout for %s: %w", p.Name, err)
	}
	e := New(p, layout, r, cfg, sink, opts...)

	// The one-line readiness notice. Diagnostic only.
	e.logger.Info("autosplitter ready", "profile", p.Name, "session", e.session)
	return e, nil
}

// Session returns the session token.
func (e *Engine) Session() string { return e.session }

// Snapshot returns the session's watched values. The caller must not retain
// it across session boundaries.
func (e *Engine) Snapshot() *Snapshot { return e.snap }

// Tick runs one sampling pass and one decision pass, issuing timer commands
// for whatever edges this tick exposed. Must be called from exactly one
// goroutine. Never fails: all read errors degrade to "treat as unchanged".
func (e *Engine) Tick() Outcome {
	out := Outcome{Tick: e.clock.Next()}

	e.sampler.Pass(e.reader, e.snap)

	state := e.sink.State()
	if state == timer.Running || state == timer.Paused {
		// Loading transitions gate elapsed-time accrual. Only transitions
		// are forwarded; steady state issues nothing.
		if pair, ok := loadingSignal(e.snap, e.prof); ok && pair.Changed() {
			e.sink.SetLoadingPaused(pair.Current)
			out.Loading = &pair.Current
			e.logger.Debug("loading transition", "session", e.session, "tick", out.Tick, "loading", pair.Current)
		}

		if d, ok := elapsedTime(e.snap); ok {
			e.sink.SetElapsedTime(d)
			out.Elapsed = &d
		}

		if shouldReset(e.snap, e.prof, e.cfg) {
			e.sink.Reset()
			out.Reset = true
			e.logger.Info("reset", "session", e.session, "tick", out.Tick)
		} else if shouldSplit(e.snap, e.prof, e.cfg) {
			e.sink.Split()
			out.Split = true
			e.logger.Info("split", "session", e.session, "tick", out.Tick,
				"level", e.snap.LevelID.CurrentOr(0))
		}
	}

	if e.sink.State() == timer.NotRunning && shouldStart(e.snap, e.prof, e.cfg) {
		e.sink.Start()
		out.Started = true

		// Re-evaluate loading once so accrual begins in the correct
		// paused/running state. With no signal yet, start paused: the first
		// real sample corrects it, and early menus are usually transitions.
		paused := true
		if pair, ok := loadingSignal(e.snap, e.prof); ok {
			paused = pair.Current
		}
		e.sink.SetLoadingPaused(paused)
		out.Loading = &paused
		e.logger.Info("run started", "session", e.session, "tick", out.Tick, "paused", paused)
	}

	return out
}

// Run drives the tick loop at a fixed cadence until the target process
// closes or ctx is cancelled. The tick boundary is the only suspension
// point; ticks never overlap.
func (e *Engine) Run(ctx context.Context, interval time.Duration, proc Presence) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.Info("engine starting", "session", e.session, "profile", e.prof.Name, "interval", interval)

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopping: context cancelled", "session", e.session)
			return ctx.Err()

		case <-ticker.C:
			if !proc.Alive() {
				e.logger.Info("engine stopping: process closed", "session", e.session)
				return nil
			}
			e.Tick()
		}
	}
}
