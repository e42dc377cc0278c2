// Package engine runs a sim.Session in real time: the frame loop, the HUD
// sampler and frame observers share one errgroup and stop together.
package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
)

// ErrAlreadyRunning is returned by Start while a run is in progress.
var ErrAlreadyRunning = errors.New("engine: already running")

// Observer receives sampled frames at the HUD cadence.
type Observer func(sim.Frame)

// Result summarizes a finished run.
type Result struct {
	HUD    sim.HUD
	Frames uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithTickRate sets the frame rate.
func WithTickRate(fps int) Option {
	return func(e *Engine) { e.tickRate = fps }
}

// WithSamplePeriod sets the HUD and observer cadence.
func WithSamplePeriod(d time.Duration) Option {
	return func(e *Engine) { e.samplePeriod = d }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver adds a frame observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// Engine owns the goroutines of one session's runs.
type Engine struct {
	session      *sim.Session
	input        sim.InputBuffer
	tickRate     int
	samplePeriod time.Duration
	logger       *log.Logger
	observers    []Observer

	mu      sync.Mutex
	cancel  context.CancelFunc
	group   *errgroup.Group
	sampler *sim.HUDSampler
}

// New creates an engine for session. The session must be Stopped.
func New(session *sim.Session, opts ...Option) *Engine {
	e := &Engine{
		session:      session,
		tickRate:     sim.DefaultTickRate,
		samplePeriod: sim.DefaultSamplePeriod,
		logger:       log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sampler = sim.NewHUDSampler(session.Counters(), e.samplePeriod)
	return e
}

// Session returns the driven session.
func (e *Engine) Session() *sim.Session {
	return e.session
}

// SetInput replaces the input snapshot used by the next frames.
func (e *Engine) SetInput(in core.InputState) {
	e.input.Set(in)
}

// Running reports whether a run is in progress.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.group != nil
}

// HUD returns the last sampled counters.
func (e *Engine) HUD() sim.HUD {
	return e.sampler.Latest()
}

// Start switches the session to Running and launches the loop, the sampler
// and the observer pump under ctx.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.group != nil {
		return ErrAlreadyRunning
	}

	e.input.Set(core.NewInputState())
	e.session.Start()
	e.sampler.Sample()

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	loop := sim.NewLoop(e.session, &e.input, sim.LoopConfig{TickRate: e.tickRate}, sim.LoopHooks{})

	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error { return e.sampler.Run(gctx) })
	if len(e.observers) > 0 {
		g.Go(func() error { return e.pump(gctx) })
	}

	e.cancel = cancel
	e.group = g
	e.logger.Debug("engine started", "fps", e.tickRate, "sample", e.samplePeriod)
	return nil
}

// Stop cancels the run, waits for its goroutines and stops the session.
// Stopping an idle engine returns the current counters.
func (e *Engine) Stop() (Result, error) {
	e.mu.Lock()
	cancel, g := e.cancel, e.group
	e.cancel, e.group = nil, nil
	e.mu.Unlock()

	var err error
	if g != nil {
		cancel()
		err = g.Wait()
	}

	frames := e.session.Frame().Number
	hud := e.session.Stop()
	e.sampler.Sample()
	e.publish(e.session.Frame())
	if g != nil {
		e.logger.Debug("engine stopped", "frames", frames)
	}
	return Result{HUD: hud, Frames: frames}, err
}

func (e *Engine) pump(ctx context.Context) error {
	ticker := time.NewTicker(e.samplePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.publish(e.session.Frame())
		}
	}
}

func (e *Engine) publish(f sim.Frame) {
	for _, o := range e.observers {
		o(f)
	}
}
