package sim

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

// DefaultTickRate is the frame rate used when none is configured.
const DefaultTickRate = 60

// InputSource supplies the input snapshot for the next frame.
type InputSource interface {
	Input() core.InputState
}

// InputBuffer is a lock-guarded InputSource the presentation layer writes.
type InputBuffer struct {
	mu    sync.Mutex
	state core.InputState
}

// Set replaces the held input.
func (b *InputBuffer) Set(in core.InputState) {
	b.mu.Lock()
	b.state = in.Clone()
	b.mu.Unlock()
}

// Input returns a copy of the held input.
func (b *InputBuffer) Input() core.InputState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// LoopHooks are optional callbacks run on the loop goroutine.
type LoopHooks struct {
	// AfterStep receives each frame once it has been applied.
	AfterStep func(Frame)
}

// LoopConfig tunes the scheduler.
type LoopConfig struct {
	TickRate int
}

// Loop drives a Session at a fixed tick rate on its own goroutine. Frames
// are only stepped while the session is Running.
type Loop struct {
	session *Session
	input   InputSource
	hooks   LoopHooks
	config  LoopConfig
}

// NewLoop creates a loop stepping session with input from src.
func NewLoop(session *Session, src InputSource, cfg LoopConfig, hooks LoopHooks) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	return &Loop{session: session, input: src, hooks: hooks, config: cfg}
}

// Interval returns the time between frames.
func (l *Loop) Interval() time.Duration {
	return time.Second / time.Duration(l.config.TickRate)
}

// Run steps the session on every tick until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// A tick and a cancellation can be ready together; cancellation wins.
			if ctx.Err() != nil {
				return nil
			}
			l.Advance()
		}
	}
}

// Advance steps one frame if the session is running and reports whether a
// frame was applied.
func (l *Loop) Advance() bool {
	var in core.InputState
	if l.input != nil {
		in = l.input.Input()
	}
	if err := l.session.Step(in); err != nil {
		return false
	}
	if l.hooks.AfterStep != nil {
		l.hooks.AfterStep(l.session.Frame())
	}
	return true
}
