package sim

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
)

var (
	// ErrSessionRunning is returned by editor operations while Running.
	ErrSessionRunning = errors.New("sim: session is running")
	// ErrUnknownEntity is returned when an id is not in the editor collection.
	ErrUnknownEntity = errors.New("sim: unknown entity")
	// ErrNotRunning is returned by Step while Stopped.
	ErrNotRunning = errors.New("sim: session is not running")
)

// Editor placement constants.
const (
	DuplicateOffset = 50.0
)

// State is the session's scheduler state.
type State int

const (
	// StateStopped is editor mode: entities are edited, nothing steps.
	StateStopped State = iota
	// StateRunning steps a deep copy of the editor collection every frame.
	StateRunning
)

// String returns the state name.
func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// Frame is the output of one frame, read-only for consumers. A published
// Frame's slices are never written again, so it is safe to keep.
type Frame struct {
	State     State      `json:"state"`
	Number    uint64     `json:"frame"`
	Entities  []Entity   `json:"-"`
	Particles []Particle `json:"-"`
	HUD       HUD        `json:"hud"`
}

// Session is the Stopped/Running state machine around a World. In Stopped
// it holds the editor collection; Start snapshots it into a fresh World and
// Stop discards the World.
type Session struct {
	mu       sync.Mutex
	cfg      Config
	editor   []Entity
	nextID   EntityID
	state    State
	world    *World
	counters *Counters
	frame    Frame
	logger   *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a stopped session whose editor collection holds a copy
// of initial. Every entity gets a fresh id in order.
func NewSession(cfg Config, initial []Entity, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg.withDefaults(),
		counters: NewCounters(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.editor = make([]Entity, 0, len(initial))
	for _, e := range initial {
		e = e.Clone()
		e.ID = s.allocID()
		s.editor = append(s.editor, e)
	}
	s.publishLocked()
	return s
}

func (s *Session) allocID() EntityID {
	s.nextID++
	return s.nextID
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Counters returns the score/lives pair. The pointer is stable for the
// session's lifetime; Start resets it in place.
func (s *Session) Counters() *Counters {
	return s.counters
}

// State returns the current scheduler state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start switches Stopped to Running: the editor collection is deep-copied
// into a new World, particles start empty and the counters reset to
// (0, DefaultLives). Starting a running session is a no-op.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		return
	}
	s.counters.Reset()
	s.world = NewWorld(s.cfg, s.editor, s.counters, s.logger)
	s.state = StateRunning
	s.publishLocked()
	s.logger.Info("run started", "scheme", s.cfg.Scheme, "entities", len(s.editor))
}

// Stop switches Running to Stopped and discards the live world; the visible
// collection reverts to the editor's. It returns the counters at the moment
// of stopping. A frame waiting on the lock observes Stopped and is dropped.
func (s *Session) Stop() HUD {
	s.mu.Lock()
	defer s.mu.Unlock()
	final := s.counters.Snapshot()
	if s.state == StateStopped {
		return final
	}
	frames := s.world.Frame()
	s.world = nil
	s.state = StateStopped
	s.publishLocked()
	s.logger.Info("run stopped", "frames", frames, "score", final.Score, "lives", final.Lives)
	return final
}

// Toggle flips between Running and Stopped and returns the new state.
func (s *Session) Toggle() State {
	if s.State() == StateRunning {
		s.Stop()
		return StateStopped
	}
	s.Start()
	return StateRunning
}

// Step advances the live world by one frame.
func (s *Session) Step(in core.InputState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return ErrNotRunning
	}
	s.world.Step(in)
	s.publishLocked()
	return nil
}

// Frame returns the most recently published frame.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

func (s *Session) publishLocked() {
	f := Frame{State: s.state, HUD: s.counters.Snapshot()}
	if s.state == StateRunning {
		f.Number = s.world.Frame()
		f.Entities = s.world.Entities()
		f.Particles = s.world.Particles()
	} else {
		f.Entities = cloneEntities(s.editor)
	}
	s.frame = f
}

// EditorEntities returns a copy of the editor collection.
func (s *Session) EditorEntities() []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntities(s.editor)
}

// Add appends e to the editor collection under a fresh id.
func (s *Session) Add(e Entity) (EntityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		return 0, ErrSessionRunning
	}
	e = e.Clone()
	e.ID = s.allocID()
	s.editor = append(s.editor, e)
	s.publishLocked()
	return e.ID, nil
}

// Update applies fn to the editor entity with the given id. The id cannot
// be changed through fn.
func (s *Session) Update(id EntityID, fn func(*Entity)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexLocked(id)
	if err != nil {
		return err
	}
	fn(&s.editor[i])
	s.editor[i].ID = id
	s.publishLocked()
	return nil
}

// Move places the editor entity at pos.
func (s *Session) Move(id EntityID, pos core.Vec2) error {
	return s.Update(id, func(e *Entity) {
		e.Pos = pos
	})
}

// Remove deletes the editor entity with the given id. Its id is not reused.
func (s *Session) Remove(id EntityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexLocked(id)
	if err != nil {
		return err
	}
	s.editor = append(s.editor[:i], s.editor[i+1:]...)
	s.publishLocked()
	return nil
}

// Duplicate copies the editor entity, offset by DuplicateOffset on both
// axes, under a fresh id.
func (s *Session) Duplicate(id EntityID) (EntityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexLocked(id)
	if err != nil {
		return 0, err
	}
	dup := s.editor[i].Clone()
	dup.ID = s.allocID()
	dup.Pos = dup.Pos.Add(core.Vec2{X: DuplicateOffset, Y: DuplicateOffset})
	s.editor = append(s.editor, dup)
	s.publishLocked()
	return dup.ID, nil
}

func (s *Session) indexLocked(id EntityID) (int, error) {
	if s.state == StateRunning {
		return -1, ErrSessionRunning
	}
	for i := range s.editor {
		if s.editor[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %d", ErrUnknownEntity, id)
}
