// Package registry provides a global registry of game archetypes.
// Archetypes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-gamebuilder/internal/core"
	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
)

// Game is a playable archetype: a named rule set plus its starting entities.
// It contains no presentation logic; the platform drives the Session it
// builds, maps input and renders frames.
type Game interface {
	// ID returns a unique identifier (e.g., "platformer", "breakout").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary for menus.
	Description() string

	// Scheme returns the control scheme the archetype runs under.
	Scheme() sim.ControlScheme

	// NewSession builds a stopped session holding the starting entities.
	// A seed of 0 keeps the archetype's own seed.
	NewSession(seed int64, opts ...sim.Option) *sim.Session

	// Palette lists the entity kinds the editor can place.
	Palette() []PaletteEntry

	// NewEntity builds a palette entity at the default placement.
	NewEntity(kind string) (sim.Entity, error)
}

// PaletteEntry describes one placeable entity kind.
type PaletteEntry struct {
	Kind  string
	Label string
	Color core.Color
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	order     []string
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from an init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	order = append(order, id)

	// Get metadata by creating a temporary instance
	g := f()
	infos[id] = GameInfo{ID: id, Title: g.Title(), Description: g.Description()}
}

// List returns information about all registered games in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(order))
	for _, id := range order {
		result = append(result, infos[id])
	}
	return result
}

// IDs returns the registered ids sorted alphabetically.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, len(order))
	copy(ids, order)
	sort.Strings(ids)
	return ids
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
