// Package registry maps scenario ids to battle factories.
// The CLI builds one Registry from the loaded configuration and the
// platform layer creates battles through it without knowing how they are
// assembled.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/hex-skirmish/internal/core"
)

// Game is a playable battle as seen by the platform layer.
// Implementations contain no Bubble Tea code. The platform handles input
// mapping, timing and terminal output.
type Game interface {
	// ID returns the scenario id (e.g. "duel"). Used for CLI commands and
	// battle history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh battle.
	// Called once at start and again when restarting after the battle ends.
	Reset(cfg core.RuntimeConfig)

	// Step advances the battle by one frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current battle into the screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new battle instance.
type Factory func() Game

// Registry holds scenario factories. The zero value is not usable; call New.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	info      map[string]Info
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		info:      make(map[string]Info),
	}
}

// Register adds a scenario factory.
// Returns an error if the id is empty or already registered.
func (r *Registry) Register(info Info, f Factory) error {
	if info.ID == "" {
		return fmt.Errorf("registry: empty scenario id")
	}
	if f == nil {
		return fmt.Errorf("registry: nil factory for %q", info.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[info.ID]; exists {
		return fmt.Errorf("registry: scenario %q already registered", info.ID)
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	r.factories[info.ID] = f
	r.info[info.ID] = info
	return nil
}

// List returns all registered scenarios, sorted by id.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.info))
	for _, info := range r.info {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the metadata of a scenario.
func (r *Registry) Lookup(id string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.info[id]
	return info, ok
}

// Create instantiates a new battle by scenario id.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}
	return f(), nil
}

// Exists reports whether a scenario id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}
