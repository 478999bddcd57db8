package combat

import (
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

// State is a unit's position in the per-unit state machine.
type State int

const (
	StateIdle State = iota
	StateMoving
	StateAttacking
	StateDefending
	StateDead
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateMoving:
		return "Moving"
	case StateAttacking:
		return "Attacking"
	case StateDefending:
		return "Defending"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// canTransition encodes the allowed edges of the state machine.
//
//	Idle -> Moving -> Idle
//	Idle -> Attacking -> Idle
//	Idle -> Defending
//	any  -> Dead
func (s State) canTransition(to State) bool {
	if s == StateDead {
		return false
	}
	if to == StateDead {
		return true
	}
	switch s {
	case StateIdle:
		return to == StateMoving || to == StateAttacking || to == StateDefending
	case StateMoving, StateAttacking:
		return to == StateIdle
	}
	return false
}

// Unit is one combatant in a session.
type Unit struct {
	ID       string
	Name     string
	Entity   Entity
	Stats    Stats
	Friendly bool

	// Cell is nil until the first occupancy sync.
	Cell *hexgrid.Cell

	Alive             bool
	CurrentInitiative int
	BaseDefense       float64 // Defense before any defend bonus
	State             State
	Target            *Unit

	path   []hexgrid.Cell
	waited bool // Deferred its turn this round
}

// setState applies a transition if the state machine allows it.
func (u *Unit) setState(to State) bool {
	if u.State == to {
		return true
	}
	if !u.State.canTransition(to) {
		return false
	}
	u.State = to
	return true
}

// NextStep returns the next cell on the active path.
func (u *Unit) NextStep() (hexgrid.Cell, bool) {
	if len(u.path) == 0 {
		return hexgrid.Cell{}, false
	}
	return u.path[0], true
}

// HealthFraction returns health / max health in [0, 1].
func (u *Unit) HealthFraction() float64 {
	if u.Stats.MaxHealth <= 0 {
		return 0
	}
	f := u.Stats.Health / u.Stats.MaxHealth
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Side returns "friendly" or "enemy".
func (u *Unit) Side() string {
	if u.Friendly {
		return "friendly"
	}
	return "enemy"
}

// HasCell reports whether the unit has been placed on the board.
func (u *Unit) HasCell() bool {
	return u.Cell != nil
}

// mirrorHealth pushes health to the entity's stats accessor, if any.
func (u *Unit) mirrorHealth() {
	if hs, ok := u.Entity.(HealthSink); ok {
		hs.SetHealth(u.Stats.Health, u.Stats.MaxHealth)
	}
}
