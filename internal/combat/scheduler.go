package combat

import (
	"math/rand"
	"sort"
)

// Phase is the turn scheduler's lifecycle phase.
type Phase int

const (
	PhaseSetup          Phase = iota // Roster placed, turns not started
	PhaseInitiativeRoll              // Rolling and building the first queue
	PhasePlayerTurn                  // A friendly unit holds the turn
	PhaseAITurn                      // A non-friendly unit holds the turn
	PhaseTurnEnd                     // Between two turns
	PhaseCombatOver                  // One side has been wiped out
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseInitiativeRoll:
		return "Initiative"
	case PhasePlayerTurn:
		return "Player Turn"
	case PhaseAITurn:
		return "AI Turn"
	case PhaseTurnEnd:
		return "Turn End"
	case PhaseCombatOver:
		return "Combat Over"
	default:
		return "Unknown"
	}
}

// TurnScheduler orders turns by initiative. Initiative is rolled once per
// combat session; later rounds re-sort the same values.
type TurnScheduler struct {
	rng     *rand.Rand
	round   int
	phase   Phase
	current *Unit
	queue   []*Unit
	waited  []*Unit
	roster  []*Unit

	// OnTurnStart fires after a unit's per-turn state has been reset.
	OnTurnStart func(u *Unit)
	// OnTurnEnd fires when a unit gives up the turn.
	OnTurnEnd func(u *Unit)
	// OnRoundStart fires when a new round's queue has been built.
	OnRoundStart func(round int)
	// IsOver is consulted before every turn and round; when it reports
	// true the scheduler stops instead of handing out another turn.
	IsOver func() bool
}

// NewTurnScheduler creates a scheduler drawing dice and tie-breaks from rng.
func NewTurnScheduler(rng *rand.Rand) *TurnScheduler {
	return &TurnScheduler{
		rng:   rng,
		phase: PhaseSetup,
	}
}

// Round returns the current round number (1-based).
func (s *TurnScheduler) Round() int {
	return s.round
}

// Phase returns the current phase.
func (s *TurnScheduler) Phase() Phase {
	return s.phase
}

// Current returns the unit holding the turn, or nil.
func (s *TurnScheduler) Current() *Unit {
	return s.current
}

// Queue returns a copy of the units still to act this round.
func (s *TurnScheduler) Queue() []*Unit {
	out := make([]*Unit, len(s.queue))
	copy(out, s.queue)
	return out
}

// Waited returns a copy of the units that deferred their turn this round.
func (s *TurnScheduler) Waited() []*Unit {
	out := make([]*Unit, len(s.waited))
	copy(out, s.waited)
	return out
}

// StartCombat rolls initiative for the whole roster, builds the first
// round's queue from the alive units and starts the first turn.
func (s *TurnScheduler) StartCombat(units []*Unit) {
	s.roster = units
	s.round = 1
	s.current = nil
	s.waited = nil
	s.phase = PhaseInitiativeRoll

	s.rollInitiative()
	s.queue = s.buildQueue()
	if s.OnRoundStart != nil {
		s.OnRoundStart(s.round)
	}
	s.advance()
}

// rollInitiative sets CurrentInitiative = d20 + initiative seed.
func (s *TurnScheduler) rollInitiative() {
	for _, u := range s.roster {
		u.CurrentInitiative = s.rng.Intn(20) + 1 + u.Stats.Initiative
	}
}

// buildQueue returns the alive roster sorted by initiative, highest first,
// with ties broken randomly.
func (s *TurnScheduler) buildQueue() []*Unit {
	queue := make([]*Unit, 0, len(s.roster))
	for _, u := range s.roster {
		if u.Alive {
			u.waited = false
			queue = append(queue, u)
		}
	}
	s.rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].CurrentInitiative > queue[j].CurrentInitiative
	})
	return queue
}

// NextTurn ends the current unit's turn and hands the turn to the next
// alive unit, promoting waited units and starting new rounds as needed.
func (s *TurnScheduler) NextTurn() {
	if s.phase == PhaseCombatOver {
		return
	}
	s.endCurrent()
	s.advance()
}

// WaitCurrentTurn defers the current unit to the end of the round.
// A unit that has already moved, acted or waited this round cannot wait.
func (s *TurnScheduler) WaitCurrentTurn() bool {
	u := s.current
	if u == nil || s.phase == PhaseCombatOver {
		return false
	}
	if u.waited || u.Stats.HasMovedThisTurn || u.Stats.HasActedThisTurn {
		return false
	}
	u.waited = true
	s.waited = append(s.waited, u)
	s.endCurrent()
	s.advance()
	return true
}

// StartTurn resets the unit's per-turn state and gives it the turn.
func (s *TurnScheduler) StartTurn(u *Unit) {
	u.Stats.HasActedThisTurn = false
	u.Stats.HasMovedThisTurn = false
	u.Stats.CurrentMovement = u.Stats.MovementPoints
	u.Stats.Defense = u.BaseDefense
	u.path = nil
	if u.State != StateDead {
		u.State = StateIdle
	}

	s.current = u
	if u.Friendly {
		s.phase = PhasePlayerTurn
	} else {
		s.phase = PhaseAITurn
	}
	if s.OnTurnStart != nil {
		s.OnTurnStart(u)
	}
}

// Stop ends the session; no further turns are handed out.
func (s *TurnScheduler) Stop() {
	s.current = nil
	s.queue = nil
	s.waited = nil
	s.phase = PhaseCombatOver
}

func (s *TurnScheduler) endCurrent() {
	u := s.current
	if u == nil {
		return
	}
	s.current = nil
	s.phase = PhaseTurnEnd
	if s.OnTurnEnd != nil {
		s.OnTurnEnd(u)
	}
}

// advance pops the next alive unit, or ends the round and starts a new one.
func (s *TurnScheduler) advance() {
	for {
		if s.over() {
			s.Stop()
			return
		}

		s.queue = filterAlive(s.queue)
		s.waited = filterAlive(s.waited)

		if len(s.queue) == 0 && len(s.waited) > 0 {
			s.queue, s.waited = s.waited, nil
		}

		if len(s.queue) == 0 {
			s.round++
			s.queue = s.buildQueue()
			if len(s.queue) == 0 {
				s.Stop()
				return
			}
			if s.OnRoundStart != nil {
				s.OnRoundStart(s.round)
			}
		}

		next := s.queue[0]
		s.queue = s.queue[1:]
		if !next.Alive {
			continue
		}
		s.StartTurn(next)
		return
	}
}

func (s *TurnScheduler) over() bool {
	return s.IsOver != nil && s.IsOver()
}

func filterAlive(units []*Unit) []*Unit {
	out := units[:0]
	for _, u := range units {
		if u.Alive {
			out = append(out, u)
		}
	}
	return out
}
