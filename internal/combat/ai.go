package combat

import (
	"math"

	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

// AIWeights tunes target scoring.
type AIWeights struct {
	Health       float64 // Weight of missing health
	Damage       float64 // Weight of the candidate's damage output
	Distance     float64 // Weight of proximity
	DamageCap    float64 // Damage that normalizes to 1.0
	DistanceNorm float64 // Distance (cells) at which proximity reaches 0
	LethalBonus  float64 // Flat bonus when one hit can kill
}

// DefaultAIWeights returns the standard scoring weights.
func DefaultAIWeights() AIWeights {
	return AIWeights{
		Health:       0.3,
		Damage:       0.2,
		Distance:     0.5,
		DamageCap:    20,
		DistanceNorm: 15,
		LethalBonus:  40,
	}
}

// ScoreTarget rates how attractive target is for self at the given
// distance in cells. Higher is better.
func (w AIWeights) ScoreTarget(self, target *Unit, distance int) float64 {
	missing := 1 - target.HealthFraction()

	damageCap := w.DamageCap
	if damageCap <= 0 {
		damageCap = 1
	}
	threat := math.Min(target.Stats.Damage, damageCap) / damageCap

	norm := w.DistanceNorm
	if norm <= 0 {
		norm = 1
	}
	proximity := math.Max(0, 1-float64(distance)/norm)

	score := w.Health*missing + w.Damage*threat + w.Distance*proximity
	if self.Stats.Damage >= target.Stats.Health {
		score += w.LethalBonus
	}
	return score
}

// SelectTarget returns the highest-scoring living candidate. Ties keep the
// earlier candidate. Returns nil when there is nothing to attack.
func (w AIWeights) SelectTarget(self *Unit, candidates []*Unit) *Unit {
	var best *Unit
	bestScore := math.Inf(-1)
	for _, c := range candidates {
		if c == nil || !c.Alive || c.Friendly == self.Friendly {
			continue
		}
		score := w.ScoreTarget(self, c, unitDistance(self, c))
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// unitDistance returns the cell distance, or a large value if either unit
// has not been placed yet.
func unitDistance(a, b *Unit) int {
	if !a.HasCell() || !b.HasCell() {
		return math.MaxInt32
	}
	return hexgrid.Distance(*a.Cell, *b.Cell)
}

// AIPolicy drives non-friendly turns by issuing the same intents a human
// would. It is invoked exactly once per AI turn and never retries.
type AIPolicy struct {
	o       *Orchestrator
	weights AIWeights
}

func newAIPolicy(o *Orchestrator, w AIWeights) *AIPolicy {
	return &AIPolicy{o: o, weights: w}
}

// TakeTurn decides and starts the unit's action for this turn: attack if a
// target is in range, otherwise move toward it and attack on arrival.
// Every failure ends the turn immediately.
func (p *AIPolicy) TakeTurn(u *Unit) {
	o := p.o
	seq := o.turnSeq

	target := p.weights.SelectTarget(u, o.units)
	if target == nil {
		o.notice("no target available", u, "ending turn")
		o.advanceTurn(u, seq)
		return
	}
	u.Target = target

	if o.InRange(u, target) {
		o.ExecuteAttack(u, target)
		o.endTurnAfter(u, seq, o.opts.Timing.AIEndTurn)
		return
	}

	if !u.HasCell() || !target.HasCell() {
		o.notice("unit not on board", u, "ending turn")
		o.advanceTurn(u, seq)
		return
	}

	path := o.grid.GetPath(*u.Cell, *target.Cell)
	if n := len(path); n > 0 && path[n-1] == *target.Cell {
		path = path[:n-1]
	}
	if len(path) == 0 {
		o.notice("no path to target", u, "ending turn")
		o.advanceTurn(u, seq)
		return
	}
	if len(path) > u.Stats.CurrentMovement {
		path = path[:u.Stats.CurrentMovement]
	}
	if len(path) == 0 {
		o.notice("no movement left", u, "ending turn")
		o.advanceTurn(u, seq)
		return
	}

	if !o.ExecuteMove(u, path) {
		o.advanceTurn(u, seq)
		return
	}
	p.awaitArrival(u, target, seq)
}

// awaitArrival polls until the move finishes, then attacks if the target
// came into range; otherwise the turn ends.
func (p *AIPolicy) awaitArrival(u, target *Unit, seq uint64) {
	o := p.o
	o.afterInTurn(o.opts.Timing.AIPoll, func() {
		if !o.turnValid(u, seq) {
			return
		}
		if u.State == StateMoving {
			p.awaitArrival(u, target, seq)
			return
		}
		if target.Alive && o.InRange(u, target) {
			o.ExecuteAttack(u, target)
			o.endTurnAfter(u, seq, o.opts.Timing.AIEndTurn)
			return
		}
		o.advanceTurn(u, seq)
	})
}
