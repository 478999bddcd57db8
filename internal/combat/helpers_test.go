package combat

import (
	"testing"

	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

// fakeEntity records every capability call the engine makes.
type fakeEntity struct {
	pos      hexgrid.Vec3
	facing   float64
	external bool
	visible  bool
	health   float64
	attacks  int
}

func (e *fakeEntity) Position() hexgrid.Vec3         { return e.pos }
func (e *fakeEntity) SetPosition(p hexgrid.Vec3)     { e.pos = p }
func (e *fakeEntity) Facing() float64                { return e.facing }
func (e *fakeEntity) SetFacing(a float64)            { e.facing = a }
func (e *fakeEntity) SetExternalControl(on bool)     { e.external = on }
func (e *fakeEntity) SetVisible(v bool)              { e.visible = v }
func (e *fakeEntity) SetHealth(current, max float64) { e.health = current }
func (e *fakeEntity) PlayAttack()                    { e.attacks++ }

func entityAt(g *hexgrid.Grid, row, col int) *fakeEntity {
	return &fakeEntity{pos: g.GetWorldPosition(row, col), visible: true}
}

func participant(name string, e *fakeEntity, o StatsOverrides) Participant {
	return Participant{Name: name, Entity: e, Stats: o}
}

// fastOptions returns options with short, distinct delays for tests.
func fastOptions() Options {
	opts := DefaultOptions()
	opts.Timing = Timing{
		AIDeliberation: 0.2,
		AttackRecover:  0.1,
		DefendEnd:      0.1,
		AIEndTurn:      0.15,
		AIPoll:         0.05,
	}
	opts.MoveSpeed = 20
	return opts
}

// run ticks the orchestrator in 50ms steps for up to seconds of game time.
func run(o *Orchestrator, seconds float64) {
	for t := 0.0; t < seconds; t += 0.05 {
		o.Update(0.05)
	}
}

// runUntil ticks until cond holds or the step budget runs out.
func runUntil(t *testing.T, o *Orchestrator, maxSteps int, cond func() bool) {
	t.Helper()
	for i := 0; i < maxSteps; i++ {
		if cond() {
			return
		}
		o.Update(0.05)
	}
	if !cond() {
		t.Fatalf("condition not reached after %d steps", maxSteps)
	}
}

// assertNoSharedCells fails if two alive units report the same cell.
func assertNoSharedCells(t *testing.T, o *Orchestrator) {
	t.Helper()
	seen := make(map[hexgrid.Cell]string)
	for _, u := range o.Units() {
		if !u.Alive || u.Cell == nil {
			continue
		}
		if other, ok := seen[*u.Cell]; ok {
			t.Fatalf("units %s and %s share cell %s", other, u.Name, u.Cell)
		}
		seen[*u.Cell] = u.Name
	}
}
