package combat

import (
	"testing"

	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

func placed(id string, friendly bool, cell hexgrid.Cell, o StatsOverrides) *Unit {
	u := &Unit{
		ID:       id,
		Name:     id,
		Entity:   &fakeEntity{visible: true},
		Stats:    NewStats(o),
		Friendly: friendly,
		Alive:    true,
	}
	c := cell
	u.Cell = &c
	return u
}

func TestSelectTargetPrefersLethal(t *testing.T) {
	w := DefaultAIWeights()
	ai := placed("ai", false, hexgrid.C(0, 0), StatsOverrides{Damage: Float(20)})
	weak := placed("weak", true, hexgrid.C(0, 6), StatsOverrides{Health: Float(15)})
	near := placed("near", true, hexgrid.C(0, 1), StatsOverrides{})

	got := w.SelectTarget(ai, []*Unit{near, weak})
	if got != weak {
		t.Fatalf("selected %v, want weak", got.ID)
	}

	lethal := w.ScoreTarget(ai, weak, 6)
	other := w.ScoreTarget(ai, near, 1)
	if lethal-other < 39 {
		t.Errorf("lethal score %.2f not ahead of %.2f by the bonus", lethal, other)
	}
}

func TestScoreTargetComponents(t *testing.T) {
	w := DefaultAIWeights()
	self := placed("self", false, hexgrid.C(0, 0), StatsOverrides{Damage: Float(1)})

	tests := []struct {
		name     string
		target   *Unit
		distance int
		want     float64
	}{
		{
			name:     "full health far away",
			target:   placed("t", true, hexgrid.C(0, 0), StatsOverrides{Damage: Float(0)}),
			distance: 20,
			want:     0,
		},
		{
			name:     "adjacent",
			target:   placed("t", true, hexgrid.C(0, 0), StatsOverrides{Damage: Float(0)}),
			distance: 0,
			want:     0.5,
		},
		{
			name:     "damage capped at twenty",
			target:   placed("t", true, hexgrid.C(0, 0), StatsOverrides{Damage: Float(50)}),
			distance: 15,
			want:     0.2,
		},
		{
			name: "half health",
			target: func() *Unit {
				u := placed("t", true, hexgrid.C(0, 0), StatsOverrides{Damage: Float(0), Health: Float(100)})
				u.Stats.Health = 50
				return u
			}(),
			distance: 15,
			want:     0.15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.ScoreTarget(self, tt.target, tt.distance)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("score = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestSelectTargetSkipsDeadAndAllies(t *testing.T) {
	w := DefaultAIWeights()
	ai := placed("ai", false, hexgrid.C(0, 0), StatsOverrides{})
	ally := placed("ally", false, hexgrid.C(0, 1), StatsOverrides{})
	dead := placed("dead", true, hexgrid.C(1, 0), StatsOverrides{})
	dead.Alive = false

	if got := w.SelectTarget(ai, []*Unit{ally, dead}); got != nil {
		t.Errorf("selected %s, want nil", got.ID)
	}
}

func TestSelectTargetTieKeepsFirst(t *testing.T) {
	w := DefaultAIWeights()
	ai := placed("ai", false, hexgrid.C(2, 2), StatsOverrides{})
	first := placed("first", true, hexgrid.C(2, 3), StatsOverrides{})
	second := placed("second", true, hexgrid.C(2, 1), StatsOverrides{})

	if got := w.SelectTarget(ai, []*Unit{first, second}); got != first {
		t.Errorf("selected %s, want first", got.ID)
	}
}

func TestAIMovesThenAttacks(t *testing.T) {
	g := hexgrid.New(1, 6, 1)
	opts := fastOptions()
	o := New(g, opts)

	hero := entityAt(g, 0, 0)
	foe := entityAt(g, 0, 3)
	o.Prepare(
		[]Participant{participant("hero", hero, StatsOverrides{Initiative: Int(-100)})},
		[]Participant{participant("foe", foe, StatsOverrides{Initiative: Int(100), Damage: Float(12)})},
	)
	o.Start()

	foeUnit := o.UnitForEntity(foe)
	heroUnit := o.UnitForEntity(hero)
	if o.ActiveUnit() != foeUnit {
		t.Fatal("enemy should act first")
	}

	runUntil(t, o, 200, func() bool { return o.ActiveUnit() == heroUnit })

	if *foeUnit.Cell != hexgrid.C(0, 1) {
		t.Errorf("enemy ended at %s, want (0,1)", foeUnit.Cell)
	}
	wantHealth := 100 - Damage(foeUnit, heroUnit)
	if heroUnit.Stats.Health != wantHealth {
		t.Errorf("hero health = %v, want %v", heroUnit.Stats.Health, wantHealth)
	}
	if hero.health != wantHealth {
		t.Errorf("mirrored health = %v, want %v", hero.health, wantHealth)
	}
	if foe.attacks != 1 {
		t.Errorf("attack animation played %d times, want 1", foe.attacks)
	}
}

func TestAIEndsTurnWhenBlocked(t *testing.T) {
	// Single row: the enemy at the far end is walled off by its ally.
	g := hexgrid.New(1, 5, 1)
	o := New(g, fastOptions())

	hero := entityAt(g, 0, 0)
	foe := entityAt(g, 0, 4)
	wall := entityAt(g, 0, 3)
	o.Prepare(
		[]Participant{participant("hero", hero, StatsOverrides{Initiative: Int(-100)})},
		[]Participant{
			participant("foe", foe, StatsOverrides{Initiative: Int(100)}),
			participant("wall", wall, StatsOverrides{Initiative: Int(50), MovementPoints: Int(0)}),
		},
	)
	o.Start()

	foeUnit := o.UnitForEntity(foe)
	runUntil(t, o, 100, func() bool { return o.ActiveUnit() != foeUnit })

	if *foeUnit.Cell != hexgrid.C(0, 4) {
		t.Errorf("blocked enemy moved to %s", foeUnit.Cell)
	}
	if foeUnit.Stats.HasMovedThisTurn {
		t.Error("blocked enemy marked as moved")
	}
}

func TestAIAttacksAfterMoveEndingOnPollTick(t *testing.T) {
	// A fast unit finishes its step inside one frame, on the same tick its
	// arrival poll fires.
	g := hexgrid.New(1, 6, 1)
	opts := fastOptions()
	opts.MoveSpeed = 40
	o := New(g, opts)

	hero := entityAt(g, 0, 0)
	foe := entityAt(g, 0, 2)
	o.Prepare(
		[]Participant{participant("hero", hero, StatsOverrides{Initiative: Int(-100)})},
		[]Participant{participant("foe", foe, StatsOverrides{Initiative: Int(100)})},
	)
	o.Start()

	foeUnit := o.UnitForEntity(foe)
	heroUnit := o.UnitForEntity(hero)
	runUntil(t, o, 200, func() bool { return o.ActiveUnit() == heroUnit })

	if *foeUnit.Cell != hexgrid.C(0, 1) {
		t.Fatalf("enemy ended at %s, want (0,1)", foeUnit.Cell)
	}
	if foe.attacks != 1 {
		t.Errorf("enemy arrived adjacent but attacked %d times, want 1", foe.attacks)
	}
	if heroUnit.Stats.Health >= 100 {
		t.Errorf("hero health = %v, want damage taken", heroUnit.Stats.Health)
	}
}
