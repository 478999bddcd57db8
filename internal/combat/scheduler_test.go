package combat

import (
	"math/rand"
	"testing"
)

func newTestUnit(id string, friendly bool, initiative int) *Unit {
	s := NewStats(StatsOverrides{Initiative: Int(initiative)})
	return &Unit{
		ID:          id,
		Name:        id,
		Entity:      &fakeEntity{visible: true},
		Stats:       s,
		Friendly:    friendly,
		Alive:       true,
		BaseDefense: s.Defense,
	}
}

func TestSchedulerOrdersByInitiative(t *testing.T) {
	fast := newTestUnit("fast", true, 100)
	mid := newTestUnit("mid", false, 50)
	slow := newTestUnit("slow", true, 0)

	s := NewTurnScheduler(rand.New(rand.NewSource(7)))
	s.StartCombat([]*Unit{slow, mid, fast})

	var order []string
	for i := 0; i < 3; i++ {
		order = append(order, s.Current().ID)
		s.NextTurn()
	}
	want := []string{"fast", "mid", "slow"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("turn order = %v, want %v", order, want)
		}
	}
	if s.Round() != 2 {
		t.Errorf("round = %d, want 2", s.Round())
	}
}

func TestSchedulerPhaseFollowsSide(t *testing.T) {
	friend := newTestUnit("friend", true, 100)
	foe := newTestUnit("foe", false, 0)

	s := NewTurnScheduler(rand.New(rand.NewSource(1)))
	if s.Phase() != PhaseSetup {
		t.Fatalf("initial phase = %s, want Setup", s.Phase())
	}
	s.StartCombat([]*Unit{friend, foe})
	if s.Phase() != PhasePlayerTurn {
		t.Errorf("phase = %s, want Player Turn", s.Phase())
	}
	s.NextTurn()
	if s.Phase() != PhaseAITurn {
		t.Errorf("phase = %s, want AI Turn", s.Phase())
	}
}

func TestSchedulerInitiativeRolledOnce(t *testing.T) {
	units := []*Unit{
		newTestUnit("a", true, 5),
		newTestUnit("b", false, 5),
		newTestUnit("c", false, 5),
	}
	s := NewTurnScheduler(rand.New(rand.NewSource(3)))
	s.StartCombat(units)

	rolled := make(map[string]int)
	for _, u := range units {
		if u.CurrentInitiative < 6 || u.CurrentInitiative > 25 {
			t.Errorf("%s initiative %d outside d20+5", u.ID, u.CurrentInitiative)
		}
		rolled[u.ID] = u.CurrentInitiative
	}

	for i := 0; i < 10; i++ {
		s.NextTurn()
	}
	if s.Round() < 3 {
		t.Fatalf("round = %d, want at least 3", s.Round())
	}
	for _, u := range units {
		if u.CurrentInitiative != rolled[u.ID] {
			t.Errorf("%s initiative changed from %d to %d", u.ID, rolled[u.ID], u.CurrentInitiative)
		}
	}
}

func TestSchedulerQueueIsAliveSubset(t *testing.T) {
	a := newTestUnit("a", true, 100)
	b := newTestUnit("b", false, 50)
	c := newTestUnit("c", false, 0)

	var roundQueues [][]*Unit
	s := NewTurnScheduler(rand.New(rand.NewSource(5)))
	s.OnRoundStart = func(int) {
		roundQueues = append(roundQueues, s.Queue())
	}
	s.StartCombat([]*Unit{a, b, c})

	b.Alive = false
	for i := 0; i < 6; i++ {
		if s.Current() == b {
			t.Fatal("dead unit received a turn")
		}
		s.NextTurn()
	}

	if len(roundQueues) < 2 {
		t.Fatalf("saw %d rounds, want at least 2", len(roundQueues))
	}
	if len(roundQueues[0]) != 3 {
		t.Errorf("first round queue has %d units, want 3", len(roundQueues[0]))
	}
	for _, q := range roundQueues[1:] {
		if len(q) != 2 {
			t.Errorf("later round queue has %d units, want 2", len(q))
		}
		for _, u := range q {
			if !u.Alive {
				t.Errorf("dead unit %s queued", u.ID)
			}
		}
	}
}

func TestSchedulerStartTurnResetsUnit(t *testing.T) {
	u := newTestUnit("u", true, 10)
	u.Stats.HasActedThisTurn = true
	u.Stats.HasMovedThisTurn = true
	u.Stats.CurrentMovement = 0
	u.Stats.Defense = 99
	u.State = StateDefending

	started := 0
	s := NewTurnScheduler(rand.New(rand.NewSource(1)))
	s.OnTurnStart = func(*Unit) { started++ }
	s.StartTurn(u)

	if u.Stats.HasActedThisTurn || u.Stats.HasMovedThisTurn {
		t.Error("per-turn flags not cleared")
	}
	if u.Stats.CurrentMovement != u.Stats.MovementPoints {
		t.Errorf("current movement = %d, want %d", u.Stats.CurrentMovement, u.Stats.MovementPoints)
	}
	if u.Stats.Defense != u.BaseDefense {
		t.Errorf("defense = %v, want base %v", u.Stats.Defense, u.BaseDefense)
	}
	if u.State != StateIdle {
		t.Errorf("state = %s, want Idle", u.State)
	}
	if started != 1 {
		t.Errorf("OnTurnStart fired %d times, want 1", started)
	}
}

func TestSchedulerWaitDefersToEndOfRound(t *testing.T) {
	a := newTestUnit("a", true, 100)
	b := newTestUnit("b", false, 50)
	c := newTestUnit("c", true, 0)

	s := NewTurnScheduler(rand.New(rand.NewSource(9)))
	s.StartCombat([]*Unit{a, b, c})

	if !s.WaitCurrentTurn() {
		t.Fatal("first wait rejected")
	}
	var order []string
	for i := 0; i < 3; i++ {
		order = append(order, s.Current().ID)
		if s.Current() == a && s.WaitCurrentTurn() {
			t.Fatal("unit waited twice in one round")
		}
		s.NextTurn()
	}
	want := []string{"b", "c", "a"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if s.Round() != 2 {
		t.Errorf("round = %d, want 2", s.Round())
	}
}

func TestSchedulerWaitRejectedAfterMoving(t *testing.T) {
	a := newTestUnit("a", true, 100)
	b := newTestUnit("b", false, 0)

	s := NewTurnScheduler(rand.New(rand.NewSource(1)))
	s.StartCombat([]*Unit{a, b})
	a.Stats.HasMovedThisTurn = true
	if s.WaitCurrentTurn() {
		t.Error("wait accepted after moving")
	}
	if s.Current() != a {
		t.Error("turn changed after rejected wait")
	}
}

func TestSchedulerStopsWhenOver(t *testing.T) {
	a := newTestUnit("a", true, 100)
	b := newTestUnit("b", false, 0)

	over := false
	s := NewTurnScheduler(rand.New(rand.NewSource(1)))
	s.IsOver = func() bool { return over }
	s.StartCombat([]*Unit{a, b})

	over = true
	s.NextTurn()
	if s.Phase() != PhaseCombatOver {
		t.Errorf("phase = %s, want Combat Over", s.Phase())
	}
	if s.Current() != nil {
		t.Error("a unit still holds the turn")
	}
}
