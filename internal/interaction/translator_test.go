package interaction

import (
	"testing"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
	"github.com/vovakirdan/hex-skirmish/internal/event"
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

type stubEntity struct {
	pos    hexgrid.Vec3
	facing float64
}

func (e *stubEntity) Position() hexgrid.Vec3     { return e.pos }
func (e *stubEntity) SetPosition(p hexgrid.Vec3) { e.pos = p }
func (e *stubEntity) Facing() float64            { return e.facing }
func (e *stubEntity) SetFacing(a float64)        { e.facing = a }
func (e *stubEntity) SetExternalControl(bool)    {}

type fixture struct {
	grid *hexgrid.Grid
	o    *combat.Orchestrator
	tr   *Translator
}

func newFixture(t *testing.T, events *event.Dispatcher) *fixture {
	t.Helper()
	g := hexgrid.New(5, 5, 1)
	opts := combat.DefaultOptions()
	opts.Events = events
	o := combat.New(g, opts)
	tr := New(o, Options{Zone: RowZone(2), Events: events})
	return &fixture{grid: g, o: o, tr: tr}
}

func (f *fixture) entity(row, col int) *stubEntity {
	return &stubEntity{pos: f.grid.GetWorldPosition(row, col)}
}

func (f *fixture) hit(e combat.Entity, row, col int) Hit {
	return Hit{Entity: e, Cell: hexgrid.C(row, col), OnBoard: true}
}

// dragTo presses on from, moves 10 units away over to and releases there.
func (f *fixture) dragTo(from, to Hit) {
	f.tr.HandlePointer(PointerEvent{Kind: Down, X: 0, Y: 0, Hit: from})
	f.tr.HandlePointer(PointerEvent{Kind: Move, X: 10, Y: 0, Hit: to})
	f.tr.HandlePointer(PointerEvent{Kind: Up, X: 10, Y: 0, Hit: to})
}

func (f *fixture) click(h Hit) {
	f.tr.HandlePointer(PointerEvent{Kind: Down, X: 5, Y: 5, Hit: h})
	f.tr.HandlePointer(PointerEvent{Kind: Up, X: 5, Y: 5, Hit: h})
}

func TestDragOntoFriendlySwaps(t *testing.T) {
	f := newFixture(t, nil)
	a, b, foe := f.entity(0, 0), f.entity(0, 1), f.entity(4, 4)
	f.o.Prepare(
		[]combat.Participant{{Name: "a", Entity: a}, {Name: "b", Entity: b}},
		[]combat.Participant{{Name: "foe", Entity: foe}},
	)

	f.dragTo(f.hit(a, 0, 0), f.hit(b, 0, 1))
	f.o.Update(0.05)

	if a.pos != f.grid.GetWorldPosition(0, 1) {
		t.Errorf("dragged unit at %+v, want cell (0,1)", a.pos)
	}
	if b.pos != f.grid.GetWorldPosition(0, 0) {
		t.Errorf("swapped unit at %+v, want cell (0,0)", b.pos)
	}
	if u := f.o.UnitAt(hexgrid.C(0, 1)); u == nil || u.Entity != a {
		t.Error("occupancy not updated for dragged unit")
	}
	if u := f.o.UnitAt(hexgrid.C(0, 0)); u == nil || u.Entity != b {
		t.Error("occupancy not updated for swapped unit")
	}
}

func TestDropRevertsOutsideZone(t *testing.T) {
	tests := []struct {
		name string
		to   Hit
	}{
		{"outside zone", Hit{Cell: hexgrid.C(3, 0), OnBoard: true}},
		{"off board", Hit{}},
		{"onto enemy", Hit{Cell: hexgrid.C(1, 2), OnBoard: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			a, foe := f.entity(0, 0), f.entity(1, 2)
			f.o.Prepare(
				[]combat.Participant{{Name: "a", Entity: a}},
				[]combat.Participant{{Name: "foe", Entity: foe}},
			)
			origin := a.pos

			f.dragTo(f.hit(a, 0, 0), tt.to)
			f.o.Update(0.05)

			if a.pos != origin {
				t.Errorf("position = %+v, want reverted %+v", a.pos, origin)
			}
			if u := f.o.UnitAt(hexgrid.C(0, 0)); u == nil || u.Entity != a {
				t.Error("unit no longer holds its original cell")
			}
		})
	}
}

func TestDropOnEmptyZoneCellSnaps(t *testing.T) {
	f := newFixture(t, nil)
	a, foe := f.entity(0, 0), f.entity(4, 4)
	a.pos.Y = 0.5
	f.o.Prepare(
		[]combat.Participant{{Name: "a", Entity: a}},
		[]combat.Participant{{Name: "foe", Entity: foe}},
	)

	f.dragTo(f.hit(a, 0, 0), Hit{Cell: hexgrid.C(1, 3), OnBoard: true})
	f.o.Update(0.05)

	want := f.grid.GetWorldPosition(1, 3)
	want.Y = 0.5
	if a.pos != want {
		t.Errorf("position = %+v, want %+v", a.pos, want)
	}
}

func TestSmallMovementIsAClickNotADrag(t *testing.T) {
	f := newFixture(t, nil)
	a, foe := f.entity(0, 0), f.entity(4, 4)
	f.o.Prepare(
		[]combat.Participant{{Name: "a", Entity: a}},
		[]combat.Participant{{Name: "foe", Entity: foe}},
	)
	origin := a.pos

	f.tr.HandlePointer(PointerEvent{Kind: Down, X: 0, Y: 0, Hit: f.hit(a, 0, 0)})
	f.tr.HandlePointer(PointerEvent{Kind: Move, X: 2, Y: 1, Hit: Hit{Cell: hexgrid.C(1, 1), OnBoard: true}})
	if f.tr.Dragging() {
		t.Fatal("drag started below the threshold")
	}
	f.tr.HandlePointer(PointerEvent{Kind: Up, X: 2, Y: 1, Hit: f.hit(a, 0, 0)})

	if a.pos != origin {
		t.Error("click moved the unit")
	}
	if sel := f.tr.Selected(); sel == nil || sel.Entity != a {
		t.Error("click did not select the unit")
	}
}

func TestNoDragOnceCombatStarted(t *testing.T) {
	f := newFixture(t, nil)
	a, foe := f.entity(0, 0), f.entity(4, 4)
	f.o.InitializeCombat(combat.Participant{Name: "a", Entity: a}, nil,
		[]combat.Participant{{Name: "foe", Entity: foe}})

	f.tr.HandlePointer(PointerEvent{Kind: Down, X: 0, Y: 0, Hit: f.hit(a, 0, 0)})
	f.tr.HandlePointer(PointerEvent{Kind: Move, X: 20, Y: 0, Hit: Hit{Cell: hexgrid.C(1, 1), OnBoard: true}})
	if f.tr.Dragging() {
		t.Error("drag started during combat")
	}
}

func TestClickEnemyInRangeAttacks(t *testing.T) {
	f := newFixture(t, nil)
	hero, foe := f.entity(2, 1), f.entity(2, 2)
	f.o.InitializeCombat(
		combat.Participant{Name: "hero", Entity: hero, Stats: combat.StatsOverrides{Initiative: combat.Int(100)}},
		nil,
		[]combat.Participant{{Name: "foe", Entity: foe, Stats: combat.StatsOverrides{Initiative: combat.Int(-100)}}},
	)
	target := f.o.UnitForEntity(foe)
	before := target.Stats.Health

	f.click(f.hit(foe, 2, 2))

	if target.Stats.Health >= before {
		t.Error("click on adjacent enemy did not attack")
	}
	if !f.o.UnitForEntity(hero).Stats.HasActedThisTurn {
		t.Error("attacker not marked as acted")
	}
}

func TestClickGroundMovesCappedByMovement(t *testing.T) {
	f := newFixture(t, nil)
	hero, foe := f.entity(0, 0), f.entity(4, 4)
	f.o.InitializeCombat(
		combat.Participant{Name: "hero", Entity: hero, Stats: combat.StatsOverrides{
			Initiative:     combat.Int(100),
			MovementPoints: combat.Int(3),
		}},
		nil,
		[]combat.Participant{{Name: "foe", Entity: foe, Stats: combat.StatsOverrides{Initiative: combat.Int(-100)}}},
	)
	h := f.o.UnitForEntity(hero)

	f.click(Hit{Cell: hexgrid.C(0, 4), OnBoard: true})

	if h.State != combat.StateMoving {
		t.Fatalf("state = %s, want Moving", h.State)
	}
	if h.Stats.CurrentMovement != 0 {
		t.Errorf("current movement = %d, want 0", h.Stats.CurrentMovement)
	}
	for i := 0; i < 100 && h.State == combat.StateMoving; i++ {
		f.o.Update(0.05)
	}
	if *h.Cell != hexgrid.C(0, 3) {
		t.Errorf("stopped at %s, want (0,3)", h.Cell)
	}
}

func TestClickOutsideTurnSelectsAndShowsThreat(t *testing.T) {
	events := event.NewDispatcher()
	var selected []string
	events.SubscribeFunc(event.UnitSelected, func(e event.Event) {
		selected = append(selected, e.Data.(event.UnitSelectedData).UnitID)
	})

	f := newFixture(t, events)
	hero, foe := f.entity(0, 0), f.entity(4, 4)
	f.o.InitializeCombat(
		combat.Participant{Name: "hero", Entity: hero, Stats: combat.StatsOverrides{Initiative: combat.Int(100)}},
		nil,
		[]combat.Participant{{Name: "foe", Entity: foe, Stats: combat.StatsOverrides{Initiative: combat.Int(-100)}}},
	)
	target := f.o.UnitForEntity(foe)

	f.click(f.hit(foe, 4, 4))

	if f.tr.Selected() != target {
		t.Fatal("out-of-range enemy not selected")
	}
	if target.Stats.Health != target.Stats.MaxHealth {
		t.Error("out-of-range click attacked")
	}
	if len(selected) != 1 || selected[0] != target.ID {
		t.Errorf("UnitSelected events = %v", selected)
	}

	threat := 0
	for _, h := range f.tr.Highlights() {
		switch h.Kind {
		case Threat:
			threat++
			if hexgrid.Distance(h.Cell, hexgrid.C(4, 4)) > 4 {
				t.Errorf("threat cell %s beyond move+range", h.Cell)
			}
		case Selected:
			if h.Cell != hexgrid.C(4, 4) {
				t.Errorf("selected cell = %s", h.Cell)
			}
		default:
			t.Errorf("unexpected %s highlight", h.Kind)
		}
	}
	if threat == 0 {
		t.Error("no threat overlay")
	}

	f.tr.HandlePointer(PointerEvent{Kind: ContextMenu})
	if f.tr.Selected() != nil {
		t.Error("context menu did not clear selection")
	}
}

func TestActiveTurnOverlay(t *testing.T) {
	f := newFixture(t, nil)
	hero, foe := f.entity(2, 1), f.entity(2, 2)
	f.o.InitializeCombat(
		combat.Participant{Name: "hero", Entity: hero, Stats: combat.StatsOverrides{
			Initiative:     combat.Int(100),
			MovementPoints: combat.Int(2),
		}},
		nil,
		[]combat.Participant{{Name: "foe", Entity: foe, Stats: combat.StatsOverrides{Initiative: combat.Int(-100)}}},
	)
	f.tr.HandlePointer(PointerEvent{Kind: Move, X: 1, Y: 1, Hit: Hit{Cell: hexgrid.C(2, 4), OnBoard: true}})

	counts := make(map[HighlightKind]int)
	for _, h := range f.tr.Highlights() {
		counts[h.Kind]++
		switch h.Kind {
		case Selected:
			if h.Cell != hexgrid.C(2, 1) {
				t.Errorf("selected cell = %s, want (2,1)", h.Cell)
			}
		case AttackTarget:
			if h.Cell != hexgrid.C(2, 2) {
				t.Errorf("attack cell = %s, want (2,2)", h.Cell)
			}
		case MoveTarget:
			if hexgrid.Distance(h.Cell, hexgrid.C(2, 1)) > 2 {
				t.Errorf("move cell %s out of reach", h.Cell)
			}
		}
	}
	if counts[Selected] != 1 || counts[AttackTarget] != 1 || counts[MoveTarget] == 0 {
		t.Errorf("highlight counts = %v", counts)
	}
	if counts[PathStep] != 0 {
		t.Errorf("path preview to an unreachable cell: %d steps", counts[PathStep])
	}

	f.tr.HandlePointer(PointerEvent{Kind: Move, X: 1, Y: 1, Hit: Hit{Cell: hexgrid.C(2, 0), OnBoard: true}})
	steps := 0
	for _, h := range f.tr.Highlights() {
		if h.Kind == PathStep {
			steps++
		}
	}
	if steps != 1 {
		t.Errorf("path preview has %d steps, want 1", steps)
	}
}
