package skirmish

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
	"github.com/vovakirdan/hex-skirmish/internal/config"
	"github.com/vovakirdan/hex-skirmish/internal/core"
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
	"github.com/vovakirdan/hex-skirmish/internal/registry"
)

// newDuel returns a reset duel where the Knight always acts first.
func newDuel(t *testing.T, rc core.RuntimeConfig) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	sc := cfg.Scenarios[0]
	sc.Friendly[0].Stats.Initiative = combat.Int(100)
	sc.Enemy[0].Stats.Initiative = combat.Int(-100)
	g := New(cfg, sc, Options{})
	if rc.Seed == 0 {
		rc.Seed = 1
	}
	g.Reset(rc)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// clickAt is a press and release on the same terminal cell.
func clickAt(x, y int) core.InputFrame {
	f := core.NewInputFrame()
	f.AddPointer(core.Pointer{Kind: core.PointerDown, X: x, Y: y})
	f.AddPointer(core.Pointer{Kind: core.PointerUp, X: x, Y: y})
	return f
}

func unitNamed(g *Game, name string) *combat.Unit {
	for _, u := range g.Orchestrator().Units() {
		if u.Name == name {
			return u
		}
	}
	return nil
}

func steps(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(core.NewInputFrame())
	}
}

func TestResetEntersSetup(t *testing.T) {
	g := newDuel(t, core.DefaultConfig())

	if !g.Orchestrator().InSetup() {
		t.Fatal("battle should start in setup")
	}
	if len(g.Orchestrator().Units()) != 2 {
		t.Fatalf("units = %d, want 2", len(g.Orchestrator().Units()))
	}
	knight := unitNamed(g, "Knight")
	if knight == nil || !knight.Friendly {
		t.Fatal("Knight missing or not friendly")
	}
	if tok := knight.Entity.(*Token); !tok.Controlled() {
		t.Error("token not under engine control")
	}
	if st := g.State(); st.GameOver || st.Paused {
		t.Errorf("state = %+v", st)
	}
	if log := g.CombatLog(); len(log) == 0 || !strings.Contains(log[len(log)-1], "Deploy") {
		t.Errorf("combat log = %v", log)
	}
}

func TestDragPlacesUnitDuringSetup(t *testing.T) {
	g := newDuel(t, core.DefaultConfig())
	l := g.Layout()

	fromX, fromY := l.CellOrigin(hexgrid.C(0, 4))
	toX, toY := l.CellOrigin(hexgrid.C(1, 2))

	in := core.NewInputFrame()
	in.AddPointer(core.Pointer{Kind: core.PointerDown, X: fromX, Y: fromY})
	in.AddPointer(core.Pointer{Kind: core.PointerMove, X: toX, Y: toY})
	in.AddPointer(core.Pointer{Kind: core.PointerUp, X: toX, Y: toY})
	g.Step(in)

	knight := unitNamed(g, "Knight")
	if knight.Cell == nil || *knight.Cell != hexgrid.C(1, 2) {
		t.Fatalf("knight cell = %v, want (1,2)", knight.Cell)
	}
	if got := knight.Entity.Position(); got != g.grid.CellCenter(hexgrid.C(1, 2)) {
		t.Errorf("token position = %+v, want cell center", got)
	}
}

func TestStartBattleAndClickMove(t *testing.T) {
	g := newDuel(t, core.DefaultConfig())
	g.Step(frame(core.ActionStartBattle))

	knight := unitNamed(g, "Knight")
	if g.Orchestrator().ActiveUnit() != knight {
		t.Fatal("knight should hold the first turn")
	}

	x, y := g.Layout().CellOrigin(hexgrid.C(1, 4))
	g.Step(clickAt(x, y))
	steps(g, 60)

	if knight.Cell == nil || *knight.Cell != hexgrid.C(1, 4) {
		t.Fatalf("knight cell = %v, want (1,4)", knight.Cell)
	}
	if !knight.Stats.HasMovedThisTurn || knight.State != combat.StateIdle {
		t.Errorf("moved=%v state=%s", knight.Stats.HasMovedThisTurn, knight.State)
	}
	if g.Orchestrator().ActiveUnit() != knight {
		t.Error("turn ended after a move alone")
	}

	g.Step(frame(core.ActionDefend))
	steps(g, 30)
	if a := g.Orchestrator().ActiveUnit(); a == knight {
		t.Error("defend did not end the turn")
	}
	if knight.Stats.Defense <= knight.BaseDefense {
		t.Errorf("defense = %v, want boosted over %v", knight.Stats.Defense, knight.BaseDefense)
	}
}

func TestPauseFreezesBattle(t *testing.T) {
	g := newDuel(t, core.DefaultConfig())
	g.Step(frame(core.ActionStartBattle))
	g.Step(frame(core.ActionEndTurn))

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("not paused")
	}
	pending := g.Orchestrator().Timers().Pending()
	steps(g, 100)
	if g.Orchestrator().Timers().Pending() != pending {
		t.Error("timers advanced while paused")
	}
	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("still paused")
	}
}

func TestDifficultyScalesEnemies(t *testing.T) {
	rc := core.DefaultConfig()
	rc.Difficulty = "hard"
	g := newDuel(t, rc)

	brute := unitNamed(g, "Brute")
	if brute.Stats.MaxHealth != 138 {
		t.Errorf("brute max health = %v, want 138", brute.Stats.MaxHealth)
	}
	if knight := unitNamed(g, "Knight"); knight.Stats.MaxHealth != 120 {
		t.Errorf("knight max health = %v, want 120", knight.Stats.MaxHealth)
	}

	// The scenario template is untouched for the next reset.
	g.Reset(core.DefaultConfig())
	if brute := unitNamed(g, "Brute"); brute.Stats.MaxHealth != 110 {
		t.Errorf("brute max health after normal reset = %v, want 110", brute.Stats.MaxHealth)
	}
}

func TestBattleRunsToAnOutcome(t *testing.T) {
	g := newDuel(t, core.DefaultConfig())
	g.Step(frame(core.ActionStartBattle))
	knight := unitNamed(g, "Knight")
	brute := unitNamed(g, "Brute")

	// One move attempt per turn; a rejected move falls through to EndTurn.
	tried := false
	for i := 0; i < 20000 && !g.State().GameOver; i++ {
		in := core.NewInputFrame()
		o := g.Orchestrator()
		if o.ActiveUnit() != knight {
			tried = false
		} else if knight.State == combat.StateIdle {
			switch {
			case o.InRange(knight, brute) && !knight.Stats.HasActedThisTurn:
				x, y := g.Layout().Project(brute.Entity.Position())
				in = clickAt(x, y)
			case !knight.Stats.HasMovedThisTurn && !tried && brute.Cell != nil:
				tried = true
				for _, n := range g.grid.Neighbors(*brute.Cell) {
					if !g.grid.IsCellOccupied(n) {
						x, y := g.Layout().CellOrigin(n)
						in = clickAt(x, y)
						break
					}
				}
			default:
				in.Set(core.ActionEndTurn)
			}
		}
		g.Step(in)
	}

	st := g.State()
	if !st.GameOver {
		t.Fatal("battle did not finish")
	}
	r := g.Report()
	if !r.Summary.Over || r.ScenarioID != "duel" || r.Duration <= 0 {
		t.Errorf("report = %+v", r)
	}
	if r.Summary.FriendlyWon != st.Won {
		t.Error("report and state disagree on the winner")
	}
}

func TestRenderDrawsBoardAndTokens(t *testing.T) {
	g := newDuel(t, core.DefaultConfig())
	screen := core.NewScreen(100, 32)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "HEX SKIRMISH") {
		t.Errorf("header = %q", screen.Row(0))
	}
	kx, ky := g.Layout().CellOrigin(hexgrid.C(0, 4))
	if got := screen.Get(kx, ky); got != 'K' {
		t.Errorf("knight glyph = %q, want 'K'", got)
	}
	if got := screen.Get(kx+1, ky); got != '↓' {
		t.Errorf("knight facing = %q, want '↓'", got)
	}
	bx, by := g.Layout().CellOrigin(hexgrid.C(7, 5))
	if got := screen.Get(bx, by); got != 'b' {
		t.Errorf("brute glyph = %q, want 'b'", got)
	}
	if !strings.Contains(screen.String(), "Deploy") {
		t.Error("combat log not drawn")
	}
}

func TestRenderShowsWaitingUnitsInTurnOrder(t *testing.T) {
	g := newDuel(t, core.DefaultConfig())
	g.Step(frame(core.ActionStartBattle))
	g.Step(frame(core.ActionWait))

	knight := unitNamed(g, "Knight")
	if w := g.Orchestrator().Waiting(); len(w) != 1 || w[0] != knight {
		t.Fatalf("waiting = %v, want the knight", w)
	}

	screen := core.NewScreen(100, 32)
	g.Render(screen)
	var ox, oy int
	for y := 0; y < screen.Height(); y++ {
		line := screen.Row(y)
		if i := strings.Index(line, "Turn order"); i >= 0 {
			ox, oy = utf8.RuneCountInString(line[:i]), y+1
			break
		}
	}
	if oy == 0 {
		t.Fatal("turn order panel not drawn")
	}
	row := []rune(screen.Row(oy))[ox:]
	if got := string(row[:5]); got != "b | K" {
		t.Errorf("turn order = %q, want %q", got, "b | K")
	}
	if c := screen.GetCell(ox+4, oy); c.Fg != core.ColorGray {
		t.Errorf("waiting glyph color = %v, want gray", c.Fg)
	}
}

func TestRenderTooSmall(t *testing.T) {
	rc := core.DefaultConfig()
	rc.ScreenW = 40
	g := newDuel(t, rc)
	screen := core.NewScreen(40, 32)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small notice missing")
	}

	g.Resize(100, 32)
	screen.Resize(100, 32)
	g.Render(screen)
	if strings.Contains(screen.String(), "Window too small") {
		t.Error("notice still shown after resize")
	}
	if !g.Orchestrator().InSetup() {
		t.Error("resize restarted or advanced the battle")
	}
}

func TestRegisterScenarios(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reg := registry.New()
	if err := Register(reg, cfg, Options{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	for _, sc := range cfg.Scenarios {
		g, err := reg.Create(sc.ID)
		if err != nil {
			t.Fatalf("Create(%s): %v", sc.ID, err)
		}
		if g.ID() != sc.ID {
			t.Errorf("ID = %q, want %q", g.ID(), sc.ID)
		}
		g.Reset(core.DefaultConfig())
		if n := len(g.(*Game).Orchestrator().Units()); n != len(sc.Friendly)+len(sc.Enemy) {
			t.Errorf("%s: units = %d", sc.ID, n)
		}
	}
	if err := Register(reg, cfg, Options{}); err == nil {
		t.Error("second registration should fail")
	}
}
