// Package skirmish is the playable hex battle. It owns the board, the
// combat orchestrator, the interaction translator and the unit tokens, and
// exposes them to the platform layer as a registry.Game.
package skirmish

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
	"github.com/vovakirdan/hex-skirmish/internal/config"
	"github.com/vovakirdan/hex-skirmish/internal/core"
	"github.com/vovakirdan/hex-skirmish/internal/event"
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
	"github.com/vovakirdan/hex-skirmish/internal/interaction"
	"github.com/vovakirdan/hex-skirmish/internal/registry"
)

const (
	boardX     = 2
	boardY     = 2
	panelMin   = 32 // Minimum side panel width
	maxLogSize = 200
)

// Options configures every battle created by Register.
type Options struct {
	Logger *log.Logger
}

type logEntry struct {
	Text string
	Kind event.LogKind
}

// Report is the outcome of a battle for the history ledger.
type Report struct {
	ScenarioID string
	Summary    combat.Summary
	Duration   time.Duration
}

// Game is one scenario's battle.
type Game struct {
	cfg      config.SkirmishConfig
	scenario config.ScenarioConfig
	logger   *log.Logger

	grid   *hexgrid.Grid
	orch   *combat.Orchestrator
	trans  *interaction.Translator
	events *event.Dispatcher
	layout Layout
	tokens []*Token

	dt       float64
	elapsed  float64
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool

	entries []logEntry
	fresh   []string // Log lines of the current Step
}

// New creates a battle for one scenario of cfg. Call Reset before use.
func New(cfg config.SkirmishConfig, scenario config.ScenarioConfig, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:      cfg,
		scenario: scenario,
		logger:   logger.WithPrefix(scenario.ID),
	}
}

// Register adds one factory per configured scenario.
func Register(reg *registry.Registry, cfg config.SkirmishConfig, opts Options) error {
	for _, sc := range cfg.Scenarios {
		info := registry.Info{ID: sc.ID, Title: sc.Title, Description: sc.Description}
		err := reg.Register(info, func() registry.Game {
			return New(cfg, sc, opts)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ID returns the scenario id.
func (g *Game) ID() string {
	return g.scenario.ID
}

// Title returns the scenario title.
func (g *Game) Title() string {
	if g.scenario.Title == "" {
		return g.scenario.ID
	}
	return g.scenario.Title
}

// Reset builds a fresh board and roster and enters the setup phase.
// The difficulty preset scales the enemy side of this battle only.
func (g *Game) Reset(rc core.RuntimeConfig) {
	preset, err := config.ParsePreset(rc.Difficulty)
	if err != nil {
		g.logger.Warn("unknown difficulty, using normal", "difficulty", rc.Difficulty)
		preset = config.DifficultyNormal
	}
	cfg := g.cfg
	cfg.Scenarios = []config.ScenarioConfig{g.scenario.Clone()}
	config.ApplyPreset(&cfg, preset)
	sc := cfg.Scenarios[0]

	g.dt = rc.FrameDelta()
	g.elapsed = 0
	g.paused = false
	g.entries = nil
	g.fresh = nil

	g.events = event.NewDispatcher()
	g.events.SubscribeFunc(event.Log, func(e event.Event) {
		if d, ok := e.Data.(event.LogData); ok {
			g.appendLog(d)
		}
	})

	g.grid = hexgrid.New(cfg.Board.Rows, cfg.Board.Cols, cfg.Board.HexSize)
	opts := cfg.CombatOptions()
	opts.Seed = rc.Seed
	opts.Logger = g.logger
	opts.Events = g.events
	g.orch = combat.New(g.grid, opts)
	g.trans = interaction.New(g.orch, interaction.Options{
		DragThreshold: cfg.Interaction.DragThreshold,
		Zone:          interaction.RowZone(cfg.Board.FriendlyRows),
		Events:        g.events,
		Logger:        g.logger,
	})

	g.tokens = nil
	friendlies := g.participants(cfg, sc.Friendly, true)
	enemies := g.participants(cfg, sc.Enemy, false)
	g.orch.Prepare(friendlies, enemies)

	g.layout = NewLayout(g.grid, boardX, boardY)
	g.Resize(rc.ScreenW, rc.ScreenH)
	g.logger.Debug("battle reset", "difficulty", preset, "seed", rc.Seed)
	g.appendLog(event.LogData{Message: "Deploy your units, then press S", Kind: event.KindInfo})
}

func (g *Game) participants(cfg config.SkirmishConfig, units []config.UnitConfig, friendly bool) []combat.Participant {
	out := make([]combat.Participant, 0, len(units))
	for _, u := range units {
		pos := g.grid.CellCenter(u.Cell())
		tok := NewToken(u.Name, friendly, pos)
		g.tokens = append(g.tokens, tok)
		out = append(out, combat.Participant{
			Name:   u.Name,
			Entity: tok,
			Stats:  cfg.UnitStats(u),
		})
	}
	return out
}

// Resize adapts to a new terminal size without restarting the battle.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.grid == nil {
		return
	}
	g.tooSmall = w < boardX+g.layout.Width()+3+panelMin || h < boardY+g.layout.Height()+3
}

// Step handles one frame of input and advances the battle by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.fresh = nil

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	over, _ := g.orch.Outcome()
	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, p := range in.Pointers {
		g.trans.HandlePointer(g.pointerEvent(p))
	}
	g.handleActions(in)

	g.orch.Update(g.dt)
	for _, t := range g.tokens {
		t.Tick(g.dt)
	}
	if g.orch.Started() && !over {
		g.elapsed += g.dt
	}

	return core.StepResult{State: g.State(), Log: g.fresh}
}

func (g *Game) handleActions(in core.InputFrame) {
	if g.orch.InSetup() && (in.Has(core.ActionStartBattle) || in.Has(core.ActionConfirm)) {
		g.trans.Reset()
		g.orch.Start()
		return
	}
	if in.Has(core.ActionBack) {
		g.trans.HandlePointer(interaction.PointerEvent{Kind: interaction.ContextMenu})
	}
	if in.Has(core.ActionNextUnit) {
		g.selectNext()
	}

	u := g.playerUnit()
	if u == nil {
		return
	}
	switch {
	case in.Has(core.ActionDefend):
		g.orch.Defend(u)
	case in.Has(core.ActionWait):
		g.orch.Wait(u)
	case in.Has(core.ActionEndTurn):
		g.orch.EndTurn(u)
	}
}

// selectNext cycles the selection through living friendly units.
func (g *Game) selectNext() {
	units := g.orch.Alive(true)
	if len(units) == 0 {
		return
	}
	next := units[0]
	for i, u := range units {
		if u == g.trans.Selected() {
			next = units[(i+1)%len(units)]
			break
		}
	}
	g.trans.Select(next)
}

// playerUnit returns the friendly unit holding a human-driven turn.
func (g *Game) playerUnit() *combat.Unit {
	u := g.orch.ActiveUnit()
	if u == nil || !u.Friendly || g.orch.Phase() != combat.PhasePlayerTurn {
		return nil
	}
	return u
}

func (g *Game) pointerEvent(p core.Pointer) interaction.PointerEvent {
	kind := interaction.Move
	switch p.Kind {
	case core.PointerDown:
		kind = interaction.Down
	case core.PointerUp:
		kind = interaction.Up
	case core.PointerContext:
		kind = interaction.ContextMenu
	}
	return interaction.PointerEvent{
		Kind: kind,
		X:    p.X,
		Y:    p.Y,
		Hit:  g.layout.HitTest(p.X, p.Y, g.orch.Units()),
	}
}

func (g *Game) appendLog(d event.LogData) {
	g.entries = append(g.entries, logEntry{Text: d.Message, Kind: d.Kind})
	if len(g.entries) > maxLogSize {
		g.entries = g.entries[len(g.entries)-maxLogSize:]
	}
	g.fresh = append(g.fresh, d.Message)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	over, won := g.orch.Outcome()
	return core.GameState{
		Score:    g.orch.Score(),
		GameOver: over,
		Won:      won,
		Paused:   g.paused,
		Round:    g.orch.Round(),
	}
}

// Report returns the battle outcome and the time spent fighting.
func (g *Game) Report() Report {
	return Report{
		ScenarioID: g.scenario.ID,
		Summary:    g.orch.Summary(),
		Duration:   time.Duration(g.elapsed * float64(time.Second)),
	}
}

// CombatLog returns the retained log lines, oldest first.
func (g *Game) CombatLog() []string {
	out := make([]string, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.Text
	}
	return out
}

// Orchestrator exposes the combat engine.
func (g *Game) Orchestrator() *combat.Orchestrator {
	return g.orch
}

// Layout returns the board's screen layout.
func (g *Game) Layout() Layout {
	return g.layout
}
