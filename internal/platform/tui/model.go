package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hex-skirmish/internal/config"
	"github.com/vovakirdan/hex-skirmish/internal/core"
	"github.com/vovakirdan/hex-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/hex-skirmish/internal/registry"
	"github.com/vovakirdan/hex-skirmish/internal/storage"
)

// noticeTicks is how long a status notice stays on screen, in ticks.
const noticeTicks = 60

// Optional capabilities of a registry.Game.
type (
	resizer interface {
		Resize(w, h int)
	}
	reporter interface {
		Report() skirmish.Report
	}
	logSource interface {
		CombatLog() []string
	}
)

// Model is the Bubble Tea model for running a battle.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	saved      bool // Whether the current battle has been recorded
	clipboard  bool // Local sessions only; SSH clients have no clipboard here
	notice     string
	noticeTTL  int
	loop       uint64
}

// NewModel creates a new Bubble Tea model for the given battle.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		clipboard:  true,
		loop:       nextLoop(),
	}
}

// Init starts the battle and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if p, ok := m.keyMapper.MapMouse(msg); ok {
			m.inputFrame.AddPointer(p)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "c":
		m.copyLog()
		return m, nil
	case "esc":
		// Esc leaves a finished or paused battle; otherwise it clears the selection.
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the battle running at the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.noticeTTL > 0 {
		m.noticeTTL--
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.loop)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Record the battle on game over (once)
	if m.gameState.GameOver && !m.saved {
		if r, ok := m.game.(reporter); ok && m.store != nil {
			//nolint:errcheck // Best-effort save, battle continues regardless
			m.store.SaveBattle(BattleRecord(r.Report(), m.config.Difficulty))
		}
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// BattleRecord converts a battle report to a history entry.
func BattleRecord(rep skirmish.Report, difficulty string) storage.Battle {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		preset = config.DifficultyNormal
	}
	return storage.Battle{
		ScenarioID:      rep.ScenarioID,
		Difficulty:      string(preset),
		FriendlyWon:     rep.Summary.FriendlyWon,
		Rounds:          rep.Summary.Rounds,
		Survivors:       rep.Summary.FriendlySurvivors,
		EnemiesDefeated: rep.Summary.EnemiesDefeated,
		Score:           rep.Summary.Score,
		Duration:        rep.Duration,
	}
}

// copyLog puts the combat log on the system clipboard.
func (m *Model) copyLog() {
	src, ok := m.game.(logSource)
	if !ok {
		return
	}
	if !m.clipboard {
		m.setNotice("Clipboard is not available in this session")
		return
	}
	lines := src.CombatLog()
	if err := clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
		m.setNotice("Copy failed: " + err.Error())
		return
	}
	m.setNotice(fmt.Sprintf("Copied %d log lines", len(lines)))
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeTTL = noticeTicks
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.setNotice("Screenshot failed: " + err.Error())
		return
	}
	m.setNotice("Saved " + path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.noticeTTL > 0 && m.notice != "" {
		m.screen.DrawText(1, m.screen.Height()-1, m.notice, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a full-screen battle and returns when it is left.
// quit reports whether the user asked to leave the program entirely.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (quit bool, err error) {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Hover highlights need motion without a button
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	if m, ok := final.(Model); ok {
		return m.IsQuitting(), nil
	}
	return true, nil
}
