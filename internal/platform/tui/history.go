package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hex-skirmish/internal/registry"
	"github.com/vovakirdan/hex-skirmish/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the scenario sidebar
	sidebarWidth       = 22  // Width of scenario sidebar
	maxBattles         = 100 // Max battles to load
)

// HistoryKeyMap defines the key bindings for the battle history.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev view"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next view"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next scenario"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev scenario"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// historyView is one page of the history: all recent battles, or the best
// battles of one scenario.
type historyView struct {
	ScenarioID string // Empty for the recent battles page
	Title      string
}

// HistoryModel is the Bubble Tea model for the battle history screen.
type HistoryModel struct {
	views       []historyView
	cursor      int
	store       *storage.Store
	battles     []storage.Battle
	stats       *storage.ScenarioStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(reg *registry.Registry, store *storage.Store, width, height int) HistoryModel {
	views := []historyView{{Title: "Recent battles"}}
	for _, info := range reg.List() {
		views = append(views, historyView{ScenarioID: info.ID, Title: info.Title})
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		views:       views,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *HistoryModel) recentPage() bool {
	return m.views[m.cursor].ScenarioID == ""
}

// createTable creates a new table with columns for the current page.
func (m *HistoryModel) createTable() table.Model {
	var columns []table.Column
	if m.recentPage() {
		columns = []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Scenario", Width: 10},
			{Title: "Result", Width: 8},
			{Title: "Rounds", Width: 6},
			{Title: "Score", Width: 6},
			{Title: "Level", Width: 7},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 6},
			{Title: "Result", Width: 8},
			{Title: "Rounds", Width: 6},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 13},
		}
	}

	height := m.height - 10 // Header, stats, help and margins
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the battles of the current page.
func (m *HistoryModel) load() {
	m.battles, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		v := m.views[m.cursor]
		if v.ScenarioID == "" {
			m.battles, m.loadErr = m.store.RecentBattles(maxBattles)
		} else {
			m.battles, m.loadErr = m.store.TopScores(v.ScenarioID, maxBattles)
			if m.loadErr == nil {
				m.stats, m.loadErr = m.store.ScenarioStats(v.ScenarioID)
			}
		}
	}
	m.table = m.createTable()
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded battles.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.battles))
	for i, b := range m.battles {
		if m.recentPage() {
			rows[i] = table.Row{
				b.CreatedAt.Format("Jan 02 15:04"),
				b.ScenarioID,
				resultLabel(b.FriendlyWon),
				fmt.Sprintf("%d", b.Rounds),
				fmt.Sprintf("%d", b.Score),
				b.Difficulty,
			}
			continue
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", b.Score),
			resultLabel(b.FriendlyWon),
			fmt.Sprintf("%d", b.Rounds),
			b.Duration.String(),
			b.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func resultLabel(won bool) string {
	if won {
		return "Victory"
	}
	return "Defeat"
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView), key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(m.views)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView), key.Matches(msg, m.keys.Left):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.views) - 1
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("BATTLE HISTORY - %s", m.views[m.cursor].Title)
	b.WriteString(menuTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout renders the history with a sidebar of pages.
func (m HistoryModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Scenarios\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range m.views {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(v.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	left := panelStyle.Width(sidebarWidth).Render(sidebar.String())
	right := panelStyle.Render(m.renderContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderNarrowLayout renders the history with the page name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.views[m.cursor].Title), m.width))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.renderContent()))
	return b.String()
}

// renderContent renders the stats line and the table, or an empty message.
func (m HistoryModel) renderContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Battle history is unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load history:\n" + m.loadErr.Error())
	case len(m.battles) == 0:
		return emptyStyle.Render("No battles recorded yet.\nWin one to make history!")
	}

	if m.stats == nil {
		return m.table.View()
	}
	return statsLine(m.stats) + "\n\n" + m.table.View()
}

func statsLine(st *storage.ScenarioStats) string {
	return fmt.Sprintf("Battles %d  Won %d  Lost %d  Win rate %.0f%%  Best %d  Avg rounds %.1f",
		st.Battles, st.Wins, st.Losses(), st.WinRate()*100, st.BestScore, st.AvgRounds)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(reg *registry.Registry, store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewHistoryModel(reg, store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
