package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/hex-skirmish/internal/config"
	"github.com/vovakirdan/hex-skirmish/internal/core"
	"github.com/vovakirdan/hex-skirmish/internal/registry"
	"github.com/vovakirdan/hex-skirmish/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2323").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.skirmish/host_key.
	HostKeyPath string

	// DBPath is the path to the battle history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate and Difficulty seed each session's runtime config.
	TickRate   int
	Difficulty string

	// Logger receives server events. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     "0.0.0.0:2323",
		DBPath:      filepath.Join(config.DataDir(), "battles.db"),
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		Difficulty:  string(config.DifficultyNormal),
	}
}

// SSHServer wraps a Wish SSH server; every session fights its own battles.
type SSHServer struct {
	config   SSHServerConfig
	registry *registry.Registry
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server serving the scenarios of reg.
func NewSSHServer(cfg SSHServerConfig, reg *registry.Registry) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "skirmish-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:   cfg,
		registry: reg,
		store:    store,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(config.DataDir(), "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:    pty.Window.Width,
		ScreenH:    pty.Window.Height,
		TickRate:   s.config.TickRate,
		Seed:       time.Now().UnixNano(),
		Difficulty: s.config.Difficulty,
	}

	model := NewSessionModel(s.registry, s.store, cfg)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenHistory
	screenBattle
)

// SessionModel manages one SSH session: menu, history and battles.
type SessionModel struct {
	registry *registry.Registry
	store    *storage.Store
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	history  HistoryModel
	battle   Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(reg *registry.Registry, store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		registry: reg,
		store:    store,
		config:   cfg,
		menu:     NewMenuModel(reg, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenBattle:
		return m.updateBattle(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. The child models quit via
// tea.Quit, so their quit commands are swallowed here.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		m.config = m.menu.Config()
		m.history = NewHistoryModel(m.registry, m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()

	case m.menu.Selected() != nil:
		m.config = m.menu.Config()
		game, err := m.registry.Create(m.menu.Selected().ID)
		if err != nil {
			// Menu only shows registered scenarios
			m.menu = NewMenuModel(m.registry, m.config)
			return m, nil
		}
		m.config.Seed = time.Now().UnixNano()
		m.battle = NewModel(game, m.store, m.config)
		m.battle.clipboard = false
		m.screen = screenBattle
		return m, m.battle.Init()
	}

	return m, cmd
}

// updateHistory handles updates when the history is open.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if h, ok := next.(HistoryModel); ok {
		m.history = h
	}

	switch {
	case m.history.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.history.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// updateBattle handles updates when a battle is running.
func (m SessionModel) updateBattle(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.battle.Update(msg)
	if b, ok := next.(Model); ok {
		m.battle = b
	}

	switch {
	case m.battle.BackToMenu():
		return m.toMenu()
	case m.battle.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.registry, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenBattle:
		return m.battle.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}
