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
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/metrics"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Logger receives session events. Defaults to a stderr logger.
	Logger *log.Logger

	// Metrics counts sessions and games. Nil disables metrics.
	Metrics *metrics.Metrics
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/tetris.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server that serves one game session per
// connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tetris-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
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
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.store, cfg, sshSession.User()).
		WithRenderer(bubbletea.MakeRenderer(sshSession)).
		WithLogger(s.logger).
		WithMetrics(s.config.Metrics)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.config.Metrics.SessionStarted()
		defer s.config.Metrics.SessionEnded()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		if s.store != nil {
			s.store.Close()
		}
		return err
	}

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

// sessionScreen identifies the active screen of a session.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenLevel
	screenScores
	screenGame
)

// startLeveler is implemented by games with a per-instance start level.
type startLeveler interface {
	StartAt(level int)
}

// SessionModel manages the full session flow:
// menu -> level select -> game -> menu, with the scoreboard reachable from
// the menu. It is the top-level model for SSH sessions.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	username  string
	sessionID string
	renderer  *lipgloss.Renderer
	logger    *log.Logger
	metrics   *metrics.Metrics

	screen    sessionScreen
	menu      MenuModel
	level     LevelMenuModel
	scores    ScoreboardModel
	gameID    string
	gameModel *Model
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:     store,
		config:    cfg,
		username:  username,
		sessionID: uuid.NewString(),
		logger:    log.Default(),
		screen:    screenMenu,
		menu:      NewMenuModel(store, cfg).WithPlayer(username),
	}
}

// WithRenderer sets the renderer used for game output.
func (m SessionModel) WithRenderer(r *lipgloss.Renderer) SessionModel {
	m.renderer = r
	return m
}

// WithLogger replaces the default logger. Session events carry the
// session ID.
func (m SessionModel) WithLogger(l *log.Logger) SessionModel {
	if l != nil {
		m.logger = l
	}
	return m
}

// WithMetrics reports games and saved scores to m.
func (m SessionModel) WithMetrics(mt *metrics.Metrics) SessionModel {
	m.metrics = mt
	return m
}

// SessionID returns the unique ID of this session.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevel:
		return m.updateLevel(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. Sub-models end with
// tea.Quit when a choice is made; the session swallows that command.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH).WithPlayer(m.username)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.gameID = selected.GameID
		m.level = NewLevelMenuModel(selected.Title, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLevel
		return m, m.level.Init()
	}

	return m, cmd
}

func (m SessionModel) updateLevel(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLevel, cmd := m.level.Update(msg)
	if lm, ok := newLevel.(LevelMenuModel); ok {
		m.level = lm
	}

	if m.level.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.level.WantsBack() {
		return m.returnToMenu()
	}
	if sel := m.level.Selected(); sel != nil {
		return m.startGame(sel.Level)
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if sm, ok := newScores.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.returnToMenu()
	}

	return m, cmd
}

// startGame creates the selected game and switches to it.
func (m SessionModel) startGame(level int) (tea.Model, tea.Cmd) {
	game, err := registry.Create(m.gameID)
	if err != nil {
		m.logger.Error("cannot create game", "session", m.sessionID, "game", m.gameID, "error", err)
		return m.returnToMenu()
	}
	if sl, ok := game.(startLeveler); ok {
		sl.StartAt(level)
	}

	m.config.Seed = time.Now().UnixNano()
	gm := NewModel(game, m.store, m.config).
		WithPlayer(m.username).
		WithRenderer(m.renderer).
		WithLogger(m.logger).
		WithOnSave(func(e storage.ScoreEntry) {
			m.metrics.ScoreSaved(e.GameID, e.Score)
		}).
		WithOnGameOver(m.gameOver).
		WithOnRestart(m.gameRestarted).
		Embedded()
	m.gameModel = &gm
	m.screen = screenGame
	m.metrics.GameStarted(m.gameID)

	m.logger.Info("game started",
		"session", m.sessionID,
		"user", m.username,
		"game", m.gameID,
		"level", level,
	)

	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.logGameEnd()
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.logGameEnd()
		return m.returnToMenu()
	}

	return m, cmd
}

// gameOver counts a finished game. Each R restart in the same model
// counts as a new start.
func (m SessionModel) gameOver(st core.GameState) {
	m.metrics.GameFinished(m.gameID, st.Lines)
	m.logger.Info("game over",
		"session", m.sessionID,
		"user", m.username,
		"game", m.gameID,
		"score", st.Score,
		"lines", st.Lines,
	)
}

func (m SessionModel) gameRestarted() {
	m.metrics.GameStarted(m.gameID)
	m.logger.Info("game restarted", "session", m.sessionID, "user", m.username, "game", m.gameID)
}

// logGameEnd logs leaving a game. Games left before game over are counted
// here, finished ones were counted by gameOver.
func (m SessionModel) logGameEnd() {
	st := m.gameModel.State()
	if !st.GameOver {
		m.metrics.GameFinished(m.gameID, st.Lines)
	}
	m.logger.Info("game ended",
		"session", m.sessionID,
		"user", m.username,
		"game", m.gameID,
		"score", st.Score,
		"lines", st.Lines,
		"level", st.Level,
	)
}

func (m SessionModel) returnToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.store, m.config).WithPlayer(m.username)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevel:
		return m.level.View()
	case screenScores:
		return m.scores.View()
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	}

	return m.menu.View()
}
