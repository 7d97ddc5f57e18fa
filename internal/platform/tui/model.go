package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// resizer is implemented by games that can follow terminal size changes
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// bestSetter is implemented by games that show the stored high score.
type bestSetter interface {
	SetBest(score int)
}

// Model is the Bubble Tea model for running a game.
// Standalone models quit on Back; embedded ones (inside a session) report
// BackToMenu instead.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string
	renderer   *lipgloss.Renderer
	logger     *log.Logger
	embedded   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	lastRunID  string
	onSave     func(storage.ScoreEntry)
	onOver     func(core.GameState)
	onRestart  func()
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	if bs, ok := game.(bestSetter); ok && store != nil {
		if best, err := store.HighScore(game.ID()); err == nil {
			bs.SetBest(best)
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		logger:     log.Default(),
	}
}

// WithPlayer sets the name stored alongside saved scores.
func (m Model) WithPlayer(name string) Model {
	m.player = name
	return m
}

// WithRenderer renders through the given lipgloss renderer.
func (m Model) WithRenderer(r *lipgloss.Renderer) Model {
	m.renderer = r
	return m
}

// WithLogger replaces the default logger.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// WithOnSave registers a callback run after each successful score save.
func (m Model) WithOnSave(fn func(storage.ScoreEntry)) Model {
	m.onSave = fn
	return m
}

// WithOnGameOver registers a callback run once per game over.
func (m Model) WithOnGameOver(fn func(core.GameState)) Model {
	m.onOver = fn
	return m
}

// WithOnRestart registers a callback run when a restart clears game over.
func (m Model) WithOnRestart(fn func()) Model {
	m.onRestart = fn
	return m
}

// Embedded makes Back return to the caller instead of quitting.
func (m Model) Embedded() Model {
	m.embedded = true
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Debug("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			if m.embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		// Esc while playing pauses first.
		m.inputFrame.Set(core.ActionPause)
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A restart clears game over, so the next one gets saved again.
	if !m.gameState.GameOver {
		m.scoreSaved = false
		if wasOver && m.onRestart != nil {
			m.onRestart()
		}
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
		if m.onOver != nil {
			m.onOver(m.gameState)
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished run. Failures are logged and ignored.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	saved, err := m.store.SaveScore(storage.ScoreEntry{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
		Lines:  m.gameState.Lines,
		Level:  m.gameState.Level,
	})
	if err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	m.lastRunID = saved.RunID
	if m.onSave != nil {
		m.onSave(saved)
	}
	m.logger.Debug("score saved",
		"game", saved.GameID,
		"run", saved.RunID,
		"score", saved.Score,
		"lines", saved.Lines,
	)
}

// saveScreenshot writes the current screen as plain text under
// ~/.arcade/screenshots and returns the file path.
func (m *Model) saveScreenshot() (string, error) {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(screenText(m.screen)), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// screenText returns the screen as plain text without trailing blanks.
func screenText(s *core.Screen) string {
	lines := make([]string, s.Height())
	for y := range lines {
		lines[y] = strings.TrimRight(s.Row(y), " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	if m.renderer != nil {
		return RenderScreenWith(m.renderer, m.screen)
	}
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// LastRunID returns the run ID of the most recently saved score.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game and returns the final
// model state. A nil logger keeps the default.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) (Model, error) {
	model := NewModel(game, store, cfg).WithPlayer(player).WithLogger(logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return model, nil
}
