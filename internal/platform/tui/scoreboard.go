package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the variant/stats sidebar
	sidebarWidth       = 22  // Width of the sidebar
	tableMinWidth      = 50  // Minimum table width
	maxScores          = 100 // Max scores to load
)

var (
	sbTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	sbActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Variant key.Binding
	Prev    key.Binding
	Mine    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Variant, k.Mine, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Variant, k.Prev},
		{k.Mine, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Variant: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Mine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "my scores"),
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

// ScoreboardModel shows the leaderboard of one variant at a time, optionally
// filtered to the current player.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	player     string
	onlyMine   bool

	scores []storage.ScoreEntry
	stats  *storage.GameStats
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap

	width       int
	height      int
	showSidebar bool
	quitting    bool
	goingBack   bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// WithPlayer enables the "my scores" filter for the given player name.
func (m ScoreboardModel) WithPlayer(name string) ScoreboardModel {
	m.player = name
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Lines", Width: 6},
		{Title: "Lvl", Width: 4},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	tableWidth = max(tableWidth, tableMinWidth)
	if tableWidth > 60 {
		columns[1].Width = 10
		columns[4].Width = min(tableWidth-50, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// currentGame returns the selected variant ID, or "" when none is registered.
func (m ScoreboardModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// reload fetches scores and stats for the selected variant. Storage errors
// show as an empty board.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	gameID := m.currentGame()

	if m.store != nil && gameID != "" {
		var (
			scores []storage.ScoreEntry
			err    error
		)
		if m.onlyMine && m.player != "" {
			scores, err = m.store.PlayerScores(gameID, m.player, maxScores)
		} else {
			scores, err = m.store.TopScores(gameID, maxScores)
		}
		if err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(gameID); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Lines),
			fmt.Sprintf("%d", s.Level),
			player,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.Variant):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Mine):
			if m.player != "" {
				m.onlyMine = !m.onlyMine
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.games[m.gameCursor].Title)
	}
	if m.onlyMine {
		title += fmt.Sprintf(" (%s)", m.player)
	}
	b.WriteString("\n")
	b.WriteString(sbTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderSidebar(), "  ", sbBoxStyle.Render(m.renderTableContent())))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n")
		if line := m.statsLine(); line != "" {
			b.WriteString(sbDimStyle.Render(centerText(line, m.width)))
		}
		b.WriteString("\n")
		b.WriteString(sbBoxStyle.Render(m.renderTableContent()))
	}

	b.WriteString("\n")
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the variants above a stats block for the selected one.
func (m ScoreboardModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Variants\n")

	for i, g := range m.games {
		if i == m.gameCursor {
			sb.WriteString(sbTitleStyle.Render("> " + truncate(g.Title, sidebarWidth-6)))
		} else {
			sb.WriteString("  " + truncate(g.Title, sidebarWidth-6))
		}
		sb.WriteString("\n")
	}

	if m.stats != nil && m.stats.GamesCount > 0 {
		st := m.stats
		sb.WriteString("\nStats\n")
		fmt.Fprintf(&sb, "Best   %d\n", st.HighScore)
		fmt.Fprintf(&sb, "Games  %d\n", st.GamesCount)
		fmt.Fprintf(&sb, "Avg    %.0f\n", st.AvgScore)
		fmt.Fprintf(&sb, "Lines  %d\n", st.TotalLines)
		fmt.Fprintf(&sb, "Level  %d max\n", st.MaxLevel)
		if !st.LastPlayed.IsZero() {
			sb.WriteString(sbDimStyle.Render("Last " + st.LastPlayed.Format("Jan 02 15:04")))
		}
	}

	return sbBoxStyle.Width(sidebarWidth).Render(sb.String())
}

// renderTabs renders variants as a tab row, or "< current >" if they don't fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.games) == 0 {
		return ""
	}

	tabs := make([]string, len(m.games))
	plain := 0
	for i, g := range m.games {
		name := truncate(g.Title, 14)
		plain += len(name) + 3
		if i == m.gameCursor {
			tabs[i] = sbActiveTab.Render(name)
		} else {
			tabs[i] = sbDimStyle.Render(" " + name + " ")
		}
	}
	if plain > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
	}
	return strings.Join(tabs, " ")
}

// statsLine summarizes the selected variant in one line.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Games: %d  |  Avg: %.0f  |  Lines: %d  |  Max level: %d",
		m.stats.GamesCount, m.stats.AvgScore, m.stats.TotalLines, m.stats.MaxLevel)
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		msg := "No scores recorded yet.\nPlay a game to set a high score!"
		if m.onlyMine {
			msg = "No scores for " + m.player + " yet."
		}
		return sbDimStyle.Italic(true).Padding(2, 4).Render(msg)
	}
	return m.table.View()
}

// truncate shortens s to n bytes, marking the cut with a dot.
func truncate(s string, n int) string {
	if n <= 1 || len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height).WithPlayer(player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
