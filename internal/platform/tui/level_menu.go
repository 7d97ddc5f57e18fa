package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// LevelSelection holds the user's choice from the level menu.
// Level 0 means the configured difficulty picks the start level.
type LevelSelection struct {
	Level int
}

// LevelMenuModel lets users pick how a game starts: from the configured
// difficulty or from an explicit level.
type LevelMenuModel struct {
	title         string
	cursor        int
	levelCursor   int
	inLevelSelect bool
	rules         tetris.Rules
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     LevelSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewLevelMenuModel creates a level menu for the given game title.
func NewLevelMenuModel(title string, width, height int) LevelMenuModel {
	return LevelMenuModel{
		title:     title,
		rules:     tetris.DefaultRules(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleStartKey(action)
}

func (m LevelMenuModel) handleStartKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 1 { // 2 options: Start, Select Level
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			m.choosing = false
			m.selection = LevelSelection{Level: 0}
			return m, tea.Quit
		case 1:
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelMenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp, MenuActionLeft:
		m.levelCursor = core.Clamp(m.levelCursor-1, 0, config.MaxStartLevel-1)
	case MenuActionDown, MenuActionRight:
		m.levelCursor = core.Clamp(m.levelCursor+1, 0, config.MaxStartLevel-1)
	case MenuActionSelect:
		m.choosing = false
		m.selection = LevelSelection{Level: m.levelCursor + 1}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the start or level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewStart()
}

func (m LevelMenuModel) viewStart() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")

	options := []string{
		"Start",
		"Select Level...",
	}

	for i, opt := range options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+opt, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m LevelMenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i := range config.MaxStartLevel {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		level := i + 1
		sc := tetris.NewScoring(m.rules, level)
		line := fmt.Sprintf("%sLevel %2d  (%dms per row)", cursor, level, sc.FallDelay().Milliseconds())
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m LevelMenuModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level menu and returns the selection, or nil
// when the user backed out or quit.
func RunLevelSelector(title string, cfg core.RuntimeConfig) (*LevelSelection, error) {
	model := NewLevelMenuModel(title, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return nil, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
