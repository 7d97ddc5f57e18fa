package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	require.True(t, ok)
	return mm
}

func TestMenuShowsRecords(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{300, 1200} {
		_, err := store.SaveScore(storage.ScoreEntry{GameID: tetris.GameID, Score: score})
		require.NoError(t, err)
	}

	m := NewMenuModel(store, testRuntime()).WithPlayer("carol")
	require.Equal(t, tetris.GameID, m.items[0].GameID)
	assert.Equal(t, 1200, m.items[0].Best)
	assert.Equal(t, 2, m.items[0].Played)

	view := m.View()
	assert.Contains(t, view, "(best 1200)")
	assert.Contains(t, view, "2 games played")
	assert.Contains(t, view, "playing as carol")
	require.NotEmpty(t, m.items[0].Blurb)
	assert.Contains(t, view, m.items[0].Blurb)
}

func TestMenuCursorWraps(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	require.GreaterOrEqual(t, len(m.items), 2)

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, len(m.items)-1, m.cursor)
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.cursor)
}

func TestMenuSelectAndScoreboard(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	sel := menuUpdate(t, menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown}), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, sel.Selected())
	assert.Equal(t, tetris.GameIDBag, sel.Selected().GameID)

	sb := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, sb.WantsScoreboard())
	assert.Nil(t, sb.Selected())
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(nil, testRuntime()), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.Config().ScreenW)
	assert.Equal(t, 40, m.Config().ScreenH)
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   ab", centerText("ab", 8))
	assert.Equal(t, "toolong", centerText("toolong", 4))
}
