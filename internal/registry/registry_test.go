package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type nopGame struct{ id string }

func (g nopGame) ID() string { return g.id }
func (nopGame) Reset(core.RuntimeConfig) {}
func (nopGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (nopGame) Render(*core.Screen) {}

func register(t *testing.T, info GameInfo) {
	t.Helper()
	Register(info, func() Game { return nopGame{id: info.ID} })
	t.Cleanup(func() {
		mu.Lock()
		delete(entries, info.ID)
		mu.Unlock()
	})
}

func TestRegisterAndLookup(t *testing.T) {
	register(t, GameInfo{ID: "reg_b", Title: "B", Blurb: "second", Randomizer: "bag"})
	register(t, GameInfo{ID: "reg_a"})

	info, ok := Lookup("reg_b")
	require.True(t, ok)
	assert.Equal(t, "B", info.Title)
	assert.Equal(t, "second", info.Blurb)
	assert.Equal(t, "bag", info.Randomizer)

	info, ok = Lookup("reg_a")
	require.True(t, ok)
	assert.Equal(t, "reg_a", info.Title, "title falls back to the ID")

	_, ok = Lookup("reg_missing")
	assert.False(t, ok)
	assert.False(t, Exists("reg_missing"))
}

func TestListSortedByID(t *testing.T) {
	register(t, GameInfo{ID: "reg_z"})
	register(t, GameInfo{ID: "reg_m"})

	var ids []string
	for _, g := range List() {
		ids = append(ids, g.ID)
	}
	assert.IsIncreasing(t, ids)
	assert.Contains(t, ids, "reg_z")
	assert.Contains(t, ids, "reg_m")
}

func TestCreate(t *testing.T) {
	register(t, GameInfo{ID: "reg_c"})

	g, err := Create("reg_c")
	require.NoError(t, err)
	assert.Equal(t, "reg_c", g.ID())

	_, err = Create("reg_missing")
	assert.ErrorContains(t, err, "unknown variant")
}

func TestRegisterPanics(t *testing.T) {
	register(t, GameInfo{ID: "reg_dup"})

	assert.Panics(t, func() { Register(GameInfo{ID: "reg_dup"}, nil) })
	assert.Panics(t, func() { Register(GameInfo{}, nil) })
}
