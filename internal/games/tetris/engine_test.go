package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence deals a fixed cycle of shapes.
type sequence struct {
	shapes []Shape
	i      int
}

func (s *sequence) Next() Shape {
	shape := s.shapes[s.i%len(s.shapes)]
	s.i++
	return shape
}

// recorder captures engine events.
type recorder struct {
	cleared  [][]int
	before   []Board
	drops    []int
	landings []Piece
}

func (r *recorder) RowsCleared(rows []int, before Board) {
	r.cleared = append(r.cleared, append([]int(nil), rows...))
	r.before = append(r.before, before)
}

func (r *recorder) HardDropped(landed Piece, distance int) {
	r.landings = append(r.landings, landed)
	r.drops = append(r.drops, distance)
}

// newTestEngine starts a game whose pieces come from shapes in order: the
// first is active, the second is next.
func newTestEngine(settings Settings, shapes ...Shape) *Engine {
	e := NewEngine(settings, 1)
	e.gen = &sequence{shapes: shapes}
	e.newGame()
	return e
}

func instantSettings() Settings {
	s := DefaultSettings()
	s.ClearDuration = 0
	s.LandingFlash = 0
	return s
}

func TestNewGame(t *testing.T) {
	e := newTestEngine(DefaultSettings(), ShapeI, ShapeT, ShapeO)

	assert.Equal(t, NewPiece(ShapeI), e.Active())
	assert.Equal(t, ShapeT, e.Next())
	assert.Equal(t, ShapeNone, e.Held())
	assert.True(t, e.CanHold())
	assert.Equal(t, PhaseFalling, e.Phase())
	assert.False(t, e.Paused())
	assert.Equal(t, 1, e.Scoring().Level)
	assert.Zero(t, e.Board().Filled())
}

func TestFallTimer(t *testing.T) {
	e := newTestEngine(DefaultSettings(), ShapeI, ShapeT)

	e.Tick(499 * time.Millisecond)
	assert.Equal(t, 0, e.Active().Y)

	e.Tick(time.Millisecond)
	assert.Equal(t, 1, e.Active().Y)

	// The timer restarts after each drop.
	e.Tick(499 * time.Millisecond)
	assert.Equal(t, 1, e.Active().Y)
	e.Tick(time.Millisecond)
	assert.Equal(t, 2, e.Active().Y)
}

func TestNaturalFallLocks(t *testing.T) {
	e := newTestEngine(instantSettings(), ShapeI, ShapeT)

	// 16 drops to the floor, then one more tick locks it.
	for range 17 {
		e.Tick(500 * time.Millisecond)
	}

	b := e.Board()
	for row := 16; row < Height; row++ {
		assert.Equal(t, ShapeI, b[row][5], "row %d", row)
	}
	assert.Equal(t, NewPiece(ShapeT), e.Active())
	assert.Zero(t, e.Scoring().Score, "gravity awards nothing")
}

func TestMovesStopAtWalls(t *testing.T) {
	e := newTestEngine(DefaultSettings(), ShapeI, ShapeT)

	moves := 0
	for e.MoveLeft() {
		moves++
	}
	assert.Equal(t, 5, moves)
	assert.Equal(t, 0, e.Active().Positions()[0].X)

	moves = 0
	for e.MoveRight() {
		moves++
	}
	assert.Equal(t, 9, moves)
	assert.Equal(t, Width-1, e.Active().Positions()[0].X)
}

func TestSoftDrop(t *testing.T) {
	e := newTestEngine(DefaultSettings(), ShapeI, ShapeT)

	for range 16 {
		require.True(t, e.SoftDrop())
	}
	assert.Equal(t, 16, e.Scoring().Score)

	// Blocked soft drop neither scores nor locks.
	assert.False(t, e.SoftDrop())
	assert.Equal(t, 16, e.Scoring().Score)
	assert.Equal(t, PhaseFalling, e.Phase())
	assert.Zero(t, e.Board().Filled())
}

func TestHardDropLocksAndScores(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(instantSettings(), ShapeI, ShapeO)
	e.SetListener(rec)

	assert.Equal(t, 16, e.HardDrop())
	assert.Equal(t, 32, e.Scoring().Score)

	b := e.Board()
	for row := 16; row < Height; row++ {
		assert.Equal(t, ShapeI, b[row][5])
	}
	assert.Equal(t, NewPiece(ShapeO), e.Active())
	assert.Equal(t, PhaseFalling, e.Phase())

	require.Len(t, rec.drops, 1)
	assert.Equal(t, 16, rec.drops[0])
	assert.Equal(t, 16, rec.landings[0].Y)
	assert.Empty(t, rec.cleared)
}

func TestHardDropLandingFlash(t *testing.T) {
	settings := DefaultSettings()
	settings.LandingFlash = 60 * time.Millisecond
	e := newTestEngine(settings, ShapeI, ShapeO)

	e.HardDrop()
	assert.Equal(t, PhaseLanding, e.Phase())
	landed, ok := e.Landed()
	assert.True(t, ok)
	assert.Equal(t, 16, landed.Y)
	assert.Equal(t, 4, e.Board().Filled(), "piece locks before the flash")

	assert.False(t, e.MoveLeft())
	assert.Equal(t, -1, e.HardDrop())

	e.Tick(59 * time.Millisecond)
	assert.Equal(t, PhaseLanding, e.Phase())

	e.Tick(time.Millisecond)
	assert.Equal(t, PhaseFalling, e.Phase())
	assert.Equal(t, NewPiece(ShapeO), e.Active())
	_, ok = e.Landed()
	assert.False(t, ok)
}

func TestLineClearAnimation(t *testing.T) {
	settings := DefaultSettings()
	settings.LandingFlash = 0
	rec := &recorder{}
	e := newTestEngine(settings, ShapeI, ShapeT)
	e.SetListener(rec)
	fillRow(&e.board, 19, ShapeO, 5)

	e.HardDrop()

	require.Equal(t, PhaseClearing, e.Phase())
	assert.Equal(t, []int{19}, e.ClearingRows())
	assert.Equal(t, 32, e.Scoring().Score, "clear is scored when the animation ends")

	require.Len(t, rec.cleared, 1)
	assert.Equal(t, []int{19}, rec.cleared[0])
	assert.True(t, rec.before[0].rowFull(19), "listener sees the board before removal")

	// Nothing falls or spawns while the rows flash.
	assert.False(t, e.MoveLeft())
	e.Tick(299 * time.Millisecond)
	assert.Equal(t, PhaseClearing, e.Phase())
	assert.InDelta(t, 299.0/300.0, e.ClearProgress(), 1e-9)

	e.Tick(time.Millisecond)
	assert.Equal(t, PhaseFalling, e.Phase())
	assert.Empty(t, e.ClearingRows())
	assert.Equal(t, 132, e.Scoring().Score)
	assert.Equal(t, 1, e.Scoring().Lines)
	assert.Equal(t, NewPiece(ShapeT), e.Active())

	b := e.Board()
	assert.Equal(t, 3, b.Filled())
	for row := 17; row < Height; row++ {
		assert.Equal(t, ShapeI, b[row][5], "row %d", row)
	}
}

func TestFourLineClear(t *testing.T) {
	e := newTestEngine(instantSettings(), ShapeI, ShapeT)
	for row := 16; row < Height; row++ {
		fillRow(&e.board, row, ShapeL, 5)
	}

	e.HardDrop()

	s := e.Scoring()
	assert.Equal(t, 32+800, s.Score)
	assert.Equal(t, 4, s.Lines)
	assert.Zero(t, e.Board().Filled())
	assert.Equal(t, PhaseFalling, e.Phase())
}

func TestHold(t *testing.T) {
	e := newTestEngine(instantSettings(), ShapeI, ShapeT, ShapeO, ShapeS)

	// First hold: active goes to the slot, next comes into play.
	e.MoveLeft()
	e.Rotate()
	require.True(t, e.Hold())
	assert.Equal(t, ShapeI, e.Held())
	assert.Equal(t, NewPiece(ShapeT), e.Active())
	assert.Equal(t, ShapeO, e.Next())
	assert.False(t, e.CanHold())

	// Second hold before a spawn does nothing.
	assert.False(t, e.Hold())
	assert.Equal(t, ShapeI, e.Held())
	assert.Equal(t, NewPiece(ShapeT), e.Active())

	// A spawn re-enables it; now it swaps.
	e.HardDrop()
	assert.Equal(t, NewPiece(ShapeO), e.Active())
	assert.True(t, e.CanHold())

	require.True(t, e.Hold())
	assert.Equal(t, ShapeO, e.Held())
	assert.Equal(t, NewPiece(ShapeI), e.Active())
	assert.Equal(t, ShapeS, e.Next(), "swapping does not draw")
}

func TestPauseFreezesEverything(t *testing.T) {
	e := newTestEngine(DefaultSettings(), ShapeT, ShapeI)

	require.True(t, e.TogglePause())
	assert.True(t, e.Paused())

	e.Tick(10 * time.Second)
	assert.Equal(t, 0, e.Active().Y)

	assert.False(t, e.MoveLeft())
	assert.False(t, e.MoveRight())
	assert.False(t, e.Rotate())
	assert.False(t, e.SoftDrop())
	assert.False(t, e.Hold())
	assert.Equal(t, -1, e.HardDrop())
	assert.Equal(t, NewPiece(ShapeT), e.Active())

	require.True(t, e.TogglePause())
	e.Tick(500 * time.Millisecond)
	assert.Equal(t, 1, e.Active().Y)
}

func TestPauseFreezesClearAnimation(t *testing.T) {
	settings := DefaultSettings()
	settings.LandingFlash = 0
	e := newTestEngine(settings, ShapeI, ShapeT)
	fillRow(&e.board, 19, ShapeO, 5)
	e.HardDrop()
	require.Equal(t, PhaseClearing, e.Phase())

	e.TogglePause()
	e.Tick(time.Second)
	assert.Equal(t, PhaseClearing, e.Phase())

	e.TogglePause()
	e.Tick(300 * time.Millisecond)
	assert.Equal(t, PhaseFalling, e.Phase())
}

// forceGameOver parks the active piece on the right and blocks the spawn
// area so the next piece cannot appear.
func forceGameOver(t *testing.T, e *Engine) {
	t.Helper()
	for e.MoveRight() {
	}
	e.board[1][4] = ShapeZ
	e.HardDrop()
	require.True(t, e.GameOver())
}

func TestGameOverAndRestart(t *testing.T) {
	e := newTestEngine(instantSettings(), ShapeI, ShapeO, ShapeT)

	assert.False(t, e.Restart(), "restart only works after game over")

	forceGameOver(t, e)
	assert.Equal(t, PhaseGameOver, e.Phase())

	// Terminal: everything but restart is ignored.
	assert.False(t, e.TogglePause())
	assert.False(t, e.MoveLeft())
	assert.Equal(t, -1, e.HardDrop())
	before := e.Board()
	e.Tick(5 * time.Second)
	assert.Equal(t, before, e.Board())

	require.True(t, e.Restart())
	assert.Equal(t, PhaseFalling, e.Phase())
	assert.Zero(t, e.Board().Filled())
	assert.Zero(t, e.Scoring().Score)
	assert.Equal(t, ShapeNone, e.Held())
	assert.True(t, e.CanHold())
}

func TestHoldIntoBlockedSpawnEndsGame(t *testing.T) {
	e := newTestEngine(instantSettings(), ShapeI, ShapeO)
	for e.MoveRight() {
	}
	e.board[1][4] = ShapeZ

	require.True(t, e.Hold())
	assert.True(t, e.GameOver())
}

func TestStartLevelSetsSpeed(t *testing.T) {
	settings := DefaultSettings()
	settings.StartLevel = 5
	e := newTestEngine(settings, ShapeT, ShapeI)

	assert.Equal(t, 5, e.Scoring().Level)
	assert.Equal(t, 300*time.Millisecond, e.FallDelay())

	e.Tick(300 * time.Millisecond)
	assert.Equal(t, 1, e.Active().Y)
}

func TestGhost(t *testing.T) {
	e := newTestEngine(DefaultSettings(), ShapeI, ShapeT)
	assert.Equal(t, 16, e.Ghost().Y)
	assert.Equal(t, 0, e.Active().Y, "ghost does not move the piece")

	e.board[12][5] = ShapeJ
	assert.Equal(t, 8, e.Ghost().Y)
}

func TestResetReseeds(t *testing.T) {
	a := NewEngine(DefaultSettings(), 42)
	b := NewEngine(DefaultSettings(), 7)
	b.HardDrop()
	b.Reset(42)

	assert.Equal(t, a.Active(), b.Active())
	assert.Equal(t, a.Next(), b.Next())
	assert.Zero(t, b.Board().Filled())
	assert.Zero(t, b.Scoring().Score)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "falling", PhaseFalling.String())
	assert.Equal(t, "landing", PhaseLanding.String())
	assert.Equal(t, "clearing", PhaseClearing.String())
	assert.Equal(t, "game_over", PhaseGameOver.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
