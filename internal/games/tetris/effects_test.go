package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBoard(rows ...int) Board {
	var b Board
	for _, row := range rows {
		fillRow(&b, row, ShapeT)
	}
	return b
}

func TestRowsClearedSpawnsDebris(t *testing.T) {
	fx := NewEffects(1)
	fx.RowsCleared([]int{18, 19}, fullBoard(18, 19))

	assert.Len(t, fx.Particles(), 2*Width*ParticlesPerCell)
	assert.Len(t, fx.ShockWaves(), 2)
	for _, p := range fx.Particles() {
		assert.Equal(t, ShapeT.Color(), p.Color)
		assert.Positive(t, p.Life)
		assert.Equal(t, p.Life, p.MaxLife)
	}
	assert.True(t, fx.Active())
}

func TestDisabledEffectsStayEmpty(t *testing.T) {
	fx := NewEffects(1)
	fx.Enabled = false

	fx.RowsCleared([]int{19}, fullBoard(19))
	fx.HardDropped(Piece{Shape: ShapeI, X: 4, Y: 16}, 16)

	assert.Empty(t, fx.Particles())
	assert.Empty(t, fx.ShockWaves())
	assert.False(t, fx.Active())
}

func TestHardDroppedDust(t *testing.T) {
	fx := NewEffects(1)

	fx.HardDropped(Piece{Shape: ShapeO, X: 4, Y: 17}, 0)
	assert.False(t, fx.Active(), "zero-distance drop makes no dust")

	fx.HardDropped(Piece{Shape: ShapeO, X: 4, Y: 17}, 5)
	assert.Len(t, fx.Particles(), 8)
	require.Len(t, fx.ShockWaves(), 1)
	assert.InDelta(t, 5.0, fx.ShockWaves()[0].X, 1e-9)
}

func TestUpdateDecaysAndExpires(t *testing.T) {
	fx := NewEffects(3)
	fx.RowsCleared([]int{10}, fullBoard(10))

	start := make([]float64, len(fx.Particles()))
	for i, p := range fx.Particles() {
		start[i] = p.startSize
	}

	fx.Update(100 * time.Millisecond)
	require.Len(t, fx.Particles(), len(start), "nothing expires this early")
	for i, p := range fx.Particles() {
		assert.Less(t, p.Size, start[i])
		assert.InDelta(t, start[i]*float64(p.Life)/float64(p.MaxLife), p.Size, 1e-9)
	}

	fx.Update(2 * time.Second)
	assert.Empty(t, fx.Particles())
	assert.Empty(t, fx.ShockWaves())
	assert.False(t, fx.Active())
}

func TestShockWaveGrows(t *testing.T) {
	fx := NewEffects(1)
	fx.RowsCleared([]int{5}, fullBoard(5))

	fx.Update(clearWaveLife / 2)
	require.Len(t, fx.ShockWaves(), 1)
	w := fx.ShockWaves()[0]
	assert.InDelta(t, w.MaxRadius/2, w.Radius, 1e-9)
	assert.InDelta(t, 0.5, w.Intensity(), 1e-9)
}

func TestDampingSlowsParticles(t *testing.T) {
	fx := NewEffects(1)
	fx.Damping = 0.5
	fx.particles = []Particle{{VX: 4, Size: 1, startSize: 1, Life: time.Second, MaxLife: time.Second}}

	fx.Update(time.Second / 2)
	require.Len(t, fx.Particles(), 1)
	assert.InDelta(t, 4*0.7071067811865476, fx.Particles()[0].VX, 1e-9)
}

func TestParticleCap(t *testing.T) {
	fx := NewEffects(1)
	b := fullBoard(16, 17, 18, 19)
	for range 10 {
		fx.RowsCleared([]int{16, 17, 18, 19}, b)
	}
	assert.LessOrEqual(t, len(fx.Particles()), MaxParticles)
}

func TestClear(t *testing.T) {
	fx := NewEffects(1)
	fx.RowsCleared([]int{19}, fullBoard(19))
	fx.Clear()
	assert.False(t, fx.Active())
}

// The effects layer is never consulted by the engine: the same seed and the
// same actions give the same game with or without it.
func TestEffectsDoNotChangeOutcome(t *testing.T) {
	run := func(withFx bool) (Board, Scoring) {
		e := NewEngine(DefaultSettings(), 2024)
		if withFx {
			e.SetListener(NewEffects(9))
		}
		for i := range 400 {
			switch i % 5 {
			case 0:
				e.MoveLeft()
			case 1:
				e.Rotate()
			case 3:
				e.HardDrop()
			}
			e.Tick(50 * time.Millisecond)
			if e.GameOver() {
				break
			}
		}
		return e.Board(), e.Scoring()
	}

	b1, s1 := run(true)
	b2, s2 := run(false)
	assert.Equal(t, b1, b2)
	assert.Equal(t, s1, s2)
}
