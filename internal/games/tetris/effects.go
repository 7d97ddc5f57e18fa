package tetris

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Particle is a short-lived debris fragment. Coordinates are in board
// cells and may be fractional or outside the board.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Color   core.Color
	Size    float64
	Life    time.Duration
	MaxLife time.Duration

	startSize float64
}

// ShockWave is an expanding ring centred on (X, Y).
type ShockWave struct {
	X, Y      float64
	Radius    float64
	MaxRadius float64
	Color     core.Color
	Life      time.Duration
	MaxLife   time.Duration
}

// Intensity is the remaining strength of the ring in [0, 1].
func (w ShockWave) Intensity() float64 {
	if w.MaxLife <= 0 {
		return 0
	}
	return float64(w.Life) / float64(w.MaxLife)
}

// Effect tuning.
const (
	MaxParticles       = 600
	ParticlesPerCell   = 3
	DefaultDamping     = 0.15 // fraction of velocity kept after one second
	particleGravity    = 14.0 // cells per second squared
	clearWaveLife      = 450 * time.Millisecond
	dropWaveLife       = 250 * time.Millisecond
	minParticleLife    = 350 * time.Millisecond
	particleLifeSpread = 450 * time.Millisecond
)

// Effects owns the cosmetic particles and shockwaves. It listens to engine
// events but never feeds anything back: disabling it or dropping it
// entirely leaves every game outcome unchanged.
type Effects struct {
	Enabled bool
	Damping float64

	rng       *rand.Rand
	particles []Particle
	waves     []ShockWave
}

// NewEffects creates an enabled effects layer with its own random source.
func NewEffects(seed int64) *Effects {
	return &Effects{
		Enabled: true,
		Damping: DefaultDamping,
		rng:     rand.New(rand.NewSource(seed)), //#nosec G404 -- cosmetic randomness
	}
}

// RowsCleared bursts every cell of the cleared rows into particles colored
// like the shape that filled it, and sends a ring out from each row.
func (fx *Effects) RowsCleared(rows []int, before Board) {
	if !fx.Enabled {
		return
	}

	waveColor := core.ColorBrightWhite
	if len(rows) == 4 {
		waveColor = core.ColorBrightYellow
	}

	for _, row := range rows {
		if row < 0 || row >= Height {
			continue
		}
		cy := float64(row) + 0.5
		for col := range Width {
			color := before[row][col].Color()
			for range ParticlesPerCell {
				fx.burst(float64(col)+0.5, cy, 3+fx.rng.Float64()*7, color)
			}
		}
		fx.waves = append(fx.waves, ShockWave{
			X:         Width / 2,
			Y:         cy,
			MaxRadius: Width/2 + 2,
			Color:     waveColor,
			Life:      clearWaveLife,
			MaxLife:   clearWaveLife,
		})
	}
}

// HardDropped kicks up dust under the landed piece. A drop of zero rows
// makes no effect.
func (fx *Effects) HardDropped(landed Piece, distance int) {
	if !fx.Enabled || distance <= 0 {
		return
	}

	color := landed.Shape.Color().Dim()
	var sumX, maxY float64
	for _, c := range landed.Positions() {
		x, y := float64(c.X)+0.5, float64(c.Y)+1
		sumX += x
		maxY = max(maxY, y)
		for range 2 {
			fx.spawn(Particle{
				X:     x,
				Y:     y,
				VX:    (fx.rng.Float64() - 0.5) * 6,
				VY:    -(1 + fx.rng.Float64()*float64(min(distance, 10))*0.6),
				Color: color,
				Size:  0.6 + fx.rng.Float64()*0.4,
			})
		}
	}

	fx.waves = append(fx.waves, ShockWave{
		X:         sumX / 4,
		Y:         maxY,
		MaxRadius: 2 + float64(min(distance, Height))/6,
		Color:     color,
		Life:      dropWaveLife,
		MaxLife:   dropWaveLife,
	})
}

// burst emits one particle from (x, y) in a random direction.
func (fx *Effects) burst(x, y, speed float64, color core.Color) {
	angle := fx.rng.Float64() * 2 * math.Pi
	fx.spawn(Particle{
		X:     x,
		Y:     y,
		VX:    speed * math.Cos(angle),
		VY:    speed*math.Sin(angle) - 2,
		Color: color,
		Size:  0.5 + fx.rng.Float64()*0.5,
	})
}

func (fx *Effects) spawn(p Particle) {
	if len(fx.particles) >= MaxParticles {
		return
	}
	life := minParticleLife + time.Duration(fx.rng.Int63n(int64(particleLifeSpread)))
	p.Life, p.MaxLife = life, life
	p.startSize = p.Size
	fx.particles = append(fx.particles, p)
}

// Update advances every particle and ring by dt and drops the expired ones.
// It runs regardless of the engine's pause state.
func (fx *Effects) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	sec := dt.Seconds()
	damp := math.Pow(fx.Damping, sec)
	if fx.Damping <= 0 {
		damp = 0
	}

	alive := fx.particles[:0]
	for _, p := range fx.particles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.VY += particleGravity * sec
		p.X += p.VX * sec
		p.Y += p.VY * sec
		p.VX *= damp
		p.VY *= damp
		p.Size = p.startSize * float64(p.Life) / float64(p.MaxLife)
		alive = append(alive, p)
	}
	fx.particles = alive

	waves := fx.waves[:0]
	for _, w := range fx.waves {
		w.Life -= dt
		if w.Life <= 0 {
			continue
		}
		w.Radius = w.MaxRadius * (1 - w.Intensity())
		waves = append(waves, w)
	}
	fx.waves = waves
}

// Particles returns the live particles. The slice is reused by Update.
func (fx *Effects) Particles() []Particle { return fx.particles }

// ShockWaves returns the live rings. The slice is reused by Update.
func (fx *Effects) ShockWaves() []ShockWave { return fx.waves }

// Active reports whether anything is still animating.
func (fx *Effects) Active() bool {
	return len(fx.particles) > 0 || len(fx.waves) > 0
}

// Clear removes all particles and rings.
func (fx *Effects) Clear() {
	fx.particles = fx.particles[:0]
	fx.waves = fx.waves[:0]
}
