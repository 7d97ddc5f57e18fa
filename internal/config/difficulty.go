package config

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// MaxStartLevel is the highest level a game may start at.
const MaxStartLevel = 15

// DifficultyManager turns a DifficultyConfig into engine start parameters.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = core.ClampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables speed progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether the fall speed increases with level.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// StartLevel maps the initial difficulty onto [1, MaxStartLevel].
func (d *DifficultyManager) StartLevel() int {
	return 1 + int(math.Round(d.initialLevel*float64(MaxStartLevel-1)))
}

// FallStep returns the per-level fall delay reduction, or zero when
// progression is disabled.
func (d *DifficultyManager) FallStep(step time.Duration) time.Duration {
	if !d.IsEnabled() {
		return 0
	}
	return step
}

// LevelToInitial is the inverse of StartLevel: the initial_level value that
// starts a game at the given level.
func LevelToInitial(level int) float64 {
	level = core.Clamp(level, 1, MaxStartLevel)
	return float64(level-1) / float64(MaxStartLevel-1)
}

