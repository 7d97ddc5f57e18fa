// Package config provides YAML-based game configuration loading and
// difficulty presets for tetris.
package config

// TetrisConfig contains all tunable settings of a tetris game.
type TetrisConfig struct {
	Timing     TetrisTiming     `yaml:"timing"`
	Scoring    TetrisScoring    `yaml:"scoring"`
	Gameplay   TetrisGameplay   `yaml:"gameplay"`
	Effects    TetrisEffects    `yaml:"effects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisTiming defines the fall speed curve and animation lengths, in
// milliseconds.
type TetrisTiming struct {
	BaseFallMs     int `yaml:"base_fall_ms"`     // fall delay at level 1
	FallStepMs     int `yaml:"fall_step_ms"`     // reduction per level
	MinFallMs      int `yaml:"min_fall_ms"`      // floor
	ClearMs        int `yaml:"clear_ms"`         // line-clear flash
	LandingFlashMs int `yaml:"landing_flash_ms"` // hard-drop flash, 0 disables
}

// TetrisScoring defines point awards and level pacing.
type TetrisScoring struct {
	LinesPerLevel  int `yaml:"lines_per_level"`
	SoftDropPoints int `yaml:"soft_drop_points"`
	HardDropPoints int `yaml:"hard_drop_points"`
}

// TetrisGameplay defines piece generation and assists.
type TetrisGameplay struct {
	Randomizer string `yaml:"randomizer"` // "uniform" or "bag"
	Ghost      bool   `yaml:"ghost"`
}

// TetrisEffects defines the cosmetic particle layer.
type TetrisEffects struct {
	Enabled bool    `yaml:"enabled"`
	Damping float64 `yaml:"damping"` // fraction of particle velocity kept per second
}

// DifficultyConfig defines where a game starts and whether it speeds up.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`       // false keeps the level 1 fall speed
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = level 1, 1.0 = MaxStartLevel
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.35
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables speed progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
