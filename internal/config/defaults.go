package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Timing: TetrisTiming{
			BaseFallMs:     500,
			FallStepMs:     50,
			MinFallMs:      100,
			ClearMs:        300,
			LandingFlashMs: 60,
		},
		Scoring: TetrisScoring{
			LinesPerLevel:  10,
			SoftDropPoints: 1,
			HardDropPoints: 2,
		},
		Gameplay: TetrisGameplay{
			Randomizer: "uniform",
			Ghost:      true,
		},
		Effects: TetrisEffects{
			Enabled: true,
			Damping: 0.15,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
