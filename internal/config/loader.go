package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// LoadTetris loads tetris configuration and validates it.
// Search order: customPath -> ~/.arcade/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Validate()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tetris.yaml"); userCfgPath != "" {
		if loaded, ok := parseFile(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := parseFile(filepath.Join("configs", "tetris.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	cfg = DefaultTetrisConfig()
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Validate()
	return cfg, nil
}

// parseFile reads an optional config file layered over the defaults.
func parseFile(path string) (TetrisConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TetrisConfig{}, false
	}
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, false
	}
	cfg.Validate()
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust pacing based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timing.BaseFallMs = 700
		cfg.Timing.MinFallMs = 150
		cfg.Gameplay.Randomizer = "bag"
	case DifficultyHard:
		cfg.Timing.MinFallMs = 60
		cfg.Timing.FallStepMs = 60
	}
}

// Validate clamps values that would stall or break the game back into a
// playable range.
func (c *TetrisConfig) Validate() {
	t := &c.Timing
	t.MinFallMs = max(16, t.MinFallMs)
	if t.BaseFallMs < t.MinFallMs {
		t.BaseFallMs = t.MinFallMs
	}
	t.FallStepMs = max(0, t.FallStepMs)
	t.ClearMs = max(0, t.ClearMs)
	t.LandingFlashMs = max(0, t.LandingFlashMs)

	s := &c.Scoring
	if s.LinesPerLevel <= 0 {
		s.LinesPerLevel = 10
	}
	s.SoftDropPoints = max(0, s.SoftDropPoints)
	s.HardDropPoints = max(0, s.HardDropPoints)

	if c.Gameplay.Randomizer != "uniform" && c.Gameplay.Randomizer != "bag" {
		c.Gameplay.Randomizer = "uniform"
	}

	c.Effects.Damping = core.ClampF(c.Effects.Damping, 0.0, 1.0)
	c.Difficulty.InitialLevel = core.ClampF(c.Difficulty.InitialLevel, 0.0, 1.0)
}
