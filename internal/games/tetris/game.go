package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Game IDs registered with the platform.
const (
	GameID    = "tetris"
	GameIDBag = "tetris_bag"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// selectedStartLevel overrides the difficulty start level when non-zero.
var selectedStartLevel int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel sets the starting level (1-15). 0 means use the difficulty.
func SetStartLevel(level int) {
	if level < 0 || level > config.MaxStartLevel {
		level = 0
	}
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// Game adapts the Engine to the platform's fixed-tick game interface.
type Game struct {
	id         string
	randomizer string // forced randomizer, empty to follow config
	startLevel int    // per-instance override of selectedStartLevel

	engine *Engine
	fx     *Effects
	cfg    config.TetrisConfig

	tick  uint64
	dt    time.Duration
	best  int
	ghost bool

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a tetris game that follows the configured randomizer.
func New() *Game {
	return &Game{id: GameID}
}

// NewBag creates a tetris game that always deals from a 7-piece bag.
func NewBag() *Game {
	return &Game{id: GameIDBag, randomizer: RandomizerBag}
}

// Variants lists the registered tetris variants.
var Variants = []registry.GameInfo{
	{
		ID:    GameID,
		Title: "Tetris",
		Blurb: "Classic: every piece is drawn at random",
	},
	{
		ID:         GameIDBag,
		Title:      "Tetris (7-Bag)",
		Blurb:      "7-bag: each of the seven pieces once per bag",
		Randomizer: RandomizerBag,
	},
}

func init() {
	for _, v := range Variants {
		registry.Register(v, func() registry.Game {
			return &Game{id: v.ID, randomizer: v.Randomizer}
		})
	}
}

// StartAt makes this instance start at the given level (1-15) on its next
// Reset, regardless of SetStartLevel. 0 clears the override.
func (g *Game) StartAt(level int) {
	if level < 0 || level > config.MaxStartLevel {
		level = 0
	}
	g.startLevel = level
}

// SetBest seeds the HUD's best score, typically with the stored record.
func (g *Game) SetBest(score int) {
	g.best = max(g.best, score)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	if info, ok := registry.Lookup(g.id); ok {
		return info.Title
	}
	return "Tetris"
}

// Reset loads configuration and starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	// Load game config
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
	}
	if g.randomizer != "" {
		cfg.Gameplay.Randomizer = g.randomizer
	}
	g.cfg = cfg

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.dt = time.Second / time.Duration(tickRate)
	g.tick = 0
	g.ghost = cfg.Gameplay.Ghost

	level := selectedStartLevel
	if g.startLevel > 0 {
		level = g.startLevel
	}
	g.engine = NewEngine(SettingsFromConfig(cfg, level), runtime.Seed)

	// Effects draw from their own source so toggling them never changes the
	// piece sequence.
	g.fx = NewEffects(runtime.Seed ^ 0x5eed)
	g.fx.Enabled = cfg.Effects.Enabled
	g.fx.Damping = cfg.Effects.Damping
	g.engine.SetListener(g.fx)

	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// SettingsFromConfig converts a loaded config into engine settings. A
// non-zero startLevel overrides the difficulty's start level.
func SettingsFromConfig(cfg config.TetrisConfig, startLevel int) Settings {
	dm := config.NewDifficultyManager(cfg.Difficulty)
	if startLevel <= 0 {
		startLevel = dm.StartLevel()
	}

	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }

	return Settings{
		Rules: Rules{
			LinesPerLevel:  cfg.Scoring.LinesPerLevel,
			SoftDropPoints: cfg.Scoring.SoftDropPoints,
			HardDropPoints: cfg.Scoring.HardDropPoints,
			BaseFallDelay:  ms(cfg.Timing.BaseFallMs),
			FallDelayStep:  dm.FallStep(ms(cfg.Timing.FallStepMs)),
			MinFallDelay:   ms(cfg.Timing.MinFallMs),
		},
		StartLevel:    startLevel,
		Randomizer:    cfg.Gameplay.Randomizer,
		ClearDuration: ms(cfg.Timing.ClearMs),
		LandingFlash:  ms(cfg.Timing.LandingFlashMs),
	}
}

// Resize updates the layout for a new terminal size without touching the
// game state.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.engine.Restart() {
		g.fx.Clear()
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) {
		g.engine.TogglePause()
	}

	// Frozen while the window is too small to show the board
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	g.engine.Tick(g.dt)
	g.fx.Update(g.dt)

	g.best = max(g.best, g.engine.Scoring().Score)

	return core.StepResult{State: g.State()}
}

// processInput applies this tick's actions in a fixed order. The engine
// rejects them itself when paused or not falling.
func (g *Game) processInput(input core.InputFrame) {
	for range input.Count(core.ActionLeft) {
		g.engine.MoveLeft()
	}
	for range input.Count(core.ActionRight) {
		g.engine.MoveRight()
	}
	for range input.Count(core.ActionRotate) {
		g.engine.Rotate()
	}
	for range input.Count(core.ActionSoftDrop) {
		g.engine.SoftDrop()
	}
	if input.Has(core.ActionHold) {
		g.engine.Hold()
	}
	if input.Has(core.ActionHardDrop) {
		g.engine.HardDrop()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	s := g.engine.Scoring()
	return core.GameState{
		Score:    s.Score,
		Lines:    s.Lines,
		Level:    s.Level,
		GameOver: g.engine.GameOver(),
		Paused:   g.engine.Paused(),
	}
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Effects exposes the particle layer.
func (g *Game) Effects() *Effects {
	return g.fx
}
