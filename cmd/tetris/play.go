package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play tetris",
	Long: `Start playing. The variant defaults to "tetris"; "tetris_bag" always
deals pieces from a shuffled 7-piece bag.

Controls:
  Left/Right, H/L  - Move
  Up, K, X         - Rotate clockwise
  Down, J          - Soft drop
  Space            - Hard drop
  C                - Hold
  P                - Pause
  Esc              - Pause, then quit while paused or after game over
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start and floor, 7-bag pieces
  normal - Configured defaults
  hard   - Later start level and a steeper speed curve
  fixed  - No speed progression

Without --level a start level selector is shown.

Examples:
  tetris play
  tetris play tetris_bag
  tetris play --level 8
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level 1-15 (0 = choose interactively)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with scores (default: OS user)")
}

// applyGameFlags pushes --config and --difficulty into the game package.
func applyGameFlags() error {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and global
// flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playerName returns --player or the OS user name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := tetris.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'tetris list' to see variants", gameID)
	}
	if flagLevel < 0 || flagLevel > config.MaxStartLevel {
		return fmt.Errorf("--level must be between 1 and %d", config.MaxStartLevel)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	cfg := runtimeConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	level := flagLevel
	if level == 0 {
		sel, selErr := tui.RunLevelSelector(gameTitle(gameID), cfg)
		if selErr != nil {
			return selErr
		}
		// User pressed back or quit
		if sel == nil {
			return nil
		}
		level = sel.Level
	}
	tetris.SetStartLevel(level)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	final, err := tui.Run(game, store, cfg, playerName(), gameLogger())
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	st := final.State()
	if st.Score > 0 {
		fmt.Printf("Score %d, %d lines, level %d\n", st.Score, st.Lines, st.Level)
	}
	return nil
}

// gameTitle returns the registered title of a variant.
func gameTitle(id string) string {
	if info, ok := registry.Lookup(id); ok {
		return info.Title
	}
	return id
}
