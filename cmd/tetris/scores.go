package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
	flagScoresAll    bool
	flagScoresRun    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top high scores for a variant (default: tetris).

Examples:
  tetris scores
  tetris scores tetris_bag --limit 20
  tetris scores --player alice
  tetris scores --all
  tetris scores --run 3f1c...
  tetris scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show scores of this player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the variant")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded score (ignores --limit)")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single run by its ID")
	scoresCmd.MarkFlagsMutuallyExclusive("all", "player")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := tetris.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown variant %q, run 'tetris list' to see variants", gameID)
	}
	title := info.Title

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresRun != "" {
		return printRun(store, flagScoresRun)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return nil
	}

	var scores []storage.ScoreEntry
	switch {
	case flagScoresAll:
		scores, err = store.AllScores(gameID)
	case flagScoresPlayer != "":
		scores, err = store.PlayerScores(gameID, flagScoresPlayer, flagScoresLimit)
	default:
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-12s  %s\n", "Rank", "Score", "Lines", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-12s  %s\n", "----", "-----", "-----", "-----", "------", "----")

	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-12s  %s\n",
			i+1, e.Score, e.Lines, e.Level, player, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d   Games: %d   Avg: %.0f   Lines: %d   Max level: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalLines, stats.MaxLevel)
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	e, err := store.ScoreByRunID(runID)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("no run with ID %q", runID)
	}

	player := e.Player
	if player == "" {
		player = "-"
	}
	fmt.Printf("Run     %s\n", e.RunID)
	fmt.Printf("Variant %s\n", e.GameID)
	fmt.Printf("Player  %s\n", player)
	fmt.Printf("Score   %d\n", e.Score)
	fmt.Printf("Lines   %d\n", e.Lines)
	fmt.Printf("Level   %d\n", e.Level)
	fmt.Printf("Date    %s\n", e.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
