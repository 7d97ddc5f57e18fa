package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game variants",
	Long:  `Shows the registered tetris variants with their best score and play count.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	maxTitleLen := 5
	for _, g := range games {
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	stats := loadStats()

	fmt.Printf("  %-*s  %-*s  %-7s  %6s  %5s\n", maxIDLen, "ID", maxTitleLen, "Title", "Pieces", "Best", "Games")
	fmt.Printf("  %-*s  %-*s  %-7s  %6s  %5s\n", maxIDLen, "--", maxTitleLen, "-----", "------", "----", "-----")

	for _, g := range games {
		best, count := "-", "0"
		if st, ok := stats[g.ID]; ok {
			best = fmt.Sprintf("%d", st.HighScore)
			count = fmt.Sprintf("%d", st.GamesCount)
		}
		pieces := g.Randomizer
		if pieces == "" {
			pieces = "config"
		}
		fmt.Printf("  %-*s  %-*s  %-7s  %6s  %5s\n", maxIDLen, g.ID, maxTitleLen, g.Title, pieces, best, count)
		if g.Blurb != "" {
			fmt.Printf("  %-*s  %s\n", maxIDLen, "", g.Blurb)
		}
	}

	fmt.Println()
	fmt.Println("Run 'tetris play <id>' to play a variant.")
}

// loadStats returns per-variant stats, or nil when the database is unavailable.
func loadStats() map[string]*storage.GameStats {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Debug("no scores database", "error", err)
		return nil
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		logger.Warn("cannot read stats", "error", err)
		return nil
	}
	return stats
}
