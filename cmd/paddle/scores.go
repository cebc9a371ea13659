package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-paddle/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the best score and round history",
	Long: `Print the best score. With the sqlite store, also print round
statistics and the top and most recent rounds.

Examples:
  paddle scores
  paddle scores --store sqlite
  paddle scores --store sqlite --limit 5`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to list")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}

	backend, err := openBackend(cmd, cfg, logger)
	if err != nil {
		fail("opening score storage: %v", err)
	}
	store := storage.NewScoreStore(backend, logger)
	defer store.Close()

	fmt.Println("Paddle - High Score")
	fmt.Println()
	fmt.Printf("Best: %d\n", store.Load())

	db, ok := backend.(*storage.SQLiteStore)
	if !ok {
		fmt.Println()
		fmt.Println("Round history needs the sqlite store (--store sqlite).")
		return
	}

	stats, err := db.Stats()
	if err != nil {
		logger.Error("could not read stats", "error", err)
		return
	}
	if stats.Rounds == 0 {
		fmt.Println()
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'paddle play --store sqlite' to set the first high score!")
		return
	}

	fmt.Printf("Rounds: %d   Avg: %.1f   Max level: %d   Last played: %s\n",
		stats.Rounds, stats.AvgScore, stats.MaxLevel, stats.LastPlayed.Format("2006-01-02 15:04"))

	top, err := db.TopRounds(flagLimit)
	if err != nil {
		logger.Error("could not read top rounds", "error", err)
		return
	}
	fmt.Println()
	fmt.Println("Top rounds")
	printRounds(top)

	recent, err := db.RecentRounds(flagLimit)
	if err != nil {
		logger.Error("could not read recent rounds", "error", err)
		return
	}
	fmt.Println()
	fmt.Println("Recent rounds")
	printRounds(recent)
}

func printRounds(rounds []storage.Round) {
	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %s\n", "Rank", "Score", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %s\n", "----", "-----", "-----", "----", "----")

	for i, r := range rounds {
		fmt.Printf("  %-4d  %-8d  %-6d  %-8s  %s\n",
			i+1, r.Score, r.Level, roundDuration(r.Ticks), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// roundDuration converts ticks at the default rate into seconds.
func roundDuration(ticks uint64) string {
	return fmt.Sprintf("%.1fs", float64(ticks)/200)
}
