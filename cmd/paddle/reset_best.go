package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-paddle/internal/storage"
)

var flagRounds bool

var resetBestCmd = &cobra.Command{
	Use:   "reset-best",
	Short: "Forget the best score",
	Long: `Reset the stored best score to zero.

With --rounds, the sqlite store also drops its round history.

Examples:
  paddle reset-best
  paddle --store sqlite reset-best --rounds`,
	Args: cobra.NoArgs,
	Run:  runResetBest,
}

func init() {
	resetBestCmd.Flags().BoolVar(&flagRounds, "rounds", false, "Also delete round history (sqlite only)")
}

func runResetBest(cmd *cobra.Command, _ []string) {
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
	defer backend.Close()

	if err := storage.Clear(backend); err != nil {
		backend.Close()
		fail("resetting best score: %v", err)
	}
	logger.Debug("best score cleared")

	if flagRounds {
		db, ok := backend.(*storage.SQLiteStore)
		if !ok {
			logger.Warn("round history is only kept by the sqlite store, nothing to delete")
		} else if err := db.ClearRounds(); err != nil {
			backend.Close()
			fail("deleting rounds: %v", err)
		}
	}

	fmt.Println("Best score reset to 0.")
}
