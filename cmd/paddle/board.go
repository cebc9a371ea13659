package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-paddle/internal/platform/tui"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive scoreboard",
	Long: `Open an interactive scoreboard with the top and most recent rounds.
Round history is only kept by the sqlite store.

Controls:
  Up/Down    - Scroll
  Tab        - Switch between top and recent rounds
  Q/Esc      - Close

Examples:
  paddle board --store sqlite`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func runBoard(cmd *cobra.Command, _ []string) {
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

	var history tui.History
	if db, ok := backend.(*storage.SQLiteStore); ok {
		history = db
	}

	width, height := terminalSize()
	if err := tui.RunScoreboard(history, store.Load(), width, height); err != nil {
		store.Close()
		fail("running scoreboard: %v", err)
	}
}
