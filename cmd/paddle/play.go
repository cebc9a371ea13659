package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-paddle/internal/config"
	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/platform/tui"
)

var (
	flagDifficulty string
	flagWidth      int
	flagHeight     int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Left/A, Right/D  - Move the paddle
  Space            - Restart (after game over)
  P                - Pause
  Ctrl+S           - Save a screenshot to ~/.paddle/screenshots
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - Wider paddle, level up every 10 points
  normal - Classic settings
  hard   - Narrower paddle, double speed-up per level

The arena is measured in its own units (400x500 by default) and scaled to
the terminal, so resizing the window never changes the game.

Examples:
  paddle play
  paddle play --difficulty easy
  paddle play --width 600 --height 500
  paddle play --config ./my-paddle.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Arena width in arena units (0 = config)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Arena height in arena units (0 = config)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	if flagWidth > 0 {
		cfg.Arena.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Arena.Height = flagHeight
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}

	logOut, closeLog := openLogFile()
	defer closeLog()
	logger, err := newLogger(logOut)
	if err != nil {
		fail("%v", err)
	}

	store := openScoreStore(cmd, cfg, logger)
	defer store.Close()

	width, height := terminalSize()
	logger.Info("starting game", "arena", []int{cfg.Arena.Width, cfg.Arena.Height}, "tick", cfg.TickInterval(), "difficulty", preset)

	runErr := tui.Run(tui.Options{
		Game: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Timing.TickRate,
		},
		Store:    store,
		Recorder: store.Recorder(),
		Logger:   logger,
	})
	if runErr != nil {
		store.Close()
		closeLog()
		fail("running game: %v", runErr)
	}
}
