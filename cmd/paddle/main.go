// paddle is a terminal ball-and-paddle game: keep the ball in play, score a
// point for every return and speed up every five points.
//
// Usage:
//
//	paddle play              - Play in this terminal
//	paddle scores            - Print the best score and round history
//	paddle board             - Interactive scoreboard
//	paddle serve             - Start SSH server for remote play
//	paddle reset-best        - Forget the best score
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 200, one tick every 5ms)
//	--store <kind>      - Score backend: text, gdata or sqlite
//	--db <path>         - Backend location (file path, or app name for gdata)
//	--config <path>     - Custom config YAML
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagStore    string
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paddle",
	Short: "Paddle - keep the ball in play in your terminal",
	Long: `Paddle is a terminal ball-and-paddle game. The ball bounces off the
walls and the ceiling; return it with the paddle to score. Every five points
the ball speeds up. Miss it and the round is over.

Available commands:
  play        - Play in this terminal
  scores      - Print the best score and round history
  board       - Interactive scoreboard
  serve       - Start SSH server for remote play
  reset-best  - Forget the best score

Examples:
  paddle play
  paddle play --difficulty hard
  paddle --store sqlite play
  paddle scores --store sqlite
  paddle serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 200, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "text", "Score backend: text, gdata or sqlite")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Backend location (default depends on --store)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetBestCmd)
}
