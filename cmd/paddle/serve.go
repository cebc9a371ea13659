package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-paddle/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game. All players share one best score,
kept in the configured store.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.paddle/host_key

Examples:
  paddle serve                           # Listen on :23234 with auto-generated key
  paddle serve --ssh :2222               # Listen on port 2222
  paddle serve --host-key ./my_host_key  # Use specific host key
  paddle --store sqlite serve            # Keep round history

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	gameCfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}

	store := openScoreStore(cmd, gameCfg, logger)
	defer store.Close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        gameCfg,
	}

	server, err := tui.NewSSHServer(cfg, store, store.Recorder(), logger.WithPrefix("paddle-ssh"))
	if err != nil {
		store.Close()
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting paddle SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		store.Close()
		fail("server: %v", err)
	}
}
