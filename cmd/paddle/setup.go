package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-paddle/internal/config"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

// newLogger creates the command logger writing to w at --log-level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "paddle",
		Level:           level,
	}), nil
}

// openLogFile opens ~/.paddle/paddle.log for appending. The alternate
// screen owns the terminal while playing, so the game logs there.
// Falls back to discarding output.
func openLogFile() (io.Writer, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return io.Discard, func() {}
	}
	dir := filepath.Join(home, ".paddle")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "paddle.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

// loadConfig loads the game configuration from --config or the default
// search path and applies --fps when given.
func loadConfig(cmd *cobra.Command) (config.PaddleConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("fps") {
		cfg.Timing.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// storageSettings resolves the backend kind and location. Flags beat the
// config file, which already carries environment overrides.
func storageSettings(cmd *cobra.Command, cfg config.PaddleConfig) (storage.Kind, string, error) {
	backend, path := cfg.Storage.Backend, cfg.Storage.Path
	if cmd.Flags().Changed("store") {
		backend = flagStore
	}

	kind, err := storage.ParseKind(backend)
	if err != nil {
		return "", "", err
	}

	// The stock path names the text file; other backends use their own default.
	if kind != storage.KindText && path == config.DefaultPaddleConfig().Storage.Path {
		path = ""
	}
	if cmd.Flags().Changed("db") {
		path = flagDBPath
	}
	return kind, path, nil
}

// openBackend opens the configured backend.
func openBackend(cmd *cobra.Command, cfg config.PaddleConfig, logger *log.Logger) (storage.Backend, error) {
	kind, path, err := storageSettings(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return storage.Open(kind, path, logger)
}

// openScoreStore opens the configured backend for play. A backend that
// cannot be opened degrades to memory so the game still works.
func openScoreStore(cmd *cobra.Command, cfg config.PaddleConfig, logger *log.Logger) *storage.ScoreStore {
	backend, err := openBackend(cmd, cfg, logger)
	if err != nil {
		logger.Warn("could not open score storage, best score will not persist", "error", err)
		backend = storage.NewMemory(0)
	}
	return storage.NewScoreStore(backend, logger)
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
