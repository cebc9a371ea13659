// Package storage persists the best score and, for backends that support
// it, a history of finished rounds.
//
// Every backend implements Backend. The engine never sees a Backend
// directly: it talks to a ScoreStore, which turns backend errors into log
// lines so a broken disk never interrupts a game.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Backend reads and writes the persisted best score.
// Implementations are safe for concurrent use.
type Backend interface {
	ReadBest() (int, error)
	WriteBest(value int) error
	Close() error
}

// Clearer is implemented by backends that can forget the best score
// entirely rather than overwrite it with 0.
type Clearer interface {
	ClearBest() error
}

// Recorder is implemented by backends that keep round history.
type Recorder interface {
	RecordRound(r Round) (int64, error)
}

// Round is one finished round.
type Round struct {
	ID        int64
	Score     int
	Level     int
	Ticks     uint64
	CreatedAt time.Time
}

// Kind names a backend implementation.
type Kind string

const (
	KindText   Kind = "text"
	KindGData  Kind = "gdata"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// Default locations, relative to the user's home directory.
const (
	DefaultTextPath   = "~/.paddle/highscore.txt"
	DefaultSQLitePath = "~/.paddle/scores.db"
	DefaultGDataApp   = "tui-paddle"
)

var (
	// ErrUnknownBackend is returned for a backend name Open does not know.
	ErrUnknownBackend = errors.New("storage: unknown backend")

	// ErrCorrupt is returned when a stored best score cannot be parsed.
	ErrCorrupt = errors.New("storage: corrupt best score")
)

// ParseKind converts a CLI or config value into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindText, KindGData, KindSQLite, KindMemory:
		return k, nil
	case "":
		return KindText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// DefaultPath returns the default location for a backend kind.
// For gdata the "path" is the application name.
func DefaultPath(kind Kind) string {
	switch kind {
	case KindText:
		return DefaultTextPath
	case KindSQLite:
		return DefaultSQLitePath
	case KindGData:
		return DefaultGDataApp
	default:
		return ""
	}
}

// Open opens the backend of the given kind. An empty path selects
// DefaultPath(kind).
func Open(kind Kind, path string, logger *log.Logger) (Backend, error) {
	if logger == nil {
		logger = discardLogger()
	}
	if path == "" {
		path = DefaultPath(kind)
	}

	var (
		b   Backend
		err error
	)
	switch kind {
	case KindText:
		b, err = OpenTextFile(path)
	case KindGData:
		b, err = OpenGData(path)
	case KindSQLite:
		b, err = OpenSQLite(path)
	case KindMemory:
		b = NewMemory(0)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("opened score backend", "kind", kind, "path", path)
	return b, nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return nil
}

// parseBest parses a stored decimal best score. Surrounding whitespace is
// ignored; anything that is not a non-negative integer is corrupt.
func parseBest(data []byte) (int, error) {
	text := strings.TrimSpace(string(data))
	value, err := strconv.Atoi(text)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %q", ErrCorrupt, text)
	}
	return value, nil
}
