package storage

import (
	"errors"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"
)

// ScoreStore adapts a Backend to the engine's best-score contract:
// Load never fails and Save never reports. Problems are logged instead.
type ScoreStore struct {
	backend Backend
	logger  *log.Logger
}

// NewScoreStore wraps backend. A nil logger discards output.
func NewScoreStore(backend Backend, logger *log.Logger) *ScoreStore {
	if logger == nil {
		logger = discardLogger()
	}
	return &ScoreStore{backend: backend, logger: logger}
}

// Load returns the persisted best score, or 0 when there is none or it
// cannot be read.
func (s *ScoreStore) Load() int {
	if s == nil || s.backend == nil {
		return 0
	}
	value, err := s.backend.ReadBest()
	switch {
	case err == nil:
		return value
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug("no best score stored yet")
	case errors.Is(err, ErrCorrupt):
		s.logger.Warn("ignoring unreadable best score", "error", err)
	default:
		s.logger.Warn("could not read best score", "error", err)
	}
	return 0
}

// Save overwrites the persisted best score. Failures are logged.
func (s *ScoreStore) Save(value int) {
	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.WriteBest(value); err != nil {
		s.logger.Error("could not save best score", "score", value, "error", err)
		return
	}
	s.logger.Info("new best score", "score", value)
}

// Backend returns the wrapped backend.
func (s *ScoreStore) Backend() Backend {
	return s.backend
}

// Recorder returns the backend's round recorder, or nil when the backend
// keeps no history.
func (s *ScoreStore) Recorder() Recorder {
	if r, ok := s.backend.(Recorder); ok {
		return r
	}
	return nil
}

// Close closes the wrapped backend.
func (s *ScoreStore) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// Clear forgets the best score, through ClearBest when the backend has it
// and by writing 0 otherwise.
func Clear(b Backend) error {
	if c, ok := b.(Clearer); ok {
		return c.ClearBest()
	}
	return b.WriteBest(0)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
