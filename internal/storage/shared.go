package storage

import "sync"

// ScoreSaver is the engine-facing best-score contract.
type ScoreSaver interface {
	Load() int
	Save(value int)
}

// Shared serves one best score to many engines. Load returns the highest
// score seen so far and Save only forwards scores that beat it, so a
// session ending late with a lower score never overwrites a higher one.
type Shared struct {
	mu     sync.Mutex
	inner  ScoreSaver
	best   int
	loaded bool
}

// NewShared wraps inner. The persisted value is read on first use.
func NewShared(inner ScoreSaver) *Shared {
	return &Shared{inner: inner}
}

// Load returns the current best score.
func (s *Shared) Load() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.best
}

// Save persists value if it beats the current best.
func (s *Shared) Save(value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	if value <= s.best {
		return
	}
	s.best = value
	s.inner.Save(value)
}

func (s *Shared) loadLocked() {
	if s.loaded {
		return
	}
	s.best = s.inner.Load()
	s.loaded = true
}
