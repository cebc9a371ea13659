package storage

import (
	"sync"
	"time"
)

// Memory keeps everything in process memory. It is the fallback when the
// configured backend cannot be opened, and the SSH server's store in tests.
type Memory struct {
	mu     sync.Mutex
	best   int
	rounds []Round
	nextID int64
}

// NewMemory returns a memory backend seeded with best.
func NewMemory(best int) *Memory {
	return &Memory{best: best}
}

// ReadBest returns the stored score.
func (m *Memory) ReadBest() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// WriteBest stores value.
func (m *Memory) WriteBest(value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = value
	return nil
}

// ClearBest resets the stored score to 0.
func (m *Memory) ClearBest() error {
	return m.WriteBest(0)
}

// RecordRound appends r to the in-memory history.
func (m *Memory) RecordRound(r Round) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	r.ID = m.nextID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	m.rounds = append(m.rounds, r)
	return r.ID, nil
}

// Rounds returns a copy of the recorded history, oldest first.
func (m *Memory) Rounds() []Round {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Round, len(m.rounds))
	copy(out, m.rounds)
	return out
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
