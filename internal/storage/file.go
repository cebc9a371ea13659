package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// TextFile keeps the best score as decimal ASCII in a single file.
type TextFile struct {
	mu   sync.Mutex
	path string
}

// OpenTextFile prepares a text backend at path. The file itself is created
// on the first write.
func OpenTextFile(path string) (*TextFile, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	if expanded == "" {
		return nil, fmt.Errorf("storage: empty score file path")
	}
	return &TextFile{path: expanded}, nil
}

// Path returns the resolved file path.
func (f *TextFile) Path() string {
	return f.path
}

// ReadBest reads the stored score. A missing file yields an error wrapping
// fs.ErrNotExist.
func (f *TextFile) ReadBest() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}
	return parseBest(data)
}

// WriteBest replaces the file contents with value. The new contents are
// written to a temporary file first so a crash never leaves a torn score.
func (f *TextFile) WriteBest(value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ensureDir(f.path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".highscore-*")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(strconv.Itoa(value)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write score: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// ClearBest removes the score file.
func (f *TextFile) ClearBest() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: cannot remove %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op; the file is opened per operation.
func (f *TextFile) Close() error {
	return nil
}
