package storage

import (
	"fmt"
	"io/fs"
	"strconv"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

const (
	gdataObject   = "paddle"
	gdataProperty = "best"
)

// GData keeps the best score in the platform's per-user application data
// directory through gdata.
type GData struct {
	mu      sync.Mutex
	manager *gdata.Manager
}

// OpenGData opens the data store for the given application name.
func OpenGData(appName string) (*GData, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open app data for %s: %w", appName, err)
	}
	return &GData{manager: manager}, nil
}

// ReadBest reads the stored score. A missing property yields an error
// wrapping fs.ErrNotExist.
func (g *GData) ReadBest() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.manager.ObjectPropExists(gdataObject, gdataProperty) {
		return 0, fmt.Errorf("storage: no %s/%s property: %w", gdataObject, gdataProperty, fs.ErrNotExist)
	}
	data, err := g.manager.LoadObjectProp(gdataObject, gdataProperty)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load best score: %w", err)
	}
	return parseBest(data)
}

// WriteBest stores value as decimal bytes.
func (g *GData) WriteBest(value int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.manager.SaveObjectProp(gdataObject, gdataProperty, []byte(strconv.Itoa(value))); err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// Close is a no-op; gdata keeps no open handles.
func (g *GData) Close() error {
	return nil
}
