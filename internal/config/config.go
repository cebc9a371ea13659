// Package config provides YAML-based configuration loading and difficulty
// presets for the paddle game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// PaddleConfig contains all configuration for a paddle session.
type PaddleConfig struct {
	Arena    ArenaConfig    `yaml:"arena"`
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleSpec     `yaml:"paddle"`
	Leveling LevelingConfig `yaml:"leveling"`
	Timing   TimingConfig   `yaml:"timing"`
	Storage  StorageConfig  `yaml:"storage"`
}

// ArenaConfig defines the playable surface in arena units.
type ArenaConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BallConfig defines the ball start state restored on every reset.
type BallConfig struct {
	StartX   int `yaml:"start_x"`
	StartY   int `yaml:"start_y"`
	DX       int `yaml:"dx"`
	DY       int `yaml:"dy"`
	Diameter int `yaml:"diameter"`
}

// PaddleSpec defines paddle geometry and movement.
type PaddleSpec struct {
	StartX       int `yaml:"start_x"`
	BottomOffset int `yaml:"bottom_offset"`
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	Step         int `yaml:"step"`
}

// LevelingConfig defines how scoring raises the level and ball speed.
type LevelingConfig struct {
	PointsPerLevel int           `yaml:"points_per_level"`
	SpeedStep      int           `yaml:"speed_step"`
	BannerDuration time.Duration `yaml:"banner_duration"` // How long the level-up hint stays visible
}

// TimingConfig defines the simulation cadence.
type TimingConfig struct {
	TickRate int `yaml:"tick_rate"` // Ticks per second
}

// StorageConfig selects where the best score lives.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "text", "gdata" or "sqlite"
	Path    string `yaml:"path"`    // File path for text and sqlite backends
}

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks that sizes and rates are usable.
func (c PaddleConfig) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"arena.width", c.Arena.Width},
		{"arena.height", c.Arena.Height},
		{"ball.diameter", c.Ball.Diameter},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"paddle.step", c.Paddle.Step},
		{"leveling.points_per_level", c.Leveling.PointsPerLevel},
		{"timing.tick_rate", c.Timing.TickRate},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, chk.name, chk.value)
		}
	}
	if c.Paddle.Width > c.Arena.Width {
		return fmt.Errorf("%w: paddle.width %d exceeds arena.width %d", ErrInvalidConfig, c.Paddle.Width, c.Arena.Width)
	}
	if c.Leveling.SpeedStep < 0 {
		return fmt.Errorf("%w: leveling.speed_step must not be negative", ErrInvalidConfig)
	}
	if c.Leveling.BannerDuration <= 0 {
		return fmt.Errorf("%w: leveling.banner_duration must be positive", ErrInvalidConfig)
	}
	return nil
}

// TickInterval returns the duration of one simulation tick.
func (c PaddleConfig) TickInterval() time.Duration {
	if c.Timing.TickRate <= 0 {
		return 5 * time.Millisecond
	}
	return time.Second / time.Duration(c.Timing.TickRate)
}
