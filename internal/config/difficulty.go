package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset.
// The empty string means "keep the configuration as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyPreset(cfg *PaddleConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Width = cfg.Paddle.Width * 4 / 3
		cfg.Leveling.PointsPerLevel = cfg.Leveling.PointsPerLevel * 2
	case DifficultyHard:
		cfg.Paddle.Width = max(1, cfg.Paddle.Width*3/4)
		cfg.Leveling.SpeedStep = cfg.Leveling.SpeedStep * 2
	}
	if cfg.Paddle.Width > cfg.Arena.Width {
		cfg.Paddle.Width = cfg.Arena.Width
	}
}
