package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/paddle.yaml
var defaultPaddleYAML []byte

// DefaultPaddleConfig returns the classic configuration: a 400x500 arena,
// ball at (100,100) moving (2,2), a 60-wide paddle at x=200 and a level
// every 5 points.
func DefaultPaddleConfig() PaddleConfig {
	return PaddleConfig{
		Arena: ArenaConfig{
			Width:  400,
			Height: 500,
		},
		Ball: BallConfig{
			StartX:   100,
			StartY:   100,
			DX:       2,
			DY:       2,
			Diameter: 15,
		},
		Paddle: PaddleSpec{
			StartX:       200,
			BottomOffset: 50,
			Width:        60,
			Height:       10,
			Step:         15,
		},
		Leveling: LevelingConfig{
			PointsPerLevel: 5,
			SpeedStep:      1,
			BannerDuration: time.Second,
		},
		Timing: TimingConfig{
			TickRate: 200,
		},
		Storage: StorageConfig{
			Backend: "text",
			Path:    "~/.paddle/highscore.txt",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPaddleYAML
}
