package core

// RuntimeConfig describes the host surface a session runs on.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// 200 ticks per second matches the 5ms frame cadence of the classic game.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 200,
	}
}
