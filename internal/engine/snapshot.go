package engine

// Snapshot is a read-only copy of everything a renderer needs for a frame.
// It uses primitive types only so it can be compared and hashed.
type Snapshot struct {
	Tick uint64

	ArenaW int
	ArenaH int

	BallX        int
	BallY        int
	BallDX       int
	BallDY       int
	BallDiameter int

	PaddleX      int
	PaddleY      int
	PaddleWidth  int
	PaddleHeight int

	Score     int
	HighScore int
	Level     int
	LevelUp   bool
	State     State
}

// GameOver reports whether the round has ended.
func (s Snapshot) GameOver() bool {
	return s.State == StateGameOver
}

// Snapshot returns the current state for rendering. An expired level-up
// banner is cleared before the copy is taken.
func (e *Engine) Snapshot() Snapshot {
	e.expireLevelUp()

	return Snapshot{
		Tick:         e.tickCount,
		ArenaW:       e.arenaW,
		ArenaH:       e.arenaH,
		BallX:        e.ball.X,
		BallY:        e.ball.Y,
		BallDX:       e.ball.DX,
		BallDY:       e.ball.DY,
		BallDiameter: e.ball.Diameter,
		PaddleX:      e.paddle.X,
		PaddleY:      e.paddle.Y,
		PaddleWidth:  e.paddle.Width,
		PaddleHeight: e.paddle.Height,
		Score:        e.score,
		HighScore:    e.highScore,
		Level:        e.level,
		LevelUp:      e.levelUp,
		State:        e.state,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := s.Tick
	for _, v := range []int{
		s.ArenaW, s.ArenaH,
		s.BallX, s.BallY, s.BallDX, s.BallDY,
		s.PaddleX, s.PaddleY,
		s.Score, s.HighScore, s.Level, int(s.State),
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	if s.LevelUp {
		h = h*31 + 1
	}
	return h
}
