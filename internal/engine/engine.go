// Package engine implements the paddle simulation: ball motion, collision
// resolution, scoring, leveling and the round lifecycle.
//
// The engine is pure logic. It performs no rendering, reads no input devices
// and owns no timers; the platform calls Tick at a fixed rate, forwards
// player intents, and reads a Snapshot to draw each frame.
package engine

import (
	"time"

	"github.com/vovakirdan/tui-paddle/internal/config"
	"github.com/vovakirdan/tui-paddle/internal/core"
)

// State is the round state.
type State int

const (
	StatePlaying  State = iota // Ball in play
	StateGameOver              // Ball fell past the paddle, waiting for reset
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Direction is a paddle movement direction.
type Direction int

const (
	Left Direction = iota
	Right
)

// ScoreStore persists the best score.
// Load never fails from the caller's point of view (0 on any problem) and
// Save is best-effort; implementations report their own failures.
type ScoreStore interface {
	Load() int
	Save(value int)
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// Params holds the tunable constants of a round.
type Params struct {
	BallStartX   int
	BallStartY   int
	BallDX       int
	BallDY       int
	BallDiameter int

	PaddleStartX       int
	PaddleBottomOffset int // Paddle top = arena height - offset
	PaddleWidth        int
	PaddleHeight       int
	PaddleStep         int

	PointsPerLevel  int
	SpeedStep       int
	LevelUpDuration time.Duration
}

// ParamsFromConfig extracts engine parameters from a loaded configuration.
func ParamsFromConfig(cfg config.PaddleConfig) Params {
	return Params{
		BallStartX:         cfg.Ball.StartX,
		BallStartY:         cfg.Ball.StartY,
		BallDX:             cfg.Ball.DX,
		BallDY:             cfg.Ball.DY,
		BallDiameter:       cfg.Ball.Diameter,
		PaddleStartX:       cfg.Paddle.StartX,
		PaddleBottomOffset: cfg.Paddle.BottomOffset,
		PaddleWidth:        cfg.Paddle.Width,
		PaddleHeight:       cfg.Paddle.Height,
		PaddleStep:         cfg.Paddle.Step,
		PointsPerLevel:     cfg.Leveling.PointsPerLevel,
		SpeedStep:          cfg.Leveling.SpeedStep,
		LevelUpDuration:    cfg.Leveling.BannerDuration,
	}
}

// DefaultParams returns the classic game constants.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultPaddleConfig())
}

// Option configures an Engine.
type Option func(*Engine)

// WithParams overrides the default round constants.
func WithParams(p Params) Option {
	return func(e *Engine) {
		e.params = p
	}
}

// WithClock sets the time source used for the level-up banner deadline.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.now = c
		}
	}
}

// Engine owns all mutable game state. It is not safe for concurrent use;
// a single control loop drives Tick, MovePaddle, Reset and Snapshot.
type Engine struct {
	arenaW int
	arenaH int
	params Params

	ball   Ball
	paddle Paddle

	state     State
	score     int
	level     int
	highScore int
	tickCount uint64

	levelUp      bool
	levelUpUntil time.Time

	store ScoreStore
	now   Clock
}

// New creates an engine for an arena of the given size, loads the best
// score from store and starts the first round. A nil store keeps the best
// score in memory only.
func New(arenaW, arenaH int, store ScoreStore, opts ...Option) *Engine {
	e := &Engine{
		arenaW: max(1, arenaW),
		arenaH: max(1, arenaH),
		params: DefaultParams(),
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.store != nil {
		e.highScore = max(0, e.store.Load())
	}

	e.Reset()
	return e
}

// Reset starts a new round: ball and paddle return to their start
// positions, score to 0, level to 1, and the level-up banner is cleared.
// It is effective in any state; the best score is untouched.
func (e *Engine) Reset() {
	p := e.params

	e.ball = Ball{
		X:        p.BallStartX,
		Y:        p.BallStartY,
		DX:       p.BallDX,
		DY:       p.BallDY,
		Diameter: p.BallDiameter,
	}
	e.paddle = Paddle{
		X:      p.PaddleStartX,
		Width:  p.PaddleWidth,
		Height: p.PaddleHeight,
	}
	e.placePaddle()

	e.state = StatePlaying
	e.score = 0
	e.level = 1
	e.tickCount = 0
	e.levelUp = false
	e.levelUpUntil = time.Time{}
}

// Resize changes the arena bounds. The round continues; the paddle moves to
// the new bottom row and is re-clamped. Non-positive sizes are ignored.
func (e *Engine) Resize(arenaW, arenaH int) {
	if arenaW <= 0 || arenaH <= 0 {
		return
	}
	e.arenaW = arenaW
	e.arenaH = arenaH
	e.placePaddle()
}

// placePaddle pins the paddle row to the arena bottom and clamps x.
func (e *Engine) placePaddle() {
	e.paddle.Y = e.arenaH - e.params.PaddleBottomOffset
	e.paddle.X = core.Clamp(e.paddle.X, 0, e.paddle.MaxX(e.arenaW))
}

// Tick advances the simulation by one frame. It does nothing after game over.
func (e *Engine) Tick() {
	e.expireLevelUp()

	if e.state != StatePlaying {
		return
	}
	e.tickCount++

	e.ball.Move()

	// Side walls: sign flip only, the ball is not pushed back inside.
	if e.ball.X < 0 || e.ball.X > e.arenaW-e.ball.Diameter {
		e.ball.BounceX()
	}

	// Ceiling. The floor is left open for the paddle and the loss check.
	if e.ball.Y < 0 {
		e.ball.BounceY()
	}

	if e.paddleHit() {
		e.ball.BounceY()
		e.score++
		e.raiseLevelUp()
		e.applyLeveling()
	}

	if e.ball.Y > e.arenaH {
		e.endRound()
	}
}

// paddleHit tests the ball's leading x against the paddle span once it has
// passed the paddle's top edge.
func (e *Engine) paddleHit() bool {
	return e.ball.Y > e.paddle.Y-e.ball.Diameter && e.paddle.Covers(e.ball.X)
}

// applyLeveling raises the level and ball speed on every multiple of
// PointsPerLevel.
func (e *Engine) applyLeveling() {
	if e.params.PointsPerLevel <= 0 || e.score%e.params.PointsPerLevel != 0 {
		return
	}
	e.level++
	e.ball.SpeedUp(e.params.SpeedStep)
}

// raiseLevelUp shows the banner until LevelUpDuration from now.
// A later hit pushes the deadline out.
func (e *Engine) raiseLevelUp() {
	e.levelUp = true
	e.levelUpUntil = e.now().Add(e.params.LevelUpDuration)
}

// expireLevelUp clears the banner once its deadline has passed.
func (e *Engine) expireLevelUp() {
	if e.levelUp && !e.now().Before(e.levelUpUntil) {
		e.levelUp = false
	}
}

// endRound freezes the round and persists an improved best score.
func (e *Engine) endRound() {
	e.state = StateGameOver
	if e.score <= e.highScore {
		return
	}
	e.highScore = e.score
	if e.store != nil {
		e.store.Save(e.highScore)
	}
}

// MovePaddle shifts the paddle one step and clamps it to the arena.
// It does nothing after game over.
func (e *Engine) MovePaddle(dir Direction) {
	if e.state != StatePlaying {
		return
	}
	switch dir {
	case Left:
		e.paddle.X -= e.params.PaddleStep
	case Right:
		e.paddle.X += e.params.PaddleStep
	}
	e.paddle.X = core.Clamp(e.paddle.X, 0, e.paddle.MaxX(e.arenaW))
}

// Apply dispatches a player intent. Intents the engine does not handle
// (pause, quit) are ignored and reported as false.
func (e *Engine) Apply(in core.Intent) bool {
	switch in {
	case core.IntentMoveLeft:
		e.MovePaddle(Left)
	case core.IntentMoveRight:
		e.MovePaddle(Right)
	case core.IntentReset:
		e.Reset()
	default:
		return false
	}
	return true
}

// State returns the current round state.
func (e *Engine) State() State {
	return e.state
}

// Score returns the current round score.
func (e *Engine) Score() int {
	return e.score
}

// Level returns the current level.
func (e *Engine) Level() int {
	return e.level
}

// HighScore returns the best score known to this engine.
func (e *Engine) HighScore() int {
	return e.highScore
}
