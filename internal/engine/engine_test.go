package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-paddle/internal/core"
)

// memStore records every call the engine makes to its score store.
type memStore struct {
	best  int
	loads int
	saves []int
}

func (s *memStore) Load() int {
	s.loads++
	return s.best
}

func (s *memStore) Save(value int) {
	s.best = value
	s.saves = append(s.saves, value)
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestEngine(store *memStore, clock *fakeClock) *Engine {
	return New(400, 500, store, WithClock(clock.Now))
}

// setUpHit places the ball so the next tick lands it just inside the paddle band.
func setUpHit(e *Engine) {
	e.ball.DY = core.Abs(e.ball.DY)
	e.ball.X = e.paddle.X + e.paddle.Width/2 - e.ball.DX
	e.ball.Y = e.paddle.Y - e.ball.Diameter + 1 - e.ball.DY
}

func TestNewLoadsBestScoreOnce(t *testing.T) {
	store := &memStore{best: 7}
	e := newTestEngine(store, newFakeClock())

	if store.loads != 1 {
		t.Errorf("Load() called %d times, expected 1", store.loads)
	}
	if e.HighScore() != 7 {
		t.Errorf("HighScore() = %d, expected 7", e.HighScore())
	}

	e.Tick()
	e.Reset()
	if store.loads != 1 {
		t.Errorf("Load() called again after Tick/Reset: %d calls", store.loads)
	}
}

func TestNewWithNilStore(t *testing.T) {
	e := New(400, 500, nil)
	if e.HighScore() != 0 {
		t.Errorf("HighScore() = %d, expected 0", e.HighScore())
	}

	// Must not panic when a round ends with an improved score.
	e.score = 3
	e.ball.Y = e.arenaH
	e.ball.X = 10
	e.Tick()
	if e.HighScore() != 3 {
		t.Errorf("HighScore() = %d, expected 3", e.HighScore())
	}
}

func TestInitialState(t *testing.T) {
	e := newTestEngine(&memStore{}, newFakeClock())
	snap := e.Snapshot()

	if snap.BallX != 100 || snap.BallY != 100 {
		t.Errorf("ball at (%d, %d), expected (100, 100)", snap.BallX, snap.BallY)
	}
	if snap.BallDX != 2 || snap.BallDY != 2 {
		t.Errorf("ball velocity (%d, %d), expected (2, 2)", snap.BallDX, snap.BallDY)
	}
	if snap.PaddleX != 200 || snap.PaddleY != 450 {
		t.Errorf("paddle at (%d, %d), expected (200, 450)", snap.PaddleX, snap.PaddleY)
	}
	if snap.Score != 0 || snap.Level != 1 || snap.LevelUp {
		t.Errorf("score/level/levelUp = %d/%d/%v, expected 0/1/false", snap.Score, snap.Level, snap.LevelUp)
	}
	if snap.State != StatePlaying {
		t.Errorf("state = %v, expected playing", snap.State)
	}
}

func TestHitScenario(t *testing.T) {
	store := &memStore{}
	e := newTestEngine(store, newFakeClock())

	// Six steps right puts the paddle span at (290, 350), under the ball's
	// first descent (x=336 when y crosses 435 on tick 168).
	for i := 0; i < 6; i++ {
		e.MovePaddle(Right)
	}
	if e.paddle.X != 290 {
		t.Fatalf("paddle x = %d, expected 290", e.paddle.X)
	}

	for i := 0; i < 167; i++ {
		e.Tick()
	}
	before := e.Snapshot()
	if before.Score != 0 {
		t.Fatalf("score before crossing the paddle band = %d, expected 0", before.Score)
	}
	if before.BallDY <= 0 {
		t.Fatalf("ball should be falling before the hit, dy = %d", before.BallDY)
	}

	e.Tick()
	after := e.Snapshot()

	if after.Score != 1 {
		t.Errorf("score = %d, expected 1", after.Score)
	}
	if after.BallDY != -before.BallDY {
		t.Errorf("dy = %d, expected %d", after.BallDY, -before.BallDY)
	}
	if !after.LevelUp {
		t.Error("level-up flag should be set after a hit")
	}
	if after.Level != 1 {
		t.Errorf("level = %d, expected 1", after.Level)
	}
	if after.State != StatePlaying {
		t.Errorf("state = %v, expected playing", after.State)
	}
	if len(store.saves) != 0 {
		t.Errorf("store written during play: %v", store.saves)
	}
}

func TestMissScenario(t *testing.T) {
	store := &memStore{}
	e := newTestEngine(store, newFakeClock())

	ticks := 0
	for e.State() == StatePlaying && ticks < 1000 {
		e.Tick()
		ticks++
		if e.Score() != 0 {
			t.Fatalf("unexpected hit on tick %d", ticks)
		}
	}

	if e.State() != StateGameOver {
		t.Fatal("round should end once the ball passes the arena bottom")
	}
	if ticks != 201 {
		t.Errorf("game over on tick %d, expected 201", ticks)
	}
	if snap := e.Snapshot(); snap.BallY <= 500 {
		t.Errorf("ball y = %d, expected > 500", snap.BallY)
	}
	if len(store.saves) != 0 {
		t.Errorf("score 0 should not be saved, got saves %v", store.saves)
	}
}

func TestWallBounces(t *testing.T) {
	tests := []struct {
		name           string
		ball           Ball
		wantDX, wantDY int
	}{
		{"right wall", Ball{X: 384, Y: 100, DX: 2, DY: 2, Diameter: 15}, -2, 2},
		{"left wall", Ball{X: 1, Y: 100, DX: -2, DY: 2, Diameter: 15}, 2, 2},
		{"ceiling", Ball{X: 100, Y: 1, DX: 2, DY: -2, Diameter: 15}, 2, 2},
		{"corner", Ball{X: 1, Y: 1, DX: -2, DY: -2, Diameter: 15}, 2, 2},
		{"open space", Ball{X: 100, Y: 100, DX: 2, DY: 2, Diameter: 15}, 2, 2},
		{"right edge exactly", Ball{X: 383, Y: 100, DX: 2, DY: 2, Diameter: 15}, 2, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(&memStore{}, newFakeClock())
			e.ball = tc.ball
			e.Tick()
			if e.ball.DX != tc.wantDX || e.ball.DY != tc.wantDY {
				t.Errorf("velocity = (%d, %d), expected (%d, %d)", e.ball.DX, e.ball.DY, tc.wantDX, tc.wantDY)
			}
		})
	}
}

func TestWallBounceDoesNotClamp(t *testing.T) {
	e := newTestEngine(&memStore{}, newFakeClock())
	e.ball = Ball{X: 1, Y: 100, DX: -5, DY: 2, Diameter: 15}
	e.Tick()

	if e.ball.X != -4 {
		t.Errorf("ball x = %d, expected -4 (no position correction)", e.ball.X)
	}
	if e.ball.DX != 5 {
		t.Errorf("dx = %d, expected 5", e.ball.DX)
	}
}

func TestPaddleHitBoxUsesLeadingX(t *testing.T) {
	tests := []struct {
		name    string
		ballX   int // x after the move
		wantHit bool
	}{
		{"left edge exclusive", 200, false},
		{"just inside left", 201, true},
		{"center", 230, true},
		{"just inside right", 259, true},
		{"right edge exclusive", 260, false},
		{"ball body overlaps but x left of paddle", 190, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(&memStore{}, newFakeClock())
			e.ball = Ball{X: tc.ballX - 2, Y: 434, DX: 2, DY: 2, Diameter: 15}
			e.Tick()

			hit := e.Score() == 1
			if hit != tc.wantHit {
				t.Errorf("hit = %v, expected %v", hit, tc.wantHit)
			}
		})
	}
}

func TestSingleHitPerTick(t *testing.T) {
	e := newTestEngine(&memStore{}, newFakeClock())
	setUpHit(e)
	e.Tick()

	if e.Score() != 1 {
		t.Fatalf("score = %d, expected 1", e.Score())
	}
	if e.ball.DY >= 0 {
		t.Errorf("dy = %d, expected negative after a single inversion", e.ball.DY)
	}
}

func TestLevelingEveryFivePoints(t *testing.T) {
	e := newTestEngine(&memStore{}, newFakeClock())

	prevScore, prevLevel := 0, 1
	for i := 1; i <= 16; i++ {
		setUpHit(e)
		e.Tick()

		if e.Score() != prevScore+1 {
			t.Fatalf("hit %d: score = %d, expected %d", i, e.Score(), prevScore+1)
		}
		expectedLevel := 1 + e.Score()/5
		if e.Level() != expectedLevel {
			t.Errorf("hit %d: level = %d, expected %d", i, e.Level(), expectedLevel)
		}
		if e.Level() < prevLevel {
			t.Errorf("hit %d: level decreased from %d to %d", i, prevLevel, e.Level())
		}
		prevScore, prevLevel = e.Score(), e.Level()
	}

	// Three level-ups, each adding 1 to both magnitudes.
	if core.Abs(e.ball.DX) != 5 || core.Abs(e.ball.DY) != 5 {
		t.Errorf("velocity magnitudes = (%d, %d), expected (5, 5)", core.Abs(e.ball.DX), core.Abs(e.ball.DY))
	}
}

func TestLevelUpPreservesSign(t *testing.T) {
	e := newTestEngine(&memStore{}, newFakeClock())
	e.score = 4
	e.ball = Ball{X: 232, Y: 434, DX: -2, DY: 2, Diameter: 15}
	e.Tick()

	if e.Level() != 2 {
		t.Fatalf("level = %d, expected 2", e.Level())
	}
	// dy was inverted by the hit before the speed-up.
	if e.ball.DX != -3 || e.ball.DY != -3 {
		t.Errorf("velocity = (%d, %d), expected (-3, -3)", e.ball.DX, e.ball.DY)
	}
}

func TestLevelUpBannerExpiresByWallClock(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(&memStore{}, clock)

	setUpHit(e)
	e.Tick()
	if !e.Snapshot().LevelUp {
		t.Fatal("banner should be visible right after a hit")
	}

	// Frame count is irrelevant: many ticks with no time passing keep it on.
	for i := 0; i < 500 && e.State() == StatePlaying; i++ {
		e.Tick()
	}
	if !e.Snapshot().LevelUp {
		t.Error("banner should stay visible until its deadline regardless of ticks")
	}

	clock.Advance(999 * time.Millisecond)
	if !e.Snapshot().LevelUp {
		t.Error("banner should still be visible at 999ms")
	}

	clock.Advance(time.Millisecond)
	if e.Snapshot().LevelUp {
		t.Error("banner should clear at 1s")
	}
}

func TestLevelUpBannerExtendedByLaterHit(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(&memStore{}, clock)

	setUpHit(e)
	e.Tick()

	clock.Advance(600 * time.Millisecond)
	setUpHit(e)
	e.Tick()

	clock.Advance(500 * time.Millisecond) // 1.1s after the first hit
	if !e.Snapshot().LevelUp {
		t.Error("second hit should extend the banner deadline")
	}

	clock.Advance(500 * time.Millisecond)
	if e.Snapshot().LevelUp {
		t.Error("banner should clear 1s after the last hit")
	}
}

func TestLevelUpBannerClearedByTick(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(&memStore{}, clock)

	setUpHit(e)
	e.Tick()
	clock.Advance(2 * time.Second)
	e.Tick()

	if e.levelUp {
		t.Error("Tick should clear an expired banner")
	}
}

func TestGameOverFreezesState(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(&memStore{}, clock)

	for e.State() == StatePlaying {
		e.Tick()
	}
	frozen := e.Snapshot()

	for i := 0; i < 20; i++ {
		e.Tick()
		e.MovePaddle(Left)
		e.MovePaddle(Right)
		e.Apply(core.IntentMoveLeft)
	}

	if got := e.Snapshot(); got != frozen {
		t.Errorf("state changed after game over:\n got %+v\nwant %+v", got, frozen)
	}
}

func TestResetRestoresInitialGeometry(t *testing.T) {
	store := &memStore{best: 2}
	clock := newFakeClock()
	e := newTestEngine(store, clock)

	for i := 0; i < 7; i++ {
		setUpHit(e)
		e.Tick()
	}
	e.MovePaddle(Right)
	e.ball = Ball{X: 20, Y: 499, DX: 2, DY: 2, Diameter: 15}
	e.Tick()
	if e.State() != StateGameOver {
		t.Fatal("round should be over")
	}

	e.Reset()
	snap := e.Snapshot()

	if snap.BallX != 100 || snap.BallY != 100 || snap.BallDX != 2 || snap.BallDY != 2 {
		t.Errorf("ball = (%d,%d) v(%d,%d), expected (100,100) v(2,2)", snap.BallX, snap.BallY, snap.BallDX, snap.BallDY)
	}
	if snap.PaddleX != 200 {
		t.Errorf("paddle x = %d, expected 200", snap.PaddleX)
	}
	if snap.Score != 0 || snap.Level != 1 || snap.LevelUp || snap.Tick != 0 {
		t.Errorf("score/level/levelUp/tick = %d/%d/%v/%d, expected 0/1/false/0", snap.Score, snap.Level, snap.LevelUp, snap.Tick)
	}
	if snap.State != StatePlaying {
		t.Errorf("state = %v, expected playing", snap.State)
	}
	if snap.HighScore != 7 {
		t.Errorf("high score = %d, expected 7 (reset must not touch it)", snap.HighScore)
	}
}

func TestResetWhilePlaying(t *testing.T) {
	e := newTestEngine(&memStore{}, newFakeClock())
	setUpHit(e)
	e.Tick()

	e.Reset()
	if e.Score() != 0 || e.State() != StatePlaying {
		t.Errorf("Reset while playing: score %d state %v, expected 0 playing", e.Score(), e.State())
	}
}

func TestPaddleClampInvariant(t *testing.T) {
	e := newTestEngine(&memStore{}, newFakeClock())
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		if rng.Intn(2) == 0 {
			e.MovePaddle(Left)
		} else {
			e.MovePaddle(Right)
		}
		if e.paddle.X < 0 || e.paddle.X > 400-e.paddle.Width {
			t.Fatalf("step %d: paddle x = %d outside [0, %d]", i, e.paddle.X, 400-e.paddle.Width)
		}
	}

	for i := 0; i < 50; i++ {
		e.MovePaddle(Right)
	}
	if e.paddle.X != 340 {
		t.Errorf("paddle x after pushing right = %d, expected 340", e.paddle.X)
	}
	for i := 0; i < 50; i++ {
		e.MovePaddle(Left)
	}
	if e.paddle.X != 0 {
		t.Errorf("paddle x after pushing left = %d, expected 0", e.paddle.X)
	}
}

func TestResizeReclampsPaddle(t *testing.T) {
	e := newTestEngine(&memStore{}, newFakeClock())
	for i := 0; i < 20; i++ {
		e.MovePaddle(Right)
	}

	e.Resize(200, 300)
	snap := e.Snapshot()

	if snap.PaddleX != 140 {
		t.Errorf("paddle x = %d, expected 140 after shrinking the arena", snap.PaddleX)
	}
	if snap.PaddleY != 250 {
		t.Errorf("paddle y = %d, expected 250", snap.PaddleY)
	}
	if snap.ArenaW != 200 || snap.ArenaH != 300 {
		t.Errorf("arena = %dx%d, expected 200x300", snap.ArenaW, snap.ArenaH)
	}

	e.Resize(0, -1)
	if snap2 := e.Snapshot(); snap2.ArenaW != 200 {
		t.Error("non-positive resize should be ignored")
	}

	// Reset in a shrunken arena keeps the start position inside bounds.
	e.Resize(220, 300)
	e.Reset()
	if e.paddle.X != 160 {
		t.Errorf("paddle x after reset = %d, expected clamped 160", e.paddle.X)
	}
}

func TestBestScorePersistence(t *testing.T) {
	t.Run("improved score is saved once", func(t *testing.T) {
		store := &memStore{best: 1}
		e := newTestEngine(store, newFakeClock())

		for i := 0; i < 3; i++ {
			setUpHit(e)
			e.Tick()
		}
		e.ball = Ball{X: 20, Y: 499, DX: 2, DY: 2, Diameter: 15}
		e.Tick()

		if e.State() != StateGameOver {
			t.Fatal("round should be over")
		}
		if len(store.saves) != 1 || store.saves[0] != 3 {
			t.Errorf("saves = %v, expected [3]", store.saves)
		}
		if e.HighScore() != 3 {
			t.Errorf("HighScore() = %d, expected 3", e.HighScore())
		}

		// Further ticks in game over never save again.
		e.Tick()
		if len(store.saves) != 1 {
			t.Errorf("saves after extra ticks = %v, expected one save", store.saves)
		}
	})

	t.Run("equal or lower score is not saved", func(t *testing.T) {
		store := &memStore{best: 2}
		e := newTestEngine(store, newFakeClock())

		for i := 0; i < 2; i++ {
			setUpHit(e)
			e.Tick()
		}
		e.ball = Ball{X: 20, Y: 499, DX: 2, DY: 2, Diameter: 15}
		e.Tick()

		if len(store.saves) != 0 {
			t.Errorf("saves = %v, expected none", store.saves)
		}
		if e.HighScore() != 2 {
			t.Errorf("HighScore() = %d, expected 2", e.HighScore())
		}
	})
}

func TestApplyIntents(t *testing.T) {
	e := newTestEngine(&memStore{}, newFakeClock())

	if !e.Apply(core.IntentMoveRight) || e.paddle.X != 215 {
		t.Errorf("MoveRight: paddle x = %d, expected 215", e.paddle.X)
	}
	if !e.Apply(core.IntentMoveLeft) || e.paddle.X != 200 {
		t.Errorf("MoveLeft: paddle x = %d, expected 200", e.paddle.X)
	}
	if e.Apply(core.IntentPause) || e.Apply(core.IntentQuit) || e.Apply(core.IntentNone) {
		t.Error("platform intents should not be handled by the engine")
	}

	e.score = 3
	if !e.Apply(core.IntentReset) || e.Score() != 0 {
		t.Error("Reset intent should reset the round")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		clock := newFakeClock()
		e := newTestEngine(&memStore{}, clock)
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 600 && e.State() == StatePlaying; i++ {
			switch rng.Intn(3) {
			case 0:
				e.MovePaddle(Left)
			case 1:
				e.MovePaddle(Right)
			}
			e.Tick()
			clock.Advance(5 * time.Millisecond)
		}
		return e.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if s1 != s2 {
		t.Errorf("Determinism failed: snapshots differ\n%+v\n%+v", s1, s2)
	}
}

func TestStateString(t *testing.T) {
	if StatePlaying.String() != "playing" || StateGameOver.String() != "gameover" || State(9).String() != "unknown" {
		t.Error("State.String returned unexpected values")
	}
}
