package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/engine"
)

// Frame text.
const (
	levelUpText  = "Level up!"
	gameOverText = "You lost!"
	restartText  = "Press SPACE to restart"
	pausedText   = "PAUSED"
)

const (
	hudRows      = 1
	ballRune     = 'O'
	paddleRune   = '█'
	gameOverBoxW = 28
	gameOverBoxH = 5
)

// layout maps arena units onto the cells inside the arena border.
type layout struct {
	box    core.Rect
	inner  core.Rect
	arenaW int
	arenaH int
}

func newLayout(s *core.Screen, snap engine.Snapshot) layout {
	box := core.NewRect(0, hudRows, s.Width(), s.Height()-hudRows)
	return layout{
		box:    box,
		inner:  core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2),
		arenaW: snap.ArenaW,
		arenaH: snap.ArenaH,
	}
}

// usable reports whether the arena has at least one interior cell.
func (l layout) usable() bool {
	return l.inner.W > 0 && l.inner.H > 0
}

func (l layout) cellX(x int) int {
	return l.inner.X + core.Clamp(core.Scale(x, l.arenaW, l.inner.W), 0, l.inner.W-1)
}

func (l layout) cellY(y int) int {
	return l.inner.Y + core.Clamp(core.Scale(y, l.arenaH, l.inner.H), 0, l.inner.H-1)
}

// DrawFrame draws one frame of the game onto s: the HUD line, the arena
// border, ball, paddle and any overlay (level-up banner, pause, game over).
func DrawFrame(s *core.Screen, snap engine.Snapshot, paused bool) {
	s.Clear()
	drawHUD(s, snap)

	l := newLayout(s, snap)
	if !l.usable() {
		return
	}
	s.DrawBox(l.box, core.ColorGray)

	// Paddle
	px0 := l.cellX(snap.PaddleX)
	px1 := l.cellX(snap.PaddleX + snap.PaddleWidth - 1)
	s.DrawHLine(px0, l.cellY(snap.PaddleY), px1-px0+1, paddleRune, core.ColorBrightCyan)

	// Ball
	half := snap.BallDiameter / 2
	s.SetColored(l.cellX(snap.BallX+half), l.cellY(snap.BallY+half), ballRune, core.ColorBrightRed)

	if snap.LevelUp {
		drawCentered(s, l.inner, l.inner.Y, levelUpText, core.ColorBrightYellow)
	}

	switch {
	case snap.GameOver():
		drawGameOver(s, l.inner, snap)
	case paused:
		drawCentered(s, l.inner, l.inner.Y+l.inner.H/2, pausedText, core.ColorYellow)
	}
}

func drawHUD(s *core.Screen, snap engine.Snapshot) {
	hud := fmt.Sprintf("Score: %d   High Score: %d   Level: %d", snap.Score, snap.HighScore, snap.Level)
	s.DrawTextColored(1, 0, hud, core.ColorWhite)
}

func drawGameOver(s *core.Screen, area core.Rect, snap engine.Snapshot) {
	w := min(gameOverBoxW, area.W)
	h := min(gameOverBoxH, area.H)
	box := core.NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h)

	for y := box.Y; y < box.Bottom(); y++ {
		s.DrawHLine(box.X, y, box.W, ' ', core.ColorDefault)
	}
	if w >= 3 && h >= 3 {
		s.DrawBox(box, core.ColorRed)
	}

	lines := []struct {
		text  string
		color core.Color
	}{
		{gameOverText, core.ColorBrightRed},
		{fmt.Sprintf("Score: %d", snap.Score), core.ColorWhite},
		{restartText, core.ColorGray},
	}
	top := box.Y + (box.H-len(lines))/2
	for i, line := range lines {
		drawCentered(s, box, top+i, line.text, line.color)
	}
}

// drawCentered draws text horizontally centered within area.
func drawCentered(s *core.Screen, area core.Rect, y int, text string, c core.Color) {
	n := len([]rune(text))
	x := area.X + max(0, (area.W-n)/2)
	s.DrawTextColored(x, y, text, c)
}
