package engine

// Ball is the moving ball. Coordinates are the top-left corner of its
// bounding square in arena units.
type Ball struct {
	X, Y     int
	DX, DY   int // Velocity per tick
	Diameter int
}

// Move advances the ball by its velocity.
func (b *Ball) Move() {
	b.X += b.DX
	b.Y += b.DY
}

// BounceX reverses horizontal velocity.
func (b *Ball) BounceX() {
	b.DX = -b.DX
}

// BounceY reverses vertical velocity.
func (b *Ball) BounceY() {
	b.DY = -b.DY
}

// SpeedUp grows both velocity magnitudes by step, keeping their direction.
// A zero component is pushed in the negative direction.
func (b *Ball) SpeedUp(step int) {
	if b.DX > 0 {
		b.DX += step
	} else {
		b.DX -= step
	}
	if b.DY > 0 {
		b.DY += step
	} else {
		b.DY -= step
	}
}

// Paddle is the player's paddle. Y is the top edge and never changes
// during a round.
type Paddle struct {
	X, Y          int
	Width, Height int
}

// Covers reports whether x lies strictly inside the paddle's horizontal span.
func (p *Paddle) Covers(x int) bool {
	return p.X < x && x < p.X+p.Width
}

// MaxX returns the rightmost allowed x for an arena of the given width.
func (p *Paddle) MaxX(arenaW int) int {
	return arenaW - p.Width
}
