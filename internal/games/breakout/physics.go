package breakout

// Fixed is a fixed-point number with three decimal digits (Scale units per
// cell). Integer physics keeps the simulation exactly reproducible across
// platforms; floats are only approximated at render time.
type Fixed int

// Scale is the number of fixed units per screen cell.
const Scale = 1000

// ToFixed converts whole cells to fixed units.
func ToFixed(cells int) Fixed { return Fixed(cells * Scale) }

// Cell returns the whole-cell part of the position.
func (f Fixed) Cell() int { return int(f) / Scale }

// Abs returns the absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// ClampFixed restricts f to [lo, hi].
func ClampFixed(f, lo, hi Fixed) Fixed {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

// Ball is a point mass in fixed units.
type Ball struct {
	X, Y   Fixed
	VX, VY Fixed
}

// Move advances the ball one tick.
func (b *Ball) Move() {
	b.X += b.VX
	b.Y += b.VY
}

// BounceWalls reflects the ball off the side and top walls of a field that
// spans [0, w) x [0, h) cells. The bottom edge is open.
func (b *Ball) BounceWalls(w, h int) {
	maxX := ToFixed(w) - 1
	if b.X <= 0 {
		b.X = 0
		b.VX = b.VX.Abs()
	} else if b.X >= maxX {
		b.X = maxX
		b.VX = -b.VX.Abs()
	}
	if b.Y <= 0 {
		b.Y = 0
		b.VY = b.VY.Abs()
	}
}

// Paddle is a horizontal bat one cell tall.
type Paddle struct {
	X     Fixed // left edge
	Y     int   // row
	Width int   // cells
}

// Rect returns the paddle's bounds in fixed units.
func (p Paddle) left() Fixed  { return p.X }
func (p Paddle) right() Fixed { return p.X + ToFixed(p.Width) }

// DeflectOffPaddle bounces the ball off the paddle when it overlaps the
// paddle row moving downward. The horizontal velocity is set proportionally
// to the hit offset from the paddle center, clamped to maxBias; an exact
// center hit sends the ball straight up. Reports whether a bounce happened.
func DeflectOffPaddle(b *Ball, p Paddle, maxBias Fixed) bool {
	if b.VY <= 0 {
		return false
	}
	if b.Y.Cell() != p.Y {
		return false
	}
	if b.X < p.left() || b.X >= p.right() {
		return false
	}

	halfW := ToFixed(p.Width) / 2
	offset := b.X - (p.X + halfW)

	// Normalize to [-Scale, Scale] and scale to the bias range.
	norm := ClampFixed(offset*Scale/halfW, -Scale, Scale)
	b.VX = norm * maxBias / Scale
	b.VY = -b.VY.Abs()
	return true
}

// Brick is a destructible block, brick coordinates in whole cells.
type Brick struct {
	X, Y   int
	W      int
	Points int
	Alive  bool
}

// rect edges in fixed units.
func (br Brick) leftF() Fixed   { return ToFixed(br.X) }
func (br Brick) rightF() Fixed  { return ToFixed(br.X + br.W) }
func (br Brick) topF() Fixed    { return ToFixed(br.Y) }
func (br Brick) bottomF() Fixed { return ToFixed(br.Y + 1) }

// CollideBrick tests the ball against a brick and, on overlap, reflects the
// ball off the nearest overlapped side: the axis with the smallest
// penetration is the axis the ball entered through. Reports a hit.
func CollideBrick(b *Ball, br *Brick) bool {
	if !br.Alive {
		return false
	}
	if b.X < br.leftF() || b.X >= br.rightF() || b.Y < br.topF() || b.Y >= br.bottomF() {
		return false
	}

	overlapLeft := b.X - br.leftF()
	overlapRight := br.rightF() - b.X
	overlapTop := b.Y - br.topF()
	overlapBottom := br.bottomF() - b.Y

	minX := overlapLeft
	if overlapRight < minX {
		minX = overlapRight
	}
	minY := overlapTop
	if overlapBottom < minY {
		minY = overlapBottom
	}

	if minX < minY {
		b.VX = -b.VX
	} else {
		b.VY = -b.VY
	}

	br.Alive = false
	return true
}
