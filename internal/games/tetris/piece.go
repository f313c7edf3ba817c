package tetris

// Shape is a square occupancy grid for one tetromino orientation.
type Shape [][]bool

// parseShape builds a Shape from row strings, '#' marking filled cells.
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, r := range row {
			s[y][x] = r == '#'
		}
	}
	return s
}

// tetrominoes are the seven standard pieces: I, O, T, S, Z, J, L.
var tetrominoes = []Shape{
	parseShape(
		"....",
		"####",
		"....",
		"....",
	),
	parseShape(
		"##",
		"##",
	),
	parseShape(
		".#.",
		"###",
		"...",
	),
	parseShape(
		".##",
		"##.",
		"...",
	),
	parseShape(
		"##.",
		".##",
		"...",
	),
	parseShape(
		"#..",
		"###",
		"...",
	),
	parseShape(
		"..#",
		"###",
		"...",
	),
}

// Rotated returns the shape turned 90 degrees clockwise.
// The receiver is left untouched.
func (s Shape) Rotated() Shape {
	n := len(s)
	out := make(Shape, n)
	for y := 0; y < n; y++ {
		out[y] = make([]bool, n)
		for x := 0; x < n; x++ {
			out[y][x] = s[n-1-x][y]
		}
	}
	return out
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y := range s {
		out[y] = append([]bool(nil), s[y]...)
	}
	return out
}

// Equal reports cell-for-cell equality.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Piece is a falling tetromino: a shape plus its well position.
type Piece struct {
	Kind  int
	Shape Shape
	X, Y  int
}

// Clone returns an independent copy of the piece.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Cells calls fn for every filled cell in well coordinates.
func (p Piece) Cells(fn func(x, y int)) {
	for sy, row := range p.Shape {
		for sx, filled := range row {
			if filled {
				fn(p.X+sx, p.Y+sy)
			}
		}
	}
}
