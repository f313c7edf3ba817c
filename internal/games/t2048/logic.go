package t2048

// Size is the board dimension (Size x Size tiles).
const Size = 4

// Board holds tile values; 0 is an empty cell.
type Board [Size][Size]int

// slideRow compacts and merges a single row toward index 0.
// Each tile may participate in at most one merge per move: a tile produced
// by a merge is locked and cannot absorb the next equal tile. Returns the
// new row and the points gained (the sum of merged tile values).
func slideRow(row [Size]int) ([Size]int, int) {
	var out [Size]int
	write := 0
	lastMerged := -1
	points := 0

	for _, v := range row {
		if v == 0 {
			continue
		}
		if write > 0 && out[write-1] == v && lastMerged != write-1 {
			out[write-1] = v * 2
			points += v * 2
			lastMerged = write - 1
		} else {
			out[write] = v
			write++
		}
	}
	return out, points
}

func reverseRow(row [Size]int) [Size]int {
	var out [Size]int
	for i, v := range row {
		out[Size-1-i] = v
	}
	return out
}

func (b Board) transpose() Board {
	var out Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[c][r] = b[r][c]
		}
	}
	return out
}

// SlideLeft slides all rows toward the left edge.
// Returns the new board, points gained, and whether anything moved.
func (b Board) SlideLeft() (Board, int, bool) {
	var out Board
	points := 0
	moved := false
	for r := 0; r < Size; r++ {
		row, p := slideRow(b[r])
		out[r] = row
		points += p
		if row != b[r] {
			moved = true
		}
	}
	return out, points, moved
}

// SlideRight slides all rows toward the right edge.
func (b Board) SlideRight() (Board, int, bool) {
	var flipped Board
	for r := 0; r < Size; r++ {
		flipped[r] = reverseRow(b[r])
	}
	slid, points, moved := flipped.SlideLeft()
	var out Board
	for r := 0; r < Size; r++ {
		out[r] = reverseRow(slid[r])
	}
	return out, points, moved
}

// SlideUp slides all columns toward the top edge.
func (b Board) SlideUp() (Board, int, bool) {
	slid, points, moved := b.transpose().SlideLeft()
	return slid.transpose(), points, moved
}

// SlideDown slides all columns toward the bottom edge.
func (b Board) SlideDown() (Board, int, bool) {
	slid, points, moved := b.transpose().SlideRight()
	return slid.transpose(), points, moved
}

// EmptyCells returns the coordinates of all empty cells as {row, col} pairs.
func (b Board) EmptyCells() [][2]int {
	cells := make([][2]int, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == 0 {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}

// HasMove reports whether any slide would change the board: an empty cell
// exists or two equal tiles are adjacent.
func (b Board) HasMove() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == 0 {
				return true
			}
			if c+1 < Size && b[r][c] == b[r][c+1] {
				return true
			}
			if r+1 < Size && b[r][c] == b[r+1][c] {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the largest tile value on the board.
func (b Board) MaxTile() int {
	max := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] > max {
				max = b[r][c]
			}
		}
	}
	return max
}

// Sum returns the total value of all tiles. A slide without a spawn
// preserves it: merging 2+2 removes two tiles and adds one 4.
func (b Board) Sum() int {
	sum := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sum += b[r][c]
		}
	}
	return sum
}
