package domain

// Square addresses one cell of the grid.
type Square struct {
	Row, Col int
}

// WindowCount is the number of length-4 lines on a 6x7 grid:
// 24 horizontal, 21 vertical and 12 on each diagonal.
const WindowCount = 69

// Windows lists every run of four consecutive cells in all four orientations.
// It is filled once at init so win checks and evaluation never allocate.
var Windows [WindowCount][ToWin]Square

var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{-1, 1}, // diagonal /
}

func init() {
	n := 0
	for _, dir := range directions {
		for r := 0; r < Rows; r++ {
			for c := 0; c < Columns; c++ {
				endRow := r + dir[0]*(ToWin-1)
				endCol := c + dir[1]*(ToWin-1)
				if endRow < 0 || endRow >= Rows || endCol < 0 || endCol >= Columns {
					continue
				}
				for k := 0; k < ToWin; k++ {
					Windows[n][k] = Square{Row: r + dir[0]*k, Col: c + dir[1]*k}
				}
				n++
			}
		}
	}
	if n != WindowCount {
		panic("domain: unexpected window count")
	}
}

// HasFour reports whether p owns any complete window.
func (b Board) HasFour(p Player) bool {
	cell := CellOf(p)
	for i := range Windows {
		w := &Windows[i]
		if b.cells[w[0].Row][w[0].Col] == cell &&
			b.cells[w[1].Row][w[1].Col] == cell &&
			b.cells[w[2].Row][w[2].Col] == cell &&
			b.cells[w[3].Row][w[3].Col] == cell {
			return true
		}
	}
	return false
}

// CompletesFour reports whether a piece of p placed exactly at (row, column)
// would give p four in a line. The cell itself is not inspected, so it can
// answer "would the opponent win here" for a square the mover is about to fill.
func (b Board) CompletesFour(row, column int, p Player) bool {
	// Only check lines passing through the specific position (row, column)
	for _, dir := range directions {
		total := 1 +
			b.CountDiskInDirection(row, column, dir[0], dir[1], p) +
			b.CountDiskInDirection(row, column, -dir[0], -dir[1], p)
		if total >= ToWin {
			return true
		}
	}
	return false
}

// Winner returns the side owning a complete window, if any. A malformed
// position where both sides have four reports the mover.
func (b Board) Winner() (Player, bool) {
	if b.HasFour(Self) {
		return Self, true
	}
	if b.HasFour(Opponent) {
		return Opponent, true
	}
	return Self, false
}

// IsTerminal is true once someone has four or the grid is full.
func (b Board) IsTerminal() bool {
	if _, won := b.Winner(); won {
		return true
	}
	return b.IsFull()
}
