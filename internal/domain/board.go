package domain

import "strings"

// Board is a 6x7 grid seen from the mover's side. It is a value: every
// transition returns a new Board and never touches the receiver, so search
// branches can hold boards without coordinating.
//
// here row 0 represents the top row (0 -> top and 5 -> bottom)
type Board struct {
	cells [Rows][Columns]Cell
}

func NewBoard() Board {
	return Board{}
}

func (b Board) At(row, column int) Cell {
	return b.cells[row][column]
}

// Set returns a copy of the board with (row, column) overwritten. It ignores
// gravity and is meant for building fixtures and decoding observations.
func (b Board) Set(row, column int, cell Cell) Board {
	b.cells[row][column] = cell
	return b
}

func (b Board) IsValidMove(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return b.cells[0][column] == Empty
}

// LegalColumns lists every column whose top cell is free, left to right.
func (b Board) LegalColumns() []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.cells[0][col] == Empty {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// DropRow is the row a piece dropped in column would land on.
func (b Board) DropRow(column int) (int, bool) {
	if column < 0 || column >= Columns {
		return -1, false
	}
	// shifting the disk from top to bottom till it
	// reaches the end or another disk
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// Apply drops a piece of p into column and returns the resulting board.
func (b Board) Apply(column int, p Player) (Board, error) {
	row, ok := b.DropRow(column)
	if !ok {
		return b, ErrIllegalMove
	}
	b.cells[row][column] = CellOf(p)
	return b, nil
}

// Play is Apply that also reports the landing row. It is the hot path of the
// searches, which only ever call it with columns taken from LegalColumns.
func (b Board) Play(column int, p Player) (Board, int) {
	row, ok := b.DropRow(column)
	if !ok {
		return b, -1
	}
	b.cells[row][column] = CellOf(p)
	return b, row
}

func (b Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b.cells[0][c] == Empty {
			return false
		}
	}
	return true
}

// Count is the number of pieces p has on the board.
func (b Board) Count(p Player) int {
	cell := CellOf(p)
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b.cells[r][c] == cell {
				n++
			}
		}
	}
	return n
}

// Empties is the number of free cells, i.e. the maximum remaining plies.
func (b Board) Empties() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b.cells[r][c] == Empty {
				n++
			}
		}
	}
	return n
}

// Swap returns the same position seen from the other side.
func (b Board) Swap() Board {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			switch b.cells[r][c] {
			case Mine:
				b.cells[r][c] = Theirs
			case Theirs:
				b.cells[r][c] = Mine
			}
		}
	}
	return b
}

// Validate reports ErrMalformedBoard for pieces floating above an empty cell.
func (b Board) Validate() error {
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows-1; r++ {
			if b.cells[r][c] != Empty && b.cells[r+1][c] == Empty {
				return ErrMalformedBoard
			}
		}
	}
	return nil
}

// String renders the grid as text, X for the mover and O for the opponent.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		sb.WriteByte('|')
		for c := 0; c < Columns; c++ {
			switch b.cells[r][c] {
			case Mine:
				sb.WriteByte('X')
			case Theirs:
				sb.WriteByte('O')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// this counts the number of disks in a specific direction
func (b Board) CountDiskInDirection(row, column, deltaRow, deltaCol int, p Player) int {
	cell := CellOf(p)
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < Rows && c >= 0 && c < Columns && b.cells[r][c] == cell {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
