package domain

// Player is a side relative to the position being evaluated. It doubles as the
// channel index of the observation grid (0 -> mover, 1 -> opponent).
type Player int

const (
	Self     Player = 0
	Opponent Player = 1
)

func (p Player) Other() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == Self {
		return "self"
	}
	return "opponent"
}

// Cell is the content of one board square. A square holds at most one piece,
// so the two channels can never both be set.
type Cell uint8

const (
	Empty  Cell = 0
	Mine   Cell = 1
	Theirs Cell = 2
)

// CellOf returns the cell value a piece of p occupies.
func CellOf(p Player) Cell {
	return Cell(p + 1)
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4

	// CenterColumn is used both for move ordering and positional scoring.
	CenterColumn = Columns / 2
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrIllegalMove    Error = "illegal move"
	ErrNoLegalMove    Error = "no legal move"
	ErrMalformedBoard Error = "malformed board"
	ErrGameFinished   Error = "game is finished"
	ErrUnknownPreset  Error = "unknown engine preset"
)
