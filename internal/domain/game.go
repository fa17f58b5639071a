package domain

// Game is the authoritative state of one match. The board is kept from the
// first seat's point of view (seat Self moves first); each seat is handed a
// mover-relative copy through View.
type Game struct {
	Board       Board
	CurrentSeat Player
	Status      GameStatus
	Winner      Player
	MoveCount   int
}

func NewGame() *Game {
	return &Game{
		Board:       NewBoard(),
		CurrentSeat: Self,
		Status:      StatusActive,
	}
}

// View returns the board as seen by seat, with seat's pieces in channel 0.
func (g *Game) View(seat Player) Board {
	if seat == Self {
		return g.Board
	}
	return g.Board.Swap()
}

func (g *Game) MakeMove(seat Player, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}

	if seat != g.CurrentSeat || !g.Board.IsValidMove(column) {
		return -1, ErrIllegalMove
	}

	next, row := g.Board.Play(column, seat)
	g.Board = next
	g.MoveCount++

	if g.Board.CompletesFour(row, column, seat) {
		g.Status = StatusWon
		g.Winner = seat
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentSeat = g.CurrentSeat.Other()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
