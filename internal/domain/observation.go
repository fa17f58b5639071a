package domain

// Observation is the envelope the engine accepts at its boundary: the grid in
// two-channel form (channel 0 the mover, channel 1 the opponent) and an
// optional legal-column mask. A raw grid is just an Observation without Mask.
type Observation struct {
	Grid [Rows][Columns][2]uint8 `json:"grid"`
	Mask []int                   `json:"mask,omitempty"`
}

// ObservationFromBoard builds the envelope for b, including its mask.
func ObservationFromBoard(b Board) Observation {
	var obs Observation
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			switch b.cells[r][c] {
			case Mine:
				obs.Grid[r][c][Self] = 1
			case Theirs:
				obs.Grid[r][c][Opponent] = 1
			}
		}
	}
	obs.Mask = make([]int, Columns)
	for _, col := range b.LegalColumns() {
		obs.Mask[col] = 1
	}
	return obs
}

// Decode converts the envelope into a Board and the legal column list.
// Both channels set on one cell, floating pieces or a mask of the wrong length
// yield ErrMalformedBoard; a mask that offers a full column yields ErrIllegalMove.
func (o Observation) Decode() (Board, []int, error) {
	var b Board
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			mine, theirs := o.Grid[r][c][Self] != 0, o.Grid[r][c][Opponent] != 0
			switch {
			case mine && theirs:
				return Board{}, nil, ErrMalformedBoard
			case mine:
				b.cells[r][c] = Mine
			case theirs:
				b.cells[r][c] = Theirs
			}
		}
	}
	if err := b.Validate(); err != nil {
		return Board{}, nil, err
	}

	if o.Mask == nil {
		return b, b.LegalColumns(), nil
	}
	if len(o.Mask) != Columns {
		return Board{}, nil, ErrMalformedBoard
	}
	legal := make([]int, 0, Columns)
	for col, v := range o.Mask {
		if v == 0 {
			continue
		}
		if !b.IsValidMove(col) {
			return Board{}, nil, ErrIllegalMove
		}
		legal = append(legal, col)
	}
	return b, legal, nil
}
