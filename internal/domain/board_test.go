package domain

import "testing"

// boardFrom builds a board from six rows, top first: X mover, O opponent,
// anything else empty.
func boardFrom(t *testing.T, rows ...string) Board {
	t.Helper()
	if len(rows) != Rows {
		t.Fatalf("boardFrom: want %d rows, got %d", Rows, len(rows))
	}
	b := NewBoard()
	for r, line := range rows {
		if len(line) != Columns {
			t.Fatalf("boardFrom: row %d has %d columns", r, len(line))
		}
		for c, ch := range line {
			switch ch {
			case 'X':
				b = b.Set(r, c, Mine)
			case 'O':
				b = b.Set(r, c, Theirs)
			}
		}
	}
	return b
}

func TestDropRowStacksFromBottom(t *testing.T) {
	b := NewBoard()
	for want := Rows - 1; want >= 0; want-- {
		row, ok := b.DropRow(2)
		if !ok || row != want {
			t.Fatalf("DropRow(2) = %d, %v; want %d, true", row, ok, want)
		}
		b, _ = b.Play(2, Self)
	}
	if _, ok := b.DropRow(2); ok {
		t.Fatalf("DropRow on a full column should fail")
	}
	if b.IsValidMove(2) {
		t.Fatalf("full column reported as valid")
	}
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	b := NewBoard()
	next, err := b.Apply(3, Self)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if b.At(Rows-1, 3) != Empty {
		t.Fatalf("receiver was modified")
	}
	if next.At(Rows-1, 3) != Mine {
		t.Fatalf("piece not placed on bottom row")
	}
}

func TestApplyRejectsIllegalColumns(t *testing.T) {
	full := NewBoard()
	for i := 0; i < Rows; i++ {
		full, _ = full.Play(0, Player(i%2))
	}
	tests := []struct {
		name   string
		board  Board
		column int
	}{
		{"negative", NewBoard(), -1},
		{"too large", NewBoard(), Columns},
		{"full column", full, 0},
	}
	for _, tt := range tests {
		if _, err := tt.board.Apply(tt.column, Self); err != ErrIllegalMove {
			t.Fatalf("%s: got %v, want %v", tt.name, err, ErrIllegalMove)
		}
		if _, row := tt.board.Play(tt.column, Self); row != -1 {
			t.Fatalf("%s: Play row = %d, want -1", tt.name, row)
		}
	}
}

func TestLegalColumnsAndCounts(t *testing.T) {
	b := boardFrom(t,
		"X......",
		"O......",
		"X......",
		"O......",
		"X......",
		"O.....X",
	)
	legal := b.LegalColumns()
	if len(legal) != Columns-1 || legal[0] != 1 {
		t.Fatalf("LegalColumns = %v", legal)
	}
	if got := b.Count(Self); got != 4 {
		t.Fatalf("Count(Self) = %d, want 4", got)
	}
	if got := b.Count(Opponent); got != 3 {
		t.Fatalf("Count(Opponent) = %d, want 3", got)
	}
	if got := b.Empties(); got != Rows*Columns-7 {
		t.Fatalf("Empties = %d", got)
	}
	if b.IsFull() {
		t.Fatalf("board is not full")
	}
}

func TestSwapExchangesSides(t *testing.T) {
	b := boardFrom(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"XO.....",
	)
	s := b.Swap()
	if s.At(5, 0) != Theirs || s.At(5, 1) != Mine {
		t.Fatalf("Swap did not exchange pieces:\n%s", s)
	}
	if s.Swap() != b {
		t.Fatalf("double swap should be the identity")
	}
}

func TestValidateDetectsFloatingPieces(t *testing.T) {
	floating := boardFrom(t,
		".......",
		".......",
		".......",
		"...X...",
		".......",
		".......",
	)
	if err := floating.Validate(); err != ErrMalformedBoard {
		t.Fatalf("Validate = %v, want %v", err, ErrMalformedBoard)
	}
	if err := NewBoard().Validate(); err != nil {
		t.Fatalf("empty board: %v", err)
	}
}

func TestStringRendersPieces(t *testing.T) {
	b, _ := NewBoard().Play(0, Self)
	b, _ = b.Play(1, Opponent)
	want := "| | | | | | | |\n" +
		"| | | | | | | |\n" +
		"| | | | | | | |\n" +
		"| | | | | | | |\n" +
		"| | | | | | | |\n" +
		"|X|O| | | | | |\n"
	if got := b.String(); got != want {
		t.Fatalf("String() =\n%s\nwant\n%s", got, want)
	}
}
