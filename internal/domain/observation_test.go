package domain

import (
	"encoding/json"
	"testing"
)

func TestObservationDecodeRoundTrip(t *testing.T) {
	b := boardFrom(t,
		".......",
		".......",
		".......",
		"..O....",
		"..X....",
		"X.OX...",
	)
	obs := ObservationFromBoard(b)
	got, legal, err := obs.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != b {
		t.Fatalf("decoded board differs:\n%s\nwant\n%s", got, b)
	}
	if len(legal) != Columns {
		t.Fatalf("legal = %v", legal)
	}
}

func TestObservationDecodeWithoutMask(t *testing.T) {
	var obs Observation
	for r := 0; r < Rows; r++ {
		obs.Grid[r][4][r%2] = 1
	}
	b, legal, err := obs.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.IsValidMove(4) {
		t.Fatalf("column 4 should be full")
	}
	for _, col := range legal {
		if col == 4 {
			t.Fatalf("full column in legal set %v", legal)
		}
	}
}

func TestObservationDecodeErrors(t *testing.T) {
	both := Observation{}
	both.Grid[5][0] = [2]uint8{1, 1}

	floating := Observation{}
	floating.Grid[2][3][Self] = 1

	shortMask := Observation{Mask: []int{1, 1, 1}}

	fullColumn := Observation{Mask: []int{1, 0, 0, 0, 0, 0, 0}}
	for r := 0; r < Rows; r++ {
		fullColumn.Grid[r][0][r%2] = 1
	}

	tests := []struct {
		name string
		obs  Observation
		want error
	}{
		{"both channels", both, ErrMalformedBoard},
		{"floating piece", floating, ErrMalformedBoard},
		{"mask length", shortMask, ErrMalformedBoard},
		{"mask offers full column", fullColumn, ErrIllegalMove},
	}
	for _, tt := range tests {
		if _, _, err := tt.obs.Decode(); err != tt.want {
			t.Fatalf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestObservationMaskRestrictsColumns(t *testing.T) {
	obs := Observation{Mask: []int{0, 0, 0, 0, 0, 1, 0}}
	_, legal, err := obs.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(legal) != 1 || legal[0] != 5 {
		t.Fatalf("legal = %v, want [5]", legal)
	}

	empty := Observation{Mask: make([]int, Columns)}
	_, legal, err = empty.Decode()
	if err != nil || len(legal) != 0 {
		t.Fatalf("all-zero mask: legal = %v, err = %v", legal, err)
	}
}

func TestObservationJSON(t *testing.T) {
	raw := `{"grid":[[[0,0],[0,0],[0,0],[0,0],[0,0],[0,0],[0,0]],
		[[0,0],[0,0],[0,0],[0,0],[0,0],[0,0],[0,0]],
		[[0,0],[0,0],[0,0],[0,0],[0,0],[0,0],[0,0]],
		[[0,0],[0,0],[0,0],[0,0],[0,0],[0,0],[0,0]],
		[[0,0],[0,0],[0,0],[0,0],[0,0],[0,0],[0,0]],
		[[0,1],[0,0],[0,0],[1,0],[0,0],[0,0],[0,0]]],
		"mask":[1,1,1,1,1,1,1]}`
	var obs Observation
	if err := json.Unmarshal([]byte(raw), &obs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	b, _, err := obs.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.At(5, 0) != Theirs || b.At(5, 3) != Mine {
		t.Fatalf("unexpected board:\n%s", b)
	}
}
