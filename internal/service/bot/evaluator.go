package bot

import (
	"sort"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
)

const (
	// Score priorities (from highest to lowest)
	SCORE_FOUR       = 100000 // window already complete
	SCORE_THEM_THREE = 1000   // opponent one piece away in an open window
	SCORE_THEM_TWO   = 10     // opponent developing an open window
	SCORE_THREE      = 5      // bot one piece away in an open window
	SCORE_TWO        = 2      // bot developing an open window
	SCORE_CENTER     = 3      // per piece in the center column
)

// positionTable counts, for each cell, how many windows pass through it.
var positionTable = [domain.Rows][domain.Columns]int{
	{3, 4, 5, 7, 5, 4, 3},
	{4, 6, 8, 10, 8, 6, 4},
	{5, 8, 11, 13, 11, 8, 5},
	{5, 8, 11, 13, 11, 8, 5},
	{4, 6, 8, 10, 8, 6, 4},
	{3, 4, 5, 7, 5, 4, 3},
}

// Weights parameterises Evaluate. Them* values are subtracted.
type Weights struct {
	Name       string
	Positional bool
	Center     int
	Four       int
	Three      int
	Two        int
	ThemThree  int
	ThemTwo    int
}

var weightVariants = map[string]Weights{
	// positional table on top of the window scan
	"classic": {
		Name: "classic", Positional: true, Center: SCORE_CENTER,
		Four: SCORE_FOUR, Three: SCORE_THREE, Two: SCORE_TWO,
		ThemThree: SCORE_THEM_THREE, ThemTwo: SCORE_THEM_TWO,
	},
	// window scan only; defence dominates
	"defensive": {
		Name: "defensive", Center: SCORE_CENTER,
		Four: SCORE_FOUR, Three: SCORE_THREE, Two: SCORE_TWO,
		ThemThree: SCORE_THEM_THREE, ThemTwo: SCORE_THEM_TWO,
	},
	// counts own patterns only
	"offensive": {
		Name: "offensive", Center: SCORE_CENTER,
		Four: SCORE_FOUR, Three: SCORE_THREE, Two: SCORE_TWO,
	},
}

// LookupWeights returns a named weight table.
func LookupWeights(name string) (Weights, bool) {
	w, ok := weightVariants[name]
	return w, ok
}

// WeightNames lists the known weight tables in sorted order.
func WeightNames() []string {
	names := make([]string, 0, len(weightVariants))
	for name := range weightVariants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate scores board statically from mover's point of view; higher is
// better for mover. It runs once per search leaf and does not allocate.
func Evaluate(board domain.Board, mover domain.Player, w Weights) int {
	us, them := domain.CellOf(mover), domain.CellOf(mover.Other())
	score := 0

	for row := 0; row < domain.Rows; row++ {
		switch board.At(row, domain.CenterColumn) {
		case us:
			score += w.Center
		case them:
			score -= w.Center
		}
	}

	if w.Positional {
		for row := 0; row < domain.Rows; row++ {
			for col := 0; col < domain.Columns; col++ {
				switch board.At(row, col) {
				case us:
					score += positionTable[row][col]
				case them:
					score -= positionTable[row][col]
				}
			}
		}
	}

	for i := range domain.Windows {
		score += scoreWindow(board, &domain.Windows[i], us, them, w)
	}

	return score
}

func scoreWindow(board domain.Board, window *[domain.ToWin]domain.Square, us, them domain.Cell, w Weights) int {
	ours, theirs := 0, 0
	for _, sq := range window {
		switch board.At(sq.Row, sq.Col) {
		case us:
			ours++
		case them:
			theirs++
		}
	}

	// a window holding both colours can never be completed
	if ours > 0 && theirs > 0 {
		return 0
	}

	switch {
	case ours == 4:
		return w.Four
	case ours == 3:
		return w.Three
	case ours == 2:
		return w.Two
	case theirs == 4:
		return -w.Four
	case theirs == 3:
		return -w.ThemThree
	case theirs == 2:
		return -w.ThemTwo
	}
	return 0
}
