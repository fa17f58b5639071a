package bot

import "github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"

// Source says which stage of the agent produced a column.
type Source string

const (
	SourceWin                 Source = "win"
	SourceBlock               Source = "block"
	SourceDoubleThreat        Source = "double_threat"
	SourcePreemptDoubleThreat Source = "preempt_double_threat"
	SourceSearch              Source = "search"
	SourcePolicy              Source = "policy"
	SourceFallback            Source = "fallback"
)

// Tactic is the outcome of the pre-search. When Forced is set Column must be
// played; otherwise Candidates is the narrowed set handed to the search.
type Tactic struct {
	Column     int
	Source     Source
	Forced     bool
	Candidates []int
}

// WinningColumn returns the first legal column whose landing cell completes
// four for p.
func WinningColumn(board domain.Board, legal []int, p domain.Player) (int, bool) {
	for _, col := range legal {
		row, ok := board.DropRow(col)
		if !ok {
			continue
		}
		if board.CompletesFour(row, col, p) {
			return col, true
		}
	}
	return -1, false
}

// GivesOpponentWin reports whether mover playing column lets the opponent win
// straight away on the cell directly above.
func GivesOpponentWin(board domain.Board, column int, mover domain.Player) bool {
	next, row := board.Play(column, mover)
	if row <= 0 {
		return false
	}
	return next.CompletesFour(row-1, column, mover.Other())
}

// SafeColumns drops every column that hands the opponent an immediate win.
// When nothing is safe the full legal set is returned unchanged.
func SafeColumns(board domain.Board, legal []int, mover domain.Player) []int {
	safe := make([]int, 0, len(legal))
	for _, col := range legal {
		if !GivesOpponentWin(board, col, mover) {
			safe = append(safe, col)
		}
	}
	if len(safe) == 0 {
		return legal
	}
	return safe
}

// CreatesDoubleThreat reports whether p playing column leaves p with at least
// two distinct columns that win on the next ply.
func CreatesDoubleThreat(board domain.Board, column int, p domain.Player) bool {
	next, row := board.Play(column, p)
	if row < 0 {
		return false
	}

	threats := 0
	for col := 0; col < domain.Columns; col++ {
		landing, ok := next.DropRow(col)
		if !ok {
			continue
		}
		if next.CompletesFour(landing, col, p) {
			threats++
			if threats >= 2 {
				return true
			}
		}
	}
	return false
}

// PreSearch applies the cheap one-ply checks in priority order: win, block,
// safety filter, then (if doubleThreat) own double threat and pre-empting the
// opponent's.
func PreSearch(board domain.Board, mover domain.Player, legal []int, doubleThreat bool) Tactic {
	opponent := mover.Other()

	if col, ok := WinningColumn(board, legal, mover); ok {
		return Tactic{Column: col, Source: SourceWin, Forced: true, Candidates: legal}
	}

	if col, ok := WinningColumn(board, legal, opponent); ok {
		return Tactic{Column: col, Source: SourceBlock, Forced: true, Candidates: legal}
	}

	candidates := SafeColumns(board, legal, mover)

	if doubleThreat {
		for _, col := range candidates {
			if CreatesDoubleThreat(board, col, mover) {
				return Tactic{Column: col, Source: SourceDoubleThreat, Forced: true, Candidates: candidates}
			}
		}
		for _, col := range candidates {
			if CreatesDoubleThreat(board, col, opponent) {
				return Tactic{Column: col, Source: SourcePreemptDoubleThreat, Forced: true, Candidates: candidates}
			}
		}
	}

	return Tactic{Column: -1, Candidates: candidates}
}
