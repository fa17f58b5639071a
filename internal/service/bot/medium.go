package bot

import "github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"

// mediumMove is the rule-based player: no tree, just a fixed list of checks.
func mediumMove(board domain.Board, mover domain.Player, legal []int, rng Rand) (int, Source) {
	// === PHASE 1: Immediate win ===
	if col, ok := WinningColumn(board, legal, mover); ok {
		return col, SourceWin
	}

	// === PHASE 2: Block the opponent's immediate win ===
	if col, ok := WinningColumn(board, legal, mover.Other()); ok {
		return col, SourceBlock
	}

	// === PHASE 3: Set up two winning cells at once ===
	for _, col := range legal {
		if CreatesDoubleThreat(board, col, mover) {
			return col, SourceDoubleThreat
		}
	}

	// === PHASE 4: Prefer the center ===
	for _, col := range centerOrder {
		for _, l := range legal {
			if l == col {
				return col, SourcePolicy
			}
		}
	}

	return randomMove(legal, rng), SourcePolicy
}
