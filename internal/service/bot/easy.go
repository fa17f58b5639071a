package bot

import "github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"

// randomMove picks any legal column.
func randomMove(legal []int, rng Rand) int {
	return legal[rng.Intn(len(legal))]
}

// easyMove wins when it can, blocks when it must, and otherwise plays at random.
func easyMove(board domain.Board, mover domain.Player, legal []int, rng Rand) (int, Source) {
	if col, ok := WinningColumn(board, legal, mover); ok {
		return col, SourceWin
	}
	if col, ok := WinningColumn(board, legal, mover.Other()); ok {
		return col, SourceBlock
	}
	return randomMove(legal, rng), SourcePolicy
}
