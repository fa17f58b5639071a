package bot

import (
	"math"
	"sort"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
)

const (
	MINIMAX_WIN  = 100000
	MINIMAX_DRAW = 0
	// a root score above this can only come from a forced win
	WIN_THRESHOLD = 90000

	// do not start another depth once this much time has gone and the next
	// iteration is expected to overrun (each depth costs roughly 6x the last)
	growthGuardMin    = 10 * time.Millisecond
	growthGuardFactor = 7
)

// centerOrder is the column visiting order used inside the tree.
var centerOrder = [domain.Columns]int{3, 2, 4, 1, 5, 0, 6}

// DepthReport describes one fully completed iterative-deepening pass.
type DepthReport struct {
	Depth   int
	Column  int
	Score   int
	Nodes   int64
	Elapsed time.Duration
}

// Result is what a search engine hands back to the agent.
type Result struct {
	Column      int
	Depth       int
	Score       int
	Nodes       int64
	Simulations int
	Elapsed     time.Duration
}

// AlphaBeta is depth-bounded minimax. MaxDepth <= 0 means "until the deadline"
// and needs Iterative; a fixed-depth search that runs out of time answers
// with depth 1.
type AlphaBeta struct {
	Weights   Weights
	MaxDepth  int
	Pruning   bool
	Iterative bool
	OnDepth   func(DepthReport)
}

type searchRun struct {
	mover    domain.Player
	weights  Weights
	pruning  bool
	deadline time.Time
	bounded  bool
	nodes    int64
}

func (s *searchRun) expired() bool {
	return s.bounded && !time.Now().Before(s.deadline)
}

// Search picks a column among candidates for mover. A zero deadline disables
// the clock; otherwise the answer is the best move of the last depth that
// finished before the deadline.
func (ab AlphaBeta) Search(board domain.Board, mover domain.Player, candidates []int, deadline time.Time) Result {
	start := time.Now()
	ordered := orderCenterFirst(candidates)
	result := Result{Column: ordered[0]}

	limit := board.Empties()
	if ab.MaxDepth > 0 && ab.MaxDepth < limit {
		limit = ab.MaxDepth
	}
	if limit < 1 {
		limit = 1
	}

	run := &searchRun{
		mover:    mover,
		weights:  ab.Weights,
		pruning:  ab.Pruning,
		deadline: deadline,
	}

	if !ab.Iterative {
		run.bounded = !deadline.IsZero()
		col, score, ok := run.root(board, ordered, limit)
		if !ok {
			// out of time: settle for the one-ply answer
			run.bounded = false
			limit = 1
			col, score, _ = run.root(board, ordered, limit)
		}
		result.Column, result.Score, result.Depth = col, score, limit
		result.Nodes = run.nodes
		result.Elapsed = time.Since(start)
		return result
	}

	budget := deadline.Sub(start)
	for depth := 1; depth <= limit; depth++ {
		// depth 1 is at most seven leaves and always runs, so there is an
		// answer even when the budget is already spent
		if depth > 1 && !deadline.IsZero() {
			elapsed := time.Since(start)
			if !time.Now().Before(deadline) {
				break
			}
			if elapsed > growthGuardMin && elapsed*growthGuardFactor > budget {
				break
			}
			run.bounded = true
		}

		col, score, ok := run.root(board, ordered, depth)
		if !ok {
			break
		}

		result.Column, result.Score, result.Depth = col, score, depth
		if ab.OnDepth != nil {
			ab.OnDepth(DepthReport{
				Depth:   depth,
				Column:  col,
				Score:   score,
				Nodes:   run.nodes,
				Elapsed: time.Since(start),
			})
		}

		if score > WIN_THRESHOLD {
			break
		}
	}

	result.Nodes = run.nodes
	result.Elapsed = time.Since(start)
	return result
}

// root searches every candidate to depth and reports false if the clock ran
// out before all of them were scored.
func (s *searchRun) root(board domain.Board, ordered []int, depth int) (int, int, bool) {
	bestCol := ordered[0]
	bestScore := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt

	for _, col := range ordered {
		if s.expired() {
			return bestCol, bestScore, false
		}

		next, row := board.Play(col, s.mover)
		if row < 0 {
			continue
		}
		score, ok := s.minimax(next, row, col, depth-1, alpha, beta, false)
		if !ok {
			return bestCol, bestScore, false
		}

		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		if s.pruning {
			alpha = max(alpha, bestScore)
		}
	}

	return bestCol, bestScore, true
}

// minimax scores board from the root mover's point of view. (lastRow, lastCol)
// is the piece just played; only its owner can have completed four.
func (s *searchRun) minimax(board domain.Board, lastRow, lastCol, depth int, alpha, beta int, isMaximizing bool) (int, bool) {
	s.nodes++
	if s.expired() {
		return 0, false
	}

	lastPlayer := s.mover
	if isMaximizing {
		lastPlayer = s.mover.Other()
	}
	if board.CompletesFour(lastRow, lastCol, lastPlayer) {
		if lastPlayer == s.mover {
			return MINIMAX_WIN + depth, true // Prefer quicker wins
		}
		return -MINIMAX_WIN - depth, true // Prefer delaying losses
	}

	if board.IsFull() {
		return MINIMAX_DRAW, true
	}

	if depth == 0 {
		return Evaluate(board, s.mover, s.weights), true
	}

	if isMaximizing {
		maxEval := math.MinInt
		for _, col := range centerOrder {
			next, row := board.Play(col, s.mover)
			if row < 0 {
				continue
			}

			eval, ok := s.minimax(next, row, col, depth-1, alpha, beta, false)
			if !ok {
				return 0, false
			}
			maxEval = max(maxEval, eval)

			if s.pruning {
				alpha = max(alpha, eval)
				if beta <= alpha {
					break // Beta cutoff
				}
			}
		}
		return maxEval, true
	}

	minEval := math.MaxInt
	for _, col := range centerOrder {
		next, row := board.Play(col, s.mover.Other())
		if row < 0 {
			continue
		}

		eval, ok := s.minimax(next, row, col, depth-1, alpha, beta, true)
		if !ok {
			return 0, false
		}
		minEval = min(minEval, eval)

		if s.pruning {
			beta = min(beta, eval)
			if beta <= alpha {
				break // Alpha cutoff
			}
		}
	}
	return minEval, true
}

// orderCenterFirst returns a copy of columns sorted by distance to the
// center, keeping the caller's order among equals.
func orderCenterFirst(columns []int) []int {
	ordered := append([]int(nil), columns...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return centerDistance(ordered[i]) < centerDistance(ordered[j])
	})
	return ordered
}

func centerDistance(col int) int {
	d := col - domain.CenterColumn
	if d < 0 {
		return -d
	}
	return d
}
