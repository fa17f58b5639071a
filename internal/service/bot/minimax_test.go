package bot

import (
	"testing"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
)

var midgame = []string{
	".......",
	".......",
	"...O...",
	"..XX...",
	"..OXO..",
	".XOOX..",
}

func TestAlphaBetaFindsWinInOne(t *testing.T) {
	b := boardFrom(t,
		".......",
		".......",
		".......",
		"O......",
		"O......",
		"OXXX...",
	)
	w, _ := LookupWeights("offensive")
	res := AlphaBeta{Weights: w, MaxDepth: 2, Pruning: true}.Search(b, domain.Self, b.LegalColumns(), time.Time{})
	if res.Column != 4 {
		t.Fatalf("column = %d, want 4", res.Column)
	}
	if res.Score <= WIN_THRESHOLD {
		t.Fatalf("score %d should report a forced win", res.Score)
	}
}

func TestAlphaBetaAvoidsLoss(t *testing.T) {
	b := boardFrom(t,
		".......",
		".......",
		".......",
		".......",
		"X......",
		"XX.OOOX",
	)
	w, _ := LookupWeights("classic")
	res := AlphaBeta{Weights: w, MaxDepth: 3, Pruning: true}.Search(b, domain.Self, b.LegalColumns(), time.Time{})
	if res.Column != 2 {
		t.Fatalf("column = %d, want the block at 2", res.Column)
	}
}

func TestPruningMatchesFullMinimax(t *testing.T) {
	b := boardFrom(t, midgame...)
	w, _ := LookupWeights("classic")
	legal := b.LegalColumns()

	full := AlphaBeta{Weights: w, MaxDepth: 4}.Search(b, domain.Self, legal, time.Time{})
	pruned := AlphaBeta{Weights: w, MaxDepth: 4, Pruning: true}.Search(b, domain.Self, legal, time.Time{})

	if full.Column != pruned.Column || full.Score != pruned.Score {
		t.Fatalf("pruning changed the answer: full %+v, pruned %+v", full, pruned)
	}
	if pruned.Nodes >= full.Nodes {
		t.Fatalf("pruning visited %d nodes, full search %d", pruned.Nodes, full.Nodes)
	}
	if full.Depth != 4 {
		t.Fatalf("fixed-depth search reported depth %d", full.Depth)
	}
}

func TestIterativeDeepeningReportsEachDepth(t *testing.T) {
	b := domain.NewBoard()
	w, _ := LookupWeights("classic")
	var depths []int
	ab := AlphaBeta{
		Weights:   w,
		MaxDepth:  5,
		Pruning:   true,
		Iterative: true,
		OnDepth:   func(r DepthReport) { depths = append(depths, r.Depth) },
	}
	res := ab.Search(b, domain.Self, b.LegalColumns(), time.Time{})
	if len(depths) != 5 {
		t.Fatalf("depth reports = %v", depths)
	}
	for i, d := range depths {
		if d != i+1 {
			t.Fatalf("depth reports out of order: %v", depths)
		}
	}
	if res.Depth != 5 {
		t.Fatalf("Depth = %d, want 5", res.Depth)
	}
}

func TestExpiredDeadlineStillCompletesDepthOne(t *testing.T) {
	b := domain.NewBoard()
	w, _ := LookupWeights("classic")
	ab := AlphaBeta{Weights: w, Pruning: true, Iterative: true}
	res := ab.Search(b, domain.Self, b.LegalColumns(), time.Now().Add(-time.Second))
	if res.Depth != 1 {
		t.Fatalf("Depth = %d, want 1", res.Depth)
	}
	if !b.IsValidMove(res.Column) {
		t.Fatalf("illegal column %d", res.Column)
	}
}

func TestSearchRespectsCandidates(t *testing.T) {
	b := domain.NewBoard()
	w, _ := LookupWeights("classic")
	res := AlphaBeta{Weights: w, MaxDepth: 3, Pruning: true}.Search(b, domain.Self, []int{0, 6}, time.Time{})
	if res.Column != 0 && res.Column != 6 {
		t.Fatalf("column %d is outside the candidate set", res.Column)
	}
}

func TestSearchStopsNearDeadline(t *testing.T) {
	b := domain.NewBoard()
	w, _ := LookupWeights("classic")
	budget := 50 * time.Millisecond
	start := time.Now()
	res := AlphaBeta{Weights: w, Pruning: true, Iterative: true}.Search(b, domain.Self, b.LegalColumns(), start.Add(budget))
	if elapsed := time.Since(start); elapsed > budget+100*time.Millisecond {
		t.Fatalf("search overran its budget: %v", elapsed)
	}
	if res.Depth < 1 || res.Column < 0 {
		t.Fatalf("no answer: %+v", res)
	}
}

func TestFixedDepthFallsBackWhenOutOfTime(t *testing.T) {
	b := domain.NewBoard()
	w, _ := LookupWeights("classic")
	budget := 20 * time.Millisecond
	start := time.Now()
	res := AlphaBeta{Weights: w, MaxDepth: 12}.Search(b, domain.Self, b.LegalColumns(), start.Add(budget))
	if elapsed := time.Since(start); elapsed > budget+100*time.Millisecond {
		t.Fatalf("fixed-depth search overran its budget: %v", elapsed)
	}
	if res.Depth != 1 || !b.IsValidMove(res.Column) {
		t.Fatalf("want a depth-1 answer, got %+v", res)
	}
}

func TestAnswerComesFromLastCompletedDepth(t *testing.T) {
	b := domain.NewBoard()
	w, _ := LookupWeights("classic")
	var reports []DepthReport
	ab := AlphaBeta{
		Weights:   w,
		Iterative: true,
		OnDepth:   func(r DepthReport) { reports = append(reports, r) },
	}
	res := ab.Search(b, domain.Self, b.LegalColumns(), time.Now().Add(30*time.Millisecond))
	if len(reports) == 0 {
		t.Fatalf("no depth completed")
	}
	last := reports[len(reports)-1]
	if res.Depth >= b.Empties() {
		t.Fatalf("search of the empty board was not cut short: depth %d", res.Depth)
	}
	if res.Depth != last.Depth || res.Column != last.Column || res.Score != last.Score {
		t.Fatalf("result %+v does not match the last completed depth %+v", res, last)
	}
	if res.Nodes < last.Nodes {
		t.Fatalf("result nodes %d < last report %d", res.Nodes, last.Nodes)
	}
}

func TestQuickerWinScoresHigher(t *testing.T) {
	// 6 wins now; 1 and 4 both win two moves later through an open three
	b := boardFrom(t,
		".......",
		".......",
		".......",
		"......X",
		"......X",
		"..XX..X",
	)
	w, _ := LookupWeights("classic")
	const depth = 4
	res := AlphaBeta{Weights: w, MaxDepth: depth, Pruning: true}.Search(b, domain.Self, b.LegalColumns(), time.Time{})
	if res.Column != 6 {
		t.Fatalf("column = %d, want the immediate win at 6", res.Column)
	}
	if res.Score != MINIMAX_WIN+depth-1 {
		t.Fatalf("score = %d, want %d", res.Score, MINIMAX_WIN+depth-1)
	}

	// without the immediate win the slower forced win is still found
	slow := AlphaBeta{Weights: w, MaxDepth: depth, Pruning: true}.Search(b, domain.Self, []int{1, 4}, time.Time{})
	if slow.Score != MINIMAX_WIN+depth-3 {
		t.Fatalf("win in three scored %d, want %d", slow.Score, MINIMAX_WIN+depth-3)
	}
}

func TestSlowerLossScoresHigher(t *testing.T) {
	// blocking 0 only delays the loss: O then plays 2 or 5 for two threats
	b := boardFrom(t,
		".......",
		".......",
		"O......",
		"O......",
		"O......",
		"X..OO..",
	)
	w, _ := LookupWeights("classic")
	const depth = 4
	res := AlphaBeta{Weights: w, MaxDepth: depth, Pruning: true}.Search(b, domain.Self, b.LegalColumns(), time.Time{})
	if res.Column != 0 {
		t.Fatalf("column = %d, want the delaying block at 0", res.Column)
	}
	if res.Score != -MINIMAX_WIN-(depth-4) {
		t.Fatalf("score = %d, want %d", res.Score, -MINIMAX_WIN-(depth-4))
	}
}

func TestOrderCenterFirst(t *testing.T) {
	got := orderCenterFirst([]int{0, 1, 2, 3, 4, 5, 6})
	want := []int{3, 2, 4, 1, 5, 0, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("orderCenterFirst = %v, want %v", got, want)
		}
	}
}
