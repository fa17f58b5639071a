package bot

import (
	"errors"
	"testing"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
)

var scenarios = []struct {
	name string
	rows []string
	want []int
}{
	{"vertical threat", []string{
		".......",
		".......",
		".......",
		"O......",
		"O......",
		"O......",
	}, []int{0}},
	{"horizontal threat", []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"OOO....",
	}, []int{3}},
	{"split threat", []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"O.OO...",
	}, []int{1}},
	{"win over block", []string{
		".......",
		".......",
		".......",
		"O.....X",
		"O.....X",
		"O.....X",
	}, []int{6}},
	{"diagonal threat", []string{
		".......",
		".......",
		".......",
		"..OX...",
		".OXX...",
		"OXXO...",
	}, []int{3}},
	{"crowded board", []string{
		"..OXOXO",
		"..OXOXX",
		"..OXOXO",
		"X.XOXOX",
		"X.XOXOO",
		"X.XOXOX",
	}, []int{0}},
	{"gap threat", []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"OO.O...",
	}, []int{2}},
	{"open three", []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"..OOO..",
	}, []int{1, 5}},
}

func TestTacticalScenarios(t *testing.T) {
	for _, preset := range []string{"hard", "alphabeta", "mcts", "medium", "easy"} {
		agent, err := NewAgentFromConfig(preset + ":budget_ms=100")
		if err != nil {
			t.Fatalf("%s: %v", preset, err)
		}
		for _, sc := range scenarios {
			b := boardFrom(t, sc.rows...)
			d, err := agent.Decide(b, domain.Self, b.LegalColumns(), 0)
			if err != nil {
				t.Fatalf("%s/%s: %v", preset, sc.name, err)
			}
			if !contains(sc.want, d.Column) {
				t.Fatalf("%s/%s: column %d (%s), want one of %v\n%s",
					preset, sc.name, d.Column, d.Source, sc.want, b)
			}
		}
	}
}

func TestDecideForcedByMask(t *testing.T) {
	for _, preset := range []string{"random", "easy", "medium", "minimax", "hard", "alphabeta", "mcts"} {
		agent, err := NewAgentFromConfig(preset)
		if err != nil {
			t.Fatalf("%s: %v", preset, err)
		}
		d, err := agent.Decide(domain.NewBoard(), domain.Self, []int{5}, 20*time.Millisecond)
		if err != nil {
			t.Fatalf("%s: %v", preset, err)
		}
		if d.Column != 5 {
			t.Fatalf("%s: column %d, want 5", preset, d.Column)
		}
	}
}

func TestDecideErrors(t *testing.T) {
	agent, err := NewAgentFromConfig("alphabeta")
	if err != nil {
		t.Fatalf("NewAgentFromConfig: %v", err)
	}
	if _, err := agent.Decide(domain.NewBoard(), domain.Self, nil, 0); err != domain.ErrNoLegalMove {
		t.Fatalf("empty legal set: got %v", err)
	}

	full := domain.NewBoard()
	for i := 0; i < domain.Rows; i++ {
		full, _ = full.Play(0, domain.Player(i%2))
	}
	if _, err := agent.Decide(full, domain.Self, []int{0, 1}, 0); !errors.Is(err, domain.ErrIllegalMove) {
		t.Fatalf("full column in legal set: got %v", err)
	}
}

func TestDecideOnFinishedPosition(t *testing.T) {
	b := boardFrom(t,
		".......",
		".......",
		"O......",
		"O......",
		"O......",
		"OXXX...",
	)
	agent, _ := NewAgentFromConfig("alphabeta")
	d, err := agent.Decide(b, domain.Self, b.LegalColumns(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if d.Source != SourceFallback || !b.IsValidMove(d.Column) {
		t.Fatalf("got %+v", d)
	}
}

func TestMediumPrefersCenter(t *testing.T) {
	agent, _ := NewAgentFromConfig("medium")
	d, err := agent.Decide(domain.NewBoard(), domain.Self, domain.NewBoard().LegalColumns(), 0)
	if err != nil || d.Column != 3 {
		t.Fatalf("empty board: column %d, err %v", d.Column, err)
	}
	d, err = agent.Decide(domain.NewBoard(), domain.Self, []int{0, 1, 2, 4, 5, 6}, 0)
	if err != nil || (d.Column != 2 && d.Column != 4) {
		t.Fatalf("center masked: column %d, err %v", d.Column, err)
	}
}

func TestRandomPresetIsLegal(t *testing.T) {
	agent, err := NewAgent(presets["random"], WithRand(seededRand(5)))
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	legal := []int{1, 4, 6}
	for i := 0; i < 20; i++ {
		d, err := agent.Decide(domain.NewBoard(), domain.Self, legal, 0)
		if err != nil || !contains(legal, d.Column) {
			t.Fatalf("column %d, err %v", d.Column, err)
		}
	}
}

func TestSearchDecisionCarriesStats(t *testing.T) {
	var reports []DepthReport
	agent, err := NewAgentFromConfig("alphabeta:depth=3", WithDepthReports(func(r DepthReport) {
		reports = append(reports, r)
	}))
	if err != nil {
		t.Fatalf("NewAgentFromConfig: %v", err)
	}
	d, err := agent.Decide(domain.NewBoard(), domain.Self, domain.NewBoard().LegalColumns(), time.Second)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if d.Source != SourceSearch || d.Depth != 3 || d.Nodes == 0 {
		t.Fatalf("got %+v", d)
	}
	if len(reports) != 3 {
		t.Fatalf("depth reports = %d, want 3", len(reports))
	}
}

func TestNewAgentRejectsBadPreset(t *testing.T) {
	if _, err := NewAgent(Preset{Name: "x", Strategy: "greedy"}); !errors.Is(err, domain.ErrUnknownPreset) {
		t.Fatalf("unknown strategy: got %v", err)
	}
	if _, err := NewAgent(Preset{Name: "x", Strategy: StrategyAlphaBeta, Weights: "nope"}); err == nil {
		t.Fatalf("unknown weights accepted")
	}
	if _, err := NewAgent(Preset{Name: "x", Strategy: StrategyAlphaBeta, Weights: "classic"}); err == nil {
		t.Fatalf("fixed-depth preset without a depth limit was accepted")
	}
}

func TestCalculateBestMove(t *testing.T) {
	b := boardFrom(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"OOO....",
	)
	if col := CalculateBestMove(b, domain.Self, "hard:budget_ms=50"); col != 3 {
		t.Fatalf("column %d, want 3", col)
	}
	if col := CalculateBestMove(b, domain.Self, "no-such-preset"); col != 3 {
		t.Fatalf("fallback preset: column %d, want 3", col)
	}
}
