package bot

import (
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// Decision is the agent's answer for one position.
type Decision struct {
	Column      int           `json:"column"`
	Source      Source        `json:"source"`
	Depth       int           `json:"depth"`
	Score       int           `json:"score"`
	Nodes       int64         `json:"nodes"`
	Simulations int           `json:"simulations"`
	Elapsed     time.Duration `json:"-"`
}

// Agent turns a preset into decisions. An Agent holds no per-position state
// and may be reused for any number of moves, but not concurrently when a
// depth callback is installed.
type Agent struct {
	preset  Preset
	weights Weights
	onDepth func(DepthReport)
	newRand func() Rand
}

// Option customises an Agent.
type Option func(*Agent)

// WithDepthReports installs a callback invoked after each completed
// iterative-deepening pass.
func WithDepthReports(fn func(DepthReport)) Option {
	return func(a *Agent) { a.onDepth = fn }
}

// WithRand replaces the per-decision random source.
func WithRand(fn func() Rand) Option {
	return func(a *Agent) { a.newRand = fn }
}

// NewAgent validates p and builds an agent for it.
func NewAgent(p Preset, opts ...Option) (*Agent, error) {
	a := &Agent{preset: p}
	switch p.Strategy {
	case StrategyRandom, StrategyEasy, StrategyMedium, StrategyMCTS:
	case StrategyAlphaBeta:
		w, ok := LookupWeights(p.Weights)
		if !ok {
			return nil, errors.Errorf("preset %q: unknown weights %q", p.Name, p.Weights)
		}
		if err := checkDepth(p); err != nil {
			return nil, err
		}
		a.weights = w
	default:
		return nil, errors.Wrapf(domain.ErrUnknownPreset, "preset %q: strategy %q", p.Name, p.Strategy)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewAgentFromConfig is ParsePreset followed by NewAgent.
func NewAgentFromConfig(config string, opts ...Option) (*Agent, error) {
	p, err := ParsePreset(config)
	if err != nil {
		return nil, err
	}
	return NewAgent(p, opts...)
}

func (a *Agent) rand() Rand {
	if a.newRand != nil {
		return a.newRand()
	}
	return frand.New()
}

// Decide picks a column from legal for mover. budget <= 0 falls back to the
// preset's budget. Every column in legal must be playable on board.
func (a *Agent) Decide(board domain.Board, mover domain.Player, legal []int, budget time.Duration) (Decision, error) {
	start := time.Now()
	if len(legal) == 0 {
		return Decision{Column: -1}, domain.ErrNoLegalMove
	}
	for _, col := range legal {
		if !board.IsValidMove(col) {
			return Decision{Column: -1}, errors.Wrapf(domain.ErrIllegalMove, "column %d", col)
		}
	}
	if budget <= 0 {
		budget = a.preset.Budget
	}

	if winner, won := board.Winner(); won {
		col := orderCenterFirst(legal)[0]
		log.Debug().Str("component", "bot").Str("winner", winner.String()).Int("column", col).
			Msg("position already decided")
		return a.finish(Decision{Column: col, Source: SourceFallback}, start), nil
	}

	switch a.preset.Strategy {
	case StrategyRandom:
		return a.finish(Decision{Column: randomMove(legal, a.rand()), Source: SourcePolicy}, start), nil
	case StrategyEasy:
		col, src := easyMove(board, mover, legal, a.rand())
		return a.finish(Decision{Column: col, Source: src}, start), nil
	case StrategyMedium:
		col, src := mediumMove(board, mover, legal, a.rand())
		return a.finish(Decision{Column: col, Source: src}, start), nil
	}

	candidates := legal
	if a.preset.Tactics {
		t := PreSearch(board, mover, legal, a.preset.DoubleThreat)
		if t.Forced {
			log.Debug().Str("component", "bot").Str("preset", a.preset.Name).
				Str("source", string(t.Source)).Int("column", t.Column).Msg("forced move")
			return a.finish(Decision{Column: t.Column, Source: t.Source}, start), nil
		}
		candidates = t.Candidates
	}

	deadline := start.Add(budget)
	var res Result
	switch a.preset.Strategy {
	case StrategyAlphaBeta:
		res = AlphaBeta{
			Weights:   a.weights,
			MaxDepth:  a.preset.MaxDepth,
			Pruning:   a.preset.Pruning,
			Iterative: a.preset.Iterative,
			OnDepth:   a.onDepth,
		}.Search(board, mover, candidates, deadline)
	case StrategyMCTS:
		res = MCTS{
			Exploration:    a.preset.Exploration,
			MaxSimulations: a.preset.MaxSimulations,
			NewRand:        a.newRand,
		}.Search(board, mover, candidates, deadline)
	}

	log.Debug().Str("component", "bot").Str("preset", a.preset.Name).
		Int("column", res.Column).Int("depth", res.Depth).Int("score", res.Score).
		Int64("nodes", res.Nodes).Int("simulations", res.Simulations).
		Dur("elapsed", res.Elapsed).Msg("search finished")

	return a.finish(Decision{
		Column:      res.Column,
		Source:      SourceSearch,
		Depth:       res.Depth,
		Score:       res.Score,
		Nodes:       res.Nodes,
		Simulations: res.Simulations,
	}, start), nil
}

func (a *Agent) finish(d Decision, start time.Time) Decision {
	d.Elapsed = time.Since(start)
	return d
}

// CalculateBestMove picks a move for mover on board using a named preset
// with its default budget. It returns -1 if there is no legal move.
func CalculateBestMove(board domain.Board, mover domain.Player, preset string) int {
	agent, err := NewAgentFromConfig(preset)
	if err != nil {
		log.Warn().Err(err).Str("preset", preset).Msg("falling back to default preset")
		agent, _ = NewAgentFromConfig(DefaultPreset)
	}
	d, err := agent.Decide(board, mover, board.LegalColumns(), 0)
	if err != nil {
		return -1
	}
	return d.Column
}
