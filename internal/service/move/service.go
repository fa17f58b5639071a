package move

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/bot"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Request is one "pick a column" call at the engine boundary.
type Request struct {
	domain.Observation
	Preset   string `json:"preset,omitempty"`
	BudgetMs int    `json:"budget_ms,omitempty"`
}

// Response is the decision plus how it was produced.
type Response struct {
	bot.Decision
	Preset    string `json:"preset"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Cached    bool   `json:"cached"`
}

// DecisionCache is the shared store for deterministic decisions.
type DecisionCache interface {
	Get(ctx context.Context, key string) (bot.Decision, bool, error)
	Set(ctx context.Context, key string, d bot.Decision) error
}

// Service is the entry point for move selection (facade)
type Service struct {
	defaultPreset string
	defaultBudget time.Duration
	maxBudget     time.Duration
	cache         DecisionCache
}

// NewService builds the facade. defaultBudget <= 0 leaves each preset's own
// budget in place; maxBudget <= 0 disables the cap. cache may be nil.
func NewService(defaultPreset string, defaultBudget, maxBudget time.Duration, cache DecisionCache) *Service {
	if defaultPreset == "" {
		defaultPreset = bot.DefaultPreset
	}
	return &Service{
		defaultPreset: defaultPreset,
		defaultBudget: defaultBudget,
		maxBudget:     maxBudget,
		cache:         cache,
	}
}

// ChooseMove decodes the observation, resolves the preset and runs the agent.
// opts are passed to the agent, e.g. a depth report callback.
func (s *Service) ChooseMove(ctx context.Context, req Request, opts ...bot.Option) (Response, error) {
	board, legal, err := req.Observation.Decode()
	if err != nil {
		return Response{}, errors.Wrap(err, "decode observation")
	}
	if len(legal) == 0 {
		return Response{}, domain.ErrNoLegalMove
	}

	config := req.Preset
	if config == "" {
		config = s.defaultPreset
	}
	preset, err := bot.ParsePreset(config)
	if err != nil {
		return Response{}, err
	}

	budget := s.budgetFor(ctx, req.BudgetMs, preset)
	if err := ctx.Err(); err != nil {
		return Response{}, errors.Wrap(err, "choose move")
	}

	key := ""
	if s.cache != nil && deterministic(preset) {
		key = CacheKey(preset, board, legal)
		d, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("component", "move").Msg("decision cache read failed")
		} else if hit {
			return Response{Decision: d, Preset: preset.Name, Cached: true}, nil
		}
	}

	agent, err := bot.NewAgent(preset, opts...)
	if err != nil {
		return Response{}, err
	}
	d, err := agent.Decide(board, domain.Self, legal, budget)
	if err != nil {
		return Response{}, err
	}

	// a search cut short by the clock is not the preset's answer
	if key != "" && (d.Source != bot.SourceSearch || d.Depth >= min(preset.MaxDepth, board.Empties())) {
		if err := s.cache.Set(ctx, key, d); err != nil {
			log.Warn().Err(err).Str("component", "move").Msg("decision cache write failed")
		}
	}

	log.Info().Str("component", "move").Str("preset", preset.Name).
		Int("column", d.Column).Str("source", string(d.Source)).
		Int("depth", d.Depth).Dur("elapsed", d.Elapsed).Msg("move chosen")

	return Response{
		Decision:  d,
		Preset:    preset.Name,
		ElapsedMs: d.Elapsed.Milliseconds(),
	}, nil
}

// budgetFor resolves the time budget: the request wins over the configured
// default, which wins over the preset. The result is capped by maxBudget and
// by the context deadline.
func (s *Service) budgetFor(ctx context.Context, requestMs int, preset bot.Preset) time.Duration {
	budget := preset.Budget
	if s.defaultBudget > 0 {
		budget = s.defaultBudget
	}
	if requestMs > 0 {
		budget = time.Duration(requestMs) * time.Millisecond
	}
	if s.maxBudget > 0 && budget > s.maxBudget {
		budget = s.maxBudget
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < budget {
			budget = left
		}
	}
	// a non-positive budget would fall back to the preset inside the agent
	if budget <= 0 {
		budget = time.Nanosecond
	}
	return budget
}

// deterministic presets give the same answer for the same position whatever
// the clock does, so their decisions can be shared.
func deterministic(p bot.Preset) bool {
	return p.Strategy == bot.StrategyAlphaBeta && !p.Iterative && p.MaxDepth > 0
}

// CacheKey identifies a (preset, position, legal set) triple.
func CacheKey(p bot.Preset, board domain.Board, legal []int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:d%d:p%t:t%t:x%t:%s:", p.Name, p.MaxDepth, p.Pruning, p.Tactics, p.DoubleThreat, p.Weights)
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Columns; c++ {
			switch board.At(r, c) {
			case domain.Mine:
				sb.WriteByte('x')
			case domain.Theirs:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
	}
	sb.WriteByte(':')
	for _, col := range legal {
		sb.WriteByte(byte('0' + col))
	}
	return sb.String()
}
